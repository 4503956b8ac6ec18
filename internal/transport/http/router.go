package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the public gameplay surface and the token-gated admin
// surface onto one chi router.
func NewRouter(h *Handler, adminToken string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Admin-Token"},
	}))

	r.Get("/healthz", h.Health)
	r.Get("/home", h.Home)

	r.Get("/characters", h.ListCharacters)
	r.Get("/characters/{id}", h.GetCharacter)

	r.Route("/trivia", func(r chi.Router) {
		r.Post("/sessions", h.StartSession)
		r.Post("/sessions/{token}/answers", h.AnswerCurrent)
		r.Post("/sessions/{token}/complete", h.SaveScore)
		r.Delete("/sessions/{token}", h.AbandonSession)
		r.Post("/answers", h.VerifyAnswer)
	})

	r.Get("/high-scores", h.Leaderboard)
	r.Post("/high-scores", h.SubmitHighScore)
	r.Get("/high-scores/{id}", h.GetHighScore)

	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireAdmin(adminToken))

		r.Route("/characters", func(r chi.Router) {
			r.Post("/", h.CreateCharacter)
			r.Put("/{id}", h.UpdateCharacter)
			r.Delete("/{id}", h.DeleteCharacter)
		})

		r.Route("/trivia-questions", func(r chi.Router) {
			r.Get("/", h.ListQuestions)
			r.Get("/{id}", h.GetQuestion)
			r.Post("/", h.CreateQuestion)
			r.Put("/{id}", h.UpdateQuestion)
			r.Delete("/{id}", h.DeleteQuestion)
		})

		r.Get("/high-scores", h.RecentHighScores)
	})

	return r
}
