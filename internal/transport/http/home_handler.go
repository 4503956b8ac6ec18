package http

import (
	"net/http"

	"mushroom-trivia/internal/domain"
)

const featuredCharacterCount = 6

type homeView struct {
	FeaturedCharacters []domain.Character `json:"featured_characters"`
	QuestionCount      int                `json:"question_count"`
	TopScores          []highScoreView    `json:"top_scores"`
}

// Home backs the landing page: featured characters, the size of the question
// bank and a short leaderboard preview.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.characters.Featured(r.Context(), featuredCharacterCount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	count, err := h.questions.Count(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	top, err := h.scores.Top(r.Context(), 5)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, homeView{
		FeaturedCharacters: featured,
		QuestionCount:      count,
		TopScores:          withAccuracy(top),
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
