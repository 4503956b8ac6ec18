package http

import (
	"mushroom-trivia/internal/app"
)

// Handler bundles the application services behind the HTTP surface.
type Handler struct {
	game       *app.GameService
	characters *app.CharacterService
	questions  *app.QuestionService
	scores     *app.HighScoreService
}

func NewHandler(game *app.GameService, characters *app.CharacterService, questions *app.QuestionService, scores *app.HighScoreService) *Handler {
	return &Handler{
		game:       game,
		characters: characters,
		questions:  questions,
		scores:     scores,
	}
}
