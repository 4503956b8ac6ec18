package app

import (
	"context"

	"mushroom-trivia/internal/domain"
)

// CharacterRepository persists characters. List is newest-first and returns
// the total row count for pagination.
type CharacterRepository interface {
	List(ctx context.Context, offset, limit int) ([]domain.Character, int, error)
	Get(ctx context.Context, id int64) (domain.Character, error)
	Create(ctx context.Context, character *domain.Character) error
	Update(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, id int64) error
}

// QuestionRepository persists trivia questions for the admin screens.
// Gameplay reads go through QuestionSource instead.
type QuestionRepository interface {
	List(ctx context.Context, offset, limit int) ([]domain.TriviaQuestion, int, error)
	Get(ctx context.Context, id int64) (domain.TriviaQuestion, error)
	Create(ctx context.Context, question *domain.TriviaQuestion) error
	Update(ctx context.Context, question *domain.TriviaQuestion) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// HighScoreRepository persists completed sessions. There is no update or
// delete: high scores are immutable once created.
type HighScoreRepository interface {
	Create(ctx context.Context, score *domain.HighScore) error
	Get(ctx context.Context, id int64) (domain.HighScore, error)
	Top(ctx context.Context, n int) ([]domain.HighScore, error)
	Recent(ctx context.Context, offset, limit int) ([]domain.HighScore, int, error)
}

// QuestionSource serves the full question bank for gameplay
// (from cache/backing store).
type QuestionSource interface {
	Questions(ctx context.Context) ([]domain.TriviaQuestion, error)
}

// SessionStore abstracts how game sessions are stored (in-memory, Redis, etc).
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// Page is one slice of a listing plus the chrome the admin screens paginate with.
type Page[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// LastPage returns the highest page number that still has content.
func (p Page[T]) LastPage() int {
	if p.Total == 0 || p.PerPage == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}
