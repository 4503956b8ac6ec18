package postgres

import (
	"time"

	"github.com/uptrace/bun"

	"mushroom-trivia/internal/domain"
)

type characterRow struct {
	bun.BaseModel `bun:"table:characters,alias:c"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description,notnull"`
	ImageURL    string    `bun:"image_url,nullzero"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

func (r characterRow) toDomain() domain.Character {
	return domain.Character{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func characterToRow(c domain.Character) characterRow {
	return characterRow{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type questionRow struct {
	bun.BaseModel `bun:"table:trivia_questions,alias:q"`

	ID                 int64     `bun:"id,pk,autoincrement"`
	Question           string    `bun:"question,notnull"`
	Options            []string  `bun:"options,type:jsonb"`
	CorrectAnswerIndex int       `bun:"correct_answer_index,notnull"`
	Difficulty         string    `bun:"difficulty,notnull"`
	CreatedAt          time.Time `bun:"created_at,notnull"`
	UpdatedAt          time.Time `bun:"updated_at,notnull"`
}

func (r questionRow) toDomain() domain.TriviaQuestion {
	return domain.TriviaQuestion{
		ID:                 r.ID,
		Question:           r.Question,
		Options:            r.Options,
		CorrectAnswerIndex: r.CorrectAnswerIndex,
		Difficulty:         r.Difficulty,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func questionToRow(q domain.TriviaQuestion) questionRow {
	return questionRow{
		ID:                 q.ID,
		Question:           q.Question,
		Options:            q.Options,
		CorrectAnswerIndex: q.CorrectAnswerIndex,
		Difficulty:         q.Difficulty,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

type highScoreRow struct {
	bun.BaseModel `bun:"table:high_scores,alias:hs"`

	ID             int64     `bun:"id,pk,autoincrement"`
	PlayerName     string    `bun:"player_name,notnull"`
	Score          int       `bun:"score,notnull"`
	TotalQuestions int       `bun:"total_questions,notnull"`
	CorrectAnswers int       `bun:"correct_answers,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

func (r highScoreRow) toDomain() domain.HighScore {
	return domain.HighScore{
		ID:             r.ID,
		PlayerName:     r.PlayerName,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		CreatedAt:      r.CreatedAt,
	}
}
