package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"mushroom-trivia/internal/domain"
)

// QuestionLoader loads the full question bank from Postgres. It backs the
// gameplay question caches; admin CRUD uses the bun repositories instead.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.TriviaQuestion, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, question, options, correct_answer_index, difficulty, created_at, updated_at
		FROM trivia_questions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var bank []domain.TriviaQuestion
	for rows.Next() {
		var q domain.TriviaQuestion
		var rawOptions []byte
		if err := rows.Scan(&q.ID, &q.Question, &rawOptions, &q.CorrectAnswerIndex, &q.Difficulty, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		bank = append(bank, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return bank, nil
}
