package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"mushroom-trivia/internal/domain"
)

// QuestionRepository is the bun-backed implementation of app.QuestionRepository.
type QuestionRepository struct {
	db *bun.DB
}

func NewQuestionRepository(db *bun.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) List(ctx context.Context, offset, limit int) ([]domain.TriviaQuestion, int, error) {
	var rows []questionRow
	total, err := r.db.NewSelect().
		Model(&rows).
		Order("created_at DESC", "id DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	out := make([]domain.TriviaQuestion, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

func (r *QuestionRepository) Get(ctx context.Context, id int64) (domain.TriviaQuestion, error) {
	row := questionRow{}
	err := r.db.NewSelect().Model(&row).Where("q.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TriviaQuestion{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.TriviaQuestion{}, fmt.Errorf("get question: %w", err)
	}
	return row.toDomain(), nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *domain.TriviaQuestion) error {
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now
	row := questionToRow(*question)
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	question.ID = row.ID
	return nil
}

func (r *QuestionRepository) Update(ctx context.Context, question *domain.TriviaQuestion) error {
	question.UpdatedAt = time.Now()
	row := questionToRow(*question)
	res, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return rowsOrNotFound(res, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*questionRow)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return rowsOrNotFound(res, domain.ErrQuestionNotFound)
}

func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*questionRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}
