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

// HighScoreRepository is the bun-backed implementation of app.HighScoreRepository.
// High scores are insert-only; no update or delete exists here on purpose.
type HighScoreRepository struct {
	db *bun.DB
}

func NewHighScoreRepository(db *bun.DB) *HighScoreRepository {
	return &HighScoreRepository{db: db}
}

func (r *HighScoreRepository) Create(ctx context.Context, score *domain.HighScore) error {
	row := highScoreRow{
		PlayerName:     score.PlayerName,
		Score:          score.Score,
		TotalQuestions: score.TotalQuestions,
		CorrectAnswers: score.CorrectAnswers,
		CreatedAt:      time.Now(),
	}
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert high score: %w", err)
	}
	score.ID = row.ID
	score.CreatedAt = row.CreatedAt
	return nil
}

func (r *HighScoreRepository) Get(ctx context.Context, id int64) (domain.HighScore, error) {
	row := highScoreRow{}
	err := r.db.NewSelect().Model(&row).Where("hs.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HighScore{}, domain.ErrHighScoreNotFound
	}
	if err != nil {
		return domain.HighScore{}, fmt.Errorf("get high score: %w", err)
	}
	return row.toDomain(), nil
}

// Top ranks by score descending, then earliest submission, then id, so the
// ordering stays total even for identical score and timestamp.
func (r *HighScoreRepository) Top(ctx context.Context, n int) ([]domain.HighScore, error) {
	var rows []highScoreRow
	err := r.db.NewSelect().
		Model(&rows).
		Order("score DESC", "created_at ASC", "id ASC").
		Limit(n).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rank high scores: %w", err)
	}
	out := make([]domain.HighScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *HighScoreRepository) Recent(ctx context.Context, offset, limit int) ([]domain.HighScore, int, error) {
	var rows []highScoreRow
	total, err := r.db.NewSelect().
		Model(&rows).
		Order("created_at DESC", "id DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list high scores: %w", err)
	}
	out := make([]domain.HighScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}
