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

// CharacterRepository is the bun-backed implementation of app.CharacterRepository.
type CharacterRepository struct {
	db *bun.DB
}

func NewCharacterRepository(db *bun.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) List(ctx context.Context, offset, limit int) ([]domain.Character, int, error) {
	var rows []characterRow
	total, err := r.db.NewSelect().
		Model(&rows).
		Order("created_at DESC", "id DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list characters: %w", err)
	}
	out := make([]domain.Character, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

func (r *CharacterRepository) Get(ctx context.Context, id int64) (domain.Character, error) {
	row := characterRow{}
	err := r.db.NewSelect().Model(&row).Where("c.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Character{}, domain.ErrCharacterNotFound
	}
	if err != nil {
		return domain.Character{}, fmt.Errorf("get character: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CharacterRepository) Create(ctx context.Context, character *domain.Character) error {
	now := time.Now()
	character.CreatedAt = now
	character.UpdatedAt = now
	row := characterToRow(*character)
	if _, err := r.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert character: %w", err)
	}
	character.ID = row.ID
	return nil
}

func (r *CharacterRepository) Update(ctx context.Context, character *domain.Character) error {
	character.UpdatedAt = time.Now()
	row := characterToRow(*character)
	res, err := r.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return rowsOrNotFound(res, domain.ErrCharacterNotFound)
}

func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*characterRow)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return rowsOrNotFound(res, domain.ErrCharacterNotFound)
}

func rowsOrNotFound(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
