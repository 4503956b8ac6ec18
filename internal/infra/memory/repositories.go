package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"mushroom-trivia/internal/domain"
)

// CharacterRepository is an in-memory implementation of app.CharacterRepository,
// used in tests and when no postgres URL is configured.
type CharacterRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Character
	clock  func() time.Time
}

func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{items: make(map[int64]domain.Character), nextID: 1, clock: time.Now}
}

// NewCharacterRepositoryWithClock allows deterministic timestamps in tests.
func NewCharacterRepositoryWithClock(clock func() time.Time) *CharacterRepository {
	return &CharacterRepository{items: make(map[int64]domain.Character), nextID: 1, clock: clock}
}

func (r *CharacterRepository) List(_ context.Context, offset, limit int) ([]domain.Character, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Character, 0, len(r.items))
	for _, c := range r.items {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return slicePage(all, offset, limit), len(all), nil
}

func (r *CharacterRepository) Get(_ context.Context, id int64) (domain.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return domain.Character{}, domain.ErrCharacterNotFound
	}
	return c, nil
}

func (r *CharacterRepository) Create(_ context.Context, character *domain.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock()
	character.ID = r.nextID
	r.nextID++
	character.CreatedAt = now
	character.UpdatedAt = now
	r.items[character.ID] = *character
	return nil
}

func (r *CharacterRepository) Update(_ context.Context, character *domain.Character) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[character.ID]; !ok {
		return domain.ErrCharacterNotFound
	}
	character.UpdatedAt = r.clock()
	r.items[character.ID] = *character
	return nil
}

func (r *CharacterRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrCharacterNotFound
	}
	delete(r.items, id)
	return nil
}

// QuestionRepository is an in-memory implementation of app.QuestionRepository.
type QuestionRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.TriviaQuestion
	clock  func() time.Time
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{items: make(map[int64]domain.TriviaQuestion), nextID: 1, clock: time.Now}
}

func (r *QuestionRepository) List(_ context.Context, offset, limit int) ([]domain.TriviaQuestion, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.TriviaQuestion, 0, len(r.items))
	for _, q := range r.items {
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return slicePage(all, offset, limit), len(all), nil
}

func (r *QuestionRepository) Get(_ context.Context, id int64) (domain.TriviaQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.items[id]
	if !ok {
		return domain.TriviaQuestion{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (r *QuestionRepository) Create(_ context.Context, question *domain.TriviaQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock()
	question.ID = r.nextID
	r.nextID++
	question.CreatedAt = now
	question.UpdatedAt = now
	r.items[question.ID] = *question
	return nil
}

func (r *QuestionRepository) Update(_ context.Context, question *domain.TriviaQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[question.ID]; !ok {
		return domain.ErrQuestionNotFound
	}
	question.UpdatedAt = r.clock()
	r.items[question.ID] = *question
	return nil
}

func (r *QuestionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *QuestionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// All returns the full bank. It backs the repository-based question loader.
func (r *QuestionRepository) All(_ context.Context) ([]domain.TriviaQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.TriviaQuestion, 0, len(r.items))
	for _, q := range r.items {
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// HighScoreRepository is an in-memory implementation of app.HighScoreRepository.
type HighScoreRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.HighScore
	clock  func() time.Time
}

func NewHighScoreRepository() *HighScoreRepository {
	return NewHighScoreRepositoryWithClock(time.Now)
}

// NewHighScoreRepositoryWithClock allows deterministic timestamps in tests.
func NewHighScoreRepositoryWithClock(clock func() time.Time) *HighScoreRepository {
	return &HighScoreRepository{items: make(map[int64]domain.HighScore), nextID: 1, clock: clock}
}

func (r *HighScoreRepository) Create(_ context.Context, score *domain.HighScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	score.ID = r.nextID
	r.nextID++
	score.CreatedAt = r.clock()
	r.items[score.ID] = *score
	return nil
}

func (r *HighScoreRepository) Get(_ context.Context, id int64) (domain.HighScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return domain.HighScore{}, domain.ErrHighScoreNotFound
	}
	return s, nil
}

// Top ranks by score descending; ties go to the earlier submission, then the
// lower id so the order is total even on identical timestamps.
func (r *HighScoreRepository) Top(_ context.Context, n int) ([]domain.HighScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.HighScore, 0, len(r.items))
	for _, s := range r.items {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *HighScoreRepository) Recent(_ context.Context, offset, limit int) ([]domain.HighScore, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.HighScore, 0, len(r.items))
	for _, s := range r.items {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return slicePage(all, offset, limit), len(all), nil
}

func slicePage[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	page := make([]T, end-offset)
	copy(page, all[offset:end])
	return page
}
