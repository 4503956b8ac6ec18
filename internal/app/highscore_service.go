package app

import (
	"context"
	"strings"

	"mushroom-trivia/internal/domain"
)

// DefaultLeaderboardLimit caps how many ranked entries a single request returns.
const DefaultLeaderboardLimit = 50

const highScoresPerPage = 20

// HighScoreInput carries a client-computed tally. The server re-validates
// every invariant before trusting it.
type HighScoreInput struct {
	PlayerName     string `json:"player_name"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	CorrectAnswers int    `json:"correct_answers"`
}

// HighScoreService exposes the ranked leaderboard and score submission.
type HighScoreService struct {
	scores HighScoreRepository
}

func NewHighScoreService(scores HighScoreRepository) *HighScoreService {
	return &HighScoreService{scores: scores}
}

// Submit records a client-computed tally as one immutable high score.
func (s *HighScoreService) Submit(ctx context.Context, input HighScoreInput) (domain.HighScore, error) {
	score := domain.HighScore{
		PlayerName:     strings.TrimSpace(input.PlayerName),
		Score:          input.Score,
		TotalQuestions: input.TotalQuestions,
		CorrectAnswers: input.CorrectAnswers,
	}
	if err := ValidateHighScore(score); err != nil {
		return domain.HighScore{}, err
	}
	if err := s.scores.Create(ctx, &score); err != nil {
		return domain.HighScore{}, err
	}
	return score, nil
}

func (s *HighScoreService) Get(ctx context.Context, id int64) (domain.HighScore, error) {
	return s.scores.Get(ctx, id)
}

// Top returns up to limit records ranked by score descending, ties broken by
// earliest submission then id. Non-positive or oversized limits fall back to
// the default.
func (s *HighScoreService) Top(ctx context.Context, limit int) ([]domain.HighScore, error) {
	if limit <= 0 || limit > DefaultLeaderboardLimit {
		limit = DefaultLeaderboardLimit
	}
	return s.scores.Top(ctx, limit)
}

// Recent returns one page of high scores by submission recency. This ordering
// is for administrative browsing and is distinct from the ranked leaderboard.
func (s *HighScoreService) Recent(ctx context.Context, page int) (Page[domain.HighScore], error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.scores.Recent(ctx, (page-1)*highScoresPerPage, highScoresPerPage)
	if err != nil {
		return Page[domain.HighScore]{}, err
	}
	return Page[domain.HighScore]{Items: items, Page: page, PerPage: highScoresPerPage, Total: total}, nil
}

// ValidateHighScore enforces the high score invariants regardless of whether
// the tally came from a server-held session or straight from a client.
func ValidateHighScore(score domain.HighScore) error {
	var errs domain.ValidationErrors
	if score.PlayerName == "" {
		errs = append(errs, domain.ValidationError{Field: "player_name", Message: "Player name is required."})
	} else if len(score.PlayerName) > 255 {
		errs = append(errs, domain.ValidationError{Field: "player_name", Message: "Player name may not exceed 255 characters."})
	}
	if score.Score < 0 {
		errs = append(errs, domain.ValidationError{Field: "score", Message: "Score cannot be negative."})
	}
	if score.TotalQuestions < 1 {
		errs = append(errs, domain.ValidationError{Field: "total_questions", Message: "At least 1 question must be answered."})
	}
	if score.CorrectAnswers < 0 {
		errs = append(errs, domain.ValidationError{Field: "correct_answers", Message: "Correct answers cannot be negative."})
	}
	if score.CorrectAnswers > score.TotalQuestions {
		errs = append(errs, domain.ValidationError{Field: "correct_answers", Message: "Correct answers cannot exceed total questions."})
	}
	return errs.OrNil()
}
