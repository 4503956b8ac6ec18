package domain

import (
	"math"
	"time"
)

// Difficulty labels a question for display. It never affects scoring.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether s is one of the known difficulty labels.
func ValidDifficulty(s string) bool {
	return s == DifficultyEasy || s == DifficultyMedium || s == DifficultyHard
}

// Character is a playable or non-playable figure managed through the admin screens.
type Character struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TriviaQuestion is a multiple-choice question with exactly one correct option.
// CorrectAnswerIndex is never serialized toward gameplay clients; handlers
// expose PublicQuestion instead.
type TriviaQuestion struct {
	ID                 int64     `json:"id"`
	Question           string    `json:"question"`
	Options            []string  `json:"options"`
	CorrectAnswerIndex int       `json:"correct_answer_index"`
	Difficulty         string    `json:"difficulty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CorrectAnswer returns the text of the correct option, or "" when the
// stored index is out of range.
func (q TriviaQuestion) CorrectAnswer() string {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswerIndex]
}

// PublicQuestion is the answer-key-free view of a question sent to players.
type PublicQuestion struct {
	ID         int64    `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// Public strips the correct answer index from a question.
func (q TriviaQuestion) Public() PublicQuestion {
	return PublicQuestion{
		ID:         q.ID,
		Question:   q.Question,
		Options:    q.Options,
		Difficulty: q.Difficulty,
	}
}

// HighScore is one completed game session. Records are immutable once created.
type HighScore struct {
	ID             int64     `json:"id"`
	PlayerName     string    `json:"player_name"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	CreatedAt      time.Time `json:"created_at"`
}

// Accuracy returns the correct-answer percentage rounded to two decimals,
// or 0 when no questions were attempted.
func (h HighScore) Accuracy() float64 {
	if h.TotalQuestions == 0 {
		return 0
	}
	ratio := float64(h.CorrectAnswers) / float64(h.TotalQuestions) * 100
	return math.Round(ratio*100) / 100
}

// Verdict is the outcome of checking a single submitted answer.
type Verdict struct {
	QuestionText  string `json:"question"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectIndex  int    `json:"correct_answer_index"`
	CorrectAnswer string `json:"correct_answer"`
}
