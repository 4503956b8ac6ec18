package app

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mushroom-trivia/internal/domain"
)

// DefaultPoolSize is how many questions a session draws when the config
// does not say otherwise.
const DefaultPoolSize = 10

// PointsPerCorrect is awarded for every correct answer, regardless of difficulty.
const PointsPerCorrect = 10

// SessionState tracks where a player is in the start -> answer -> save flow.
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionCompleted  SessionState = "completed"
	SessionSubmitted  SessionState = "submitted"
)

// Session is the server-held ledger for one player's run through a batch.
// It is never persisted to the record store; only the final tally becomes
// a HighScore.
type Session struct {
	Token        string                  `json:"token"`
	Questions    []domain.TriviaQuestion `json:"questions"`
	CurrentIndex int                     `json:"current_index"`
	Score        int                     `json:"score"`
	CorrectCount int                     `json:"correct_count"`
	State        SessionState            `json:"state"`
	StartedAt    time.Time               `json:"started_at"`
}

// StartResult is what a player gets back from starting a session. When the
// question bank is empty, NoQuestions is set instead of an error: the client
// shows an explanatory message rather than a failure.
type StartResult struct {
	Token       string                  `json:"token,omitempty"`
	Questions   []domain.PublicQuestion `json:"questions"`
	NoQuestions bool                    `json:"no_questions,omitempty"`
}

// Progress reports the session tally after an answer.
type Progress struct {
	CurrentIndex int          `json:"current_index"`
	Total        int          `json:"total"`
	Score        int          `json:"score"`
	CorrectCount int          `json:"correct_count"`
	State        SessionState `json:"state"`
}

// GameService drives the trivia gameplay flow: batch selection, answer
// verification and score submission.
type GameService struct {
	source   QuestionSource
	sessions SessionStore
	scores   HighScoreRepository
	poolSize int
	now      func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameService(source QuestionSource, sessions SessionStore, scores HighScoreRepository, poolSize int) *GameService {
	return NewGameServiceWithClock(source, sessions, scores, poolSize, time.Now)
}

// NewGameServiceWithClock allows deterministic timestamps in tests.
func NewGameServiceWithClock(source QuestionSource, sessions SessionStore, scores HighScoreRepository, poolSize int, now func() time.Time) *GameService {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &GameService{
		source:   source,
		sessions: sessions,
		scores:   scores,
		poolSize: poolSize,
		now:      now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartSession draws a randomized batch without replacement and opens a new
// session for it. A bank smaller than the pool size yields the whole bank;
// an empty bank yields a NoQuestions result, not an error.
func (g *GameService) StartSession(ctx context.Context) (StartResult, error) {
	bank, err := g.source.Questions(ctx)
	if err != nil {
		return StartResult{}, err
	}
	if len(bank) == 0 {
		return StartResult{Questions: []domain.PublicQuestion{}, NoQuestions: true}, nil
	}

	batch := g.selectBatch(bank)
	session := &Session{
		Token:     uuid.NewString(),
		Questions: batch,
		State:     SessionInProgress,
		StartedAt: g.now(),
	}
	if err := g.sessions.Save(ctx, session); err != nil {
		return StartResult{}, err
	}

	public := make([]domain.PublicQuestion, 0, len(batch))
	for _, q := range batch {
		public = append(public, q.Public())
	}
	return StartResult{Token: session.Token, Questions: public}, nil
}

func (g *GameService) selectBatch(bank []domain.TriviaQuestion) []domain.TriviaQuestion {
	shuffled := make([]domain.TriviaQuestion, len(bank))
	copy(shuffled, bank)

	g.mu.Lock()
	g.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	g.mu.Unlock()

	if len(shuffled) > g.poolSize {
		shuffled = shuffled[:g.poolSize]
	}
	return shuffled
}

// AnswerCurrent verifies the player's choice for the session's current
// question and advances the tally by exactly one question, correct or not.
func (g *GameService) AnswerCurrent(ctx context.Context, token string, questionID int64, answerIndex int) (domain.Verdict, Progress, error) {
	if answerIndex < 0 {
		return domain.Verdict{}, Progress{}, domain.ValidationError{Field: "answer_index", Message: "Answer index cannot be negative."}
	}

	session, err := g.sessions.Get(ctx, token)
	if err != nil {
		return domain.Verdict{}, Progress{}, err
	}
	if session.State != SessionInProgress {
		return domain.Verdict{}, Progress{}, domain.ErrSessionFinished
	}

	current := session.Questions[session.CurrentIndex]
	if current.ID != questionID {
		return domain.Verdict{}, Progress{}, domain.ErrNotCurrentQuestion
	}

	verdict := domain.Verdict{
		QuestionText:  current.Question,
		IsCorrect:     answerIndex == current.CorrectAnswerIndex,
		CorrectIndex:  current.CorrectAnswerIndex,
		CorrectAnswer: current.CorrectAnswer(),
	}

	if verdict.IsCorrect {
		session.Score += PointsPerCorrect
		session.CorrectCount++
	}
	session.CurrentIndex++
	if session.CurrentIndex == len(session.Questions) {
		session.State = SessionCompleted
	}

	if err := g.sessions.Save(ctx, session); err != nil {
		return domain.Verdict{}, Progress{}, err
	}
	return verdict, g.progress(session), nil
}

// SaveScore turns a completed session's tally into one HighScore record.
// Saving is optional; a session that is never saved simply expires.
func (g *GameService) SaveScore(ctx context.Context, token, playerName string) (domain.HighScore, error) {
	session, err := g.sessions.Get(ctx, token)
	if err != nil {
		return domain.HighScore{}, err
	}
	switch session.State {
	case SessionInProgress:
		return domain.HighScore{}, domain.ErrSessionInProgress
	case SessionSubmitted:
		return domain.HighScore{}, domain.ErrScoreAlreadySaved
	}

	score := domain.HighScore{
		PlayerName:     strings.TrimSpace(playerName),
		Score:          session.Score,
		TotalQuestions: len(session.Questions),
		CorrectAnswers: session.CorrectCount,
	}
	if err := ValidateHighScore(score); err != nil {
		return domain.HighScore{}, err
	}
	if err := g.scores.Create(ctx, &score); err != nil {
		return domain.HighScore{}, err
	}

	session.State = SessionSubmitted
	if err := g.sessions.Save(ctx, session); err != nil {
		return domain.HighScore{}, err
	}
	return score, nil
}

// Abandon discards a session's state unconditionally. Unknown tokens are fine:
// restarting must always succeed.
func (g *GameService) Abandon(ctx context.Context, token string) error {
	return g.sessions.Delete(ctx, token)
}

// Verify checks a submitted answer against the bank without touching any
// session. This is the stateless path kept for clients that hold their own
// tally; the answer key is only revealed in the returned verdict.
func (g *GameService) Verify(ctx context.Context, questionID int64, answerIndex int) (domain.Verdict, error) {
	if answerIndex < 0 {
		return domain.Verdict{}, domain.ValidationError{Field: "answer_index", Message: "Answer index cannot be negative."}
	}

	bank, err := g.source.Questions(ctx)
	if err != nil {
		return domain.Verdict{}, err
	}
	for _, q := range bank {
		if q.ID != questionID {
			continue
		}
		return domain.Verdict{
			QuestionText:  q.Question,
			IsCorrect:     answerIndex == q.CorrectAnswerIndex,
			CorrectIndex:  q.CorrectAnswerIndex,
			CorrectAnswer: q.CorrectAnswer(),
		}, nil
	}
	return domain.Verdict{}, domain.ErrQuestionNotFound
}

func (g *GameService) progress(session *Session) Progress {
	return Progress{
		CurrentIndex: session.CurrentIndex,
		Total:        len(session.Questions),
		Score:        session.Score,
		CorrectCount: session.CorrectCount,
		State:        session.State,
	}
}
