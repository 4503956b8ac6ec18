package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCharacterNotFound is returned when a character id does not resolve.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrQuestionNotFound is returned when a trivia question id does not resolve.
	ErrQuestionNotFound = errors.New("trivia question not found")
	// ErrHighScoreNotFound is returned when a high score id does not resolve.
	ErrHighScoreNotFound = errors.New("high score not found")
	// ErrSessionNotFound is returned when a game session token is unknown or expired.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionFinished is returned when an answer is submitted after the last question.
	ErrSessionFinished = errors.New("game session already finished")
	// ErrSessionInProgress is returned when a score is saved before the last answer.
	ErrSessionInProgress = errors.New("game session still in progress")
	// ErrScoreAlreadySaved is returned when a completed session is submitted twice.
	ErrScoreAlreadySaved = errors.New("score already saved for this session")
	// ErrNotCurrentQuestion is returned when an answer targets a question other
	// than the one the session is waiting on.
	ErrNotCurrentQuestion = errors.New("answer does not target the current question")
)

// ValidationError reports a single bad input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures so callers can surface
// every problem at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns nil when no failures were collected.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var single ValidationError
	var multi ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCharacterNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrHighScoreNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}
