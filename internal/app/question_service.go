package app

import (
	"context"
	"fmt"
	"strings"

	"mushroom-trivia/internal/domain"
)

const questionsPerPage = 15

const (
	minOptions = 2
	maxOptions = 6
)

// QuestionInput carries the admin-submitted fields for a trivia question.
type QuestionInput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Difficulty         string   `json:"difficulty"`
}

// QuestionService exposes the admin CRUD for trivia questions. Everything
// here is admin surface: responses may include the correct answer index.
type QuestionService struct {
	questions QuestionRepository
}

func NewQuestionService(questions QuestionRepository) *QuestionService {
	return &QuestionService{questions: questions}
}

// List returns one newest-first page of questions.
func (s *QuestionService) List(ctx context.Context, page int) (Page[domain.TriviaQuestion], error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.questions.List(ctx, (page-1)*questionsPerPage, questionsPerPage)
	if err != nil {
		return Page[domain.TriviaQuestion]{}, err
	}
	return Page[domain.TriviaQuestion]{Items: items, Page: page, PerPage: questionsPerPage, Total: total}, nil
}

func (s *QuestionService) Get(ctx context.Context, id int64) (domain.TriviaQuestion, error) {
	return s.questions.Get(ctx, id)
}

func (s *QuestionService) Count(ctx context.Context) (int, error) {
	return s.questions.Count(ctx)
}

func (s *QuestionService) Create(ctx context.Context, input QuestionInput) (domain.TriviaQuestion, error) {
	if err := ValidateQuestion(input); err != nil {
		return domain.TriviaQuestion{}, err
	}
	question := questionFromInput(input)
	if err := s.questions.Create(ctx, &question); err != nil {
		return domain.TriviaQuestion{}, err
	}
	return question, nil
}

func (s *QuestionService) Update(ctx context.Context, id int64, input QuestionInput) (domain.TriviaQuestion, error) {
	if err := ValidateQuestion(input); err != nil {
		return domain.TriviaQuestion{}, err
	}
	question, err := s.questions.Get(ctx, id)
	if err != nil {
		return domain.TriviaQuestion{}, err
	}
	updated := questionFromInput(input)
	updated.ID = question.ID
	updated.CreatedAt = question.CreatedAt
	if err := s.questions.Update(ctx, &updated); err != nil {
		return domain.TriviaQuestion{}, err
	}
	return updated, nil
}

func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	return s.questions.Delete(ctx, id)
}

func questionFromInput(input QuestionInput) domain.TriviaQuestion {
	options := make([]string, 0, len(input.Options))
	for _, opt := range input.Options {
		options = append(options, strings.TrimSpace(opt))
	}
	return domain.TriviaQuestion{
		Question:           strings.TrimSpace(input.Question),
		Options:            options,
		CorrectAnswerIndex: input.CorrectAnswerIndex,
		Difficulty:         input.Difficulty,
	}
}

// ValidateQuestion enforces the question invariants: 2-6 non-empty options
// and a correct answer index inside the options sequence.
func ValidateQuestion(input QuestionInput) error {
	var errs domain.ValidationErrors
	if strings.TrimSpace(input.Question) == "" {
		errs = append(errs, domain.ValidationError{Field: "question", Message: "Question text is required."})
	}
	switch {
	case len(input.Options) < minOptions:
		errs = append(errs, domain.ValidationError{Field: "options", Message: "At least 2 answer options are required."})
	case len(input.Options) > maxOptions:
		errs = append(errs, domain.ValidationError{Field: "options", Message: "Maximum 6 answer options allowed."})
	}
	for i, opt := range input.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, domain.ValidationError{
				Field:   fmt.Sprintf("options.%d", i),
				Message: "All answer options must be filled.",
			})
		}
	}
	if input.CorrectAnswerIndex < 0 || input.CorrectAnswerIndex >= len(input.Options) {
		errs = append(errs, domain.ValidationError{Field: "correct_answer_index", Message: "Correct answer index must point at one of the options."})
	}
	if !domain.ValidDifficulty(input.Difficulty) {
		errs = append(errs, domain.ValidationError{Field: "difficulty", Message: "Difficulty must be easy, medium, or hard."})
	}
	return errs.OrNil()
}
