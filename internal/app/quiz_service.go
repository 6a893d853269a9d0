package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"trivia-quiz/internal/domain"
)

// TriviaSource abstracts where categories and questions come from (HTTP API, cache, etc).
type TriviaSource interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	QuestionCount(ctx context.Context, categoryID int) (domain.CategoryCount, error)
	Questions(ctx context.Context, req domain.QuestionRequest) ([]domain.Question, error)
}

// QuizService contains the setup and start use cases around a Session.
type QuizService struct {
	source TriviaSource
}

func NewQuizService(source TriviaSource) *QuizService {
	return &QuizService{source: source}
}

// Categories lists the categories a quiz can be drawn from.
func (s *QuizService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.source.Categories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("fetch categories")
		return nil, err
	}
	return categories, nil
}

// CategoryCount returns the per-difficulty question counts of a category.
func (s *QuizService) CategoryCount(ctx context.Context, categoryID int) (domain.CategoryCount, error) {
	if categoryID <= 0 {
		return domain.CategoryCount{}, domain.ErrNoCategory
	}
	count, err := s.source.QuestionCount(ctx, categoryID)
	if err != nil {
		log.Error().Err(err).Int("category", categoryID).Msg("fetch question count")
		return domain.CategoryCount{}, err
	}
	return count, nil
}

// MaxQuestions returns the upper bound for the question count of a category.
func (s *QuizService) MaxQuestions(ctx context.Context, categoryID int) (int, error) {
	count, err := s.CategoryCount(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	return count.Total, nil
}

// StartQuiz validates the setup, fetches questions and starts session on success.
// On any failure the session is left untouched.
func (s *QuizService) StartQuiz(ctx context.Context, categoryID, amount int, session *Session) error {
	questions, err := s.FetchQuestions(ctx, categoryID, amount)
	if err != nil {
		return err
	}
	session.Start(questions)
	return nil
}

// FetchQuestions validates the setup and returns a non-empty question set.
// UI loops use it from a background command and call Session.Start themselves.
func (s *QuizService) FetchQuestions(ctx context.Context, categoryID, amount int) ([]domain.Question, error) {
	if err := ValidateSetup(categoryID, amount); err != nil {
		return nil, err
	}
	questions, err := s.source.Questions(ctx, domain.QuestionRequest{CategoryID: categoryID, Amount: amount})
	if err != nil {
		log.Error().Err(err).Int("category", categoryID).Int("amount", amount).Msg("fetch questions")
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, domain.ErrNoResults)
	}
	return questions, nil
}

// ValidateSetup checks the caller-side preconditions of a quiz start.
func ValidateSetup(categoryID, amount int) error {
	if categoryID <= 0 {
		return domain.ErrNoCategory
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

// ClampAmount parses a user-entered question count. Non-numeric input yields 0;
// a positive max caps the result.
func ClampAmount(raw string, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
