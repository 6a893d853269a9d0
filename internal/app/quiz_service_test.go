package app_test

import (
	"context"
	"errors"
	"testing"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func TestStartQuizStartsSession(t *testing.T) {
	ctx := context.Background()
	service := newTestService()
	session := app.NewSession()

	if err := service.StartQuiz(ctx, 9, 2, session); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !session.Active() || session.Total() != 2 {
		t.Fatalf("expected active session with 2 questions, got active=%v total=%d", session.Active(), session.Total())
	}
	q, _ := session.Current()
	if q.Prompt != `What is "2 + 2"?` {
		t.Fatalf("expected decoded prompt, got %q", q.Prompt)
	}
}

func TestStartQuizValidation(t *testing.T) {
	ctx := context.Background()
	service := newTestService()
	session := app.NewSession()

	if err := service.StartQuiz(ctx, 0, 5, session); !errors.Is(err, domain.ErrNoCategory) {
		t.Fatalf("expected no category error, got %v", err)
	}
	if err := service.StartQuiz(ctx, 9, 0, session); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if session.Active() {
		t.Fatalf("validation failure must not start a session")
	}
}

func TestStartQuizSourceUnavailable(t *testing.T) {
	ctx := context.Background()
	service := newTestService()
	session := app.NewSession()

	err := service.StartQuiz(ctx, 99, 1, session)
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected source unavailable, got %v", err)
	}
	if session.Active() {
		t.Fatalf("failed fetch must not start a session")
	}
}

func TestMaxQuestions(t *testing.T) {
	service := newTestService()
	max, err := service.MaxQuestions(context.Background(), 9)
	if err != nil {
		t.Fatalf("max questions: %v", err)
	}
	if max != 2 {
		t.Fatalf("expected 2, got %d", max)
	}
}

func TestClampAmount(t *testing.T) {
	cases := []struct {
		raw  string
		max  int
		want int
	}{
		{"5", 10, 5},
		{"50", 10, 10},
		{"50", 0, 50},
		{"abc", 10, 0},
		{"", 10, 0},
		{" 3 ", 10, 3},
		{"-2", 10, -2},
	}
	for _, tc := range cases {
		if got := app.ClampAmount(tc.raw, tc.max); got != tc.want {
			t.Fatalf("ClampAmount(%q, %d) = %d, want %d", tc.raw, tc.max, got, tc.want)
		}
	}
}

func newTestService() *app.QuizService {
	source := memory.NewStaticSource([]domain.Category{{ID: 9, Name: "General Knowledge"}}, map[int][]domain.Question{
		9: {
			{Prompt: "What is &quot;2 + 2&quot;?", CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5"}},
			{Prompt: "Largest planet?", CorrectAnswer: "Jupiter", IncorrectAnswers: []string{"Mars"}},
		},
	})
	return app.NewQuizService(source)
}

func TestCategoryCount(t *testing.T) {
	service := newTestService()
	count, err := service.CategoryCount(context.Background(), 9)
	if err != nil {
		t.Fatalf("category count: %v", err)
	}
	if count.CategoryID != 9 || count.Total != 2 {
		t.Fatalf("unexpected count %+v", count)
	}
	if _, err := service.CategoryCount(context.Background(), 0); !errors.Is(err, domain.ErrNoCategory) {
		t.Fatalf("expected no category error, got %v", err)
	}
}
