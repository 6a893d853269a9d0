package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodedDecodesEveryTextField(t *testing.T) {
	q := Question{
		Category:         "Entertainment: Film &amp; TV",
		Prompt:           "Where is the &quot;Caf&eacute;&quot;?",
		CorrectAnswer:    "Caf&eacute;",
		IncorrectAnswers: []string{"Bar &amp; Grill", "&#039;Diner&#039;"},
	}

	got := q.Decoded()
	if got.Prompt != `Where is the "Café"?` {
		t.Fatalf("unexpected prompt %q", got.Prompt)
	}
	if got.CorrectAnswer != "Café" {
		t.Fatalf("unexpected correct answer %q", got.CorrectAnswer)
	}
	if got.Category != "Entertainment: Film & TV" {
		t.Fatalf("unexpected category %q", got.Category)
	}
	want := []string{"Bar & Grill", "'Diner'"}
	if !reflect.DeepEqual(got.IncorrectAnswers, want) {
		t.Fatalf("expected %v, got %v", want, got.IncorrectAnswers)
	}
	if q.IncorrectAnswers[0] != "Bar &amp; Grill" {
		t.Fatalf("original question was mutated: %v", q.IncorrectAnswers)
	}
}

func TestChoicesOfDecodedQuestionAreSorted(t *testing.T) {
	q := Question{
		CorrectAnswer:    "4",
		IncorrectAnswers: []string{"5", "3", "&lt;2"},
	}
	want := []string{"3", "4", "5", "<2"}
	if got := q.Decoded().Choices(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestChoicesDoNotDecodeTwice(t *testing.T) {
	q := Question{
		CorrectAnswer:    "&amp;lt;",
		IncorrectAnswers: []string{"b"},
	}.Decoded()
	choices := q.Choices()
	found := false
	for _, c := range choices {
		if c == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q among choices %v", q.CorrectAnswer, choices)
	}
}

func TestDecodeLeavesPlainTextAlone(t *testing.T) {
	if got := Decode("Café"); got != "Café" {
		t.Fatalf("expected plain text unchanged, got %q", got)
	}
}

func TestValidationErrorsShareParent(t *testing.T) {
	for _, err := range []error{ErrNoCategory, ErrInvalidAmount} {
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected %v to wrap ErrValidation", err)
		}
	}
	if errors.Is(ErrNoCategory, ErrInvalidAmount) {
		t.Fatalf("validation errors must stay distinguishable")
	}
}
