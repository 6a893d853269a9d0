package domain

import (
	"html"
	"sort"
)

// Category is one trivia category offered by the question source.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryCount reports how many questions a category holds, in total and per difficulty.
type CategoryCount struct {
	CategoryID int `json:"categoryId"`
	Total      int `json:"total"`
	Easy       int `json:"easy"`
	Medium     int `json:"medium"`
	Hard       int `json:"hard"`
}

// QuestionRequest asks the source for Amount questions from one category.
type QuestionRequest struct {
	CategoryID int
	Amount     int
}

// Question models one multiple-choice trivia question as delivered by the source.
// Text fields may carry HTML entities until Decoded is called.
type Question struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Prompt           string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Decoded returns a copy with every text field entity-decoded.
func (q Question) Decoded() Question {
	incorrect := make([]string, len(q.IncorrectAnswers))
	for i, a := range q.IncorrectAnswers {
		incorrect[i] = Decode(a)
	}
	return Question{
		Category:         Decode(q.Category),
		Type:             q.Type,
		Difficulty:       q.Difficulty,
		Prompt:           Decode(q.Prompt),
		CorrectAnswer:    Decode(q.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
}

// Choices returns every answer in lexicographic order. Call it on a Decoded
// question so the choices compare equal to CorrectAnswer.
func (q Question) Choices() []string {
	choices := make([]string, 0, len(q.IncorrectAnswers)+1)
	choices = append(choices, q.IncorrectAnswers...)
	choices = append(choices, q.CorrectAnswer)
	sort.Strings(choices)
	return choices
}

// Decode converts HTML entities (named and numeric) into display text.
func Decode(s string) string {
	return html.UnescapeString(s)
}

// AnswerResult records how a single question was resolved.
type AnswerResult struct {
	Index         int    `json:"index"`
	Prompt        string `json:"prompt"`
	Given         string `json:"given"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	TimedOut      bool   `json:"timedOut"`
}

// Summary is reported once the final question of a session resolves.
type Summary struct {
	Score   int            `json:"score"`
	Total   int            `json:"total"`
	Results []AnswerResult `json:"results,omitempty"`
}
