package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// QuizPort is the slice of app.QuizService the console runner needs.
type QuizPort interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	MaxQuestions(ctx context.Context, categoryID int) (int, error)
	FetchQuestions(ctx context.Context, categoryID, amount int) ([]domain.Question, error)
}

// TickerFunc starts a recurring tick and returns its channel plus a stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// errInputClosed ends a run when stdin reaches EOF.
var errInputClosed = errors.New("input closed")

// Runner plays quizzes over a line-oriented terminal.
type Runner struct {
	port          QuizPort
	in            io.Reader
	out           io.Writer
	defaultAmount int
	interval      time.Duration
	newTicker     TickerFunc

	session *app.Session
	lines   chan string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithTicker replaces the countdown clock.
func WithTicker(fn TickerFunc) Option {
	return func(r *Runner) { r.newTicker = fn }
}

// WithInterval sets the length of one countdown second.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) { r.interval = d }
}

// WithDefaultAmount sets the question count used when the prompt is left empty.
func WithDefaultAmount(n int) Option {
	return func(r *Runner) { r.defaultAmount = n }
}

func NewRunner(port QuizPort, in io.Reader, out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		port:          port,
		in:            in,
		out:           out,
		defaultAmount: 5,
		interval:      time.Second,
		newTicker:     realTicker,
		session:       app.NewSession(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops setup, quiz and summary until the input ends, the user declines
// another round or ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	r.lines = make(chan string)
	go r.readLines(ctx)

	categories, err := r.port.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	for {
		err := r.round(ctx, categories)
		switch {
		case errors.Is(err, errInputClosed), errors.Is(err, context.Canceled):
			r.session.Abort()
			return nil
		case err != nil:
			return err
		}
		again, err := r.ask(ctx, "Play again? [y/N]: ")
		if err != nil || !strings.HasPrefix(strings.ToLower(again), "y") {
			return nil
		}
	}
}

// readLines is the only reader of r.in; it never touches quiz state.
func (r *Runner) readLines(ctx context.Context) {
	defer close(r.lines)
	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		select {
		case r.lines <- strings.TrimSpace(scanner.Text()):
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) round(ctx context.Context, categories []domain.Category) error {
	questions, err := r.setup(ctx, categories)
	if err != nil {
		return err
	}
	r.session.Start(questions)
	if !r.session.Active() {
		r.printf("Could not fetch questions: %v\n", domain.ErrNoResults)
		return nil
	}
	summary, err := r.play(ctx)
	if err != nil {
		return err
	}
	r.printSummary(summary)
	return nil
}

// setup asks for a category and a question count until a fetch succeeds.
func (r *Runner) setup(ctx context.Context, categories []domain.Category) ([]domain.Question, error) {
	r.printf("Trivia Quiz\n\n")
	for _, c := range categories {
		r.printf("%4d  %s\n", c.ID, c.Name)
	}

	for {
		raw, err := r.ask(ctx, "\nCategory id: ")
		if err != nil {
			return nil, err
		}
		categoryID := categoryByID(categories, raw)

		max := 0
		if categoryID > 0 {
			if max, err = r.port.MaxQuestions(ctx, categoryID); err != nil {
				r.printf("Could not load question count: %v\n", err)
				continue
			}
			r.printf("Max available questions for the selected category: %d\n", max)
		}

		amount := r.defaultAmount
		if categoryID > 0 {
			if max > 0 {
				amount = min(amount, max)
			}
			raw, err = r.ask(ctx, fmt.Sprintf("Number of questions [%d]: ", amount))
			if err != nil {
				return nil, err
			}
			if raw != "" {
				amount = app.ClampAmount(raw, max)
			}
		}

		if err := app.ValidateSetup(categoryID, amount); err != nil {
			r.printf("%v\n", err)
			continue
		}
		questions, err := r.port.FetchQuestions(ctx, categoryID, amount)
		if err != nil {
			r.printf("Could not fetch questions: %v\n", err)
			continue
		}
		return questions, nil
	}
}

// play drives the session. The select loop is the only mutator; each question
// gets its own ticker, stopped as soon as the question resolves.
func (r *Runner) play(ctx context.Context) (domain.Summary, error) {
	for {
		r.printQuestion()
		ticks, stop := r.newTicker(r.interval)

		out, err := r.awaitResolution(ctx, ticks)
		stop()
		if err != nil {
			return domain.Summary{}, err
		}
		r.printFeedback(out.Result)
		if out.Finished {
			return out.Summary, nil
		}
	}
}

func (r *Runner) awaitResolution(ctx context.Context, ticks <-chan time.Time) (app.Outcome, error) {
	for {
		select {
		case <-ctx.Done():
			return app.Outcome{}, ctx.Err()

		case <-ticks:
			out := r.session.Tick()
			if out.Advanced {
				return out, nil
			}
			if remaining := r.session.Remaining(); remaining <= 3 {
				r.printf("Time left: %ds\n", remaining)
			}

		case line, ok := <-r.lines:
			if !ok {
				return app.Outcome{}, errInputClosed
			}
			choices := r.session.Choices()
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(choices) {
				r.printf("Enter a number between 1 and %d.\n", len(choices))
				continue
			}
			log.Debug().Str("session", r.session.ID()).Int("choice", n).Msg("answer submitted")
			return r.session.SubmitAnswer(choices[n-1]), nil
		}
	}
}

func (r *Runner) ask(ctx context.Context, prompt string) (string, error) {
	r.printf("%s", prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", errInputClosed
		}
		return line, nil
	}
}

func (r *Runner) printQuestion() {
	q, _ := r.session.Current()
	r.printf("\nQuestion %d/%d  Time left: %ds  Score: %d\n", r.session.Index()+1, r.session.Total(), r.session.Remaining(), r.session.Score())
	if q.Category != "" {
		r.printf("%s · %s\n", q.Category, q.Difficulty)
	}
	r.printf("%s\n", q.Prompt)
	for i, choice := range r.session.Choices() {
		r.printf("  %d. %s\n", i+1, choice)
	}
}

func (r *Runner) printFeedback(result domain.AnswerResult) {
	switch {
	case result.Correct:
		r.printf("Correct!\n")
	case result.TimedOut:
		r.printf("Time's up! The answer was %s.\n", result.CorrectAnswer)
	default:
		r.printf("Wrong. The answer was %s.\n", result.CorrectAnswer)
	}
}

func (r *Runner) printSummary(summary domain.Summary) {
	r.printf("\nQuiz complete! Score: %d/%d\n", summary.Score, summary.Total)
	for _, res := range summary.Results {
		mark := "✓"
		if !res.Correct {
			mark = "✗"
		}
		r.printf("%s %d. %s\n", mark, res.Index+1, res.Prompt)
	}
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// categoryByID returns the id typed by the user when it names a listed category, else 0.
func categoryByID(categories []domain.Category, raw string) int {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	for _, c := range categories {
		if c.ID == id {
			return id
		}
	}
	return 0
}
