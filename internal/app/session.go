package app

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trivia-quiz/internal/domain"
)

// QuestionSeconds is the countdown every question starts with.
const QuestionSeconds = 10

// Outcome describes what a SubmitAnswer or Tick call did to the session.
type Outcome struct {
	// Applied is false when the call hit an inactive session and changed nothing.
	Applied bool
	// Correct and TimedOut are only meaningful when a question was resolved.
	Correct  bool
	TimedOut bool
	// Advanced is set whenever the current question was resolved; the caller's
	// countdown for that question must be torn down.
	Advanced bool
	// Finished is set when the final question resolved. Summary is filled in.
	Finished bool
	Summary  domain.Summary
	Result   domain.AnswerResult
}

// Session is the state of one quiz attempt. It is not safe for concurrent use;
// a single UI loop owns it.
type Session struct {
	id        string
	questions []domain.Question
	index     int
	score     int
	remaining int
	active    bool
	results   []domain.AnswerResult
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{remaining: QuestionSeconds}
}

// Start begins a new attempt over questions, discarding any previous state.
// An empty question list leaves the session idle.
func (s *Session) Start(questions []domain.Question) {
	s.reset()
	if len(questions) == 0 {
		return
	}
	decoded := make([]domain.Question, len(questions))
	for i, q := range questions {
		decoded[i] = q.Decoded()
	}
	s.id = uuid.NewString()
	s.questions = decoded
	s.results = make([]domain.AnswerResult, 0, len(decoded))
	s.active = true
	log.Info().Str("session", s.id).Int("questions", len(decoded)).Msg("quiz started")
}

// SubmitAnswer resolves the current question with answer. An empty answer never matches.
func (s *Session) SubmitAnswer(answer string) Outcome {
	return s.resolve(answer, false)
}

// Tick advances the countdown by one second. When the display reads 1 the
// question times out as an empty answer instead of reaching 0.
func (s *Session) Tick() Outcome {
	if !s.active {
		return Outcome{}
	}
	if s.remaining == 1 {
		return s.resolve("", true)
	}
	s.remaining--
	return Outcome{Applied: true}
}

func (s *Session) resolve(answer string, timedOut bool) Outcome {
	if !s.active {
		return Outcome{}
	}
	q := s.questions[s.index]
	correct := answer != "" && answer == q.CorrectAnswer
	if correct {
		s.score++
	}
	result := domain.AnswerResult{
		Index:         s.index,
		Prompt:        q.Prompt,
		Given:         answer,
		CorrectAnswer: q.CorrectAnswer,
		Correct:       correct,
		TimedOut:      timedOut,
	}
	s.results = append(s.results, result)
	out := Outcome{
		Applied:  true,
		Correct:  correct,
		TimedOut: timedOut,
		Advanced: true,
		Result:   result,
	}

	if s.index == len(s.questions)-1 {
		out.Finished = true
		out.Summary = domain.Summary{
			Score:   s.score,
			Total:   len(s.questions),
			Results: s.results,
		}
		log.Info().Str("session", s.id).Int("score", s.score).Int("total", len(s.questions)).Msg("quiz finished")
		s.reset()
		return out
	}

	s.index++
	s.remaining = QuestionSeconds
	return out
}

// Abort drops the running attempt without a summary.
func (s *Session) Abort() {
	if s.active {
		log.Info().Str("session", s.id).Int("index", s.index).Msg("quiz abandoned")
	}
	s.reset()
}

func (s *Session) reset() {
	s.id = ""
	s.questions = nil
	s.results = nil
	s.index = 0
	s.score = 0
	s.remaining = QuestionSeconds
	s.active = false
}

// ID identifies the running attempt; empty while idle.
func (s *Session) ID() string { return s.id }

// Active reports whether a quiz is in progress.
func (s *Session) Active() bool { return s.active }

// Index is the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total is the number of questions in the running attempt, 0 while idle.
func (s *Session) Total() int { return len(s.questions) }

// Score is the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Remaining is the countdown for the current question in seconds.
func (s *Session) Remaining() int { return s.remaining }

// Current returns the decoded current question.
func (s *Session) Current() (domain.Question, bool) {
	if !s.active {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

// Choices returns the sorted answers for the current question.
func (s *Session) Choices() []string {
	q, ok := s.Current()
	if !ok {
		return nil
	}
	return q.Choices()
}
