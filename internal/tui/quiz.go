package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

func (m Model) onTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.screen != screenQuiz {
		return m, nil
	}
	out := m.session.Tick()
	if !out.Applied {
		return m, nil
	}
	if out.Advanced {
		return m.afterResolve(out)
	}
	return m, tick(m.gen, m.interval)
}

func (m Model) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	choices := m.session.Choices()
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(choices) {
			return m.answer(choices[m.cursor])
		}
	case key.Matches(keyMsg, m.keys.Back):
		m.stopCountdown()
		m.session.Abort()
		m.screen = screenSetup
		m.status = "Quiz abandoned."
	default:
		if n, err := strconv.Atoi(keyMsg.String()); err == nil && n >= 1 && n <= len(choices) {
			return m.answer(choices[n-1])
		}
	}
	return m, nil
}

func (m Model) answer(choice string) (tea.Model, tea.Cmd) {
	out := m.session.SubmitAnswer(choice)
	if !out.Applied {
		return m, nil
	}
	return m.afterResolve(out)
}

// afterResolve tears down the countdown of the resolved question and either
// starts the next one or shows the summary.
func (m Model) afterResolve(out app.Outcome) (tea.Model, tea.Cmd) {
	m.feedback = feedbackFor(out.Result)
	m.cursor = 0
	if out.Finished {
		m.stopCountdown()
		m.summary = out.Summary
		m.screen = screenSummary
		return m, nil
	}
	return m, m.restartCountdown()
}

func (m Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, m.keys.Select) || key.Matches(keyMsg, m.keys.Back) {
		m.screen = screenSetup
		m.summary = domain.Summary{}
		m.feedback = ""
	}
	return m, nil
}

func feedbackFor(result domain.AnswerResult) string {
	switch {
	case result.Correct:
		return goodStyle.Render("Correct!")
	case result.TimedOut:
		return warnStyle.Render("Time's up! The answer was " + result.CorrectAnswer + ".")
	default:
		return errorStyle.Render("Wrong. The answer was " + result.CorrectAnswer + ".")
	}
}

func (m Model) quizView() string {
	q, ok := m.session.Current()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Question %d/%d", m.session.Index()+1, m.session.Total())))
	b.WriteString("\n")
	b.WriteString(timerStyle.Render(fmt.Sprintf("Time left: %ds", m.session.Remaining())))
	b.WriteString("  " + hintStyle.Render(fmt.Sprintf("Score: %d", m.session.Score())) + "\n")
	if q.Category != "" {
		b.WriteString(hintStyle.Render(q.Category+" · "+q.Difficulty) + "\n")
	}
	b.WriteString(questionStyle.Render(q.Prompt) + "\n")

	for i, choice := range m.session.Choices() {
		style := choiceStyle
		if i == m.cursor {
			style = selectedChoiceStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%d. %s", i+1, choice)) + "\n")
	}
	if m.feedback != "" {
		b.WriteString("\n" + m.feedback + "\n")
	}
	return b.String()
}

func (m Model) summaryView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Quiz complete!"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Score: %d/%d", m.summary.Score, m.summary.Total)) + "\n\n")
	for _, r := range m.summary.Results {
		mark := goodStyle.Render("✓")
		if !r.Correct {
			mark = errorStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, r.Index+1, r.Prompt))
		if !r.Correct {
			given := r.Given
			if r.TimedOut {
				given = "(no answer)"
			}
			b.WriteString(hintStyle.Render(fmt.Sprintf("   you: %s, answer: %s", given, r.CorrectAnswer)) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("Press enter to play again."))
	return b.String()
}
