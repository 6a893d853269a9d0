package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"trivia-quiz/internal/app"
)

func (m Model) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.focus == focusAmount {
		if isKey {
			switch {
			case key.Matches(keyMsg, m.keys.Select):
				return m.startQuiz()
			case key.Matches(keyMsg, m.keys.Focus), key.Matches(keyMsg, m.keys.Back):
				m.amount.Blur()
				m.focus = focusCategories
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		m.setAmount(m.amount.Value())
		return m, cmd
	}

	if isKey && m.categories.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, m.keys.Select):
			return m.selectCategory()
		case key.Matches(keyMsg, m.keys.Focus):
			m.focus = focusAmount
			return m, m.amount.Focus()
		}
	}
	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

func (m Model) selectCategory() (tea.Model, tea.Cmd) {
	item, ok := m.categories.SelectedItem().(categoryItem)
	if !ok {
		return m, nil
	}
	m.categoryID = item.category.ID
	m.categoryName = item.category.Name
	m.maxQuestions = 0
	m.maxPending = true
	m.status = ""
	m.focus = focusAmount
	return m, tea.Batch(m.amount.Focus(), loadMax(m.ctx, m.port, m.categoryID))
}

func (m Model) startQuiz() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	if m.maxPending {
		m.status = "Loading the question count for " + m.categoryName + "…"
		return m, nil
	}
	amount := app.ClampAmount(m.amount.Value(), m.maxQuestions)
	if err := app.ValidateSetup(m.categoryID, amount); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.loading = true
	m.status = ""
	return m, tea.Batch(fetchQuestions(m.ctx, m.port, m.categoryID, amount), m.spinner.Tick)
}

// setAmount keeps only digits and caps the value at the category maximum once it is known.
func (m *Model) setAmount(raw string) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)
	if digits != "" && m.maxQuestions > 0 {
		digits = strconv.Itoa(app.ClampAmount(digits, m.maxQuestions))
	}
	if digits != m.amount.Value() {
		m.amount.SetValue(digits)
	}
}

func (m Model) setupView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Trivia Quiz"))
	b.WriteString("\n")

	label := "Choose a category:"
	if m.categoryName != "" {
		label += " " + hintStyle.Render(m.categoryName)
	}
	b.WriteString(labelStyle.Render(label) + "\n")
	if m.loading && len(m.categories.Items()) == 0 {
		b.WriteString(m.spinner.View() + " Loading categories…\n")
	} else {
		b.WriteString(m.categories.View() + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Number of questions:") + "\n")
	b.WriteString(m.amount.View() + "\n")
	if m.maxQuestions > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("Max available questions for the selected category: %d", m.maxQuestions)) + "\n")
	}

	if m.loading && len(m.categories.Items()) > 0 {
		b.WriteString(m.spinner.View() + " Fetching questions…\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	return b.String()
}
