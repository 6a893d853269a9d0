package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// QuizPort is the slice of app.QuizService the terminal UI needs.
type QuizPort interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	MaxQuestions(ctx context.Context, categoryID int) (int, error)
	FetchQuestions(ctx context.Context, categoryID, amount int) ([]domain.Question, error)
}

type screen int

const (
	screenSetup screen = iota
	screenQuiz
	screenSummary
)

type focus int

const (
	focusCategories focus = iota
	focusAmount
)

type categoriesLoadedMsg struct {
	categories []domain.Category
	err        error
}

type maxLoadedMsg struct {
	categoryID int
	max        int
	err        error
}

type questionsLoadedMsg struct {
	questions []domain.Question
	err       error
}

// tickMsg is one countdown second. Only the tick matching the model's current
// generation is live; every question transition bumps the generation.
type tickMsg struct {
	gen int
}

type categoryItem struct {
	category domain.Category
}

func (i categoryItem) Title() string       { return i.category.Name }
func (i categoryItem) Description() string { return fmt.Sprintf("category #%d", i.category.ID) }
func (i categoryItem) FilterValue() string { return i.category.Name }

// Options configures the terminal UI.
type Options struct {
	DefaultAmount int
	TickInterval  time.Duration
}

// Model is the root Bubble Tea model: setup form, quiz view and summary.
type Model struct {
	ctx     context.Context
	port    QuizPort
	session *app.Session

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	screen       screen
	focus        focus
	categories   list.Model
	amount       textinput.Model
	categoryID   int
	categoryName string
	maxQuestions int
	maxPending   bool
	loading      bool
	status       string

	cursor   int
	gen      int
	interval time.Duration
	feedback string
	summary  domain.Summary
}

func NewModel(ctx context.Context, port QuizPort, opts Options) Model {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	amount := opts.DefaultAmount
	if amount <= 0 {
		amount = 5
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(accent).BorderForeground(accent)

	l := list.New(nil, delegate, 48, 12)
	l.Title = "Categories"
	l.Styles.Title = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "5"
	ti.CharLimit = 5
	ti.Width = 8
	ti.SetValue(strconv.Itoa(amount))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	return Model{
		ctx:        ctx,
		port:       port,
		session:    app.NewSession(),
		keys:       defaultKeys(),
		help:       help.New(),
		spinner:    sp,
		categories: l,
		amount:     ti,
		loading:    true,
		interval:   interval,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCategories(m.ctx, m.port), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.categories.SetSize(max(msg.Width-4, 20), max(msg.Height-14, 5))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.stopCountdown()
			m.session.Abort()
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case categoriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Could not load categories: " + msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.categories))
		for i, c := range msg.categories {
			items[i] = categoryItem{category: c}
		}
		return m, m.categories.SetItems(items)

	case maxLoadedMsg:
		if msg.categoryID != m.categoryID {
			return m, nil
		}
		m.maxPending = false
		if msg.err != nil {
			m.status = "Could not load question count: " + msg.err.Error()
			return m, nil
		}
		m.maxQuestions = msg.max
		m.setAmount(m.amount.Value())
		return m, nil

	case questionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Could not fetch questions: " + msg.err.Error()
			return m, nil
		}
		m.session.Start(msg.questions)
		if !m.session.Active() {
			m.status = "Could not fetch questions: " + domain.ErrNoResults.Error()
			return m, nil
		}
		m.screen = screenQuiz
		m.cursor = 0
		m.feedback = ""
		m.status = ""
		return m, m.restartCountdown()

	case tickMsg:
		return m.onTick(msg)
	}

	switch m.screen {
	case screenQuiz:
		return m.updateQuiz(msg)
	case screenSummary:
		return m.updateSummary(msg)
	default:
		return m.updateSetup(msg)
	}
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenQuiz:
		body = m.quizView()
	case screenSummary:
		body = m.summaryView()
	default:
		body = m.setupView()
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys)))
}

// restartCountdown starts a fresh 1s task for the current question, orphaning any older one.
func (m *Model) restartCountdown() tea.Cmd {
	m.gen++
	return tick(m.gen, m.interval)
}

func (m *Model) stopCountdown() {
	m.gen++
}

func tick(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func loadCategories(ctx context.Context, port QuizPort) tea.Cmd {
	return func() tea.Msg {
		categories, err := port.Categories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func loadMax(ctx context.Context, port QuizPort, categoryID int) tea.Cmd {
	return func() tea.Msg {
		max, err := port.MaxQuestions(ctx, categoryID)
		return maxLoadedMsg{categoryID: categoryID, max: max, err: err}
	}
}

func fetchQuestions(ctx context.Context, port QuizPort, categoryID, amount int) tea.Cmd {
	return func() tea.Msg {
		questions, err := port.FetchQuestions(ctx, categoryID, amount)
		return questionsLoadedMsg{questions: questions, err: err}
	}
}

// Run drives the terminal UI until the user quits or ctx is canceled.
func Run(ctx context.Context, port QuizPort, opts Options) error {
	program := tea.NewProgram(NewModel(ctx, port, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
