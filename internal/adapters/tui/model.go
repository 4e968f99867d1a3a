// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/daytrack/internal/config"
	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/view"
)

// Tracker is the subset of the tracker service the TUI drives.
type Tracker interface {
	GetState(ctx context.Context) (*domain.State, error)
	AddTask(ctx context.Context, name string, priority domain.Priority, reminderTime string) (*domain.Task, error)
	ToggleCompletion(ctx context.Context, taskID string, day int) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) (bool, error)
	SetCurrentDay(ctx context.Context, day int) (domain.Challenge, error)
}

// inputMode is what the keyboard is currently driving.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeConfirmDelete
)

// Model represents the TUI state.
type Model struct {
	ctx      context.Context
	tracker  Tracker
	state    *domain.State
	now      func() time.Time
	mode     inputMode
	cursor   int
	input    textinput.Model
	priority domain.Priority
	progress progress.Model
	theme    config.ThemeConfig
	styles   view.Styles
	width    int
	height   int
	err      error
	notice   string
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the clock used for the today marker.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithWidth fixes the render width instead of querying the terminal.
func WithWidth(width int) Option {
	return func(m *Model) { m.width = width }
}

// NewModel creates a new TUI model over tracker. The initial state is loaded
// immediately so the first frame is complete.
func NewModel(ctx context.Context, tracker Tracker, theme *config.ThemeConfig, opts ...Option) Model {
	resolved := view.ResolveTheme(theme)

	ti := textinput.New()
	ti.Placeholder = "New task name"
	ti.CharLimit = 120
	ti.Width = 40

	m := Model{
		ctx:      ctx,
		tracker:  tracker,
		now:      time.Now,
		input:    ti,
		priority: domain.PriorityDailyRoutine,
		progress: progress.New(progress.WithDefaultGradient()),
		theme:    resolved,
		width:    getTerminalWidth(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.progress.Width = max(10, m.width-20)
	m.refresh()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the state and keeps the cursor on a valid row.
func (m *Model) refresh() {
	state, err := m.tracker.GetState(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.state = state
	m.styles = view.NewStyles(m.theme, state.Settings.DarkMode)
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// rows returns the task rows of the current day in display order.
func (m Model) rows() []view.TaskRow {
	if m.state == nil {
		return nil
	}
	return view.Rows(view.GroupTasks(m.state, m.state.Challenge.CurrentDay))
}

func (m Model) selected() *domain.Task {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor].Task
}

func (m Model) currentDay() int {
	if m.state == nil {
		return 1
	}
	return m.state.Challenge.CurrentDay
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.moveDay(m.currentDay() - 1)
		case "right", "l":
			m.moveDay(m.currentDay() + 1)
		case "t":
			if m.state != nil {
				if today, ok := m.state.Challenge.TodayIndex(m.now()); ok {
					m.moveDay(today)
				} else {
					m.notice = "Today is outside the challenge"
				}
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows())-1 {
				m.cursor++
			}
		case " ", "space", "enter", "x":
			if task := m.selected(); task != nil {
				if _, err := m.tracker.ToggleCompletion(m.ctx, task.ID, m.currentDay()); err != nil {
					m.err = err
				}
				m.refresh()
			}
		case "a":
			m.mode = modeAdd
			m.priority = domain.PriorityDailyRoutine
			m.input.Reset()
			return m, m.input.Focus()
		case "d":
			if m.selected() != nil {
				m.mode = modeConfirmDelete
			}
		case "r":
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, msg.Width-20)
	}

	return m, nil
}

func (m *Model) moveDay(day int) {
	if _, err := m.tracker.SetCurrentDay(m.ctx, day); err != nil {
		m.err = err
		return
	}
	m.cursor = 0
	m.refresh()
}

// updateAdd handles keys while the new-task input is open.
func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.mode = modeBrowse
			m.input.Blur()
			return m, nil
		case "tab":
			m.priority = nextPriority(m.priority)
			return m, nil
		case "enter":
			name := m.input.Value()
			m.mode = modeBrowse
			m.input.Blur()
			if _, err := m.tracker.AddTask(m.ctx, name, m.priority, ""); err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.refresh()
			m.notice = fmt.Sprintf("Added %q", name)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateConfirmDelete handles the y/n prompt before a delete.
func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "Y":
		if task := m.selected(); task != nil {
			if _, err := m.tracker.DeleteTask(m.ctx, task.ID); err != nil {
				m.err = err
			} else {
				m.notice = fmt.Sprintf("Deleted %q", task.Name)
			}
		}
		m.mode = modeBrowse
		m.refresh()
	case "n", "N", "esc":
		m.mode = modeBrowse
	}
	return m, nil
}

func nextPriority(p domain.Priority) domain.Priority {
	for i, v := range domain.ValidPriorities {
		if v == p {
			return domain.ValidPriorities[(i+1)%len(domain.ValidPriorities)]
		}
	}
	return domain.PriorityDailyRoutine
}
