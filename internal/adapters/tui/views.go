package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/view"
)

// View renders the TUI.
func (m Model) View() string {
	if m.state == nil {
		if m.err != nil {
			return fmt.Sprintf("\n  Error: %v\n\n  q quit\n", m.err)
		}
		return "\n  Loading...\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")
	b.WriteString(m.renderFooterInput())
	b.WriteString(view.RenderCalendar(view.Calendar(m.state, m.now()), m.styles, view.CalendarOptions{
		Width:     m.width,
		DateLabel: m.state.Settings.DateLabel,
	}))
	b.WriteString("\n\n")
	b.WriteString(m.renderQuickStats())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Render("  Error: "+m.err.Error()) + "\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.Help.Render("  "+m.notice) + "\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	c := m.state.Challenge
	dayTasks := m.state.TasksForDay(c.CurrentDay)
	pct := domain.DayCompletionPercent(c.CurrentDay, dayTasks)
	status := domain.StatusForDay(c.CurrentDay, dayTasks)

	var b strings.Builder
	b.WriteString(renderBigDay(c.CurrentDay, c.TotalDays, lipgloss.Color(m.theme.ColorCurrent), m.width))
	b.WriteString("\n")
	if date, ok := c.DateForDay(c.CurrentDay); ok {
		b.WriteString(m.styles.Help.Render(date.Format("Monday, January 2, 2006")))
		if today, ok := c.TodayIndex(m.now()); ok && today == c.CurrentDay {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorToday)).Render("  • today"))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.progress.ViewAs(float64(pct) / 100))
	b.WriteString(fmt.Sprintf("  %s", status.Label()))
	return b.String()
}

func (m Model) renderTasks() string {
	groups := view.GroupTasks(m.state, m.state.Challenge.CurrentDay)
	if len(groups) == 0 {
		return m.styles.Help.Render("  No tasks for this day. Press a to add one.") + "\n"
	}

	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorComplete))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorCurrent))

	var b strings.Builder
	row := 0
	for _, g := range groups {
		b.WriteString(m.styles.Title.Render("  "+g.Title) + "\n")
		for _, r := range g.Rows {
			box := "[ ]"
			if r.Done {
				box = doneStyle.Render("[✓]")
			}
			line := fmt.Sprintf("%s %s", box, r.Task.Name)
			if r.Task.ReminderTime != "" {
				line += m.styles.Help.Render("  ⏰ " + r.Task.ReminderTime)
			}
			if row == m.cursor {
				b.WriteString(activeStyle.Render("  ▸ ") + line + "\n")
			} else {
				b.WriteString("    " + line + "\n")
			}
			row++
		}
	}
	return b.String()
}

func (m Model) renderFooterInput() string {
	switch m.mode {
	case modeAdd:
		return fmt.Sprintf("  New task (%s, tab to change): %s\n\n", m.priority.Label(), m.input.View())
	case modeConfirmDelete:
		if task := m.selected(); task != nil {
			return fmt.Sprintf("  Delete %q and its history? (y/n)\n\n", task.Name)
		}
	}
	return ""
}

func (m Model) renderQuickStats() string {
	sum := m.state.Summarize(m.now())
	parts := make([]string, 0, 4)
	for _, s := range view.QuickStats(sum) {
		parts = append(parts, fmt.Sprintf("%s: %d", s.Label, s.Value))
	}
	parts = append(parts, fmt.Sprintf("Overall: %.1f%%", sum.OverallPercent))
	line := "  " + strings.Join(parts, " · ")
	return line + "\n" + m.styles.Help.Render("  "+sum.Tier.Message()) + "\n"
}

func (m Model) renderHelp() string {
	var help string
	switch m.mode {
	case modeAdd:
		help = "enter add · tab priority · esc cancel"
	case modeConfirmDelete:
		help = "y delete · n cancel"
	default:
		help = "←/→ day · ↑/↓ select · space toggle · a add · d delete · t today · q quit"
	}
	return m.styles.Help.Render("  "+help) + "\n"
}
