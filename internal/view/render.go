package view

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/daytrack/internal/config"
	"github.com/xvierd/daytrack/internal/domain"
)

// ResolveTheme fills any empty string fields in the given ThemeConfig with
// defaults. If theme is nil, returns the full default theme.
func ResolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Help  lipgloss.Style
	cells map[CellKind]lipgloss.Style
}

// NewStyles builds styles for theme. darkMode brightens the empty cells.
func NewStyles(theme config.ThemeConfig, darkMode bool) Styles {
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorEmpty))
	if darkMode {
		empty = empty.Faint(false)
	} else {
		empty = empty.Faint(true)
	}
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		cells: map[CellKind]lipgloss.Style{
			CellEmpty:    empty,
			CellToday:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorToday)),
			CellPartial:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorPartial)),
			CellComplete: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorComplete)),
			CellCurrent:  lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(lipgloss.Color(theme.ColorCurrent)),
		},
	}
}

// Cell returns the style for kind.
func (s Styles) Cell(kind CellKind) lipgloss.Style {
	return s.cells[kind]
}

// CalendarOptions control RenderCalendar.
type CalendarOptions struct {
	Width     int
	DateLabel domain.DateLabel
}

// marker is the one-character status suffix of a cell.
func marker(c Cell) string {
	switch {
	case c.Complete:
		return "✓"
	case c.Percent > 0:
		return "◐"
	case c.Today:
		return "•"
	default:
		return " "
	}
}

// RenderCalendar lays cells out in as many columns as fit in opts.Width.
func RenderCalendar(cells []Cell, styles Styles, opts CalendarOptions) string {
	withLabels := ShowDateLabels(opts.DateLabel, opts.Width)
	cellWidth := 6
	if withLabels {
		cellWidth = 8
		if opts.DateLabel == domain.DateLabelLong {
			cellWidth = 17
		}
	}
	cols := max(1, opts.Width/cellWidth)

	var rows []string
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		parts := make([]string, 0, end-start)
		for _, c := range cells[start:end] {
			text := fmt.Sprintf("%3d%s", c.Day, marker(c))
			if withLabels && c.HasDate {
				text += "\n" + FormatDateLabel(c.Date, opts.DateLabel)
			}
			parts = append(parts, styles.Cell(c.Kind).Width(cellWidth).Render(text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(rows, "\n")
}

// RenderStats renders the summary block shown by status and the TUI.
func RenderStats(sum domain.Summary, styles Styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", styles.Title.Render(fmt.Sprintf("Day %d of %d", sum.CurrentDay, sum.TotalDays)))
	if sum.CurrentDate != nil {
		fmt.Fprintf(&b, "Date: %s\n", sum.CurrentDate.Format("Monday, January 2, 2006"))
	}
	fmt.Fprintf(&b, "Today: %d%% (%d/%d tasks) %s\n", sum.DayPercent, sum.DayTasksDone, sum.DayTasksTotal, sum.DayStatus.Label())
	fmt.Fprintf(&b, "Overall: %.1f%%\n", sum.OverallPercent)
	for _, s := range QuickStats(sum) {
		fmt.Fprintf(&b, "%-15s %d\n", s.Label+":", s.Value)
	}
	b.WriteString(styles.Help.Render(sum.Tier.Message()))
	return b.String()
}
