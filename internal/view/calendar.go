// Package view projects tracker state into presentation-ready values:
// calendar cells, priority-grouped task rows, date labels and the stats
// block. It holds no state of its own.
package view

import (
	"time"

	"github.com/xvierd/daytrack/internal/domain"
)

// CellKind classifies a calendar cell for styling.
type CellKind int

// Kinds in ascending precedence.
const (
	CellEmpty CellKind = iota
	CellToday
	CellPartial
	CellComplete
	CellCurrent
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellToday:
		return "today"
	case CellPartial:
		return "partial"
	case CellComplete:
		return "complete"
	case CellCurrent:
		return "current"
	default:
		return "empty"
	}
}

// Cell is one day of the calendar grid.
type Cell struct {
	Day      int
	Date     time.Time
	HasDate  bool
	Percent  int
	Complete bool
	Current  bool
	Today    bool
	Kind     CellKind
}

// Calendar returns one cell per challenge day. now selects the today marker.
func Calendar(state *domain.State, now time.Time) []Cell {
	c := state.Challenge
	today, hasToday := c.TodayIndex(now)

	cells := make([]Cell, 0, c.TotalDays)
	for day := 1; day <= c.TotalDays; day++ {
		tasks := state.TasksForDay(day)
		cell := Cell{
			Day:      day,
			Percent:  domain.DayCompletionPercent(day, tasks),
			Complete: domain.IsDayFullyComplete(day, tasks),
			Current:  day == c.CurrentDay,
			Today:    hasToday && day == today,
		}
		cell.Date, cell.HasDate = c.DateForDay(day)
		cell.Kind = classify(cell)
		cells = append(cells, cell)
	}
	return cells
}

// classify applies Current > Complete > Partial > Today > Empty.
func classify(c Cell) CellKind {
	switch {
	case c.Current:
		return CellCurrent
	case c.Complete:
		return CellComplete
	case c.Percent > 0:
		return CellPartial
	case c.Today:
		return CellToday
	default:
		return CellEmpty
	}
}
