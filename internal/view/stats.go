package view

import (
	"strings"

	"github.com/xvierd/daytrack/internal/domain"
)

// DayRow is one line of the per-day table used by export.
type DayRow struct {
	Day      int    `json:"day" yaml:"day"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Percent  int    `json:"percent" yaml:"percent"`
	Complete bool   `json:"complete" yaml:"complete"`
}

// DayTable returns a row for every challenge day.
func DayTable(state *domain.State) []DayRow {
	c := state.Challenge
	rows := make([]DayRow, 0, c.TotalDays)
	for day := 1; day <= c.TotalDays; day++ {
		tasks := state.TasksForDay(day)
		row := DayRow{
			Day:      day,
			Percent:  domain.DayCompletionPercent(day, tasks),
			Complete: domain.IsDayFullyComplete(day, tasks),
		}
		if date, ok := c.DateForDay(day); ok {
			row.Date = domain.FormatDate(date)
		}
		rows = append(rows, row)
	}
	return rows
}

// Stat is a labelled value in the quick stats block.
type Stat struct {
	Label string
	Value int
}

// QuickStats returns the stats block for a summary.
func QuickStats(sum domain.Summary) []Stat {
	return []Stat{
		{Label: "Days Complete", Value: sum.DaysComplete},
		{Label: "Days Remaining", Value: sum.DaysRemaining},
		{Label: "Tasks Started", Value: sum.TasksStarted},
	}
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders percents in [0,100] as a bar per value. Zero renders as
// a space so untouched days stay blank.
func Sparkline(percents []int) string {
	var b strings.Builder
	for _, p := range percents {
		if p <= 0 {
			b.WriteRune(' ')
			continue
		}
		i := min(p*len(sparkLevels)/101, len(sparkLevels)-1)
		b.WriteRune(sparkLevels[i])
	}
	return b.String()
}
