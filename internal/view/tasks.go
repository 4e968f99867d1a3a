package view

import "github.com/xvierd/daytrack/internal/domain"

// TaskRow is a task as shown for a specific day.
type TaskRow struct {
	Task *domain.Task
	Done bool
}

// TaskGroup is the tasks of one priority, in insertion order.
type TaskGroup struct {
	Priority domain.Priority
	Title    string
	Rows     []TaskRow
}

// GroupTasks partitions the tasks that apply on day by priority, in
// display order. Empty groups are omitted.
func GroupTasks(state *domain.State, day int) []TaskGroup {
	byPriority := make(map[domain.Priority][]TaskRow, len(domain.ValidPriorities))
	for _, t := range state.TasksForDay(day) {
		byPriority[t.Priority] = append(byPriority[t.Priority], TaskRow{Task: t, Done: t.IsCompletedOn(day)})
	}

	var groups []TaskGroup
	for _, p := range domain.ValidPriorities {
		rows := byPriority[p]
		if len(rows) == 0 {
			continue
		}
		groups = append(groups, TaskGroup{Priority: p, Title: p.Label(), Rows: rows})
	}
	return groups
}

// Rows flattens groups in display order.
func Rows(groups []TaskGroup) []TaskRow {
	var rows []TaskRow
	for _, g := range groups {
		rows = append(rows, g.Rows...)
	}
	return rows
}
