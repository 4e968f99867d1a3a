package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xvierd/daytrack/internal/domain"
	"github.com/xvierd/daytrack/internal/view"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export challenge progress",
	Long: `Export the challenge, its tasks and the per-day table as JSON or YAML,
or the per-day table alone as CSV.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := app.tracker.GetState(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}

		w := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := writeExport(w, exportFormat, state); err != nil {
			return err
		}
		if exportOutput != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %d days to %s\n", state.Challenge.TotalDays, exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, yaml or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}

type exportTask struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Priority      string `json:"priority" yaml:"priority"`
	ReminderTime  string `json:"reminder_time,omitempty" yaml:"reminder_time,omitempty"`
	AssignedDay   *int   `json:"assigned_day,omitempty" yaml:"assigned_day,omitempty"`
	CompletedDays []int  `json:"completed_days" yaml:"completed_days"`
}

type exportDoc struct {
	TotalDays      int           `json:"total_days" yaml:"total_days"`
	CurrentDay     int           `json:"current_day" yaml:"current_day"`
	StartDate      string        `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	DaysComplete   int           `json:"days_complete" yaml:"days_complete"`
	OverallPercent float64       `json:"overall_percent" yaml:"overall_percent"`
	Tasks          []exportTask  `json:"tasks" yaml:"tasks"`
	Days           []view.DayRow `json:"days" yaml:"days"`
}

func newExportDoc(state *domain.State) exportDoc {
	c := state.Challenge
	completed := domain.CompletedDayCount(state.Tasks, c.TotalDays)
	doc := exportDoc{
		TotalDays:      c.TotalDays,
		CurrentDay:     c.CurrentDay,
		StartDate:      c.StartDate,
		DaysComplete:   completed,
		OverallPercent: domain.OverallProgressPercent(completed, c.TotalDays),
		Tasks:          make([]exportTask, 0, len(state.Tasks)),
		Days:           view.DayTable(state),
	}
	for _, t := range state.Tasks {
		doc.Tasks = append(doc.Tasks, exportTask{
			ID:            t.ID,
			Name:          t.Name,
			Priority:      string(t.Priority),
			ReminderTime:  t.ReminderTime,
			AssignedDay:   t.AssignedDay,
			CompletedDays: t.CompletedDays,
		})
	}
	return doc
}

// writeExport writes state to w in format.
func writeExport(w io.Writer, format string, state *domain.State) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newExportDoc(state)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newExportDoc(state)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "csv":
		return exportCSV(w, view.DayTable(state))
	default:
		return fmt.Errorf("unknown export format %q: use json, yaml or csv", format)
	}
}

func exportCSV(w io.Writer, rows []view.DayRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "date", "percent", "complete"}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Day),
			r.Date,
			strconv.Itoa(r.Percent),
			strconv.FormatBool(r.Complete),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
