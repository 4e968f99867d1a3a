package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/xvierd/daytrack/internal/domain"
)

func exportState(t *testing.T) *domain.State {
	t.Helper()
	state := domain.NewState()
	state.Challenge.SetTotalDays(10)
	state.Challenge.SetStartDate("2024-03-01")
	task, err := state.AddTask("Exercise", domain.PriorityDailyRoutine, "06:00")
	if err != nil {
		t.Fatal(err)
	}
	state.ToggleCompletion(task.ID, 1)
	state.ToggleCompletion(task.ID, 2)
	return state
}

func TestWriteExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "json", exportState(t)); err != nil {
		t.Fatalf("writeExport() error = %v", err)
	}

	var doc exportDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.TotalDays != 10 || doc.DaysComplete != 2 || doc.OverallPercent != 20 {
		t.Errorf("unexpected header: %+v", doc)
	}
	if len(doc.Tasks) != 1 || doc.Tasks[0].ReminderTime != "06:00" {
		t.Errorf("unexpected tasks: %+v", doc.Tasks)
	}
	if len(doc.Days) != 10 || doc.Days[1].Date != "2024-03-02" || !doc.Days[1].Complete {
		t.Errorf("unexpected days: %+v", doc.Days)
	}
}

func TestWriteExport_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "yaml", exportState(t)); err != nil {
		t.Fatalf("writeExport() error = %v", err)
	}
	if !strings.Contains(buf.String(), "start_date: \"2024-03-01\"") && !strings.Contains(buf.String(), "start_date: 2024-03-01") {
		t.Errorf("yaml should carry the start date:\n%s", buf.String())
	}

	var doc exportDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if doc.TotalDays != 10 || len(doc.Days) != 10 || doc.Days[0].Percent != 100 {
		t.Errorf("unexpected yaml document: %+v", doc)
	}
}

func TestWriteExport_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "csv", exportState(t)); err != nil {
		t.Fatalf("writeExport() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 11 {
		t.Fatalf("expected header + 10 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "day,date,percent,complete" {
		t.Errorf("header = %v", records[0])
	}
	if strings.Join(records[1], ",") != "1,2024-03-01,100,true" {
		t.Errorf("day 1 row = %v", records[1])
	}
	if strings.Join(records[3], ",") != "3,2024-03-03,0,false" {
		t.Errorf("day 3 row = %v", records[3])
	}
}

func TestWriteExport_UnknownFormat(t *testing.T) {
	if err := writeExport(&bytes.Buffer{}, "xml", exportState(t)); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestExportCmd_WritesFile(t *testing.T) {
	db := setupCmdTest(t)
	if _, err := runCmd(t, db, "add", "Exercise"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "progress.csv")
	out, err := runCmd(t, db, "export", "--format", "csv", "--output", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported 100 days") {
		t.Errorf("export output = %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 101 {
		t.Errorf("csv lines = %d, want 101", lines)
	}
}
