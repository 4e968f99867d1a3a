package cmd

import (
	"strings"
	"testing"
)

type challengeOutput struct {
	CurrentDay int    `json:"current_day"`
	TotalDays  int    `json:"total_days"`
	StartDate  string `json:"start_date"`
	Date       string `json:"date"`
	EndDate    string `json:"end_date"`
}

func TestDayCmd_Navigation(t *testing.T) {
	db := setupCmdTest(t)

	tests := []struct {
		arg  string
		want int
	}{
		{"5", 5},
		{"next", 6},
		{"prev", 5},
		{"-", 4},
		{"500", 100},
		{"next", 100},
		{"0", 1},
		{"prev", 1},
	}
	for _, tt := range tests {
		var got challengeOutput
		runJSON(t, db, &got, "day", tt.arg)
		if got.CurrentDay != tt.want {
			t.Errorf("day %s: current day = %d, want %d", tt.arg, got.CurrentDay, tt.want)
		}
	}

	out, err := runCmd(t, db, "day")
	if err != nil {
		t.Fatalf("day failed: %v", err)
	}
	if !strings.Contains(out, "Day 1 of 100") {
		t.Errorf("day output = %q", out)
	}

	if _, err := runCmd(t, db, "day", "soon"); err == nil {
		t.Error("day with a bad argument should fail")
	}
	if _, err := runCmd(t, db, "day", "today"); err == nil {
		t.Error("day today without a start date should fail")
	}
}

func TestDayCmd_ShowsDate(t *testing.T) {
	db := setupCmdTest(t)
	if _, err := runCmd(t, db, "challenge", "--start", "2024-01-01"); err != nil {
		t.Fatalf("challenge failed: %v", err)
	}

	var got challengeOutput
	runJSON(t, db, &got, "day", "32")
	if got.Date != "2024-02-01" {
		t.Errorf("day 32 date = %q, want 2024-02-01", got.Date)
	}
	out, err := runCmd(t, db, "day")
	if err != nil {
		t.Fatalf("day failed: %v", err)
	}
	if !strings.Contains(out, "Thu, February 1, 2024") {
		t.Errorf("day output = %q", out)
	}
}

func TestChallengeCmd(t *testing.T) {
	db := setupCmdTest(t)

	var got challengeOutput
	runJSON(t, db, &got, "challenge")
	if got.TotalDays != 100 || got.CurrentDay != 1 || got.StartDate != "" {
		t.Errorf("default challenge = %+v", got)
	}

	if _, err := runCmd(t, db, "day", "40"); err != nil {
		t.Fatalf("day failed: %v", err)
	}
	runJSON(t, db, &got, "challenge", "--total", "30", "--start", "2024-01-01")
	if got.TotalDays != 30 || got.CurrentDay != 30 {
		t.Errorf("shrunk challenge = %+v, want 30 days with day clamped to 30", got)
	}
	if got.StartDate != "2024-01-01" || got.EndDate != "2024-01-30" {
		t.Errorf("dates = %q..%q, want 2024-01-01..2024-01-30", got.StartDate, got.EndDate)
	}

	runJSON(t, db, &got, "challenge", "--total", "5")
	if got.TotalDays != 10 {
		t.Errorf("total below the minimum = %d, want 10", got.TotalDays)
	}
	runJSON(t, db, &got, "challenge", "--total", "1000")
	if got.TotalDays != 365 {
		t.Errorf("total above the maximum = %d, want 365", got.TotalDays)
	}

	if _, err := runCmd(t, db, "challenge", "--start", "01/02/2024"); err == nil {
		t.Error("a malformed start date should be rejected")
	}
	runJSON(t, db, &got, "challenge", "--clear-start")
	if got.StartDate != "" {
		t.Errorf("start date after --clear-start = %q", got.StartDate)
	}

	out, err := runCmd(t, db, "challenge")
	if err != nil {
		t.Fatalf("challenge failed: %v", err)
	}
	if !strings.Contains(out, "365-day challenge") || !strings.Contains(out, "No start date set") {
		t.Errorf("challenge output = %q", out)
	}
}

func TestSettingsCmd(t *testing.T) {
	db := setupCmdTest(t)

	var got struct {
		DateLabel string `json:"date_label"`
		DarkMode  bool   `json:"dark_mode"`
	}
	runJSON(t, db, &got, "settings")
	if got.DateLabel != "short" || got.DarkMode {
		t.Errorf("default settings = %+v", got)
	}

	runJSON(t, db, &got, "settings", "--date-label", "long", "--dark-mode")
	if got.DateLabel != "long" || !got.DarkMode {
		t.Errorf("updated settings = %+v, want long + dark", got)
	}

	runJSON(t, db, &got, "settings", "--dark-mode=false")
	if got.DateLabel != "long" || got.DarkMode {
		t.Errorf("settings after --dark-mode=false = %+v", got)
	}

	if _, err := runCmd(t, db, "settings", "--date-label", "medium"); err == nil {
		t.Error("an unknown date label should be rejected")
	}
	if _, err := runCmd(t, db, "settings", "--dark-mode=maybe"); err == nil {
		t.Error("a non-boolean dark mode should be rejected")
	}
}

func TestStatusCmd(t *testing.T) {
	db := setupCmdTest(t)
	if _, err := runCmd(t, db, "challenge", "--total", "10"); err != nil {
		t.Fatalf("challenge failed: %v", err)
	}
	if _, err := runCmd(t, db, "add", "Exercise"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	for _, day := range []string{"1", "2", "3"} {
		if _, err := runCmd(t, db, "toggle", "Exercise", "--day", day); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
	}

	var got struct {
		CurrentDay     int     `json:"current_day"`
		DayPercent     int     `json:"day_percent"`
		DayStatus      string  `json:"day_status"`
		DaysComplete   int     `json:"days_complete"`
		DaysRemaining  int     `json:"days_remaining"`
		TasksStarted   int     `json:"tasks_started"`
		OverallPercent float64 `json:"overall_percent"`
		Message        string  `json:"message"`
		Daily          []int   `json:"daily_percentage"`
	}
	runJSON(t, db, &got, "status")
	if got.DaysComplete != 3 || got.DaysRemaining != 7 || got.TasksStarted != 1 {
		t.Errorf("status counts = %+v", got)
	}
	if got.OverallPercent != 30 {
		t.Errorf("overall percent = %v, want 30", got.OverallPercent)
	}
	if got.DayPercent != 100 {
		t.Errorf("day percent = %d, want 100", got.DayPercent)
	}
	if len(got.Daily) != 10 || got.Daily[0] != 100 || got.Daily[3] != 0 {
		t.Errorf("daily percentages = %v", got.Daily)
	}
	if got.Message == "" {
		t.Error("status should carry a motivational message")
	}

	out, err := runCmd(t, db, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	for _, want := range []string{"Day 1 of 10", "Days Complete:", "Overall: 30.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestCalendarCmd(t *testing.T) {
	db := setupCmdTest(t)
	if _, err := runCmd(t, db, "challenge", "--total", "10"); err != nil {
		t.Fatalf("challenge failed: %v", err)
	}
	if _, err := runCmd(t, db, "add", "Exercise"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := runCmd(t, db, "toggle", "Exercise", "--day", "2"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	out, err := runCmd(t, db, "calendar", "--width", "30")
	if err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	if !strings.Contains(out, "2✓") {
		t.Errorf("calendar should mark day 2 complete:\n%s", out)
	}
	if !strings.Contains(out, "10") {
		t.Errorf("calendar should include the last day:\n%s", out)
	}

	var cells []struct {
		Day      int    `json:"day"`
		Complete bool   `json:"complete"`
		Current  bool   `json:"current"`
		Kind     string `json:"kind"`
	}
	runJSON(t, db, &cells, "calendar")
	if len(cells) != 10 {
		t.Fatalf("calendar cells = %d, want 10", len(cells))
	}
	if !cells[0].Current || cells[0].Kind != "current" {
		t.Errorf("day 1 cell = %+v, want current", cells[0])
	}
	if !cells[1].Complete || cells[1].Kind != "complete" {
		t.Errorf("day 2 cell = %+v, want complete", cells[1])
	}
}

func TestConfigCmd(t *testing.T) {
	db := setupCmdTest(t)

	var got struct {
		Path          string `json:"path"`
		Notifications bool   `json:"notifications"`
		LogLevel      string `json:"log_level"`
	}
	runJSON(t, db, &got, "config")
	if !strings.HasSuffix(got.Path, "config.toml") {
		t.Errorf("config path = %q", got.Path)
	}
	if got.Notifications || got.LogLevel != "error" {
		t.Errorf("config should reflect the environment, got %+v", got)
	}

	if _, err := runCmd(t, db, "config", "--log-level", "loud"); err == nil {
		t.Error("an unknown log level should be rejected")
	}
	if _, err := runCmd(t, db, "config", "--notifications", "sometimes"); err == nil {
		t.Error("a non-boolean notifications value should be rejected")
	}
}
