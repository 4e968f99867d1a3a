package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/xvierd/daytrack/internal/config"
)

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// TerminalWidth reports the width used for non-interactive rendering.
func TerminalWidth() int {
	return getTerminalWidth()
}

// IsInteractive reports whether stdin is a terminal, so prompts can be shown.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// Run starts the full-screen tracker and blocks until the user quits.
func Run(ctx context.Context, tracker Tracker, theme *config.ThemeConfig, opts ...Option) error {
	p := tea.NewProgram(
		NewModel(ctx, tracker, theme, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
