package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphHeight is the number of rows in every glyph.
const glyphHeight = 5

// glyphs maps digits and the slash to 3-column block glyphs.
var glyphs = map[rune][glyphHeight]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", " █ ", " █ ", " █ "},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	'/': {"  █", "  █", " █ ", "█  ", "█  "},
}

// renderBigDay renders "day/total" in block glyphs. Narrow terminals get a
// single bold line instead.
func renderBigDay(day, total int, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < 40 {
		return style.Render(fmt.Sprintf("Day %d/%d", day, total))
	}

	var lines [glyphHeight]string
	for _, ch := range fmt.Sprintf("%d/%d", day, total) {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range lines {
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += glyph[i]
		}
	}

	styled := make([]string, glyphHeight)
	for i, line := range lines {
		styled[i] = style.Render(line)
	}
	return strings.Join(styled, "\n")
}
