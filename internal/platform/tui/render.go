package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/motion-arcade/internal/core"
)

// cellStyles holds one foreground style per palette color. The hex values
// come from the palette the window uses; lipgloss downsamples them to the
// terminal's color profile.
var cellStyles = buildCellStyles()

func buildCellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, core.PaletteSize())
	for i := range styles {
		c := core.Color(i)
		if c == core.ColorDefault {
			styles[i] = lipgloss.NewStyle()
			continue
		}
		rgba := c.RGBA()
		hex := fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return styles
}

func cellStyle(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of same-colored cells share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb, run strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			col := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != col {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(cellStyle(col).Render(run.String()))
		}
	}
	return sb.String()
}
