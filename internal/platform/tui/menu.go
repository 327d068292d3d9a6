package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/motion-arcade/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	messageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// renderMenu draws the game picker.
func renderMenu(entries []registry.Entry, cursor, width int, message string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle.Render("M O T I O N   A R C A D E"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", width))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(centerText("No games registered.", width))
		b.WriteString("\n")
	}

	for i, e := range entries {
		line := fmt.Sprintf("  %s %s", e.Descriptor.Icon, e.Descriptor.Name)
		if i == cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %s %s", e.Descriptor.Icon, e.Descriptor.Name))
			b.WriteString(centerStyled(line, width))
		} else {
			b.WriteString(centerText(line, width))
		}
		b.WriteString("\n")
	}

	if message != "" {
		b.WriteString("\n")
		b.WriteString(centerStyled(messageStyle.Render(message), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(menuHintStyle.Render(controls), width))
	b.WriteString("\n")

	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers text that may contain ANSI sequences.
func centerStyled(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
