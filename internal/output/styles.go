package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/deskbell/internal/domain"
)

// Styles holds all lipgloss styles for text output and the TUI
var Styles = struct {
	// Event styles
	Timestamp lipgloss.Style
	Command   lipgloss.Style
	Wire      lipgloss.Style
	Muted     lipgloss.Style

	// Summary styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	// TUI styles
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Panel     lipgloss.Style
	Help      lipgloss.Style
}{
	Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")), // Gray
	Command:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
	Wire:      lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green
	Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),

	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red

	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	StatusBar: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")).Padding(0, 1),
	Panel:     lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("239")).Padding(0, 1),
	Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// ColorStyle returns a style that paints the indicator color as a background
func ColorStyle(c domain.Color) lipgloss.Style {
	if c == domain.Off {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235"))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))).
		Foreground(lipgloss.Color("16")).
		Bold(true)
}

// Swatch renders a labelled color block, e.g. " green "
func Swatch(c domain.Color) string {
	return ColorStyle(c).Render(" " + c.String() + " ")
}

// ModeText returns styled override mode text
func ModeText(mode domain.OverrideMode) string {
	if mode == domain.ModeGoAway {
		return Styles.Danger.Render("GO AWAY")
	}
	return Styles.Success.Render("NORMAL")
}
