package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Item          lipgloss.Style
	Focus         lipgloss.Style
	Dragging      lipgloss.Style
	Settling      lipgloss.Style
	Handle        lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	Dim           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Focus:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")),
		Dragging: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Bold(true),
		Settling: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("238")),
		Handle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Help:          lipgloss.NewStyle().Faint(true),
		Dim:           lipgloss.NewStyle().Faint(true),
	}
}
