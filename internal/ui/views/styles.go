package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Chip         lipgloss.Style
	ChipActive   lipgloss.Style
	Cursor       lipgloss.Style
	Bookmark     lipgloss.Style
	YesProb      lipgloss.Style
	NoProb       lipgloss.Style
	ErrorBox     lipgloss.Style
	ErrorText    lipgloss.Style
	Empty        lipgloss.Style
	ModalBox     lipgloss.Style
	PanelBox     lipgloss.Style
	FormBox      lipgloss.Style
	Success      lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Highlight    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Tab:        lipgloss.NewStyle().Faint(true).Padding(0, 1),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1).Underline(true),
		Dim:        lipgloss.NewStyle().Faint(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Chip:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),
		ChipActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Padding(0, 1),
		Cursor:     lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Bookmark:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		YesProb:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		NoProb:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")), // magenta
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
		ErrorText: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Empty:     lipgloss.NewStyle().Faint(true).Align(lipgloss.Center).MarginTop(2),
		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		PanelBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			MarginTop(1),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		ToastInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("33")).Padding(0, 1),
		ToastSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("28")).Padding(0, 1),
		ToastError:   lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1),
		Help:         lipgloss.NewStyle().Faint(true),
		Main:         lipgloss.NewStyle().Padding(1, 2),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	}
}
