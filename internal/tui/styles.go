package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F5A623")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorMuted   = lipgloss.Color("#6C6C6C")
	ColorBorder  = lipgloss.Color("#3C3C3C")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Width(20).
			Foreground(ColorMuted)

	FocusedLabelStyle = LabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	AmountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	NoRefundStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	StepStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(2)
)
