// ABOUTME: Color palette for the console TUI
// ABOUTME: ANSI 256-color codes for broad terminal compatibility

package console

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the console. All colors use
// lipgloss ANSI 256-color codes.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Chat transcript.
	AdminMessage lipgloss.Color
	BotMessage   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar notices.
	ErrorForeground   lipgloss.Color
	SuccessForeground lipgloss.Color

	// Modal overlays.
	ModalBackground lipgloss.Color
	DangerAccent    lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	AdminMessage: lipgloss.Color("75"),  // blue
	BotMessage:   lipgloss.Color("114"), // green

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorForeground:   lipgloss.Color("196"), // bright red
	SuccessForeground: lipgloss.Color("114"), // green

	ModalBackground: lipgloss.Color("237"),
	DangerAccent:    lipgloss.Color("208"), // orange
}
