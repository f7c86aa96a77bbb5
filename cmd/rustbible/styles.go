package main

import "github.com/charmbracelet/lipgloss"

// outputStyles holds the terminal styles of command output.
type outputStyles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Kind  lipgloss.Style
	Path  lipgloss.Style
	Verse lipgloss.Style
	Dim   lipgloss.Style
}

var styles = outputStyles{
	Title: lipgloss.NewStyle().Bold(true),
	Label: lipgloss.NewStyle().Foreground(lipgloss.Color("36")), // Cyan
	Kind:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // Yellow
	Path:  lipgloss.NewStyle().Foreground(lipgloss.Color("32")), // Green
	Verse: lipgloss.NewStyle().Italic(true).PaddingLeft(2),
	Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("90")), // Gray
}
