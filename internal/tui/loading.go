package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingState wraps the shared spinner shown while a fetch is in flight.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState builds a loading indicator with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &LoadingState{
		spinner: s,
		message: "Loading...",
	}
}

// Init returns the command that starts the spinner animation.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner. Non-spinner messages are ignored.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// SetMessage replaces the text rendered next to the spinner.
func (l *LoadingState) SetMessage(message string) {
	l.message = message
}

// View renders the spinner frame and message on one line.
func (l *LoadingState) View() string {
	return fmt.Sprintf("%s %s", l.spinner.View(), l.message)
}

// RenderLoadingIndicator returns the fallback loading line used when no
// LoadingState is running.
func RenderLoadingIndicator() string {
	return SubtleStyle.Render("Loading...")
}
