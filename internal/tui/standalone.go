package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cotstudio/cot/internal/api"
)

// Standalone hosts a single page model outside the studio shell, for the
// dedicated browse commands. It forwards every message to the page and ends
// the program when the page reports a project selection, so the CLI can act
// on the choice after the program exits.
type Standalone struct {
	page     tea.Model
	selected *api.Project
}

// NewStandalone wraps page for standalone execution.
func NewStandalone(page tea.Model) *Standalone {
	return &Standalone{page: page}
}

// Selected returns the project chosen before quitting, or nil.
func (s *Standalone) Selected() *api.Project {
	return s.selected
}

// Init starts the wrapped page.
func (s *Standalone) Init() tea.Cmd {
	return s.page.Init()
}

// Update forwards messages to the page, quitting once a project is selected.
func (s *Standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if selected, ok := msg.(ProjectSelectedMsg); ok {
		project := selected.Project
		s.selected = &project
		return s, tea.Quit
	}

	page, cmd := s.page.Update(msg)
	s.page = page
	return s, cmd
}

// View renders the wrapped page.
func (s *Standalone) View() string {
	return s.page.View()
}
