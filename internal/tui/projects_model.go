package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/tui/vlist"
)

// ProjectStore is the slice of the API the project browser needs.
// *api.Client satisfies it.
type ProjectStore interface {
	ListProjects(ctx context.Context) ([]api.Project, error)
	CreateProject(ctx context.Context, req api.CreateProjectRequest) (*api.Project, error)
	RenameProject(ctx context.Context, projectID, name string) (*api.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectSelectedMsg announces that the user opened a project. The studio
// shell reacts by pointing the other pages at it.
type ProjectSelectedMsg struct {
	Project api.Project
}

// projectsLoadedMsg carries a refreshed project listing.
type projectsLoadedMsg struct {
	items []api.Project
	err   error
}

// projectActionMsg reports the outcome of a create, rename or delete.
type projectActionMsg struct {
	verb string
	err  error
}

const projectChromeRows = 3

func projectColumns() []vlist.Column[api.Project] {
	return []vlist.Column[api.Project]{
		{Key: "name", Title: "Name", Width: 32},
		{Key: "documentcount", Title: "Docs", Width: 7},
		{Key: "taskcount", Title: "Tasks", Width: 7},
		{Key: "updatedat", Title: "Updated", Width: 18},
	}
}

// ProjectsModel is the Bubble Tea model for the project browser. CRUD
// actions run through modal dialogs and refresh the listing when they
// complete.
type ProjectsModel struct {
	ctx   context.Context
	store ProjectStore

	state ViewState
	err   error

	// actionErr is the last failed action, shown in the status bar
	// without leaving the list.
	actionErr error

	projects []api.Project
	list     *vlist.List[api.Project]
	cols     *vlist.Table[api.Project]

	overlay Overlay

	width  int
	height int
}

// NewProjectsModel builds the project browser.
func NewProjectsModel(ctx context.Context, store ProjectStore) (*ProjectsModel, error) {
	params, err := vlist.NewParams(docRowHeight, defaultHeight-projectChromeRows, vlist.DefaultBufferSize)
	if err != nil {
		return nil, err
	}

	m := &ProjectsModel{
		ctx:     ctx,
		store:   store,
		state:   ViewStateList,
		cols:    vlist.NewTable(projectColumns()...),
		overlay: NewOverlay(),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	list, err := vlist.NewList(params, m.renderRow)
	if err != nil {
		return nil, err
	}
	m.list = list
	m.list.SetEmptyView(SubtleStyle.Render("No projects. Press n to create one."))
	m.list.SetLoadingView(RenderLoadingIndicator())
	m.list.SetLoading(true)
	m.list.SetWidth(m.width)
	m.overlay.SetSize(m.width, m.height)

	return m, nil
}

func (m *ProjectsModel) renderRow(item api.Project, selected bool) string {
	line := m.cols.Line(item)
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

// refresh reloads the full project listing.
func (m *ProjectsModel) refresh() tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		items, err := store.ListProjects(ctx)
		return projectsLoadedMsg{items: items, err: err}
	}
}

func (m *ProjectsModel) createProject(name string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		_, err := store.CreateProject(ctx, api.CreateProjectRequest{Name: name})
		return projectActionMsg{verb: "create", err: err}
	}
}

func (m *ProjectsModel) renameProject(projectID, name string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		_, err := store.RenameProject(ctx, projectID, name)
		return projectActionMsg{verb: "rename", err: err}
	}
}

func (m *ProjectsModel) deleteProject(projectID string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		err := store.DeleteProject(ctx, projectID)
		return projectActionMsg{verb: "delete", err: err}
	}
}

// Init starts the first listing fetch.
func (m *ProjectsModel) Init() tea.Cmd {
	return m.refresh()
}

// Update handles messages and updates the model state.
func (m *ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case projectsLoadedMsg:
		return m.handleLoaded(msg)

	case projectActionMsg:
		if msg.err != nil {
			m.actionErr = fmt.Errorf("%s failed: %w", msg.verb, msg.err)
			return m, nil
		}
		m.actionErr = nil
		return m, m.refresh()

	case tea.KeyMsg:
		if m.overlay.IsActive() {
			var cmd tea.Cmd
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if m.overlay.IsActive() {
			return m, nil
		}
		_, cmd := m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProjectsModel) handleLoaded(msg projectsLoadedMsg) (tea.Model, tea.Cmd) {
	m.list.SetLoading(false)
	if msg.err != nil {
		if len(m.projects) == 0 {
			m.err = msg.err
			m.state = ViewStateError
		} else {
			m.actionErr = msg.err
		}
		return m, nil
	}
	m.projects = msg.items
	m.list.SetItems(msg.items)
	return m, nil
}

func (m *ProjectsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit

	case keyNew:
		m.overlay.Push(NewInputDialog("New project", "project name", "", func(name string) tea.Cmd {
			if name == "" {
				return nil
			}
			return m.createProject(name)
		}))
		return m, nil

	case keyRename:
		p := m.list.SelectedItem()
		if p == nil {
			return m, nil
		}
		id := p.ID
		current := p.Name
		m.overlay.Push(NewInputDialog("Rename project", "new name", current, func(name string) tea.Cmd {
			if name == "" || name == current {
				return nil
			}
			return m.renameProject(id, name)
		}))
		return m, nil

	case keyDelete:
		p := m.list.SelectedItem()
		if p == nil {
			return m, nil
		}
		id := p.ID
		question := fmt.Sprintf("Delete project %q? Its documents and annotations go with it.", p.Name)
		m.overlay.Push(NewConfirmDialog("Delete project", question, func() tea.Cmd {
			return m.deleteProject(id)
		}))
		return m, nil

	case keyEnter:
		p := m.list.SelectedItem()
		if p == nil {
			return m, nil
		}
		selected := *p
		return m, func() tea.Msg {
			return ProjectSelectedMsg{Project: selected}
		}
	}

	if m.state != ViewStateList {
		return m, nil
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *ProjectsModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetWidth(width)
	m.overlay.SetSize(width, height)

	h := height - projectChromeRows
	if h < 1 {
		h = 1
	}
	m.list.SetViewportHeight(h)
}

// capturingInput reports whether a dialog owns the keyboard.
func (m *ProjectsModel) capturingInput() bool {
	return m.overlay.IsActive()
}

// View renders the current view.
func (m *ProjectsModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return CriticalStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n\n" + HelpStyle.Render("Press q to quit.")
	case ViewStateLoading, ViewStateList, ViewStateDetail:
	}

	sections := []string{
		HeaderStyle.Render("PROJECTS"),
		InfoStyle.Render(m.cols.Header()),
		m.list.View(),
		m.renderStatusBar(),
	}
	return m.overlay.View(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *ProjectsModel) renderStatusBar() string {
	status := countPrinter.Sprintf("%d projects", len(m.projects))
	status += " · n new · r rename · d delete · enter open · q quit"
	bar := StatusBarStyle.Render(status)
	if m.actionErr != nil {
		bar += " " + WarningStyle.Render(m.actionErr.Error())
	}
	return bar
}
