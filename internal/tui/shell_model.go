package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Page identifies one of the studio shell's views.
type Page int

const (
	PageProjects Page = iota
	PageDocuments
	PageTasks
	PageGraph

	numPages = 4
)

// Title returns the sidebar label for the page.
func (p Page) Title() string {
	switch p {
	case PageProjects:
		return "Projects"
	case PageDocuments:
		return "Documents"
	case PageTasks:
		return "Tasks"
	case PageGraph:
		return "Graph"
	default:
		return "Unknown"
	}
}

// StudioClient is everything the studio shell needs from the API.
// *api.Client satisfies it.
type StudioClient interface {
	ProjectStore
	DocumentLister
	TaskLister
	GraphReader
}

// inputCapturer marks pages that own plain keys for the moment, such as
// an open filter input or a modal dialog.
type inputCapturer interface {
	capturingInput() bool
}

// ShellModel composes the four page models behind a sidebar. The active
// page receives key and mouse input; every other message is broadcast so
// fetches finish even for pages not currently on screen.
type ShellModel struct {
	ctx context.Context

	projects  *ProjectsModel
	documents *DocumentsModel
	tasks     *TasksModel
	graph     *GraphModel

	pages [numPages]tea.Model

	active Page

	// projectName is the display name of the currently opened project.
	projectName string

	layout  Layout
	overlay Overlay

	quitting bool
}

// NewShellModel builds the studio shell. projectID scopes the document,
// task and graph pages; empty means unscoped until a project is opened.
func NewShellModel(ctx context.Context, client StudioClient, projectID string) (*ShellModel, error) {
	projects, err := NewProjectsModel(ctx, client)
	if err != nil {
		return nil, err
	}
	documents, err := NewDocumentsModel(ctx, client, projectID)
	if err != nil {
		return nil, err
	}
	graph, err := NewGraphModel(ctx, client, projectID)
	if err != nil {
		return nil, err
	}
	tasks := NewTasksModel(ctx, client, projectID, DefaultPollInterval)

	m := &ShellModel{
		ctx:       ctx,
		projects:  projects,
		documents: documents,
		tasks:     tasks,
		graph:     graph,
		active:    PageProjects,
		layout:    ComputeLayout(defaultWidth, defaultHeight),
		overlay:   NewOverlay(),
	}
	m.pages = [numPages]tea.Model{projects, documents, tasks, graph}
	m.overlay.SetSize(defaultWidth, defaultHeight)
	return m, nil
}

// Init starts every page so background fetches and the task poll loop
// run from the first frame.
func (m *ShellModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, numPages)
	for p := Page(0); p < numPages; p++ {
		if cmd := m.pages[p].Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages and routes them to pages.
func (m *ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ComputeLayout(msg.Width, msg.Height)
		m.overlay.SetSize(msg.Width, msg.Height)
		pageSize := tea.WindowSizeMsg{
			Width:  m.layout.ContentWidth,
			Height: m.layout.ContentHeight,
		}
		return m, m.broadcast(pageSize)

	case ProjectSelectedMsg:
		m.projectName = msg.Project.Name
		m.active = PageDocuments
		return m, tea.Batch(
			m.documents.SetProject(msg.Project.ID),
			m.tasks.SetProject(msg.Project.ID),
			m.graph.SetProject(msg.Project.ID),
		)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m, m.updatePage(m.active, msg)
	}

	// Page-specific messages (fetched pages, ticks, action results) are
	// broadcast: each page reacts only to its own types, and results must
	// land even when their page is off screen.
	return m, m.broadcast(msg)
}

func (m *ShellModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay.IsActive() {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	if msg.String() == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.activeCapturing() {
		return m, m.updatePage(m.active, msg)
	}

	switch msg.String() {
	case keyQuit:
		m.quitting = true
		return m, tea.Quit
	case keyTab:
		m.switchTo(m.active + 1)
		return m, nil
	case keyShiftTab:
		m.switchTo(m.active - 1)
		return m, nil
	case "1", "2", "3", "4":
		m.switchTo(Page(int(msg.String()[0] - '1')))
		return m, nil
	case keyHelp:
		m.overlay.Push(helpDialog{})
		return m, nil
	}

	return m, m.updatePage(m.active, msg)
}

func (m *ShellModel) switchTo(p Page) {
	if p < 0 {
		p = numPages - 1
	}
	if p >= numPages {
		p = 0
	}
	m.active = p
}

func (m *ShellModel) activeCapturing() bool {
	if c, ok := m.pages[m.active].(inputCapturer); ok {
		return c.capturingInput()
	}
	return false
}

func (m *ShellModel) updatePage(p Page, msg tea.Msg) tea.Cmd {
	updated, cmd := m.pages[p].Update(msg)
	m.pages[p] = updated
	return cmd
}

func (m *ShellModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, numPages)
	for p := Page(0); p < numPages; p++ {
		if cmd := m.updatePage(p, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// View renders the shell chrome around the active page.
func (m *ShellModel) View() string {
	if m.quitting {
		return ""
	}

	content := m.pages[m.active].View()

	var body string
	if m.layout.Compact {
		body = content
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderSidebar(),
			strings.Repeat(" ", sidebarGap),
			content,
		)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
	return m.overlay.View(view)
}

func (m *ShellModel) renderHeader() string {
	if !m.layout.Compact {
		head := HeaderStyle.Render("cot studio")
		if m.projectName != "" {
			head += SubtleStyle.Render(" · " + m.projectName)
		}
		return head
	}

	// Compact terminals fold the navigation into the header.
	tabs := make([]string, 0, numPages)
	for p := Page(0); p < numPages; p++ {
		label := fmt.Sprintf("%d %s", int(p)+1, p.Title())
		if p == m.active {
			tabs = append(tabs, SidebarActiveStyle.Render(label))
		} else {
			tabs = append(tabs, SidebarStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m *ShellModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("COT STUDIO"))
	b.WriteString("\n\n")

	for p := Page(0); p < numPages; p++ {
		marker := "  "
		style := SidebarStyle
		if p == m.active {
			marker = "> "
			style = SidebarActiveStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d %s", marker, int(p)+1, p.Title())))
		b.WriteString("\n")
	}

	if m.projectName != "" {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("project: "))
		b.WriteString(ValueStyle.Render(m.projectName))
	}

	return lipgloss.NewStyle().Width(m.layout.SidebarWidth).Render(b.String())
}

func (m *ShellModel) renderStatusBar() string {
	return StatusBarStyle.Render("tab next page · 1-4 jump · ? keys · q quit")
}

// helpDialog is the shell's key reference modal. Any key dismisses it.
type helpDialog struct{}

// Update implements Dialog.
func (helpDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return nil, nil
	}
	return helpDialog{}, nil
}

// View implements Dialog.
func (helpDialog) View() string {
	lines := []string{
		"tab / shift+tab   cycle pages",
		"1-4               jump to page",
		"j/k, arrows       move cursor",
		"pgup/pgdn         scroll a screen",
		"g / G             top / bottom",
		"/                 filter documents",
		"s                 cycle document sort",
		"enter             open detail / project",
		"n, r, d           new, rename, delete project",
		"esc               close detail or dialog",
		"q                 quit",
	}
	return strings.Join(lines, "\n")
}

// Width implements Dialog.
func (helpDialog) Width() int { return 48 }

// Height implements Dialog.
func (helpDialog) Height() int { return 11 }

// Title implements Dialog.
func (helpDialog) Title() string { return "Keys" }
