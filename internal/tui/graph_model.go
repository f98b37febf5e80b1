package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/tui/vlist"
)

// Card geometry. Width and height include the border; the grid windows
// whole rows of cards, not individual cards.
const (
	cardWidth  = 24
	cardGap    = 2
	cardHeight = 4

	graphFallbackPerRow = 3
	graphChromeRows     = 2
	graphPerPage        = 60
)

// GraphReader is the slice of the API the graph browser needs.
// *api.Client satisfies it.
type GraphReader interface {
	GraphNodes(ctx context.Context, params api.GraphNodesParams) (*api.GraphNodesPage, error)
	GetGraphStats(ctx context.Context, projectID string) (*api.GraphStats, error)
}

// graphPageMsg carries one fetched node page.
type graphPageMsg struct {
	gen     int
	items   []api.GraphNode
	page    int
	total   int
	hasMore bool
	err     error
}

// graphStatsMsg carries the graph summary for the status bar.
type graphStatsMsg struct {
	gen   int
	stats *api.GraphStats
	err   error
}

// GraphModel is the Bubble Tea model for the knowledge-graph browser.
// Nodes render as fixed-size cards chunked into rows by the grid; each
// row is one windowing item, so resizing rechunks and the window engine
// never sees individual cards.
type GraphModel struct {
	ctx    context.Context
	reader GraphReader

	projectID string
	gen       int

	state ViewState
	err   error

	nodes []api.GraphNode
	grid  *vlist.Grid[api.GraphNode]
	list  *vlist.List[[]api.GraphNode]

	stats *api.GraphStats

	page  int
	total int

	width  int
	height int
}

// NewGraphModel builds the graph browser for one project.
func NewGraphModel(ctx context.Context, reader GraphReader, projectID string) (*GraphModel, error) {
	grid, err := vlist.NewGrid[api.GraphNode](cardWidth, cardGap, graphFallbackPerRow)
	if err != nil {
		return nil, err
	}

	params, err := vlist.NewParams(cardHeight, defaultHeight-graphChromeRows, vlist.DefaultBufferSize)
	if err != nil {
		return nil, err
	}

	m := &GraphModel{
		ctx:       ctx,
		reader:    reader,
		projectID: projectID,
		state:     ViewStateList,
		grid:      grid,
		width:     defaultWidth,
		height:    defaultHeight,
	}

	list, err := vlist.NewList(params, m.renderRow)
	if err != nil {
		return nil, err
	}
	m.list = list
	m.list.SetEmptyView(SubtleStyle.Render("No graph nodes yet. Annotations build the graph."))
	m.list.SetLoadingView(RenderLoadingIndicator())
	m.list.SetLoading(true)
	m.list.SetWidth(m.width)
	m.list.OnLoadMore(func() tea.Cmd { return m.fetchPage(m.page + 1) })

	return m, nil
}

func (m *GraphModel) renderRow(row []api.GraphNode, selected bool) string {
	gap := strings.Repeat(" ", cardGap)
	parts := make([]string, 0, len(row)*2)
	for i, n := range row {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, renderCard(n, selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderCard draws one node as a bordered card. The selected row swaps to
// a thick border so the cursor is visible without color.
func renderCard(n api.GraphNode, selected bool) string {
	style := BoxStyle.Width(cardWidth - borderPadding)
	if selected {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}

	inner := cardWidth - borderPadding - 2
	label := ValueStyle.Render(truncateLabel(n.Label, inner))
	meta := SubtleStyle.Render(truncateLabel(
		countPrinter.Sprintf("%s · %d links", n.Kind, n.Degree), inner))

	return style.Render(label + "\n" + meta)
}

// truncateLabel shortens a string to width runes, marking the cut.
func truncateLabel(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// rebuildRows rechunks the loaded nodes at the current grid width.
func (m *GraphModel) rebuildRows() {
	m.list.SetItems(m.grid.Rows(m.nodes))
}

func (m *GraphModel) fetchPage(page int) tea.Cmd {
	ctx := m.ctx
	reader := m.reader
	gen := m.gen
	params := api.GraphNodesParams{
		ProjectID: m.projectID,
		Page:      page,
		PerPage:   graphPerPage,
	}

	return func() tea.Msg {
		p, err := reader.GraphNodes(ctx, params)
		if err != nil {
			return graphPageMsg{gen: gen, page: page, err: err}
		}
		return graphPageMsg{
			gen:     gen,
			items:   p.Items,
			page:    p.Page,
			total:   p.Total,
			hasMore: p.HasMore,
		}
	}
}

func (m *GraphModel) fetchStats() tea.Cmd {
	ctx := m.ctx
	reader := m.reader
	gen := m.gen
	projectID := m.projectID

	return func() tea.Msg {
		stats, err := reader.GetGraphStats(ctx, projectID)
		return graphStatsMsg{gen: gen, stats: stats, err: err}
	}
}

// SetProject switches the browser to another project's graph.
func (m *GraphModel) SetProject(projectID string) tea.Cmd {
	m.projectID = projectID
	m.gen++
	m.nodes = nil
	m.stats = nil
	m.page = 0
	m.total = 0
	m.err = nil
	m.state = ViewStateList
	m.rebuildRows()
	m.list.SetHasMore(true)
	m.list.SetLoading(true)
	return tea.Batch(m.fetchPage(1), m.fetchStats())
}

// Init starts the first node page and the stats fetch.
func (m *GraphModel) Init() tea.Cmd {
	return tea.Batch(m.fetchPage(1), m.fetchStats())
}

// Update handles messages and updates the model state.
func (m *GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case graphPageMsg:
		return m.handlePageLoaded(msg)

	case graphStatsMsg:
		// Stats are decoration; a failed fetch just leaves them off.
		if msg.gen == m.gen && msg.err == nil {
			m.stats = msg.stats
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		if m.state != ViewStateList {
			return m, nil
		}
		_, cmd := m.list.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		_, cmd := m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *GraphModel) handlePageLoaded(msg graphPageMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}

	m.list.SetLoading(false)
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}

	m.page = msg.page
	m.total = msg.total
	m.nodes = append(m.nodes, msg.items...)
	m.rebuildRows()
	m.list.SetHasMore(msg.hasMore)
	return m, nil
}

// setSize rechunks the grid for the new width. Every resize recomputes
// items-per-row before the next render.
func (m *GraphModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetWidth(width)
	m.grid.SetWidth(m.list.ContentWidth())
	m.rebuildRows()

	h := height - graphChromeRows
	if h < 1 {
		h = 1
	}
	m.list.SetViewportHeight(h)
}

// View renders the current view.
func (m *GraphModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return CriticalStyle.Render("Error: "+m.err.Error()) +
			"\n\n" + HelpStyle.Render("Press q to quit.")
	case ViewStateLoading, ViewStateList, ViewStateDetail:
	}

	title := "KNOWLEDGE GRAPH"
	if m.projectID != "" {
		title += " · " + m.projectID
	}

	sections := []string{
		HeaderStyle.Render(title),
		m.list.View(),
		m.renderStatusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *GraphModel) renderStatusBar() string {
	var status string
	if m.stats != nil {
		status = countPrinter.Sprintf("%d nodes · %d edges · density %.3f · ",
			m.stats.Nodes, m.stats.Edges, m.stats.Density)
	}
	status += countPrinter.Sprintf("%d/%d loaded · %d per row · q quit",
		len(m.nodes), m.total, m.grid.PerRow())
	return StatusBarStyle.Render(status)
}
