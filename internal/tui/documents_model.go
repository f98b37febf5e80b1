package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cotstudio/cot/internal/api"
	"github.com/cotstudio/cot/internal/tui/vlist"
)

// countPrinter formats counts with thousands separators for status bars.
var countPrinter = message.NewPrinter(language.English)

// DocumentLister fetches document pages. *api.Client satisfies it.
type DocumentLister interface {
	ListDocuments(ctx context.Context, params api.ListDocumentsParams) (*api.DocumentsPage, error)
}

// documentsPageMsg carries one fetched page back into the model. gen
// ties it to the project and sort order that requested it.
type documentsPageMsg struct {
	gen     int
	items   []api.Document
	page    int
	total   int
	hasMore bool
	err     error
}

// docChromeRows is the header, column header and status bar around the
// document list.
const docChromeRows = 3

const docRowHeight = 1

func documentColumns() []vlist.Column[api.Document] {
	return []vlist.Column[api.Document]{
		{Key: "title", Title: "Title", Width: 38},
		{Key: "status", Title: "Status", Width: 12},
		{Key: "updatedat", Title: "Updated", Width: 18},
		{Key: "annotationcount", Title: "Ann", Width: 5},
	}
}

// DocumentsModel is the Bubble Tea model for the document browser. It
// windows the loaded set through vlist and pulls further pages from the
// server as the viewport approaches the bottom.
type DocumentsModel struct {
	ctx    context.Context
	lister DocumentLister

	projectID string
	perPage   int
	sortBy    SortField

	// gen increments whenever project or sort changes, so pages fetched
	// for the previous view are dropped on arrival.
	gen int

	state ViewState
	err   error

	// all is the loaded set; the list holds the filtered view of it.
	all  []api.Document
	list *vlist.List[api.Document]
	cols *vlist.Table[api.Document]

	textInput  textinput.Model
	showFilter bool

	// page is the last page the server returned; total its reported count.
	page  int
	total int

	width  int
	height int
}

// NewDocumentsModel builds the document browser for one project. An empty
// projectID lists documents across all projects.
func NewDocumentsModel(ctx context.Context, lister DocumentLister, projectID string) (*DocumentsModel, error) {
	params, err := vlist.NewParams(docRowHeight, defaultHeight-docChromeRows, vlist.DefaultBufferSize)
	if err != nil {
		return nil, err
	}

	m := &DocumentsModel{
		ctx:       ctx,
		lister:    lister,
		projectID: projectID,
		perPage:   api.DefaultPerPage,
		state:     ViewStateList,
		cols:      vlist.NewTable(documentColumns()...),
		textInput: newTextInput(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.textInput.Placeholder = "filter loaded documents"

	list, err := vlist.NewList(params, m.renderRow)
	if err != nil {
		return nil, err
	}
	m.list = list
	m.list.SetEmptyView(SubtleStyle.Render("No documents."))
	m.list.SetLoadingView(RenderLoadingIndicator())
	m.list.SetLoading(true)
	m.list.SetWidth(m.width)
	m.list.OnLoadMore(m.nextPage)

	return m, nil
}

func (m *DocumentsModel) renderRow(item api.Document, selected bool) string {
	line := m.cols.Line(item)
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

// nextPage is the load-gate command factory.
func (m *DocumentsModel) nextPage() tea.Cmd {
	return m.fetchPage(m.page + 1)
}

// fetchPage builds the command that loads one page. References are
// captured before the closure so the command never reads model fields
// concurrently.
func (m *DocumentsModel) fetchPage(page int) tea.Cmd {
	ctx := m.ctx
	lister := m.lister
	gen := m.gen
	params := api.ListDocumentsParams{
		ProjectID: m.projectID,
		Page:      page,
		PerPage:   m.perPage,
		Sort:      m.sortBy.apiSort(),
	}

	return func() tea.Msg {
		p, err := lister.ListDocuments(ctx, params)
		if err != nil {
			return documentsPageMsg{gen: gen, page: page, err: err}
		}
		return documentsPageMsg{
			gen:     gen,
			items:   p.Items,
			page:    p.Page,
			total:   p.Total,
			hasMore: p.HasMore,
		}
	}
}

// SetProject switches the browser to another project and starts the
// first fetch over.
func (m *DocumentsModel) SetProject(projectID string) tea.Cmd {
	m.projectID = projectID
	m.gen++
	m.all = nil
	m.page = 0
	m.total = 0
	m.err = nil
	m.state = ViewStateList
	m.showFilter = false
	m.textInput.SetValue("")
	m.list.SetItems(nil)
	m.list.SetHasMore(true)
	m.list.SetLoading(true)
	return m.fetchPage(1)
}

// Init starts the first page load.
func (m *DocumentsModel) Init() tea.Cmd {
	return m.fetchPage(1)
}

// Update handles messages and updates the model state.
func (m *DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case documentsPageMsg:
		return m.handlePageLoaded(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.MouseMsg:
		_, cmd := m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DocumentsModel) handlePageLoaded(msg documentsPageMsg) (tea.Model, tea.Cmd) {
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
	m.all = append(m.all, msg.items...)
	m.list.SetHasMore(msg.hasMore)
	m.applyFilter(m.textInput.Value())
	return m, nil
}

func (m *DocumentsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showFilter {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEnter:
		if m.state == ViewStateList && m.list.SelectedItem() != nil {
			m.state = ViewStateDetail
		}
		return m, nil
	case keyEsc:
		if m.state == ViewStateDetail {
			m.state = ViewStateList
			return m, nil
		}
		if m.textInput.Value() != "" {
			m.textInput.SetValue("")
			m.applyFilter("")
		}
		return m, nil
	case keySlash:
		if m.state == ViewStateList {
			m.showFilter = true
			m.textInput.Focus()
			m.resizeList()
			return m, textinput.Blink
		}
		return m, nil
	case keyS:
		if m.state == ViewStateList {
			return m, m.cycleSort()
		}
		return m, nil
	}

	if m.state != ViewStateList {
		return m, nil
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *DocumentsModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.showFilter = false
		m.textInput.Blur()
		m.applyFilter(m.textInput.Value())
		m.resizeList()
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// applyFilter narrows the list to loaded documents matching the query on
// title or status. The filter never triggers a fetch.
func (m *DocumentsModel) applyFilter(filterText string) {
	if filterText == "" {
		m.list.SetItems(m.all)
		return
	}

	query := strings.ToLower(filterText)
	filtered := []api.Document{}
	for _, d := range m.all {
		if strings.Contains(strings.ToLower(d.Title), query) ||
			strings.Contains(strings.ToLower(d.Status), query) {
			filtered = append(filtered, d)
		}
	}
	m.list.SetItems(filtered)
}

// cycleSort advances the sort field and refetches from page one. Sorting
// happens server-side: re-sorting only the loaded pages would misstate
// the global order.
func (m *DocumentsModel) cycleSort() tea.Cmd {
	m.sortBy = (m.sortBy + 1) % numSortFields
	m.gen++
	m.all = nil
	m.page = 0
	m.total = 0
	m.list.SetItems(nil)
	m.list.SetHasMore(true)
	m.list.SetLoading(true)
	return m.fetchPage(1)
}

func (m *DocumentsModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetWidth(width)
	m.resizeList()
}

func (m *DocumentsModel) resizeList() {
	chrome := docChromeRows
	if m.showFilter {
		chrome++
	}
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	m.list.SetViewportHeight(h)
}

// capturingInput reports whether plain keys belong to the filter input.
func (m *DocumentsModel) capturingInput() bool {
	return m.showFilter
}

// View renders the current view.
func (m *DocumentsModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return CriticalStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n\n" + HelpStyle.Render("Press q to quit.")
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateLoading, ViewStateList:
	}
	return m.renderListView()
}

func (m *DocumentsModel) renderListView() string {
	title := "DOCUMENTS"
	if m.projectID != "" {
		title += " · " + m.projectID
	}

	sections := []string{
		HeaderStyle.Render(title),
		InfoStyle.Render(m.cols.Header()),
		m.list.View(),
		m.renderStatusBar(),
	}
	if m.showFilter {
		sections = append(sections, LabelStyle.Render("Filter: ")+m.textInput.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DocumentsModel) renderStatusBar() string {
	status := countPrinter.Sprintf("%d/%d documents", len(m.all), m.total)
	if m.list.Loading() && len(m.all) > 0 {
		status += " · loading more"
	}
	if m.textInput.Value() != "" {
		status += countPrinter.Sprintf(" · filtered %d/%d", m.list.ItemCount(), len(m.all))
	}
	status += " · sort: " + m.sortBy.Label()
	return StatusBarStyle.Render(status + " · s sort · / filter · enter detail · q quit")
}

func (m *DocumentsModel) renderDetailView() string {
	doc := m.list.SelectedItem()
	if doc == nil {
		return SubtleStyle.Render("Nothing selected.")
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render("DOCUMENT DETAIL"))
	content.WriteString("\n\n")

	writeField := func(label, value string) {
		content.WriteString(LabelStyle.Render(label))
		content.WriteString(ValueStyle.Render(value))
		content.WriteString("\n")
	}

	writeField("Title:       ", doc.Title)
	writeField("ID:          ", doc.ID)
	writeField("Status:      ", doc.Status)
	if doc.MimeType != "" {
		writeField("Type:        ", doc.MimeType)
	}
	writeField("Size:        ", formatBytes(doc.SizeBytes))
	writeField("Annotations: ", countPrinter.Sprintf("%d", doc.AnnotationCount))
	if len(doc.Tags) > 0 {
		writeField("Tags:        ", strings.Join(doc.Tags, ", "))
	}
	if doc.Source != "" {
		writeField("Source:      ", doc.Source)
	}
	writeField("Created:     ", doc.CreatedAt.Format("2006-01-02 15:04"))
	writeField("Updated:     ", doc.UpdatedAt.Format("2006-01-02 15:04"))

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	return BoxStyle.Width(m.width - borderPadding).Render(content.String())
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
