package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cotstudio/cot/internal/api"
)

// DefaultPollInterval is the task dashboard refresh period.
const DefaultPollInterval = 5 * time.Second

// taskChromeRows is the title and status bar around the task table.
const taskChromeRows = 3

const shortIDLen = 8

// TaskLister fetches the task listing. *api.Client satisfies it.
type TaskLister interface {
	ListTasks(ctx context.Context, params api.ListTasksParams) ([]api.Task, error)
}

// taskTickMsg schedules the next poll.
type taskTickMsg time.Time

// tasksLoadedMsg carries one polled snapshot. gen ties it to the project
// that was current when the poll started.
type tasksLoadedMsg struct {
	gen   int
	items []api.Task
	err   error
}

// TasksModel is the Bubble Tea model for the live task dashboard. It
// polls the server on a fixed interval; overlapping polls are skipped and
// the latest snapshot wins.
type TasksModel struct {
	ctx    context.Context
	lister TaskLister

	projectID string
	interval  time.Duration

	// gen increments on every project switch so late snapshots from the
	// previous project are dropped.
	gen int

	state ViewState

	tasks []api.Task
	table table.Model

	polling  bool
	pollErr  error
	lastPoll time.Time

	loading *LoadingState

	width  int
	height int
}

// NewTasksModel builds the task dashboard. Non-positive intervals fall
// back to DefaultPollInterval.
func NewTasksModel(ctx context.Context, lister TaskLister, projectID string, interval time.Duration) *TasksModel {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	m := &TasksModel{
		ctx:       ctx,
		lister:    lister,
		projectID: projectID,
		interval:  interval,
		state:     ViewStateList,
		loading:   NewLoadingState(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.loading.SetMessage("Polling tasks...")
	m.table = m.buildTable()
	return m
}

func (m *TasksModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Kind", Width: 14},
		{Title: "State", Width: 10},
		{Title: "Progress", Width: 10},
		{Title: "Age", Width: 8},
		{Title: "Document", Width: 12},
	}

	rows := make([]table.Row, len(m.tasks))
	for i, t := range m.tasks {
		rows[i] = table.Row{
			shortID(t.ID),
			t.Kind,
			t.State,
			formatProgress(t.State, t.Progress),
			formatAge(time.Since(t.CreatedAt)),
			shortID(t.DocumentID),
		}
	}

	availableHeight := m.height - taskChromeRows
	if availableHeight < 3 {
		availableHeight = 3
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(availableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	tbl.SetStyles(s)

	return tbl
}

func (m *TasksModel) rebuildTable() {
	m.table = m.buildTable()
}

// fetch snapshots the task list for the current project.
func (m *TasksModel) fetch() tea.Cmd {
	ctx := m.ctx
	lister := m.lister
	gen := m.gen
	params := api.ListTasksParams{ProjectID: m.projectID}

	return func() tea.Msg {
		items, err := lister.ListTasks(ctx, params)
		return tasksLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m *TasksModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return taskTickMsg(t)
	})
}

// SetProject repoints the dashboard and polls immediately. A snapshot
// still in flight for the previous project is discarded on arrival.
func (m *TasksModel) SetProject(projectID string) tea.Cmd {
	m.projectID = projectID
	m.gen++
	m.tasks = nil
	m.pollErr = nil
	m.rebuildTable()
	m.polling = true
	return tea.Batch(m.fetch(), m.loading.Init())
}

// Init starts the first poll and the tick loop.
func (m *TasksModel) Init() tea.Cmd {
	m.polling = true
	return tea.Batch(m.fetch(), m.tick(), m.loading.Init())
}

// Update handles messages and updates the model state.
func (m *TasksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildTable()
		return m, nil

	case taskTickMsg:
		if m.polling {
			// Previous poll still running; keep the clock going.
			return m, m.tick()
		}
		m.polling = true
		return m, tea.Batch(m.fetch(), m.tick(), m.loading.Init())

	case tasksLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.polling = false
		m.lastPoll = time.Now()
		if msg.err != nil {
			m.pollErr = msg.err
			return m, nil
		}
		m.pollErr = nil
		m.tasks = msg.items
		m.rebuildTable()
		return m, nil

	case spinner.TickMsg:
		if m.polling {
			return m, m.loading.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard.
func (m *TasksModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	title := "TASKS"
	if m.projectID != "" {
		title += " · " + m.projectID
	}

	sections := []string{
		HeaderStyle.Render(title),
		m.table.View(),
		m.renderStatusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *TasksModel) renderStatusBar() string {
	var status string
	if m.polling {
		status = m.loading.View()
	} else {
		status = countPrinter.Sprintf("%d tasks", len(m.tasks))
		if !m.lastPoll.IsZero() {
			status += " · updated " + m.lastPoll.Format("15:04:05")
		}
	}
	status += fmt.Sprintf(" · refreshes every %s · q quit", m.interval)

	bar := StatusBarStyle.Render(status)
	if m.pollErr != nil {
		bar += " " + WarningStyle.Render(fmt.Sprintf("poll failed: %v", m.pollErr))
	}
	return bar
}

// shortID trims a ULID down to a display prefix.
func shortID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// formatProgress renders the progress cell for a task state.
func formatProgress(state string, progress float64) string {
	switch state {
	case api.TaskStateQueued:
		return "-"
	case api.TaskStateDone:
		return "100%"
	default:
		pct := progress * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return fmt.Sprintf("%.0f%%", pct)
	}
}

// formatAge renders a task age compactly: 42s, 7m, 3h12m, 5d.
func formatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
