// Package tui is the terminal timeline: a searchable, day-grouped view of
// captured entries.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iammorganparry/rewind/internal/models"
	"github.com/iammorganparry/rewind/internal/search"
)

const (
	sidebarWidth = 24
	refreshEvery = 2 * time.Second
)

// Timeline is the query surface the model reads from.
type Timeline interface {
	View(req *models.ViewRequest) (*models.ViewResponse, error)
	Stats() (*models.StatsResponse, error)
	Delete(id string) error
}

// Capturer controls the live capture feed.
type Capturer interface {
	Toggle(ctx context.Context) (bool, error)
	Status() models.CaptureStatus
}

// Categories are the sidebar entries, in display order.
var Categories = []string{
	models.CategoryAll,
	string(models.EntryTypeClipboard),
	string(models.EntryTypeFile),
	string(models.EntryTypeScreenshot),
	string(models.EntryTypeCode),
	string(models.EntryTypeNote),
}

type viewLoadedMsg struct {
	seq   int
	resp  *models.ViewResponse
	stats map[string]int
	err   error
}

type captureMsg struct {
	status models.CaptureStatus
	err    error
}

type deletedMsg struct {
	err error
}

type tickMsg time.Time

// Model is the root Bubble Tea model
type Model struct {
	width  int
	height int

	ctx  context.Context
	svc  Timeline
	feed Capturer
	loc  *time.Location
	now  func() time.Time

	input        textinput.Model
	inputFocused bool

	categoryIdx int
	mode        models.SearchMode
	grouped     bool

	// seq numbers issued queries; applied is the newest one shown.
	seq     int
	applied int
	view    *models.ViewResponse
	stats   map[string]int
	cursor  int

	capture  models.CaptureStatus
	err      error
	showHelp bool

	keys KeyMap
	help help.Model
}

// New creates the timeline model. feed may be nil.
func New(ctx context.Context, svc Timeline, feed Capturer, loc *time.Location) Model {
	ti := textinput.New()
	ti.Placeholder = "Search your memories..."
	ti.Prompt = "❯ "
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = 0
	ti.Width = 60

	if loc == nil {
		loc = time.Local
	}

	return Model{
		ctx:     ctx,
		svc:     svc,
		feed:    feed,
		loc:     loc,
		now:     time.Now,
		input:   ti,
		mode:    models.SearchModeText,
		grouped: true,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Run starts the full-screen timeline and blocks until it exits.
func Run(ctx context.Context, svc Timeline, feed Capturer, loc *time.Location) error {
	p := tea.NewProgram(New(ctx, svc, feed, loc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.queryCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) request() *models.ViewRequest {
	req := &models.ViewRequest{
		Query:    m.input.Value(),
		Category: Categories[m.categoryIdx],
		Mode:     m.mode,
	}
	if m.grouped {
		req.GroupBy = "day"
	}
	return req
}

// queryCmd issues a new query numbered after every earlier one.
func (m *Model) queryCmd() tea.Cmd {
	m.seq++
	seq, req, svc := m.seq, m.request(), m.svc
	return func() tea.Msg {
		resp, err := svc.View(req)
		if err != nil {
			return viewLoadedMsg{seq: seq, err: err}
		}
		stats, err := svc.Stats()
		if err != nil {
			return viewLoadedMsg{seq: seq, err: err}
		}
		return viewLoadedMsg{seq: seq, resp: resp, stats: stats.Categories}
	}
}

// requery returns the model together with a fresh query, so the updated
// sequence number is part of the returned model.
func (m Model) requery() (tea.Model, tea.Cmd) {
	cmd := m.queryCmd()
	return m, cmd
}

func (m Model) toggleCaptureCmd() tea.Cmd {
	ctx, feed := m.ctx, m.feed
	return func() tea.Msg {
		_, err := feed.Toggle(ctx)
		return captureMsg{status: feed.Status(), err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return deletedMsg{err: svc.Delete(id)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.width-8)
		m.help.Width = m.width
		return m, nil

	case viewLoadedMsg:
		// Results of superseded queries are dropped.
		if msg.seq < m.applied {
			return m, nil
		}
		m.applied = msg.seq
		m.err = msg.err
		if msg.err == nil {
			m.view = msg.resp
			m.stats = msg.stats
		}
		m.clampCursor()
		return m, nil

	case captureMsg:
		m.capture = msg.status
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m.requery()

	case tickMsg:
		if m.feed != nil {
			m.capture = m.feed.Status()
		}
		cmd := m.queryCmd()
		return m, tea.Batch(cmd, tickCmd())

	case tea.KeyMsg:
		if m.inputFocused {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), msg.Type == tea.KeyEnter:
		m.inputFocused = false
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.cursor = 0
	query := m.queryCmd()
	return m, tea.Batch(cmd, query)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Interrupt):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Focus):
		m.inputFocused = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.pageSize()
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.pageSize()
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.ordered()) - 1
	case key.Matches(msg, m.keys.NextCategory):
		m.categoryIdx = (m.categoryIdx + 1) % len(Categories)
		m.cursor = 0
		return m.requery()
	case key.Matches(msg, m.keys.PrevCategory):
		m.categoryIdx = (m.categoryIdx + len(Categories) - 1) % len(Categories)
		m.cursor = 0
		return m.requery()
	case key.Matches(msg, m.keys.ToggleMode):
		if m.mode == models.SearchModeSemantic {
			m.mode = models.SearchModeText
		} else {
			m.mode = models.SearchModeSemantic
		}
		m.cursor = 0
		return m.requery()
	case key.Matches(msg, m.keys.ToggleGroup):
		m.grouped = !m.grouped
		m.cursor = 0
		return m.requery()
	case key.Matches(msg, m.keys.Refresh):
		return m.requery()
	case key.Matches(msg, m.keys.Delete):
		if e, ok := m.selected(); ok {
			return m, m.deleteCmd(e.ID)
		}
	case key.Matches(msg, m.keys.Capture):
		if m.feed != nil {
			return m, m.toggleCaptureCmd()
		}
	}
	m.clampCursor()
	return m, nil
}

// ordered returns entries in display order: by day group when grouped.
func (m Model) ordered() []models.Entry {
	if m.view == nil {
		return nil
	}
	if !m.grouped || m.view.Groups == nil {
		return m.view.Entries
	}
	var out []models.Entry
	for _, g := range m.view.Groups {
		out = append(out, g.Entries...)
	}
	return out
}

func (m Model) selected() (models.Entry, bool) {
	entries := m.ordered()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return models.Entry{}, false
	}
	return entries[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ordered())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) pageSize() int {
	return max(1, m.bodyHeight()-2)
}

// bodyHeight is the space between the header and the search box.
func (m Model) bodyHeight() int {
	return max(3, m.height-6)
}

// View renders the model
func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	width := max(40, m.width)
	bodyHeight := m.bodyHeight()
	timelineWidth := width - sidebarWidth - 2

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(bodyHeight),
		m.renderTimeline(timelineWidth, bodyHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderInput(width),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	return HeaderStyle.Render("rewind") + DimStyle.Render("  your memory timeline")
}

func (m Model) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(SidebarTitleStyle.Render("Categories"))
	b.WriteString("\n")
	for i, c := range Categories {
		label := fmt.Sprintf("%-11s %4d", c, m.stats[c])
		if i == m.categoryIdx {
			b.WriteString(CategoryActiveStyle.Render("▸ " + label))
		} else {
			b.WriteString(CategoryStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return SidebarStyle.Width(sidebarWidth - 2).Height(height - 2).Render(b.String())
}

func (m Model) renderTimeline(width, height int) string {
	inner := height - 2
	lines, selectedLine := m.timelineLines(width - 4)

	// Scroll so the selected entry stays visible.
	offset := 0
	if selectedLine >= inner {
		offset = selectedLine - inner + 1
	}
	end := min(len(lines), offset+inner)
	visible := lines[min(offset, end):end]

	return TimelineStyle.Width(width - 2).Height(inner).Render(strings.Join(visible, "\n"))
}

// timelineLines renders every line of the timeline and reports which line
// holds the selected entry.
func (m Model) timelineLines(width int) ([]string, int) {
	var lines []string
	if m.err != nil {
		lines = append(lines, ErrorStyle.Render("error: "+m.err.Error()))
	}
	if m.view == nil {
		return append(lines, DimStyle.Render("Loading...")), 0
	}

	if m.view.Meta.Mode == models.SearchModeSemantic && strings.TrimSpace(m.input.Value()) != "" {
		lines = append(lines, RelevanceStyle.Render(fmt.Sprintf(
			"Found %d results · %d%% relevance", len(m.view.Matches), m.view.Relevance)))
	}

	if len(m.view.Entries) == 0 {
		return append(lines, DimStyle.Render("No memories found.")), 0
	}

	now := m.now()
	selectedLine, idx := 0, 0
	addEntries := func(entries []models.Entry) {
		for _, e := range entries {
			if idx == m.cursor {
				selectedLine = len(lines)
			}
			lines = append(lines, m.renderEntry(e, idx == m.cursor, now, width))
			idx++
		}
	}

	if m.grouped && m.view.Groups != nil {
		for _, g := range m.view.Groups {
			lines = append(lines, DayHeaderStyle.Render(DayLabel(g.Date, now, m.loc)))
			addEntries(g.Entries)
		}
	} else {
		addEntries(m.view.Entries)
	}
	return lines, selectedLine
}

func (m Model) renderEntry(e models.Entry, selected bool, now time.Time, width int) string {
	clock := "--:--"
	if at, ok := search.ParseTimestamp(e.Timestamp); ok {
		clock = at.In(m.loc).Format("15:04")
	}
	badge := typeStyle(e.Type).Render(fmt.Sprintf("%-10s", e.Type))
	ago := DimStyle.Render(TimeAgo(e.Timestamp, now))

	title := truncate(e.Title, max(10, width-lipgloss.Width(ago)-20))
	style := EntryTitleStyle
	marker := "  "
	if selected {
		style = EntrySelectedStyle
		marker = "▸ "
	}
	return marker + DimStyle.Render(clock) + " " + badge + " " + style.Render(title) + "  " + ago
}

func (m Model) renderInput(width int) string {
	style := InputStyle
	if m.inputFocused {
		style = InputFocusedStyle
	}
	return style.Width(width - 2).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	parts := []string{"mode: " + string(m.mode)}
	if m.view != nil {
		parts = append(parts, fmt.Sprintf("%d of %d entries", m.view.Meta.Filtered, m.view.Meta.Total))
	}
	status := StatusBarStyle.Render(strings.Join(parts, " · "))
	if m.capture.Active {
		status += StatusRunningStyle.Render("● capturing")
	}
	return status + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-12s", h.Key)))
			b.WriteString(HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render("press any key to close"))
	return HelpStyle.Render(b.String())
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
