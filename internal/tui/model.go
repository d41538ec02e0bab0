package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inksearch/internal/display"
	"inksearch/internal/domain"
	"inksearch/internal/query"
	"inksearch/internal/search"
	"inksearch/internal/theme"
)

type focus int

const (
	focusInput focus = iota
	focusResults
	focusHistory
)

type Model struct {
	session Session
	bridge  *bridge
	token   search.Token

	// last query sent, as shown in the search box
	current query.SearchQuery
	state   search.SearchState

	history       []domain.HistoryEntry
	historyCursor int

	input   textinput.Model
	table   table.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus      focus
	showDetail bool
	parseErr   string
	message    string

	width  int
	height int

	theme  *theme.Theme
	styles *theme.Styles
}

// New subscribes to the session and returns a model whose search box starts
// with initial, which is searched immediately when not empty.
func New(session Session, themeObj *theme.Theme, initial string) Model {
	if themeObj == nil {
		themeObj = theme.GetDefaultTheme()
	}
	styles := theme.NewStyles(themeObj)

	columns := []table.Column{
		{Title: "Artist", Width: 24},
		{Title: "Styles", Width: 28},
		{Title: "Location", Width: 20},
		{Title: "Level", Width: 14},
		{Title: "Rating", Width: 11},
		{Title: "Price", Width: 12},
		{Title: "Open", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(themeObj.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(themeObj.SelectedFg)).
		Background(lipgloss.Color(themeObj.SelectedBg)).
		Bold(true)
	t.SetStyles(s)

	si := textinput.New()
	si.Placeholder = "Search artists, e.g. koi style:japanese @london price:100-300"
	si.Prompt = "› "
	si.CharLimit = 200
	si.Width = 70
	si.SetValue(initial)
	si.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Info

	b := newBridge()

	m := Model{
		session: session,
		bridge:  b,
		state:   session.Snapshot(),
		history: []domain.HistoryEntry{},
		input:   si,
		table:   t,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		focus:   focusInput,
		theme:   themeObj,
		styles:  styles,
	}
	m.token = session.Subscribe(b.push)

	if initial != "" {
		m.search()
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForStateCmd(m.bridge),
		loadHistoryCmd(m.session),
	)
}

// Close detaches the model from its session.
func (m Model) Close() {
	m.session.Unsubscribe(m.token)
}

// parses the search box and hands it to the session
func (m *Model) search() {
	in, err := query.Parse(m.input.Value())
	if err != nil {
		m.parseErr = err.Error()
		return
	}

	m.parseErr = ""
	m.current = query.Normalize(in)
	m.session.ExecuteSearch(in)
}

// applies modifiers to the current query, restarting from the first page
// unless a modifier picks a page
func (m *Model) applyFilters(mods ...query.Modifier) {
	all := append([]query.Modifier{query.SetPage(query.DefaultPage)}, mods...)
	m.current = m.current.Merge(all...)
	m.input.SetValue(query.Format(m.current))
	m.input.CursorEnd()
	m.parseErr = ""
	m.session.ApplyFilters(mods...)
}

// moves to another page of the current query, keeping every filter
func (m *Model) turnPage(page int) {
	m.current = m.current.WithPage(page)
	m.input.SetValue(query.Format(m.current))
	m.input.CursorEnd()
	m.parseErr = ""
	m.session.ApplyFilters(query.SetPage(page))
}

func (m *Model) runQuery(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.search()
}

func (m *Model) setState(s search.SearchState) {
	m.state = s

	rows := make([]table.Row, 0, len(s.Items))
	for _, a := range s.Items {
		rows = append(rows, artistToRow(a))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}

	if len(rows) == 0 {
		m.showDetail = false
		if m.focus == focusResults {
			m.setFocus(focusInput)
		}
	}

	// history changes on every settled search
	if s.Phase == search.PhaseSucceeded {
		m.history = m.session.History()
		m.clampHistoryCursor()
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		m.table.Blur()
	} else {
		m.input.Blur()
		if f == focusResults {
			m.table.Focus()
		} else {
			m.table.Blur()
		}
	}
}

func (m *Model) clampHistoryCursor() {
	if m.historyCursor >= len(m.history) {
		m.historyCursor = len(m.history) - 1
	}
	if m.historyCursor < 0 {
		m.historyCursor = 0
	}
}

func (m *Model) selectedArtist() (domain.Artist, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.state.Items) {
		return domain.Artist{}, false
	}
	return m.state.Items[i], true
}

func (m *Model) resizeTable() {
	if m.width > 0 {
		m.input.Width = max(m.width-8, 20)
	}
	if m.height > 0 {
		// search box, status, facets, suggestions, help
		m.table.SetHeight(max(m.height-18, 3))
	}
}

func artistToRow(a domain.Artist) table.Row {
	return table.Row{
		display.Truncate(a.Name, 24),
		display.Truncate(display.FormatStyles(a.Styles), 28),
		display.Truncate(display.FormatLocation(a.City, a.Postcode), 20),
		display.GetDifficultyIcon(a.Difficulty) + " " + orDash(string(a.Difficulty)),
		display.FormatRating(a.Rating),
		display.FormatPrice(a.PriceMin, a.PriceMax),
		display.GetAvailabilityIcon(a.Available),
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
