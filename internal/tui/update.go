package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeTable()
		return m, nil

	case stateMsg:
		m.setState(msg.state)
		return m, waitForStateCmd(m.bridge)

	case historyLoadedMsg:
		m.history = msg.entries
		m.clampHistoryCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusHistory:
			return m.updateHistory(msg)
		case focusResults:
			return m.updateResults(msg)
		default:
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		if len(m.state.Items) > 0 {
			m.setFocus(focusResults)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.input.Value() != "" {
			m.runQuery("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.session.Refresh()
		m.message = "Refreshing"
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return m, nil

	case msg.String() == "ctrl+h":
		return m.openHistory()
	}

	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.message = ""
		m.search()
	}

	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDetail {
		if key.Matches(msg, m.keys.Back, m.keys.Enter) {
			m.showDetail = false
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Back):
		m.setFocus(focusInput)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if _, ok := m.selectedArtist(); ok {
			m.showDetail = true
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		page, limit := m.current.Page(), m.current.Limit()
		if page*limit < m.state.TotalCount {
			m.turnPage(page + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if page := m.current.Page(); page > 1 {
			m.turnPage(page - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		next := nextSortMode(m.current.Sort())
		m.applyFilters(query.SetSort(next))
		m.message = "Sorted by " + string(next)
		return m, nil

	case key.Matches(msg, m.keys.ToggleAvailable):
		m.applyFilters(query.SetAvailable(!m.current.Available()))
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.clearFilters()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.session.Refresh()
		m.message = "Refreshing"
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		m.session.Retry()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return m, nil

	case key.Matches(msg, m.keys.History):
		return m.openHistory()

	case key.Matches(msg, m.keys.Suggestion):
		m.useSuggestion(int(msg.String()[0] - '1'))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.History):
		m.setFocus(focusInput)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.historyCursor < len(m.history)-1 {
			m.historyCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if len(m.history) == 0 {
			return m, nil
		}
		entry := m.history[m.historyCursor]
		in, err := query.ParseTarget(entry.Target)
		if err != nil {
			m.message = fmt.Sprintf("Cannot replay %q: %v", entry.Label, err)
			return m, nil
		}
		m.setFocus(focusInput)
		m.runQuery(query.Format(query.Normalize(in)))
		return m, nil

	case key.Matches(msg, m.keys.DeleteHistory):
		if len(m.history) == 0 {
			return m, nil
		}
		return m, removeHistoryCmd(m.session, m.history[m.historyCursor].Label)

	case key.Matches(msg, m.keys.ClearHistory):
		return m, clearHistoryCmd(m.session)

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	m.setFocus(focusHistory)
	m.historyCursor = 0
	return m, loadHistoryCmd(m.session)
}

func (m *Model) reset() {
	m.session.Reset()
	m.current = query.Normalize(query.Input{})
	m.input.SetValue("")
	m.parseErr = ""
	m.message = ""
	m.showDetail = false
	m.setFocus(focusInput)
}

func (m *Model) clearFilters() {
	m.current = m.current.WithoutFilters()
	m.input.SetValue(query.Format(m.current))
	m.input.CursorEnd()
	m.parseErr = ""
	m.session.ClearFilters()
}

// acts on the i-th suggestion of the current state
func (m *Model) useSuggestion(i int) {
	if i < 0 || i >= len(m.state.Suggestions) {
		return
	}
	s := m.state.Suggestions[i]

	if s.IsQuery() {
		m.setFocus(focusInput)
		m.runQuery(s.Query)
		return
	}

	switch s.Action {
	case domain.ActionRetry, domain.ActionCheckConnection, domain.ActionWait:
		m.session.Retry()
	case domain.ActionBroadenFilters:
		m.clearFilters()
	case domain.ActionTryNearby:
		m.applyFilters(query.SetRadius(widerRadius(m.current.Radius())))
	case domain.ActionCheckSpelling:
		m.setFocus(focusInput)
	default:
		m.message = s.Label
	}
}

func nextSortMode(current query.SortMode) query.SortMode {
	i := slices.Index(query.SortModes, current)
	return query.SortModes[(i+1)%len(query.SortModes)]
}

func widerRadius(km int) int {
	if km <= 0 {
		return 25
	}
	return min(km*2, query.MaxRadius)
}
