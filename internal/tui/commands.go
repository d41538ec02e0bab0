package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"inksearch/internal/domain"
	"inksearch/internal/query"
	"inksearch/internal/search"
)

// Session is the part of the search controller the interface drives.
type Session interface {
	ExecuteSearch(in query.Input)
	ApplyFilters(mods ...query.Modifier)
	ClearFilters()
	Refresh()
	Retry()
	Reset()
	Subscribe(fn search.Listener) search.Token
	Unsubscribe(token search.Token) bool
	Snapshot() search.SearchState
	History() []domain.HistoryEntry
	RemoveHistory(label string) bool
	ClearHistory()
	HistoryDurable() bool
}

// stateMsg carries a state published by the controller
type stateMsg struct {
	state search.SearchState
}

// historyLoadedMsg is sent after the history list may have changed
type historyLoadedMsg struct {
	entries []domain.HistoryEntry
}

// bridge forwards controller states into the program. Listeners run on the
// controller loop, so push never blocks: a newer state replaces one that
// has not been read yet.
type bridge struct {
	states chan search.SearchState
}

func newBridge() *bridge {
	return &bridge{states: make(chan search.SearchState, 1)}
}

func (b *bridge) push(s search.SearchState) {
	for {
		select {
		case b.states <- s:
			return
		default:
		}

		select {
		case <-b.states:
		default:
		}
	}
}

// waitForStateCmd blocks until the next state is published
func waitForStateCmd(b *bridge) tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: <-b.states}
	}
}

func loadHistoryCmd(s Session) tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{entries: s.History()}
	}
}

func removeHistoryCmd(s Session, label string) tea.Cmd {
	return func() tea.Msg {
		s.RemoveHistory(label)
		return historyLoadedMsg{entries: s.History()}
	}
}

func clearHistoryCmd(s Session) tea.Cmd {
	return func() tea.Msg {
		s.ClearHistory()
		return historyLoadedMsg{entries: s.History()}
	}
}
