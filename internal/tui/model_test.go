package tui

import (
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inksearch/internal/domain"
	"inksearch/internal/query"
	"inksearch/internal/search"
	"inksearch/internal/theme"
)

type fakeSession struct {
	mu        sync.Mutex
	searches  []query.Input
	filters   [][]query.Modifier
	cleared   int
	refreshed int
	retried   int
	resets    int
	listeners map[search.Token]search.Listener
	next      search.Token
	history   []domain.HistoryEntry
	removed   []string
	durable   bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{listeners: make(map[search.Token]search.Listener), durable: true}
}

func (f *fakeSession) ExecuteSearch(in query.Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, in)
}

func (f *fakeSession) ApplyFilters(mods ...query.Modifier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, mods)
}

func (f *fakeSession) ClearFilters() { f.cleared++ }
func (f *fakeSession) Refresh()      { f.refreshed++ }
func (f *fakeSession) Retry()        { f.retried++ }
func (f *fakeSession) Reset()        { f.resets++ }

func (f *fakeSession) Subscribe(fn search.Listener) search.Token {
	f.next++
	f.listeners[f.next] = fn
	return f.next
}

func (f *fakeSession) Unsubscribe(token search.Token) bool {
	_, ok := f.listeners[token]
	delete(f.listeners, token)
	return ok
}

func (f *fakeSession) Snapshot() search.SearchState {
	return search.SearchState{Phase: search.PhaseIdle}
}

func (f *fakeSession) History() []domain.HistoryEntry {
	return append([]domain.HistoryEntry(nil), f.history...)
}

func (f *fakeSession) RemoveHistory(label string) bool {
	f.removed = append(f.removed, label)
	for i, e := range f.history {
		if e.Label == label {
			f.history = append(f.history[:i], f.history[i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeSession) ClearHistory()        { f.history = nil }
func (f *fakeSession) HistoryDurable() bool { return f.durable }

func (f *fakeSession) lastSearch(t *testing.T) query.SearchQuery {
	t.Helper()
	require.NotEmpty(t, f.searches)
	return query.Normalize(f.searches[len(f.searches)-1])
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	return m
}

var sampleArtists = []domain.Artist{
	{ID: 1, Name: "Ink & Iron", Styles: []string{"traditional"}, City: "London", Difficulty: domain.DifficultyBeginner, Rating: 4.8, PriceMin: 80, PriceMax: 150, Available: true},
	{ID: 2, Name: "Koi Studio", Styles: []string{"japanese"}, City: "London", Difficulty: domain.DifficultyAdvanced, Rating: 4.9, PriceMin: 200, PriceMax: 600},
}

func succeeded(total int, items ...domain.Artist) stateMsg {
	return stateMsg{state: search.SearchState{
		Phase:      search.PhaseSucceeded,
		Items:      items,
		TotalCount: total,
		Facets:     domain.Facets{domain.FacetLocation: {{Value: "London", Count: len(items)}}},
		Duration:   12 * time.Millisecond,
	}}
}

func TestNew_SubscribesAndRunsInitialQuery(t *testing.T) {
	s := newFakeSession()
	m := New(s, theme.DefaultTheme(), "koi style:japanese")

	assert.Len(t, s.listeners, 1)
	q := s.lastSearch(t)
	assert.Equal(t, "koi", q.Text())
	assert.Equal(t, []string{"japanese"}, q.Styles())

	m.Close()
	assert.Empty(t, s.listeners)
}

func TestNew_EmptyInitialDoesNotSearch(t *testing.T) {
	s := newFakeSession()
	New(s, nil, "")
	assert.Empty(t, s.searches)
}

func TestTyping_SearchesOnEveryKeystroke(t *testing.T) {
	s := newFakeSession()
	m := New(s, nil, "")

	m = typeText(t, m, "koi")

	require.Len(t, s.searches, 3)
	assert.Equal(t, "k", s.searches[0].Text)
	assert.Equal(t, "koi", s.searches[2].Text)
	assert.Equal(t, "koi", m.input.Value())
}

func TestTyping_ParseErrorIsShownNotSearched(t *testing.T) {
	s := newFakeSession()
	m := New(s, nil, "")

	m = typeText(t, m, "style:nope")

	assert.NotEmpty(t, m.parseErr)
	assert.Contains(t, m.View(), "✗")
	for _, in := range s.searches {
		assert.Empty(t, in.Styles)
	}
}

func TestEscClearsQuery(t *testing.T) {
	s := newFakeSession()
	m := New(s, nil, "koi")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "", m.input.Value())
	assert.True(t, s.lastSearch(t).IsEmpty())
}

func TestStateMsg_RendersResults(t *testing.T) {
	m := New(newFakeSession(), nil, "")

	m, cmd := update(t, m, succeeded(2, sampleArtists...))
	assert.NotNil(t, cmd)

	assert.Len(t, m.table.Rows(), 2)
	view := m.View()
	assert.Contains(t, view, "2 artist(s)")
	assert.Contains(t, view, "Ink & Iron")
	assert.Contains(t, view, "Location")
}

func TestStateMsg_Failure(t *testing.T) {
	m := New(newFakeSession(), nil, "")

	m, _ = update(t, m, stateMsg{state: search.SearchState{
		Phase:       search.PhaseFailed,
		Error:       &domain.SearchError{Kind: domain.ErrorServer, Message: "backend exploded"},
		Suggestions: []domain.Suggestion{{Label: "Try Again", Action: domain.ActionRetry}},
	}})

	view := m.View()
	assert.Contains(t, view, "✗ The search service is having trouble")
	assert.Contains(t, view, "backend exploded")
	assert.Contains(t, view, "Try Again")
}

func TestStateMsg_FailureWithEmptyBody(t *testing.T) {
	m := New(newFakeSession(), nil, "")

	m, _ = update(t, m, stateMsg{state: search.SearchState{
		Phase: search.PhaseFailed,
		Error: domain.ClassifyStatus(503, ""),
	}})

	status := m.renderStatusBar()
	assert.Contains(t, status, "✗ The search service is having trouble")
	assert.Contains(t, status, "r to retry")

	m, _ = update(t, m, stateMsg{state: search.SearchState{
		Phase: search.PhaseFailed,
		Error: domain.ClassifyStatus(401, ""),
	}})
	status = m.renderStatusBar()
	assert.Contains(t, status, "✗ You need to sign in again")
	assert.NotContains(t, status, "to retry")
}

func TestStateMsg_NoResults(t *testing.T) {
	m := New(newFakeSession(), nil, "")
	m, _ = update(t, m, succeeded(0))
	assert.Contains(t, m.View(), "No artists match")
}

func TestBridge_KeepsLatestState(t *testing.T) {
	b := newBridge()
	b.push(search.SearchState{Version: 1})
	b.push(search.SearchState{Version: 2})
	b.push(search.SearchState{Version: 3})

	msg := waitForStateCmd(b)()
	assert.Equal(t, uint64(3), msg.(stateMsg).state.Version)
}

func TestFocus_ResultsNeedItems(t *testing.T) {
	m := New(newFakeSession(), nil, "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusInput, m.focus)

	m, _ = update(t, m, succeeded(2, sampleArtists...))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusResults, m.focus)

	// an empty result set sends focus back to the search box
	m, _ = update(t, m, succeeded(0))
	assert.Equal(t, focusInput, m.focus)
}

func resultsFocused(t *testing.T, s *fakeSession, text string, total int) Model {
	t.Helper()
	m := New(s, nil, text)
	m, _ = update(t, m, succeeded(total, sampleArtists...))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusResults, m.focus)
	return m
}

func TestResults_CycleSort(t *testing.T) {
	s := newFakeSession()
	m := resultsFocused(t, s, "koi", 2)

	m, _ = update(t, m, keyRunes("s"))

	require.Len(t, s.filters, 1)
	assert.Equal(t, query.SortRating, m.current.Sort())
	assert.Equal(t, "koi sort:rating", m.input.Value())
}

func TestResults_Paging(t *testing.T) {
	s := newFakeSession()
	m := resultsFocused(t, s, "koi", 45)

	m, _ = update(t, m, keyRunes("]"))
	assert.Equal(t, 2, m.current.Page())
	assert.Equal(t, "koi page:2", m.input.Value())

	m, _ = update(t, m, keyRunes("]"))
	m, _ = update(t, m, keyRunes("]"))
	assert.Equal(t, 3, m.current.Page())

	m, _ = update(t, m, keyRunes("["))
	assert.Equal(t, 2, m.current.Page())
	assert.Len(t, s.filters, 3)

	sent := query.Normalize(query.Input{Text: "koi"}).Merge(s.filters[2]...)
	assert.Equal(t, 2, sent.Page())
}

func TestResults_PagingKeepsFilters(t *testing.T) {
	s := newFakeSession()
	m := resultsFocused(t, s, "koi style:japanese available:yes", 45)

	m, _ = update(t, m, keyRunes("]"))

	assert.Equal(t, 2, m.current.Page())
	assert.Equal(t, []string{"japanese"}, m.current.Styles())
	assert.True(t, m.current.Available())
	assert.Equal(t, "koi style:japanese available:yes page:2", m.input.Value())
}

func TestResults_ToggleAvailableAndClear(t *testing.T) {
	s := newFakeSession()
	m := resultsFocused(t, s, "koi @london", 2)

	m, _ = update(t, m, keyRunes("a"))
	assert.True(t, m.current.Available())

	m, _ = update(t, m, keyRunes("F"))
	assert.Equal(t, 1, s.cleared)
	assert.Equal(t, "koi", m.input.Value())
}

func TestResults_Suggestions(t *testing.T) {
	s := newFakeSession()
	m := resultsFocused(t, s, "koi", 2)

	m, _ = update(t, m, stateMsg{state: search.SearchState{
		Phase:      search.PhaseSucceeded,
		Items:      sampleArtists,
		TotalCount: 2,
		Suggestions: []domain.Suggestion{
			{Label: "Try Again", Action: domain.ActionRetry},
			{Label: "Blackwork", Query: "style:blackwork", Action: domain.ActionPopular},
		},
	}})

	m, _ = update(t, m, keyRunes("1"))
	assert.Equal(t, 1, s.retried)

	m, _ = update(t, m, keyRunes("2"))
	assert.Equal(t, focusInput, m.focus)
	assert.Equal(t, "style:blackwork", m.input.Value())
	assert.Equal(t, []string{"blackwork"}, s.lastSearch(t).Styles())

	// out of range is ignored
	m.useSuggestion(7)
}

func TestResults_Detail(t *testing.T) {
	m := resultsFocused(t, newFakeSession(), "koi", 2)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.showDetail)
	assert.Contains(t, m.View(), "Taking bookings")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showDetail)
}

func TestResults_RefreshRetryReset(t *testing.T) {
	s := newFakeSession()
	m := resultsFocused(t, s, "koi", 2)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = update(t, m, keyRunes("r"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, 1, s.refreshed)
	assert.Equal(t, 1, s.retried)
	assert.Equal(t, 1, s.resets)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, focusInput, m.focus)
}

func TestHistory_ReplayAndRemove(t *testing.T) {
	s := newFakeSession()
	koi := query.Normalize(query.Input{Text: "koi", City: "London"})
	s.history = []domain.HistoryEntry{
		{Label: "koi", Target: koi.Target(), ResultCount: 2, Timestamp: time.Now()},
		{Label: "Tribal artists", Target: query.Normalize(query.Input{Styles: []string{"tribal"}}).Target(), ResultCount: 0, Timestamp: time.Now()},
	}
	m := New(s, nil, "")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	require.Equal(t, focusHistory, m.focus)
	m, _ = update(t, m, cmd())
	require.Len(t, m.history, 2)
	assert.Contains(t, m.View(), "Tribal artists")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = update(t, m, keyRunes("d"))
	m, _ = update(t, m, cmd())
	assert.Equal(t, []string{"Tribal artists"}, s.removed)
	assert.Len(t, m.history, 1)
	assert.Equal(t, 0, m.historyCursor)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusInput, m.focus)
	assert.True(t, koi.Equal(s.lastSearch(t)))
}

func TestHistory_NotDurable(t *testing.T) {
	s := newFakeSession()
	s.durable = false
	m := New(s, nil, "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Contains(t, m.View(), "(not saved)")
	assert.Contains(t, m.View(), "Nothing yet.")
}

func TestWindowResize(t *testing.T) {
	m := New(newFakeSession(), nil, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 112, m.input.Width)
	assert.Equal(t, 22, m.table.Height())
}

func TestNextSortMode(t *testing.T) {
	assert.Equal(t, query.SortRating, nextSortMode(query.SortRelevance))
	assert.Equal(t, query.SortRelevance, nextSortMode(query.SortNewest))
}

func TestWiderRadius(t *testing.T) {
	assert.Equal(t, 25, widerRadius(0))
	assert.Equal(t, 60, widerRadius(30))
	assert.Equal(t, query.MaxRadius, widerRadius(400))
}

func TestSetupModel(t *testing.T) {
	var saved string
	save := func(name string) error {
		saved = name
		return nil
	}

	m := NewSetupModel(save)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(SetupModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SetupModel)

	assert.NotNil(t, cmd)
	assert.Equal(t, "dark", saved)
	assert.Equal(t, "dark", m.Selected())
	assert.Equal(t, "", m.View())
}

func TestSetupModel_Cancel(t *testing.T) {
	m := NewSetupModel(nil)
	assert.Contains(t, m.View(), "Preview")

	next, _ := m.Update(keyRunes("q"))
	m = next.(SetupModel)
	assert.Equal(t, "", m.Selected())
	assert.Equal(t, "Setup cancelled.\n", m.View())
}

func TestSetupModel_SaveError(t *testing.T) {
	m := NewSetupModel(func(string) error { return errors.New("disk full") })

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SetupModel)

	assert.Equal(t, "", m.Selected())
	assert.EqualError(t, m.Err(), "disk full")
	assert.Contains(t, m.View(), "disk full")
}
