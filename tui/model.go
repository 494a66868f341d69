package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/markets_table"
)

// Store is the part of dashboard.Store the terminal UI drives
type Store interface {
	Snapshot() dashboard.Snapshot
	Currencies() []string
	Subscribe() events.ISubscription
	Refresh(ctx context.Context) error
	ForceRefresh(ctx context.Context) error
	SetCurrency(ctx context.Context, currency string) error
	SetWindow(window string) error
	SetSort(sort bool)
	SetSymbols(symbols []string)
	SetTopN(n int)
	SetSearch(query string)
}

var _ Store = (*dashboard.Store)(nil)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeFilter
)

// updatedMsg tells the model the store changed
type updatedMsg struct{}

// doneMsg carries the result of a background store call
type doneMsg struct {
	action string
	err    error
}

// Model is the bubbletea model of the dashboard
type Model struct {
	ctx   context.Context
	store Store
	sub   events.ISubscription

	snap   dashboard.Snapshot
	table  table.Model
	search textinput.Model
	filter textinput.Model
	mode   inputMode

	busy   string
	status string
	width  int
	height int
}

// NewModel creates the UI model. The subscription is cancelled when ctx ends.
func NewModel(ctx context.Context, store Store) Model {
	search := textinput.New()
	search.Placeholder = "Enter coin name or symbol (e.g. bitcoin, BTC)"
	search.CharLimit = 64

	filter := textinput.New()
	filter.Placeholder = "Symbols, comma separated (empty shows all)"
	filter.CharLimit = 256

	m := Model{
		ctx:    ctx,
		store:  store,
		sub:    store.Subscribe(),
		search: search,
		filter: filter,
		table:  table.New(table.WithFocused(true), table.WithHeight(12)),
		width:  100,
	}
	m.applySnapshot(store.Snapshot())
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.sub)
}

// waitForUpdate blocks until the store emits
func waitForUpdate(sub events.ISubscription) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-sub.Chan(); !ok {
			return nil
		}
		sub.Take()
		return updatedMsg{}
	}
}

// run calls fn off the UI goroutine and reports its error
func run(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{action: action, err: fn()}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height/3))
		return m, nil

	case updatedMsg:
		m.applySnapshot(m.store.Snapshot())
		return m, waitForUpdate(m.sub)

	case doneMsg:
		m.busy = ""
		m.status = ""
		if msg.err != nil {
			m.status = msg.action + ": " + msg.err.Error()
			log.Warn().Err(msg.err).Str("action", msg.action).Msg("TUI: action failed")
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.snap.Selections

	switch msg.String() {
	case "q", "ctrl+c":
		m.sub.Cancel()
		return m, tea.Quit

	case "r":
		m.busy = "refreshing"
		return m, run("refresh", func() error { return m.store.ForceRefresh(m.ctx) })

	case "c":
		next := nextCurrency(m.store.Currencies(), sel.Currency)
		m.busy = "loading " + strings.ToUpper(next)
		return m, run("currency", func() error { return m.store.SetCurrency(m.ctx, next) })

	case "w":
		if err := m.store.SetWindow(string(nextWindow(sel.Window))); err != nil {
			m.status = err.Error()
		}
		return m, nil

	case "s":
		m.store.SetSort(!sel.Sort)
		return m, nil

	case "+", "=":
		m.store.SetTopN(sel.TopN + 1)
		return m, nil

	case "-":
		m.store.SetTopN(sel.TopN - 1)
		return m, nil

	case "/":
		m.mode = modeSearch
		m.search.SetValue(sel.Search)
		return m, m.search.Focus()

	case "f":
		m.mode = modeFilter
		m.filter.SetValue(strings.Join(sel.Symbols, ","))
		return m, m.filter.Focus()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := &m.search
	if m.mode == modeFilter {
		input = &m.filter
	}

	switch msg.String() {
	case "enter":
		if m.mode == modeSearch {
			m.store.SetSearch(strings.TrimSpace(input.Value()))
		} else {
			m.store.SetSymbols(strings.Split(input.Value(), ","))
		}
		fallthrough
	case "esc":
		input.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m *Model) applySnapshot(snap dashboard.Snapshot) {
	m.snap = snap

	columns := make([]table.Column, 0, len(snap.View.Columns))
	for i, title := range snap.View.Columns {
		width := 14
		if i == 0 {
			width = 20
		} else if i == 1 {
			width = 8
		}
		columns = append(columns, table.Column{Title: title, Width: width})
	}

	rows := make([]table.Row, 0, len(snap.View.Table))
	for _, r := range snap.View.Table {
		rows = append(rows, table.Row(markets_table.Row(r)))
	}

	// rows must be cleared before the columns shrink
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
}

func nextCurrency(currencies []string, current cg.Currency) string {
	if len(currencies) == 0 {
		return string(current)
	}
	i := slices.Index(currencies, string(current))
	return currencies[(i+1)%len(currencies)]
}

func nextWindow(current cg.ChangeWindow) cg.ChangeWindow {
	i := slices.Index(cg.AllChangeWindows, current)
	return cg.AllChangeWindows[(i+1)%len(cg.AllChangeWindows)]
}

// Run starts the terminal dashboard and blocks until the user quits or ctx ends
func Run(ctx context.Context, store Store) error {
	program := tea.NewProgram(NewModel(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
