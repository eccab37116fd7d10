// Package browse is the interactive full-screen event browser.
package browse

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marqueehq/marquee/internal/events"
	"github.com/marqueehq/marquee/internal/favorites"
	"github.com/marqueehq/marquee/internal/session"
	"github.com/marqueehq/marquee/internal/tickets"
	"github.com/marqueehq/marquee/internal/types"
)

// Options configure the browser.
type Options struct {
	Session   *session.Store
	Events    *events.Service
	Tickets   *tickets.Service
	Favorites *favorites.Service
}

// Run starts the browse UI and blocks until the user quits.
func Run(opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model, err := NewModel(ctx, opts)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

type tab int

const (
	tabEvents tab = iota
	tabFaves
	tabTickets
	tabCount
)

// Model implements the browse UI.
type Model struct {
	ctx  context.Context
	opts Options

	activeTab tab
	cursor    [tabCount]int
	offset    [tabCount]int

	eventList []types.Event
	faveList  []types.Event
	ticketRows []types.Ticket

	loading  bool
	spinner  spinner.Model
	status   string
	err      error
	width    int
	height   int
	quitting bool

	sessionChanges <-chan session.Change
}

// NewModel builds the initial model and starts the cross-process session
// watcher.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	changes, err := opts.Session.Watch(ctx)
	if err != nil {
		return Model{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:            ctx,
		opts:           opts,
		spinner:        sp,
		loading:        true,
		sessionChanges: changes,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadEvents(),
		m.loadFavorites(),
		m.loadTickets(),
		m.waitForSessionChange(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.eventList = msg.events
		}
		return m, nil

	case favoritesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.faveList = msg.events
		}
		return m, nil

	case ticketsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.ticketRows = msg.tickets
		}
		return m, nil

	case toggleSettledMsg:
		if msg.err != nil {
			m.status = "favorite change failed, restored"
		} else {
			m.status = ""
		}
		// Settle invalidated the cache; refetch to reconcile.
		m.faveList = m.opts.Favorites.Cached()
		return m, m.loadFavorites()

	case sessionChangedMsg:
		if msg.change.Status != session.StatusAuthenticated {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.waitForSessionChange()

	case spinner.TickMsg:
		if !m.loading && m.opts.Favorites.Pending() == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil

	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "r":
		m.loading = true
		m.opts.Events.Refresh()
		return m, tea.Batch(m.spinner.Tick, m.loadEvents(), m.loadFavorites(), m.loadTickets())

	case "f":
		return m.toggleCurrent()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	size := m.listSize(m.activeTab)
	if size == 0 {
		return
	}
	next := m.cursor[m.activeTab] + delta
	if next < 0 {
		next = 0
	}
	if next >= size {
		next = size - 1
	}
	m.cursor[m.activeTab] = next

	visible := m.visibleRows()
	if next < m.offset[m.activeTab] {
		m.offset[m.activeTab] = next
	}
	if next >= m.offset[m.activeTab]+visible {
		m.offset[m.activeTab] = next - visible + 1
	}
}

func (m Model) listSize(t tab) int {
	switch t {
	case tabEvents:
		return len(m.eventList)
	case tabFaves:
		return len(m.faveList)
	case tabTickets:
		return len(m.ticketRows)
	}
	return 0
}

// toggleCurrent flips the favorite under the cursor. The cache rewrite is
// synchronous, so the refreshed fave list already shows the intent.
func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	var event types.Event
	switch m.activeTab {
	case tabEvents:
		if len(m.eventList) == 0 {
			return m, nil
		}
		event = m.eventList[m.cursor[tabEvents]]
	case tabFaves:
		if len(m.faveList) == 0 {
			return m, nil
		}
		event = m.faveList[m.cursor[tabFaves]]
	default:
		return m, nil
	}

	settled := m.opts.Favorites.Toggle(m.ctx, event.ID, &event)
	m.faveList = m.opts.Favorites.Cached()
	m.moveCursor(0)
	return m, tea.Batch(m.spinner.Tick, waitForSettle(event.ID, settled))
}
