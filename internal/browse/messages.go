package browse

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marqueehq/marquee/internal/session"
	"github.com/marqueehq/marquee/internal/types"
)

type eventsLoadedMsg struct {
	events []types.Event
	err    error
}

type favoritesLoadedMsg struct {
	events []types.Event
	err    error
}

type ticketsLoadedMsg struct {
	tickets []types.Ticket
	err     error
}

type toggleSettledMsg struct {
	eventID string
	err     error
}

type sessionChangedMsg struct {
	change session.Change
}

func (m Model) loadEvents() tea.Cmd {
	return func() tea.Msg {
		list, err := m.opts.Events.Events(m.ctx)
		return eventsLoadedMsg{events: list, err: err}
	}
}

func (m Model) loadFavorites() tea.Cmd {
	return func() tea.Msg {
		list, err := m.opts.Favorites.Favorites(m.ctx)
		return favoritesLoadedMsg{events: list, err: err}
	}
}

func (m Model) loadTickets() tea.Cmd {
	return func() tea.Msg {
		list, err := m.opts.Tickets.MyTickets(m.ctx)
		return ticketsLoadedMsg{tickets: list, err: err}
	}
}

func waitForSettle(eventID string, settled <-chan error) tea.Cmd {
	return func() tea.Msg {
		return toggleSettledMsg{eventID: eventID, err: <-settled}
	}
}

func (m Model) waitForSessionChange() tea.Cmd {
	return func() tea.Msg {
		change, ok := <-m.sessionChanges
		if !ok {
			return nil
		}
		return sessionChangedMsg{change: change}
	}
}
