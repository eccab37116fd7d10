package browse

import (
	"fmt"
	"strings"

	"github.com/marqueehq/marquee/internal/types"
)

var tabTitles = [tabCount]string{"Events", "Favorites", "Tickets"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("  " + m.spinner.View() + " loading...\n")
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	var parts []string
	for t := tab(0); t < tabCount; t++ {
		title := fmt.Sprintf("%s (%d)", tabTitles[t], m.listSize(t))
		if t == m.activeTab {
			parts = append(parts, styleTabActive.Render(title))
		} else {
			parts = append(parts, styleTabInactive.Render(title))
		}
	}
	return " " + strings.Join(parts, " ")
}

// visibleRows is how many list rows fit between the tab bar and footer.
func (m Model) visibleRows() int {
	rows := m.height - 6
	if rows < 3 {
		rows = 10
	}
	return rows
}

func (m Model) renderList() string {
	switch m.activeTab {
	case tabTickets:
		return m.renderTickets()
	case tabFaves:
		return m.renderEvents(m.faveList, tabFaves)
	default:
		return m.renderEvents(m.eventList, tabEvents)
	}
}

func (m Model) renderEvents(list []types.Event, t tab) string {
	if len(list) == 0 {
		return styleDim.Render("  nothing here") + "\n"
	}

	var b strings.Builder
	start := m.offset[t]
	end := start + m.visibleRows()
	if end > len(list) {
		end = len(list)
	}

	for i := start; i < end; i++ {
		event := list[i]
		mark := "  "
		if m.opts.Favorites.IsFavorite(event.ID) {
			mark = styleFaveMark.Render("♥ ")
		}
		price := "free"
		if !event.IsFree {
			price = fmt.Sprintf("$%.2f", event.BaseTicketPrice)
		}
		line := fmt.Sprintf("%s%s · %s · %s", mark, event.Title, event.City, price)
		if i == m.cursor[t] {
			line = styleSelected.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func (m Model) renderTickets() string {
	if len(m.ticketRows) == 0 {
		return styleDim.Render("  no tickets") + "\n"
	}

	var b strings.Builder
	start := m.offset[tabTickets]
	end := start + m.visibleRows()
	if end > len(m.ticketRows) {
		end = len(m.ticketRows)
	}

	for i := start; i < end; i++ {
		ticket := m.ticketRows[i]
		name := ticket.EventID
		if ticket.EventName != nil {
			name = *ticket.EventName
		}
		line := fmt.Sprintf("%s · %s · %s", name, ticket.Status, ticket.Price)
		if i == m.cursor[tabTickets] {
			line = styleSelected.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.err != nil {
		return " " + styleError.Render("error: "+m.err.Error())
	}

	parts := []string{"tab: switch", "f: fave", "r: refresh", "q: quit"}
	footer := styleDim.Render(" " + strings.Join(parts, " · "))

	if m.opts.Favorites.Pending() > 0 {
		footer += "  " + m.spinner.View() + styleStatus.Render(" saving")
	} else if m.status != "" {
		footer += "  " + styleStatus.Render(m.status)
	}
	return footer
}
