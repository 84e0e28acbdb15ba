package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// locationTitle capitalizes a location name for the status bar.
// "great hall" -> "Great Hall".
func locationTitle(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing
// current location, exits, inventory, and turn count.
func (m Model) renderStatusBar() string {
	s := m.game.Session

	var locName, exitStr string
	if s.Location != nil {
		locName = locationTitle(s.Location.StringAttr("name"))
		exitStr = strings.Join(m.game.ExitDirections(s.Location), ",")
	}

	left := fmt.Sprintf(" %s | Exits: %s", locName, exitStr)
	right := fmt.Sprintf("T:%d ", s.Turns)

	// Show carried item names if they fit, otherwise just the count.
	if carried := m.game.PropsIn(s.Inventory); len(carried) > 0 {
		names := make([]string, 0, len(carried))
		for _, p := range carried {
			names = append(names, p.StringAttr("name"))
		}
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(names, ", "), s.Turns)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", len(carried), s.Turns)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
