package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quotebot/storage"
)

func (a AppView) handleSessionManagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDeleteSession != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			id := a.confirmDeleteSession.ID
			return a, a.deleteSession(id)
		default:
			a.confirmDeleteSession = nil
			return a, nil
		}
	}

	switch msg.String() {
	case "j", "down":
		if a.selectedSessionIdx < len(a.sessionList)-1 {
			a.selectedSessionIdx++
		}
	case "k", "up":
		if a.selectedSessionIdx > 0 {
			a.selectedSessionIdx--
		}
	case "d":
		if a.selectedSessionIdx < len(a.sessionList) {
			meta := a.sessionList[a.selectedSessionIdx]
			a.confirmDeleteSession = &meta
		}
	case "enter":
		if a.busy {
			a.statusNote = "Wait for the reply to finish"
			return a, nil
		}
		if a.selectedSessionIdx < len(a.sessionList) {
			return a, a.loadSession(a.sessionList[a.selectedSessionIdx].ID)
		}
	}
	return a, nil
}

func renderSessionManager(sessions []storage.SessionMetadata, selectedIdx int, currentID string, confirmDelete *storage.SessionMetadata, width, height int) string {
	if confirmDelete != nil {
		lines := []string{
			TitleStyle.Render("Delete session?"),
			"",
			fmt.Sprintf("%q (%d messages)", confirmDelete.Name, confirmDelete.MessageCount),
			"",
			FormatFooter("y/Enter", "Delete", "Esc", "Cancel"),
		}
		box := cardBorderStyle.Render(strings.Join(lines, "\n"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Sessions") + "\n\n")

	if len(sessions) == 0 {
		b.WriteString(DimStyle.Render("No saved sessions yet.") + "\n")
	}

	for i, meta := range sessions {
		name := meta.Name
		if name == "" {
			name = "(unnamed)"
		}
		line := fmt.Sprintf("%s  %s  %s",
			meta.UpdatedAt.Format("2006-01-02 15:04"),
			name,
			DimStyle.Render(fmt.Sprintf("%d messages", meta.MessageCount)),
		)
		if meta.ID == currentID {
			line += DimStyle.Render("  (current)")
		}
		if i == selectedIdx {
			line = SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + FormatFooter("j/k", "Navigate", "Enter", "Open", "d", "Delete", "Esc", "Close"))

	box := cardBorderStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (a AppView) loadSessions() tea.Cmd {
	store := a.sessions
	return func() tea.Msg {
		sessions, err := store.List()
		return sessionsListMsg{Sessions: sessions, Err: err}
	}
}

func (a AppView) loadSession(id string) tea.Cmd {
	store := a.sessions
	return func() tea.Msg {
		session, err := store.Load(id)
		return sessionLoadedMsg{Session: session, Err: err}
	}
}

func (a AppView) deleteSession(id string) tea.Cmd {
	store := a.sessions
	return func() tea.Msg {
		return sessionDeletedMsg{ID: id, Err: store.Delete(id)}
	}
}
