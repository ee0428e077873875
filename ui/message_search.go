package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quotebot/storage"
)

const maxSearchResults = 15

func (a AppView) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		if a.selectedSearchIdx < len(a.searchResults)-1 {
			a.selectedSearchIdx++
		}
		return a, nil
	case "up":
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
		}
		return a, nil
	case "enter":
		if a.busy {
			a.statusNote = "Wait for the reply to finish"
			return a, nil
		}
		if a.selectedSearchIdx >= 0 && a.selectedSearchIdx < len(a.searchResults) {
			return a, a.loadSession(a.searchResults[a.selectedSearchIdx].SessionID)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)

	query := a.searchInput.Value()
	if query == "" {
		a.searchResults = nil
		a.selectedSearchIdx = -1
		return a, cmd
	}

	return a, tea.Batch(cmd, a.runSearch(query))
}

func renderMessageSearch(input textinput.Model, results []storage.SessionMessageMatch, selectedIdx, width, height int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Search all sessions") + "\n\n")
	b.WriteString(input.View() + "\n\n")

	if len(results) == 0 {
		b.WriteString(DimStyle.Render("No matches.") + "\n")
	}

	shown := results
	if len(shown) > maxSearchResults {
		shown = shown[:maxSearchResults]
	}

	for i, match := range shown {
		role := "You"
		if match.Role == "assistant" {
			role = "Assistant"
		}
		line := fmt.Sprintf("%s %s %s",
			DimStyle.Render(match.SessionName),
			DimStyle.Render("/ "+role+":"),
			match.Preview,
		)
		if i == selectedIdx {
			line = SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if len(results) > maxSearchResults {
		b.WriteString(DimStyle.Render(fmt.Sprintf("... and %d more", len(results)-maxSearchResults)) + "\n")
	}

	b.WriteString("\n" + FormatFooter("Up/Down", "Navigate", "Enter", "Open Session", "Esc", "Close"))

	box := cardBorderStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (a AppView) runSearch(query string) tea.Cmd {
	index := a.searchIndex
	return func() tea.Msg {
		results, err := index.SearchAllSessions(query)
		return searchResultsMsg{Results: results, Err: err}
	}
}
