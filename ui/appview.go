// Package ui implements the terminal chat interface with bubbletea. The
// engine runs turns in the background; interim renders arrive over a channel
// and are replayed into the viewport as they land.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quotebot/chat"
	"quotebot/config"
	"quotebot/model"
	"quotebot/storage"
)

type AppView struct {
	cfg         *config.Config
	engine      *chat.Engine
	sessions    *storage.SessionStorage
	searchIndex *storage.SearchIndex

	// UI components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	// Display transcript. Mirrors the engine's session for user and plain
	// assistant turns; card turns carry their terminal rendering.
	messages []Message

	// Bumped whenever the display transcript is replaced wholesale, so
	// markdown results still in flight for the old transcript are dropped.
	transcriptGen int

	// Turn-in-flight state
	busy     bool
	current  *model.Render // latest interim render, cleared on turn completion
	renderCh chan model.Render

	showHelp bool

	// Session manager
	showSessionManager   bool
	sessionList          []storage.SessionMetadata
	selectedSessionIdx   int
	confirmDeleteSession *storage.SessionMetadata

	// Global message search
	showSearch        bool
	searchInput       textinput.Model
	searchResults     []storage.SessionMessageMatch
	selectedSearchIdx int

	// Transient footer note (copy/save feedback)
	statusNote string
}

func NewAppView(cfg *config.Config, engine *chat.Engine, sessions *storage.SessionStorage) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask about crypto, Microsoft, or type /book <isbn>..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline; plain Enter sends and is handled separately.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	searchInput := textinput.New()
	searchInput.Prompt = "Search all: "
	searchInput.CharLimit = 100

	view := AppView{
		cfg:         cfg,
		engine:      engine,
		sessions:    sessions,
		searchIndex: storage.NewSearchIndex(sessions),

		viewport:       vp,
		textarea:       ta,
		loadingSpinner: sp,

		renderCh:    make(chan model.Render, 16),
		searchInput: searchInput,

		selectedSearchIdx: -1,
	}

	// Seed the display transcript from a restored session.
	for _, msg := range engine.Session().Messages() {
		if msg.Role == "system" {
			continue
		}
		if msg.Rendered == "" {
			msg.Rendered = msg.Content
		}
		view.messages = append(view.messages, msg)
	}

	return view
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.loadingSpinner.Tick)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading quotebot..."
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if a.showSessionManager {
		currentID := a.engine.Session().ID
		return renderSessionManager(a.sessionList, a.selectedSessionIdx, currentID, a.confirmDeleteSession, a.width, a.height)
	}

	if a.showSearch {
		return renderMessageSearch(a.searchInput, a.searchResults, a.selectedSearchIdx, a.width, a.height)
	}

	// Title bar - "quotebot - model - session name"
	appText := AssistantStyle.Render("quotebot")
	modelText := TitleStyle.Render(fmt.Sprintf(" - %s", a.cfg.Model))
	sessionName := a.engine.Session().Name
	if sessionName == "" {
		sessionName = "New Session"
	}
	sessionText := UserStyle.Render(fmt.Sprintf(" - %s", sessionName))
	title := appText + modelText + sessionText

	statusBar := fmt.Sprintf("Alt+Q %s  Alt+S %s  Alt+F %s  Alt+Y %s  Alt+H %s  Alt+Enter %s  Enter %s",
		statusDescStyle.Render("Quit"),
		statusDescStyle.Render("Sessions"),
		statusDescStyle.Render("Search"),
		statusDescStyle.Render("Copy"),
		statusDescStyle.Render("Help"),
		statusDescStyle.Render("New Line"),
		statusDescStyle.Render("Send"),
	)
	statusBar = StatusStyle.Render(statusBar)
	if a.statusNote != "" {
		statusBar += "  " + SelectedStyle.Render(a.statusNote)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.viewport.View(),
		a.textarea.View(),
		statusBar,
	)
}

var statusDescStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)

// lastAssistantContent returns the plain content of the most recent
// assistant message, for clipboard copy.
func (a AppView) lastAssistantContent() (string, bool) {
	for i := len(a.messages) - 1; i >= 0; i-- {
		if a.messages[i].Role == "assistant" {
			return a.messages[i].Content, true
		}
	}
	return "", false
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showSessionManager = false
	a.showSearch = false
	a.confirmDeleteSession = nil
	if a.searchInput.Focused() {
		a.searchInput.Blur()
	}
}

func renderHelpModal(width, height int) string {
	lines := []string{
		TitleStyle.Render("Keybindings"),
		"",
		"Enter       Send message",
		"Alt+Enter   Insert newline",
		"Alt+S       Session manager",
		"Alt+F       Search all sessions",
		"Alt+Y       Copy last assistant reply",
		"Alt+H       Toggle this help",
		"Alt+Q       Quit",
		"",
		"Commands",
		"",
		"/book <isbn>   Check book stock directly",
		"",
		DimStyle.Render("Esc closes this window"),
	}

	box := cardBorderStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
