package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"quotebot/config"
	"quotebot/model"
	"quotebot/storage"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		headerHeight := 2
		inputHeight := 3
		statusHeight := 1
		vpHeight := msg.Height - headerHeight - inputHeight - statusHeight
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !a.ready {
			a.viewport = viewport.New(msg.Width, vpHeight)
			a.ready = true
		} else {
			a.viewport.Width = msg.Width
			a.viewport.Height = vpHeight
		}
		a.textarea.SetWidth(msg.Width - 2)
		a.updateViewportContent(true)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		if a.busy && a.current != nil && a.current.Kind == model.RenderLoading {
			a.updateViewportContent(true)
		}
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)

	case renderEventMsg:
		if !a.busy {
			// Stale emission from a turn that already completed.
			return a, a.waitForRender()
		}
		render := msg.Render
		a.current = &render
		a.updateViewportContent(true)
		return a, a.waitForRender()

	case turnDoneMsg:
		return a.handleTurnDone(msg)

	case markdownRenderedMsg:
		if msg.Generation == a.transcriptGen && msg.MessageIndex >= 0 && msg.MessageIndex < len(a.messages) {
			a.messages[msg.MessageIndex].Rendered = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, nil

	case sessionSavedMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[ui] session save failed: %v", msg.Err)
			}
			a.statusNote = "Save failed"
		}
		return a, nil

	case sessionsListMsg:
		if msg.Err == nil {
			a.sessionList = msg.Sessions
			if a.selectedSessionIdx >= len(a.sessionList) {
				a.selectedSessionIdx = 0
			}
		}
		return a, nil

	case sessionLoadedMsg:
		if a.busy {
			// The engine goroutine owns the transcript while a turn is in
			// flight; swapping sessions underneath it corrupts both.
			a.statusNote = "Wait for the reply to finish"
			return a, nil
		}
		if msg.Err != nil || msg.Session == nil {
			a.statusNote = "Could not load session"
			return a, nil
		}
		a.restoreSession(msg.Session)
		a.closeAllModals()
		a.updateViewportContent(true)
		return a, nil

	case sessionDeletedMsg:
		a.confirmDeleteSession = nil
		return a, a.loadSessions()

	case searchResultsMsg:
		if msg.Err == nil {
			a.searchResults = msg.Results
			a.selectedSearchIdx = 0
			if len(a.searchResults) == 0 {
				a.selectedSearchIdx = -1
			}
		}
		return a, nil

	case clipboardCopiedMsg:
		if msg.Err != nil {
			a.statusNote = "Copy failed"
		} else {
			a.statusNote = "Copied"
		}
		return a, nil
	}

	// Forward everything else to the focused components.
	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.statusNote = ""

	switch msg.String() {
	case "ctrl+c", "alt+q":
		return a, tea.Quit

	case "esc":
		if a.showHelp || a.showSessionManager || a.showSearch {
			a.closeAllModals()
			return a, nil
		}
		return a, nil

	case "alt+h":
		a.showHelp = !a.showHelp
		return a, nil
	}

	if a.showSessionManager {
		return a.handleSessionManagerKey(msg)
	}
	if a.showSearch {
		return a.handleSearchKey(msg)
	}
	if a.showHelp {
		return a, nil
	}

	switch msg.String() {
	case "alt+s":
		a.showSessionManager = true
		a.selectedSessionIdx = 0
		return a, a.loadSessions()

	case "alt+f":
		a.showSearch = true
		a.searchResults = nil
		a.selectedSearchIdx = -1
		a.searchInput.SetValue("")
		a.searchInput.Focus()
		return a, nil

	case "alt+y":
		if content, ok := a.lastAssistantContent(); ok {
			return a, copyToClipboard(content)
		}
		return a, nil

	case "enter":
		text := strings.TrimSpace(a.textarea.Value())
		if text == "" || a.busy {
			return a, nil
		}
		a.textarea.Reset()

		a.messages = append(a.messages, Message{
			Role:      "user",
			Content:   text,
			Rendered:  text,
			Timestamp: time.Now(),
		})
		a.busy = true
		loading := model.LoadingRender("Waiting for response...")
		a.current = &loading
		a.updateViewportContent(true)

		return a, tea.Batch(a.startTurn(text), a.waitForRender(), a.loadingSpinner.Tick)
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleTurnDone(msg turnDoneMsg) (tea.Model, tea.Cmd) {
	a.busy = false
	a.current = nil

	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[ui] turn failed: %v", msg.Err)
		}
		a.messages = append(a.messages, Message{
			Role:      "system",
			Content:   "Something went wrong. Please try again.",
			Rendered:  ErrorStyle.Render("Something went wrong. Please try again."),
			Timestamp: time.Now(),
		})
		a.updateViewportContent(true)
		return a, nil
	}

	render := msg.Turn.Render
	message := Message{
		Role:      "assistant",
		Content:   cardText(render),
		Timestamp: time.Now(),
	}

	var cmds []tea.Cmd
	switch render.Kind {
	case model.RenderText:
		message.Rendered = render.Text
		a.messages = append(a.messages, message)
		cmds = append(cmds, a.renderMarkdownAsync(len(a.messages)-1, render.Text))
	case model.RenderError:
		message.Role = "system"
		message.Rendered = ErrorStyle.Render(render.Text)
		a.messages = append(a.messages, message)
	default:
		message.Rendered = renderCard(render)
		a.messages = append(a.messages, message)
	}

	a.updateViewportContent(true)
	cmds = append(cmds, a.saveSession())
	return a, tea.Batch(cmds...)
}

// startTurn runs the engine turn off the UI goroutine. Interim renders land
// on renderCh and reach Update through waitForRender.
func (a AppView) startTurn(text string) tea.Cmd {
	engine := a.engine
	ch := a.renderCh
	return func() tea.Msg {
		turn, err := engine.SendMessage(context.Background(), text, func(r model.Render) {
			ch <- r
		})
		return turnDoneMsg{Turn: turn, Err: err}
	}
}

func (a AppView) waitForRender() tea.Cmd {
	ch := a.renderCh
	return func() tea.Msg {
		return renderEventMsg{Render: <-ch}
	}
}

func (a AppView) saveSession() tea.Cmd {
	session := a.engine.Session()
	archived := &storage.Session{
		ID:        session.ID,
		Name:      session.Name,
		Provider:  a.cfg.ProviderType,
		Model:     a.cfg.Model,
		CreatedAt: session.CreatedAt,
	}
	for _, msg := range session.Messages() {
		archived.Messages = append(archived.Messages, storage.Message{
			Role:      msg.Role,
			Name:      msg.Name,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}
	store := a.sessions
	return func() tea.Msg {
		return sessionSavedMsg{Err: store.Save(archived)}
	}
}

// restoreSession swaps the engine transcript and the display transcript to
// an archived session.
func (a *AppView) restoreSession(archived *storage.Session) {
	msgs := make([]model.Message, 0, len(archived.Messages))
	for _, m := range archived.Messages {
		msgs = append(msgs, model.Message{
			Role:      m.Role,
			Name:      m.Name,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}

	session := a.engine.Session()
	session.ID = archived.ID
	session.Name = archived.Name
	session.CreatedAt = archived.CreatedAt
	session.Restore(msgs)

	// Markdown renders still in flight belong to the previous transcript.
	a.transcriptGen++
	a.messages = a.messages[:0]
	for _, msg := range msgs {
		if msg.Role == "system" {
			continue
		}
		msg.Rendered = msg.Content
		a.messages = append(a.messages, msg)
	}
}

func copyToClipboard(content string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{Err: clipboard.WriteAll(content)}
	}
}
