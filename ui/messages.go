package ui

import (
	"quotebot/model"
	"quotebot/storage"
)

type Message = model.Message

// renderEventMsg carries one interim render emitted while a turn is in
// flight: the loading line, accumulated streaming text or a tool's
// progress render.
type renderEventMsg struct {
	Render model.Render
}

// turnDoneMsg signals that the engine finished the turn. The turn's render
// supersedes every interim render.
type turnDoneMsg struct {
	Turn model.Turn
	Err  error
}

// markdownRenderedMsg delivers a finished async markdown render for the
// message at the given transcript index. Generation pins the result to the
// display transcript it was started against.
type markdownRenderedMsg struct {
	Generation   int
	MessageIndex int
	Rendered     string
}

type sessionSavedMsg struct {
	Err error
}

type sessionsListMsg struct {
	Sessions []storage.SessionMetadata
	Err      error
}

type sessionLoadedMsg struct {
	Session *storage.Session
	Err     error
}

type sessionDeletedMsg struct {
	ID  string
	Err error
}

type searchResultsMsg struct {
	Results []storage.SessionMessageMatch
	Err     error
}

type clipboardCopiedMsg struct {
	Err error
}
