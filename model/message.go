package model

import "time"

// Message is one entry in a conversation transcript. Messages are immutable
// once appended; ordering is conversation order and is replayed verbatim to
// the LLM provider on every turn.
type Message struct {
	Role      string // "user", "assistant" or "system"
	Name      string // tool name tag for tool-produced summaries, empty otherwise
	Content   string
	Rendered  string // cached terminal rendering of Content
	Timestamp time.Time
}

// Turn is the record returned to the caller for one completed user turn.
type Turn struct {
	ID     string
	Role   string
	Render Render
}
