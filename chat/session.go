// Package chat implements the conversation session and the orchestration
// loop that turns one user utterance into exactly one assistant turn,
// dispatching tool calls selected by the LLM provider.
package chat

import (
	"time"

	"github.com/google/uuid"

	"quotebot/model"
)

// Session is the append-only ordered transcript for one chat session. It is
// owned by the engine for the session's lifetime and mutated only at the
// engine's well-defined points; only one turn is ever in flight, so no
// locking is needed.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time

	messages []model.Message
}

func NewSession(name string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// Append adds one message to the end of the transcript. Appended messages
// are never mutated or removed.
func (s *Session) Append(msg model.Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.messages = append(s.messages, msg)
}

// Messages returns a copy of the transcript in conversation order.
func (s *Session) Messages() []model.Message {
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (s *Session) Len() int {
	return len(s.messages)
}

// Restore seeds the transcript from an archived session. It must be called
// before the first turn.
func (s *Session) Restore(msgs []model.Message) {
	s.messages = append(s.messages[:0], msgs...)
}
