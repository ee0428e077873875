package storage

import (
	"time"

	"github.com/sahilm/fuzzy"
)

type SessionMessageMatch struct {
	SessionID    string
	SessionName  string
	MessageIndex int
	Role         string
	Content      string
	Preview      string
	Timestamp    time.Time
	Score        int
}

// SearchIndex searches archived session messages with fuzzy ranking.
type SearchIndex struct {
	storage *SessionStorage
}

func NewSearchIndex(storage *SessionStorage) *SearchIndex {
	return &SearchIndex{storage: storage}
}

// SearchAllSessions ranks every non-system message across all archived
// sessions against the query, best matches first.
func (si *SearchIndex) SearchAllSessions(query string) ([]SessionMessageMatch, error) {
	if query == "" {
		return []SessionMessageMatch{}, nil
	}

	sessionList, err := si.storage.List()
	if err != nil {
		return nil, err
	}

	type candidate struct {
		sessionID   string
		sessionName string
		index       int
		msg         Message
	}

	var candidates []candidate
	var contents []string
	for _, meta := range sessionList {
		session, err := si.storage.Load(meta.ID)
		if err != nil {
			continue
		}
		for i, msg := range session.Messages {
			if msg.Role == "system" {
				continue
			}
			candidates = append(candidates, candidate{
				sessionID:   session.ID,
				sessionName: session.Name,
				index:       i,
				msg:         msg,
			})
			contents = append(contents, msg.Content)
		}
	}

	matches := fuzzy.Find(query, contents)

	results := make([]SessionMessageMatch, 0, len(matches))
	for _, m := range matches {
		c := candidates[m.Index]
		preview := c.msg.Content
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}
		results = append(results, SessionMessageMatch{
			SessionID:    c.sessionID,
			SessionName:  c.sessionName,
			MessageIndex: c.index,
			Role:         c.msg.Role,
			Content:      c.msg.Content,
			Preview:      preview,
			Timestamp:    c.msg.Timestamp,
			Score:        m.Score,
		})
	}

	return results, nil
}
