// Package chat keeps the conversation log: ordered sessions of user and model
// messages. The distinguished id "new" means no session has been chosen yet;
// the first message sent under it creates one.
package chat

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/smkwon/lifeone/internal/models"
)

// ErrSessionNotFound is returned for operations on unknown session ids.
var ErrSessionNotFound = errors.New("chat session not found")

// Log owns the chat sessions. Not safe for concurrent use.
type Log struct {
	sessions []models.ChatSession
	activeID string
}

// NewLog returns an empty log with no active session.
func NewLog() *Log {
	return &Log{activeID: models.NewSessionID}
}

// Sessions returns all sessions, newest first.
func (l *Log) Sessions() []models.ChatSession { return l.sessions }

// ActiveID returns the currently selected session id.
func (l *Log) ActiveID() string { return l.activeID }

// SetActive selects a session (or the "new" sentinel).
func (l *Log) SetActive(id string) { l.activeID = id }

// Load restores the log from a persisted snapshot.
func (l *Log) Load(sessions []models.ChatSession, activeID string) {
	l.sessions = sessions
	l.activeID = activeID
	if l.activeID == "" {
		l.activeID = models.NewSessionID
	}
}

// Begin appends the user message to the session, creating the session when id
// is the "new" sentinel. It returns the real session id and the message
// history as it stood before this turn (what the extraction service sees).
func (l *Log) Begin(id string, msg models.ChatMessage) (string, []models.ChatMessage) {
	if id == "" || id == models.NewSessionID {
		session := models.ChatSession{
			ID:       uuid.NewString(),
			Title:    sessionTitle(msg),
			Messages: []models.ChatMessage{msg},
		}
		l.sessions = append([]models.ChatSession{session}, l.sessions...)
		l.activeID = session.ID
		return session.ID, nil
	}

	for i := range l.sessions {
		if l.sessions[i].ID == id {
			history := append([]models.ChatMessage(nil), l.sessions[i].Messages...)
			l.sessions[i].Messages = append(l.sessions[i].Messages, msg)
			l.activeID = id
			return id, history
		}
	}

	// Unknown id: treat like a fresh session rather than dropping the turn.
	return l.Begin(models.NewSessionID, msg)
}

// Append adds a model message to an existing session.
func (l *Log) Append(id string, msg models.ChatMessage) {
	for i := range l.sessions {
		if l.sessions[i].ID == id {
			l.sessions[i].Messages = append(l.sessions[i].Messages, msg)
			return
		}
	}
}

// Rename sets a session's title.
func (l *Log) Rename(id, title string) error {
	for i := range l.sessions {
		if l.sessions[i].ID == id {
			l.sessions[i].Title = title
			return nil
		}
	}
	return ErrSessionNotFound
}

// Delete removes a session. Deleting the active session resets the selection
// to the "new" sentinel.
func (l *Log) Delete(id string) error {
	for i := range l.sessions {
		if l.sessions[i].ID == id {
			l.sessions = append(l.sessions[:i], l.sessions[i+1:]...)
			if l.activeID == id {
				l.activeID = models.NewSessionID
			}
			return nil
		}
	}
	return ErrSessionNotFound
}

// Merge appends imported sessions whose id is not already present.
func (l *Log) Merge(imported []models.ChatSession) int {
	existing := make(map[string]bool, len(l.sessions))
	for _, s := range l.sessions {
		existing[s.ID] = true
	}
	added := 0
	for _, s := range imported {
		if existing[s.ID] {
			continue
		}
		existing[s.ID] = true
		l.sessions = append(l.sessions, s)
		added++
	}
	return added
}

func sessionTitle(msg models.ChatMessage) string {
	text := strings.TrimSpace(msg.Text)
	if runes := []rune(text); len(runes) > 30 {
		return string(runes[:30])
	}
	if text == "" {
		return "새 대화"
	}
	return text
}
