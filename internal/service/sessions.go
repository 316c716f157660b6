package service

import (
	"context"
	"slices"

	"github.com/smkwon/lifeone/internal/models"
)

// Sessions returns all chat sessions, newest first.
func (a *Assistant) Sessions() []models.ChatSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.chats.Sessions())
}

// ActiveSessionID returns the currently selected session id.
func (a *Assistant) ActiveSessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chats.ActiveID()
}

// Session returns one chat session by id.
func (a *Assistant) Session(id string) (models.ChatSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionLocked(id)
}

// SelectSession marks a session as the active one.
func (a *Assistant) SelectSession(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id != models.NewSessionID {
		if _, err := a.sessionLocked(id); err != nil {
			return err
		}
	}
	a.chats.SetActive(id)
	a.persist(ctx)
	return nil
}

// RenameSession sets a session's title.
func (a *Assistant) RenameSession(ctx context.Context, id, title string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.chats.Rename(id, title); err != nil {
		return err
	}
	a.persist(ctx)
	return nil
}

// DeleteSession removes a session from the log.
func (a *Assistant) DeleteSession(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.chats.Delete(id); err != nil {
		return err
	}
	a.persist(ctx)
	return nil
}

func (a *Assistant) sessionLocked(id string) (models.ChatSession, error) {
	for _, s := range a.chats.Sessions() {
		if s.ID == id {
			s.Messages = slices.Clone(s.Messages)
			return s, nil
		}
	}
	return models.ChatSession{}, ErrNotFound
}
