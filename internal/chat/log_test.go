package chat

import (
	"strings"
	"testing"

	"github.com/smkwon/lifeone/internal/models"
)

func userMsg(text string) models.ChatMessage {
	return models.ChatMessage{ID: "m-" + text, Role: models.RoleUser, Text: text}
}

func TestBeginCreatesSession(t *testing.T) {
	l := NewLog()

	id, history := l.Begin(models.NewSessionID, userMsg("안녕하세요"))
	if id == "" || id == models.NewSessionID {
		t.Fatalf("id = %q, want a real session id", id)
	}
	if history != nil {
		t.Errorf("history = %v, want nil for a fresh session", history)
	}
	if l.ActiveID() != id {
		t.Errorf("active = %q, want %q", l.ActiveID(), id)
	}

	sessions := l.Sessions()
	if len(sessions) != 1 || sessions[0].Title != "안녕하세요" {
		t.Errorf("sessions = %+v", sessions)
	}
}

func TestBeginTitleTruncation(t *testing.T) {
	l := NewLog()
	long := strings.Repeat("가", 40)
	l.Begin(models.NewSessionID, userMsg(long))
	title := l.Sessions()[0].Title
	if got := []rune(title); len(got) != 30 {
		t.Errorf("title = %d runes, want 30", len(got))
	}

	l2 := NewLog()
	l2.Begin(models.NewSessionID, userMsg("   "))
	if got := l2.Sessions()[0].Title; got != "새 대화" {
		t.Errorf("blank title = %q", got)
	}
}

func TestBeginExistingReturnsPriorHistory(t *testing.T) {
	l := NewLog()
	id, _ := l.Begin(models.NewSessionID, userMsg("첫번째"))
	l.Append(id, models.ChatMessage{ID: "r1", Role: models.RoleModel, Text: "답변"})

	_, history := l.Begin(id, userMsg("두번째"))
	if len(history) != 2 {
		t.Fatalf("history = %d messages, want 2 (before this turn)", len(history))
	}
	if history[1].Role != models.RoleModel {
		t.Errorf("history[1] = %+v", history[1])
	}

	session, _ := find(l, id)
	if len(session.Messages) != 3 {
		t.Errorf("session has %d messages, want 3", len(session.Messages))
	}
}

func TestBeginUnknownIDCreatesFresh(t *testing.T) {
	l := NewLog()
	id, history := l.Begin("ghost", userMsg("x"))
	if id == "ghost" || history != nil {
		t.Errorf("unknown id handled as existing: %q %v", id, history)
	}
}

func TestDeleteActiveResets(t *testing.T) {
	l := NewLog()
	id, _ := l.Begin(models.NewSessionID, userMsg("x"))

	if err := l.Delete("ghost"); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
	if err := l.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if l.ActiveID() != models.NewSessionID {
		t.Errorf("active = %q, want the new-session sentinel", l.ActiveID())
	}
}

func TestMergeSkipsExisting(t *testing.T) {
	l := NewLog()
	id, _ := l.Begin(models.NewSessionID, userMsg("x"))

	added := l.Merge([]models.ChatSession{
		{ID: id, Title: "덮어쓰기 시도"},
		{ID: "imported", Title: "가져온 대화"},
	})
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	session, _ := find(l, id)
	if session.Title == "덮어쓰기 시도" {
		t.Error("existing session overwritten by merge")
	}
}

func find(l *Log, id string) (models.ChatSession, bool) {
	for _, s := range l.Sessions() {
		if s.ID == id {
			return s, true
		}
	}
	return models.ChatSession{}, false
}
