package reconcile

import (
	"testing"
	"time"

	"github.com/smkwon/lifeone/internal/models"
)

func backupSnapshot() models.Snapshot {
	return models.Snapshot{
		Contacts: []models.Contact{
			{ID: "c1", Name: "김철수", Phone: "010-1234-5678"},
			{ID: "c2", Name: "이영희"},
		},
		ScheduleCategories: []models.ScheduleCategory{
			{ID: "cat1", Name: "운동", Color: "#aabbcc"},
		},
		Schedule: []models.ScheduleItem{
			{ID: "s1", Title: "회의", Date: "2026-09-01", CategoryID: "cat1"},
		},
		Expenses: []models.Expense{
			{ID: "e1", Item: "점심", Date: "2026-08-28", Amount: 9000, Type: models.ExpenseTypeExpense},
		},
		Diary: []models.DiaryEntry{
			{ID: "d1", Date: "2026-08-28", Entry: "오늘은 날씨가 좋았다"},
		},
		History: []models.HistoryItem{
			{ID: "h1", Timestamp: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		},
		Trash: []models.TrashItem{
			{ID: "t1", OriginalID: "x", Type: models.TypeContact, DeletedAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestImportMerge(t *testing.T) {
	c, store, trash := newCoordinator()

	stats := c.ImportMerge(backupSnapshot())
	if stats.Contacts != 2 || stats.Categories != 1 || stats.Schedule != 1 ||
		stats.Expenses != 1 || stats.Diary != 1 || stats.History != 1 || stats.Trash != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(store.Contacts()) != 2 || len(store.Schedule()) != 1 {
		t.Error("records not appended")
	}
	if len(trash.Items()) != 1 {
		t.Error("trash not merged")
	}
}

func TestImportMergeIsIdempotent(t *testing.T) {
	c, store, _ := newCoordinator()

	c.ImportMerge(backupSnapshot())
	stats := c.ImportMerge(backupSnapshot())

	if stats.Total() != 0 {
		t.Errorf("second import appended %d records: %+v", stats.Total(), stats)
	}
	if len(store.Contacts()) != 2 || len(store.Expenses()) != 1 || len(store.Diary()) != 1 {
		t.Error("collections grew on re-import")
	}
	if len(c.History()) != 1 {
		t.Errorf("history = %d, want 1", len(c.History()))
	}
}

func TestImportMergeMatchesByIdentityNotID(t *testing.T) {
	c, store, _ := newCoordinator()
	// Same phone under a different id and name: identity says duplicate.
	store.AddContacts([]models.Contact{{ID: "mine", Name: "철수", Phone: "01012345678"}})

	stats := c.ImportMerge(backupSnapshot())
	if stats.Contacts != 1 {
		t.Errorf("contacts appended = %d, want 1 (only 이영희)", stats.Contacts)
	}
	if len(store.Contacts()) != 2 {
		t.Errorf("contacts = %d, want 2", len(store.Contacts()))
	}
}

func TestImportMergeSortsHistory(t *testing.T) {
	c, _, _ := newCoordinator()
	c.LoadHistory([]models.HistoryItem{
		{ID: "newer", Timestamp: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)},
	})

	c.ImportMerge(backupSnapshot())
	history := c.History()
	if len(history) != 2 || history[0].ID != "newer" || history[1].ID != "h1" {
		t.Errorf("history order = %+v", history)
	}
}
