package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smkwon/lifeone/internal/models"
)

// ErrTrashNotFound is returned when a trash entry id does not exist.
var ErrTrashNotFound = errors.New("trash item not found")

// Trash manages soft-deleted records: a snapshot per deletion, restorable
// until the retention window runs out.
type Trash struct {
	items []models.TrashItem
}

// NewTrash returns an empty trash.
func NewTrash() *Trash { return &Trash{} }

// Items returns the current trash entries.
func (t *Trash) Items() []models.TrashItem { return t.items }

// Load replaces the trash contents from a persisted snapshot.
func (t *Trash) Load(items []models.TrashItem) { t.items = items }

// AddContact snapshots a deleted contact.
func (t *Trash) AddContact(c models.Contact, now time.Time) {
	t.add(models.TypeContact, c.ID, c.Name, c, now)
}

// AddSchedule snapshots a deleted schedule item.
func (t *Trash) AddSchedule(item models.ScheduleItem, now time.Time) {
	t.add(models.TypeSchedule, item.ID, item.Title, item, now)
}

// AddExpense snapshots a deleted ledger entry.
func (t *Trash) AddExpense(e models.Expense, now time.Time) {
	t.add(models.TypeExpense, e.ID, e.Item, e, now)
}

// AddDiary snapshots a deleted diary entry; the display title is a prefix of
// the entry text.
func (t *Trash) AddDiary(d models.DiaryEntry, now time.Time) {
	title := d.Entry
	if runes := []rune(title); len(runes) > 20 {
		title = string(runes[:20]) + "..."
	}
	t.add(models.TypeDiary, d.ID, title, d, now)
}

func (t *Trash) add(typ models.RecordType, originalID, title string, record any, now time.Time) {
	data, err := json.Marshal(record)
	if err != nil {
		// Records are plain value types; this cannot fail in practice.
		return
	}
	t.items = append(t.items, models.TrashItem{
		ID:         uuid.NewString(),
		OriginalID: originalID,
		Type:       typ,
		Data:       data,
		DeletedAt:  now,
		Title:      title,
	})
}

// SweepExpired drops every entry past the retention window and returns how
// many were removed. Invoked at minimum once per process start.
func (t *Trash) SweepExpired(now time.Time) int {
	kept := t.items[:0]
	removed := 0
	for _, item := range t.items {
		if item.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	t.items = kept
	return removed
}

// Restore removes the entry and re-inserts its snapshot into the origin
// collection. Restoring is an explicit user override, so no conflict re-check
// happens here.
func (t *Trash) Restore(id string, store *Store) (models.TrashItem, error) {
	idx := -1
	for i, item := range t.items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.TrashItem{}, ErrTrashNotFound
	}
	item := t.items[idx]

	switch item.Type {
	case models.TypeContact:
		var c models.Contact
		if err := json.Unmarshal(item.Data, &c); err != nil {
			return models.TrashItem{}, fmt.Errorf("decode trash snapshot: %w", err)
		}
		store.AddContacts([]models.Contact{c})
	case models.TypeSchedule:
		var s models.ScheduleItem
		if err := json.Unmarshal(item.Data, &s); err != nil {
			return models.TrashItem{}, fmt.Errorf("decode trash snapshot: %w", err)
		}
		store.AddSchedule([]models.ScheduleItem{s})
	case models.TypeExpense:
		var e models.Expense
		if err := json.Unmarshal(item.Data, &e); err != nil {
			return models.TrashItem{}, fmt.Errorf("decode trash snapshot: %w", err)
		}
		store.AddExpenses([]models.Expense{e})
	case models.TypeDiary:
		var d models.DiaryEntry
		if err := json.Unmarshal(item.Data, &d); err != nil {
			return models.TrashItem{}, fmt.Errorf("decode trash snapshot: %w", err)
		}
		store.AddDiary([]models.DiaryEntry{d})
	default:
		return models.TrashItem{}, fmt.Errorf("unknown trash type %q", item.Type)
	}

	t.items = append(t.items[:idx], t.items[idx+1:]...)
	return item, nil
}

// Purge permanently removes one entry.
func (t *Trash) Purge(id string) error {
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return nil
		}
	}
	return ErrTrashNotFound
}

// PurgeAll empties the trash.
func (t *Trash) PurgeAll() {
	t.items = nil
}
