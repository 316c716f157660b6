package models

import (
	"encoding/json"
	"time"
)

// HistoryItem is one append-only audit record: the original input and the
// batch of records it produced. History is never mutated by normal operation.
type HistoryItem struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Input     Input           `json:"input"`
	Output    ExtractionBatch `json:"output"`
}

// TrashRetention is how long a soft-deleted record stays recoverable.
const TrashRetention = 30 * 24 * time.Hour

// TrashItem wraps a soft-deleted record. The entry has its own ID, distinct
// from the deleted record's original ID, so repeated delete/restore cycles of
// the same record produce distinct trash entries.
type TrashItem struct {
	ID         string     `json:"id"`
	OriginalID string     `json:"originalId"`
	Type       RecordType `json:"type"`

	// Data is the full snapshot of the deleted record, kept opaque so the
	// trash list survives round-trips through the persisted document.
	Data json.RawMessage `json:"data"`

	DeletedAt time.Time `json:"deletedAt"`

	// Title is what the trash list displays.
	Title string `json:"title"`
}

// Expired reports whether the entry is past the retention window at now.
func (t TrashItem) Expired(now time.Time) bool {
	return now.Sub(t.DeletedAt) >= TrashRetention
}
