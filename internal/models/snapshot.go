package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedSnapshot rejects import payloads that are not a state document.
var ErrMalformedSnapshot = errors.New("malformed state document")

// Snapshot is the entire domain state as one JSON document. It is what gets
// persisted under the well-known storage key, exported to backup files, and
// consumed by import-merge.
type Snapshot struct {
	Contacts           []Contact          `json:"contacts"`
	Schedule           []ScheduleItem     `json:"schedule"`
	ScheduleCategories []ScheduleCategory `json:"scheduleCategories"`
	Expenses           []Expense          `json:"expenses"`
	Diary              []DiaryEntry       `json:"diary"`

	History []HistoryItem `json:"history"`
	Trash   []TrashItem   `json:"trash"`

	ChatSessions    []ChatSession `json:"chatSessions"`
	ActiveSessionID string        `json:"activeChatSessionId,omitempty"`

	Notifications []AppNotification `json:"notifications"`

	// NotificationSettings is a pointer so an absent key falls back to
	// defaults while an explicit all-disabled config survives a round-trip.
	NotificationSettings *NotificationSettings `json:"notificationSettings,omitempty"`
	LastDailyCheckDate   string                `json:"lastDailyCheckDate,omitempty"`

	// BudgetAlertHistory maps a YYYY-MM month key to the percentage
	// thresholds already fired that month.
	BudgetAlertHistory map[string][]int `json:"budgetAlertHistory,omitempty"`
}

// ParseSnapshot validates and decodes an imported document. The whole
// document must parse before any of it is merged; a partial merge of a
// half-broken file is worse than a rejection.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if _, ok := probe.(map[string]any); !ok {
		return Snapshot{}, ErrMalformedSnapshot
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return s, nil
}
