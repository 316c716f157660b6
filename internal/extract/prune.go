package extract

import (
	"sort"
	"time"

	"github.com/smkwon/lifeone/internal/models"
)

// Context volume caps. These bound token cost, not correctness: the
// extraction service sees a window of the store, never all of it.
const (
	maxContextContacts = 200
	maxContextSchedule = 50 // split between nearest future and nearest past
	maxContextExpenses = 100
	maxContextDiary    = 30
	maxDiaryEntryRunes = 150
)

// LiteContact is a contact reduced to the fields the extraction service needs
// to answer questions and reference records for modification.
type LiteContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Group string `json:"group,omitempty"`
}

// ContextSnapshot is the size-bounded view of current records sent with every
// extraction call.
type ContextSnapshot struct {
	Contacts []LiteContact         `json:"contacts"`
	Schedule []models.ScheduleItem `json:"schedule"`
	Expenses []models.Expense      `json:"expenses"`
	Diary    []models.DiaryEntry   `json:"diary"`
}

// BuildContext prunes the live collections down to the snapshot caps:
// lite contacts, schedule split evenly between upcoming and recent past,
// most-recent expenses, and most-recent diary entries with truncated text.
func BuildContext(
	contacts []models.Contact,
	schedule []models.ScheduleItem,
	expenses []models.Expense,
	diary []models.DiaryEntry,
	now time.Time,
) ContextSnapshot {
	var snap ContextSnapshot

	for i, c := range contacts {
		if i >= maxContextContacts {
			break
		}
		snap.Contacts = append(snap.Contacts, LiteContact{
			ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Group: c.Group,
		})
	}

	today := now.Format("2006-01-02")
	var past, future []models.ScheduleItem
	for _, s := range schedule {
		if s.Date < today {
			past = append(past, s)
		} else {
			future = append(future, s)
		}
	}
	// Future ascending from today, past descending from yesterday.
	sort.SliceStable(future, func(i, j int) bool { return future[i].Date < future[j].Date })
	sort.SliceStable(past, func(i, j int) bool { return past[i].Date > past[j].Date })
	snap.Schedule = append(snap.Schedule, head(future, (maxContextSchedule+1)/2)...)
	snap.Schedule = append(snap.Schedule, head(past, maxContextSchedule/2)...)

	sorted := append([]models.Expense(nil), expenses...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	snap.Expenses = head(sorted, maxContextExpenses)

	recent := append([]models.DiaryEntry(nil), diary...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	recent = head(recent, maxContextDiary)
	for i := range recent {
		if runes := []rune(recent[i].Entry); len(runes) > maxDiaryEntryRunes {
			recent[i].Entry = string(runes[:maxDiaryEntryRunes]) + "..."
		}
	}
	snap.Diary = recent

	return snap
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
