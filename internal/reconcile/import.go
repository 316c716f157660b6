package reconcile

import (
	"sort"
	"strings"

	"github.com/smkwon/lifeone/internal/dedupe"
	"github.com/smkwon/lifeone/internal/models"
)

// ImportStats counts what an import-merge actually appended.
type ImportStats struct {
	Contacts   int
	Categories int
	Schedule   int
	Expenses   int
	Diary      int
	History    int
	Trash      int
}

// Total sums all appended records.
func (s ImportStats) Total() int {
	return s.Contacts + s.Categories + s.Schedule + s.Expenses + s.Diary + s.History + s.Trash
}

// diaryKey identifies a diary entry for import purposes only: date plus a
// prefix of the entry text. Live reconciliation never dedupes diary entries;
// re-importing the same backup twice should still be a no-op.
func diaryKey(d models.DiaryEntry) string {
	entry := strings.TrimSpace(d.Entry)
	if runes := []rune(entry); len(runes) > 50 {
		entry = string(runes[:50])
	}
	return d.Date + "|" + entry
}

// ImportMerge appends records from an imported snapshot whose identity key is
// not already present. Identity rules match live duplicate detection, plus
// id-equality for history and trash entries. Running the same import twice is
// a no-op the second time.
func (c *Coordinator) ImportMerge(snap models.Snapshot) ImportStats {
	var stats ImportStats

	existingContacts := make(map[string]bool)
	for _, rec := range c.store.Contacts() {
		existingContacts[dedupe.ContactKey(rec)] = true
	}
	var newContacts []models.Contact
	for _, rec := range snap.Contacts {
		key := dedupe.ContactKey(rec)
		if key == "" || existingContacts[key] {
			continue
		}
		existingContacts[key] = true
		newContacts = append(newContacts, rec)
	}
	c.store.AddContacts(newContacts)
	stats.Contacts = len(newContacts)

	existingCategories := make(map[string]bool)
	for _, cat := range c.store.Categories() {
		existingCategories[strings.ToLower(strings.TrimSpace(cat.Name))] = true
	}
	for _, cat := range snap.ScheduleCategories {
		key := strings.ToLower(strings.TrimSpace(cat.Name))
		if key == "" || existingCategories[key] {
			continue
		}
		existingCategories[key] = true
		c.store.AddCategory(cat)
		stats.Categories++
	}

	existingSchedule := make(map[string]bool)
	for _, rec := range c.store.Schedule() {
		existingSchedule[dedupe.ScheduleKey(rec)] = true
	}
	var newSchedule []models.ScheduleItem
	for _, rec := range snap.Schedule {
		key := dedupe.ScheduleKey(rec)
		if existingSchedule[key] {
			continue
		}
		existingSchedule[key] = true
		newSchedule = append(newSchedule, rec)
	}
	c.store.AddSchedule(newSchedule)
	stats.Schedule = len(newSchedule)

	existingExpenses := make(map[string]bool)
	for _, rec := range c.store.Expenses() {
		existingExpenses[dedupe.ExpenseKey(rec)] = true
	}
	var newExpenses []models.Expense
	for _, rec := range snap.Expenses {
		key := dedupe.ExpenseKey(rec)
		if existingExpenses[key] {
			continue
		}
		existingExpenses[key] = true
		newExpenses = append(newExpenses, rec)
	}
	c.store.AddExpenses(newExpenses)
	stats.Expenses = len(newExpenses)

	existingDiary := make(map[string]bool)
	for _, rec := range c.store.Diary() {
		existingDiary[diaryKey(rec)] = true
	}
	var newDiary []models.DiaryEntry
	for _, rec := range snap.Diary {
		key := diaryKey(rec)
		if existingDiary[key] {
			continue
		}
		existingDiary[key] = true
		newDiary = append(newDiary, rec)
	}
	c.store.AddDiary(newDiary)
	stats.Diary = len(newDiary)

	existingHistory := make(map[string]bool)
	for _, item := range c.history {
		existingHistory[item.ID] = true
	}
	for _, item := range snap.History {
		if existingHistory[item.ID] {
			continue
		}
		existingHistory[item.ID] = true
		c.history = append(c.history, item)
		stats.History++
	}
	if stats.History > 0 {
		sort.SliceStable(c.history, func(i, j int) bool {
			return c.history[i].Timestamp.After(c.history[j].Timestamp)
		})
	}

	existingTrash := make(map[string]bool)
	for _, item := range c.trash.Items() {
		existingTrash[item.ID] = true
	}
	merged := c.trash.Items()
	for _, item := range snap.Trash {
		if existingTrash[item.ID] {
			continue
		}
		existingTrash[item.ID] = true
		merged = append(merged, item)
		stats.Trash++
	}
	c.trash.Load(merged)

	return stats
}
