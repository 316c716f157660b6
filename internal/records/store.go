// Package records holds the in-memory record store and the trash manager.
// The store enforces collection invariants (canonical order, the sentinel
// schedule category, phone canonicalization) and nothing else; merge policy
// lives in the reconcile package.
package records

import (
	"errors"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/smkwon/lifeone/internal/models"
)

// ErrSentinelCategory is returned on attempts to delete the built-in
// uncategorized schedule category.
var ErrSentinelCategory = errors.New("the default category cannot be deleted")

// Store owns the five live record collections. It is not safe for concurrent
// use; the service layer serializes access.
type Store struct {
	contacts   []models.Contact
	schedule   []models.ScheduleItem
	categories []models.ScheduleCategory
	expenses   []models.Expense
	diary      []models.DiaryEntry
}

// New returns an empty store seeded with the sentinel schedule category.
func New() *Store {
	return &Store{
		categories: []models.ScheduleCategory{{
			ID:    models.SentinelCategoryID,
			Name:  models.SentinelCategoryName,
			Color: models.SentinelCategoryColor,
		}},
	}
}

// Contacts returns the contact collection, newest first.
func (s *Store) Contacts() []models.Contact { return s.contacts }

// Schedule returns schedule items ascending by (date, time).
func (s *Store) Schedule() []models.ScheduleItem { return s.schedule }

// Categories returns all schedule categories, sentinel included.
func (s *Store) Categories() []models.ScheduleCategory { return s.categories }

// Expenses returns ledger entries descending by date.
func (s *Store) Expenses() []models.Expense { return s.expenses }

// Diary returns diary entries, newest first.
func (s *Store) Diary() []models.DiaryEntry { return s.diary }

// AddContacts inserts contacts newest-first, canonicalizing phones and
// defaulting the group label.
func (s *Store) AddContacts(contacts []models.Contact) {
	for i := range contacts {
		c := &contacts[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Group == "" {
			c.Group = models.DefaultGroup
		}
		if c.Phone != "" {
			c.Phone = models.FormatPhone(c.Phone)
		}
	}
	s.contacts = append(contacts, s.contacts...)
}

// AddSchedule inserts schedule items and re-sorts the collection.
func (s *Store) AddSchedule(items []models.ScheduleItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if items[i].CategoryID == "" {
			items[i].CategoryID = models.SentinelCategoryID
		}
		items[i].Category = "" // resolved labels never reach storage
	}
	s.schedule = append(s.schedule, items...)
	s.sortSchedule()
}

// AddExpenses inserts ledger entries and re-sorts the collection.
func (s *Store) AddExpenses(expenses []models.Expense) {
	for i := range expenses {
		if expenses[i].ID == "" {
			expenses[i].ID = uuid.NewString()
		}
	}
	s.expenses = append(s.expenses, expenses...)
	s.sortExpenses()
}

// AddDiary inserts diary entries newest-first, assigning checklist item IDs.
func (s *Store) AddDiary(entries []models.DiaryEntry) {
	for i := range entries {
		d := &entries[i]
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if d.Group == "" {
			d.Group = models.DefaultGroup
		}
		for j := range d.ChecklistItems {
			if d.ChecklistItems[j].ID == "" {
				d.ChecklistItems[j].ID = uuid.NewString()
			}
		}
	}
	s.diary = append(entries, s.diary...)
}

// UpdateContact shallow-merges fields onto the contact with the given id.
// A missing id is a no-op. Returns whether a record was touched.
func (s *Store) UpdateContact(id string, apply func(*models.Contact)) bool {
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			apply(&s.contacts[i])
			if s.contacts[i].Phone != "" {
				s.contacts[i].Phone = models.FormatPhone(s.contacts[i].Phone)
			}
			if s.contacts[i].Group == "" {
				s.contacts[i].Group = models.DefaultGroup
			}
			return true
		}
	}
	return false
}

// UpdateSchedule applies a mutation to the schedule item with the given id
// and restores the order invariant. A missing id is a no-op.
func (s *Store) UpdateSchedule(id string, apply func(*models.ScheduleItem)) bool {
	for i := range s.schedule {
		if s.schedule[i].ID == id {
			apply(&s.schedule[i])
			s.schedule[i].Category = ""
			s.sortSchedule()
			return true
		}
	}
	return false
}

// UpdateExpense applies a mutation to the expense with the given id and
// restores the order invariant. A missing id is a no-op.
func (s *Store) UpdateExpense(id string, apply func(*models.Expense)) bool {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			apply(&s.expenses[i])
			s.sortExpenses()
			return true
		}
	}
	return false
}

// UpdateDiary applies a mutation to the diary entry with the given id.
// A missing id is a no-op.
func (s *Store) UpdateDiary(id string, apply func(*models.DiaryEntry)) bool {
	for i := range s.diary {
		if s.diary[i].ID == id {
			apply(&s.diary[i])
			if s.diary[i].Group == "" {
				s.diary[i].Group = models.DefaultGroup
			}
			return true
		}
	}
	return false
}

// RemoveContacts removes the given ids and returns the removed records.
// Unknown ids are skipped.
func (s *Store) RemoveContacts(ids []string) []models.Contact {
	want := idSet(ids)
	var removed []models.Contact
	kept := s.contacts[:0]
	for _, c := range s.contacts {
		if want[c.ID] {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	s.contacts = kept
	return removed
}

// RemoveSchedule removes the given ids and returns the removed items.
func (s *Store) RemoveSchedule(ids []string) []models.ScheduleItem {
	want := idSet(ids)
	var removed []models.ScheduleItem
	kept := s.schedule[:0]
	for _, item := range s.schedule {
		if want[item.ID] {
			removed = append(removed, item)
		} else {
			kept = append(kept, item)
		}
	}
	s.schedule = kept
	return removed
}

// RemoveExpenses removes the given ids and returns the removed entries.
func (s *Store) RemoveExpenses(ids []string) []models.Expense {
	want := idSet(ids)
	var removed []models.Expense
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if want[e.ID] {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	s.expenses = kept
	return removed
}

// RemoveDiary removes the given ids and returns the removed entries.
func (s *Store) RemoveDiary(ids []string) []models.DiaryEntry {
	want := idSet(ids)
	var removed []models.DiaryEntry
	kept := s.diary[:0]
	for _, d := range s.diary {
		if want[d.ID] {
			removed = append(removed, d)
		} else {
			kept = append(kept, d)
		}
	}
	s.diary = kept
	return removed
}

// ResolveCategory finds a schedule category by case-insensitive name, creating
// one with a random display color when no match exists. The second return
// reports whether a category was created.
func (s *Store) ResolveCategory(name string) (models.ScheduleCategory, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range s.categories {
		if strings.ToLower(strings.TrimSpace(c.Name)) == key {
			return c, false
		}
	}
	created := models.ScheduleCategory{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Color: randomColor(),
	}
	s.categories = append(s.categories, created)
	return created, true
}

// AddCategory inserts a category, assigning an id if absent.
func (s *Store) AddCategory(c models.ScheduleCategory) models.ScheduleCategory {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.categories = append(s.categories, c)
	return c
}

// UpdateCategory replaces the category with the same id. Missing id is a no-op.
func (s *Store) UpdateCategory(c models.ScheduleCategory) bool {
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			return true
		}
	}
	return false
}

// RemoveCategory deletes a category and reassigns its schedule items to the
// sentinel. Deleting the sentinel itself is refused.
func (s *Store) RemoveCategory(id string) error {
	if id == models.SentinelCategoryID {
		return ErrSentinelCategory
	}
	kept := s.categories[:0]
	found := false
	for _, c := range s.categories {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	s.categories = kept
	if !found {
		return nil
	}
	for i := range s.schedule {
		if s.schedule[i].CategoryID == id {
			s.schedule[i].CategoryID = models.SentinelCategoryID
		}
	}
	return nil
}

// Load replaces the whole store from a persisted snapshot, restoring order
// invariants and the sentinel category.
func (s *Store) Load(snap models.Snapshot) {
	s.contacts = snap.Contacts
	s.schedule = snap.Schedule
	s.categories = snap.ScheduleCategories
	s.expenses = snap.Expenses
	s.diary = snap.Diary

	if !s.hasSentinel() {
		s.categories = append([]models.ScheduleCategory{{
			ID:    models.SentinelCategoryID,
			Name:  models.SentinelCategoryName,
			Color: models.SentinelCategoryColor,
		}}, s.categories...)
	}
	s.sortSchedule()
	s.sortExpenses()
}

func (s *Store) hasSentinel() bool {
	for _, c := range s.categories {
		if c.ID == models.SentinelCategoryID {
			return true
		}
	}
	return false
}

func (s *Store) sortSchedule() {
	sort.SliceStable(s.schedule, func(i, j int) bool {
		if s.schedule[i].Date != s.schedule[j].Date {
			return s.schedule[i].Date < s.schedule[j].Date
		}
		return s.schedule[i].Time < s.schedule[j].Time
	})
}

func (s *Store) sortExpenses() {
	sort.SliceStable(s.expenses, func(i, j int) bool {
		return s.expenses[i].Date > s.expenses[j].Date
	})
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// colorLetters restricts random category colors to the brighter half of the
// hex range so labels stay readable on a light background.
const colorLetters = "89ABCDEF"

func randomColor() string {
	b := make([]byte, 7)
	b[0] = '#'
	for i := 1; i < 7; i++ {
		b[i] = colorLetters[rand.Intn(len(colorLetters))]
	}
	return string(b)
}
