package service

import (
	"context"
	"slices"

	"github.com/smkwon/lifeone/internal/models"
	"github.com/smkwon/lifeone/internal/stats"
)

// Manual record CRUD. These are the direct-edit paths; unlike extraction
// results they never pass duplicate detection, matching how a deliberate
// hand edit should always win.

// Contacts returns the contact collection, newest first.
func (a *Assistant) Contacts() []models.Contact {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.store.Contacts())
}

// AddContact inserts one contact and returns it with its assigned id.
func (a *Assistant) AddContact(ctx context.Context, c models.Contact) models.Contact {
	a.mu.Lock()
	defer a.mu.Unlock()
	batch := []models.Contact{c}
	a.store.AddContacts(batch)
	a.persist(ctx)
	return batch[0]
}

// UpdateContact replaces the contact with the same id.
func (a *Assistant) UpdateContact(ctx context.Context, c models.Contact) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	ok := a.store.UpdateContact(c.ID, func(rec *models.Contact) { *rec = c })
	if !ok {
		return ErrNotFound
	}
	a.persist(ctx)
	return nil
}

// DeleteContact moves a contact to the trash.
func (a *Assistant) DeleteContact(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed := a.store.RemoveContacts([]string{id})
	if len(removed) == 0 {
		return ErrNotFound
	}
	a.trash.AddContact(removed[0], a.now())
	a.persist(ctx)
	return nil
}

// Schedule returns schedule items ascending by (date, time).
func (a *Assistant) Schedule() []models.ScheduleItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.store.Schedule())
}

// AddScheduleItem inserts one schedule item and returns it with its id.
func (a *Assistant) AddScheduleItem(ctx context.Context, item models.ScheduleItem) models.ScheduleItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	batch := []models.ScheduleItem{item}
	a.store.AddSchedule(batch)
	a.persist(ctx)
	return batch[0]
}

// UpdateScheduleItem replaces the schedule item with the same id.
func (a *Assistant) UpdateScheduleItem(ctx context.Context, item models.ScheduleItem) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	ok := a.store.UpdateSchedule(item.ID, func(rec *models.ScheduleItem) { *rec = item })
	if !ok {
		return ErrNotFound
	}
	a.persist(ctx)
	return nil
}

// DeleteScheduleItem moves a schedule item to the trash.
func (a *Assistant) DeleteScheduleItem(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed := a.store.RemoveSchedule([]string{id})
	if len(removed) == 0 {
		return ErrNotFound
	}
	a.trash.AddSchedule(removed[0], a.now())
	a.persist(ctx)
	return nil
}

// Categories returns all schedule categories, sentinel included.
func (a *Assistant) Categories() []models.ScheduleCategory {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.store.Categories())
}

// AddCategory inserts a schedule category and returns it with its id.
func (a *Assistant) AddCategory(ctx context.Context, c models.ScheduleCategory) models.ScheduleCategory {
	a.mu.Lock()
	defer a.mu.Unlock()
	created := a.store.AddCategory(c)
	a.persist(ctx)
	return created
}

// UpdateCategory replaces the category with the same id.
func (a *Assistant) UpdateCategory(ctx context.Context, c models.ScheduleCategory) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.store.UpdateCategory(c) {
		return ErrNotFound
	}
	a.persist(ctx)
	return nil
}

// DeleteCategory removes a category; its schedule items fall back to the
// built-in uncategorized bucket.
func (a *Assistant) DeleteCategory(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.RemoveCategory(id); err != nil {
		return err
	}
	a.persist(ctx)
	return nil
}

// Expenses returns ledger entries descending by date.
func (a *Assistant) Expenses() []models.Expense {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.store.Expenses())
}

// AddExpense inserts one ledger entry and returns it with its id.
func (a *Assistant) AddExpense(ctx context.Context, e models.Expense) models.Expense {
	a.mu.Lock()
	defer a.mu.Unlock()
	batch := []models.Expense{e}
	a.store.AddExpenses(batch)
	a.runBudgetCheck()
	a.persist(ctx)
	return batch[0]
}

// UpdateExpense replaces the ledger entry with the same id.
func (a *Assistant) UpdateExpense(ctx context.Context, e models.Expense) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	ok := a.store.UpdateExpense(e.ID, func(rec *models.Expense) { *rec = e })
	if !ok {
		return ErrNotFound
	}
	a.runBudgetCheck()
	a.persist(ctx)
	return nil
}

// DeleteExpense moves a ledger entry to the trash.
func (a *Assistant) DeleteExpense(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed := a.store.RemoveExpenses([]string{id})
	if len(removed) == 0 {
		return ErrNotFound
	}
	a.trash.AddExpense(removed[0], a.now())
	a.persist(ctx)
	return nil
}

// ExpenseSummary aggregates the ledger into monthly summaries, newest first.
func (a *Assistant) ExpenseSummary() []stats.MonthlySummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return stats.Summarize(a.store.Expenses())
}

// ExpenseSummaryForMonth aggregates one YYYY-MM month of the ledger.
func (a *Assistant) ExpenseSummaryForMonth(month string) stats.MonthlySummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return stats.ForMonth(a.store.Expenses(), month)
}

// Diary returns diary entries, newest first.
func (a *Assistant) Diary() []models.DiaryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.store.Diary())
}

// AddDiaryEntry inserts one diary entry and returns it with its id.
func (a *Assistant) AddDiaryEntry(ctx context.Context, d models.DiaryEntry) models.DiaryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	batch := []models.DiaryEntry{d}
	a.store.AddDiary(batch)
	a.persist(ctx)
	return batch[0]
}

// UpdateDiaryEntry replaces the diary entry with the same id.
func (a *Assistant) UpdateDiaryEntry(ctx context.Context, d models.DiaryEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	ok := a.store.UpdateDiary(d.ID, func(rec *models.DiaryEntry) { *rec = d })
	if !ok {
		return ErrNotFound
	}
	a.persist(ctx)
	return nil
}

// DeleteDiaryEntry moves a diary entry to the trash.
func (a *Assistant) DeleteDiaryEntry(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed := a.store.RemoveDiary([]string{id})
	if len(removed) == 0 {
		return ErrNotFound
	}
	a.trash.AddDiary(removed[0], a.now())
	a.persist(ctx)
	return nil
}

// History returns the extraction audit log, newest first.
func (a *Assistant) History() []models.HistoryItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.coord.History())
}

// Trash returns the soft-deleted records still inside the retention window.
func (a *Assistant) Trash() []models.TrashItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.trash.Items())
}

// RestoreTrashItem re-inserts a trashed record into its origin collection.
func (a *Assistant) RestoreTrashItem(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	item, err := a.trash.Restore(id, a.store)
	if err != nil {
		return err
	}
	if item.Type == models.TypeExpense {
		a.runBudgetCheck()
	}
	a.persist(ctx)
	return nil
}

// PurgeTrashItem permanently removes one trash entry.
func (a *Assistant) PurgeTrashItem(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.trash.Purge(id); err != nil {
		return err
	}
	a.persist(ctx)
	return nil
}

// EmptyTrash permanently removes every trash entry.
func (a *Assistant) EmptyTrash(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.trash.PurgeAll()
	a.persist(ctx)
}
