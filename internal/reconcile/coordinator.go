// Package reconcile merges extraction batches into the record store without
// creating silent duplicates or losing user intent. It owns the append-only
// history log and the single in-flight conflict decision.
package reconcile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smkwon/lifeone/internal/dedupe"
	"github.com/smkwon/lifeone/internal/models"
	"github.com/smkwon/lifeone/internal/records"
)

var (
	// ErrNoPendingDecision is returned when a conflict resolution arrives
	// with no decision open.
	ErrNoPendingDecision = errors.New("no conflict decision is pending")

	// ErrDecisionPending rejects a new reconcile while a decision is open;
	// the enclosing application serializes turns, so hitting this means the
	// previous turn was never resolved.
	ErrDecisionPending = errors.New("a conflict decision is already pending")
)

// Choice is one of the three terminal conflict resolutions.
type Choice string

const (
	// Replace removes the colliding stored records, then inserts the batch.
	Replace Choice = "replace"
	// Cancel discards the incoming batch entirely.
	Cancel Choice = "cancel"
	// KeepBoth inserts the batch alongside the stored records.
	KeepBoth Choice = "keep-both"
)

// Decision is the in-flight conflict-resolution state: the full incoming
// batch, the stored ids it collides with, and the history item that will be
// recorded if the batch lands.
type Decision struct {
	Batch       models.ExtractionBatch
	Conflicts   dedupe.Result
	HistoryItem models.HistoryItem
}

// Outcome reports what Reconcile did with a batch.
type Outcome struct {
	// Applied is set when the batch was inserted directly.
	Applied bool
	// Decision is non-nil when conflict resolution is required; nothing has
	// been mutated yet in that case.
	Decision *Decision
}

// Coordinator orchestrates batch application against the store, the trash and
// the history log. Not safe for concurrent use.
type Coordinator struct {
	store *records.Store
	trash *records.Trash

	history []models.HistoryItem
	pending *Decision

	now func() time.Time
}

// New creates a coordinator over the given store and trash.
func New(store *records.Store, trash *records.Trash) *Coordinator {
	return &Coordinator{store: store, trash: trash, now: time.Now}
}

// History returns the audit log, newest first.
func (c *Coordinator) History() []models.HistoryItem { return c.history }

// LoadHistory replaces the audit log from a persisted snapshot.
func (c *Coordinator) LoadHistory(items []models.HistoryItem) { c.history = items }

// Pending returns the open conflict decision, if any.
func (c *Coordinator) Pending() *Decision { return c.pending }

// Reconcile resolves category labels on the batch, assigns ids, runs duplicate
// detection, and either applies the batch or opens a conflict decision.
// originalInput is what the history log records; for a clarified turn that is
// the original ambiguous input, not the disambiguating reply.
func (c *Coordinator) Reconcile(batch models.ExtractionBatch, originalInput models.Input) (Outcome, error) {
	if c.pending != nil {
		return Outcome{}, ErrDecisionPending
	}

	assignIDs(&batch)
	c.resolveCategories(&batch)

	conflicts := dedupe.Detect(c.store.Contacts(), c.store.Schedule(), c.store.Expenses(), batch)

	item := models.HistoryItem{
		ID:        uuid.NewString(),
		Timestamp: c.now(),
		Input:     originalInput,
		Output:    batch,
	}

	if !conflicts.Empty() {
		c.pending = &Decision{Batch: batch, Conflicts: conflicts, HistoryItem: item}
		slog.Info("reconcile suspended on conflicts",
			"contacts", len(conflicts.Contacts),
			"schedule", len(conflicts.Schedule),
			"expenses", len(conflicts.Expenses),
		)
		return Outcome{Decision: c.pending}, nil
	}

	c.apply(batch, item)
	return Outcome{Applied: true}, nil
}

// Resolve closes the pending conflict decision with one of the three terminal
// choices.
func (c *Coordinator) Resolve(choice Choice) error {
	if c.pending == nil {
		return ErrNoPendingDecision
	}
	d := *c.pending
	c.pending = nil

	switch choice {
	case Replace:
		c.store.RemoveContacts(d.Conflicts.ExistingContactIDs())
		c.store.RemoveSchedule(d.Conflicts.ExistingScheduleIDs())
		c.store.RemoveExpenses(d.Conflicts.ExistingExpenseIDs())
		c.apply(d.Batch, d.HistoryItem)
	case KeepBoth:
		c.apply(d.Batch, d.HistoryItem)
	case Cancel:
		// Batch discarded, no history.
	default:
		c.pending = &d
		return errors.New("unknown conflict resolution: " + string(choice))
	}

	slog.Info("conflict decision closed", "choice", string(choice))
	return nil
}

func (c *Coordinator) apply(batch models.ExtractionBatch, item models.HistoryItem) {
	c.store.AddContacts(batch.Contacts)
	c.store.AddSchedule(batch.Schedule)
	c.store.AddExpenses(batch.Expenses)
	c.store.AddDiary(batch.Diary)
	c.history = append([]models.HistoryItem{item}, c.history...)
}

// ApplyModifications shallow-merges field updates onto existing records.
// Unknown ids are skipped without error: the extraction service may reference
// records that no longer exist.
func (c *Coordinator) ApplyModifications(batch models.ModificationBatch) {
	for _, mod := range batch.Contacts {
		c.store.UpdateContact(mod.ID, func(rec *models.Contact) {
			mergeFields(mod.Fields, rec)
		})
	}
	for _, mod := range batch.Schedule {
		c.store.UpdateSchedule(mod.ID, func(rec *models.ScheduleItem) {
			mergeFields(mod.Fields, rec)
		})
	}
	for _, mod := range batch.Expenses {
		c.store.UpdateExpense(mod.ID, func(rec *models.Expense) {
			mergeFields(mod.Fields, rec)
		})
	}
	for _, mod := range batch.Diary {
		c.store.UpdateDiary(mod.ID, func(rec *models.DiaryEntry) {
			mergeFields(mod.Fields, rec)
		})
	}
}

// ApplyDeletions moves every found id from its live collection into the
// trash. This is the sole path for AI-driven deletions: always soft.
func (c *Coordinator) ApplyDeletions(batch models.DeletionBatch) {
	now := c.now()
	for _, rec := range c.store.RemoveContacts(batch.Contacts) {
		c.trash.AddContact(rec, now)
	}
	for _, rec := range c.store.RemoveSchedule(batch.Schedule) {
		c.trash.AddSchedule(rec, now)
	}
	for _, rec := range c.store.RemoveExpenses(batch.Expenses) {
		c.trash.AddExpense(rec, now)
	}
	for _, rec := range c.store.RemoveDiary(batch.Diary) {
		c.trash.AddDiary(rec, now)
	}
}

// resolveCategories swaps free-text category labels for category ids, creating
// categories on first sight.
func (c *Coordinator) resolveCategories(batch *models.ExtractionBatch) {
	for i := range batch.Schedule {
		label := batch.Schedule[i].Category
		if label == "" {
			continue
		}
		cat, created := c.store.ResolveCategory(label)
		if created {
			slog.Info("schedule category created", "name", cat.Name, "id", cat.ID)
		}
		batch.Schedule[i].CategoryID = cat.ID
		batch.Schedule[i].Category = ""
	}
}

func assignIDs(batch *models.ExtractionBatch) {
	for i := range batch.Contacts {
		if batch.Contacts[i].ID == "" {
			batch.Contacts[i].ID = uuid.NewString()
		}
	}
	for i := range batch.Schedule {
		if batch.Schedule[i].ID == "" {
			batch.Schedule[i].ID = uuid.NewString()
		}
	}
	for i := range batch.Expenses {
		if batch.Expenses[i].ID == "" {
			batch.Expenses[i].ID = uuid.NewString()
		}
	}
	for i := range batch.Diary {
		if batch.Diary[i].ID == "" {
			batch.Diary[i].ID = uuid.NewString()
		}
	}
}

// mergeFields overlays a partial JSON object onto an existing record. Only
// the keys present in raw are overwritten; the id field is protected.
func mergeFields[T any](raw json.RawMessage, rec *T) {
	if len(raw) == 0 {
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		slog.Warn("modification fields are not an object, skipping", "error", err)
		return
	}
	delete(fields, "id")
	patch, err := json.Marshal(fields)
	if err != nil {
		return
	}
	if err := json.Unmarshal(patch, rec); err != nil {
		slog.Warn("modification did not apply cleanly", "error", err)
	}
}
