// Package dedupe decides whether newly extracted records describe facts the
// store already holds. Each record type has its own identity rule; diary
// entries are exempt by design.
package dedupe

import (
	"fmt"
	"strings"

	"github.com/smkwon/lifeone/internal/models"
)

// Conflict pairs an incoming record with the existing record it collides with.
type Conflict struct {
	// NewID is the id of the incoming record (already assigned).
	NewID string
	// ExistingID is the id of the stored record it matched.
	ExistingID string
	// Title is a display label for the conflict prompt.
	Title string
}

// Result groups detected conflicts by record type.
type Result struct {
	Contacts []Conflict
	Schedule []Conflict
	Expenses []Conflict
}

// Empty reports whether no conflicts were found.
func (r Result) Empty() bool {
	return len(r.Contacts) == 0 && len(r.Schedule) == 0 && len(r.Expenses) == 0
}

// ExistingIDs returns the colliding stored ids for one record type.
func ids(conflicts []Conflict) []string {
	out := make([]string, len(conflicts))
	for i, c := range conflicts {
		out[i] = c.ExistingID
	}
	return out
}

// ExistingContactIDs lists stored contact ids the batch collides with.
func (r Result) ExistingContactIDs() []string { return ids(r.Contacts) }

// ExistingScheduleIDs lists stored schedule ids the batch collides with.
func (r Result) ExistingScheduleIDs() []string { return ids(r.Schedule) }

// ExistingExpenseIDs lists stored expense ids the batch collides with.
func (r Result) ExistingExpenseIDs() []string { return ids(r.Expenses) }

// ContactKey is the contact identity: normalized phone digits when present,
// otherwise the case-insensitive trimmed name.
func ContactKey(c models.Contact) string {
	if digits := models.NormalizePhone(c.Phone); digits != "" {
		return digits
	}
	return strings.ToLower(strings.TrimSpace(c.Name))
}

// ScheduleKey is the schedule identity: case-insensitive trimmed title plus
// the exact date.
func ScheduleKey(s models.ScheduleItem) string {
	return strings.ToLower(strings.TrimSpace(s.Title)) + "|" + s.Date
}

// ExpenseKey is the expense identity: (trimmed item, date, amount, type).
func ExpenseKey(e models.Expense) string {
	return fmt.Sprintf("%s|%s|%d|%s", strings.TrimSpace(e.Item), e.Date, e.Amount, e.Type)
}

// Detect maps each incoming record's identity key against the existing
// collections and reports every collision. Batches are call-scoped and small;
// the maps are built per call.
func Detect(
	contacts []models.Contact,
	schedule []models.ScheduleItem,
	expenses []models.Expense,
	batch models.ExtractionBatch,
) Result {
	var result Result

	if len(batch.Contacts) > 0 {
		existing := make(map[string]string, len(contacts))
		for _, c := range contacts {
			existing[ContactKey(c)] = c.ID
		}
		for _, c := range batch.Contacts {
			if id, ok := existing[ContactKey(c)]; ok {
				result.Contacts = append(result.Contacts, Conflict{
					NewID: c.ID, ExistingID: id, Title: c.Name,
				})
			}
		}
	}

	if len(batch.Schedule) > 0 {
		existing := make(map[string]string, len(schedule))
		for _, s := range schedule {
			existing[ScheduleKey(s)] = s.ID
		}
		for _, s := range batch.Schedule {
			if id, ok := existing[ScheduleKey(s)]; ok {
				result.Schedule = append(result.Schedule, Conflict{
					NewID: s.ID, ExistingID: id, Title: s.Title,
				})
			}
		}
	}

	if len(batch.Expenses) > 0 {
		existing := make(map[string]string, len(expenses))
		for _, e := range expenses {
			existing[ExpenseKey(e)] = e.ID
		}
		for _, e := range batch.Expenses {
			if id, ok := existing[ExpenseKey(e)]; ok {
				result.Expenses = append(result.Expenses, Conflict{
					NewID: e.ID, ExistingID: id, Title: e.Item,
				})
			}
		}
	}

	return result
}
