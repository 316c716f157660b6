package models

import "encoding/json"

// ExtractionBatch is one turn's worth of newly extracted records, grouped by
// type. Records arriving from the extraction service have empty IDs; the
// coordinator assigns them before anything else happens.
type ExtractionBatch struct {
	Contacts []Contact      `json:"contacts"`
	Schedule []ScheduleItem `json:"schedule"`
	Expenses []Expense      `json:"expenses"`
	Diary    []DiaryEntry   `json:"diary"`
}

// Empty reports whether the batch carries no records at all.
func (b ExtractionBatch) Empty() bool {
	return len(b.Contacts) == 0 && len(b.Schedule) == 0 &&
		len(b.Expenses) == 0 && len(b.Diary) == 0
}

// Modification is a partial update to one existing record. Fields holds only
// the keys to overwrite; unmarshalling it onto the existing record gives
// shallow-merge semantics.
type Modification struct {
	ID     string          `json:"id"`
	Fields json.RawMessage `json:"fieldsToUpdate"`
}

// ModificationBatch groups partial updates by record type.
type ModificationBatch struct {
	Contacts []Modification `json:"contacts"`
	Schedule []Modification `json:"schedule"`
	Expenses []Modification `json:"expenses"`
	Diary    []Modification `json:"diary"`
}

// Empty reports whether the batch carries no modifications.
func (b ModificationBatch) Empty() bool {
	return len(b.Contacts) == 0 && len(b.Schedule) == 0 &&
		len(b.Expenses) == 0 && len(b.Diary) == 0
}

// DeletionBatch lists record IDs to soft-delete, by type. IDs that do not
// exist are skipped; the extraction service is allowed to hallucinate.
type DeletionBatch struct {
	Contacts []string `json:"contacts"`
	Schedule []string `json:"schedule"`
	Expenses []string `json:"expenses"`
	Diary    []string `json:"diary"`
}

// Empty reports whether the batch carries no deletions.
func (b DeletionBatch) Empty() bool {
	return len(b.Contacts) == 0 && len(b.Schedule) == 0 &&
		len(b.Expenses) == 0 && len(b.Diary) == 0
}

// WebSource is an external-search citation attached to a model answer.
type WebSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ConversationalResponse is the full envelope the extraction service returns
// for one turn. Any of the payload groups may be empty; a clarification
// request arrives in lieu of a committed extraction.
type ConversationalResponse struct {
	Answer string `json:"answer"`

	Extraction    ExtractionBatch   `json:"dataExtraction"`
	Modifications ModificationBatch `json:"dataModification"`
	Deletions     DeletionBatch     `json:"dataDeletion"`

	ClarificationNeeded  bool     `json:"clarificationNeeded,omitempty"`
	ClarificationOptions []string `json:"clarificationOptions,omitempty"`

	WebSources []WebSource `json:"webSearchSources,omitempty"`
}

// Input is the original user input captured for the history log: the text and
// an optional image reference. When a turn resolves a clarification, the
// history records the original ambiguous input, not the disambiguating reply.
type Input struct {
	Text      string `json:"text"`
	ImageName string `json:"imageName,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}
