package models

// RecordType tags which collection a record belongs to.
type RecordType string

const (
	TypeContact  RecordType = "contact"
	TypeSchedule RecordType = "schedule"
	TypeExpense  RecordType = "expense"
	TypeDiary    RecordType = "diary"
)

const (
	// DefaultGroup is assigned to contacts and diary entries without one.
	DefaultGroup = "기타"

	// SentinelCategoryID identifies the schedule category that always exists
	// and absorbs items whose own category is deleted.
	SentinelCategoryID    = "default-uncategorized"
	SentinelCategoryName  = "비어있음"
	SentinelCategoryColor = "#a1a1aa"
)

// Contact is a person in the address book.
type Contact struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	// Name is required; everything else is optional.
	Name string `json:"name"`

	// Phone is stored in canonical Korean dial format (e.g. 010-1234-5678).
	Phone string `json:"phone,omitempty"`

	Email string `json:"email,omitempty"`

	// Group defaults to DefaultGroup when absent.
	Group string `json:"group,omitempty"`

	Favorite bool `json:"favorite,omitempty"`
}

// ScheduleCategory is a named, colored bucket for schedule items.
type ScheduleCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ScheduleItem is a calendar event.
type ScheduleItem struct {
	ID string `json:"id"`

	Title string `json:"title"`

	// Date is YYYY-MM-DD; Time is HH:MM or empty.
	Date string `json:"date"`
	Time string `json:"time,omitempty"`

	Location string `json:"location,omitempty"`

	// CategoryID references a ScheduleCategory; empty means the sentinel.
	CategoryID string `json:"categoryId,omitempty"`

	// Category carries the free-text label the extraction service produced,
	// before it is resolved to a CategoryID. Never stored.
	Category string `json:"category,omitempty"`

	// IsDday marks the item for countdown alerts.
	IsDday bool `json:"isDday,omitempty"`
}

// Expense entry types.
const (
	ExpenseTypeExpense = "expense"
	ExpenseTypeIncome  = "income"
)

// Expense is one ledger entry, expense or income.
type Expense struct {
	ID string `json:"id"`

	// Date is YYYY-MM-DD.
	Date string `json:"date"`

	// Item is the human-readable label ("점심", "월급").
	Item string `json:"item"`

	// Amount is a plain integer; the currency minor unit is irrelevant.
	Amount int64 `json:"amount"`

	// Type is ExpenseTypeExpense or ExpenseTypeIncome.
	Type string `json:"type"`

	Category string `json:"category,omitempty"`

	// ImageURL references an attached receipt image, if any.
	ImageURL string `json:"imageUrl,omitempty"`
}

// ChecklistItem is one entry of a checklist-style diary entry.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate,omitempty"`
}

// DiaryEntry is a dated memo. When IsChecklist is set, Entry doubles as the
// checklist title and ChecklistItems carries the items.
type DiaryEntry struct {
	ID string `json:"id"`

	Date string `json:"date"`

	Entry string `json:"entry"`

	Group string `json:"group,omitempty"`

	IsChecklist    bool            `json:"isChecklist,omitempty"`
	ChecklistItems []ChecklistItem `json:"checklistItems,omitempty"`

	ImageURL  string `json:"imageUrl,omitempty"`
	ImageName string `json:"imageName,omitempty"`
}
