package models

import "time"

// Notification types.
const (
	NotificationCalendar = "calendar"
	NotificationBudget   = "budget"
	NotificationSystem   = "system"
)

// Views a notification can deep-link into.
const (
	ViewCalendar = "CALENDAR"
	ViewExpenses = "EXPENSES_EXPENSE"
)

// DeepLink is an optional navigation target attached to a notification.
type DeepLink struct {
	View string `json:"view"`
	Date string `json:"date,omitempty"`
}

// AppNotification is a derived alert. It is consumed (removed) when the user
// acknowledges it.
type AppNotification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Related   *DeepLink `json:"relatedData,omitempty"`
}

// CalendarSettings configures the once-per-day calendar scan.
type CalendarSettings struct {
	Enabled          bool `json:"enabled"`
	DdayAlerts       bool `json:"dDayAlerts"`
	TodayEventAlerts bool `json:"todayEventAlerts"`
}

// BudgetSettings configures the monthly spend-limit alerts.
type BudgetSettings struct {
	Enabled      bool  `json:"enabled"`
	MonthlyLimit int64 `json:"monthlyLimit"`
}

// NotificationSettings is the process-wide, user-editable alert config.
type NotificationSettings struct {
	Calendar CalendarSettings `json:"calendar"`
	Budget   BudgetSettings   `json:"budget"`
}

// DefaultNotificationSettings mirrors a fresh install: calendar alerts on,
// budget alerts off until a limit is configured.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Calendar: CalendarSettings{Enabled: true, DdayAlerts: true, TodayEventAlerts: true},
		Budget:   BudgetSettings{Enabled: false, MonthlyLimit: 0},
	}
}
