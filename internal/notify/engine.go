// Package notify derives calendar and budget notifications from store state.
// Both rule families are idempotent per triggering key: the calendar scan
// runs at most once per day, and each budget threshold fires at most once per
// month.
package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smkwon/lifeone/internal/models"
)

// Engine evaluates notification rules and holds the undelivered alerts.
// Not safe for concurrent use; the service layer serializes access.
type Engine struct {
	settings      models.NotificationSettings
	notifications []models.AppNotification

	// lastDailyCheck is the YYYY-MM-DD the calendar scan last ran.
	lastDailyCheck string

	// budgetHistory maps month keys to thresholds already fired that month.
	budgetHistory map[string][]int

	now func() time.Time
}

// New returns an engine with default settings.
func New() *Engine {
	return &Engine{
		settings:      models.DefaultNotificationSettings(),
		budgetHistory: map[string][]int{},
		now:           time.Now,
	}
}

// Settings returns the current alert configuration.
func (e *Engine) Settings() models.NotificationSettings { return e.settings }

// UpdateSettings replaces the alert configuration.
func (e *Engine) UpdateSettings(s models.NotificationSettings) { e.settings = s }

// Notifications returns undelivered alerts, newest first.
func (e *Engine) Notifications() []models.AppNotification { return e.notifications }

// Acknowledge consumes one notification and returns it (for its deep link).
func (e *Engine) Acknowledge(id string) (models.AppNotification, bool) {
	for i, n := range e.notifications {
		if n.ID == id {
			e.notifications = append(e.notifications[:i], e.notifications[i+1:]...)
			return n, true
		}
	}
	return models.AppNotification{}, false
}

// ClearAll drops every undelivered notification.
func (e *Engine) ClearAll() { e.notifications = nil }

// Load restores engine state from a persisted snapshot.
func (e *Engine) Load(snap models.Snapshot) {
	e.notifications = snap.Notifications
	if snap.NotificationSettings != nil {
		e.settings = *snap.NotificationSettings
	}
	e.lastDailyCheck = snap.LastDailyCheckDate
	e.budgetHistory = snap.BudgetAlertHistory
	if e.budgetHistory == nil {
		e.budgetHistory = map[string][]int{}
	}
}

// Fill copies engine state into a snapshot being assembled.
func (e *Engine) Fill(snap *models.Snapshot) {
	snap.Notifications = e.notifications
	settings := e.settings
	snap.NotificationSettings = &settings
	snap.LastDailyCheckDate = e.lastDailyCheck
	snap.BudgetAlertHistory = e.budgetHistory
}

func (e *Engine) push(title, message, typ string, related *models.DeepLink) {
	e.notifications = append([]models.AppNotification{{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Timestamp: e.now(),
		Type:      typ,
		Related:   related,
	}}, e.notifications...)
}

// RunDailyCheck scans the schedule for today's events and D-day milestones.
// The lastDailyCheck marker is advanced only after a scan actually runs, so
// repeated invocations within one day emit nothing new.
func (e *Engine) RunDailyCheck(schedule []models.ScheduleItem) int {
	if !e.settings.Calendar.Enabled {
		return 0
	}
	today := e.now().Format("2006-01-02")
	if e.lastDailyCheck == today {
		return 0
	}

	emitted := 0

	if e.settings.Calendar.TodayEventAlerts {
		for _, item := range schedule {
			if item.Date != today {
				continue
			}
			msg := fmt.Sprintf("오늘 '%s' 일정이 있습니다.", item.Title)
			if item.Time != "" {
				msg += fmt.Sprintf(" (%s)", item.Time)
			}
			e.push("오늘의 일정", msg, models.NotificationCalendar,
				&models.DeepLink{View: models.ViewCalendar, Date: item.Date})
			emitted++
		}
	}

	if e.settings.Calendar.DdayAlerts {
		todayDate, _ := time.Parse("2006-01-02", today)
		for _, item := range schedule {
			if !item.IsDday {
				continue
			}
			eventDate, err := time.Parse("2006-01-02", item.Date)
			if err != nil {
				continue
			}
			diffDays := int(eventDate.Sub(todayDate).Hours() / 24)
			if !ddayMilestone(diffDays) {
				continue
			}
			e.push("D-Day 알림",
				fmt.Sprintf("'%s'까지 %d일 남았습니다.", item.Title, diffDays),
				models.NotificationCalendar,
				&models.DeepLink{View: models.ViewCalendar, Date: item.Date})
			emitted++
		}
	}

	e.lastDailyCheck = today
	if emitted > 0 {
		slog.Info("calendar alerts emitted", "count", emitted, "date", today)
	}
	return emitted
}

// ddayMilestone reports whether a countdown value warrants an alert:
// 1, 10, 50, and every positive multiple of 100.
func ddayMilestone(diffDays int) bool {
	switch diffDays {
	case 1, 10, 50:
		return true
	}
	return diffDays > 0 && diffDays%100 == 0
}

// CheckBudget re-evaluates this month's spend against the configured limit.
// Called whenever the expense collection changes. Each threshold fires once
// per month; triggered sets persist across restarts.
func (e *Engine) CheckBudget(expenses []models.Expense) int {
	if !e.settings.Budget.Enabled || e.settings.Budget.MonthlyLimit <= 0 {
		return 0
	}

	monthKey := e.now().Format("2006-01")
	var total int64
	for _, exp := range expenses {
		if exp.Type == models.ExpenseTypeExpense && len(exp.Date) >= 7 && exp.Date[:7] == monthKey {
			total += exp.Amount
		}
	}

	ratio := float64(total) / float64(e.settings.Budget.MonthlyLimit) * 100
	triggered := e.budgetHistory[monthKey]
	emitted := 0

	for _, threshold := range []int{30, 50, 90, 100} {
		if ratio < float64(threshold) || containsInt(triggered, threshold) {
			continue
		}
		e.push("지출 한도 경고",
			fmt.Sprintf("이번 달 지출이 설정 한도의 %d%%에 도달했습니다. (현재: %d원 / 한도: %d원)",
				threshold, total, e.settings.Budget.MonthlyLimit),
			models.NotificationBudget,
			&models.DeepLink{View: models.ViewExpenses, Date: monthKey + "-01"})
		triggered = append(triggered, threshold)
		emitted++
	}

	if emitted > 0 {
		e.budgetHistory[monthKey] = triggered
		slog.Info("budget alerts emitted", "count", emitted, "month", monthKey, "spend", total)
	}
	return emitted
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
