package notify

import (
	"testing"
	"time"

	"github.com/smkwon/lifeone/internal/models"
)

func engineAt(t *testing.T, date string) *Engine {
	t.Helper()
	now, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date: %v", err)
	}
	e := New()
	e.now = func() time.Time { return now }
	return e
}

func TestDailyCheckTodayEvents(t *testing.T) {
	e := engineAt(t, "2026-08-28")
	schedule := []models.ScheduleItem{
		{ID: "s1", Title: "회의", Date: "2026-08-28", Time: "14:00"},
		{ID: "s2", Title: "내일 일정", Date: "2026-08-29"},
	}

	if got := e.RunDailyCheck(schedule); got != 1 {
		t.Fatalf("emitted = %d, want 1", got)
	}
	n := e.Notifications()[0]
	if n.Type != models.NotificationCalendar || n.Title != "오늘의 일정" {
		t.Errorf("notification = %+v", n)
	}
	if n.Related == nil || n.Related.View != models.ViewCalendar || n.Related.Date != "2026-08-28" {
		t.Errorf("deep link = %+v", n.Related)
	}

	// Second run the same day is a no-op.
	if got := e.RunDailyCheck(schedule); got != 0 {
		t.Errorf("second run emitted = %d, want 0", got)
	}
	if len(e.Notifications()) != 1 {
		t.Errorf("notifications = %d, want 1", len(e.Notifications()))
	}
}

func TestDailyCheckDdayMilestones(t *testing.T) {
	tests := []struct {
		name     string
		date     string // event date; today is 2026-08-28
		wantFire bool
	}{
		{name: "10 days out fires", date: "2026-09-07", wantFire: true},
		{name: "1 day out fires", date: "2026-08-29", wantFire: true},
		{name: "50 days out fires", date: "2026-10-17", wantFire: true},
		{name: "100 days out fires", date: "2026-12-06", wantFire: true},
		{name: "7 days out silent", date: "2026-09-04", wantFire: false},
		{name: "today itself silent", date: "2026-08-28", wantFire: false},
		{name: "past event silent", date: "2026-08-20", wantFire: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engineAt(t, "2026-08-28")
			settings := e.Settings()
			settings.Calendar.TodayEventAlerts = false
			e.UpdateSettings(settings)

			schedule := []models.ScheduleItem{{ID: "s1", Title: "디데이", Date: tt.date, IsDday: true}}
			got := e.RunDailyCheck(schedule)
			if tt.wantFire && got != 1 {
				t.Errorf("emitted = %d, want 1", got)
			}
			if !tt.wantFire && got != 0 {
				t.Errorf("emitted = %d, want 0", got)
			}
		})
	}
}

func TestDailyCheckDisabled(t *testing.T) {
	e := engineAt(t, "2026-08-28")
	settings := e.Settings()
	settings.Calendar.Enabled = false
	e.UpdateSettings(settings)

	schedule := []models.ScheduleItem{{ID: "s1", Title: "회의", Date: "2026-08-28"}}
	if got := e.RunDailyCheck(schedule); got != 0 {
		t.Errorf("emitted = %d, want 0 when disabled", got)
	}
}

func TestCheckBudgetThresholds(t *testing.T) {
	e := engineAt(t, "2026-08-28")
	e.UpdateSettings(models.NotificationSettings{
		Calendar: models.CalendarSettings{},
		Budget:   models.BudgetSettings{Enabled: true, MonthlyLimit: 100000},
	})

	spend := func(amount int64) []models.Expense {
		return []models.Expense{{ID: "e1", Date: "2026-08-28", Item: "지출", Amount: amount, Type: models.ExpenseTypeExpense}}
	}

	// 55% crosses 30 and 50 at once.
	if got := e.CheckBudget(spend(55000)); got != 2 {
		t.Fatalf("emitted = %d, want 2 (30%% and 50%%)", got)
	}
	// 95% additionally crosses only 90.
	if got := e.CheckBudget(spend(95000)); got != 1 {
		t.Fatalf("emitted = %d, want 1 (90%%)", got)
	}
	// Same level again fires nothing.
	if got := e.CheckBudget(spend(95000)); got != 0 {
		t.Errorf("emitted = %d, want 0 on repeat", got)
	}
	// Crossing 100 fires the last threshold once.
	if got := e.CheckBudget(spend(120000)); got != 1 {
		t.Errorf("emitted = %d, want 1 (100%%)", got)
	}
}

func TestCheckBudgetIgnoresIncomeAndOtherMonths(t *testing.T) {
	e := engineAt(t, "2026-08-28")
	e.UpdateSettings(models.NotificationSettings{
		Budget: models.BudgetSettings{Enabled: true, MonthlyLimit: 100000},
	})

	expenses := []models.Expense{
		{ID: "e1", Date: "2026-08-10", Item: "월급", Amount: 500000, Type: models.ExpenseTypeIncome},
		{ID: "e2", Date: "2026-07-10", Item: "저번달", Amount: 500000, Type: models.ExpenseTypeExpense},
		{ID: "e3", Date: "2026-08-10", Item: "이번달", Amount: 20000, Type: models.ExpenseTypeExpense},
	}
	if got := e.CheckBudget(expenses); got != 0 {
		t.Errorf("emitted = %d, want 0 (20%% of limit)", got)
	}
}

func TestBudgetHistorySurvivesRoundTrip(t *testing.T) {
	e := engineAt(t, "2026-08-28")
	e.UpdateSettings(models.NotificationSettings{
		Budget: models.BudgetSettings{Enabled: true, MonthlyLimit: 100000},
	})
	spend := []models.Expense{{ID: "e1", Date: "2026-08-28", Item: "지출", Amount: 40000, Type: models.ExpenseTypeExpense}}
	if got := e.CheckBudget(spend); got != 1 {
		t.Fatalf("emitted = %d, want 1", got)
	}

	var snap models.Snapshot
	e.Fill(&snap)

	restored := engineAt(t, "2026-08-28")
	restored.Load(snap)
	if got := restored.CheckBudget(spend); got != 0 {
		t.Errorf("emitted = %d after restore, want 0", got)
	}
}

func TestAcknowledgeConsumes(t *testing.T) {
	e := engineAt(t, "2026-08-28")
	e.RunDailyCheck([]models.ScheduleItem{{ID: "s1", Title: "회의", Date: "2026-08-28"}})
	id := e.Notifications()[0].ID

	n, ok := e.Acknowledge(id)
	if !ok || n.ID != id {
		t.Fatalf("Acknowledge = %+v, %v", n, ok)
	}
	if len(e.Notifications()) != 0 {
		t.Error("notification not consumed")
	}
	if _, ok := e.Acknowledge(id); ok {
		t.Error("double acknowledge succeeded")
	}
}
