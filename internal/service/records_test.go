package service

import (
	"context"
	"testing"
	"time"

	"github.com/smkwon/lifeone/internal/models"
)

func TestAccessorsReturnCopies(t *testing.T) {
	fx := &fakeExtractor{responses: []models.ConversationalResponse{{Answer: "네, 반가워요."}}}
	a, _ := newTestAssistant(t, fx)
	ctx := context.Background()

	early := a.AddScheduleItem(ctx, models.ScheduleItem{Title: "회의", Date: "2026-09-01"})
	a.AddScheduleItem(ctx, models.ScheduleItem{Title: "치과", Date: "2026-09-10"})

	schedule := a.Schedule()

	// Moving the first item past the second re-sorts the store in place; a
	// slice handed out earlier must not change under its holder.
	moved := early
	moved.Date = "2026-09-20"
	if err := a.UpdateScheduleItem(ctx, moved); err != nil {
		t.Fatalf("UpdateScheduleItem: %v", err)
	}
	if schedule[0].ID != early.ID || schedule[0].Date != "2026-09-01" {
		t.Errorf("returned schedule mutated: %+v", schedule[0])
	}

	result, err := a.HandleMessage(ctx, models.NewSessionID, "안녕하세요", nil)
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	sessions := a.Sessions()
	if err := a.RenameSession(ctx, result.SessionID, "새 이름"); err != nil {
		t.Fatalf("RenameSession: %v", err)
	}
	if sessions[0].Title == "새 이름" {
		t.Error("returned sessions mutated by rename")
	}
}

func TestRestoreExpenseRunsBudgetCheck(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeExtractor{})
	ctx := context.Background()

	month := time.Now().Format("2006-01")
	e := a.AddExpense(ctx, models.Expense{
		Item: "노트북 수리", Date: month + "-05", Amount: 95000, Type: models.ExpenseTypeExpense,
	})
	if err := a.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}

	// With the expense in the trash, enabling the budget fires nothing.
	settings := a.NotificationSettings()
	settings.Budget = models.BudgetSettings{Enabled: true, MonthlyLimit: 100000}
	a.UpdateNotificationSettings(ctx, settings)
	if got := a.Notifications(); len(got) != 0 {
		t.Fatalf("notifications before restore = %+v", got)
	}

	trash := a.Trash()
	if len(trash) != 1 {
		t.Fatalf("trash = %d items, want 1", len(trash))
	}
	if err := a.RestoreTrashItem(ctx, trash[0].ID); err != nil {
		t.Fatalf("RestoreTrashItem: %v", err)
	}

	got := a.Notifications()
	if len(got) == 0 {
		t.Fatal("no budget notification after restoring the expense")
	}
	if got[0].Type != models.NotificationBudget {
		t.Errorf("type = %q, want %q", got[0].Type, models.NotificationBudget)
	}
}

func TestExpenseSummaryForMonth(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeExtractor{})
	ctx := context.Background()

	a.AddExpense(ctx, models.Expense{Item: "점심", Date: "2026-08-05", Amount: 12000, Type: models.ExpenseTypeExpense, Category: "식비"})
	a.AddExpense(ctx, models.Expense{Item: "커피", Date: "2026-07-15", Amount: 4500, Type: models.ExpenseTypeExpense})

	july := a.ExpenseSummaryForMonth("2026-07")
	if july.Expense != 4500 || july.Income != 0 {
		t.Errorf("july = %+v", july)
	}

	empty := a.ExpenseSummaryForMonth("2025-01")
	if empty.Month != "2025-01" || empty.Expense != 0 {
		t.Errorf("empty month = %+v", empty)
	}
}
