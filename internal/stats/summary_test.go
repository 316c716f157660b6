package stats

import (
	"testing"

	"github.com/smkwon/lifeone/internal/models"
)

func ledger() []models.Expense {
	return []models.Expense{
		{ID: "e1", Date: "2026-08-01", Item: "월급", Amount: 3000000, Type: models.ExpenseTypeIncome},
		{ID: "e2", Date: "2026-08-05", Item: "점심", Amount: 12000, Type: models.ExpenseTypeExpense, Category: "식비"},
		{ID: "e3", Date: "2026-08-06", Item: "저녁", Amount: 30000, Type: models.ExpenseTypeExpense, Category: "식비"},
		{ID: "e4", Date: "2026-08-07", Item: "버스", Amount: 1500, Type: models.ExpenseTypeExpense, Category: "교통"},
		{ID: "e5", Date: "2026-08-08", Item: "기타지출", Amount: 5000, Type: models.ExpenseTypeExpense},
		{ID: "e6", Date: "2026-07-15", Item: "커피", Amount: 4500, Type: models.ExpenseTypeExpense, Category: "식비"},
		{ID: "e7", Date: "bad", Item: "날짜없음", Amount: 999, Type: models.ExpenseTypeExpense},
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(ledger())
	if len(got) != 2 {
		t.Fatalf("months = %d, want 2", len(got))
	}
	// Newest month first.
	if got[0].Month != "2026-08" || got[1].Month != "2026-07" {
		t.Errorf("order = %s, %s", got[0].Month, got[1].Month)
	}

	aug := got[0]
	if aug.Income != 3000000 {
		t.Errorf("income = %d", aug.Income)
	}
	if aug.Expense != 48500 {
		t.Errorf("expense = %d, want 48500", aug.Expense)
	}
	if aug.Net != 3000000-48500 {
		t.Errorf("net = %d", aug.Net)
	}

	// Categories sorted by spend, uncategorized under the default group.
	want := []CategoryTotal{
		{Category: "식비", Amount: 42000},
		{Category: models.DefaultGroup, Amount: 5000},
		{Category: "교통", Amount: 1500},
	}
	if len(aug.ByCategory) != len(want) {
		t.Fatalf("byCategory = %+v", aug.ByCategory)
	}
	for i, w := range want {
		if aug.ByCategory[i] != w {
			t.Errorf("byCategory[%d] = %+v, want %+v", i, aug.ByCategory[i], w)
		}
	}
}

func TestForMonth(t *testing.T) {
	july := ForMonth(ledger(), "2026-07")
	if july.Expense != 4500 || july.Income != 0 {
		t.Errorf("july = %+v", july)
	}

	empty := ForMonth(ledger(), "2025-01")
	if empty.Month != "2025-01" || empty.Expense != 0 || len(empty.ByCategory) != 0 {
		t.Errorf("empty month = %+v", empty)
	}
}
