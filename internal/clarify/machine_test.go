package clarify

import (
	"testing"

	"github.com/smkwon/lifeone/internal/models"
)

func draftWithTime(title, timeStr string) models.ExtractionBatch {
	return models.ExtractionBatch{
		Schedule: []models.ScheduleItem{{Title: title, Date: "2026-09-01", Time: timeStr}},
	}
}

func TestResolveMeridiem(t *testing.T) {
	tests := []struct {
		name     string
		time     string
		reply    string
		wantTime string
	}{
		{name: "pm adds twelve", time: "09:00", reply: "오후", wantTime: "21:00"},
		{name: "pm noon stays", time: "12:00", reply: "오후", wantTime: "12:00"},
		{name: "am midnight wraps", time: "12:30", reply: "오전", wantTime: "00:30"},
		{name: "am morning zero-pads", time: "9:15", reply: "오전", wantTime: "09:15"},
		{name: "hour without minutes", time: "7", reply: "오후", wantTime: "19:00"},
		{name: "already 24h untouched", time: "14:00", reply: "오후", wantTime: "14:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Begin(models.Input{Text: "원문"}, draftWithTime("회의", tt.time))

			res, ok := m.Resolve(tt.reply)
			if !ok {
				t.Fatal("Resolve returned false for a fixed option")
			}
			if got := res.Batch.Schedule[0].Time; got != tt.wantTime {
				t.Errorf("time = %q, want %q", got, tt.wantTime)
			}
			if res.Input.Text != "원문" {
				t.Errorf("input = %q, want the original ambiguous input", res.Input.Text)
			}
			if m.Awaiting() {
				t.Error("machine still awaiting after resolution")
			}
		})
	}
}

func TestResolveCategoryFiltersDraft(t *testing.T) {
	draft := models.ExtractionBatch{
		Contacts: []models.Contact{{Name: "김철수"}},
		Schedule: []models.ScheduleItem{{Title: "회의", Date: "2026-09-01"}},
		Expenses: []models.Expense{{Item: "점심", Amount: 9000, Type: models.ExpenseTypeExpense}},
		Diary:    []models.DiaryEntry{{Date: "2026-08-28", Entry: "메모"}},
	}

	tests := []struct {
		reply string
		check func(models.ExtractionBatch) bool
	}{
		{"연락처", func(b models.ExtractionBatch) bool {
			return len(b.Contacts) == 1 && len(b.Schedule)+len(b.Expenses)+len(b.Diary) == 0
		}},
		{"일정", func(b models.ExtractionBatch) bool {
			return len(b.Schedule) == 1 && len(b.Contacts)+len(b.Expenses)+len(b.Diary) == 0
		}},
		{"가계부", func(b models.ExtractionBatch) bool {
			return len(b.Expenses) == 1 && len(b.Contacts)+len(b.Schedule)+len(b.Diary) == 0
		}},
		{"메모", func(b models.ExtractionBatch) bool {
			return len(b.Diary) == 1 && len(b.Contacts)+len(b.Schedule)+len(b.Expenses) == 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			m := New()
			m.Begin(models.Input{Text: "애매한 입력"}, draft)
			res, ok := m.Resolve(tt.reply)
			if !ok {
				t.Fatal("Resolve returned false")
			}
			if !tt.check(res.Batch) {
				t.Errorf("filtered batch = %+v", res.Batch)
			}
			if res.Message == "" {
				t.Error("confirmation message missing")
			}
		})
	}
}

func TestResolveNonOptionLeavesDraft(t *testing.T) {
	m := New()
	m.Begin(models.Input{Text: "x"}, draftWithTime("회의", "09:00"))

	if _, ok := m.Resolve("아무 말"); ok {
		t.Fatal("non-option reply must not resolve")
	}
	if !m.Awaiting() {
		t.Error("draft must stay parked until the caller decides")
	}

	m.Reset()
	if m.Awaiting() {
		t.Error("Reset did not clear the draft")
	}
}

func TestResolveWhenIdle(t *testing.T) {
	m := New()
	if _, ok := m.Resolve("오전"); ok {
		t.Error("idle machine must not resolve")
	}
}
