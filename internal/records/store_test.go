package records

import (
	"strings"
	"testing"

	"github.com/smkwon/lifeone/internal/models"
)

func TestNewStoreSeedsSentinel(t *testing.T) {
	s := New()
	cats := s.Categories()
	if len(cats) != 1 || cats[0].ID != models.SentinelCategoryID {
		t.Fatalf("categories = %+v, want only the sentinel", cats)
	}
}

func TestAddContactsCanonicalizes(t *testing.T) {
	s := New()
	s.AddContacts([]models.Contact{{Name: "김철수", Phone: "01012345678"}})
	s.AddContacts([]models.Contact{{Name: "이영희"}})

	contacts := s.Contacts()
	if len(contacts) != 2 {
		t.Fatalf("len = %d, want 2", len(contacts))
	}
	// Newest first.
	if contacts[0].Name != "이영희" {
		t.Errorf("contacts[0].Name = %q, want 이영희", contacts[0].Name)
	}
	if contacts[0].Group != models.DefaultGroup {
		t.Errorf("group = %q, want default", contacts[0].Group)
	}
	if contacts[1].Phone != "010-1234-5678" {
		t.Errorf("phone = %q, want canonical format", contacts[1].Phone)
	}
	if contacts[0].ID == "" || contacts[1].ID == "" {
		t.Error("ids must be assigned")
	}
}

func TestAddScheduleKeepsOrder(t *testing.T) {
	s := New()
	s.AddSchedule([]models.ScheduleItem{
		{Title: "later", Date: "2026-09-02"},
		{Title: "earlier", Date: "2026-09-01", Time: "14:00"},
		{Title: "earliest", Date: "2026-09-01", Time: "09:00"},
	})

	got := s.Schedule()
	wantTitles := []string{"earliest", "earlier", "later"}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("schedule[%d].Title = %q, want %q", i, got[i].Title, want)
		}
	}
	for _, item := range got {
		if item.CategoryID != models.SentinelCategoryID {
			t.Errorf("CategoryID = %q, want sentinel", item.CategoryID)
		}
		if item.Category != "" {
			t.Errorf("free-text category %q must not be stored", item.Category)
		}
	}
}

func TestAddExpensesSortsDescending(t *testing.T) {
	s := New()
	s.AddExpenses([]models.Expense{
		{Item: "old", Date: "2026-08-01", Amount: 1, Type: models.ExpenseTypeExpense},
		{Item: "new", Date: "2026-08-28", Amount: 2, Type: models.ExpenseTypeExpense},
	})
	got := s.Expenses()
	if got[0].Item != "new" || got[1].Item != "old" {
		t.Errorf("expenses not date-descending: %+v", got)
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	s := New()
	s.AddContacts([]models.Contact{{Name: "a"}})
	if s.UpdateContact("nope", func(c *models.Contact) { c.Name = "x" }) {
		t.Error("UpdateContact on unknown id reported true")
	}
	if s.Contacts()[0].Name != "a" {
		t.Error("unknown-id update mutated the collection")
	}
}

func TestUpdateScheduleRestoresOrder(t *testing.T) {
	s := New()
	s.AddSchedule([]models.ScheduleItem{
		{ID: "a", Title: "a", Date: "2026-09-01"},
		{ID: "b", Title: "b", Date: "2026-09-02"},
	})
	s.UpdateSchedule("a", func(item *models.ScheduleItem) { item.Date = "2026-09-03" })
	got := s.Schedule()
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("order not restored after update: %+v", got)
	}
}

func TestResolveCategory(t *testing.T) {
	s := New()

	created, isNew := s.ResolveCategory("운동")
	if !isNew {
		t.Fatal("first resolve should create")
	}
	if !strings.HasPrefix(created.Color, "#") || len(created.Color) != 7 {
		t.Errorf("color = %q, want #RRGGBB", created.Color)
	}

	again, isNew := s.ResolveCategory(" 운동 ")
	if isNew {
		t.Error("case/space-insensitive match should not create")
	}
	if again.ID != created.ID {
		t.Errorf("resolved to %q, want %q", again.ID, created.ID)
	}

	upper, isNew := s.ResolveCategory("Gym")
	if !isNew {
		t.Fatal("new name should create")
	}
	lower, isNew := s.ResolveCategory("gym")
	if isNew || lower.ID != upper.ID {
		t.Error("names must match case-insensitively")
	}
}

func TestRemoveCategoryReassignsToSentinel(t *testing.T) {
	s := New()
	cat, _ := s.ResolveCategory("운동")
	s.AddSchedule([]models.ScheduleItem{{ID: "s1", Title: "헬스", Date: "2026-09-01", CategoryID: cat.ID}})

	if err := s.RemoveCategory(cat.ID); err != nil {
		t.Fatalf("RemoveCategory: %v", err)
	}
	if got := s.Schedule()[0].CategoryID; got != models.SentinelCategoryID {
		t.Errorf("CategoryID = %q, want sentinel", got)
	}
}

func TestRemoveSentinelCategoryRefused(t *testing.T) {
	s := New()
	if err := s.RemoveCategory(models.SentinelCategoryID); err != ErrSentinelCategory {
		t.Errorf("err = %v, want ErrSentinelCategory", err)
	}
}

func TestLoadRestoresSentinelAndOrder(t *testing.T) {
	s := New()
	s.Load(models.Snapshot{
		Schedule: []models.ScheduleItem{
			{ID: "b", Date: "2026-09-02"},
			{ID: "a", Date: "2026-09-01"},
		},
		ScheduleCategories: []models.ScheduleCategory{{ID: "x", Name: "x", Color: "#ffffff"}},
	})
	if s.Schedule()[0].ID != "a" {
		t.Error("schedule order not restored on load")
	}
	found := false
	for _, c := range s.Categories() {
		if c.ID == models.SentinelCategoryID {
			found = true
		}
	}
	if !found {
		t.Error("sentinel category missing after load")
	}
}
