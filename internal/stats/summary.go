// Package stats computes ledger summaries: per-month income and spend totals
// with a per-category breakdown. Pure functions over the expense collection.
package stats

import (
	"sort"

	"github.com/smkwon/lifeone/internal/models"
)

// CategoryTotal is one category's spend within a month.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// MonthlySummary aggregates one month of ledger entries.
type MonthlySummary struct {
	// Month is the YYYY-MM key.
	Month string `json:"month"`

	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`

	// Net is income minus expense; negative means the month ran a deficit.
	Net int64 `json:"net"`

	// ByCategory breaks spending (not income) down per category label,
	// largest first. Entries without a category fall under "기타".
	ByCategory []CategoryTotal `json:"byCategory"`
}

// Summarize aggregates the whole ledger into monthly summaries, newest month
// first. Entries whose date is too short to carry a month key are skipped.
func Summarize(expenses []models.Expense) []MonthlySummary {
	byMonth := make(map[string]*MonthlySummary)
	categories := make(map[string]map[string]int64)

	for _, e := range expenses {
		if len(e.Date) < 7 {
			continue
		}
		month := e.Date[:7]
		summary := byMonth[month]
		if summary == nil {
			summary = &MonthlySummary{Month: month}
			byMonth[month] = summary
			categories[month] = map[string]int64{}
		}

		switch e.Type {
		case models.ExpenseTypeIncome:
			summary.Income += e.Amount
		default:
			summary.Expense += e.Amount
			label := e.Category
			if label == "" {
				label = models.DefaultGroup
			}
			categories[month][label] += e.Amount
		}
	}

	result := make([]MonthlySummary, 0, len(byMonth))
	for month, summary := range byMonth {
		summary.Net = summary.Income - summary.Expense
		summary.ByCategory = sortedCategories(categories[month])
		result = append(result, *summary)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month > result[j].Month })
	return result
}

// ForMonth aggregates a single month; a month with no entries yields a zero
// summary carrying the requested key.
func ForMonth(expenses []models.Expense, month string) MonthlySummary {
	for _, s := range Summarize(expenses) {
		if s.Month == month {
			return s
		}
	}
	return MonthlySummary{Month: month}
}

func sortedCategories(totals map[string]int64) []CategoryTotal {
	result := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		result = append(result, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Category < result[j].Category
	})
	return result
}
