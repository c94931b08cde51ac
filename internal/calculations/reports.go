package calculations

import (
	"time"

	"github.com/finance-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultColors is the palette used for categories without a color.
var DefaultColors = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899", "#14B8A6", "#F97316"}

// Period is a closed time interval.
type Period struct {
	StartDate time.Time `json:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate   time.Time `json:"endDate" example:"2024-01-31T23:59:59.999999999Z"`
}

// DashboardSummary holds the totals for a set of transactions.
type DashboardSummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome" example:"5000"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses" example:"250.5"`
	NetBalance       decimal.Decimal `json:"netBalance" example:"4749.5"`
	TransactionCount int             `json:"transactionCount" example:"4"`
	Period           Period          `json:"period"`
}

// MonthlySummary holds the totals of a single month.
type MonthlySummary struct {
	Month    types.Month     `json:"month" swaggertype:"string" example:"2024-01"`
	Income   decimal.Decimal `json:"income" example:"5000"`
	Expenses decimal.Decimal `json:"expenses" example:"250.5"`
	Balance  decimal.Decimal `json:"balance" example:"4749.5"`
}

// PieChartDataPoint is the share of one category in a chart.
type PieChartDataPoint struct {
	Name       string          `json:"name" example:"Food & Dining"`
	Value      decimal.Decimal `json:"value" example:"205.5"`
	Percentage decimal.Decimal `json:"percentage" example:"82.2"`
	Color      string          `json:"color" example:"#F59E0B"`
}

// PeriodWindow returns the first and last instant of the budget period
// containing reference, in the location of reference. Weeks start on Monday.
func PeriodWindow(period BudgetPeriod, reference time.Time) (time.Time, time.Time) {
	year, month, day := reference.Date()
	loc := reference.Location()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, loc)

	var start, next time.Time
	switch period {
	case PeriodDaily:
		start = startOfDay
		next = start.AddDate(0, 0, 1)
	case PeriodWeekly:
		// time.Sunday is 0, shift so that Monday is the first day
		offset := (int(reference.Weekday()) + 6) % 7
		start = startOfDay.AddDate(0, 0, -offset)
		next = start.AddDate(0, 0, 7)
	case PeriodYearly:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(1, 0, 0)
	default:
		m := types.MonthOf(reference)
		return m.First(), m.Last()
	}

	return start, next.Add(-time.Nanosecond)
}

// BudgetWindow returns the period window of the budget containing
// reference, clipped to the start and end dates of the budget. The end date
// includes the whole day. The window is inverted when reference is outside
// of the budget's date range.
func BudgetWindow(budget Budget, reference time.Time) (time.Time, time.Time) {
	start, end := PeriodWindow(budget.Period, reference)

	if budget.StartDate != nil && budget.StartDate.After(start) {
		start = *budget.StartDate
	}

	if budget.EndDate != nil {
		year, month, day := budget.EndDate.Date()
		endOfDay := time.Date(year, month, day+1, 0, 0, 0, 0, budget.EndDate.Location()).Add(-time.Nanosecond)
		if endOfDay.Before(end) {
			end = endOfDay
		}
	}

	return start, end
}

// Summarize returns the totals of the transactions between start and end.
func Summarize(transactions []Transaction, start, end time.Time) DashboardSummary {
	scoped := FilterByDateRange(transactions, start, end)

	return DashboardSummary{
		TotalIncome:      TotalIncome(scoped),
		TotalExpenses:    TotalExpenses(scoped),
		NetBalance:       NetBalance(scoped),
		TransactionCount: len(scoped),
		Period: Period{
			StartDate: start,
			EndDate:   end,
		},
	}
}

// MonthlySummaries returns one summary per month for the given number of
// consecutive months ending with the month of until, oldest first. Months
// without transactions have zero totals.
func MonthlySummaries(transactions []Transaction, until time.Time, months int) []MonthlySummary {
	groups := GroupByMonth(transactions)
	last := types.MonthOf(until)

	out := make([]MonthlySummary, 0, max(months, 0))
	for i := months - 1; i >= 0; i-- {
		month := last.AddDate(0, -i)
		bucket := groups[month.String()]

		out = append(out, MonthlySummary{
			Month:    month,
			Income:   TotalIncome(bucket),
			Expenses: TotalExpenses(bucket),
			Balance:  NetBalance(bucket),
		})
	}

	return out
}

// CategoryShares converts category summaries into chart points. Categories
// missing from colors get a color from DefaultColors.
func CategoryShares(summaries []CategorySummary, colors map[uuid.UUID]string) []PieChartDataPoint {
	points := make([]PieChartDataPoint, 0, len(summaries))
	for i, s := range summaries {
		color := colors[s.CategoryID]
		if color == "" {
			color = DefaultColors[i%len(DefaultColors)]
		}

		points = append(points, PieChartDataPoint{
			Name:       s.CategoryName,
			Value:      s.Amount,
			Percentage: s.Percentage,
			Color:      color,
		})
	}
	return points
}
