package report

import "github.com/shopspring/decimal"

// MonthDays is the length of the billing month used by projections.
const MonthDays = 30

// Money rounds a currency amount to three decimals.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(3)
}

// CostProjection is a daily and monthly cost estimate.
type CostProjection struct {
	Days    int
	Total   decimal.Decimal
	Daily   decimal.Decimal
	Monthly decimal.Decimal
}

// Projection derives daily and monthly cost from the cost of a run spanning
// days days. days below 1 is treated as 1.
func Projection(costForDays float64, days int) CostProjection {
	if days < 1 {
		days = 1
	}
	total := decimal.NewFromFloat(costForDays)
	daily := total.Div(decimal.NewFromInt(int64(days)))
	return CostProjection{
		Days:    days,
		Total:   total.Round(3),
		Daily:   daily.Round(3),
		Monthly: daily.Mul(decimal.NewFromInt(MonthDays)).Round(3),
	}
}
