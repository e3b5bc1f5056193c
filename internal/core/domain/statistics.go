package domain

import "github.com/shopspring/decimal"

// ComputedStats are the four figures the aggregator writes back onto a session.
type ComputedStats struct {
	TotalVerifiedItems   int             `json:"totalVerifiedItems"`
	TotalDiscrepancies   int             `json:"totalDiscrepancies"`
	ActualFinancialValue decimal.Decimal `json:"actualFinancialValue"`
	VarianceValue        decimal.Decimal `json:"varianceValue"`
}

// ComputeSessionStats derives session totals from the session's items only.
// Pending items contribute their expected quantity to the actual value.
func ComputeSessionStats(items []VerificationItem) ComputedStats {
	stats := ComputedStats{
		ActualFinancialValue: decimal.Zero,
		VarianceValue:        decimal.Zero,
	}
	for _, item := range items {
		quantity := item.ExpectedQuantity
		if item.Status != ItemPending {
			stats.TotalVerifiedItems++
			quantity = item.VerifiedQuantity
		}
		switch item.Status {
		case ItemDiscrepancy, ItemOverage, ItemNotFound:
			stats.TotalDiscrepancies++
		}
		stats.ActualFinancialValue = stats.ActualFinancialValue.Add(item.Details.Price.Mul(decimal.NewFromInt(int64(quantity))))
		stats.VarianceValue = stats.VarianceValue.Add(item.VarianceValue)
	}
	return stats
}

// Apply writes the computed figures onto the session stats.
func (c ComputedStats) Apply(s *SessionStats) {
	s.TotalVerifiedItems = c.TotalVerifiedItems
	s.TotalDiscrepancies = c.TotalDiscrepancies
	s.ActualFinancialValue = c.ActualFinancialValue
	s.VarianceValue = c.VarianceValue
}

// SummarizeItems counts items per status.
func SummarizeItems(items []VerificationItem) StatusSummary {
	var summary StatusSummary
	for _, item := range items {
		summary.Add(item.Status, 1)
	}
	return summary
}
