package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

func TestComputeSessionStats(t *testing.T) {
	now := time.Now()
	pending := newTestItem(5, 100)
	verified := newTestItem(5, 100).WithCount(5, domain.MethodQRScan, "u", "", now)
	short := newTestItem(5, 100).WithCount(2, domain.MethodQRScan, "u", "", now)
	over := newTestItem(5, 10).WithCount(7, domain.MethodManualEntry, "u", "", now)
	items := []domain.VerificationItem{pending, verified, short, over}

	stats := domain.ComputeSessionStats(items)

	assert.Equal(t, 3, stats.TotalVerifiedItems)
	assert.Equal(t, 2, stats.TotalDiscrepancies)
	// pending counts at expected: 500 + 500 + 200 + 70
	assert.True(t, decimal.NewFromInt(1270).Equal(stats.ActualFinancialValue), stats.ActualFinancialValue.String())
	// 0 + 0 - 300 + 20
	assert.True(t, decimal.NewFromInt(-280).Equal(stats.VarianceValue), stats.VarianceValue.String())

	again := domain.ComputeSessionStats(items)
	assert.Equal(t, stats.TotalVerifiedItems, again.TotalVerifiedItems)
	assert.Equal(t, stats.TotalDiscrepancies, again.TotalDiscrepancies)
	assert.True(t, stats.ActualFinancialValue.Equal(again.ActualFinancialValue))
	assert.True(t, stats.VarianceValue.Equal(again.VarianceValue))
}

func TestComputeSessionStats_NotFoundCountsAsDiscrepancy(t *testing.T) {
	item := newTestItem(2, 50)
	item.Status = domain.ItemNotFound

	stats := domain.ComputeSessionStats([]domain.VerificationItem{item})

	assert.Equal(t, 1, stats.TotalVerifiedItems)
	assert.Equal(t, 1, stats.TotalDiscrepancies)
}

func TestSummarizeItems(t *testing.T) {
	now := time.Now()
	items := []domain.VerificationItem{
		newTestItem(5, 100),
		newTestItem(5, 100),
		newTestItem(5, 100).WithCount(5, domain.MethodQRScan, "u", "", now),
		newTestItem(5, 100).WithCount(9, domain.MethodQRScan, "u", "", now),
	}

	summary := domain.SummarizeItems(items)

	assert.Equal(t, domain.StatusSummary{Total: 4, Pending: 2, Verified: 1, Overage: 1}, summary)
}
