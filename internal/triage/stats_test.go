package triage

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

func amount(v float64) *float64 { return &v }

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	assert.Equal(t, 0, stats.Total)
	assert.Zero(t, stats.AvgAmount)
	assert.False(t, math.IsNaN(stats.AvgAmount))
	assert.Empty(t, stats.RecentActivity)
	assert.Empty(t, stats.TypeDistribution)
}

func TestSummarizeAmounts(t *testing.T) {
	records := []domain.Complaint{
		{ID: "a", AmountLost: amount(100)},
		{ID: "b"},
		{ID: "c", AmountLost: amount(300)},
	}
	stats := Summarize(records)
	assert.Equal(t, 400.0, stats.TotalAmount)
	assert.InDelta(t, 400.0/3, stats.AvgAmount, 1e-9)
}

func TestSummarizeCountsAndDistribution(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.Complaint{
		{ID: "1", Name: "A", Status: domain.ComplaintStatusPending, ScamType: domain.ScamTypeGiftCard, CreatedAt: base},
		{ID: "2", Name: "B", Status: domain.ComplaintStatusInReview, ScamType: domain.ScamTypeCrypto, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Name: "C", Status: domain.ComplaintStatusPending, ScamType: domain.ScamTypeGiftCard},
		{ID: "4", Name: "D", Status: domain.ComplaintStatusResolved, ScamType: domain.ScamTypeOther},
		{ID: "5", Name: "E", Status: domain.ComplaintStatusClosed, ScamType: domain.ScamTypeCrypto},
		{ID: "6", Name: "F", Status: domain.ComplaintStatusPending, ScamType: domain.ScamTypeTransaction},
	}

	stats := Summarize(records)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 1, stats.InReview)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 1, stats.Closed)

	require.Len(t, stats.RecentActivity, RecentActivityLimit)
	assert.Equal(t, Activity{ID: "1", Name: "A", ScamType: domain.ScamTypeGiftCard, CreatedAt: base}, stats.RecentActivity[0])
	assert.Equal(t, "5", stats.RecentActivity[4].ID)

	assert.Equal(t, []TypeCount{
		{ScamType: domain.ScamTypeGiftCard, Count: 2},
		{ScamType: domain.ScamTypeCrypto, Count: 2},
		{ScamType: domain.ScamTypeOther, Count: 1},
		{ScamType: domain.ScamTypeTransaction, Count: 1},
	}, stats.TypeDistribution)
}

func TestShareGuardsEmptyTotal(t *testing.T) {
	assert.Zero(t, Share(3, 0))
	assert.Equal(t, 50.0, Share(1, 2))
}
