package triage

import (
	"time"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

// RecentActivityLimit caps the recent activity slice of the dashboard.
const RecentActivityLimit = 5

// Activity is the dashboard projection of a complaint.
type Activity struct {
	ID        string
	Name      string
	ScamType  domain.ScamType
	CreatedAt time.Time
}

// TypeCount is one bucket of the scam type distribution.
type TypeCount struct {
	ScamType domain.ScamType
	Count    int
}

// Stats aggregates a complaint collection for the operator dashboard.
type Stats struct {
	Total            int
	Pending          int
	InReview         int
	Resolved         int
	Closed           int
	TotalAmount      float64
	AvgAmount        float64
	RecentActivity   []Activity
	TypeDistribution []TypeCount
}

// Summarize computes dashboard statistics over the full, unfiltered collection.
// Recent activity is the head of the collection in the order given; the
// distribution lists types in first-seen order.
func Summarize(records []domain.Complaint) Stats {
	stats := Stats{
		Total:            len(records),
		RecentActivity:   make([]Activity, 0, RecentActivityLimit),
		TypeDistribution: []TypeCount{},
	}

	index := make(map[domain.ScamType]int)
	for i, c := range records {
		switch c.Status {
		case domain.ComplaintStatusPending:
			stats.Pending++
		case domain.ComplaintStatusInReview:
			stats.InReview++
		case domain.ComplaintStatusResolved:
			stats.Resolved++
		case domain.ComplaintStatusClosed:
			stats.Closed++
		}

		stats.TotalAmount += c.Amount()

		if i < RecentActivityLimit {
			stats.RecentActivity = append(stats.RecentActivity, Activity{
				ID:        c.ID,
				Name:      c.Name,
				ScamType:  c.ScamType,
				CreatedAt: c.CreatedAt,
			})
		}

		pos, seen := index[c.ScamType]
		if !seen {
			pos = len(stats.TypeDistribution)
			index[c.ScamType] = pos
			stats.TypeDistribution = append(stats.TypeDistribution, TypeCount{ScamType: c.ScamType})
		}
		stats.TypeDistribution[pos].Count++
	}

	stats.AvgAmount = Ratio(stats.TotalAmount, float64(stats.Total))
	return stats
}

// Ratio divides part by total and yields 0 when total is 0.
func Ratio(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total
}

// Share returns count as a percentage of total, 0 for an empty collection.
func Share(count, total int) float64 {
	return Ratio(float64(count), float64(total)) * 100
}
