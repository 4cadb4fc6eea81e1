package triage

import (
	"strings"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Query is the operator's view selection.
type Query struct {
	Status string
	Search string
}

// Matches reports whether a complaint is visible under the query.
func (q Query) Matches(c domain.Complaint) bool {
	if q.Status != "" && q.Status != StatusAll && string(c.Status) != q.Status {
		return false
	}
	if q.Search == "" {
		return true
	}
	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(strings.ToLower(c.Description), term)
}

// Filter returns the complaints matching the status filter and the search term,
// keeping their relative order. An empty status behaves like StatusAll.
func Filter(records []domain.Complaint, status, search string) []domain.Complaint {
	q := Query{Status: status, Search: search}
	result := make([]domain.Complaint, 0, len(records))
	for _, c := range records {
		if q.Matches(c) {
			result = append(result, c)
		}
	}
	return result
}
