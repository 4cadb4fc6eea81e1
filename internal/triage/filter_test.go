package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

func sampleComplaints() []domain.Complaint {
	return []domain.Complaint{
		{ID: "1", Name: "Jane Doe", Email: "jane@example.com", Description: "Fake exchange took my coins", Status: domain.ComplaintStatusPending},
		{ID: "2", Name: "Bob", Email: "bob@mail.net", Description: "Gift card scam over phone", Status: domain.ComplaintStatusResolved},
		{ID: "3", Name: "Alice", Email: "alice@corp.io", Description: "Wire transfer to JANE's account", Status: domain.ComplaintStatusPending},
		{ID: "4", Name: "Carl", Email: "carl@x.org", Description: "Romance scam", Status: domain.ComplaintStatusClosed},
	}
}

func ids(records []domain.Complaint) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterIdentity(t *testing.T) {
	records := sampleComplaints()
	assert.Equal(t, ids(records), ids(Filter(records, StatusAll, "")))
	assert.Equal(t, ids(records), ids(Filter(records, "", "")))
}

func TestFilterByStatus(t *testing.T) {
	got := Filter(sampleComplaints(), "pending", "")
	assert.Equal(t, []string{"1", "3"}, ids(got))

	assert.Empty(t, Filter(sampleComplaints(), "in_review", ""))
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(Filter(sampleComplaints(), StatusAll, "jane")))
	assert.Equal(t, []string{"2"}, ids(Filter(sampleComplaints(), StatusAll, "MAIL.NET")))
	assert.Equal(t, []string{"2", "4"}, ids(Filter(sampleComplaints(), StatusAll, "Scam")))
}

func TestFilterComposesStatusAndSearch(t *testing.T) {
	assert.Equal(t, []string{"4"}, ids(Filter(sampleComplaints(), "closed", "scam")))
	assert.Empty(t, Filter(sampleComplaints(), "resolved", "jane"))
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	records := sampleComplaints()
	got := Filter(records, StatusAll, "")
	got[0].Name = "changed"
	assert.Equal(t, "Jane Doe", records[0].Name)
}
