package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string

	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.ComplaintID)
		return errors.New("webhook down")
	})
	d.Subscribe(EventComplaintSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.ComplaintID)
		return nil
	})
	d.Subscribe(EventComplaintStatusChanged, func(_ context.Context, e Event) error {
		seen = append(seen, "status")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventComplaintSubmitted, ComplaintID: "c1"})
	assert.EqualError(t, err, "webhook down")
	assert.Equal(t, []string{"first:c1", "second:c1"}, seen)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged}))
}
