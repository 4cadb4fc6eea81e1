package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/fraud-desk/internal/config"
	"github.com/spec-kit/fraud-desk/internal/events"
)

func TestNotificationHandlersLogEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	n := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{WebhookURL: "https://hooks.example.com"})
	n.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventComplaintStatusChanged, ComplaintID: "c1", Operator: "admin"})
	assert.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("ComplaintStatusChanged").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendWebhookNotificationStub").Len())
	assert.Equal(t, 0, logs.FilterMessage("sendEmailNotificationStub").Len())
}
