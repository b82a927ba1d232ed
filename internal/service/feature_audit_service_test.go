package service

import (
	"context"
	"errors"
	"testing"

	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/pkg/events"
	pktNats "cmms-dashboard-be/pkg/nats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSubscriber struct {
	subject string
	durable string
	handler pktNats.EventHandler
	err     error
}

func (s *fakeSubscriber) Subscribe(subject string, durableName string, handler pktNats.EventHandler) error {
	s.subject = subject
	s.durable = durableName
	s.handler = handler
	return s.err
}

func TestFeatureAuditService_LogsAndBroadcasts(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sub := &fakeSubscriber{}
	delivery := &recordingDelivery{}

	svc := NewFeatureAuditService(sub, delivery, logger.NewObservedLogger(core))
	svc.Start()

	assert.Equal(t, "features.>", sub.subject)
	assert.Equal(t, "feature-audit-worker", sub.durable)
	require.NotNil(t, sub.handler)

	evt := events.NewEvent("CUSTOM_FEATURE_CREATED", map[string]interface{}{
		"feature_id": "2f1c",
		"slug":       "safety-inspections",
		"href":       "/custom/safety-inspections",
	})
	require.NoError(t, sub.handler(context.Background(), evt))

	require.Len(t, delivery.broadcast, 1)
	assert.Equal(t, MessageTypeFeatureEvent, delivery.broadcast[0].Type)
	data := delivery.broadcast[0].Data.(map[string]interface{})
	assert.Equal(t, "/custom/safety-inspections", data["href"])

	assert.Equal(t, 1, logs.FilterMessage("Feature CUSTOM_FEATURE_CREATED").Len())
}

func TestFeatureAuditService_WithoutSubscriber(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	svc := NewFeatureAuditService(nil, nil, logger.NewObservedLogger(core))

	svc.Start()

	assert.Equal(t, 1, logs.FilterMessage("No event subscriber configured, audit trail disabled").Len())
}

func TestFeatureAuditService_SubscribeFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sub := &fakeSubscriber{err: errors.New("stream not found")}
	svc := NewFeatureAuditService(sub, nil, logger.NewObservedLogger(core))

	svc.Start()

	assert.Equal(t, 1, logs.FilterMessage("Failed to start feature audit subscriber").Len())
}
