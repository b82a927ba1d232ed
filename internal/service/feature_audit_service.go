package service

import (
	"context"
	"time"

	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/websocket"
	"cmms-dashboard-be/pkg/events"
	pktNats "cmms-dashboard-be/pkg/nats"
)

// MessageTypeFeatureEvent is the websocket frame type of feature lifecycle events.
const MessageTypeFeatureEvent = "feature_event"

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

// FeatureAuditService records every feature lifecycle event from the bus and tells
// connected dashboards to refresh their navigation.
type FeatureAuditService struct {
	subscriber EventSubscriber
	delivery   FeedbackDelivery
	logger     logger.ILogger
}

func NewFeatureAuditService(sub EventSubscriber, delivery FeedbackDelivery, log logger.ILogger) *FeatureAuditService {
	return &FeatureAuditService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus. It is a no-op without a subscriber.
func (s *FeatureAuditService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("FeatureAudit", "No event subscriber configured, audit trail disabled", nil)
		return
	}
	err := s.subscriber.Subscribe(pktNats.SubjectPrefix+">", "feature-audit-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("FeatureAudit", "Failed to start feature audit subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("FeatureAudit", "Feature audit started", map[string]interface{}{"subject": pktNats.SubjectPrefix + ">"})
}

func (s *FeatureAuditService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	s.logger.Info("FeatureAudit", "Feature "+event.EventType(), map[string]interface{}{
		"type":       event.EventType(),
		"feature_id": payload["feature_id"],
		"slug":       payload["slug"],
		"at":         event.Timestamp().Format(time.RFC3339),
	})

	if s.delivery != nil {
		s.delivery.Broadcast(websocket.Message{
			Type: MessageTypeFeatureEvent,
			Data: map[string]interface{}{
				"type":       event.EventType(),
				"feature_id": payload["feature_id"],
				"slug":       payload["slug"],
				"href":       payload["href"],
			},
		})
	}
	return nil
}
