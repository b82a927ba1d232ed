package events

import (
	"context"

	"cmms-dashboard-be/internal/entity"
	"cmms-dashboard-be/internal/pkg/logger"
	pkgEvents "cmms-dashboard-be/pkg/events"

	"github.com/google/uuid"
)

const (
	TypeFeatureCreated = "CUSTOM_FEATURE_CREATED"
	TypeFeatureUpdated = "CUSTOM_FEATURE_UPDATED"
	TypeFeatureDeleted = "CUSTOM_FEATURE_DELETED"
)

// Publisher abstracts event publishing for feature builder operations
type Publisher interface {
	PublishFeatureCreated(ctx context.Context, feature *entity.CustomFeatureDefinition)
	PublishFeatureUpdated(ctx context.Context, feature *entity.CustomFeatureDefinition)
	PublishFeatureDeleted(ctx context.Context, featureId uuid.UUID, name, slug string)
}

// EventSink is the transport used by NatsPublisher; *nats.Publisher satisfies it.
type EventSink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// NatsPublisher implements Publisher on top of the NATS JetStream publisher.
// A nil sink turns every method into a no-op so the builder works without NATS.
type NatsPublisher struct {
	publisher EventSink
	logger    logger.ILogger
}

func NewNatsPublisher(publisher EventSink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishFeatureCreated emits CUSTOM_FEATURE_CREATED with the navigation href of the new feature
func (p *NatsPublisher) PublishFeatureCreated(ctx context.Context, feature *entity.CustomFeatureDefinition) {
	p.publish(ctx, TypeFeatureCreated, feature.Id, map[string]interface{}{
		"name":        feature.Name,
		"slug":        feature.Slug,
		"href":        feature.Href(),
		"icon":        string(feature.Icon),
		"field_count": len(feature.Fields),
	})
}

func (p *NatsPublisher) PublishFeatureUpdated(ctx context.Context, feature *entity.CustomFeatureDefinition) {
	p.publish(ctx, TypeFeatureUpdated, feature.Id, map[string]interface{}{
		"name":        feature.Name,
		"slug":        feature.Slug,
		"href":        feature.Href(),
		"field_count": len(feature.Fields),
	})
}

func (p *NatsPublisher) PublishFeatureDeleted(ctx context.Context, featureId uuid.UUID, name, slug string) {
	p.publish(ctx, TypeFeatureDeleted, featureId, map[string]interface{}{
		"name": name,
		"slug": slug,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, featureId uuid.UUID, data map[string]interface{}) {
	if p == nil || p.publisher == nil {
		return
	}

	evt := pkgEvents.NewEvent(eventType, data)
	data["feature_id"] = featureId.String()
	data["entity_type"] = "custom_feature"
	data["entity_id"] = featureId.String()
	data["occurred_at"] = evt.OccurredAt

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("BUILDER", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
