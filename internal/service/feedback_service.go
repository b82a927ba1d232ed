// FILE: internal/service/feedback_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	FeedbackSuccess = "success"
	FeedbackError   = "error"

	// MessageTypeFeedback is the websocket frame type of builder toasts.
	MessageTypeFeedback = "feedback"
)

// FeedbackMessage is a toast shown after a builder action.
type FeedbackMessage struct {
	Id        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	UserId    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackDelivery pushes frames to connected dashboards. Implemented by the WebSocket Hub.
type FeedbackDelivery interface {
	Send(userID uuid.UUID, msg websocket.Message)
	Broadcast(msg websocket.Message)
}

type userCtxKey struct{}

// ContextWithUser records the acting user so feedback goes to that user's sessions only.
func ContextWithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userCtxKey{}, userID)
}

func userFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userCtxKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

type IFeedbackService interface {
	Success(ctx context.Context, title, message string)
	Failure(ctx context.Context, title, message string)
	Consume(ctx context.Context) error
}

// feedbackService queues toasts on an in-process watermill topic; Consume drains it
// into the websocket hub so builder requests never block on client connections.
type feedbackService struct {
	pubSub   *gochannel.GoChannel
	topic    string
	delivery FeedbackDelivery
	logger   logger.ILogger
}

func NewFeedbackService(pubSub *gochannel.GoChannel, topic string, delivery FeedbackDelivery, logger logger.ILogger) IFeedbackService {
	return &feedbackService{
		pubSub:   pubSub,
		topic:    topic,
		delivery: delivery,
		logger:   logger,
	}
}

func (s *feedbackService) Success(ctx context.Context, title, message string) {
	s.publish(ctx, FeedbackSuccess, title, message)
}

func (s *feedbackService) Failure(ctx context.Context, title, message string) {
	s.publish(ctx, FeedbackError, title, message)
}

func (s *feedbackService) publish(ctx context.Context, kind, title, text string) {
	fb := FeedbackMessage{
		Id:        watermill.NewUUID(),
		Kind:      kind,
		Title:     title,
		Message:   text,
		CreatedAt: time.Now(),
	}
	if userID, ok := userFromContext(ctx); ok {
		fb.UserId = userID.String()
	}

	payload, err := json.Marshal(fb)
	if err != nil {
		s.logger.Error("FEEDBACK", "Failed to encode feedback", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.pubSub.Publish(s.topic, message.NewMessage(fb.Id, payload)); err != nil {
		s.logger.Error("FEEDBACK", "Failed to queue feedback", map[string]interface{}{"error": err.Error()})
	}
}

func (s *feedbackService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *feedbackService) processMessage(msg *message.Message) {
	var fb FeedbackMessage
	if err := json.Unmarshal(msg.Payload, &fb); err != nil {
		s.logger.Warn("FEEDBACK", "Dropping malformed feedback", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	frame := websocket.Message{Type: MessageTypeFeedback, Data: fb}
	if userID, err := uuid.Parse(fb.UserId); err == nil {
		s.delivery.Send(userID, frame)
	} else {
		s.delivery.Broadcast(frame)
	}

	s.logger.Debug("FEEDBACK", fb.Title, map[string]interface{}{"kind": fb.Kind, "message": fb.Message})
	msg.Ack()
}
