package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"cmms-dashboard-be/internal/pkg/logger"
	"cmms-dashboard-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delivered struct {
	userID uuid.UUID
	msg    websocket.Message
}

// recordingDelivery stands in for the websocket hub.
type recordingDelivery struct {
	mu        sync.Mutex
	sent      []delivered
	broadcast []websocket.Message
}

func (d *recordingDelivery) Send(userID uuid.UUID, msg websocket.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, delivered{userID: userID, msg: msg})
}

func (d *recordingDelivery) Broadcast(msg websocket.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.broadcast = append(d.broadcast, msg)
}

func (d *recordingDelivery) counts() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent), len(d.broadcast)
}

func newFeedbackFixture(t *testing.T) (IFeedbackService, *recordingDelivery, *gochannel.GoChannel) {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	delivery := &recordingDelivery{}
	svc := NewFeedbackService(pubSub, "builder.feedback", delivery, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, svc.Consume(ctx))
	return svc, delivery, pubSub
}

func TestFeedbackService_SendsToActingUser(t *testing.T) {
	svc, delivery, _ := newFeedbackFixture(t)
	userID := uuid.New()

	svc.Success(ContextWithUser(context.Background(), userID), "Success", "Feature created successfully.")

	require.Eventually(t, func() bool {
		sent, _ := delivery.counts()
		return sent == 1
	}, time.Second, 10*time.Millisecond)

	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	assert.Equal(t, userID, delivery.sent[0].userID)
	assert.Equal(t, MessageTypeFeedback, delivery.sent[0].msg.Type)

	fb, ok := delivery.sent[0].msg.Data.(FeedbackMessage)
	require.True(t, ok)
	assert.Equal(t, FeedbackSuccess, fb.Kind)
	assert.Equal(t, "Feature created successfully.", fb.Message)
	assert.Empty(t, delivery.broadcast)
}

func TestFeedbackService_BroadcastsWithoutUser(t *testing.T) {
	svc, delivery, _ := newFeedbackFixture(t)

	svc.Failure(context.Background(), "Validation Error", "Please fill in name and slug.")

	require.Eventually(t, func() bool {
		_, broadcast := delivery.counts()
		return broadcast == 1
	}, time.Second, 10*time.Millisecond)

	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	fb := delivery.broadcast[0].Data.(FeedbackMessage)
	assert.Equal(t, FeedbackError, fb.Kind)
	assert.Equal(t, "Validation Error", fb.Title)
	assert.Empty(t, fb.UserId)
}

func TestFeedbackService_AcksMalformedPayload(t *testing.T) {
	svc, delivery, pubSub := newFeedbackFixture(t)

	require.NoError(t, pubSub.Publish("builder.feedback", message.NewMessage(watermill.NewUUID(), []byte("{broken"))))
	svc.Success(context.Background(), "Success", "after malformed")

	// The consumer must move past the bad message
	require.Eventually(t, func() bool {
		_, broadcast := delivery.counts()
		return broadcast == 1
	}, time.Second, 10*time.Millisecond)
}

func TestContextWithUser_IgnoresNilID(t *testing.T) {
	_, ok := userFromContext(ContextWithUser(context.Background(), uuid.Nil))
	assert.False(t, ok)

	id := uuid.New()
	got, ok := userFromContext(ContextWithUser(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
