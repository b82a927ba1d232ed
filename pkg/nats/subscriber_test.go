package nats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRoundTrip(t *testing.T) {
	subject := Subject("CUSTOM_FEATURE_CREATED")

	assert.Equal(t, "features.CUSTOM_FEATURE_CREATED", subject)
	assert.Equal(t, "CUSTOM_FEATURE_CREATED", EventTypeFromSubject(subject))
}

func TestDecodeEvent(t *testing.T) {
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	data := []byte(`{"feature_id":"abc","slug":"vendor-management","occurred_at":"` + at.Format(time.RFC3339Nano) + `"}`)

	event, err := DecodeEvent("features.CUSTOM_FEATURE_DELETED", data)
	require.NoError(t, err)

	assert.Equal(t, "CUSTOM_FEATURE_DELETED", event.EventType())
	assert.Equal(t, "vendor-management", event.Payload()["slug"])
	assert.True(t, at.Equal(event.Timestamp()))
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := DecodeEvent("features.X", []byte("{"))

	assert.Error(t, err)
}
