package events

import "time"

// Event is anything published on the feature event bus.
type Event interface {
	// EventType returns the unique code of the event (e.g. "CUSTOM_FEATURE_CREATED").
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// String returns a payload value as string, empty when missing or not a string.
func (e BaseEvent) String(key string) string {
	s, _ := e.Data[key].(string)
	return s
}
