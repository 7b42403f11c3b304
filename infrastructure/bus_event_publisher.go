package infrastructure

import (
	log "github.com/sirupsen/logrus"

	"scorebet/domain/events"
)

// EventBus fans events out to any number of sinks. The core publishes
// fire-and-forget, so a failing sink is logged and skipped; the remaining
// sinks still receive the event.
type EventBus struct {
	sinks []EventSink
}

// EventSink consumes core events off the bus
type EventSink interface {
	Publish(event events.Event) error
}

// NewEventBus creates an event bus over the given sinks
func NewEventBus(sinks ...EventSink) *EventBus {
	return &EventBus{sinks: sinks}
}

// Subscribe adds another sink to the bus
func (b *EventBus) Subscribe(sink EventSink) {
	b.sinks = append(b.sinks, sink)
}

// Publish delivers the event to every sink in subscription order
func (b *EventBus) Publish(event events.Event) error {
	for _, sink := range b.sinks {
		if err := sink.Publish(event); err != nil {
			log.WithError(err).WithField("event", event.Type()).Warn("event sink failed")
		}
	}
	return nil
}
