package chain

import (
	log "github.com/sirupsen/logrus"

	"scorebet/domain/events"
	"scorebet/domain/interfaces"
)

// eventBuffer holds events back while an operation is in flight. The store
// rolls back when an operation fails, and buffering gives event emission the
// same all-or-nothing behavior: observers never see effects of a rejected
// operation.
type eventBuffer struct {
	sink    interfaces.EventPublisher
	pending []events.Event
}

func (b *eventBuffer) Publish(event events.Event) error {
	b.pending = append(b.pending, event)
	return nil
}

// flush delivers the buffered events to the sink in emission order. A sink
// failure never affects chain state, so it is logged and skipped.
func (b *eventBuffer) flush() {
	for _, event := range b.pending {
		if err := b.sink.Publish(event); err != nil {
			log.WithError(err).WithField("event", event.Type()).Warn("failed to publish event")
		}
	}
	b.pending = b.pending[:0]
}

// discard drops the buffered events of a rejected operation
func (b *eventBuffer) discard() {
	b.pending = b.pending[:0]
}
