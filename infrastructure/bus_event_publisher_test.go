package infrastructure

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorebet/domain/events"
)

type recordingSink struct {
	events []events.Event
	err    error
}

func (s *recordingSink) Publish(event events.Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestEventBus_FansOutToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	bus := NewEventBus(first, second)

	event := events.GameCancelledEvent{GameUUID: uuid.New()}
	require.NoError(t, bus.Publish(event))

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	assert.Equal(t, event, first.events[0])
}

func TestEventBus_FailingSinkDoesNotStopTheRest(t *testing.T) {
	failing := &recordingSink{err: errors.New("kafka down")}
	healthy := &recordingSink{}
	bus := NewEventBus(failing, healthy)

	require.NoError(t, bus.Publish(events.GameCancelledEvent{GameUUID: uuid.New()}))
	assert.Len(t, healthy.events, 1)
}

func TestEventBus_Subscribe(t *testing.T) {
	bus := NewEventBus()
	sink := &recordingSink{}
	bus.Subscribe(sink)

	require.NoError(t, bus.Publish(events.GameCancelledEvent{GameUUID: uuid.New()}))
	assert.Len(t, sink.events, 1)
}
