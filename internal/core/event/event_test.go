package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []Event
	bus.Subscribe(TopicNotify, func(e Event) { first = append(first, e) })
	bus.Subscribe(TopicNotify, func(e Event) { second = append(second, e) })

	bus.Publish(TopicNotify, Notification{Level: LevelSuccess, Message: "done"})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, TopicNotify, first[0].Topic)
	note, ok := first[0].Payload.(Notification)
	require.True(t, ok)
	assert.Equal(t, "done", note.Message)
	assert.False(t, first[0].Time.IsZero())
}

func TestPublishIsSynchronous(t *testing.T) {
	bus := NewBus()

	delivered := false
	bus.Subscribe(TopicSessionExpired, func(e Event) { delivered = true })
	bus.Publish(TopicSessionExpired, "/login")

	// No sleeping or channel draining: delivery completed before Publish
	// returned.
	assert.True(t, delivered)
}

func TestPublishRespectsTopicBoundaries(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(TopicNotify, func(e Event) { got = append(got, e) })
	bus.Publish(TopicSessionExpired, "/login")

	assert.Empty(t, got)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(TopicNotify, Notification{Message: "nobody listening"})
	})
}
