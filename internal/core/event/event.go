// Package event carries notifications from the dashboard core to whatever
// front end is attached (the CLI in this repository).
package event

import (
	"sync"
	"time"
)

// Topics published by the core.
const (
	// TopicNotify carries a Notification payload for the user.
	TopicNotify = "notify"
	// TopicSessionExpired fires when the backend rejects the stored
	// credential; the payload is the login entry point.
	TopicSessionExpired = "session.expired"
)

// NotificationLevel distinguishes success toasts from error toasts.
type NotificationLevel int

const (
	LevelSuccess NotificationLevel = iota
	LevelError
)

// Notification is the payload published on TopicNotify.
type Notification struct {
	Level      NotificationLevel
	Message    string
	MutationID string // correlates with mutation log entries, empty for read-path errors
}

// Event represents a system event
type Event struct {
	Topic   string
	Payload interface{}
	Time    time.Time
}

// Handler handles an incoming event. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(e Event)

// Bus defines the event bus interface
type Bus interface {
	// Publish sends an event to all subscribers of the topic
	Publish(topic string, payload interface{})

	// Subscribe adds a handler for a topic
	Subscribe(topic string, handler Handler)
}

type memoryBus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

// NewBus creates a new in-memory event bus
func NewBus() Bus {
	return &memoryBus{
		subscribers: make(map[string][]Handler),
	}
}

// Publish delivers synchronously so a caller observing a completed mutation
// has already seen its notification.
func (b *memoryBus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	handlers := b.subscribers[topic]
	snapshot := make([]Handler, len(handlers))
	copy(snapshot, handlers)
	b.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}

	e := Event{
		Topic:   topic,
		Payload: payload,
		Time:    time.Now(),
	}
	for _, h := range snapshot {
		h(e)
	}
}

func (b *memoryBus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[topic] = append(b.subscribers[topic], handler)
}
