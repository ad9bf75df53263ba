// Package events re-exports the platform event bus for convenience.
// This allows internal modules to import events from internal/events
// while the implementation lives in platform/events.
package events

import (
	"context"

	platformevents "flagphone_backend/platform/events"
	"flagphone_backend/platform/logger"
)

// InMemoryBus is a type alias to the platform InMemoryBus
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// SubscribeLogging registers handlers that write phone input events to log.
func SubscribeLogging(bus Bus, log *logger.Logger) {
	bus.Subscribe(CountrySelected{}.EventName(), HandlerFunc(func(ctx context.Context, e Event) error {
		if ev, ok := e.(CountrySelected); ok {
			log.WithSession(ev.SessionID).CountrySelected(ev.Code, ev.DialCode)
		}
		return nil
	}))
	bus.Subscribe(ValidationChanged{}.EventName(), HandlerFunc(func(ctx context.Context, e Event) error {
		if ev, ok := e.(ValidationChanged); ok {
			log.WithSession(ev.SessionID).ValidationChanged(ev.Region, ev.Digits, ev.IsValid)
		}
		return nil
	}))
}
