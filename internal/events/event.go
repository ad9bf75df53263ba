// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"flagphone_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Phone Input Domain Events
// =============================================================================

// CountrySelected is published when a session's selected country changes.
type CountrySelected struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
	DialCode  string `json:"dialCode"`
	Name      string `json:"name"`
}

func (e CountrySelected) EventName() string { return "phoneinput.country.selected" }

// ValidationChanged is published after every reformat of a session's input.
// It carries the digit count instead of the number.
type ValidationChanged struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	Region    string `json:"region"`
	Digits    int    `json:"digits"`
	IsValid   bool   `json:"isValid"`
}

func (e ValidationChanged) EventName() string { return "phoneinput.validation.changed" }
