package transport

import (
	"flagphone_backend/internal/phoneinput/domain"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// SelectionRequest narrows the countries a session offers.
type SelectionRequest struct {
	Mode  string   `json:"mode" validate:"required,oneof=all including excluding"`
	Codes []string `json:"codes" validate:"max=300,dive,region"`
}

// CreateSessionRequest opens a phone input session. Every field is optional.
type CreateSessionRequest struct {
	Region    string            `json:"region" validate:"omitempty,region"`
	Countries *SelectionRequest `json:"countries,omitempty"`
	Number    string            `json:"number" validate:"max=64,phonetext"`
}

// EditRequest replaces the typed text.
type EditRequest struct {
	Text string `json:"text" validate:"max=64"`
}

// SetCountryRequest selects a country by region code.
type SetCountryRequest struct {
	Code string `json:"code" validate:"required,region"`
}

// SetNumberRequest sets a complete number, e.g. "+33612345678".
type SetNumberRequest struct {
	Number string `json:"number" validate:"required,max=64,phonetext"`
}

// FormatRequest is a stateless partial format request.
type FormatRequest struct {
	Text      string `json:"text" validate:"max=64"`
	Region    string `json:"region" validate:"required,region"`
	MaxDigits int    `json:"maxDigits" validate:"min=0,max=17"`
}

// ValidateRequest is a stateless validation request.
type ValidateRequest struct {
	Text       string `json:"text" validate:"required,max=64"`
	Region     string `json:"region" validate:"required,region"`
	IgnoreType bool   `json:"ignoreType"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// SessionResponse is the session state after an operation. Applied is false
// when the operation was ignored (unknown code, unparseable number).
type SessionResponse struct {
	ID        string         `json:"id"`
	State     domain.State   `json:"state"`
	Selection SelectionView  `json:"selection"`
	Events    []domain.Event `json:"events"`
	Applied   bool           `json:"applied"`
}

// SelectionView describes the countries a session offers.
type SelectionView struct {
	Mode  string   `json:"mode"`
	Codes []string `json:"codes,omitempty"`
	Count int      `json:"count"`
}

// NumberResponse carries the canonical forms of the session's number.
type NumberResponse struct {
	E164 string `json:"e164"`
	URI  string `json:"uri"`
}

// FormatResponse is the result of a stateless partial format.
type FormatResponse struct {
	DisplayText string `json:"displayText"`
}

// ValidateResponse is the result of a stateless validation. The formatted
// fields are only set when Valid is true.
type ValidateResponse struct {
	Valid         bool   `json:"valid"`
	Region        string `json:"region,omitempty"`
	CallingCode   int    `json:"callingCode,omitempty"`
	E164          string `json:"e164,omitempty"`
	National      string `json:"national,omitempty"`
	International string `json:"international,omitempty"`
	URI           string `json:"uri,omitempty"`
}
