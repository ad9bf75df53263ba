package domain

// EventKind tags an Event.
type EventKind string

const (
	KindCountrySelected   EventKind = "country_selected"
	KindValidationChanged EventKind = "validation_changed"
)

// CountrySelected is emitted when a country is picked, by the user or as a
// side effect of setting a number. It is not emitted on plain edits.
type CountrySelected struct {
	Name     string `json:"name"`
	DialCode string `json:"dialCode"`
	Code     string `json:"code"`
}

// ValidationChanged is emitted after every reformat with the new display
// text and its validity.
type ValidationChanged struct {
	DisplayText string `json:"displayText"`
	IsValid     bool   `json:"isValid"`
}

// Observer receives controller notifications, one method per event kind.
type Observer interface {
	CountrySelected(e CountrySelected)
	ValidationChanged(e ValidationChanged)
}

// Event is the tagged form of a notification. Exactly one payload is set,
// matching Kind.
type Event struct {
	Kind       EventKind          `json:"kind"`
	Country    *CountrySelected   `json:"country,omitempty"`
	Validation *ValidationChanged `json:"validation,omitempty"`
}

// Recorder is an Observer that keeps events in emission order.
type Recorder struct {
	events []Event
}

func (r *Recorder) CountrySelected(e CountrySelected) {
	r.events = append(r.events, Event{Kind: KindCountrySelected, Country: &e})
}

func (r *Recorder) ValidationChanged(e ValidationChanged) {
	r.events = append(r.events, Event{Kind: KindValidationChanged, Validation: &e})
}

// Events returns the recorded events.
func (r *Recorder) Events() []Event {
	return r.events
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.events = nil
}
