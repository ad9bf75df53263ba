// Package domain implements the phone input controller: it owns the
// selected country and the typed number and keeps the display text, the
// validity and the canonical number in step with every edit or selection.
package domain

import (
	"strconv"

	"flagphone_backend/internal/countries"
	"flagphone_backend/internal/phoneinput/numbering"
	"flagphone_backend/platform/phone"
)

// Options configures a Controller.
type Options struct {
	// Region is the environment's current region, selected at start when the
	// directory has it.
	Region string
	// MaxDigits bounds partial formatting; 0 selects the default of 14.
	MaxDigits int
	// Placeholder enables the example-number placeholder.
	Placeholder bool
}

// State is a copy of the controller's input state.
type State struct {
	Country     *countries.Country `json:"country,omitempty"`
	RawDigits   string             `json:"rawDigits"`
	DisplayText string             `json:"displayText"`
	IsValid     bool               `json:"isValid"`
	Placeholder string             `json:"placeholder,omitempty"`
}

// Snapshot is the minimal state a host persists to rebuild a controller.
type Snapshot struct {
	Code      string               `json:"code"`
	RawDigits string               `json:"rawDigits"`
	Selection countries.Selection `json:"selection"`
}

// Controller is the phone input state machine. It is not safe for concurrent
// use; hosts deliver events one at a time.
type Controller struct {
	directory   *countries.Directory
	selection   countries.Selection
	available   *countries.Directory
	formatter   numbering.PartialFormatter
	validator   numbering.Validator
	observer    Observer
	placeholder bool

	selected    *countries.Country
	rawDigits   string
	displayText string
	isValid     bool
}

// NewController selects opts.Region when the directory has it, else the
// first country. No events are emitted during construction.
func NewController(dir *countries.Directory, source numbering.Source, opts Options) *Controller {
	c := &Controller{
		directory:   dir,
		available:   dir,
		formatter:   numbering.NewPartialFormatter(source, opts.MaxDigits),
		validator:   numbering.NewValidator(source),
		placeholder: opts.Placeholder,
	}

	if country, ok := dir.ByRegion(opts.Region); ok {
		c.selected = &country
	} else if all := dir.All(); len(all) > 0 {
		c.selected = &all[0]
	}
	c.edit("", false)

	return c
}

// SetObserver attaches the host observer; nil detaches it.
func (c *Controller) SetObserver(o Observer) {
	c.observer = o
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := State{
		RawDigits:   c.rawDigits,
		DisplayText: c.displayText,
		IsValid:     c.isValid,
	}
	if c.selected != nil {
		country := *c.selected
		s.Country = &country
		if c.placeholder {
			s.Placeholder, _ = c.validator.Example(country.Code)
		}
	}
	return s
}

// Countries returns the countries currently offered to the picker.
func (c *Controller) Countries() []countries.Country {
	return c.available.All()
}

// Selection returns the last applied country selection.
func (c *Controller) Selection() countries.Selection {
	return c.selection
}

// SetCountry selects code from the offered countries and reformats the
// current input for it. Unknown codes leave the state untouched and return
// false.
func (c *Controller) SetCountry(code string) bool {
	country, ok := c.available.ByRegion(code)
	if !ok {
		return false
	}

	c.selectCountry(country, true)
	return true
}

// Edit replaces the typed input.
func (c *Controller) Edit(text string) {
	c.edit(text, true)
}

// SetPhoneNumber sets a complete number such as "+33612345678". The country
// follows the number's calling code: the code's main region when offered,
// else the selected country when it shares the code. Input that does not
// parse, or whose calling code no offered country carries, is ignored and
// false is returned.
func (c *Controller) SetPhoneNumber(text string) bool {
	parsed, err := c.validator.Parse(phone.Clean(text), c.region(), true)
	if err != nil {
		return false
	}

	country, ok := c.countryForCallingCode(parsed.CallingCode)
	if !ok {
		return false
	}

	c.rawDigits = phone.Clean(c.validator.ToNational(parsed))
	c.selectCountry(country, true)
	return true
}

// SetCountries narrows the offered countries. A selection that matches no
// known country is ignored and false is returned. When the selected country
// is no longer offered, the first offered country is selected.
func (c *Controller) SetCountries(sel countries.Selection) bool {
	list := c.directory.Apply(sel)
	if len(list) == 0 {
		return false
	}

	c.selection = sel
	c.available = countries.NewDirectory(list)

	if c.selected == nil {
		c.selectCountry(list[0], true)
	} else if _, ok := c.available.ByRegion(c.selected.Code); !ok {
		c.selectCountry(list[0], true)
	}
	return true
}

// RawPhoneNumber returns the E.164 form of the displayed number.
func (c *Controller) RawPhoneNumber() (string, bool) {
	parsed, err := c.validator.Parse(c.displayText, c.region(), true)
	if err != nil {
		return "", false
	}
	return c.validator.ToE164(parsed), true
}

// URI returns the RFC 3966 tel: URI of the displayed number.
func (c *Controller) URI() (string, bool) {
	parsed, err := c.validator.Parse(c.displayText, c.region(), true)
	if err != nil {
		return "", false
	}
	return c.validator.ToURI(parsed), true
}

// Snapshot captures what Restore needs.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{RawDigits: c.rawDigits, Selection: c.selection}
	if c.selected != nil {
		s.Code = c.selected.Code
	}
	return s
}

// Restore rebuilds state from a snapshot without emitting events. Parts of
// the snapshot that no longer resolve are skipped.
func (c *Controller) Restore(s Snapshot) {
	if list := c.directory.Apply(s.Selection); len(list) > 0 {
		c.selection = s.Selection
		c.available = countries.NewDirectory(list)
	}
	if country, ok := c.available.ByRegion(s.Code); ok {
		c.selected = &country
	}
	c.edit(s.RawDigits, false)
}

func (c *Controller) selectCountry(country countries.Country, notify bool) {
	if notify && c.observer != nil {
		c.observer.CountrySelected(CountrySelected{
			Name:     country.Name,
			DialCode: country.DialCode,
			Code:     country.Code,
		})
	}

	c.selected = &country
	c.edit(c.rawDigits, notify)
}

func (c *Controller) edit(text string, notify bool) {
	c.rawDigits = phone.Clean(text)
	c.displayText = c.formatter.Format(c.rawDigits, c.region())
	c.isValid = c.selected != nil && c.validator.IsValid(c.displayText, c.selected.Code)

	if notify && c.observer != nil {
		c.observer.ValidationChanged(ValidationChanged{
			DisplayText: c.displayText,
			IsValid:     c.isValid,
		})
	}
}

func (c *Controller) countryForCallingCode(callingCode int) (countries.Country, bool) {
	if region, ok := c.validator.RegionForCallingCode(callingCode); ok {
		if country, ok := c.available.ByRegion(region); ok {
			return country, true
		}
	}
	if c.selected != nil && c.selected.DialCode == "+"+strconv.Itoa(callingCode) {
		return *c.selected, true
	}
	return countries.Country{}, false
}

func (c *Controller) region() string {
	if c.selected != nil {
		return c.selected.Code
	}
	return c.validator.DefaultRegion()
}
