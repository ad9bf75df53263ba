// Package numbering formats and validates phone numbers against a region's
// numbering plan. Everything here is stateless and parameterised by region;
// the only state is the read-only numbering-plan source.
package numbering

import "flagphone_backend/platform/phone"

// Sentinel errors surfaced by Parse. Callers compare with errors.Is.
var (
	ErrInvalidNumber = phone.ErrInvalidNumber
	ErrUnknownRegion = phone.ErrUnknownRegion
)

// ParsedNumber is a number accepted by the numbering plan.
type ParsedNumber = phone.Number

// Source is the numbering-plan data source consumed by this package.
// *phone.Plan implements it.
type Source interface {
	Parse(text, region string, ignoreType bool) (phone.Number, error)
	FormatPartial(text, region string, maxDigits int) string
	Format(n phone.Number, style phone.Style) string
	MainRegion(callingCode int) (string, bool)
	DefaultRegion() string
	ExampleNumber(region string) (string, bool)
}

var _ Source = (*phone.Plan)(nil)
