package numbering

import "flagphone_backend/platform/phone"

// Validator checks numbers against the numbering plan and converts between
// display and canonical forms.
type Validator struct {
	source Source
}

func NewValidator(source Source) Validator {
	return Validator{source: source}
}

// Parse accepts text as a number of region. With ignoreType a number that is
// merely possible for the plan is accepted; otherwise it must be valid.
// Failures wrap ErrInvalidNumber.
func (v Validator) Parse(text, region string, ignoreType bool) (ParsedNumber, error) {
	return v.source.Parse(text, region, ignoreType)
}

// IsValid reports whether text parses strictly for region.
func (v Validator) IsValid(text, region string) bool {
	_, err := v.source.Parse(text, region, false)
	return err == nil
}

// ToE164 renders n as +<calling code><national significant number>.
func (v Validator) ToE164(n ParsedNumber) string {
	return v.source.Format(n, phone.StyleE164)
}

func (v Validator) ToNational(n ParsedNumber) string {
	return v.source.Format(n, phone.StyleNational)
}

func (v Validator) ToInternational(n ParsedNumber) string {
	return v.source.Format(n, phone.StyleInternational)
}

// ToURI renders n as an RFC 3966 tel: URI.
func (v Validator) ToURI(n ParsedNumber) string {
	return v.source.Format(n, phone.StyleRFC3966)
}

// RegionForCallingCode resolves the representative region of a calling code.
func (v Validator) RegionForCallingCode(callingCode int) (string, bool) {
	return v.source.MainRegion(callingCode)
}

// DefaultRegion is the region used when no country is selected.
func (v Validator) DefaultRegion() string {
	return v.source.DefaultRegion()
}

// Example returns a national-format example number for region.
func (v Validator) Example(region string) (string, bool) {
	return v.source.ExampleNumber(region)
}
