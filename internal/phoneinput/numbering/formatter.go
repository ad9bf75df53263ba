package numbering

import "flagphone_backend/platform/phone"

// PartialFormatter reformats keystrokes into a national display string as
// digits are typed.
type PartialFormatter struct {
	source    Source
	maxDigits int
}

// NewPartialFormatter returns a formatter bounded to maxDigits digits.
// A non-positive maxDigits selects phone.DefaultMaxDigits.
func NewPartialFormatter(source Source, maxDigits int) PartialFormatter {
	if maxDigits <= 0 {
		maxDigits = phone.DefaultMaxDigits
	}
	return PartialFormatter{source: source, maxDigits: maxDigits}
}

// MaxDigits returns the digit bound applied to every input.
func (f PartialFormatter) MaxDigits() int {
	return f.maxDigits
}

// Format returns the display string for raw in region.
func (f PartialFormatter) Format(raw, region string) string {
	return f.source.FormatPartial(raw, region, f.maxDigits)
}
