package phone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultMaxDigits bounds partial formatting when the caller passes no limit.
const DefaultMaxDigits = 14

const (
	fallbackRegion = "US"
	unknownRegion  = "ZZ"
)

var (
	// ErrInvalidNumber is returned when text cannot be parsed as a plausible
	// number for the requested region.
	ErrInvalidNumber = errors.New("invalid phone number")
	// ErrUnknownRegion is returned when a region has no numbering plan.
	ErrUnknownRegion = errors.New("unknown region")
)

// Style selects the rendering of a parsed number.
type Style int

const (
	StyleE164 Style = iota
	StyleNational
	StyleInternational
	StyleRFC3966
)

// Number is a parsed phone number.
type Number struct {
	CallingCode    int
	NationalNumber string
	Region         string

	number *phonenumbers.PhoneNumber
}

// exampleTypes is the order in which example numbers seed partial formatting.
var exampleTypes = []phonenumbers.PhoneNumberType{
	phonenumbers.MOBILE,
	phonenumbers.FIXED_LINE,
	phonenumbers.TOLL_FREE,
}

// fillers holds the digit strings of a region's example numbers, both with
// the national prefix (as dialled nationally) and without it.
type fillers struct {
	national    []string
	significant []string
}

// Plan is the numbering-plan data source. It is built once and never mutated,
// so a single Plan can be shared freely.
type Plan struct {
	defaultRegion string
	fillers       map[string]fillers
}

// NewPlan builds the plan tables. An unsupported defaultRegion falls back to US.
func NewPlan(defaultRegion string) *Plan {
	supported := phonenumbers.GetSupportedRegions()

	p := &Plan{
		fillers: make(map[string]fillers, len(supported)),
	}

	for region := range supported {
		p.fillers[region] = buildFillers(region)
	}

	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if _, ok := p.fillers[region]; !ok {
		region = fallbackRegion
	}
	p.defaultRegion = region

	return p
}

func buildFillers(region string) fillers {
	var f fillers
	for _, typ := range exampleTypes {
		example := phonenumbers.GetExampleNumberForType(region, typ)
		if example == nil {
			continue
		}
		f.national = appendUnique(f.national, digitsOnly(phonenumbers.Format(example, phonenumbers.NATIONAL)))
		f.significant = appendUnique(f.significant, phonenumbers.GetNationalSignificantNumber(example))
	}
	return f
}

func appendUnique(values []string, value string) []string {
	if value == "" {
		return values
	}
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

// DefaultRegion returns the region used when no country is selected.
func (p *Plan) DefaultRegion() string {
	return p.defaultRegion
}

// Supports reports whether region has a numbering plan.
func (p *Plan) Supports(region string) bool {
	_, ok := p.fillers[region]
	return ok
}

// CallingCode returns the international calling code of region, or 0.
func (p *Plan) CallingCode(region string) int {
	if !p.Supports(region) {
		return 0
	}
	return phonenumbers.GetCountryCodeForRegion(region)
}

// MainRegion resolves the representative region of a calling code. For shared
// codes the choice is the one made by the metadata (e.g. 1 resolves to US).
func (p *Plan) MainRegion(callingCode int) (string, bool) {
	region := phonenumbers.GetRegionCodeForCountryCode(callingCode)
	if region == "" || region == unknownRegion {
		return "", false
	}
	return region, true
}

// Parse parses text against region. With ignoreType the number only has to
// be possible (length-plausible); otherwise it must be a valid number.
func (p *Plan) Parse(text, region string, ignoreType bool) (Number, error) {
	if !p.Supports(region) && !strings.HasPrefix(strings.TrimSpace(text), "+") {
		return Number{}, fmt.Errorf("%w: %w %q", ErrInvalidNumber, ErrUnknownRegion, region)
	}

	parsed, err := phonenumbers.Parse(text, region)
	if err != nil {
		return Number{}, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}

	if ignoreType {
		if !phonenumbers.IsPossibleNumber(parsed) {
			return Number{}, fmt.Errorf("%w: not a possible number", ErrInvalidNumber)
		}
	} else if !phonenumbers.IsValidNumber(parsed) {
		return Number{}, fmt.Errorf("%w: not a valid number", ErrInvalidNumber)
	}

	return Number{
		CallingCode:    int(parsed.GetCountryCode()),
		NationalNumber: phonenumbers.GetNationalSignificantNumber(parsed),
		Region:         phonenumbers.GetRegionCodeForNumber(parsed),
		number:         parsed,
	}, nil
}

// Format renders n in the requested style.
func (p *Plan) Format(n Number, style Style) string {
	if n.number == nil {
		return ""
	}

	switch style {
	case StyleNational:
		return phonenumbers.Format(n.number, phonenumbers.NATIONAL)
	case StyleInternational:
		return phonenumbers.Format(n.number, phonenumbers.INTERNATIONAL)
	case StyleRFC3966:
		return phonenumbers.Format(n.number, phonenumbers.RFC3966)
	default:
		return phonenumbers.Format(n.number, phonenumbers.E164)
	}
}

// ExampleNumber returns a national-format example for region, preferring a
// mobile number.
func (p *Plan) ExampleNumber(region string) (string, bool) {
	if !p.Supports(region) {
		return "", false
	}

	example := phonenumbers.GetExampleNumberForType(region, phonenumbers.MOBILE)
	if example == nil {
		example = phonenumbers.GetExampleNumber(region)
	}
	if example == nil {
		return "", false
	}

	return phonenumbers.Format(example, phonenumbers.NATIONAL), true
}

// FormatPartial formats an in-progress number for display while typing.
//
// The input is cleaned and truncated to maxDigits digits. The digits of the
// result are always the typed digits in typing order; only separators are
// inserted, so a longer input never reorders what was already displayed.
// Unknown regions and inputs no template fits are returned cleaned.
func (p *Plan) FormatPartial(text, region string, maxDigits int) string {
	if maxDigits <= 0 {
		maxDigits = DefaultMaxDigits
	}

	cleaned := Clean(text)
	prefix := ""
	digits := cleaned
	if strings.HasPrefix(cleaned, "+") {
		prefix = "+"
		digits = cleaned[1:]
	}
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}

	if digits == "" || !p.Supports(region) {
		return prefix + digits
	}

	var (
		formatted string
		ok        bool
	)
	if prefix != "" {
		formatted, ok = p.partialInternational(digits)
	} else {
		formatted, ok = p.partialNational(digits, region)
	}
	if !ok {
		return prefix + digits
	}
	return formatted
}

func (p *Plan) partialNational(digits, region string) (string, bool) {
	f := p.fillers[region]

	for _, candidate := range completions(digits, f.national, f.significant) {
		parsed, err := phonenumbers.Parse(candidate, region)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			continue
		}
		if out, ok := overlay(phonenumbers.Format(parsed, phonenumbers.NATIONAL), candidate, len(digits)); ok {
			return out, true
		}
	}

	return "", false
}

func (p *Plan) partialInternational(digits string) (string, bool) {
	// Calling codes are prefix-free, so the first match is the only one.
	for size := 1; size <= 3 && size <= len(digits); size++ {
		code, err := strconv.Atoi(digits[:size])
		if err != nil {
			return "", false
		}
		region, ok := p.MainRegion(code)
		if !ok {
			continue
		}

		national := digits[size:]
		if national == "" {
			return "+" + digits, true
		}

		f := p.fillers[region]
		for _, candidate := range completions(national, nil, f.significant) {
			full := digits[:size] + candidate
			parsed, err := phonenumbers.Parse("+"+full, "")
			if err != nil || !phonenumbers.IsValidNumber(parsed) {
				continue
			}
			if out, ok := overlay(phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL), full, len(digits)); ok {
				return out, true
			}
		}
		return "", false
	}

	return "", false
}

// completions returns digits itself followed by digits padded to full length
// with the tails of the region's example numbers.
func completions(digits string, groups ...[]string) []string {
	out := []string{digits}
	seen := map[string]bool{digits: true}

	for _, group := range groups {
		for _, filler := range group {
			if len(filler) <= len(digits) {
				continue
			}
			candidate := digits + filler[len(digits):]
			if seen[candidate] {
				continue
			}
			seen[candidate] = true
			out = append(out, candidate)
		}
	}

	return out
}

// overlay copies formatted up to its n-th typed digit. The digits of
// formatted must end with candidate; any leading extra digits (a national
// prefix the user did not type) are dropped together with the separators
// that follow them, and a closing paren whose opening one was dropped goes
// with them.
func overlay(formatted, candidate string, n int) (string, bool) {
	all := digitsOnly(formatted)
	skip := len(all) - len(candidate)
	if skip < 0 || all[skip:] != candidate {
		return "", false
	}

	var b strings.Builder
	seen, placed, open := 0, 0, 0
	for _, r := range formatted {
		if placed == n {
			break
		}

		isDigit := r >= '0' && r <= '9'
		if seen < skip {
			if isDigit {
				seen++
			}
			continue
		}
		if skip > 0 && placed == 0 && !isDigit {
			continue
		}
		switch r {
		case '(':
			open++
		case ')':
			if open == 0 {
				continue
			}
			open--
		}

		b.WriteRune(r)
		if isDigit {
			placed++
		}
	}

	return b.String(), placed == n
}
