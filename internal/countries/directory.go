// Package countries holds the country directory behind the phone input: the
// canonical country table, include/exclude derivation, lookup, free-text
// filtering and the search session used by pickers.
package countries

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// ErrUnknownCountryCode is returned by Lookup for codes missing from the directory.
var ErrUnknownCountryCode = errors.New("unknown country code")

//go:embed countries.yaml
var countriesYAML []byte

// Country is an immutable directory entry.
type Country struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	DialCode  string `json:"dialCode"`
	FlagAsset string `json:"flagAsset"`
}

// CallingCodes resolves the international calling code of a region.
// Regions resolving to 0 are left out of the directory.
type CallingCodes interface {
	CallingCode(region string) int
}

// Directory is an ordered, code-unique list of countries. It is read-only
// once built.
type Directory struct {
	countries []Country
	index     map[string]int
}

type tableEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type table struct {
	Countries []tableEntry `yaml:"countries"`
}

// Load builds the directory from the embedded country table. Names are
// localized for locale, falling back to the table's English names.
func Load(codes CallingCodes, locale language.Tag) (*Directory, error) {
	var t table
	if err := yaml.Unmarshal(countriesYAML, &t); err != nil {
		return nil, fmt.Errorf("decode country table: %w", err)
	}

	namer := display.Regions(locale)
	if namer == nil {
		namer = display.English.Regions()
	}

	list := make([]Country, 0, len(t.Countries))
	for _, entry := range t.Countries {
		code := NormalizeCode(entry.Code)
		callingCode := codes.CallingCode(code)
		if callingCode == 0 {
			continue
		}

		list = append(list, Country{
			Code:      code,
			Name:      regionName(namer, code, entry.Name),
			DialCode:  "+" + strconv.Itoa(callingCode),
			FlagAsset: "flags/" + code + ".png",
		})
	}

	if len(list) == 0 {
		return nil, errors.New("country table is empty")
	}

	return NewDirectory(list), nil
}

func regionName(namer display.Namer, code, fallback string) string {
	if region, err := language.ParseRegion(code); err == nil {
		if name := namer.Name(region); name != "" {
			return name
		}
	}
	if fallback != "" {
		return fallback
	}
	return code
}

// NewDirectory keeps the first entry for every code, preserving order.
func NewDirectory(list []Country) *Directory {
	d := &Directory{
		countries: make([]Country, 0, len(list)),
		index:     make(map[string]int, len(list)),
	}

	for _, c := range list {
		if _, dup := d.index[c.Code]; dup {
			continue
		}
		d.index[c.Code] = len(d.countries)
		d.countries = append(d.countries, c)
	}

	return d
}

// NormalizeCode upper-cases and trims a region code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Len returns the number of countries.
func (d *Directory) Len() int {
	return len(d.countries)
}

// All returns the full directory in canonical order.
func (d *Directory) All() []Country {
	out := make([]Country, len(d.countries))
	copy(out, d.countries)
	return out
}

// Codes returns every code in canonical order.
func (d *Directory) Codes() []string {
	out := make([]string, len(d.countries))
	for i, c := range d.countries {
		out[i] = c.Code
	}
	return out
}

// Excluding returns All minus the given codes. Unknown codes are ignored.
func (d *Directory) Excluding(codes []string) []Country {
	set := codeSet(codes)
	out := make([]Country, 0, len(d.countries))
	for _, c := range d.countries {
		if !set[c.Code] {
			out = append(out, c)
		}
	}
	return out
}

// Including returns the given codes in canonical order, not caller order.
// Unknown codes are ignored.
func (d *Directory) Including(codes []string) []Country {
	set := codeSet(codes)
	out := make([]Country, 0, len(set))
	for _, c := range d.countries {
		if set[c.Code] {
			out = append(out, c)
		}
	}
	return out
}

// ByRegion looks a country up by its region code.
func (d *Directory) ByRegion(region string) (Country, bool) {
	i, ok := d.index[NormalizeCode(region)]
	if !ok {
		return Country{}, false
	}
	return d.countries[i], true
}

// Lookup is ByRegion with an error for hosts that report misses.
func (d *Directory) Lookup(region string) (Country, error) {
	c, ok := d.ByRegion(region)
	if !ok {
		return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountryCode, region)
	}
	return c, nil
}

// Apply derives the list selected by sel.
func (d *Directory) Apply(sel Selection) []Country {
	switch sel.Mode {
	case ModeIncluding:
		return d.Including(sel.Codes)
	case ModeExcluding:
		return d.Excluding(sel.Codes)
	default:
		return d.All()
	}
}

func codeSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[NormalizeCode(code)] = true
	}
	return set
}
