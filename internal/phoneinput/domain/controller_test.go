package domain

import (
	"testing"

	"flagphone_backend/internal/countries"
	"flagphone_backend/platform/phone"
)

var testPlan = phone.NewPlan("US")

func testDirectory() *countries.Directory {
	return countries.NewDirectory([]countries.Country{
		{Code: "DE", Name: "Germany", DialCode: "+49", FlagAsset: "flags/DE.png"},
		{Code: "FR", Name: "France", DialCode: "+33", FlagAsset: "flags/FR.png"},
		{Code: "GB", Name: "United Kingdom", DialCode: "+44", FlagAsset: "flags/GB.png"},
		{Code: "US", Name: "United States", DialCode: "+1", FlagAsset: "flags/US.png"},
	})
}

func newTestController(region string) (*Controller, *Recorder) {
	c := NewController(testDirectory(), testPlan, Options{Region: region, Placeholder: true})
	rec := &Recorder{}
	c.SetObserver(rec)
	return c, rec
}

func TestNewControllerSelectsEnvironmentRegion(t *testing.T) {
	c, rec := newTestController("FR")

	s := c.State()
	if s.Country == nil || s.Country.Code != "FR" {
		t.Fatalf("expected FR selected, got %+v", s.Country)
	}
	if s.DisplayText != "" || s.IsValid {
		t.Fatalf("expected empty invalid input, got %+v", s)
	}
	if len(rec.Events()) != 0 {
		t.Fatalf("construction must not emit events")
	}
}

func TestNewControllerFallsBackToFirstCountry(t *testing.T) {
	c, _ := newTestController("ZZ")

	if s := c.State(); s.Country == nil || s.Country.Code != "DE" {
		t.Fatalf("expected first country DE, got %+v", s.Country)
	}
}

func TestEditFormatsAndValidates(t *testing.T) {
	c, rec := newTestController("FR")

	c.Edit("0612345678")

	s := c.State()
	if s.DisplayText != "06 12 34 56 78" || !s.IsValid {
		t.Fatalf("unexpected state %+v", s)
	}
	if s.RawDigits != "0612345678" {
		t.Fatalf("unexpected raw digits %q", s.RawDigits)
	}

	events := rec.Events()
	if len(events) != 1 || events[0].Kind != KindValidationChanged {
		t.Fatalf("expected one validation event, got %+v", events)
	}
	if !events[0].Validation.IsValid || events[0].Validation.DisplayText != "06 12 34 56 78" {
		t.Fatalf("unexpected validation payload %+v", events[0].Validation)
	}

	raw, ok := c.RawPhoneNumber()
	if !ok || raw != "+33612345678" {
		t.Fatalf("expected +33612345678, got %q (%v)", raw, ok)
	}
}

func TestEditCharacterByCharacter(t *testing.T) {
	c, rec := newTestController("FR")
	number := "0612345678"

	for i := 1; i <= len(number); i++ {
		c.Edit(c.State().DisplayText + number[i-1:i])
		valid := c.State().IsValid
		if i < len(number) && valid {
			t.Fatalf("prefix %q reported valid", number[:i])
		}
	}

	if !c.State().IsValid {
		t.Fatalf("expected complete number to be valid")
	}
	if c.State().DisplayText != "06 12 34 56 78" {
		t.Fatalf("unexpected display %q", c.State().DisplayText)
	}
	if len(rec.Events()) != len(number) {
		t.Fatalf("expected one event per keystroke, got %d", len(rec.Events()))
	}
}

func TestSetCountryReformatsExistingInput(t *testing.T) {
	c, rec := newTestController("US")
	c.Edit("2015550123")
	rec.Reset()

	if !c.SetCountry("fr") {
		t.Fatalf("expected FR to be selectable")
	}

	s := c.State()
	if s.Country.Code != "FR" {
		t.Fatalf("expected FR, got %s", s.Country.Code)
	}
	if s.DisplayText != testPlan.FormatPartial("2015550123", "FR", 0) {
		t.Fatalf("display not reformatted for FR: %q", s.DisplayText)
	}

	events := rec.Events()
	if len(events) != 2 || events[0].Kind != KindCountrySelected || events[1].Kind != KindValidationChanged {
		t.Fatalf("unexpected events %+v", events)
	}
	if *events[0].Country != (CountrySelected{Name: "France", DialCode: "+33", Code: "FR"}) {
		t.Fatalf("unexpected country payload %+v", events[0].Country)
	}
}

func TestSetCountryUnknownCodeIsNoop(t *testing.T) {
	c, rec := newTestController("FR")
	c.Edit("0612345678")
	rec.Reset()
	before := c.State()

	if c.SetCountry("ZZ") {
		t.Fatalf("expected unknown code to be rejected")
	}

	after := c.State()
	if after.Country.Code != before.Country.Code || after.DisplayText != before.DisplayText || after.IsValid != before.IsValid {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
	if len(rec.Events()) != 0 {
		t.Fatalf("unexpected events %+v", rec.Events())
	}
}

func TestSetPhoneNumberSelectsCountryAndFormats(t *testing.T) {
	c, rec := newTestController("US")

	if !c.SetPhoneNumber("+33612345678") {
		t.Fatalf("expected number to be accepted")
	}

	s := c.State()
	if s.Country.Code != "FR" || s.DisplayText != "06 12 34 56 78" || !s.IsValid {
		t.Fatalf("unexpected state %+v", s)
	}

	events := rec.Events()
	if len(events) == 0 || events[0].Kind != KindCountrySelected || events[0].Country.Code != "FR" {
		t.Fatalf("expected country selection first, got %+v", events)
	}

	raw, ok := c.RawPhoneNumber()
	if !ok || raw != "+33612345678" {
		t.Fatalf("expected +33612345678, got %q", raw)
	}
}

func TestSetPhoneNumberInvalidIsNoop(t *testing.T) {
	c, rec := newTestController("FR")
	c.Edit("0612")
	rec.Reset()

	if c.SetPhoneNumber("not a number") {
		t.Fatalf("expected invalid input to be rejected")
	}
	if c.State().DisplayText != "06 12" {
		t.Fatalf("display changed to %q", c.State().DisplayText)
	}
	if len(rec.Events()) != 0 {
		t.Fatalf("unexpected events %+v", rec.Events())
	}
}

func TestSetPhoneNumberOutsideOfferedCountriesIsNoop(t *testing.T) {
	c, rec := newTestController("FR")
	c.SetCountries(countries.Including("FR", "DE"))
	c.Edit("0612345678")
	rec.Reset()
	before := c.State()

	if c.SetPhoneNumber("+12015550123") {
		t.Fatalf("expected a number for an unoffered country to be rejected")
	}

	after := c.State()
	if after.Country.Code != "FR" || after.DisplayText != before.DisplayText || !after.IsValid {
		t.Fatalf("state changed from %+v to %+v", before, after)
	}
	if raw, ok := c.RawPhoneNumber(); !ok || raw != "+33612345678" {
		t.Fatalf("expected +33612345678 to survive, got %q (%v)", raw, ok)
	}
	if len(rec.Events()) != 0 {
		t.Fatalf("unexpected events %+v", rec.Events())
	}
}

func TestSetPhoneNumberUnknownCallingCodeIsNoop(t *testing.T) {
	c, _ := newTestController("US")
	c.Edit("2015550123")
	before := c.State()

	if c.SetPhoneNumber("+7 912 345 67 89") {
		t.Fatalf("expected +7 number to be rejected")
	}
	if after := c.State(); after.DisplayText != before.DisplayText || after.Country.Code != "US" {
		t.Fatalf("state changed from %+v to %+v", before, after)
	}
}

func TestSetPhoneNumberKeepsSelectedCountrySharingCallingCode(t *testing.T) {
	dir := countries.NewDirectory([]countries.Country{
		{Code: "CA", Name: "Canada", DialCode: "+1"},
		{Code: "US", Name: "United States", DialCode: "+1"},
	})
	c := NewController(dir, testPlan, Options{Region: "CA"})
	c.SetCountries(countries.Including("CA"))

	if !c.SetPhoneNumber("+12015550123") {
		t.Fatalf("expected +1 number to be accepted")
	}
	if s := c.State(); s.Country.Code != "CA" || s.RawDigits != "2015550123" {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestSetCountriesExcludingSelectedCountry(t *testing.T) {
	c, rec := newTestController("FR")

	if !c.SetCountries(countries.Excluding("FR")) {
		t.Fatalf("expected selection to apply")
	}

	for _, country := range c.Countries() {
		if country.Code == "FR" {
			t.Fatalf("FR still offered")
		}
	}
	if c.State().Country.Code != "DE" {
		t.Fatalf("expected selection to move to DE, got %s", c.State().Country.Code)
	}
	if events := rec.Events(); len(events) == 0 || events[0].Kind != KindCountrySelected {
		t.Fatalf("expected a country event, got %+v", events)
	}
	if c.SetCountry("FR") {
		t.Fatalf("excluded country must not be selectable")
	}
}

func TestSetCountriesUnknownCodesIsNoop(t *testing.T) {
	c, _ := newTestController("FR")

	if c.SetCountries(countries.Including("ZZ")) {
		t.Fatalf("expected unknown-only selection to be ignored")
	}
	if len(c.Countries()) != 4 {
		t.Fatalf("offered countries changed")
	}
}

func TestPlaceholder(t *testing.T) {
	c, _ := newTestController("FR")
	if c.State().Placeholder == "" {
		t.Fatalf("expected FR placeholder")
	}

	plain := NewController(testDirectory(), testPlan, Options{Region: "FR"})
	if plain.State().Placeholder != "" {
		t.Fatalf("expected no placeholder when disabled")
	}
}

func TestSnapshotRestore(t *testing.T) {
	c, _ := newTestController("US")
	c.SetCountries(countries.Including("FR", "GB"))
	c.SetCountry("GB")
	c.Edit("07400123456")

	snap := c.Snapshot()

	restored, rec := newTestController("US")
	restored.Restore(snap)

	if len(rec.Events()) != 0 {
		t.Fatalf("restore must not emit events")
	}
	got, want := restored.State(), c.State()
	if got.Country.Code != want.Country.Code || got.DisplayText != want.DisplayText || got.IsValid != want.IsValid {
		t.Fatalf("restored %+v, want %+v", got, want)
	}
	if len(restored.Countries()) != 2 {
		t.Fatalf("expected restored selection of 2 countries, got %d", len(restored.Countries()))
	}
}

func TestURI(t *testing.T) {
	c, _ := newTestController("FR")
	c.Edit("0612345678")

	uri, ok := c.URI()
	if !ok || uri != "tel:+33-6-12-34-56-78" {
		t.Fatalf("unexpected uri %q (%v)", uri, ok)
	}
}
