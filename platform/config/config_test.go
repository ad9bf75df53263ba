package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEFAULT_REGION", "fr")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetDefaultRegion() != "FR" {
		t.Fatalf("expected FR, got %q", cfg.GetDefaultRegion())
	}
	if cfg.GetPhoneMaxDigits() != 14 {
		t.Fatalf("expected 14 max digits, got %d", cfg.GetPhoneMaxDigits())
	}
	if cfg.GetSessionTTL() != 30*time.Minute {
		t.Fatalf("unexpected session ttl %s", cfg.GetSessionTTL())
	}
	if cfg.GetDisplayLocale().String() != "en" {
		t.Fatalf("unexpected locale %s", cfg.GetDisplayLocale())
	}
}

func TestLoadRegionFromLocale(t *testing.T) {
	t.Setenv("DEFAULT_REGION", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetDefaultRegion() != "DE" {
		t.Fatalf("expected DE from LANG, got %q", cfg.GetDefaultRegion())
	}
}

func TestLoadRejectsIncludeAndExclude(t *testing.T) {
	t.Setenv("COUNTRIES_INCLUDE", "FR,DE")
	t.Setenv("COUNTRIES_EXCLUDE", "GB")

	if _, err := Load(); err == nil {
		t.Fatalf("expected include/exclude conflict")
	}
}

func TestLoadRejectsNonPositiveMaxDigits(t *testing.T) {
	t.Setenv("PHONE_MAX_DIGITS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero max digits")
	}
}

func TestLoadNormalizesCountryLists(t *testing.T) {
	t.Setenv("COUNTRIES_INCLUDE", " fr , de ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := cfg.GetCountriesInclude()
	if len(got) != 2 || got[0] != "FR" || got[1] != "DE" {
		t.Fatalf("unexpected include list %v", got)
	}
}

func TestRegionFromLocale(t *testing.T) {
	cases := []struct {
		locale string
		want   string
		ok     bool
	}{
		{"fr_FR.UTF-8", "FR", true},
		{"en_GB", "GB", true},
		{"pt-BR", "BR", true},
		{"de_DE@euro", "DE", true},
		{"C", "", false},
		{"POSIX", "", false},
		{"", "", false},
		{"%%%", "", false},
	}

	for _, tc := range cases {
		got, ok := RegionFromLocale(tc.locale)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("RegionFromLocale(%q) = %q, %v; want %q, %v", tc.locale, got, ok, tc.want, tc.ok)
		}
	}
}
