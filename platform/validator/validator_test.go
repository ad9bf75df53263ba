package validator

import "testing"

func TestRegionTag(t *testing.T) {
	v := New()

	for _, ok := range []string{"FR", "fr", "Gb"} {
		if err := v.Var(ok, "region"); err != nil {
			t.Fatalf("expected %q to pass: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "F", "FRA", "F1", "é"} {
		if err := v.Var(bad, "region"); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestPhoneTextTag(t *testing.T) {
	v := New()

	for _, ok := range []string{"", "0612345678", "+33 6 12", "  +1 (201) 555"} {
		if err := v.Var(ok, "phonetext"); err != nil {
			t.Fatalf("expected %q to pass: %v", ok, err)
		}
	}
	for _, bad := range []string{"06+12", "++33", "+33+"} {
		if err := v.Var(bad, "phonetext"); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}

func TestStructUsesCustomTags(t *testing.T) {
	type request struct {
		Region string `validate:"required,region"`
		Text   string `validate:"max=64,phonetext"`
	}

	v := New()
	if err := v.Struct(request{Region: "FR", Text: "+33612345678"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Struct(request{Region: "FRA", Text: "1"}); err == nil {
		t.Fatalf("expected invalid region to fail")
	}
}
