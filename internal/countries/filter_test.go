package countries

import "testing"

func TestFilterEmptyQueryReturnsNothing(t *testing.T) {
	d := testDirectory()

	got := Filter(d.All(), "")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}

func TestFilterMatchesNameCodeAndDialCode(t *testing.T) {
	d := testDirectory()

	cases := []struct {
		query string
		want  []string
	}{
		{"fran", []string{"FR"}},
		{"UNITED", []string{"GB", "US"}},
		{"gb", []string{"GB"}},
		{"+4", []string{"DE", "GB"}},
		{"33", []string{"FR"}},
		{"nowhere", []string{}},
	}

	for _, tc := range cases {
		got := codesOf(Filter(d.All(), tc.query))
		if !sameCodes(got, tc.want) {
			t.Fatalf("Filter(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	d := testDirectory()

	for _, q := range []string{"a", "un", "+"} {
		once := Filter(d.All(), q)
		twice := Filter(once, q)
		if !sameCodes(codesOf(once), codesOf(twice)) {
			t.Fatalf("Filter(%q) not idempotent: %v vs %v", q, codesOf(once), codesOf(twice))
		}
	}
}

func TestSearchSession(t *testing.T) {
	d := testDirectory()
	s := NewSearchSession(d.All(), "fr")

	if s.Selected() != "FR" {
		t.Fatalf("expected FR selected, got %q", s.Selected())
	}
	if len(s.Visible()) != d.Len() {
		t.Fatalf("expected full list before typing")
	}

	if got := codesOf(s.Update("united")); !sameCodes(got, []string{"GB", "US"}) {
		t.Fatalf("unexpected results %v", got)
	}
	if got := codesOf(s.Visible()); !sameCodes(got, []string{"GB", "US"}) {
		t.Fatalf("unexpected visible list %v", got)
	}

	if _, ok := s.Select("DE"); ok {
		t.Fatalf("DE is not visible and must not be selectable")
	}

	c, ok := s.Select("us")
	if !ok || c.Code != "US" {
		t.Fatalf("expected US selection, got %+v (%v)", c, ok)
	}
	if !s.Closed() || s.Query() != "" || len(s.Results()) != 0 {
		t.Fatalf("expected session to be closed and cleared")
	}
	if s.Selected() != "US" {
		t.Fatalf("expected US selected, got %q", s.Selected())
	}
	if len(s.Update("fr")) != 0 {
		t.Fatalf("closed session must not search")
	}
}

func TestSearchSessionEmptyQueryClearsResults(t *testing.T) {
	d := testDirectory()
	s := NewSearchSession(d.All(), "FR")

	s.Update("ger")
	if len(s.Results()) != 1 {
		t.Fatalf("expected one result")
	}

	s.Update("")
	if len(s.Results()) != 0 {
		t.Fatalf("expected empty results for empty query")
	}
	if len(s.Visible()) != d.Len() {
		t.Fatalf("expected full list when query is empty")
	}
}
