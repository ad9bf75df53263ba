package countries

// SearchSession is the state of one open country picker. It is created when
// the picker opens and discarded once a country is chosen or it is closed.
type SearchSession struct {
	list     []Country
	selected string
	query    string
	results  []Country
	closed   bool
}

// NewSearchSession opens a session over list with selected marked as current.
func NewSearchSession(list []Country, selected string) *SearchSession {
	return &SearchSession{
		list:     list,
		selected: NormalizeCode(selected),
		results:  []Country{},
	}
}

// Update recomputes the results for query and returns them.
func (s *SearchSession) Update(query string) []Country {
	if s.closed {
		return []Country{}
	}
	s.query = query
	s.results = Filter(s.list, query)
	return s.results
}

func (s *SearchSession) Query() string {
	return s.query
}

// Results returns the matches of the last query; empty for an empty query.
func (s *SearchSession) Results() []Country {
	return s.results
}

// Visible is what a picker lists: the results while a query is typed, the
// full list otherwise.
func (s *SearchSession) Visible() []Country {
	if s.query != "" {
		return s.results
	}
	return s.list
}

// Selected returns the code marked as current.
func (s *SearchSession) Selected() string {
	return s.selected
}

// IsSelected reports whether c is the current country, for check marks.
func (s *SearchSession) IsSelected(c Country) bool {
	return c.Code == s.selected
}

// Select picks code among the visible countries and closes the session.
func (s *SearchSession) Select(code string) (Country, bool) {
	if s.closed {
		return Country{}, false
	}

	code = NormalizeCode(code)
	for _, c := range s.Visible() {
		if c.Code == code {
			s.selected = code
			s.Close()
			return c, true
		}
	}
	return Country{}, false
}

// Close discards the query and results.
func (s *SearchSession) Close() {
	s.query = ""
	s.results = []Country{}
	s.closed = true
}

func (s *SearchSession) Closed() bool {
	return s.closed
}
