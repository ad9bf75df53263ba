package countries

import "strings"

// Filter returns the countries whose name, code or dial code contains query,
// case-insensitively, in input order.
//
// An empty query yields an empty result, not the input list. Pickers show the
// unfiltered list themselves when nothing has been typed (see
// SearchSession.Visible).
func Filter(list []Country, query string) []Country {
	out := make([]Country, 0)
	if query == "" {
		return out
	}

	q := strings.ToLower(query)
	for _, c := range list {
		if matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c Country, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(c.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(c.Code), lowerQuery) ||
		strings.Contains(strings.ToLower(c.DialCode), lowerQuery)
}
