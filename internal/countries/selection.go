package countries

import "fmt"

// Mode selects how a Selection derives a list from the directory.
type Mode string

const (
	ModeAll       Mode = "all"
	ModeIncluding Mode = "including"
	ModeExcluding Mode = "excluding"
)

// Selection describes a setCountries call. The zero value selects everything.
type Selection struct {
	Mode  Mode     `json:"mode"`
	Codes []string `json:"codes,omitempty"`
}

// Including selects only codes.
func Including(codes ...string) Selection {
	return Selection{Mode: ModeIncluding, Codes: codes}
}

// Excluding selects everything but codes.
func Excluding(codes ...string) Selection {
	return Selection{Mode: ModeExcluding, Codes: codes}
}

// ParseMode accepts the wire names of Mode; empty means ModeAll.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeIncluding, ModeExcluding:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("unknown country selection mode %q", value)
	}
}

// FromLists builds a Selection from configured include and exclude lists.
// Include wins when both are set.
func FromLists(include, exclude []string) Selection {
	switch {
	case len(include) > 0:
		return Including(include...)
	case len(exclude) > 0:
		return Excluding(exclude...)
	default:
		return Selection{Mode: ModeAll}
	}
}
