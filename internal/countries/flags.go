package countries

import (
	"context"
	"strings"
)

// FlagResolver turns a country's opaque flag asset into something a client
// can render (an emoji, a URL).
type FlagResolver interface {
	ResolveFlag(ctx context.Context, c Country) (string, error)
}

// EmojiFlags resolves flags to regional-indicator emoji.
type EmojiFlags struct{}

func (EmojiFlags) ResolveFlag(_ context.Context, c Country) (string, error) {
	return Emoji(c.Code), nil
}

// Emoji returns the flag emoji of a two-letter code, or "" for anything else.
func Emoji(code string) string {
	code = NormalizeCode(code)
	if len(code) != 2 {
		return ""
	}

	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}
