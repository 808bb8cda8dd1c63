// Package extract converts raw generation replies into schema-valid decks.
// Recovery is strictly two-tier: deterministic local normalization first, then
// a single remote repair round-trip. There are no repair loops.
package extract

import (
	"regexp"
	"strings"
)

var (
	fenceLine       = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
	trailingComma   = regexp.MustCompile(`,\s*([}\]])`)
	singleQuotedKey = regexp.MustCompile(`'([A-Za-z0-9_-]+)'(\s*:)`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`, // left double
		"”", `"`, // right double
		"„", `"`, // low double
		"‘", "'", // left single
		"’", "'", // right single
	)
)

// Normalize applies every deterministic repair to a raw reply and returns the
// candidate JSON text. It never calls the network; callers attempt a strict
// parse on the result.
func Normalize(raw string) string {
	s := fenceLine.ReplaceAllString(raw, "")
	s = sliceBracketSpan(s)
	s = quoteReplacer.Replace(s)
	s = trailingComma.ReplaceAllString(s, "$1")
	// Conservative: only rewrites 'key': where the key is a bare identifier,
	// so single quotes inside string values survive.
	s = singleQuotedKey.ReplaceAllString(s, `"$1"$2`)
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

// sliceBracketSpan cuts the text down to the outermost balanced-looking
// bracket pair: from the first `{` or `[` to the last `}` or `]`. Prose before
// and after the object is the most common contamination in generated replies.
func sliceBracketSpan(s string) string {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			break
		}
	}
	if start < 0 {
		return s
	}

	end := -1
	for i := len(s) - 1; i > start; i-- {
		if s[i] == '}' || s[i] == ']' {
			end = i
			break
		}
	}
	if end < 0 {
		return s
	}

	return s[start : end+1]
}
