// Package matcher extracts match records from single lines of text.
package matcher

import (
	"regexp"
	"unicode/utf8"

	"github.com/starford/raido/internal/models"
)

// MatchLine runs a compiled pattern against one line and returns a record per
// match in left-to-right order. It is a pure function: no I/O, no shared state.
//
// regexp reports byte offsets; records carry rune offsets with an inclusive
// End, converted here and nowhere else. Zero-length matches are dropped —
// they cannot satisfy Start <= End under the inclusive-end convention.
func MatchLine(line string, lineNumber int, path string, re *regexp.Regexp) []models.Match {
	locs := re.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}

	out := make([]models.Match, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		start := utf8.RuneCountInString(line[:loc[0]])
		length := utf8.RuneCountInString(line[loc[0]:loc[1]])
		out = append(out, models.Match{
			Path:     path,
			Line:     lineNumber,
			LineText: line,
			Start:    start,
			End:      start + length - 1,
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
