// Package lines splits note text into 1-based numbered lines.
package lines

import "regexp"

var terminatorRe = regexp.MustCompile("\r\n|\r|\n")

// Split breaks text on CRLF, LF, or lone CR boundaries. Terminators are not
// part of the returned lines. The first line is line number 1; an empty input
// yields a single empty line.
func Split(text string) []string {
	return terminatorRe.Split(text, -1)
}
