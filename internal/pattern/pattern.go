// Package pattern compiles user queries into executable matchers.
package pattern

import (
	"fmt"
	"regexp"

	"github.com/starford/raido/internal/apperr"
)

// Compile turns a raw query into a *regexp.Regexp.
//
// In literal mode (regexMode false) every regex metacharacter is escaped so
// the query matches only itself. Case-insensitivity is applied to the whole
// pattern. Callers always match in find-all mode (FindAllStringIndex).
//
// A syntactically invalid regex-mode query fails with an error wrapping
// apperr.ErrInvalidPattern. Literal-mode compilation cannot fail.
func Compile(query string, regexMode, caseSensitive bool) (*regexp.Regexp, error) {
	expr := query
	if !regexMode {
		expr = regexp.QuoteMeta(query)
	}
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w: %v", apperr.ErrInvalidPattern, err)
	}
	return re, nil
}
