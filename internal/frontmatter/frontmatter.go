// Package frontmatter handles the leading YAML metadata block of a note.
package frontmatter

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// blockRe matches a single frontmatter block anchored at the very start of
// the text: an opening --- line, arbitrary content, and a closing --- line
// followed by a newline. The capture group is the YAML payload.
var blockRe = regexp.MustCompile(`(?s)\A---\r?\n(.*?)\r?\n---\r?\n`)

// Strip removes at most one leading frontmatter block. Text without such a
// block at its very start is returned unchanged. Only the first, leading
// block is removed; --- fences elsewhere in the note are untouched.
func Strip(text string) string {
	loc := blockRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}

// Result holds the output of parsing a note.
type Result struct {
	Meta  map[string]interface{}
	Body  string
	Title string
}

// Parse separates the frontmatter block from the body and decodes it as YAML.
// Notes without frontmatter, or with YAML that fails to decode, fall back to
// body-only with no error.
func Parse(data []byte) (*Result, error) {
	text := string(data)
	m := blockRe.FindStringSubmatchIndex(text)
	if m == nil {
		return &Result{Body: text, Title: deriveTitle(nil, text)}, nil
	}

	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(text[m[2]:m[3]]), &meta); err != nil {
		return &Result{Body: text, Title: deriveTitle(nil, text)}, nil
	}

	body := text[m[1]:]
	return &Result{Meta: meta, Body: body, Title: deriveTitle(meta, body)}, nil
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(meta map[string]interface{}, body string) string {
	if meta != nil {
		if t, ok := meta["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
