package editor

import (
	"strings"

	"github.com/starford/raido/internal/lines"
)

type selection struct {
	startLine, startCh int // 1-based line, 0-based rune offset
	endLine, endCh     int // end offset is exclusive
}

// Buffer is a line-addressed editable document. It is not safe for
// concurrent use; the owning Host serializes access per document.
type Buffer struct {
	path  string
	lines []string
	sel   selection
}

// NewBuffer creates a buffer holding text, split into lines.
func NewBuffer(path, text string) *Buffer {
	return &Buffer{
		path:  path,
		lines: lines.Split(text),
		sel:   selection{startLine: 1, endLine: 1},
	}
}

// Path returns the document path this buffer edits.
func (b *Buffer) Path() string { return b.path }

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line n (1-based), or "" when out of range.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

// Text joins the lines back into the full document text.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// SetSelection selects the rune range [startCh, endCh) spanning
// startLine..endLine. Out-of-range positions are clamped; a reversed
// range is normalised.
func (b *Buffer) SetSelection(startLine, startCh, endLine, endCh int) {
	sl, sc := b.clamp(startLine, startCh)
	el, ec := b.clamp(endLine, endCh)
	if el < sl || (el == sl && ec < sc) {
		sl, sc, el, ec = el, ec, sl, sc
	}
	b.sel = selection{startLine: sl, startCh: sc, endLine: el, endCh: ec}
}

// SelectionText returns the currently selected text, with \n joining
// lines of a multi-line selection.
func (b *Buffer) SelectionText() string {
	s := b.sel
	if s.startLine == s.endLine {
		r := []rune(b.lines[s.startLine-1])
		return string(r[s.startCh:s.endCh])
	}
	var sb strings.Builder
	first := []rune(b.lines[s.startLine-1])
	sb.WriteString(string(first[s.startCh:]))
	for n := s.startLine + 1; n < s.endLine; n++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[n-1])
	}
	last := []rune(b.lines[s.endLine-1])
	sb.WriteByte('\n')
	sb.WriteString(string(last[:s.endCh]))
	return sb.String()
}

// ReplaceSelection splices text over the selected range and collapses the
// selection to the end of the inserted text.
func (b *Buffer) ReplaceSelection(text string) {
	s := b.sel
	first := []rune(b.lines[s.startLine-1])
	last := []rune(b.lines[s.endLine-1])
	combined := string(first[:s.startCh]) + text + string(last[s.endCh:])

	inserted := lines.Split(combined)
	spliced := make([]string, 0, len(b.lines)-(s.endLine-s.startLine+1)+len(inserted))
	spliced = append(spliced, b.lines[:s.startLine-1]...)
	spliced = append(spliced, inserted...)
	spliced = append(spliced, b.lines[s.endLine:]...)
	b.lines = spliced

	// Collapse the selection to the insertion end point.
	endLine := s.startLine + strings.Count(string(first[:s.startCh])+text, "\n")
	endCh := len([]rune(lastLineOf(string(first[:s.startCh]) + text)))
	b.sel = selection{startLine: endLine, startCh: endCh, endLine: endLine, endCh: endCh}
}

func lastLineOf(text string) string {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return text[i+1:]
	}
	return text
}

// clamp bounds a (line, rune offset) position into the document.
func (b *Buffer) clamp(line, ch int) (int, int) {
	if line < 1 {
		return 1, 0
	}
	if line > len(b.lines) {
		last := len(b.lines)
		return last, len([]rune(b.lines[last-1]))
	}
	r := []rune(b.lines[line-1])
	if ch < 0 {
		ch = 0
	}
	if ch > len(r) {
		ch = len(r)
	}
	return line, ch
}
