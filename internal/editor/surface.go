// Package editor models the live editing surface of a note: an in-memory
// editable view that is the source of truth for unsaved edits, distinct from
// the durable copy in storage.
package editor

import "context"

// Surface is one editable document view. Lines are 1-based; character
// offsets are 0-based rune offsets with an exclusive selection end.
type Surface interface {
	// SetSelection selects [startCh, endCh) on startLine..endLine,
	// clamped into the document's current bounds.
	SetSelection(startLine, startCh, endLine, endCh int)
	// SelectionText returns the currently selected text.
	SelectionText() string
	// ReplaceSelection substitutes the selection with text, which may span
	// multiple lines.
	ReplaceSelection(text string)
	// Line returns line n (1-based), or "" when out of range.
	Line(n int) string
	// LineCount returns the number of lines in the document.
	LineCount() int
	// Text returns the full document text.
	Text() string
}

// Workspace manages open surfaces. At most one surface is active at a time;
// callers verify the active document before editing rather than locking.
type Workspace interface {
	// Activate brings path into the active surface, opening it from storage
	// on first use. Best-effort: on failure the previous active surface is
	// left in place.
	Activate(ctx context.Context, path string) error
	// ActivePath reports the currently focused document, if any.
	ActivePath() (string, bool)
	// ActiveSurface returns the focused surface, if any.
	ActiveSurface() (Surface, bool)
}
