// Package replace coordinates replacing one previously located match inside
// a live editing surface.
package replace

import (
	"context"
	"fmt"

	"github.com/starford/raido/internal/editor"
	"github.com/starford/raido/internal/matcher"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/pattern"
	"github.com/starford/raido/internal/storage"
)

// Coordinator performs the activate → verify → select → substitute → persist
// → re-scan protocol. Callers must serialize Replace calls: the protocol
// depends on the workspace's focus and selection between steps, and a
// concurrent replace could invalidate both mid-sequence.
type Coordinator struct {
	ws    editor.Workspace
	store storage.Provider
}

// NewCoordinator creates a replace coordinator over the given workspace and
// durable storage.
func NewCoordinator(ws editor.Workspace, store storage.Provider) *Coordinator {
	return &Coordinator{ws: ws, store: store}
}

// Replace substitutes replacement for the exact range recorded in m, then
// returns the matches remaining on the affected line.
//
// A replace that cannot be confirmed to target the exact recorded range —
// unresolvable path, activation failure, focus on a different note, or
// surface text at the coordinates differing from the recorded match text —
// is abandoned: (nil, nil), no durable change. This is expected and
// recoverable; the caller re-searches and retries. An invalid regex query
// fails with apperr.ErrInvalidPattern.
//
// The recorded End offset is inclusive; the surface selection end is
// exclusive. The +1 below is the only conversion between the two conventions.
func (c *Coordinator) Replace(ctx context.Context, m models.Match, replacement string, q models.Query) (*models.ReplaceOutcome, error) {
	if m.Path == "" {
		return nil, nil
	}
	if err := c.ws.Activate(ctx, m.Path); err != nil {
		return nil, nil
	}
	active, ok := c.ws.ActivePath()
	if !ok || active != m.Path {
		return nil, nil
	}
	surf, ok := c.ws.ActiveSurface()
	if !ok {
		return nil, nil
	}

	re, err := pattern.Compile(q.Text, q.Regex, q.CaseSensitive)
	if err != nil {
		return nil, err
	}

	surf.SetSelection(m.Line, m.Start, m.Line, m.End+1)

	// The surface must hold exactly the text the match recorded at these
	// coordinates. Anything else — the note changed underneath, or the match
	// was found against a stripped rendition whose line numbers do not map
	// onto the full document — and the selection points somewhere it must
	// not edit. Abandon instead of substituting.
	if want := recordedText(m); want == "" || surf.SelectionText() != want {
		return nil, nil
	}
	if q.Regex {
		// Substitute pattern matches within the selection. The replacement
		// string is literal text, never a backreference template.
		surf.ReplaceSelection(re.ReplaceAllLiteralString(surf.SelectionText(), replacement))
	} else {
		surf.ReplaceSelection(replacement)
	}

	// Persist the full surface text synchronously so the live surface and
	// durable storage cannot diverge after the edit.
	if err := c.store.Write(m.Path, []byte(surf.Text())); err != nil {
		return nil, fmt.Errorf("replace: persist %s: %w", m.Path, err)
	}

	remaining := matcher.MatchLine(surf.Line(m.Line), m.Line, m.Path, re)
	if remaining == nil {
		remaining = []models.Match{}
	}
	return &models.ReplaceOutcome{Path: m.Path, Line: m.Line, Matches: remaining}, nil
}

// recordedText extracts the matched text from the match record itself, or ""
// when the recorded offsets do not fit inside the recorded line.
func recordedText(m models.Match) string {
	runes := []rune(m.LineText)
	if m.Start < 0 || m.Start > m.End || m.End >= len(runes) {
		return ""
	}
	return string(runes[m.Start : m.End+1])
}
