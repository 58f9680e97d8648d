// Package search implements the vault-wide match sweep.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/frontmatter"
	"github.com/starford/raido/internal/lines"
	"github.com/starford/raido/internal/matcher"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/pattern"
	"github.com/starford/raido/internal/storage"
)

// Engine sweeps every note in the vault for pattern matches. It holds no
// state between calls; a new Search simply supersedes the previous outcome.
type Engine struct {
	store storage.Provider
}

// NewEngine creates a search engine over the given vault storage.
func NewEngine(store storage.Provider) *Engine {
	return &Engine{store: store}
}

// Search runs one sweep. Blank queries short-circuit to an empty outcome
// before any pattern is compiled or note is read. An invalid regex query
// fails with apperr.ErrInvalidPattern; a note that cannot be read fails with
// apperr.ErrReadFailure and aborts the sweep — no partial results.
//
// Matches are ordered by vault enumeration order, then line, then left to
// right. Each note counts at most once in FilesWithMatches, however many
// matches it holds.
func (e *Engine) Search(ctx context.Context, q models.Query) (*models.SearchOutcome, error) {
	out := &models.SearchOutcome{Matches: []models.Match{}}
	if strings.TrimSpace(q.Text) == "" {
		return out, nil
	}

	re, err := pattern.Compile(q.Text, q.Regex, q.CaseSensitive)
	if err != nil {
		return nil, err
	}

	metas, err := e.store.List("")
	if err != nil {
		return nil, fmt.Errorf("search: %w: %v", apperr.ErrReadFailure, err)
	}

	for _, meta := range metas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := e.store.Read(meta.Path)
		if err != nil {
			return nil, fmt.Errorf("search: %w: %v", apperr.ErrReadFailure, err)
		}
		text := string(data)
		if q.IgnoreFrontMatter {
			text = frontmatter.Strip(text)
		}

		found := false
		for i, line := range lines.Split(text) {
			records := matcher.MatchLine(line, i+1, meta.Path, re)
			if len(records) == 0 {
				continue
			}
			found = true
			out.Matches = append(out.Matches, records...)
		}
		if found {
			out.FilesWithMatches++
		}
	}
	return out, nil
}
