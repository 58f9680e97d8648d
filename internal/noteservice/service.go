// Package noteservice coordinates storage, the metadata index, and the
// search/replace engines behind one service layer.
package noteservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/editor"
	"github.com/starford/raido/internal/frontmatter"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/replace"
	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/internal/sse"
	"github.com/starford/raido/internal/storage"
)

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	Path      string         `json:"path"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Checksum  string         `json:"checksum"`
	Meta      map[string]any `json:"frontmatter,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NoteListItem is a lightweight item in a list response.
type NoteListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage, index, editor host, and search/replace.
type Service struct {
	store    storage.Provider
	db       index.NoteIndex
	engine   *search.Engine
	replacer *replace.Coordinator
	host     *editor.Host
	broker   *sse.Broker // may be nil
}

// NewService creates a new note service. broker may be nil when no event
// stream is attached.
func NewService(store storage.Provider, db index.NoteIndex, host *editor.Host, broker *sse.Broker) *Service {
	return &Service{
		store:    store,
		db:       db,
		engine:   search.NewEngine(store),
		replacer: replace.NewCoordinator(host, store),
		host:     host,
		broker:   broker,
	}
}

// Search runs one vault-wide sweep.
func (s *Service) Search(ctx context.Context, q models.Query) (*models.SearchOutcome, error) {
	return s.engine.Search(ctx, q)
}

// Replace substitutes one previously located match. A (nil, nil) return means
// the replace was abandoned: the live surface could not be confirmed to
// target the right note, and durable storage is unchanged.
func (s *Service) Replace(ctx context.Context, m models.Match, replacement string, q models.Query) (*models.ReplaceOutcome, error) {
	out, err := s.replacer.Replace(ctx, m, replacement, q)
	if err != nil || out == nil {
		return out, err
	}
	// Keep the metadata index and event stream in step with the mutation.
	// The substitution is already durable; an index refresh failure is
	// repaired by the next sync, so warn rather than fail the replace.
	if data, readErr := s.store.Read(out.Path); readErr != nil {
		slog.Warn("replace: re-read for index failed", slog.String("path", out.Path), slog.String("error", readErr.Error()))
	} else if idxErr := s.db.IndexNote(out.Path, data); idxErr != nil {
		slog.Warn("replace: index refresh failed", slog.String("path", out.Path), slog.String("error", idxErr.Error()))
	}
	if s.broker != nil {
		s.broker.PublishNoteEvent("updated", out.Path)
	}
	return out, nil
}

// GetNote reads a note from storage and parses its frontmatter.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return buildNoteDetail(path, data), nil
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(_ context.Context, path string, content []byte) (*NoteDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.db.IndexNote(path, content); err != nil {
		return nil, err
	}
	if s.broker != nil {
		s.broker.PublishNoteEvent("created", path)
	}
	return buildNoteDetail(path, content), nil
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.db.IndexNote(path, content); err != nil {
		return nil, err
	}
	// Any open editor buffer is now stale.
	s.host.Discard(path)
	if s.broker != nil {
		s.broker.PublishNoteEvent("updated", path)
	}
	return buildNoteDetail(path, content), nil
}

// DeleteNote removes a note from storage, index, and editor.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	s.host.Discard(path)
	if s.broker != nil {
		s.broker.PublishNoteEvent("deleted", path)
	}
	return s.db.DeleteNote(path)
}

// ListNotes returns paginated note metadata.
func (s *Service) ListNotes(_ context.Context, limit, offset int, sort string) ([]NoteListItem, int, error) {
	rows, total, err := s.db.ListNotes(limit, offset, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{
			Path:      r.Path,
			Title:     r.Title,
			Checksum:  r.Checksum,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// buildNoteDetail constructs a NoteDetail from raw data without re-reading the file.
func buildNoteDetail(path string, data []byte) *NoteDetail {
	res, _ := frontmatter.Parse(data)
	return &NoteDetail{
		Path:      path,
		Title:     res.Title,
		Content:   string(data),
		Checksum:  checksum.Sum(data),
		Meta:      res.Meta,
		UpdatedAt: time.Now(),
	}
}
