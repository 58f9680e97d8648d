package api

import (
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/noteservice"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Content string `json:"content"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// NoteListItem is a lightweight item in a list response (aliased from the domain layer).
type NoteListItem = noteservice.NoteListItem

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes"`
	Total int            `json:"total"`
}

// SearchRequest is the request body for a vault sweep.
type SearchRequest struct {
	Query             string `json:"query"`
	Regex             bool   `json:"regex"`
	CaseSensitive     bool   `json:"case_sensitive"`
	IgnoreFrontMatter bool   `json:"ignore_front_matter"`
}

// ReplaceRequest is the request body for replacing one located match.
type ReplaceRequest struct {
	Match             models.Match `json:"match"`
	Replacement       string       `json:"replacement"`
	Query             string       `json:"query"`
	Regex             bool         `json:"regex"`
	CaseSensitive     bool         `json:"case_sensitive"`
	IgnoreFrontMatter bool         `json:"ignore_front_matter"`
}
