// Package models defines the domain types for Raido.
package models

// Query is the immutable input of one search or replace invocation.
type Query struct {
	// Text is the raw pattern string as the user typed it.
	Text string `json:"query"`
	// Regex selects regex mode; when false the text matches only itself.
	Regex bool `json:"regex"`
	// CaseSensitive controls case folding of the whole pattern.
	CaseSensitive bool `json:"case_sensitive"`
	// IgnoreFrontMatter excludes a leading frontmatter block from the sweep.
	IgnoreFrontMatter bool `json:"ignore_front_matter"`
}

// Match is one located occurrence of a pattern within one line of a note.
//
// Start and End are 0-based rune offsets into LineText. End is inclusive of
// the last matched rune, so a single-rune match has Start == End. Every match
// satisfies 0 <= Start <= End < rune length of LineText.
type Match struct {
	Path     string `json:"path"`
	Line     int    `json:"line"` // 1-based
	LineText string `json:"line_text"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// SearchOutcome aggregates the matches of one sweep across the vault.
// Matches are ordered by vault enumeration order, then line order, then
// left to right within a line. FilesWithMatches counts distinct notes that
// contributed at least one match.
type SearchOutcome struct {
	Matches          []Match `json:"matches"`
	FilesWithMatches int     `json:"files_with_matches"`
}

// ReplaceOutcome is the result of one replace operation: the mutated note,
// the affected line, and the matches remaining on that line afterwards.
type ReplaceOutcome struct {
	Path    string  `json:"path"`
	Line    int     `json:"line"`
	Matches []Match `json:"matches"`
}
