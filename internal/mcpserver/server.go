// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/noteservice"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all Raido tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Sweep every note for a pattern. Returns matches with "+
			"line numbers and inclusive character offsets, plus a count of notes hit."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithBoolean("regex", mcp.Description("Treat the query as a regular expression")),
		mcp.WithBoolean("case_sensitive", mcp.Description("Match case exactly")),
		mcp.WithBoolean("ignore_front_matter", mcp.Description("Skip YAML frontmatter blocks")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("replace_match",
		mcp.WithDescription("Replace one match previously returned by search_notes. "+
			"Pass the match fields back verbatim along with the original query options. "+
			"Returns the remaining matches on that line, or an error if the note "+
			"could not be opened (re-run search_notes and retry)."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Note path from the match")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("1-based line number from the match")),
		mcp.WithString("line_text", mcp.Required(), mcp.Description("Full line text from the match; the replace aborts if the note no longer holds it")),
		mcp.WithNumber("start", mcp.Required(), mcp.Description("Inclusive start offset from the match")),
		mcp.WithNumber("end", mcp.Required(), mcp.Description("Inclusive end offset from the match")),
		mcp.WithString("replacement", mcp.Required(), mcp.Description("Literal replacement text")),
		mcp.WithString("query", mcp.Required(), mcp.Description("The original search query")),
		mcp.WithBoolean("regex", mcp.Description("Treat the query as a regular expression")),
		mcp.WithBoolean("case_sensitive", mcp.Description("Match case exactly")),
		mcp.WithBoolean("ignore_front_matter", mcp.Description("Skip YAML frontmatter blocks")),
	), s.replaceMatch)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a Markdown note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List indexed notes with titles and checksums."),
		mcp.WithNumber("limit", mcp.Description("Maximum notes to return (default 50)")),
	), s.listNotes)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func queryFromRequest(req mcp.CallToolRequest, text string) models.Query {
	return models.Query{
		Text:              text,
		Regex:             req.GetBool("regex", false),
		CaseSensitive:     req.GetBool("case_sensitive", false),
		IgnoreFrontMatter: req.GetBool("ignore_front_matter", false),
	}
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.Search(ctx, queryFromRequest(req, query))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) replaceMatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lineText, err := req.RequireString("line_text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	replacement, err := req.RequireString("replacement")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m := models.Match{
		Path:     path,
		Line:     req.GetInt("line", 0),
		LineText: lineText,
		Start:    req.GetInt("start", 0),
		End:      req.GetInt("end", 0),
	}
	out, err := s.svc.Replace(ctx, m, replacement, queryFromRequest(req, query))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if out == nil {
		return mcp.NewToolResultError(fmt.Sprintf("replace abandoned: %s no longer holds the recorded match; re-run search_notes and retry", path)), nil
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.GetNote(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(note.Content), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 50)
	items, _, err := s.svc.ListNotes(ctx, limit, 0, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no notes indexed"), nil
	}
	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s\t%s", it.Path, it.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
