package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raido/internal/editor"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/storage"
)

func testServer(t *testing.T) (*Server, *noteservice.Service, storage.Provider) {
	t.Helper()

	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}

	dbFile, err := os.CreateTemp("", "raido-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	host := editor.NewHost(store)
	svc := noteservice.NewService(store, db, host, nil)
	srv := New(svc)
	return srv, svc, store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "replace_match":
		result, err = srv.replaceMatch(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchNotesTool(t *testing.T) {
	srv, _, store := testServer(t)
	_ = store.Write("a.md", []byte("alpha beta\nbeta again\n"))
	_ = store.Write("b.md", []byte("nothing here\n"))

	r := callTool(t, srv, "search_notes", map[string]interface{}{
		"query":          "beta",
		"case_sensitive": true,
	})
	if r.IsError {
		t.Fatalf("search error: %s", resultText(r))
	}

	var out models.SearchOutcome
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Matches) != 2 || out.FilesWithMatches != 1 {
		t.Errorf("outcome = %+v", out)
	}
	if out.Matches[0].Line != 1 || out.Matches[0].Start != 6 || out.Matches[0].End != 9 {
		t.Errorf("first match = %+v", out.Matches[0])
	}
}

func TestSearchNotesInvalidPattern(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "search_notes", map[string]interface{}{
		"query": "(",
		"regex": true,
	})
	if !r.IsError {
		t.Error("expected error for invalid pattern")
	}
}

func TestReplaceMatchTool(t *testing.T) {
	srv, _, store := testServer(t)
	_ = store.Write("a.md", []byte("say foo once\n"))

	r := callTool(t, srv, "replace_match", map[string]interface{}{
		"path":        "a.md",
		"line":        float64(1),
		"line_text":   "say foo once",
		"start":       float64(4),
		"end":         float64(6),
		"replacement": "bar",
		"query":       "foo",
	})
	if r.IsError {
		t.Fatalf("replace error: %s", resultText(r))
	}

	data, err := store.Read("a.md")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "say bar once\n" {
		t.Errorf("content = %q", data)
	}
}

func TestReplaceMatchMissingNote(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "replace_match", map[string]interface{}{
		"path":        "ghost.md",
		"line":        float64(1),
		"line_text":   "foo",
		"start":       float64(0),
		"end":         float64(2),
		"replacement": "bar",
		"query":       "foo",
	})
	if !r.IsError {
		t.Error("expected error for unreachable note")
	}
}

func TestReadNoteTool(t *testing.T) {
	srv, _, store := testServer(t)
	_ = store.Write("test.md", []byte("# Test\nHello"))

	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "test.md"})
	if resultText(r) != "# Test\nHello" {
		t.Errorf("read result = %q", resultText(r))
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestListNotesTool(t *testing.T) {
	srv, svc, _ := testServer(t)

	// The index only knows notes that went through the service or a sync.
	if _, err := svc.CreateNote(context.Background(), "a.md", []byte("# A\n")); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("list error: %s", resultText(r))
	}
	if resultText(r) == "no notes indexed" {
		t.Error("list returned empty")
	}
}
