package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/starford/raido/internal/editor"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/storage"
)

// testEnv sets up a temp vault, SQLite DB, service, and router for testing.
func testEnv(t *testing.T, authToken string) (*noteservice.Service, http.Handler) {
	t.Helper()

	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	dbFile, err := os.CreateTemp("", "raido-api-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	host := editor.NewHost(store)
	svc := noteservice.NewService(store, db, host, nil)
	router := NewRouter(svc, authToken != "", authToken, nil)
	return svc, router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetNote(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "hello.md", "content": "# Hello\nWorld"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/notes/hello.md", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var note NoteDetail
	if err := json.Unmarshal(w.Body.Bytes(), &note); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if note.Title != "Hello" || note.Content != "# Hello\nWorld" {
		t.Errorf("note = %+v", note)
	}
}

func TestCreateDuplicateConflicts(t *testing.T) {
	_, router := testEnv(t, "")
	body := map[string]string{"path": "dup.md", "content": "x"}

	if w := doJSON(t, router, http.MethodPost, "/notes", body); w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/notes", body); w.Code != http.StatusConflict {
		t.Errorf("second create status = %d, want 409", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, router := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "a.md", "content": "foo and foo\n"})
	doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "b.md", "content": "no hits\n"})

	w := doJSON(t, router, http.MethodPost, "/search", SearchRequest{Query: "foo", CaseSensitive: true})
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d, body = %s", w.Code, w.Body.String())
	}
	var out models.SearchOutcome
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Matches) != 2 || out.FilesWithMatches != 1 {
		t.Errorf("outcome = %+v", out)
	}
}

func TestSearchInvalidPattern(t *testing.T) {
	_, router := testEnv(t, "")
	w := doJSON(t, router, http.MethodPost, "/search", SearchRequest{Query: "(", Regex: true})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestReplaceEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "a.md", "content": "say foo\n"})

	w := doJSON(t, router, http.MethodPost, "/search", SearchRequest{Query: "foo", CaseSensitive: true})
	var out models.SearchOutcome
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if len(out.Matches) != 1 {
		t.Fatalf("matches = %+v", out.Matches)
	}

	w = doJSON(t, router, http.MethodPost, "/replace", ReplaceRequest{
		Match:         out.Matches[0],
		Replacement:   "bar",
		Query:         "foo",
		CaseSensitive: true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("replace status = %d, body = %s", w.Code, w.Body.String())
	}
	var res models.ReplaceOutcome
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Path != "a.md" || len(res.Matches) != 0 {
		t.Errorf("outcome = %+v", res)
	}

	// The substitution is durable.
	w = doJSON(t, router, http.MethodGet, "/notes/a.md", nil)
	var note NoteDetail
	_ = json.Unmarshal(w.Body.Bytes(), &note)
	if note.Content != "say bar\n" {
		t.Errorf("content = %q", note.Content)
	}
}

func TestReplaceAbandonedConflict(t *testing.T) {
	_, router := testEnv(t, "")
	// Match refers to a note that does not exist.
	w := doJSON(t, router, http.MethodPost, "/replace", ReplaceRequest{
		Match:       models.Match{Path: "ghost.md", Line: 1, LineText: "foo", Start: 0, End: 2},
		Replacement: "bar",
		Query:       "foo",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestUpdateNoteChecksumConflict(t *testing.T) {
	_, router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "a.md", "content": "v1"})

	req := httptest.NewRequest(http.MethodPut, "/notes/a.md", bytes.NewBufferString(`{"content":"v2"}`))
	req.Header.Set("If-Match", "bogus")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestDeleteNote(t *testing.T) {
	_, router := testEnv(t, "")
	doJSON(t, router, http.MethodPost, "/notes", map[string]string{"path": "a.md", "content": "x"})

	if w := doJSON(t, router, http.MethodDelete, "/notes/a.md", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/notes/a.md", nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}
