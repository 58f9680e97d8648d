package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/raido/internal/storage"
)

// Host is the in-process Workspace implementation. Open buffers survive
// between operations so unsaved edits are not lost; at most one buffer holds
// focus at a time.
type Host struct {
	mu      sync.Mutex
	store   storage.Provider
	buffers map[string]*Buffer
	active  string
}

// NewHost creates a workspace backed by the given vault storage.
func NewHost(store storage.Provider) *Host {
	return &Host{store: store, buffers: make(map[string]*Buffer)}
}

// Activate focuses path, opening it from storage on first use. When the read
// fails the previous focus is left untouched and the error is returned.
func (h *Host) Activate(_ context.Context, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.buffers[path]; ok {
		h.active = path
		return nil
	}
	data, err := h.store.Read(path)
	if err != nil {
		return fmt.Errorf("editor: activate %s: %w", path, err)
	}
	h.buffers[path] = NewBuffer(path, string(data))
	h.active = path
	return nil
}

// ActivePath reports the currently focused document, if any.
func (h *Host) ActivePath() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == "" {
		return "", false
	}
	return h.active, true
}

// ActiveSurface returns the focused surface, if any.
func (h *Host) ActiveSurface() (Surface, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == "" {
		return nil, false
	}
	buf, ok := h.buffers[h.active]
	if !ok {
		return nil, false
	}
	return buf, true
}

// Discard drops the open buffer for path, losing any unsaved edits. Used when
// the file changed on disk underneath the editor.
func (h *Host) Discard(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.buffers, path)
	if h.active == path {
		h.active = ""
	}
}

var _ Workspace = (*Host)(nil)
