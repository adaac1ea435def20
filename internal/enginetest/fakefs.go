// Package enginetest provides hand-written fakes for internal/fsport.FS
// and internal/runner.Runner, following the teacher's habit (see
// internal/worker's table-driven tests) of preferring a small in-memory
// fake over a mocking framework.
package enginetest

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/turboladen/selfie/internal/fsport"
)

// FakeFS is an in-memory fsport.FS backed by a flat map of path → bytes.
// Directories are implicit: ListDirectory returns every stored path whose
// parent is dir.
type FakeFS struct {
	mu        sync.Mutex
	files     map[string][]byte
	configDir string
	home      string
}

// NewFakeFS returns an empty FakeFS rooted at the given config directory.
func NewFakeFS(configDir string) *FakeFS {
	return &FakeFS{files: make(map[string][]byte), configDir: configDir, home: "/home/tester"}
}

// WithFile seeds path with data and returns the receiver for chaining.
func (f *FakeFS) WithFile(path string, data []byte) *FakeFS {
	f.files[path] = data
	return f
}

func (f *FakeFS) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return nil, fsport.NotFound(path)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (f *FakeFS) WriteFile(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]byte, len(data))
	copy(out, data)
	f.files[path] = out
	return nil
}

func (f *FakeFS) RemoveFile(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[path]; !ok {
		return fsport.NotFound(path)
	}
	delete(f.files, path)
	return nil
}

func (f *FakeFS) PathExists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[path]; ok {
		return true
	}
	prefix := strings.TrimSuffix(path, "/") + "/"
	for stored := range f.files {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

func (f *FakeFS) ListDirectory(dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var entries []string
	for stored := range f.files {
		if !strings.HasPrefix(stored, prefix) {
			continue
		}
		rest := strings.TrimPrefix(stored, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		entries = append(entries, stored)
	}
	sort.Strings(entries)
	return entries, nil
}

func (f *FakeFS) Canonicalize(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(f.home, path), nil
}

func (f *FakeFS) ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(f.home, strings.TrimPrefix(path, "~/")), nil
	}
	if path == "~" {
		return f.home, nil
	}
	return path, nil
}

func (f *FakeFS) ConfigDir() (string, error) {
	return f.configDir, nil
}

var _ fsport.FS = (*FakeFS)(nil)
