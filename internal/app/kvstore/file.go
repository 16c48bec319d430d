package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/pkg/logx"
)

// FileStore persists the key-value map as a single JSON document on disk.
// It is the server-side analog of browser local storage: small, synchronous,
// and tolerant of a corrupted backing file.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// NewFileStore loads the store persisted at path, or starts empty when the
// file is missing or unreadable. A malformed file is treated as absent data.
func NewFileStore(path string) *FileStore {
	fs := &FileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logx.Warn("Session file unreadable, starting with empty storage", "path", path, "error", err)
		}
		return fs
	}

	if err := json.Unmarshal(raw, &fs.data); err != nil {
		logx.Warn("Session file malformed, starting with empty storage", "path", path, "error", err)
		fs.data = make(map[string]json.RawMessage)
	}

	return fs
}

// Get returns the value stored under key.
func (f *FileStore) Get(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return nil, false
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true
}

// Set stores value under key and flushes the document to disk.
// Values must be valid JSON; the state stores only ever write JSON entities.
func (f *FileStore) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !json.Valid(value) {
		// Wrap non-JSON values as a JSON string so the document stays loadable.
		wrapped, err := json.Marshal(string(value))
		if err != nil {
			return err
		}
		value = wrapped
	}

	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	f.data[key] = stored

	return f.flushLocked()
}

// Remove deletes the value stored under key and flushes the document to disk.
func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.data[key]; !ok {
		return nil
	}

	delete(f.data, key)
	return f.flushLocked()
}

// flushLocked writes the document atomically via a temp file and rename.
// Callers must hold f.mu.
func (f *FileStore) flushLocked() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), f.path)
}
