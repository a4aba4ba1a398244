// Package statefile persists per-file editor state between runs.
//
// The state lives in a single JSON document keyed by absolute file
// path, currently holding the last cursor offset and last-open time:
//
//	{
//	  "files": {
//	    "/tmp/a.bin": {"offset": 128, "opened": "2026-08-29T10:00:00Z"}
//	  }
//	}
//
// Reads and updates go through gjson/sjson path expressions, so unknown
// keys written by newer versions survive a round trip untouched.
package statefile

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MaxEntries caps how many files are remembered. The oldest entries are
// evicted first.
const MaxEntries = 100

// File is the persisted state store.
type File struct {
	mu   sync.Mutex
	path string
	doc  string
}

// Open loads the state document at path, creating an empty one in
// memory when the file does not exist. A path of "" yields a store that
// keeps state in memory only.
func Open(path string) (*File, error) {
	f := &File{path: path, doc: "{}"}
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, err
	}
	if gjson.ValidBytes(data) {
		f.doc = string(data)
	}
	return f, nil
}

// Offset returns the remembered cursor offset for filePath.
func (f *File) Offset(filePath string) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := gjson.Get(f.doc, entryPath(filePath)+".offset")
	if !res.Exists() {
		return 0, false
	}
	return res.Int(), true
}

// Recent returns the remembered file paths, most recently opened first.
func (f *File) Recent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	type entry struct {
		path   string
		opened time.Time
	}
	var entries []entry
	gjson.Get(f.doc, "files").ForEach(func(key, value gjson.Result) bool {
		opened, _ := time.Parse(time.RFC3339Nano, value.Get("opened").String())
		entries = append(entries, entry{path: key.String(), opened: opened})
		return true
	})

	// Insertion sort; the store holds at most MaxEntries entries.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].opened.After(entries[j-1].opened); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}

// Touch records that filePath is open with the cursor at offset.
func (f *File) Touch(filePath string, offset int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	base := entryPath(filePath)
	doc, err := sjson.Set(f.doc, base+".offset", offset)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, base+".opened", time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	f.doc = doc
	f.evict()
	return nil
}

// evict drops the oldest entries past MaxEntries. Caller holds mu.
func (f *File) evict() {
	files := gjson.Get(f.doc, "files")
	n := 0
	files.ForEach(func(_, _ gjson.Result) bool { n++; return true })
	if n <= MaxEntries {
		return
	}

	oldestKey := ""
	var oldest time.Time
	files.ForEach(func(key, value gjson.Result) bool {
		opened, _ := time.Parse(time.RFC3339Nano, value.Get("opened").String())
		if oldestKey == "" || opened.Before(oldest) {
			oldestKey, oldest = key.String(), opened
		}
		return true
	})
	if oldestKey != "" {
		if doc, err := sjson.Delete(f.doc, "files."+escapeKey(oldestKey)); err == nil {
			f.doc = doc
		}
	}
}

// Save writes the document to disk, creating parent directories as
// needed. A memory-only store saves nothing.
func (f *File) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(f.doc), 0o644)
}

func entryPath(filePath string) string {
	return "files." + escapeKey(filePath)
}

// escapeKey protects path separators from being read as JSON path
// components.
func escapeKey(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '\\', '|', '#', '@':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}
