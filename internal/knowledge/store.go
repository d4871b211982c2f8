package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Fallback is returned by Lookup when no entry matches. A missing key is a
// normal outcome, not an error.
const Fallback = "Sorry, I don't understand that."

// DefaultFile is the knowledge file used when the caller supplies no path.
const DefaultFile = "knowledge_base.json"

// Entry is a single canonical-key/response pair.
type Entry struct {
	Key      string `json:"key"`
	Response string `json:"response"`
}

// Store holds the in-memory mapping from canonical key to response text,
// backed by a JSON object on disk. The mapping is the source of truth
// during a session; the backing file only reflects it as of the last
// explicit Save or Load.
//
// The mutex guards a single process only. There is no cross-process file
// locking: two processes sharing one backing file can race on Save.
type Store struct {
	mu        sync.RWMutex
	responses map[string]string
	path      string
	dirty     bool

	// Notify receives human-readable status notices (load/save outcomes).
	// The UI layer owns presentation; by default notices go to stderr.
	Notify func(format string, args ...any)
}

// NewStore creates an empty store bound to the given default backing path.
// It does not touch the filesystem; call Load to pull in existing entries.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{
		responses: make(map[string]string),
		path:      path,
		Notify: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// Path returns the store's default backing file path.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the stored response for key, or Fallback when absent.
func (s *Store) Lookup(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if resp, ok := s.responses[key]; ok {
		return resp
	}
	return Fallback
}

// Add inserts or overwrites the entry for key. Empty strings are permitted;
// the change is in-memory only until Save is called.
func (s *Store) Add(key, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[key] = response
	s.dirty = true
}

// Load reads a JSON object (string -> string) from path and merges it into
// the mapping. Loaded values win over existing keys; keys absent from the
// file are preserved, so a store can be patched from several files.
//
// A missing file is an empty load, not a failure. Malformed content (bad
// JSON, or a top level that is not an object of strings) leaves the mapping
// untouched. All three outcomes emit a notice.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.notifyf("Knowledge file %q not found. Starting fresh.", path)
			return nil
		}
		s.notifyf("Error reading knowledge file %q: %v", path, err)
		return err
	}

	if err := validateShape(data); err != nil {
		s.notifyf("Error decoding knowledge file %q: %v", path, err)
		return err
	}

	var loaded map[string]string
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.notifyf("Error decoding knowledge file %q: %v", path, err)
		return err
	}

	s.mu.Lock()
	for k, v := range loaded {
		s.responses[k] = v
	}
	s.mu.Unlock()

	s.notifyf("Knowledge base loaded from %q (%d entries).", path, len(loaded))
	return nil
}

// Save serializes the full mapping to path as a pretty-printed JSON object.
// An I/O failure emits a notice and leaves the in-memory state unchanged.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.responses, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		s.notifyf("Error encoding knowledge base: %v", err)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		s.notifyf("Error saving knowledge base to %q: %v", path, err)
		return err
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	s.notifyf("Knowledge base saved to %q.", path)
	return nil
}

// All returns a snapshot of every entry, sorted by key.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.responses))
	for k, v := range s.responses {
		entries = append(entries, Entry{Key: k, Response: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.responses)
}

// Dirty reports whether the mapping has changed since the last Save.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *Store) notifyf(format string, args ...any) {
	if s.Notify != nil {
		s.Notify(format, args...)
	}
}
