package knowledge

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func silentStore(path string) *Store {
	s := NewStore(path)
	s.Notify = func(string, ...any) {}
	return s
}

func TestLookupFallback(t *testing.T) {
	s := silentStore("")

	if got := s.Lookup("unknown"); got != Fallback {
		t.Errorf("Lookup on empty store = %q, want fallback", got)
	}

	s.Add("hello", "hi there")
	if got := s.Lookup("hello"); got != "hi there" {
		t.Errorf("Lookup(hello) = %q, want %q", got, "hi there")
	}
	if got := s.Lookup("Hello"); got != Fallback {
		t.Errorf("Lookup is exact-match; Lookup(Hello) = %q, want fallback", got)
	}
}

func TestAddOverwrites(t *testing.T) {
	s := silentStore("")
	s.Add("k", "first")
	s.Add("k", "second")

	if s.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", s.Len())
	}
	if got := s.Lookup("k"); got != "second" {
		t.Errorf("last write should win, got %q", got)
	}
}

func TestAddPermitsEmptyStrings(t *testing.T) {
	s := silentStore("")
	s.Add("", "")

	if got := s.Lookup(""); got != "" {
		t.Errorf("Lookup of empty key = %q, want empty response", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")

	s := silentStore(path)
	s.Add("hello", "hi there")
	s.Add("bye", "see you")
	s.Add("empty", "")

	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fresh := silentStore(path)
	if err := fresh.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(fresh.All(), s.All()) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", fresh.All(), s.All())
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	if err := os.WriteFile(path, []byte(`{"a": "1", "b": "2"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s := silentStore(path)
	if err := s.Load(path); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	once := s.All()

	if err := s.Load(path); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if !reflect.DeepEqual(s.All(), once) {
		t.Errorf("loading the same file twice changed the mapping: %v", s.All())
	}
}

func TestLoadMergesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patch.json")
	if err := os.WriteFile(path, []byte(`{"hello": "patched", "extra": "new"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s := silentStore("")
	s.Add("hello", "original")
	s.Add("keep", "untouched")

	if err := s.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := s.Lookup("hello"); got != "patched" {
		t.Errorf("loaded value should overwrite: got %q", got)
	}
	if got := s.Lookup("keep"); got != "untouched" {
		t.Errorf("keys absent from the file must be preserved: got %q", got)
	}
	if got := s.Lookup("extra"); got != "new" {
		t.Errorf("new keys should merge in: got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var notices []string
	s := NewStore("")
	s.Notify = func(format string, args ...any) {
		notices = append(notices, format)
	}
	s.Add("hello", "hi")

	path := filepath.Join(t.TempDir(), "missing.json")
	if err := s.Load(path); err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if s.Len() != 1 || s.Lookup("hello") != "hi" {
		t.Error("missing file must leave the mapping unchanged")
	}
	if len(notices) == 0 {
		t.Error("missing file should emit a notice")
	}
}

func TestLoadMalformedContent(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"a": `},
		{"non-string value", `{"a": 1}`},
		{"top-level array", `["a", "b"]`},
		{"top-level string", `"hello"`},
		{"nested object", `{"a": {"b": "c"}}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.json")
			if err := os.WriteFile(path, []byte(c.content), 0644); err != nil {
				t.Fatal(err)
			}

			s := silentStore("")
			s.Add("hello", "hi")

			if err := s.Load(path); err == nil {
				t.Fatal("malformed content should return an error")
			}
			if s.Len() != 1 || s.Lookup("hello") != "hi" {
				t.Error("malformed content must leave the mapping unchanged")
			}
		})
	}
}

func TestSaveFailureLeavesStateIntact(t *testing.T) {
	s := silentStore("")
	s.Add("hello", "hi")

	// Directory path as the target file forces a write failure.
	if err := s.Save(t.TempDir()); err == nil {
		t.Fatal("saving to a directory should fail")
	}
	if got := s.Lookup("hello"); got != "hi" {
		t.Error("failed save must not touch the in-memory mapping")
	}
	if !s.Dirty() {
		t.Error("failed save must not clear the dirty flag")
	}
}

func TestAllSortedSnapshot(t *testing.T) {
	s := silentStore("")
	s.Add("b", "2")
	s.Add("a", "1")
	s.Add("c", "3")

	want := []Entry{{"a", "1"}, {"b", "2"}, {"c", "3"}}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestDirtyTracking(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")

	s := silentStore(path)
	if s.Dirty() {
		t.Error("fresh store should be clean")
	}

	s.Add("a", "1")
	if !s.Dirty() {
		t.Error("Add should mark the store dirty")
	}

	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("Save should clear the dirty flag")
	}
}

func TestLoadGlob(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.json", `{"hello": "from a", "only_a": "1"}`)
	write("b.json", `{"hello": "from b"}`)

	s := silentStore("")
	if err := s.LoadGlob(filepath.Join(dir, "*.json")); err != nil {
		t.Fatalf("LoadGlob failed: %v", err)
	}

	// Lexical order: b.json loads last and wins the duplicate key.
	if got := s.Lookup("hello"); got != "from b" {
		t.Errorf("later file should win, got %q", got)
	}
	if got := s.Lookup("only_a"); got != "1" {
		t.Errorf("entries unique to earlier files must survive, got %q", got)
	}

	// No matches is a notice, not an error.
	if err := s.LoadGlob(filepath.Join(dir, "none/**/*.json")); err != nil {
		t.Errorf("empty glob should not error, got %v", err)
	}
}
