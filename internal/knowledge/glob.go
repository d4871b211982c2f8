package knowledge

import (
	"errors"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// LoadGlob merges every knowledge file matching a doublestar pattern
// (e.g. "packs/**/*.json") into the store, in lexical order so later files
// win on duplicate keys. A pattern with no matches emits a notice and is
// not an error; per-file failures are reported individually and do not stop
// the remaining files from loading.
func (s *Store) LoadGlob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		s.notifyf("Bad knowledge pattern %q: %v", pattern, err)
		return err
	}
	if len(matches) == 0 {
		s.notifyf("No knowledge files match %q.", pattern)
		return nil
	}

	sort.Strings(matches)

	var errs []error
	for _, path := range matches {
		if err := s.Load(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
