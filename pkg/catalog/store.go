package catalog

import "sync"

// Store holds the active catalog and keeps the on-disk copy in sync.
// The bot reads the current snapshot per request, so admin edits take
// effect without a restart.
type Store struct {
	mu   sync.RWMutex
	path string
	cat  *Catalog
}

// NewStore loads the catalog at path, falling back to the built-in
// default when the file does not exist.
func NewStore(path string) (*Store, error) {
	cat, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cat: cat}, nil
}

// NewStoreFrom wraps an already-built catalog. An empty path disables
// persistence.
func NewStoreFrom(cat *Catalog, path string) *Store {
	return &Store{path: path, cat: cat}
}

func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Replace validates, persists and swaps in a new catalog.
func (s *Store) Replace(cat *Catalog) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != "" {
		if err := Save(s.path, cat); err != nil {
			return err
		}
	}
	s.cat = cat
	return nil
}
