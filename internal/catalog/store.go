package catalog

import (
	"sync/atomic"

	"github.com/platewise/platewise-backend/internal/platform/logger"
)

// Store holds the process-wide catalog behind an atomic pointer so reload
// swaps the whole catalog at once. Readers never observe a partial update.
type Store struct {
	log  *logger.Logger
	load func() (*Catalog, error)
	ptr  atomic.Pointer[Catalog]
}

// NewStore performs the initial load. A failed initial load is fatal to the
// caller; reload failures later keep the previous catalog in place.
func NewStore(log *logger.Logger, load func() (*Catalog, error)) (*Store, error) {
	s := &Store{log: log.With("service", "CatalogStore"), load: load}
	cat, err := load()
	if err != nil {
		return nil, err
	}
	s.ptr.Store(cat)
	s.log.Info("Catalog loaded", "ingredients", cat.Len())
	return s, nil
}

// NewStaticStore wraps an already-built catalog. Used by tests and the CLI.
func NewStaticStore(log *logger.Logger, cat *Catalog) *Store {
	s := &Store{log: log.With("service", "CatalogStore"), load: func() (*Catalog, error) { return cat, nil }}
	s.ptr.Store(cat)
	return s
}

func (s *Store) Current() *Catalog {
	return s.ptr.Load()
}

// Reload re-runs the loader and atomically swaps in the new catalog.
func (s *Store) Reload() (int, error) {
	cat, err := s.load()
	if err != nil {
		s.log.Error("Catalog reload failed, keeping previous catalog", "error", err)
		return 0, err
	}
	s.ptr.Store(cat)
	s.log.Info("Catalog reloaded", "ingredients", cat.Len())
	return cat.Len(), nil
}
