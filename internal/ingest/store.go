package ingest

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// Store holds the current snapshot of one sheet. Snapshots are replaced
// wholesale and never mutated after Commit.
type Store struct {
	source    string
	url       string
	started   atomic.Uint64
	mu        sync.Mutex
	committed uint64
	current   atomic.Pointer[model.Dataset]
}

// NewStore creates an empty store for a named source.
func NewStore(source, url string) *Store {
	return &Store{source: source, url: url}
}

func (s *Store) Source() string { return s.source }
func (s *Store) URL() string    { return s.url }

// Begin hands out the generation id for a new fetch.
func (s *Store) Begin() uint64 {
	return s.started.Add(1)
}

// Commit installs ds as the current snapshot if gen is newer than the
// committed generation. A stale generation is discarded and false returned.
func (s *Store) Commit(gen uint64, ds *model.Dataset) bool {
	if ds == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.committed {
		return false
	}
	ds.Source = s.source
	ds.Generation = gen
	s.committed = gen
	s.current.Store(ds)
	return true
}

// Current returns the committed snapshot, or nil before the first commit.
func (s *Store) Current() *model.Dataset {
	return s.current.Load()
}

// Generation returns the committed generation.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Registry maps source names to stores.
type Registry struct {
	stores map[string]*Store
}

// NewRegistry builds a registry from source name to CSV URL. Sources with an
// empty URL are skipped.
func NewRegistry(urls map[string]string) *Registry {
	r := &Registry{stores: make(map[string]*Store, len(urls))}
	for name, url := range urls {
		if url == "" {
			continue
		}
		r.stores[name] = NewStore(name, url)
	}
	return r
}

// Get returns the store for source.
func (r *Registry) Get(source string) (*Store, bool) {
	s, ok := r.stores[source]
	return s, ok
}

// Stores returns all stores ordered by source name.
func (r *Registry) Stores() []*Store {
	out := make([]*Store, 0, len(r.stores))
	for _, s := range r.stores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].source < out[j].source })
	return out
}
