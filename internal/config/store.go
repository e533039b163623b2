package config

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ahrav/go-worldreward/internal/domain"
)

// snapshot is the immutable domain-name → config mapping readers see.
// A new map is built for every mutation; the published map is never written.
type snapshot = map[string]*domain.DomainConfig

// Store is the process-wide domain config cache. Reads are lock-free against
// a stable snapshot published through an atomic pointer; mutations copy the
// current snapshot, apply the change, and swap the pointer, so concurrent
// readers never observe a half-updated config.
//
// The store is injectable rather than module-level state, enabling test
// isolation and multiple independent caches in one process.
type Store struct {
	loader *Loader

	snap atomic.Pointer[snapshot]

	// mu serializes mutations (load-on-miss, reload). Readers never take it.
	mu sync.Mutex
}

// NewStore creates a store backed by the given loader with an empty cache.
func NewStore(loader *Loader) *Store {
	s := &Store{loader: loader}
	empty := make(snapshot)
	s.snap.Store(&empty)
	return s
}

// Get returns the cached config for a domain without touching storage.
func (s *Store) Get(name string) (*domain.DomainConfig, bool) {
	cfg, ok := (*s.snap.Load())[name]
	return cfg, ok
}

// Domains returns the names of all currently cached domains.
func (s *Store) Domains() []string {
	snap := *s.snap.Load()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	return names
}

// Available lists the domain names with a config file on disk.
func (s *Store) Available() ([]string, error) { return s.loader.Available() }

// Load returns the config for a domain, reading it from storage on first
// request and from the cache thereafter. Repeated loads for the same name
// return the identical cached instance until an explicit Reload.
func (s *Store) Load(ctx context.Context, name string) (*domain.DomainConfig, error) {
	if cfg, ok := s.Get(name); ok {
		return cfg, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have populated the entry while we waited.
	if cfg, ok := s.Get(name); ok {
		return cfg, nil
	}

	cfg, err := s.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	s.publish(name, cfg)
	return cfg, nil
}

// Reload replaces a domain's cached config with a fresh load from storage.
// The replacement is atomic: either the new config fully replaces the old,
// or the old remains intact and the error is surfaced. No partial
// replacement is ever observable, even to concurrent readers.
func (s *Store) Reload(ctx context.Context, name string) (*domain.DomainConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	s.publish(name, cfg)
	return cfg, nil
}

// Evict drops a domain from the cache. The next Load reads from storage.
func (s *Store) Evict(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := *s.snap.Load()
	if _, ok := current[name]; !ok {
		return
	}

	next := make(snapshot, len(current))
	for k, v := range current {
		if k != name {
			next[k] = v
		}
	}
	s.snap.Store(&next)
}

// publish swaps in a new snapshot containing the updated entry.
// Callers must hold mu.
func (s *Store) publish(name string, cfg *domain.DomainConfig) {
	current := *s.snap.Load()
	next := make(snapshot, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[name] = cfg
	s.snap.Store(&next)
}
