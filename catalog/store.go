package catalog

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/maghams62/launcher/client"
)

// FetchFunc loads the catalog from its source.
type FetchFunc func(ctx context.Context) ([]client.Command, error)

// Store holds the command catalog for the lifetime of a session. The first
// successful Load wins; later loads return the cached copy. Concurrent
// callers share one in-flight fetch.
type Store struct {
	mu     sync.RWMutex
	cmds   []client.Command
	loaded bool
	group  singleflight.Group
	log    *zap.Logger
}

// NewStore returns an empty Store.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{log: log}
}

// Load fetches the catalog once. A failed fetch leaves the store empty so a
// later call can retry.
func (s *Store) Load(ctx context.Context, fetch FetchFunc) ([]client.Command, error) {
	if cmds, ok := s.cached(); ok {
		return cmds, nil
	}
	v, err, _ := s.group.Do("catalog", func() (any, error) {
		if cmds, ok := s.cached(); ok {
			return cmds, nil
		}
		cmds, err := fetch(ctx)
		if err != nil {
			s.log.Warn("catalog fetch failed", zap.Error(err))
			return nil, err
		}
		s.Set(cmds)
		s.log.Info("catalog loaded", zap.Int("commands", len(cmds)))
		return s.All(), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]client.Command), nil
}

// Set installs cmds as the session catalog.
func (s *Store) Set(cmds []client.Command) {
	cp := make([]client.Command, len(cmds))
	copy(cp, cmds)
	s.mu.Lock()
	s.cmds = cp
	s.loaded = true
	s.mu.Unlock()
}

// All returns the catalog in insertion order. Callers must treat it as read-only.
func (s *Store) All() []client.Command {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cmds
}

// Loaded reports whether a catalog has been installed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Lookup finds a command by id, case-insensitively.
func (s *Store) Lookup(id string) (client.Command, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cmds {
		if strings.EqualFold(c.ID, id) {
			return c, true
		}
	}
	return client.Command{}, false
}

func (s *Store) cached() ([]client.Command, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cmds, s.loaded
}
