// Package mockd implements a small in-memory model server speaking the
// /api surface consumed by pkg/client. It exists for local development and
// black-box tests; nothing is persisted.
package mockd

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"modeldctl/pkg/types"
)

// record is one stored model.
type record struct {
	info      types.ModelInfo
	modelfile string
	loaded    bool
}

// Store is the in-memory model registry behind the mock server.
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	models map[types.Ref]*record
}

func NewStore() *Store {
	return &Store{models: make(map[types.Ref]*record)}
}

// digestOf derives a stable content digest for a modelfile.
func digestOf(modelfile string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(modelfile)))
}

// Put registers (or replaces) a model built from a modelfile.
func (s *Store) Put(name types.Ref, modelfile string) types.ModelInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := types.ModelInfo{
		Name:       name,
		Digest:     digestOf(modelfile),
		Size:       int64(len(modelfile)),
		ModifiedAt: time.Now().UTC(),
	}
	s.models[name] = &record{info: info, modelfile: modelfile}
	return info
}

// Get returns the stored model info and modelfile.
func (s *Store) Get(name types.Ref) (types.ModelInfo, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.models[name]
	if !ok {
		return types.ModelInfo{}, "", false
	}
	return r.info, r.modelfile, true
}

// Delete removes a model, reporting whether it existed.
func (s *Store) Delete(name types.Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[name]; !ok {
		return false
	}
	delete(s.models, name)
	return true
}

// Copy duplicates src under dst, reporting whether src existed.
func (s *Store) Copy(src, dst types.Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.models[src]
	if !ok {
		return false
	}
	cp := *r
	cp.info.Name = dst
	cp.info.ModifiedAt = time.Now().UTC()
	cp.loaded = false
	s.models[dst] = &cp
	return true
}

// Load marks a model as loaded into memory, reporting whether it exists.
func (s *Store) Load(name types.Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.models[name]
	if !ok {
		return false
	}
	r.loaded = true
	return true
}

// List returns all models sorted by name.
func (s *Store) List() []types.ModelInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ModelInfo, 0, len(s.models))
	for _, r := range s.models {
		out = append(out, r.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
