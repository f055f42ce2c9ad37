// Package entrystore holds the dashboard's file and folder entries.
//
// The workbench keeps everything in process: the store is a mutex-guarded
// map plus an insertion-order slice, seeded with fixtures at startup and
// discarded on shutdown. Mutations are synchronous; reads hand out
// snapshot copies so callers can filter and sort without holding the lock.
package entrystore

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
)

// ErrBlankName is returned when a create or rename submits an empty name.
var ErrBlankName = errors.New("entry name must not be blank")

// ErrNotFound is returned by mutations that target an absent id. The
// store is left untouched; most callers treat it as a silent no-op.
var ErrNotFound = errors.New("entry not found")

// Store is the in-memory entry collection.
type Store struct {
	mu      sync.RWMutex
	entries map[string]models.Entry
	order   []string // insertion order, newest last
}

// New creates an empty entry store.
func New() *Store {
	return &Store{entries: make(map[string]models.Entry)}
}

// Seed replaces the store contents with the given fixtures.
// Entries without an ID get one assigned.
func (s *Store) Seed(entries []models.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]models.Entry, len(entries))
	s.order = s.order[:0]
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.NameCI = text.Fold(e.Name)
		s.entries[e.ID] = e
		s.order = append(s.order, e.ID)
	}
}

// CreateFolder adds a new folder entry with the given name.
func (s *Store) CreateFolder(name string) (models.Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Entry{}, ErrBlankName
	}

	now := time.Now().UTC()
	e := models.Entry{
		ID:         uuid.NewString(),
		Name:       name,
		NameCI:     text.Fold(name),
		Kind:       models.KindFolder,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)
	return e, nil
}

// Add appends an entry, assigning an ID if it has none. Upload completion
// uses this to turn finished staged uploads into file entries.
func (s *Store) Add(e models.Entry) models.Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.NameCI = text.Fold(e.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	s.order = append(s.order, e.ID)
	return e
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (models.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Rename updates an entry's name. ID and Kind never change; ModifiedAt is
// bumped. An absent id leaves the store untouched and returns ErrNotFound.
func (s *Store) Rename(id, newName string) (models.Entry, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return models.Entry{}, ErrBlankName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return models.Entry{}, ErrNotFound
	}
	e.Name = newName
	e.NameCI = text.Fold(newName)
	e.ModifiedAt = time.Now().UTC()
	s.entries[id] = e
	return e, nil
}

// Remove deletes an entry. An absent id is a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// ToggleFavorite flips an entry's favorite flag. An absent id is a no-op.
func (s *Store) ToggleFavorite(id string) (models.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return models.Entry{}, false
	}
	e.Favorite = !e.Favorite
	s.entries[id] = e
	return e, true
}

// List returns a snapshot of all entries in insertion order.
func (s *Store) List() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

// Count returns the number of entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
