// Package bookmarks maintains the persisted bookmark set: an ordered
// list of market identifiers kept in a kvstore entry and rewritten in
// full on every mutation.
package bookmarks

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"polyscope/internal/kvstore"
)

// StorageKey is the kvstore entry holding the bookmark list.
const StorageKey = "polyscope_bookmarks"

// Store is the persisted ordered set of bookmarked market ids.
// Insertion order is display order; ids are unique.
type Store struct {
	store  kvstore.Store
	ids    []string
	member map[string]bool
	logger zerolog.Logger
}

// NewStore loads the bookmark set from kv. Absent or malformed data
// initializes an empty set; load never fails.
func NewStore(kv kvstore.Store) *Store {
	s := &Store{
		store:  kv,
		member: make(map[string]bool),
		logger: log.With().Str("component", "bookmarks").Logger(),
	}

	data, err := kv.Get(StorageKey)
	if err != nil {
		return s
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt bookmark data, resetting to empty")
		return s
	}

	for _, id := range ids {
		if id == "" || s.member[id] {
			continue
		}
		s.ids = append(s.ids, id)
		s.member[id] = true
	}
	return s
}

// Toggle removes id when present, appends it otherwise, and persists
// the resulting set before returning. The returned bool reports whether
// the id is a member after the call.
func (s *Store) Toggle(id string) bool {
	if s.member[id] {
		kept := make([]string, 0, len(s.ids)-1)
		for _, existing := range s.ids {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		s.ids = kept
		delete(s.member, id)
	} else {
		s.ids = append(s.ids, id)
		s.member[id] = true
	}

	s.persist()
	return s.member[id]
}

// Contains reports whether id is bookmarked.
func (s *Store) Contains(id string) bool {
	return s.member[id]
}

// List returns a snapshot of the current ordered identifiers.
func (s *Store) List() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.ids)
}

// persist re-serializes the full set into the kvstore entry. A write
// failure is logged; the in-memory set stays authoritative for the
// session.
func (s *Store) persist() {
	list := s.ids
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal bookmarks")
		return
	}
	if err := s.store.Set(StorageKey, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist bookmarks")
	}
}
