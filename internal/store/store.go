// Package store holds the latest accepted snapshot per monitored host. It is
// the only shared mutable state in the service.
package store

import (
	"sync"
	"time"

	"fleetmon/internal/models"
)

// Record pairs a snapshot with its server-assigned arrival time. The Report
// pointer is immutable once stored; readers and writers exchange whole
// records, never individual fields.
type Record struct {
	Alias      string
	Report     *models.Report
	ReceivedAt time.Time
}

// Store is a keyed map of alias to latest record. The outer lock guards only
// the map structure; each key carries its own lock whose critical section is
// a pointer swap, so writes to unrelated aliases do not serialize against
// each other.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu  sync.RWMutex
	rec *Record
}

func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) entryFor(alias string) *entry {
	s.mu.RLock()
	e, ok := s.entries[alias]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[alias]; ok {
		return e
	}
	e = &entry{}
	s.entries[alias] = e
	return e
}

// Upsert replaces the alias's snapshot in whole. A record that arrives with
// an older acceptance time than the one already stored is dropped, so a
// delayed in-flight write can never clobber a later one.
func (s *Store) Upsert(alias string, report *models.Report, receivedAt time.Time) {
	e := s.entryFor(alias)
	e.mu.Lock()
	if e.rec == nil || !receivedAt.Before(e.rec.ReceivedAt) {
		e.rec = &Record{Alias: alias, Report: report, ReceivedAt: receivedAt}
	}
	e.mu.Unlock()
}

// Get returns the latest record for alias, or false when the alias is
// unknown.
func (s *Store) Get(alias string) (*Record, bool) {
	s.mu.RLock()
	e, ok := s.entries[alias]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	e.mu.RLock()
	rec := e.rec
	e.mu.RUnlock()
	if rec == nil {
		return nil, false
	}
	return rec, true
}

// List returns every known record. Each record is internally consistent, but
// the listing as a whole reflects whatever writes have completed by the time
// their keys are visited.
func (s *Store) List() []*Record {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	records := make([]*Record, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		rec := e.rec
		e.mu.RUnlock()
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records
}

// Delete removes the alias entirely. Returns false when the alias was not
// present.
func (s *Store) Delete(alias string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[alias]; !ok {
		return false
	}
	delete(s.entries, alias)
	return true
}

// Len reports how many hosts are currently known.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
