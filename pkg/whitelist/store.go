// Package whitelist tracks, per session, the last fingerprint of every file
// the session has read or successfully written. The store is the sole gate
// for write authorization: an edit to an existing file is allowed only while
// a matching entry exists for its (session, path) key.
package whitelist

import (
	"sync"
	"time"

	"github.com/hamzaessahbaoui/editkit/pkg/fingerprint"
)

// Verdict is the result of checking an on-disk fingerprint against the store.
type Verdict int

const (
	// Unknown means the session has never read or written the path.
	Unknown Verdict = iota
	// Stale means an entry exists but the file changed since it was observed.
	Stale
	// Fresh means the recorded fingerprint matches what is on disk now.
	Fresh
)

func (v Verdict) String() string {
	switch v {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Entry is the last observation of a file by a session.
type Entry struct {
	Path        string
	Fingerprint fingerprint.Fingerprint
	ObservedAt  time.Time
	SessionID   string
}

type key struct {
	session string
	path    string
}

// Store is a per-session map from canonical path to the last observed
// fingerprint. It is safe for concurrent use by multiple sessions; a single
// RWMutex serializes writes, which is enough given the low contention of
// one sequential caller per session.
type Store struct {
	mu      sync.RWMutex
	entries map[key]Entry
}

// NewStore returns an empty store. Entries never survive the process; a fresh
// process treats every file as Unknown until read or created.
func NewStore() *Store {
	return &Store{entries: make(map[key]Entry)}
}

// Record inserts or overwrites the entry for (session, path). It never fails.
func (s *Store) Record(session, path string, fp fingerprint.Fingerprint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key{session, path}] = Entry{
		Path:        path,
		Fingerprint: fp,
		ObservedAt:  time.Now(),
		SessionID:   session,
	}
}

// Verify compares the fingerprint currently on disk against the session's
// last observation of the path.
func (s *Store) Verify(session, path string, onDisk fingerprint.Fingerprint) Verdict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key{session, path}]
	if !ok {
		return Unknown
	}
	if entry.Fingerprint != onDisk {
		return Stale
	}
	return Fresh
}

// Lookup returns the entry for (session, path) if one exists.
func (s *Store) Lookup(session, path string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key{session, path}]
	return entry, ok
}

// RemoveSession drops every entry belonging to a session and reports how
// many were removed. Called on session teardown by the lifecycle owner.
func (s *Store) RemoveSession(session string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k := range s.entries {
		if k.session == session {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries across all sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
