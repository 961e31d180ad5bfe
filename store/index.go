package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IndexFile is the session index's name inside a record directory.
const IndexFile = "sessions.log"

// SessionEntry is one finished session.
type SessionEntry struct {
	ID   uuid.UUID
	Path string
}

// SessionIndex lists finished sessions in the order they were written.
// It is backed by an append-only file with one "<id> <path>" pair per line.
//
// Malformed lines are skipped on load, so a crash mid-append only loses the
// last entry.
type SessionIndex struct {
	mu      sync.RWMutex
	path    string
	file    *os.File
	entries []SessionEntry
	seen    map[uuid.UUID]struct{}
}

func OpenSessionIndex(path string) (*SessionIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("index path is required")
	}

	idx := &SessionIndex{path: path, seen: make(map[uuid.UUID]struct{})}
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) != 2 {
				continue
			}
			id, err := uuid.Parse(fields[0])
			if err != nil {
				continue
			}
			idx.remember(SessionEntry{ID: id, Path: fields[1]})
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	idx.file = file
	return idx, nil
}

func (l *SessionIndex) remember(e SessionEntry) {
	if _, ok := l.seen[e.ID]; ok {
		return
	}
	l.seen[e.ID] = struct{}{}
	l.entries = append(l.entries, e)
}

func (l *SessionIndex) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *SessionIndex) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Latest returns the most recently added session.
func (l *SessionIndex) Latest() (SessionEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return SessionEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Lookup finds a session by id.
func (l *SessionIndex) Lookup(id uuid.UUID) (SessionEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return SessionEntry{}, false
}

// Add appends a session and syncs. Re-adding a known id is a no-op.
func (l *SessionIndex) Add(id uuid.UUID, path string) error {
	if path == "" || strings.ContainsAny(path, " \n") {
		return fmt.Errorf("invalid session path %q", path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[id]; ok {
		return nil
	}
	if l.file == nil {
		return fmt.Errorf("index file is closed")
	}
	if _, err := fmt.Fprintf(l.file, "%s %s\n", id, path); err != nil {
		return fmt.Errorf("append index: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync index: %w", err)
	}
	l.remember(SessionEntry{ID: id, Path: path})
	return nil
}
