package session

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// locks мьютексы по sessionID со счетчиком ссылок, неиспользуемые удаляются
type locks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

func newLocks() *locks {
	return &locks{entries: make(map[string]*lockEntry)}
}

func (l *locks) acquire(sessionID string) *lockEntry {
	l.mu.Lock()
	entry, ok := l.entries[sessionID]
	if !ok {
		entry = &lockEntry{}
		l.entries[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return entry
}

func (l *locks) release(sessionID string, entry *lockEntry) {
	entry.mu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs <= 0 {
		delete(l.entries, sessionID)
	}
}

func (l *locks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
