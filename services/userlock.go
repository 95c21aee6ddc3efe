package services

import (
	"sync"
)

// userLocks serializes queue resolution per user on this node. Row locks
// inside the pass transaction cover callers on other nodes.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the mutex for userID and returns its unlock func.
// Entries are never evicted.
func (l *userLocks) lock(userID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
