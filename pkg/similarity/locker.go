package similarity

import (
	"sync"

	"github.com/google/uuid"
)

// SessionLocker serializes placement decisions per session while letting
// different sessions proceed in parallel. Embedding and model calls must
// happen before taking the lock; only compare-and-assign runs under it.
//
// Entries are refcounted and removed once the last holder unlocks, so the
// map stays proportional to the sessions with in-flight uploads rather
// than every session ever seen.
type SessionLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionLocker() *SessionLocker {
	return &SessionLocker{
		locks: make(map[uuid.UUID]*sessionLock),
	}
}

// Lock acquires the lock for one session and returns the unlock function.
func (l *SessionLocker) Lock(sessionId uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.locks[sessionId]
	if !ok {
		lock = &sessionLock{}
		l.locks[sessionId] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, sessionId)
		}
		l.mu.Unlock()
	}
}
