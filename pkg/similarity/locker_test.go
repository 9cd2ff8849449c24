package similarity

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionLockerSerializesSameSession(t *testing.T) {
	locker := NewSessionLocker()
	sessionId := uuid.New()

	var inCritical int
	var maxConcurrent int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock(sessionId)
			defer unlock()

			mu.Lock()
			inCritical++
			if inCritical > maxConcurrent {
				maxConcurrent = inCritical
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxConcurrent != 1 {
		t.Errorf("maxConcurrent = %d, want 1", maxConcurrent)
	}
}

func TestSessionLockerAllowsDifferentSessions(t *testing.T) {
	locker := NewSessionLocker()

	unlockA := locker.Lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locker.Lock(uuid.New())
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second session blocked behind the first session's lock")
	}
}

func TestSessionLockerDropsEntriesAfterUnlock(t *testing.T) {
	locker := NewSessionLocker()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		sessionId := uuid.New()
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locker.Lock(sessionId)
				time.Sleep(time.Millisecond)
				unlock()
			}()
		}
	}
	wg.Wait()

	locker.mu.Lock()
	remaining := len(locker.locks)
	locker.mu.Unlock()
	if remaining != 0 {
		t.Errorf("len(locks) = %d after all unlocks, want 0", remaining)
	}
}
