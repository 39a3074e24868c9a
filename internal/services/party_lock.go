package services

import (
	"context"
	"sync"
)

// PartyLocks serializes ledger writes per party within a process. Database
// row locks taken inside the write transactions cover other processes.
type PartyLocks struct {
	mu      sync.Mutex
	entries map[string]*partyLockEntry
}

type partyLockEntry struct {
	sem  chan struct{}
	refs int
}

// NewPartyLocks creates an empty lock table.
func NewPartyLocks() *PartyLocks {
	return &PartyLocks{entries: make(map[string]*partyLockEntry)}
}

// Acquire blocks until the lock for partyID is held or ctx is done.
// The returned function releases the lock and must be called exactly once.
func (l *PartyLocks) Acquire(ctx context.Context, partyID string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[partyID]
	if !ok {
		e = &partyLockEntry{sem: make(chan struct{}, 1)}
		l.entries[partyID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.release(partyID, e)
			})
		}, nil
	case <-ctx.Done():
		l.release(partyID, e)
		return nil, ctx.Err()
	}
}

func (l *PartyLocks) release(partyID string, e *partyLockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, partyID)
	}
}

// size reports how many parties currently have waiters or holders.
func (l *PartyLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
