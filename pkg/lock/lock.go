package lock

import (
	"context"
	"sync"
)

// SessionLocker serializes work per session. Lock blocks until the
// session lock is held or ctx is done, and returns the release func.
type SessionLocker interface {
	Lock(ctx context.Context, sessionID string) (func(), error)
}

// KeyedMutex implements SessionLocker in-process with one mutex per key.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewKeyedMutex creates a new KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		slots: make(map[string]chan struct{}),
	}
}

// Lock acquires the lock for sessionID, waiting until it is free.
func (k *KeyedMutex) Lock(ctx context.Context, sessionID string) (func(), error) {
	k.mu.Lock()
	slot, ok := k.slots[sessionID]
	if !ok {
		slot = make(chan struct{}, 1)
		k.slots[sessionID] = slot
	}
	k.mu.Unlock()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
