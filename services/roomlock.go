package services

import (
	"context"
	"sync"
)

// RoomLocker hands out one exclusive lock per room id. It serializes
// booking transactions targeting the same room while leaving different
// rooms fully concurrent, mirroring a row-level lock for callers inside
// this process. Waiters abandon the queue when their context is done.
type RoomLocker struct {
	mu    sync.Mutex
	rooms map[uint]chan struct{}
}

func NewRoomLocker() *RoomLocker {
	return &RoomLocker{rooms: make(map[uint]chan struct{})}
}

// Lock blocks until the room's lock is free or ctx is done. On success it
// returns the release function; the caller must invoke it exactly once.
func (l *RoomLocker) Lock(ctx context.Context, roomID uint) (func(), error) {
	l.mu.Lock()
	sem, ok := l.rooms[roomID]
	if !ok {
		sem = make(chan struct{}, 1)
		l.rooms[roomID] = sem
	}
	l.mu.Unlock()

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
