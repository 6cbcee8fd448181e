package services

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRoomLockerMutualExclusion(t *testing.T) {
	l := NewRoomLocker()

	const goroutines = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), 7)
			if err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			defer unlock()

			mu.Lock()
			holders++
			if holders > maxSeen {
				maxSeen = holders
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
}

func TestRoomLockerDifferentRoomsDoNotBlock(t *testing.T) {
	l := NewRoomLocker()

	unlockA, err := l.Lock(context.Background(), 1)
	if err != nil {
		t.Fatalf("Lock room 1: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, 2)
	if err != nil {
		t.Fatalf("Lock room 2 while room 1 held: %v", err)
	}
	unlockB()
}

func TestRoomLockerContextCancelWhileWaiting(t *testing.T) {
	l := NewRoomLocker()

	unlock, err := l.Lock(context.Background(), 3)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, 3); err != context.DeadlineExceeded {
		t.Errorf("waiting Lock err = %v, want context.DeadlineExceeded", err)
	}

	// The lock must still be usable after an abandoned wait.
	unlock()
	unlock2, err := l.Lock(context.Background(), 3)
	if err != nil {
		t.Fatalf("relock after abandoned wait: %v", err)
	}
	unlock2()
}
