package db

import (
	"sync"

	"github.com/balkashynov/questlog/internal/models"
)

// The broker is an observer over store mutations. Invalidation is coarse:
// any committed write to a table wakes every subscription on that table
// (event subscriptions additionally filter by session). Subscribers
// re-query on wake, so they always see committed state and never a
// partial write.

type watchTable string

const (
	tableSessions watchTable = "sessions"
	tableEvents   watchTable = "events"
)

type subscription struct {
	table     watchTable
	sessionID string        // events only; empty matches every session
	wake      chan struct{} // buffered(1), coalesced
}

type broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscription
}

func newBroker() *broker {
	return &broker{subs: make(map[int]*subscription)}
}

func (b *broker) subscribe(table watchTable, sessionID string) (int, *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{
		table:     table,
		sessionID: sessionID,
		wake:      make(chan struct{}, 1),
	}
	b.subs[b.nextID] = sub
	return b.nextID, sub
}

func (b *broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// publish wakes matching subscriptions without ever blocking the writer.
// Pending wakes coalesce: a subscriber that is behind re-queries once.
func (b *broker) publish(table watchTable, sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.table != table {
			continue
		}
		if sub.table == tableEvents && sub.sessionID != "" && sessionID != "" && sub.sessionID != sessionID {
			continue
		}
		select {
		case sub.wake <- struct{}{}:
		default:
		}
	}
}

// WatchSessions emits the current session list immediately and again after
// every committed session write, newest first. The cancel func releases
// the subscription and closes the channel.
func (s *Store) WatchSessions() (<-chan []models.Session, func()) {
	id, sub := s.broker.subscribe(tableSessions, "")
	out := make(chan []models.Session, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			sessions, err := s.Sessions()
			if err == nil {
				deliverLatest(out, done, sessions)
			}
			select {
			case <-sub.wake:
			case <-done:
				return
			}
		}
	}()

	return out, func() {
		s.broker.unsubscribe(id)
		close(done)
	}
}

// WatchEvents emits the current event list for a session immediately and
// again after every committed event write affecting it, newest first
func (s *Store) WatchEvents(sessionID string) (<-chan []models.Event, func()) {
	id, sub := s.broker.subscribe(tableEvents, sessionID)
	out := make(chan []models.Event, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			events, err := s.Events(sessionID)
			if err == nil {
				deliverLatest(out, done, events)
			}
			select {
			case <-sub.wake:
			case <-done:
				return
			}
		}
	}()

	return out, func() {
		s.broker.unsubscribe(id)
		close(done)
	}
}

// deliverLatest sends on a buffered(1) channel, replacing a stale pending
// result so a slow consumer only ever reads the newest snapshot
func deliverLatest[T any](out chan T, done <-chan struct{}, value T) {
	for {
		select {
		case out <- value:
			return
		case <-done:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
