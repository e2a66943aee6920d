// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sync"

	"github.com/danielhkuo/livevote/models"
)

// Hub fans snapshots out to subscribers.
//
// Each subscriber channel holds at most one pending snapshot. A slow
// subscriber only ever sees the newest one; intermediate snapshots are
// dropped since every snapshot carries the whole collection.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan models.Snapshot
	nextID int
	last   *models.Snapshot
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan models.Snapshot)}
}

// Subscribe registers a subscriber. If a snapshot was already published,
// it is delivered right away. The returned cancel func closes the channel.
func (h *Hub) Subscribe() (<-chan models.Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan models.Snapshot, 1)
	if h.last != nil {
		ch <- *h.last
	}
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers snap to every subscriber without blocking
func (h *Hub) Publish(snap models.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = &snap
	for _, ch := range h.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale pending snapshot
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

// Last returns the most recently published snapshot
func (h *Hub) Last() (models.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.last == nil {
		return models.Snapshot{}, false
	}
	return *h.last, true
}

// Subscribers returns the number of live subscribers
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
