package realtime

import (
	"sync"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
)

// Hub fans change events out to in-process subscribers. Every subscriber has
// a one-slot mailbox; when it is already full the new event is dropped, since
// the pending one already makes the subscriber re-read the whole snapshot.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]chan entity.ChangeEvent
	closed bool
}

func New() *Hub {
	return &Hub{
		subs: make(map[uint64]chan entity.ChangeEvent),
	}
}

func (h *Hub) Publish(event entity.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns the mailbox and a cancel func that must be called once
// the subscriber goes away. The mailbox is closed on cancel or Close.
func (h *Hub) Subscribe() (<-chan entity.ChangeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan entity.ChangeEvent, 1)
	if h.closed {
		close(ch)

		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
