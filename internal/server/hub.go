package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ayusman/airdesk/internal/session"
)

// Hub holds the latest published state. The frame loop publishes; HTTP
// handlers read. Everything handed out is a copy or immutable.
type Hub struct {
	mu       sync.Mutex
	snapshot []byte
	frame    []byte
	seq      uint64
	changed  chan struct{}
	subs     map[chan []byte]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		changed: make(chan struct{}),
		subs:    make(map[chan []byte]struct{}),
	}
}

// Publish stores a new snapshot and optional JPEG frame and wakes readers.
// A subscriber still holding an unread snapshot misses this one.
func (h *Hub) Publish(snap session.Snapshot, jpeg []byte) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.snapshot = data
	if jpeg != nil {
		h.frame = jpeg
	}
	h.seq++
	close(h.changed)
	h.changed = make(chan struct{})

	for ch := range h.subs {
		select {
		case ch <- data:
		default:
		}
	}
	return nil
}

// Snapshot returns the latest snapshot as JSON, or nil before the first publish.
func (h *Hub) Snapshot() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshot
}

// NextFrame blocks until a frame newer than after is published and returns
// it with its sequence number.
func (h *Hub) NextFrame(ctx context.Context, after uint64) ([]byte, uint64, error) {
	for {
		h.mu.Lock()
		if h.seq > after && h.frame != nil {
			frame, seq := h.frame, h.seq
			h.mu.Unlock()
			return frame, seq, nil
		}
		changed := h.changed
		h.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, after, ctx.Err()
		case <-changed:
		}
	}
}

// Subscribe returns a channel of snapshots, primed with the latest one, and
// a function that ends the subscription.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	if h.snapshot != nil {
		ch <- h.snapshot
	}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
