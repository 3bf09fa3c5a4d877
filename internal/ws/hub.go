// Package ws owns the websocket side of the service: the process-wide
// broadcast hub and the per-connection session pump.
package ws

import (
	"sync"

	"github.com/Ali506108/Chat-Service/internal/metrics"
)

// Subscriber is one registered outbound consumer of the hub. Its channel
// is closed exactly once when the subscription is revoked.
type Subscriber struct {
	ch chan []byte
}

// C is the ordered stream of broadcast frames for this subscriber.
func (s *Subscriber) C() <-chan []byte { return s.ch }

// Hub fans serialized messages out to every subscribed session. Publish
// never blocks on a slow consumer: a subscriber whose buffer is full
// misses the frame instead of stalling the rest.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 256
	}
	return &Hub{subs: make(map[*Subscriber]struct{}), buffer: buffer}
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe revokes the subscription and closes its channel. Calling it
// again for the same subscriber is a no-op.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	// Closing under the write lock keeps Publish, which sends under the
	// read lock, from racing a send against the close.
	close(sub.ch)
}

// Publish delivers the frame to every subscriber that has buffer room.
// Frames a subscriber does receive arrive in publish order.
func (h *Hub) Publish(frame []byte) {
	metrics.MessagesBroadcast.Inc()
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- frame:
		default:
			metrics.BroadcastDropped.Inc()
		}
	}
}

// Len reports the current subscriber count.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
