package render

import (
	"sync"
	"time"
)

const (
	clientBuffer = 10
	sendTimeout  = time.Second
)

// Hub fans events out to subscribers, typically SSE connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
	last    *Event
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan Event]struct{})}
}

// Subscribe returns a channel of events and a function to leave. The most
// recent event, if any, is delivered first.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	if h.last != nil {
		ch <- *h.last
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients, ch)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends ev to every subscriber. Clients that stay full for longer
// than the send timeout miss the event.
func (h *Hub) Publish(ev Event) int {
	h.mu.Lock()
	h.last = &ev
	clients := make([]chan Event, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	sent := 0
	for _, c := range clients {
		select {
		case c <- ev:
			sent++
		case <-time.After(sendTimeout):
		}
	}
	return sent
}
