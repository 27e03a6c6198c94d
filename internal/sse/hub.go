// Package sse pushes shop and party events to browsers over server-sent events.
package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
)

// Event is one message on the stream
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Client is a connected stream. Events is closed when the client is dropped.
type Client struct {
	ID     string
	Events chan Event
	types  mapset.Set[string] // nil receives everything
}

func (c *Client) accepts(eventType string) bool {
	return c.types == nil || c.types.Contains(eventType)
}

// Hub keeps the set of connected clients. Broadcasts are queued and fanned out
// by a single goroutine so publishers never block on slow readers.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool

	queue    chan Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		queue:   make(chan Event, BroadcastBufferSize),
		done:    make(chan struct{}),
	}
}

// Start launches the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.fanOut()
}

// Stop ends the fan-out loop and closes every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		h.closed = true
		for id, c := range h.clients {
			close(c.Events)
			delete(h.clients, id)
		}
		metrics.SSEClients.Set(0)
	})
}

func (h *Hub) fanOut() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case evt := <-h.queue:
			h.deliver(evt)
		}
	}
}

func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.accepts(evt.Type) {
			continue
		}
		select {
		case c.Events <- evt:
		default:
			metrics.SSEEventsDropped.Inc()
		}
	}
}

// Register connects a new client. With no types it receives every event.
// Registering on a stopped hub returns a client whose channel is already closed.
func (h *Hub) Register(types []string) *Client {
	c := &Client{
		ID:     uuid.NewString(),
		Events: make(chan Event, ClientEventBuffer),
	}
	if len(types) > 0 {
		c.types = mapset.NewThreadUnsafeSet(types...)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.Events)
		return c
	}
	h.clients[c.ID] = c
	metrics.SSEClients.Set(float64(len(h.clients)))
	return c
}

// Unregister drops a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	close(c.Events)
	delete(h.clients, clientID)
	metrics.SSEClients.Set(float64(len(h.clients)))
}

// Broadcast queues an event; it is dropped when the queue is full
func (h *Hub) Broadcast(eventType string, payload any, at time.Time) {
	evt := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: at.Unix(),
		Payload:   payload,
	}
	select {
	case h.queue <- evt:
	default:
		metrics.SSEEventsDropped.Inc()
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders evt in text/event-stream framing
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data), nil
}
