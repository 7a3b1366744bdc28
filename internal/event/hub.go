package event

import (
	"sync"
	
	"github.com/rs/zerolog/log"
)

const clientBuffer = 16

// Hub fans events out to the clients registered on their topic. A client
// that is not draining its channel misses events instead of blocking others.
type Hub struct {
	clients map[string]map[chan Event]bool
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[chan Event]bool),
	}
}

func (h *Hub) Register(topic string) chan Event {
	client := make(chan Event, clientBuffer)
	
	h.mu.Lock()
	if _, ok := h.clients[topic]; !ok {
		h.clients[topic] = make(map[chan Event]bool)
	}
	h.clients[topic][client] = true
	total := len(h.clients[topic])
	h.mu.Unlock()
	
	log.Info().Str("topic", topic).Int("clients", total).Msg("client registered")
	return client
}

// Unregister closes client. Calling it twice is safe.
func (h *Hub) Unregister(topic string, client chan Event) {
	h.mu.Lock()
	clients, ok := h.clients[topic]
	if ok && clients[client] {
		delete(clients, client)
		close(client)
		if len(clients) == 0 {
			delete(h.clients, topic)
		}
	}
	remaining := len(h.clients[topic])
	h.mu.Unlock()
	
	log.Info().Str("topic", topic).Int("clients", remaining).Msg("client unregistered")
}

func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	
	for client := range h.clients[event.Topic] {
		select {
		case client <- event:
		default:
			log.Warn().Str("topic", event.Topic).Str("type", event.Type).Msg("slow client dropped event")
		}
	}
}
