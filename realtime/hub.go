// Package realtime pushes chat events to subscribed portal sessions over
// sockjs. The hub is owned by main and injected where needed; its lifetime is
// the lifetime of the process, and each socket's subscriptions die with the
// socket.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

type Client struct {
	ID       string
	Send     chan []byte
	channels map[string]bool
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) Register(id string) *Client {
	client := &Client{ID: id, Send: make(chan []byte, 16), channels: make(map[string]bool)}
	h.mu.Lock()
	h.clients[id] = client
	h.mu.Unlock()
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) Subscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client.channels[channel] = true
}

func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(client.channels, channel)
}

// HasSubscriber reports whether any connected socket listens on channel.
func (h *Hub) HasSubscriber(channel string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.channels[channel] {
			return true
		}
	}
	return false
}

type Event struct {
	Channel   string      `json:"channel"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	CreatedAt time.Time   `json:"created_at"`
}

// Publish fans the event out to every subscriber of its channel. Slow
// consumers are skipped rather than blocking the sender.
func (h *Hub) Publish(channel, event string, data interface{}) {
	payload, err := json.Marshal(Event{Channel: channel, Event: event, Data: data, CreatedAt: time.Now().UTC()})
	if err != nil {
		log.Printf("realtime marshal error: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.channels[channel] {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			log.Printf("drop realtime event for client %s", client.ID)
		}
	}
}
