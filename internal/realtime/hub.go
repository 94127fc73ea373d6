// Package realtime pushes thread and notification events to connected web
// clients over WebSocket. Events are published onto per-user Redis channels
// so delivery works across server instances. Delivery is best-effort; the
// inbox endpoints remain the source of truth.
package realtime

import (
	"strings"

	"github.com/redis/go-redis/v9"

	"obnavi/backend/internal/logger"
)

// Event is an opaque JSON payload headed for one user.
type Event struct {
	UserID  string
	Payload []byte
}

// Subscriber provides the cross-instance event feed.
type Subscriber interface {
	SubscribeUserEvents() *redis.PubSub
}

// Hub tracks connected clients and fans events out to them.
type Hub struct {
	clients map[string][]*Client

	registerCh   chan *Client
	unregisterCh chan *Client
	eventCh      chan Event

	subscriber Subscriber
}

// NewHub constructs the hub.
func NewHub(sub Subscriber) *Hub {
	return &Hub{
		clients:      make(map[string][]*Client),
		registerCh:   make(chan *Client),
		unregisterCh: make(chan *Client),
		eventCh:      make(chan Event, 64),
		subscriber:   sub,
	}
}

// Register attaches a connected client.
func (h *Hub) Register(c *Client) {
	h.registerCh <- c
}

// Unregister detaches a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.unregisterCh <- c
}

// Run is the hub dispatch loop. Start it in its own goroutine.
func (h *Hub) Run() {
	h.startPubSubListener()

	for {
		select {
		case c := <-h.registerCh:
			h.clients[c.UserID] = append(h.clients[c.UserID], c)

		case c := <-h.unregisterCh:
			conns := h.clients[c.UserID]
			for i, existing := range conns {
				if existing == c {
					h.clients[c.UserID] = append(conns[:i], conns[i+1:]...)
					close(c.Send)
					break
				}
			}
			if len(h.clients[c.UserID]) == 0 {
				delete(h.clients, c.UserID)
			}

		case ev := <-h.eventCh:
			for _, c := range h.clients[ev.UserID] {
				select {
				case c.Send <- ev.Payload:
				default:
					// Slow client: drop the event rather than block the hub.
					logger.Log.Debugf("dropping realtime event for slow client %s", ev.UserID)
				}
			}
		}
	}
}

// startPubSubListener bridges the Redis channels into the hub loop.
func (h *Hub) startPubSubListener() {
	go func() {
		pubsub := h.subscriber.SubscribeUserEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			userID := strings.TrimPrefix(msg.Channel, "user_events:")
			if userID == "" || userID == msg.Channel {
				continue
			}
			h.eventCh <- Event{UserID: userID, Payload: []byte(msg.Payload)}
		}
	}()
}
