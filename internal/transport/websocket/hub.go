// Package websocket pushes snapshots and notifications to connected UI
// clients. Clients subscribe to channels; events go only to subscribers.
package websocket

import (
	"context"
	"encoding/json"

	"actiowatch/internal/domain"
	"actiowatch/internal/logger"
)

type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan *Subscription
	unsubscribe chan *Subscription
	events      chan *domain.WsServerEvent

	log logger.Logger
}

type Subscription struct {
	client  *Client
	channel string
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients:  make(map[*Client]bool),
		channels: make(map[string]map[*Client]bool),

		register:    make(chan *Client, 64),
		unregister:  make(chan *Client, 64),
		subscribe:   make(chan *Subscription, 64),
		unsubscribe: make(chan *Subscription, 64),
		events:      make(chan *domain.WsServerEvent, 64),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down", "clients", len(h.clients))
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			return

		case c := <-h.register:
			h.clients[c] = true
			c.log.Info("ws: client registered")

		case c := <-h.unregister:
			h.remove(c)

		case sub := <-h.subscribe:
			if !h.clients[sub.client] {
				continue
			}
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]bool)
			}
			h.channels[sub.channel][sub.client] = true

		case sub := <-h.unsubscribe:
			h.leave(sub.client, sub.channel)

		case ev := <-h.events:
			h.handleEvent(ev)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Broadcast queues ev for delivery and never blocks. When the queue is full
// the event is dropped; the next snapshot supersedes it anyway.
func (h *Hub) Broadcast(ev *domain.WsServerEvent) {
	select {
	case h.events <- ev:
	case <-h.ctx.Done():
	default:
		h.log.Warn("ws: broadcast buffer full, dropping event", "event", ev.Event)
	}
}

func (h *Hub) enqueue(ch chan *Subscription, sub *Subscription) {
	select {
	case ch <- sub:
	case <-h.ctx.Done():
	}
}

func (h *Hub) enqueueRegister(c *Client) {
	select {
	case h.register <- c:
	case <-h.ctx.Done():
		close(c.send)
	}
}

func (h *Hub) enqueueUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

func (h *Hub) remove(c *Client) {
	if !h.clients[c] {
		return
	}

	delete(h.clients, c)
	close(c.send)
	c.log.Info("ws: client unregistered")

	for channel := range h.channels {
		h.leave(c, channel)
	}
}

func (h *Hub) leave(c *Client, channel string) {
	subs, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.channels, channel)
	}
}

func (h *Hub) handleEvent(ev *domain.WsServerEvent) {
	subs, ok := h.channels[ev.Channel]
	if !ok {
		return
	}

	message, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("ws: failed to marshal server event", "event", ev.Event, "error", err)
		return
	}

	for client := range subs {
		select {
		case client.send <- message:
		default:
			client.log.Warn("ws: client send buffer full, disconnecting")
			h.remove(client)
		}
	}
}
