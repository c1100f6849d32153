// Package event is a small synchronous publish/subscribe bus.
package event

import (
	"sync"

	"actiowatch/internal/logger"
)

type Handler func(event any)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      logger.Logger
}

func New(log logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish calls every handler of name in subscription order on the calling
// goroutine. Handlers must not block. A panicking handler is logged and the
// remaining handlers still run.
func (b *Bus) Publish(name string, event any) {
	b.mu.RLock()
	handlers := b.handlers[name]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.call(name, h, event)
	}
}

func (b *Bus) call(name string, h Handler, event any) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event: handler panicked", "event", name, "panic", r)
		}
	}()
	h(event)
}
