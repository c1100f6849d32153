package websocket

import (
	"actiowatch/internal/domain"
	"actiowatch/internal/event"
)

type EventBus interface {
	Subscribe(name string, h event.Handler)
}

// Register forwards bus events to the hub channels clients subscribe to.
func Register(bus EventBus, hub *Hub) {
	bus.Subscribe(domain.WsEventStatsUpdate, func(e any) {
		snap, ok := e.(domain.SystemSnapshot)
		if !ok {
			return
		}
		hub.Broadcast(&domain.WsServerEvent{
			Channel: domain.WsChannelStats,
			Event:   domain.WsEventStatsUpdate,
			Payload: snap,
		})
	})

	bus.Subscribe(domain.WsEventNotification, func(e any) {
		n, ok := e.(domain.Notification)
		if !ok {
			return
		}
		hub.Broadcast(&domain.WsServerEvent{
			Channel: domain.WsChannelNotifications,
			Event:   domain.WsEventNotification,
			Payload: n,
		})
	})
}
