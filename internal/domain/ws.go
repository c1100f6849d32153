package domain

import (
	"encoding/json"
)

const (
	WsChannelStats         = "stats"
	WsChannelNotifications = "notifications"
)

const (
	WsEventStatsUpdate  = "stats-update"
	WsEventNotification = "notification"
)

const (
	WsSubscribe   = "subscribe"
	WsUnsubscribe = "unsubscribe"
)

type WsClientMessage struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WsServerEvent struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}
