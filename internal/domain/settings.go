package domain

import (
	"context"
	"errors"
)

var ErrSettingNotFound = errors.New("setting not found")

const (
	SettingNotificationsEnabled = "notifications_enabled"
	SettingCurrentView          = "current_view"
)

const DefaultView = "process"

type NotificationsSetting struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type ViewSetting struct {
	View string `json:"view" validate:"required,oneof=process performance network startup settings"`
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
