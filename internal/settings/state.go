// Package settings holds the values the UI can change while the monitoring
// loop runs, and persists them.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"actiowatch/internal/domain"
	"actiowatch/internal/logger"
)

// State is read by the monitoring loop every tick and written by request
// handlers. Reads never block on writers for the notifications toggle.
type State struct {
	notifications atomic.Bool

	mu   sync.Mutex
	view string

	repo domain.SettingsRepository
	log  logger.Logger
}

// NewState returns a State with the given defaults. repo may be nil, in
// which case changes are kept in memory only.
func NewState(repo domain.SettingsRepository, log logger.Logger, notificationsEnabled bool) *State {
	s := &State{
		view: domain.DefaultView,
		repo: repo,
		log:  log,
	}
	s.notifications.Store(notificationsEnabled)
	return s
}

// Load replaces the defaults with persisted values, where present.
func (s *State) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	raw, err := s.repo.Get(ctx, domain.SettingNotificationsEnabled)
	switch {
	case err == nil:
		enabled, perr := strconv.ParseBool(raw)
		if perr != nil {
			s.log.Warn("settings: ignoring malformed value", "key", domain.SettingNotificationsEnabled, "value", raw)
		} else {
			s.notifications.Store(enabled)
		}
	case !errors.Is(err, domain.ErrSettingNotFound):
		return fmt.Errorf("load %s: %w", domain.SettingNotificationsEnabled, err)
	}

	view, err := s.repo.Get(ctx, domain.SettingCurrentView)
	switch {
	case err == nil:
		s.mu.Lock()
		s.view = view
		s.mu.Unlock()
	case !errors.Is(err, domain.ErrSettingNotFound):
		return fmt.Errorf("load %s: %w", domain.SettingCurrentView, err)
	}

	return nil
}

func (s *State) NotificationsEnabled() bool {
	return s.notifications.Load()
}

// SetNotificationsEnabled takes effect on the next tick even if persisting
// fails.
func (s *State) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	s.notifications.Store(enabled)

	if s.repo == nil {
		return nil
	}
	if err := s.repo.Set(ctx, domain.SettingNotificationsEnabled, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("persist %s: %w", domain.SettingNotificationsEnabled, err)
	}
	return nil
}

func (s *State) CurrentView() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *State) SetCurrentView(ctx context.Context, view string) error {
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	if err := s.repo.Set(ctx, domain.SettingCurrentView, view); err != nil {
		return fmt.Errorf("persist %s: %w", domain.SettingCurrentView, err)
	}
	return nil
}
