package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"actiowatch/internal/domain"
	"actiowatch/internal/event"
	"actiowatch/internal/logger"
)

type failing struct{ err error }

func (f failing) Notify(context.Context, domain.Notification) error { return f.err }

type counting struct{ n int }

func (c *counting) Notify(context.Context, domain.Notification) error {
	c.n++
	return nil
}

func TestMultiDeliversToAll(t *testing.T) {
	boom := errors.New("no notification daemon")
	after := &counting{}
	m := Multi{failing{boom}, NewLog(logger.Nop()), after}

	err := m.Notify(context.Background(), domain.Notification{Title: "t"})

	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want it to wrap %v", err, boom)
	}
	if after.n != 1 {
		t.Error("notifier after a failing one was skipped")
	}
}

func TestBusPublishesNotification(t *testing.T) {
	bus := event.New(logger.Nop())
	var got domain.Notification
	bus.Subscribe(domain.WsEventNotification, func(e any) { got = e.(domain.Notification) })

	if err := NewBus(bus).Notify(context.Background(), domain.Notification{Title: "Memory Alert"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got.Title != "Memory Alert" {
		t.Errorf("subscriber got %+v", got)
	}
}

func TestDesktopPassesIcon(t *testing.T) {
	var gotIcon any
	d := &Desktop{show: func(_, _ string, icon any) error {
		gotIcon = icon
		return nil
	}}

	d.Notify(context.Background(), domain.Notification{Icon: "/opt/aw/icon.png"})

	if gotIcon != "/opt/aw/icon.png" {
		t.Errorf("icon = %v", gotIcon)
	}
}

func TestResolveIcon(t *testing.T) {
	if got := ResolveIcon("/custom.png"); got != "/custom.png" {
		t.Errorf("configured icon ignored: %q", got)
	}

	dir := t.TempDir()
	t.Chdir(dir)

	if got := ResolveIcon(""); got != "" {
		t.Errorf("no icon on disk, got %q", got)
	}

	if err := os.MkdirAll(filepath.Join(dir, "icons"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "icons", "icon.png"), []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "icons", "icon.png")
	if got := ResolveIcon(""); got != want {
		t.Errorf("ResolveIcon = %q, want %q", got, want)
	}
}

type savingRepo struct{ saved []domain.Notification }

func (r *savingRepo) Save(_ context.Context, n domain.Notification) error {
	r.saved = append(r.saved, n)
	return nil
}

func (r *savingRepo) Recent(context.Context, int) ([]domain.Notification, error) { return r.saved, nil }

func (r *savingRepo) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

func TestHistorySaves(t *testing.T) {
	repo := &savingRepo{}

	if err := NewHistory(repo).Notify(context.Background(), domain.Notification{Kind: domain.AlertHighCPU}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].Kind != domain.AlertHighCPU {
		t.Errorf("saved = %+v", repo.saved)
	}
}
