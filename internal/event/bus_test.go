package event

import (
	"testing"

	"actiowatch/internal/logger"
)

func TestPublishInOrder(t *testing.T) {
	bus := New(logger.Nop())
	var got []string

	bus.Subscribe("stats-update", func(e any) { got = append(got, "a:"+e.(string)) })
	bus.Subscribe("stats-update", func(e any) { got = append(got, "b:"+e.(string)) })
	bus.Subscribe("other", func(any) { t.Error("unrelated handler called") })

	bus.Publish("stats-update", "x")

	if len(got) != 2 || got[0] != "a:x" || got[1] != "b:x" {
		t.Errorf("got %v", got)
	}
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := New(logger.Nop())
	called := false

	bus.Subscribe("stats-update", func(any) { panic("boom") })
	bus.Subscribe("stats-update", func(any) { called = true })

	bus.Publish("stats-update", nil)

	if !called {
		t.Error("second handler was skipped after a panic")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	New(logger.Nop()).Publish("nobody", 1)
}
