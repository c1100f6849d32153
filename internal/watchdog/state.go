package watchdog

import (
	"time"

	"actiowatch/internal/domain"
)

// State is owned by the monitoring loop and handed to Evaluate every tick.
// It is not safe for concurrent use.
type State struct {
	cpu    streak
	memory streak

	// notified holds processes already reported for high memory, mapped to
	// the number of consecutive ticks they have been missing from the forest.
	notified map[domain.ProcessIdentity]int
}

type streak struct {
	count int
	last  time.Time
}

func NewState() *State {
	return &State{notified: make(map[domain.ProcessIdentity]int)}
}

// observe advances the breach counter and reports whether a notification
// is due. A fire resets the counter even when the cooldown suppresses it.
func (s *streak) observe(breach bool, length int, now time.Time) bool {
	if !breach {
		s.count = 0
		return false
	}

	s.count++
	if s.count < length {
		return false
	}
	s.count = 0

	if !s.last.IsZero() && now.Sub(s.last) < Cooldown {
		return false
	}
	s.last = now
	return true
}
