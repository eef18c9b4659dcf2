// Package motion schedules the visual travel of cards between slots.
//
// Motions never carry game state. The engine commits the logical move first
// and then schedules a motion so a view can animate it; the scheduler only
// holds the card id until the completion callback has run.
package motion

import (
	"time"

	"github.com/google/uuid"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
)

// DefaultDuration is the travel time used when a motion does not set one.
const DefaultDuration = 300 * time.Millisecond

// Motion is one card travelling from one slot position to another.
type Motion struct {
	ID       string
	CardID   cards.ID
	From     zones.Vec2
	To       zones.Vec2
	Duration time.Duration
}

// New builds a motion with a fresh id.
func New(cardID cards.ID, from, to zones.Vec2, duration time.Duration) Motion {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Motion{
		ID:       uuid.NewString(),
		CardID:   cardID,
		From:     from,
		To:       to,
		Duration: duration,
	}
}

// DoneFunc runs exactly once when a motion completes.
type DoneFunc func(Motion)

// Scheduler runs motions. Implementations are single-threaded.
type Scheduler interface {
	// Schedule starts m and arranges for done to run when it completes.
	Schedule(m Motion, done DoneFunc)
	// Settle completes every in-flight motion of cardID right away and
	// returns how many were completed.
	Settle(cardID cards.ID) int
	// InFlight reports whether cardID has an unfinished motion.
	InFlight(cardID cards.ID) bool
	// Flush completes everything still in flight.
	Flush() int
}

// Immediate completes every motion inside Schedule.
type Immediate struct{}

// Schedule runs done synchronously.
func (Immediate) Schedule(m Motion, done DoneFunc) {
	if done != nil {
		done(m)
	}
}

// Settle has nothing to settle.
func (Immediate) Settle(cards.ID) int { return 0 }

// InFlight is always false.
func (Immediate) InFlight(cards.ID) bool { return false }

// Flush has nothing to flush.
func (Immediate) Flush() int { return 0 }
