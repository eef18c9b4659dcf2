package motion

import (
	"time"

	"go.uber.org/zap"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
)

type pending struct {
	motion  Motion
	elapsed time.Duration
	done    DoneFunc
}

// Queue holds motions until a clock tick, a settle point or a flush
// completes them. Completion callbacks run in scheduling order.
type Queue struct {
	logger *zap.Logger
	items  []pending
}

// NewQueue creates an empty queue.
func NewQueue(logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{logger: logger}
}

// Schedule appends m to the queue.
func (q *Queue) Schedule(m Motion, done DoneFunc) {
	q.items = append(q.items, pending{motion: m, done: done})
	q.logger.Debug("motion scheduled",
		zap.String("motion_id", m.ID),
		zap.Int("card_id", int(m.CardID)),
		zap.Duration("duration", m.Duration),
	)
}

// Advance moves the clock forward and completes every motion whose
// duration has elapsed. It returns the number completed.
func (q *Queue) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	for i := range q.items {
		q.items[i].elapsed += elapsed
	}
	return q.complete(func(p pending) bool { return p.elapsed >= p.motion.Duration })
}

// Settle completes every motion of cardID.
func (q *Queue) Settle(cardID cards.ID) int {
	n := q.complete(func(p pending) bool { return p.motion.CardID == cardID })
	if n > 0 {
		q.logger.Debug("motions settled", zap.Int("card_id", int(cardID)), zap.Int("count", n))
	}
	return n
}

// Flush completes everything still queued.
func (q *Queue) Flush() int {
	return q.complete(func(pending) bool { return true })
}

// InFlight reports whether cardID has a queued motion.
func (q *Queue) InFlight(cardID cards.ID) bool {
	for _, p := range q.items {
		if p.motion.CardID == cardID {
			return true
		}
	}
	return false
}

// Pending returns the number of queued motions.
func (q *Queue) Pending() int { return len(q.items) }

// complete removes the matching items before running their callbacks, so a
// callback may schedule new motions without disturbing this pass.
func (q *Queue) complete(match func(pending) bool) int {
	var finished []pending
	kept := q.items[:0]
	for _, p := range q.items {
		if match(p) {
			finished = append(finished, p)
		} else {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = pending{}
	}
	q.items = kept

	for _, p := range finished {
		if p.done != nil {
			p.done(p.motion)
		}
	}
	return len(finished)
}
