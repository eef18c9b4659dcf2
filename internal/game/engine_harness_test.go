package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/rules"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
	"github.com/cardmatch/solitaire-go/internal/level"
)

// engineHarness wraps an engine with event capture and invariant checks.
// Card ids follow dealing order: playfield, then reserve, then base.
type engineHarness struct {
	t      *testing.T
	engine *Engine
	events []rules.Event
}

func newHarness(t *testing.T, lvl level.Level, configure ...func(*Options)) *engineHarness {
	t.Helper()
	opts := DefaultOptions()
	for _, fn := range configure {
		fn(&opts)
	}

	h := &engineHarness{t: t, engine: NewEngine(zaptest.NewLogger(t), opts)}
	h.engine.Events().Subscribe(func(e rules.Event) {
		h.events = append(h.events, e)
	})
	require.NoError(t, h.engine.StartLevel(lvl))
	h.requireInvariants()
	h.events = nil
	return h
}

// spec builds a level card. Suits: 0 clubs, 1 diamonds, 2 hearts, 3 spades.
func spec(face, suit int, x, y float64) level.CardSpec {
	return level.CardSpec{Face: face, Suit: suit, Position: level.Position{X: x, Y: y}}
}

func (h *engineHarness) click(id cards.ID) MoveResult {
	h.t.Helper()
	res := h.engine.HandleCardClicked(id)
	h.requireInvariants()
	return res
}

func (h *engineHarness) undo() rules.MoveRecord {
	h.t.Helper()
	rec := h.engine.HandleUndoRequested()
	h.requireInvariants()
	return rec
}

func (h *engineHarness) requireInvariants() {
	h.t.Helper()
	require.NoError(h.t, h.engine.CheckInvariants())
}

func (h *engineHarness) checksum() string {
	return h.engine.Checksum().Hash
}

func (h *engineHarness) baseIDs() []cards.ID    { return h.engine.base.IDs() }
func (h *engineHarness) reserveIDs() []cards.ID { return h.engine.reserve.IDs() }

func (h *engineHarness) baseTop() zones.Entry {
	h.t.Helper()
	top, ok := h.engine.base.Top()
	require.True(h.t, ok, "base is empty")
	return top
}

func (h *engineHarness) playfieldEntry(id cards.ID) zones.Entry {
	h.t.Helper()
	entry, ok := h.engine.playfield.Find(id)
	require.True(h.t, ok, "card %d not on playfield", id)
	return entry
}

func (h *engineHarness) eventsOf(eventType rules.EventType) []rules.Event {
	var out []rules.Event
	for _, e := range h.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (h *engineHarness) eventTypes() []rules.EventType {
	out := make([]rules.EventType, len(h.events))
	for i, e := range h.events {
		out[i] = e.Type
	}
	return out
}
