package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/rules"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
)

// HandleUndoRequested reverses the most recent move and returns its record.
// With nothing to undo, or while another command is running, it returns
// rules.NoRecord and changes nothing.
func (e *Engine) HandleUndoRequested() rules.MoveRecord {
	if !e.begin("undo") {
		return rules.NoRecord
	}
	defer e.end()

	rec := e.ledger.Pop()
	if !rec.Valid() {
		e.logger.Debug("undo requested with empty ledger", zap.String("session_id", e.sessionID))
		return rules.NoRecord
	}
	e.settle(rec.CardID)

	from, _ := e.base.Find(rec.CardID)
	var to zones.Vec2
	switch rec.Kind {
	case rules.MoveDrawToBase:
		to = e.undoDraw(rec)
	case rules.MoveReorderBase:
		to = e.undoReorder(rec)
	case rules.MovePlayfieldToBase:
		to = e.undoMatch(rec)
	default:
		e.logger.Error("undo of unknown move kind", zap.String("move_kind", string(rec.Kind)))
	}

	if fixed := e.repair(); fixed > 0 {
		e.logger.Warn("repaired playfield after undo",
			zap.String("session_id", e.sessionID),
			zap.Int("entries", fixed),
		)
	}

	e.logger.Info("move undone",
		zap.String("session_id", e.sessionID),
		zap.Int("card_id", int(rec.CardID)),
		zap.String("move_kind", string(rec.Kind)),
		zap.Stringer("zone", rec.OriginZone),
		zap.Int("undo_depth", e.ledger.Len()),
	)

	e.bus.Publish(rules.NewMoveEvent(rules.EventMoveUndone, e.sessionID, rec, zones.KindBase, rec.OriginZone))
	if rec.Kind == rules.MovePlayfieldToBase {
		e.bus.Publish(rules.NewEventWithFlag(rules.EventCardVisibilityChanged, e.sessionID, rec.CardID, true))
	}
	e.bus.Publish(rules.NewEventWithFlag(rules.EventUndoAvailable, e.sessionID, cards.NoID, e.CanUndo()))
	e.animate(rec.CardID, from.Position, to)
	e.recordFrame(fmt.Sprintf("undo %s %d", rec.Kind, rec.CardID))
	return rec
}

// restoreBase puts Base back to its pre-move layout. Records built without a
// snapshot fall back to dropping the card and laying the stack out again.
func (e *Engine) restoreBase(rec rules.MoveRecord) {
	if rec.BaseBefore != nil {
		e.base.Restore(rec.BaseBefore)
		return
	}
	e.base.Remove(rec.CardID)
}

func (e *Engine) undoDraw(rec rules.MoveRecord) zones.Vec2 {
	e.restoreBase(rec)
	if err := e.reserve.Insert(rec.CardID, rec.OriginIndex); err != nil {
		e.logger.Error("return card to reserve", zap.Int("card_id", int(rec.CardID)), zap.Error(err))
	}
	e.reserve.RestoreState(rec.CardID)
	entry, _ := e.reserve.Find(rec.CardID)
	return entry.Position
}

func (e *Engine) undoReorder(rec rules.MoveRecord) zones.Vec2 {
	if rec.BaseBefore != nil {
		e.base.Restore(rec.BaseBefore)
	} else {
		e.base.Remove(rec.CardID)
		e.base.Insert(rec.CardID, rec.OriginIndex)
	}
	entry, _ := e.base.Find(rec.CardID)
	return entry.Position
}

func (e *Engine) undoMatch(rec rules.MoveRecord) zones.Vec2 {
	e.restoreBase(rec)
	if !e.playfield.Contains(rec.CardID) {
		e.logger.Error("matched card has no playfield placeholder", zap.Int("card_id", int(rec.CardID)))
		return rec.OriginPosition
	}
	e.playfield.Show(rec.CardID)
	e.playfield.RestoreState(rec.CardID)
	if card, ok := e.registry.Get(rec.CardID); ok {
		card.Removed = false
	}
	return rec.OriginPosition
}

// repair enforces the playfield display invariants: matched placeholders stay
// hidden, every live card is visible and opaque with a unique, non-negative
// z-order. It returns the number of entries it had to fix.
func (e *Engine) repair() int {
	return e.playfield.Repair(func(id cards.ID) bool {
		card, ok := e.registry.Get(id)
		return ok && card.Removed
	})
}
