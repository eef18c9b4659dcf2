package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
)

// GameView is a read-only copy of the table for a view layer.
type GameView struct {
	SessionID string
	Playfield []CardView // ascending z-order, hidden placeholders included
	Reserve   []CardView // bottom to top
	Base      []CardView // bottom to top
	CanUndo   bool
	UndoDepth int
	Cleared   bool
	Matchable []cards.ID
}

// CardView is one card's slot as seen by a view.
type CardView struct {
	ID        cards.ID
	Rank      cards.Rank
	Suit      cards.Suit
	Label     string
	Zone      zones.Kind
	Position  zones.Vec2
	ZOrder    int
	Visible   bool
	Opacity   uint8
	FaceUp    bool
	Removed   bool
	Top       bool
	Clickable bool
}

// View builds a snapshot of the current table.
func (e *Engine) View() *GameView {
	clickable := make(map[cards.ID]bool)
	for _, id := range e.playfield.Clickable() {
		clickable[id] = true
	}

	playfield := e.playfield.Entries()
	sort.SliceStable(playfield, func(i, j int) bool { return playfield[i].ZOrder < playfield[j].ZOrder })

	view := &GameView{
		SessionID: e.sessionID,
		Playfield: e.buildCardViews(zones.KindPlayfield, playfield, func(entry zones.Entry, _ int) bool {
			return clickable[entry.CardID]
		}),
		Reserve:   e.buildStackViews(zones.KindReserve, e.reserve.Entries()),
		Base:      e.buildStackViews(zones.KindBase, e.base.Entries()),
		CanUndo:   e.CanUndo(),
		UndoDepth: e.UndoDepth(),
		Cleared:   e.IsCleared(),
		Matchable: e.MatchablePlayfieldCards(),
	}
	return view
}

// buildStackViews marks the top card; for Reserve only the top is
// clickable, for Base every card but the top is.
func (e *Engine) buildStackViews(zone zones.Kind, entries []zones.Entry) []CardView {
	last := len(entries) - 1
	views := e.buildCardViews(zone, entries, func(_ zones.Entry, i int) bool {
		if zone == zones.KindReserve {
			return i == last
		}
		return i != last
	})
	if last >= 0 {
		views[last].Top = true
	}
	return views
}

func (e *Engine) buildCardViews(zone zones.Kind, entries []zones.Entry, clickable func(zones.Entry, int) bool) []CardView {
	views := make([]CardView, 0, len(entries))
	for i, entry := range entries {
		v := CardView{
			ID:        entry.CardID,
			Zone:      zone,
			Position:  entry.Position,
			ZOrder:    entry.ZOrder,
			Visible:   entry.Visible,
			Opacity:   entry.Opacity,
			Clickable: clickable(entry, i),
		}
		if card, ok := e.registry.Get(entry.CardID); ok {
			v.Rank = card.Rank()
			v.Suit = card.Suit()
			v.Label = card.Rank().String() + card.Suit().String()
			v.FaceUp = card.FaceUp
			v.Removed = card.Removed
		}
		views = append(views, v)
	}
	return views
}

// ErrInvariant is wrapped by CheckInvariants failures.
var ErrInvariant = errors.New("table invariant violated")

// CheckInvariants verifies exclusive live membership, unique playfield
// z-orders and the placeholder rules. Tests and the driver call it after
// each command.
func (e *Engine) CheckInvariants() error {
	live := make(map[cards.ID]int, e.registry.Len())
	zOrders := make(map[int]cards.ID)

	for _, entry := range e.playfield.Entries() {
		if other, dup := zOrders[entry.ZOrder]; dup {
			return fmt.Errorf("%w: playfield cards %d and %d share z-order %d", ErrInvariant, other, entry.CardID, entry.ZOrder)
		}
		zOrders[entry.ZOrder] = entry.CardID

		card, ok := e.registry.Get(entry.CardID)
		if !ok {
			return fmt.Errorf("%w: playfield holds unknown card %d", ErrInvariant, entry.CardID)
		}
		switch {
		case card.Removed && entry.Shown():
			return fmt.Errorf("%w: matched card %d is still shown on the playfield", ErrInvariant, entry.CardID)
		case !card.Removed && !entry.Shown():
			return fmt.Errorf("%w: live card %d is hidden on the playfield", ErrInvariant, entry.CardID)
		case entry.Shown():
			live[entry.CardID]++
		}
	}
	for _, id := range e.reserve.IDs() {
		live[id]++
	}
	for _, id := range e.base.IDs() {
		live[id]++
	}

	for _, id := range e.registry.IDs() {
		if n := live[id]; n != 1 {
			return fmt.Errorf("%w: card %d is live in %d zones", ErrInvariant, id, n)
		}
	}
	return nil
}
