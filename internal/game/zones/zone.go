// Package zones models card membership for the playfield and the two stacks.
//
// Zones only track card ids and their display slot (position, paint order,
// visibility). Rank, suit and the removed flag live in the card registry.
package zones

import (
	"errors"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
)

// Kind tags a zone.
type Kind int

const (
	KindNone Kind = iota
	KindPlayfield
	KindReserve
	KindBase
)

func (k Kind) String() string {
	switch k {
	case KindPlayfield:
		return "playfield"
	case KindReserve:
		return "reserve"
	case KindBase:
		return "base"
	}
	return "none"
}

// Opaque is the opacity of a fully visible card.
const Opaque uint8 = 255

// Entry is one card's slot inside a zone.
type Entry struct {
	CardID   cards.ID
	Position Vec2
	ZOrder   int
	Visible  bool
	Opacity  uint8
}

// Shown reports whether the entry is drawn at all.
func (e Entry) Shown() bool { return e.Visible && e.Opacity > 0 }

// SlotState is the part of an entry that SaveState/RestoreState round-trips.
type SlotState struct {
	Position Vec2
	ZOrder   int
	Visible  bool
	Opacity  uint8
}

func (e Entry) slot() SlotState {
	return SlotState{Position: e.Position, ZOrder: e.ZOrder, Visible: e.Visible, Opacity: e.Opacity}
}

func (e *Entry) apply(s SlotState) {
	e.Position = s.Position
	e.ZOrder = s.ZOrder
	e.Visible = s.Visible
	e.Opacity = s.Opacity
}

var (
	// ErrDuplicateCard is returned when a card is added to a zone it already belongs to.
	ErrDuplicateCard = errors.New("card already in zone")
	// ErrZOrderTaken is returned when an explicit z-order collides with another entry.
	ErrZOrderTaken = errors.New("z-order already taken")
)
