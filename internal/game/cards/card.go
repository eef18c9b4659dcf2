// Package cards owns the authoritative set of cards for a level.
package cards

import (
	"errors"
	"fmt"
	"strconv"
)

// ID identifies a card within one registry lifetime.
type ID int

// NoID represents the absence of a card.
const NoID ID = -1

// Rank is a card face value from Ace (1) to King (13).
type Rank int

const (
	RankAce   Rank = 1
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
)

// Valid reports whether r is within Ace..King.
func (r Rank) Valid() bool { return r >= RankAce && r <= RankKing }

func (r Rank) String() string {
	switch r {
	case RankAce:
		return "A"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// Suit is one of the four French suits. Values match the level file encoding.
type Suit int

const (
	SuitClubs    Suit = 0
	SuitDiamonds Suit = 1
	SuitHearts   Suit = 2
	SuitSpades   Suit = 3
)

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool { return s >= SuitClubs && s <= SuitSpades }

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "♣"
	case SuitDiamonds:
		return "♦"
	case SuitHearts:
		return "♥"
	case SuitSpades:
		return "♠"
	}
	return "?"
}

var (
	// ErrInvalidRank is returned when a rank falls outside 1..13.
	ErrInvalidRank = errors.New("invalid rank")
	// ErrInvalidSuit is returned when a suit falls outside 0..3.
	ErrInvalidSuit = errors.New("invalid suit")
)

// Card is a single playing card. ID, Rank and Suit never change after creation.
type Card struct {
	id   ID
	rank Rank
	suit Suit

	FaceUp  bool
	Removed bool // matched away from the playfield
}

func (c *Card) ID() ID     { return c.id }
func (c *Card) Rank() Rank { return c.rank }
func (c *Card) Suit() Suit { return c.suit }

func (c *Card) String() string {
	return fmt.Sprintf("%s%s#%d", c.rank, c.suit, c.id)
}
