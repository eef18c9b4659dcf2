package cards

import (
	"fmt"
	"sort"
)

// Registry creates cards and hands out unique ids. The id counter is owned by
// the registry and only rewinds on Reset, which happens when a new level loads.
type Registry struct {
	cards  map[ID]*Card
	nextID ID
}

// NewRegistry returns an empty registry whose first card gets id 0.
func NewRegistry() *Registry {
	return &Registry{cards: make(map[ID]*Card)}
}

// Create validates rank and suit and registers a new face-up card.
func (r *Registry) Create(rank Rank, suit Suit) (*Card, error) {
	if !rank.Valid() {
		return nil, fmt.Errorf("create card: %w: %d", ErrInvalidRank, rank)
	}
	if !suit.Valid() {
		return nil, fmt.Errorf("create card: %w: %d", ErrInvalidSuit, suit)
	}
	c := &Card{
		id:     r.nextID,
		rank:   rank,
		suit:   suit,
		FaceUp: true,
	}
	r.nextID++
	r.cards[c.id] = c
	return c, nil
}

// Get returns the card with the given id.
func (r *Registry) Get(id ID) (*Card, bool) {
	c, ok := r.cards[id]
	return c, ok
}

// Len returns the number of registered cards.
func (r *Registry) Len() int { return len(r.cards) }

// IDs returns every registered id in ascending order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.cards))
	for id := range r.cards {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reset drops every card and rewinds the id counter.
func (r *Registry) Reset() {
	r.cards = make(map[ID]*Card)
	r.nextID = 0
}
