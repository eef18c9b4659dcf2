package zones

import (
	"fmt"
	"sort"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
)

// Playfield is the tableau. Entries keep the position they were dealt at;
// removing a card never re-lays-out the survivors.
type Playfield struct {
	size    Size
	entries []Entry
	saved   map[cards.ID]SlotState
}

// NewPlayfield creates an empty playfield whose cards share one footprint.
func NewPlayfield(size Size) *Playfield {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultCardSize
	}
	return &Playfield{
		size:  size,
		saved: make(map[cards.ID]SlotState),
	}
}

// CardSize returns the footprint used for overlap tests.
func (p *Playfield) CardSize() Size { return p.size }

// Add places a visible card at pos. A nil z assigns one above the current
// maximum (the first card gets 0). Adding NoID is a no-op.
func (p *Playfield) Add(id cards.ID, pos Vec2, z *int) error {
	if id == cards.NoID {
		return nil
	}
	if p.indexOf(id) >= 0 {
		return fmt.Errorf("playfield add %d: %w", id, ErrDuplicateCard)
	}

	order := p.MaxZOrder() + 1
	if z != nil {
		for _, e := range p.entries {
			if e.ZOrder == *z {
				return fmt.Errorf("playfield add %d at z=%d: %w", id, *z, ErrZOrderTaken)
			}
		}
		order = *z
	}

	p.entries = append(p.entries, Entry{
		CardID:   id,
		Position: pos,
		ZOrder:   order,
		Visible:  true,
		Opacity:  Opaque,
	})
	return nil
}

// Remove deletes membership only. Other entries keep their slot.
func (p *Playfield) Remove(id cards.ID) bool {
	idx := p.indexOf(id)
	if idx < 0 {
		return false
	}
	p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
	delete(p.saved, id)
	return true
}

// MaxZOrder returns the highest z-order in the zone, or -1 when empty.
func (p *Playfield) MaxZOrder() int {
	max := -1
	for _, e := range p.entries {
		if e.ZOrder > max {
			max = e.ZOrder
		}
	}
	return max
}

// Find returns the entry for id.
func (p *Playfield) Find(id cards.ID) (Entry, bool) {
	idx := p.indexOf(id)
	if idx < 0 {
		return Entry{}, false
	}
	return p.entries[idx], true
}

// Contains reports whether id has an entry, shown or not.
func (p *Playfield) Contains(id cards.ID) bool { return p.indexOf(id) >= 0 }

// Live reports whether id has a shown entry. Hidden placeholders left behind
// by a match are resident but not live.
func (p *Playfield) Live(id cards.ID) bool {
	e, ok := p.Find(id)
	return ok && e.Shown()
}

// IsCovered reports whether a shown entry with a strictly higher z-order
// overlaps id's footprint. Unknown and hidden cards count as covered.
func (p *Playfield) IsCovered(id cards.ID) bool {
	target, ok := p.Find(id)
	if !ok || !target.Shown() {
		return true
	}
	bounds := Bounds(target.Position, p.size)
	for _, other := range p.entries {
		if other.CardID == id || !other.Shown() {
			continue
		}
		if other.ZOrder <= target.ZOrder {
			continue
		}
		if bounds.Overlaps(Bounds(other.Position, p.size)) {
			return true
		}
	}
	return false
}

// CoveredBy returns the ids of the shown cards covering id, lowest z first.
func (p *Playfield) CoveredBy(id cards.ID) []cards.ID {
	target, ok := p.Find(id)
	if !ok {
		return nil
	}
	bounds := Bounds(target.Position, p.size)
	var over []Entry
	for _, other := range p.entries {
		if other.CardID == id || !other.Shown() || other.ZOrder <= target.ZOrder {
			continue
		}
		if bounds.Overlaps(Bounds(other.Position, p.size)) {
			over = append(over, other)
		}
	}
	sortByZ(over)
	ids := make([]cards.ID, len(over))
	for i, e := range over {
		ids[i] = e.CardID
	}
	return ids
}

// Clickable returns shown, uncovered card ids in ascending z-order.
func (p *Playfield) Clickable() []cards.ID {
	sorted := p.Entries()
	sortByZ(sorted)
	var ids []cards.ID
	for _, e := range sorted {
		if !e.Shown() {
			continue
		}
		if p.IsCovered(e.CardID) {
			continue
		}
		ids = append(ids, e.CardID)
	}
	return ids
}

// Hide makes the entry invisible and fully transparent.
func (p *Playfield) Hide(id cards.ID) bool {
	idx := p.indexOf(id)
	if idx < 0 {
		return false
	}
	p.entries[idx].Visible = false
	p.entries[idx].Opacity = 0
	return true
}

// Show makes the entry visible and opaque.
func (p *Playfield) Show(id cards.ID) bool {
	idx := p.indexOf(id)
	if idx < 0 {
		return false
	}
	p.entries[idx].Visible = true
	p.entries[idx].Opacity = Opaque
	return true
}

// SaveState snapshots one entry's slot for a later RestoreState.
func (p *Playfield) SaveState(id cards.ID) bool {
	e, ok := p.Find(id)
	if !ok {
		return false
	}
	p.saved[id] = e.slot()
	return true
}

// RestoreState applies and consumes the slot saved for id.
func (p *Playfield) RestoreState(id cards.ID) bool {
	s, ok := p.saved[id]
	if !ok {
		return false
	}
	idx := p.indexOf(id)
	if idx < 0 {
		return false
	}
	p.entries[idx].apply(s)
	delete(p.saved, id)
	return true
}

// Repair enforces the display invariants after an undo. Entries for which
// placeholder returns true are kept hidden; every other entry is made
// visible and opaque with a non-negative, unique z-order. It returns the
// number of entries it had to touch.
func (p *Playfield) Repair(placeholder func(cards.ID) bool) int {
	fixed := 0
	max := p.MaxZOrder()
	seen := make(map[int]bool, len(p.entries))

	for i := range p.entries {
		e := &p.entries[i]
		touched := false

		if placeholder != nil && placeholder(e.CardID) {
			if e.Visible || e.Opacity != 0 {
				e.Visible = false
				e.Opacity = 0
				touched = true
			}
		} else if !e.Visible || e.Opacity != Opaque {
			e.Visible = true
			e.Opacity = Opaque
			touched = true
		}

		if e.ZOrder < 0 || seen[e.ZOrder] {
			max++
			e.ZOrder = max
			touched = true
		}
		seen[e.ZOrder] = true

		if touched {
			fixed++
		}
	}
	return fixed
}

// Entries returns a copy of all entries in insertion order.
func (p *Playfield) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of resident entries, hidden ones included.
func (p *Playfield) Len() int { return len(p.entries) }

// Clear drops every entry and saved slot.
func (p *Playfield) Clear() {
	p.entries = nil
	p.saved = make(map[cards.ID]SlotState)
}

func (p *Playfield) indexOf(id cards.ID) int {
	for i, e := range p.entries {
		if e.CardID == id {
			return i
		}
	}
	return -1
}

func sortByZ(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ZOrder < entries[j].ZOrder })
}
