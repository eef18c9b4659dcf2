package zones

import (
	"fmt"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
)

// DefaultStackSpacing is the horizontal offset between two stack slots.
const DefaultStackSpacing = 25.0

// Stack is a strictly ordered pile. The last entry is the top.
//
// Layout puts slot i at origin + (i*spacing, 0) with z-order i. Overlay
// inserts skip layout so the new top sits exactly over the previous one.
type Stack struct {
	kind    Kind
	origin  Vec2
	spacing float64
	entries []Entry
	saved   map[cards.ID]SlotState
}

// NewStack creates an empty stack of the given kind.
func NewStack(kind Kind, origin Vec2, spacing float64) *Stack {
	if spacing <= 0 {
		spacing = DefaultStackSpacing
	}
	return &Stack{
		kind:    kind,
		origin:  origin,
		spacing: spacing,
		saved:   make(map[cards.ID]SlotState),
	}
}

// Add appends id as the new top and lays out the stack.
func (s *Stack) Add(id cards.ID) error {
	if id == cards.NoID {
		return nil
	}
	if s.IndexOf(id) >= 0 {
		return fmt.Errorf("%s add %d: %w", s.kind, id, ErrDuplicateCard)
	}
	s.entries = append(s.entries, Entry{CardID: id})
	s.Layout()
	return nil
}

// AddOverlay appends id at the current top's position with a higher
// z-order, leaving every other entry where it is. On an empty stack it
// behaves like Add.
func (s *Stack) AddOverlay(id cards.ID) error {
	if id == cards.NoID {
		return nil
	}
	top, ok := s.Top()
	if !ok {
		return s.Add(id)
	}
	if s.IndexOf(id) >= 0 {
		return fmt.Errorf("%s overlay %d: %w", s.kind, id, ErrDuplicateCard)
	}
	s.entries = append(s.entries, Entry{
		CardID:   id,
		Position: top.Position,
		ZOrder:   top.ZOrder + 1,
		Visible:  true,
		Opacity:  Opaque,
	})
	return nil
}

// Insert places id at index (clamped to the valid range) and lays out.
func (s *Stack) Insert(id cards.ID, index int) error {
	if id == cards.NoID {
		return nil
	}
	if s.IndexOf(id) >= 0 {
		return fmt.Errorf("%s insert %d: %w", s.kind, id, ErrDuplicateCard)
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.entries) {
		index = len(s.entries)
	}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[index+1:], s.entries[index:])
	s.entries[index] = Entry{CardID: id}
	s.Layout()
	return nil
}

// Remove deletes id and lays out the remaining entries.
func (s *Stack) Remove(id cards.ID) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.Layout()
	return true
}

// MoveToTop re-appends id at the end and lays out.
func (s *Stack) MoveToTop(id cards.ID) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	e := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.entries = append(s.entries, e)
	s.Layout()
	return true
}

// Layout assigns sequential slots to every entry.
func (s *Stack) Layout() {
	for i := range s.entries {
		s.entries[i].Position = s.origin.Add(Vec2{X: float64(i) * s.spacing})
		s.entries[i].ZOrder = i
		s.entries[i].Visible = true
		s.entries[i].Opacity = Opaque
	}
}

// Top returns the last entry.
func (s *Stack) Top() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// TopID returns the top card id, or NoID when empty.
func (s *Stack) TopID() cards.ID {
	top, ok := s.Top()
	if !ok {
		return cards.NoID
	}
	return top.CardID
}

// IndexOf returns id's position counted from the bottom, or -1.
func (s *Stack) IndexOf(id cards.ID) int {
	for i, e := range s.entries {
		if e.CardID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is in the stack.
func (s *Stack) Contains(id cards.ID) bool { return s.IndexOf(id) >= 0 }

// Find returns the entry for id.
func (s *Stack) Find(id cards.ID) (Entry, bool) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return Entry{}, false
	}
	return s.entries[idx], true
}

// IDs returns the card ids bottom to top.
func (s *Stack) IDs() []cards.ID {
	ids := make([]cards.ID, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.CardID
	}
	return ids
}

// Snapshot returns a copy of the full sequence including layout.
func (s *Stack) Snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Restore replaces the sequence with a snapshot taken earlier. The
// snapshot's layout is kept as is.
func (s *Stack) Restore(snapshot []Entry) {
	s.entries = make([]Entry, len(snapshot))
	copy(s.entries, snapshot)
}

// SaveState snapshots one entry's slot.
func (s *Stack) SaveState(id cards.ID) bool {
	e, ok := s.Find(id)
	if !ok {
		return false
	}
	s.saved[id] = e.slot()
	return true
}

// RestoreState applies and consumes the slot saved for id.
func (s *Stack) RestoreState(id cards.ID) bool {
	st, ok := s.saved[id]
	if !ok {
		return false
	}
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.entries[idx].apply(st)
	delete(s.saved, id)
	return true
}

// Entries returns a copy of the sequence bottom to top.
func (s *Stack) Entries() []Entry { return s.Snapshot() }

// Len returns the number of cards in the stack.
func (s *Stack) Len() int { return len(s.entries) }

// Clear empties the stack.
func (s *Stack) Clear() {
	s.entries = nil
	s.saved = make(map[cards.ID]SlotState)
}
