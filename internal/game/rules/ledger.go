package rules

import (
	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
)

// MoveKind describes which transition a record reverses.
type MoveKind string

const (
	// MoveNone marks the sentinel record returned by an empty undo.
	MoveNone MoveKind = ""
	// MoveDrawToBase moves the Reserve top onto Base.
	MoveDrawToBase MoveKind = "DRAW_TO_BASE"
	// MoveReorderBase flips a non-top Base card to the top.
	MoveReorderBase MoveKind = "REORDER_BASE"
	// MovePlayfieldToBase matches a Playfield card onto Base.
	MovePlayfieldToBase MoveKind = "PLAYFIELD_TO_BASE"
)

// MoveRecord holds what is needed to reverse one committed move.
type MoveRecord struct {
	CardID         cards.ID
	Kind           MoveKind
	OriginZone     zones.Kind
	OriginPosition zones.Vec2
	OriginIndex    int
	BaseBefore     []zones.Entry
}

// NoRecord is returned when there is nothing to undo.
var NoRecord = MoveRecord{CardID: cards.NoID, Kind: MoveNone, OriginIndex: -1}

// Valid reports whether the record describes a real move.
func (r MoveRecord) Valid() bool {
	return r.CardID != cards.NoID && r.Kind != MoveNone
}

// UndoLedger is the LIFO of committed moves. It is owned by one engine and
// is not safe for concurrent use.
type UndoLedger struct {
	records []MoveRecord
}

// NewUndoLedger creates an empty ledger.
func NewUndoLedger() *UndoLedger {
	return &UndoLedger{
		records: make([]MoveRecord, 0, 16),
	}
}

// Push adds a record to the top of the ledger. The Base snapshot is copied
// so later mutations by the caller cannot reach the stored record.
func (l *UndoLedger) Push(rec MoveRecord) {
	if rec.BaseBefore != nil {
		snap := make([]zones.Entry, len(rec.BaseBefore))
		copy(snap, rec.BaseBefore)
		rec.BaseBefore = snap
	}
	l.records = append(l.records, rec)
}

// Pop removes and returns the most recent record, or NoRecord when empty.
func (l *UndoLedger) Pop() MoveRecord {
	if len(l.records) == 0 {
		return NoRecord
	}
	idx := len(l.records) - 1
	rec := l.records[idx]
	l.records[idx] = MoveRecord{}
	l.records = l.records[:idx]
	return rec
}

// Peek returns the most recent record without removing it.
func (l *UndoLedger) Peek() (MoveRecord, bool) {
	if len(l.records) == 0 {
		return NoRecord, false
	}
	return l.records[len(l.records)-1], true
}

// List returns a copy of all records (most recent last).
func (l *UndoLedger) List() []MoveRecord {
	cpy := make([]MoveRecord, len(l.records))
	copy(cpy, l.records)
	return cpy
}

// Len returns the number of records.
func (l *UndoLedger) Len() int { return len(l.records) }

// CanUndo reports whether the ledger holds at least one record.
func (l *UndoLedger) CanUndo() bool { return len(l.records) > 0 }

// Clear drops every record.
func (l *UndoLedger) Clear() {
	l.records = l.records[:0]
}
