package rules

import (
	"testing"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
)

func TestUndoLedgerPushPop(t *testing.T) {
	l := NewUndoLedger()
	if l.CanUndo() {
		t.Fatalf("expected fresh ledger to be empty")
	}

	l.Push(MoveRecord{CardID: 1, Kind: MoveDrawToBase, OriginZone: zones.KindReserve})
	l.Push(MoveRecord{CardID: 2, Kind: MoveReorderBase, OriginZone: zones.KindBase, OriginIndex: 0})

	if l.Len() != 2 || !l.CanUndo() {
		t.Fatalf("expected 2 records, got %d", l.Len())
	}
	top, ok := l.Peek()
	if !ok || top.CardID != 2 {
		t.Fatalf("expected peek of card 2, got %+v", top)
	}

	rec := l.Pop()
	if rec.CardID != 2 || rec.Kind != MoveReorderBase {
		t.Fatalf("expected LIFO order (2), got %+v", rec)
	}
	rec = l.Pop()
	if rec.CardID != 1 || rec.Kind != MoveDrawToBase {
		t.Fatalf("expected remaining record 1, got %+v", rec)
	}
	if l.CanUndo() {
		t.Fatalf("expected ledger to be empty")
	}
}

func TestUndoLedgerEmptyPop(t *testing.T) {
	l := NewUndoLedger()

	rec := l.Pop()
	if rec.Valid() {
		t.Fatalf("expected sentinel record, got %+v", rec)
	}
	if rec.CardID != cards.NoID {
		t.Fatalf("expected NoID, got %d", rec.CardID)
	}
	if _, ok := l.Peek(); ok {
		t.Fatalf("expected no peek on empty ledger")
	}
}

func TestUndoLedgerCopiesSnapshot(t *testing.T) {
	l := NewUndoLedger()
	snap := []zones.Entry{{CardID: 1}, {CardID: 2, ZOrder: 1}}

	l.Push(MoveRecord{CardID: 1, Kind: MoveReorderBase, BaseBefore: snap})
	snap[0].CardID = 99

	rec := l.Pop()
	if rec.BaseBefore[0].CardID != 1 {
		t.Fatalf("ledger record shares the caller's snapshot")
	}
}

func TestUndoLedgerClear(t *testing.T) {
	l := NewUndoLedger()
	l.Push(MoveRecord{CardID: 1, Kind: MoveDrawToBase})
	l.Push(MoveRecord{CardID: 2, Kind: MoveDrawToBase})

	if got := l.List(); len(got) != 2 || got[1].CardID != 2 {
		t.Fatalf("unexpected list %+v", got)
	}
	l.Clear()
	if l.Len() != 0 || l.CanUndo() {
		t.Fatalf("expected cleared ledger")
	}
}
