package zones

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
)

func newTestStack(ids ...cards.ID) *Stack {
	s := NewStack(KindBase, Vec2{X: 10, Y: 0}, 25)
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func TestStackLayout(t *testing.T) {
	s := newTestStack(4, 5, 6)

	for i, e := range s.Entries() {
		wantX := 10 + float64(i)*25
		if e.Position.X != wantX || e.Position.Y != 0 {
			t.Fatalf("slot %d: expected x=%.0f, got %v", i, wantX, e.Position)
		}
		if e.ZOrder != i || !e.Shown() {
			t.Fatalf("slot %d: unexpected entry %+v", i, e)
		}
	}
	if s.TopID() != 6 {
		t.Fatalf("expected top 6, got %d", s.TopID())
	}
}

func TestStackEmptyTop(t *testing.T) {
	s := newTestStack()
	if _, ok := s.Top(); ok {
		t.Fatalf("expected no top on empty stack")
	}
	if s.TopID() != cards.NoID {
		t.Fatalf("expected NoID, got %d", s.TopID())
	}
}

func TestStackOverlay(t *testing.T) {
	s := newTestStack(1, 2)
	prevTop, _ := s.Top()

	if err := s.AddOverlay(3); err != nil {
		t.Fatalf("overlay: %v", err)
	}
	top, _ := s.Top()
	if top.CardID != 3 || top.Position != prevTop.Position || top.ZOrder != prevTop.ZOrder+1 {
		t.Fatalf("expected overlay over %+v, got %+v", prevTop, top)
	}
	// Others keep their slot.
	first, _ := s.Find(1)
	if first.Position.X != 10 || first.ZOrder != 0 {
		t.Fatalf("overlay disturbed the bottom card: %+v", first)
	}

	empty := newTestStack()
	empty.AddOverlay(9)
	e, _ := empty.Top()
	if e.Position.X != 10 || e.ZOrder != 0 {
		t.Fatalf("overlay on empty stack should lay out slot 0, got %+v", e)
	}

	if err := s.AddOverlay(3); !errors.Is(err, ErrDuplicateCard) {
		t.Fatalf("expected ErrDuplicateCard, got %v", err)
	}
}

func TestStackMoveToTop(t *testing.T) {
	s := newTestStack(9, 2)

	if !s.MoveToTop(9) {
		t.Fatalf("expected move to succeed")
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []cards.ID{2, 9}) {
		t.Fatalf("expected [2 9], got %v", got)
	}
	top, _ := s.Top()
	if top.ZOrder != 1 || top.Position.X != 35 {
		t.Fatalf("expected laid out top, got %+v", top)
	}
	if s.MoveToTop(77) {
		t.Fatalf("expected unknown card move to fail")
	}
}

func TestStackRemoveAndInsert(t *testing.T) {
	s := newTestStack(1, 2, 3)

	if !s.Remove(2) {
		t.Fatalf("expected remove to succeed")
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []cards.ID{1, 3}) {
		t.Fatalf("expected [1 3], got %v", got)
	}
	e3, _ := s.Find(3)
	if e3.ZOrder != 1 || e3.Position.X != 35 {
		t.Fatalf("expected relayout after remove, got %+v", e3)
	}

	if err := s.Insert(2, 1); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []cards.ID{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
	if err := s.Insert(4, 99); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if s.TopID() != 4 {
		t.Fatalf("out of range insert should append, top=%d", s.TopID())
	}
	if err := s.Insert(5, -3); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []cards.ID{5, 1, 2, 3, 4}) {
		t.Fatalf("negative index should insert at the bottom, got %v", got)
	}
	e5, _ := s.Find(5)
	if e5.ZOrder != 0 {
		t.Fatalf("expected bottom slot z=0, got %+v", e5)
	}
}

func TestStackSnapshotRestore(t *testing.T) {
	s := newTestStack(1, 2)
	s.AddOverlay(3)
	snap := s.Snapshot()

	s.MoveToTop(1)
	s.Remove(2)
	s.Restore(snap)

	if !reflect.DeepEqual(s.Entries(), snap) {
		t.Fatalf("expected exact restore, got %+v want %+v", s.Entries(), snap)
	}

	// The snapshot must not alias the stack's storage.
	snap[0].CardID = 99
	if s.IDs()[0] != 1 {
		t.Fatalf("snapshot aliases stack storage")
	}
}

func TestStackSaveRestoreState(t *testing.T) {
	s := newTestStack(1, 2)
	before, _ := s.Find(2)
	s.SaveState(2)

	s.Remove(2)
	s.Insert(2, 0)
	if !s.RestoreState(2) {
		t.Fatalf("expected restore to succeed")
	}
	after, _ := s.Find(2)
	if after.Position != before.Position || after.ZOrder != before.ZOrder {
		t.Fatalf("expected %+v, got %+v", before, after)
	}
}
