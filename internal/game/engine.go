// Package game runs the solitaire match engine: it deals a level into the
// playfield and the two stacks, executes clicks and undos, and publishes the
// resulting events for a view.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/motion"
	"github.com/cardmatch/solitaire-go/internal/game/rules"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
	"github.com/cardmatch/solitaire-go/internal/level"
)

// Outcome classifies the result of a click.
type Outcome int

const (
	// OutcomeCommitted means a move was executed and recorded.
	OutcomeCommitted Outcome = iota
	// OutcomeRejected means the click was legal input but not a legal move.
	OutcomeRejected
	// OutcomeInvalid means the click referenced no known, placed card.
	OutcomeInvalid
	// OutcomeNoAction means the click has no defined move (the Base top).
	OutcomeNoAction
	// OutcomeBusy means another command was still running, typically because
	// an event listener issued the click from inside a publish.
	OutcomeBusy
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeNoAction:
		return "no_action"
	case OutcomeBusy:
		return "busy"
	}
	return "unknown"
}

// MoveResult is what HandleCardClicked returns. Record is rules.NoRecord
// unless the move was committed.
type MoveResult struct {
	Outcome Outcome
	Record  rules.MoveRecord
	Reason  string
}

// Committed reports whether the click produced a move.
func (r MoveResult) Committed() bool { return r.Outcome == OutcomeCommitted }

func rejected(reason string) MoveResult {
	return MoveResult{Outcome: OutcomeRejected, Record: rules.NoRecord, Reason: reason}
}

func invalid(reason string) MoveResult {
	return MoveResult{Outcome: OutcomeInvalid, Record: rules.NoRecord, Reason: reason}
}

// ErrCommandInProgress is returned by StartLevel when called while another
// command is running.
var ErrCommandInProgress = errors.New("command in progress")

// Engine owns the registry, the three zones and the undo ledger of one game.
// It is single-threaded: callers must not use it from several goroutines.
type Engine struct {
	logger    *zap.Logger
	opts      Options
	registry  *cards.Registry
	playfield *zones.Playfield
	reserve   *zones.Stack
	base      *zones.Stack
	ledger    *rules.UndoLedger
	bus       *rules.EventBus
	scheduler motion.Scheduler
	replay    *Replay
	sessionID string
	busy      bool
}

// NewEngine creates an engine with no level dealt.
func NewEngine(logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = motion.Immediate{}
	}
	sessionID := uuid.NewString()
	return &Engine{
		logger:    logger,
		opts:      opts,
		registry:  cards.NewRegistry(),
		playfield: zones.NewPlayfield(opts.CardSize),
		reserve:   zones.NewStack(zones.KindReserve, opts.ReserveOrigin, opts.StackSpacing),
		base:      zones.NewStack(zones.KindBase, opts.BaseOrigin, opts.StackSpacing),
		ledger:    rules.NewUndoLedger(),
		bus:       rules.NewEventBus(),
		scheduler: scheduler,
		replay:    NewReplay(sessionID, opts.ReplayLimit),
		sessionID: sessionID,
	}
}

// StartLevel resets all state and deals lvl. An invalid level is replaced
// by an empty one; the error is returned for callers that care, but the
// engine is always left with a started level.
func (e *Engine) StartLevel(lvl level.Level) error {
	if !e.begin("start_level") {
		return fmt.Errorf("start level: %w", ErrCommandInProgress)
	}
	defer e.end()

	var dealErr error
	if err := lvl.Validate(); err != nil {
		e.logger.Warn("invalid level, dealing empty level", zap.Error(err))
		dealErr = fmt.Errorf("start level: %w", err)
		lvl = level.Empty
	}

	e.scheduler.Flush()
	e.registry.Reset()
	e.playfield.Clear()
	e.reserve.Clear()
	e.base.Clear()
	e.ledger.Clear()
	e.sessionID = uuid.NewString()
	e.replay = NewReplay(e.sessionID, e.opts.ReplayLimit)

	for _, spec := range lvl.Playfield {
		pos := zones.Vec2{X: spec.Position.X, Y: spec.Position.Y}
		e.deal(spec, zones.KindPlayfield, func(id cards.ID) error { return e.playfield.Add(id, pos, nil) })
	}
	for _, spec := range lvl.Reserve {
		e.deal(spec, zones.KindReserve, e.reserve.Add)
	}
	for _, spec := range lvl.Base {
		e.deal(spec, zones.KindBase, e.base.Add)
	}

	e.logger.Info("level started",
		zap.String("session_id", e.sessionID),
		zap.Int("playfield", e.playfield.Len()),
		zap.Int("reserve", e.reserve.Len()),
		zap.Int("base", e.base.Len()),
	)

	evt := rules.NewEvent(rules.EventLevelStarted, e.sessionID, cards.NoID)
	evt.Amount = e.registry.Len()
	e.bus.Publish(evt)
	e.bus.Publish(rules.NewEventWithFlag(rules.EventUndoAvailable, e.sessionID, cards.NoID, false))
	e.recordFrame("start")
	return dealErr
}

// deal registers one card and places it. Failures are logged and the card
// is skipped; they cannot happen for a validated level.
func (e *Engine) deal(spec level.CardSpec, zone zones.Kind, place func(cards.ID) error) {
	card, err := e.registry.Create(spec.Rank(), spec.CardSuit())
	if err != nil {
		e.logger.Error("deal card", zap.Stringer("zone", zone), zap.Error(err))
		return
	}
	if err := place(card.ID()); err != nil {
		e.logger.Error("deal card", zap.Stringer("zone", zone), zap.Int("card_id", int(card.ID())), zap.Error(err))
	}
}

// HandleCardClicked classifies the clicked card by zone and runs the
// matching transition.
func (e *Engine) HandleCardClicked(id cards.ID) MoveResult {
	if !e.begin("click") {
		return MoveResult{Outcome: OutcomeBusy, Record: rules.NoRecord, Reason: ErrCommandInProgress.Error()}
	}
	defer e.end()

	card, ok := e.registry.Get(id)
	if !ok {
		e.logger.Warn("click on unknown card", zap.String("session_id", e.sessionID), zap.Int("card_id", int(id)))
		return invalid("unknown card")
	}
	e.settle(id)

	var result MoveResult
	switch zone := e.ZoneOf(id); zone {
	case zones.KindBase:
		result = e.clickBase(card)
	case zones.KindPlayfield:
		result = e.clickPlayfield(card)
	case zones.KindReserve:
		result = e.clickReserve(card)
	default:
		e.logger.Warn("click on card outside every zone", zap.String("session_id", e.sessionID), zap.Int("card_id", int(id)))
		return invalid("card is not in any zone")
	}

	if !result.Committed() {
		e.logger.Debug("click ignored",
			zap.String("session_id", e.sessionID),
			zap.Int("card_id", int(id)),
			zap.Stringer("outcome", result.Outcome),
			zap.String("reason", result.Reason),
		)
	}
	return result
}

func (e *Engine) clickBase(card *cards.Card) MoveResult {
	id := card.ID()
	idx := e.base.IndexOf(id)
	if idx == e.base.Len()-1 {
		return MoveResult{Outcome: OutcomeNoAction, Record: rules.NoRecord, Reason: "already the base top"}
	}

	entry, _ := e.base.Find(id)
	before := e.base.Snapshot()
	e.base.MoveToTop(id)
	to, _ := e.base.Top()

	rec := rules.MoveRecord{
		CardID:         id,
		Kind:           rules.MoveReorderBase,
		OriginZone:     zones.KindBase,
		OriginPosition: entry.Position,
		OriginIndex:    idx,
		BaseBefore:     before,
	}
	e.commit(rec, zones.KindBase, entry.Position, to.Position)
	e.logHints()
	return MoveResult{Outcome: OutcomeCommitted, Record: rec}
}

func (e *Engine) clickPlayfield(card *cards.Card) MoveResult {
	id := card.ID()
	if e.playfield.IsCovered(id) || !containsID(e.playfield.Clickable(), id) {
		return rejected("card is covered")
	}
	top, ok := e.base.Top()
	if !ok {
		return rejected("base is empty")
	}
	topCard, ok := e.registry.Get(top.CardID)
	if !ok {
		e.logger.Error("base top is not registered", zap.Int("card_id", int(top.CardID)))
		return invalid("base top is not registered")
	}
	if !rules.CanMatch(card.Rank(), topCard.Rank()) {
		return rejected(fmt.Sprintf("%s does not match %s", card.Rank(), topCard.Rank()))
	}

	entry, _ := e.playfield.Find(id)
	before := e.base.Snapshot()
	e.playfield.SaveState(id)
	if err := e.base.AddOverlay(id); err != nil {
		e.playfield.RestoreState(id)
		e.logger.Error("overlay onto base", zap.Int("card_id", int(id)), zap.Error(err))
		return invalid("card already on base")
	}
	card.Removed = true
	e.playfield.Hide(id)
	to, _ := e.base.Top()

	rec := rules.MoveRecord{
		CardID:         id,
		Kind:           rules.MovePlayfieldToBase,
		OriginZone:     zones.KindPlayfield,
		OriginPosition: entry.Position,
		OriginIndex:    -1,
		BaseBefore:     before,
	}
	e.commit(rec, zones.KindPlayfield, entry.Position, to.Position)
	e.bus.Publish(rules.NewEventWithFlag(rules.EventCardVisibilityChanged, e.sessionID, id, false))
	return MoveResult{Outcome: OutcomeCommitted, Record: rec}
}

func (e *Engine) clickReserve(card *cards.Card) MoveResult {
	id := card.ID()
	if e.reserve.TopID() != id {
		return rejected("not the reserve top")
	}

	entry, _ := e.reserve.Find(id)
	idx := e.reserve.IndexOf(id)
	before := e.base.Snapshot()
	e.reserve.SaveState(id)
	e.reserve.Remove(id)
	if err := e.base.AddOverlay(id); err != nil {
		e.reserve.Insert(id, idx)
		e.reserve.RestoreState(id)
		e.logger.Error("draw onto base", zap.Int("card_id", int(id)), zap.Error(err))
		return invalid("card already on base")
	}
	to, _ := e.base.Top()

	rec := rules.MoveRecord{
		CardID:         id,
		Kind:           rules.MoveDrawToBase,
		OriginZone:     zones.KindReserve,
		OriginPosition: entry.Position,
		OriginIndex:    idx,
		BaseBefore:     before,
	}
	e.commit(rec, zones.KindReserve, entry.Position, to.Position)
	e.logHints()
	return MoveResult{Outcome: OutcomeCommitted, Record: rec}
}

// begin marks a command as running and reports false if one already is.
// Each command runs to completion, events included, before another starts.
func (e *Engine) begin(command string) bool {
	if e.busy {
		e.logger.Warn("command rejected while another is running",
			zap.String("session_id", e.sessionID),
			zap.String("command", command),
		)
		return false
	}
	e.busy = true
	return true
}

func (e *Engine) end() { e.busy = false }

// commit records a move whose zone mutation has already been applied, then
// notifies subscribers and schedules the card's motion.
func (e *Engine) commit(rec rules.MoveRecord, from zones.Kind, fromPos, toPos zones.Vec2) {
	e.ledger.Push(rec)

	e.logger.Info("move committed",
		zap.String("session_id", e.sessionID),
		zap.Int("card_id", int(rec.CardID)),
		zap.String("move_kind", string(rec.Kind)),
		zap.Stringer("zone", from),
		zap.Int("undo_depth", e.ledger.Len()),
	)

	e.bus.Publish(rules.NewMoveEvent(rules.EventMoveCommitted, e.sessionID, rec, from, zones.KindBase))
	e.bus.Publish(rules.NewEventWithFlag(rules.EventUndoAvailable, e.sessionID, cards.NoID, e.CanUndo()))
	e.animate(rec.CardID, fromPos, toPos)
	e.recordFrame(fmt.Sprintf("%s %d", rec.Kind, rec.CardID))
}

// animate hands a motion to the scheduler. The completion callback only
// publishes; logical state is already final.
func (e *Engine) animate(id cards.ID, from, to zones.Vec2) {
	m := motion.New(id, from, to, e.opts.MotionDuration)
	sessionID := e.sessionID

	scheduled := rules.NewEvent(rules.EventMotionScheduled, sessionID, id)
	scheduled.Metadata["motion_id"] = m.ID
	e.bus.Publish(scheduled)

	e.scheduler.Schedule(m, func(done motion.Motion) {
		completed := rules.NewEvent(rules.EventMotionCompleted, sessionID, done.CardID)
		completed.Metadata["motion_id"] = done.ID
		e.bus.Publish(completed)
	})
}

// settle completes in-flight motions for id and for every Base card, since
// each move and undo rewrites the Base layout.
func (e *Engine) settle(id cards.ID) {
	n := e.scheduler.Settle(id)
	for _, baseID := range e.base.IDs() {
		if baseID != id {
			n += e.scheduler.Settle(baseID)
		}
	}
	if n > 0 {
		e.logger.Debug("settled motions before command", zap.Int("card_id", int(id)), zap.Int("count", n))
	}
}

func (e *Engine) logHints() {
	if ids := e.MatchablePlayfieldCards(); len(ids) > 0 {
		e.logger.Debug("playfield cards match the base top",
			zap.String("session_id", e.sessionID),
			zap.Ints("card_ids", idsToInts(ids)),
		)
	}
}

// ZoneOf returns the zone where id is live. A matched card's hidden
// playfield placeholder does not count.
func (e *Engine) ZoneOf(id cards.ID) zones.Kind {
	switch {
	case e.playfield.Live(id):
		return zones.KindPlayfield
	case e.reserve.Contains(id):
		return zones.KindReserve
	case e.base.Contains(id):
		return zones.KindBase
	}
	return zones.KindNone
}

// MatchablePlayfieldCards lists the clickable playfield cards that match the
// current Base top, in ascending z-order. It never blocks a move.
func (e *Engine) MatchablePlayfieldCards() []cards.ID {
	top, ok := e.base.Top()
	if !ok {
		return nil
	}
	topCard, ok := e.registry.Get(top.CardID)
	if !ok {
		return nil
	}
	var ids []cards.ID
	for _, id := range e.playfield.Clickable() {
		if c, ok := e.registry.Get(id); ok && rules.CanMatch(c.Rank(), topCard.Rank()) {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsCleared reports whether no live card remains on the playfield.
func (e *Engine) IsCleared() bool {
	for _, entry := range e.playfield.Entries() {
		if e.playfield.Live(entry.CardID) {
			return false
		}
	}
	return true
}

// CanUndo reports whether a move can be undone.
func (e *Engine) CanUndo() bool { return e.ledger.CanUndo() }

// UndoDepth returns the number of recorded moves.
func (e *Engine) UndoDepth() int { return e.ledger.Len() }

// Card returns the registered card with the given id.
func (e *Engine) Card(id cards.ID) (*cards.Card, bool) { return e.registry.Get(id) }

// SessionID identifies the current level session.
func (e *Engine) SessionID() string { return e.sessionID }

// Events exposes the outbound event bus.
func (e *Engine) Events() *rules.EventBus { return e.bus }

// Scheduler returns the motion scheduler in use.
func (e *Engine) Scheduler() motion.Scheduler { return e.scheduler }

// Replay returns the frames recorded for the current session.
func (e *Engine) Replay() *Replay { return e.replay }

func (e *Engine) recordFrame(label string) {
	if !e.opts.RecordReplay {
		return
	}
	e.replay.RecordFrame(label, e.View())
}

func containsID(ids []cards.ID, id cards.ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func idsToInts(ids []cards.ID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
