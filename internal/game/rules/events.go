package rules

import (
	"time"

	"github.com/cardmatch/solitaire-go/internal/game/cards"
	"github.com/cardmatch/solitaire-go/internal/game/zones"
)

// EventType indicates the category of an outbound engine event.
type EventType string

const (
	// Move events
	EventMoveCommitted EventType = "MOVE_COMMITTED"
	EventMoveUndone    EventType = "MOVE_UNDONE"
	EventUndoAvailable EventType = "UNDO_AVAILABLE"

	// Card events
	EventCardVisibilityChanged EventType = "CARD_VISIBILITY_CHANGED"

	// Level events
	EventLevelStarted EventType = "LEVEL_STARTED"

	// Motion events
	EventMotionScheduled EventType = "MOTION_SCHEDULED"
	EventMotionCompleted EventType = "MOTION_COMPLETED"
)

// Event is a state change the view layer may react to.
type Event struct {
	Type      EventType
	SessionID string
	CardID    cards.ID
	Move      MoveKind
	From      zones.Kind
	To        zones.Kind
	Flag      bool // UndoAvailable: can undo. CardVisibilityChanged: visible.
	Amount    int
	Timestamp time.Time
	Metadata  map[string]string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus is a synchronous publish/subscribe dispatcher with type filtering.
// It belongs to a single engine and is not safe for concurrent use.
type EventBus struct {
	listeners      map[int]Listener
	order          []int
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.order {
			if h == handle {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event synchronously: catch-all listeners first in
// subscription order, then listeners for the event's type.
func (bus *EventBus) Publish(event Event) {
	for _, handle := range append([]int(nil), bus.order...) {
		if listener, ok := bus.listeners[handle]; ok {
			listener(event)
		}
	}
	for _, listener := range append([]TypedListener(nil), bus.typedListeners[event.Type]...) {
		listener.Callback(event)
	}
}

// NewEvent creates an event with common fields populated.
func NewEvent(eventType EventType, sessionID string, cardID cards.ID) Event {
	return Event{
		Type:      eventType,
		SessionID: sessionID,
		CardID:    cardID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewMoveEvent creates a MoveCommitted or MoveUndone event.
func NewMoveEvent(eventType EventType, sessionID string, rec MoveRecord, from, to zones.Kind) Event {
	evt := NewEvent(eventType, sessionID, rec.CardID)
	evt.Move = rec.Kind
	evt.From = from
	evt.To = to
	return evt
}

// NewEventWithFlag creates an event carrying a boolean value.
func NewEventWithFlag(eventType EventType, sessionID string, cardID cards.ID, flag bool) Event {
	evt := NewEvent(eventType, sessionID, cardID)
	evt.Flag = flag
	return evt
}
