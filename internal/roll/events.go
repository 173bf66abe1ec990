package roll

import "github.com/google/uuid"

// EventType identifies what happened during a roll.
type EventType int

const (
	EventNone EventType = iota
	EventRollStarted
	EventCollision
	EventSettling
	EventRollFinished
	EventBoardCleared
	EventWarning
)

func (t EventType) String() string {
	switch t {
	case EventRollStarted:
		return "roll_started"
	case EventCollision:
		return "collision"
	case EventSettling:
		return "settling"
	case EventRollFinished:
		return "roll_finished"
	case EventBoardCleared:
		return "board_cleared"
	case EventWarning:
		return "warning"
	default:
		return "none"
	}
}

// Event is published to listeners on the engine's bus.
type Event struct {
	Type      EventType
	SessionID uuid.UUID
	Dice      int     // EventRollStarted
	Result    *Result // EventRollFinished
	Impact    float32 // EventCollision: approach speed along the contact normal
	Message   string  // EventWarning
}

// Listener receives events synchronously on the tick goroutine.
type Listener func(Event)

// Bus fans events out to listeners in subscription order.
type Bus struct {
	listeners []Listener
}

// Subscribe adds a listener.
func (b *Bus) Subscribe(l Listener) {
	b.listeners = append(b.listeners, l)
}

// Publish delivers e to every listener.
func (b *Bus) Publish(e Event) {
	for _, l := range b.listeners {
		l(e)
	}
}
