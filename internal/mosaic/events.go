package mosaic

import "github.com/google/uuid"

type EventType int

const (
	EventBeatBurst EventType = iota
	EventRareEvent
	EventSceneBegin
	EventSceneCommit
)

func (t EventType) String() string {
	switch t {
	case EventBeatBurst:
		return "beat_burst"
	case EventRareEvent:
		return "rare_event"
	case EventSceneBegin:
		return "scene_begin"
	case EventSceneCommit:
		return "scene_commit"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Scene uuid.UUID
	Time  float64 // engine clock, or scheduler time for scene events
	Count int     // tiles flipped, for bursts
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the frame loop. Handlers must
// not block.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// Emit is a no-op on a nil bus.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
