package event

// EventType identifies a listener channel
type EventType int

const (
	// EventUpdate fires once per fixed step before collision resolution
	// Scope: world and every registered object | Payload: *engine.UpdatePayload
	EventUpdate EventType = iota

	// EventHit fires after a step for both objects of every pair that genuinely collided
	// Scope: both objects and the world | Payload: *engine.HitPayload
	EventHit

	// EventImpulse fires for every impulse about to be applied to an object
	// Listeners may rescale the impulse in place
	// Scope: receiving object | Payload: *engine.ImpulsePayload
	EventImpulse
)

var typeToName = map[EventType]string{
	EventUpdate:  "update",
	EventHit:     "onHit",
	EventImpulse: "impulse",
}

var nameToType = map[string]EventType{
	"update":  EventUpdate,
	"onHit":   EventHit,
	"impulse": EventImpulse,
}

// GetEventType returns the EventType for a channel name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "unknown"
}

// Event is one dispatched notification
type Event struct {
	Type    EventType
	Caller  any
	Payload any
	Step    uint64
}
