package event

// Listener receives dispatched events synchronously
type Listener func(ev Event)

// Handle identifies a subscription for later removal
type Handle uint64

type subscription struct {
	handle  Handle
	fn      Listener
	removed bool
}

// Bus is a set of named listener channels owned by one object or by the world
//
// Architecture:
//   - Single-threaded dispatch, listeners invoked in subscription order
//   - Unsubscribe only marks; marked listeners are skipped and purged by Flush
//   - Listeners may subscribe or unsubscribe during dispatch
type Bus struct {
	channels map[EventType][]*subscription
	index    map[Handle]*subscription
	pending  int
	next     Handle
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		channels: make(map[EventType][]*subscription),
		index:    make(map[Handle]*subscription),
	}
}

// Subscribe adds fn to the channel and returns its removal handle
func (b *Bus) Subscribe(t EventType, fn Listener) Handle {
	b.next++
	s := &subscription{handle: b.next, fn: fn}
	b.channels[t] = append(b.channels[t], s)
	b.index[s.handle] = s
	return s.handle
}

// Unsubscribe marks the listener for removal at the next Flush
// Returns false for unknown or already removed handles
func (b *Bus) Unsubscribe(h Handle) bool {
	s, ok := b.index[h]
	if !ok || s.removed {
		return false
	}
	s.removed = true
	b.pending++
	return true
}

// Emit dispatches ev to every live listener of its channel and returns how many ran
// Listeners subscribed during dispatch first run on the next Emit
func (b *Bus) Emit(ev Event) int {
	subs := b.channels[ev.Type]
	n := 0
	for _, s := range subs[:len(subs):len(subs)] {
		if s.removed {
			continue
		}
		s.fn(ev)
		n++
	}
	return n
}

// Flush purges listeners marked by Unsubscribe
// Called at the safe point between simulation steps
func (b *Bus) Flush() {
	if b.pending == 0 {
		return
	}
	for t, subs := range b.channels {
		kept := subs[:0]
		for _, s := range subs {
			if s.removed {
				delete(b.index, s.handle)
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) == 0 {
			delete(b.channels, t)
			continue
		}
		b.channels[t] = kept
	}
	b.pending = 0
}

// Len returns the number of listeners on a channel, including those pending removal
func (b *Bus) Len(t EventType) int {
	return len(b.channels[t])
}

// Pending returns the number of listeners awaiting Flush
func (b *Bus) Pending() int {
	return b.pending
}
