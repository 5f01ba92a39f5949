package event

import "testing"

func TestBusDispatchOrder(t *testing.T) {
	b := NewBus()
	var order []int
	b.Subscribe(EventUpdate, func(Event) { order = append(order, 1) })
	b.Subscribe(EventUpdate, func(Event) { order = append(order, 2) })
	b.Subscribe(EventHit, func(Event) { order = append(order, 99) })

	if n := b.Emit(Event{Type: EventUpdate}); n != 2 {
		t.Errorf("Expected 2 listeners run, got %d", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected [1 2], got %v", order)
	}
}

func TestBusDeferredRemoval(t *testing.T) {
	b := NewBus()
	calls := 0
	var h Handle
	h = b.Subscribe(EventHit, func(Event) {
		calls++
		b.Unsubscribe(h)
	})

	b.Emit(Event{Type: EventHit})
	if b.Len(EventHit) != 1 || b.Pending() != 1 {
		t.Errorf("Expected listener retained until flush, got len=%d pending=%d", b.Len(EventHit), b.Pending())
	}

	// Marked listeners are skipped before the flush
	b.Emit(Event{Type: EventHit})
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}

	b.Flush()
	if b.Len(EventHit) != 0 || b.Pending() != 0 {
		t.Errorf("Expected listener purged, got len=%d pending=%d", b.Len(EventHit), b.Pending())
	}
	if b.Unsubscribe(h) {
		t.Error("Expected second unsubscribe to fail")
	}
}

func TestBusSubscribeDuringDispatch(t *testing.T) {
	b := NewBus()
	late := 0
	b.Subscribe(EventUpdate, func(Event) {
		b.Subscribe(EventUpdate, func(Event) { late++ })
	})

	b.Emit(Event{Type: EventUpdate})
	if late != 0 {
		t.Errorf("Expected late listener to wait for next emit, got %d calls", late)
	}
	b.Emit(Event{Type: EventUpdate})
	if late != 1 {
		t.Errorf("Expected late listener to run once, got %d", late)
	}
}

func TestGetEventType(t *testing.T) {
	tests := []struct {
		name string
		want EventType
	}{
		{"update", EventUpdate},
		{"onHit", EventHit},
		{"impulse", EventImpulse},
	}
	for _, tt := range tests {
		got, ok := GetEventType(tt.name)
		if !ok || got != tt.want {
			t.Errorf("%s: expected %v, got %v (%v)", tt.name, tt.want, got, ok)
		}
		if got.String() != tt.name {
			t.Errorf("Expected name %s, got %s", tt.name, got.String())
		}
	}
	if _, ok := GetEventType("tick"); ok {
		t.Error("Expected unknown channel to fail")
	}
}
