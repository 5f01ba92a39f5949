package engine

import "github.com/lixenwraith/tank-physics/physics"

// eligible reports whether two entries should hold an active pair
func (w *World) eligible(a, b *entry) bool {
	if a == b || a.ghost || b.ghost {
		return false
	}
	if len(a.obj.Shapes()) == 0 || len(b.obj.Shapes()) == 0 {
		return false
	}
	if !a.obj.Kind().Dynamic() && !b.obj.Kind().Dynamic() {
		return false
	}
	_, blocked := w.suppressed[MakePairKey(a.handle, b.handle)]
	return !blocked
}

func (w *World) linkPair(a, b *entry) {
	key := MakePairKey(a.handle, b.handle)
	w.pairs[key] = struct{}{}
	a.pairs[key] = struct{}{}
	b.pairs[key] = struct{}{}
}

func (w *World) unlinkPair(key PairKey) {
	delete(w.pairs, key)
	if e, ok := w.entries[key.Lo]; ok {
		delete(e.pairs, key)
	}
	if e, ok := w.entries[key.Hi]; ok {
		delete(e.pairs, key)
	}
}

// HasPair reports whether a and b are currently checked against each other
func (w *World) HasPair(a, b physics.Object) bool {
	ha, okA := w.byObject[a]
	hb, okB := w.byObject[b]
	if !okA || !okB {
		return false
	}
	_, ok := w.pairs[MakePairKey(ha, hb)]
	return ok
}

// Pairs returns the active pair keys in sorted order
func (w *World) Pairs() []PairKey {
	return sortedKeys(w.pairs)
}

// IgnoreCollisions stops a and b from colliding until restored or either is detached
func (w *World) IgnoreCollisions(a, b physics.Object) bool {
	ea, eb := w.lookup(a), w.lookup(b)
	if ea == nil || eb == nil || ea == eb {
		return false
	}
	key := MakePairKey(ea.handle, eb.handle)
	w.suppressed[key] = struct{}{}
	w.unlinkPair(key)
	return true
}

// IgnoreAllBut suppresses every pair of a except those with the objects in keep
// Returns the number of objects newly ignored
func (w *World) IgnoreAllBut(a physics.Object, keep ...physics.Object) int {
	ea := w.lookup(a)
	if ea == nil {
		return 0
	}
	kept := make(map[Handle]struct{}, len(keep))
	for _, k := range keep {
		if h, ok := w.byObject[k]; ok {
			kept[h] = struct{}{}
		}
	}
	n := 0
	for _, h := range w.order {
		if h == ea.handle {
			continue
		}
		if _, ok := kept[h]; ok {
			continue
		}
		key := MakePairKey(ea.handle, h)
		if _, already := w.suppressed[key]; already {
			continue
		}
		w.suppressed[key] = struct{}{}
		w.unlinkPair(key)
		n++
	}
	return n
}

// RestoreCollisions lifts a suppression; the pair becomes active again if otherwise eligible
func (w *World) RestoreCollisions(a, b physics.Object) bool {
	ea, eb := w.lookup(a), w.lookup(b)
	if ea == nil || eb == nil {
		return false
	}
	key := MakePairKey(ea.handle, eb.handle)
	if _, ok := w.suppressed[key]; !ok {
		return false
	}
	delete(w.suppressed, key)
	if w.eligible(ea, eb) {
		w.linkPair(ea, eb)
	}
	return true
}

// Suppressed reports whether a suppression record exists for a and b
func (w *World) Suppressed(a, b physics.Object) bool {
	ha, okA := w.byObject[a]
	hb, okB := w.byObject[b]
	if !okA || !okB {
		return false
	}
	_, ok := w.suppressed[MakePairKey(ha, hb)]
	return ok
}
