package engine

import (
	"slices"

	"github.com/lixenwraith/tank-physics/physics"
)

// Handle identifies a registered object; issued monotonically from 1, 0 is never valid
type Handle uint32

// PairKey is an unordered object pair stored with the lower handle first
type PairKey struct {
	Lo, Hi Handle
}

// MakePairKey orders the two handles
func MakePairKey(a, b Handle) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// Other returns the partner of h in the pair
func (k PairKey) Other(h Handle) Handle {
	if k.Lo == h {
		return k.Hi
	}
	return k.Lo
}

func comparePairs(a, b PairKey) int {
	if a.Lo != b.Lo {
		return int(a.Lo) - int(b.Lo)
	}
	return int(a.Hi) - int(b.Hi)
}

// sortedKeys returns the keys of a pair set in ascending order
func sortedKeys(set map[PairKey]struct{}) []PairKey {
	keys := make([]PairKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, comparePairs)
	return keys
}

// pairQueue is the FIFO work queue drained once per step
// Single-threaded; the backing slice is reused across steps
type pairQueue struct {
	items []PairKey
	head  int
}

func (q *pairQueue) reset(seed []PairKey) {
	q.items = append(q.items[:0], seed...)
	q.head = 0
}

func (q *pairQueue) push(k PairKey) {
	q.items = append(q.items, k)
}

func (q *pairQueue) pop() (PairKey, bool) {
	if q.head >= len(q.items) {
		return PairKey{}, false
	}
	k := q.items[q.head]
	q.head++
	return k, true
}

// ObjectSet is an unordered set of physics objects
type ObjectSet map[physics.Object]struct{}

func (s ObjectSet) Add(obj physics.Object) {
	s[obj] = struct{}{}
}

func (s ObjectSet) Has(obj physics.Object) bool {
	_, ok := s[obj]
	return ok
}

func (s ObjectSet) Len() int {
	return len(s)
}
