package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys published by the simulation
const (
	KeySteps      = "world.steps"
	KeyObjects    = "world.objects"
	KeyPairs      = "world.pairs"
	KeyChecks     = "world.checks"
	KeyCapped     = "world.capped"
	KeyHits       = "world.hits"
	KeyGhostRuns  = "ghost.runs"
	KeyGhostSteps = "ghost.steps"
	KeyDepth      = "world.max_depth"
)

// Registry is the central metrics facade
// The world caches pointers at construction; readers on other goroutines load the atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Lines formats every metric as "key value" in sorted key order, ints first
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s %d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s %.4f", key, v.Get()))
	})
	return lines
}
