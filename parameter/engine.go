package parameter

import "time"

// Simulation loop timing
const (
	// FixedStep is the simulation step advanced by the accumulator loop
	FixedStep = time.Second / 120

	// FrameUpdateInterval is the host render interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SimulationTimeout bounds the simulated time of a ghost run
	SimulationTimeout = 10 * time.Second
)

// World limits
const (
	// CollisionCheckPerFrameLimit caps how often one pair is resolved within a single step
	CollisionCheckPerFrameLimit = 8

	// PairQueueInitialCapacity is the initial work queue allocation
	PairQueueInitialCapacity = 64
)
