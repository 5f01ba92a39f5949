package parameter

import "github.com/chewxy/math32"

// Shot planner hill climbing
const (
	// PlannerIterations caps hill climbing rounds per shot
	PlannerIterations = 40

	// PlannerNeighbours is the number of candidates sampled around the current best
	PlannerNeighbours = 8

	// PlannerIntensityStep is the intensity radius of the neighbourhood
	PlannerIntensityStep float32 = 5

	// PlannerIntensityError is the maximum intensity jitter added to the final aim
	PlannerIntensityError float32 = 1
)

var (
	// PlannerAngleStep is the angular radius of the neighbourhood
	PlannerAngleStep = math32.Pi / 100

	// PlannerAngleError is the maximum angular jitter added to the final aim
	PlannerAngleError = math32.Pi / 32

	// PlannerMaxElevation bounds the initial random elevation
	PlannerMaxElevation = math32.Pi / 2
)
