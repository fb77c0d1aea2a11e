package parameter

import "time"

// Simulation Timing
const (
	// TimeStep is the duration of one simulation tick. All kinematic
	// scaling is expressed in terms of this value.
	TimeStep = 10 * time.Millisecond

	// TimeStepMillis is TimeStep expressed as a plain float64, the unit
	// every control-law formula in package vehicle is written against.
	TimeStepMillis = 10.0
)

// Grid Dimension Bounds
const (
	// MinDimension is the smallest legal city layout size.
	MinDimension = 3

	// MaxDimension is the largest legal city layout size.
	MaxDimension = 9
)

// Layout Generation
const (
	// MaxGenerationAttempts bounds the restart loop in layout.Generate;
	// a dead-loop or infeasible interior fill triggers a full restart.
	MaxGenerationAttempts = 500
)

// Admission Control
const (
	// SpawnCooldown is how long an entry index stays unavailable after
	// being used to admit a vehicle.
	SpawnCooldown = 5000 * time.Millisecond

	// MaxGoalRetries bounds the total number of goal attempts (angular
	// preference window plus full-range fallback) before a spawn this
	// tick is abandoned as a no-op.
	MaxGoalRetries = 32
)
