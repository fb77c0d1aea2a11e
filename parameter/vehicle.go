package parameter

// Vehicle Kind
//
// Kind indexes every per-kind table below (Mass, WidthFactor,
// LengthWidthRatio, MaxSpeed, MinTurnRadius, PathRadiusFactor and the
// speed tables). The force tables are shared by every kind.
type Kind int

const (
	Sedan Kind = iota
	MiniVan
	PickupTruck
	numKinds
)

// Physical Parameters, indexed by Kind.
var (
	Mass = [numKinds]float64{
		Sedan:       1000,
		MiniVan:     1500,
		PickupTruck: 2000,
	}

	// WidthFactor scales a vehicle's width relative to VehicleSize.
	WidthFactor = [numKinds]float64{
		Sedan:       1.05,
		MiniVan:     1.10,
		PickupTruck: 1.15,
	}

	// LengthWidthRatio gives a vehicle's length as a multiple of its width.
	LengthWidthRatio = [numKinds]float64{
		Sedan:       1.85,
		MiniVan:     1.85,
		PickupTruck: 2.10,
	}

	MaxSpeed = [numKinds]float64{
		Sedan:       50,
		MiniVan:     42,
		PickupTruck: 30,
	}

	MinTurnRadius = [numKinds]float64{
		Sedan:       0.40,
		MiniVan:     0.43,
		PickupTruck: 0.50,
	}

	// PathRadiusFactor scales PathRadius for lane-following tolerance;
	// larger vehicles get tighter tolerances.
	PathRadiusFactor = [numKinds]float64{
		Sedan:       0.30,
		MiniVan:     0.28,
		PickupTruck: 0.25,
	}
)

// SpeedTriple is the (offroad, turn, cruise) target-speed triple for a
// kind, selected by mode (calm/rush).
type SpeedTriple struct {
	Offroad, Turn, Cruise float64
}

var (
	CalmSpeeds = [numKinds]SpeedTriple{
		Sedan:       {4.4, 5.5, 6.0},
		MiniVan:     {3.7, 4.0, 5.5},
		PickupTruck: {3.5, 3.5, 4.5},
	}

	RushSpeeds = [numKinds]SpeedTriple{
		Sedan:       {4.6, 5.8, 6.4},
		MiniVan:     {3.9, 4.3, 5.9},
		PickupTruck: {3.7, 3.8, 4.9},
	}
)

// ForceTriple is the (accelerate, brake, steer) force budget for a kind.
type ForceTriple struct {
	Accelerate, Brake, Normal float64
}

// Base force caps, identical across kinds and independent of calm/rush
// mode: accelerate/steer/brake never apply more force than these,
// however the current mode's default_forces-equivalent scales below.
const (
	BaseAccelerateForce = 1500
	BaseBrakeForce      = 7000
	BaseNormalForce     = 2000
)

var (
	// CalmForces and RushForces are identical across kinds in the
	// reference implementation, so each is a single ForceTriple rather
	// than a table indexed by Kind like the speed tables.
	CalmForces = ForceTriple{
		Accelerate: 0.333 * BaseAccelerateForce,
		Brake:      0.25 * BaseBrakeForce,
		Normal:     0.75 * BaseNormalForce,
	}

	RushForces = ForceTriple{
		Accelerate: 0.666 * BaseAccelerateForce,
		Brake:      0.5 * BaseBrakeForce,
		Normal:     0.9 * BaseNormalForce,
	}
)

// Control Law
const (
	// SeekFarAngle is the approach angle used by seek() when the vehicle
	// is very far from its path.
	SeekFarAngle = 90.0

	// SeekNearAngle is the approach angle used by seek() when the
	// vehicle is nearly on its path.
	SeekNearAngle = 5.0

	// OnCourseAngleTolerance is the angular error below which
	// regain_course cruises instead of turning.
	OnCourseAngleTolerance = 5.0

	// RegainCourseLookahead is how many samples ahead of the nearest
	// sample regain_course steers toward.
	RegainCourseLookahead = 4

	// RestVelocitySeed is the velocity magnitude a stationary vehicle is
	// seeded with so the steering law has a valid heading to rotate.
	RestVelocitySeed = 0.01

	// SpeedMatchQuantum is the velocity delta below which achieve_speed
	// snaps directly to the target instead of incrementally approaching it.
	SpeedMatchQuantum = 0.01
)

// Interaction Protocol
const (
	// InteractionScanInterval is how often (in ticks) a vehicle rescans
	// its radar-visible set and reclassifies neighbors.
	InteractionScanInterval = 20 // 200ms / TimeStep

	// IgnoreResetInterval is how often (in ticks) the cached to_ignore
	// set is cleared, allowing previously-ignored neighbors to be
	// reclassified.
	IgnoreResetInterval = 100 // 1000ms / TimeStep

	// YieldBehindTolerance is how far behind a vehicle a yield match
	// point may be and still count as a yield candidate.
	YieldBehindTolerance = TileSize / 1.5

	// LeaderGapMargin is subtracted from the raw leader distance (after
	// half-lengths) when computing the following gap.
	LeaderGapMargin = TileSize / 50

	// SlowingDistanceFactor multiplies yielding distance to get the
	// distance at which a vehicle starts slowing (rather than yielding)
	// for an upcoming crossing.
	SlowingDistanceFactor = 1.5

	// CommitMargin is subtracted from yielding distance to determine
	// whether a vehicle is too close to stop cleanly ("on the way").
	CommitMargin = TileSize / 10
)

// LeaderSpeedTier is one bucket of the leader-following speed cap table,
// keyed by gap-as-a-fraction-of-tile.
type LeaderSpeedTier struct {
	GapFraction float64
	MinSpeed    float64
	SpeedFactor float64
}

// LeaderSpeedTiers are checked in order; the first tier whose
// GapFraction*TileSize is not exceeded by the gap applies. A gap at or
// below the first tier's threshold means the follower is blocked outright.
var LeaderSpeedTiers = []LeaderSpeedTier{
	{GapFraction: 0.1, MinSpeed: 0, SpeedFactor: 0}, // blocked
	{GapFraction: 0.2, MinSpeed: 2.5, SpeedFactor: 0.7},
	{GapFraction: 0.4, MinSpeed: 3.0, SpeedFactor: 1.0},
	{GapFraction: 0.7, MinSpeed: 6.5, SpeedFactor: 1.2},
	{GapFraction: 1.0, MinSpeed: 8.0, SpeedFactor: 1.5},
}
