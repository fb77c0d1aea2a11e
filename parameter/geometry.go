package parameter

// Tile & Path Geometry
const (
	// TileSize is the nominal width/height of one grid tile.
	TileSize = 100.0

	// PathRadius is the nominal lane-following tolerance radius, before
	// the per-kind scaling factor from vehicle.go is applied.
	PathRadius = 0.1875 * TileSize

	// VehicleSize is the nominal vehicle footprint scale, derived from
	// PathRadius.
	VehicleSize = 1.2 * PathRadius

	// StraightSampleCount is the number of polyline samples per straight
	// path piece.
	StraightSampleCount = 20

	// WideCurveSampleCount is the number of samples for a wide left
	// (counter-clockwise) curve piece.
	WideCurveSampleCount = 20

	// WideCurveRadius is the radius of a wide left curve, as a fraction
	// of TileSize.
	WideCurveRadius = (11.0 / 16.0) * TileSize

	// TightCurveSampleCount is the number of samples for a tight right
	// (clockwise) curve piece, before the appended cap sample.
	TightCurveSampleCount = 12

	// TightCurveRadius is the radius of a tight right curve, as a
	// fraction of TileSize.
	TightCurveRadius = (5.0 / 16.0) * TileSize

	// NearLaneOffset and FarLaneOffset are the two legal lane-centerline
	// offsets from a tile edge, selected by travel direction to keep
	// right-hand traffic.
	NearLaneOffset = (5.0 / 16.0) * TileSize
	FarLaneOffset  = (11.0 / 16.0) * TileSize

	// GoalArrivalDistance is the distance to a path's final sample at
	// which a vehicle is considered to have reached its goal.
	GoalArrivalDistance = TileSize / 2
)

// Radar
const (
	// RadarRange is the sensing radius of a vehicle's radar circle.
	RadarRange = 1.75 * TileSize

	// IntersectMinDistance is the polyline sample-pair distance below
	// which two paths are considered to cross.
	IntersectMinDistance = TileSize / 10

	// IntersectIdenticalDistance is the sample-pair distance below which
	// two paths are considered locally identical (same lane).
	IntersectIdenticalDistance = TileSize / 100
)
