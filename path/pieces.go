package path

import (
	"math"

	"github.com/lixenwraith/citygrid/parameter"
)

// cornerSign is the (sx, sy) corner-selection pair used by the reference
// implementation to pick which of a tile's four corners a piece attaches
// to, and which lane offset / curve quadrant that implies.
type cornerSign struct{ sx, sy int }

var (
	signPP = cornerSign{1, 1}
	signNP = cornerSign{-1, 1}
	signNN = cornerSign{-1, -1}
	signPN = cornerSign{1, -1}
)

// buildLine samples a straight path piece anchored at attach, along the
// lane offset selected by sign. This is a direct port of path.py's
// set_line: two of the four sign combinations require reversing the
// sample order (so the index still grows along travel direction) and
// patching the far end with one extra point to avoid leaving a gap to
// the next piece.
func buildLine(attach Point, sign cornerSign) Piece {
	size := parameter.TileSize
	count := parameter.StraightSampleCount

	x0, y0 := attach.X, attach.Y
	var xStep, yStep float64
	reverse := false

	switch sign {
	case signPP:
		xStep, yStep = 0, size/float64(count)
		x0 += parameter.FarLaneOffset
		reverse = true
	case signNP:
		xStep, yStep = size/float64(count), 0
		y0 += parameter.NearLaneOffset
		reverse = true
	case signNN:
		xStep, yStep = 0, size/float64(count)
		x0 += parameter.NearLaneOffset
	default: // signPN
		xStep, yStep = size/float64(count), 0
		y0 += parameter.FarLaneOffset
	}

	points := make([]Point, count)
	for i := 0; i < count; i++ {
		points[i] = Point{X: x0 + float64(i)*xStep, Y: y0 + float64(i)*yStep}
	}

	if reverse {
		switch sign {
		case signPP:
			points = append(points, Point{X: x0, Y: y0 + size})
		case signNP:
			points = append(points, Point{X: x0 + size, Y: y0})
		}
		reversePoints(points)
		points = points[:len(points)-1]
	}

	return Piece{Samples: points}
}

func reversePoints(p []Point) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// buildWideCurve samples a wide left (counter-clockwise) curve piece: a
// quarter of a large circle. Direct port of path.py's set_curve_1.
func buildWideCurve(attach Point, sign cornerSign) Piece {
	return buildCurve(attach, sign, parameter.WideCurveRadius, parameter.WideCurveSampleCount, false)
}

// buildTightCurve samples a tight right (clockwise) curve piece: a
// quarter of a small circle, with an appended cap sample at the far end
// to prevent a gap with the next piece. Direct port of path.py's
// set_curve_2.
func buildTightCurve(attach Point, sign cornerSign) Piece {
	return buildCurve(attach, sign, parameter.TightCurveRadius, parameter.TightCurveSampleCount, true)
}

func buildCurve(attach Point, sign cornerSign, radius float64, count int, tight bool) Piece {
	size := parameter.TileSize
	step := 90.0 / float64(count)
	x0, y0 := attach.X, attach.Y

	var angle float64
	switch sign {
	case signPP:
		angle = 180
		x0 += size
	case signNP:
		angle = 270
	case signNN:
		angle = 0
		y0 += size
	default: // signPN
		angle = 90
		x0 += size
		y0 += size
	}

	points := make([]Point, count)
	for i := 0; i < count; i++ {
		a := angle + float64(i)*step
		points[i] = Point{
			X: x0 + radius*math.Cos(a*math.Pi/180),
			Y: y0 - radius*math.Sin(a*math.Pi/180),
		}
	}

	if !tight {
		return Piece{Samples: points}
	}

	var cap Point
	switch sign {
	case signPP:
		cap = Point{X: x0, Y: y0 + radius}
	case signNP:
		cap = Point{X: x0 + radius, Y: y0}
	case signNN:
		cap = Point{X: x0, Y: y0 - radius}
	default:
		cap = Point{X: x0 - radius, Y: y0}
	}
	points = append(points, cap)
	reversePoints(points)
	points = points[:len(points)-1]

	return Piece{Samples: points}
}
