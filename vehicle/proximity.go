package vehicle

import (
	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/radar"
)

func distance(a, b radar.Vector) float64 { return radar.Distance(a, b) }

// proximity returns the path window relevant to the vehicle's current
// progress: the concatenated samples of the current piece and as many
// of the next three as exist.
func (v *Vehicle) proximity() []radar.Vector {
	window := v.Path.Window()
	out := make([]radar.Vector, len(window))
	for i, p := range window {
		out[i] = vec(p)
	}
	return out
}

// updatePathProgress decides when the vehicle has moved far enough
// along its current path window to advance its progress index, and
// detects arrival at the goal.
func (v *Vehicle) updatePathProgress() {
	up := v.Path.Limit()
	index := v.Path.PieceIndex
	nearby := v.proximity()

	if index+1 == up {
		r := parameter.GoalArrivalDistance
		if distance(v.Pos, vec(v.Path.Goal)) <= r {
			v.Finish()
		}

		close := distance(v.Pos, nearby[v.Path.SampleIndex])
		next := distance(v.Pos, nearby[v.Path.SampleIndex+1])
		for next < close {
			v.Path.AdvanceSample()
			close = distance(v.Pos, nearby[v.Path.SampleIndex])
			next = distance(v.Pos, nearby[v.Path.SampleIndex+1])
		}
		return
	}

	past := nearby[0]
	future := nearby[len(nearby)-1]
	behind := distance(v.Pos, past)
	ahead := distance(v.Pos, future)

	if ahead < behind {
		v.Path.AdvancePiece()
		nearby = v.proximity()
	}

	close := distance(v.Pos, nearby[v.Path.SampleIndex])
	next := distance(v.Pos, nearby[v.Path.SampleIndex+1])
	for next < close {
		v.Path.AdvanceSample()
		close = distance(v.Pos, nearby[v.Path.SampleIndex])
		next = distance(v.Pos, nearby[v.Path.SampleIndex+1])
	}
}

// setRelevantCoordinates trims the current path window: samples before
// the current progress index are dropped from the front until fewer than
// StraightSampleCount/2 of them remain.
func (v *Vehicle) setRelevantCoordinates() {
	relevant := v.proximity()
	subIndex := v.Path.SampleIndex

	for subIndex >= parameter.StraightSampleCount/2 {
		relevant = relevant[1:]
		subIndex--
	}

	v.Last = relevant[len(relevant)-1]
	v.First = relevant[0]
	v.Relevant = relevant
}
