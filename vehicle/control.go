package vehicle

import (
	"math"

	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/radar"
)

// onPath reports whether the vehicle's position lies within its path's
// lane-following radius of any relevant path sample.
func (v *Vehicle) onPath() bool {
	r := v.Path.Radius
	for _, point := range v.Relevant {
		if distance(v.Pos, point) <= r {
			return true
		}
	}
	return false
}

// onCourse reports whether the point just ahead of the vehicle, along
// its current heading, lies within the path radius of a relevant sample.
func (v *Vehicle) onCourse() bool {
	const lookaheadMagnitude = 25
	n := radar.Normalize(v.Velocity)
	headed := radar.Vector{X: v.Pos.X + lookaheadMagnitude*n.X, Y: v.Pos.Y - lookaheadMagnitude*n.Y}

	r := v.Path.Radius
	for _, point := range v.Relevant {
		if distance(point, headed) <= r {
			return true
		}
	}
	return false
}

// closestRelevant returns the index of, and distance to, the relevant
// coordinate nearest the vehicle's current position.
func (v *Vehicle) closestRelevant() (index int, dist float64) {
	dist = math.Inf(1)
	for i, point := range v.Relevant {
		d := distance(v.Pos, point)
		if d < dist {
			dist = d
			index = i
		}
	}
	return index, dist
}

// seek steers the vehicle back toward its path when it has drifted off
// it entirely, approaching at a shallower angle the closer it gets.
func (v *Vehicle) seek(offroadSpeed float64) {
	v.achieveSpeed(offroadSpeed)

	i0, dist := v.closestRelevant()
	closest := v.Relevant[i0]

	x := parameter.PathRadius
	r := v.Path.Radius

	var approachAngle float64
	switch {
	case dist > r+3*x:
		approachAngle = parameter.SeekFarAngle
	case dist > r+2*x:
		approachAngle = 75
	case dist > r+1.5*x:
		approachAngle = 60
	case dist > r+x:
		approachAngle = 40
	case dist > r+0.5*x:
		approachAngle = 20
	case dist > r+0.25*x:
		approachAngle = 10
	default:
		approachAngle = parameter.SeekNearAngle
	}

	vPosition := radar.Vector{X: v.Pos.X - closest.X, Y: -(v.Pos.Y - closest.Y)}
	ahead2 := v.Relevant[i0+2]
	vPath := radar.Vector{X: ahead2.X - closest.X, Y: -ahead2.Y + closest.Y}
	angle := v.Rotation * math.Pi / 180
	vDirection := radar.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
	angleBetween := radar.CheckAngle(vPath, vDirection)

	fSteer := v.defaultForces.Normal

	if radar.CheckAngle(vPath, vPosition) >= 0 {
		approachAngle = -approachAngle
		switch {
		case angleBetween > approachAngle:
			if angleBetween-1 < approachAngle {
				return
			}
			v.steerRight(fSteer)
		case angleBetween < approachAngle:
			if angleBetween+1 > approachAngle {
				return
			}
			v.steerLeft(fSteer)
		}
		return
	}

	switch {
	case angleBetween < approachAngle:
		if angleBetween+1 > approachAngle {
			return
		}
		v.steerLeft(fSteer)
	case angleBetween > approachAngle:
		if angleBetween-1 < approachAngle {
			return
		}
		v.steerRight(fSteer)
	}
}

// regainCourse steers the vehicle back onto its heading once it is on
// the path but pointed the wrong way.
func (v *Vehicle) regainCourse(turnSpeed, cruiseSpeed float64) {
	i0, _ := v.closestRelevant()

	const lead = parameter.RegainCourseLookahead
	start := i0 + lead
	end := i0 + lead/2
	vPath := radar.Vector{X: v.Relevant[start].X - v.Relevant[end].X, Y: -v.Relevant[start].Y + v.Relevant[end].Y}

	angle := v.Rotation * math.Pi / 180
	vDirection := radar.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
	angleBetween := radar.CheckAngle(vPath, vDirection)

	if math.Abs(angleBetween) <= parameter.OnCourseAngleTolerance {
		v.achieveSpeed(cruiseSpeed)
	} else {
		v.achieveSpeed(turnSpeed)
	}

	fSteer := v.defaultForces.Normal
	switch {
	case angleBetween > 0:
		v.steerRight(fSteer)
	case angleBetween < 0:
		v.steerLeft(fSteer)
	}
}

// steerLeft rotates the vehicle's velocity vector counter-clockwise by
// the rotation F can achieve within its steering-radius limit.
func (v *Vehicle) steerLeft(f float64) {
	if v.Speed() == 0 {
		return
	}

	angle := v.Rotation
	speed := v.Speed()
	f = math.Min(f, v.FNormal)

	rotateMax := speed / v.MinRadius
	rotateDesired := 100 * f / (speed * v.Mass)
	rotate := math.Min(rotateMax, rotateDesired)
	angle += v.scale(rotate)

	var vx, vy float64
	switch {
	case v.Velocity.X >= 0 && v.Velocity.Y >= 0:
		vx = speed * cosDeg(angle)
		vy = math.Sqrt(speed*speed - vx*vx)
	case v.Velocity.X < 0 && v.Velocity.Y >= 0:
		vx = -speed * sinDeg(angle-90)
		if angle <= 180 {
			vy = math.Sqrt(speed*speed - vx*vx)
		} else {
			vy = -math.Sqrt(speed*speed - vx*vx)
		}
	case v.Velocity.X < 0 && v.Velocity.Y < 0:
		vx = -speed * cosDeg(angle-180)
		vy = -math.Sqrt(speed*speed - vx*vx)
	default:
		vx = speed * sinDeg(angle-270)
		if angle < 360 {
			vy = -math.Sqrt(speed*speed - vx*vx)
		} else {
			vy = math.Sqrt(speed*speed - vx*vx)
		}
	}

	v.Velocity = radar.Vector{X: vx, Y: vy}
}

// steerRight is steerLeft's mirror image.
func (v *Vehicle) steerRight(f float64) {
	if v.Speed() == 0 {
		return
	}

	angle := v.Rotation
	speed := v.Speed()
	f = math.Min(f, v.FNormal)

	rotateMax := speed / v.MinRadius
	rotateDesired := 100 * f / (speed * v.Mass)
	rotate := math.Min(rotateMax, rotateDesired)
	angle -= v.scale(rotate)

	var vx, vy float64
	switch {
	case v.Velocity.X >= 0 && v.Velocity.Y >= 0:
		vx = speed * cosDeg(angle)
		if angle >= 0 {
			vy = math.Sqrt(speed*speed - vx*vx)
		} else {
			vy = -math.Sqrt(speed*speed - vx*vx)
		}
	case v.Velocity.X < 0 && v.Velocity.Y >= 0:
		vx = -speed * sinDeg(angle-90)
		vy = math.Sqrt(speed*speed - vx*vx)
	case v.Velocity.X < 0 && v.Velocity.Y < 0:
		vx = -speed * cosDeg(angle-180)
		if angle >= 180 {
			vy = -math.Sqrt(speed*speed - vx*vx)
		} else {
			vy = math.Sqrt(speed*speed - vx*vx)
		}
	default:
		vx = speed * sinDeg(angle-270)
		vy = -math.Sqrt(speed*speed - vx*vx)
	}

	v.Velocity = radar.Vector{X: vx, Y: vy}
}

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

// achieveSpeed drives the vehicle's speed toward desiredSpeed, widening
// the usual accelerate/brake force budget when the vehicle is tangled
// up in a blocking relationship so it clears the way faster.
func (v *Vehicle) achieveSpeed(desiredSpeed float64) {
	if v.Speed() == desiredSpeed {
		return
	}

	fAccelerate, fBrake := v.defaultForces.Accelerate, v.defaultForces.Brake

	switch {
	case v.Blocked && len(v.Blocking) > 0:
		if v.onPath() && v.onCourse() {
			fAccelerate *= 1.5
			fBrake *= 1.5
		}
	case v.Blocked:
		fBrake *= 1.5
	case len(v.Blocking) > 0:
		if v.onPath() && v.onCourse() {
			fAccelerate *= 1.5
		}
	}

	matchVelocity := func() {
		angle := v.Rotation * math.Pi / 180
		v.Velocity = radar.Vector{X: desiredSpeed * math.Cos(angle), Y: desiredSpeed * math.Sin(angle)}
	}

	switch {
	case v.Speed() > desiredSpeed:
		if v.Speed()-parameter.SpeedMatchQuantum >= desiredSpeed {
			v.decelerate(fBrake)
		} else {
			matchVelocity()
		}
	case v.Speed() < desiredSpeed:
		if v.Speed()+parameter.SpeedMatchQuantum <= desiredSpeed {
			v.accelerate(fAccelerate)
		} else {
			matchVelocity()
		}
	}
}

// accelerate grows the vehicle's velocity magnitude toward MaxSpeed by
// one tick's worth of the given force.
func (v *Vehicle) accelerate(f float64) {
	if v.Speed() == v.MaxSpeed {
		return
	}

	angle := v.Rotation * math.Pi / 180

	if v.Speed() == 0 {
		v.Velocity.X = parameter.RestVelocitySeed * math.Cos(angle)
		v.Velocity.Y = parameter.RestVelocitySeed * math.Sin(angle)
	}

	f = math.Min(f, v.FPositive)
	acceleration := v.scale(f / v.Mass)
	xStep := math.Abs(acceleration * math.Cos(angle))
	yStep := math.Sqrt(acceleration*acceleration - xStep*xStep)

	xMax := math.Abs(v.MaxSpeed * math.Cos(angle))
	yMax := math.Abs(v.MaxSpeed * math.Sin(angle))

	if math.Abs(v.Velocity.X)+xStep >= xMax {
		if v.Velocity.X > 0 {
			v.Velocity.X = xMax
		} else {
			v.Velocity.X = -xMax
		}
		if v.Velocity.Y > 0 {
			v.Velocity.Y = yMax
		} else {
			v.Velocity.Y = -yMax
		}
		return
	}

	if v.Velocity.X > 0 {
		v.Velocity.X += xStep
	} else {
		v.Velocity.X -= xStep
	}
	if v.Velocity.Y > 0 {
		v.Velocity.Y += yStep
	} else {
		v.Velocity.Y -= yStep
	}
}

// decelerate shrinks the vehicle's velocity magnitude toward zero by one
// tick's worth of the given force.
func (v *Vehicle) decelerate(f float64) {
	if v.Speed() == 0 {
		return
	}

	f = math.Min(f, v.FNegative)
	acceleration := v.scale(f / v.Mass)

	angle := v.Rotation * math.Pi / 180
	xStep := math.Abs(acceleration * math.Cos(angle))
	yStep := math.Sqrt(acceleration*acceleration - xStep*xStep)

	switch {
	case math.Abs(v.Velocity.X) <= xStep:
		v.Velocity.X = 0
	case v.Velocity.X > 0:
		v.Velocity.X -= xStep
	default:
		v.Velocity.X += xStep
	}

	switch {
	case math.Abs(v.Velocity.Y) < yStep:
		v.Velocity.Y = 0
	case v.Velocity.Y > 0:
		v.Velocity.Y -= yStep
	default:
		v.Velocity.Y += yStep
	}
}
