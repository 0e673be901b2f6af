package game

import (
	"math"

	"github.com/ethereal-sim/capewind/components"
	"github.com/ethereal-sim/capewind/config"
	"github.com/ethereal-sim/capewind/vecmath"
)

// updateFlight applies glide physics, control forces, and wind push to
// the glider. Climbing bleeds speed and drains reserve, diving builds
// speed and recovers some, level gliding trades sink rate for lift.
func (g *Game) updateFlight(dt float64) {
	fcfg := config.Cfg().Flight
	vel := g.velMap.Get(g.glider)
	pos := g.posMap.Get(g.glider)
	fl := g.flightMap.Get(g.glider)

	v := vecmath.Vec2{X: vel.X, Y: vel.Y}
	speed := v.Norm()

	fl.State = flightState(fl, v, fcfg)

	var force vecmath.Vec2

	switch fl.State {
	case components.StateClimbing:
		if speed > fcfg.MinGlideSpeed {
			loss := 1 - (1-fcfg.SpeedLossOnClimb)*dt*60
			v = v.Scale(loss)
		}
	case components.StateDiving:
		if speed < fcfg.MaxGlideSpeed {
			gain := 1 + (fcfg.SpeedGainOnDive-1)*dt*60
			v = v.Scale(gain)
		}
	case components.StateGliding:
		if v.Y < 0 && speed > fcfg.MinGlideSpeed {
			lift := -v.Y * fcfg.AltitudeGain * dt
			force.Y -= lift * 100
		}
		// Faster gliders sink slower.
		gravity := 150 * (1 - math.Min(speed/fcfg.MaxGlideSpeed, 1)*0.5)
		force.Y += gravity
	case components.StateHovering:
		force.Y += 200
	}

	if fl.InputUp {
		force.Y -= fcfg.LiftForce
		fl.Energy -= dt * 20
	}
	if fl.InputDown {
		force.Y += fcfg.DiveForce
		fl.Energy += dt * 5
	}
	if fl.InputLeft {
		force.X -= fcfg.HorizontalForce
	}
	if fl.InputRight {
		force.X += fcfg.HorizontalForce
	}
	fl.Energy = vecmath.Clamp(fl.Energy, 0, 100)

	// Wind pushes the glider around, with a wobble that grows with the
	// local wind strength.
	at := vecmath.Vec2{X: pos.X, Y: pos.Y}
	windForce := g.windField.VectorAt(at).Scale(fcfg.WindAssist)
	turbulence := g.windField.StrengthAt(at) / 100 * fcfg.TurbulenceEffect
	wobble := vecmath.Vec2{
		X: math.Sin(fl.StateTimer * 5),
		Y: math.Cos(fl.StateTimer * 7),
	}.Scale(turbulence * 50)
	force = force.Add(windForce).Add(wobble)

	// Semi-implicit step with a speed cap and multiplicative drag.
	v = v.Add(force.Scale(dt))
	if sp := v.Norm(); sp > config.Cfg().Glider.MaxSpeed {
		v = v.Normed().Scale(config.Cfg().Glider.MaxSpeed)
	}
	v = v.Scale(config.Cfg().Glider.Drag)

	vel.X = v.X
	vel.Y = v.Y
	fl.StateTimer += dt
}

// flightState picks the current mode from input and motion.
func flightState(fl *components.Flight, v vecmath.Vec2, fcfg config.FlightConfig) components.FlightState {
	switch {
	case fl.InputUp && fl.Energy > 0:
		return components.StateClimbing
	case fl.InputDown:
		return components.StateDiving
	case math.Abs(v.X) > fcfg.MinGlideSpeed || math.Abs(v.Y) > 10:
		return components.StateGliding
	default:
		return components.StateHovering
	}
}

// updateGlider advances position and turns the facing toward the
// velocity direction.
func (g *Game) updateGlider(dt float64) {
	pos := g.posMap.Get(g.glider)
	vel := g.velMap.Get(g.glider)
	rot := g.rotMap.Get(g.glider)

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	v := vecmath.Vec2{X: vel.X, Y: vel.Y}
	if v.Norm() > 1 {
		target := math.Atan2(v.Y, v.X)
		rot.Heading += vecmath.WrapAngle(target-rot.Heading) * 0.1
	}
}

// applyBoost pushes the glider forward along its facing.
func (g *Game) applyBoost(dt float64) {
	rot := g.rotMap.Get(g.glider)
	vel := g.velMap.Get(g.glider)

	boost := vecmath.FromAngle(rot.Heading, config.Cfg().Glider.Acceleration)
	vel.X += boost.X * dt
	vel.Y += boost.Y * dt
}

// capeAttachPoint is where the cape pins to the glider's back.
func (g *Game) capeAttachPoint() vecmath.Vec2 {
	pos := g.posMap.Get(g.glider)
	rot := g.rotMap.Get(g.glider)
	offset := vecmath.FromAngle(rot.Heading+math.Pi, config.Cfg().Glider.CapeOffset)
	return vecmath.Vec2{X: pos.X, Y: pos.Y}.Add(offset)
}

// GlideEfficiency reports how close the glider is to its best-glide
// speed, 0 to 1.
func (g *Game) GlideEfficiency() float64 {
	fcfg := config.Cfg().Flight
	vel := g.velMap.Get(g.glider)
	speed := vecmath.Vec2{X: vel.X, Y: vel.Y}.Norm()

	optimal := (fcfg.MinGlideSpeed + fcfg.MaxGlideSpeed) * 0.4
	diff := math.Abs(speed-optimal) / optimal
	return math.Max(0, 1-diff)
}
