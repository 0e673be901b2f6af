package verlet

import (
	"fmt"

	"github.com/ethereal-sim/capewind/vecmath"
)

// degenerateLength is the constraint length below which solving is
// skipped to avoid division blow-ups.
const degenerateLength = vecmath.Epsilon

// Geometry supplies the dimension-specific hinge operations bending
// constraints need. Planar and Volumetric are the two implementations.
type Geometry[V vecmath.Vector[V]] interface {
	// BendAngle reports the angle at the hinge from ba to bc. ok is
	// false when either arm is degenerate.
	BendAngle(ba, bc V) (angle float64, ok bool)
	// RotateBend rotates v by theta within the bend plane spanned by
	// ba and bc. A degenerate bend plane leaves v unchanged.
	RotateBend(ba, bc, v V, theta float64) V
}

// Distance pulls two particles toward a rest separation. Particles are
// referenced by index into the owning body's arena, never by pointer.
type Distance[V vecmath.Vector[V]] struct {
	A, B       int
	RestLength float64
	Stiffness  float64
	Active     bool
}

// NewDistance creates a distance constraint between arena indices a and b.
func NewDistance[V vecmath.Vector[V]](a, b int, restLength, stiffness float64) (Distance[V], error) {
	if a < 0 || b < 0 || a == b {
		return Distance[V]{}, fmt.Errorf("verlet: invalid distance constraint indices (%d, %d)", a, b)
	}
	if restLength < 0 {
		return Distance[V]{}, fmt.Errorf("verlet: rest length must be non-negative, got %v", restLength)
	}
	if stiffness <= 0 || stiffness > 1 {
		return Distance[V]{}, fmt.Errorf("verlet: stiffness must be in (0, 1], got %v", stiffness)
	}
	return Distance[V]{A: a, B: b, RestLength: restLength, Stiffness: stiffness, Active: true}, nil
}

// Solve applies one positional relaxation step. Half the scaled error is
// split between free endpoints inversely by mass; when one endpoint is
// pinned the free one absorbs the full correction doubled.
func (c *Distance[V]) Solve(parts []Particle[V]) {
	if !c.Active {
		return
	}
	pa := &parts[c.A]
	pb := &parts[c.B]

	delta := pb.Position.Sub(pa.Position)
	length := delta.Norm()
	if length < degenerateLength {
		return
	}

	diff := (length - c.RestLength) / length
	correction := delta.Scale(diff * 0.5 * c.Stiffness)

	switch {
	case !pa.Pinned && !pb.Pinned:
		total := pa.Mass + pb.Mass
		pa.Position = pa.Position.Add(correction.Scale(pb.Mass / total))
		pb.Position = pb.Position.Sub(correction.Scale(pa.Mass / total))
	case !pa.Pinned:
		pa.Position = pa.Position.Add(correction.Scale(2))
	case !pb.Pinned:
		pb.Position = pb.Position.Sub(correction.Scale(2))
	}
}

// CurrentLength returns the present separation of the endpoints.
func (c *Distance[V]) CurrentLength(parts []Particle[V]) float64 {
	return parts[c.B].Position.Sub(parts[c.A].Position).Norm()
}

// Bending resists folding at particle B, the hinge between A and C.
// The rest angle is captured once at construction and never changes.
type Bending[V vecmath.Vector[V]] struct {
	A, B, C   int
	RestAngle float64
	Stiffness float64
}

// NewBending creates a bending constraint over three arena indices,
// capturing the rest angle from the particles' current positions.
func NewBending[V vecmath.Vector[V]](a, b, c int, stiffness float64, parts []Particle[V], geom Geometry[V]) (Bending[V], error) {
	if a < 0 || b < 0 || c < 0 || a == b || b == c || a == c {
		return Bending[V]{}, fmt.Errorf("verlet: invalid bending constraint indices (%d, %d, %d)", a, b, c)
	}
	if stiffness <= 0 || stiffness > 1 {
		return Bending[V]{}, fmt.Errorf("verlet: stiffness must be in (0, 1], got %v", stiffness)
	}
	ba := parts[a].Position.Sub(parts[b].Position)
	bc := parts[c].Position.Sub(parts[b].Position)
	rest, ok := geom.BendAngle(ba, bc)
	if !ok {
		return Bending[V]{}, fmt.Errorf("verlet: degenerate rest configuration for bending constraint (%d, %d, %d)", a, b, c)
	}
	return Bending[V]{A: a, B: b, C: c, RestAngle: rest, Stiffness: stiffness}, nil
}

// Solve rotates the free endpoints about the hinge so the current angle
// relaxes toward the rest angle.
func (c *Bending[V]) Solve(parts []Particle[V], geom Geometry[V]) {
	pa := &parts[c.A]
	pb := &parts[c.B]
	pc := &parts[c.C]

	ba := pa.Position.Sub(pb.Position)
	bc := pc.Position.Sub(pb.Position)

	angle, ok := geom.BendAngle(ba, bc)
	if !ok {
		return
	}
	diff := vecmath.WrapAngle(angle - c.RestAngle)
	correction := diff * c.Stiffness * 0.5

	// Rotating ba toward bc shrinks the hinge angle, so a positive
	// deviation closes on the rest angle from both sides.
	if !pa.Pinned {
		pa.Position = pb.Position.Add(geom.RotateBend(ba, bc, ba, correction))
	}
	if !pc.Pinned {
		pc.Position = pb.Position.Add(geom.RotateBend(ba, bc, bc, -correction))
	}
}
