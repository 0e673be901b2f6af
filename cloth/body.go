package cloth

import (
	"fmt"
	"math"

	"github.com/ethereal-sim/capewind/vecmath"
	"github.com/ethereal-sim/capewind/verlet"
)

// Sampler provides environmental force vectors at world positions.
// wind.Field satisfies it for both dimensions.
type Sampler[V vecmath.Vector[V]] interface {
	VectorAt(pos V) V
}

// Body owns a row-major grid of particles and the constraint set built
// over it. Row 0 is pinned and tracks an external anchor; everything
// else hangs off it under gravity, wind and drag.
type Body[V vecmath.Vector[V]] struct {
	cfg   Config
	geom  verlet.Geometry[V]
	frame frame[V]

	particles   []verlet.Particle[V]
	constraints []verlet.Distance[V]
	bends       []verlet.Bending[V]

	forward        V
	anchorVelocity V
	time           float64

	// extraForces applies the dimension-specific force extras
	// (aerodynamics, billow) before integration; nil for planar bodies.
	extraForces func(b *Body[V], vectorAt func(V) V)
}

// NewPlanar builds a 2D body hanging below the anchor.
func NewPlanar(cfg Config, anchor vecmath.Vec2) (*Body[vecmath.Vec2], error) {
	return newBody[vecmath.Vec2](cfg, anchor, vecmath.Vec2{}, verlet.Planar{}, planarFrame{}, nil)
}

// NewVolumetric builds a 3D body trailing behind the anchor's facing
// direction, with aerodynamic drag and lift enabled.
func NewVolumetric(cfg Config, anchor, forward vecmath.Vec3) (*Body[vecmath.Vec3], error) {
	if forward.Norm() < vecmath.Epsilon {
		return nil, fmt.Errorf("cloth: forward direction must be non-zero")
	}
	return newBody[vecmath.Vec3](cfg, anchor, forward.Normed(), verlet.Volumetric{}, volumeFrame{}, applyAerodynamics)
}

func newBody[V vecmath.Vector[V]](cfg Config, anchor, forward V, geom verlet.Geometry[V], fr frame[V], extras func(*Body[V], func(V) V)) (*Body[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	b := &Body[V]{
		cfg:         cfg,
		geom:        geom,
		frame:       fr,
		forward:     forward,
		extraForces: extras,
	}
	if err := b.buildParticles(anchor); err != nil {
		return nil, err
	}
	if err := b.buildConstraints(); err != nil {
		return nil, err
	}
	if err := b.buildBendingConstraints(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Body[V]) index(row, col int) int {
	return row*b.cfg.Width + col
}

func (b *Body[V]) buildParticles(anchor V) error {
	b.particles = make([]verlet.Particle[V], 0, b.cfg.Segments*b.cfg.Width)
	halfWidth := float64(b.cfg.Width-1) * b.cfg.WidthSpacing * 0.5

	for row := 0; row < b.cfg.Segments; row++ {
		for col := 0; col < b.cfg.Width; col++ {
			lateral := float64(col)*b.cfg.WidthSpacing - halfWidth
			depth := float64(row) * b.cfg.SegmentLength
			pos := b.frame.Drape(anchor, b.forward, lateral, depth)

			mass := 1 + float64(row)*b.cfg.MassGrowth
			p, err := verlet.NewParticle(pos, mass, b.cfg.Damping, row == 0)
			if err != nil {
				return err
			}
			b.particles = append(b.particles, p)
		}
	}
	return nil
}

func (b *Body[V]) buildConstraints() error {
	diagonal := math.Sqrt(b.cfg.SegmentLength*b.cfg.SegmentLength + b.cfg.WidthSpacing*b.cfg.WidthSpacing)

	add := func(a, bIdx int, rest, stiffness float64) error {
		c, err := verlet.NewDistance[V](a, bIdx, rest, stiffness)
		if err != nil {
			return err
		}
		b.constraints = append(b.constraints, c)
		return nil
	}

	for row := 0; row < b.cfg.Segments; row++ {
		for col := 0; col < b.cfg.Width; col++ {
			// Structural: next row, next column.
			if row < b.cfg.Segments-1 {
				if err := add(b.index(row, col), b.index(row+1, col), b.cfg.SegmentLength, b.cfg.Stiffness); err != nil {
					return err
				}
			}
			if col < b.cfg.Width-1 {
				if err := add(b.index(row, col), b.index(row, col+1), b.cfg.WidthSpacing, b.cfg.Stiffness*0.9); err != nil {
					return err
				}
			}

			// Shear: both diagonals.
			if row < b.cfg.Segments-1 && col < b.cfg.Width-1 {
				if err := add(b.index(row, col), b.index(row+1, col+1), diagonal, b.cfg.Stiffness*0.5); err != nil {
					return err
				}
			}
			if row < b.cfg.Segments-1 && col > 0 {
				if err := add(b.index(row, col), b.index(row+1, col-1), diagonal, b.cfg.Stiffness*0.5); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (b *Body[V]) buildBendingConstraints() error {
	add := func(a, hinge, c int, stiffness float64) error {
		bend, err := verlet.NewBending(a, hinge, c, stiffness, b.particles, b.geom)
		if err != nil {
			return err
		}
		b.bends = append(b.bends, bend)
		return nil
	}

	// Along the hang direction.
	for row := 0; row < b.cfg.Segments-2; row++ {
		for col := 0; col < b.cfg.Width; col++ {
			if err := add(b.index(row, col), b.index(row+1, col), b.index(row+2, col), b.cfg.BendStiffness); err != nil {
				return err
			}
		}
	}

	// Across the width.
	for row := 0; row < b.cfg.Segments; row++ {
		for col := 0; col < b.cfg.Width-2; col++ {
			if err := add(b.index(row, col), b.index(row, col+1), b.index(row, col+2), b.cfg.BendStiffness*0.6); err != nil {
				return err
			}
		}
	}
	return nil
}

// Update applies gravity, wind, and drag to every free particle, then
// integrates the grid. dt is clamped to MaxStep so a stalled frame
// cannot blow the cloth up.
func (b *Body[V]) Update(dt float64, field Sampler[V]) {
	if dt > b.cfg.MaxStep {
		dt = b.cfg.MaxStep
	}
	b.time += dt

	gravity := b.frame.Gravity(b.cfg.Gravity)
	rampSpan := 1 - b.cfg.WindRampBase

	for row := 0; row < b.cfg.Segments; row++ {
		// Wind bites harder toward the free edge.
		rowFactor := float64(row) / float64(b.cfg.Segments)
		windScale := b.cfg.WindInfluence * (b.cfg.WindRampBase + rampSpan*rowFactor)

		for col := 0; col < b.cfg.Width; col++ {
			p := &b.particles[b.index(row, col)]
			if p.Pinned {
				continue
			}

			p.ApplyForce(gravity.Scale(p.Mass))
			if field != nil {
				p.ApplyForce(field.VectorAt(p.Position).Scale(windScale))
			}
			p.ApplyForce(p.Velocity().Scale(-b.cfg.LinearDrag))
		}
	}

	if b.extraForces != nil && field != nil {
		b.extraForces(b, field.VectorAt)
	}

	for i := range b.particles {
		b.particles[i].Integrate(dt)
	}
}

// SolveConstraints runs Gauss-Seidel relaxation passes in creation
// order. Bending constraints run on alternating passes so they don't
// over-stiffen the grid.
func (b *Body[V]) SolveConstraints(iterations int) {
	for i := 0; i < iterations; i++ {
		for j := range b.constraints {
			b.constraints[j].Solve(b.particles)
		}
		if i%2 == 0 {
			for j := range b.bends {
				b.bends[j].Solve(b.particles, b.geom)
			}
		}
	}
}

// SetAttachPoint relocates the pinned row to track the anchor, keeping
// the lateral spread from the facing direction set at construction.
func (b *Body[V]) SetAttachPoint(point V) {
	b.SetAttachPose(point, b.forward)
}

// SetAttachPose relocates the pinned row and re-orients its spread to a
// new facing direction.
func (b *Body[V]) SetAttachPose(point, forward V) {
	b.forward = forward
	halfWidth := float64(b.cfg.Width-1) * b.cfg.WidthSpacing * 0.5

	for col := 0; col < b.cfg.Width; col++ {
		lateral := float64(col)*b.cfg.WidthSpacing - halfWidth
		b.particles[b.index(0, col)].MoveTo(b.frame.Drape(point, forward, lateral, 0))
	}
}

// SetAttachVelocity seeds a fraction of the anchor's velocity into the
// pinned row so motion bleeds into the cloth continuously instead of as
// an impulse.
func (b *Body[V]) SetAttachVelocity(v V) {
	b.anchorVelocity = v
	carried := v.Scale(b.cfg.AnchorVelocityCarry)
	for col := 0; col < b.cfg.Width; col++ {
		b.particles[b.index(0, col)].SetVelocity(carried)
	}
}

// Particle returns a copy of the particle at a grid slot.
func (b *Body[V]) Particle(row, col int) verlet.Particle[V] {
	return b.particles[b.index(row, col)]
}

// Rows returns the number of rows along the cloth length.
func (b *Body[V]) Rows() int { return b.cfg.Segments }

// Cols returns the number of columns across the cloth.
func (b *Body[V]) Cols() int { return b.cfg.Width }

// Config returns the body's configuration.
func (b *Body[V]) Config() Config { return b.cfg }

// Distances exposes the distance constraints for debug visualization.
func (b *Body[V]) Distances() []verlet.Distance[V] { return b.constraints }

// ConstraintError sums |currentLength - restLength| over the active
// distance constraints.
func (b *Body[V]) ConstraintError() float64 {
	total := 0.0
	for i := range b.constraints {
		c := &b.constraints[i]
		if !c.Active {
			continue
		}
		total += math.Abs(c.CurrentLength(b.particles) - c.RestLength)
	}
	return total
}

// KineticEnergy sums 0.5 * m * |v|^2 over the grid, useful for
// telemetry and stability monitoring.
func (b *Body[V]) KineticEnergy() float64 {
	total := 0.0
	for i := range b.particles {
		p := &b.particles[i]
		total += 0.5 * p.Mass * p.Velocity().NormSq()
	}
	return total
}
