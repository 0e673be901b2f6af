// Package verlet implements position-based particle integration and the
// iterative distance/bending constraints the cloth solver relaxes.
package verlet

import (
	"fmt"

	"github.com/ethereal-sim/capewind/vecmath"
)

// Particle is a point mass advanced by Verlet integration. Velocity is
// never stored; it is always the difference between the current and
// previous positions, so constraint corrections automatically feed back
// into future velocity.
type Particle[V vecmath.Vector[V]] struct {
	Position     V
	PrevPosition V
	Mass         float64
	Pinned       bool
	Damping      float64

	acceleration V
}

// NewParticle creates a particle at rest. Mass must be positive and
// damping must lie in (0, 1].
func NewParticle[V vecmath.Vector[V]](pos V, mass, damping float64, pinned bool) (Particle[V], error) {
	if mass <= 0 {
		return Particle[V]{}, fmt.Errorf("verlet: particle mass must be positive, got %v", mass)
	}
	if damping <= 0 || damping > 1 {
		return Particle[V]{}, fmt.Errorf("verlet: particle damping must be in (0, 1], got %v", damping)
	}
	return Particle[V]{
		Position:     pos,
		PrevPosition: pos,
		Mass:         mass,
		Damping:      damping,
		Pinned:       pinned,
	}, nil
}

// ApplyForce accumulates force/mass into the acceleration buffer.
// Pinned particles ignore forces.
func (p *Particle[V]) ApplyForce(f V) {
	if p.Pinned {
		return
	}
	p.acceleration = p.acceleration.Add(f.Scale(1 / p.Mass))
}

// Integrate advances the particle by one Verlet step and clears the
// acceleration accumulator. Pinned particles only clear the accumulator.
func (p *Particle[V]) Integrate(dt float64) {
	var zero V
	if p.Pinned {
		p.acceleration = zero
		return
	}

	velocity := p.Position.Sub(p.PrevPosition).Scale(p.Damping)
	p.PrevPosition = p.Position
	p.Position = p.Position.Add(velocity).Add(p.acceleration.Scale(dt * dt))
	p.acceleration = zero
}

// Velocity returns the implied per-step velocity.
func (p *Particle[V]) Velocity() V {
	return p.Position.Sub(p.PrevPosition)
}

// SetVelocity rewrites the previous position so the next Velocity call
// returns exactly v.
func (p *Particle[V]) SetVelocity(v V) {
	p.PrevPosition = p.Position.Sub(v)
}

// MoveTo relocates the particle. A pinned particle snaps its previous
// position too (zero implied velocity); a free particle keeps its
// velocity across the teleport.
func (p *Particle[V]) MoveTo(pos V) {
	delta := pos.Sub(p.Position)
	p.Position = pos
	if p.Pinned {
		p.PrevPosition = pos
	} else {
		p.PrevPosition = p.PrevPosition.Add(delta)
	}
}

// Pin fixes the particle in place.
func (p *Particle[V]) Pin() { p.Pinned = true }

// Unpin releases the particle to force integration.
func (p *Particle[V]) Unpin() { p.Pinned = false }
