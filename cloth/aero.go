package cloth

import (
	"math"

	"github.com/ethereal-sim/capewind/vecmath"
)

// Volumetric force extras: how strongly anchor motion billows the cloth
// backward, and how much it sways side to side while moving.
const (
	billowFactor  = 0.08
	swayFactor    = 0.002
	quadraticDrag = 0.0015
	minAeroSpeed  = 0.1
)

// Normal estimates the surface normal at a grid slot from the
// neighboring particles' finite differences. Edge slots are clamped
// inward.
func Normal(b *Body[vecmath.Vec3], row, col int) vecmath.Vec3 {
	row = clampInt(row, 1, b.cfg.Segments-2)
	col = clampInt(col, 1, b.cfg.Width-2)

	up := b.particles[b.index(row-1, col)].Position
	down := b.particles[b.index(row+1, col)].Position
	left := b.particles[b.index(row, col-1)].Position
	right := b.particles[b.index(row, col+1)].Position

	tangentV := down.Sub(up).Normed()
	tangentH := right.Sub(left).Normed()
	return tangentH.Cross(tangentV).Normed()
}

// AverageNormal averages the interior surface normals, a cheap facing
// estimate for rendering.
func AverageNormal(b *Body[vecmath.Vec3]) vecmath.Vec3 {
	sum := vecmath.Vec3{}
	for row := 1; row < b.cfg.Segments-1; row++ {
		for col := 1; col < b.cfg.Width-1; col++ {
			sum = sum.Add(Normal(b, row, col))
		}
	}
	return sum.Normed()
}

// applyAerodynamics adds the volumetric-only forces: anchor-motion
// billow and sway, quadratic air resistance, and normal-based drag plus
// a simplified lift term on interior particles.
func applyAerodynamics(b *Body[vecmath.Vec3], vectorAt func(vecmath.Vec3) vecmath.Vec3) {
	up := vecmath.Vec3{Y: 1}
	anchorSpeed := b.anchorVelocity.Norm()
	swayDir := b.forward.Cross(up)

	for row := 0; row < b.cfg.Segments; row++ {
		rowFactor := float64(row) / float64(b.cfg.Segments)
		for col := 0; col < b.cfg.Width; col++ {
			p := &b.particles[b.index(row, col)]
			if p.Pinned {
				continue
			}

			// Cloth flows behind the moving anchor.
			p.ApplyForce(b.anchorVelocity.Scale(-billowFactor * rowFactor))

			// Lateral sway while the anchor is moving.
			sway := math.Sin(float64(row)*0.5+b.time*3) * anchorSpeed * swayFactor
			p.ApplyForce(swayDir.Scale(sway))

			// Quadratic air resistance.
			vel := p.Velocity()
			speed := vel.Norm()
			if speed > minAeroSpeed {
				p.ApplyForce(vel.Normed().Scale(-quadraticDrag * speed * speed))
			}
		}
	}

	// Normal-based drag and lift on the interior surface.
	for row := 1; row < b.cfg.Segments-1; row++ {
		for col := 1; col < b.cfg.Width-1; col++ {
			p := &b.particles[b.index(row, col)]
			if p.Pinned {
				continue
			}

			normal := Normal(b, row, col)
			relative := vectorAt(p.Position).Sub(p.Velocity())
			normalComponent := relative.Dot(normal)

			p.ApplyForce(normal.Scale(normalComponent * math.Abs(normalComponent) * b.cfg.AerodynamicDrag))

			if normalComponent > 0 {
				liftDir := up.Sub(normal.Scale(normal.Y))
				if liftDir.NormSq() > 0.01 {
					liftMag := normalComponent * normalComponent * b.cfg.LiftCoefficient
					p.ApplyForce(liftDir.Normed().Scale(liftMag))
				}
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
