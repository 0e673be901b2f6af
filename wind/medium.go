package wind

import (
	"github.com/ethereal-sim/capewind/noise"
	"github.com/ethereal-sim/capewind/vecmath"
)

// Axis sampling offsets keep the per-component noise decorrelated: each
// output axis reads a distant region of the same field.
const (
	axisOffset = 100.0
	timeOffset = 50.0
)

// planarMedium samples a 2D field from a single generator, using field
// time as the third noise coordinate.
type planarMedium struct {
	noise *noise.Perlin
}

func newPlanarMedium(seed int64) *planarMedium {
	return &planarMedium{noise: noise.New(seed)}
}

func (m *planarMedium) SampleNoise(pos vecmath.Vec2, t float64, cfg Config[vecmath.Vec2]) vecmath.Vec2 {
	s := cfg.NoiseScale
	nx := m.noise.Octave3D(pos.X*s, pos.Y*s, t, 3, 0.5)
	ny := m.noise.Octave3D(pos.X*s+axisOffset, pos.Y*s+axisOffset, t+timeOffset, 3, 0.5)
	return vecmath.Vec2{X: nx, Y: ny}
}

func (m *planarMedium) GustChannel(pos vecmath.Vec2, t float64, cfg Config[vecmath.Vec2]) float64 {
	s := cfg.NoiseScale * 0.5
	return m.noise.Octave3D(pos.X*s, pos.Y*s, t*0.3, 2, 0.5)
}

func (m *planarMedium) Curl(vecmath.Vec2, float64, Config[vecmath.Vec2]) vecmath.Vec2 {
	return vecmath.Vec2{}
}

func (m *planarMedium) GustDirection(_ Gust[vecmath.Vec2], toPoint vecmath.Vec2) vecmath.Vec2 {
	return toPoint.Normed()
}

func (m *planarMedium) VortexTangent(Vortex[vecmath.Vec2], vecmath.Vec2) (vecmath.Vec2, float64, bool) {
	return vecmath.Vec2{}, 0, false
}

func (m *planarMedium) SupportsVortices() bool { return false }

// volumetricMedium samples a 3D field from one generator per output axis
// and contributes the curl turbulence and vortex geometry.
type volumetricMedium struct {
	noiseX *noise.Perlin
	noiseY *noise.Perlin
	noiseZ *noise.Perlin
}

func newVolumetricMedium(seed int64) *volumetricMedium {
	return &volumetricMedium{
		noiseX: noise.New(seed),
		noiseY: noise.New(seed + 1000),
		noiseZ: noise.New(seed + 2000),
	}
}

func (m *volumetricMedium) SampleNoise(pos vecmath.Vec3, t float64, cfg Config[vecmath.Vec3]) vecmath.Vec3 {
	s := cfg.NoiseScale
	nx := m.noiseX.Octave3D(pos.X*s, pos.Y*s, pos.Z*s+t, 3, 0.5)
	ny := m.noiseY.Octave3D(pos.X*s+axisOffset, pos.Y*s+axisOffset, pos.Z*s+t+timeOffset, 3, 0.5)
	nz := m.noiseZ.Octave3D(pos.X*s+2*axisOffset, pos.Y*s+2*axisOffset, pos.Z*s+t+2*timeOffset, 3, 0.5)
	return vecmath.Vec3{X: nx, Y: ny * cfg.VerticalInfluence, Z: nz}
}

func (m *volumetricMedium) GustChannel(pos vecmath.Vec3, t float64, cfg Config[vecmath.Vec3]) float64 {
	s := cfg.NoiseScale * 0.5
	return m.noiseX.Octave3D(pos.X*s, pos.Z*s, t*0.3, 2, 0.5)
}

// Curl takes central finite differences of the sampled vector noise and
// combines them as the curl operator. The result is divergence-free, so
// particles pushed by it never drain into noise minima the way a raw
// gradient field would collect them.
func (m *volumetricMedium) Curl(pos vecmath.Vec3, t float64, cfg Config[vecmath.Vec3]) vecmath.Vec3 {
	eps := cfg.CurlEpsilon

	sample := func(p vecmath.Vec3) vecmath.Vec3 { return m.SampleNoise(p, t, cfg) }

	dx := sample(vecmath.Vec3{X: pos.X + eps, Y: pos.Y, Z: pos.Z}).
		Sub(sample(vecmath.Vec3{X: pos.X - eps, Y: pos.Y, Z: pos.Z})).Scale(1 / (2 * eps))
	dy := sample(vecmath.Vec3{X: pos.X, Y: pos.Y + eps, Z: pos.Z}).
		Sub(sample(vecmath.Vec3{X: pos.X, Y: pos.Y - eps, Z: pos.Z})).Scale(1 / (2 * eps))
	dz := sample(vecmath.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z + eps}).
		Sub(sample(vecmath.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z - eps})).Scale(1 / (2 * eps))

	return vecmath.Vec3{
		X: dy.Z - dz.Y,
		Y: dz.X - dx.Z,
		Z: dx.Y - dy.X,
	}
}

func (m *volumetricMedium) GustDirection(g Gust[vecmath.Vec3], _ vecmath.Vec3) vecmath.Vec3 {
	return g.Direction.Normed()
}

// VortexTangent projects the offset onto the plane perpendicular to the
// vortex axis and returns the tangential direction there.
func (m *volumetricMedium) VortexTangent(v Vortex[vecmath.Vec3], toPoint vecmath.Vec3) (vecmath.Vec3, float64, bool) {
	projected := toPoint.Sub(v.Axis.Scale(toPoint.Dot(v.Axis)))
	dist := projected.Norm()
	if dist <= 0.1 {
		return vecmath.Vec3{}, dist, false
	}
	return v.Axis.Cross(projected).Normed(), dist, true
}

func (m *volumetricMedium) SupportsVortices() bool { return true }
