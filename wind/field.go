// Package wind provides a queryable procedural vector force field layered
// from seeded noise, a constant base flow, and time-limited transient
// events (gusts and, in volumetric fields, vortices).
package wind

import (
	"fmt"
	"math"

	"github.com/ethereal-sim/capewind/vecmath"
)

// Config holds the tunable parameters of a field.
type Config[V vecmath.Vector[V]] struct {
	BaseStrength float64
	GustStrength float64
	Turbulence   float64
	NoiseScale   float64
	TimeScale    float64

	BaseDirection V

	// Volumetric-only parameters; planar media ignore them.
	VerticalInfluence float64
	CurlStrength      float64
	CurlEpsilon       float64
}

// Gust is a time-limited spherical force event. Planar fields push points
// radially away from the gust center; volumetric fields push along
// Direction.
type Gust[V vecmath.Vector[V]] struct {
	Position  V
	Direction V
	Strength  float64
	Radius    float64
	Duration  float64
	Elapsed   float64
}

// Vortex is a time-limited rotational force event about an axis.
// Only volumetric fields support vortices.
type Vortex[V vecmath.Vector[V]] struct {
	Position V
	Axis     V
	Strength float64
	Radius   float64
	Duration float64
	Elapsed  float64
}

// Medium supplies the dimension-specific sampling a Field composes.
type Medium[V vecmath.Vector[V]] interface {
	// SampleNoise returns the per-axis decorrelated octave noise vector.
	SampleNoise(pos V, t float64, cfg Config[V]) V
	// GustChannel returns the low-frequency ambient gusting scalar.
	GustChannel(pos V, t float64, cfg Config[V]) float64
	// Curl returns the divergence-free turbulence term, or the zero
	// vector for media without one.
	Curl(pos V, t float64, cfg Config[V]) V
	// GustDirection resolves the push direction of a transient gust at
	// an offset from its center.
	GustDirection(g Gust[V], toPoint V) V
	// VortexTangent returns the tangential direction and planar distance
	// of a point relative to a vortex. ok is false when the point sits
	// on the axis or the medium has no vortices.
	VortexTangent(v Vortex[V], toPoint V) (tangent V, dist float64, ok bool)
	// SupportsVortices reports whether AddVortex is meaningful.
	SupportsVortices() bool
}

// Field is a time-varying procedural force field. It is driven only by
// Update and event injection; queries never mutate it.
type Field[V vecmath.Vector[V]] struct {
	cfg Config[V]
	med Medium[V]

	time     float64
	gusts    []Gust[V]
	vortices []Vortex[V]
}

// NewPlanar creates a 2D field from an explicit seed.
func NewPlanar(cfg Config[vecmath.Vec2], seed int64) *Field[vecmath.Vec2] {
	return &Field[vecmath.Vec2]{cfg: cfg, med: newPlanarMedium(seed)}
}

// NewVolumetric creates a 3D field from an explicit seed. The three axis
// generators derive their seeds from it.
func NewVolumetric(cfg Config[vecmath.Vec3], seed int64) *Field[vecmath.Vec3] {
	if cfg.CurlEpsilon <= 0 {
		cfg.CurlEpsilon = 0.5
	}
	return &Field[vecmath.Vec3]{cfg: cfg, med: newVolumetricMedium(seed)}
}

// DefaultPlanarConfig mirrors the tuning a gliding scene wants.
func DefaultPlanarConfig() Config[vecmath.Vec2] {
	return Config[vecmath.Vec2]{
		BaseStrength:  50,
		GustStrength:  80,
		Turbulence:    0.3,
		NoiseScale:    0.008,
		TimeScale:     0.5,
		BaseDirection: vecmath.Vec2{X: 1, Y: 0.2},
	}
}

// DefaultVolumetricConfig mirrors the planar defaults with the vertical
// attenuation and curl turbulence the 3D field adds.
func DefaultVolumetricConfig() Config[vecmath.Vec3] {
	return Config[vecmath.Vec3]{
		BaseStrength:      60,
		GustStrength:      100,
		Turbulence:        0.4,
		NoiseScale:        0.006,
		TimeScale:         0.4,
		BaseDirection:     vecmath.Vec3{X: 1, Z: 0.2},
		VerticalInfluence: 0.3,
		CurlStrength:      0.5,
		CurlEpsilon:       0.5,
	}
}

// Update advances field time and event lifetimes. Events whose elapsed
// time has reached their duration are purged before the next query.
func (f *Field[V]) Update(dt float64) {
	f.time += dt * f.cfg.TimeScale

	alive := f.gusts[:0]
	for _, g := range f.gusts {
		if g.Elapsed < g.Duration {
			g.Elapsed += dt
			alive = append(alive, g)
		}
	}
	f.gusts = alive

	liveVortices := f.vortices[:0]
	for _, v := range f.vortices {
		if v.Elapsed < v.Duration {
			v.Elapsed += dt
			liveVortices = append(liveVortices, v)
		}
	}
	f.vortices = liveVortices
}

// VectorAt returns the composed wind vector at a position.
func (f *Field[V]) VectorAt(pos V) V {
	baseDir := f.cfg.BaseDirection.Normed()
	total := baseDir.Scale(f.cfg.BaseStrength)

	noiseVec := f.med.SampleNoise(pos, f.time, f.cfg)
	total = total.Add(noiseVec.Scale(f.cfg.Turbulence * f.cfg.BaseStrength))

	gustNoise := math.Max(0, f.med.GustChannel(pos, f.time, f.cfg))
	total = total.Add(baseDir.Scale(gustNoise * f.cfg.GustStrength))

	if f.cfg.CurlStrength != 0 {
		total = total.Add(f.med.Curl(pos, f.time, f.cfg).Scale(f.cfg.CurlStrength))
	}

	for i := range f.gusts {
		total = total.Add(f.gustForce(&f.gusts[i], pos))
	}
	for i := range f.vortices {
		total = total.Add(f.vortexForce(&f.vortices[i], pos))
	}

	return total
}

// StrengthAt returns the wind magnitude at a position.
func (f *Field[V]) StrengthAt(pos V) float64 {
	return f.VectorAt(pos).Norm()
}

func (f *Field[V]) gustForce(g *Gust[V], pos V) V {
	var zero V
	if g.Elapsed >= g.Duration {
		return zero
	}
	toPoint := pos.Sub(g.Position)
	dist := toPoint.Norm()
	if dist >= g.Radius {
		return zero
	}

	falloff := 1 - dist/g.Radius
	falloff *= falloff
	timeFalloff := math.Sin(math.Pi * g.Elapsed / g.Duration)

	return f.med.GustDirection(*g, toPoint).Scale(g.Strength * falloff * timeFalloff)
}

func (f *Field[V]) vortexForce(v *Vortex[V], pos V) V {
	var zero V
	if v.Elapsed >= v.Duration {
		return zero
	}
	toPoint := pos.Sub(v.Position)
	tangent, dist, ok := f.med.VortexTangent(*v, toPoint)
	if !ok || dist >= v.Radius {
		return zero
	}

	falloff := 1 - dist/v.Radius
	falloff *= falloff
	timeFalloff := math.Sin(math.Pi * v.Elapsed / v.Duration)

	return tangent.Scale(v.Strength * falloff * timeFalloff)
}

// AddGust injects a transient gust. Planar fields resolve the push
// direction radially and ignore the direction argument.
func (f *Field[V]) AddGust(position, direction V, strength, radius, duration float64) error {
	if radius <= 0 || duration <= 0 {
		return fmt.Errorf("wind: gust radius and duration must be positive, got radius=%v duration=%v", radius, duration)
	}
	f.gusts = append(f.gusts, Gust[V]{
		Position:  position,
		Direction: direction,
		Strength:  strength,
		Radius:    radius,
		Duration:  duration,
	})
	return nil
}

// AddVortex injects a transient vortex rotating about axis.
func (f *Field[V]) AddVortex(position, axis V, strength, radius, duration float64) error {
	if !f.med.SupportsVortices() {
		return fmt.Errorf("wind: field medium does not support vortices")
	}
	if radius <= 0 || duration <= 0 {
		return fmt.Errorf("wind: vortex radius and duration must be positive, got radius=%v duration=%v", radius, duration)
	}
	if axis.Norm() < vecmath.Epsilon {
		return fmt.Errorf("wind: vortex axis must be non-zero")
	}
	f.vortices = append(f.vortices, Vortex[V]{
		Position: position,
		Axis:     axis.Normed(),
		Strength: strength,
		Radius:   radius,
		Duration: duration,
	})
	return nil
}

// Config returns the current configuration.
func (f *Field[V]) Config() Config[V] { return f.cfg }

// SetConfig replaces the configuration; noise state and events persist.
func (f *Field[V]) SetConfig(cfg Config[V]) { f.cfg = cfg }

// Time returns the accumulated field time.
func (f *Field[V]) Time() float64 { return f.time }

// ActiveGusts returns the number of live transient gusts.
func (f *Field[V]) ActiveGusts() int { return len(f.gusts) }

// ActiveVortices returns the number of live transient vortices.
func (f *Field[V]) ActiveVortices() int { return len(f.vortices) }
