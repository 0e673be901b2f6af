package wind

import (
	"math"
	"testing"

	"github.com/ethereal-sim/capewind/vecmath"
)

const tol = 1e-9

// quiet returns a planar config with every ambient layer silenced, so
// queries only see transient events.
func quietPlanar() Config[vecmath.Vec2] {
	return Config[vecmath.Vec2]{
		NoiseScale:    0.01,
		TimeScale:     1,
		BaseDirection: vecmath.Vec2{X: 1},
	}
}

func quietVolumetric() Config[vecmath.Vec3] {
	return Config[vecmath.Vec3]{
		NoiseScale:    0.01,
		TimeScale:     1,
		BaseDirection: vecmath.Vec3{X: 1},
	}
}

func TestBaseWindOnly(t *testing.T) {
	cfg := quietPlanar()
	cfg.BaseStrength = 50
	cfg.BaseDirection = vecmath.Vec2{X: 3, Y: 4}
	f := NewPlanar(cfg, 1)

	got := f.VectorAt(vecmath.Vec2{X: 10, Y: -3})
	want := vecmath.Vec2{X: 30, Y: 40} // normalized (3,4) * 50
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol {
		t.Errorf("VectorAt = %v, want %v", got, want)
	}
}

func TestDeterministicAcrossInstances(t *testing.T) {
	cfg := DefaultPlanarConfig()
	a := NewPlanar(cfg, 777)
	b := NewPlanar(cfg, 777)

	for i := 0; i < 20; i++ {
		a.Update(1.0 / 60)
		b.Update(1.0 / 60)
		p := vecmath.Vec2{X: float64(i) * 13, Y: float64(i) * -7}
		if a.VectorAt(p) != b.VectorAt(p) {
			t.Fatalf("same seed and input sequence diverged at step %d", i)
		}
	}
}

func TestUpdateAdvancesScaledTime(t *testing.T) {
	cfg := quietPlanar()
	cfg.TimeScale = 0.4
	f := NewPlanar(cfg, 1)

	for i := 0; i < 10; i++ {
		f.Update(0.1)
	}
	if math.Abs(f.Time()-0.4) > tol {
		t.Errorf("Time = %v, want 0.4", f.Time())
	}
}

func TestGustLifecycle(t *testing.T) {
	f := NewPlanar(quietPlanar(), 1)
	if err := f.AddGust(vecmath.Vec2{}, vecmath.Vec2{}, 10, 5, 1); err != nil {
		t.Fatalf("AddGust: %v", err)
	}

	inside := vecmath.Vec2{X: 1}
	outside := vecmath.Vec2{X: 10}

	// Mid-life, inside radius: pushes radially outward.
	f.Update(0.5)
	v := f.VectorAt(inside)
	if v.Norm() == 0 {
		t.Fatal("active gust contributed nothing inside its radius")
	}
	if v.X <= 0 || math.Abs(v.Y) > tol {
		t.Errorf("planar gust force %v, want radial +X push", v)
	}

	// Outside the radius: exactly zero.
	if got := f.VectorAt(outside); got != (vecmath.Vec2{}) {
		t.Errorf("gust leaked outside its radius: %v", got)
	}

	// Past its duration: exactly zero even before the purge runs.
	f.Update(0.6)
	if got := f.VectorAt(inside); got != (vecmath.Vec2{}) {
		t.Errorf("expired gust still contributes: %v", got)
	}

	// And the purge removes it.
	f.Update(0.1)
	if f.ActiveGusts() != 0 {
		t.Errorf("ActiveGusts = %d after expiry, want 0", f.ActiveGusts())
	}
}

func TestGustEnvelope(t *testing.T) {
	// The half-sine envelope peaks at mid-life and the quadratic radius
	// falloff weakens with distance.
	f := NewPlanar(quietPlanar(), 1)
	if err := f.AddGust(vecmath.Vec2{}, vecmath.Vec2{}, 10, 5, 1); err != nil {
		t.Fatalf("AddGust: %v", err)
	}

	f.Update(0.5) // peak of sin(pi * t/d)
	near := f.StrengthAt(vecmath.Vec2{X: 1})
	far := f.StrengthAt(vecmath.Vec2{X: 4})
	if near <= far {
		t.Errorf("gust strength near=%v, far=%v; want monotone radius falloff", near, far)
	}

	// Exact value: strength * (1 - d/r)^2 * sin(pi/2... elapsed=0.5/1).
	want := 10 * math.Pow(1-1.0/5, 2) * math.Sin(math.Pi*0.5)
	if math.Abs(near-want) > 1e-9 {
		t.Errorf("gust magnitude = %v, want %v", near, want)
	}
}

func TestGustValidation(t *testing.T) {
	f := NewPlanar(quietPlanar(), 1)
	if err := f.AddGust(vecmath.Vec2{}, vecmath.Vec2{}, 10, 0, 1); err == nil {
		t.Error("zero radius accepted")
	}
	if err := f.AddGust(vecmath.Vec2{}, vecmath.Vec2{}, 10, 5, -1); err == nil {
		t.Error("negative duration accepted")
	}
}

func TestVolumetricGustUsesDirection(t *testing.T) {
	f := NewVolumetric(quietVolumetric(), 1)
	dir := vecmath.Vec3{Y: 1}
	if err := f.AddGust(vecmath.Vec3{}, dir, 10, 5, 1); err != nil {
		t.Fatalf("AddGust: %v", err)
	}
	f.Update(0.5)

	v := f.VectorAt(vecmath.Vec3{X: 1})
	if v.Y <= 0 || math.Abs(v.X) > tol || math.Abs(v.Z) > tol {
		t.Errorf("directed gust force %v, want +Y push", v)
	}
}

func TestVortex(t *testing.T) {
	f := NewVolumetric(quietVolumetric(), 1)
	axis := vecmath.Vec3{Y: 1}
	if err := f.AddVortex(vecmath.Vec3{}, axis, 10, 5, 1); err != nil {
		t.Fatalf("AddVortex: %v", err)
	}
	f.Update(0.5)

	// Off-axis point: tangential force, perpendicular to both the axis
	// and the radial offset.
	p := vecmath.Vec3{X: 2}
	v := f.VectorAt(p)
	if v.Norm() == 0 {
		t.Fatal("vortex contributed nothing inside its radius")
	}
	if math.Abs(v.Dot(axis)) > tol || math.Abs(v.Dot(p.Normed())) > tol {
		t.Errorf("vortex force %v not tangential", v)
	}

	// On the axis: no force.
	if got := f.VectorAt(vecmath.Vec3{Y: 3}); got != (vecmath.Vec3{}) {
		t.Errorf("vortex pushed a point on its axis: %v", got)
	}

	// Outside the radius: no force.
	if got := f.VectorAt(vecmath.Vec3{X: 9}); got != (vecmath.Vec3{}) {
		t.Errorf("vortex leaked outside its radius: %v", got)
	}
}

func TestPlanarRejectsVortices(t *testing.T) {
	f := NewPlanar(quietPlanar(), 1)
	if err := f.AddVortex(vecmath.Vec2{}, vecmath.Vec2{X: 1}, 10, 5, 1); err == nil {
		t.Error("planar field accepted a vortex")
	}
}

func TestCurlContribution(t *testing.T) {
	cfg := quietVolumetric()
	cfg.Turbulence = 0 // isolate the curl term
	cfg.CurlStrength = 1
	cfg.CurlEpsilon = 0.5
	cfg.NoiseScale = 0.05
	cfg.VerticalInfluence = 1
	f := NewVolumetric(cfg, 42)

	// Somewhere in the field the curl term is non-zero, and without it
	// the quiet field is exactly zero.
	nonZero := false
	for i := 0; i < 10 && !nonZero; i++ {
		p := vecmath.Vec3{X: float64(i) * 11, Y: float64(i) * 5, Z: float64(i) * 3}
		if f.VectorAt(p).Norm() > 1e-6 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("curl term contributed nothing anywhere")
	}

	cfg.CurlStrength = 0
	f.SetConfig(cfg)
	if got := f.VectorAt(vecmath.Vec3{X: 11, Y: 5, Z: 3}); got != (vecmath.Vec3{}) {
		t.Errorf("quiet field with curl disabled = %v, want zero", got)
	}
}

func TestStrengthMatchesVector(t *testing.T) {
	f := NewPlanar(DefaultPlanarConfig(), 5)
	f.Update(0.25)
	p := vecmath.Vec2{X: 40, Y: 12}
	if math.Abs(f.StrengthAt(p)-f.VectorAt(p).Norm()) > tol {
		t.Error("StrengthAt disagrees with |VectorAt|")
	}
}
