package cloth

import (
	"math"
	"testing"

	"github.com/ethereal-sim/capewind/vecmath"
)

const tol = 1e-9

type constantField2 struct{ v vecmath.Vec2 }

func (f constantField2) VectorAt(vecmath.Vec2) vecmath.Vec2 { return f.v }

type constantField3 struct{ v vecmath.Vec3 }

func (f constantField3) VectorAt(vecmath.Vec3) vecmath.Vec3 { return f.v }

func planarBody(t *testing.T, cfg Config) *Body[vecmath.Vec2] {
	t.Helper()
	b, err := NewPlanar(cfg, vecmath.Vec2{X: 100, Y: 50})
	if err != nil {
		t.Fatalf("NewPlanar: %v", err)
	}
	return b
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"too few segments", func(c *Config) { c.Segments = 1 }},
		{"too few columns", func(c *Config) { c.Width = 1 }},
		{"zero segment length", func(c *Config) { c.SegmentLength = 0 }},
		{"negative width spacing", func(c *Config) { c.WidthSpacing = -1 }},
		{"zero stiffness", func(c *Config) { c.Stiffness = 0 }},
		{"stiffness above one", func(c *Config) { c.Stiffness = 1.5 }},
		{"zero bend stiffness", func(c *Config) { c.BendStiffness = 0 }},
		{"zero damping", func(c *Config) { c.Damping = 0 }},
		{"negative mass growth", func(c *Config) { c.MassGrowth = -0.1 }},
		{"wind ramp above one", func(c *Config) { c.WindRampBase = 1.1 }},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"zero max step", func(c *Config) { c.MaxStep = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPlanarConfig()
			tt.mutate(&cfg)
			if _, err := NewPlanar(cfg, vecmath.Vec2{}); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestGridConstruction(t *testing.T) {
	cfg := DefaultPlanarConfig()
	cfg.Segments = 6
	cfg.Width = 4
	b := planarBody(t, cfg)

	if got := len(b.particles); got != 24 {
		t.Fatalf("particle count = %d, want 24", got)
	}
	if b.Rows() != 6 || b.Cols() != 4 {
		t.Errorf("Rows/Cols = %d/%d, want 6/4", b.Rows(), b.Cols())
	}

	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			p := b.Particle(row, col)
			if (row == 0) != p.Pinned {
				t.Errorf("particle (%d, %d) pinned = %v", row, col, p.Pinned)
			}
		}
	}

	// Mass increases toward the free edge.
	if !(b.Particle(5, 0).Mass > b.Particle(1, 0).Mass) {
		t.Error("mass does not grow with row index")
	}

	// Adjacent columns sit one width spacing apart at rest.
	gap := b.Particle(0, 1).Position.Sub(b.Particle(0, 0).Position).Norm()
	if math.Abs(gap-b.Config().WidthSpacing) > tol {
		t.Errorf("rest column gap = %v, want %v", gap, b.Config().WidthSpacing)
	}
}

func TestConstraintErrorConverges(t *testing.T) {
	cfg := DefaultPlanarConfig()
	cfg.Stiffness = 0.5
	cfg.BendStiffness = 0.5
	b := planarBody(t, cfg)
	b.bends = nil // isolate the distance relaxation

	// Shove one interior particle off its rest position. A local spike
	// like this relaxes back out through the neighboring constraints; a
	// grid-wide stretch would only migrate toward the free edge instead.
	mid := &b.particles[b.index(b.Rows()/2, b.Cols()/2)]
	mid.MoveTo(mid.Position.Add(vecmath.Vec2{
		X: 3 * cfg.SegmentLength,
		Y: cfg.SegmentLength,
	}))

	initial := b.ConstraintError()
	if initial < tol {
		t.Fatal("perturbation produced no constraint error")
	}

	prev := initial
	for i := 0; i < 20; i++ {
		b.SolveConstraints(1)
		cur := b.ConstraintError()
		if cur > prev+1e-6 {
			t.Fatalf("pass %d: constraint error grew from %v to %v", i, prev, cur)
		}
		prev = cur
	}
	if prev > initial*0.5 {
		t.Errorf("error after 20 passes = %v, want well below initial %v", prev, initial)
	}
}

func TestUpdateRespectsPins(t *testing.T) {
	b := planarBody(t, DefaultPlanarConfig())
	pinnedBefore := make([]vecmath.Vec2, b.Cols())
	for col := range pinnedBefore {
		pinnedBefore[col] = b.Particle(0, col).Position
	}

	for i := 0; i < 5; i++ {
		b.Update(0.016, constantField2{vecmath.Vec2{X: 200}})
		b.SolveConstraints(b.Config().Iterations)
	}

	for col := range pinnedBefore {
		if b.Particle(0, col).Position != pinnedBefore[col] {
			t.Errorf("pinned particle %d moved to %v", col, b.Particle(0, col).Position)
		}
	}
}

func TestWindRampGrowsTowardFreeEdge(t *testing.T) {
	cfg := DefaultPlanarConfig()
	cfg.Gravity = 0
	cfg.LinearDrag = 0
	cfg.MassGrowth = 0
	cfg.Damping = 1
	b := planarBody(t, cfg)

	before := make(map[int]float64)
	for row := 1; row < b.Rows(); row++ {
		before[row] = b.Particle(row, 0).Position.X
	}

	b.Update(0.016, constantField2{vecmath.Vec2{X: 100}})

	prev := 0.0
	for row := 1; row < b.Rows(); row++ {
		moved := b.Particle(row, 0).Position.X - before[row]
		if moved <= prev {
			t.Fatalf("row %d moved %v, not more than inner row's %v", row, moved, prev)
		}
		prev = moved
	}
}

func TestUpdateClampsDt(t *testing.T) {
	cfg := DefaultPlanarConfig()
	a := planarBody(t, cfg)
	b := planarBody(t, cfg)

	a.Update(10, nil) // absurd frame stall
	b.Update(cfg.MaxStep, nil)

	for row := 0; row < a.Rows(); row++ {
		for col := 0; col < a.Cols(); col++ {
			if a.Particle(row, col).Position != b.Particle(row, col).Position {
				t.Fatalf("dt clamp mismatch at (%d, %d)", row, col)
			}
		}
	}
}

func TestSetAttachPointTracksAnchor(t *testing.T) {
	b := planarBody(t, DefaultPlanarConfig())
	target := vecmath.Vec2{X: 300, Y: -40}
	b.SetAttachPoint(target)

	// The pinned row stays centered on the anchor with its spread intact.
	first := b.Particle(0, 0).Position
	last := b.Particle(0, b.Cols()-1).Position
	center := first.Add(last).Scale(0.5)
	if math.Abs(center.X-target.X) > tol || math.Abs(center.Y-target.Y) > tol {
		t.Errorf("pinned row center = %v, want %v", center, target)
	}

	gap := b.Particle(0, 1).Position.Sub(first).Norm()
	if math.Abs(gap-b.Config().WidthSpacing) > tol {
		t.Errorf("column gap after relocation = %v, want %v", gap, b.Config().WidthSpacing)
	}

	// Pinned relocation implies zero velocity.
	p := b.Particle(0, 0)
	if v := p.Velocity(); v != (vecmath.Vec2{}) {
		t.Errorf("pinned particle velocity after relocation = %v, want zero", v)
	}
}

func TestSetAttachVelocitySeedsPinnedRow(t *testing.T) {
	b := planarBody(t, DefaultPlanarConfig())
	v := vecmath.Vec2{X: 50, Y: -20}
	b.SetAttachVelocity(v)

	want := v.Scale(b.Config().AnchorVelocityCarry)
	for col := 0; col < b.Cols(); col++ {
		p := b.Particle(0, col)
		got := p.Velocity()
		if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol {
			t.Errorf("column %d seeded velocity = %v, want %v", col, got, want)
		}
	}
}

func TestVolumetricBody(t *testing.T) {
	cfg := DefaultVolumetricConfig()
	anchor := vecmath.Vec3{Y: 10}
	forward := vecmath.Vec3{Z: -1}
	b, err := NewVolumetric(cfg, anchor, forward)
	if err != nil {
		t.Fatalf("NewVolumetric: %v", err)
	}

	if got := len(b.particles); got != cfg.Segments*cfg.Width {
		t.Fatalf("particle count = %d, want %d", got, cfg.Segments*cfg.Width)
	}

	// The cloth trails opposite the facing direction.
	if back := b.Particle(b.Rows()-1, 0).Position; back.Z <= anchor.Z {
		t.Errorf("free edge at Z=%v, want behind anchor (facing -Z)", back.Z)
	}

	// A rest cloth in the horizontal plane has a vertical surface normal.
	n := Normal(b, 2, 2)
	if math.Abs(n.Norm()-1) > 1e-6 {
		t.Errorf("normal length = %v, want 1", n.Norm())
	}
	if math.Abs(math.Abs(n.Y)-1) > 1e-6 {
		t.Errorf("rest normal = %v, want vertical", n)
	}

	// A few frames of wind and solving stay finite.
	for i := 0; i < 30; i++ {
		b.Update(0.016, constantField3{vecmath.Vec3{X: 40, Y: 5, Z: -10}})
		b.SolveConstraints(cfg.Iterations)
	}
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			p := b.Particle(row, col).Position
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
				t.Fatalf("NaN position at (%d, %d)", row, col)
			}
		}
	}
}

func TestVolumetricRejectsZeroForward(t *testing.T) {
	if _, err := NewVolumetric(DefaultVolumetricConfig(), vecmath.Vec3{}, vecmath.Vec3{}); err == nil {
		t.Error("zero forward direction accepted")
	}
}

func TestKineticEnergyAtRest(t *testing.T) {
	b := planarBody(t, DefaultPlanarConfig())
	if e := b.KineticEnergy(); e != 0 {
		t.Errorf("kinetic energy at rest = %v, want 0", e)
	}
}
