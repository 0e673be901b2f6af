package verlet

import (
	"math"
	"testing"

	"github.com/ethereal-sim/capewind/vecmath"
)

func pair(t *testing.T, a, b vecmath.Vec2, massA, massB float64, pinA, pinB bool) []Particle[vecmath.Vec2] {
	t.Helper()
	pa, err := NewParticle(a, massA, 1, pinA)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	pb, err := NewParticle(b, massB, 1, pinB)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}
	return []Particle[vecmath.Vec2]{pa, pb}
}

func TestNewDistanceValidation(t *testing.T) {
	tests := []struct {
		name       string
		a, b       int
		rest       float64
		stiffness  float64
		wantErr    bool
	}{
		{"valid", 0, 1, 1, 0.9, false},
		{"same index", 2, 2, 1, 0.9, true},
		{"negative index", -1, 1, 1, 0.9, true},
		{"negative rest", 0, 1, -1, 0.9, true},
		{"zero stiffness", 0, 1, 1, 0, true},
		{"stiffness above one", 0, 1, 1, 1.2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDistance[vecmath.Vec2](tt.a, tt.b, tt.rest, tt.stiffness)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewDistance(%d, %d, %v, %v) error = %v, wantErr %v",
					tt.a, tt.b, tt.rest, tt.stiffness, err, tt.wantErr)
			}
		})
	}
}

func TestDistanceSolveEqualMass(t *testing.T) {
	// Two free particles of equal mass separated by 2L with rest length L:
	// the half-error correction, split evenly, shrinks the separation by
	// 0.5*s*L in one pass.
	const L = 2.0
	for _, s := range []float64{0.25, 0.5, 1.0} {
		parts := pair(t, vecmath.Vec2{}, vecmath.Vec2{X: 2 * L}, 1, 1, false, false)
		c, err := NewDistance[vecmath.Vec2](0, 1, L, s)
		if err != nil {
			t.Fatalf("NewDistance: %v", err)
		}

		c.Solve(parts)

		want := 2*L - 0.5*s*L
		got := c.CurrentLength(parts)
		if math.Abs(got-want) > tol {
			t.Errorf("stiffness %v: separation after solve = %v, want %v", s, got, want)
		}

		// Mass-equal split is symmetric about the midpoint.
		if math.Abs(parts[0].Position.X+parts[1].Position.X-2*L) > tol {
			t.Errorf("stiffness %v: correction not split evenly: %v, %v",
				s, parts[0].Position, parts[1].Position)
		}
	}
}

func TestDistanceSolveMassRatio(t *testing.T) {
	// The lighter particle absorbs more of the correction.
	parts := pair(t, vecmath.Vec2{}, vecmath.Vec2{X: 4}, 1, 3, false, false)
	c, err := NewDistance[vecmath.Vec2](0, 1, 2, 1)
	if err != nil {
		t.Fatalf("NewDistance: %v", err)
	}
	c.Solve(parts)

	movedA := parts[0].Position.X
	movedB := 4 - parts[1].Position.X
	if movedA <= movedB {
		t.Errorf("light particle moved %v, heavy moved %v; want light > heavy", movedA, movedB)
	}
	if math.Abs(movedA/movedB-3) > 1e-6 {
		t.Errorf("move ratio = %v, want 3 (inverse mass ratio)", movedA/movedB)
	}
}

func TestDistanceSolvePinnedEndpoint(t *testing.T) {
	// With one end pinned the free end takes the doubled correction:
	// at stiffness 1 a single solve lands exactly on the rest length.
	parts := pair(t, vecmath.Vec2{}, vecmath.Vec2{X: 4}, 1, 1, true, false)
	c, err := NewDistance[vecmath.Vec2](0, 1, 2, 1)
	if err != nil {
		t.Fatalf("NewDistance: %v", err)
	}
	c.Solve(parts)

	if parts[0].Position != (vecmath.Vec2{}) {
		t.Errorf("pinned particle moved to %v", parts[0].Position)
	}
	if math.Abs(c.CurrentLength(parts)-2) > tol {
		t.Errorf("separation = %v, want rest length 2", c.CurrentLength(parts))
	}
}

func TestDistanceSolveDegenerateLength(t *testing.T) {
	parts := pair(t, vecmath.Vec2{X: 1, Y: 1}, vecmath.Vec2{X: 1, Y: 1}, 1, 1, false, false)
	c, err := NewDistance[vecmath.Vec2](0, 1, 2, 1)
	if err != nil {
		t.Fatalf("NewDistance: %v", err)
	}
	c.Solve(parts)

	for i, p := range parts {
		if math.IsNaN(p.Position.X) || math.IsNaN(p.Position.Y) {
			t.Fatalf("particle %d position is NaN after degenerate solve", i)
		}
		if p.Position != (vecmath.Vec2{X: 1, Y: 1}) {
			t.Errorf("particle %d moved on degenerate solve: %v", i, p.Position)
		}
	}
}

func TestDistanceSolveInactive(t *testing.T) {
	parts := pair(t, vecmath.Vec2{}, vecmath.Vec2{X: 4}, 1, 1, false, false)
	c, err := NewDistance[vecmath.Vec2](0, 1, 2, 1)
	if err != nil {
		t.Fatalf("NewDistance: %v", err)
	}
	c.Active = false
	c.Solve(parts)

	if parts[0].Position != (vecmath.Vec2{}) || parts[1].Position != (vecmath.Vec2{X: 4}) {
		t.Error("inactive constraint moved particles")
	}
}

func triple2(t *testing.T, a, b, c vecmath.Vec2) []Particle[vecmath.Vec2] {
	t.Helper()
	out := make([]Particle[vecmath.Vec2], 0, 3)
	for _, pos := range []vecmath.Vec2{a, b, c} {
		p, err := NewParticle(pos, 1, 1, false)
		if err != nil {
			t.Fatalf("NewParticle: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func bendError2(c Bending[vecmath.Vec2], parts []Particle[vecmath.Vec2], g Geometry[vecmath.Vec2]) float64 {
	ba := parts[c.A].Position.Sub(parts[c.B].Position)
	bc := parts[c.C].Position.Sub(parts[c.B].Position)
	angle, _ := g.BendAngle(ba, bc)
	return math.Abs(vecmath.WrapAngle(angle - c.RestAngle))
}

func TestBendingSolveReducesDeviationPlanar(t *testing.T) {
	g := Planar{}

	// Capture the rest angle from a straight configuration, then kink C.
	parts := triple2(t, vecmath.Vec2{X: -1}, vecmath.Vec2{}, vecmath.Vec2{X: 1})
	c, err := NewBending(0, 1, 2, 0.5, parts, g)
	if err != nil {
		t.Fatalf("NewBending: %v", err)
	}
	parts[2].MoveTo(vecmath.Vec2{X: 1, Y: 0.5})

	prev := bendError2(c, parts, g)
	for i := 0; i < 6; i++ {
		c.Solve(parts, g)
		cur := bendError2(c, parts, g)
		if cur > prev+tol {
			t.Fatalf("pass %d: deviation grew from %v to %v", i, prev, cur)
		}
		prev = cur
	}
	if prev > 0.1 {
		t.Errorf("deviation after 6 passes = %v, want near zero", prev)
	}
}

func TestBendingSolveRespectsPins(t *testing.T) {
	g := Planar{}
	parts := triple2(t, vecmath.Vec2{X: -1}, vecmath.Vec2{}, vecmath.Vec2{X: 1})
	parts[0].Pin()
	c, err := NewBending(0, 1, 2, 0.5, parts, g)
	if err != nil {
		t.Fatalf("NewBending: %v", err)
	}
	parts[2].MoveTo(vecmath.Vec2{X: 1, Y: 0.5})

	c.Solve(parts, g)
	if parts[0].Position != (vecmath.Vec2{X: -1}) {
		t.Errorf("pinned endpoint moved to %v", parts[0].Position)
	}
}

func TestBendingSolveReducesDeviationVolumetric(t *testing.T) {
	g := Volumetric{}
	mk := func(pos vecmath.Vec3) Particle[vecmath.Vec3] {
		p, err := NewParticle(pos, 1, 1, false)
		if err != nil {
			t.Fatalf("NewParticle: %v", err)
		}
		return p
	}

	// Bent L-shape at rest: the hinge axis is well defined throughout.
	parts := []Particle[vecmath.Vec3]{
		mk(vecmath.Vec3{X: -1}),
		mk(vecmath.Vec3{}),
		mk(vecmath.Vec3{Y: 1}),
	}
	c, err := NewBending(0, 1, 2, 0.5, parts, g)
	if err != nil {
		t.Fatalf("NewBending: %v", err)
	}
	parts[2].MoveTo(vecmath.Vec3{X: 0.5, Y: 1})

	deviation := func() float64 {
		ba := parts[0].Position.Sub(parts[1].Position)
		bc := parts[2].Position.Sub(parts[1].Position)
		angle, _ := g.BendAngle(ba, bc)
		return math.Abs(vecmath.WrapAngle(angle - c.RestAngle))
	}

	prev := deviation()
	for i := 0; i < 6; i++ {
		c.Solve(parts, g)
		cur := deviation()
		if cur > prev+tol {
			t.Fatalf("pass %d: deviation grew from %v to %v", i, prev, cur)
		}
		prev = cur
	}
	if prev > 0.1 {
		t.Errorf("deviation after 6 passes = %v, want near zero", prev)
	}
}

func TestBendingRestAngleFixed(t *testing.T) {
	g := Planar{}
	parts := triple2(t, vecmath.Vec2{X: -1}, vecmath.Vec2{}, vecmath.Vec2{X: 1, Y: 1})
	c, err := NewBending(0, 1, 2, 0.4, parts, g)
	if err != nil {
		t.Fatalf("NewBending: %v", err)
	}
	rest := c.RestAngle

	parts[2].MoveTo(vecmath.Vec2{X: 2, Y: -1})
	for i := 0; i < 4; i++ {
		c.Solve(parts, g)
	}
	if c.RestAngle != rest {
		t.Errorf("rest angle changed from %v to %v during solving", rest, c.RestAngle)
	}
}
