package game

import (
	"math"
	"testing"

	"github.com/ethereal-sim/capewind/config"
	"github.com/ethereal-sim/capewind/vecmath"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	config.MustInit("")

	g, err := NewGameWithOptions(Options{Seed: 42, Headless: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRunStaysFinite(t *testing.T) {
	g := newTestGame(t)

	for i := 0; i < 300; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 300 {
		t.Fatalf("tick = %d, want 300", g.Tick())
	}
	if g.SimTime() <= 0 {
		t.Fatalf("sim time = %v, want > 0", g.SimTime())
	}

	cape := g.Cape()
	for r := 0; r < cape.Rows(); r++ {
		for c := 0; c < cape.Cols(); c++ {
			p := cape.Particle(r, c)
			pos := p.Position
			if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
				t.Fatalf("particle (%d,%d) position is NaN after 300 ticks", r, c)
			}
		}
	}

	pos := g.posMap.Get(g.glider)
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
		t.Fatalf("glider position is NaN: (%v, %v)", pos.X, pos.Y)
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	run := func() (vecmath.Vec2, float64) {
		config.MustInit("")
		g, err := NewGameWithOptions(Options{Seed: 7, Headless: true})
		if err != nil {
			t.Fatalf("NewGameWithOptions: %v", err)
		}
		defer g.Unload()

		for i := 0; i < 120; i++ {
			g.UpdateHeadless()
		}
		pos := g.posMap.Get(g.glider)
		return vecmath.Vec2{X: pos.X, Y: pos.Y}, g.Cape().ConstraintError()
	}

	posA, errA := run()
	posB, errB := run()

	if posA != posB {
		t.Errorf("glider position differs between runs: %v vs %v", posA, posB)
	}
	if errA != errB {
		t.Errorf("constraint error differs between runs: %v vs %v", errA, errB)
	}
}

func TestClimbingDrainsEnergy(t *testing.T) {
	g := newTestGame(t)

	fl := g.flightMap.Get(g.glider)
	vel := g.velMap.Get(g.glider)
	vel.X = 200
	fl.InputUp = true

	before := fl.Energy
	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}

	if fl.Energy >= before {
		t.Errorf("energy = %v after climbing, want < %v", fl.Energy, before)
	}
	if fl.Energy < 0 || fl.Energy > 100 {
		t.Errorf("energy = %v, want within [0, 100]", fl.Energy)
	}
}

func TestCapeFollowsGlider(t *testing.T) {
	g := newTestGame(t)

	vel := g.velMap.Get(g.glider)
	vel.X = 300

	for i := 0; i < 120; i++ {
		g.UpdateHeadless()
	}

	attach := g.capeAttachPoint()
	p := g.Cape().Particle(0, g.Cape().Cols()/2)
	anchor := p.Position

	if d := anchor.Sub(attach).Norm(); d > 1e-6 {
		t.Errorf("pinned row center %v is %v away from attach point %v", anchor, d, attach)
	}
}

func TestGlideEfficiencyBounds(t *testing.T) {
	g := newTestGame(t)
	fcfg := config.Cfg().Flight

	cases := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"optimal speed", (fcfg.MinGlideSpeed + fcfg.MaxGlideSpeed) * 0.4, 1},
		{"standstill", 0, 0},
		{"double optimal", (fcfg.MinGlideSpeed + fcfg.MaxGlideSpeed) * 0.8, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vel := g.velMap.Get(g.glider)
			vel.X = tc.speed
			vel.Y = 0

			got := g.GlideEfficiency()
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("GlideEfficiency() at speed %v = %v, want %v", tc.speed, got, tc.want)
			}
		})
	}
}

func TestBoostAcceleratesAlongHeading(t *testing.T) {
	g := newTestGame(t)
	accel := config.Cfg().Glider.Acceleration

	rot := g.rotMap.Get(g.glider)
	vel := g.velMap.Get(g.glider)
	rot.Heading = 0
	vel.X, vel.Y = 0, 0

	g.applyBoost(0.1)

	if math.Abs(vel.X-accel*0.1) > 1e-9 {
		t.Errorf("vel.X = %v, want %v", vel.X, accel*0.1)
	}
	if math.Abs(vel.Y) > 1e-9 {
		t.Errorf("vel.Y = %v, want 0", vel.Y)
	}
}

func TestGustInjectionRecorded(t *testing.T) {
	g := newTestGame(t)

	pos := g.posMap.Get(g.glider)
	g.injectGust(vecmath.Vec2{X: pos.X, Y: pos.Y})

	if got := g.Wind().ActiveGusts(); got != 1 {
		t.Fatalf("active gusts = %d, want 1", got)
	}
}
