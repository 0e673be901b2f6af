package game

import (
	"log/slog"

	"github.com/ethereal-sim/capewind/config"
	"github.com/ethereal-sim/capewind/telemetry"
	"github.com/ethereal-sim/capewind/vecmath"
)

// headlessDT is the fixed step used when running without graphics.
const headlessDT = 1.0 / 60.0

// UpdateHeadless advances the simulation one fixed step.
func (g *Game) UpdateHeadless() {
	g.step(headlessDT)
}

// step advances the whole scene by dt seconds.
func (g *Game) step(dt float64) {
	cfg := config.Cfg()
	if dt > cfg.Sim.MaxStep {
		dt = cfg.Sim.MaxStep
	}

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseWind)
	g.windField.Update(dt)
	g.updateLeaves(dt)

	g.perf.StartPhase(telemetry.PhaseFlight)
	g.updateFlight(dt)
	g.updateGlider(dt)

	g.perf.StartPhase(telemetry.PhaseCloth)
	vel := g.velMap.Get(g.glider)
	g.cape.SetAttachPoint(g.capeAttachPoint())
	g.cape.SetAttachVelocity(vecmath.Vec2{X: vel.X, Y: vel.Y})
	g.cape.Update(dt, g.windField)

	g.perf.StartPhase(telemetry.PhaseSolve)
	g.cape.SolveConstraints(cfg.Cloth.Iterations)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordTelemetry(dt)

	g.perf.EndTick()
	g.tick++
	g.simTime += dt
}

// updateLeaves drifts the ambient debris along the wind. Leaves that
// fall too far behind the glider wrap back in around it.
func (g *Game) updateLeaves(dt float64) {
	cfg := config.Cfg()
	gliderPos := g.posMap.Get(g.glider)
	spanX := float64(cfg.Screen.Width)
	spanY := float64(cfg.Screen.Height)

	query := g.leafFilter.Query()
	for query.Next() {
		pos, vel, rot, leaf := query.Get()

		push := g.windField.VectorAt(vecmath.Vec2{X: pos.X, Y: pos.Y}).Scale(0.01)
		vel.X = vel.X*0.98 + push.X
		vel.Y = vel.Y*0.98 + push.Y

		pos.X += vel.X * dt * 60
		pos.Y += vel.Y * dt * 60
		rot.Heading += leaf.Spin * dt

		// Keep leaves within one screen span of the glider.
		if pos.X < gliderPos.X-spanX {
			pos.X += 2 * spanX
		}
		if pos.X > gliderPos.X+spanX {
			pos.X -= 2 * spanX
		}
		if pos.Y < gliderPos.Y-spanY {
			pos.Y += 2 * spanY
		}
		if pos.Y > gliderPos.Y+spanY {
			pos.Y -= 2 * spanY
		}
	}
}

// injectGust spawns a transient gust centered at the given point.
func (g *Game) injectGust(at vecmath.Vec2) {
	cfg := config.Cfg()
	dir := vecmath.Vec2{X: cfg.Wind.BaseDirection.X, Y: cfg.Wind.BaseDirection.Y}

	err := g.windField.AddGust(at, dir, cfg.Wind.GustStrength, cfg.Wind.GustRadius, cfg.Wind.GustDuration)
	if err != nil {
		slog.Warn("gust rejected", "error", err)
		return
	}

	g.collector.RecordGust()
	event := telemetry.NewGustEvent(g.simTime, at.X, at.Y, cfg.Wind.GustStrength, cfg.Wind.GustRadius, cfg.Wind.GustDuration)
	if err := g.output.WriteEvent(event); err != nil {
		slog.Error("writing gust event", "error", err)
	}
}

// reset puts the glider back at the start with a fresh cape.
func (g *Game) reset() {
	cfg := config.Cfg()
	start := vecmath.Vec2{
		X: float64(cfg.Screen.Width) * 0.5,
		Y: float64(cfg.Screen.Height) * 0.4,
	}

	pos := g.posMap.Get(g.glider)
	vel := g.velMap.Get(g.glider)
	rot := g.rotMap.Get(g.glider)
	fl := g.flightMap.Get(g.glider)
	pos.X, pos.Y = start.X, start.Y
	vel.X, vel.Y = 0, 0
	rot.Heading = 0
	fl.Energy = 100
	fl.StateTimer = 0

	cape, err := newCape(cfg, g.capeAttachPoint())
	if err != nil {
		slog.Error("rebuilding cape", "error", err)
		return
	}
	g.cape = cape

	if g.cam != nil {
		g.cam.SnapTo(float32(start.X), float32(start.Y))
	}

	if err := g.output.WriteEvent(telemetry.NewResetEvent(g.simTime)); err != nil {
		slog.Error("writing reset event", "error", err)
	}
}

// recordTelemetry samples this frame and flushes full windows.
func (g *Game) recordTelemetry(dt float64) {
	anchor := g.capeAttachPoint()
	g.collector.Record(telemetry.Sample{
		FrameDT:         dt,
		ConstraintError: g.cape.ConstraintError(),
		KineticEnergy:   g.cape.KineticEnergy(),
		WindStrength:    g.windField.StrengthAt(anchor),
	})

	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.simTime, g.windField.ActiveGusts(), g.windField.ActiveVortices())
	if g.logStats {
		stats.LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("writing telemetry", "error", err)
	}
	if err := g.output.WritePerf(g.perf.Stats(), g.simTime); err != nil {
		slog.Error("writing perf", "error", err)
	}
}
