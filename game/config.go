package game

import (
	"github.com/ethereal-sim/capewind/cloth"
	"github.com/ethereal-sim/capewind/config"
	"github.com/ethereal-sim/capewind/vecmath"
	"github.com/ethereal-sim/capewind/wind"
)

// windConfig maps the loaded YAML config onto wind field parameters.
func windConfig(cfg *config.Config) wind.Config[vecmath.Vec2] {
	return wind.Config[vecmath.Vec2]{
		BaseStrength: cfg.Wind.BaseStrength,
		GustStrength: cfg.Wind.GustStrength,
		Turbulence:   cfg.Wind.Turbulence,
		NoiseScale:   cfg.Wind.NoiseScale,
		TimeScale:    cfg.Wind.TimeScale,
		BaseDirection: vecmath.Vec2{
			X: cfg.Wind.BaseDirection.X,
			Y: cfg.Wind.BaseDirection.Y,
		},
	}
}

// clothConfig maps the loaded YAML config onto cape parameters.
func clothConfig(cfg *config.Config) cloth.Config {
	return cloth.Config{
		Segments:            cfg.Cloth.Segments,
		Width:               cfg.Cloth.Width,
		SegmentLength:       cfg.Cloth.SegmentLength,
		WidthSpacing:        cfg.Cloth.WidthSpacing,
		Stiffness:           cfg.Cloth.Stiffness,
		BendStiffness:       cfg.Cloth.BendStiffness,
		Damping:             cfg.Cloth.Damping,
		Gravity:             cfg.Cloth.Gravity,
		WindInfluence:       cfg.Cloth.WindInfluence,
		WindRampBase:        cfg.Cloth.WindRampBase,
		LinearDrag:          cfg.Cloth.LinearDrag,
		MassGrowth:          cfg.Cloth.MassGrowth,
		AnchorVelocityCarry: cfg.Cloth.AnchorVelocityCarry,
		Iterations:          cfg.Cloth.Iterations,
		MaxStep:             cfg.Sim.MaxStep,
	}
}
