// Package cloth simulates a rectangular strip of fabric as a grid of
// Verlet particles relaxed by distance and bending constraints, dragged
// around by a moving anchor and pushed by a wind field.
package cloth

import "fmt"

// Config holds the simulation-relevant cloth parameters. Presentation
// concerns (colors, trail lengths) live with the caller.
type Config struct {
	Segments int // rows along the cloth length, row 0 is the pinned edge
	Width    int // columns across the cloth

	SegmentLength float64 // rest spacing between rows
	WidthSpacing  float64 // rest spacing between columns; 0 = 0.6 * SegmentLength

	Stiffness     float64 // distance correction fraction per pass, (0, 1]
	BendStiffness float64 // bending correction fraction per pass, (0, 1]
	Damping       float64 // velocity retention per step, (0, 1]

	Gravity       float64 // gravity magnitude
	WindInfluence float64 // wind force multiplier
	WindRampBase  float64 // wind influence at the pinned row; ramps to 1 at the free edge
	LinearDrag    float64 // velocity-proportional drag coefficient
	MassGrowth    float64 // per-row mass increase from the pinned edge

	// Fraction of anchor velocity seeded into the pinned row by
	// SetAttachVelocity.
	AnchorVelocityCarry float64

	// Aerodynamic extras, used by volumetric bodies only.
	AerodynamicDrag float64
	LiftCoefficient float64

	Iterations int     // relaxation passes per frame
	MaxStep    float64 // dt clamp applied before integration
}

// DefaultPlanarConfig is tuned for a 2D cape trailing a glider.
func DefaultPlanarConfig() Config {
	return Config{
		Segments:            14,
		Width:               10,
		SegmentLength:       7,
		Stiffness:           0.92,
		BendStiffness:       0.25,
		Damping:             0.985,
		Gravity:             350,
		WindInfluence:       1.4,
		WindRampBase:        0.5,
		LinearDrag:          0.5,
		MassGrowth:          0.1,
		AnchorVelocityCarry: 0.1,
		Iterations:          5,
		MaxStep:             0.033,
	}
}

// DefaultVolumetricConfig is tuned for a 3D cape with aerodynamic forces.
func DefaultVolumetricConfig() Config {
	return Config{
		Segments:            14,
		Width:               10,
		SegmentLength:       6,
		WidthSpacing:        4,
		Stiffness:           0.92,
		BendStiffness:       0.25,
		Damping:             0.985,
		Gravity:             25,
		WindInfluence:       1.4,
		WindRampBase:        0.3,
		LinearDrag:          0.5,
		MassGrowth:          0.08,
		AnchorVelocityCarry: 0.05,
		AerodynamicDrag:     0.02,
		LiftCoefficient:     0.3,
		Iterations:          5,
		MaxStep:             0.033,
	}
}

func (c *Config) validate() error {
	if c.Segments < 2 {
		return fmt.Errorf("cloth: need at least 2 segments, got %d", c.Segments)
	}
	if c.Width < 2 {
		return fmt.Errorf("cloth: need at least 2 columns, got %d", c.Width)
	}
	if c.SegmentLength <= 0 {
		return fmt.Errorf("cloth: segment length must be positive, got %v", c.SegmentLength)
	}
	if c.WidthSpacing < 0 {
		return fmt.Errorf("cloth: width spacing must be non-negative, got %v", c.WidthSpacing)
	}
	if c.Stiffness <= 0 || c.Stiffness > 1 {
		return fmt.Errorf("cloth: stiffness must be in (0, 1], got %v", c.Stiffness)
	}
	if c.BendStiffness <= 0 || c.BendStiffness > 1 {
		return fmt.Errorf("cloth: bend stiffness must be in (0, 1], got %v", c.BendStiffness)
	}
	if c.Damping <= 0 || c.Damping > 1 {
		return fmt.Errorf("cloth: damping must be in (0, 1], got %v", c.Damping)
	}
	if c.MassGrowth < 0 {
		return fmt.Errorf("cloth: mass growth must be non-negative, got %v", c.MassGrowth)
	}
	if c.WindRampBase < 0 || c.WindRampBase > 1 {
		return fmt.Errorf("cloth: wind ramp base must be in [0, 1], got %v", c.WindRampBase)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("cloth: need at least 1 relaxation pass, got %d", c.Iterations)
	}
	if c.MaxStep <= 0 {
		return fmt.Errorf("cloth: max step must be positive, got %v", c.MaxStep)
	}
	return nil
}

// applyDefaults resolves derived zero-value fields after validation.
func (c *Config) applyDefaults() {
	if c.WidthSpacing == 0 {
		c.WidthSpacing = c.SegmentLength * 0.6
	}
}
