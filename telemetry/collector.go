// Package telemetry provides simulation health tracking and CSV output.
package telemetry

// Sample holds the per-frame measurements fed into the collector.
type Sample struct {
	FrameDT         float64 // wall-clock frame duration in seconds
	ConstraintError float64 // total distance constraint error
	KineticEnergy   float64 // cloth kinetic energy
	WindStrength    float64 // wind magnitude at the anchor
}

// Collector accumulates per-frame samples and event counters within time
// windows and produces WindowStats.
type Collector struct {
	flushInterval float64
	sinceFlush    float64

	frameDTs        []float64
	constraintErrs  []float64
	kineticEnergies []float64
	windStrengths   []float64

	gustsInjected    int
	vorticesInjected int
}

// NewCollector creates a stats collector.
// flushInterval: how long each stats window lasts in simulation seconds.
func NewCollector(flushInterval float64) *Collector {
	if flushInterval <= 0 {
		flushInterval = 1
	}
	return &Collector{flushInterval: flushInterval}
}

// Record adds one frame's measurements to the current window.
func (c *Collector) Record(s Sample) {
	c.sinceFlush += s.FrameDT
	c.frameDTs = append(c.frameDTs, s.FrameDT)
	c.constraintErrs = append(c.constraintErrs, s.ConstraintError)
	c.kineticEnergies = append(c.kineticEnergies, s.KineticEnergy)
	c.windStrengths = append(c.windStrengths, s.WindStrength)
}

// RecordGust records a gust injection.
func (c *Collector) RecordGust() {
	c.gustsInjected++
}

// RecordVortex records a vortex injection.
func (c *Collector) RecordVortex() {
	c.vorticesInjected++
}

// ShouldFlush returns true once a full window of simulation time has
// been recorded.
func (c *Collector) ShouldFlush() bool {
	return c.sinceFlush >= c.flushInterval
}

// Flush produces a WindowStats and resets the window. The caller
// provides the current simulation time and the wind field's live
// transient counts.
func (c *Collector) Flush(simTime float64, activeGusts, activeVortices int) WindowStats {
	errs := Summarize(c.constraintErrs)
	kin := Summarize(c.kineticEnergies)
	wind := Summarize(c.windStrengths)
	frames := Summarize(c.frameDTs)

	stats := WindowStats{
		SimTimeSec: simTime,
		Frames:     len(c.frameDTs),

		ConstraintErrMean: errs.Mean,
		ConstraintErrStd:  errs.Std,
		ConstraintErrP90:  errs.P90,

		KineticMean: kin.Mean,
		KineticP90:  kin.P90,

		WindMean: wind.Mean,
		WindMax:  wind.Max,

		GustsInjected:    c.gustsInjected,
		VorticesInjected: c.vorticesInjected,
		ActiveGusts:      activeGusts,
		ActiveVortices:   activeVortices,

		FrameMSMean: frames.Mean * 1000,
		FrameMSMax:  frames.Max * 1000,
	}

	c.sinceFlush = 0
	c.frameDTs = c.frameDTs[:0]
	c.constraintErrs = c.constraintErrs[:0]
	c.kineticEnergies = c.kineticEnergies[:0]
	c.windStrengths = c.windStrengths[:0]
	c.gustsInjected = 0
	c.vorticesInjected = 0

	return stats
}

// FlushInterval returns the window duration in simulation seconds.
func (c *Collector) FlushInterval() float64 {
	return c.flushInterval
}
