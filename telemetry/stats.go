package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated simulation statistics for a time window.
type WindowStats struct {
	SimTimeSec float64 `csv:"sim_time"`
	Frames     int     `csv:"frames"`

	// Solver health
	ConstraintErrMean float64 `csv:"constraint_err_mean"`
	ConstraintErrStd  float64 `csv:"constraint_err_std"`
	ConstraintErrP90  float64 `csv:"constraint_err_p90"`

	// Cloth motion
	KineticMean float64 `csv:"kinetic_mean"`
	KineticP90  float64 `csv:"kinetic_p90"`

	// Wind sampled at the anchor
	WindMean float64 `csv:"wind_mean"`
	WindMax  float64 `csv:"wind_max"`

	// Transient events
	GustsInjected    int `csv:"gusts_injected"`
	VorticesInjected int `csv:"vortices_injected"`
	ActiveGusts      int `csv:"active_gusts"`
	ActiveVortices   int `csv:"active_vortices"`

	// Frame timing
	FrameMSMean float64 `csv:"frame_ms_mean"`
	FrameMSMax  float64 `csv:"frame_ms_max"`
}

// Summary holds distribution statistics for one sampled series.
type Summary struct {
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
	Max  float64
}

// Summarize computes distribution statistics for a series of samples.
// Returns a zero Summary for an empty series.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  sorted[n-1],
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("constraint_err_mean", s.ConstraintErrMean),
		slog.Float64("constraint_err_std", s.ConstraintErrStd),
		slog.Float64("constraint_err_p90", s.ConstraintErrP90),
		slog.Float64("kinetic_mean", s.KineticMean),
		slog.Float64("kinetic_p90", s.KineticP90),
		slog.Float64("wind_mean", s.WindMean),
		slog.Float64("wind_max", s.WindMax),
		slog.Int("gusts_injected", s.GustsInjected),
		slog.Int("vortices_injected", s.VorticesInjected),
		slog.Int("active_gusts", s.ActiveGusts),
		slog.Int("active_vortices", s.ActiveVortices),
		slog.Float64("frame_ms_mean", s.FrameMSMean),
		slog.Float64("frame_ms_max", s.FrameMSMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"constraint_err_mean", s.ConstraintErrMean,
		"constraint_err_p90", s.ConstraintErrP90,
		"kinetic_mean", s.KineticMean,
		"wind_mean", s.WindMean,
		"wind_max", s.WindMax,
		"gusts_injected", s.GustsInjected,
		"vortices_injected", s.VorticesInjected,
		"active_gusts", s.ActiveGusts,
		"active_vortices", s.ActiveVortices,
		"frame_ms_mean", s.FrameMSMean,
		"frame_ms_max", s.FrameMSMax,
	)
}
