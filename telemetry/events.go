package telemetry

// EventType identifies transient wind events.
type EventType string

const (
	EventGust   EventType = "gust"
	EventVortex EventType = "vortex"
	EventReset  EventType = "reset"
)

// Event records a transient injected into the wind field, for replaying
// or inspecting a run afterwards.
type Event struct {
	Type     EventType `csv:"type"`
	SimTime  float64   `csv:"sim_time"`
	X        float64   `csv:"x"`
	Y        float64   `csv:"y"`
	Strength float64   `csv:"strength"`
	Radius   float64   `csv:"radius"`
	Duration float64   `csv:"duration"`
}

// NewGustEvent records a gust injection.
func NewGustEvent(simTime, x, y, strength, radius, duration float64) Event {
	return Event{
		Type:     EventGust,
		SimTime:  simTime,
		X:        x,
		Y:        y,
		Strength: strength,
		Radius:   radius,
		Duration: duration,
	}
}

// NewVortexEvent records a vortex injection.
func NewVortexEvent(simTime, x, y, strength, radius, duration float64) Event {
	return Event{
		Type:     EventVortex,
		SimTime:  simTime,
		X:        x,
		Y:        y,
		Strength: strength,
		Radius:   radius,
		Duration: duration,
	}
}

// NewResetEvent records a scene reset.
func NewResetEvent(simTime float64) Event {
	return Event{Type: EventReset, SimTime: simTime}
}
