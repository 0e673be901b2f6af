// Package components defines ECS components for the demo scene.
package components

// FlightState describes what the glider is currently doing.
type FlightState uint8

const (
	StateGliding FlightState = iota
	StateClimbing
	StateDiving
	StateHovering
)

// String returns the display name of a flight state.
func (s FlightState) String() string {
	switch s {
	case StateClimbing:
		return "climbing"
	case StateDiving:
		return "diving"
	case StateHovering:
		return "hovering"
	default:
		return "gliding"
	}
}

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y float64
}

// Rotation represents an entity's facing angle in radians.
type Rotation struct {
	Heading float64
}

// Body holds an entity's physical extent.
type Body struct {
	Radius float64
}

// Flight holds the glider's control state.
type Flight struct {
	State      FlightState
	Energy     float64 // climb reserve, 0-100
	StateTimer float64 // seconds in flight, drives turbulence wobble

	// Input held this frame
	InputUp    bool
	InputDown  bool
	InputLeft  bool
	InputRight bool
}

// Leaf marks a lightweight debris particle carried by the wind.
type Leaf struct {
	Spin float64 // radians per second
	Size float64
}
