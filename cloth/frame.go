package cloth

import "github.com/ethereal-sim/capewind/vecmath"

// frame supplies the dimension-specific placement geometry a Body needs:
// where gravity points and where a grid slot hangs relative to the anchor.
type frame[V vecmath.Vector[V]] interface {
	// Gravity returns the gravity force vector for a magnitude.
	Gravity(magnitude float64) V
	// Drape places a grid slot: lateral offset across the pinned row and
	// depth along the hang direction, relative to the anchor pose.
	Drape(anchor, forward V, lateral, depth float64) V
}

// planarFrame lays the cloth out in screen coordinates: +Y hangs down
// and the pinned row spreads along +X regardless of facing.
type planarFrame struct{}

func (planarFrame) Gravity(magnitude float64) vecmath.Vec2 {
	return vecmath.Vec2{Y: magnitude}
}

func (planarFrame) Drape(anchor, _ vecmath.Vec2, lateral, depth float64) vecmath.Vec2 {
	return anchor.Add(vecmath.Vec2{X: lateral, Y: depth})
}

// volumeFrame lays the cloth out behind the anchor's facing direction,
// with -Y gravity and the pinned row spread along the facing's right
// vector.
type volumeFrame struct{}

func (volumeFrame) Gravity(magnitude float64) vecmath.Vec3 {
	return vecmath.Vec3{Y: -magnitude}
}

func (volumeFrame) Drape(anchor, forward vecmath.Vec3, lateral, depth float64) vecmath.Vec3 {
	fwd := forward.Normed()
	right := vecmath.Vec3{Y: 1}.Cross(fwd)
	if right.NormSq() < 0.01 {
		// Facing straight up or down: fall back to another basis.
		right = vecmath.Vec3{X: 1}.Cross(fwd)
	}
	right = right.Normed()
	return anchor.Add(fwd.Scale(-depth)).Add(right.Scale(lateral))
}
