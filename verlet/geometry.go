package verlet

import (
	"math"

	"github.com/ethereal-sim/capewind/vecmath"
)

// Planar is the 2D geometry. Bend angles are signed via the scalar cross
// product and rotations happen in the plane itself.
type Planar struct{}

// BendAngle returns the signed angle from ba to bc.
func (Planar) BendAngle(ba, bc vecmath.Vec2) (float64, bool) {
	if ba.NormSq() < vecmath.Epsilon*vecmath.Epsilon || bc.NormSq() < vecmath.Epsilon*vecmath.Epsilon {
		return 0, false
	}
	return math.Atan2(ba.Cross(bc), ba.Dot(bc)), true
}

// RotateBend rotates v by theta; in 2D the bend plane is the plane.
func (Planar) RotateBend(_, _, v vecmath.Vec2, theta float64) vecmath.Vec2 {
	return v.Rotate(theta)
}

// Volumetric is the 3D geometry. The bend angle is measured about the
// hinge axis ba x bc, which also serves as the rotation axis, giving the
// same signed-dihedral behavior as the planar form.
type Volumetric struct{}

// BendAngle returns the angle from ba to bc about their shared hinge axis.
func (Volumetric) BendAngle(ba, bc vecmath.Vec3) (float64, bool) {
	if ba.NormSq() < vecmath.Epsilon*vecmath.Epsilon || bc.NormSq() < vecmath.Epsilon*vecmath.Epsilon {
		return 0, false
	}
	return math.Atan2(ba.Cross(bc).Norm(), ba.Dot(bc)), true
}

// RotateBend rotates v by theta about the ba x bc hinge axis. When the
// arms are colinear the axis is undefined and v is returned unchanged.
func (Volumetric) RotateBend(ba, bc, v vecmath.Vec3, theta float64) vecmath.Vec3 {
	axis := ba.Cross(bc)
	if axis.NormSq() < vecmath.Epsilon*vecmath.Epsilon {
		return v
	}
	return v.RotateAbout(axis.Normed(), theta)
}
