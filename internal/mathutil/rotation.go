// Package mathutil holds the camera rotations used for previews.
//
// Matrices map world coordinates to view space where x is screen right,
// y is screen up and z points toward the viewer.
package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Preset camera rotations.
var (
	// ViewFront looks down -z onto the xy plane (2D drawings).
	ViewFront = mgl64.Ident3()

	// ViewTree stands the turtle's initial heading (+x) upright and turns
	// the model 30° on a turntable: Ry(30°) @ Rz(90°)
	ViewTree = mgl64.Rotate3DY(mgl64.DegToRad(30)).Mul3(mgl64.Rotate3DZ(math.Pi / 2))

	// ViewSide looks along +y onto the xz plane, z up: Rx(-90°)
	ViewSide = mgl64.Rotate3DX(-math.Pi / 2)

	// ViewIso is a three-quarter view: Rx(-60°) @ Rz(-45°)
	ViewIso = mgl64.Rotate3DX(mgl64.DegToRad(-60)).Mul3(mgl64.Rotate3DZ(mgl64.DegToRad(-45)))
)

// EulerToMat3 builds Rz·Ry·Rx from pitch (x), yaw (y) and roll (z) in
// radians. The angles are composed as quaternions first.
func EulerToMat3(rx, ry, rz float64) mgl64.Mat3 {
	q := mgl64.QuatRotate(rz, mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(ry, mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(rx, mgl64.Vec3{1, 0, 0})).
		Normalize()
	return q.Mat4().Mat3()
}
