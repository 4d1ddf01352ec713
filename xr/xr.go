// Package xr holds the spatial types and device capabilities shared by the
// gallery and placement worlds. Coordinates follow the WebXR convention:
// right-handed, +Y up, the viewer looks down -Z.
package xr

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Forward is the local-frame forward direction.
var Forward = mgl64.Vec3{0, 0, -1}

// Pose is a position and orientation in world space.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// IdentityPose returns a pose at the origin facing -Z.
func IdentityPose() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// PoseAt returns an unrotated pose at p.
func PoseAt(x, y, z float64) Pose {
	return Pose{Position: mgl64.Vec3{x, y, z}, Orientation: mgl64.QuatIdent()}
}

// Facing returns a pose at p rotated by yaw (around +Y) then pitch (around +X), in radians.
func Facing(p mgl64.Vec3, yaw, pitch float64) Pose {
	q := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0}))
	return Pose{Position: p, Orientation: q.Normalize()}
}

// LookAt returns a pose at from whose forward direction points at to. The
// pose has no roll. Returns an unrotated pose when the points coincide.
func LookAt(from, to mgl64.Vec3) Pose {
	d := to.Sub(from)
	if d.Len() == 0 {
		return Pose{Position: from, Orientation: mgl64.QuatIdent()}
	}
	yaw := math.Atan2(-d.X(), -d.Z())
	pitch := math.Atan2(d.Y(), math.Hypot(d.X(), d.Z()))
	return Facing(from, yaw, pitch)
}

// Forward returns the pose's forward direction in world space.
func (p Pose) Forward() mgl64.Vec3 {
	return p.orientation().Rotate(Forward)
}

// Matrix returns the pose as a column-major model matrix.
func (p Pose) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.orientation().Mat4())
}

// orientation treats the zero quaternion as identity so zero-value poses are usable.
func (p Pose) orientation() mgl64.Quat {
	if p.Orientation.W == 0 && p.Orientation.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return p.Orientation
}

// Transform is the scene-graph state the simulation owns for an object.
type Transform struct {
	Pose
	Scale float64
}

// NewTransform returns a transform at pose with unit scale.
func NewTransform(pose Pose) Transform {
	return Transform{Pose: pose, Scale: 1}
}
