package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// LookAt derives an orthonormal forward/up pair for a camera at eye looking
// at target. worldUp only needs to be roughly up; it must not be parallel
// to the viewing direction.
func LookAt(eye, target Point, worldUp Vector) (to, up Vector, err error) {
	forward, err := target.Subtract(eye)
	if err != nil {
		return Vector{}, Vector{}, fmt.Errorf("camera target equals position: %w", err)
	}
	if forward.IsParallel(worldUp) {
		return Vector{}, Vector{}, fmt.Errorf("up vector is parallel to the view direction: %w", ErrZeroVector)
	}

	view := mgl64.LookAtV(toMgl(eye.xyz), toMgl(target.xyz), toMgl(worldUp.xyz))

	// The view matrix rows hold right, up and -forward
	u := view.Row(1).Vec3()
	f := view.Row(2).Vec3().Mul(-1)

	to, err = NewVector(f[0], f[1], f[2])
	if err != nil {
		return Vector{}, Vector{}, err
	}
	up, err = NewVector(u[0], u[1], u[2])
	if err != nil {
		return Vector{}, Vector{}, err
	}
	return to.Normalize(), up.Normalize(), nil
}

// LookAtConfig builds a camera configuration aimed at target
func LookAtConfig(eye, target Point, worldUp Vector, width, height, distance float64) (CameraConfig, error) {
	to, up, err := LookAt(eye, target, worldUp)
	if err != nil {
		return CameraConfig{}, err
	}
	return CameraConfig{
		Position:          eye,
		To:                to,
		Up:                up,
		ViewPlaneWidth:    width,
		ViewPlaneHeight:   height,
		ViewPlaneDistance: distance,
	}, nil
}

func toMgl(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
