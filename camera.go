package orrery

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64 // degrees
	Near   float64
	Far    float64
}

func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl64.Vec3{0, 0, 3},
		Target: mgl64.Vec3{0, 0, 0},
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   45,
		Near:   0.1,
		Far:    100,
	}
}

func (c Camera) View() mgl64.Mat4 {
	return LookAt(c.Eye, c.Target, c.Up)
}

func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	return Perspective(c.FovY, aspect, c.Near, c.Far)
}

// MoveEye translates the eye; the camera keeps looking at Target.
func (c *Camera) MoveEye(d mgl64.Vec3) {
	c.Eye = c.Eye.Add(d)
}
