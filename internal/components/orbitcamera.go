package components

import (
	"math"

	"fellmark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a fixed target, driven by right-mouse drag and the
// scroll wheel.
type OrbitCamera struct {
	engine.BaseComponent
	Target   rl.Vector3
	Distance float32
	Yaw      float32 // degrees
	Pitch    float32 // degrees
	FOV      float32
}

func NewOrbitCamera(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:   target,
		Distance: distance,
		Yaw:      45,
		Pitch:    25,
		FOV:      45,
	}
}

func (c *OrbitCamera) Update(deltaTime float32) {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		c.Yaw -= delta.X * 0.25
		c.Pitch += delta.Y * 0.25
		if c.Pitch > 85 {
			c.Pitch = 85
		}
		if c.Pitch < -85 {
			c.Pitch = -85
		}
	}

	c.Distance -= rl.GetMouseWheelMove() * 1.5
	if c.Distance < 2 {
		c.Distance = 2
	}
	if c.Distance > 60 {
		c.Distance = 60
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180

	offset := rl.Vector3{
		X: float32(math.Cos(pitch) * math.Cos(yaw)),
		Y: float32(math.Sin(pitch)),
		Z: float32(math.Cos(pitch) * math.Sin(yaw)),
	}

	return rl.Camera3D{
		Position:   rl.Vector3Add(c.Target, rl.Vector3Scale(offset, c.Distance)),
		Target:     c.Target,
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}
