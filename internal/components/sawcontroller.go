package components

import (
	"fellmark/internal/cutmark"
	"fellmark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SawController keeps the saw's focus point on the trunk surface. W/S slide
// the contact point along the trunk axis, A/D walk it around the
// circumference.
type SawController struct {
	engine.BaseComponent
	Trunk  *engine.GameObject
	Radius float32 // contact radius around the trunk axis
	Height float32 // contact height along the trunk axis
	Angle  float32 // degrees around the trunk axis
	Speed  float32
}

func NewSawController(trunk *engine.GameObject, radius float32) *SawController {
	return &SawController{
		Trunk:  trunk,
		Radius: radius,
		Height: 1.0,
		Speed:  2.0,
	}
}

func (s *SawController) Update(deltaTime float32) {
	if s.Trunk == nil || !s.Trunk.Alive() {
		return
	}

	if rl.IsKeyDown(rl.KeyW) {
		s.Height += s.Speed * deltaTime
	}
	if rl.IsKeyDown(rl.KeyS) {
		s.Height -= s.Speed * deltaTime
	}
	if s.Height < 0.1 {
		s.Height = 0.1
	}
	if rl.IsKeyDown(rl.KeyA) {
		s.Angle -= 60 * deltaTime
	}
	if rl.IsKeyDown(rl.KeyD) {
		s.Angle += 60 * deltaTime
	}

	frame := cutmark.FrameFrom(s.Trunk)
	radial := rl.Vector3RotateByAxisAngle(frame.Lateral1, frame.Axial, s.Angle*rl.Deg2rad)

	pos := rl.Vector3Add(s.Trunk.WorldPosition(), rl.Vector3Scale(frame.Axial, s.Height))
	pos = rl.Vector3Add(pos, rl.Vector3Scale(radial, s.Radius))

	g := s.GetGameObject()
	g.Transform.Position = pos
}
