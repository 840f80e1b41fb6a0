package cutmark

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DirectionQuery maps a local direction on an object into world space.
// engine.GameObject satisfies it.
type DirectionQuery interface {
	WorldDirection(local rl.Vector3) rl.Vector3
}

// AxisFrame is an orthonormal right-handed frame for an elongated solid:
// Axial runs along the solid's long axis, Lateral1/Lateral2 span the
// cross-sectional plane (Axial x Lateral1 = Lateral2).
type AxisFrame struct {
	Axial    rl.Vector3
	Lateral1 rl.Vector3
	Lateral2 rl.Vector3
}

// FrameFrom builds the frame from the probed object's local axes. Trunks are
// authored with the growth axis along local +Y, so local +Y maps to Axial and
// local +X / -Z map to the laterals. The -Z flip keeps the frame right-handed.
// This is a convention lookup, not geometric inference; changing it breaks the
// agreement with the surface prober's axis convention.
func FrameFrom(q DirectionQuery) AxisFrame {
	return AxisFrame{
		Axial:    q.WorldDirection(rl.NewVector3(0, 1, 0)),
		Lateral1: q.WorldDirection(rl.NewVector3(1, 0, 0)),
		Lateral2: q.WorldDirection(rl.NewVector3(0, 0, -1)),
	}
}

// ProbeRef is the cutting tool's current focus point on the solid, paired
// with the solid's axis frame.
type ProbeRef struct {
	Position rl.Vector3
	Frame    AxisFrame
}
