package cutmark

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// DefaultTargetDistance is the desired axial distance from the solid's
	// starting end to the cut.
	DefaultTargetDistance = 6.0

	// DefaultWindowHalfSize gives a 1.2-unit search window, wide enough for
	// typical trunk cross-sections regardless of the solid's actual size.
	DefaultWindowHalfSize = 0.6
)

// Extents is a surface probe hit: min/max offsets of the solid within the
// search window, relative to the window origin, in the window's own 2D
// coordinates (X along Lateral1, Y along Lateral2).
type Extents struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// SurfaceProber is the external capability that answers geometry questions
// about one solid.
type SurfaceProber interface {
	// AxialExtentFromPlane returns the distance from the plane through
	// planeOrigin (normal = axial) to the solid's far end on the below side.
	AxialExtentFromPlane(planeOrigin, axial rl.Vector3) float32

	// SurfaceInWindow scans a sizeX-by-sizeY window spanned by probeX/probeY
	// from origin and reports the solid's extents in it, or ok=false when the
	// window contains no solid at all.
	SurfaceInWindow(origin, axial, probeX, probeY rl.Vector3, sizeX, sizeY float32) (ext Extents, ok bool)
}

// MarkerOrient exposes the marker object's orientation for the rotation
// derivation.
type MarkerOrient interface {
	ResetRotation()
	WorldDirection(local rl.Vector3) rl.Vector3
}

// SearchWindow is a square probe region in the lateral plane. Origin is the
// corner at (-half, -half) from the desired cut location.
type SearchWindow struct {
	Origin rl.Vector3
	Size   float32
}

// CutTarget is the computed marker placement. Rotation is radians about the
// world Y axis; X and Z stay zero.
type CutTarget struct {
	Position rl.Vector3
	Rotation float32
}

// Locator computes cut marker placements. It holds configuration only; every
// call derives all state fresh, so results never drift across ticks.
type Locator struct {
	TargetDistance float32
	WindowHalfSize float32
}

func NewLocator(targetDistance, windowHalfSize float32) *Locator {
	if targetDistance <= 0 {
		targetDistance = DefaultTargetDistance
	}
	if windowHalfSize <= 0 {
		windowHalfSize = DefaultWindowHalfSize
	}
	return &Locator{
		TargetDistance: targetDistance,
		WindowHalfSize: windowHalfSize,
	}
}

// Window builds the search window for the current probe reference. The
// desired cut location sits at TargetDistance from the solid's lower end:
// the axial offset from the reference point is TargetDistance minus the
// extent already below it. A negative offset is fine and simply places the
// window behind the reference point.
func (l *Locator) Window(prober SurfaceProber, ref ProbeRef) SearchWindow {
	distBelow := prober.AxialExtentFromPlane(ref.Position, ref.Frame.Axial)
	axialOffset := l.TargetDistance - distBelow
	desired := rl.Vector3Add(ref.Position, rl.Vector3Scale(ref.Frame.Axial, axialOffset))

	origin := rl.Vector3Subtract(desired, rl.Vector3Scale(ref.Frame.Lateral1, l.WindowHalfSize))
	origin = rl.Vector3Subtract(origin, rl.Vector3Scale(ref.Frame.Lateral2, l.WindowHalfSize))
	return SearchWindow{Origin: origin, Size: 2 * l.WindowHalfSize}
}

// ComputeCutTarget runs one placement computation. ok=false means the probe
// found no solid in the window (solid too short, or the window missed the
// cross-section); that is a normal outcome, not an error, and the caller
// should hide the marker and reset its rotation.
func (l *Locator) ComputeCutTarget(prober SurfaceProber, ref ProbeRef, marker MarkerOrient) (CutTarget, bool) {
	win := l.Window(prober, ref)

	ext, ok := prober.SurfaceInWindow(win.Origin, ref.Frame.Axial, ref.Frame.Lateral1, ref.Frame.Lateral2, win.Size, win.Size)
	if !ok {
		return CutTarget{}, false
	}

	c1 := (ext.MinX + ext.MaxX) / 2
	c2 := (ext.MinY + ext.MaxY) / 2
	pos := rl.Vector3Add(win.Origin, rl.Vector3Scale(ref.Frame.Lateral1, c1))
	pos = rl.Vector3Add(pos, rl.Vector3Scale(ref.Frame.Lateral2, c2))

	return CutTarget{
		Position: pos,
		Rotation: markerAlignment(marker, ref.Frame.Axial),
	}, true
}

// markerAlignment returns the yaw that turns the marker's local X onto the
// axial direction. Vector3Angle only yields a magnitude; the sign is resolved
// from the Z component of the axial direction. That rule is a quirk of this
// particular angle primitive combined with our Y-rotation convention - verify
// it again before swapping either.
func markerAlignment(marker MarkerOrient, axial rl.Vector3) float32 {
	marker.ResetRotation()
	localX := marker.WorldDirection(rl.NewVector3(1, 0, 0))

	angle := rl.Vector3Angle(localX, axial)
	if axial.Z > 0 {
		angle = -angle
	}
	return angle
}
