package cutmark

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// fakeProber returns canned answers and records what it was asked.
type fakeProber struct {
	distBelow float32
	ext       Extents
	found     bool

	gotPlaneOrigin rl.Vector3
	gotOrigin      rl.Vector3
	gotSizeX       float32
	gotSizeY       float32
}

func (f *fakeProber) AxialExtentFromPlane(planeOrigin, axial rl.Vector3) float32 {
	f.gotPlaneOrigin = planeOrigin
	return f.distBelow
}

func (f *fakeProber) SurfaceInWindow(origin, axial, probeX, probeY rl.Vector3, sizeX, sizeY float32) (Extents, bool) {
	f.gotOrigin = origin
	f.gotSizeX = sizeX
	f.gotSizeY = sizeY
	return f.ext, f.found
}

// identityMarker reports local directions unchanged, like a marker object
// with no parent and identity rotation.
type identityMarker struct {
	resets int
}

func (m *identityMarker) ResetRotation() { m.resets++ }

func (m *identityMarker) WorldDirection(local rl.Vector3) rl.Vector3 { return local }

func horizontalFrame() AxisFrame {
	return AxisFrame{
		Axial:    rl.NewVector3(1, 0, 0),
		Lateral1: rl.NewVector3(0, 1, 0),
		Lateral2: rl.NewVector3(0, 0, -1),
	}
}

func vecNear(t *testing.T, name string, got, want rl.Vector3) {
	t.Helper()
	const eps = 1e-5
	if math.Abs(float64(got.X-want.X)) > eps ||
		math.Abs(float64(got.Y-want.Y)) > eps ||
		math.Abs(float64(got.Z-want.Z)) > eps {
		t.Errorf("%s = (%v %v %v), want (%v %v %v)", name, got.X, got.Y, got.Z, want.X, want.Y, want.Z)
	}
}

func TestEndToEndHorizontalLog(t *testing.T) {
	prober := &fakeProber{
		distBelow: 2,
		ext:       Extents{MinX: 0, MaxX: 1.2, MinY: 0, MaxY: 1.2},
		found:     true,
	}
	ref := ProbeRef{Position: rl.Vector3{}, Frame: horizontalFrame()}
	loc := NewLocator(6, 0.6)

	target, ok := loc.ComputeCutTarget(prober, ref, &identityMarker{})
	if !ok {
		t.Fatal("expected a target")
	}

	// offset = 6-2 = 4 along +X, window corner pulled back half a window
	// along both laterals.
	vecNear(t, "window origin", prober.gotOrigin, rl.NewVector3(4, -0.6, 0.6))
	if prober.gotSizeX != 1.2 || prober.gotSizeY != 1.2 {
		t.Errorf("window size = %v x %v, want 1.2 x 1.2", prober.gotSizeX, prober.gotSizeY)
	}

	// Extents centered in the window put the marker back on the axis.
	vecNear(t, "position", target.Position, rl.NewVector3(4, 0, 0))

	// Marker local X already matches axial; no rotation.
	if target.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", target.Rotation)
	}
}

func TestNegativeAxialOffset(t *testing.T) {
	// The reference point is already past the target distance; the window
	// lands behind it. This must work without special-casing.
	prober := &fakeProber{
		distBelow: 8,
		ext:       Extents{MinX: 0.2, MaxX: 1.0, MinY: 0.2, MaxY: 1.0},
		found:     true,
	}
	ref := ProbeRef{Position: rl.Vector3{}, Frame: horizontalFrame()}
	loc := NewLocator(6, 0.6)

	target, ok := loc.ComputeCutTarget(prober, ref, &identityMarker{})
	if !ok {
		t.Fatal("expected a target")
	}
	vecNear(t, "window origin", prober.gotOrigin, rl.NewVector3(-2, -0.6, 0.6))
	vecNear(t, "position", target.Position, rl.NewVector3(-2, 0, 0))
}

func TestProbeMissReturnsNotFound(t *testing.T) {
	prober := &fakeProber{distBelow: 2, found: false}
	ref := ProbeRef{Position: rl.Vector3{}, Frame: horizontalFrame()}
	loc := NewLocator(6, 0.6)

	target, ok := loc.ComputeCutTarget(prober, ref, &identityMarker{})
	if ok {
		t.Fatal("expected no target on probe miss")
	}
	if target != (CutTarget{}) {
		t.Errorf("miss should return a zero target, got %+v", target)
	}
}

func TestRotationSignDisambiguation(t *testing.T) {
	// The angle primitive returns a magnitude; the sign comes from the Z
	// component of the axial direction.
	cases := []struct {
		name  string
		axial rl.Vector3
		want  float32
	}{
		{"axial +Z negates", rl.NewVector3(0, 0, 1), -float32(math.Pi / 2)},
		{"axial -Z keeps", rl.NewVector3(0, 0, -1), float32(math.Pi / 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := markerAlignment(&identityMarker{}, tc.axial)
			if math.Abs(float64(got-tc.want)) > 1e-5 {
				t.Errorf("rotation = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRotationIsIdempotent(t *testing.T) {
	marker := &identityMarker{}
	axial := rl.NewVector3(0.6, 0, 0.8)

	first := markerAlignment(marker, axial)
	second := markerAlignment(marker, axial)
	if first != second {
		t.Errorf("repeated alignment differs: %v then %v", first, second)
	}
	if marker.resets != 2 {
		t.Errorf("marker rotation should be reset before each read, got %d resets", marker.resets)
	}
}

func TestFrameFromObjectAxes(t *testing.T) {
	// Identity orientation: local axes pass through unchanged.
	frame := FrameFrom(&identityMarker{})

	vecNear(t, "axial", frame.Axial, rl.NewVector3(0, 1, 0))
	vecNear(t, "lateral1", frame.Lateral1, rl.NewVector3(1, 0, 0))
	vecNear(t, "lateral2", frame.Lateral2, rl.NewVector3(0, 0, -1))

	// Right-handed: axial x lateral1 = lateral2.
	cross := rl.Vector3CrossProduct(frame.Axial, frame.Lateral1)
	vecNear(t, "axial x lateral1", cross, frame.Lateral2)
}

func TestNewLocatorDefaults(t *testing.T) {
	loc := NewLocator(0, 0)
	if loc.TargetDistance != DefaultTargetDistance {
		t.Errorf("TargetDistance = %v, want %v", loc.TargetDistance, DefaultTargetDistance)
	}
	if loc.WindowHalfSize != DefaultWindowHalfSize {
		t.Errorf("WindowHalfSize = %v, want %v", loc.WindowHalfSize, DefaultWindowHalfSize)
	}
}
