package components

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"fellmark/internal/assets"
	"fellmark/internal/cutmark"
	"fellmark/internal/engine"
)

type fakeProber struct {
	distBelow float32
	ext       cutmark.Extents
	found     bool
}

func (f *fakeProber) AxialExtentFromPlane(planeOrigin, axial rl.Vector3) float32 {
	return f.distBelow
}

func (f *fakeProber) SurfaceInWindow(origin, axial, probeX, probeY rl.Vector3, sizeX, sizeY float32) (cutmark.Extents, bool) {
	return f.ext, f.found
}

func stubAssets() *assets.Manager {
	m := assets.NewManager()
	m.LoadModelFn = func(path string) (rl.Model, error) {
		return rl.Model{MeshCount: 1}, nil
	}
	return m
}

// newRig builds a scene with an upright trunk at the origin and a saw at the
// given position, started so the marker load request is queued but not pumped.
func newRig(prober cutmark.SurfaceProber, sawPos rl.Vector3) (*engine.Scene, *engine.GameObject, *CutMarker, *assets.Manager) {
	scene := engine.NewScene("test")

	trunk := engine.NewGameObject("Trunk")
	scene.AddGameObject(trunk)

	mgr := stubAssets()
	saw := engine.NewGameObject("Saw")
	saw.Transform.Position = sawPos
	cm := NewCutMarker(cutmark.NewLocator(6, 0.6), prober, trunk, mgr, "marker.glb")
	saw.AddComponent(cm)
	scene.AddGameObject(saw)

	scene.Start()
	return scene, saw, cm, mgr
}

func TestMarkerCreatedAfterAsyncLoad(t *testing.T) {
	scene, _, cm, mgr := newRig(&fakeProber{}, rl.Vector3{})

	if cm.Marker != nil {
		t.Fatal("marker must not exist before the load completes")
	}
	mgr.Pump()
	if cm.Marker == nil {
		t.Fatal("marker should exist after the load completes")
	}
	if scene.FindByName("CutMarker") != cm.Marker {
		t.Error("marker should be registered in the owner's scene")
	}
	if cm.Marker.Active {
		t.Error("marker starts hidden until a target is found")
	}
}

func TestFoundTargetPlacesAndAlignsMarker(t *testing.T) {
	prober := &fakeProber{
		distBelow: 2,
		ext:       cutmark.Extents{MinX: 0, MaxX: 1.2, MinY: 0, MaxY: 1.2},
		found:     true,
	}
	_, saw, cm, mgr := newRig(prober, rl.Vector3{})
	mgr.Pump()

	saw.Update(0.016)

	if !cm.HasTarget() {
		t.Fatal("expected a target")
	}
	if !cm.Marker.Active {
		t.Error("marker should be visible")
	}

	// Upright trunk: axial +Y, offset 6-2=4 from the saw at the origin, and
	// centered extents put the marker back on the desired location.
	pos := cm.Marker.Transform.Position
	if math.Abs(float64(pos.X)) > 1e-5 || math.Abs(float64(pos.Y-4)) > 1e-5 || math.Abs(float64(pos.Z)) > 1e-5 {
		t.Errorf("marker position = (%v %v %v), want (0 4 0)", pos.X, pos.Y, pos.Z)
	}

	// Marker local X to axial +Y is a quarter turn; axial.Z is 0 so the
	// magnitude keeps its sign.
	rot := cm.Marker.Transform.Rotation
	if math.Abs(float64(rot.Y-90)) > 1e-3 || rot.X != 0 || rot.Z != 0 {
		t.Errorf("marker rotation = (%v %v %v), want (0 90 0)", rot.X, rot.Y, rot.Z)
	}
}

func TestProbeMissHidesMarkerAndResetsRotation(t *testing.T) {
	prober := &fakeProber{
		distBelow: 2,
		ext:       cutmark.Extents{MinX: 0, MaxX: 1.2, MinY: 0, MaxY: 1.2},
		found:     true,
	}
	_, saw, cm, mgr := newRig(prober, rl.Vector3{})
	mgr.Pump()

	saw.Update(0.016)
	if !cm.HasTarget() {
		t.Fatal("expected a target first")
	}

	lost := 0
	cm.TargetLost.AddListener(func() { lost++ })

	prober.found = false
	saw.Update(0.016)

	if cm.HasTarget() {
		t.Error("target should be gone after a miss")
	}
	if cm.Marker.Active {
		t.Error("marker should be hidden after a miss")
	}
	if rot := cm.Marker.Transform.Rotation; rot != (rl.Vector3{}) {
		t.Errorf("marker rotation should reset to zero, got (%v %v %v)", rot.X, rot.Y, rot.Z)
	}
	if lost != 1 {
		t.Errorf("TargetLost fired %d times, want 1", lost)
	}
}

func TestDeactivateHidesMarker(t *testing.T) {
	prober := &fakeProber{
		distBelow: 2,
		ext:       cutmark.Extents{MinX: 0, MaxX: 1.2, MinY: 0, MaxY: 1.2},
		found:     true,
	}
	_, saw, cm, mgr := newRig(prober, rl.Vector3{})
	mgr.Pump()
	saw.Update(0.016)

	saw.SetActive(false)

	if cm.Marker.Active {
		t.Error("deactivating the tool should hide the marker")
	}
	if cm.HasTarget() {
		t.Error("deactivating the tool should drop the target")
	}
}

func TestDestroyCancelsPendingLoad(t *testing.T) {
	_, saw, cm, mgr := newRig(&fakeProber{}, rl.Vector3{})

	saw.Destroy()
	mgr.Pump()

	if cm.Marker != nil {
		t.Error("no marker should be created after the owner is destroyed")
	}
}

// A callback that fires after the owner died must discard its result. This
// bypasses AddComponent so Destroy does not cancel the queued request.
func TestStaleCallbackIsDiscarded(t *testing.T) {
	owner := engine.NewGameObject("Saw")
	mgr := stubAssets()

	cm := NewCutMarker(cutmark.NewLocator(6, 0.6), &fakeProber{}, nil, mgr, "marker.glb")
	cm.SetGameObject(owner)
	cm.OnActivate()

	owner.Destroy()
	mgr.Pump()

	if cm.Marker != nil {
		t.Error("stale callback must not create the marker")
	}
	if mgr.PendingCount() != 0 {
		t.Error("request should have left the queue")
	}
}
