package diag

import (
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"fellmark/internal/cutmark"
)

// discSampler is a solid disc of the given radius around the Y axis.
type discSampler struct {
	radius float32
}

func (d discSampler) Contains(p rl.Vector3) bool {
	return p.X*p.X+p.Z*p.Z <= d.radius*d.radius
}

func testWindow() (cutmark.SearchWindow, cutmark.AxisFrame) {
	win := cutmark.SearchWindow{Origin: rl.NewVector3(-0.6, 6, 0.6), Size: 1.2}
	frame := cutmark.AxisFrame{
		Axial:    rl.NewVector3(0, 1, 0),
		Lateral1: rl.NewVector3(1, 0, 0),
		Lateral2: rl.NewVector3(0, 0, -1),
	}
	return win, frame
}

func TestWriteWindowSnapshot(t *testing.T) {
	win, frame := testWindow()
	path := filepath.Join(t.TempDir(), "sub", "window.webp")

	if err := WriteWindowSnapshot(path, discSampler{radius: 0.3}, win, frame, 24); err != nil {
		t.Fatalf("WriteWindowSnapshot: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("snapshot file is empty")
	}
}

func TestWriteWindowSnapshotRejectsBadResolution(t *testing.T) {
	win, frame := testWindow()
	path := filepath.Join(t.TempDir(), "window.webp")

	if err := WriteWindowSnapshot(path, discSampler{radius: 0.3}, win, frame, 0); err == nil {
		t.Error("zero resolution should be rejected")
	}
}
