// Package diag writes optional cross-section snapshots: an occupancy image of
// the surface search window, useful when the probe misses and the marker
// disappears for no obvious reason.
package diag

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/image/draw"

	"fellmark/internal/cutmark"
)

// upscale factor from one probe cell to output pixels.
const cellPixels = 12

// Sampler answers point-in-solid queries. solid.Trunk satisfies it.
type Sampler interface {
	Contains(p rl.Vector3) bool
}

var (
	colorEmpty  = color.NRGBA{30, 30, 38, 255}
	colorSolid  = color.NRGBA{150, 98, 54, 255}
	colorCenter = color.NRGBA{240, 210, 60, 255}
)

// WriteWindowSnapshot samples the search window at the given resolution and
// writes the occupancy grid as a WebP image. The window center cell is
// highlighted so the image shows how the cross-section sits in the window.
func WriteWindowSnapshot(path string, s Sampler, win cutmark.SearchWindow, frame cutmark.AxisFrame, resolution int) error {
	if resolution <= 0 {
		return fmt.Errorf("diag: resolution must be positive, got %d", resolution)
	}

	grid := image.NewNRGBA(image.Rect(0, 0, resolution, resolution))
	for i := 0; i < resolution; i++ {
		u := (float32(i) + 0.5) / float32(resolution) * win.Size
		for j := 0; j < resolution; j++ {
			v := (float32(j) + 0.5) / float32(resolution) * win.Size

			p := rl.Vector3Add(win.Origin, rl.Vector3Scale(frame.Lateral1, u))
			p = rl.Vector3Add(p, rl.Vector3Scale(frame.Lateral2, v))

			c := colorEmpty
			if s.Contains(p) {
				c = colorSolid
			}
			// v grows along Lateral2; flip so the image reads top-down.
			grid.SetNRGBA(i, resolution-1-j, c)
		}
	}
	grid.SetNRGBA(resolution/2, resolution/2, colorCenter)

	out := image.NewNRGBA(image.Rect(0, 0, resolution*cellPixels, resolution*cellPixels))
	draw.NearestNeighbor.Scale(out, out.Bounds(), grid, grid.Bounds(), draw.Src, nil)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("diag: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("diag: %w", err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, out, nil); err != nil {
		return fmt.Errorf("diag: WebP encode: %w", err)
	}
	return nil
}
