// Package solid models tree trunks as signed distance fields and answers the
// surface probes the cut locator needs, backed by github.com/deadsy/sdfx.
package solid

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	rl "github.com/gen2brain/raylib-go/raylib"

	"fellmark/internal/cutmark"
)

// DefaultResolution is the per-axis sample count of the window scan. 24 cells
// over a 1.2-unit window resolves the surface to 5cm.
const DefaultResolution = 24

// Trunk is a log or standing trunk in world space. The long axis runs along
// local +Y with the base at the local origin; Placed applies a world
// transform. Trunk implements cutmark.SurfaceProber.
type Trunk struct {
	s          sdf.SDF3
	Resolution int
}

var _ cutmark.SurfaceProber = (*Trunk)(nil)

// NewTapered creates a frustum trunk: baseRadius at the lower end tapering to
// topRadius at height.
func NewTapered(height, baseRadius, topRadius float64) (*Trunk, error) {
	s, err := sdf.Cone3D(height, baseRadius, topRadius, 0)
	if err != nil {
		return nil, fmt.Errorf("solid: cone: %w", err)
	}
	return &Trunk{s: seat(s, height), Resolution: DefaultResolution}, nil
}

// NewCylindrical creates an untapered trunk.
func NewCylindrical(height, radius float64) (*Trunk, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("solid: cylinder: %w", err)
	}
	return &Trunk{s: seat(s, height), Resolution: DefaultResolution}, nil
}

// seat re-seats an sdfx solid (centered on the origin, axis along Z) so the
// base sits at the origin and the axis runs along +Y.
func seat(s sdf.SDF3, height float64) sdf.SDF3 {
	m := sdf.RotateX(-math.Pi / 2).Mul(sdf.Translate3d(v3.Vec{Z: height / 2}))
	return sdf.Transform3D(s, m)
}

// Placed returns a copy of the trunk transformed into world space. Rotation
// is Euler degrees applied X, then Y, then Z, matching the engine's transform
// convention.
func (t *Trunk) Placed(position, rotationDeg rl.Vector3) *Trunk {
	rx := float64(rotationDeg.X) * math.Pi / 180
	ry := float64(rotationDeg.Y) * math.Pi / 180
	rz := float64(rotationDeg.Z) * math.Pi / 180
	rot := sdf.RotateZ(rz).Mul(sdf.RotateY(ry)).Mul(sdf.RotateX(rx))
	m := sdf.Translate3d(v3.Vec{
		X: float64(position.X),
		Y: float64(position.Y),
		Z: float64(position.Z),
	}).Mul(rot)
	return &Trunk{s: sdf.Transform3D(t.s, m), Resolution: t.Resolution}
}

// Contains reports whether a world point is inside the solid.
func (t *Trunk) Contains(p rl.Vector3) bool {
	return t.s.Evaluate(v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}) <= 0
}

// AxialExtentFromPlane returns how far the solid reaches below the plane
// through planeOrigin with normal axial, taken from the bounding box corners.
// The box is tight when the trunk axis lines up with a box edge, which holds
// for the placements the game uses.
func (t *Trunk) AxialExtentFromPlane(planeOrigin, axial rl.Vector3) float32 {
	bb := t.s.BoundingBox()
	ax := v3.Vec{X: float64(axial.X), Y: float64(axial.Y), Z: float64(axial.Z)}

	minProj := math.Inf(1)
	for _, x := range []float64{bb.Min.X, bb.Max.X} {
		for _, y := range []float64{bb.Min.Y, bb.Max.Y} {
			for _, z := range []float64{bb.Min.Z, bb.Max.Z} {
				proj := x*ax.X + y*ax.Y + z*ax.Z
				if proj < minProj {
					minProj = proj
				}
			}
		}
	}

	refProj := float64(planeOrigin.X)*ax.X + float64(planeOrigin.Y)*ax.Y + float64(planeOrigin.Z)*ax.Z
	d := refProj - minProj
	if d < 0 {
		d = 0
	}
	return float32(d)
}

// SurfaceInWindow grid-scans the window plane spanned by probeX/probeY and
// returns the extents of in-solid samples in window coordinates. ok=false
// when no sample hits the solid. Samples sit at cell centers, so reported
// extents are accurate to half a cell.
func (t *Trunk) SurfaceInWindow(origin, axial, probeX, probeY rl.Vector3, sizeX, sizeY float32) (cutmark.Extents, bool) {
	n := t.Resolution
	if n <= 0 {
		n = DefaultResolution
	}

	var ext cutmark.Extents
	found := false
	for i := 0; i < n; i++ {
		u := (float32(i) + 0.5) / float32(n) * sizeX
		for j := 0; j < n; j++ {
			v := (float32(j) + 0.5) / float32(n) * sizeY

			p := rl.Vector3Add(origin, rl.Vector3Scale(probeX, u))
			p = rl.Vector3Add(p, rl.Vector3Scale(probeY, v))
			if !t.Contains(p) {
				continue
			}

			if !found {
				ext = cutmark.Extents{MinX: u, MaxX: u, MinY: v, MaxY: v}
				found = true
				continue
			}
			if u < ext.MinX {
				ext.MinX = u
			}
			if u > ext.MaxX {
				ext.MaxX = u
			}
			if v < ext.MinY {
				ext.MinY = v
			}
			if v > ext.MaxY {
				ext.MaxY = v
			}
		}
	}
	return ext, found
}
