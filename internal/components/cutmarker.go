package components

import (
	"fellmark/internal/assets"
	"fellmark/internal/cutmark"
	"fellmark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CutMarker drives the cut-position marker for one cutting tool. It owns the
// marker GameObject and, every tick, asks the locator where the cut should be
// on the probed trunk. A probe miss hides the marker and resets its rotation;
// the computation simply runs again next tick.
//
// The marker model arrives through an asynchronous asset load requested on
// activation. The callback checks the owning object's liveness before
// touching anything and releases the request handle on every outcome.
type CutMarker struct {
	engine.BaseComponent

	Locator *cutmark.Locator
	Prober  cutmark.SurfaceProber
	Trunk   *engine.GameObject // probed object; its local axes define the frame

	ModelPath   string
	MarkerScale float32
	MarkerColor rl.Color

	// TargetFound fires each tick a valid target was computed; TargetLost
	// fires once when the target goes away.
	TargetFound engine.EventWithArg[cutmark.CutTarget]
	TargetLost  engine.Event

	Marker *engine.GameObject

	manager   *assets.Manager
	request   *assets.Request
	hasTarget bool
}

func NewCutMarker(loc *cutmark.Locator, prober cutmark.SurfaceProber, trunk *engine.GameObject, mgr *assets.Manager, modelPath string) *CutMarker {
	return &CutMarker{
		Locator:     loc,
		Prober:      prober,
		Trunk:       trunk,
		ModelPath:   modelPath,
		MarkerScale: 1.0,
		MarkerColor: rl.Orange,
		manager:     mgr,
	}
}

// OnActivate requests the marker model load. Repeated activation while a
// request is in flight, or after the marker exists, does nothing.
func (c *CutMarker) OnActivate() {
	if c.Marker != nil || c.request != nil {
		return
	}

	var req *assets.Request
	req = c.manager.LoadModelAsync(c.ModelPath, func(model rl.Model, err error) {
		defer req.Release()
		c.request = nil

		owner := c.GetGameObject()
		if owner == nil || !owner.Alive() {
			// Stale callback: the tool died while the load was queued.
			return
		}
		if err != nil {
			// Load failure leaves the marker absent; no retry.
			return
		}
		c.attachMarker(model)
	})
	c.request = req
}

// OnDeactivate hides the marker and drops the current target.
func (c *CutMarker) OnDeactivate() {
	c.clearTarget()
}

// OnDestroy cancels any in-flight load and removes the marker object.
func (c *CutMarker) OnDestroy() {
	if c.request != nil {
		c.request.Release()
		c.request = nil
	}
	if c.Marker != nil {
		c.Marker.Destroy()
		c.Marker = nil
	}
}

func (c *CutMarker) attachMarker(model rl.Model) {
	marker := engine.NewGameObject("CutMarker")
	marker.Transform.Scale = rl.Vector3{X: c.MarkerScale, Y: c.MarkerScale, Z: c.MarkerScale}
	marker.AddComponent(NewManagedModelRenderer(model, c.MarkerColor))
	marker.Active = false

	owner := c.GetGameObject()
	if owner != nil && owner.Scene != nil {
		owner.Scene.AddGameObject(marker)
	}
	marker.Start()
	c.Marker = marker
}

func (c *CutMarker) Update(deltaTime float32) {
	owner := c.GetGameObject()
	if owner == nil || !owner.Active || c.Marker == nil {
		return
	}
	if c.Trunk == nil || !c.Trunk.Alive() || c.Prober == nil {
		c.clearTarget()
		return
	}

	ref := cutmark.ProbeRef{
		Position: owner.WorldPosition(),
		Frame:    cutmark.FrameFrom(c.Trunk),
	}

	target, ok := c.Locator.ComputeCutTarget(c.Prober, ref, markerOrient{c.Marker})
	if !ok {
		c.clearTarget()
		return
	}

	c.Marker.Transform.Position = target.Position
	c.Marker.Transform.Rotation = rl.Vector3{Y: target.Rotation * rl.Rad2deg}
	c.Marker.SetActive(true)
	c.hasTarget = true
	c.TargetFound.Invoke(target)
}

// ProbeRef returns the reference the locator would use this tick. Used by the
// diagnostics snapshot.
func (c *CutMarker) ProbeRef() (cutmark.ProbeRef, bool) {
	owner := c.GetGameObject()
	if owner == nil || c.Trunk == nil || !c.Trunk.Alive() {
		return cutmark.ProbeRef{}, false
	}
	return cutmark.ProbeRef{
		Position: owner.WorldPosition(),
		Frame:    cutmark.FrameFrom(c.Trunk),
	}, true
}

// HasTarget reports whether the last computation found a surface.
func (c *CutMarker) HasTarget() bool {
	return c.hasTarget
}

func (c *CutMarker) clearTarget() {
	if c.Marker != nil {
		c.Marker.Transform.Rotation = rl.Vector3{}
		c.Marker.SetActive(false)
	}
	if c.hasTarget {
		c.hasTarget = false
		c.TargetLost.Invoke()
	}
}

// markerOrient adapts the marker GameObject to the locator's orientation
// interface.
type markerOrient struct {
	g *engine.GameObject
}

func (m markerOrient) ResetRotation() {
	m.g.Transform.Rotation = rl.Vector3{}
}

func (m markerOrient) WorldDirection(local rl.Vector3) rl.Vector3 {
	return m.g.WorldDirection(local)
}
