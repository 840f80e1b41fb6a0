package engine

import (
	"math"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
	destroyed  bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    atomic.AddUint64(&nextUID, 1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component matching the given type.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
	if g.Active {
		g.notifyActivated()
	}
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active || g.destroyed {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

// SetActive toggles the object and fires the activation lifecycle hooks on
// components that implement Activatable. Redundant calls are no-ops.
func (g *GameObject) SetActive(active bool) {
	if g.destroyed || g.Active == active {
		return
	}
	g.Active = active
	if active {
		g.notifyActivated()
	} else {
		g.notifyDeactivated()
	}
}

// Destroy marks the object dead, fires OnDestroy hooks and removes it from its
// scene. Alive reports false afterwards; in-flight async callbacks that target
// this object must check Alive before applying results.
func (g *GameObject) Destroy() {
	if g.destroyed {
		return
	}
	if g.Active {
		g.notifyDeactivated()
	}
	g.destroyed = true
	g.Active = false
	for _, c := range g.components {
		if f, ok := c.(Finalizer); ok {
			f.OnDestroy()
		}
	}
	if g.Scene != nil {
		g.Scene.RemoveGameObject(g)
	}
}

func (g *GameObject) Alive() bool {
	return !g.destroyed
}

func (g *GameObject) notifyActivated() {
	for _, c := range g.components {
		if a, ok := c.(Activatable); ok {
			a.OnActivate()
		}
	}
}

func (g *GameObject) notifyDeactivated() {
	for _, c := range g.components {
		if a, ok := c.(Activatable); ok {
			a.OnDeactivate()
		}
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3Transform(scaled, rotationMatrix(g.Parent.WorldRotation()))
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// WorldDirection maps a local direction into world space using the object's
// world rotation only. Scale and translation do not apply to directions.
func (g *GameObject) WorldDirection(local rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(local, rotationMatrix(g.WorldRotation()))
}

// rotationMatrix builds the rotation matrix for Euler degrees with the same
// convention as rendering: X, then Y, then Z.
func rotationMatrix(eulerDeg rl.Vector3) rl.Matrix {
	rx := float64(eulerDeg.X) * math.Pi / 180
	ry := float64(eulerDeg.Y) * math.Pi / 180
	rz := float64(eulerDeg.Z) * math.Pi / 180
	rotX := rl.MatrixRotateX(float32(rx))
	rotY := rl.MatrixRotateY(float32(ry))
	rotZ := rl.MatrixRotateZ(float32(rz))
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}
