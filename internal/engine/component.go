package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Activatable is implemented by components that need to react to their
// GameObject being switched on or off. The hooks are called explicitly by the
// object's SetActive/Start/Destroy, never by intercepting host methods.
type Activatable interface {
	OnActivate()
	OnDeactivate()
}

// Finalizer is implemented by components that hold resources or in-flight
// requests that must be dealt with when the owning GameObject is destroyed.
type Finalizer interface {
	OnDestroy()
}

// Drawable is implemented by components that render something during the 3D
// pass.
type Drawable interface {
	Draw()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
