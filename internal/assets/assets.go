package assets

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Manager caches loaded models and textures and services asynchronous load
// requests. It is owned by the game and passed explicitly to components; the
// request queue is pumped once per tick from the main loop, so no locking is
// needed.
type Manager struct {
	models   map[string]rl.Model
	textures map[string]rl.Texture2D
	pending  []*Request

	// LoadModelFn performs the actual model load. Replaceable so the queue
	// can run without a GL context (tests, headless tools).
	LoadModelFn func(path string) (rl.Model, error)
}

// Request is a handle for one asynchronous model load. The owner must release
// it exactly once; releasing before the load completes cancels it.
type Request struct {
	Path     string
	callback func(rl.Model, error)
	released bool
	done     bool
}

// Release frees the request. A pending request is cancelled; its callback
// will not fire. Safe to call from inside the callback (the usual place,
// deferred, so the handle is freed on every outcome).
func (r *Request) Release() {
	r.released = true
}

func NewManager() *Manager {
	return &Manager{
		models:      make(map[string]rl.Model),
		textures:    make(map[string]rl.Texture2D),
		LoadModelFn: loadModelFile,
	}
}

func loadModelFile(path string) (rl.Model, error) {
	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		return rl.Model{}, fmt.Errorf("assets: no meshes in %s", path)
	}
	return model, nil
}

// LoadModel loads a model synchronously, caching it for reuse.
func (m *Manager) LoadModel(path string) rl.Model {
	if model, exists := m.models[path]; exists {
		return model
	}
	model := rl.LoadModel(path)
	m.models[path] = model
	return model
}

// LoadTexture loads a texture synchronously, caching it for reuse.
func (m *Manager) LoadTexture(path string) rl.Texture2D {
	if texture, exists := m.textures[path]; exists {
		return texture
	}
	texture := rl.LoadTexture(path)
	m.textures[path] = texture
	return texture
}

// LoadModelAsync queues a model load. The callback fires from Pump on a later
// tick with either the model or a load error. The callback must release the
// returned handle regardless of outcome, and must check its owner's liveness
// before applying the result.
func (m *Manager) LoadModelAsync(path string, callback func(rl.Model, error)) *Request {
	r := &Request{Path: path, callback: callback}
	m.pending = append(m.pending, r)
	return r
}

// Pump completes at most one pending request. Called once per update tick.
func (m *Manager) Pump() {
	for len(m.pending) > 0 {
		r := m.pending[0]
		m.pending = m.pending[1:]

		if r.released || r.done {
			// Cancelled while queued; never load, never call back.
			continue
		}
		r.done = true

		model, cached := m.models[r.Path]
		if !cached {
			var err error
			model, err = m.LoadModelFn(r.Path)
			if err != nil {
				r.callback(rl.Model{}, err)
				return
			}
			m.models[r.Path] = model
		}
		r.callback(model, nil)
		return
	}
}

// PendingCount reports queued requests, cancelled ones included.
func (m *Manager) PendingCount() int {
	return len(m.pending)
}

// Unload frees all cached GPU resources.
func (m *Manager) Unload() {
	for _, model := range m.models {
		rl.UnloadModel(model)
	}
	for _, texture := range m.textures {
		rl.UnloadTexture(texture)
	}
	m.models = make(map[string]rl.Model)
	m.textures = make(map[string]rl.Texture2D)
	m.pending = nil
}
