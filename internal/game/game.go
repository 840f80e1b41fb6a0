package game

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"fellmark/internal/assets"
	"fellmark/internal/components"
	"fellmark/internal/config"
	"fellmark/internal/cutmark"
	"fellmark/internal/diag"
	"fellmark/internal/engine"
	"fellmark/internal/solid"
)

// builtinRingModel is the marker model used when no model file is configured.
// The asset loader resolves it to a generated torus mesh.
const builtinRingModel = "builtin:ring"

const (
	trunkHeight     = 10.0
	trunkBaseRadius = 0.45
	trunkTopRadius  = 0.2
)

// Game owns the scene, the asset manager and the locator instance and runs
// the window loop. Everything the cut marker needs is wired here explicitly;
// there are no package-level singletons.
type Game struct {
	Scene   *engine.Scene
	Assets  *assets.Manager
	Config  *config.Config
	Locator *cutmark.Locator

	Trunk *engine.GameObject
	Saw   *engine.GameObject

	trunkSolid *solid.Trunk
	cutMarker  *components.CutMarker
	camera     *components.OrbitCamera

	lastTarget cutmark.CutTarget
	statusLine string
}

func New(cfg *config.Config) *Game {
	return &Game{
		Scene:   engine.NewScene("Main"),
		Assets:  assets.NewManager(),
		Config:  cfg,
		Locator: cutmark.NewLocator(cfg.Cut.TargetDistance, cfg.Cut.WindowHalfSize),
	}
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "fellmark")
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	// Scene setup needs the GL context for mesh generation.
	if err := g.setupScene(); err != nil {
		log.Fatalf("scene setup: %v", err)
	}
	defer g.Assets.Unload()

	g.Scene.Start()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) setupScene() error {
	trunkPos := rl.Vector3{}
	trunkRot := rl.Vector3{Z: 8} // slight lean, so the axis frame actually works

	tapered, err := solid.NewTapered(trunkHeight, trunkBaseRadius, trunkTopRadius)
	if err != nil {
		return err
	}
	tapered.Resolution = g.Config.Probe.Resolution
	g.trunkSolid = tapered.Placed(trunkPos, trunkRot)

	// Trunk object. The visual is a plain cylinder; the probe uses the SDF.
	g.Trunk = engine.NewGameObject("Trunk")
	g.Trunk.Transform.Position = trunkPos
	g.Trunk.Transform.Rotation = trunkRot
	trunkMesh := rl.GenMeshCylinder(trunkBaseRadius, trunkHeight, 16)
	g.Trunk.AddComponent(components.NewModelRenderer(rl.LoadModelFromMesh(trunkMesh), rl.Brown))
	g.Scene.AddGameObject(g.Trunk)

	// Saw object: contact point controller plus the cut marker component.
	markerPath := g.Config.Marker.Model
	if markerPath == "" {
		markerPath = builtinRingModel
	}
	g.installBuiltinModels()

	g.Saw = engine.NewGameObject("Saw")
	g.Saw.AddComponent(components.NewSawController(g.Trunk, trunkBaseRadius))
	sawMesh := rl.GenMeshCube(0.35, 0.12, 0.35)
	g.Saw.AddComponent(components.NewModelRenderer(rl.LoadModelFromMesh(sawMesh), rl.Gray))

	g.cutMarker = components.NewCutMarker(g.Locator, g.trunkSolid, g.Trunk, g.Assets, markerPath)
	g.cutMarker.MarkerScale = g.Config.Marker.Scale
	g.cutMarker.TargetFound.AddListener(func(t cutmark.CutTarget) {
		g.lastTarget = t
	})
	g.Saw.AddComponent(g.cutMarker)
	g.Scene.AddGameObject(g.Saw)

	// Camera rig.
	camObj := engine.NewGameObject("Camera")
	g.camera = components.NewOrbitCamera(rl.Vector3{Y: 4}, 14)
	camObj.AddComponent(g.camera)
	g.Scene.AddGameObject(camObj)

	return nil
}

// installBuiltinModels teaches the asset loader the builtin: paths. Generated
// meshes need the GL context, which is why this happens at setup and not in
// the manager itself.
func (g *Game) installBuiltinModels() {
	base := g.Assets.LoadModelFn
	g.Assets.LoadModelFn = func(path string) (rl.Model, error) {
		if path == builtinRingModel {
			mesh := rl.GenMeshTorus(0.06, 1.0, 12, 24)
			return rl.LoadModelFromMesh(mesh), nil
		}
		return base(path)
	}
}

func (g *Game) Update() {
	deltaTime := rl.GetFrameTime()

	g.Assets.Pump()
	g.Scene.Update(deltaTime)

	if rl.IsKeyPressed(rl.KeySpace) {
		g.Saw.SetActive(!g.Saw.Active)
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.writeSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyX) && g.Trunk.Alive() {
		g.Trunk.Destroy()
		g.statusLine = "trunk destroyed"
	}
}

func (g *Game) writeSnapshot() {
	if g.Config.Diagnostics.Dir == "" {
		g.statusLine = "diagnostics disabled (set diagnostics.dir)"
		return
	}
	ref, ok := g.cutMarker.ProbeRef()
	if !ok {
		g.statusLine = "no probe reference"
		return
	}
	win := g.Locator.Window(g.trunkSolid, ref)
	path := filepath.Join(g.Config.Diagnostics.Dir, fmt.Sprintf("window_%d.webp", time.Now().Unix()))
	if err := diag.WriteWindowSnapshot(path, g.trunkSolid, win, ref.Frame, g.Config.Probe.Resolution); err != nil {
		g.statusLine = err.Error()
		return
	}
	g.statusLine = "wrote " + path
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(24, 26, 34, 255))

	rl.BeginMode3D(g.camera.GetRaylibCamera())
	rl.DrawGrid(20, 1)
	for _, obj := range g.Scene.GameObjects {
		for _, c := range obj.Components() {
			if d, ok := c.(engine.Drawable); ok {
				d.Draw()
			}
		}
	}
	rl.EndMode3D()

	g.drawHUD()
	rl.EndDrawing()
}

func (g *Game) drawHUD() {
	gui.Panel(rl.NewRectangle(10, 10, 300, 150), "Cut marker")

	status := "no surface in window"
	if g.cutMarker.HasTarget() {
		t := g.lastTarget
		status = fmt.Sprintf("target (%.2f  %.2f  %.2f)", t.Position.X, t.Position.Y, t.Position.Z)
	}
	gui.Label(rl.NewRectangle(20, 40, 280, 20), status)
	gui.Label(rl.NewRectangle(20, 62, 280, 20),
		fmt.Sprintf("cut distance %.1f  window %.1f", g.Locator.TargetDistance, 2*g.Locator.WindowHalfSize))
	if g.cutMarker.HasTarget() {
		gui.Label(rl.NewRectangle(20, 84, 280, 20),
			fmt.Sprintf("rotation %.1f deg", g.lastTarget.Rotation*rl.Rad2deg))
	}
	gui.Label(rl.NewRectangle(20, 106, 280, 20), "W/S A/D move saw  Space toggle  F2 snapshot")
	if g.statusLine != "" {
		gui.Label(rl.NewRectangle(20, 128, 280, 20), g.statusLine)
	}
}
