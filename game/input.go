package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ethereal-sim/capewind/config"
	"github.com/ethereal-sim/capewind/vecmath"
)

// Update processes input and advances the simulation one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	g.step(float64(rl.GetFrameTime()))

	pos := g.posMap.Get(g.glider)
	g.cam.Follow(float32(pos.X), float32(pos.Y))
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}

	// Flight controls, held each frame
	fl := g.flightMap.Get(g.glider)
	fl.InputUp = rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp)
	fl.InputDown = rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown)
	fl.InputLeft = rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft)
	fl.InputRight = rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight)

	// Boost along the facing direction
	if rl.IsKeyDown(rl.KeySpace) {
		g.applyBoost(float64(rl.GetFrameTime()))
	}

	// Gust injection at the mouse cursor
	if rl.IsKeyPressed(rl.KeyG) || rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
		g.injectGust(vecmath.Vec2{X: float64(wx), Y: float64(wy)})
	}

	if rl.IsKeyPressed(rl.KeyV) {
		g.showWindOverlay = !g.showWindOverlay
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}

	// Zoom with the mouse wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + wheel*0.1)
	}
}

// handleResize propagates window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.cam.Resize(w, h)

	cfg := config.Cfg()
	cfg.Screen.Width = int(w)
	cfg.Screen.Height = int(h)
	cfg.Derived.ScreenW32 = w
	cfg.Derived.ScreenH32 = h
}
