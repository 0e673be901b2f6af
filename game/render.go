package game

import (
	"fmt"
	"math"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ethereal-sim/capewind/telemetry"
	"github.com/ethereal-sim/capewind/vecmath"
)

const windOverlayStep = 150

var (
	skyTop    = rl.Color{R: 40, G: 60, B: 100, A: 255}
	skyBottom = rl.Color{R: 90, G: 120, B: 160, A: 255}
	capeNear  = rl.Color{R: 180, G: 40, B: 50, A: 255}
	capeFar   = rl.Color{R: 90, G: 15, B: 25, A: 255}
	leafColor = rl.Color{R: 160, G: 140, B: 90, A: 120}
)

// Draw renders the scene.
func (g *Game) Draw() {
	g.perf.RecordFrame()
	renderStart := time.Now()

	rl.BeginDrawing()

	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangleGradientV(0, 0, w, h, skyTop, skyBottom)

	if g.showWindOverlay {
		g.drawWindOverlay(w, h)
	}

	g.drawLeaves()
	g.drawCape()
	g.drawGlider()
	g.drawHUD()

	if g.showPanel {
		g.drawTuningPanel()
	}

	if g.paused {
		rl.DrawText("PAUSED", w/2-40, 10, 20, rl.Yellow)
	}

	rl.EndDrawing()
	g.perf.RecordPhase(telemetry.PhaseRender, time.Since(renderStart))
}

// drawWindOverlay samples the wind on a screen-space grid and draws a
// line per cell pointing along the local wind vector.
func (g *Game) drawWindOverlay(w, h int32) {
	for sy := int32(windOverlayStep / 2); sy < h; sy += windOverlayStep {
		for sx := int32(windOverlayStep / 2); sx < w; sx += windOverlayStep {
			wx, wy := g.cam.ScreenToWorld(float32(sx), float32(sy))
			v := g.windField.VectorAt(vecmath.Vec2{X: float64(wx), Y: float64(wy)})

			strength := v.Norm() / 100
			if strength > 1 {
				strength = 1
			}
			if strength < 0.01 {
				continue
			}

			length := float32(10 + strength*15)
			dir := v.Normed()
			end := rl.Vector2{
				X: float32(sx) + float32(dir.X)*length,
				Y: float32(sy) + float32(dir.Y)*length,
			}
			color := rl.Color{R: 150, G: 200, B: 255, A: uint8(30 + strength*50)}
			rl.DrawLineEx(rl.Vector2{X: float32(sx), Y: float32(sy)}, end, float32(1+strength), color)
		}
	}
}

// drawCape renders the cloth as a quad strip, two triangles per cell,
// shaded darker toward the free edge.
func (g *Game) drawCape() {
	rows := g.cape.Rows()
	cols := g.cape.Cols()

	for r := 0; r < rows-1; r++ {
		color := lerpColor(capeNear, capeFar, float32(r)/float32(rows-1))
		for c := 0; c < cols-1; c++ {
			tl := g.capeVertex(r, c)
			tr := g.capeVertex(r, c+1)
			bl := g.capeVertex(r+1, c)
			br := g.capeVertex(r+1, c+1)

			drawClothTriangle(tl, tr, bl, color)
			drawClothTriangle(tr, br, bl, color)
		}
	}
}

func (g *Game) capeVertex(row, col int) rl.Vector2 {
	p := g.cape.Particle(row, col)
	pos := p.Position
	sx, sy := g.cam.WorldToScreen(float32(pos.X), float32(pos.Y))
	return rl.Vector2{X: sx, Y: sy}
}

// drawClothTriangle draws a triangle regardless of how the cloth has
// folded. DrawTriangle culls clockwise geometry, so the winding is fixed
// up from the screen-space cross product first.
func drawClothTriangle(v1, v2, v3 rl.Vector2, color rl.Color) {
	cross := (v2.X-v1.X)*(v3.Y-v1.Y) - (v2.Y-v1.Y)*(v3.X-v1.X)
	if cross > 0 {
		v2, v3 = v3, v2
	}
	rl.DrawTriangle(v1, v2, v3, color)
}

func (g *Game) drawGlider() {
	pos := g.posMap.Get(g.glider)
	rot := g.rotMap.Get(g.glider)
	body := g.bodyMap.Get(g.glider)

	sx, sy := g.cam.WorldToScreen(float32(pos.X), float32(pos.Y))
	radius := float32(body.Radius) * g.cam.Zoom
	drawOrientedTriangle(sx, sy, float32(rot.Heading), radius, rl.SkyBlue)
}

func (g *Game) drawLeaves() {
	query := g.leafFilter.Query()
	for query.Next() {
		pos, _, rot, leaf := query.Get()
		sx, sy := g.cam.WorldToScreen(float32(pos.X), float32(pos.Y))
		if !g.cam.IsVisible(float32(pos.X), float32(pos.Y), float32(leaf.Size)) {
			continue
		}
		rotation := float32(rot.Heading * 180 / math.Pi)
		rl.DrawPoly(rl.Vector2{X: sx, Y: sy}, 4, float32(leaf.Size)*g.cam.Zoom, rotation, leafColor)
	}
}

func (g *Game) drawHUD() {
	fl := g.flightMap.Get(g.glider)
	vel := g.velMap.Get(g.glider)
	pos := g.posMap.Get(g.glider)
	speed := math.Hypot(vel.X, vel.Y)
	local := g.windField.StrengthAt(vecmath.Vec2{X: pos.X, Y: pos.Y})

	x := int32(10)
	y := int32(10)
	g.hud.DrawPanel(x-4, y-4, 230, 168)

	y = g.hud.DrawSectionHeader(x, y, "FLIGHT")
	y = g.hud.DrawLabelValue(x, y, "State", fl.State.String())
	y = g.hud.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.0f", speed))
	y = g.hud.DrawEnergyBar(x, y, "Energy", float32(fl.Energy), 100, 140)
	y = g.hud.DrawBar(x, y, "Glide", float32(g.GlideEfficiency()), 140)

	y = g.hud.DrawSectionHeader(x, y, "WIND")
	y = g.hud.DrawLabelValue(x, y, "Local", fmt.Sprintf("%.0f", local))
	y = g.hud.DrawLabelValue(x, y, "Gusts", fmt.Sprintf("%d", g.windField.ActiveGusts()))
	g.hud.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.1fs", g.simTime))

	rl.DrawText("WASD fly  SPACE boost  G gust  V overlay  TAB tune  R reset", 10, int32(rl.GetScreenHeight())-24, 12, rl.Gray)
}

// drawTuningPanel exposes the live wind parameters as sliders. Changes
// apply immediately through SetConfig without restarting the field.
func (g *Game) drawTuningPanel() {
	panelW := float32(260)
	panelX := float32(rl.GetScreenWidth()) - panelW - 10
	panelY := float32(10)

	g.hud.DrawPanel(int32(panelX)-10, int32(panelY)-4, int32(panelW)+20, 196)
	rl.DrawText("Wind Tuning [TAB]", int32(panelX), int32(panelY), 14, rl.Yellow)
	panelY += 24

	changed := false

	rl.DrawText("Base strength", int32(panelX), int32(panelY), 12, rl.Gray)
	panelY += 16
	newBase := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelW - 50, Height: 18},
		"0", "150",
		float32(g.panelWind.BaseStrength), 0, 150,
	)
	rl.DrawText(fmt.Sprintf("%.0f", g.panelWind.BaseStrength), int32(panelX+panelW-40), int32(panelY+2), 14, rl.LightGray)
	if float64(newBase) != g.panelWind.BaseStrength {
		g.panelWind.BaseStrength = float64(newBase)
		changed = true
	}
	panelY += 32

	rl.DrawText("Gust strength", int32(panelX), int32(panelY), 12, rl.Gray)
	panelY += 16
	newGust := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelW - 50, Height: 18},
		"0", "200",
		float32(g.panelWind.GustStrength), 0, 200,
	)
	rl.DrawText(fmt.Sprintf("%.0f", g.panelWind.GustStrength), int32(panelX+panelW-40), int32(panelY+2), 14, rl.LightGray)
	if float64(newGust) != g.panelWind.GustStrength {
		g.panelWind.GustStrength = float64(newGust)
		changed = true
	}
	panelY += 32

	rl.DrawText("Turbulence", int32(panelX), int32(panelY), 12, rl.Gray)
	panelY += 16
	newTurb := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelW - 50, Height: 18},
		"0", "1",
		float32(g.panelWind.Turbulence), 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.2f", g.panelWind.Turbulence), int32(panelX+panelW-40), int32(panelY+2), 14, rl.LightGray)
	if float64(newTurb) != g.panelWind.Turbulence {
		g.panelWind.Turbulence = float64(newTurb)
		changed = true
	}
	panelY += 32

	rl.DrawText("Time scale", int32(panelX), int32(panelY), 12, rl.Gray)
	panelY += 16
	newTime := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelW - 50, Height: 18},
		"0", "2",
		float32(g.panelWind.TimeScale), 0, 2,
	)
	rl.DrawText(fmt.Sprintf("%.2f", g.panelWind.TimeScale), int32(panelX+panelW-40), int32(panelY+2), 14, rl.LightGray)
	if float64(newTime) != g.panelWind.TimeScale {
		g.panelWind.TimeScale = float64(newTime)
		changed = true
	}

	if changed {
		g.windField.SetConfig(g.panelWind)
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}
