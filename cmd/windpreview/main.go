// Wind field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/windpreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ethereal-sim/capewind/vecmath"
	"github.com/ethereal-sim/capewind/wind"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	// World units covered by the preview square
	worldSpan = 1280
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Wind Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cfg := defaultWindConfig()
	seed := int64(12345)
	field := wind.NewPlanar(cfg, seed)

	gridSize := 128
	strengthGrid := make([]float32, gridSize*gridSize)
	vectorGrid := make([]vecmath.Vec2, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	animating := false
	needsResample := true

	for !rl.WindowShouldClose() {
		if animating {
			field.Update(float64(rl.GetFrameTime()))
			needsResample = true
		}

		if needsResample {
			sampleField(field, strengthGrid, vectorGrid, gridSize)
			updateTexture(texture, strengthGrid, gridSize, float32(cfg.BaseStrength))
			needsResample = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Strength heatmap
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		drawDirectionLines(vectorGrid, gridSize)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		var minVal, maxVal, total float32
		minVal = math.MaxFloat32
		for _, v := range strengthGrid {
			total += v
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		avg := total / float32(len(strengthGrid))

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.1f  Max: %.1f  Avg: %.1f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1f", field.Time()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Wind Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false

		// Base strength slider
		rl.DrawText("Base strength (steady flow)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newBase := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "150",
			float32(cfg.BaseStrength), 0, 150,
		)
		rl.DrawText(fmt.Sprintf("%.0f", cfg.BaseStrength), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newBase) != cfg.BaseStrength {
			cfg.BaseStrength = float64(newBase)
			changed = true
		}
		panelY += 35

		// Turbulence slider
		rl.DrawText("Turbulence (noise modulation)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTurb := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1",
			float32(cfg.Turbulence), 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", cfg.Turbulence), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newTurb) != cfg.Turbulence {
			cfg.Turbulence = float64(newTurb)
			changed = true
		}
		panelY += 35

		// Noise scale slider
		rl.DrawText("Noise scale (spatial frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.001", "0.05",
			float32(cfg.NoiseScale), 0.001, 0.05,
		)
		rl.DrawText(fmt.Sprintf("%.3f", cfg.NoiseScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newScale) != cfg.NoiseScale {
			cfg.NoiseScale = float64(newScale)
			changed = true
		}
		panelY += 35

		// Time scale slider
		rl.DrawText("Time scale (drift speed)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTime := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "2",
			float32(cfg.TimeScale), 0, 2,
		)
		rl.DrawText(fmt.Sprintf("%.2f", cfg.TimeScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newTime) != cfg.TimeScale {
			cfg.TimeScale = float64(newTime)
			changed = true
		}
		panelY += 35

		// Direction slider
		angle := math.Atan2(cfg.BaseDirection.Y, cfg.BaseDirection.X)
		rl.DrawText("Direction (radians)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newAngle := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-pi", "pi",
			float32(angle), -math.Pi, math.Pi,
		)
		rl.DrawText(fmt.Sprintf("%.2f", angle), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float64(newAngle) != angle {
			cfg.BaseDirection = vecmath.FromAngle(float64(newAngle), 1)
			changed = true
		}
		panelY += 45

		if changed {
			field.SetConfig(cfg)
			needsResample = true
		}

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			field = wind.NewPlanar(cfg, seed)
			needsResample = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			field = wind.NewPlanar(cfg, seed)
			needsResample = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg = defaultWindConfig()
			seed = 12345
			field = wind.NewPlanar(cfg, seed)
			needsResample = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(cfg) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(cfg) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func defaultWindConfig() wind.Config[vecmath.Vec2] {
	return wind.Config[vecmath.Vec2]{
		BaseStrength:  50,
		GustStrength:  80,
		Turbulence:    0.3,
		NoiseScale:    0.008,
		TimeScale:     0.5,
		BaseDirection: vecmath.Vec2{X: 1, Y: 0.2},
	}
}

func yamlLines(cfg wind.Config[vecmath.Vec2]) []string {
	return []string{
		"wind:",
		fmt.Sprintf("  base_strength: %.0f", cfg.BaseStrength),
		fmt.Sprintf("  turbulence: %.2f", cfg.Turbulence),
		fmt.Sprintf("  noise_scale: %.3f", cfg.NoiseScale),
		fmt.Sprintf("  time_scale: %.2f", cfg.TimeScale),
		"  base_direction:",
		fmt.Sprintf("    x: %.2f", cfg.BaseDirection.X),
		fmt.Sprintf("    y: %.2f", cfg.BaseDirection.Y),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// sampleField fills the grids with wind strength and direction over a
// worldSpan-sized square.
func sampleField(field *wind.Field[vecmath.Vec2], strengths []float32, vectors []vecmath.Vec2, size int) {
	cell := float64(worldSpan) / float64(size)
	for y := 0; y < size; y++ {
		wy := (float64(y) + 0.5) * cell
		for x := 0; x < size; x++ {
			wx := (float64(x) + 0.5) * cell
			v := field.VectorAt(vecmath.Vec2{X: wx, Y: wy})
			strengths[y*size+x] = float32(v.Norm())
			vectors[y*size+x] = v
		}
	}
}

// drawDirectionLines overlays a sparse grid of direction indicators on
// top of the heatmap.
func drawDirectionLines(vectors []vecmath.Vec2, size int) {
	const every = 8
	cell := float32(previewSize) / float32(size)

	for y := every / 2; y < size; y += every {
		for x := every / 2; x < size; x += every {
			v := vectors[y*size+x]
			length := v.Norm()
			if length < 1e-6 {
				continue
			}
			dir := v.Scale(1 / length)

			sx := 10 + (float32(x)+0.5)*cell
			sy := 10 + (float32(y)+0.5)*cell
			end := rl.Vector2{
				X: sx + float32(dir.X)*cell*3,
				Y: sy + float32(dir.Y)*cell*3,
			}
			rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, end, 1, rl.Color{R: 0, G: 0, B: 0, A: 120})
		}
	}
}

// updateTexture maps strengths onto a dark blue to white gradient. The
// base strength sets the midpoint of the ramp.
func updateTexture(texture rl.Texture2D, strengths []float32, size int, baseStrength float32) {
	ceiling := baseStrength * 2
	if ceiling < 1 {
		ceiling = 1
	}

	pixels := make([]color.RGBA, size*size)
	for i, s := range strengths {
		v := s / ceiling
		if v > 1 {
			v = 1
		}

		var r, g, b uint8
		if v < 0.25 {
			t := v / 0.25
			r = uint8(10 + t*30)
			g = uint8(20 + t*60)
			b = uint8(60 + t*100)
		} else if v < 0.5 {
			t := (v - 0.25) / 0.25
			r = uint8(40 + t*20)
			g = uint8(80 + t*120)
			b = uint8(160 + t*40)
		} else if v < 0.75 {
			t := (v - 0.5) / 0.25
			r = uint8(60 + t*140)
			g = uint8(200 - t*40)
			b = uint8(200 - t*150)
		} else {
			t := (v - 0.75) / 0.25
			r = uint8(200 + t*55)
			g = uint8(160 + t*95)
			b = uint8(50 + t*205)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
