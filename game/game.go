// Package game wires the wind, cloth, and flight pieces into an
// interactive scene: a glider with a cape trailing from its back,
// buffeted by a procedural wind field.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/ethereal-sim/capewind/camera"
	"github.com/ethereal-sim/capewind/cloth"
	"github.com/ethereal-sim/capewind/components"
	"github.com/ethereal-sim/capewind/config"
	"github.com/ethereal-sim/capewind/telemetry"
	"github.com/ethereal-sim/capewind/ui"
	"github.com/ethereal-sim/capewind/vecmath"
	"github.com/ethereal-sim/capewind/wind"
)

// LeafCount is the number of ambient debris particles riding the wind.
const LeafCount = 40

// Options configures game construction.
type Options struct {
	Seed      int64
	Headless  bool
	LogStats  bool
	OutputDir string
}

// Game holds the complete scene state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	gliderMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Flight,
	]
	leafMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Leaf,
	]
	leafFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Leaf,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	rotMap    *ecs.Map1[components.Rotation]
	bodyMap   *ecs.Map1[components.Body]
	flightMap *ecs.Map1[components.Flight]

	glider ecs.Entity

	windField *wind.Field[vecmath.Vec2]
	cape      *cloth.Body[vecmath.Vec2]

	cam *camera.Camera
	hud *ui.Renderer

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	tick    int32
	simTime float64
	paused  bool

	headless bool
	logStats bool

	showWindOverlay bool
	showPanel       bool

	// Live-tunable copies surfaced by the panel
	panelWind wind.Config[vecmath.Vec2]
}

// NewGameWithOptions creates a game instance.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world:    world,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		headless: opts.Headless,
		logStats: opts.LogStats,

		gliderMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Flight,
		](world),
		leafMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Leaf,
		](world),
		leafFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Leaf,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		rotMap:    ecs.NewMap1[components.Rotation](world),
		bodyMap:   ecs.NewMap1[components.Body](world),
		flightMap: ecs.NewMap1[components.Flight](world),

		showWindOverlay: true,
	}

	g.windField = wind.NewPlanar(windConfig(cfg), opts.Seed)
	g.panelWind = g.windField.Config()

	start := vecmath.Vec2{
		X: float64(cfg.Screen.Width) * 0.5,
		Y: float64(cfg.Screen.Height) * 0.4,
	}
	g.glider = g.spawnGlider(start)
	g.spawnLeaves(start)

	cape, err := newCape(cfg, start)
	if err != nil {
		return nil, fmt.Errorf("building cape: %w", err)
	}
	g.cape = cape

	if !opts.Headless {
		g.cam = camera.New(
			cfg.Derived.ScreenW32, cfg.Derived.ScreenH32,
			float32(start.X), float32(start.Y),
		)
		g.cam.Smoothing = float32(cfg.Camera.Smoothing)
		g.cam.SetZoom(float32(cfg.Camera.Zoom))
		g.hud = ui.NewRenderer()
	}

	g.collector = telemetry.NewCollector(cfg.Telemetry.FlushInterval)
	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.Window)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	return g, nil
}

// spawnGlider creates the cape wearer.
func (g *Game) spawnGlider(at vecmath.Vec2) ecs.Entity {
	cfg := config.Cfg()
	return g.gliderMapper.NewEntity(
		&components.Position{X: at.X, Y: at.Y},
		&components.Velocity{},
		&components.Rotation{},
		&components.Body{Radius: cfg.Glider.Radius},
		&components.Flight{Energy: 100},
	)
}

// spawnLeaves scatters ambient debris around the start position.
func (g *Game) spawnLeaves(center vecmath.Vec2) {
	cfg := config.Cfg()
	halfW := float64(cfg.Screen.Width)
	halfH := float64(cfg.Screen.Height)

	for i := 0; i < LeafCount; i++ {
		g.leafMapper.NewEntity(
			&components.Position{
				X: center.X + (g.rng.Float64()-0.5)*2*halfW,
				Y: center.Y + (g.rng.Float64()-0.5)*2*halfH,
			},
			&components.Velocity{},
			&components.Rotation{Heading: g.rng.Float64() * 6.28318},
			&components.Leaf{
				Spin: (g.rng.Float64() - 0.5) * 4,
				Size: 2 + g.rng.Float64()*3,
			},
		)
	}
}

// newCape builds the cloth body hanging from the given anchor.
func newCape(cfg *config.Config, anchor vecmath.Vec2) (*cloth.Body[vecmath.Vec2], error) {
	return cloth.NewPlanar(clothConfig(cfg), anchor)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns accumulated simulation time in seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Cape returns the cloth body, for tools and tests.
func (g *Game) Cape() *cloth.Body[vecmath.Vec2] {
	return g.cape
}

// Wind returns the wind field.
func (g *Game) Wind() *wind.Field[vecmath.Vec2] {
	return g.windField
}

// Unload flushes output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
