package testbed

import (
	"context"
	"time"

	"github.com/spaghettifunk/wood/engine"
	"github.com/spaghettifunk/wood/engine/components"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/math"
)

const (
	PlayerTexture = "sprites/hero.png"
	TilesTexture  = "sprites/tiles.png"

	// vertices of the letter F mesh, 16 quads
	letterFVertexCount = 16 * 6
	// the F turns by 0.15 degrees per millisecond
	letterFSpinDegrees = 0.15

	preloadTimeout = 2 * time.Second
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	player  *components.Entity
	spinner *components.Entity
	tile    *components.Entity

	width  uint32
	height uint32
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(ctx *engine.Context) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.state()

	// warm the cache; missing files only leave their sprites invisible
	pctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
	defer cancel()
	if err := ctx.Textures.Preload(pctx, PlayerTexture, TilesTexture); err != nil {
		core.LogWarn("preloading textures: %s", err)
	}

	state.player = components.NewEntity(components.WithID("player"))
	state.player.AddComponent(components.NewSprite(PlayerTexture, ctx.Textures, ctx.Renderer))
	state.player.AddComponent(components.NewKeyboardMove(ctx.Input, ctx.Viewport))

	state.tile = components.NewEntity(
		components.WithID("tile"),
		components.WithPosition(math.NewVec3(-200, -150, 0)),
		components.WithScale(math.NewVec3(2, 2, 1)),
	)
	state.tile.AddComponent(components.NewSprite(TilesTexture, ctx.Textures, ctx.Renderer,
		components.WithRegion(math.NewVec2(0, 0), math.NewVec2(16, 16))))

	state.spinner = components.NewEntity(
		components.WithID("letter-f"),
		components.WithPosition(math.NewVec3(150, 0, 0)),
	)
	state.spinner.AddComponent(components.NewMeshRenderer(ctx.Renderer, letterFVertexCount, math.NewVec4(0.8, 0.5, 0.2, 1)))
	state.spinner.AddComponent(components.NewRotator(math.NewVec3(0, math.DegToRad(letterFSpinDegrees), 0)))

	for _, e := range []*components.Entity{state.tile, state.spinner, state.player} {
		if err := ctx.Scene.Spawn(e); err != nil {
			return err
		}
	}
	return nil
}

func (g *TestGame) Update(ctx *engine.Context, deltaTime float64) error {
	if ctx.Input.IsKeyDown(core.KEY_SPACE) && !ctx.Input.WasKeyDown(core.KEY_SPACE) {
		fps, frameTime := ctx.Metrics.Frame()
		pos := g.state().player.Transform.Position
		core.LogInfo("fps: %.1f (%.2fms), player at [%.1f, %.1f]", fps, frameTime, pos.X, pos.Y)
	}
	// R toggles the spinning F
	if ctx.Input.IsKeyDown(core.KEY_R) && !ctx.Input.WasKeyDown(core.KEY_R) {
		spinner := g.state().spinner
		if components.Has[*components.Rotator](spinner) {
			components.Remove[*components.Rotator](spinner)
		} else {
			spinner.AddComponent(components.NewRotator(math.NewVec3(0, math.DegToRad(letterFSpinDegrees), 0)))
		}
	}
	return nil
}

func (g *TestGame) OnResize(ctx *engine.Context, width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	core.LogDebug("testbed resized to %dx%d", width, height)
	return nil
}

func (g *TestGame) Shutdown(ctx *engine.Context) error {
	core.LogInfo("shutting down testbed...")
	state := g.state()
	for _, e := range []*components.Entity{state.player, state.tile, state.spinner} {
		if e != nil {
			ctx.Scene.Destroy(e)
		}
	}
	return nil
}
