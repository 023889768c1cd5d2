package engine

import (
	"github.com/spaghettifunk/wood/engine/components"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/input"
	"github.com/spaghettifunk/wood/engine/renderer"
	"github.com/spaghettifunk/wood/engine/scene"
	"github.com/spaghettifunk/wood/engine/systems"
)

// Context is handed to every game hook. It replaces process wide globals:
// everything a game needs to build and drive its scene hangs off it.
type Context struct {
	Config   *ApplicationConfig
	Scene    *scene.Scene
	Textures *systems.TextureSystem
	Shaders  *systems.ShaderSystem
	Renderer *renderer.Renderer
	Input    *input.State
	Viewport components.Viewport
	Events   *core.EventBus
	Metrics  *core.Metrics
}

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func(ctx *Context) error
type Update func(ctx *Context, deltaTime float64) error
type OnResize func(ctx *Context, width uint32, height uint32) error
type Shutdown func(ctx *Context) error
