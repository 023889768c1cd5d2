package components

import (
	"github.com/spaghettifunk/wood/engine/assets"
	"github.com/spaghettifunk/wood/engine/containers"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/math"
	"github.com/spaghettifunk/wood/engine/renderer"
)

// Viewport reports the drawable size in pixels.
type Viewport interface {
	Size() (width, height int)
}

// Input is the read side of the input state. *input.State implements it.
type Input interface {
	IsKeyDown(key core.KeyCode) bool
	Axis(name string) float32
	MousePosition() math.Vec2
	MouseDelta() math.Vec2
	Scroll() math.Vec2
}

// TextureSource starts texture loads. *systems.TextureSystem implements it.
type TextureSource interface {
	Acquire(url string) *containers.Future[*assets.Texture]
}

// Renderer receives the draw calls. *renderer.Renderer implements it.
type Renderer interface {
	DrawSprite(call renderer.SpriteDrawCall) error
	DrawMesh(call renderer.MeshDrawCall) error
}
