package renderer

import (
	"github.com/spaghettifunk/wood/engine/assets"
	"github.com/spaghettifunk/wood/engine/math"
)

// Backend is implemented by the host graphics API. Matrices are handed
// over as flat column-major arrays ready to be uploaded as uniforms.
type Backend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	DrawSprite(call SpriteDrawCall) error
	DrawMesh(call MeshDrawCall) error
}

type SpriteDrawCall struct {
	Shader  string
	Texture *assets.Texture
	// clip space matrix of the unit quad
	Matrix [16]float32
	// maps the unit quad to the sprite region of the texture
	TextureMatrix [16]float32
}

type MeshDrawCall struct {
	Shader      string
	Matrix      [16]float32
	Color       math.Vec4
	VertexCount uint32
}
