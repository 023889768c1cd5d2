package renderer

import (
	"fmt"

	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/systems"
)

// ShaderLookup resolves shader names. *systems.ShaderSystem implements it.
type ShaderLookup interface {
	Get(name string) (*systems.Shader, error)
}

// Renderer is the frontend the components draw through. It checks every
// call against the shader registry before handing it to the backend.
type Renderer struct {
	backend Backend
	shaders ShaderLookup

	frameNumber uint64
}

func New(backend Backend, shaders ShaderLookup) *Renderer {
	return &Renderer{
		backend: backend,
		shaders: shaders,
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint16) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	if err := r.backend.BeginFrame(deltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	if err := r.backend.EndFrame(deltaTime); err != nil {
		core.LogError("renderer EndFrame failed: %s", err)
		return err
	}
	r.frameNumber++
	return nil
}

// FrameNumber is the number of frames completed so far.
func (r *Renderer) FrameNumber() uint64 {
	return r.frameNumber
}

func (r *Renderer) DrawSprite(call SpriteDrawCall) error {
	if err := r.checkShader(call.Shader); err != nil {
		return err
	}
	if call.Texture == nil {
		return fmt.Errorf("sprite draw call without a texture")
	}
	return r.backend.DrawSprite(call)
}

func (r *Renderer) DrawMesh(call MeshDrawCall) error {
	if err := r.checkShader(call.Shader); err != nil {
		return err
	}
	return r.backend.DrawMesh(call)
}

func (r *Renderer) checkShader(name string) error {
	if r.shaders == nil {
		return nil
	}
	_, err := r.shaders.Get(name)
	return err
}
