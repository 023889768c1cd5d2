package components

import (
	"github.com/spaghettifunk/wood/engine/math"
	"github.com/spaghettifunk/wood/engine/renderer"
	"github.com/spaghettifunk/wood/engine/systems"
)

// MeshRenderer draws pre-uploaded geometry with the entity's local transform.
type MeshRenderer struct {
	Base

	Shader      string
	Color       math.Vec4
	VertexCount uint32

	renderer Renderer
	matrix   math.Mat4
}

// NewMeshRenderer creates a mesh renderer using the built-in mesh shader. r may be nil.
func NewMeshRenderer(r Renderer, vertexCount uint32, color math.Vec4) *MeshRenderer {
	return &MeshRenderer{
		Shader:      systems.BUILTIN_SHADER_NAME_MESH,
		Color:       color,
		VertexCount: vertexCount,
		renderer:    r,
		matrix:      math.NewMat4Identity(),
	}
}

// Matrix is the final matrix computed by the last update.
func (m *MeshRenderer) Matrix() math.Mat4 {
	return m.matrix
}

func (m *MeshRenderer) Update(deltaTime float64, projection, view math.Mat4) error {
	m.matrix = projection.Mul(view).Mul(m.entity.Transform.Local())
	if m.renderer == nil {
		return nil
	}
	return m.renderer.DrawMesh(renderer.MeshDrawCall{
		Shader:      m.Shader,
		Matrix:      m.matrix.Data,
		Color:       m.Color,
		VertexCount: m.VertexCount,
	})
}
