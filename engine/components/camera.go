package components

import "github.com/spaghettifunk/wood/engine/math"

const (
	orthographicNear float32 = 400
	orthographicFar  float32 = -400
	// distance of the viewport camera from the z=0 plane
	viewportCameraDistance float32 = 100
)

// Projection is one of Orthographic, FixedToViewport or Perspective.
type Projection interface {
	isProjection()
}

// Orthographic maps a fixed Width x Height area to the screen, Y down.
type Orthographic struct {
	Width, Height float32
}

// FixedToViewport follows the live viewport size and keeps the camera
// centered on it.
type FixedToViewport struct {
	Viewport Viewport
}

type Perspective struct {
	FieldOfView float32 // radians
	Aspect      float32
	Near, Far   float32
}

func (Orthographic) isProjection()    {}
func (FixedToViewport) isProjection() {}
func (Perspective) isProjection()     {}

type Camera struct {
	Position   math.Vec3
	Target     math.Vec3
	Projection Projection
}

func NewOrthographicCamera(position, target math.Vec3, width, height float32) *Camera {
	return &Camera{
		Position:   position,
		Target:     target,
		Projection: Orthographic{Width: width, Height: height},
	}
}

func NewViewportCamera(viewport Viewport) *Camera {
	c := &Camera{Projection: FixedToViewport{Viewport: viewport}}
	c.ProjectionMatrix()
	return c
}

func NewPerspectiveCamera(position, target math.Vec3, fov, aspect, near, far float32) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Projection: Perspective{
			FieldOfView: fov,
			Aspect:      aspect,
			Near:        near,
			Far:         far,
		},
	}
}

// View returns the world to view matrix.
func (c *Camera) View() math.Mat4 {
	return math.NewMat4LookAt(c.Position, c.Target, math.NewVec3Up())
}

// ProjectionMatrix returns the projection for the current policy. For
// FixedToViewport it also moves the camera to the viewport center.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	switch p := c.Projection.(type) {
	case Orthographic:
		return math.NewMat4Orthographic(0, p.Width, p.Height, 0, orthographicNear, orthographicFar)
	case FixedToViewport:
		w, h := p.Viewport.Size()
		width, height := float32(w), float32(h)
		c.Position = math.NewVec3(-width/2, -height/2, viewportCameraDistance)
		c.Target = math.NewVec3(-width/2, -height/2, 0)
		return math.NewMat4Orthographic(0, width, height, 0, orthographicNear, orthographicFar)
	case Perspective:
		return math.NewMat4Perspective(p.FieldOfView, p.Aspect, p.Near, p.Far)
	default:
		return math.NewMat4Identity()
	}
}

// Matrices returns the projection and the view matching it.
func (c *Camera) Matrices() (projection, view math.Mat4) {
	projection = c.ProjectionMatrix()
	return projection, c.View()
}
