package components

import (
	"fmt"

	"github.com/spaghettifunk/wood/engine/assets"
	"github.com/spaghettifunk/wood/engine/containers"
	"github.com/spaghettifunk/wood/engine/math"
	"github.com/spaghettifunk/wood/engine/renderer"
	"github.com/spaghettifunk/wood/engine/systems"
)

// Sprite draws a region of a texture as a quad centered on the entity
// position. Nothing is drawn until the texture finished loading.
type Sprite struct {
	Base

	URL string

	offset  math.Vec2
	size    math.Vec2
	hasSize bool

	textures TextureSource
	renderer Renderer

	future  *containers.Future[*assets.Texture]
	texture *assets.Texture
	failed  bool
}

type SpriteOption func(*Sprite)

// WithRegion draws only the size x size area starting at offset, in texture pixels.
func WithRegion(offset, size math.Vec2) SpriteOption {
	return func(s *Sprite) {
		s.offset = offset
		s.size = size
		s.hasSize = true
	}
}

// WithOffset moves the sprite region. Without an explicit size the region
// extends to the texture dimensions.
func WithOffset(offset math.Vec2) SpriteOption {
	return func(s *Sprite) {
		s.offset = offset
	}
}

func NewSprite(url string, textures TextureSource, r Renderer, opts ...SpriteOption) *Sprite {
	s := &Sprite{
		URL:      url,
		size:     math.NewVec2One(),
		textures: textures,
		renderer: r,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start requests the texture.
func (s *Sprite) Start() error {
	if s.future == nil {
		s.future = s.textures.Acquire(s.URL)
	}
	return nil
}

// Loaded reports whether the texture is available.
func (s *Sprite) Loaded() bool {
	return s.texture != nil
}

// Size is the drawn region in pixels.
func (s *Sprite) Size() math.Vec2 {
	return s.size
}

func (s *Sprite) poll() error {
	if s.texture != nil || s.failed {
		return nil
	}
	if s.future == nil {
		s.future = s.textures.Acquire(s.URL)
	}
	t, ok := s.future.TryGet()
	if !ok {
		if err := s.future.Err(); err != nil {
			// reported once, the sprite stays invisible
			s.failed = true
			return fmt.Errorf("sprite '%s': %w", s.URL, err)
		}
		return nil
	}
	s.texture = t
	if !s.hasSize {
		s.size = math.NewVec2(float32(t.Width), float32(t.Height))
	}
	return nil
}

// Matrix returns projection∘view∘T(position)∘Rz∘T(-size/2)∘S(size)∘S(scale).
// A detached sprite has no transform and gets the identity.
func (s *Sprite) Matrix(projection, view math.Mat4) math.Mat4 {
	if s.entity == nil {
		return math.NewMat4Identity()
	}
	t := s.entity.Transform
	return projection.Mul(view).
		Translate(t.Position).
		RotateZ(t.Rotation.Z).
		Translate(math.NewVec3(-s.size.X/2, -s.size.Y/2, 0)).
		Scale(math.NewVec3(s.size.X, s.size.Y, 1)).
		Scale(t.Scale)
}

// TextureMatrix maps the unit quad onto the sprite region of the texture.
func (s *Sprite) TextureMatrix() math.Mat4 {
	if s.texture == nil {
		return math.NewMat4Identity()
	}
	dims := math.NewVec2(float32(s.texture.Width), float32(s.texture.Height))
	offset := s.offset.Div(dims)
	size := s.size.Div(dims)
	return math.NewMat4Identity().
		Translate(math.NewVec3(offset.X, offset.Y, 0)).
		Scale(math.NewVec3(size.X, size.Y, 1))
}

func (s *Sprite) Update(deltaTime float64, projection, view math.Mat4) error {
	if err := s.poll(); err != nil {
		return err
	}
	if s.texture == nil {
		return nil
	}
	return s.renderer.DrawSprite(renderer.SpriteDrawCall{
		Shader:        systems.BUILTIN_SHADER_NAME_SPRITE,
		Texture:       s.texture,
		Matrix:        s.Matrix(projection, view).Data,
		TextureMatrix: s.TextureMatrix().Data,
	})
}
