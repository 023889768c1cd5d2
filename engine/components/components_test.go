package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/spaghettifunk/wood/engine/assets"
	"github.com/spaghettifunk/wood/engine/containers"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/input"
	"github.com/spaghettifunk/wood/engine/math"
	"github.com/spaghettifunk/wood/engine/renderer"
	"github.com/spaghettifunk/wood/engine/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func assertVec3(t *testing.T, expected, actual math.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, tolerance, "x")
	assert.InDelta(t, expected.Y, actual.Y, tolerance, "y")
	assert.InDelta(t, expected.Z, actual.Z, tolerance, "z")
}

func assertMat4(t *testing.T, expected, actual math.Mat4) {
	t.Helper()
	for i := range expected.Data {
		assert.InDelta(t, expected.Data[i], actual.Data[i], tolerance, "element %d", i)
	}
}

type fixedViewport struct{ w, h int }

func (v *fixedViewport) Size() (int, int) { return v.w, v.h }

type textureSource struct {
	futures map[string]*containers.Future[*assets.Texture]
	calls   int
}

func (s *textureSource) Acquire(url string) *containers.Future[*assets.Texture] {
	s.calls++
	if s.futures == nil {
		s.futures = make(map[string]*containers.Future[*assets.Texture])
	}
	f, ok := s.futures[url]
	if !ok {
		f = containers.NewFuture[*assets.Texture]()
		s.futures[url] = f
	}
	return f
}

// probe records its lifecycle calls.
type probe struct {
	Base
	name    string
	log     *[]string
	failing bool
}

func (p *probe) Start() error {
	*p.log = append(*p.log, p.name+":start")
	return nil
}

func (p *probe) Update(deltaTime float64, projection, view math.Mat4) error {
	*p.log = append(*p.log, p.name+":update")
	if p.failing {
		return errors.New("broken")
	}
	return nil
}

type other struct {
	probe
}

type detacher struct {
	Base
}

func (d *detacher) Update(deltaTime float64, projection, view math.Mat4) error {
	Remove[*other](d.Entity())
	return nil
}

func TestEntityIDs(t *testing.T) {
	a := NewEntity()
	b := NewEntity()
	assert.True(t, strings.HasPrefix(a.ID, "obj-"))
	assert.NotEqual(t, a.ID, b.ID)

	c := NewEntity(WithID("player"), WithPosition(math.NewVec3(1, 2, 3)))
	assert.Equal(t, "player", c.ID)
	assert.Equal(t, math.NewVec3(1, 2, 3), c.Transform.Position)
	assert.Equal(t, math.NewVec3One(), c.Transform.Scale)
}

func TestEntityComponentSlots(t *testing.T) {
	var log []string
	e := NewEntity()

	first := &probe{name: "first", log: &log}
	e.AddComponent(first)
	e.AddComponent(&other{probe{name: "other", log: &log}})
	assert.Same(t, e, first.Entity())

	got, ok := Get[*probe](e)
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.True(t, Has[*other](e))
	assert.False(t, Has[*Rotator](e))

	// same kind replaces and detaches, the slot keeps its position
	second := &probe{name: "second", log: &log}
	e.AddComponent(second)
	assert.Nil(t, first.Entity())
	got, _ = Get[*probe](e)
	assert.Same(t, second, got)
	require.Len(t, e.Components(), 2)
	assert.Same(t, second, e.Components()[0])

	assert.False(t, e.RemoveComponent(first))
	assert.True(t, e.RemoveComponent(second))
	assert.Nil(t, second.Entity())
	assert.False(t, Has[*probe](e))

	assert.True(t, Remove[*other](e))
	assert.False(t, Remove[*other](e))
	assert.Empty(t, e.Components())
}

func TestComponentMovesBetweenEntities(t *testing.T) {
	var log []string
	a, b := NewEntity(), NewEntity()
	p := &probe{name: "p", log: &log}

	a.AddComponent(p)
	b.AddComponent(p)
	assert.Same(t, b, p.Entity())
	assert.False(t, Has[*probe](a))
}

func TestEntityLifecycle(t *testing.T) {
	var log []string
	e := NewEntity()
	e.AddComponent(&probe{name: "a", log: &log})
	require.NoError(t, e.Start())
	require.NoError(t, e.Start())

	// attached after start, started lazily before its first update
	e.AddComponent(&other{probe{name: "b", log: &log}})
	require.NoError(t, e.Update(16, math.NewMat4Identity(), math.NewMat4Identity()))

	assert.Equal(t, []string{"a:start", "a:update", "b:start", "b:update"}, log)
}

func TestEntityUpdateSkipsFailingComponent(t *testing.T) {
	var log []string
	e := NewEntity(WithID("broken"))
	e.AddComponent(&probe{name: "a", log: &log, failing: true})
	e.AddComponent(&other{probe{name: "b", log: &log}})

	err := e.Update(16, math.NewMat4Identity(), math.NewMat4Identity())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, log, "b:update")
}

func TestDetachedComponentIsNotUpdated(t *testing.T) {
	var log []string
	e := NewEntity()
	e.AddComponent(&detacher{})
	o := &other{probe{name: "o", log: &log}}
	e.AddComponent(o)

	require.NoError(t, e.Update(16, math.NewMat4Identity(), math.NewMat4Identity()))
	assert.Empty(t, log)
	assert.Nil(t, o.Entity())
}

func TestEntityDestroy(t *testing.T) {
	var log []string
	e := NewEntity()
	p := &probe{name: "p", log: &log}
	r := NewRotator(math.NewVec3Zero())
	e.AddComponent(p)
	e.AddComponent(r)

	e.Destroy()
	assert.Nil(t, p.Entity())
	assert.Nil(t, r.Entity())
	assert.Empty(t, e.Components())

	require.NoError(t, e.Update(16, math.NewMat4Identity(), math.NewMat4Identity()))
	assert.Empty(t, log)
}

func TestCameraOrthographic(t *testing.T) {
	c := NewOrthographicCamera(math.NewVec3(0, 0, 1), math.NewVec3Zero(), 800, 600)
	p := c.ProjectionMatrix()

	assertVec3(t, math.NewVec3(-1, 1, 0), math.NewVec3(0, 0, 0).Transform(p))
	assertVec3(t, math.NewVec3(1, -1, 0), math.NewVec3(800, 600, 0).Transform(p))
	assertMat4(t, math.NewMat4LookAt(c.Position, c.Target, math.NewVec3Up()), c.View())
}

func TestCameraFixedToViewport(t *testing.T) {
	vp := &fixedViewport{w: 800, h: 600}
	c := NewViewportCamera(vp)
	assert.Equal(t, math.NewVec3(-400, -300, 100), c.Position)
	assert.Equal(t, math.NewVec3(-400, -300, 0), c.Target)

	vp.w, vp.h = 1024, 768
	p, v := c.Matrices()
	assert.Equal(t, math.NewVec3(-512, -384, 100), c.Position)
	assertMat4(t, math.NewMat4Orthographic(0, 1024, 768, 0, 400, -400), p)

	// the world origin lands in the middle of the screen
	center := math.NewVec3Zero().Transform(p.Mul(v))
	assert.InDelta(t, 0, center.X, tolerance)
	assert.InDelta(t, 0, center.Y, tolerance)
}

func TestCameraPerspective(t *testing.T) {
	fov := math.DegToRad(60)
	c := NewPerspectiveCamera(math.NewVec3(0, 0, 10), math.NewVec3Zero(), fov, 4.0/3.0, 1, 2000)
	assertMat4(t, math.NewMat4Perspective(fov, 4.0/3.0, 1, 2000), c.ProjectionMatrix())

	c.Projection = nil
	assertMat4(t, math.NewMat4Identity(), c.ProjectionMatrix())
}

func TestMeshRendererComposesTransform(t *testing.T) {
	rec := renderer.NewRecorder()
	r := renderer.New(rec, systems.NewShaderSystem())

	camera := NewOrthographicCamera(math.NewVec3(0, 0, 100), math.NewVec3Zero(), 800, 600)
	projection, view := camera.Matrices()

	e := NewEntity(
		WithPosition(math.NewVec3(10, 10, 0)),
		WithScale(math.NewVec3(1, 2, 1)),
	)
	mesh := NewMeshRenderer(r, 6, math.NewVec4One())
	e.AddComponent(mesh)
	require.NoError(t, e.Update(16, projection, view))

	expected := projection.Mul(view).
		Mul(math.NewMat4Translation(math.NewVec3(10, 10, 0))).
		Mul(math.NewMat4Scale(math.NewVec3(1, 2, 1)))
	assertMat4(t, expected, mesh.Matrix())

	// (1,1,0) -> scaled (1,2,0) -> moved (11,12,0) -> view (11,12,-100)
	assertVec3(t, math.NewVec3(11.0/400-1, 1-12.0/300, -0.25), math.NewVec3(1, 1, 0).Transform(mesh.Matrix()))

	calls := rec.Meshes()
	require.Len(t, calls, 1)
	assert.Equal(t, mesh.Matrix().Data, calls[0].Matrix)
	assert.Equal(t, uint32(6), calls[0].VertexCount)
}

func TestSpriteWaitsForTexture(t *testing.T) {
	rec := renderer.NewRecorder()
	r := renderer.New(rec, systems.NewShaderSystem())
	textures := &textureSource{}

	e := NewEntity(WithPosition(math.NewVec3(100, 50, 0)))
	sprite := NewSprite("hero.png", textures, r)
	e.AddComponent(sprite)
	identity := math.NewMat4Identity()

	require.NoError(t, e.Update(16, identity, identity))
	assert.False(t, sprite.Loaded())
	assert.Empty(t, rec.Sprites())

	textures.futures["hero.png"].Complete(&assets.Texture{URL: "hero.png", Width: 64, Height: 32}, nil)
	require.NoError(t, e.Update(16, identity, identity))
	assert.True(t, sprite.Loaded())
	assert.Equal(t, math.NewVec2(64, 32), sprite.Size())
	assert.Equal(t, 1, textures.calls)

	calls := rec.Sprites()
	require.Len(t, calls, 1)
	m := math.Mat4{Data: calls[0].Matrix}
	assertVec3(t, math.NewVec3(68, 34, 0), math.NewVec3(0, 0, 0).Transform(m))
	assertVec3(t, math.NewVec3(132, 66, 0), math.NewVec3(1, 1, 0).Transform(m))
	assertMat4(t, identity, math.Mat4{Data: calls[0].TextureMatrix})
}

func TestSpriteRegion(t *testing.T) {
	textures := &textureSource{}
	sprite := NewSprite("tiles.png", textures, renderer.New(renderer.NewRecorder(), nil),
		WithRegion(math.NewVec2(16, 0), math.NewVec2(16, 16)))
	e := NewEntity(WithRotation(math.NewVec3(0, 0, math.K_HALF_PI)))
	e.AddComponent(sprite)
	require.NoError(t, e.Start())

	textures.futures["tiles.png"].Complete(&assets.Texture{Width: 64, Height: 32}, nil)
	identity := math.NewMat4Identity()
	require.NoError(t, e.Update(16, identity, identity))
	assert.Equal(t, math.NewVec2(16, 16), sprite.Size())

	tm := sprite.TextureMatrix()
	assertVec3(t, math.NewVec3(0.25, 0, 0), math.NewVec3(0, 0, 0).Transform(tm))
	assertVec3(t, math.NewVec3(0.5, 0.5, 0), math.NewVec3(1, 1, 0).Transform(tm))

	// rotated a quarter turn around the entity position
	m := sprite.Matrix(identity, identity)
	assertVec3(t, math.NewVec3(8, -8, 0), math.NewVec3(0, 0, 0).Transform(m))

	e.RemoveComponent(sprite)
	assert.Equal(t, identity, sprite.Matrix(identity, identity))
}

func TestSpriteLoadFailureReportedOnce(t *testing.T) {
	textures := &textureSource{}
	rec := renderer.NewRecorder()
	sprite := NewSprite("missing.png", textures, renderer.New(rec, nil))
	e := NewEntity()
	e.AddComponent(sprite)
	require.NoError(t, e.Start())

	textures.futures["missing.png"].Complete(nil, core.ErrLookup)
	identity := math.NewMat4Identity()
	err := e.Update(16, identity, identity)
	assert.ErrorIs(t, err, core.ErrLookup)
	assert.NoError(t, e.Update(16, identity, identity))
	assert.Empty(t, rec.Sprites())
}

func TestKeyboardMove(t *testing.T) {
	in := input.NewState(nil)
	move := NewKeyboardMove(in, &fixedViewport{w: 100, h: 100})
	e := NewEntity()
	e.AddComponent(move)
	identity := math.NewMat4Identity()

	require.NoError(t, e.Update(16, identity, identity))
	assertVec3(t, math.NewVec3Zero(), e.Transform.Position)

	in.ProcessKey(core.KEY_D, true)
	require.NoError(t, e.Update(16, identity, identity))
	assert.InDelta(t, 0.05, move.Velocity().X, tolerance)
	assertVec3(t, math.NewVec3(0.8, 0, 0), e.Transform.Position)

	// keeps accelerating towards speed/10 and stops at the viewport edge
	for i := 0; i < 200; i++ {
		require.NoError(t, e.Update(16, identity, identity))
	}
	assert.InDelta(t, 0.5, move.Velocity().X, 1e-3)
	assert.InDelta(t, 50, e.Transform.Position.X, tolerance)

	in.ProcessKey(core.KEY_D, false)
	in.ProcessKey(core.KEY_W, true)
	require.NoError(t, e.Update(16, identity, identity))
	assert.Less(t, e.Transform.Position.Y, float32(0), "up moves towards negative y")
}

func TestRotator(t *testing.T) {
	e := NewEntity()
	e.AddComponent(NewRotator(math.NewVec3(0, 0.01, 0)))
	identity := math.NewMat4Identity()

	for i := 0; i < 10; i++ {
		require.NoError(t, e.Update(10, identity, identity))
	}
	assert.InDelta(t, 1.0, e.Transform.Rotation.Y, tolerance)
}
