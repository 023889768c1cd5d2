package renderer

import "sync"

// Recorder is a Backend that keeps every draw call of the last frame in
// memory. The headless host and the tests render through it.
type Recorder struct {
	mu sync.Mutex

	Name          string
	Width, Height uint32
	Frames        int

	sprites []SpriteDrawCall
	meshes  []MeshDrawCall
}

var _ Backend = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Initialize(appName string, appWidth, appHeight uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Name = appName
	r.Width, r.Height = appWidth, appHeight
	return nil
}

func (r *Recorder) Shutdown() error { return nil }

func (r *Recorder) Resized(width, height uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Width, r.Height = uint32(width), uint32(height)
	return nil
}

func (r *Recorder) BeginFrame(deltaTime float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites = r.sprites[:0]
	r.meshes = r.meshes[:0]
	return nil
}

func (r *Recorder) EndFrame(deltaTime float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Frames++
	return nil
}

func (r *Recorder) DrawSprite(call SpriteDrawCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites = append(r.sprites, call)
	return nil
}

func (r *Recorder) DrawMesh(call MeshDrawCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshes = append(r.meshes, call)
	return nil
}

func (r *Recorder) Sprites() []SpriteDrawCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SpriteDrawCall(nil), r.sprites...)
}

func (r *Recorder) Meshes() []MeshDrawCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MeshDrawCall(nil), r.meshes...)
}
