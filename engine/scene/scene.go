package scene

import (
	"errors"

	"github.com/spaghettifunk/wood/engine/components"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/math"
)

// Scene holds the spawned entities and the camera they are rendered with.
// Entities are updated in the order they were first spawned.
type Scene struct {
	Camera *components.Camera

	entities map[string]*components.Entity
	order    []string
	started  bool
}

func New(camera *components.Camera) *Scene {
	return &Scene{
		Camera:   camera,
		entities: make(map[string]*components.Entity),
	}
}

// Spawn adds e to the scene. If the scene is already running e is started
// right away. An entity with the same ID is replaced in place.
func (s *Scene) Spawn(e *components.Entity) error {
	if old, ok := s.entities[e.ID]; ok {
		if old == e {
			return nil
		}
		core.LogWarn("scene already has an entity '%s', replacing it", e.ID)
		old.Destroy()
	} else {
		s.order = append(s.order, e.ID)
	}
	s.entities[e.ID] = e

	if s.started {
		return e.Start()
	}
	return nil
}

// Destroy detaches all components of e and removes it from the scene.
func (s *Scene) Destroy(e *components.Entity) {
	e.Destroy()
	if current, ok := s.entities[e.ID]; !ok || current != e {
		return
	}
	delete(s.entities, e.ID)
	for i, id := range s.order {
		if id == e.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Scene) Get(id string) (*components.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Entities returns the spawned entities in update order.
func (s *Scene) Entities() []*components.Entity {
	out := make([]*components.Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

func (s *Scene) Len() int {
	return len(s.order)
}

// Start starts every entity. Entities spawned later are started on spawn.
func (s *Scene) Start() error {
	s.started = true
	var errs []error
	for _, e := range s.Entities() {
		if err := e.Start(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Update runs one frame: the camera matrices are computed once and handed
// to every entity. Failures of single components do not stop the frame.
func (s *Scene) Update(deltaTime float64) error {
	projection, view := math.NewMat4Identity(), math.NewMat4Identity()
	if s.Camera != nil {
		projection, view = s.Camera.Matrices()
	}

	var errs []error
	for _, id := range append([]string(nil), s.order...) {
		// destroyed by an earlier entity this frame
		e, ok := s.entities[id]
		if !ok {
			continue
		}
		if err := e.Update(deltaTime, projection, view); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
