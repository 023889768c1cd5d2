package components

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/math"
)

var entityIDs = core.NewIDGenerator("obj")

type slot struct {
	component Component
	started   bool
}

// Entity owns a transform and at most one component of each concrete type.
// Components are started and updated in the order their kind was first added.
type Entity struct {
	ID        string
	Transform *math.Transform

	slots map[reflect.Type]*slot
	order []reflect.Type
}

type EntityOption func(*Entity)

func WithID(id string) EntityOption {
	return func(e *Entity) {
		e.ID = id
	}
}

func WithTransform(t *math.Transform) EntityOption {
	return func(e *Entity) {
		e.Transform = t
	}
}

func WithPosition(position math.Vec3) EntityOption {
	return func(e *Entity) {
		e.Transform.Position = position
	}
}

func WithRotation(rotation math.Vec3) EntityOption {
	return func(e *Entity) {
		e.Transform.Rotation = rotation
	}
}

func WithScale(scale math.Vec3) EntityOption {
	return func(e *Entity) {
		e.Transform.Scale = scale
	}
}

// NewEntity creates an entity with a default transform. Without WithID the
// entity gets the next "obj-N" identifier.
func NewEntity(opts ...EntityOption) *Entity {
	e := &Entity{
		Transform: math.TransformCreate(),
		slots:     make(map[reflect.Type]*slot),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Transform == nil {
		e.Transform = math.TransformCreate()
	}
	if e.ID == "" {
		e.ID = entityIDs.Next()
	}
	return e
}

// AddComponent attaches c. A component of the same type already attached is
// detached and replaced, keeping its position in the update order.
func (e *Entity) AddComponent(c Component) {
	kind := reflect.TypeOf(c)
	if owner := c.Entity(); owner != nil && owner != e {
		owner.RemoveComponent(c)
	}
	if old, ok := e.slots[kind]; ok {
		if old.component == c {
			return
		}
		old.component.attach(nil)
		core.LogDebug("entity '%s' replaced component %s", e.ID, kind)
	} else {
		e.order = append(e.order, kind)
	}
	c.attach(e)
	e.slots[kind] = &slot{component: c}
}

// RemoveComponent detaches c if it is the component attached for its type.
func (e *Entity) RemoveComponent(c Component) bool {
	kind := reflect.TypeOf(c)
	s, ok := e.slots[kind]
	if !ok || s.component != c {
		return false
	}
	e.remove(kind)
	return true
}

func (e *Entity) remove(kind reflect.Type) {
	s, ok := e.slots[kind]
	if !ok {
		return
	}
	s.component.attach(nil)
	delete(e.slots, kind)
	for i, k := range e.order {
		if k == kind {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Get returns the component of type T attached to e.
func Get[T Component](e *Entity) (T, bool) {
	s, ok := e.slots[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		var zero T
		return zero, false
	}
	c, ok := s.component.(T)
	return c, ok
}

// Has reports whether a component of type T is attached to e.
func Has[T Component](e *Entity) bool {
	_, ok := e.slots[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Remove detaches the component of type T.
func Remove[T Component](e *Entity) bool {
	kind := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := e.slots[kind]; !ok {
		return false
	}
	e.remove(kind)
	return true
}

// Components returns the attached components in update order.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.order))
	for _, k := range e.order {
		out = append(out, e.slots[k].component)
	}
	return out
}

// Destroy detaches every component.
func (e *Entity) Destroy() {
	for _, k := range e.order {
		e.slots[k].component.attach(nil)
	}
	e.slots = make(map[reflect.Type]*slot)
	e.order = nil
}

// Start runs Start on every component that was not started yet.
func (e *Entity) Start() error {
	var errs []error
	for _, k := range e.snapshot() {
		s, ok := e.slots[k]
		if !ok {
			continue
		}
		if err := e.start(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Entity) start(s *slot) error {
	if s.started {
		return nil
	}
	s.started = true
	starter, ok := s.component.(Starter)
	if !ok {
		return nil
	}
	if err := starter.Start(); err != nil {
		err = fmt.Errorf("entity '%s': starting %T: %w", e.ID, s.component, err)
		core.LogError(err.Error())
		return err
	}
	return nil
}

// Update runs one frame on every attached component. A component attached
// after Start is started first. A failing component is logged and skipped,
// the others still run; all failures are returned joined.
func (e *Entity) Update(deltaTime float64, projection, view math.Mat4) error {
	var errs []error
	for _, k := range e.snapshot() {
		// a previous component may have detached this one
		s, ok := e.slots[k]
		if !ok {
			continue
		}
		if err := e.start(s); err != nil {
			errs = append(errs, err)
			continue
		}
		if s.component.Entity() != e {
			continue
		}
		updater, ok := s.component.(Updater)
		if !ok {
			continue
		}
		if err := updater.Update(deltaTime, projection, view); err != nil {
			err = fmt.Errorf("entity '%s': updating %T: %w", e.ID, s.component, err)
			core.LogError(err.Error())
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Entity) snapshot() []reflect.Type {
	return append([]reflect.Type(nil), e.order...)
}
