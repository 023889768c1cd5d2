package components

import "github.com/spaghettifunk/wood/engine/math"

// Component is anything that can be attached to an Entity. Embed Base to
// implement it.
type Component interface {
	Entity() *Entity
	attach(e *Entity)
}

// Starter is implemented by components that need to run once before their first update.
type Starter interface {
	Start() error
}

// Updater is implemented by components that run every frame. deltaTime is
// in milliseconds.
type Updater interface {
	Update(deltaTime float64, projection, view math.Mat4) error
}

// Base holds the back reference to the owning entity.
type Base struct {
	entity *Entity
}

// Entity returns the entity the component is attached to, nil once detached.
func (b *Base) Entity() *Entity {
	return b.entity
}

func (b *Base) attach(e *Entity) {
	b.entity = e
}
