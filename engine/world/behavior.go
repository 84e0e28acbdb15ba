// Package world implements the Fabula core: the entity composition
// runtime (behaviors), rulebooks, and the command dispatch engine.
package world

// Handler implements a single message for a behavior. The entity the
// message was sent to is always the first argument.
type Handler func(e *Entity, args ...any) any

// Behavior is a reusable bundle of methods and lifecycle hooks that an
// entity can acquire and relinquish at run time. A single Behavior value
// is shared by every entity holding it. The behavior owns its live
// registry of holders; it never owns the entities themselves.
type Behavior struct {
	Name    string
	Methods map[string]Handler

	// OnAttach and OnDetach run exactly once per attach/detach. Either
	// may be nil. Because duplicate attachment is permitted, hooks must
	// tolerate running more than once for the same entity.
	OnAttach func(e *Entity)
	OnDetach func(e *Entity)

	holders []*Entity // live registry, in attach order
}

// NewBehavior creates a named behavior with an empty method table.
func NewBehavior(name string) *Behavior {
	return &Behavior{Name: name, Methods: map[string]Handler{}}
}

func (b *Behavior) register(e *Entity) {
	b.holders = append(b.holders, e)
}

// deregister removes the first registry occurrence of e.
func (b *Behavior) deregister(e *Entity) {
	for i, held := range b.holders {
		if held == e {
			b.holders = append(b.holders[:i], b.holders[i+1:]...)
			return
		}
	}
}

// Holds reports whether e currently holds this behavior.
func (b *Behavior) Holds(e *Entity) bool {
	for _, held := range b.holders {
		if held == e {
			return true
		}
	}
	return false
}

// All returns the entities currently holding this behavior, in attach
// order. The returned slice is a copy.
func (b *Behavior) All() []*Entity {
	out := make([]*Entity, len(b.holders))
	copy(out, b.holders)
	return out
}

// FindWhere returns every holder for which pred is true, in attach
// order. The simulated world is small, so a linear scan is fine.
func (b *Behavior) FindWhere(pred func(*Entity) bool) []*Entity {
	var out []*Entity
	for _, e := range b.holders {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// FindNamed returns the first holder whose "name" attribute equals
// name, or nil. This is the explicit named-lookup entry point; there is
// no index, just the registry scan.
func (b *Behavior) FindNamed(name string) *Entity {
	for _, e := range b.holders {
		if e.StringAttr("name") == name {
			return e
		}
	}
	return nil
}
