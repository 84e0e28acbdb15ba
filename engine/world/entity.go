package world

import (
	"errors"
	"fmt"
)

// ErrNoCapability is returned by Invoke when no attached behavior
// provides the requested message. Callers treat it as "capability
// absent" and fall through, not as a fault.
var ErrNoCapability = errors.New("no such capability")

// rulesAttr is the attribute key under which Base seeds each entity's
// rulebook.
const rulesAttr = "rules"

// Base is the baseline behavior every entity carries. Its attach hook
// seeds the entity's rulebook, and its registry holds every entity in
// the process, which is what named entity lookup scans. Sessions hold
// an explicit reference to it (Session.Registry) rather than reaching
// for the package variable.
var Base = &Behavior{
	Name:    "base",
	Methods: map[string]Handler{},
	OnAttach: func(e *Entity) {
		// Idempotent: a re-attach must not wipe existing rules.
		if _, ok := e.attrs[rulesAttr]; !ok {
			e.attrs[rulesAttr] = NewRulebook()
		}
	},
}

// Entity is a composable game object: an ordered stack of behaviors
// (index 0 = most recently attached, searched first) plus attribute
// storage shared between the runtime and game content.
type Entity struct {
	behaviors []*Behavior
	attrs     map[string]any
}

// New creates an entity carrying Base plus each listed behavior,
// attached in the given order. Attach inserts at the front, so the last
// listed behavior is searched first.
func New(attrs map[string]any, behaviors ...*Behavior) *Entity {
	if attrs == nil {
		attrs = map[string]any{}
	}
	e := &Entity{attrs: attrs}
	e.Attach(Base)
	for _, b := range behaviors {
		e.Attach(b)
	}
	return e
}

// Attach inserts b at the front of the search order, registers the
// entity in b's live set, and runs the attach hook. Attaching a behavior
// the entity already holds is permitted: it is re-inserted at the front
// and registered a second time, and the hook runs again.
func (e *Entity) Attach(b *Behavior) *Entity {
	e.behaviors = append([]*Behavior{b}, e.behaviors...)
	b.register(e)
	if b.OnAttach != nil {
		b.OnAttach(e)
	}
	return e
}

// Detach runs the detach hook, removes the entity from b's live set,
// and removes the first occurrence of b from the search order, exposing
// whatever b was shadowing. Detaching a behavior the entity does not
// hold is a no-op.
func (e *Entity) Detach(b *Behavior) *Entity {
	idx := -1
	for i, held := range e.behaviors {
		if held == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		return e
	}
	if b.OnDetach != nil {
		b.OnDetach(e)
	}
	b.deregister(e)
	e.behaviors = append(e.behaviors[:idx], e.behaviors[idx+1:]...)
	return e
}

// Resolve scans the behavior stack front to back and returns the first
// handler registered under name. The boolean reports whether any
// attached behavior provides the message; absence is not an error.
func (e *Entity) Resolve(name string) (Handler, bool) {
	for _, b := range e.behaviors {
		if h, ok := b.Methods[name]; ok {
			return h, true
		}
	}
	return nil, false
}

// Invoke resolves name and calls the handler with the entity as its
// first argument. An unresolved name yields ErrNoCapability.
func (e *Entity) Invoke(name string, args ...any) (any, error) {
	h, ok := e.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoCapability)
	}
	return h(e, args...), nil
}

// Attr returns the attribute stored under key and whether it was set.
func (e *Entity) Attr(key string) (any, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// StringAttr returns the attribute under key as a string, or "" if it
// is missing or not a string.
func (e *Entity) StringAttr(key string) string {
	if s, ok := e.attrs[key].(string); ok {
		return s
	}
	return ""
}

// BoolAttr returns the attribute under key as a bool. Missing or
// non-bool values read as false.
func (e *Entity) BoolAttr(key string) bool {
	b, _ := e.attrs[key].(bool)
	return b
}

// SetAttr stores v under key.
func (e *Entity) SetAttr(key string, v any) {
	e.attrs[key] = v
}

// Attrs returns a copy of the entity's attribute map. Mutating the copy
// does not touch the entity.
func (e *Entity) Attrs() map[string]any {
	out := make(map[string]any, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// Container returns the entity this one is inside of, or nil.
func (e *Entity) Container() *Entity {
	c, _ := e.attrs["container"].(*Entity)
	return c
}

// SetContainer moves the entity into c.
func (e *Entity) SetContainer(c *Entity) {
	e.attrs["container"] = c
}

// Rules returns the entity's rulebook. Every entity has one (Base
// seeds it at creation), so a missing or foreign value is an internal
// invariant violation, not a recoverable condition.
func (e *Entity) Rules() *Rulebook {
	rb, ok := e.attrs[rulesAttr].(*Rulebook)
	if !ok {
		panic("world: entity rulebook attribute missing or corrupt")
	}
	return rb
}
