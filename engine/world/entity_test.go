package world

import (
	"errors"
	"testing"
)

func speakBehavior(reply string) *Behavior {
	b := NewBehavior("speak")
	b.Methods["speak"] = func(e *Entity, args ...any) any {
		return reply
	}
	return b
}

func TestNew_SeedsRulebook(t *testing.T) {
	e := New(nil)
	if e.Rules() == nil {
		t.Fatal("expected baseline behavior to seed a rulebook")
	}
	if e.Rules().Len() != 0 {
		t.Errorf("expected empty rulebook, got %d rules", e.Rules().Len())
	}
}

func TestAttach_MostRecentWins(t *testing.T) {
	older := speakBehavior("older")
	newer := speakBehavior("newer")

	e := New(nil, older, newer)

	res, err := e.Invoke("speak")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "newer" {
		t.Errorf("expected most recently attached behavior to win, got %v", res)
	}
}

func TestDetach_RestoresShadowed(t *testing.T) {
	older := speakBehavior("older")
	newer := speakBehavior("newer")

	e := New(nil, older, newer)
	e.Detach(newer)

	res, err := e.Invoke("speak")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "older" {
		t.Errorf("expected shadowed behavior to become visible, got %v", res)
	}
}

func TestRegistry_AttachDetach(t *testing.T) {
	b := NewBehavior("prop")
	e := New(nil)

	e.Attach(b)
	if !b.Holds(e) {
		t.Fatal("expected entity in registry after attach")
	}

	e.Detach(b)
	if b.Holds(e) {
		t.Fatal("expected entity gone from registry after detach")
	}
	if _, ok := e.Resolve("anything"); ok {
		t.Error("expected no handlers after detach")
	}
}

func TestDetach_NotAttachedIsNoOp(t *testing.T) {
	b := NewBehavior("prop")
	e := New(nil)

	// Double detach must stay silent and leave the stack intact.
	e.Detach(b)
	e.Detach(b)

	if b.Holds(e) {
		t.Error("expected entity not registered")
	}
	if e.Rules() == nil {
		t.Error("expected baseline rulebook to survive")
	}
}

func TestAttach_DuplicatePermitted(t *testing.T) {
	attached := 0
	b := NewBehavior("counted")
	b.OnAttach = func(e *Entity) { attached++ }

	e := New(nil, b)
	e.Attach(b)

	if attached != 2 {
		t.Errorf("expected attach hook to run twice, ran %d times", attached)
	}
	if got := len(b.FindWhere(func(x *Entity) bool { return x == e })); got != 2 {
		t.Errorf("expected entity registered twice, got %d", got)
	}

	// One detach removes one occurrence; the behavior is still held.
	e.Detach(b)
	if !b.Holds(e) {
		t.Error("expected second occurrence to survive one detach")
	}
}

func TestLifecycleHooks(t *testing.T) {
	var log []string
	b := NewBehavior("hooked")
	b.OnAttach = func(e *Entity) { log = append(log, "attach") }
	b.OnDetach = func(e *Entity) { log = append(log, "detach") }

	e := New(nil)
	e.Attach(b).Detach(b)

	if len(log) != 2 || log[0] != "attach" || log[1] != "detach" {
		t.Errorf("expected [attach detach], got %v", log)
	}
}

func TestResolve_NotFound(t *testing.T) {
	e := New(nil)
	if _, ok := e.Resolve("levitate"); ok {
		t.Error("expected resolve miss for unknown message")
	}
}

func TestInvoke_NoCapability(t *testing.T) {
	e := New(nil)
	_, err := e.Invoke("levitate")
	if !errors.Is(err, ErrNoCapability) {
		t.Errorf("expected ErrNoCapability, got %v", err)
	}
}

func TestInvoke_PassesEntityAndArgs(t *testing.T) {
	b := NewBehavior("echo")
	b.Methods["echo"] = func(e *Entity, args ...any) any {
		return e.StringAttr("name") + ":" + args[0].(string)
	}

	e := New(map[string]any{"name": "mirror"}, b)
	res, err := e.Invoke("echo", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "mirror:hello" {
		t.Errorf("expected mirror:hello, got %v", res)
	}
}

func TestFindWhere(t *testing.T) {
	props := NewBehavior("prop")
	shelf := New(map[string]any{"name": "shelf"})

	book := New(map[string]any{"name": "book"}, props)
	book.SetContainer(shelf)
	lamp := New(map[string]any{"name": "lamp"}, props)

	found := props.FindWhere(func(e *Entity) bool { return e.Container() == shelf })
	if len(found) != 1 || found[0] != book {
		t.Errorf("expected [book], got %d entities", len(found))
	}
	if !props.Holds(lamp) {
		t.Error("expected lamp in prop registry")
	}
}
