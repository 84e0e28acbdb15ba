// Package save implements JSON snapshot and restore of session state.
// The core defines no persistence format; this one belongs to the
// CLI/TUI collaborators.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/mkbray/fabula/engine/world"
)

// EntitySave is the persisted slice of one entity: where it sits and
// its scalar attributes.
type EntitySave struct {
	Container string         `json:"container,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// SaveData is the JSON save format.
type SaveData struct {
	Game     string                `json:"game"`
	Version  string                `json:"version"`
	Turn     int                   `json:"turn"`
	Location string                `json:"location"`
	Flags    map[string]bool       `json:"flags"`
	Entities map[string]EntitySave `json:"entities"`
}

// Snapshot serializes the session-mutable state: current location, turn
// count, flags, and each named entity's container plus scalar
// attributes. Behaviors, rulebooks, and handlers are code, not state,
// and are never persisted; a save is only meaningful against the game
// content it was taken from.
func Snapshot(s *world.Session, game, version string) ([]byte, error) {
	data := SaveData{
		Game:     game,
		Version:  version,
		Turn:     s.Turns,
		Flags:    s.Flags,
		Entities: map[string]EntitySave{},
	}
	if s.Location != nil {
		data.Location = s.Location.StringAttr("name")
	}

	for _, e := range s.Registry.All() {
		name := e.StringAttr("name")
		if name == "" {
			continue
		}
		es := EntitySave{Attrs: scalarAttrs(e)}
		if c := e.Container(); c != nil {
			es.Container = c.StringAttr("name")
		}
		data.Entities[name] = es
	}

	return json.MarshalIndent(data, "", "  ")
}

// Restore applies a snapshot onto a session holding the same game
// content. Entities named in the save but absent from the registry are
// skipped; an unknown location is an error since the session would be
// left nowhere.
func Restore(s *world.Session, data []byte) error {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return fmt.Errorf("decoding save: %w", err)
	}

	s.Turns = sd.Turn
	s.Flags = sd.Flags
	if s.Flags == nil {
		s.Flags = map[string]bool{}
	}

	for name, es := range sd.Entities {
		e := s.FindEntity(name)
		if e == nil {
			continue
		}
		for k, v := range es.Attrs {
			e.SetAttr(k, normalize(v))
		}
		if es.Container != "" {
			if c := s.FindEntity(es.Container); c != nil {
				e.SetContainer(c)
			}
		}
	}

	if sd.Location != "" {
		loc := s.FindEntity(sd.Location)
		if loc == nil {
			return fmt.Errorf("save references unknown location %q", sd.Location)
		}
		s.Location = loc
	}

	return nil
}

// scalarAttrs filters an entity's attributes down to the JSON-safe
// scalars. Everything else (rulebooks, entity references, handlers)
// is reconstructed from game content, not from the save.
func scalarAttrs(e *world.Entity) map[string]any {
	out := map[string]any{}
	for k, v := range e.Attrs() {
		switch v.(type) {
		case string, bool, int, int64, float64:
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalize undoes JSON's number widening: whole floats come back as
// ints so attribute round-trips stay comparable.
func normalize(v any) any {
	if f, ok := v.(float64); ok && f == float64(int(f)) {
		return int(f)
	}
	return v
}
