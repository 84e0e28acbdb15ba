package loader

import (
	"fmt"
	"strings"

	"github.com/mkbray/fabula/engine/parser"
)

// validate checks that every cross-reference in the compiled content
// resolves: the start location, exit targets, prop locations, rule
// scopes, and rule effect targets. Content errors should surface at
// load time, not as a panic mid-game.
func validate(g *Game, coll *collector, specs []ruleSpec) error {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if g.Title == "" {
		fail("Game: missing title")
	}
	if g.Start == "" {
		fail("Game: missing start location")
	} else if g.locationsByID[g.Start] == nil {
		fail("Game: start location %q is not declared", g.Start)
	}

	// Duplicate ids and player-facing names. Named lookup scans a
	// registry, so duplicate names would make one entity unreachable.
	seenIDs := map[string]string{}
	seenNames := map[string]string{}
	checkID := func(kind, id string) {
		if prev, ok := seenIDs[id]; ok {
			fail("%s %q: id already used by %s", kind, id, prev)
		}
		seenIDs[id] = kind + " " + id
	}
	checkName := func(kind, id, name string) {
		if prev, ok := seenNames[name]; ok {
			fail("%s %q: name %q already used by %s", kind, id, name, prev)
		}
		seenNames[name] = kind + " " + id
	}

	for _, raw := range coll.locations {
		checkID("location", raw.id)
		checkName("location", raw.id, raw.id)
	}
	for _, raw := range coll.props {
		checkID("prop", raw.id)
		checkName("prop", raw.id, g.propsByID[raw.id].StringAttr("name"))
	}

	// Exits point at declared locations.
	for id, loc := range g.locationsByID {
		for dir, target := range exits(loc) {
			if g.locationsByID[target] == nil {
				fail("location %q: exit %q leads to undeclared location %q", id, dir, target)
			}
		}
	}

	// Prop containers point at declared locations.
	for _, raw := range coll.props {
		if locID := getString(raw.table, "location"); locID != "" {
			if g.locationsByID[locID] == nil {
				fail("prop %q: location %q is not declared", raw.id, locID)
			}
		}
	}

	// Rules: scopes, prepositions, and effect targets.
	for _, spec := range specs {
		switch {
		case spec.scope == "global", spec.scope == "system", spec.scope == "last":
		case strings.HasPrefix(spec.scope, "location:"):
			if g.locationsByID[strings.TrimPrefix(spec.scope, "location:")] == nil {
				fail("rule %q: scope %q names an undeclared location", spec.id, spec.scope)
			}
		case strings.HasPrefix(spec.scope, "prop:"):
			if g.propsByID[strings.TrimPrefix(spec.scope, "prop:")] == nil {
				fail("rule %q: scope %q names an undeclared prop", spec.id, spec.scope)
			}
		default:
			fail("rule %q: unknown scope %q", spec.id, spec.scope)
		}

		if spec.preposition != "" && !parser.IsPreposition(spec.preposition) {
			fail("rule %q: %q is not a recognized preposition", spec.id, spec.preposition)
		}
		if spec.needsProp != "" && g.propsByID[spec.needsProp] == nil {
			fail("rule %q: requires.has names undeclared prop %q", spec.id, spec.needsProp)
		}
		if spec.give != "" && g.propsByID[spec.give] == nil {
			fail("rule %q: give names undeclared prop %q", spec.id, spec.give)
		}
		if spec.moveTo != "" && g.locationsByID[spec.moveTo] == nil {
			fail("rule %q: move_to names undeclared location %q", spec.id, spec.moveTo)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid game content:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
