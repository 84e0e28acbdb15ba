package loader

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/mkbray/fabula/engine/world"
)

// rawLocation holds a location table before compilation.
type rawLocation struct {
	id    string
	table *lua.LTable
}

// rawProp holds a prop table before compilation.
type rawProp struct {
	id    string
	table *lua.LTable
}

// rawRule holds a rule table before compilation.
type rawRule struct {
	id    string
	table *lua.LTable
}

// ruleSpec is a rule table decoded into Go, still unlinked.
type ruleSpec struct {
	id    string
	scope string

	// when: all non-empty fields must match the command.
	verb        string
	subject     string
	preposition string
	object      string

	// requires
	needsProp string // must be in inventory
	needsFlag string // must be set
	notFlag   string // must be unset

	// effects
	say       string
	setFlag   string
	clearFlag string
	give      string // prop id moved to inventory
	moveTo    string // location id the player moves to
	quit      bool
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to map[string]string, keeping
// only string keys and values.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// displayName derives a player-facing default name from a content id:
// "gold_coin" -> "gold coin".
func displayName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

// compile turns collected Lua declarations into a playable Game:
// entities for locations and props, behaviors for their capabilities
// and replies, and closures for the declared rules. Standard verb rules
// are seeded last so content rules, evaluated later in each rulebook's
// scan, win when both match.
func compile(coll *collector) (*Game, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game {} declaration found")
	}

	g := &Game{
		Title:   getString(coll.game, "title"),
		Author:  getString(coll.game, "author"),
		Version: getString(coll.game, "version"),
		Intro:   getString(coll.game, "intro"),
		Start:   getString(coll.game, "start"),

		Session:   world.NewSession(),
		Locations: world.NewBehavior("location"),
		Props:     world.NewBehavior("prop"),

		locationsByID: map[string]*world.Entity{},
		propsByID:     map[string]*world.Entity{},
	}

	// Each game gets its own lookup registry so two loaded games never
	// shadow each other's names through the process-wide baseline.
	registry := world.NewBehavior("entity")
	g.Session.Registry = registry
	g.Session.Inventory.Attach(registry)

	// Locations. Exits stay as id references; moving resolves them
	// through the by-id map.
	for _, raw := range coll.locations {
		attrs := map[string]any{
			"name":        raw.id,
			"description": getString(raw.table, "description"),
		}
		if em := tableToStringMap(getTable(raw.table, "exits")); len(em) > 0 {
			attrs["exits"] = em
		}
		g.locationsByID[raw.id] = world.New(attrs, registry, g.Locations)
	}

	// Props. A "replies" table becomes a per-prop behavior whose
	// methods are named after verbs, so "rub lamp" reaches it through
	// the dispatch engine's verb-method path.
	for _, raw := range coll.props {
		name := getString(raw.table, "name")
		if name == "" {
			name = displayName(raw.id)
		}
		attrs := map[string]any{
			"name":        name,
			"description": getString(raw.table, "description"),
			"portable":    getBool(raw.table, "portable", false),
		}

		var behaviors []*world.Behavior
		if replies := tableToStringMap(getTable(raw.table, "replies")); len(replies) > 0 {
			rb := world.NewBehavior(raw.id + " replies")
			for verb, text := range replies {
				reply := text
				rb.Methods[verb] = func(e *world.Entity, args ...any) any {
					return reply
				}
			}
			behaviors = append(behaviors, rb)
		}

		g.propsByID[raw.id] = world.New(attrs, append([]*world.Behavior{registry, g.Props}, behaviors...)...)
	}

	// Decode rules before validation so reference checks cover them.
	specs := make([]ruleSpec, 0, len(coll.rules))
	for _, raw := range coll.rules {
		spec, err := decodeRule(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	if err := validate(g, coll, specs); err != nil {
		return nil, err
	}

	// Link prop containers now that every location exists.
	for _, raw := range coll.props {
		if locID := getString(raw.table, "location"); locID != "" {
			g.propsByID[raw.id].SetContainer(g.locationsByID[locID])
		}
	}

	// Attach content rules in declaration order, then the standard
	// rules. AddRule prepends, so the first declaration ends up
	// evaluated last and wins, per the rulebook's overwrite policy.
	for _, spec := range specs {
		g.rulebookFor(spec.scope).AddRule(g.compileRule(spec))
	}
	g.seedStandardRules()

	g.Session.Location = g.locationsByID[g.Start]

	return g, nil
}

// decodeRule converts a raw rule table into a ruleSpec.
func decodeRule(raw rawRule) (ruleSpec, error) {
	spec := ruleSpec{
		id:    raw.id,
		scope: getString(raw.table, "scope"),

		say:       getString(raw.table, "say"),
		setFlag:   getString(raw.table, "set_flag"),
		clearFlag: getString(raw.table, "clear_flag"),
		give:      getString(raw.table, "give"),
		moveTo:    getString(raw.table, "move_to"),
		quit:      getBool(raw.table, "quit", false),
	}
	if spec.scope == "" {
		spec.scope = "global"
	}

	when := getTable(raw.table, "when")
	if when == nil {
		return spec, fmt.Errorf("rule %q: missing when clause", raw.id)
	}
	spec.verb = getString(when, "verb")
	spec.subject = getString(when, "subject")
	spec.preposition = getString(when, "preposition")
	spec.object = getString(when, "object")
	if spec.verb == "" {
		return spec, fmt.Errorf("rule %q: when clause needs a verb", raw.id)
	}

	if req := getTable(raw.table, "requires"); req != nil {
		spec.needsProp = getString(req, "has")
		spec.needsFlag = getString(req, "flag")
		spec.notFlag = getString(req, "not_flag")
	}

	return spec, nil
}

// rulebookFor resolves a rule scope to the rulebook it attaches to.
// Scopes were checked by validate, so a miss here is a bug.
func (g *Game) rulebookFor(scope string) *world.Rulebook {
	switch {
	case scope == "global":
		return g.Session.Global
	case scope == "system":
		return g.Session.System
	case scope == "last":
		return g.Session.LastChance
	case strings.HasPrefix(scope, "location:"):
		return g.locationsByID[strings.TrimPrefix(scope, "location:")].Rules()
	case strings.HasPrefix(scope, "prop:"):
		return g.propsByID[strings.TrimPrefix(scope, "prop:")].Rules()
	}
	panic("loader: unvalidated rule scope " + scope)
}

// compileRule closes a ruleSpec over the game, producing a core rule.
func (g *Game) compileRule(spec ruleSpec) world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		s := cmd.Session

		if cmd.Verb != spec.verb {
			return world.NoMatch
		}
		if spec.subject != "" && cmd.Subject != spec.subject {
			return world.NoMatch
		}
		if spec.preposition != "" && cmd.Preposition != spec.preposition {
			return world.NoMatch
		}
		if spec.object != "" && cmd.Object != spec.object {
			return world.NoMatch
		}

		if spec.needsProp != "" && !s.Carrying(g.propsByID[spec.needsProp]) {
			return world.NoMatch
		}
		if spec.needsFlag != "" && !s.Flags[spec.needsFlag] {
			return world.NoMatch
		}
		if spec.notFlag != "" && s.Flags[spec.notFlag] {
			return world.NoMatch
		}

		if spec.setFlag != "" {
			s.Flags[spec.setFlag] = true
		}
		if spec.clearFlag != "" {
			delete(s.Flags, spec.clearFlag)
		}
		if spec.give != "" {
			g.propsByID[spec.give].SetContainer(s.Inventory)
		}

		msg := spec.say
		if spec.moveTo != "" {
			desc := g.MoveTo(g.locationsByID[spec.moveTo])
			if msg != "" {
				msg += "\n" + desc
			} else {
				msg = desc
			}
		}
		if spec.quit {
			s.Quit = true
		}

		return world.Handled(msg)
	}
}
