package loader

import (
	"sort"
	"strings"

	"github.com/mkbray/fabula/engine/world"
)

// Game is a fully compiled game: metadata, the live session, and the
// shared behaviors content hangs off of. Everything here is built by
// compile; after Load returns there is no Lua left.
type Game struct {
	Title   string
	Author  string
	Version string
	Intro   string
	Start   string

	Session *world.Session

	// Locations and Props are the capability behaviors carried by every
	// location and prop entity. Their registries answer queries like
	// "all props in this location".
	Locations *world.Behavior
	Props     *world.Behavior

	locationsByID map[string]*world.Entity
	propsByID     map[string]*world.Entity
}

// LocationByID returns the location entity declared under id, or nil.
func (g *Game) LocationByID(id string) *world.Entity {
	return g.locationsByID[id]
}

// PropByID returns the prop entity declared under id, or nil.
func (g *Game) PropByID(id string) *world.Entity {
	return g.propsByID[id]
}

// PropNamed returns the prop whose player-facing name matches, or nil.
func (g *Game) PropNamed(name string) *world.Entity {
	return g.Props.FindNamed(name)
}

// PropsIn returns the props whose container is c, sorted by name.
func (g *Game) PropsIn(c *world.Entity) []*world.Entity {
	props := g.Props.FindWhere(func(e *world.Entity) bool {
		return e.Container() == c
	})
	sort.Slice(props, func(i, j int) bool {
		return props[i].StringAttr("name") < props[j].StringAttr("name")
	})
	return props
}

// Describe renders the standard description of a location: its
// description text, the props visible in it, and its exits.
func (g *Game) Describe(loc *world.Entity) string {
	var lines []string
	if desc := loc.StringAttr("description"); desc != "" {
		lines = append(lines, desc)
	}

	props := g.PropsIn(loc)
	if len(props) > 0 {
		names := make([]string, 0, len(props))
		for _, p := range props {
			names = append(names, p.StringAttr("name"))
		}
		lines = append(lines, "You see: "+strings.Join(names, ", ")+".")
	}

	if dirs := exitDirections(loc); len(dirs) > 0 {
		lines = append(lines, "Exits: "+strings.Join(dirs, ", ")+".")
	}

	return strings.Join(lines, "\n")
}

// ExitDirections returns a location's exit directions, sorted. UIs use
// it for status displays.
func (g *Game) ExitDirections(loc *world.Entity) []string {
	return exitDirections(loc)
}

// MoveTo makes loc the current location and returns its description.
func (g *Game) MoveTo(loc *world.Entity) string {
	g.Session.Location = loc
	return g.Describe(loc)
}

// exits returns a location's direction → location-id map, or nil.
func exits(loc *world.Entity) map[string]string {
	v, _ := loc.Attr("exits")
	em, _ := v.(map[string]string)
	return em
}

// exitDirections returns a location's exit directions, sorted.
func exitDirections(loc *world.Entity) []string {
	em := exits(loc)
	dirs := make([]string, 0, len(em))
	for dir := range em {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
