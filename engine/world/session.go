package world

// Session is the per-playthrough state: the current location, the
// player's inventory container, and the ordered rulebook layers the
// dispatch engine evaluates. Behavior registries are process-wide;
// everything here belongs to a single playthrough, so concurrent
// sessions each need their own Session value.
type Session struct {
	// Location is the entity the player is currently in. It is nil
	// until the game sets a starting location; dispatch simply skips
	// the location layer while it is nil.
	Location *Entity

	// Inventory is the container entity that holds whatever the player
	// carries. Carried entities have their container attribute set to
	// it.
	Inventory *Entity

	System     *Rulebook // irrevocable commands (quit); never shadowed
	Global     *Rulebook
	LastChance *Rulebook

	// Registry is the behavior whose live set is scanned for named
	// entity lookup. It is Base unless a test or embedder swaps in its
	// own.
	Registry *Behavior

	// Flags is shared scratch state for game rules.
	Flags map[string]bool

	// Turns counts dispatched commands.
	Turns int

	// Quit is set by a system rule (or the I/O front end) to end the
	// session loop.
	Quit bool
}

// NewSession creates a session with empty rulebook layers, an empty
// inventory container, and no current location.
func NewSession() *Session {
	return &Session{
		Inventory:  New(map[string]any{"name": "inventory"}),
		System:     NewRulebook(),
		Global:     NewRulebook(),
		LastChance: NewRulebook(),
		Registry:   Base,
		Flags:      map[string]bool{},
	}
}

// FindEntity returns the first registered entity whose name attribute
// equals name, or nil. Lookup is an explicit registry scan; names are
// game content, so content is responsible for keeping them unique.
func (s *Session) FindEntity(name string) *Entity {
	if name == "" {
		return nil
	}
	return s.Registry.FindNamed(name)
}

// Carrying reports whether e is in the player's inventory.
func (s *Session) Carrying(e *Entity) bool {
	return e != nil && e.Container() == s.Inventory
}
