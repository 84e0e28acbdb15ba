package loader

import (
	"sort"
	"strings"

	"github.com/mkbray/fabula/engine/world"
)

// seedStandardRules installs the built-in verb handling every game
// gets: quit as a system rule, the core verbs as global rules, and two
// catch-alls in the last-chance layer. compile calls this after content
// rules are attached, which places the standard rules earlier in each
// scan, so a content rule that also matches overwrites them.
func (g *Game) seedStandardRules() {
	s := g.Session

	s.System.AddRule(func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Verb != "quit" {
			return world.NoMatch
		}
		cmd.Session.Quit = true
		return world.Handled("Goodbye.")
	})

	s.Global.AddRule(g.lookRule())
	s.Global.AddRule(g.examineRule())
	s.Global.AddRule(g.goRule())
	s.Global.AddRule(g.takeRule())
	s.Global.AddRule(g.dropRule())
	s.Global.AddRule(g.inventoryRule())

	s.LastChance.AddRule(g.exitShortcutRule())
	s.LastChance.AddRule(g.unknownSubjectRule())
}

func (g *Game) lookRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Verb != "look" || cmd.Subject != "" || cmd.Session.Location == nil {
			return world.NoMatch
		}
		return world.Handled(g.Describe(cmd.Session.Location))
	}
}

func (g *Game) examineRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Verb != "examine" {
			return world.NoMatch
		}
		if cmd.Subject == "" {
			return world.Handled("Examine what?")
		}
		p := g.visibleProp(cmd.Session, cmd.Subject)
		if p == nil {
			return world.NoMatch // the last-chance layer words the refusal
		}
		if desc := p.StringAttr("description"); desc != "" {
			return world.Handled(desc)
		}
		return world.Handled("You see nothing special about it.")
	}
}

func (g *Game) goRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Verb != "go" {
			return world.NoMatch
		}
		// Direction words like "inside" or "up" are in the parser's
		// preposition vocabulary, so "go inside" arrives with an empty
		// subject and the direction in the preposition slot.
		direction := cmd.Subject
		if direction == "" {
			direction = cmd.Preposition
		}
		if direction == "" {
			return world.Handled("Go where?")
		}
		return g.moveThrough(cmd.Session, direction)
	}
}

func (g *Game) takeRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Verb != "take" {
			return world.NoMatch
		}
		if cmd.Subject == "" {
			return world.Handled("Take what?")
		}
		s := cmd.Session
		p := g.PropNamed(cmd.Subject)
		if p == nil {
			return world.NoMatch
		}
		if s.Carrying(p) {
			return world.Handled("You already have that.")
		}
		if p.Container() != s.Location {
			return world.NoMatch
		}
		if !p.BoolAttr("portable") {
			return world.Handled("You can't take that.")
		}
		p.SetContainer(s.Inventory)
		return world.Handled("Taken.")
	}
}

func (g *Game) dropRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Verb != "drop" {
			return world.NoMatch
		}
		if cmd.Subject == "" {
			return world.Handled("Drop what?")
		}
		s := cmd.Session
		p := g.PropNamed(cmd.Subject)
		if p == nil || !s.Carrying(p) {
			return world.Handled("You don't have that.")
		}
		p.SetContainer(s.Location)
		return world.Handled("Dropped.")
	}
}

func (g *Game) inventoryRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Verb != "inventory" {
			return world.NoMatch
		}
		carried := g.PropsIn(cmd.Session.Inventory)
		if len(carried) == 0 {
			return world.Handled("You are carrying nothing.")
		}
		names := make([]string, 0, len(carried))
		for _, p := range carried {
			names = append(names, p.StringAttr("name"))
		}
		sort.Strings(names)
		return world.Handled("You are carrying: " + strings.Join(names, ", ") + ".")
	}
}

// exitShortcutRule lets a bare direction act as movement: if the verb
// matches an exit of the current location ("north", "inside"), the
// player moves through it. It sits in the last-chance layer so real
// verbs always get first claim on the word.
func (g *Game) exitShortcutRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Subject != "" || cmd.Session.Location == nil {
			return world.NoMatch
		}
		if _, ok := exits(cmd.Session.Location)[cmd.Verb]; !ok {
			return world.NoMatch
		}
		return g.moveThrough(cmd.Session, cmd.Verb)
	}
}

// unknownSubjectRule words the refusal for take/examine aimed at
// something that isn't here, instead of the bare fallback.
func (g *Game) unknownSubjectRule() world.Rule {
	return func(rb *world.Rulebook, cmd *world.Command) world.Outcome {
		if cmd.Subject == "" {
			return world.NoMatch
		}
		if cmd.Verb != "take" && cmd.Verb != "examine" {
			return world.NoMatch
		}
		return world.Handled("You don't see that here.")
	}
}

// visibleProp finds a prop by name if it is in the current location or
// carried.
func (g *Game) visibleProp(s *world.Session, name string) *world.Entity {
	p := g.PropNamed(name)
	if p == nil {
		return nil
	}
	if p.Container() == s.Location || s.Carrying(p) {
		return p
	}
	return nil
}

// moveThrough moves the player through the named exit of the current
// location, if it exists.
func (g *Game) moveThrough(s *world.Session, direction string) world.Outcome {
	if s.Location == nil {
		return world.NoMatch
	}
	target, ok := exits(s.Location)[direction]
	if !ok {
		return world.Handled("You can't go that way.")
	}
	return world.Handled(g.MoveTo(g.locationsByID[target]))
}
