package loader

import (
	"strings"
	"testing"

	"github.com/mkbray/fabula/engine/parser"
)

const playableGame = `
Game {
	title = "Lakehouse",
	author = "Tester",
	version = "1.0",
	start = "porch",
	intro = "The lake is quiet tonight.",
}

Location "porch" {
	description = "A sagging wooden porch.",
	exits = { inside = "parlor" },
}

Location "parlor" {
	description = "A dim parlor smelling of dust.",
	exits = { outside = "porch" },
}

Prop "lantern" {
	description = "A brass storm lantern.",
	location = "porch",
	portable = true,
	replies = { rub = "The lantern rattles." },
}

Prop "piano" {
	description = "An upright piano, badly out of tune.",
	location = "parlor",
}

Rule "play_piano" {
	scope = "location:parlor",
	when = When { verb = "play", subject = "piano" },
	say = "You pick out a halting tune.",
}

Rule "light_lantern" {
	when = When { verb = "light", subject = "lantern" },
	requires = { has = "lantern", not_flag = "lantern_lit" },
	set_flag = "lantern_lit",
	say = "The lantern flares to life.",
}
`

func loadPlayable(t *testing.T) *Game {
	t.Helper()
	dir := writeGame(t, map[string]string{"game.lua": playableGame})
	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return g
}

// play runs one command through the parser and dispatch engine.
func play(g *Game, input string) string {
	return g.Session.Handle(parser.Parse(input))
}

func TestCompiled_LookAndDescribe(t *testing.T) {
	g := loadPlayable(t)

	out := play(g, "look")
	if !strings.Contains(out, "sagging wooden porch") {
		t.Errorf("expected porch description, got %q", out)
	}
	if !strings.Contains(out, "You see: lantern.") {
		t.Errorf("expected lantern listed, got %q", out)
	}
	if !strings.Contains(out, "Exits: inside.") {
		t.Errorf("expected exits listed, got %q", out)
	}
}

func TestCompiled_Movement(t *testing.T) {
	g := loadPlayable(t)

	out := play(g, "go inside")
	if !strings.Contains(out, "dim parlor") {
		t.Errorf("expected parlor description, got %q", out)
	}
	if g.Session.Location != g.LocationByID("parlor") {
		t.Error("expected session location to change")
	}

	// Bare direction via the last-chance shortcut.
	out = play(g, "outside")
	if !strings.Contains(out, "porch") {
		t.Errorf("expected porch description, got %q", out)
	}
}

func TestCompiled_TakeAndInventory(t *testing.T) {
	g := loadPlayable(t)

	if out := play(g, "take lantern"); out != "Taken." {
		t.Fatalf("take = %q", out)
	}
	if out := play(g, "inventory"); out != "You are carrying: lantern." {
		t.Errorf("inventory = %q", out)
	}
	if out := play(g, "take lantern"); out != "You already have that." {
		t.Errorf("second take = %q", out)
	}

	play(g, "go inside")
	if out := play(g, "drop lantern"); out != "Dropped." {
		t.Errorf("drop = %q", out)
	}
	if g.PropByID("lantern").Container() != g.LocationByID("parlor") {
		t.Error("expected lantern dropped in the parlor")
	}
}

func TestCompiled_TakeNonPortable(t *testing.T) {
	g := loadPlayable(t)
	play(g, "go inside")

	if out := play(g, "take piano"); out != "You can't take that." {
		t.Errorf("take piano = %q", out)
	}
}

func TestCompiled_LocationScopedRule(t *testing.T) {
	g := loadPlayable(t)

	// Outside the parlor, the rule is out of reach and nothing else
	// claims the verb, so the fixed fallback applies.
	if out := play(g, "play piano"); !strings.Contains(out, "understand") {
		t.Errorf("expected fallback outside the parlor, got %q", out)
	}

	play(g, "go inside")
	if out := play(g, "play piano"); out != "You pick out a halting tune." {
		t.Errorf("play piano = %q", out)
	}
}

func TestCompiled_ConditionsAndFlags(t *testing.T) {
	g := loadPlayable(t)

	// Without the lantern in hand, the rule declines.
	if out := play(g, "light lantern"); !strings.Contains(out, "understand") {
		t.Errorf("expected fallback without lantern, got %q", out)
	}

	play(g, "take lantern")
	if out := play(g, "light lantern"); out != "The lantern flares to life." {
		t.Fatalf("light = %q", out)
	}
	if !g.Session.Flags["lantern_lit"] {
		t.Error("expected lantern_lit flag set")
	}

	// not_flag now blocks a second lighting.
	if out := play(g, "light lantern"); !strings.Contains(out, "understand") {
		t.Errorf("expected rule to decline when already lit, got %q", out)
	}
}

func TestCompiled_RepliesAsVerbMethods(t *testing.T) {
	g := loadPlayable(t)

	if out := play(g, "rub lantern"); out != "The lantern rattles." {
		t.Errorf("rub lantern = %q", out)
	}
}

func TestCompiled_SystemQuit(t *testing.T) {
	g := loadPlayable(t)

	if out := play(g, "quit"); out != "Goodbye." {
		t.Errorf("quit = %q", out)
	}
	if !g.Session.Quit {
		t.Error("expected quit flag set")
	}
}

func TestCompiled_ContentRuleOverridesStandard(t *testing.T) {
	// A content rule for "take lantern" is attached before the standard
	// rules, so it scans later and its MESSAGE wins. The standard rule
	// still ran (overwrite-while-scanning replaces results, not side
	// effects), so the lantern ends up carried all the same.
	src := playableGame + `
Rule "hot_lantern" {
	when = When { verb = "take", subject = "lantern" },
	say = "You snatch the lantern, singeing your fingers.",
}
`
	dir := writeGame(t, map[string]string{"game.lua": src})
	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if out := play(g, "take lantern"); out != "You snatch the lantern, singeing your fingers." {
		t.Errorf("take = %q", out)
	}
	if !g.Session.Carrying(g.PropByID("lantern")) {
		t.Error("expected the standard take effect to still apply")
	}
}

func TestCompiled_UnknownSubjectCatchAll(t *testing.T) {
	g := loadPlayable(t)

	if out := play(g, "examine kraken"); out != "You don't see that here." {
		t.Errorf("examine kraken = %q", out)
	}
}

func TestCompiled_DefaultPropName(t *testing.T) {
	src := `
Game { title = "T", start = "hall" }
Location "hall" { description = "A hall." }
Prop "gold_coin" { location = "hall", portable = true }
`
	dir := writeGame(t, map[string]string{"game.lua": src})
	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if name := g.PropByID("gold_coin").StringAttr("name"); name != "gold coin" {
		t.Errorf("default name = %q, want %q", name, "gold coin")
	}
	if out := play(g, "take gold coin"); out != "Taken." {
		t.Errorf("take gold coin = %q", out)
	}
}
