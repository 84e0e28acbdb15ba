package loader

import (
	"strings"
	"testing"
)

// loadErr loads content expected to fail validation and returns the
// error text.
func loadErr(t *testing.T, src string) string {
	t.Helper()
	dir := writeGame(t, map[string]string{"game.lua": src})
	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected validation error")
	}
	return err.Error()
}

func TestValidate_ValidContent(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": playableGame})
	if _, err := Load(dir); err != nil {
		t.Fatalf("expected valid content, got: %v", err)
	}
}

func TestValidate_MissingTitle(t *testing.T) {
	msg := loadErr(t, `
		Game { start = "hall" }
		Location "hall" { description = "A hall." }`)
	if !strings.Contains(msg, "missing title") {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_UndeclaredStart(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "void" }
		Location "hall" { description = "A hall." }`)
	if !strings.Contains(msg, `start location "void"`) {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_DanglingExit(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "hall" }
		Location "hall" { description = "A hall.", exits = { north = "void" } }`)
	if !strings.Contains(msg, "undeclared location") {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_PropInUndeclaredLocation(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "hall" }
		Location "hall" { description = "A hall." }
		Prop "key" { location = "void" }`)
	if !strings.Contains(msg, `prop "key"`) {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "hall" }
		Location "hall" { description = "A hall." }
		Prop "key" { location = "hall" }
		Prop "spare" { name = "key", location = "hall" }`)
	if !strings.Contains(msg, "already used") {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_RuleWithoutVerb(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "hall" }
		Location "hall" { description = "A hall." }
		Rule "bad" { when = When { subject = "key" }, say = "Hm." }`)
	if !strings.Contains(msg, "needs a verb") {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_UnknownScope(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "hall" }
		Location "hall" { description = "A hall." }
		Rule "bad" { scope = "planet:mars", when = When { verb = "dig" }, say = "No." }`)
	if !strings.Contains(msg, "unknown scope") {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_UnknownPreposition(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "hall" }
		Location "hall" { description = "A hall." }
		Rule "bad" { when = When { verb = "give", preposition = "betwixt" }, say = "No." }`)
	if !strings.Contains(msg, "not a recognized preposition") {
		t.Errorf("error = %q", msg)
	}
}

func TestValidate_EffectTargets(t *testing.T) {
	msg := loadErr(t, `Game { title = "T", start = "hall" }
		Location "hall" { description = "A hall." }
		Rule "bad" { when = When { verb = "win" }, give = "trophy", move_to = "void" }`)
	if !strings.Contains(msg, "undeclared prop") || !strings.Contains(msg, "undeclared location") {
		t.Errorf("error = %q", msg)
	}
}
