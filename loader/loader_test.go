package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeGame writes Lua content files into a temp dir and returns it.
func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

const minimalGame = `
Game {
	title = "Minimal Test Game",
	author = "Tester",
	version = "1.0",
	start = "hall",
	intro = "Welcome!",
}

Location "hall" {
	description = "A grand hall.",
}
`

func TestLoad_MinimalGame(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": minimalGame})

	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if g.Title != "Minimal Test Game" {
		t.Errorf("Title = %q, want %q", g.Title, "Minimal Test Game")
	}
	if g.Intro != "Welcome!" {
		t.Errorf("Intro = %q", g.Intro)
	}

	hall := g.LocationByID("hall")
	if hall == nil {
		t.Fatal("location 'hall' not found")
	}
	if hall.StringAttr("description") != "A grand hall." {
		t.Errorf("hall description = %q", hall.StringAttr("description"))
	}
	if g.Session.Location != hall {
		t.Error("expected session to start in the hall")
	}
}

func TestLoad_MultipleFiles(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": `Game { title = "Split", start = "hall" }
			Location "hall" { description = "A hall.", exits = { north = "garden" } }`,
		"annex.lua": `Location "garden" { description = "A garden.", exits = { south = "hall" } }`,
	})

	g, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.LocationByID("garden") == nil {
		t.Error("expected location from second file")
	}
}

func TestLoad_NoLuaFiles(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("expected no-files error, got %v", err)
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoad_LuaSyntaxError(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": `Game { title = `})
	if _, err := Load(dir); err == nil {
		t.Error("expected error for broken Lua")
	}
}

func TestLoad_SandboxBlocksIO(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": minimalGame + `
		if os ~= nil or io ~= nil or dofile ~= nil then
			error("sandbox leak")
		end`})
	if _, err := Load(dir); err != nil {
		t.Errorf("expected sandboxed load to succeed, got %v", err)
	}
}

func TestSortedLuaFiles_GameFirst(t *testing.T) {
	got := sortedLuaFiles([]string{"props.lua", "game.lua", "areas.lua"})
	want := []string{"game.lua", "areas.lua", "props.lua"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
