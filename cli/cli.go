// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for playing Fabula games without the TUI.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkbray/fabula/engine/parser"
	"github.com/mkbray/fabula/engine/save"
	"github.com/mkbray/fabula/loader"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Game      *loader.Game
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given game.
func New(g *loader.Game) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".fabula", "saves")
	return &CLI{
		Game:    g,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the game loop. It shows the intro, describes the starting
// location, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	// Show intro.
	if c.Game.Intro != "" {
		c.printLine(c.Game.Intro)
		c.printLine("")
	}

	// Describe starting location.
	if loc := c.Game.Session.Location; loc != nil {
		c.printLine(c.Game.Describe(loc))
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.printLine(c.Game.Session.Handle(parser.Parse(input)))

		if c.Game.Session.Quit {
			return
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Snapshot(c.Game.Session, c.Game.Title, c.Game.Version)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	if err := save.Restore(c.Game.Session, data); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, c.Game.Session.Turns))

	// Show the current location after loading.
	if loc := c.Game.Session.Location; loc != nil {
		c.printLine(c.Game.Describe(loc))
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"",
		"Game commands:",
		"  look                  — Describe your surroundings",
		"  examine <thing>       — Look closely at something",
		"  go <direction>        — Move (or just type the direction)",
		"  take <thing>          — Pick something up",
		"  drop <thing>          — Put something down",
		"  inventory             — Check what you're carrying",
		"  again (g)             — Repeat your last command",
		"  quit                  — Give up",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Game.Session
	c.printSystem(fmt.Sprintf("Turn: %d", s.Turns))
	if s.Location != nil {
		c.printSystem(fmt.Sprintf("Location: %s", s.Location.StringAttr("name")))
	}

	var carried []string
	for _, p := range c.Game.PropsIn(s.Inventory) {
		carried = append(carried, p.StringAttr("name"))
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", carried))

	if len(s.Flags) > 0 {
		flags := make([]string, 0, len(s.Flags))
		for f := range s.Flags {
			flags = append(flags, f)
		}
		sort.Strings(flags)
		c.printSystem(fmt.Sprintf("Flags: %v", flags))
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
