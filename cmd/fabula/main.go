// Fabula is a runtime for text adventures built from composable
// behaviors, rulebooks, and Lua content files.
// Usage: fabula [--version] [--plain] [--script <file>] <game_directory>
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/mkbray/fabula/cli"
	"github.com/mkbray/fabula/loader"
	"github.com/mkbray/fabula/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// config holds environment overrides. Flags take precedence.
type config struct {
	SaveDir string `env:"FABULA_SAVE_DIR"`
	Plain   bool   `env:"FABULA_PLAIN"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	plain := cfg.Plain
	var gameDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("fabula %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: fabula [--version] [--plain] [--script <file>] <game_directory>\n")
		os.Exit(1)
	}

	// Load and compile Lua game content.
	g, err := loader.Load(gameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s\n\n", g.Title, g.Version, g.Author)
		c := cli.New(g)
		c.In = f
		c.EchoInput = true
		if cfg.SaveDir != "" {
			c.SaveDir = cfg.SaveDir
		}
		c.Run()
		return
	}

	// Use plain CLI if requested or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s by %s\n\n", g.Title, g.Version, g.Author)
		c := cli.New(g)
		if cfg.SaveDir != "" {
			c.SaveDir = cfg.SaveDir
		}
		c.Run()
		return
	}

	if err := tui.Run(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
