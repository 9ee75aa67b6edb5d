// main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
)

var Version = "dev" // This will be set by the build system
type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

type Globals struct {
	Debug   bool        `help:"Enable debug logging" short:"d"`
	Version VersionFlag `name:"version" help:"Print version information and quit"`
}

// CLI holds the root command structure including global flags
type CLI struct {
	Globals

	// Commands
	Tokenize   TokenizeCmd   `cmd:"" help:"Tokenize a file or stdin and print the token stream"`
	Untokenize UntokenizeCmd `cmd:"" help:"Reconstruct source text from a dumped token stream"`
	Watch      WatchCmd      `cmd:"" help:"Re-tokenize a file every time it changes"`
}

func main() {
	// -------------------------------------------------------------------------
	// Parse CLI arguments and options
	cli := CLI{}

	// If no arguments are provided, show help
	if len(os.Args) < 2 {
		os.Args = append(os.Args, "--help")
	}

	// Parse the command line arguments
	kCtx := kong.Parse(&cli,
		kong.Name("toklex"),
		kong.Description("toklex - a Python tokenize-module-style lexer"),
		kong.UsageOnError(),
		kong.Vars{
			"version": "v0.1.0",
		},
	)

	// -------------------------------------------------------------------------
	// Logger
	level := slog.LevelInfo

	if cli.Globals.Debug {
		level = slog.LevelDebug
	}

	log := slog.New(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		}),
	)

	// -------------------------------------------------------------------------
	// Context

	ctx := context.Background()

	// -------------------------------------------------------------------------
	// GOMAXPROCS

	log.DebugContext(ctx, "startup", slog.Int("GOMAXPROCS", runtime.GOMAXPROCS(0)))

	// -------------------------------------------------------------------------
	// Run

	if err := kCtx.Run(&cli.Globals, &ctx, log); err != nil {
		kCtx.FatalIfErrorf(err)
	}
}
