package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"toklex/internal/filesystem"
	"toklex/untokenize"
)

// UntokenizeCmd defines the "untokenize" command: it reads a token dump
// produced by "tokenize" and reconstructs the source text it came from.
type UntokenizeCmd struct {
	Input  string `arg:"" required:"" help:"Path to a token dump produced by 'tokenize'"`
	Output string `help:"Write reconstructed source here instead of stdout" short:"o"`
}

// Run executes the untokenize command.
func (c *UntokenizeCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	log.InfoContext(*ctx, "Untokenizing dump", slog.String("file", c.Input))

	f, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("error opening token dump: %w", err)
	}
	defer f.Close()

	toks, err := readDump(f)
	if err != nil {
		return fmt.Errorf("error parsing token dump: %w", err)
	}

	src, err := untokenize.Full(toks)
	if err != nil {
		return fmt.Errorf("error reconstructing source: %w", err)
	}

	if c.Output == "" {
		fmt.Print(src)
	} else {
		fs := filesystem.NewFileSystem(log)
		if err := fs.WriteFile(c.Output, []byte(src), 0644); err != nil {
			return fmt.Errorf("error writing reconstructed source: %w", err)
		}
	}

	log.InfoContext(*ctx, "Untokenization completed", slog.Int("tokenCount", len(toks)))
	return nil
}
