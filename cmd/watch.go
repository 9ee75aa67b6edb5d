package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"toklex/internal/filesystem"
	"toklex/token"
	"toklex/tokenizer"
)

// WatchCmd defines the "watch" command: it re-tokenizes a single file every
// time the file is written, demonstrating that each pass owns a fresh
// Tokenizer and never shares state with the previous pass over the same
// evolving file.
type WatchCmd struct {
	File    string `arg:"" required:"" help:"File to watch and re-tokenize on every write"`
	Delay   int    `help:"Debounce delay in milliseconds" default:"300"`
	Grammar string `help:"Path to a YAML grammar configuration file" short:"g"`
}

func (w *WatchCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	log.InfoContext(*ctx, "Watching file",
		slog.String("file", w.File),
		slog.Int("delay", w.Delay))

	cfg, err := tokenizer.LoadConfig(w.Grammar)
	if err != nil {
		return fmt.Errorf("error loading grammar config: %w", err)
	}

	fs := filesystem.NewFileSystem(log)

	exists, err := fs.Exists(w.File)
	if err != nil {
		return fmt.Errorf("error checking file: %w", err)
	}
	if !exists {
		return fmt.Errorf("file does not exist: %s", w.File)
	}

	isDir, err := fs.IsDir(w.File)
	if err != nil {
		return fmt.Errorf("error checking file: %w", err)
	}
	if isDir {
		return fmt.Errorf("watch requires a file, not a directory: %s", w.File)
	}

	log.InfoContext(*ctx, "Performing initial tokenization")
	if err := tokenizeAndReport(fs, w.File, cfg, log, *ctx); err != nil {
		log.ErrorContext(*ctx, "Initial tokenization failed", slog.String("error", err.Error()))
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer fs.StopWatching()

	dir := filepath.Dir(w.File)
	events, err := fs.WatchFiles(watchCtx, []string{dir}, false)
	if err != nil {
		return fmt.Errorf("failed to start watching: %w", err)
	}

	timer := time.NewTimer(time.Duration(w.Delay) * time.Millisecond)
	timer.Stop()
	needsRetokenize := false

	fmt.Printf("Watching '%s' for changes...\n", w.File)

	for {
		select {
		case <-(*ctx).Done():
			log.InfoContext(*ctx, "Stopping watch due to context cancellation")
			return nil

		case event, ok := <-events:
			if !ok {
				log.InfoContext(*ctx, "Event channel closed, stopping watch")
				return nil
			}
			absEvent, err := filepath.Abs(event.Path)
			if err != nil {
				continue
			}
			absFile, err := filepath.Abs(w.File)
			if err != nil {
				continue
			}
			if absEvent != absFile {
				log.DebugContext(*ctx, "Ignoring unrelated file", slog.String("path", event.Path))
				continue
			}

			log.DebugContext(*ctx, "File change detected",
				slog.String("path", event.Path),
				slog.String("event", event.Type.String()))

			timer.Reset(time.Duration(w.Delay) * time.Millisecond)
			needsRetokenize = true

		case <-timer.C:
			if needsRetokenize {
				log.InfoContext(*ctx, "Re-tokenizing after file change")
				if err := tokenizeAndReport(fs, w.File, cfg, log, *ctx); err != nil {
					log.ErrorContext(*ctx, "Tokenization failed", slog.String("error", err.Error()))
					fmt.Printf("Tokenization error: %v\n", err)
				}
				needsRetokenize = false
			}
		}
	}
}

func tokenizeAndReport(fs filesystem.FileSystem, path string, cfg tokenizer.Config, log *slog.Logger, ctx context.Context) error {
	content, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file %s: %w", path, err)
	}

	decoded, err := decodeSource(content)
	if err != nil {
		return fmt.Errorf("error detecting encoding: %w", err)
	}

	tok := tokenizer.New(tokenizer.LinesOf(decoded), cfg)
	count := 0
	for {
		tk, err := tok.Next()
		if err != nil {
			return err
		}
		count++
		if tk.Kind == token.ENDMARKER {
			break
		}
	}

	log.InfoContext(ctx, "Tokenization completed", slog.String("file", path), slog.Int("tokenCount", count))
	fmt.Printf("%s: %d tokens\n", path, count)
	return nil
}
