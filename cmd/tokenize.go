package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"toklex/encoding"
	"toklex/internal/filesystem"
	"toklex/token"
	"toklex/tokenizer"
)

// TokenizeCmd defines the "tokenize" command: it reads Python-flavored
// source from a file (or stdin when Input is omitted) and prints its
// token stream, one token per line.
type TokenizeCmd struct {
	Input   string `arg:"" optional:"" help:"Path to a source file; reads stdin if omitted"`
	Output  string `help:"Write the token dump here instead of stdout" short:"o"`
	Grammar string `help:"Path to a YAML grammar configuration file" short:"g"`
}

// Run executes the tokenize command.
func (c *TokenizeCmd) Run(globals *Globals, ctx *context.Context, log *slog.Logger) error {
	cfg, err := tokenizer.LoadConfig(c.Grammar)
	if err != nil {
		return fmt.Errorf("error loading grammar config: %w", err)
	}

	var src []byte
	if c.Input == "" {
		log.InfoContext(*ctx, "Tokenizing stdin")
		src, err = io.ReadAll(os.Stdin)
	} else {
		log.InfoContext(*ctx, "Tokenizing file", slog.String("file", c.Input))
		src, err = os.ReadFile(c.Input)
	}
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	decoded, err := decodeSource(src)
	if err != nil {
		return fmt.Errorf("error detecting encoding: %w", err)
	}

	var out strings.Builder
	tok := tokenizer.New(tokenizer.LinesOf(decoded), cfg)
	count := 0
	for {
		tk, err := tok.Next()
		if err != nil {
			return fmt.Errorf("tokenize error: %w", err)
		}
		log.DebugContext(*ctx, "emitted token", slog.String("kind", tk.Kind.String()), slog.String("text", tk.Text))
		out.WriteString(formatDumpLine(tk))
		count++
		if tk.Kind == token.ENDMARKER {
			break
		}
	}

	if c.Output == "" {
		fmt.Print(out.String())
	} else {
		fs := filesystem.NewFileSystem(log)
		if err := fs.WriteFile(c.Output, []byte(out.String()), 0644); err != nil {
			return fmt.Errorf("error writing token dump: %w", err)
		}
	}

	log.InfoContext(*ctx, "Tokenization completed", slog.Int("tokenCount", count))
	return nil
}

func formatDumpLine(tk token.Token) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\n",
		tk.Kind, strconv.Quote(tk.Text), tk.Start.Row, tk.Start.Col, tk.End.Row, tk.End.Col)
}

func parseDumpLine(line string) (token.Token, error) {
	fields := strings.SplitN(line, "\t", 6)
	if len(fields) != 6 {
		return token.Token{}, fmt.Errorf("malformed dump line: %q", line)
	}
	kind, ok := kindByName[fields[0]]
	if !ok {
		return token.Token{}, fmt.Errorf("unknown token kind: %q", fields[0])
	}
	text, err := strconv.Unquote(fields[1])
	if err != nil {
		return token.Token{}, fmt.Errorf("malformed token text: %w", err)
	}
	startRow, err := strconv.Atoi(fields[2])
	if err != nil {
		return token.Token{}, err
	}
	startCol, err := strconv.Atoi(fields[3])
	if err != nil {
		return token.Token{}, err
	}
	endRow, err := strconv.Atoi(fields[4])
	if err != nil {
		return token.Token{}, err
	}
	endCol, err := strconv.Atoi(strings.TrimSuffix(fields[5], "\n"))
	if err != nil {
		return token.Token{}, err
	}
	return token.Token{
		Kind:  kind,
		Text:  text,
		Start: token.Position{Row: startRow, Col: startCol},
		End:   token.Position{Row: endRow, Col: endCol},
	}, nil
}

// readDump parses a token dump in the format formatDumpLine writes.
func readDump(r io.Reader) ([]token.Token, error) {
	var toks []token.Token
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tk, err := parseDumpLine(line)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tk)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

var kindByName = func() map[string]token.Kind {
	names := []token.Kind{
		token.NAME, token.NUMBER, token.STRING, token.FSTRING_START,
		token.FSTRING_MIDDLE, token.FSTRING_END, token.LBRACE, token.RBRACE,
		token.OP, token.NEWLINE, token.NL, token.INDENT, token.DEDENT,
		token.COMMENT, token.ENDMARKER, token.ERRORTOKEN, token.ASYNC, token.AWAIT,
	}
	m := make(map[string]token.Kind, len(names))
	for _, k := range names {
		m[k.String()] = k
	}
	return m
}()

// decodeSource runs the encoding detector over raw's leading line(s) and
// returns the full source as text, the way a real file-backed LineSource
// would hand the tokenizer already-decoded lines. Go strings are UTF-8
// natively, so utf-8/utf-8-sig/ascii sources pass through unchanged; any
// other declared encoding has no byte-level decoder wired here (see
// DESIGN.md) and is reported as an error rather than silently mis-decoded.
func decodeSource(raw []byte) (string, error) {
	pos := 0
	next := func() []byte {
		if pos >= len(raw) {
			return nil
		}
		start := pos
		for pos < len(raw) {
			c := raw[pos]
			pos++
			if c == '\n' {
				break
			}
			if c == '\r' {
				if pos < len(raw) && raw[pos] == '\n' {
					pos++
				}
				break
			}
		}
		return raw[start:pos]
	}

	name, consumed, err := encoding.Detect(next)
	if err != nil {
		return "", err
	}
	switch name {
	case "utf-8", "utf-8-sig", "ascii", "us-ascii":
	default:
		return "", fmt.Errorf("unsupported source encoding %q: no byte-level decoder wired for it", name)
	}

	var buf strings.Builder
	for _, line := range consumed {
		buf.Write(line)
	}
	buf.Write(raw[pos:])
	return buf.String(), nil
}
