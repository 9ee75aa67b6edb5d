// Package untokenize implements the inverse of tokenizer: converting a
// token stream back into source text.
package untokenize

import (
	"fmt"
	"strings"

	"toklex/token"
)

// Full reconstructs source text from a complete token stream in five-tuple
// form, padding with spaces to reach each token's start column and
// rolling the row forward on NEWLINE/NL. Given the token stream produced
// by a tokenizer pass over input S, Full yields S exactly.
func Full(tokens []token.Token) (string, error) {
	var out strings.Builder
	row, col := 1, 0

	for _, tok := range tokens {
		if tok.Kind == token.ENDMARKER {
			break
		}
		if tok.Start.Row < row {
			return "", fmt.Errorf("untokenize: row %d out of order after row %d", tok.Start.Row, row)
		}
		if tok.Start.Row > row {
			out.WriteString(strings.Repeat("\n", tok.Start.Row-row))
			row = tok.Start.Row
			col = 0
		}
		if tok.Start.Col > col {
			out.WriteString(strings.Repeat(" ", tok.Start.Col-col))
		}
		out.WriteString(tok.Text)

		switch tok.Kind {
		case token.NEWLINE, token.NL:
			row++
			col = 0
		default:
			row = tok.End.Row
			col = tok.End.Col
		}
	}
	return out.String(), nil
}

// Compat reconstructs an approximation of source text from the degenerate
// two-tuple (kind, text) form, the form a consumer gets after projecting
// (kind, text) out of a real token stream and losing all position
// information. It inserts a single space after NAME/NUMBER/ASYNC/AWAIT and
// re-emits held indentation at the start of every new line, exactly the
// compat-mode behavior needed for the limited-form round-trip property: re-
// tokenizing Compat's output reproduces the same (kind, text) projection.
func Compat(tokens []token.Partial) (string, error) {
	var out strings.Builder
	var indents []string
	atLineStart := true
	prevKind := token.Kind(-1)

	spacedAfter := func(k token.Kind) bool {
		switch k {
		case token.NAME, token.NUMBER, token.ASYNC, token.AWAIT:
			return true
		}
		return false
	}

	for _, tok := range tokens {
		if tok.Kind == token.ENDMARKER {
			break
		}
		switch tok.Kind {
		case token.INDENT:
			indents = append(indents, tok.Text)
			continue
		case token.DEDENT:
			if len(indents) > 0 {
				indents = indents[:len(indents)-1]
			}
			continue
		}

		if atLineStart {
			for _, ind := range indents {
				out.WriteString(ind)
			}
			atLineStart = false
		} else if spacedAfter(prevKind) {
			out.WriteString(" ")
		}

		out.WriteString(tok.Text)
		prevKind = tok.Kind

		if tok.Kind == token.NEWLINE || tok.Kind == token.NL {
			atLineStart = true
			prevKind = token.Kind(-1)
		}
	}
	return out.String(), nil
}
