// Package token defines the closed set of lexical token kinds produced by
// the tokenizer, along with the position and span types used to report
// exactly where in the source each token came from.
package token

import "fmt"

// Kind is the type of a token. The set is closed: every token the
// tokenizer emits carries one of these values.
type Kind int

const (
	NAME Kind = iota
	NUMBER
	STRING
	FSTRING_START
	FSTRING_MIDDLE
	FSTRING_END
	LBRACE
	RBRACE
	OP
	NEWLINE
	NL
	INDENT
	DEDENT
	COMMENT
	ENDMARKER
	ERRORTOKEN
	ASYNC
	AWAIT
)

var kindNames = [...]string{
	"NAME",
	"NUMBER",
	"STRING",
	"FSTRING_START",
	"FSTRING_MIDDLE",
	"FSTRING_END",
	"LBRACE",
	"RBRACE",
	"OP",
	"NEWLINE",
	"NL",
	"INDENT",
	"DEDENT",
	"COMMENT",
	"ENDMARKER",
	"ERRORTOKEN",
	"ASYNC",
	"AWAIT",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Position is a 1-based row, 0-based column pair, measured in code units
// of the decoded text.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Before reports whether p sorts strictly before o in (row, col) order.
func (p Position) Before(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Token is the five-tuple described by the data model: kind, exact source
// text, start/end position (end exclusive), and the full physical line the
// token was found on.
type Token struct {
	Kind  Kind
	Text  string
	Start Position
	End   Position
	Line  string
}

func (t Token) String() string {
	return fmt.Sprintf("%-15s %-12q %s-%s", t.Kind, t.Text, t.Start, t.End)
}

// Partial is the degenerate two-tuple form accepted by untokenize.Compat:
// a token projected down to just its kind and text.
type Partial struct {
	Kind Kind
	Text string
}
