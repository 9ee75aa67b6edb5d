// Package tokenizer implements the core state machine: a line-driven pull
// producer that consumes a LineSource and yields typed tokens, coordinating
// the indentation stack, the interpolated-string stack, and the contextual
// async/await resolver.
package tokenizer

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"toklex/fstring"
	"toklex/indent"
	"toklex/pattern"
	"toklex/token"
)

// ErrFinished is returned by Next once the pass has already produced its
// single ENDMARKER; callers must not call Next again after seeing it.
var ErrFinished = errors.New("tokenizer: pass already finished")

var blankOrComment = regexp.MustCompile(`^(?:#[^\r\n]*)?(?:\r?\n|\r)?$`)

// pendingString accumulates an in-progress multi-line string or f-string
// literal across physical lines.
type pendingString struct {
	term      *pattern.Terminator
	quote     string
	triple    bool
	isFString bool
	start     token.Position
	openText  string
	body      string
	segStart  token.Position
}

// Tokenizer is a single tokenization pass; it owns all of its state
// exclusively and shares nothing with any other concurrent pass.
type Tokenizer struct {
	cfg        Config
	lineSource LineSource

	lineNumber int
	parenDepth int
	indents    *indent.Stack
	fstrings   *fstring.Stack

	continued bool
	needCont  bool
	cont      *pendingString

	stashed *token.Token

	asyncDef       bool
	asyncDefIndent int
	asyncDefNL     bool

	out      []token.Token
	finished bool
}

// New creates a pass reading lines from src under the given grammar
// configuration.
func New(src LineSource, cfg Config) *Tokenizer {
	return &Tokenizer{
		cfg:        cfg,
		lineSource: src,
		indents:    indent.NewStack(),
		fstrings:   fstring.NewStack(),
	}
}

// Next returns the next token of the pass. After the token with
// Kind == token.ENDMARKER has been returned, every subsequent call returns
// ErrFinished.
func (t *Tokenizer) Next() (token.Token, error) {
	for len(t.out) == 0 {
		if t.finished {
			return token.Token{}, ErrFinished
		}
		if err := t.step(); err != nil {
			t.finished = true
			return token.Token{}, err
		}
	}
	tok := t.out[0]
	t.out = t.out[1:]
	if tok.Kind == token.ENDMARKER {
		t.finished = true
	}
	return tok, nil
}

func (t *Tokenizer) emit(tok token.Token) {
	t.flushStashed()
	t.out = append(t.out, tok)
}

func (t *Tokenizer) emitText(kind token.Kind, line string, start, end int) {
	t.emit(token.Token{
		Kind:  kind,
		Text:  line[start:end],
		Start: token.Position{Row: t.lineNumber, Col: start},
		End:   token.Position{Row: t.lineNumber, Col: end},
		Line:  line,
	})
}

func (t *Tokenizer) flushStashed() {
	if t.stashed != nil {
		t.out = append(t.out, *t.stashed)
		t.stashed = nil
	}
}

func advancePosition(start token.Position, spanned string) token.Position {
	row, col := start.Row, start.Col
	for i := 0; i < len(spanned); i++ {
		if spanned[i] == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return token.Position{Row: row, Col: col}
}

// step performs one unit of work: read at most one physical line from the
// line source and fully process whatever it contributes to the pass,
// leaving any resulting tokens queued in t.out. This is the resumable
// granularity of the pull producer: the only externally observable
// suspension point is the single lineSource call each step makes.
func (t *Tokenizer) step() error {
	line, ok := t.lineSource()
	t.lineNumber++

	switch {
	case t.cont != nil && !t.fstrings.InsideBraces():
		if !ok || line == "" {
			return newTokenError("EOF in multi-line string", t.cont.start)
		}
		return t.continueString(line)

	case t.parenDepth == 0 && !t.continued && !t.fstrings.InsideBraces():
		if !ok || line == "" {
			return t.finalize()
		}
		return t.startStatement(line)

	default:
		if !ok || line == "" {
			return newTokenError("EOF in multi-line statement", token.Position{Row: t.lineNumber, Col: 0})
		}
		t.continued = false
		return t.scanLine(line, 0)
	}
}

func (t *Tokenizer) finalize() error {
	t.flushStashed()
	n := t.indents.PopAll()
	row := t.lineNumber
	for i := 0; i < n; i++ {
		t.emit(token.Token{Kind: token.DEDENT, Start: token.Position{Row: row, Col: 0}, End: token.Position{Row: row, Col: 0}})
	}
	t.emit(token.Token{Kind: token.ENDMARKER, Start: token.Position{Row: row, Col: 0}, End: token.Position{Row: row, Col: 0}})
	return nil
}

func (t *Tokenizer) maybeClearAsyncDef(column int) {
	if t.asyncDef && t.asyncDefNL && column <= t.asyncDefIndent {
		t.asyncDef = false
		t.asyncDefNL = false
	}
}

// startStatement handles mode 2 of the per-line scan protocol: a fresh
// logical line at paren-depth zero, outside any continuation.
func (t *Tokenizer) startStatement(line string) error {
	lead := pattern.Whitespace.FindString(line)
	rest := line[len(lead):]

	if blankOrComment.MatchString(rest) {
		t.emitBlankOrComment(line, len(lead))
		return nil
	}

	t.flushStashed()

	column := indent.Column(lead)
	top := t.indents.Top()
	switch {
	case column > top:
		t.indents.Push(column)
		t.emit(token.Token{
			Kind: token.INDENT, Text: lead,
			Start: token.Position{Row: t.lineNumber, Col: 0},
			End:   token.Position{Row: t.lineNumber, Col: len(lead)},
			Line:  line,
		})
	case column < top:
		popped, ok := t.indents.PopTo(column)
		if !ok {
			return newIndentationError(token.Position{Row: t.lineNumber, Col: len(lead)}, line)
		}
		for i := 0; i < popped; i++ {
			t.emit(token.Token{
				Kind:  token.DEDENT,
				Start: token.Position{Row: t.lineNumber, Col: len(lead)},
				End:   token.Position{Row: t.lineNumber, Col: len(lead)},
				Line:  line,
			})
		}
		t.maybeClearAsyncDef(column)
	}

	return t.scanLine(line, len(lead))
}

func (t *Tokenizer) emitBlankOrComment(line string, pos int) {
	rest := line[pos:]
	if strings.HasPrefix(rest, "#") {
		m := pattern.Comment.FindString(rest)
		t.emitText(token.COMMENT, line, pos, pos+len(m))
		pos += len(m)
		rest = line[pos:]
	}
	if rest != "" {
		t.emitText(token.NL, line, pos, pos+len(rest))
	}
}

// scanLine performs the within-line scan described in §4.2, starting at
// byte offset pos, until the line is exhausted or a multi-line
// continuation begins (in which case t.cont is non-nil on return).
func (t *Tokenizer) scanLine(line string, pos int) error {
	for {
		lead := pattern.Whitespace.FindString(line[pos:])
		pos += len(lead)
		if pos >= len(line) {
			return nil
		}

		if t.fstrings.Depth() > 0 && !t.fstrings.InsideBraces() {
			frame := t.fstrings.Top()
			res := frame.Terminator.Scan(line, pos)
			switch res.Status {
			case pattern.StatusClosed:
				if res.LiteralEnd > pos {
					t.emitText(token.FSTRING_MIDDLE, line, pos, res.LiteralEnd)
				}
				t.fstrings.Pop()
				t.emitText(token.FSTRING_END, line, res.LiteralEnd, res.End)
				pos = res.End
				continue
			case pattern.StatusBraceOpen:
				if res.LiteralEnd > pos {
					t.emitText(token.FSTRING_MIDDLE, line, pos, res.LiteralEnd)
				}
				t.emitText(token.LBRACE, line, res.LiteralEnd, res.End)
				t.fstrings.EnterBraces()
				pos = res.End
				continue
			default:
				t.cont = &pendingString{
					term: frame.Terminator, quote: frame.Quote, triple: frame.Triple, isFString: true,
					start:    token.Position{Row: t.lineNumber, Col: pos},
					body:     line[pos:],
					segStart: token.Position{Row: t.lineNumber, Col: pos},
				}
				return nil
			}
		}

		rest := line[pos:]

		if rest[0] == '\\' {
			tail := rest[1:]
			if tail == "" || tail == "\n" || tail == "\r\n" || tail == "\r" {
				t.emitText(token.NL, line, pos, len(line))
				t.continued = true
				return nil
			}
		}

		if m := pattern.Comment.FindString(rest); m != "" {
			t.emitText(token.COMMENT, line, pos, pos+len(m))
			pos += len(m)
			continue
		}

		if m := pattern.TripleOpener.FindStringSubmatch(rest); m != nil {
			prefix, quote := pattern.OpenerPrefixAndQuote(pattern.TripleOpener, m)
			openEnd := pos + len(prefix) + len(quote)
			next, err := t.openString(prefix, quote, true, line, pos, openEnd)
			if err != nil {
				return err
			}
			if t.cont != nil {
				return nil
			}
			pos = next
			continue
		}

		if m := pattern.LineTerminator.FindString(rest); m != "" {
			kind := token.NL
			if t.parenDepth == 0 && !t.fstrings.InsideBraces() {
				kind = token.NEWLINE
			}
			if t.asyncDef {
				t.asyncDefNL = true
			}
			t.flushStashed()
			t.emitText(kind, line, pos, pos+len(m))
			pos += len(m)
			continue
		}

		if m := pattern.Number.FindString(rest); m != "" {
			t.emitText(token.NUMBER, line, pos, pos+len(m))
			pos += len(m)
			continue
		}

		if m := pattern.Operator.FindString(rest); m != "" {
			t.emitText(token.OP, line, pos, pos+len(m))
			pos += len(m)
			continue
		}

		if m := pattern.Bracket.FindString(rest); m != "" {
			switch m {
			case "(", "[", "{":
				t.parenDepth++
				t.emitText(token.OP, line, pos, pos+1)
			case ")", "]":
				t.parenDepth--
				t.emitText(token.OP, line, pos, pos+1)
			case "}":
				if t.fstrings.InsideBraces() && t.parenDepth == 0 {
					t.fstrings.ExitBraces()
					t.emitText(token.RBRACE, line, pos, pos+1)
				} else {
					t.parenDepth--
					t.emitText(token.OP, line, pos, pos+1)
				}
			}
			pos++
			continue
		}

		if m := pattern.Special.FindString(rest); m != "" {
			t.emitText(token.OP, line, pos, pos+len(m))
			pos += len(m)
			continue
		}

		if m := pattern.SingleOrDoubleOpener.FindStringSubmatch(rest); m != nil {
			prefix, quote := pattern.OpenerPrefixAndQuote(pattern.SingleOrDoubleOpener, m)
			openEnd := pos + len(prefix) + len(quote)
			next, err := t.openString(prefix, quote, false, line, pos, openEnd)
			if err != nil {
				return err
			}
			if t.cont != nil {
				return nil
			}
			pos = next
			continue
		}

		if m := pattern.MatchName(rest); m != "" {
			t.handleName(line, pos, pos+len(m))
			pos += len(m)
			continue
		}

		r, size := utf8.DecodeRuneInString(rest)
		if r == utf8.RuneError && size <= 1 {
			size = 1
		}
		t.emitText(token.ERRORTOKEN, line, pos, pos+size)
		pos += size
	}
}

func (t *Tokenizer) openString(prefix, quote string, triple bool, line string, openStart, openEnd int) (int, error) {
	term, ok := pattern.Lookup(prefix, quote)
	if !ok {
		term = &pattern.Terminator{Prefix: prefix, Quote: quote, Triple: triple, FString: pattern.IsFStringPrefix(prefix)}
	}
	isF := pattern.IsFStringPrefix(prefix)
	if isF {
		t.emitText(token.FSTRING_START, line, openStart, openEnd)
		t.fstrings.Push(&fstring.Frame{Terminator: term, Quote: quote, Triple: triple})
	}

	res := term.Scan(line, openEnd)
	switch res.Status {
	case pattern.StatusClosed:
		if isF {
			if res.LiteralEnd > openEnd {
				t.emitText(token.FSTRING_MIDDLE, line, openEnd, res.LiteralEnd)
			}
			t.fstrings.Pop()
			t.emitText(token.FSTRING_END, line, res.LiteralEnd, res.End)
		} else {
			t.emitText(token.STRING, line, openStart, res.End)
		}
		return res.End, nil

	case pattern.StatusBraceOpen:
		if res.LiteralEnd > openEnd {
			t.emitText(token.FSTRING_MIDDLE, line, openEnd, res.LiteralEnd)
		}
		t.emitText(token.LBRACE, line, res.LiteralEnd, res.End)
		t.fstrings.EnterBraces()
		return res.End, nil

	case pattern.StatusNeedsContinuation:
		t.needCont = true
		t.beginContinuation(term, quote, triple, isF, line, openStart, openEnd)
		return len(line), nil

	default:
		if triple {
			t.beginContinuation(term, quote, triple, isF, line, openStart, openEnd)
			return len(line), nil
		}
		if isF {
			t.fstrings.Pop()
		}
		t.emitText(token.ERRORTOKEN, line, openStart, res.End)
		return res.End, nil
	}
}

func (t *Tokenizer) beginContinuation(term *pattern.Terminator, quote string, triple, isF bool, line string, openStart, openEnd int) {
	t.cont = &pendingString{
		term: term, quote: quote, triple: triple, isFString: isF,
		start:    token.Position{Row: t.lineNumber, Col: openStart},
		openText: line[openStart:openEnd],
		body:     line[openEnd:],
		segStart: token.Position{Row: t.lineNumber, Col: openEnd},
	}
}

// continueString resumes a pending multi-line string once a new physical
// line has arrived, as mode 1 of the per-line scan protocol.
func (t *Tokenizer) continueString(line string) error {
	c := t.cont
	bodyStart := len(c.body)
	c.body += line
	res := c.term.Scan(c.body, 0)

	switch res.Status {
	case pattern.StatusClosed:
		local := res.End - bodyStart
		if c.isFString {
			literal := c.body[:res.LiteralEnd]
			literalEndPos := advancePosition(c.segStart, literal)
			if literal != "" {
				t.emit(token.Token{Kind: token.FSTRING_MIDDLE, Text: literal, Start: c.segStart, End: literalEndPos, Line: c.body})
			}
			t.fstrings.Pop()
			t.emit(token.Token{
				Kind: token.FSTRING_END, Text: c.body[res.LiteralEnd:res.End],
				Start: literalEndPos, End: advancePosition(c.segStart, c.body[:res.End]), Line: c.body,
			})
		} else {
			fullText := c.openText + c.body[:res.End]
			t.emit(token.Token{Kind: token.STRING, Text: fullText, Start: c.start, End: advancePosition(c.segStart, c.body[:res.End]), Line: c.body})
		}
		t.cont = nil
		t.needCont = false
		return t.scanLine(line, local)

	case pattern.StatusBraceOpen:
		local := res.End - bodyStart
		literal := c.body[:res.LiteralEnd]
		literalEndPos := advancePosition(c.segStart, literal)
		if literal != "" {
			t.emit(token.Token{Kind: token.FSTRING_MIDDLE, Text: literal, Start: c.segStart, End: literalEndPos, Line: c.body})
		}
		t.emit(token.Token{Kind: token.LBRACE, Text: "{", Start: literalEndPos, End: advancePosition(literalEndPos, "{"), Line: c.body})
		t.fstrings.EnterBraces()
		t.cont = nil
		return t.scanLine(line, local)

	case pattern.StatusNeedsContinuation:
		return nil

	default:
		if c.triple {
			return nil
		}
		fullText := c.openText + c.body
		t.emit(token.Token{Kind: token.ERRORTOKEN, Text: fullText, Start: c.start, End: advancePosition(c.start, fullText), Line: c.body})
		t.cont = nil
		t.needCont = false
		return nil
	}
}

func (t *Tokenizer) handleName(line string, start, end int) {
	text := line[start:end]
	tok := token.Token{
		Kind: token.NAME, Text: text,
		Start: token.Position{Row: t.lineNumber, Col: start},
		End:   token.Position{Row: t.lineNumber, Col: end},
		Line:  line,
	}
	t.resolveContextualKeyword(tok)
}

// resolveContextualKeyword implements §4.3: async/await are only
// keywords at specific positions unless forced unconditional.
func (t *Tokenizer) resolveContextualKeyword(tok token.Token) {
	if (t.cfg.AsyncKeywords || t.asyncDef) && (tok.Text == "async" || tok.Text == "await") {
		if tok.Text == "async" {
			tok.Kind = token.ASYNC
		} else {
			tok.Kind = token.AWAIT
		}
		t.emit(tok)
		return
	}

	if t.stashed != nil {
		prev := *t.stashed
		t.stashed = nil
		if tok.Text == "def" || tok.Text == "for" {
			prev.Kind = token.ASYNC
			t.emit(prev)
			if tok.Text == "def" {
				t.asyncDef = true
				t.asyncDefIndent = t.indents.Top()
				t.asyncDefNL = false
			}
			t.emit(tok)
			return
		}
		t.emit(prev)
	}

	if tok.Text == "async" && t.stashed == nil {
		stashedCopy := tok
		t.stashed = &stashedCopy
		return
	}

	t.emit(tok)
}
