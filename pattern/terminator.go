package pattern

// Status classifies how far a Terminator.Scan got before running out of
// text to look at.
type Status int

const (
	// StatusUnterminated means the scan reached the end of the supplied
	// text without finding a terminator; the caller must fetch more text
	// (another physical line) and retry from the start of the combined
	// buffer.
	StatusUnterminated Status = iota
	// StatusClosed means the closing quote was found.
	StatusClosed
	// StatusBraceOpen means an f-string literal region ended at an
	// unescaped single '{' (not a doubled '{{').
	StatusBraceOpen
	// StatusNeedsContinuation means a non-triple string ended in a
	// backslash-newline: the string is not yet closed and must be
	// continued, verbatim, on the next physical line.
	StatusNeedsContinuation
	// StatusBrokenNewline means a non-triple string hit a bare physical
	// newline with no preceding backslash: structurally invalid.
	StatusBrokenNewline
)

// TermResult is the outcome of one Terminator.Scan call.
type TermResult struct {
	Status Status
	// End is the offset just past the consumed terminator (closing quote
	// text, or the brace for StatusBraceOpen), valid when Status is
	// StatusClosed or StatusBraceOpen. For the other statuses it is the
	// offset the caller should resume accumulating from.
	End int
	// LiteralEnd is the offset where the literal text portion ends,
	// exclusive of the terminator itself.
	LiteralEnd int
}

// Terminator recognizes the close of a string or f-string body that was
// opened with a given prefix and quote style. It replaces what the
// reference grammar expresses as a lookahead-bearing regex: RE2 cannot
// express "stop at '{' unless it is doubled" or "stop at the triple quote
// without swallowing a boundary-straddling pair of quotes" directly, so
// this performs the equivalent escape-aware, doubled-delimiter-aware scan
// by hand, one rune at a time.
type Terminator struct {
	Prefix  string
	Quote   string // "'", `"`, "'''", or `"""`
	Triple  bool
	FString bool
}

// Scan looks for the terminator starting at byte offset pos in s. s may
// span multiple physical lines already joined with '\n', as happens while
// continuing a multi-line string.
func (t *Terminator) Scan(s string, pos int) TermResult {
	n := len(s)
	i := pos
	for i < n {
		c := s[i]
		if c == '\\' {
			if i+1 >= n {
				break
			}
			if s[i+1] == '\n' {
				if !t.Triple && i+2 >= n {
					return TermResult{Status: StatusNeedsContinuation, End: i + 2, LiteralEnd: i + 2}
				}
				i += 2
				continue
			}
			i += 2
			continue
		}
		if !t.Triple && c == '\n' {
			return TermResult{Status: StatusBrokenNewline, End: i, LiteralEnd: i}
		}
		if t.FString && c == '{' {
			if i+1 < n && s[i+1] == '{' {
				i += 2
				continue
			}
			return TermResult{Status: StatusBraceOpen, End: i + 1, LiteralEnd: i}
		}
		if t.Triple {
			if i+3 <= n && s[i:i+3] == t.Quote {
				return TermResult{Status: StatusClosed, End: i + 3, LiteralEnd: i}
			}
		} else if c == t.Quote[0] {
			return TermResult{Status: StatusClosed, End: i + 1, LiteralEnd: i}
		}
		i++
	}
	return TermResult{Status: StatusUnterminated, End: n, LiteralEnd: n}
}

// Terminators is the dispatch table from (prefix, quote) to the Terminator
// that closes it, built once at init from the prefix lists and the four
// quote styles and shared read-only across passes.
var Terminators = buildTerminators()

func buildTerminators() map[string]*Terminator {
	quotes := []struct {
		text   string
		triple bool
	}{
		{`'`, false}, {`"`, false}, {`'''`, true}, {`"""`, true},
	}
	table := make(map[string]*Terminator)
	for _, p := range StringPrefixes {
		for _, q := range quotes {
			table[terminatorKey(p, q.text)] = &Terminator{Prefix: p, Quote: q.text, Triple: q.triple}
		}
	}
	for _, p := range FStringPrefixes {
		for _, q := range quotes {
			table[terminatorKey(p, q.text)] = &Terminator{Prefix: p, Quote: q.text, Triple: q.triple, FString: true}
		}
	}
	return table
}

func terminatorKey(prefix, quote string) string {
	return prefix + "\x00" + quote
}

// Lookup finds the terminator registered for a (prefix, quote) pair, as
// produced by TripleOpener or SingleOrDoubleOpener.
func Lookup(prefix, quote string) (*Terminator, bool) {
	t, ok := Terminators[terminatorKey(prefix, quote)]
	return t, ok
}
