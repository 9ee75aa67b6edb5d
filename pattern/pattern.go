// Package pattern holds the compiled, longest-match recognizers the
// tokenizer core dispatches through: whitespace, comments, numbers,
// operators/brackets/special characters, names, string-prefix openers, and
// per-(prefix,quote) string-body terminators.
//
// Go's regexp package (RE2) has no lookahead or lookbehind, so the two
// places the reference grammar leans on negative lookahead — rejecting `{{`
// as a brace terminator, and not stopping a triple-quote scan on two
// quotes — are implemented by hand in terminator.go instead of as regexes.
// Everything else here is an ordinary regexp.Regexp, built once at package
// init and shared read-only, matching the pattern table described for the
// tokenizer.
package pattern

import (
	"regexp"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// Whitespace matches a run of spaces, tabs, and form-feeds.
var Whitespace = regexp.MustCompile(`^[ \f\t]*`)

// Comment matches a '#' through end of line, exclusive of the terminator.
var Comment = regexp.MustCompile(`^#[^\r\n]*`)

// LineTerminator matches a line ending, normalizing CRLF and bare LF/CR.
var LineTerminator = regexp.MustCompile(`^\r?\n|^\r`)

const (
	groupHex    = `0[xX](?:_?[0-9a-fA-F])+`
	groupBin    = `0[bB](?:_?[01])+`
	groupOct    = `0[oO](?:_?[0-7])+`
	groupDec    = `(?:0(?:_?0)*|[1-9](?:_?[0-9])*)`
	groupExp    = `[eE][-+]?[0-9](?:_?[0-9])*`
	groupPoint  = `(?:[0-9](?:_?[0-9])*\.(?:[0-9](?:_?[0-9])*)?|\.[0-9](?:_?[0-9])*)`
	groupIntNum = groupHex + `|` + groupBin + `|` + groupOct + `|` + groupDec
)

// Number matches the union of binary, hex, octal, decimal, point-float,
// exponent-float and imaginary literals. The alternatives are tried as
// exponent-float, point-float, integer (hex, binary, octal, decimal), then
// a digit run with a 'j' suffix, so a plain integer never swallows a
// following '.' that starts a point-float.
var Number = regexp.MustCompile(`^(?:` +
	`(?:` + groupPoint + `|` + groupDec + `)` + groupExp + `[jJ]?` + `|` +
	groupPoint + `[jJ]?` + `|` +
	groupIntNum + `[jJ]?` + `|` +
	`[0-9](?:_?[0-9])*[jJ]` +
	`)`)

// Operator matches the fixed operator set, longer operators ordered before
// their prefixes so Go's leftmost-first alternation (RE2 has no leftmost-
// longest mode across alternatives) never truncates a multi-character
// operator to its prefix.
var Operator = regexp.MustCompile(`^(?:` +
	`\*\*=|\*\*|\/\/=|\/\/|<<=|<<|>>=|>>|<>|!=|<=|>=|==|->|:=|` +
	`\+=|-=|\*=|/=|%=|&=|\|=|\^=|@=|~|` +
	`\+|-|\*|/|%|@|&|\||\^|<|>|=` +
	`)`)

// Bracket matches a single bracket character.
var Bracket = regexp.MustCompile("^[()\\[\\]{}]")

// Special matches a single punctuation character not covered by Operator
// or Bracket, or a line terminator.
var Special = regexp.MustCompile("^(?:[:;.,`]|\r?\n|\r)")

// MatchName reports the longest prefix of s that is a valid Name: a rune
// satisfying xid.Start (or '_'), followed by zero or more runes each
// satisfying xid.Continue (or '_'). This is the same Unicode
// identifier-start/continue split vippsas-sqlcode's scanner uses xid for,
// extended here beyond ASCII rather than the reference tokenizer's
// ASCII-only [a-zA-Z_][a-zA-Z0-9_]* rule, per the broadened Name
// production.
func MatchName(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !(r == '_' || xid.Start(r)) {
		return ""
	}
	end := size
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if size == 0 || !(r == '_' || xid.Continue(r)) {
			break
		}
		end += size
	}
	return s[:end]
}

// namePrefixApprox is a regexp approximation of MatchName's rune classes,
// for PseudoToken's alternation only; MatchName itself is the authoritative
// Name recognizer the tokenizer core dispatches through, since RE2 has no
// general Unicode XID_Start/XID_Continue class to alternate against.
const namePrefixApprox = `[\pL_][\pL\pN_]*`

// PseudoToken tries, in order, the extras (line continuation, comment,
// triple-quote opener), number, operator/bracket/special, string opener,
// and name productions, mirroring the reference PseudoToken alternation
// order so earlier, more specific productions win ties.
var PseudoToken = regexp.MustCompile(`^(?:` +
	`\\\r?\n|` + // explicit line continuation
	Comment.String()[1:] + `|` +
	tripleOpenerGroup() + `|` +
	Number.String()[1:] + `|` +
	Operator.String()[1:] + `|` +
	Bracket.String()[1:] + `|` +
	Special.String()[1:] + `|` +
	singleOrDoubleOpenerGroup() + `|` +
	namePrefixApprox +
	`)`)
