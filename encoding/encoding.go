// Package encoding detects the source encoding of a byte stream the way
// the tokenizer's encoding cookie does: a leading UTF-8 byte-order mark,
// and/or a "coding: <name>" comment on one of the first two lines.
package encoding

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)
var blankLine = regexp.MustCompile(`^[ \t\f]*(?:#.*)?$`)

// Error is the syntax-error-kind failure the detector raises for an
// unrecognized or contradictory encoding declaration.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Detect reads up to two raw byte lines from next (which returns nil at
// EOF) to determine the source encoding. It returns the normalized
// encoding name and the raw lines it consumed (the first with any leading
// BOM removed), so the caller can re-decode them along with the rest of
// the stream.
func Detect(next func() []byte) (name string, consumed [][]byte, err error) {
	first := next()
	hasBOM := false
	if bytes.HasPrefix(first, bom) {
		hasBOM = true
		first = first[len(bom):]
	}
	consumed = append(consumed, first)

	cookieName, ok := matchCookie(first)
	if !ok && blankLine.Match(bytes.TrimRight(first, "\r\n")) {
		second := next()
		consumed = append(consumed, second)
		cookieName, ok = matchCookie(second)
	}

	if !ok {
		if hasBOM {
			return "utf-8-sig", consumed, nil
		}
		return "utf-8", consumed, nil
	}

	normalized, ok := normalize(cookieName)
	if !ok {
		return "", consumed, &Error{Message: fmt.Sprintf("unknown encoding: %s", cookieName)}
	}
	if hasBOM && normalized != "utf-8" {
		return "", consumed, &Error{Message: fmt.Sprintf("encoding problem: %s with BOM", cookieName)}
	}
	if hasBOM {
		return "utf-8-sig", consumed, nil
	}
	return normalized, consumed, nil
}

func matchCookie(line []byte) (string, bool) {
	m := codingCookie.FindSubmatch(line)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// knownEncodings is the small set of codec names the detector recognizes.
// The reference implementation defers to Python's codec registry, which
// has no Go equivalent; this module's scope is lexical, not a character
// encoding registry, so it recognizes only the common names an
// encoding-declaration comment plausibly names.
var knownEncodings = map[string]bool{
	"utf-8": true, "ascii": true, "us-ascii": true, "iso-8859-1": true,
	"iso-8859-2": true, "iso-8859-15": true, "cp1252": true, "windows-1252": true,
	"utf-16": true, "utf-16-le": true, "utf-16-be": true,
	"utf-32": true, "utf-32-le": true, "utf-32-be": true,
}

// normalize implements the reference _get_normal_name rule: first twelve
// characters, lowercased, underscores turned to hyphens, with the
// well-known utf-8 and latin-1 spelling families collapsed.
func normalize(raw string) (string, bool) {
	s := raw
	if len(s) > 12 {
		s = s[:12]
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")

	switch {
	case s == "utf-8" || strings.HasPrefix(s, "utf-8-"):
		s = "utf-8"
	case s == "latin-1" || s == "iso-8859-1" || s == "iso-latin-1",
		strings.HasPrefix(s, "latin-1-"), strings.HasPrefix(s, "iso-8859-1-"), strings.HasPrefix(s, "iso-latin-1-"):
		s = "iso-8859-1"
	}
	if !knownEncodings[s] {
		return "", false
	}
	return s, true
}
