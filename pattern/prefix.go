package pattern

import "strings"

// StringPrefixes are the case-insensitive raw/bytes/unicode string prefix
// spellings recognized ahead of a quote, excluding f-strings. This mirrors
// CPython's tokenizer _strprefixes set.
var StringPrefixes = []string{
	"", "r", "rb", "rB", "R", "Rb", "RB", "b", "br", "bR", "B", "Br", "BR",
	"u", "U", "ur", "uR", "Ur", "UR",
}

// FStringPrefixes are the prefix spellings that begin an interpolated
// string (always containing an 'f'), mirroring _fstring_prefixes.
var FStringPrefixes = []string{
	"rf", "rF", "Rf", "RF", "f", "fr", "fR", "F", "Fr", "FR",
}

// IsFStringPrefix reports whether prefix (as matched before a quote)
// introduces an interpolated string rather than a plain one.
func IsFStringPrefix(prefix string) bool {
	for _, p := range FStringPrefixes {
		if strings.EqualFold(p, prefix) {
			return true
		}
	}
	return false
}
