package pattern

import (
	"regexp"
	"sort"
)

// prefixAlternation builds a `|`-joined, longest-first alternation of the
// given prefixes, quoted for literal use in a regexp. Longest-first matters
// because Go's regexp alternation is leftmost-first, not leftmost-longest:
// without the ordering, prefix "r" would win over "rb" and the scanner
// would stop one rune short of the real opener.
func prefixAlternation(prefixes []string) string {
	sorted := make([]string, len(prefixes))
	copy(sorted, prefixes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	out := ""
	for i, p := range sorted {
		if i > 0 {
			out += "|"
		}
		out += regexp.QuoteMeta(p)
	}
	return out
}

func allPrefixes() []string {
	all := make([]string, 0, len(StringPrefixes)+len(FStringPrefixes))
	all = append(all, StringPrefixes...)
	all = append(all, FStringPrefixes...)
	return all
}

func tripleOpenerGroup() string {
	return `(?P<tqprefix>` + prefixAlternation(allPrefixes()) + `)(?P<tqquote>'''|""")`
}

func singleOrDoubleOpenerGroup() string {
	return `(?P<sqprefix>` + prefixAlternation(allPrefixes()) + `)(?P<sqquote>'|")`
}

// TripleOpener recognizes a string prefix followed by a triple quote.
var TripleOpener = regexp.MustCompile(`^` + tripleOpenerGroup())

// SingleOrDoubleOpener recognizes a string prefix followed by a single or
// double quote (a one-line or continued string, never triple-quoted).
var SingleOrDoubleOpener = regexp.MustCompile(`^` + singleOrDoubleOpenerGroup())

// OpenerPrefixAndQuote extracts the matched prefix and quote text from a
// TripleOpener or SingleOrDoubleOpener match, given the regex and its
// submatch slice.
func OpenerPrefixAndQuote(re *regexp.Regexp, match []string) (prefix, quote string) {
	prefixIdx := re.SubexpIndex("tqprefix")
	quoteIdx := re.SubexpIndex("tqquote")
	if prefixIdx < 0 {
		prefixIdx = re.SubexpIndex("sqprefix")
		quoteIdx = re.SubexpIndex("sqquote")
	}
	if prefixIdx < 0 || prefixIdx >= len(match) || quoteIdx < 0 || quoteIdx >= len(match) {
		return "", ""
	}
	return match[prefixIdx], match[quoteIdx]
}
