package pattern

import "testing"

func TestNumberMatches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"0x1F_2a", "0x1F_2a"},
		{"0b1010", "0b1010"},
		{"0o17", "0o17"},
		{"123_456", "123_456"},
		{"1.5", "1.5"},
		{".5", ".5"},
		{"1.", "1."},
		{"1e10", "1e10"},
		{"1.5e-10", "1.5e-10"},
		{"3j", "3j"},
		{"3.5j", "3.5j"},
	}
	for _, c := range cases {
		got := Number.FindString(c.in)
		if got != c.want {
			t.Errorf("Number.FindString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOperatorLongestFirst(t *testing.T) {
	cases := map[string]string{
		"**=": "**=",
		"**":  "**",
		"//=": "//=",
		"==":  "==",
		"=":   "=",
		"<<=": "<<=",
		"<<":  "<<",
	}
	for in, want := range cases {
		got := Operator.FindString(in)
		if got != want {
			t.Errorf("Operator.FindString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTripleOpenerPicksLongestPrefix(t *testing.T) {
	m := TripleOpener.FindStringSubmatch(`rb"""`)
	if m == nil {
		t.Fatal("expected TripleOpener to match")
	}
	prefix, quote := OpenerPrefixAndQuote(TripleOpener, m)
	if prefix != "rb" || quote != `"""` {
		t.Errorf("got prefix=%q quote=%q, want prefix=%q quote=%q", prefix, quote, "rb", `"""`)
	}
}

func TestSingleOrDoubleOpenerFString(t *testing.T) {
	m := SingleOrDoubleOpener.FindStringSubmatch(`f"`)
	if m == nil {
		t.Fatal("expected SingleOrDoubleOpener to match")
	}
	prefix, quote := OpenerPrefixAndQuote(SingleOrDoubleOpener, m)
	if prefix != "f" || quote != `"` {
		t.Errorf("got prefix=%q quote=%q", prefix, quote)
	}
	if !IsFStringPrefix(prefix) {
		t.Errorf("IsFStringPrefix(%q) = false, want true", prefix)
	}
}

func TestTerminatorPlainString(t *testing.T) {
	term, ok := Lookup("", `"`)
	if !ok {
		t.Fatal("expected terminator for (\"\", \")")
	}
	res := term.Scan(`hello"`, 0)
	if res.Status != StatusClosed {
		t.Fatalf("status = %v, want StatusClosed", res.Status)
	}
	if res.LiteralEnd != 5 || res.End != 6 {
		t.Errorf("LiteralEnd=%d End=%d, want 5,6", res.LiteralEnd, res.End)
	}
}

func TestTerminatorFStringBraceVsDoubled(t *testing.T) {
	term, ok := Lookup("f", `"`)
	if !ok {
		t.Fatal("expected f-string terminator")
	}
	res := term.Scan(`a{{b}c`, 0)
	if res.Status != StatusUnterminated {
		t.Fatalf("doubled brace should not open a brace region, got status %v", res.Status)
	}
	res = term.Scan(`a{b`, 0)
	if res.Status != StatusBraceOpen {
		t.Fatalf("status = %v, want StatusBraceOpen", res.Status)
	}
	if res.LiteralEnd != 1 || res.End != 2 {
		t.Errorf("LiteralEnd=%d End=%d, want 1,2", res.LiteralEnd, res.End)
	}
}

func TestTerminatorBackslashNewlineContinuation(t *testing.T) {
	term, ok := Lookup("", `'`)
	if !ok {
		t.Fatal("expected terminator")
	}
	res := term.Scan("abc\\\n", 0)
	if res.Status != StatusNeedsContinuation {
		t.Fatalf("status = %v, want StatusNeedsContinuation", res.Status)
	}
}

func TestTerminatorTripleSpansEmbeddedNewline(t *testing.T) {
	term, ok := Lookup("", `"""`)
	if !ok {
		t.Fatal("expected triple terminator")
	}
	res := term.Scan("line one\nline two\"\"\"", 0)
	if res.Status != StatusClosed {
		t.Fatalf("status = %v, want StatusClosed", res.Status)
	}
}

func TestMatchNameASCII(t *testing.T) {
	cases := []struct{ in, want string }{
		{"x = 1", "x"},
		{"_private", "_private"},
		{"name2(", "name2"},
		{"1abc", ""},
		{"(x)", ""},
	}
	for _, c := range cases {
		if got := MatchName(c.in); got != c.want {
			t.Errorf("MatchName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMatchNameUnicode(t *testing.T) {
	if got := MatchName("café = 1"); got != "café" {
		t.Errorf("MatchName(unicode) = %q, want %q", got, "café")
	}
	if got := MatchName("naïve_ok more"); got != "naïve_ok" {
		t.Errorf("MatchName(unicode with underscore) = %q, want %q", got, "naïve_ok")
	}
}
