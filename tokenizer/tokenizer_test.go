package tokenizer

import (
	"testing"

	"toklex/token"
)

type kindText struct {
	kind token.Kind
	text string
}

func collect(t *testing.T, tok *Tokenizer) []kindText {
	t.Helper()
	var got []kindText
	for {
		tk, err := tok.Next()
		if err != nil {
			t.Fatalf("unexpected tokenizer error: %v", err)
		}
		got = append(got, kindText{tk.Kind, tk.Text})
		if tk.Kind == token.ENDMARKER {
			break
		}
	}
	return got
}

func assertKinds(t *testing.T, src string, want []kindText) {
	t.Helper()
	tok := New(LinesOf(src), Config{})
	got := collect(t, tok)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScenarioPass(t *testing.T) {
	assertKinds(t, "pass\n", []kindText{
		{token.NAME, "pass"},
		{token.NEWLINE, "\n"},
		{token.ENDMARKER, ""},
	})
}

func TestScenarioIndentDedent(t *testing.T) {
	assertKinds(t, "    x\n", []kindText{
		{token.INDENT, "    "},
		{token.NAME, "x"},
		{token.NEWLINE, "\n"},
		{token.DEDENT, ""},
		{token.ENDMARKER, ""},
	})
}

func TestScenarioFString(t *testing.T) {
	assertKinds(t, "f\"a{1+2}b\"\n", []kindText{
		{token.FSTRING_START, "f\""},
		{token.FSTRING_MIDDLE, "a"},
		{token.LBRACE, "{"},
		{token.NUMBER, "1"},
		{token.OP, "+"},
		{token.NUMBER, "2"},
		{token.RBRACE, "}"},
		{token.FSTRING_MIDDLE, "b"},
		{token.FSTRING_END, "\""},
		{token.NEWLINE, "\n"},
		{token.ENDMARKER, ""},
	})
}

func TestScenarioAsyncAwait(t *testing.T) {
	assertKinds(t, "async def f():\n  await g()\n", []kindText{
		{token.ASYNC, "async"},
		{token.NAME, "def"},
		{token.NAME, "f"},
		{token.OP, "("},
		{token.OP, ")"},
		{token.OP, ":"},
		{token.NEWLINE, "\n"},
		{token.INDENT, "  "},
		{token.AWAIT, "await"},
		{token.NAME, "g"},
		{token.OP, "("},
		{token.OP, ")"},
		{token.NEWLINE, "\n"},
		{token.DEDENT, ""},
		{token.ENDMARKER, ""},
	})
}

func TestScenarioContinuationInParens(t *testing.T) {
	assertKinds(t, "a = (\n  1\n)\n", []kindText{
		{token.NAME, "a"},
		{token.OP, "="},
		{token.OP, "("},
		{token.NL, "\n"},
		{token.NUMBER, "1"},
		{token.NL, "\n"},
		{token.OP, ")"},
		{token.NEWLINE, "\n"},
		{token.ENDMARKER, ""},
	})
}

func TestScenarioCommentOnlyLine(t *testing.T) {
	assertKinds(t, "# hi\n", []kindText{
		{token.COMMENT, "# hi"},
		{token.NL, "\n"},
		{token.ENDMARKER, ""},
	})
}

func TestAsyncNotBeforeDefIsPlainName(t *testing.T) {
	assertKinds(t, "async = 1\n", []kindText{
		{token.NAME, "async"},
		{token.OP, "="},
		{token.NUMBER, "1"},
		{token.NEWLINE, "\n"},
		{token.ENDMARKER, ""},
	})
}

func TestSingleEndmarkerIsLast(t *testing.T) {
	tok := New(LinesOf("x\n"), Config{})
	got := collect(t, tok)
	if got[len(got)-1].kind != token.ENDMARKER {
		t.Fatal("last token must be ENDMARKER")
	}
	if _, err := tok.Next(); err != ErrFinished {
		t.Fatalf("Next() after ENDMARKER = %v, want ErrFinished", err)
	}
}

func TestDedentCountMatchesIndents(t *testing.T) {
	src := "if a:\n  if b:\n    x\n  y\nz\n"
	tok := New(LinesOf(src), Config{})
	got := collect(t, tok)
	indents, dedents := 0, 0
	for _, k := range got {
		switch k.kind {
		case token.INDENT:
			indents++
		case token.DEDENT:
			dedents++
		}
	}
	if indents != dedents {
		t.Errorf("INDENT count %d != DEDENT count %d", indents, dedents)
	}
}

func TestIndentationErrorOnBadDedent(t *testing.T) {
	src := "if a:\n   x\n  y\n"
	tok := New(LinesOf(src), Config{})
	var err error
	for {
		_, err = tok.Next()
		if err != nil {
			break
		}
	}
	if _, ok := err.(*IndentationError); !ok {
		t.Fatalf("err = %v (%T), want *IndentationError", err, err)
	}
}

func TestEOFInMultilineStringIsTokenError(t *testing.T) {
	tok := New(LinesOf("x = '''abc\n"), Config{})
	var err error
	for {
		_, err = tok.Next()
		if err != nil {
			break
		}
	}
	te, ok := err.(*TokenError)
	if !ok {
		t.Fatalf("err = %v (%T), want *TokenError", err, err)
	}
	if te.Message != "EOF in multi-line string" {
		t.Errorf("message = %q", te.Message)
	}
}

func TestMultilineTripleStringAcrossLines(t *testing.T) {
	assertKinds(t, "x = '''a\nb'''\n", []kindText{
		{token.NAME, "x"},
		{token.OP, "="},
		{token.STRING, "'''a\nb'''"},
		{token.NEWLINE, "\n"},
		{token.ENDMARKER, ""},
	})
}
