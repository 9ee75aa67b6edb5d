package fstring

import "testing"

func TestInsideBracesReflectsInnermostFrame(t *testing.T) {
	s := NewStack()
	if s.InsideBraces() {
		t.Fatal("empty stack should report not inside braces")
	}
	outer := &Frame{Quote: `"`}
	s.Push(outer)
	if s.InsideBraces() {
		t.Fatal("fresh frame should start in literal mode")
	}
	s.EnterBraces()
	if !s.InsideBraces() {
		t.Fatal("EnterBraces should switch innermost frame to expression mode")
	}

	inner := &Frame{Quote: `'`}
	s.Push(inner)
	if s.InsideBraces() {
		t.Fatal("a fresh nested frame opened inside the outer expression must start in literal mode of its own")
	}
	s.Pop()
	if !s.InsideBraces() {
		t.Fatal("popping the nested frame should restore the outer frame's own brace state")
	}
}

func TestExitBracesReturnsToLiteralMode(t *testing.T) {
	s := NewStack()
	s.Push(&Frame{Quote: `"`})
	s.EnterBraces()
	if !s.InsideBraces() {
		t.Fatal("expected expression mode after EnterBraces")
	}
	s.ExitBraces()
	if s.InsideBraces() {
		t.Fatal("expected literal mode after ExitBraces")
	}
}
