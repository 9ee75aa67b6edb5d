package encoding

import "testing"

func linesOf(lines ...string) func() []byte {
	i := 0
	return func() []byte {
		if i >= len(lines) {
			return nil
		}
		l := lines[i]
		i++
		return []byte(l)
	}
}

func TestDetectDefaultUTF8(t *testing.T) {
	name, consumed, err := Detect(linesOf("x = 1\n", "y = 2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "utf-8" {
		t.Errorf("name = %q, want utf-8", name)
	}
	if len(consumed) != 1 {
		t.Errorf("should only consume the first line when it is not blank/comment")
	}
}

func TestDetectBOM(t *testing.T) {
	first := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1\n")...)
	name, _, err := Detect(linesOf(string(first)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "utf-8-sig" {
		t.Errorf("name = %q, want utf-8-sig", name)
	}
}

func TestDetectCodingCookieFirstLine(t *testing.T) {
	name, _, err := Detect(linesOf("# -*- coding: iso-8859-1 -*-\n", "x = 1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "iso-8859-1" {
		t.Errorf("name = %q, want iso-8859-1", name)
	}
}

func TestDetectCodingCookieSecondLine(t *testing.T) {
	name, consumed, err := Detect(linesOf("#!/usr/bin/env python\n", "# coding=utf-8\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "utf-8" {
		t.Errorf("name = %q, want utf-8", name)
	}
	if len(consumed) != 2 {
		t.Errorf("should have consumed both scanned lines")
	}
}

func TestDetectUnknownEncodingFails(t *testing.T) {
	_, _, err := Detect(linesOf("# coding: bogus-7\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown encoding name")
	}
}

func TestDetectBOMConflictsWithCookie(t *testing.T) {
	first := append([]byte{0xEF, 0xBB, 0xBF}, []byte("# coding: iso-8859-1\n")...)
	_, _, err := Detect(linesOf(string(first)))
	if err == nil {
		t.Fatal("expected an error when BOM and cookie disagree")
	}
}
