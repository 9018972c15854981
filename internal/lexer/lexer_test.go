package lexer

import "testing"

func newLexer(src string) *Lexer {
	return New(src, "test.adv", 0, nil)
}

func TestSkipWhitespacesLineComment(t *testing.T) {
	l := newLexer("  ; comment\nA")
	c, err := l.NextChar()
	if err != nil {
		t.Fatal(err)
	}
	if c != 'A' {
		t.Fatalf("NextChar() = %q, want 'A'", c)
	}
}

func TestSkipWhitespacesSlashSlash(t *testing.T) {
	l := newLexer("// comment\nA")
	c, err := l.NextChar()
	if err != nil {
		t.Fatal(err)
	}
	if c != 'A' {
		t.Fatalf("NextChar() = %q, want 'A'", c)
	}
}

func TestSkipWhitespacesBlockComment(t *testing.T) {
	l := newLexer("/* a\nb */A")
	c, err := l.NextChar()
	if err != nil {
		t.Fatal(err)
	}
	if c != 'A' {
		t.Fatalf("NextChar() = %q, want 'A'", c)
	}
	if l.Line != 2 {
		t.Fatalf("Line = %d, want 2", l.Line)
	}
}

func TestSkipWhitespacesUnfinishedComment(t *testing.T) {
	l := newLexer("/* never closed")
	if _, err := l.NextChar(); err == nil {
		t.Fatal("expected error for unfinished comment")
	}
}

func TestSkipWhitespacesCJKSpace(t *testing.T) {
	l := newLexer("\xe3\x80\x80A")
	c, err := l.NextChar()
	if err != nil {
		t.Fatal(err)
	}
	if c != 'A' {
		t.Fatalf("NextChar() = %q, want 'A'", c)
	}
}

func TestConsumeAndExpect(t *testing.T) {
	l := newLexer("  :rest")
	ok, err := l.Consume(':')
	if err != nil || !ok {
		t.Fatalf("Consume(':') = %v, %v", ok, err)
	}
	if err := l.Expect('r'); err != nil {
		t.Fatalf("Expect('r') after consuming ':' = %v", err)
	}
	if err := l.Expect('z'); err == nil {
		t.Fatal("expected error for mismatched Expect")
	}
}

func TestConsumeKeyword(t *testing.T) {
	l := newLexer("ifelse")
	ok, err := l.ConsumeKeyword("if")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("ConsumeKeyword(\"if\") should not match prefix of \"ifelse\"")
	}

	l2 := newLexer("if (")
	ok, err = l2.ConsumeKeyword("if")
	if err != nil || !ok {
		t.Fatalf("ConsumeKeyword(\"if\") = %v, %v, want true", ok, err)
	}
}

func TestGetIdentifier(t *testing.T) {
	l := newLexer("foo_Bar2.baz rest")
	id, err := l.GetIdentifier()
	if err != nil {
		t.Fatal(err)
	}
	if id != "foo_Bar2.baz" {
		t.Fatalf("GetIdentifier() = %q", id)
	}
}

func TestGetIdentifierRejectsLeadingDigit(t *testing.T) {
	l := newLexer("2abc")
	if _, err := l.GetIdentifier(); err == nil {
		t.Fatal("expected error for identifier starting with digit")
	}
}

func TestGetLabel(t *testing.T) {
	l := newLexer("label-1:next")
	lbl, err := l.GetLabel()
	if err != nil {
		t.Fatal(err)
	}
	if lbl != "label-1" {
		t.Fatalf("GetLabel() = %q, want %q", lbl, "label-1")
	}
}

func TestGetNumberDecimal(t *testing.T) {
	l := newLexer("12345rest")
	n, err := l.GetNumber()
	if err != nil {
		t.Fatal(err)
	}
	if n != 12345 {
		t.Fatalf("GetNumber() = %d", n)
	}
}

func TestGetNumberHex(t *testing.T) {
	l := newLexer("0x1F rest")
	n, err := l.GetNumber()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0x1f {
		t.Fatalf("GetNumber() = %d, want 31", n)
	}
}

func TestGetNumberBinary(t *testing.T) {
	l := newLexer("0b1010rest")
	n, err := l.GetNumber()
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Fatalf("GetNumber() = %d, want 10", n)
	}
}

func TestGetNumberRejectsNonDigit(t *testing.T) {
	l := newLexer("abc")
	if _, err := l.GetNumber(); err == nil {
		t.Fatal("expected error")
	}
}
