package decompile

import (
	"strings"
	"testing"
)

func buildSco(t *testing.T, srcName string, body []byte) *Sco {
	t.Helper()
	data := buildScoHeader("S380", srcName, body)
	sco, err := NewSco(srcName+".SCO", data)
	if err != nil {
		t.Fatalf("NewSco: %v", err)
	}
	return sco
}

func TestDecompileScoNoOp(t *testing.T) {
	sco := buildSco(t, "A.ADV", []byte{'A'})
	got, err := DecompileSco([]*Sco{sco}, 0)
	if err != nil {
		t.Fatalf("DecompileSco: %v", err)
	}
	if strings.TrimSpace(got) != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
}

func TestDecompileScoZBExpression(t *testing.T) {
	body := append([]byte("ZB"), buildExpr(emitNumber(5))...)
	sco := buildSco(t, "A.ADV", body)
	got, err := DecompileSco([]*Sco{sco}, 0)
	if err != nil {
		t.Fatalf("DecompileSco: %v", err)
	}
	if strings.TrimSpace(got) != "ZB 5:" {
		t.Errorf("got %q, want %q", got, "ZB 5:")
	}
}

func TestDecompileScoLabel(t *testing.T) {
	body := append([]byte{'@'}, 0x10, 0x00, 0x00, 0x00)
	sco := buildSco(t, "A.ADV", body)
	got, err := DecompileSco([]*Sco{sco}, 0)
	if err != nil {
		t.Fatalf("DecompileSco: %v", err)
	}
	if strings.TrimSpace(got) != "@L_10:" {
		t.Errorf("got %q, want %q", got, "@L_10:")
	}
}

func TestDecompileScoUnknownCommandErrors(t *testing.T) {
	sco := buildSco(t, "A.ADV", []byte{'~'})
	if _, err := DecompileSco([]*Sco{sco}, 0); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestDecompileScoMessage(t *testing.T) {
	// A half-width kana byte, a plain space, then a full-width char verbatim.
	body := []byte{0xb1, ' ', 0x82, 0xa0}
	sco := buildSco(t, "A.ADV", body)
	got, err := DecompileSco([]*Sco{sco}, 0)
	if err != nil {
		t.Fatalf("DecompileSco: %v", err)
	}
	want := "'\x83\x41\x81\x40\x82\xa0'"
	if strings.TrimSpace(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteHed(t *testing.T) {
	scos := []*Sco{
		buildSco(t, "A.ADV", []byte{'A'}),
		buildSco(t, "B.ADV", []byte{'A'}),
	}
	got := WriteHed(scos)
	want := "#SYSTEM35\nA.ADV\nB.ADV\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
