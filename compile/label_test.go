package compile

import (
	"encoding/binary"
	"testing"

	"github.com/kichikuou-go/sys35c/internal/buffer"
	"github.com/kichikuou-go/sys35c/internal/lexer"
)

func newLabelTestContext() *Context {
	c := NewContext(DefaultConfig(), nil, []string{"A.ADV"}, nil)
	c.Lexer = lexer.New("", "A.ADV", 0, nil)
	c.Out = buffer.New()
	c.Compiling = true
	c.Labels = make(map[string]*Label)
	return c
}

func TestLabelForwardReferencePatchedOnDefinition(t *testing.T) {
	c := newLabelTestContext()
	// Address 0 is the chain terminator, never a hole, so start past it.
	c.Out.EmitDword(0)

	c.Lexer = lexer.New("L_top", "A.ADV", 0, nil)
	if _, err := c.Label(); err != nil {
		t.Fatalf("Label (forward reference): %v", err)
	}
	holeAddr := uint32(4)

	c.Lexer = lexer.New("L_top", "A.ADV", 0, nil)
	if err := c.AddLabel(); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	labelAddr := c.Out.CurrentAddress()

	got := binary.LittleEndian.Uint32(c.Out.Bytes()[holeAddr:])
	if got != labelAddr {
		t.Errorf("patched hole = %d, want %d", got, labelAddr)
	}
}

func TestAddLabelRejectsRedefinition(t *testing.T) {
	c := newLabelTestContext()
	c.Lexer = lexer.New("L_top", "A.ADV", 0, nil)
	if err := c.AddLabel(); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	c.Lexer = lexer.New("L_top", "A.ADV", 0, nil)
	if err := c.AddLabel(); err == nil {
		t.Fatal("expected error redefining the same label name")
	}
}

func TestCheckUndefinedLabelsReportsUnresolved(t *testing.T) {
	c := newLabelTestContext()
	c.Lexer = lexer.New("L_missing", "A.ADV", 0, nil)
	if _, err := c.Label(); err != nil {
		t.Fatalf("Label: %v", err)
	}
	if err := c.CheckUndefinedLabels(); err == nil {
		t.Fatal("expected an undefined-label error")
	}
}
