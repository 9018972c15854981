package compile

import "testing"

func TestAssignPlainEmitsBaseOpcode(t *testing.T) {
	c := newExprTestContext("v:5!")
	c.Symbols["v"] = &Symbol{Kind: SymVariable, Value: 1}
	if err := c.Assign(); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	got := c.Out.Bytes()
	if got[0] != '!' {
		t.Errorf("opcode byte = %x, want literal '!' (no augmented suffix)", got[0])
	}
}

func TestAssignAugmentedPatchesOpcode(t *testing.T) {
	c := newExprTestContext("v+:5!")
	c.Symbols["v"] = &Symbol{Kind: SymVariable, Value: 1}
	if err := c.Assign(); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	got := c.Out.Bytes()
	if got[0] != opAddAssign {
		t.Errorf("opcode byte = %x, want opAddAssign (%x)", got[0], opAddAssign)
	}
}

func TestAssignUndeclaredVariableCreatesSlot(t *testing.T) {
	c := newExprTestContext("fresh:5!")
	if err := c.Assign(); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, ok := c.Symbols["fresh"]; !ok {
		t.Error("expected Assign to auto-declare a new variable slot")
	}
}

func TestDefunAndFuncallZeroParamRoundTrip(t *testing.T) {
	sco := compileOnePage(t, DefaultConfig(), "**foo:ZB1:~foo:")
	if sco.Buf.Len() == 0 {
		t.Fatal("expected non-empty compiled output")
	}
}

func TestFuncallReturnForm(t *testing.T) {
	sco := compileOnePage(t, DefaultConfig(), "**foo:~0,1:")
	if sco.Buf.Len() == 0 {
		t.Fatal("expected non-empty compiled output")
	}
}

func TestDefunRedefinitionErrors(t *testing.T) {
	c := NewContext(DefaultConfig(), nil, []string{"A.ADV"}, nil)
	if err := c.Preprocess("**foo:**foo:", 0); err == nil {
		t.Fatal("expected an error redefining the same function")
	}
}
