package compile

import "testing"

func TestConstDeclRegistersOnlyDuringPreprocess(t *testing.T) {
	c := newExprTestContext("word N=5:")
	c.Compiling = false
	if err := c.ConstDecl(); err != nil {
		t.Fatalf("ConstDecl: %v", err)
	}
	sym, ok := c.Symbols["N"]
	if !ok || sym.Kind != SymConst || sym.Value != 5 {
		t.Errorf("Symbols[N] = %+v, ok=%v, want SymConst/5", sym, ok)
	}
}

func TestConstDeclMultipleDeclarations(t *testing.T) {
	c := newExprTestContext("word A=1,B=2:")
	c.Compiling = false
	if err := c.ConstDecl(); err != nil {
		t.Fatalf("ConstDecl: %v", err)
	}
	if c.Symbols["A"].Value != 1 || c.Symbols["B"].Value != 2 {
		t.Errorf("A=%+v B=%+v, want 1 and 2", c.Symbols["A"], c.Symbols["B"])
	}
}

func TestNumberArrayEmitsWordsByDefaultAndBytesWithSuffix(t *testing.T) {
	c := newExprTestContext("1,2b]")
	if err := c.NumberArray(); err != nil {
		t.Fatalf("NumberArray: %v", err)
	}
	want := []byte{1, 0, 2}
	if string(c.Out.Bytes()) != string(want) {
		t.Errorf("got % x, want % x", c.Out.Bytes(), want)
	}
}

func TestNumberArrayRejectsOutOfRangeElement(t *testing.T) {
	c := newExprTestContext("70000]")
	if err := c.NumberArray(); err == nil {
		t.Fatal("expected an error for an out-of-range array element")
	}
}
