package compile

import "testing"

func TestArgumentsNumberExpressionPair(t *testing.T) {
	c := newExprTestContext("3,5:")
	if err := c.Arguments("ne"); err != nil {
		t.Fatalf("Arguments: %v", err)
	}
	want := []byte{3, 5 + 0x40, opEnd}
	if string(c.Out.Bytes()) != string(want) {
		t.Errorf("got % x, want % x", c.Out.Bytes(), want)
	}
}

func TestArgumentsLeadingSubcommandNumberCommaOptional(t *testing.T) {
	c := newExprTestContext("3 5:")
	if err := c.Arguments("ne"); err != nil {
		t.Fatalf("Arguments: %v", err)
	}
	want := []byte{3, 5 + 0x40, opEnd}
	if string(c.Out.Bytes()) != string(want) {
		t.Errorf("got % x, want % x", c.Out.Bytes(), want)
	}
}

func TestArgumentsTooFewReturnsError(t *testing.T) {
	c := newExprTestContext("5:")
	if err := c.Arguments("ee"); err == nil {
		t.Fatal("expected an error for too few arguments")
	}
}

func TestArgumentsTooManyReturnsError(t *testing.T) {
	c := newExprTestContext("5,6:")
	if err := c.Arguments("e"); err == nil {
		t.Fatal("expected an error for too many arguments")
	}
}

func TestArgumentsVariableEmitsTrailingEnd(t *testing.T) {
	c := newExprTestContext("v:")
	c.Symbols["v"] = &Symbol{Kind: SymVariable, Value: 2}
	if err := c.Arguments("v"); err != nil {
		t.Fatalf("Arguments: %v", err)
	}
	want := []byte{2 + 0x80, opEnd}
	if string(c.Out.Bytes()) != string(want) {
		t.Errorf("got % x, want % x", c.Out.Bytes(), want)
	}
}

func TestArgumentsStringEmitsColonTerminator(t *testing.T) {
	c := newExprTestContext(`"hi":`)
	if err := c.Arguments("s"); err != nil {
		t.Fatalf("Arguments: %v", err)
	}
	got := c.Out.Bytes()
	if got[len(got)-1] != ':' {
		t.Errorf("last byte = %x, want ':'", got[len(got)-1])
	}
}
