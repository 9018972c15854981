package compile

import "testing"

func TestDLLCallEmitsIndicesAndExprArgument(t *testing.T) {
	c := newExprTestContext("MyDll.Foo 5:")
	c.Dlls = []*DLL{
		{Name: "MyDll", Funcs: []*DLLFunc{{Name: "Foo", ArgTypes: []HELType{HELInt}}}},
	}
	if err := c.DLLCall(); err != nil {
		t.Fatalf("DLLCall: %v", err)
	}
	want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 5 + 0x40, opEnd}
	if string(c.Out.Bytes()) != string(want) {
		t.Errorf("got % x, want % x", c.Out.Bytes(), want)
	}
}

func TestDLLCallImplicitInterfaceArgEmitsZeroPlaceholder(t *testing.T) {
	c := newExprTestContext("MyDll.Foo:")
	c.Dlls = []*DLL{
		{Name: "MyDll", Funcs: []*DLLFunc{{Name: "Foo", ArgTypes: []HELType{HELISurface}}}},
	}
	if err := c.DLLCall(); err != nil {
		t.Fatalf("DLLCall: %v", err)
	}
	want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0 + 0x40, opEnd}
	if string(c.Out.Bytes()) != string(want) {
		t.Errorf("got % x, want % x", c.Out.Bytes(), want)
	}
}

func TestDLLCallUnknownDLLErrors(t *testing.T) {
	c := newExprTestContext("Missing.Foo:")
	if err := c.DLLCall(); err == nil {
		t.Fatal("expected an error for an undeclared DLL name")
	}
}

func TestDLLCallUnknownFunctionErrors(t *testing.T) {
	c := newExprTestContext("MyDll.Bar:")
	c.Dlls = []*DLL{{Name: "MyDll", Funcs: []*DLLFunc{{Name: "Foo"}}}}
	if err := c.DLLCall(); err == nil {
		t.Fatal("expected an error for an undeclared DLL function")
	}
}
