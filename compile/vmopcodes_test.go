package compile

import "testing"

func TestEmitVMOpcodeEmitsTwoLittleEndianBytes(t *testing.T) {
	c := newExprTestContext("")
	c.emitVMOpcode(CommandInc)
	got := c.Out.Bytes()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	op := vmOpcodes[CommandInc]
	if got[0] != byte(op) || got[1] != byte(op>>8) {
		t.Errorf("got % x, want little-endian %#04x", got, op)
	}
}

func TestEmitVMOpcodeNoOpForLiteralCommand(t *testing.T) {
	c := newExprTestContext("")
	c.emitVMOpcode(Command('A'))
	if c.Out.Len() != 0 {
		t.Errorf("Len() = %d, want 0 (literal command has no synthetic opcode)", c.Out.Len())
	}
}

func TestVMOpcodeAssignmentsAreUnique(t *testing.T) {
	seen := make(map[uint16]Command)
	for cmd, op := range vmOpcodes {
		if other, ok := seen[op]; ok {
			t.Fatalf("opcode %#04x assigned to both %v and %v", op, other, cmd)
		}
		seen[op] = cmd
	}
}
