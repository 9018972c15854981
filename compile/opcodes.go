package compile

// CALI expression opcodes. Fixed numeric assignments from the bytecode
// format (values preserved byte-for-byte across every target SCO version).
const (
	opAdd = 0x79
	opSub = 0x7a
	opMul = 0x77
	opDiv = 0x78
	opEq  = 0x7b
	opLt  = 0x7c
	opGt  = 0x7d
	opNe  = 0x7e
	opAnd = 0x74
	opOr  = 0x75
	opXor = 0x76
	opEnd = 0x7f
)

// Secondary operators, selected by a 0xc0 prefix byte followed by one of
// these. Byte values are an internal implementation choice (the retrieved
// reference sources name these symbolically as OP_C0_INDEX/MOD/LE/GE but the
// header defining their numeric assignment was not part of the distilled
// sources); the compiler and decompiler agree on the same table, which is
// all that round-trip correctness requires. decompiler/cali.c's own decode
// (`case 0xc0: op = *p++; if (op >= 0x40) ... variable`) requires this
// second byte stay below 0x40, ruling out the spec's literal 0xc1.
const (
	opC0Index = 0x0b
	opC0Mod   = 0x0c
	opC0Le    = 0x0d
	opC0Ge    = 0x0e
)

// Augmented-assignment opcodes (assign() in the reference compiler):
// `!v OP: e!` compiles to `OP v e`, the opcode being written over the
// leading '!' byte; a plain `!v: e!` keeps the '!' byte, so Assign never
// writes opAssign.
const (
	opAssign    = 0x10 // v = e
	opAddAssign = 0x11 // v += e
	opSubAssign = 0x12
	opMulAssign = 0x13
	opDivAssign = 0x14
	opModAssign = 0x15
	opAndAssign = 0x16
	opOrAssign  = 0x17
	opXorAssign = 0x18
)
