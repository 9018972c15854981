package buffer

import "testing"

func TestNilBufferIsNoOp(t *testing.T) {
	var b *Buffer
	b.Emit(0x41)
	b.EmitWord(1234)
	b.EmitDword(5678)
	b.EmitString("hello")
	if got := b.Len(); got != 0 {
		t.Fatalf("nil buffer Len() = %d, want 0", got)
	}
	if got := b.CurrentAddress(); got != 0 {
		t.Fatalf("nil buffer CurrentAddress() = %d, want 0", got)
	}
	if got := b.SwapDword(0, 1); got != 0 {
		t.Fatalf("nil buffer SwapDword() = %d, want 0", got)
	}
}

func TestEmitNumberInlineRange(t *testing.T) {
	for n := 0; n <= MaxInlineNumber; n++ {
		b := New()
		b.EmitNumber(n, 0x79)
		want := []byte{byte(n + 0x40)}
		if string(b.Bytes()) != string(want) {
			t.Fatalf("EmitNumber(%d) = % x, want % x", n, b.Bytes(), want)
		}
	}
}

func TestEmitNumberShortRange(t *testing.T) {
	for _, n := range []int{0x34, 0x100, 0x3fff} {
		b := New()
		b.EmitNumber(n, 0x79)
		got := b.Bytes()
		if len(got) != 2 {
			t.Fatalf("EmitNumber(%d) len = %d, want 2", n, len(got))
		}
		if got[0] >= 0x40 {
			t.Fatalf("EmitNumber(%d) first byte 0x%x, want < 0x40", n, got[0])
		}
		gotVal := int(got[0])<<8 | int(got[1])
		if gotVal != n {
			t.Fatalf("EmitNumber(%d) decoded %d", n, gotVal)
		}
	}
}

func TestEmitNumberOverflowAddsOp(t *testing.T) {
	b := New()
	b.EmitNumber(MaxShortNumber+10, 0x79)
	got := b.Bytes()
	// 0x3f 0xff (16383) then remainder 10 -> one inline byte + ADD op
	want := []byte{0x3f, 0xff, byte(10 + 0x40), 0x79}
	if string(got) != string(want) {
		t.Fatalf("EmitNumber overflow = % x, want % x", got, want)
	}
}

func TestEmitVarInlineRange(t *testing.T) {
	for v := 0; v <= MaxInlineVar; v++ {
		b := New()
		b.EmitVar(v)
		want := []byte{byte(v | 0x80)}
		if string(b.Bytes()) != string(want) {
			t.Fatalf("EmitVar(%d) = % x, want % x", v, b.Bytes(), want)
		}
	}
}

func TestEmitVarMidRange(t *testing.T) {
	b := New()
	b.EmitVar(0x40)
	want := []byte{0xc0, 0x40}
	if string(b.Bytes()) != string(want) {
		t.Fatalf("EmitVar(0x40) = % x, want % x", b.Bytes(), want)
	}
}

func TestEmitVarWordRange(t *testing.T) {
	b := New()
	b.EmitVar(0x100)
	want := []byte{0xc1, 0x00}
	if string(b.Bytes()) != string(want) {
		t.Fatalf("EmitVar(0x100) = % x, want % x", b.Bytes(), want)
	}
}

func TestSwapDwordWalksChain(t *testing.T) {
	b := New()
	b.EmitDword(0) // hole A, head of chain (0)
	a := uint32(0)
	b.EmitDword(a) // hole B, points back to A
	bAddr := uint32(4)

	// Resolve: walk from head (bAddr, the most-recent hole) back to 0.
	prev := b.SwapDword(bAddr, 0xdeadbeef)
	if prev != a {
		t.Fatalf("first swap returned %x, want %x", prev, a)
	}
	prev = b.SwapDword(0, 0xdeadbeef)
	if prev != 0 {
		t.Fatalf("second swap returned %x, want 0", prev)
	}
}
