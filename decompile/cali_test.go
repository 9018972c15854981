package decompile

import (
	"strings"
	"testing"
)

// emitNumber mirrors buffer.Buffer.EmitNumber's compact encoding so tests
// can build bytecode fixtures without importing the compile package.
func emitNumber(n int) []byte {
	if n <= 0x33 {
		return []byte{byte(n + 0x40)}
	}
	return []byte{byte(n >> 8), byte(n)}
}

func emitVar(id int) []byte {
	switch {
	case id <= 0x3f:
		return []byte{byte(id + 0x80)}
	case id <= 0xff:
		return []byte{0xc0, byte(id)}
	default:
		word := id + 0xc000
		return []byte{byte(word >> 8), byte(word)}
	}
}

func buildExpr(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	out = append(out, opEnd)
	return out
}

func renderExpr(t *testing.T, data []byte) string {
	t.Helper()
	node, n, err := parseCali(data, false)
	if err != nil {
		t.Fatalf("parseCali: %v", err)
	}
	if n != len(data) {
		t.Errorf("consumed %d bytes, want %d", n, len(data))
	}
	var w strings.Builder
	var vars variables
	printCali(node, 0, &vars, &w)
	return w.String()
}

func TestParseCaliNumberLiteral(t *testing.T) {
	got := renderExpr(t, buildExpr(emitNumber(5)))
	if got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
}

func TestParseCaliLargeNumberLiteral(t *testing.T) {
	got := renderExpr(t, buildExpr(emitNumber(1000)))
	if got != "1000" {
		t.Errorf("got %q, want %q", got, "1000")
	}
}

func TestParseCaliAddition(t *testing.T) {
	got := renderExpr(t, buildExpr(emitNumber(2), emitNumber(3), []byte{opAdd}))
	if got != "2 + 3" {
		t.Errorf("got %q, want %q", got, "2 + 3")
	}
}

func TestParseCaliPrecedenceParenthesizesAdditionInsideMultiplication(t *testing.T) {
	// (1 + 2) * 3
	expr := buildExpr(emitNumber(1), emitNumber(2), []byte{opAdd}, emitNumber(3), []byte{opMul})
	got := renderExpr(t, expr)
	want := "(1 + 2) * 3"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseCaliNoParensWhenPrecedenceAllows(t *testing.T) {
	// 1 * 2 + 3
	expr := buildExpr(emitNumber(1), emitNumber(2), []byte{opMul}, emitNumber(3), []byte{opAdd})
	got := renderExpr(t, expr)
	want := "1 * 2 + 3"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseCaliVariable(t *testing.T) {
	got := renderExpr(t, buildExpr(emitVar(3)))
	if got != "VAR3" {
		t.Errorf("got %q, want %q", got, "VAR3")
	}
}

func TestParseCaliWideVariable(t *testing.T) {
	got := renderExpr(t, buildExpr(emitVar(500)))
	if got != "VAR500" {
		t.Errorf("got %q, want %q", got, "VAR500")
	}
}

func TestParseCaliArrayIndex(t *testing.T) {
	// VAR2[VAR1], followed by the outer expression's own OP_END.
	idx := append([]byte{0xc0, byte(opC0Index), 0x00, 0x02}, buildExpr(emitVar(1))...)
	idx = append(idx, opEnd)
	got := renderExpr(t, idx)
	if got != "VAR2[VAR1]" {
		t.Errorf("got %q, want %q", got, "VAR2[VAR1]")
	}
}

func TestParseCaliSecondaryMod(t *testing.T) {
	expr := buildExpr(emitNumber(7), emitNumber(3), []byte{0xc0, opC0Mod})
	got := renderExpr(t, expr)
	if got != "7 % 3" {
		t.Errorf("got %q, want %q", got, "7 % 3")
	}
}

func TestParseCaliConstantFolding(t *testing.T) {
	// 16383 + 100 collapses into a single number node rather than an OP_ADD.
	expr := buildExpr(emitNumber(16383), emitNumber(100), []byte{opAdd})
	node, _, err := parseCali(expr, false)
	if err != nil {
		t.Fatalf("parseCali: %v", err)
	}
	if node.typ != nodeNumber || node.val != 16483 {
		t.Errorf("node = %+v, want folded number 16483", node)
	}
}

func TestParseCaliLHSParsesSingleVariable(t *testing.T) {
	data := append(emitVar(4), 0xff) // trailing byte must not be consumed
	node, n, err := parseCali(data, true)
	if err != nil {
		t.Fatalf("parseCali: %v", err)
	}
	if node.typ != nodeVariable || node.val != 4 {
		t.Errorf("node = %+v, want variable 4", node)
	}
	if n != 1 {
		t.Errorf("consumed %d bytes, want 1", n)
	}
}

func TestParseCaliLHSRejectsNumber(t *testing.T) {
	if _, _, err := parseCali(emitNumber(5), true); err == nil {
		t.Fatal("expected error assigning to a number literal")
	}
}

func TestParseCaliTruncated(t *testing.T) {
	if _, _, err := parseCali([]byte{emitNumber(5)[0]}, false); err == nil {
		t.Fatal("expected truncation error with no OP_END")
	}
}
