package decompile

import (
	"fmt"
	"strings"
)

// CALI expression opcodes. Values must match the compiler's own
// unexported table in compile/opcodes.go byte-for-byte: the two packages
// agree on this encoding without either exposing it, so it's duplicated
// here rather than shared through an import (see DESIGN.md).
const (
	opAnd = 0x74
	opOr  = 0x75
	opXor = 0x76
	opMul = 0x77
	opDiv = 0x78
	opAdd = 0x79
	opSub = 0x7a
	opEq  = 0x7b
	opLt  = 0x7c
	opGt  = 0x7d
	opNe  = 0x7e
	opEnd = 0x7f

	opC0Index = 0x0b
	opC0Mod   = 0x0c
	opC0Le    = 0x0d
	opC0Ge    = 0x0e
)

type nodeType int

const (
	nodeNumber nodeType = iota
	nodeVariable
	nodeAref
	nodeOp
)

// caliNode is one node of a parsed CALI expression tree, matching the
// decompiler's Cali struct.
type caliNode struct {
	typ      nodeType
	val      int
	lhs, rhs *caliNode
}

// parseCali parses one postfix CALI expression starting at data[0],
// returning the resulting AST and the number of bytes consumed. isLHS
// selects the assignment-target grammar: a single variable or array-element
// reference, one opcode's worth of input, rather than a full OP_END
// terminated expression. Matches parse()'s do/while(!is_lhs) loop in
// cali.c, whose OP_END case always returns directly regardless of isLHS.
func parseCali(data []byte, isLHS bool) (*caliNode, int, error) {
	var stack []*caliNode
	p := 0

	push := func(n *caliNode) { stack = append(stack, n) }
	pop := func() *caliNode {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}

	for {
		if p >= len(data) {
			return nil, 0, fmt.Errorf("cali: truncated expression")
		}
		op := data[p]
		p++

		switch op {
		case opEnd:
			if len(stack) == 0 {
				return nil, 0, fmt.Errorf("cali: empty expression")
			}
			for len(stack) > 1 {
				rhs := pop()
				lhs := pop()
				push(&caliNode{typ: nodeOp, val: int(opEnd), lhs: lhs, rhs: rhs})
			}
			return pop(), p, nil

		case opAnd, opOr, opXor, opMul, opDiv, opAdd, opSub, opEq, opLt, opGt, opNe:
			if len(stack) < 2 {
				return nil, 0, fmt.Errorf("cali: stack underflow")
			}
			rhs := pop()
			lhs := pop()
			if op == opAdd && lhs.typ == nodeNumber && lhs.val == 16383 &&
				rhs.typ == nodeNumber && rhs.val <= 65535-16383 {
				lhs.val += rhs.val
				push(lhs)
			} else {
				push(&caliNode{typ: nodeOp, val: int(op), lhs: lhs, rhs: rhs})
			}

		case 0xc0:
			if p >= len(data) {
				return nil, 0, fmt.Errorf("cali: truncated expression")
			}
			sub := data[p]
			p++
			if sub >= 0x40 {
				push(&caliNode{typ: nodeVariable, val: int(sub)})
				break
			}
			switch sub {
			case opC0Index:
				if p+2 > len(data) {
					return nil, 0, fmt.Errorf("cali: truncated expression")
				}
				varID := int(data[p])<<8 | int(data[p+1])
				p += 2
				index, n, err := parseCali(data[p:], false)
				if err != nil {
					return nil, 0, err
				}
				p += n
				push(&caliNode{typ: nodeAref, val: varID, lhs: index})
			case opC0Mod, opC0Le, opC0Ge:
				if len(stack) < 2 {
					return nil, 0, fmt.Errorf("cali: stack underflow")
				}
				rhs := pop()
				lhs := pop()
				push(&caliNode{typ: nodeOp, val: int(sub), lhs: lhs, rhs: rhs})
			default:
				return nil, 0, fmt.Errorf("cali: unknown code c0 %02x", sub)
			}

		default:
			if op&0x80 != 0 {
				v := int(op & 0x3f)
				if op > 0xc0 {
					if p >= len(data) {
						return nil, 0, fmt.Errorf("cali: truncated expression")
					}
					v = v<<8 | int(data[p])
					p++
				}
				push(&caliNode{typ: nodeVariable, val: v})
			} else {
				v := int(op & 0x3f)
				if op < 0x40 {
					if p >= len(data) {
						return nil, 0, fmt.Errorf("cali: truncated expression")
					}
					v = v<<8 | int(data[p])
					p++
				}
				push(&caliNode{typ: nodeNumber, val: v})
			}
		}

		if isLHS {
			break
		}
	}

	if len(stack) == 0 {
		return nil, 0, fmt.Errorf("cali: empty expression")
	}
	node := pop()
	if node.typ != nodeVariable && node.typ != nodeAref {
		return nil, 0, fmt.Errorf("cali: unexpected left-hand-side for assignment %d", node.typ)
	}
	return node, p, nil
}

func precedence(op int) int {
	switch op {
	case opMul, opDiv, opC0Mod:
		return 4
	case opAdd, opSub:
		return 3
	case opAnd, opOr, opXor:
		return 2
	case opLt, opGt, opC0Le, opC0Ge:
		return 1
	case opEq, opNe, opEnd:
		return 0
	default:
		panic(fmt.Sprintf("decompile: unknown operator %d", op))
	}
}

// variables names a CALI variable slot for printing, lazily assigning
// VAR<n> placeholders for slots that have no declared name, matching
// print_cali_prec's on-demand Vector growth.
type variables struct {
	named []string
}

func (v *variables) name(id int) string {
	for len(v.named) <= id {
		v.named = append(v.named, "")
	}
	if v.named[id] == "" {
		v.named[id] = fmt.Sprintf("VAR%d", id)
	}
	return v.named[id]
}

// printCali renders node as an infix expression, matching print_cali_prec.
func printCali(node *caliNode, outPrec int, vars *variables, w *strings.Builder) {
	switch node.typ {
	case nodeNumber:
		fmt.Fprintf(w, "%d", node.val)

	case nodeVariable, nodeAref:
		w.WriteString(vars.name(node.val))
		if node.typ == nodeAref {
			w.WriteByte('[')
			printCali(node.lhs, 0, vars, w)
			w.WriteByte(']')
		}

	case nodeOp:
		prec := precedence(node.val)
		if outPrec > prec {
			w.WriteByte('(')
		}
		printCali(node.lhs, prec, vars, w)
		w.WriteString(opSymbol(node.val))
		printCali(node.rhs, prec+1, vars, w)
		if outPrec > prec {
			w.WriteByte(')')
		}
	}
}

func opSymbol(op int) string {
	switch op {
	case opAnd:
		return " & "
	case opOr:
		return " | "
	case opXor:
		return " ^ "
	case opMul:
		return " * "
	case opDiv:
		return " / "
	case opAdd:
		return " + "
	case opSub:
		return " - "
	case opEq:
		return " = "
	case opLt:
		return " < "
	case opGt:
		return " > "
	case opNe:
		return ` \ `
	case opC0Mod:
		return " % "
	case opC0Le:
		return " <= "
	case opC0Ge:
		return " >= "
	case opEnd:
		return " $ "
	default:
		panic(fmt.Sprintf("decompile: unknown operator %d", op))
	}
}
