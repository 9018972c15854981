package compile

// Expr compiles a full expression and appends the terminating OP_END,
// matching expr() in compile.c: `expr ::= equal`.
func (c *Context) Expr() error {
	if err := c.exprEqual(); err != nil {
		return err
	}
	c.Out.Emit(opEnd)
	return nil
}

// exprEqual ::= compare ('=' compare | '\' compare | '$' compare)*
//
// The '$' operator is an Open Question the spec preserves as-is: it
// consumes a right-hand compare expression but emits no operator byte,
// matching the reference compiler's dead/no-op branch.
func (c *Context) exprEqual() error {
	if err := c.exprCompare(); err != nil {
		return err
	}
	for {
		ok, err := c.Lexer.Consume('=')
		if err != nil {
			return err
		}
		if ok {
			if err := c.exprCompare(); err != nil {
				return err
			}
			c.Out.Emit(opEq)
			continue
		}
		ok, err = c.Lexer.Consume('\\')
		if err != nil {
			return err
		}
		if ok {
			if err := c.exprCompare(); err != nil {
				return err
			}
			c.Out.Emit(opNe)
			continue
		}
		ok, err = c.Lexer.Consume('$')
		if err != nil {
			return err
		}
		if ok {
			if err := c.exprCompare(); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

// exprCompare ::= bit (('<' | '>' | '<=' | '>=') bit)*
func (c *Context) exprCompare() error {
	if err := c.exprBit(); err != nil {
		return err
	}
	for {
		var op byte
		var secondary bool
		lt, err := c.Lexer.Consume('<')
		if err != nil {
			return err
		}
		if lt {
			op = opLt
			eq, err := c.Lexer.Consume('=')
			if err != nil {
				return err
			}
			if eq {
				op, secondary = opC0Le, true
			}
		} else {
			gt, err := c.Lexer.Consume('>')
			if err != nil {
				return err
			}
			if gt {
				op = opGt
				eq, err := c.Lexer.Consume('=')
				if err != nil {
					return err
				}
				if eq {
					op, secondary = opC0Ge, true
				}
			}
		}
		if op == 0 {
			return nil
		}
		if err := c.exprBit(); err != nil {
			return err
		}
		if secondary {
			c.Out.Emit(0xc0)
		}
		c.Out.Emit(op)
	}
}

// exprBit ::= add (('&' | '|' | '^') add)*
func (c *Context) exprBit() error {
	if err := c.exprAdd(); err != nil {
		return err
	}
	for {
		matched, op, err := c.consumeOneOf('&', opAnd, '|', opOr, '^', opXor)
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}
		if err := c.exprAdd(); err != nil {
			return err
		}
		c.Out.Emit(op)
	}
}

// exprAdd ::= mul (('+' | '-') mul)*
func (c *Context) exprAdd() error {
	if err := c.exprMul(); err != nil {
		return err
	}
	for {
		matched, op, err := c.consumeOneOf('+', opAdd, '-', opSub, 0, 0)
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}
		if err := c.exprMul(); err != nil {
			return err
		}
		c.Out.Emit(op)
	}
}

// exprMul ::= prim (('*' | '/' | '%') prim)*
func (c *Context) exprMul() error {
	if err := c.exprPrim(); err != nil {
		return err
	}
	for {
		mul, err := c.Lexer.Consume('*')
		if err != nil {
			return err
		}
		if mul {
			if err := c.exprPrim(); err != nil {
				return err
			}
			c.Out.Emit(opMul)
			continue
		}
		div, err := c.Lexer.Consume('/')
		if err != nil {
			return err
		}
		if div {
			if err := c.exprPrim(); err != nil {
				return err
			}
			c.Out.Emit(opDiv)
			continue
		}
		mod, err := c.Lexer.Consume('%')
		if err != nil {
			return err
		}
		if mod {
			if err := c.exprPrim(); err != nil {
				return err
			}
			c.Out.Emit(0xc0)
			c.Out.Emit(opC0Mod)
			continue
		}
		return nil
	}
}

// exprPrim ::= '(' equal ')' | number | '#' filename | const | var
func (c *Context) exprPrim() error {
	paren, err := c.Lexer.Consume('(')
	if err != nil {
		return err
	}
	if paren {
		if err := c.exprEqual(); err != nil {
			return err
		}
		return c.Lexer.Expect(')')
	}
	nc, err := c.Lexer.NextChar()
	if err != nil {
		return err
	}
	if nc >= '0' && nc <= '9' {
		n, err := c.Lexer.GetNumber()
		if err != nil {
			return err
		}
		c.Out.EmitNumber(n, opAdd)
		return nil
	}
	hash, err := c.Lexer.Consume('#')
	if err != nil {
		return err
	}
	if hash {
		top := c.Lexer.Pos
		fname, err := c.Lexer.GetFilename()
		if err != nil {
			return err
		}
		for i, src := range c.SrcNames {
			if baseNameEqualFold(src, fname) {
				c.Out.EmitNumber(i, opAdd)
				return nil
			}
		}
		return c.errorAt(top, "reference to unknown source file: '%s'", fname)
	}
	id, err := c.Lexer.GetIdentifier()
	if err != nil {
		return err
	}
	if id == "__LINE__" {
		c.Out.EmitNumber(c.Lexer.Line, opAdd)
		return nil
	}
	if sym, ok := c.Symbols[id]; ok && sym.Kind == SymConst {
		c.Out.EmitNumber(sym.Value, opAdd)
		return nil
	}
	return c.variable(id, false)
}

func (c *Context) consumeOneOf(c1 byte, op1 byte, c2 byte, op2 byte, c3 byte, op3 byte) (bool, byte, error) {
	ok, err := c.Lexer.Consume(c1)
	if err != nil || ok {
		return ok, op1, err
	}
	if c2 != 0 {
		ok, err = c.Lexer.Consume(c2)
		if err != nil || ok {
			return ok, op2, err
		}
	}
	if c3 != 0 {
		ok, err = c.Lexer.Consume(c3)
		if err != nil || ok {
			return ok, op3, err
		}
	}
	return false, 0, nil
}

// variable compiles a variable reference, including the `name[index]` array
// form, matching variable() in compile.c.
func (c *Context) variable(id string, create bool) error {
	v, err := c.LookupVar(id, create)
	if err != nil {
		return err
	}
	if c.Compiling && v < 0 {
		return c.errorf("Undefined variable '%s'", id)
	}
	lb, err := c.Lexer.Consume('[')
	if err != nil {
		return err
	}
	if lb {
		c.Out.Emit(0xc0)
		c.Out.Emit(opC0Index)
		c.Out.EmitWordBE(uint16(v))
		if err := c.Expr(); err != nil {
			return err
		}
		return c.Lexer.Expect(']')
	}
	c.Out.EmitVar(v)
	return nil
}

func baseNameEqualFold(path, name string) bool {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	if len(base) != len(name) {
		return false
	}
	for i := 0; i < len(base); i++ {
		a, b := base[i], name[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
