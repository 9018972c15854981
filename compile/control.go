package compile

// ConstDecl parses a `const word id=val(,id=val)*:` declaration. Only the
// preprocess pass actually registers the symbols (define_const in compile.c).
func (c *Context) ConstDecl() error {
	ok, err := c.Lexer.ConsumeKeyword("word")
	if err != nil {
		return err
	}
	if !ok {
		return c.errorf("unknown const type")
	}
	for {
		top := c.Lexer.Pos
		id, err := c.Lexer.GetIdentifier()
		if err != nil {
			return err
		}
		if _, err := c.Lexer.Consume('='); err != nil {
			return err
		}
		val, err := c.Lexer.GetNumber()
		if err != nil {
			return err
		}
		if !c.Compiling {
			if err := c.DefineConst(id, val); err != nil {
				return c.errorAt(top, "%s", errMessage(err))
			}
		}
		more, err := c.Lexer.Consume(',')
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return c.Lexer.Expect(':')
}

func errMessage(err error) string {
	if ce, ok := err.(*CompileError); ok {
		return ce.Message
	}
	return err.Error()
}

// NumberArray compiles a `[n,n,...]` data literal. Each element is a 16-bit
// word unless suffixed with 'b', an xsys35c extension emitting a single
// byte. Matches number_array in compile.c.
func (c *Context) NumberArray() error {
	first := true
	for {
		rb, err := c.Lexer.Consume(']')
		if err != nil {
			return err
		}
		if rb {
			return nil
		}
		if !first {
			if err := c.Lexer.Expect(','); err != nil {
				return err
			}
		}
		first = false
		top := c.Lexer.Pos
		n, err := c.Lexer.GetNumber()
		if err != nil {
			return err
		}
		if n > 0xffff {
			return c.errorAt(top, "number constant out of range: %d", n)
		}
		b, err := c.Lexer.Consume('b')
		if err != nil {
			return err
		}
		if b {
			c.Out.Emit(byte(n))
		} else {
			c.Out.EmitWord(uint16(n))
		}
	}
}

// Pragma handles `#pragma`-like directives: `ald_volume n:` records which ALD
// volume the current page's resources live in; `address n:` truncates or
// zero-pads the output to an absolute address.
func (c *Context) Pragma() error {
	ok, err := c.Lexer.ConsumeKeyword("ald_volume")
	if err != nil {
		return err
	}
	if ok {
		n, err := c.Lexer.GetNumber()
		if err != nil {
			return err
		}
		if c.Scos[c.curPage()] != nil {
			c.Scos[c.curPage()].AldVolume = uint8(n)
		}
		return c.Lexer.Expect(':')
	}
	ok, err = c.Lexer.ConsumeKeyword("address")
	if err != nil {
		return err
	}
	if ok {
		addr, err := c.Lexer.GetNumber()
		if err != nil {
			return err
		}
		if c.Out != nil {
			c.Out.Truncate(uint32(addr))
		}
		return c.Lexer.Expect(':')
	}
	return c.errorf("unknown pragma")
}

// subcommandNum reads a subcommand's leading number, emits it verbatim, and
// consumes the optional following comma (subcommand_num in compile.c).
func (c *Context) subcommandNum() (int, error) {
	n, err := c.Lexer.GetNumber()
	if err != nil {
		return 0, err
	}
	c.Out.Emit(byte(n))
	if _, err := c.Lexer.Consume(','); err != nil {
		return 0, err
	}
	return n, nil
}

// Conditional compiles `{' expr ':' commands '}` (and, on System 3.8+ with
// `else` enabled, an else/else-if chain). On System 3.5, BranchEndStack is
// non-nil for the whole page, so every conditional only emits its header and
// pushes its jump hole onto BranchEndStack; the body is compiled as ordinary
// commands and the matching '}' in command() patches the hole.
func (c *Context) Conditional() error {
	c.Out.Emit('{')
	if err := c.Expr(); err != nil {
		return err
	}
	if err := c.Lexer.Expect(':'); err != nil {
		return err
	}
	hole := c.Out.CurrentAddress()
	c.Out.EmitDword(0)

	if c.BranchEndStack != nil {
		c.BranchEndStack = append(c.BranchEndStack, hole)
		return nil
	}

	if err := c.Commands(); err != nil {
		return err
	}
	if err := c.Lexer.Expect('}'); err != nil {
		return err
	}
	if c.Config.SysVer >= System38 && !c.Config.DisableElse {
		c.Out.Emit('@')
		c.Out.EmitDword(0)
		c.Out.SwapDword(hole, c.Out.CurrentAddress())
		hole = c.Out.CurrentAddress() - 4
		elseKw, err := c.Lexer.ConsumeKeyword("else")
		if err != nil {
			return err
		}
		if elseKw {
			ifKw, err := c.Lexer.ConsumeKeyword("if")
			if err != nil {
				return err
			}
			if ifKw {
				if err := c.Lexer.Expect('{'); err != nil {
					return err
				}
				if err := c.Conditional(); err != nil {
					return err
				}
			} else {
				if err := c.Lexer.Expect('{'); err != nil {
					return err
				}
				if err := c.Commands(); err != nil {
					return err
				}
				if err := c.Lexer.Expect('}'); err != nil {
					return err
				}
			}
		}
	}
	c.Out.SwapDword(hole, c.Out.CurrentAddress())
	return nil
}

// WhileLoop compiles `<@ expr ':' commands '>'`.
func (c *Context) WhileLoop() error {
	loopAddr := c.Out.CurrentAddress()
	c.Out.Emit('{')
	if err := c.Expr(); err != nil {
		return err
	}
	if err := c.Lexer.Expect(':'); err != nil {
		return err
	}
	endHole := c.Out.CurrentAddress()
	c.Out.EmitDword(0)

	if err := c.Commands(); err != nil {
		return err
	}

	if err := c.Lexer.Expect('>'); err != nil {
		return err
	}
	c.Out.Emit('>')
	c.Out.EmitDword(loopAddr)

	c.Out.SwapDword(endHole, c.Out.CurrentAddress())
	return nil
}

// ForLoop compiles `< var ',' expr ',' expr ',' expr ',' expr ':' commands '>'`,
// reusing the variable's just-emitted opcode bytes at the top of each
// iteration's comparison, matching for_loop in compile.c.
func (c *Context) ForLoop() error {
	c.Out.Emit('!')
	varBegin := c.Out.CurrentAddress()
	id, err := c.Lexer.GetIdentifier()
	if err != nil {
		return err
	}
	if err := c.variable(id, true); err != nil {
		return err
	}
	varEnd := c.Out.CurrentAddress()
	if err := c.Lexer.Expect(','); err != nil {
		return err
	}

	if err := c.Expr(); err != nil { // start
		return err
	}
	if err := c.Lexer.Expect(','); err != nil {
		return err
	}

	c.Out.Emit('<')
	c.Out.Emit(0x00)
	loopAddr := c.Out.CurrentAddress()
	c.Out.Emit('<')
	c.Out.Emit(0x01)

	endHole := c.Out.CurrentAddress()
	c.Out.EmitDword(0)

	for i := varBegin; i < varEnd; i++ {
		c.Out.Emit(c.Out.GetByte(i))
	}
	c.Out.Emit(opEnd)

	if err := c.Expr(); err != nil { // end
		return err
	}
	if err := c.Lexer.Expect(','); err != nil {
		return err
	}
	if err := c.Expr(); err != nil { // sign
		return err
	}
	if err := c.Lexer.Expect(','); err != nil {
		return err
	}
	if err := c.Expr(); err != nil { // step
		return err
	}
	if err := c.Lexer.Expect(':'); err != nil {
		return err
	}

	if err := c.Commands(); err != nil {
		return err
	}

	if err := c.Lexer.Expect('>'); err != nil {
		return err
	}
	c.Out.Emit('>')
	c.Out.EmitDword(loopAddr)

	c.Out.SwapDword(endHole, c.Out.CurrentAddress())
	return nil
}
