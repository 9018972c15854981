package compile

// Arguments interprets the per-command argument-signature mini-language
// (arguments(sig) in compile.c). Directives:
//
//	e  expression
//	n  decimal number, emitted as a raw byte
//	s  colon-terminated string (quoted or bare)
//	z  zero-terminated string (quoted or bare)
//	o  obfuscated (nibble-swapped) quoted string
//	v  variable reference
//	F  function reference (page/addr, possibly unresolved)
//
// When sig begins with 'n', a comma between the leading subcommand number
// and the next argument is optional (matching arguments()'s special-cased
// first iteration).
func (c *Context) Arguments(sig string) error {
	if len(sig) > 0 && sig[0] == 'n' {
		n, err := c.Lexer.GetNumber()
		if err != nil {
			return err
		}
		c.Out.Emit(byte(n))
		sig = sig[1:]
		if len(sig) > 0 {
			if _, err := c.Lexer.Consume(','); err != nil {
				return err
			}
		}
	}
	for i := 0; i < len(sig); i++ {
		if err := c.argumentOne(sig[i]); err != nil {
			return err
		}
		if i+1 < len(sig) {
			colon, err := c.Lexer.Consume(':')
			if err != nil {
				return err
			}
			if colon {
				return c.errorf("too few arguments")
			}
			if err := c.Lexer.Expect(','); err != nil {
				return err
			}
		}
	}
	extra, err := c.Lexer.Consume(',')
	if err != nil {
		return err
	}
	if extra {
		return c.errorf("too many arguments")
	}
	return c.Lexer.Expect(':')
}

func (c *Context) argumentOne(directive byte) error {
	switch directive {
	case 'e':
		return c.Expr()
	case 'n':
		n, err := c.Lexer.GetNumber()
		if err != nil {
			return err
		}
		c.Out.Emit(byte(n))
		return nil
	case 's', 'z':
		if err := c.skipSpacesNotFullWidth(); err != nil {
			return err
		}
		if err := c.stringOrBareString(); err != nil {
			return err
		}
		if directive == 'z' {
			c.Out.Emit(0)
		} else {
			c.Out.Emit(':')
		}
		return nil
	case 'o':
		c.Out.Emit(0)
		if err := c.Lexer.Expect('"'); err != nil {
			return err
		}
		start := c.Out.CurrentAddress()
		if err := c.Lexer.CompileString(c.Out, '"', false, false, c.Config.Unicode); err != nil {
			return err
		}
		end := c.Out.CurrentAddress()
		for i := start; i < end; i++ {
			b := c.Out.GetByte(i)
			c.Out.SetByte(i, b>>4|b<<4)
		}
		c.Out.Emit(0)
		return nil
	case 'v':
		id, err := c.Lexer.GetIdentifier()
		if err != nil {
			return err
		}
		if err := c.variable(id, false); err != nil {
			return err
		}
		c.Out.Emit(opEnd)
		return nil
	case 'F':
		top := c.Lexer.Pos
		name, err := c.Lexer.GetLabel()
		if err != nil {
			return err
		}
		if !c.Compiling {
			return nil
		}
		fn, ok := c.Functions[name]
		if !ok {
			return c.errorAt(top, "undefined function '%s'", name)
		}
		c.emitFunctionRef(fn)
		return nil
	default:
		return c.errorf("BUG: invalid arguments() template: %c", directive)
	}
}

// skipSpacesNotFullWidth mirrors `while (isspace(*input)) input++;` — ASCII
// whitespace only, deliberately not swallowing the CJK full-width space so
// it can appear as the first character of a bare string argument.
func (c *Context) skipSpacesNotFullWidth() error {
	l := c.Lexer
	for l.Pos < len(l.Buf) {
		switch l.Buf[l.Pos] {
		case ' ', '\t', '\r', '\v', '\f':
			l.Pos++
		case '\n':
			l.Pos++
			l.Line++
		default:
			return nil
		}
	}
	return nil
}

func (c *Context) stringOrBareString() error {
	quote, err := c.Lexer.Consume('"')
	if err != nil {
		return err
	}
	if quote {
		return c.Lexer.CompileString(c.Out, '"', false, false, c.Config.Unicode)
	}
	return c.Lexer.CompileBareString(c.Out, c.Config.Unicode)
}

// emitFunctionRef emits a function's page/address pair, threading an
// unresolved-call hole when the function hasn't been defined yet, matching
// the repeated page/addr-hole pattern in funcall()/arguments("F").
func (c *Context) emitFunctionRef(fn *Function) {
	c.Out.EmitWord(fn.Page)
	c.Out.EmitDword(fn.Addr)
	if !fn.Resolved {
		fn.Page = uint16(c.curPage() + 1)
		fn.Addr = c.Out.CurrentAddress() - 6
	}
}

func (c *Context) curPage() int {
	return c.Lexer.Page
}
