package compile

// DLLCall compiles the System 3.9 `name.func args,...:` DLL call syntax: looks
// up the dot-separated DLL and function names against the tables loaded
// from .hel files, emits their table indices, then the function's argument
// list per its declared HELType signature. Matches dll_call/dll_arguments in
// compile.c.
func (c *Context) DLLCall() error {
	top := c.Lexer.Pos
	// get_identifier() treats '.' as an identifier character, so the
	// name.func split can't go through it — the reference compiler finds
	// the dot by a raw scan instead (dll_call in compile.c).
	dot := -1
	for i := top; i < len(c.Lexer.Buf); i++ {
		if c.Lexer.Buf[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return c.errorf("expected '.' in DLL call")
	}
	dllName := c.Lexer.Buf[top:dot]
	dllIndex := c.HelIndex(dllName)
	if dllIndex < 0 {
		return c.errorAt(top, "unknown DLL name '%s'", dllName)
	}
	c.Out.EmitDword(uint32(dllIndex))
	c.Lexer.Pos = dot + 1

	funcTop := c.Lexer.Pos
	funcName, err := c.Lexer.GetIdentifier()
	if err != nil {
		return err
	}
	dll := c.Dlls[dllIndex]
	for i, f := range dll.Funcs {
		if f.Name == funcName {
			c.Out.EmitDword(uint32(i))
			return c.dllArguments(f)
		}
	}
	return c.errorAt(funcTop, "unknown DLL function '%s'", funcName)
}

func (c *Context) dllArguments(f *DLLFunc) error {
	needComma := false
	for _, t := range f.ArgTypes {
		switch {
		case takesExpr(t):
			if needComma {
				if err := c.Lexer.Expect(','); err != nil {
					return err
				}
			}
			if err := c.Expr(); err != nil {
				return err
			}
			needComma = true
		case t == HELIConstString:
			if needComma {
				if err := c.Lexer.Expect(','); err != nil {
					return err
				}
			}
			if err := c.Lexer.Expect('"'); err != nil {
				return err
			}
			if err := c.Lexer.CompileString(c.Out, '"', false, false, c.Config.Unicode); err != nil {
				return err
			}
			c.Out.Emit(0)
			needComma = true
		default:
			c.Out.EmitNumber(0, opAdd)
			c.Out.Emit(opEnd)
		}
	}
	return c.Lexer.Expect(':')
}
