package compile

// Commands compiles a run of commands until one returns false, matching
// commands() in compile.c.
func (c *Context) Commands() error {
	for {
		more, err := c.command()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// command compiles one top-level command, matching command() in compile.c.
// The bool result mirrors the original's "keep going" return value.
func (c *Context) command() (bool, error) {
	if err := c.Lexer.SkipWhitespaces(); err != nil {
		return false, err
	}
	commandTop := c.Lexer.Pos

	cmd, err := c.Lexer.GetCommand(c.Out, c.Config.SysVer, c.Config.Unicode, c.Config.useAinMessage())
	if err != nil {
		return false, err
	}

	// get_command already wrote literal ASCII command bytes; synthetic
	// commands (other than the parser-only keywords) still need their
	// opcode written here, matching the original's unconditional
	// emit_command(b, cmd) inside get_command.
	switch cmd {
	case CommandIF, CommandCONST, CommandPRAGMA:
	default:
		c.emitVMOpcode(cmd)
	}

	switch cmd {
	case Command(0):
		return false, nil

	case Command(0x1a): // DOS EOF
		return true, nil

	case Command('\''): // message
		return true, c.message()

	case Command('!'): // assign
		return true, c.Assign()

	case Command('{'): // branch
		return true, c.Conditional()

	case Command('}'):
		if len(c.BranchEndStack) > 0 {
			if err := c.Lexer.Expect('}'); err != nil {
				return false, err
			}
			top := c.BranchEndStack[len(c.BranchEndStack)-1]
			c.Out.SwapDword(top, c.Out.CurrentAddress())
			c.BranchEndStack = c.BranchEndStack[:len(c.BranchEndStack)-1]
			return true, nil
		}
		return false, nil

	case Command('*'): // label or function definition
		star, err := c.Lexer.Consume('*')
		if err != nil {
			return false, err
		}
		if star {
			return true, c.Defun()
		}
		if err := c.AddLabel(); err != nil {
			return false, err
		}
		return true, c.Lexer.Expect(':')

	case Command('@'): // label jump
		c.Out.Emit(byte(cmd))
		if _, err := c.Label(); err != nil {
			return false, err
		}
		return true, c.Lexer.Expect(':')

	case Command('\\'): // label call
		c.Out.Emit(byte(cmd))
		zero, err := c.Lexer.Consume('0')
		if err != nil {
			return false, err
		}
		if zero {
			c.Out.EmitDword(0) // return
		} else {
			l, err := c.Label()
			if err != nil {
				return false, err
			}
			if l != nil {
				l.IsFunction = true
			}
		}
		return true, c.Lexer.Expect(':')

	case Command('&'), Command('%'): // page jump / page call-return
		c.Out.Emit(byte(cmd))
		if err := c.Expr(); err != nil {
			return false, err
		}
		return true, c.Lexer.Expect(':')

	case Command('<'): // loop
		at, err := c.Lexer.Consume('@')
		if err != nil {
			return false, err
		}
		if at {
			return true, c.WhileLoop()
		}
		return true, c.ForLoop()

	case Command('>'):
		return false, nil

	case Command(']'): // menu
		if c.Config.SysVer >= System38 {
			c.emitVMOpcode(CommandMenu)
		}
		c.Out.Emit(byte(cmd))
		return true, nil

	case Command('$'): // menu item
		c.Out.Emit(byte(cmd))
		if c.MenuItemStart != 0 {
			c.MenuItemStart = 0
			return true, nil
		}
		if _, err := c.Label(); err != nil {
			return false, err
		}
		if err := c.Lexer.Expect('$'); err != nil {
			return false, err
		}
		if c.Lexer.Pos < len(c.Lexer.Buf) && c.Lexer.Buf[c.Lexer.Pos] >= 0x80 {
			if err := c.Lexer.CompileString(c.Out, '$', c.Config.SysVer == System35, true, c.Config.Unicode); err != nil {
				return false, err
			}
			c.Out.Emit('$')
		} else {
			c.MenuItemStart = commandTop + 1
		}
		return true, nil

	case Command('#'): // data table address
		c.Out.Emit(byte(cmd))
		if _, err := c.Label(); err != nil {
			return false, err
		}
		if err := c.Lexer.Expect(','); err != nil {
			return false, err
		}
		if err := c.Expr(); err != nil {
			return false, err
		}
		return true, c.Lexer.Expect(':')

	case Command('_'): // label address as data
		if _, err := c.Label(); err != nil {
			return false, err
		}
		return true, c.Lexer.Expect(':')

	case Command('"'): // string data
		if err := c.Lexer.CompileString(c.Out, '"', c.Config.SysVer == System35, false, c.Config.Unicode); err != nil {
			return false, err
		}
		c.Out.Emit(0)
		return true, nil

	case Command('['): // data
		return true, c.NumberArray()

	case Command('~'): // function call
		return true, c.Funcall()

	case Command('A'): // no-op
		return true, nil

	case Command('B'):
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 0:
			return true, c.Arguments("e")
		case 1, 2, 3, 4:
			return true, c.Arguments("eeeeee")
		case 10, 11:
			return true, c.Arguments("vv")
		case 12, 13, 14:
			return true, c.Arguments("v")
		case 21, 22, 23, 24, 31, 32, 33, 34:
			return true, c.Arguments("evv")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case Command('F'):
		return true, c.Arguments("nee")

	case Command('G'):
		opAddr := c.Out.CurrentAddress()
		c.Out.Emit(0)
		if err := c.Expr(); err != nil {
			return false, err
		}
		comma, err := c.Lexer.Consume(',')
		if err != nil {
			return false, err
		}
		if comma {
			c.Out.SetByte(opAddr, 1)
			if err := c.Expr(); err != nil {
				return false, err
			}
		}
		if _, err := c.Lexer.Consume(':'); err != nil {
			return false, err
		}
		return true, nil

	case Command('H'):
		return true, c.Arguments("ne")

	case Command('J'):
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 0, 1, 2, 3:
			return true, c.Arguments("ee")
		case 4:
			return true, c.Arguments("")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case CMD2('P', 'F'), CMD2('P', 'W'):
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 0, 1:
			return true, c.Arguments("e")
		case 2, 3:
			return true, c.Arguments("ee")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case CMD2('P', 'T'):
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 0:
			return true, c.Arguments("vee")
		case 1:
			return true, c.Arguments("vvvee")
		case 2:
			return true, c.Arguments("vvee")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case Command('R'): // no-op
		return true, nil

	case CMD2('S', 'G'):
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 0, 1, 2, 3, 4:
			return true, c.Arguments("e")
		case 5, 6, 7, 8:
			return true, c.Arguments("ee")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case CMD2('S', 'R'):
		if c.Config.SysVer == System35 || c.Config.OldSR {
			return true, c.Arguments("ev")
		}
		return true, c.Arguments("nv")

	case CMD2('S', 'X'):
		if _, err := c.subcommandNum(); err != nil { // device
			return false, err
		}
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 1:
			return true, c.Arguments("eee")
		case 2, 4:
			return true, c.Arguments("v")
		case 3:
			return true, nil
		default:
			return false, c.unknownCommand(commandTop)
		}

	case Command('T'):
		return true, c.Arguments("ee")

	case CMD2('U', 'P'):
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 0:
			return true, c.Arguments("ee")
		case 1:
			return true, c.Arguments("se")
		case 2, 3:
			return true, c.Arguments("ss")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case CommandNewUP: // UP, rewritten on System 3.8+
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 0:
			return true, c.Arguments("ee")
		case 1:
			return true, c.Arguments("ze")
		case 2, 3:
			return true, c.Arguments("zz")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case Command('X'):
		return true, c.Arguments("e")

	case Command('Y'):
		return true, c.Arguments("ee")

	case CMD2('Z', 'T'):
		n, err := c.subcommandNum()
		if err != nil {
			return false, err
		}
		switch n {
		case 2, 3, 4, 5:
			return true, c.Arguments("v")
		case 0, 1, 20, 21:
			return true, c.Arguments("e")
		case 10:
			return true, c.Arguments("eee")
		case 11:
			return true, c.Arguments("ev")
		default:
			return false, c.unknownCommand(commandTop)
		}

	case CMD2('Z', 'U'):
		if _, err := c.Lexer.GetNumber(); err != nil {
			return false, err
		}
		if err := c.Lexer.Expect(':'); err != nil {
			return false, err
		}
		if !c.Compiling {
			c.warnAt(commandTop, "Warning: The ZU command is deprecated. Now it is not needed.")
		}
		return true, nil

	case CommandDLLCall:
		return true, c.DLLCall()

	case CommandIF:
		if err := c.Lexer.Expect('{'); err != nil {
			return false, err
		}
		return true, c.Conditional()

	case CommandCONST:
		return true, c.ConstDecl()

	case CommandPRAGMA:
		return true, c.Pragma()

	case CommandAinH, CommandAinHH:
		c.MsgBuf.Emit(0)
		c.Out.EmitDword(uint32(c.MsgCount))
		c.MsgCount++
		return true, c.Arguments("ne")

	case CommandAinX:
		c.MsgBuf.Emit(0)
		c.Out.EmitDword(uint32(c.MsgCount))
		c.MsgCount++
		return true, c.Arguments("e")
	}

	if sig, ok := commandArgSig[cmd]; ok {
		return true, c.Arguments(sig)
	}
	if commandExpectColon[cmd] {
		return true, c.Lexer.Expect(':')
	}
	if commandNoop[cmd] {
		return true, nil
	}
	return false, c.unknownCommand(commandTop)
}

// message compiles the `'...'` message command, whose body differs by
// target system (message() inline switch inside command() in compile.c).
func (c *Context) message() error {
	switch c.Config.SysVer {
	case System39:
		if c.Config.useAinMessage() {
			c.emitVMOpcode(CommandAinMsg)
			if err := c.Lexer.CompileMessage(c.MsgBuf, c.Config.Unicode); err != nil {
				return err
			}
			c.Out.EmitDword(uint32(c.MsgCount))
			c.MsgCount++
			return nil
		}
		fallthrough
	case System38:
		c.emitVMOpcode(CommandMsg)
		return c.Lexer.CompileMessage(c.Out, c.Config.Unicode)
	default:
		if err := c.Lexer.CompileString(c.Out, '\'', c.Config.SysVer == System35, true, c.Config.Unicode); err != nil {
			return err
		}
		return nil
	}
}

func (c *Context) unknownCommand(top int) error {
	return c.errorAt(top, "Unknown command %s", c.Lexer.Buf[top:min(top+3, len(c.Lexer.Buf))])
}
