package compile

import (
	"github.com/kichikuou-go/sys35c/internal/buffer"
	"github.com/kichikuou-go/sys35c/internal/lexer"
)

// prepare resets per-page state before compiling/preprocessing one source
// file, matching prepare() in compile.c.
func (c *Context) prepare(source string, pageno int) {
	c.Lexer = lexer.New(source, c.SrcNames[pageno], pageno, c.Codec)
	c.MenuItemStart = 0
	if c.Config.SysVer == System35 {
		c.BranchEndStack = []uint32{}
	} else {
		c.BranchEndStack = nil
	}
}

// toplevel injects the unicode-mode "ZU 1:" directive on page 0, compiles
// every command, and rejects any unconsumed trailing input. Matches
// toplevel() in compile.c.
func (c *Context) toplevel() error {
	if c.Config.Unicode && c.Lexer.Page == 0 {
		if err := c.Lexer.SkipWhitespaces(); err != nil {
			return err
		}
		c.Out.Emit('Z')
		c.Out.Emit('U')
		c.Out.Emit(0x41)
		c.Out.Emit(0x7f)
	}

	if err := c.Commands(); err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return c.errorAt(le.Pos, "%s", le.Msg)
		}
		return err
	}
	if c.Lexer.Pos < len(c.Lexer.Buf) {
		return c.errorf("unexpected '%c'", c.Lexer.Buf[c.Lexer.Pos])
	}
	return nil
}

// Preprocess runs pass 1 over one page's source: declarations (functions,
// constants, labels) are recorded but no bytecode is emitted, matching
// preprocess() in compile.c.
func (c *Context) Preprocess(source string, pageno int) error {
	c.prepare(source, pageno)
	c.Compiling = false
	c.Labels = nil
	c.Out = nil

	if err := c.toplevel(); err != nil {
		return err
	}
	if c.MenuItemStart != 0 {
		return c.errorAt(c.MenuItemStart-1, "unfinished menu item")
	}
	if len(c.BranchEndStack) > 0 {
		return c.errorf("'}' expected")
	}
	return nil
}

// PreprocessDone resets the message buffer/counter once every page has been
// preprocessed, matching preprocess_done() in compile.c.
func (c *Context) PreprocessDone() {
	if c.Config.SysVer == System39 {
		c.MsgBuf = buffer.New()
	}
	c.MsgCount = 0
}

// Compile runs pass 2 over one page's source, emitting its finished Sco.
// Matches compile() in compile.c.
func (c *Context) Compile(source string, pageno int) (*Sco, error) {
	c.prepare(source, pageno)
	c.Compiling = true
	c.Labels = make(map[string]*Label)

	sco := &Sco{SrcName: c.SrcNames[pageno], Page: pageno, AldVolume: 1}
	c.Scos[pageno] = sco
	c.Out = buffer.New()
	scoInit(c.Out, sco.SrcName, pageno, c.Config.ScoVer)

	if err := c.toplevel(); err != nil {
		return nil, err
	}
	if c.MenuItemStart != 0 {
		return nil, c.errorAt(c.MenuItemStart-1, "unfinished menu item")
	}
	if err := c.CheckUndefinedLabels(); err != nil {
		return nil, err
	}

	scoFinalize(c.Out)
	sco.Buf = c.Out
	c.Out = nil
	return sco, nil
}
