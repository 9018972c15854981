package compile

// Fixup is the forward-reference mechanism threading a linked list of
// not-yet-patched dword holes through the output buffer itself: each
// reference before the label is defined emits the previous hole's address
// (or 0 for the first), and once the label is defined every hole in the
// chain is walked and overwritten with the real address (add_label/label in
// compile.c).

// lookupLabel returns the Label for id, creating an unresolved placeholder
// on first reference (matching lookup_label, which records the reference's
// source position for "undefined label" diagnostics).
func (c *Context) lookupLabel(id string) *Label {
	if l, ok := c.Labels[id]; ok {
		return l
	}
	l := &Label{SourcePos: c.Lexer.Pos - len(id)}
	c.Labels[id] = l
	return l
}

// AddLabel handles a `*name:` label definition, resolving every hole in its
// forward-reference chain.
func (c *Context) AddLabel() error {
	top := c.Lexer.Pos
	id, err := c.Lexer.GetLabel()
	if err != nil {
		return err
	}
	if !c.Compiling {
		return nil
	}
	l := c.lookupLabel(id)
	if l.HasAddr {
		return c.errorAt(top, "label '%s' redefined", id)
	}
	l.Addr = c.Out.CurrentAddress()
	l.HasAddr = true
	// Address 0 is the SCO header and never a legitimate hole address, so
	// it doubles as the chain terminator, exactly as in the reference
	// compiler's `while (l->hole_addr)`.
	for l.HoleAddr != 0 {
		l.HoleAddr = c.Out.SwapDword(l.HoleAddr, l.Addr)
	}
	return nil
}

// Label compiles a `@name` forward/backward label reference: emits the
// label's address if already known, otherwise threads a new hole onto its
// chain. Matches label() in compile.c.
func (c *Context) Label() (*Label, error) {
	id, err := c.Lexer.GetLabel()
	if err != nil {
		return nil, err
	}
	if !c.Compiling {
		return nil, nil
	}
	l := c.lookupLabel(id)
	if !l.HasAddr {
		c.Out.EmitDword(l.HoleAddr)
		l.HoleAddr = c.Out.CurrentAddress() - 4
	} else {
		c.Out.EmitDword(l.Addr)
	}
	return l, nil
}

// CheckUndefinedLabels reports the first still-unresolved label, matching
// check_undefined_labels, called once per page after compiling it.
func (c *Context) CheckUndefinedLabels() error {
	for id, l := range c.Labels {
		if !l.HasAddr {
			return c.errorAt(l.SourcePos, "undefined label '%s'", id)
		}
	}
	return nil
}
