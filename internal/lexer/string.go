package lexer

import (
	"github.com/kichikuou-go/sys35c/internal/buffer"
	"github.com/kichikuou-go/sys35c/internal/sjiskana"
)

// Echo consumes one byte and emits it verbatim to b, returning the consumed
// byte (used by the bare-ASCII paths of the string/message readers).
func (l *Lexer) Echo(b *buffer.Buffer) byte {
	c := l.Buf[l.Pos]
	l.Pos++
	b.Emit(c)
	return c
}

// compileMultibyteString consumes a run of non-ASCII source bytes (always
// UTF-8 in the source file) and emits its Shift-JIS encoding. In unicode
// mode the UTF-8 bytes are passed through unchanged. If compact is set,
// full-width kana are compacted to their single-byte half-width SJIS form
// wherever a mapping exists, matching compile_multibyte_string(..., true).
func (l *Lexer) compileMultibyteString(b *buffer.Buffer, compact, unicode bool) {
	if unicode {
		for l.Pos < len(l.Buf) && l.Buf[l.Pos] >= 0x80 {
			l.Echo(b)
		}
		return
	}
	top := l.Pos
	for l.Pos < len(l.Buf) && l.Buf[l.Pos] >= 0x80 {
		l.Pos++
	}
	if b == nil {
		return
	}
	sjis := l.Codec.ToSJIS(l.Buf[top:l.Pos], '?')
	if !compact {
		b.Emit2(sjis)
		return
	}
	for i := 0; i < len(sjis); {
		c1 := sjis[i]
		if !sjiskana.IsByte1(c1) {
			b.Emit(c1)
			i++
			continue
		}
		c2 := sjis[i+1]
		if hk := sjiskana.CompactSJIS(c1, c2); hk != 0 {
			b.Emit(hk)
		} else {
			b.Emit(c1)
			b.Emit(c2)
		}
		i += 2
	}
}

// compileSJISCodepoint reads the `<N>` escape used to embed a raw SJIS code
// point, matching compile_sjis_codepoint.
func (l *Lexer) compileSJISCodepoint(b *buffer.Buffer, unicode bool) error {
	top := l.Pos
	if err := l.Expect('<'); err != nil {
		return err
	}
	code, err := l.GetNumber()
	if err != nil {
		return err
	}
	if unicode {
		c1, c2 := byte(code>>8), byte(code&0xff)
		if !sjiskana.IsValid(c1, c2) {
			return errAt(top, "Invalid SJIS code 0x%x", code)
		}
		if b != nil {
			b.EmitString(l.Codec.ToUTF8([]byte{c1, c2}))
		}
	} else {
		b.EmitWordBE(uint16(code))
	}
	return l.Expect('>')
}

// CompileString reads a delimited string argument, handling the `<N>` SJIS
// escape, backslash-escapes, and embedded multibyte runs. forbidAscii
// rejects a literal ASCII byte outside of escapes (used for `$` menu-item
// text and for messages on targets before System 3.8). Matches
// compile_string.
func (l *Lexer) CompileString(b *buffer.Buffer, terminator byte, compact, forbidAscii, unicode bool) error {
	top := l.Pos
	for l.cur() != terminator {
		if l.cur() == '<' {
			if err := l.compileSJISCodepoint(b, unicode); err != nil {
				return err
			}
			continue
		}
		if l.cur() == '\\' {
			l.Pos++
		}
		if l.Pos >= len(l.Buf) {
			return errAt(top, "unfinished string")
		}
		if l.cur() >= 0x80 {
			l.compileMultibyteString(b, compact, unicode)
		} else if forbidAscii {
			return errAt(l.Pos, "ASCII characters cannot be used here")
		} else {
			l.Echo(b)
		}
	}
	return l.Expect(terminator)
}

// CompileMessage reads a `'...'`-delimited message, matching compile_message
// (full-width expansion and half-kana handling belong to the decompiler's
// inverse path; this side always emits raw SJIS/UTF-8 bytes).
func (l *Lexer) CompileMessage(b *buffer.Buffer, unicode bool) error {
	top := l.Pos
	for l.Pos < len(l.Buf) && l.cur() != '\'' {
		if l.cur() == '<' {
			if err := l.compileSJISCodepoint(b, unicode); err != nil {
				return err
			}
			continue
		}
		if l.cur() == '\\' {
			l.Pos++
		}
		if l.Pos >= len(l.Buf) {
			return errAt(top, "unfinished message")
		}
		if l.cur() < 0x80 {
			l.Echo(b)
		} else {
			l.compileMultibyteString(b, false, unicode)
		}
	}
	if err := l.Expect('\''); err != nil {
		return err
	}
	b.Emit(0)
	return nil
}

// CompileBareString reads an unquoted string argument terminated by `,` or
// `:`, matching compile_bare_string (used for unquoted `s`/`z` command
// arguments).
func (l *Lexer) CompileBareString(b *buffer.Buffer, unicode bool) error {
	top := l.Pos
	for l.cur() != ',' && l.cur() != ':' {
		if l.Pos >= len(l.Buf) {
			return errAt(top, "unfinished string argument")
		}
		if l.cur() < 0x80 {
			l.Echo(b)
		} else {
			l.compileMultibyteString(b, false, unicode)
		}
	}
	return nil
}
