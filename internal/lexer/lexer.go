// Package lexer implements the System 3.x script tokenizer: an unusual
// cursor-based reader with no separate token type, matching the reference
// compiler's style of reading directly off a mutable input pointer.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kichikuou-go/sys35c/internal/sjiskana"
)

// Lexer holds the mutable cursor state for one source page. There is no
// backtracking: every consume advances the cursor, matching the reference
// implementation's "commit greedily" discipline (see Design Notes).
type Lexer struct {
	Buf  string // full source text
	Pos  int    // byte offset of the next unread byte
	Name string // source file name, for diagnostics
	Page int    // zero-based page index
	Line int    // 1-based current line

	Codec sjiskana.Codec
}

// New creates a Lexer positioned at the start of source.
func New(source, name string, page int, codec sjiskana.Codec) *Lexer {
	return &Lexer{Buf: source, Pos: 0, Name: name, Page: page, Line: 1, Codec: codec}
}

// Error is returned by lexer methods on malformed input; the statement
// compiler wraps these with full diagnostic rendering (see package compile).
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func errAt(pos int, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) byteAt(i int) byte {
	if i >= len(l.Buf) {
		return 0
	}
	return l.Buf[i]
}

func (l *Lexer) cur() byte { return l.byteAt(l.Pos) }

// SkipWhitespaces skips spaces, tabs, newlines, `;`/`//` line comments,
// `/* */` block comments, and the CJK ideographic space (U+3000, 3-byte
// UTF-8), advancing Line on every newline crossed.
func (l *Lexer) SkipWhitespaces() error {
	for l.Pos < len(l.Buf) {
		c := l.Buf[l.Pos]
		switch {
		case c == '\n':
			l.Pos++
			l.Line++
		case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
			l.Pos++
		case c == ';' || (c == '/' && l.byteAt(l.Pos+1) == '/'):
			if idx := strings.IndexByte(l.Buf[l.Pos:], '\n'); idx >= 0 {
				l.Pos += idx
			} else {
				l.Pos = len(l.Buf)
			}
		case c == '/' && l.byteAt(l.Pos+1) == '*':
			top := l.Pos
			l.Pos += 2
			for {
				idx := strings.IndexByte(l.Buf[l.Pos:], '*')
				if idx < 0 {
					return errAt(top, "unfinished comment")
				}
				l.Line += strings.Count(l.Buf[l.Pos:l.Pos+idx], "\n")
				l.Pos += idx + 1
				if l.byteAt(l.Pos) == '/' {
					l.Pos++
					break
				}
			}
		case c == 0xe3 && l.byteAt(l.Pos+1) == 0x80 && l.byteAt(l.Pos+2) == 0x80:
			l.Pos += 3
		default:
			return nil
		}
	}
	return nil
}

// NextChar skips whitespace and returns the next byte without consuming it
// (0 at end of input).
func (l *Lexer) NextChar() (byte, error) {
	if err := l.SkipWhitespaces(); err != nil {
		return 0, err
	}
	return l.cur(), nil
}

// Consume consumes c if it is next, reporting whether it matched.
func (l *Lexer) Consume(c byte) (bool, error) {
	nc, err := l.NextChar()
	if err != nil {
		return false, err
	}
	if nc != c {
		return false, nil
	}
	l.Pos++
	return true, nil
}

// Expect consumes c or returns an error.
func (l *Lexer) Expect(c byte) error {
	ok, err := l.Consume(c)
	if err != nil {
		return err
	}
	if !ok {
		return errAt(l.Pos, "'%c' expected", c)
	}
	return nil
}

// ConsumeKeyword consumes keyword if the next identifier-like token matches
// it exactly (not a prefix of a longer identifier).
func (l *Lexer) ConsumeKeyword(keyword string) (bool, error) {
	if err := l.SkipWhitespaces(); err != nil {
		return false, err
	}
	if !strings.HasPrefix(l.Buf[l.Pos:], keyword) {
		return false, nil
	}
	next := l.byteAt(l.Pos + len(keyword))
	if isAlnum(next) || next == '_' {
		return false, nil
	}
	l.Pos += len(keyword)
	return true, nil
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isIdentChar(c byte) bool {
	return isAlnum(c) || c >= 0x80 || c == '_' || c == '.'
}

func isLabelChar(c byte) bool {
	if c >= 0x80 {
		return true
	}
	if c <= 0x20 || c == 0x7f {
		return false
	}
	switch c {
	case '$', ',', ';', ':':
		return false
	}
	return true
}

// advanceRune advances Pos past one UTF-8 rune (used where the reference
// implementation advances past UTF-8 trail bytes).
func (l *Lexer) advanceRune() {
	if l.Pos >= len(l.Buf) {
		return
	}
	_, size := utf8.DecodeRuneInString(l.Buf[l.Pos:])
	if size == 0 {
		size = 1
	}
	l.Pos += size
}

// GetIdentifier reads `[A-Za-z_][A-Za-z0-9_.]*`, treating any non-ASCII byte
// as part of the identifier.
func (l *Lexer) GetIdentifier() (string, error) {
	if err := l.SkipWhitespaces(); err != nil {
		return "", err
	}
	top := l.Pos
	c := l.cur()
	if !isIdentChar(c) || isDigit(c) {
		return "", errAt(top, "identifier expected")
	}
	for isIdentChar(l.cur()) {
		l.advanceRune()
	}
	return l.Buf[top:l.Pos], nil
}

// GetLabel reads the broader label class: any printable non-ASCII glyph, or
// printable ASCII except `$ , ; :`.
func (l *Lexer) GetLabel() (string, error) {
	if err := l.SkipWhitespaces(); err != nil {
		return "", err
	}
	top := l.Pos
	for isLabelChar(l.cur()) {
		l.advanceRune()
	}
	if l.Pos == top {
		return "", errAt(top, "label expected")
	}
	return l.Buf[top:l.Pos], nil
}

// GetFilename reads an identifier-shaped file name reference (used after '#').
func (l *Lexer) GetFilename() (string, error) {
	top := l.Pos
	for isIdentChar(l.cur()) {
		l.advanceRune()
	}
	if l.Pos == top {
		return "", errAt(top, "file name expected")
	}
	return l.Buf[top:l.Pos], nil
}

// GetNumber reads `[0-9]+ | 0[xX][0-9a-fA-F]+ | 0[bB][01]+`.
func (l *Lexer) GetNumber() (int, error) {
	c, err := l.NextChar()
	if err != nil {
		return 0, err
	}
	if !isDigit(c) {
		return 0, errAt(l.Pos, "number expected")
	}
	base := 10
	top := l.Pos
	if l.byteAt(l.Pos) == '0' && (l.byteAt(l.Pos+1) == 'x' || l.byteAt(l.Pos+1) == 'X') {
		base = 16
		l.Pos += 2
	} else if l.byteAt(l.Pos) == '0' && (l.byteAt(l.Pos+1) == 'b' || l.byteAt(l.Pos+1) == 'B') {
		base = 2
		l.Pos += 2
	}
	digitsStart := l.Pos
	for isHexOrBinDigit(l.cur(), base) {
		l.Pos++
	}
	if l.Pos == digitsStart {
		return 0, errAt(top, "number expected")
	}
	n, err := strconv.ParseInt(l.Buf[digitsStart:l.Pos], base, 64)
	if err != nil {
		return 0, errAt(top, "invalid number")
	}
	return int(n), nil
}

func isHexOrBinDigit(c byte, base int) bool {
	switch base {
	case 16:
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	case 2:
		return c == '0' || c == '1'
	default:
		return isDigit(c)
	}
}
