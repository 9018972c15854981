package decompile

import (
	"fmt"
	"strings"

	"github.com/kichikuou-go/sys35c/internal/sjiskana"
)

// decompiler holds one run's mutable cursor state, matching the reference
// decompiler's single static Decompiler struct (there is exactly one
// decompile pass per process, so this carries no concurrency guarantee
// beyond that).
type decompiler struct {
	scos []*Sco
	out  *strings.Builder
	vars variables

	page int
	pos  int // offset into scos[page].Data
}

func cmd2(a, b byte) int { return int(a) | int(b)<<8 }

// DecompileSco renders one page's bytecode back into source text, matching
// decompile_sco in decompile.c. The returned string is the page's full
// source listing, tab-indented one command per line.
func DecompileSco(scos []*Sco, page int) (string, error) {
	sco := scos[page]
	dc := &decompiler{scos: scos, out: &strings.Builder{}, page: page, pos: int(sco.HdrSize)}

	for dc.pos < int(sco.FileSize) {
		dc.out.WriteByte('\t')
		if err := dc.command(sco); err != nil {
			return "", err
		}
		dc.out.WriteByte('\n')
	}
	return dc.out.String(), nil
}

func (dc *decompiler) addr() int { return dc.pos }

func (dc *decompiler) sco() *Sco { return dc.scos[dc.page] }

func (dc *decompiler) peek() byte { return dc.sco().Data[dc.pos] }

func (dc *decompiler) subcommandNum() int {
	n := int(dc.sco().Data[dc.pos])
	dc.pos++
	fmt.Fprintf(dc.out, "%d", n)
	return n
}

func (dc *decompiler) label() {
	data := dc.sco().Data
	addr := uint32(data[dc.pos]) | uint32(data[dc.pos+1])<<8 | uint32(data[dc.pos+2])<<16 | uint32(data[dc.pos+3])<<24
	dc.pos += 4
	fmt.Fprintf(dc.out, "L_%x", addr)
}

// arguments renders sig's argument list, matching arguments() in
// decompile.c: 'e' is a CALI expression, 'v' a variable reference, 'n' a raw
// byte-sized decimal, 's' a colon-terminated string copied byte-for-byte.
func (dc *decompiler) arguments(sig string) error {
	sep := " "
	data := dc.sco().Data
	for _, c := range sig {
		dc.out.WriteString(sep)
		sep = ","
		switch c {
		case 'e':
			node, n, err := parseCali(data[dc.pos:], false)
			if err != nil {
				return err
			}
			printCali(node, 0, &dc.vars, dc.out)
			dc.pos += n
		case 'v':
			node, n, err := parseCali(data[dc.pos:], true)
			if err != nil {
				return err
			}
			printCali(node, 0, &dc.vars, dc.out)
			dc.pos += n
		case 'n':
			fmt.Fprintf(dc.out, "%d", data[dc.pos])
			dc.pos++
		case 's':
			start := dc.pos
			for data[dc.pos] != ':' {
				dc.pos++
			}
			dc.out.Write(data[start:dc.pos])
			dc.pos++ // skip ':'
		default:
			panic(fmt.Sprintf("decompile: invalid arguments() template: %c", c))
		}
	}
	dc.out.WriteByte(':')
	return nil
}

// message copies a message-command's body verbatim, re-expanding packed
// half-width kana to their full-width SJIS form and full-width-spacing
// plain spaces, matching message() in decompile.c.
func (dc *decompiler) message() {
	data := dc.sco().Data
	for dc.pos < len(data) && (data[dc.pos] == 0x20 || data[dc.pos] > 0x80) {
		c := data[dc.pos]
		dc.pos++
		switch {
		case c == ' ':
			dc.out.WriteString("\x81\x40") // full-width space
		case sjiskana.IsHalfKana(c):
			full, _ := sjiskana.ExpandHalfKana(c)
			dc.out.WriteByte(byte(full >> 8))
			dc.out.WriteByte(byte(full))
		default:
			dc.out.WriteByte(c)
			if sjiskana.IsByte1(c) {
				dc.out.WriteByte(data[dc.pos])
				dc.pos++
			}
		}
	}
}

func (dc *decompiler) getCommand() int {
	data := dc.sco().Data
	switch data[dc.pos] {
	case 'L', 'W', 'Z':
		a, b := data[dc.pos], data[dc.pos+1]
		dc.out.WriteByte(a)
		dc.out.WriteByte(b)
		dc.pos += 2
		return cmd2(a, b)
	default:
		c := data[dc.pos]
		dc.out.WriteByte(c)
		dc.pos++
		return int(c)
	}
}

// command decompiles one bytecode command at the cursor, matching the big
// switch inside decompile_sco in decompile.c.
func (dc *decompiler) command(sco *Sco) error {
	data := sco.Data
	if data[dc.pos] == 0x20 || data[dc.pos] > 0x80 {
		dc.out.WriteByte('\'')
		dc.message()
		dc.out.WriteString("'")
		return nil
	}

	cmd := dc.getCommand()
	switch cmd {
	case '!':
		lhs, n, err := parseCali(data[dc.pos:], true)
		if err != nil {
			return err
		}
		printCali(lhs, 0, &dc.vars, dc.out)
		dc.pos += n
		dc.out.WriteByte(':')
		rhs, n2, err := parseCali(data[dc.pos:], false)
		if err != nil {
			return err
		}
		printCali(rhs, 0, &dc.vars, dc.out)
		dc.pos += n2
		dc.out.WriteByte('!')
		return nil

	case '@':
		dc.label()
		dc.out.WriteByte(':')
		return nil

	case '&':
		node, n, err := parseCali(data[dc.pos:], false)
		if err != nil {
			return err
		}
		printCali(node, 0, &dc.vars, dc.out)
		dc.pos += n
		dc.out.WriteByte(':')
		return nil

	case ']':
		return nil

	case '$':
		dc.label()
		dc.out.WriteByte('$')
		if data[dc.pos] == 0x20 || data[dc.pos] > 0x80 {
			dc.message()
			dc.out.WriteByte('$')
			if data[dc.pos] == '$' {
				dc.pos++
				return nil
			}
		}
		return fmt.Errorf("%s:%x: complex $ not implemented", sco.ScoName, dc.addr())

	case 'A':
		return nil

	case 'B':
		switch dc.subcommandNum() {
		case 0:
			return dc.arguments("e")
		case 1, 2, 3, 4:
			return dc.arguments("eeeeee")
		case 10, 11:
			return dc.arguments("vv")
		case 12, 13, 14:
			return dc.arguments("v")
		case 21, 22, 23, 24, 31, 32, 33, 34:
			return dc.arguments("evv")
		default:
			return dc.unknownCommand(cmd)
		}

	case cmd2('L', 'C'):
		return dc.arguments("ees")

	case 'R':
		return nil

	case cmd2('W', 'W'):
		return dc.arguments("eee")
	case cmd2('W', 'V'):
		return dc.arguments("eeee")
	case cmd2('Z', 'A'):
		return dc.arguments("ne")
	case cmd2('Z', 'B'):
		return dc.arguments("e")
	case cmd2('Z', 'C'):
		return dc.arguments("ee")
	case cmd2('Z', 'D'):
		return dc.arguments("ne")
	case cmd2('Z', 'E'):
		return dc.arguments("e")
	case cmd2('Z', 'F'):
		return dc.arguments("e")
	case cmd2('Z', 'G'):
		return dc.arguments("v")
	case cmd2('Z', 'H'):
		return dc.arguments("e")
	case cmd2('Z', 'I'):
		return dc.arguments("ee")
	case cmd2('Z', 'K'):
		return dc.arguments("ees")
	case cmd2('Z', 'L'):
		return dc.arguments("e")
	case cmd2('Z', 'M'):
		return dc.arguments("e")
	case cmd2('Z', 'R'):
		return dc.arguments("ev")
	case cmd2('Z', 'S'):
		return dc.arguments("e")

	case cmd2('Z', 'T'):
		switch dc.subcommandNum() {
		case 2, 3, 4, 5:
			return dc.arguments("v")
		case 0, 1, 20, 21:
			return dc.arguments("e")
		case 10:
			return dc.arguments("eee")
		case 11:
			return dc.arguments("ev")
		default:
			return dc.unknownCommand(cmd)
		}

	case cmd2('Z', 'W'):
		return dc.arguments("e")
	case cmd2('Z', 'Z'):
		return dc.arguments("ne")

	default:
		return dc.unknownCommand(cmd)
	}
}

func (dc *decompiler) unknownCommand(cmd int) error {
	return fmt.Errorf("%s:%x: unknown command '%x'", dc.sco().ScoName, dc.addr(), cmd)
}

// WriteHed writes the xsys35dc.hed file listing every decompiled page's
// original source file name, in page order, matching write_hed in
// decompile.c.
func WriteHed(scos []*Sco) string {
	var b strings.Builder
	b.WriteString("#SYSTEM35\n")
	for _, sco := range scos {
		fmt.Fprintf(&b, "%s\n", sco.SrcName)
	}
	return b.String()
}
