// Package ain reads and writes the AIN metadata file that accompanies a
// compiled System 3.x script: the DLL interface table, function address
// table, variable name table, and (System 3.9 ain-message mode) the
// external message pool. Grounded on the reference compiler's ain.c (Write)
// and the reference decompiler's ain.c (Read).
package ain

import (
	"encoding/binary"
	"errors"
	"io"
	"sort"

	"github.com/kichikuou-go/sys35c/compile"
	"github.com/kichikuou-go/sys35c/internal/buffer"
)

var (
	errNotAinFile     = errors.New("ain: not an AIN file")
	errUnknownSection = errors.New("ain: unknown section")
)

// Write serializes c's DLL table, function table, variable table, and (if
// any messages were compiled in ain-message mode) message pool to fp in the
// AINI container format, matching ain_write in ain.c. disableVariable skips
// the VARI section, matching config.disable_ain_variable; it also switches
// the FUNC table's sort key from name to (page, addr), matching the
// original's "FIXME: Use a dedicated config for this" reuse of the same
// flag for both decisions.
func Write(c *compile.Context, disableVariable bool, w io.Writer) error {
	if _, err := w.Write([]byte("AINI")); err != nil {
		return err
	}
	out := buffer.New()
	out.EmitDword(4)
	emitHEL0(out, c.Dlls)
	emitFUNC(out, c.Functions, disableVariable)
	if !disableVariable {
		emitVARI(out, c.Variables)
	}
	if c.MsgCount > 0 {
		emitMSGIHead(out, c.MsgCount)
	}
	if err := writeRotated(w, out); err != nil {
		return err
	}
	if c.MsgCount > 0 {
		if err := writeRotated(w, c.MsgBuf); err != nil {
			return err
		}
	}
	return nil
}

// emitHEL0 writes the DLL interface table: name, then each exported
// function's name/argc/argtypes.
func emitHEL0(out *buffer.Buffer, dlls []*compile.DLL) {
	out.EmitString("HEL0")
	out.EmitDword(0) // reserved
	out.EmitDword(uint32(len(dlls)))
	for _, d := range dlls {
		out.EmitString(d.Name)
		out.Emit(0)
		out.EmitDword(uint32(len(d.Funcs)))
		for _, f := range d.Funcs {
			out.EmitString(f.Name)
			out.Emit(0)
			out.EmitDword(uint32(len(f.ArgTypes)))
			for _, t := range f.ArgTypes {
				out.EmitDword(uint32(t))
			}
		}
	}
}

// emitFUNC writes the function address table: name, page, address. Sorted
// by name, unless disableVariable is set (the original's shared-flag reuse),
// in which case it's sorted by (page, address) to match the decompiler's
// expectations when no VARI section names the slots.
func emitFUNC(out *buffer.Buffer, functions map[string]*compile.Function, byAddr bool) {
	items := make([]*compile.Function, 0, len(functions))
	for _, f := range functions {
		items = append(items, f)
	}
	if byAddr {
		sort.Slice(items, func(i, j int) bool {
			if items[i].Page != items[j].Page {
				return items[i].Page < items[j].Page
			}
			return items[i].Addr < items[j].Addr
		})
	} else {
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	}

	out.EmitString("FUNC")
	out.EmitDword(0) // reserved
	out.EmitDword(uint32(len(items)))
	for _, f := range items {
		out.EmitString(f.Name)
		out.Emit(0)
		out.EmitWord(f.Page)
		out.EmitDword(f.Addr)
	}
}

// emitVARI writes the script-global variable name table, index-order (a
// variable's ain index is its position here, matching LookupVar's slot
// allocation).
func emitVARI(out *buffer.Buffer, variables []string) {
	out.EmitString("VARI")
	out.EmitDword(0) // reserved
	out.EmitDword(uint32(len(variables)))
	for _, v := range variables {
		out.EmitString(v)
		out.Emit(0)
	}
}

// emitMSGIHead writes the MSGI section header; the message bytes themselves
// live in a separate rotated buffer appended after the main section stream,
// matching ain_write's two ain_write_buf calls.
func emitMSGIHead(out *buffer.Buffer, msgCount int) {
	out.EmitString("MSGI")
	out.EmitDword(0) // reserved
	out.EmitDword(uint32(msgCount))
}

// writeRotated writes buf's bytes through the AIN file's whole-stream
// obfuscation: each byte is rotated right by 2 bits, matching
// ain_write_buf's `*p >> 2 | *p << 6`.
func writeRotated(w io.Writer, buf *buffer.Buffer) error {
	bs := buf.Bytes()
	rotated := make([]byte, len(bs))
	for i, b := range bs {
		rotated[i] = b>>2 | b<<6
	}
	_, err := w.Write(rotated)
	return err
}

// AinFunction is one function's page/address as recorded in an AIN file's
// FUNC section, keyed by name (matching ain_read's Map *functions).
type AinFunction struct {
	Page uint16
	Addr uint32
}

// AinDLLFunc is one exported DLL function's declared argument types, as
// recorded in an AIN file's HEL0 section.
type AinDLLFunc struct {
	Name     string
	ArgTypes []uint32
}

// Ain is a parsed AIN metadata file: the DLL interface table, the function
// address table, the variable name table, and (ain-message mode) the
// external message pool, matching the decompiler's Ain struct.
type Ain struct {
	Dlls      map[string][]*AinDLLFunc
	Functions map[string]*AinFunction
	Variables []string
	Messages  []string
}

// Read parses an AIN file's bytes, matching ain_read in the decompiler's
// ain.c: the AINI magic, then the whole-buffer 2-bit counter-rotation that
// Write applied, then a sequence of self-identifying sections (HEL0, FUNC,
// VARI, MSGI) read until EOF.
func Read(data []byte) (*Ain, error) {
	if len(data) < 4 || string(data[:4]) != "AINI" {
		return nil, errNotAinFile
	}
	body := make([]byte, len(data)-4)
	for i, b := range data[4:] {
		body[i] = b<<2 | b>>6
	}

	r := &ainReader{data: body, pos: 4} // skip the leading reserved dword(4)
	ain := &Ain{}
	for r.pos < len(r.data) {
		switch string(r.data[r.pos : r.pos+4]) {
		case "HEL0":
			dlls, err := r.readHEL0()
			if err != nil {
				return nil, err
			}
			ain.Dlls = dlls
		case "FUNC":
			funcs, err := r.readFUNC()
			if err != nil {
				return nil, err
			}
			ain.Functions = funcs
		case "VARI":
			vars, err := r.readStrings()
			if err != nil {
				return nil, err
			}
			ain.Variables = vars
		case "MSGI":
			msgs, err := r.readStrings()
			if err != nil {
				return nil, err
			}
			ain.Messages = msgs
		default:
			return nil, errUnknownSection
		}
	}
	return ain, nil
}

type ainReader struct {
	data []byte
	pos  int
}

func (r *ainReader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *ainReader) u16() uint16 {
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *ainReader) string() string {
	start := r.pos
	for r.data[r.pos] != 0 {
		r.pos++
	}
	s := string(r.data[start:r.pos])
	r.pos++ // skip the null terminator
	return s
}

func (r *ainReader) readHEL0() (map[string][]*AinDLLFunc, error) {
	r.pos += 8 // section tag + reserved dword
	dlls := make(map[string][]*AinDLLFunc)
	dllCount := r.u32()
	for i := uint32(0); i < dllCount; i++ {
		name := r.string()
		funcCount := r.u32()
		funcs := make([]*AinDLLFunc, funcCount)
		for j := uint32(0); j < funcCount; j++ {
			fname := r.string()
			argc := r.u32()
			argtypes := make([]uint32, argc)
			for k := range argtypes {
				argtypes[k] = r.u32()
			}
			funcs[j] = &AinDLLFunc{Name: fname, ArgTypes: argtypes}
		}
		dlls[name] = funcs
	}
	return dlls, nil
}

func (r *ainReader) readFUNC() (map[string]*AinFunction, error) {
	r.pos += 8
	functions := make(map[string]*AinFunction)
	count := r.u32()
	for i := uint32(0); i < count; i++ {
		name := r.string()
		page := r.u16()
		addr := r.u32()
		functions[name] = &AinFunction{Page: page, Addr: addr}
	}
	return functions, nil
}

func (r *ainReader) readStrings() ([]string, error) {
	r.pos += 8
	count := r.u32()
	out := make([]string, count)
	for i := range out {
		out[i] = r.string()
	}
	return out, nil
}
