package compile

import (
	"github.com/kichikuou-go/sys35c/internal/lexer"
)

// HELType enumerates the DLL-call parameter types declared in a `.hel`
// interface file (hel.c's HELType/hel_type_names table). Only HELPword,
// HELInt, and HELIString take an expression argument at the call site;
// every interface-pointer type is implicit (the call always passes the
// engine's singleton instance) and HELIConstString takes a double-quoted
// string literal.
type HELType int

const (
	HELPword HELType = iota
	HELInt
	HELISurface
	HELIString
	HELIWinMsg
	HELITimer
	HELIUI
	HELISys3xDIB
	HELISys3xCG
	HELISys3xStringTable
	HELISys3xSystem
	HELISys3xMusic
	HELISys3xMsgString
	HELISys3xInputDevice
	HELISys3x
	HELIConstString
)

var helTypeNames = map[string]HELType{
	"pword":             HELPword,
	"int":                HELInt,
	"ISurface":           HELISurface,
	"IString":            HELIString,
	"IWinMsg":            HELIWinMsg,
	"ITimer":             HELITimer,
	"IUI":                HELIUI,
	"ISys3xDIB":          HELISys3xDIB,
	"ISys3xCG":           HELISys3xCG,
	"ISys3xStringTable":  HELISys3xStringTable,
	"ISys3xSystem":       HELISys3xSystem,
	"ISys3xMusic":        HELISys3xMusic,
	"ISys3xMsgString":    HELISys3xMsgString,
	"ISys3xInputDevice":  HELISys3xInputDevice,
	"ISys3x":             HELISys3x,
	"IConstString":       HELIConstString,
}

const maxDLLFuncParams = 20

// DLLFunc is one exported function declaration from a `.hel` file.
type DLLFunc struct {
	Name     string
	ArgTypes []HELType
}

// DLL is one `name.hel` interface file's parsed function table, indexed by
// declaration order (the order ain.c's FUNC/DLL table and dll_call's
// by-index lookup both depend on).
type DLL struct {
	Name  string
	Funcs []*DLLFunc
}

// ParseHEL parses a `.hel` interface file's text into its function table,
// matching parse_hel/fundecl/params in hel.c.
func ParseHEL(name, source string) (*DLL, error) {
	l := lexer.New(source, name, -1, nil)
	dll := &DLL{Name: name}
	for {
		if err := l.SkipWhitespaces(); err != nil {
			return nil, err
		}
		if l.Pos >= len(l.Buf) {
			break
		}
		fn, err := parseFunDecl(l)
		if err != nil {
			return nil, err
		}
		dll.Funcs = append(dll.Funcs, fn)
	}
	return dll, nil
}

func helIdentifier(l *lexer.Lexer) (string, error) {
	if err := l.SkipWhitespaces(); err != nil {
		return "", err
	}
	top := l.Pos
	c := l.Buf[l.Pos]
	if !isAlphaU(c) && c != '_' {
		return "", errAtL(l, top, "identifier expected")
	}
	for l.Pos < len(l.Buf) {
		c := l.Buf[l.Pos]
		if isAlnumU(c) || c == '_' {
			l.Pos++
		} else {
			break
		}
	}
	return l.Buf[top:l.Pos], nil
}

func isAlphaU(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isAlnumU(c byte) bool {
	return isAlphaU(c) || (c >= '0' && c <= '9')
}

func errAtL(l *lexer.Lexer, pos int, msg string) error {
	return &lexer.Error{Pos: pos, Msg: msg}
}

func parseFunDecl(l *lexer.Lexer) (*DLLFunc, error) {
	ok, err := l.ConsumeKeyword("void")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errAtL(l, l.Pos, "keyword 'void' expected")
	}
	name, err := helIdentifier(l)
	if err != nil {
		return nil, err
	}
	if err := l.Expect('('); err != nil {
		return nil, err
	}
	fn := &DLLFunc{Name: name}
	isVoid, err := l.ConsumeKeyword("void")
	if err != nil {
		return nil, err
	}
	if !isVoid {
		for {
			typeName, err := helIdentifier(l)
			if err != nil {
				return nil, err
			}
			if _, err := helIdentifier(l); err != nil { // parameter name, discarded
				return nil, err
			}
			if len(fn.ArgTypes) >= maxDLLFuncParams {
				return nil, errAtL(l, l.Pos, name+": too many parameters")
			}
			t, ok := helTypeNames[typeName]
			if !ok {
				return nil, errAtL(l, l.Pos, "invalid type")
			}
			fn.ArgTypes = append(fn.ArgTypes, t)
			more, err := l.Consume(',')
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
	}
	if err := l.Expect(')'); err != nil {
		return nil, err
	}
	return fn, nil
}

// takesExpr reports whether HELType t consumes an expression argument at
// the call site (dll_arguments in compile.c).
func takesExpr(t HELType) bool {
	switch t {
	case HELPword, HELInt, HELIString:
		return true
	default:
		return false
	}
}

// HelIndex finds dllName's index within c.Dlls, matching hel_index.
func (c *Context) HelIndex(dllName string) int {
	for i, d := range c.Dlls {
		if d.Name == dllName && len(d.Funcs) > 0 {
			return i
		}
	}
	return -1
}
