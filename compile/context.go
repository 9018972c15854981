// Package compile implements the two-pass System 3.x script compiler: a
// preprocess pass that discovers declarations (functions, constants,
// labels) into a discarded buffer, followed by a compile pass that emits
// real SCO bytecode sharing the exact same parser logic.
package compile

import (
	"fmt"

	"github.com/kichikuou-go/sys35c/internal/buffer"
	"github.com/kichikuou-go/sys35c/internal/lexer"
	"github.com/kichikuou-go/sys35c/internal/sjiskana"
)

// SysVer aliases the lexer's version gate so callers only need one import.
type SysVer = lexer.SysVer

const (
	System35 = lexer.System35
	System36 = lexer.System36
	System38 = lexer.System38
	System39 = lexer.System39
)

// ScoVersion selects the SCO file header magic (§4.5).
type ScoVersion int

const (
	SCOS350 ScoVersion = iota
	SCOS351
	SCO153S
	SCOS360
	SCOS380
)

func (v ScoVersion) Magic() string {
	switch v {
	case SCOS350:
		return "S350"
	case SCOS351:
		return "S351"
	case SCO153S:
		return "153S"
	case SCOS360:
		return "S360"
	case SCOS380:
		return "S380"
	default:
		return "S380"
	}
}

// Config mirrors the reference compiler's Config struct (config.c):
// target-version gates and the handful of feature toggles loaded from the
// source-list config file.
type Config struct {
	SysVer           SysVer
	ScoVer           ScoVersion
	Unicode          bool
	DisableElse      bool
	DisableAinMsg    bool
	DisableAinVar    bool
	OldSR            bool
}

// DefaultConfig matches config.c's compile-time defaults.
func DefaultConfig() Config {
	return Config{SysVer: System38, ScoVer: SCOS380}
}

func (c Config) useAinMessage() bool {
	return c.SysVer == System39 && !c.DisableAinMsg
}

// Function is a user-defined label-callable routine (defun/funcall). Page
// and Addr identify a not-yet-resolved call site until Resolved is set, in
// which case they hold the function's actual page/address — matching
// Function in xsys35c.h exactly, including its reuse of the same two fields
// for both purposes across the two passes.
type Function struct {
	Name     string
	Params   []string
	Resolved bool
	Page     uint16
	Addr     uint32
}

// Label is a jump target within one page (defined via `*label:` or
// referenced via `@label`). HoleAddr threads a linked list of not-yet
// patched forward references through the output buffer itself (see Fixup).
type Label struct {
	Addr       uint32
	HoleAddr   uint32
	HasAddr    bool
	SourcePos  int
	IsFunction bool // set by `\` (label call) so the decompiler can tell apart jump vs call targets
}

// Sco holds one page's finished buffer plus its per-page metadata.
type Sco struct {
	Buf       *buffer.Buffer
	SrcName   string
	Page      int
	AldVolume uint8
}

// Context is the compiler's full mutable state for one compilation run,
// replacing the reference implementation's module-level static globals
// (compiler, labels, out, compiling, branch_end_stack, menu_item_start) with
// one struct a Parser is built around (§5's concurrency-model note).
type Context struct {
	Config Config
	Codec  sjiskana.Codec

	SrcNames  []string
	Variables []string
	Symbols   map[string]*Symbol
	Functions map[string]*Function
	Dlls      []*DLL

	Scos []*Sco

	// Per-compile-call (reset in prepare()/Compile/Preprocess):
	Lexer          *lexer.Lexer
	Out            *buffer.Buffer
	Compiling      bool
	Labels         map[string]*Label
	BranchEndStack []uint32 // non-nil for the whole page on System 3.5 (set in prepare), nil otherwise
	MenuItemStart  int      // source offset+1 of an open `$...$` menu item, or 0
	MsgBuf         *buffer.Buffer
	MsgCount       int

	Warnings []string // non-fatal diagnostics collected via warnAt, e.g. deprecated ZU
}

// NewContext creates a Context ready to preprocess/compile srcNames in
// order. variables pre-seeds the variable slot table (e.g. from a -v list
// read out of an existing ain/ald pair) exactly as new_compiler's trailing
// loop registers comp->variables into comp->symbols before anything is
// parsed.
func NewContext(cfg Config, codec sjiskana.Codec, srcNames []string, variables []string) *Context {
	c := &Context{
		Config:    cfg,
		Codec:     codec,
		SrcNames:  srcNames,
		Variables: variables,
		Symbols:   make(map[string]*Symbol),
		Functions: make(map[string]*Function),
		Scos:      make([]*Sco, len(srcNames)),
		MsgBuf:    buffer.New(),
	}
	for i, name := range variables {
		c.Symbols[name] = &Symbol{Kind: SymVariable, Value: i}
	}
	return c
}

// CompileError is a fatal, source-located error, matching error_at's
// "file line N column M: message" plus source-line-and-caret rendering
// (§7).
type CompileError struct {
	File    string
	Line    int
	Column  int
	Snippet string
	Message string
}

func (e *CompileError) Error() string {
	caret := make([]byte, e.Column-1)
	for i := range caret {
		caret[i] = ' '
	}
	return fmt.Sprintf("%s line %d column %d: %s\n%s\n%s^",
		e.File, e.Line, e.Column, e.Message, e.Snippet, caret)
}

// errorf builds a CompileError located at the lexer's current cursor,
// matching error_at(input, ...) call sites throughout compile.c.
func (c *Context) errorf(format string, args ...any) error {
	return c.errorAt(c.Lexer.Pos, format, args...)
}

// errorAt builds a CompileError located at an arbitrary byte offset into
// the current source, matching error_at(pos, ...) call sites that point at
// an earlier token (e.g. "undefined label" pointing at the label name).
func (c *Context) errorAt(pos int, format string, args ...any) error {
	l := c.Lexer
	line, col, snippet := locate(l.Buf, pos)
	return &CompileError{
		File:    l.Name,
		Line:    line,
		Column:  col,
		Snippet: snippet,
		Message: fmt.Sprintf(format, args...),
	}
}

// warnAt records a non-fatal diagnostic located at an arbitrary byte offset
// into the current source, matching warn_at's "file line N column M: message"
// plus source-line-and-caret rendering. Unlike errorAt, this never aborts
// compilation.
func (c *Context) warnAt(pos int, format string, args ...any) {
	l := c.Lexer
	line, col, snippet := locate(l.Buf, pos)
	caret := make([]byte, col-1)
	for i := range caret {
		caret[i] = ' '
	}
	msg := fmt.Sprintf(format, args...)
	c.Warnings = append(c.Warnings, fmt.Sprintf("%s line %d column %d: %s\n%s\n%s^",
		l.Name, line, col, msg, snippet, caret))
}

// locate finds the 1-based line/column of byte offset pos within src, and
// returns that line's text (sans trailing newline), matching warn_at's
// linear scan.
func locate(src string, pos int) (line, col int, snippet string) {
	line = 1
	begin := 0
	for {
		end := indexByteFrom(src, begin, '\n')
		if end < 0 {
			end = len(src)
		}
		if pos <= end {
			return line, pos - begin + 1, src[begin:end]
		}
		if end >= len(src) {
			return line, pos - begin + 1, src[begin:end]
		}
		begin = end + 1
		line++
	}
}

func indexByteFrom(s string, from int, c byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
