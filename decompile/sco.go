// Package decompile turns compiled System 3.x SCO bytecode back into
// source text: a linear bytecode walker paired with the same CALI postfix
// expression grammar the compiler emits, annotated by a preprocessing pass
// that marks function entry points and data-table regions so they're
// skipped rather than misread as commands. Grounded on the reference
// decompiler (decompiler/{xsys35dc,preprocess,decompile,cali,ain}.c).
package decompile

import (
	"encoding/binary"
	"fmt"
)

// ScoVersion mirrors the compiler's header magic, identified from the raw
// bytes rather than carried alongside them.
type ScoVersion int

const (
	SCOS350 ScoVersion = iota
	SCOS351
	SCO153S
	SCOS360
	SCOS380
)

// mark bits annotate one byte offset within a Sco's data, steering the
// linear walker around bytes that are not commands: a data table's 32-bit
// address cells, an unparsed data blob, or (informational only) a
// known function entry point. Matches preprocess.c's FUNC_TOP/DATA/
// DATA_TABLE bit flags.
type markBit uint8

const (
	markFuncTop   markBit = 1 << iota // a function entry point (from the AIN FUNC table)
	markData                          // a data blob: walk bytes verbatim, not as commands
	markDataTable                     // a table of data-block addresses: walk as 4-byte cells
)

// Sco is one decompiled page: its raw bytecode, the per-byte annotation
// produced by Preprocess, and the header fields read out of it. Matches the
// decompiler's Sco struct.
type Sco struct {
	Data     []byte
	Mark     []markBit // len(Mark) == len(Data)+1, one extra slot for the EOF sentinel
	Version  ScoVersion
	HdrSize  uint32
	FileSize uint32
	Page     uint32
	SrcName  string
	ScoName  string // the archive entry's own name, for diagnostics
}

// NewSco parses data's SCO header, matching sco_new in xsys35dc.c.
func NewSco(scoName string, data []byte) (*Sco, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%s: truncated SCO header", scoName)
	}
	var ver ScoVersion
	switch string(data[:4]) {
	case "S350":
		ver = SCOS350
	case "S351":
		ver = SCOS351
	case "153S":
		ver = SCO153S
	case "S360":
		ver = SCOS360
	case "S380":
		ver = SCOS380
	default:
		return nil, fmt.Errorf("%s: unknown SCO signature", scoName)
	}
	hdrsize := binary.LittleEndian.Uint32(data[4:8])
	filesize := binary.LittleEndian.Uint32(data[8:12])
	page := binary.LittleEndian.Uint32(data[12:16])
	namelen := int(binary.LittleEndian.Uint16(data[16:18]))
	if 18+namelen > len(data) {
		return nil, fmt.Errorf("%s: truncated SCO header", scoName)
	}
	srcName := string(data[18 : 18+namelen])

	if int(filesize) != len(data) {
		return nil, fmt.Errorf("%s: unexpected file size in SCO header (expected %d, got %d)",
			scoName, len(data), filesize)
	}

	return &Sco{
		Data:     data,
		Mark:     make([]markBit, len(data)+1),
		Version:  ver,
		HdrSize:  hdrsize,
		FileSize: filesize,
		Page:     page,
		SrcName:  srcName,
		ScoName:  scoName,
	}, nil
}
