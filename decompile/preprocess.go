package decompile

import (
	"encoding/binary"

	"github.com/kichikuou-go/sys35c/ain"
)

// nightDataLabels are label names hard-coded in NIGHTDLL.DLL (a
// System-3.9-era game engine extension) that refer to whole data blocks
// rather than code; when the ain's DLL table names NIGHTDLL, functions
// with one of these names are marked as data instead of code, matching
// night_data_labels in preprocess.c.
var nightDataLabels = []string{
	"MonsterData",
}

// Preprocess annotates every Sco's Mark table: function entry points and
// data-block regions discovered from the AIN function table, plus data
// tables found by scanning the bytecode itself for the `#<addr><cali>`
// pattern and (System 3.9) the dataSetPointer command. Matches preprocess()
// in preprocess.c. ain may be nil when no AIN file was supplied.
func Preprocess(scos []*Sco, a *ain.Ain) {
	if a != nil && a.Functions != nil {
		markFunctionsFromAin(scos, a)
	}
	for _, sco := range scos {
		if sco != nil {
			scanForDataTables(sco, scos, a)
		}
	}
}

func markFunctionsFromAin(scos []*Sco, a *ain.Ain) {
	dataLabels := make(map[string]bool)
	if a.Dlls != nil {
		if _, ok := a.Dlls["NIGHTDLL"]; ok {
			for _, name := range nightDataLabels {
				dataLabels[name] = true
			}
		}
	}

	for name, f := range a.Functions {
		page := int(f.Page) - 1
		if page < 0 || page >= len(scos) {
			continue
		}
		sco := scos[page]
		if sco == nil || f.Addr > sco.FileSize {
			continue
		}
		sco.Mark[f.Addr] |= markFuncTop
		if dataLabels[name] {
			sco.Mark[f.Addr] |= markData
		}
	}
}

// scanForDataTables heuristically marks locations that look like data
// blocks: `#<32-bit addr><2-byte cali>` patterns (label-address-as-data
// directives, compiled from the `#` command) and, when ain is non-nil
// (System 3.9 only), dataSetPointer call sites.
func scanForDataTables(sco *Sco, scos []*Sco, a *ain.Ain) {
	data := sco.Data
	hdrsize := int(sco.HdrSize)
	filesize := int(sco.FileSize)

	for i := hdrsize; i+6 <= filesize; i++ {
		if data[i] != '#' {
			continue
		}
		ptrAddr := binary.LittleEndian.Uint32(data[i+1:])
		if i+5 >= len(data) || data[i+5] != 0x7f { // not a simple 2-byte cali
			continue
		}
		if int(ptrAddr) < hdrsize || int(ptrAddr) > filesize-4 {
			continue
		}
		// Mark only backward references heuristically; forward references
		// are marked during the main analysis pass instead.
		if int(ptrAddr) < i {
			sco.Mark[ptrAddr] |= markDataTable
		}
		dataAddr := binary.LittleEndian.Uint32(data[ptrAddr:])
		if int(dataAddr) >= hdrsize && int(dataAddr) < filesize {
			sco.Mark[dataAddr] |= markData
		}
	}

	if a == nil {
		return // dataSetPointer only exists on System 3.9
	}
	for i := hdrsize; i+7 <= filesize; i++ {
		if data[i] != 0x2f || data[i+1] != 0x80 {
			continue
		}
		page := int(binary.LittleEndian.Uint16(data[i+2:])) - 1
		if page < 0 || page >= len(scos) {
			continue
		}
		target := scos[page]
		if target == nil {
			continue
		}
		addr := binary.LittleEndian.Uint32(data[i+4:])
		if int(addr) >= int(target.FileSize) {
			continue
		}
		if target.Mark[addr]&markFuncTop == 0 {
			continue // must already be marked via the AIN function table
		}
		target.Mark[addr] |= markData
	}
}
