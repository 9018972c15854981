// Package ald implements AliceSoft's ALD archive container: a sector-indexed
// (256-byte sectors) multi-file archive used to bundle compiled SCO pages
// (and other resources, on the original multi-volume disks) into a single
// file. Grounded on the reference implementation's common/ald.c.
package ald

import (
	"encoding/binary"
	"io"
)

const sectorSize = 256

// epochDiff100ns is the difference between the Windows FILETIME epoch
// (1601-01-01) and the Unix epoch (1970-01-01), in 100ns units.
const epochDiff100ns = 116444736000000000

// Entry is one archived file. Volume is the 1-based disk number the entry
// belongs to (see Write). A nil *Entry at index i occupies its
// sector-pointer slot but contributes no header or data bytes, matching
// ald_read/ald_write's sparse Vector of AldEntry.
type Entry struct {
	Name      string
	Timestamp int64 // Unix seconds
	Data      []byte
	Volume    uint8
}

func headerSize(name string) int {
	namelen := len(name) + 1 // + null terminator
	return (namelen + 31) &^ 0xf
}

// Write serializes entries into the ALD container format for a single
// volume: a sector-pointer table (archive header, entry-count header, then
// one pointer per entry), sector-padding, a disk/index table, then each
// entry's header+data, sector-padded, and a fixed footer. Matches
// ald_write's (volume-aware) calling convention exercised by ald_test.c's
// test_write/test_multivolume_write.
//
// Entries that are nil, or whose Volume differs from volume, belong to a
// different disk: they keep their slot in the sector-pointer table (so
// indices stay stable across volumes) but contribute a zero-size pointer,
// a nulled disk-ID/index slot, and no header/data bytes at all, producing
// the sparse per-volume layout a multi-volume archive set requires.
func Write(entries []*Entry, volume uint8, w io.Writer) error {
	bw := &byteCounter{w: w}

	inVolume := func(e *Entry) bool {
		return e != nil && e.Volume == volume
	}

	sector := 0
	writePtr := func(size int) error {
		sector += (size + 0xff) >> 8
		return bw.write3(sector)
	}

	if err := writePtr((len(entries) + 2) * 3); err != nil {
		return err
	}
	if err := writePtr(len(entries) * 3); err != nil {
		return err
	}
	for _, e := range entries {
		size := 0
		if inVolume(e) {
			size = headerSize(e.Name) + len(e.Data)
		}
		if err := writePtr(size); err != nil {
			return err
		}
	}
	if err := bw.pad(); err != nil {
		return err
	}

	for i := 1; i <= len(entries); i++ {
		e := entries[i-1]
		if !inVolume(e) {
			if err := bw.write3(0); err != nil {
				return err
			}
			continue
		}
		if err := bw.writeByte(volume); err != nil {
			return err
		}
		if err := bw.write2(i); err != nil {
			return err
		}
	}
	if err := bw.pad(); err != nil {
		return err
	}

	for _, e := range entries {
		if !inVolume(e) {
			continue
		}
		if err := writeEntry(bw, e); err != nil {
			return err
		}
		if err := bw.pad(); err != nil {
			return err
		}
	}

	if err := bw.writeDword(0x14c4e); err != nil {
		return err
	}
	if err := bw.writeDword(0x10); err != nil {
		return err
	}
	if err := bw.writeDword(uint32(len(entries))<<8 | uint32(volume)); err != nil {
		return err
	}
	return bw.writeDword(0)
}

func writeEntry(bw *byteCounter, e *Entry) error {
	wtime := uint64(e.Timestamp*10000000 + epochDiff100ns)
	hdrlen := headerSize(e.Name)
	if err := bw.writeDword(uint32(hdrlen)); err != nil {
		return err
	}
	if err := bw.writeDword(uint32(len(e.Data))); err != nil {
		return err
	}
	if err := bw.writeDword(uint32(wtime)); err != nil {
		return err
	}
	if err := bw.writeDword(uint32(wtime >> 32)); err != nil {
		return err
	}
	if _, err := bw.Write([]byte(e.Name)); err != nil {
		return err
	}
	for i := 16 + len(e.Name); i < hdrlen; i++ {
		if err := bw.writeByte(0); err != nil {
			return err
		}
	}
	_, err := bw.Write(e.Data)
	return err
}

// byteCounter wraps an io.Writer, tracking the byte offset so pad() can
// align to the next 256-byte sector boundary, matching ald_write's use of
// ftell.
type byteCounter struct {
	w   io.Writer
	pos int64
}

func (b *byteCounter) Write(p []byte) (int, error) {
	n, err := b.w.Write(p)
	b.pos += int64(n)
	return n, err
}

func (b *byteCounter) writeByte(c byte) error {
	_, err := b.Write([]byte{c})
	return err
}

func (b *byteCounter) write2(n int) error {
	_, err := b.Write([]byte{byte(n), byte(n >> 8)})
	return err
}

func (b *byteCounter) write3(n int) error {
	_, err := b.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16)})
	return err
}

func (b *byteCounter) writeDword(n uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], n)
	_, err := b.Write(buf[:])
	return err
}

func (b *byteCounter) pad() error {
	for b.pos&0xff != 0 {
		if err := b.writeByte(0); err != nil {
			return err
		}
	}
	return nil
}

// Read parses an ALD container back into its entries. ald_read's own
// definition was not present in the retrieved sources (unlike ald_write);
// this is reconstructed from the write-side format above: a footer giving
// the entry count, a leading sector-pointer table giving each entry's start
// sector, then the entries themselves. A zero-size pointer slot yields a nil
// *Entry, matching the sparse Vector a multi-volume disk produces for
// entries that live on a different volume.
func Read(r io.ReaderAt, size int64) ([]*Entry, error) {
	if size < 16 {
		return nil, io.ErrUnexpectedEOF
	}
	var footer [16]byte
	if _, err := r.ReadAt(footer[:], size-16); err != nil {
		return nil, err
	}
	lenDiskID := binary.LittleEndian.Uint32(footer[8:12])
	n := int(lenDiskID >> 8)

	ptrTable := make([]byte, (n+2)*3)
	if _, err := r.ReadAt(ptrTable, 0); err != nil {
		return nil, err
	}
	sectors := make([]int, n+2)
	for i := range sectors {
		sectors[i] = int(ptrTable[i*3]) | int(ptrTable[i*3+1])<<8 | int(ptrTable[i*3+2])<<16
	}

	entries := make([]*Entry, n)
	for i := 0; i < n; i++ {
		if sectors[i+2] == sectors[i+1] {
			continue // gap: entry lives on a different volume
		}
		start := int64(sectors[i+1]) * sectorSize
		var hdr [16]byte
		if _, err := r.ReadAt(hdr[:], start); err != nil {
			return nil, err
		}
		hdrlen := binary.LittleEndian.Uint32(hdr[0:4])
		dataSize := binary.LittleEndian.Uint32(hdr[4:8])
		wtimeLo := binary.LittleEndian.Uint32(hdr[8:12])
		wtimeHi := binary.LittleEndian.Uint32(hdr[12:16])
		wtime := uint64(wtimeLo) | uint64(wtimeHi)<<32
		timestamp := (int64(wtime) - epochDiff100ns) / 10000000

		name := make([]byte, hdrlen-16)
		if _, err := r.ReadAt(name, start+16); err != nil {
			return nil, err
		}
		if nul := indexByte(name, 0); nul >= 0 {
			name = name[:nul]
		}

		data := make([]byte, dataSize)
		if _, err := r.ReadAt(data, start+int64(hdrlen)); err != nil {
			return nil, err
		}

		entries[i] = &Entry{Name: string(name), Timestamp: timestamp, Data: data}
	}
	return entries, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
