package decompile

import (
	"encoding/binary"
	"testing"
)

func buildScoHeader(magic, srcName string, body []byte) []byte {
	namelen := len(srcName)
	hdrsize := (18 + namelen + 15) &^ 0xf
	buf := make([]byte, hdrsize)
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(hdrsize))
	binary.LittleEndian.PutUint32(buf[12:], 0) // page
	binary.LittleEndian.PutUint16(buf[16:], uint16(namelen))
	copy(buf[18:], srcName)
	buf = append(buf, body...)
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(buf)))
	return buf
}

func TestNewScoParsesHeader(t *testing.T) {
	data := buildScoHeader("S380", "A.ADV", []byte{'A', opEnd})
	sco, err := NewSco("A.SCO", data)
	if err != nil {
		t.Fatalf("NewSco: %v", err)
	}
	if sco.Version != SCOS380 {
		t.Errorf("Version = %v, want SCOS380", sco.Version)
	}
	if sco.SrcName != "A.ADV" {
		t.Errorf("SrcName = %q, want A.ADV", sco.SrcName)
	}
	if int(sco.FileSize) != len(data) {
		t.Errorf("FileSize = %d, want %d", sco.FileSize, len(data))
	}
	if len(sco.Mark) != len(data)+1 {
		t.Errorf("len(Mark) = %d, want %d", len(sco.Mark), len(data)+1)
	}
}

func TestNewScoRejectsUnknownMagic(t *testing.T) {
	data := buildScoHeader("XXXX", "A.ADV", nil)
	if _, err := NewSco("A.SCO", data); err == nil {
		t.Fatal("expected error for unknown SCO signature")
	}
}

func TestNewScoRejectsMismatchedFileSize(t *testing.T) {
	data := buildScoHeader("S380", "A.ADV", []byte{'A'})
	data = append(data, 0) // file now 1 byte longer than filesize says
	if _, err := NewSco("A.SCO", data); err == nil {
		t.Fatal("expected error for mismatched file size")
	}
}
