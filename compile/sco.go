package compile

import "github.com/kichikuou-go/sys35c/internal/buffer"

// scoInit writes the SCO file header: magic, header size, a placeholder
// file-size dword patched by scoFinalize, page number, and the source name,
// padded to a 16-byte boundary. Matches sco_init in sco.c.
func scoInit(b *buffer.Buffer, srcName string, pageno int, ver ScoVersion) {
	namelen := len(srcName)
	hdrsize := (18 + namelen + 15) &^ 0xf

	b.EmitString(ver.Magic())
	b.EmitDword(uint32(hdrsize))
	b.EmitDword(0) // file size, filled in by scoFinalize
	b.EmitDword(uint32(pageno))
	b.EmitWord(uint16(namelen))
	b.EmitString(srcName)
	for b.Len() < hdrsize {
		b.Emit(0)
	}
}

// scoFinalize back-patches the file-size dword at offset 8.
func scoFinalize(b *buffer.Buffer) {
	b.SwapDword(8, b.CurrentAddress())
}
