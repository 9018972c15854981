package sjiskana

import (
	"golang.org/x/text/encoding/japanese"
)

// shiftJISCodec is the production Codec, backed by golang.org/x/text's
// Shift-JIS table. It is the closest ecosystem analogue available to the
// original implementation's bespoke sjis2utf/utf2sjis conversion tables,
// which the spec explicitly treats as an opaque, out-of-scope collaborator.
type shiftJISCodec struct{}

// NewShiftJISCodec returns the default Codec implementation.
func NewShiftJISCodec() Codec {
	return shiftJISCodec{}
}

func (shiftJISCodec) ToSJIS(s string, sub byte) []byte {
	enc := japanese.ShiftJIS.NewEncoder()
	out, err := enc.Bytes([]byte(s))
	if err == nil {
		return out
	}
	// Fall back to per-rune substitution so a single unmappable character
	// doesn't drop the whole string, mirroring utf2sjis_sub's substitution
	// behavior.
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		b, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			buf = append(buf, sub)
			continue
		}
		buf = append(buf, b...)
	}
	return buf
}

func (shiftJISCodec) ToUTF8(sjis []byte) string {
	dec := japanese.ShiftJIS.NewDecoder()
	out, err := dec.Bytes(sjis)
	if err != nil {
		return string(sjis)
	}
	return string(out)
}
