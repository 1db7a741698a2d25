package layout

import (
	"encoding/binary"
	"fmt"
)

// EncodeDescriptor renders the one-byte (or escaped multi-byte) typed-value
// descriptor for kind/count. Counts 0..14 fit in the high
// nibble; count>=15 escapes to 15 followed by a typed integer carrying the
// real count.
func EncodeDescriptor(kind Kind, count int) []byte {
	if count < 0 {
		panic("layout: negative count")
	}
	if count < 15 {
		return []byte{byte(count<<4) | byte(kind)}
	}
	countKind, width := narrowestNonNegative(count)
	out := make([]byte, 0, 2+width)
	out = append(out, byte(15<<4)|byte(kind))
	out = append(out, byte(1<<4)|byte(countKind))
	switch countKind {
	case KindInt8:
		out = append(out, byte(count))
	case KindInt16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(count))
		out = append(out, b[:]...)
	case KindInt32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(count))
		out = append(out, b[:]...)
	}
	return out
}

// DecodeDescriptor parses a typed-value descriptor starting at b[0],
// returning the value kind, element count, and the number of bytes the
// descriptor itself consumed (1, or 2+width when the count escape fires).
func DecodeDescriptor(b []byte) (kind Kind, count int, consumed int, err error) {
	if len(b) < 1 {
		return 0, 0, 0, fmt.Errorf("layout: descriptor: empty input")
	}
	kind = Kind(b[0] & 0x0f)
	if !kind.valid() {
		return 0, 0, 0, fmt.Errorf("layout: descriptor: reserved/invalid kind nibble %d", b[0]&0x0f)
	}
	nibble := int(b[0] >> 4)
	if nibble < 15 {
		return kind, nibble, 1, nil
	}

	if len(b) < 2 {
		return 0, 0, 0, fmt.Errorf("layout: descriptor: truncated count escape")
	}
	countKind := Kind(b[1] & 0x0f)
	countNibble := int(b[1] >> 4)
	if countNibble != 1 {
		return 0, 0, 0, fmt.Errorf("layout: descriptor: count-escape integer must have count 1, got %d", countNibble)
	}
	w := countKind.Width()
	if len(b) < 2+w {
		return 0, 0, 0, fmt.Errorf("layout: descriptor: truncated count value")
	}
	switch countKind {
	case KindInt8:
		count = int(b[2])
	case KindInt16:
		count = int(binary.LittleEndian.Uint16(b[2:4]))
	case KindInt32:
		count = int(binary.LittleEndian.Uint32(b[2:6]))
	default:
		return 0, 0, 0, fmt.Errorf("layout: descriptor: invalid count-escape kind %d", countKind)
	}
	return kind, count, 2 + w, nil
}

// narrowestNonNegative picks the smallest integer Kind that can hold a
// non-negative count value.
func narrowestNonNegative(n int) (Kind, int) {
	switch {
	case n <= 0x7f:
		return KindInt8, 1
	case n <= 0x7fff:
		return KindInt16, 2
	default:
		return KindInt32, 4
	}
}
