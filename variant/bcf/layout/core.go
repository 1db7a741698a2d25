package layout

import (
	"encoding/binary"
	"fmt"
	"math"
)

// CoreSize is the fixed width of the BCF record core.
const CoreSize = 24

// RecordCore is the 24-byte fixed-width prefix of every BCF record, stored
// host-native but always marshaled little-endian regardless of host order.
type RecordCore struct {
	Chrom    int32   // contig IDX
	Pos      int32   // 0-based
	Rlen     int32   // reference length
	Qual     float32 // may be the float32 missing sentinel
	NInfo    uint16
	NAllele  uint16 // includes REF
	NSample  uint32 // 24-bit on the wire
	NFmt     uint8
}

// MarshalBinary renders the core as exactly CoreSize little-endian bytes.
func (c RecordCore) MarshalBinary() ([]byte, error) {
	if c.NSample > 0xFFFFFF {
		return nil, fmt.Errorf("layout: n_sample %d overflows 24 bits", c.NSample)
	}
	b := make([]byte, CoreSize)
	binary.LittleEndian.PutUint32(b[0:4], uint32(c.Chrom))
	binary.LittleEndian.PutUint32(b[4:8], uint32(c.Pos))
	binary.LittleEndian.PutUint32(b[8:12], uint32(c.Rlen))
	binary.LittleEndian.PutUint32(b[12:16], math.Float32bits(c.Qual))
	binary.LittleEndian.PutUint16(b[16:18], c.NInfo)
	binary.LittleEndian.PutUint16(b[18:20], c.NAllele)
	packed := c.NSample | uint32(c.NFmt)<<24
	binary.LittleEndian.PutUint32(b[20:24], packed)
	return b, nil
}

// UnmarshalBinary reads exactly CoreSize bytes of b (extra bytes ignored).
func (c *RecordCore) UnmarshalBinary(b []byte) error {
	if len(b) < CoreSize {
		return fmt.Errorf("layout: record core needs %d bytes, got %d", CoreSize, len(b))
	}
	c.Chrom = int32(binary.LittleEndian.Uint32(b[0:4]))
	c.Pos = int32(binary.LittleEndian.Uint32(b[4:8]))
	c.Rlen = int32(binary.LittleEndian.Uint32(b[8:12]))
	c.Qual = math.Float32frombits(binary.LittleEndian.Uint32(b[12:16]))
	c.NInfo = binary.LittleEndian.Uint16(b[16:18])
	c.NAllele = binary.LittleEndian.Uint16(b[18:20])
	packed := binary.LittleEndian.Uint32(b[20:24])
	c.NSample = packed & 0x00FFFFFF
	c.NFmt = uint8(packed >> 24)
	return nil
}
