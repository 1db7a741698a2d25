package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorRoundTripSmallCounts(t *testing.T) {
	for count := 0; count < 15; count++ {
		b := EncodeDescriptor(KindInt32, count)
		require.Len(t, b, 1)
		kind, n, consumed, err := DecodeDescriptor(b)
		require.NoError(t, err)
		assert.Equal(t, KindInt32, kind)
		assert.Equal(t, count, n)
		assert.Equal(t, 1, consumed)
	}
}

func TestDescriptorRoundTripEscapedCounts(t *testing.T) {
	cases := []int{15, 16, 127, 128, 32767, 32768, 1 << 20}
	for _, count := range cases {
		b := EncodeDescriptor(KindFloat32, count)
		kind, n, consumed, err := DecodeDescriptor(b)
		require.NoError(t, err)
		assert.Equal(t, KindFloat32, kind)
		assert.Equal(t, count, n)
		assert.Equal(t, len(b), consumed)
	}
}

func TestDecodeDescriptorRejectsReservedKind(t *testing.T) {
	_, _, _, err := DecodeDescriptor([]byte{0x04})
	assert.Error(t, err)
}

func TestDecodeDescriptorRejectsTruncated(t *testing.T) {
	_, _, _, err := DecodeDescriptor(nil)
	assert.Error(t, err)

	b := []byte{byte(15<<4) | byte(KindInt8)}
	_, _, _, err = DecodeDescriptor(b)
	assert.Error(t, err)
}

func TestRecordCoreRoundTrip(t *testing.T) {
	c := RecordCore{
		Chrom:   3,
		Pos:     99,
		Rlen:    1,
		Qual:    30.5,
		NInfo:   2,
		NAllele: 2,
		NSample: 1000,
		NFmt:    3,
	}
	b, err := c.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, CoreSize)

	var got RecordCore
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, c, got)
}

func TestRecordCoreRejectsOversizedSampleCount(t *testing.T) {
	c := RecordCore{NSample: 1 << 24}
	_, err := c.MarshalBinary()
	assert.Error(t, err)
}

func TestNarrowestIntKind(t *testing.T) {
	assert.Equal(t, KindInt8, NarrowestIntKind(-120, 127))
	assert.Equal(t, KindInt16, NarrowestIntKind(-120, 128))
	assert.Equal(t, KindInt16, NarrowestIntKind(-32760, 32767))
	assert.Equal(t, KindInt32, NarrowestIntKind(-32761, 32767))
	assert.Equal(t, KindInt32, NarrowestIntKind(0, 1<<20))
}
