package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallestIntKind(t *testing.T) {
	tests := []struct {
		name string
		xs   []int32
		want Kind
	}{
		{"empty", nil, Int8},
		{"all small", []int32{-5, 0, 120, 127}, Int8},
		{"needs 16", []int32{-120, 200}, Int16},
		{"needs 32", []int32{-120, 40000}, Int32},
		{"boundary low int8", []int32{minInt8Packable}, Int8},
		{"just past int8 boundary", []int32{minInt8Packable - 1}, Int16},
		{"boundary high int16", []int32{maxInt16Packable}, Int16},
		{"just past int16 boundary", []int32{maxInt16Packable + 1}, Int32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SmallestIntKind(tt.xs))
		})
	}
}

func TestSentinelsRoundTrip(t *testing.T) {
	require.True(t, IsMissingFloat32(MissingFloat32()))
	require.True(t, IsEndOfVectorFloat32(EndOfVectorFloat32()))
	require.False(t, IsMissingFloat32(1.5))
	require.False(t, IsEndOfVectorFloat32(MissingFloat32()))

	assert.Equal(t, int8(-0x80), MissingInt8())
	assert.Equal(t, int8(-0x7f), EndOfVectorInt8())
	assert.Equal(t, int16(-0x8000), MissingInt16())
	assert.Equal(t, int32(-0x80000000), MissingInt32())
	assert.Equal(t, byte(0x07), MissingChar())
	assert.Equal(t, byte(0x00), EndOfVectorChar())
}

func TestViewCloneRoundTrip(t *testing.T) {
	v := View{Kind: VecString, VStr: [][]byte{[]byte("a"), []byte("bb")}}
	o := v.Clone()
	require.Equal(t, []string{"a", "bb"}, o.VStr)

	back := o.Borrow()
	require.Len(t, back.VStr, 2)
	assert.Equal(t, "a", string(back.VStr[0]))
}

func TestPackedGenotypeColumnRoundTrip(t *testing.T) {
	samples := [][]int32{{1, 2, 3}, {4}, {}}
	packed := PackInt32(samples)
	require.Equal(t, 3, packed.SampleCount())

	col := packed.ToJagged()
	require.Len(t, col.Samples, 3)
	assert.Equal(t, []Owned{{Kind: Int32, I32: 1}, {Kind: Int32, I32: 2}, {Kind: Int32, I32: 3}}, col.Samples[0])
	assert.Equal(t, []Owned{{Kind: Int32, I32: 4}}, col.Samples[1])
	assert.Empty(t, col.Samples[2])
}
