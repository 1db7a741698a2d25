package header

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalHeader = `##fileformat=VCFv4.3
##contig=<ID=1>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
`

func TestParseMinimalHeader(t *testing.T) {
	h, err := Parse(strings.NewReader(minimalHeader))
	require.NoError(t, err)
	assert.Equal(t, "VCFv4.3", h.FileFormat)
	require.Len(t, h.Contigs(), 1)
	assert.Equal(t, "1", h.Contigs()[0].ID)
	assert.Nil(t, h.SampleNames)

	f, ok := h.FilterByID("PASS")
	require.True(t, ok)
	assert.Equal(t, 0, f.IDX)
}

func TestHeaderRoundTripWithoutIDX(t *testing.T) {
	h := New()
	h.FileFormat = "VCFv4.3"
	h.AddContig(&Contig{ID: "chr1", IDX: -1, Length: 1000})
	h.AddInfo(&Info{ID: "NS", IDX: -1, Number: FixedNumber(1), Type: TypeInteger, Description: "\"Number of samples\""})
	h.AddFormat(&Format{ID: "GT", IDX: -1, Number: FixedNumber(1), Type: TypeString, Description: "\"Genotype\""})
	require.NoError(t, h.IdxUpdate())

	var buf bytes.Buffer
	_, err := h.WriteTo(&buf, false)
	require.NoError(t, err)

	h2, err := Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, h.FileFormat, h2.FileFormat)
	require.Len(t, h2.Contigs(), 1)
	assert.Equal(t, "chr1", h2.Contigs()[0].ID)
	assert.Equal(t, 1000, h2.Contigs()[0].Length)

	info, ok := h2.InfoByID("NS")
	require.True(t, ok)
	assert.Equal(t, FixedNumber(1), info.Number)
	assert.Equal(t, TypeInteger, info.Type)
}

func TestHeaderRoundTripWithIDXIsFixedPoint(t *testing.T) {
	h := New()
	h.FileFormat = "VCFv4.3"
	h.AddContig(&Contig{ID: "1", IDX: 0, Length: -1})
	h.AddInfo(&Info{ID: "DP", IDX: 1, Number: FixedNumber(1), Type: TypeInteger, Description: "\"Depth\""})
	require.NoError(t, h.IdxUpdate())

	var buf1 bytes.Buffer
	_, err := h.WriteTo(&buf1, true)
	require.NoError(t, err)

	h2, err := Parse(strings.NewReader(buf1.String()))
	require.NoError(t, err)

	var buf2 bytes.Buffer
	_, err = h2.WriteTo(&buf2, true)
	require.NoError(t, err)

	assert.Equal(t, buf1.String(), buf2.String())
}

func TestIdxUpdateAssignsMissingIDX(t *testing.T) {
	h := New()
	h.FileFormat = "VCFv4.3"
	h.AddInfo(&Info{ID: "A", IDX: -1, Number: FixedNumber(1), Type: TypeInteger, Description: "a"})
	h.AddInfo(&Info{ID: "B", IDX: -1, Number: FixedNumber(1), Type: TypeInteger, Description: "b"})
	require.NoError(t, h.IdxUpdate())

	a, _ := h.InfoByID("A")
	b, _ := h.InfoByID("B")
	assert.NotEqual(t, a.IDX, b.IDX)
	assert.Greater(t, a.IDX, 0)
	assert.Greater(t, b.IDX, 0)
	require.NoError(t, h.IdxValidate())
}

func TestIdxBijection(t *testing.T) {
	h := New()
	h.FileFormat = "VCFv4.3"
	h.AddFilter(&Filter{ID: "LowQual", IDX: -1, Description: "low qual"})
	h.AddInfo(&Info{ID: "NS", IDX: -1, Number: FixedNumber(1), Type: TypeInteger, Description: "ns"})
	h.AddFormat(&Format{ID: "GT", IDX: -1, Number: FixedNumber(1), Type: TypeString, Description: "gt"})
	h.AddContig(&Contig{ID: "1", IDX: -1})
	h.AddContig(&Contig{ID: "2", IDX: -1})
	require.NoError(t, h.IdxUpdate())

	for _, f := range h.Filters() {
		got, ok := h.FilterByIDX(f.IDX)
		require.True(t, ok)
		assert.Equal(t, f.ID, got.ID)
	}
	for _, i := range h.Infos() {
		got, ok := h.InfoByIDX(i.IDX)
		require.True(t, ok)
		assert.Equal(t, i.ID, got.ID)
	}
	for _, c := range h.Contigs() {
		got, ok := h.ContigByIDX(c.IDX)
		require.True(t, ok)
		assert.Equal(t, c.ID, got.ID)
	}
}

func TestIdxUpdateDetectsConflict(t *testing.T) {
	h := New()
	h.FileFormat = "VCFv4.3"
	h.AddInfo(&Info{ID: "A", IDX: 5, Number: FixedNumber(1), Type: TypeInteger, Description: "a"})
	h.AddInfo(&Info{ID: "B", IDX: 5, Number: FixedNumber(1), Type: TypeInteger, Description: "b"})
	err := h.IdxUpdate()
	require.Error(t, err)
	var idxErr *IdxError
	assert.ErrorAs(t, err, &idxErr)
}

func TestReservedTables(t *testing.T) {
	num, typ, _, ok := ReservedInfo("AF")
	require.True(t, ok)
	assert.Equal(t, NumberA, num.Kind)
	assert.Equal(t, TypeFloat, typ)

	num, typ, _, ok = ReservedFormat("GT")
	require.True(t, ok)
	assert.Equal(t, FixedNumber(1), num)
	assert.Equal(t, TypeString, typ)

	_, _, _, ok = ReservedInfo("NOT_A_KEY")
	assert.False(t, ok)
}
