package bcf

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
	"github.com/solidgenomics/variantcodec/variant/verr"
)

func testHeader(t *testing.T) *header.Header {
	t.Helper()
	h := header.New()
	h.FileFormat = "VCFv4.3"
	h.AddContig(&header.Contig{ID: "1", IDX: -1})
	h.AddFilter(&header.Filter{ID: "LowQual", IDX: -1, Description: "low"})
	h.AddInfo(&header.Info{ID: "NS", IDX: -1, Number: header.FixedNumber(1), Type: header.TypeInteger, Description: "ns"})
	h.AddInfo(&header.Info{ID: "AF", IDX: -1, Number: header.Number{Kind: header.NumberA}, Type: header.TypeFloat, Description: "af"})
	h.AddInfo(&header.Info{ID: "DB", IDX: -1, Number: header.FixedNumber(0), Type: header.TypeFlag, Description: "db"})
	h.AddFormat(&header.Format{ID: "GT", IDX: -1, Number: header.FixedNumber(1), Type: header.TypeString, Description: "gt"})
	h.AddFormat(&header.Format{ID: "DP", IDX: -1, Number: header.FixedNumber(1), Type: header.TypeInteger, Description: "dp"})
	h.SampleNames = []string{"S1", "S2"}
	require.NoError(t, h.IdxUpdate())
	return h
}

func TestBCFMagicValidation(t *testing.T) {
	_, err := NewReader(strings.NewReader("BAM\x01"))
	require.Error(t, err)
	assert.True(t, verr.Is(err, verr.CodeFormat))
}

func TestBCFEmptyStreamIsZeroRecords(t *testing.T) {
	h := testHeader(t)
	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultWriterOptions())
	require.NoError(t, w.SetHeader(h))
	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBCFRecordRoundTrip(t *testing.T) {
	h := testHeader(t)
	rec := &variant.Record{
		Header: h,
		Chrom:  "1",
		Pos:    100,
		ID:     "rs1",
		Ref:    "A",
		Alt:    []string{"C", "T"},
		Qual:   30.0,
		Filter: []string{"PASS"},
		Info: []variant.InfoEntry{
			{Key: "NS", Value: value.Owned{Kind: value.Int32, I32: 3}},
			{Key: "AF", Value: value.Owned{Kind: value.VecFloat32, VF32: []float32{0.1, 0.2}}},
			{Key: "DB", Value: value.Owned{Kind: value.Flag}},
		},
		FormatKeys: []string{"GT", "DP"},
		Genotypes: []variant.GenotypeEntry{
			{Key: "GT", Column: value.GenotypeColumn{Kind: value.String, Samples: [][]value.Owned{
				{{Kind: value.String, Str: "0|1"}},
				{{Kind: value.String, Str: "1/1"}},
			}}},
			{Key: "DP", Column: value.GenotypeColumn{Kind: value.Int32, Samples: [][]value.Owned{
				{{Kind: value.Int32, I32: 10}},
				{{Kind: value.Int32, I32: 20}},
			}}},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultWriterOptions())
	require.NoError(t, w.SetHeader(h))
	require.NoError(t, w.WriteRecord(rec))
	require.NoError(t, w.Close())

	rd, err := NewReader(&buf)
	require.NoError(t, err)

	got, err := rd.Next()
	require.NoError(t, err)

	assert.Equal(t, "1", got.Chrom)
	assert.Equal(t, 100, got.Pos)
	assert.Equal(t, "rs1", got.ID)
	assert.Equal(t, "A", got.Ref)
	assert.Equal(t, []string{"C", "T"}, got.Alt)
	assert.InDelta(t, 30.0, got.Qual, 0.001)
	assert.Equal(t, []string{"PASS"}, got.Filter)

	ns, ok := got.InfoByKey("NS")
	require.True(t, ok)
	assert.Equal(t, int32(3), ns.Value.I32)

	af, ok := got.InfoByKey("AF")
	require.True(t, ok)
	require.Len(t, af.Value.VF32, 2)
	assert.InDelta(t, 0.1, af.Value.VF32[0], 0.001)
	assert.InDelta(t, 0.2, af.Value.VF32[1], 0.001)

	db, ok := got.InfoByKey("DB")
	require.True(t, ok)
	assert.True(t, db.Value.IsFlag())

	gt, ok := got.GenotypeByKey("GT")
	require.True(t, ok)
	require.Len(t, gt.Column.Samples, 2)
	assert.Equal(t, "0|1", gt.Column.Samples[0][0].Str)
	assert.Equal(t, "1/1", gt.Column.Samples[1][0].Str)

	dp, ok := got.GenotypeByKey("DP")
	require.True(t, ok)
	assert.Equal(t, int32(10), dp.Column.Samples[0][0].I32)
	assert.Equal(t, int32(20), dp.Column.Samples[1][0].I32)

	_, err = rd.Next()
	assert.Error(t, err)
}

func TestBCFTruncatedRecordIsFormatError(t *testing.T) {
	h := testHeader(t)
	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultWriterOptions())
	require.NoError(t, w.SetHeader(h))
	rec := &variant.Record{Header: h, Chrom: "1", Pos: 1, Ref: "A", Alt: []string{"C"}, Qual: value.MissingFloat32()}
	require.NoError(t, w.WriteRecord(rec))
	require.NoError(t, w.Close())

	full := buf.Bytes()
	truncated := full[:len(full)-4]

	rd, err := NewReader(bytes.NewReader(truncated))
	require.NoError(t, err)
	_, err = rd.Next()
	assert.Error(t, err)
	assert.True(t, verr.Is(err, verr.CodeFormat))
}
