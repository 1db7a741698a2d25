package arrowexport

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/value"
)

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.WriteRecord(&variant.Record{
		Chrom: "1", Pos: 100, ID: "rs1", Ref: "A", Alt: []string{"C", "T"},
		Qual: 30.0, Filter: []string{"PASS"},
	}))
	require.NoError(t, w.WriteRecord(&variant.Record{
		Chrom: "2", Pos: 200, Ref: "G", Alt: []string{"A"},
		Qual: value.MissingFloat32(),
	}))
	require.NoError(t, w.Close())

	rdr, err := ipc.NewFileReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer rdr.Close()

	require.True(t, rdr.NumRecords() >= 1)
	rec, err := rdr.Record(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, int64(7), rec.NumCols())
}
