package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteAndReadFileStats(t *testing.T) {
	s := openInMemory(t)

	stats := []FileStats{
		{Path: "a.vcf", Format: "vcf", RecordCount: 10, FilterValues: []string{"PASS", "LowQual"}, Contigs: []string{"1", "2"}},
		{Path: "b.bcf", Format: "bcf", RecordCount: 5, FilterValues: []string{"PASS"}, Contigs: []string{"X"}},
	}
	require.NoError(t, s.WriteFileStats(stats))

	got, err := s.RecentFileStats(10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byPath := map[string]FileStats{}
	for _, st := range got {
		byPath[st.Path] = st
	}
	require.Contains(t, byPath, "a.vcf")
	assert.Equal(t, "vcf", byPath["a.vcf"].Format)
	assert.Equal(t, int64(10), byPath["a.vcf"].RecordCount)
	assert.Equal(t, []string{"PASS", "LowQual"}, byPath["a.vcf"].FilterValues)

	require.Contains(t, byPath, "b.bcf")
	assert.Equal(t, int64(5), byPath["b.bcf"].RecordCount)
}

func TestRecentFileStatsLimit(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteFileStats([]FileStats{
		{Path: "a.vcf", Format: "vcf", RecordCount: 1},
		{Path: "b.vcf", Format: "vcf", RecordCount: 2},
		{Path: "c.vcf", Format: "vcf", RecordCount: 3},
	}))

	got, err := s.RecentFileStats(2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestClearFileStats(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteFileStats([]FileStats{
		{Path: "a.vcf", Format: "vcf", RecordCount: 1},
	}))
	got, err := s.RecentFileStats(10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.NoError(t, s.ClearFileStats())

	got, err = s.RecentFileStats(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
