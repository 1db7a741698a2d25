package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"
)

// FileStats holds one file's scan summary, written to the file_stats table.
type FileStats struct {
	Path         string
	Format       string // "vcf" or "bcf"
	RecordCount  int64
	FilterValues []string
	Contigs      []string
}

// WriteFileStats batch-inserts file statistics using the Appender API for
// bulk loading.
func (s *Store) WriteFileStats(stats []FileStats) error {
	if len(stats) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "file_stats")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, st := range stats {
		if err := appender.AppendRow(
			st.Path, st.Format, st.RecordCount,
			strings.Join(st.FilterValues, ","),
			strings.Join(st.Contigs, ","),
		); err != nil {
			return fmt.Errorf("append file stats: %w", err)
		}
	}

	return appender.Flush()
}

// RecentFileStats returns up to limit of the most recently recorded rows,
// newest scan first. Rows are not deduplicated by path.
func (s *Store) RecentFileStats(limit int) ([]FileStats, error) {
	rows, err := s.db.Query(`SELECT path, format, record_count, filter_values, contigs
		FROM file_stats
		ORDER BY scanned_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query file stats: %w", err)
	}
	defer rows.Close()

	var out []FileStats
	for rows.Next() {
		var st FileStats
		var filterValues, contigs string
		if err := rows.Scan(&st.Path, &st.Format, &st.RecordCount, &filterValues, &contigs); err != nil {
			return nil, fmt.Errorf("scan file stats: %w", err)
		}
		if filterValues != "" {
			st.FilterValues = strings.Split(filterValues, ",")
		}
		if contigs != "" {
			st.Contigs = strings.Split(contigs, ",")
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file stats: %w", err)
	}
	return out, nil
}

// ClearFileStats removes every recorded row.
func (s *Store) ClearFileStats() error {
	_, err := s.db.Exec("DELETE FROM file_stats")
	return err
}
