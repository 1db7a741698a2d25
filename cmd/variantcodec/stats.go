package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/solidgenomics/variantcodec/internal/duckdb"
)

func newStatsCmd() *cobra.Command {
	var dbPath string
	var workers int

	cmd := &cobra.Command{
		Use:   "stats <files...>",
		Short: "Scan files and record per-file statistics in DuckDB",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dbPath = filepath.Join(home, ".variantcodec", "stats.duckdb")
			}
			return runStats(args, dbPath, workers, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB file (default ~/.variantcodec/stats.duckdb)")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent file scanners (0 = NumCPU)")
	return cmd
}

// statsWorkItem is one file to scan, processed by its own bcf.Reader/
// vcf.Reader instance — never shared across goroutines.
type statsWorkItem struct {
	seq  int
	path string
}

type statsWorkResult struct {
	seq  int
	path string
	st   duckdb.FileStats
	err  error
}

func runStats(paths []string, dbPath string, workers int, out io.Writer) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	items := make(chan statsWorkItem, len(paths))
	for i, p := range paths {
		items <- statsWorkItem{seq: i, path: p}
	}
	close(items)

	results := make(chan statsWorkResult, len(paths))
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				st, err := scanFileStats(item.path)
				results <- statsWorkResult{seq: item.seq, path: item.path, st: st, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]statsWorkResult, 0, len(paths))
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].seq < collected[j].seq })

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open stats db: %w", err)
	}
	defer store.Close()

	var rows []duckdb.FileStats
	for _, r := range collected {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", r.path, r.err)
			continue
		}
		rows = append(rows, r.st)
	}
	if err := store.WriteFileStats(rows); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}

	recent, err := store.RecentFileStats(len(paths))
	if err != nil {
		return fmt.Errorf("query stats: %w", err)
	}
	for _, st := range recent {
		fmt.Fprintf(out, "%s\t%s\t%d\t%v\t%v\n", st.Path, st.Format, st.RecordCount, st.FilterValues, st.Contigs)
	}
	return nil
}

// scanFileStats performs a single-threaded sequential scan of one file with
// its own reader instance, never shared across goroutines.
func scanFileStats(path string) (duckdb.FileStats, error) {
	format, err := detectFormat(path)
	if err != nil {
		return duckdb.FileStats{}, err
	}

	rd, closer, err := openReader(path, format, nil)
	if err != nil {
		return duckdb.FileStats{}, err
	}
	defer closer.Close()

	filterSet := map[string]struct{}{}
	contigSet := map[string]struct{}{}
	var contigOrder []string
	var recordCount int64

	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return duckdb.FileStats{}, err
		}
		recordCount++
		for _, f := range rec.Filter {
			filterSet[f] = struct{}{}
		}
		if _, ok := contigSet[rec.Chrom]; !ok {
			contigSet[rec.Chrom] = struct{}{}
			contigOrder = append(contigOrder, rec.Chrom)
		}
	}

	filters := make([]string, 0, len(filterSet))
	for f := range filterSet {
		filters = append(filters, f)
	}
	sort.Strings(filters)

	return duckdb.FileStats{
		Path:         path,
		Format:       format,
		RecordCount:  recordCount,
		FilterValues: filters,
		Contigs:      contigOrder,
	}, nil
}
