package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/solidgenomics/variantcodec/internal/arrowexport"
)

func newExportCmd() *cobra.Command {
	var arrowOut string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a VCF or BCF file to another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if arrowOut == "" {
				return fmt.Errorf("export requires --arrow <out.arrow>")
			}
			return runExportArrow(args[0], arrowOut)
		},
	}

	cmd.Flags().StringVar(&arrowOut, "arrow", "", "write an Arrow IPC file to this path")
	return cmd
}

func runExportArrow(inPath, outPath string) error {
	format, err := detectFormat(inPath)
	if err != nil {
		return err
	}

	rd, closer, err := openReader(inPath, format, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	w, err := arrowexport.NewWriter(out)
	if err != nil {
		return err
	}

	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}

	return w.Close()
}
