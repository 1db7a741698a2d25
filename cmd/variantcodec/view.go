package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/solidgenomics/variantcodec/variant/vcf"
)

func newViewCmd() *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Print a VCF or BCF file as VCF text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0], inputFormat, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "force input format: vcf or bcf (default: sniffed)")
	return cmd
}

func runView(path, forcedFormat string, out io.Writer) error {
	format := forcedFormat
	if format == "" {
		f, err := detectFormat(path)
		if err != nil {
			return err
		}
		format = f
	}

	rd, closer, err := openReader(path, format, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	w := vcf.NewWriter(out, vcf.WriterOptions{})
	if err := w.SetHeader(rd.Header()); err != nil {
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
