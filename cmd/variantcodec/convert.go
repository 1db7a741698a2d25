package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solidgenomics/variantcodec/variant/bcf"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/vcf"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert between VCF and BCF based on file extensions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1])
		},
	}
}

func runConvert(inPath, outPath string) error {
	inFormat, err := detectFormat(inPath)
	if err != nil {
		return err
	}
	outFormat := outputFormatFromExt(outPath)

	rd, closer, err := openReader(inPath, inFormat, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	hdr := rd.Header()
	if err := writeConverted(rd, hdr, outFormat, out); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("converted file", zap.String("input", inPath), zap.String("output", outPath))
	}
	return nil
}

func writeConverted(rd anyReader, hdr *header.Header, outFormat string, out io.Writer) error {
	switch outFormat {
	case "bcf":
		w := bcf.NewWriter(out, bcf.DefaultWriterOptions())
		if err := w.SetHeader(hdr); err != nil {
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
	case "vcf":
		w := vcf.NewWriter(out, vcf.WriterOptions{})
		if err := w.SetHeader(hdr); err != nil {
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
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
}

func outputFormatFromExt(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".bcf") {
		return "bcf"
	}
	return "vcf"
}
