package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/bcf"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/vcf"
)

// detectFormat sniffs "bcf" or "vcf" by extension first, falling back to
// peeking at the file's leading bytes.
func detectFormat(path string) (string, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".gz") {
		lower = lower[:len(lower)-3]
	}
	if strings.HasSuffix(lower, ".bcf") {
		return "bcf", nil
	}
	if strings.HasSuffix(lower, ".vcf") {
		return "vcf", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	magic := make([]byte, 3)
	n, _ := io.ReadFull(f, magic)
	if n == 3 && string(magic) == "BCF" {
		return "bcf", nil
	}
	return "vcf", nil
}

// anyReader is the shared surface variant decoders of either format offer
// to a format-agnostic CLI command.
type anyReader interface {
	Header() *header.Header
	Next() (*variant.Record, error)
}

func openReader(path string, format string, warnings io.Writer) (anyReader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	switch format {
	case "bcf":
		rd, err := bcf.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("parse bcf header in %s: %w", path, err)
		}
		return rd, f, nil
	case "vcf":
		opts := vcf.ReaderOptions{PrintWarnings: warnings != nil, Warnings: warnings}
		rd, err := vcf.NewReader(f, opts)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("parse vcf header in %s: %w", path, err)
		}
		return rd, f, nil
	default:
		f.Close()
		return nil, nil, fmt.Errorf("unknown format %q", format)
	}
}
