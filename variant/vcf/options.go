// Package vcf implements the plaintext VCF codec: a header-cooperative line
// reader/writer pair that decodes into, and encodes from, variant.Record.
package vcf

import (
	"fmt"
	"io"
)

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// PrintWarnings, when set, makes the reader emit a one-line diagnostic
	// to Warnings when an unknown CHROM, FILTER or INFO key is auto-inserted
	// into the header. A value count that differs from the declared Number
	// produces no warning.
	PrintWarnings bool
	Warnings      io.Writer
}

// WriterOptions configures a Writer.
type WriterOptions struct {
	PrintWarnings bool
	Warnings      io.Writer
}

func (o ReaderOptions) warn(format string, args ...any) {
	if !o.PrintWarnings || o.Warnings == nil {
		return
	}
	writeWarning(o.Warnings, format, args...)
}

func (o WriterOptions) warn(format string, args ...any) {
	if !o.PrintWarnings || o.Warnings == nil {
		return
	}
	writeWarning(o.Warnings, format, args...)
}

func writeWarning(w io.Writer, format string, args ...any) {
	io.WriteString(w, fmt.Sprintf(format, args...)+"\n")
}
