package vcf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
)

// Writer serializes records to plaintext VCF.
type Writer struct {
	bw            *bufio.Writer
	opts          WriterOptions
	hdr           *header.Header
	headerWritten bool
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, opts WriterOptions) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 64*1024), opts: opts}
}

// SetHeader assigns the header whose meta-lines and #CHROM line are emitted
// before the first record.
func (wr *Writer) SetHeader(h *header.Header) error {
	wr.hdr = h
	return nil
}

func (wr *Writer) writeHeaderIfNeeded() error {
	if wr.headerWritten {
		return nil
	}
	if wr.hdr == nil {
		return nil
	}
	if _, err := wr.hdr.WriteTo(wr.bw, false); err != nil {
		return err
	}
	wr.headerWritten = true
	return nil
}

// WriteRecord appends one tab-separated data line.
func (wr *Writer) WriteRecord(r *variant.Record) error {
	if err := wr.writeHeaderIfNeeded(); err != nil {
		return err
	}

	pos := "."
	if r.Pos != 0 {
		pos = strconv.Itoa(r.Pos)
	}
	id := r.ID
	if id == "" {
		id = "."
	}
	alt := "."
	if len(r.Alt) > 0 {
		alt = strings.Join(r.Alt, ",")
	}
	qual := "."
	if !value.IsMissingFloat32(r.Qual) {
		qual = strconv.FormatFloat(float64(r.Qual), 'g', -1, 32)
	}
	filter := "."
	if len(r.Filter) > 0 {
		filter = strings.Join(r.Filter, ";")
	}
	info := renderInfoField(r.Info)

	fields := []string{r.Chrom, pos, id, r.Ref, alt, qual, filter, info}

	if len(r.FormatKeys) > 0 {
		nSample := 0
		if len(r.Genotypes) > 0 {
			nSample = len(r.Genotypes[0].Column.Samples)
		}
		formatField, sampleFields := renderGenotypes(r.FormatKeys, r.Genotypes, nSample)
		fields = append(fields, formatField)
		fields = append(fields, sampleFields...)
	}

	if _, err := wr.bw.WriteString(strings.Join(fields, "\t")); err != nil {
		return err
	}
	return wr.bw.WriteByte('\n')
}

// Flush drains buffered output to the underlying writer.
func (wr *Writer) Flush() error {
	return wr.bw.Flush()
}

// Close flushes any unwritten header (for a record-free stream) and data.
func (wr *Writer) Close() error {
	if err := wr.writeHeaderIfNeeded(); err != nil {
		return err
	}
	return wr.Flush()
}
