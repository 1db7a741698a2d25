package bcf

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/bcf/layout"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/verr"
)

// flushThreshold is the scratch-buffer size at which Write flushes to the
// underlying writer.
const flushThreshold = 10 * 1024 * 1024

// Writer is a single-threaded, two-pass BCF record encoder: each record is
// laid out into a scratch buffer before its frame length prefixes are
// known. Not safe to share between goroutines.
type Writer struct {
	w             io.Writer
	opts          WriterOptions
	hdr           *header.Header
	idxKind       layout.Kind
	headerWritten bool
	scratch       bytes.Buffer
	recordNum     int
}

// NewWriter returns a Writer over w. SetHeader must be called before the
// first WriteRecord.
func NewWriter(w io.Writer, opts WriterOptions) *Writer {
	return &Writer{w: w, opts: opts}
}

// SetHeader assigns the header the encoder writes from. It runs IdxUpdate
// to guarantee every dictionary entry has an IDX before any BCF bytes using
// those IDX values are emitted.
func (wr *Writer) SetHeader(h *header.Header) error {
	if err := h.IdxUpdate(); err != nil {
		return err
	}
	wr.hdr = h
	wr.idxKind = layout.NarrowestIntKind(0, int64(h.MaxIDX()))
	return nil
}

func (wr *Writer) writeHeaderIfNeeded() error {
	if wr.headerWritten {
		return nil
	}
	if wr.hdr == nil {
		return verr.MissingHeader("bcf writer: write attempted before SetHeader")
	}
	var textBuf bytes.Buffer
	if _, err := wr.hdr.WriteTo(&textBuf, true); err != nil {
		return verr.IO(err)
	}
	textBuf.WriteByte(0)

	var out bytes.Buffer
	out.Write(bcfMagic[:])
	out.WriteByte(2)
	out.WriteByte(2)
	var lenB [4]byte
	binary.LittleEndian.PutUint32(lenB[:], uint32(textBuf.Len()))
	out.Write(lenB[:])
	out.Write(textBuf.Bytes())

	if _, err := wr.w.Write(out.Bytes()); err != nil {
		return verr.IO(err)
	}
	wr.headerWritten = true
	return nil
}

// WriteRecord encodes r and appends its framed bytes to the scratch buffer,
// flushing to the underlying stream once the buffer crosses flushThreshold.
func (wr *Writer) WriteRecord(r *variant.Record) error {
	if err := wr.writeHeaderIfNeeded(); err != nil {
		return err
	}
	wr.recordNum++

	shared, indiv, err := encodeRecord(r, wr.hdr, wr.opts, wr.idxKind)
	if err != nil {
		return err
	}

	var prefix [8]byte
	binary.LittleEndian.PutUint32(prefix[0:4], uint32(len(shared)))
	binary.LittleEndian.PutUint32(prefix[4:8], uint32(len(indiv)))
	wr.scratch.Write(prefix[:])
	wr.scratch.Write(shared)
	wr.scratch.Write(indiv)

	if wr.scratch.Len() > flushThreshold {
		return wr.Flush()
	}
	return nil
}

// Flush drains the scratch buffer to the underlying stream.
func (wr *Writer) Flush() error {
	if wr.scratch.Len() == 0 {
		return nil
	}
	if _, err := wr.w.Write(wr.scratch.Bytes()); err != nil {
		return verr.IO(err)
	}
	wr.scratch.Reset()
	return nil
}

// Close writes the header if no record ever triggered it, then flushes the
// scratch buffer.
func (wr *Writer) Close() error {
	if err := wr.writeHeaderIfNeeded(); err != nil {
		return err
	}
	return wr.Flush()
}
