// Package bcf implements the binary BCF codec: a framed streaming reader/
// writer pair built on variant/bcf/layout's byte primitives and
// variant/header's header model.
package bcf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/verr"
)

var bcfMagic = [3]byte{'B', 'C', 'F'}

// Reader is a single-pass, at-most-one-lookahead BCF record iterator. It is
// not safe to share between goroutines; each instance owns a mutable cursor
// into its stream.
type Reader struct {
	br        *bufio.Reader
	hdr       *header.Header
	overflow  []byte
	recordNum int
}

// NewReader reads and validates the BCF magic header and embedded plaintext
// header, then returns a Reader positioned at the first record.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var fixed [9]byte
	n, err := io.ReadFull(br, fixed[:])
	if n >= len(bcfMagic) && [3]byte{fixed[0], fixed[1], fixed[2]} != bcfMagic {
		return nil, verr.Format(0, "stream does not start with BCF magic header")
	}
	if err != nil {
		return nil, wrapReadErr(err, "BCF magic/version header")
	}
	major, minor := fixed[3], fixed[4]
	if !((major == 2) && (minor == 1 || minor == 2)) {
		return nil, verr.Format(0, "unsupported BCF version %d.%d", major, minor)
	}
	lText := binary.LittleEndian.Uint32(fixed[5:9])

	text := make([]byte, lText)
	if _, err := io.ReadFull(br, text); err != nil {
		return nil, wrapReadErr(err, "embedded plaintext header")
	}
	text = bytes.TrimRight(text, "\x00")

	hdr, err := header.Parse(strings.NewReader(string(text)))
	if err != nil {
		return nil, err
	}

	return &Reader{br: br, hdr: hdr}, nil
}

// Header returns the header this reader parsed out of the stream. The
// reader owns it.
func (rd *Reader) Header() *header.Header { return rd.hdr }

// nextSpan reads the l_shared/l_indiv frame prefix and produces a
// contiguous byte span of length l_shared+l_indiv, borrowing from the
// bufio.Reader's internal buffer when the record lies entirely within it
// and materializing into an owned overflow buffer otherwise. The returned
// span is valid until the next call to nextSpan.
func (rd *Reader) nextSpan() (span []byte, genotypeOffset int, err error) {
	var lenPrefix [8]byte
	_, err = io.ReadFull(rd.br, lenPrefix[:])
	if err == io.EOF {
		return nil, 0, io.EOF
	}
	if err != nil {
		return nil, 0, wrapReadErr(err, "record length prefix")
	}
	lShared := binary.LittleEndian.Uint32(lenPrefix[0:4])
	lIndiv := binary.LittleEndian.Uint32(lenPrefix[4:8])
	size := int(lShared) + int(lIndiv)
	if size == 0 {
		return nil, 0, verr.Format(rd.recordNum+1, "record announces zero size")
	}

	if peeked, perr := rd.br.Peek(size); perr == nil {
		if _, derr := rd.br.Discard(size); derr != nil {
			return nil, 0, wrapReadErr(derr, "record body")
		}
		return peeked, int(lShared), nil
	}

	if cap(rd.overflow) < size {
		rd.overflow = make([]byte, size)
	}
	rd.overflow = rd.overflow[:size]
	if _, err := io.ReadFull(rd.br, rd.overflow); err != nil {
		return nil, 0, verr.Format(rd.recordNum+1, "truncated record body")
	}
	return rd.overflow, int(lShared), nil
}

// Next decodes and returns the next record as an owned value, or io.EOF
// when the stream is exhausted (a well-formed empty-record BCF yields EOF
// immediately).
func (rd *Reader) Next() (*variant.Record, error) {
	span, gtOffset, err := rd.nextSpan()
	if err != nil {
		return nil, err
	}
	rd.recordNum++
	return decodeRecord(span, gtOffset, rd.hdr, rd.recordNum)
}

func wrapReadErr(err error, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return verr.UnexpectedEOF(0, "truncated "+what)
	}
	return verr.IO(err)
}
