package vcf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
	"github.com/solidgenomics/variantcodec/variant/verr"
)

// Reader is a single-pass VCF record iterator built on a bufio.Reader
// line-scanning loop, generalized to the full dynamic value model and
// header cooperation.
type Reader struct {
	br        *bufio.Reader
	hdr       *header.Header
	opts      ReaderOptions
	lineNo    int
	recordNum int
}

// NewReader parses the embedded header out of r and returns a Reader
// positioned at the first record line.
func NewReader(r io.Reader, opts ReaderOptions) (*Reader, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	hdr, lineNo, err := parseHeaderCountingLines(br)
	if err != nil {
		return nil, err
	}
	return &Reader{br: br, hdr: hdr, opts: opts, lineNo: lineNo}, nil
}

// parseHeaderCountingLines wraps header.Parse but also hands back how many
// lines it consumed, so the reader's own line numbers stay contiguous.
func parseHeaderCountingLines(br *bufio.Reader) (*header.Header, int, error) {
	var sb strings.Builder
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
			lineNo++
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(trimmed, "#CHROM") {
			break
		}
		if err != nil {
			if err == io.EOF {
				return nil, lineNo, verr.UnexpectedEOF(0, "no #CHROM column-labels line found")
			}
			return nil, lineNo, verr.IO(err)
		}
	}
	hdr, err := header.Parse(strings.NewReader(sb.String()))
	if err != nil {
		return nil, lineNo, err
	}
	return hdr, lineNo, nil
}

// Header returns the header parsed out of the stream. The reader owns it.
func (rd *Reader) Header() *header.Header { return rd.hdr }

// Next decodes and returns the next record, or io.EOF at end of stream.
func (rd *Reader) Next() (*variant.Record, error) {
	for {
		line, err := rd.br.ReadString('\n')
		if len(line) == 0 && err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, verr.IO(err)
		}
		rd.lineNo++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err == io.EOF {
				return nil, io.EOF
			}
			continue
		}
		rd.recordNum++
		rec, perr := rd.parseLine(line)
		if perr != nil {
			return nil, perr
		}
		return rec, nil
	}
}

func (rd *Reader) parseLine(line string) (*variant.Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, verr.Parse(rd.lineNo, "expected at least 8 tab-separated fields, got %d", len(fields))
	}

	chrom := fields[0]
	if _, ok := rd.hdr.ContigByID(chrom); !ok {
		rd.hdr.AddContig(&header.Contig{ID: chrom, IDX: -1, Length: -1})
		_ = rd.hdr.IdxUpdate()
		rd.opts.warn("auto-inserted unknown contig %q", chrom)
	}

	pos := 0
	if fields[1] != "." {
		p, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, verr.Parse(rd.lineNo, "invalid POS %q", fields[1])
		}
		pos = p
	}

	id := fields[2]
	if id == "." {
		id = ""
	}

	ref := fields[3]

	var alt []string
	if fields[4] != "." {
		alt = strings.Split(fields[4], ",")
	}

	qual := value.MissingFloat32()
	if fields[5] != "." {
		f, err := strconv.ParseFloat(fields[5], 32)
		if err != nil {
			return nil, verr.Parse(rd.lineNo, "invalid QUAL %q", fields[5])
		}
		qual = float32(f)
	}

	var filters []string
	if fields[6] != "." {
		for _, f := range strings.Split(fields[6], ";") {
			filters = append(filters, f)
			if _, ok := rd.hdr.FilterByID(f); !ok {
				rd.hdr.AddFilter(&header.Filter{ID: f, IDX: -1, Description: "Automatically added by variantcodec"})
				_ = rd.hdr.IdxUpdate()
				rd.opts.warn("auto-inserted unknown filter %q", f)
			}
		}
	}

	info, err := parseInfoField(fields[7], rd.hdr, len(alt), rd.opts)
	if err != nil {
		return nil, verr.Parse(rd.lineNo, "%s", err)
	}

	r := &variant.Record{
		Header: rd.hdr,
		Chrom:  chrom,
		Pos:    pos,
		ID:     id,
		Ref:    ref,
		Alt:    alt,
		Qual:   qual,
		Filter: filters,
		Info:   info,
	}

	if len(fields) > 8 {
		keys, entries := parseGenotypes(fields[8], fields[9:], rd.hdr, len(alt))
		r.FormatKeys = keys
		r.Genotypes = entries
	}

	return r, nil
}
