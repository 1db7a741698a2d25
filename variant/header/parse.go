package header

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/solidgenomics/variantcodec/variant/verr"
)

// Parse reads a sequence of newline-terminated header lines from r. The
// first line must be ##fileformat=<VERSION>; parsing stops after the
// #CHROM column-labels line.
func Parse(r io.Reader) (*Header, error) {
	h := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	sawFileFormat := false

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			fields := strings.Split(line, "\t")
			if len(fields) < 8 {
				return nil, verr.Parse(lineNo, "column-labels line has %d fields, need at least 8", len(fields))
			}
			if len(fields) > 9 {
				h.SampleNames = append([]string(nil), fields[9:]...)
			}
			if err := h.IdxUpdate(); err != nil {
				return nil, err
			}
			return h, nil
		}

		if !strings.HasPrefix(line, "##") {
			return nil, verr.Parse(lineNo, "expected a ##-prefixed header line or #CHROM, got %q", line)
		}

		body := line[2:]
		if !sawFileFormat {
			if !strings.HasPrefix(body, "fileformat=") {
				return nil, verr.MissingHeader("first header line must be ##fileformat=<VERSION>")
			}
			h.FileFormat = strings.TrimPrefix(body, "fileformat=")
			sawFileFormat = true
			continue
		}

		switch {
		case strings.HasPrefix(body, "INFO=<") && strings.HasSuffix(body, ">"):
			info, err := parseInfoLine(body, lineNo)
			if err != nil {
				return nil, err
			}
			h.AddInfo(info)
		case strings.HasPrefix(body, "FORMAT=<") && strings.HasSuffix(body, ">"):
			f, err := parseFormatLine(body, lineNo)
			if err != nil {
				return nil, err
			}
			h.AddFormat(f)
		case strings.HasPrefix(body, "FILTER=<") && strings.HasSuffix(body, ">"):
			f, err := parseFilterLine(body, lineNo)
			if err != nil {
				return nil, err
			}
			h.AddFilter(f)
		case strings.HasPrefix(body, "contig=<") && strings.HasSuffix(body, ">"):
			c, err := parseContigLine(body, lineNo)
			if err != nil {
				return nil, err
			}
			h.AddContig(c)
		default:
			h.OtherLines = append(h.OtherLines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, verr.IO(err)
	}

	if !sawFileFormat {
		return nil, verr.MissingHeader("no ##fileformat line found")
	}
	return nil, verr.UnexpectedEOF(0, "no #CHROM column-labels line found")
}

// splitKV splits the content between < and > into ordered key=value pairs,
// honoring single-level quote escaping: commas and = inside a "..." value
// are not separators.
func splitKV(body string) ([][2]string, error) {
	inner := strings.TrimSuffix(strings.SplitN(body, "=<", 2)[1], ">")
	var pairs [][2]string
	i := 0
	for i < len(inner) {
		eq := strings.IndexByte(inner[i:], '=')
		if eq < 0 {
			break
		}
		eq += i
		key := inner[i:eq]
		valStart := eq + 1
		var valEnd int
		if valStart < len(inner) && inner[valStart] == '"' {
			end := valStart + 1
			for end < len(inner) {
				if inner[end] == '\\' && end+1 < len(inner) {
					end += 2
					continue
				}
				if inner[end] == '"' {
					break
				}
				end++
			}
			valEnd = end + 1
		} else {
			comma := strings.IndexByte(inner[valStart:], ',')
			if comma < 0 {
				valEnd = len(inner)
			} else {
				valEnd = valStart + comma
			}
		}
		pairs = append(pairs, [2]string{key, inner[valStart:valEnd]})
		i = valEnd
		if i < len(inner) && inner[i] == ',' {
			i++
		}
	}
	return pairs, nil
}

func parseNumber(s string) (Number, error) {
	switch s {
	case "A":
		return Number{Kind: NumberA}, nil
	case "R":
		return Number{Kind: NumberR}, nil
	case "G":
		return Number{Kind: NumberG}, nil
	case ".":
		return Number{Kind: NumberDot}, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return Number{}, fmt.Errorf("invalid Number %q", s)
		}
		return FixedNumber(n), nil
	}
}

func parseFieldType(s string) (FieldType, error) {
	switch s {
	case "Integer":
		return TypeInteger, nil
	case "Float":
		return TypeFloat, nil
	case "Flag":
		return TypeFlag, nil
	case "Character":
		return TypeCharacter, nil
	case "String":
		return TypeString, nil
	default:
		return 0, fmt.Errorf("invalid Type %q", s)
	}
}

func parseInfoLine(body string, lineNo int) (*Info, error) {
	pairs, err := splitKV(body)
	if err != nil {
		return nil, verr.Parse(lineNo, "%s", err)
	}
	info := &Info{IDX: -1}
	var haveNumber, haveType, haveDesc bool
	for _, kv := range pairs {
		switch kv[0] {
		case "ID":
			info.ID = kv[1]
		case "Number":
			n, err := parseNumber(kv[1])
			if err != nil {
				return nil, verr.Parse(lineNo, "INFO %s", err)
			}
			info.Number = n
			haveNumber = true
		case "Type":
			t, err := parseFieldType(kv[1])
			if err != nil {
				return nil, verr.Parse(lineNo, "INFO %s", err)
			}
			info.Type = t
			haveType = true
		case "Description":
			info.Description = kv[1]
			haveDesc = true
		case "IDX":
			idx, err := strconv.Atoi(kv[1])
			if err != nil {
				return nil, verr.Parse(lineNo, "INFO IDX not an integer: %q", kv[1])
			}
			info.IDX = idx
		case "IntegerBits":
			addOther(&info.Other, &info.OtherKeys, kv[0], kv[1])
		default:
			addOther(&info.Other, &info.OtherKeys, kv[0], kv[1])
		}
	}
	if info.ID == "" || !haveNumber || !haveType || !haveDesc {
		return nil, verr.Parse(lineNo, "INFO line missing required key (ID/Number/Type/Description)")
	}
	if info.Type == TypeFlag && !(info.Number.Kind == NumberFixed && info.Number.Fixed == 0) {
		return nil, verr.Parse(lineNo, "INFO %s: Type=Flag requires Number=0", info.ID)
	}
	return info, nil
}

func parseFormatLine(body string, lineNo int) (*Format, error) {
	i, err := parseInfoLine(body, lineNo)
	if err != nil {
		return nil, err
	}
	return &Format{ID: i.ID, IDX: i.IDX, Number: i.Number, Type: i.Type, Description: i.Description, Other: i.Other, OtherKeys: i.OtherKeys}, nil
}

func parseFilterLine(body string, lineNo int) (*Filter, error) {
	pairs, err := splitKV(body)
	if err != nil {
		return nil, verr.Parse(lineNo, "%s", err)
	}
	f := &Filter{IDX: -1}
	for _, kv := range pairs {
		switch kv[0] {
		case "ID":
			f.ID = kv[1]
		case "Description":
			f.Description = kv[1]
		case "IDX":
			idx, err := strconv.Atoi(kv[1])
			if err != nil {
				return nil, verr.Parse(lineNo, "FILTER IDX not an integer: %q", kv[1])
			}
			f.IDX = idx
		default:
			addOther(&f.Other, &f.OtherKeys, kv[0], kv[1])
		}
	}
	if f.ID == "" {
		return nil, verr.Parse(lineNo, "FILTER line missing ID")
	}
	return f, nil
}

func parseContigLine(body string, lineNo int) (*Contig, error) {
	pairs, err := splitKV(body)
	if err != nil {
		return nil, verr.Parse(lineNo, "%s", err)
	}
	c := &Contig{IDX: -1, Length: -1}
	for _, kv := range pairs {
		switch kv[0] {
		case "ID":
			c.ID = kv[1]
		case "length":
			n, err := strconv.Atoi(kv[1])
			if err != nil {
				return nil, verr.Parse(lineNo, "contig length not an integer: %q", kv[1])
			}
			c.Length = n
		case "IDX":
			idx, err := strconv.Atoi(kv[1])
			if err != nil {
				return nil, verr.Parse(lineNo, "contig IDX not an integer: %q", kv[1])
			}
			c.IDX = idx
		default:
			addOther(&c.Other, &c.OtherKeys, kv[0], kv[1])
		}
	}
	if c.ID == "" {
		return nil, verr.Parse(lineNo, "contig line missing ID")
	}
	return c, nil
}

func addOther(m *map[string]string, keys *[]string, k, v string) {
	if *m == nil {
		*m = make(map[string]string)
	}
	if _, exists := (*m)[k]; !exists {
		*keys = append(*keys, k)
	}
	(*m)[k] = v
}
