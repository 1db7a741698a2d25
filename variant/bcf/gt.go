package bcf

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/solidgenomics/variantcodec/variant/bcf/layout"
	"github.com/solidgenomics/variantcodec/variant/value"
)

// decodeGTColumn renders the per-sample BCF integer encoding of GT into its
// canonical textual form: low bit is the phasing flag relative to the
// previous allele, the remaining bits (shifted right) are allele-index+1
// with 0 meaning missing.
func decodeGTColumn(kind layout.Kind, perSampleCount int, payload []byte, nSample int) value.GenotypeColumn {
	col := value.NewGenotypeColumn(value.String, nSample)
	raw := typedRaw{kind: kind, count: perSampleCount * nSample, payload: payload}
	all := decodeInt32Slice(raw)

	for s := 0; s < nSample; s++ {
		alleles := all[s*perSampleCount : (s+1)*perSampleCount]
		col.Samples[s] = []value.Owned{{Kind: value.String, Str: renderGT(trimEOVInt32(alleles))}}
	}
	return col
}

func renderGT(alleles []int32) string {
	var sb strings.Builder
	for i, g := range alleles {
		if i > 0 {
			if g&1 == 1 {
				sb.WriteByte('|')
			} else {
				sb.WriteByte('/')
			}
		}
		idx := g >> 1
		if idx == 0 {
			sb.WriteByte('.')
		} else {
			sb.WriteString(strconv.Itoa(int(idx - 1)))
		}
	}
	return sb.String()
}

// encodeGTColumn is the inverse of decodeGTColumn: given the canonical
// per-sample GT strings, picks the narrowest descriptor that fits the
// largest allele index (M<=5 -> int8, M<=13 -> int16, else int32) and
// returns the rectangular per-sample payload.
func encodeGTColumn(samples []string) (kind layout.Kind, perSampleWidth int, payload []byte) {
	parsed := make([][]int32, len(samples))
	maxAllele := int32(-1)
	perSampleWidth = 1
	for i, s := range samples {
		fields := splitGT(s)
		if len(fields) > perSampleWidth {
			perSampleWidth = len(fields)
		}
		vals := make([]int32, len(fields))
		for j, f := range fields {
			phase := int32(0)
			if j > 0 && f.phased {
				phase = 1
			}
			var coded int32
			if f.allele < 0 {
				coded = phase // missing: idx+1 == 0
			} else {
				coded = (int32(f.allele)+1)<<1 | phase
			}
			vals[j] = coded
			if f.allele > int(maxAllele) {
				maxAllele = int32(f.allele)
			}
		}
		parsed[i] = vals
	}

	kind = gtKindForMaxAllele(maxAllele)

	out := make([]int32, len(samples)*perSampleWidth)
	for i := range out {
		out[i] = value.EndOfVectorInt32()
	}
	for i, vals := range parsed {
		copy(out[i*perSampleWidth:], vals)
	}

	payload = encodeInt32PayloadAs(kind, out)
	return kind, perSampleWidth, payload
}

func gtKindForMaxAllele(maxAllele int32) layout.Kind {
	switch {
	case maxAllele <= 5:
		return layout.KindInt8
	case maxAllele <= 13:
		return layout.KindInt16
	default:
		return layout.KindInt32
	}
}

type gtField struct {
	allele int // -1 means missing
	phased bool
}

func splitGT(s string) []gtField {
	if s == "" || s == "." {
		return []gtField{{allele: -1}}
	}
	var fields []gtField
	i := 0
	first := true
	for {
		j := i
		for j < len(s) && s[j] != '/' && s[j] != '|' {
			j++
		}
		tok := s[i:j]
		f := gtField{}
		if tok == "." || tok == "" {
			f.allele = -1
		} else if n, err := strconv.Atoi(tok); err == nil {
			f.allele = n
		} else {
			f.allele = -1
		}
		if !first {
			f.phased = s[i-1] == '|'
		}
		fields = append(fields, f)
		first = false
		if j >= len(s) {
			break
		}
		i = j + 1
	}
	return fields
}

func encodeInt32PayloadAs(kind layout.Kind, vals []int32) []byte {
	out := make([]byte, len(vals)*kind.Width())
	for i, v := range vals {
		switch kind {
		case layout.KindInt8:
			switch v {
			case value.MissingInt32():
				out[i] = byte(value.MissingInt8())
			case value.EndOfVectorInt32():
				out[i] = byte(value.EndOfVectorInt8())
			default:
				out[i] = byte(int8(v))
			}
		case layout.KindInt16:
			switch v {
			case value.MissingInt32():
				binary.LittleEndian.PutUint16(out[i*2:], uint16(value.MissingInt16()))
			case value.EndOfVectorInt32():
				binary.LittleEndian.PutUint16(out[i*2:], uint16(value.EndOfVectorInt16()))
			default:
				binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
			}
		case layout.KindInt32:
			binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
		}
	}
	return out
}
