package bcf

import (
	"encoding/binary"
	"math"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/bcf/layout"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
	"github.com/solidgenomics/variantcodec/variant/verr"
)

// typedRaw is an on-disk typed value before it has been interpreted against
// a declared header Type/Number: the decoded kind/count plus its raw
// payload bytes.
type typedRaw struct {
	kind     layout.Kind
	count    int
	payload  []byte
	consumed int // descriptor + payload bytes
}

func readTypedRaw(b []byte, recordNum int) (typedRaw, error) {
	kind, count, descLen, err := layout.DecodeDescriptor(b)
	if err != nil {
		return typedRaw{}, verr.Format(recordNum, "%s", err)
	}
	payloadLen := count * kind.Width()
	if len(b) < descLen+payloadLen {
		return typedRaw{}, verr.UnexpectedEOF(recordNum, "truncated typed value")
	}
	return typedRaw{kind: kind, count: count, payload: b[descLen : descLen+payloadLen], consumed: descLen + payloadLen}, nil
}

// readTypedInt reads a typed scalar integer (used for IDX references and
// the n_info/n_fmt key slots), returning it widened to int64.
func readTypedInt(b []byte, recordNum int) (int64, int, error) {
	raw, err := readTypedRaw(b, recordNum)
	if err != nil {
		return 0, 0, err
	}
	if raw.count != 1 {
		return 0, 0, verr.Format(recordNum, "expected scalar typed int, got count %d", raw.count)
	}
	switch raw.kind {
	case layout.KindInt8:
		return int64(int8(raw.payload[0])), raw.consumed, nil
	case layout.KindInt16:
		return int64(int16(binary.LittleEndian.Uint16(raw.payload))), raw.consumed, nil
	case layout.KindInt32:
		return int64(int32(binary.LittleEndian.Uint32(raw.payload))), raw.consumed, nil
	default:
		return 0, 0, verr.Format(recordNum, "expected an integer kind, got %v", raw.kind)
	}
}

func decodeInt32Slice(raw typedRaw) []int32 {
	out := make([]int32, raw.count)
	switch raw.kind {
	case layout.KindInt8:
		for i := 0; i < raw.count; i++ {
			switch v := int8(raw.payload[i]); v {
			case value.MissingInt8():
				out[i] = value.MissingInt32()
			case value.EndOfVectorInt8():
				out[i] = value.EndOfVectorInt32()
			default:
				out[i] = int32(v)
			}
		}
	case layout.KindInt16:
		for i := 0; i < raw.count; i++ {
			switch v := int16(binary.LittleEndian.Uint16(raw.payload[i*2:])); v {
			case value.MissingInt16():
				out[i] = value.MissingInt32()
			case value.EndOfVectorInt16():
				out[i] = value.EndOfVectorInt32()
			default:
				out[i] = int32(v)
			}
		}
	case layout.KindInt32:
		for i := 0; i < raw.count; i++ {
			out[i] = int32(binary.LittleEndian.Uint32(raw.payload[i*4:]))
		}
	}
	return out
}

func decodeFloat32Slice(raw typedRaw) []float32 {
	out := make([]float32, raw.count)
	for i := 0; i < raw.count; i++ {
		bits := binary.LittleEndian.Uint32(raw.payload[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out
}

// typedStringValue reinterprets a char8 payload as a Go string, trimming
// nothing: a zero-count payload is the empty/missing string (descriptor
// 0x07).
func typedStringValue(raw typedRaw) string {
	return string(raw.payload)
}

// decodeRecord turns one contiguous BCF record span into an owned
// variant.Record.
func decodeRecord(span []byte, gtOffset int, hdr *header.Header, recordNum int) (*variant.Record, error) {
	var core layout.RecordCore
	if err := core.UnmarshalBinary(span); err != nil {
		return nil, verr.Format(recordNum, "%s", err)
	}
	off := layout.CoreSize

	r := &variant.Record{Header: hdr, Pos: int(core.Pos) + 1, Rlen: int(core.Rlen), Qual: core.Qual}

	if contig, ok := hdr.ContigByIDX(int(core.Chrom)); ok {
		r.Chrom = contig.ID
	}

	idRaw, err := readTypedRaw(span[off:], recordNum)
	if err != nil {
		return nil, err
	}
	r.ID = typedStringValue(idRaw)
	off += idRaw.consumed

	refRaw, err := readTypedRaw(span[off:], recordNum)
	if err != nil {
		return nil, err
	}
	r.Ref = typedStringValue(refRaw)
	off += refRaw.consumed

	nAlt := int(core.NAllele) - 1
	for i := 0; i < nAlt; i++ {
		altRaw, err := readTypedRaw(span[off:], recordNum)
		if err != nil {
			return nil, err
		}
		r.Alt = append(r.Alt, typedStringValue(altRaw))
		off += altRaw.consumed
	}

	filterRaw, err := readTypedRaw(span[off:], recordNum)
	if err != nil {
		return nil, err
	}
	off += filterRaw.consumed
	for _, idx := range decodeInt32Slice(filterRaw) {
		if f, ok := hdr.FilterByIDX(int(idx)); ok {
			r.Filter = append(r.Filter, f.ID)
		}
	}

	for i := 0; i < int(core.NInfo); i++ {
		idxVal, n, err := readTypedInt(span[off:], recordNum)
		if err != nil {
			return nil, err
		}
		off += n

		valRaw, err := readTypedRaw(span[off:], recordNum)
		if err != nil {
			return nil, err
		}
		off += valRaw.consumed

		info, ok := hdr.InfoByIDX(int(idxVal))
		if !ok {
			continue
		}
		r.Info = append(r.Info, variant.InfoEntry{Key: info.ID, Value: decodeFieldValue(valRaw, info.Type, info.Number)})
	}

	nSample := int(core.NSample)
	indiv := span[gtOffset:]
	ioff := 0
	for i := 0; i < int(core.NFmt); i++ {
		idxVal, n, err := readTypedInt(indiv[ioff:], recordNum)
		if err != nil {
			return nil, err
		}
		ioff += n

		kind, perSampleCount, descLen, err := layout.DecodeDescriptor(indiv[ioff:])
		if err != nil {
			return nil, verr.Format(recordNum, "%s", err)
		}
		width := kind.Width()
		total := perSampleCount * width * nSample
		if len(indiv[ioff+descLen:]) < total {
			return nil, verr.UnexpectedEOF(recordNum, "truncated genotype payload")
		}
		payload := indiv[ioff+descLen : ioff+descLen+total]
		ioff += descLen + total

		fmtDef, ok := hdr.FormatByIDX(int(idxVal))
		key := ""
		if ok {
			key = fmtDef.ID
		}

		if key == "GT" {
			col := decodeGTColumn(kind, perSampleCount, payload, nSample)
			r.Genotypes = append(r.Genotypes, variant.GenotypeEntry{Key: "GT", Column: col})
			r.FormatKeys = append(r.FormatKeys, "GT")
			continue
		}

		col := decodeGenotypeColumn(kind, perSampleCount, payload, nSample, fmtDef)
		if key != "" {
			r.Genotypes = append(r.Genotypes, variant.GenotypeEntry{Key: key, Column: col})
			r.FormatKeys = append(r.FormatKeys, key)
		}
	}

	return r, nil
}

// decodeFieldValue interprets a raw typed value against a declared INFO/
// FORMAT Type+Number, widening integers. A declared Flag decodes as present
// whatever its payload, so both the zero-length form and the bug-compatible
// 1-byte Int8 carrying 0x00 are accepted.
func decodeFieldValue(raw typedRaw, t header.FieldType, n header.Number) value.Owned {
	scalar := n.Kind == header.NumberFixed && n.Fixed == 1

	switch t {
	case header.TypeFlag:
		return value.Owned{Kind: value.Flag}
	case header.TypeInteger:
		if scalar && raw.count <= 1 {
			if raw.count == 0 {
				return value.Owned{Kind: value.Int32, I32: value.MissingInt32()}
			}
			return value.Owned{Kind: value.Int32, I32: decodeInt32Slice(raw)[0]}
		}
		return value.Owned{Kind: value.VecInt32, VI32: decodeInt32Slice(raw)}
	case header.TypeFloat:
		if scalar && raw.count <= 1 {
			if raw.count == 0 {
				return value.Owned{Kind: value.Float32, F32: value.MissingFloat32()}
			}
			return value.Owned{Kind: value.Float32, F32: decodeFloat32Slice(raw)[0]}
		}
		return value.Owned{Kind: value.VecFloat32, VF32: decodeFloat32Slice(raw)}
	case header.TypeCharacter:
		s := typedStringValue(raw)
		if scalar {
			ch := value.MissingChar()
			if len(s) > 0 {
				ch = s[0]
			}
			return value.Owned{Kind: value.Char8, Ch: ch}
		}
		return value.Owned{Kind: value.String, Str: s}
	default: // TypeString
		s := typedStringValue(raw)
		if scalar {
			return value.Owned{Kind: value.String, Str: s}
		}
		return value.Owned{Kind: value.VecString, VStr: splitNonEmpty(s, ',')}
	}
}

func splitNonEmpty(s string, sep byte) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// decodeGenotypeColumn expands a rectangular per-sample vector into a
// GenotypeColumn, trimming end-of-vector sentinels per sample.
func decodeGenotypeColumn(kind layout.Kind, perSampleCount int, payload []byte, nSample int, fmtDef *header.Format) value.GenotypeColumn {
	vkind := intoVectorKind(kind)
	if fmtDef != nil {
		if k, ok := fmtDef.ValueKind(); ok {
			vkind = k
		}
	}

	col := value.NewGenotypeColumn(elementKind(vkind), nSample)
	width := kind.Width()
	for s := 0; s < nSample; s++ {
		sampleBytes := payload[s*perSampleCount*width : (s+1)*perSampleCount*width]
		raw := typedRaw{kind: kind, count: perSampleCount, payload: sampleBytes}
		switch kind {
		case layout.KindChar8:
			str := trimEOVString(string(sampleBytes))
			col.Samples[s] = []value.Owned{{Kind: value.String, Str: str}}
		case layout.KindFloat32:
			for _, f := range trimEOVFloat32(decodeFloat32Slice(raw)) {
				col.Samples[s] = append(col.Samples[s], value.Owned{Kind: value.Float32, F32: f})
			}
		default:
			for _, x := range trimEOVInt32(decodeInt32Slice(raw)) {
				col.Samples[s] = append(col.Samples[s], value.Owned{Kind: value.Int32, I32: x})
			}
		}
	}
	return col
}

func elementKind(vk value.Kind) value.Kind {
	switch vk {
	case value.VecInt8, value.VecInt16, value.VecInt32:
		return value.Int32
	case value.VecFloat32:
		return value.Float32
	case value.VecString, value.String:
		return value.String
	default:
		return vk
	}
}

func intoVectorKind(k layout.Kind) value.Kind {
	switch k {
	case layout.KindFloat32:
		return value.VecFloat32
	case layout.KindChar8:
		return value.VecString
	default:
		return value.VecInt32
	}
}

func trimEOVInt32(xs []int32) []int32 {
	for i, x := range xs {
		if x == value.EndOfVectorInt32() {
			return xs[:i]
		}
	}
	return xs
}

func trimEOVFloat32(xs []float32) []float32 {
	for i, x := range xs {
		if value.IsEndOfVectorFloat32(x) {
			return xs[:i]
		}
	}
	return xs
}

func trimEOVString(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return s[:i]
		}
	}
	return s
}
