package bcf

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/bcf/layout"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
	"github.com/solidgenomics/variantcodec/variant/verr"
)

func encodeTypedString(s string) []byte {
	if s == "" {
		return layout.EncodeDescriptor(layout.KindChar8, 0)
	}
	desc := layout.EncodeDescriptor(layout.KindChar8, len(s))
	return append(desc, s...)
}

func encodeTypedIntScalar(v int64) []byte {
	kind := layout.NarrowestIntKind(v, v)
	desc := layout.EncodeDescriptor(kind, 1)
	return append(desc, encodeInt32PayloadAs(kind, []int32{int32(v)})...)
}

func encodeFloat32Payload(xs []float32) []byte {
	out := make([]byte, len(xs)*4)
	for i, f := range xs {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func rangeOf(xs []int32) (int64, int64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := int64(xs[0]), int64(xs[0])
	for _, x := range xs[1:] {
		if int64(x) < lo {
			lo = int64(x)
		}
		if int64(x) > hi {
			hi = int64(x)
		}
	}
	return lo, hi
}

func encodeFilterVector(ids []string, hdr *header.Header, idxKind layout.Kind) ([]byte, error) {
	if len(ids) == 0 {
		return layout.EncodeDescriptor(idxKind, 0), nil
	}
	idxs := make([]int32, len(ids))
	for i, id := range ids {
		f, ok := hdr.FilterByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown filter %q", id)
		}
		idxs[i] = int32(f.IDX)
	}
	desc := layout.EncodeDescriptor(idxKind, len(idxs))
	return append(desc, encodeInt32PayloadAs(idxKind, idxs)...), nil
}

// encodeInfoValue renders an INFO value's typed-value bytes, using the
// flag bug-compatible encoding (a 1-byte Int8 carrying value 0x00).
func encodeInfoValue(v value.Owned, compress bool) []byte {
	switch v.Kind {
	case value.Flag:
		desc := layout.EncodeDescriptor(layout.KindInt8, 1)
		return append(desc, 0x00)
	case value.Int32:
		kind := layout.KindInt32
		if compress {
			kind = layout.NarrowestIntKind(int64(v.I32), int64(v.I32))
		}
		desc := layout.EncodeDescriptor(kind, 1)
		return append(desc, encodeInt32PayloadAs(kind, []int32{v.I32})...)
	case value.VecInt32:
		kind := layout.KindInt32
		if compress {
			lo, hi := rangeOf(v.VI32)
			kind = layout.NarrowestIntKind(lo, hi)
		}
		desc := layout.EncodeDescriptor(kind, len(v.VI32))
		return append(desc, encodeInt32PayloadAs(kind, v.VI32)...)
	case value.Float32:
		desc := layout.EncodeDescriptor(layout.KindFloat32, 1)
		return append(desc, encodeFloat32Payload([]float32{v.F32})...)
	case value.VecFloat32:
		desc := layout.EncodeDescriptor(layout.KindFloat32, len(v.VF32))
		return append(desc, encodeFloat32Payload(v.VF32)...)
	case value.Char8:
		desc := layout.EncodeDescriptor(layout.KindChar8, 1)
		return append(desc, v.Ch)
	case value.String:
		return encodeTypedString(v.Str)
	case value.VecString:
		return encodeTypedString(strings.Join(v.VStr, ","))
	default:
		return layout.EncodeDescriptor(layout.KindMissing, 0)
	}
}

// encodeGenotypeEntry rectangularizes one FORMAT column across samples,
// padding with end-of-vector sentinels (or NUL bytes for strings).
func encodeGenotypeEntry(col value.GenotypeColumn, nSample int, compress bool) (kind layout.Kind, perSampleWidth int, payload []byte) {
	if col.Kind == value.String {
		strs := make([]string, nSample)
		maxLen := 0
		for i := 0; i < nSample && i < len(col.Samples); i++ {
			parts := make([]string, len(col.Samples[i]))
			for j, v := range col.Samples[i] {
				parts[j] = v.Str
			}
			s := strings.Join(parts, ",")
			strs[i] = s
			if len(s) > maxLen {
				maxLen = len(s)
			}
		}
		if maxLen == 0 {
			maxLen = 1
		}
		payload = make([]byte, nSample*maxLen)
		for i, s := range strs {
			copy(payload[i*maxLen:], s)
		}
		return layout.KindChar8, maxLen, payload
	}

	maxLen := 0
	for i := 0; i < nSample && i < len(col.Samples); i++ {
		if len(col.Samples[i]) > maxLen {
			maxLen = len(col.Samples[i])
		}
	}
	if maxLen == 0 {
		maxLen = 1
	}

	if col.Kind == value.Float32 {
		flat := make([]float32, nSample*maxLen)
		for i := range flat {
			flat[i] = value.EndOfVectorFloat32()
		}
		for i := 0; i < nSample && i < len(col.Samples); i++ {
			for j, v := range col.Samples[i] {
				flat[i*maxLen+j] = v.F32
			}
		}
		return layout.KindFloat32, maxLen, encodeFloat32Payload(flat)
	}

	flat := make([]int32, nSample*maxLen)
	for i := range flat {
		flat[i] = value.EndOfVectorInt32()
	}
	for i := 0; i < nSample && i < len(col.Samples); i++ {
		for j, v := range col.Samples[i] {
			flat[i*maxLen+j] = v.I32
		}
	}
	chosen := layout.KindInt32
	if compress {
		lo, hi := rangeOf(flat)
		chosen = layout.NarrowestIntKind(lo, hi)
	}
	return chosen, maxLen, encodeInt32PayloadAs(chosen, flat)
}

// encodeRecord builds the shared and individual (genotype) halves of one
// BCF record.
func encodeRecord(r *variant.Record, hdr *header.Header, opts WriterOptions, idxKind layout.Kind) (shared, indiv []byte, err error) {
	contig, ok := hdr.ContigByID(r.Chrom)
	if !ok {
		return nil, nil, verr.Format(0, "bcf encode: unknown contig %q", r.Chrom)
	}

	rlen := r.Rlen
	if rlen <= 0 {
		rlen = len(r.Ref)
	}

	core := layout.RecordCore{
		Chrom:   int32(contig.IDX),
		Pos:     int32(r.Pos - 1),
		Rlen:    int32(rlen),
		Qual:    r.Qual,
		NInfo:   uint16(len(r.Info)),
		NAllele: uint16(1 + len(r.Alt)),
		NSample: uint32(len(hdr.SampleNames)),
		NFmt:    uint8(len(r.Genotypes)),
	}
	coreBytes, err := core.MarshalBinary()
	if err != nil {
		return nil, nil, verr.Format(0, "%s", err)
	}

	var s []byte
	s = append(s, coreBytes...)
	s = append(s, encodeTypedString(r.ID)...)
	s = append(s, encodeTypedString(r.Ref)...)
	for _, a := range r.Alt {
		s = append(s, encodeTypedString(a)...)
	}
	filterBytes, err := encodeFilterVector(r.Filter, hdr, idxKind)
	if err != nil {
		return nil, nil, verr.Format(0, "%s", err)
	}
	s = append(s, filterBytes...)

	for _, e := range r.Info {
		info, ok := hdr.InfoByID(e.Key)
		if !ok {
			return nil, nil, verr.Format(0, "bcf encode: INFO key %q not declared in header", e.Key)
		}
		s = append(s, encodeTypedIntScalar(int64(info.IDX))...)
		s = append(s, encodeInfoValue(e.Value, opts.CompressIntegers)...)
	}

	var gt []byte
	for _, g := range r.Genotypes {
		fmtDef, ok := hdr.FormatByID(g.Key)
		if !ok {
			return nil, nil, verr.Format(0, "bcf encode: FORMAT key %q not declared in header", g.Key)
		}
		gt = append(gt, encodeTypedIntScalar(int64(fmtDef.IDX))...)

		if g.Key == "GT" {
			samples := make([]string, len(hdr.SampleNames))
			for i := 0; i < len(samples) && i < len(g.Column.Samples); i++ {
				if len(g.Column.Samples[i]) > 0 {
					samples[i] = g.Column.Samples[i][0].Str
				} else {
					samples[i] = "."
				}
			}
			kind, width, payload := encodeGTColumn(samples)
			gt = append(gt, layout.EncodeDescriptor(kind, width)...)
			gt = append(gt, payload...)
			continue
		}

		kind, width, payload := encodeGenotypeEntry(g.Column, len(hdr.SampleNames), opts.CompressIntegers)
		gt = append(gt, layout.EncodeDescriptor(kind, width)...)
		gt = append(gt, payload...)
	}

	return s, gt, nil
}
