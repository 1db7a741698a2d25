package vcf

import (
	"strconv"
	"strings"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
)

// parseGenotypes decodes field 9 (the FORMAT spec) and the sample columns
// that follow it. A sample's trailing FORMAT keys may be
// omitted (dropped, not padded).
func parseGenotypes(formatField string, sampleFields []string, hdr *header.Header, nAlts int) ([]string, []variant.GenotypeEntry) {
	if formatField == "" {
		return nil, nil
	}
	keys := strings.Split(formatField, ":")
	columns := make([]value.GenotypeColumn, len(keys))
	for i, k := range keys {
		columns[i] = value.NewGenotypeColumn(genotypeElementKind(k, hdr), len(sampleFields))
	}

	for s, sample := range sampleFields {
		parts := strings.Split(sample, ":")
		for i := 0; i < len(parts) && i < len(keys); i++ {
			columns[i].Samples[s] = parseGenotypeValue(keys[i], parts[i], columns[i].Kind)
		}
	}

	entries := make([]variant.GenotypeEntry, len(keys))
	for i, k := range keys {
		entries[i] = variant.GenotypeEntry{Key: k, Column: columns[i]}
	}
	return keys, entries
}

func genotypeElementKind(key string, hdr *header.Header) value.Kind {
	if key == "GT" {
		return value.String
	}
	if f, ok := hdr.FormatByID(key); ok {
		if k, ok := f.ValueKind(); ok {
			switch k {
			case value.VecInt8, value.VecInt16, value.VecInt32:
				return value.Int32
			case value.VecFloat32:
				return value.Float32
			case value.VecString, value.String:
				return value.String
			default:
				return k
			}
		}
	}
	return value.String
}

// parseGenotypeValue splits a single sample's value for one FORMAT key into
// its per-sample vector of Owned values (".", the field-width VCF sentinel,
// maps to an empty vector; "." does not comma-split).
func parseGenotypeValue(key, raw string, kind value.Kind) []value.Owned {
	if key == "GT" {
		return []value.Owned{{Kind: value.String, Str: raw}}
	}
	if raw == "." {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]value.Owned, 0, len(parts))
	switch kind {
	case value.Int32:
		for _, p := range parts {
			out = append(out, value.Owned{Kind: value.Int32, I32: parseInt32OrMissing(p)})
		}
	case value.Float32:
		for _, p := range parts {
			out = append(out, value.Owned{Kind: value.Float32, F32: parseFloat32OrMissing(p)})
		}
	default:
		for _, p := range parts {
			out = append(out, value.Owned{Kind: value.String, Str: p})
		}
	}
	return out
}

// renderGenotypes is the inverse of parseGenotypes: FORMAT
// is `:`-joined keys, each sample is `:`-joined values, a missing
// scalar/vector renders as ".".
func renderGenotypes(keys []string, entries []variant.GenotypeEntry, nSample int) (formatField string, sampleFields []string) {
	if len(keys) == 0 {
		return "", nil
	}
	formatField = strings.Join(keys, ":")
	byKey := make(map[string]value.GenotypeColumn, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e.Column
	}

	sampleFields = make([]string, nSample)
	for s := 0; s < nSample; s++ {
		parts := make([]string, len(keys))
		for i, k := range keys {
			col, ok := byKey[k]
			if !ok || s >= len(col.Samples) {
				parts[i] = "."
				continue
			}
			parts[i] = renderGenotypeValue(k, col.Samples[s])
		}
		sampleFields[s] = strings.Join(parts, ":")
	}
	return formatField, sampleFields
}

func renderGenotypeValue(key string, vals []value.Owned) string {
	if len(vals) == 0 {
		return "."
	}
	if key == "GT" {
		return vals[0].Str
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		switch v.Kind {
		case value.Int32:
			if v.I32 == value.MissingInt32() {
				parts[i] = "."
			} else {
				parts[i] = strconv.Itoa(int(v.I32))
			}
		case value.Float32:
			if value.IsMissingFloat32(v.F32) {
				parts[i] = "."
			} else {
				parts[i] = strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
			}
		default:
			parts[i] = v.Str
		}
	}
	return strings.Join(parts, ",")
}
