package vcf

import (
	"strconv"
	"strings"

	"github.com/solidgenomics/variantcodec/variant"
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
)

// parseInfoField decodes the INFO column: `;`-split
// key(=value)? pairs, consulting the header's declared type, falling back
// to the reserved-key table, and finally inventing a heuristic entry that
// gets appended to the header.
func parseInfoField(s string, hdr *header.Header, nAlts int, opts ReaderOptions) ([]variant.InfoEntry, error) {
	if s == "." || s == "" {
		return nil, nil
	}

	var entries []variant.InfoEntry
	for _, kv := range strings.Split(s, ";") {
		if kv == "" {
			continue
		}
		key, val, hasEq := strings.Cut(kv, "=")

		info, ok := hdr.InfoByID(key)
		if !ok {
			info = autoInsertInfo(hdr, key, hasEq, val, opts)
		}

		owned, err := parseInfoValue(val, hasEq, info.Type, info.Number, nAlts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, variant.InfoEntry{Key: key, Value: owned})
	}
	return entries, nil
}

// autoInsertInfo handles an undeclared INFO key: first consult the reserved
// table, otherwise invent a heuristic schema (a bare key is a Flag with
// Number=0, a comma-separated value is a vector-of-string with Number=.,
// anything else is a String with Number=1) and append it to the header,
// warning the caller.
func autoInsertInfo(hdr *header.Header, key string, hasEq bool, val string, opts ReaderOptions) *header.Info {
	if num, typ, desc, ok := header.ReservedInfo(key); ok {
		info := &header.Info{ID: key, IDX: -1, Number: num, Type: typ, Description: desc}
		hdr.AddInfo(info)
		_ = hdr.IdxUpdate()
		opts.warn("auto-inserted reserved INFO key %q", key)
		return info
	}

	var typ header.FieldType
	num := header.Number{Kind: header.NumberDot}
	switch {
	case !hasEq:
		typ = header.TypeFlag
		num = header.FixedNumber(0)
	case strings.Contains(val, ","):
		typ = header.TypeString // vector-of-string, Number=.
	default:
		typ = header.TypeString
		num = header.FixedNumber(1)
	}
	info := &header.Info{ID: key, IDX: -1, Number: num, Type: typ, Description: "Automatically added by variantcodec"}
	hdr.AddInfo(info)
	_ = hdr.IdxUpdate()
	opts.warn("auto-inserted unknown INFO key %q", key)
	return info
}

func parseInfoValue(val string, hasEq bool, t header.FieldType, n header.Number, nAlts int) (value.Owned, error) {
	if t == header.TypeFlag || !hasEq {
		return value.Owned{Kind: value.Flag}, nil
	}

	scalar := n.Kind == header.NumberFixed && n.Fixed == 1

	switch t {
	case header.TypeInteger:
		if scalar && !strings.Contains(val, ",") {
			return value.Owned{Kind: value.Int32, I32: parseInt32OrMissing(val)}, nil
		}
		parts := strings.Split(val, ",")
		vi := make([]int32, len(parts))
		for i, p := range parts {
			vi[i] = parseInt32OrMissing(p)
		}
		return value.Owned{Kind: value.VecInt32, VI32: vi}, nil
	case header.TypeFloat:
		if scalar && !strings.Contains(val, ",") {
			return value.Owned{Kind: value.Float32, F32: parseFloat32OrMissing(val)}, nil
		}
		parts := strings.Split(val, ",")
		vf := make([]float32, len(parts))
		for i, p := range parts {
			vf[i] = parseFloat32OrMissing(p)
		}
		return value.Owned{Kind: value.VecFloat32, VF32: vf}, nil
	case header.TypeCharacter:
		if scalar {
			ch := value.MissingChar()
			if len(val) > 0 {
				ch = val[0]
			}
			return value.Owned{Kind: value.Char8, Ch: ch}, nil
		}
		return value.Owned{Kind: value.String, Str: val}, nil
	default: // TypeString
		if scalar {
			return value.Owned{Kind: value.String, Str: val}, nil
		}
		if !strings.Contains(val, ",") {
			return value.Owned{Kind: value.VecString, VStr: []string{val}}, nil
		}
		return value.Owned{Kind: value.VecString, VStr: strings.Split(val, ",")}, nil
	}
}

func parseInt32OrMissing(s string) int32 {
	if s == "." || s == "" {
		return value.MissingInt32()
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return value.MissingInt32()
	}
	return int32(n)
}

func parseFloat32OrMissing(s string) float32 {
	if s == "." || s == "" {
		return value.MissingFloat32()
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return value.MissingFloat32()
	}
	return float32(f)
}

// renderInfoField is the inverse of parseInfoField: flag
// entries emit bare, everything else emits KEY=VAL with vectors
// comma-joined.
func renderInfoField(entries []variant.InfoEntry) string {
	if len(entries) == 0 {
		return "."
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Value.IsFlag() {
			parts = append(parts, e.Key)
			continue
		}
		parts = append(parts, e.Key+"="+renderInfoValue(e.Value))
	}
	return strings.Join(parts, ";")
}

func renderInfoValue(v value.Owned) string {
	switch v.Kind {
	case value.Int32:
		if v.I32 == value.MissingInt32() {
			return "."
		}
		return strconv.Itoa(int(v.I32))
	case value.VecInt32:
		parts := make([]string, len(v.VI32))
		for i, x := range v.VI32 {
			if x == value.MissingInt32() {
				parts[i] = "."
			} else {
				parts[i] = strconv.Itoa(int(x))
			}
		}
		return strings.Join(parts, ",")
	case value.Float32:
		if value.IsMissingFloat32(v.F32) {
			return "."
		}
		return strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
	case value.VecFloat32:
		parts := make([]string, len(v.VF32))
		for i, f := range v.VF32 {
			if value.IsMissingFloat32(f) {
				parts[i] = "."
			} else {
				parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
			}
		}
		return strings.Join(parts, ",")
	case value.Char8:
		return string(v.Ch)
	case value.String:
		return v.Str
	case value.VecString:
		return strings.Join(v.VStr, ",")
	default:
		return "."
	}
}
