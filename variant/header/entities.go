// Package header implements the in-memory VCF/BCF header model: the four
// dictionaries of declared entities (contig, filter, info, format), the
// bidirectional string<->IDX mapping BCF uses in place of strings, and
// plaintext (de)serialization shared by both codecs.
package header

import "github.com/solidgenomics/variantcodec/variant/value"

// NumberKind distinguishes a fixed count from one of the four VCF Number
// sentinels.
type NumberKind byte

const (
	NumberFixed NumberKind = iota
	NumberA                // one value per ALT allele
	NumberR                // one value per REF+ALT allele
	NumberG                // one value per genotype (triangular in allele count)
	NumberDot              // unspecified
)

// Number is VCF's Number field: either a non-negative fixed count or one of
// the four sentinels A/R/G/dot.
type Number struct {
	Kind  NumberKind
	Fixed int // meaningful only when Kind == NumberFixed
}

func FixedNumber(n int) Number { return Number{Kind: NumberFixed, Fixed: n} }

// String renders the Number the way it appears in a ##INFO/##FORMAT line.
func (n Number) String() string {
	switch n.Kind {
	case NumberA:
		return "A"
	case NumberR:
		return "R"
	case NumberG:
		return "G"
	case NumberDot:
		return "."
	default:
		return itoa(n.Fixed)
	}
}

// Count resolves a Number to a concrete element count given the number of
// ALT alleles:
// A -> nAlts, R -> nAlts+1, G -> T(nAlts+1) where T(x) = x(x+1)/2, dot -> 1
// (unspecified - conservative single-slot default), fixed k -> k.
func (n Number) Count(nAlts int) int {
	switch n.Kind {
	case NumberA:
		return nAlts
	case NumberR:
		return nAlts + 1
	case NumberG:
		r := nAlts + 1
		return r * (r + 1) / 2
	case NumberDot:
		return 1
	default:
		return n.Fixed
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// FieldType is VCF's declared Type for an INFO/FORMAT entry.
type FieldType byte

const (
	TypeInteger FieldType = iota
	TypeFloat
	TypeFlag
	TypeCharacter
	TypeString
)

func (t FieldType) String() string {
	switch t {
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeFlag:
		return "Flag"
	case TypeCharacter:
		return "Character"
	case TypeString:
		return "String"
	default:
		return "String"
	}
}

// Contig is a ##contig declaration.
type Contig struct {
	ID        string
	IDX       int // -1 until assigned
	Length    int // -1 when not declared (see auto-insert on unknown CHROM)
	Other     map[string]string
	OtherKeys []string
}

// Filter is a ##FILTER declaration. PASS/IDX 0 is always present.
type Filter struct {
	ID          string
	IDX         int
	Description string
	Other       map[string]string
	OtherKeys   []string
}

// Info is a ##INFO declaration.
type Info struct {
	ID          string
	IDX         int
	Number      Number
	Type        FieldType
	Description string
	Other       map[string]string
	OtherKeys   []string
}

// Format is a ##FORMAT declaration; same field set as Info.
type Format struct {
	ID          string
	IDX         int
	Number      Number
	Type        FieldType
	Description string
	Other       map[string]string
	OtherKeys   []string
}

// ValueKind resolves the declared Number+Type pair to the value.Kind tag the
// codecs pivot on.
func (i Info) ValueKind() (value.Kind, bool) { return typeNumberToKind(i.Type, i.Number) }
func (f Format) ValueKind() (value.Kind, bool) { return typeNumberToKind(f.Type, f.Number) }

// typeNumberToKind implements the Type x Number -> value.Kind table.
func typeNumberToKind(t FieldType, n Number) (value.Kind, bool) {
	scalar := n.Kind == NumberFixed && n.Fixed == 1
	switch t {
	case TypeInteger:
		if scalar {
			return value.Int32, true
		}
		return value.VecInt32, true
	case TypeFloat:
		if scalar {
			return value.Float32, true
		}
		return value.VecFloat32, true
	case TypeCharacter:
		if scalar {
			return value.Char8, true
		}
		return value.String, true
	case TypeString:
		if scalar {
			return value.String, true
		}
		return value.VecString, true
	case TypeFlag:
		if n.Kind == NumberFixed && n.Fixed == 0 {
			return value.Flag, true
		}
		return 0, false
	default:
		return 0, false
	}
}
