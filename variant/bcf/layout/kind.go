// Package layout implements the BCF binary primitives: the typed-value
// descriptor byte, the 24-byte fixed record core, and the integer-width
// narrowing policy, independent of any VCF/header semantics.
package layout

// Kind is the BCF on-disk type nibble. Values 4, 6 and 8..15 are reserved.
type Kind uint8

const (
	KindMissing Kind = 0
	KindInt8    Kind = 1
	KindInt16   Kind = 2
	KindInt32   Kind = 3
	KindFloat32 Kind = 5
	KindChar8   Kind = 7
)

// Width returns the byte width of one element of kind k, or 0 for
// KindMissing (a zero-length value carries no payload bytes).
func (k Kind) Width() int {
	switch k {
	case KindInt8, KindChar8:
		return 1
	case KindInt16:
		return 2
	case KindInt32, KindFloat32:
		return 4
	default:
		return 0
	}
}

func (k Kind) valid() bool {
	switch k {
	case KindMissing, KindInt8, KindInt16, KindInt32, KindFloat32, KindChar8:
		return true
	default:
		return false
	}
}
