// Package value implements the dynamic value model shared by the VCF and
// BCF codecs: a tagged union over the twelve permitted per-field value
// categories, plus the missing/end-of-vector sentinels and the integer
// width-selection policy both codecs rely on.
package value

// Kind enumerates the permitted value categories. The order is load-bearing
// and must never be reordered or renumbered. It is not the BCF on-disk
// descriptor kind: package layout has its own numbering, and package bcf
// translates between the two.
type Kind uint8

const (
	Char8 Kind = iota
	Int8
	Int16
	Int32
	Float32
	String
	VecInt8
	VecInt16
	VecInt32
	VecFloat32
	VecString
	Flag
)

// IsVector reports whether k carries a sequence of scalars rather than a
// single one (String and Flag are not considered vectors here: String is a
// single run of characters, Flag carries no payload).
func (k Kind) IsVector() bool {
	switch k {
	case VecInt8, VecInt16, VecInt32, VecFloat32, VecString:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case Char8:
		return "char8"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case String:
		return "string"
	case VecInt8:
		return "vec<int8>"
	case VecInt16:
		return "vec<int16>"
	case VecInt32:
		return "vec<int32>"
	case VecFloat32:
		return "vec<float32>"
	case VecString:
		return "vec<string>"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}
