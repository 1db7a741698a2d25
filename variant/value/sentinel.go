package value

import "math"

// Sentinel bit patterns: missing marks "no value", end-of-vector
// pads ragged per-sample vectors out to a rectangular array. Decoders must
// tolerate EOV padding; encoders must emit it when rectangularizing.
const (
	missingInt8  = int8(-0x80) // 0x80
	eovInt8      = int8(-0x7f) // 0x81

	missingInt16 = int16(-0x8000) // 0x8000
	eovInt16     = int16(-0x7fff) // 0x8001

	missingInt32 = int32(-0x80000000) // 0x80000000
	eovInt32     = int32(-0x7fffffff) // 0x80000001

	missingChar = byte(0x07)
	eovChar     = byte(0x00)
)

var (
	missingFloat32Bits = uint32(0x7F800001)
	eovFloat32Bits     = uint32(0x7F800002)
)

func MissingInt8() int8 { return missingInt8 }
func EndOfVectorInt8() int8 { return eovInt8 }

func MissingInt16() int16 { return missingInt16 }
func EndOfVectorInt16() int16 { return eovInt16 }

func MissingInt32() int32 { return missingInt32 }
func EndOfVectorInt32() int32 { return eovInt32 }

func MissingFloat32() float32 { return math.Float32frombits(missingFloat32Bits) }
func EndOfVectorFloat32() float32 { return math.Float32frombits(eovFloat32Bits) }

func MissingChar() byte { return missingChar }
func EndOfVectorChar() byte { return eovChar }

// IsMissingFloat32 reports whether f carries the missing-value NaN bit
// pattern. NaN never compares equal to itself, so bit comparison is required.
func IsMissingFloat32(f float32) bool {
	return math.Float32bits(f) == missingFloat32Bits
}

// IsEndOfVectorFloat32 reports whether f carries the end-of-vector NaN bit
// pattern.
func IsEndOfVectorFloat32(f float32) bool {
	return math.Float32bits(f) == eovFloat32Bits
}
