package value

// Narrowing ranges: a value fits in int8 iff it lies in
// [-120, 127] (leaving the bottom of the signed byte range, -128..-121, free
// for the missing/end-of-vector sentinels and reserved codes); the analogous
// int16 range reserves the same handful of codes at the bottom
// (-32768..-32761).
const (
	minInt8Packable  = int32(-120)
	maxInt8Packable  = int32(127)
	minInt16Packable = int32(-32760)
	maxInt16Packable = int32(32767)
)

// fitsInt8 reports whether v can be losslessly stored as an int8 payload
// without colliding with the int8 missing/end-of-vector sentinels.
func fitsInt8(v int32) bool {
	return v >= minInt8Packable && v <= maxInt8Packable
}

func fitsInt16(v int32) bool {
	return v >= minInt16Packable && v <= maxInt16Packable
}

// SmallestIntKind returns the narrowest of Int8/Int16/Int32 that can hold
// every element of xs without colliding with a missing or end-of-vector
// sentinel. An empty slice returns Int8, the narrowest kind available.
func SmallestIntKind(xs []int32) Kind {
	kind := Int8
	for _, v := range xs {
		switch {
		case fitsInt8(v):
			// kind already at least Int8; no widening needed.
		case fitsInt16(v):
			if kind < Int16 {
				kind = Int16
			}
		default:
			return Int32
		}
	}
	return kind
}

// SmallestIntKindRange is the range-based form of SmallestIntKind, deciding
// from (lo, hi) without materializing every value. The BCF writer does not
// call it; it sizes IDX descriptors with layout.NarrowestIntKind.
func SmallestIntKindRange(lo, hi int32) Kind {
	if fitsInt8(lo) && fitsInt8(hi) {
		return Int8
	}
	if fitsInt16(lo) && fitsInt16(hi) {
		return Int16
	}
	return Int32
}
