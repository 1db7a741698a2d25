package value

// Owned is a dynamic value whose string-bearing fields own their storage.
// Exactly one set of fields is meaningful for a given Kind; the rest are
// left at their zero value. Go has no tagged-union language feature, so the
// union is modeled as a flat struct discriminated by Kind, mirroring the
// plain-struct style the rest of this codebase favors over interface-heavy
// polymorphism.
type Owned struct {
	Kind Kind

	I8  int8
	I16 int16
	I32 int32
	F32 float32
	Str string
	Ch  byte // Char8

	VI8  []int8
	VI16 []int16
	VI32 []int32
	VF32 []float32
	VStr []string

	// Flag carries no payload; its presence in an INFO list is the value.
}

// View is the zero-copy twin of Owned: string-bearing fields are slices
// aliasing an externally-owned buffer (a VCF line or a BCF record span).
// Its validity ends at the next advance of the decoder that produced it.
type View struct {
	Kind Kind

	I8  int8
	I16 int16
	I32 int32
	F32 float32
	Str []byte
	Ch  byte

	VI8  []int8
	VI16 []int16
	VI32 []int32
	VF32 []float32
	VStr [][]byte
}

// Clone copies a View into an Owned value that is independent of the
// decoder's buffer lifetime. This is the boundary copy callers make when
// storing records outside a scan loop.
func (v View) Clone() Owned {
	o := Owned{Kind: v.Kind, I8: v.I8, I16: v.I16, I32: v.I32, F32: v.F32, Ch: v.Ch}
	if v.Str != nil {
		o.Str = string(v.Str)
	}
	if v.VI8 != nil {
		o.VI8 = append([]int8(nil), v.VI8...)
	}
	if v.VI16 != nil {
		o.VI16 = append([]int16(nil), v.VI16...)
	}
	if v.VI32 != nil {
		o.VI32 = append([]int32(nil), v.VI32...)
	}
	if v.VF32 != nil {
		o.VF32 = append([]float32(nil), v.VF32...)
	}
	if v.VStr != nil {
		o.VStr = make([]string, len(v.VStr))
		for i, s := range v.VStr {
			o.VStr[i] = string(s)
		}
	}
	return o
}

// Borrow returns a View of o. The numeric vector slices alias o's own
// storage; string fields are copied into new byte slices. It exists so call
// sites that accept a View can be fed an Owned value without a type switch.
func (o Owned) Borrow() View {
	v := View{Kind: o.Kind, I8: o.I8, I16: o.I16, I32: o.I32, F32: o.F32, Ch: o.Ch}
	if o.Str != "" {
		v.Str = []byte(o.Str)
	}
	v.VI8 = o.VI8
	v.VI16 = o.VI16
	v.VI32 = o.VI32
	v.VF32 = o.VF32
	if o.VStr != nil {
		v.VStr = make([][]byte, len(o.VStr))
		for i, s := range o.VStr {
			v.VStr[i] = []byte(s)
		}
	}
	return v
}

// IsFlag reports whether o represents a present Flag value.
func (o Owned) IsFlag() bool { return o.Kind == Flag }
