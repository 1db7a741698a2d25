package value

// GenotypeColumn is the column-major per-sample carrier: one outer element
// per sample, each itself a sequence of values for FORMAT keys like PL
// that carry G values per sample.
type GenotypeColumn struct {
	Kind    Kind // element kind for every inner value (Int8/Int16/Int32/Float32/String)
	Samples [][]Owned
}

// NewGenotypeColumn allocates a column for n samples.
func NewGenotypeColumn(kind Kind, n int) GenotypeColumn {
	return GenotypeColumn{Kind: kind, Samples: make([][]Owned, n)}
}

// PackedGenotypeColumn is the contiguous two-level equivalent representation
// usable by performance-critical paths: concatenated
// storage plus an offsets array delimiting each sample's slice.
//
// For numeric kinds exactly one of I8/I16/I32/F32 is populated; Offsets has
// len(Samples)+1 entries, and sample i's values are Offsets[i]:Offsets[i+1].
type PackedGenotypeColumn struct {
	Kind    Kind
	Offsets []int

	I8   []int8
	I16  []int16
	I32  []int32
	F32  []float32
	Strs []string
}

// SampleCount returns the number of samples represented.
func (p PackedGenotypeColumn) SampleCount() int {
	if len(p.Offsets) == 0 {
		return 0
	}
	return len(p.Offsets) - 1
}

// ToJagged expands a packed column into the general GenotypeColumn
// representation used by call sites that do not need the contiguous layout.
func (p PackedGenotypeColumn) ToJagged() GenotypeColumn {
	n := p.SampleCount()
	col := NewGenotypeColumn(p.Kind, n)
	for i := 0; i < n; i++ {
		lo, hi := p.Offsets[i], p.Offsets[i+1]
		var vals []Owned
		switch p.Kind {
		case Int8:
			for _, x := range p.I8[lo:hi] {
				vals = append(vals, Owned{Kind: Int8, I8: x})
			}
		case Int16:
			for _, x := range p.I16[lo:hi] {
				vals = append(vals, Owned{Kind: Int16, I16: x})
			}
		case Int32:
			for _, x := range p.I32[lo:hi] {
				vals = append(vals, Owned{Kind: Int32, I32: x})
			}
		case Float32:
			for _, x := range p.F32[lo:hi] {
				vals = append(vals, Owned{Kind: Float32, F32: x})
			}
		case String:
			for _, s := range p.Strs[lo:hi] {
				vals = append(vals, Owned{Kind: String, Str: s})
			}
		}
		col.Samples[i] = vals
	}
	return col
}

// PackInt32 builds a PackedGenotypeColumn from ragged per-sample int32
// slices, the layout the BCF encoder rectangularizes before writing.
func PackInt32(samples [][]int32) PackedGenotypeColumn {
	offsets := make([]int, len(samples)+1)
	var flat []int32
	for i, s := range samples {
		flat = append(flat, s...)
		offsets[i+1] = len(flat)
	}
	return PackedGenotypeColumn{Kind: Int32, Offsets: offsets, I32: flat}
}
