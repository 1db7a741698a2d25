// Package variant holds the codec-agnostic in-memory record shape that both
// variant/bcf and variant/vcf decode into and encode from.
package variant

import (
	"github.com/solidgenomics/variantcodec/variant/header"
	"github.com/solidgenomics/variantcodec/variant/value"
)

// InfoEntry is one INFO key/value pair. Value.Kind determines which of
// Value's fields is meaningful; a Flag entry's mere presence in Info is the
// value.
type InfoEntry struct {
	Key   string
	Value value.Owned
}

// GenotypeEntry is one FORMAT key's column across every sample, in header
// column-label order (field 9.. of a VCF line, or the n_fmt loop of a BCF
// record).
type GenotypeEntry struct {
	Key    string
	Column value.GenotypeColumn
}

// Record is the owned, independent-of-any-buffer in-memory representation
// of one variant call site. It holds a non-owning pointer back to the
// header that produced or will consume it: field<->IDX lookups and the
// encoder's header-was-set check
// both go through Header. Callers must not mutate a shared Header after an
// encoder has written its first record.
type Record struct {
	Header *header.Header

	Chrom string
	Pos   int // 1-based
	ID    string
	Ref   string
	Alt   []string
	Qual  float32 // value.MissingFloat32() denotes absence
	Rlen  int

	Filter []string // filter IDs that failed; nil/empty means unset, not "PASS failed"

	Info []InfoEntry

	// FormatKeys is the declared FORMAT order (field 9 of a VCF line); empty
	// when the record carries no genotype columns.
	FormatKeys []string
	Genotypes  []GenotypeEntry
}

// NAlts returns len(Alt), the value every Number=A/R/G count formula is
// parametrized on.
func (r *Record) NAlts() int { return len(r.Alt) }

// QualIsMissing reports whether Qual carries the float32 missing sentinel.
func (r *Record) QualIsMissing() bool { return value.IsMissingFloat32(r.Qual) }

// InfoByKey looks up an INFO entry by key, returning ok=false if absent.
func (r *Record) InfoByKey(key string) (InfoEntry, bool) {
	for _, e := range r.Info {
		if e.Key == key {
			return e, true
		}
	}
	return InfoEntry{}, false
}

// GenotypeByKey looks up a FORMAT column by key, returning ok=false if
// absent.
func (r *Record) GenotypeByKey(key string) (GenotypeEntry, bool) {
	for _, g := range r.Genotypes {
		if g.Key == key {
			return g, true
		}
	}
	return GenotypeEntry{}, false
}

// RecordView is the zero-copy twin of Record: string-bearing fields alias
// the decoder's current record span and are valid only until the decoder
// advances. Use Clone to escape that lifetime.
type RecordView struct {
	Header *header.Header

	Chrom string
	Pos   int
	ID    string
	Ref   string
	Alt   []string
	Qual  float32
	Rlen  int

	Filter []string

	InfoKeys   []string
	InfoValues []value.View

	FormatKeys     []string
	GenotypeValues []value.View // one View per FormatKeys entry, Kind matching the column's element kind packed as a vector-of-vectors is not representable here; see bcf/vcf decoders for the packed form actually returned.
}

// Clone copies a RecordView into an independent Record, the boundary copy a
// caller makes when storing a record outside its scan loop. GenotypeValues
// are not copied: the Record gets FormatKeys but no Genotypes.
func (v *RecordView) Clone() *Record {
	r := &Record{
		Header: v.Header,
		Chrom:  v.Chrom,
		Pos:    v.Pos,
		ID:     v.ID,
		Ref:    v.Ref,
		Qual:   v.Qual,
		Rlen:   v.Rlen,
	}
	if v.Alt != nil {
		r.Alt = append([]string(nil), v.Alt...)
	}
	if v.Filter != nil {
		r.Filter = append([]string(nil), v.Filter...)
	}
	for i, k := range v.InfoKeys {
		r.Info = append(r.Info, InfoEntry{Key: k, Value: v.InfoValues[i].Clone()})
	}
	if v.FormatKeys != nil {
		r.FormatKeys = append([]string(nil), v.FormatKeys...)
	}
	return r
}
