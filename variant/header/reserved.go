package header

// reservedInfoEntry and reservedFormatEntry hold a reserved key's canonical
// (Number, Type, Description), taken verbatim from the VCF 4.3 format
// specification's Table 1/Table 2. These are process-wide, read-only
// constants: a customization point for applications that want to extend
// them is a build-time table, not runtime mutation, so they are unexported
// and accessed only through ReservedInfo/ReservedFormat below.
type reservedEntry struct {
	Number      Number
	Type        FieldType
	Description string
}

var reservedInfos = map[string]reservedEntry{
	"AA":        {FixedNumber(1), TypeString, "Ancestral allele"},
	"AC":        {Number{Kind: NumberA}, TypeInteger, "Allele count in genotypes, for each ALT allele, in the same order as listed"},
	"AD":        {Number{Kind: NumberR}, TypeInteger, "Total read depth for each allele"},
	"ADF":       {Number{Kind: NumberR}, TypeInteger, "Read depth for each allele on the forward strand"},
	"ADR":       {Number{Kind: NumberR}, TypeInteger, "Read depth for each allele on the reverse strand"},
	"AF":        {Number{Kind: NumberA}, TypeFloat, "Allele frequency for each ALT allele in the same order as listed"},
	"AN":        {FixedNumber(1), TypeInteger, "Total number of alleles in called genotypes"},
	"BQ":        {FixedNumber(1), TypeFloat, "RMS base quality"},
	"CIGAR":     {Number{Kind: NumberA}, TypeString, "Cigar string describing how to align an alternate allele to the reference allele"},
	"DB":        {FixedNumber(0), TypeFlag, "dbSNP membership"},
	"DP":        {FixedNumber(1), TypeInteger, "Combined depth across samples"},
	"END":       {FixedNumber(1), TypeInteger, "End position on CHROM (used with symbolic alleles)"},
	"H2":        {FixedNumber(0), TypeFlag, "HapMap2 membership"},
	"H3":        {FixedNumber(0), TypeFlag, "HapMap3 membership"},
	"MQ":        {FixedNumber(1), TypeFloat, "RMS mapping quality"},
	"MQ0":       {FixedNumber(1), TypeInteger, "Number of MAPQ == 0 reads"},
	"NS":        {FixedNumber(1), TypeInteger, "Number of samples with data"},
	"SB":        {FixedNumber(4), TypeInteger, "Strand bias"},
	"SOMATIC":   {FixedNumber(0), TypeFlag, "Somatic mutation (for cancer genomics)"},
	"VALIDATED": {FixedNumber(0), TypeFlag, "Validated by follow-up experiment"},
	"1000G":     {FixedNumber(0), TypeFlag, "1000 Genomes membership"},
}

var reservedFormats = map[string]reservedEntry{
	"AD":  {Number{Kind: NumberR}, TypeInteger, "Read depth for each allele"},
	"ADF": {Number{Kind: NumberR}, TypeInteger, "Read depth for each allele on the forward strand"},
	"ADR": {Number{Kind: NumberR}, TypeInteger, "Read depth for each allele on the reverse strand"},
	"DP":  {FixedNumber(1), TypeInteger, "Read depth"},
	"EC":  {Number{Kind: NumberA}, TypeInteger, "Expected alternate allele counts"},
	"FT":  {FixedNumber(1), TypeString, "Filter indicating if this genotype was called"},
	"GL":  {Number{Kind: NumberG}, TypeFloat, "Genotype likelihoods"},
	"GP":  {Number{Kind: NumberG}, TypeFloat, "Genotype posterior probabilities"},
	"GQ":  {FixedNumber(1), TypeInteger, "Conditional genotype quality"},
	"GT":  {FixedNumber(1), TypeString, "Genotype"},
	"HQ":  {FixedNumber(2), TypeInteger, "Haplotype quality"},
	"LAA": {Number{Kind: NumberDot}, TypeInteger, "Strictly increasing, 1-based indices into ALT, indicating which alternate alleles are relevant (local) for the current sample"},
	"LAD": {Number{Kind: NumberDot}, TypeInteger, "Read depth for the reference and each of the local alternate alleles listed in LAA"},
	"LGT": {Number{Kind: NumberDot}, TypeString, "Genotype against the local alleles"},
	"LPL": {Number{Kind: NumberDot}, TypeInteger, "Phred-scaled genotype likelihoods rounded to the closest integer for genotypes that involve the reference and the local alternative alleles listed in LAA"},
	"MQ":  {FixedNumber(1), TypeInteger, "RMS mapping quality"},
	"PL":  {Number{Kind: NumberG}, TypeInteger, "Phred-scaled genotype likelihoods rounded to the closest integer"},
	"PP":  {Number{Kind: NumberG}, TypeInteger, "Phred-scaled genotype posterior probabilities rounded to the closest integer"},
	"PQ":  {FixedNumber(1), TypeInteger, "Phasing quality"},
	"PS":  {FixedNumber(1), TypeInteger, "Phase set"},
}

// ReservedInfo looks up a reserved INFO key's canonical schema. VCF decoders
// consult this before inventing a generic entry for an unknown key.
func ReservedInfo(key string) (Number, FieldType, string, bool) {
	e, ok := reservedInfos[key]
	return e.Number, e.Type, e.Description, ok
}

// ReservedFormat looks up a reserved FORMAT key's canonical schema.
func ReservedFormat(key string) (Number, FieldType, string, bool) {
	e, ok := reservedFormats[key]
	return e.Number, e.Type, e.Description, ok
}
