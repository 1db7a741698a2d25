package header

// Header is the in-memory VCF/BCF schema. Each of the four entity kinds is
// kept as an insertion-ordered slice alongside a name->index map, so
// insertion order is observable for round-trip fidelity.
type Header struct {
	FileFormat  string
	SampleNames []string // nil if no sample columns
	OtherLines  []string // verbatim "##<any-other-text>" lines

	contigs   []*Contig
	contigIdx map[string]int // id -> slice index
	filters   []*Filter
	filterIdx map[string]int
	infos     []*Info
	infoIdx   map[string]int
	formats   []*Format
	formatIdx map[string]int

	// reverse maps, rebuilt by IdxUpdate: IDX -> slice index.
	contigByIDX map[int]int
	ncByIDX     map[int]ncEntry // filter/info/format share one IDX namespace
}

// New returns an empty header with the PASS filter already present at
// filter #0 / IDX 0.
func New() *Header {
	h := &Header{
		contigIdx: make(map[string]int),
		filterIdx: make(map[string]int),
		infoIdx:   make(map[string]int),
		formatIdx: make(map[string]int),
	}
	h.filters = append(h.filters, &Filter{ID: "PASS", IDX: 0, Description: "All filters passed"})
	h.filterIdx["PASS"] = 0
	return h
}

// AddContig appends a contig declaration, storing its IDX as given (-1 means
// unassigned). A contig whose ID is already declared is ignored.
func (h *Header) AddContig(c *Contig) {
	if _, exists := h.contigIdx[c.ID]; exists {
		return
	}
	h.contigIdx[c.ID] = len(h.contigs)
	h.contigs = append(h.contigs, c)
}

// AddFilter appends a filter declaration. Re-declaring "PASS" overrides the
// default description/IDX in place rather than appending a duplicate.
func (h *Header) AddFilter(f *Filter) {
	if i, exists := h.filterIdx[f.ID]; exists {
		h.filters[i] = f
		return
	}
	h.filterIdx[f.ID] = len(h.filters)
	h.filters = append(h.filters, f)
}

func (h *Header) AddInfo(i *Info) {
	if idx, exists := h.infoIdx[i.ID]; exists {
		h.infos[idx] = i
		return
	}
	h.infoIdx[i.ID] = len(h.infos)
	h.infos = append(h.infos, i)
}

func (h *Header) AddFormat(f *Format) {
	if idx, exists := h.formatIdx[f.ID]; exists {
		h.formats[idx] = f
		return
	}
	h.formatIdx[f.ID] = len(h.formats)
	h.formats = append(h.formats, f)
}

func (h *Header) Contigs() []*Contig { return h.contigs }
func (h *Header) Filters() []*Filter { return h.filters }
func (h *Header) Infos() []*Info     { return h.infos }
func (h *Header) Formats() []*Format { return h.formats }

func (h *Header) ContigByID(id string) (*Contig, bool) {
	i, ok := h.contigIdx[id]
	if !ok {
		return nil, false
	}
	return h.contigs[i], true
}

func (h *Header) FilterByID(id string) (*Filter, bool) {
	i, ok := h.filterIdx[id]
	if !ok {
		return nil, false
	}
	return h.filters[i], true
}

func (h *Header) InfoByID(id string) (*Info, bool) {
	i, ok := h.infoIdx[id]
	if !ok {
		return nil, false
	}
	return h.infos[i], true
}

func (h *Header) FormatByID(id string) (*Format, bool) {
	i, ok := h.formatIdx[id]
	if !ok {
		return nil, false
	}
	return h.formats[i], true
}

// ContigByIDX resolves a contig IDX to its declaration. Valid only after
// IdxUpdate has been run (reverse maps are built there).
func (h *Header) ContigByIDX(idx int) (*Contig, bool) {
	i, ok := h.contigByIDX[idx]
	if !ok {
		return nil, false
	}
	return h.contigs[i], true
}

// NCKind identifies which of the three shared-namespace dictionaries an
// IDX resolves into.
type NCKind byte

const (
	NCFilter NCKind = iota
	NCInfo
	NCFormat
)

// ncEntry is an IDX -> (kind, slice index) pair in the shared filter/info/
// format namespace.
type ncEntry struct {
	kind NCKind
	i    int
}

// FilterByIDX, InfoByIDX and FormatByIDX resolve an IDX in the shared
// namespace, returning ok=false if idx does not belong to that dictionary.
func (h *Header) FilterByIDX(idx int) (*Filter, bool) {
	e, ok := h.ncByIDX[idx]
	if !ok || e.kind != NCFilter {
		return nil, false
	}
	return h.filters[e.i], true
}

func (h *Header) InfoByIDX(idx int) (*Info, bool) {
	e, ok := h.ncByIDX[idx]
	if !ok || e.kind != NCInfo {
		return nil, false
	}
	return h.infos[e.i], true
}

func (h *Header) FormatByIDX(idx int) (*Format, bool) {
	e, ok := h.ncByIDX[idx]
	if !ok || e.kind != NCFormat {
		return nil, false
	}
	return h.formats[e.i], true
}
