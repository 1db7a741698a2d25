package header

import "fmt"

// IdxError is the structured error IdxUpdate/IdxValidate raise on a
// conflicting or broken IDX invariant rather than guessing.
type IdxError struct {
	Reason string
	ID     string
	IDX    int
}

func (e *IdxError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("header: idx error: %s (id=%q idx=%d)", e.Reason, e.ID, e.IDX)
	}
	return fmt.Sprintf("header: idx error: %s", e.Reason)
}

// IdxUpdate is idempotent. It ensures PASS is filter #0/IDX 0, assigns a
// fresh IDX to every entry still carrying -1, and rebuilds the reverse maps
// from scratch.
func (h *Header) IdxUpdate() error {
	if i, ok := h.filterIdx["PASS"]; !ok {
		h.filters = append([]*Filter{{ID: "PASS", IDX: 0, Description: "All filters passed"}}, h.filters...)
		for id, idx := range h.filterIdx {
			h.filterIdx[id] = idx + 1
		}
		h.filterIdx["PASS"] = 0
	} else if h.filters[i].IDX != 0 {
		h.filters[i].IDX = 0
	}

	maxNC := -1
	for _, f := range h.filters {
		if f.IDX > maxNC {
			maxNC = f.IDX
		}
	}
	for _, i := range h.infos {
		if i.IDX > maxNC {
			maxNC = i.IDX
		}
	}
	for _, f := range h.formats {
		if f.IDX > maxNC {
			maxNC = f.IDX
		}
	}
	if maxNC < 0 {
		maxNC = 0 // PASS already claims 0
	}

	next := maxNC + 1
	for _, f := range h.filters {
		if f.ID == "PASS" {
			continue
		}
		if f.IDX < 0 {
			f.IDX = next
			next++
		}
	}
	for _, i := range h.infos {
		if i.IDX < 0 {
			i.IDX = next
			next++
		}
	}
	for _, f := range h.formats {
		if f.IDX < 0 {
			f.IDX = next
			next++
		}
	}

	// Rebuild the shared filter/info/format reverse map, detecting
	// conflicts (two entries claiming the same IDX).
	ncByIDX := make(map[int]ncEntry)
	for i, f := range h.filters {
		if prev, exists := ncByIDX[f.IDX]; exists {
			return &IdxError{Reason: fmt.Sprintf("duplicate IDX %d (already used by slot %d)", f.IDX, prev.i), ID: f.ID, IDX: f.IDX}
		}
		ncByIDX[f.IDX] = ncEntry{kind: NCFilter, i: i}
	}
	for i, info := range h.infos {
		if _, exists := ncByIDX[info.IDX]; exists {
			return &IdxError{Reason: fmt.Sprintf("duplicate IDX %d", info.IDX), ID: info.ID, IDX: info.IDX}
		}
		ncByIDX[info.IDX] = ncEntry{kind: NCInfo, i: i}
	}
	for i, f := range h.formats {
		if _, exists := ncByIDX[f.IDX]; exists {
			return &IdxError{Reason: fmt.Sprintf("duplicate IDX %d", f.IDX), ID: f.ID, IDX: f.IDX}
		}
		ncByIDX[f.IDX] = ncEntry{kind: NCFormat, i: i}
	}
	h.ncByIDX = ncByIDX

	// Contigs have their own, separate IDX namespace starting at 0.
	maxContig := -1
	for _, c := range h.contigs {
		if c.IDX > maxContig {
			maxContig = c.IDX
		}
	}
	nextContig := maxContig + 1
	for _, c := range h.contigs {
		if c.IDX < 0 {
			c.IDX = nextContig
			nextContig++
		}
	}
	contigByIDX := make(map[int]int)
	for i, c := range h.contigs {
		if _, exists := contigByIDX[c.IDX]; exists {
			return &IdxError{Reason: fmt.Sprintf("duplicate contig IDX %d", c.IDX), ID: c.ID, IDX: c.IDX}
		}
		contigByIDX[c.IDX] = i
	}
	h.contigByIDX = contigByIDX

	return nil
}

// IdxClear resets every IDX to -1 (PASS stays 0) and drops the reverse maps.
func (h *Header) IdxClear() {
	for _, f := range h.filters {
		if f.ID != "PASS" {
			f.IDX = -1
		}
	}
	for _, i := range h.infos {
		i.IDX = -1
	}
	for _, f := range h.formats {
		f.IDX = -1
	}
	for _, c := range h.contigs {
		c.IDX = -1
	}
	h.ncByIDX = nil
	h.contigByIDX = nil
}

// IdxValidate is read-only: it reports an error if any IDX invariant is
// broken (no PASS, duplicate IDX, duplicate id, missing IDX).
func (h *Header) IdxValidate() error {
	if _, ok := h.filterIdx["PASS"]; !ok {
		return &IdxError{Reason: "PASS filter is not present"}
	}
	if f, _ := h.FilterByID("PASS"); f.IDX != 0 {
		return &IdxError{Reason: "PASS filter does not have IDX 0", ID: "PASS", IDX: f.IDX}
	}

	seenNC := make(map[int]string)
	checkNC := func(id string, idx int) error {
		if idx < 0 {
			return &IdxError{Reason: "entry has no IDX assigned", ID: id, IDX: idx}
		}
		if prevID, exists := seenNC[idx]; exists && prevID != id {
			return &IdxError{Reason: fmt.Sprintf("IDX %d is shared by %q and %q", idx, prevID, id), ID: id, IDX: idx}
		}
		seenNC[idx] = id
		return nil
	}
	for _, f := range h.filters {
		if err := checkNC(f.ID, f.IDX); err != nil {
			return err
		}
	}
	for _, i := range h.infos {
		if err := checkNC(i.ID, i.IDX); err != nil {
			return err
		}
	}
	for _, f := range h.formats {
		if err := checkNC(f.ID, f.IDX); err != nil {
			return err
		}
	}

	seenContig := make(map[int]string)
	for _, c := range h.contigs {
		if c.IDX < 0 {
			return &IdxError{Reason: "contig has no IDX assigned", ID: c.ID, IDX: c.IDX}
		}
		if prevID, exists := seenContig[c.IDX]; exists && prevID != c.ID {
			return &IdxError{Reason: fmt.Sprintf("contig IDX %d is shared by %q and %q", c.IDX, prevID, c.ID), ID: c.ID, IDX: c.IDX}
		}
		seenContig[c.IDX] = c.ID
	}

	return nil
}

// MaxIDX returns the largest IDX in the shared filter/info/format namespace,
// used by the BCF writer to precompute the narrowest IDX descriptor width
// for the whole file.
func (h *Header) MaxIDX() int {
	max := 0
	for _, f := range h.filters {
		if f.IDX > max {
			max = f.IDX
		}
	}
	for _, i := range h.infos {
		if i.IDX > max {
			max = i.IDX
		}
	}
	for _, f := range h.formats {
		if f.IDX > max {
			max = f.IDX
		}
	}
	return max
}
