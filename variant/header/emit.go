package header

import (
	"fmt"
	"io"
	"strings"
)

// WriteTo emits the header in a fixed section order:
// file_format, filters, infos, formats, contigs, other_lines, column_labels.
// withIDX selects between the BCF form (every entry carries IDX=) and the
// VCF canonical form (IDX omitted).
func (h *Header) WriteTo(w io.Writer, withIDX bool) (int64, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "##fileformat=%s\n", h.FileFormat)

	for _, f := range h.filters {
		sb.WriteString("##FILTER=<ID=")
		sb.WriteString(f.ID)
		sb.WriteString(",Description=")
		sb.WriteString(f.Description)
		writeOther(&sb, f.Other, f.OtherKeys)
		if withIDX {
			fmt.Fprintf(&sb, ",IDX=%d", f.IDX)
		}
		sb.WriteString(">\n")
	}

	for _, i := range h.infos {
		sb.WriteString("##INFO=<ID=")
		sb.WriteString(i.ID)
		fmt.Fprintf(&sb, ",Number=%s,Type=%s,Description=%s", i.Number, i.Type, i.Description)
		writeOther(&sb, i.Other, i.OtherKeys)
		if withIDX {
			fmt.Fprintf(&sb, ",IDX=%d", i.IDX)
		}
		sb.WriteString(">\n")
	}

	for _, f := range h.formats {
		sb.WriteString("##FORMAT=<ID=")
		sb.WriteString(f.ID)
		fmt.Fprintf(&sb, ",Number=%s,Type=%s,Description=%s", f.Number, f.Type, f.Description)
		writeOther(&sb, f.Other, f.OtherKeys)
		if withIDX {
			fmt.Fprintf(&sb, ",IDX=%d", f.IDX)
		}
		sb.WriteString(">\n")
	}

	for _, c := range h.contigs {
		sb.WriteString("##contig=<ID=")
		sb.WriteString(c.ID)
		if c.Length >= 0 {
			fmt.Fprintf(&sb, ",length=%d", c.Length)
		}
		writeOther(&sb, c.Other, c.OtherKeys)
		if withIDX {
			fmt.Fprintf(&sb, ",IDX=%d", c.IDX)
		}
		sb.WriteString(">\n")
	}

	for _, l := range h.OtherLines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}

	sb.WriteString("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO")
	if len(h.SampleNames) > 0 {
		sb.WriteString("\tFORMAT")
		for _, s := range h.SampleNames {
			sb.WriteByte('\t')
			sb.WriteString(s)
		}
	}
	sb.WriteByte('\n')

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func writeOther(sb *strings.Builder, other map[string]string, keys []string) {
	for _, k := range keys {
		sb.WriteByte(',')
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(other[k])
	}
}
