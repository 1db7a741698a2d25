// Package arrowexport writes decoded variant records out as an Arrow IPC
// file, for interop with analytics tooling that reads Arrow/Feather rather
// than DuckDB's native format.
package arrowexport

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/solidgenomics/variantcodec/variant"
)

// Schema is the fixed column layout of an exported file: one row per
// variant record, ALT flattened to a comma-joined string and FILTER to a
// semicolon-joined string.
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: "chrom", Type: arrow.BinaryTypes.String},
	{Name: "pos", Type: arrow.PrimitiveTypes.Int64},
	{Name: "id", Type: arrow.BinaryTypes.String},
	{Name: "ref", Type: arrow.BinaryTypes.String},
	{Name: "alt", Type: arrow.BinaryTypes.String},
	{Name: "qual", Type: arrow.PrimitiveTypes.Float32, Nullable: true},
	{Name: "filter", Type: arrow.BinaryTypes.String},
}, nil)

const batchSize = 4096

// Writer buffers decoded records into Arrow record batches and streams them
// to an IPC file writer.
type Writer struct {
	pool     memory.Allocator
	bld      *array.RecordBuilder
	ipcw     *ipc.FileWriter
	nInBatch int
}

// NewWriter opens an Arrow IPC file writer over w, using Schema.
func NewWriter(w io.Writer) (*Writer, error) {
	ipcw, err := ipc.NewFileWriter(w, ipc.WithSchema(Schema))
	if err != nil {
		return nil, fmt.Errorf("open arrow ipc writer: %w", err)
	}
	pool := memory.NewGoAllocator()
	return &Writer{
		pool: pool,
		bld:  array.NewRecordBuilder(pool, Schema),
		ipcw: ipcw,
	}, nil
}

// WriteRecord appends one variant record to the current batch, flushing
// when the batch reaches batchSize rows.
func (w *Writer) WriteRecord(r *variant.Record) error {
	w.bld.Field(0).(*array.StringBuilder).Append(r.Chrom)
	w.bld.Field(1).(*array.Int64Builder).Append(int64(r.Pos))
	w.bld.Field(2).(*array.StringBuilder).Append(r.ID)
	w.bld.Field(3).(*array.StringBuilder).Append(r.Ref)

	alt := ""
	for i, a := range r.Alt {
		if i > 0 {
			alt += ","
		}
		alt += a
	}
	w.bld.Field(4).(*array.StringBuilder).Append(alt)

	if r.QualIsMissing() {
		w.bld.Field(5).(*array.Float32Builder).AppendNull()
	} else {
		w.bld.Field(5).(*array.Float32Builder).Append(r.Qual)
	}

	filter := ""
	for i, f := range r.Filter {
		if i > 0 {
			filter += ";"
		}
		filter += f
	}
	w.bld.Field(6).(*array.StringBuilder).Append(filter)

	w.nInBatch++
	if w.nInBatch >= batchSize {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if w.nInBatch == 0 {
		return nil
	}
	rec := w.bld.NewRecord()
	defer rec.Release()
	w.nInBatch = 0
	return w.ipcw.Write(rec)
}

// Close flushes any buffered rows and closes the underlying IPC writer.
func (w *Writer) Close() error {
	if err := w.flush(); err != nil {
		return err
	}
	w.bld.Release()
	return w.ipcw.Close()
}
