// Package morsel groups typed vectors into named, row-aligned batches: the
// unit a query engine operator passes between pipeline stages.
package morsel

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/cdata"
	"github.com/mabel-dev/draken/vector"
)

// Morsel is an ordered, named collection of vectors sharing a row count.
// It owns the vector handles (and releases them on Release) but not their
// underlying buffers, which follow each vector's own ownership mode.
type Morsel struct {
	numRows int
	columns []vector.Vector
	names   [][]byte
	types   []draken.Type
}

// New builds a morsel directly from columns, names and types, checking the
// structural invariants: equal-length slices and every column's length
// matching numRows.
func New(numRows int, columns []vector.Vector, names [][]byte, types []draken.Type) (*Morsel, error) {
	if len(columns) != len(names) || len(columns) != len(types) {
		return nil, draken.NewError(draken.ErrLengthMismatch, "columns (%d), names (%d) and types (%d) must have equal length", len(columns), len(names), len(types))
	}
	for i, c := range columns {
		if c.Len() != numRows {
			return nil, draken.NewError(draken.ErrLengthMismatch, "column %d has length %d, expected %d rows", i, c.Len(), numRows)
		}
	}
	return &Morsel{numRows: numRows, columns: columns, names: names, types: types}, nil
}

// FromTable builds one vector per column of an Arrow table via the Arrow
// bridge, combining each column's chunks into a single contiguous array
// first. strict requires at least one column; without it a zero-column
// table produces a zero-column morsel. The row count is always taken from
// table.NumRows().
func FromTable(mem memory.Allocator, table arrow.Table, strict bool) (*Morsel, error) {
	numCols := int(table.NumCols())
	if numCols == 0 && strict {
		return nil, draken.NewError(draken.ErrEmptySchema, "table has no columns")
	}

	columns := make([]vector.Vector, numCols)
	names := make([][]byte, numCols)
	types := make([]draken.Type, numCols)

	for i := 0; i < numCols; i++ {
		col := table.Column(i)
		chunked := col.Data()

		var combined arrow.Array
		chunks := chunked.Chunks()
		switch len(chunks) {
		case 0:
			combined = array.MakeArrayOfNull(mem, chunked.DataType(), 0)
		case 1:
			combined = chunks[0]
			combined.Retain()
		default:
			var err error
			combined, err = array.Concatenate(chunks, mem)
			if err != nil {
				return nil, draken.WrapError(draken.ErrUnsupportedType, err, "concatenating chunks of column %d", i)
			}
		}

		var v vector.Vector
		var err error
		if typeName, ok := cdata.LogicalType(col.Field().Metadata); ok && typeName == draken.NonNative.String() {
			// A column Draken itself exported as NonNative carries that tag
			// in its field metadata; honor it on the way back in rather than
			// re-guessing a native type from the Arrow type alone.
			v = vector.NewForeignArrowVector(mem, combined)
		} else {
			v, err = vector.FromArrow(mem, combined)
		}
		combined.Release()
		if err != nil {
			return nil, err
		}

		columns[i] = v
		names[i] = []byte(col.Name())
		types[i] = v.Type()
	}

	return &Morsel{numRows: int(table.NumRows()), columns: columns, names: names, types: types}, nil
}

// NumRows is the morsel's row count, shared by every column.
func (m *Morsel) NumRows() int { return m.numRows }

// NumColumns is the number of columns in the morsel.
func (m *Morsel) NumColumns() int { return len(m.columns) }

// Shape reports (rows, columns) in one call.
func (m *Morsel) Shape() (int, int) { return m.numRows, len(m.columns) }

// ColumnNames returns the column names in order, as stored (UTF-8 bytes).
func (m *Morsel) ColumnNames() [][]byte { return m.names }

// ColumnTypes returns the per-column logical type tags in order.
func (m *Morsel) ColumnTypes() []draken.Type { return m.types }

// Column returns the first column matching name; fails with
// draken.ErrColumnNotFound if there is none.
func (m *Morsel) Column(name []byte) (vector.Vector, error) {
	for i, n := range m.names {
		if bytesEqual(n, name) {
			return m.columns[i], nil
		}
	}
	return nil, draken.NewError(draken.ErrColumnNotFound, "no column named %q", name)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Row materializes the per-column values at row i as an opaque slice; a
// column whose element access fails contributes a nil placeholder rather
// than aborting the whole row, so a NonNative column that can't
// materialize a value doesn't block access to the rest of the row.
func (m *Morsel) Row(i int) ([]interface{}, error) {
	if i < 0 || i >= m.numRows {
		return nil, draken.NewError(draken.ErrIndexOutOfRange, "row %d out of range [0, %d)", i, m.numRows)
	}
	out := make([]interface{}, len(m.columns))
	for c, col := range m.columns {
		out[c] = rowValue(col, i)
	}
	return out, nil
}

func rowValue(col vector.Vector, i int) interface{} {
	if col.IsNullMask()[i] == 1 {
		return nil
	}
	switch v := col.(type) {
	case *vector.Int64Vec:
		return v.Value(i)
	case *vector.Int32Vec:
		return v.Value(i)
	case *vector.Int16Vec:
		return v.Value(i)
	case *vector.Int8Vec:
		return v.Value(i)
	case *vector.Float64Vec:
		return v.Value(i)
	case *vector.Float32Vec:
		return v.Value(i)
	case *vector.Date32Vec:
		return v.Value(i)
	case *vector.Timestamp64Vec:
		return v.Value(i)
	case *vector.BoolVec:
		return v.Value(i)
	case *vector.StringVec:
		return v.Value(i)
	default:
		// ArrayVec and ForeignArrowVec have no scalar accessor; a null
		// placeholder is returned rather than failing the whole row.
		return nil
	}
}

// Take gathers rows at indices from every column into a new morsel; all
// resulting vectors share the new row count. Names and types are
// preserved; an out-of-range index fails with draken.ErrIndexOutOfRange.
func (m *Morsel) Take(indices []int32) (*Morsel, error) {
	columns := make([]vector.Vector, len(m.columns))
	for i, col := range m.columns {
		taken, err := col.Take(indices)
		if err != nil {
			return nil, err
		}
		columns[i] = taken
	}
	return &Morsel{
		numRows: len(indices),
		columns: columns,
		names:   m.names,
		types:   m.types,
	}, nil
}

// Select projects the morsel down to the named columns, in the given
// order; result vectors share the source morsel's handles (each Retained
// on the way in, so the two morsels can be Released independently) rather
// than copies. Fails with draken.ErrColumnNotFound for any name with no
// match.
func (m *Morsel) Select(names [][]byte) (*Morsel, error) {
	columns := make([]vector.Vector, len(names))
	types := make([]draken.Type, len(names))
	outNames := make([][]byte, len(names))
	for i, name := range names {
		idx := -1
		for j, n := range m.names {
			if bytesEqual(n, name) {
				idx = j
				break
			}
		}
		if idx == -1 {
			return nil, draken.NewError(draken.ErrColumnNotFound, "no column named %q", name)
		}
		columns[i] = m.columns[idx]
		columns[i].Retain()
		types[i] = m.types[idx]
		outNames[i] = name
	}
	return &Morsel{numRows: m.numRows, columns: columns, names: outNames, types: types}, nil
}

// Rename produces a new morsel with the same vector handles and new column
// names taken from an ordered list whose length must equal NumColumns (see
// RenameMapping for the old-name-to-new-name form). Each shared column is Retained so the two morsels can be Released
// independently.
func (m *Morsel) Rename(names [][]byte) (*Morsel, error) {
	if len(names) != len(m.columns) {
		return nil, draken.NewError(draken.ErrLengthMismatch, "rename list has %d names, morsel has %d columns", len(names), len(m.columns))
	}
	columns := make([]vector.Vector, len(m.columns))
	copy(columns, m.columns)
	for _, c := range columns {
		c.Retain()
	}
	return &Morsel{numRows: m.numRows, columns: columns, names: names, types: m.types}, nil
}

// RenameMapping is the mapping-based form of Rename: names not present as a
// key in mapping are left unchanged. Each shared column is Retained so the
// two morsels can be Released independently.
func (m *Morsel) RenameMapping(mapping map[string][]byte) *Morsel {
	outNames := make([][]byte, len(m.names))
	for i, n := range m.names {
		if newName, ok := mapping[string(n)]; ok {
			outNames[i] = newName
		} else {
			outNames[i] = n
		}
	}
	columns := make([]vector.Vector, len(m.columns))
	copy(columns, m.columns)
	for _, c := range columns {
		c.Retain()
	}
	return &Morsel{numRows: m.numRows, columns: columns, names: outNames, types: m.types}
}

// ToArrow assembles an Arrow table from the morsel's current columns and
// names by calling each vector's own ToArrow.
func (m *Morsel) ToArrow(mem memory.Allocator) (arrow.Table, error) {
	fields := make([]arrow.Field, len(m.columns))
	cols := make([]arrow.Column, len(m.columns))
	for i, col := range m.columns {
		arr, err := col.ToArrow(mem)
		if err != nil {
			return nil, err
		}
		meta := cdata.WithLogicalType(arrow.Metadata{}, m.types[i].String())
		fields[i] = arrow.Field{Name: string(m.names[i]), Type: arr.DataType(), Nullable: col.NullCount() > 0, Metadata: meta}
		chunked := arrow.NewChunked(arr.DataType(), []arrow.Array{arr})
		cols[i] = *arrow.NewColumn(fields[i], chunked)
		arr.Release()
		chunked.Release()
	}
	schema := arrow.NewSchema(fields, nil)
	table := array.NewTable(schema, cols, int64(m.numRows))
	for i := range cols {
		cols[i].Release()
	}
	return table, nil
}

// Release drops the morsel's handle on every column vector.
func (m *Morsel) Release() {
	for _, col := range m.columns {
		col.Release()
	}
}

// Retain increments every column vector's reference count; used when a
// morsel is shared across concurrent readers.
func (m *Morsel) Retain() {
	for _, col := range m.columns {
		col.Retain()
	}
}
