package morsel_test

import (
	"testing"

	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/draken"
	"github.com/mabel-dev/draken/morsel"
	"github.com/mabel-dev/draken/vector"
)

func newTestMorsel(t *testing.T) *morsel.Morsel {
	t.Helper()
	mem := memory.DefaultAllocator
	ids := vector.NewInt64Vector(mem, []int64{1, 2, 3}, nil)
	b := vector.WithEstimate(mem, 3, 8)
	require.NoError(t, b.Append([]byte("a")))
	require.NoError(t, b.Append([]byte("bb")))
	require.NoError(t, b.Append([]byte("ccc")))
	names, err := b.Finish()
	require.NoError(t, err)

	m, err := morsel.New(3,
		[]vector.Vector{ids, names},
		[][]byte{[]byte("id"), []byte("name")},
		[]draken.Type{draken.Int64, draken.String},
	)
	require.NoError(t, err)
	return m
}

func TestMorselNewRejectsLengthMismatch(t *testing.T) {
	mem := memory.DefaultAllocator
	ids := vector.NewInt64Vector(mem, []int64{1, 2, 3}, nil)
	defer ids.Release()

	_, err := morsel.New(4, []vector.Vector{ids}, [][]byte{[]byte("id")}, []draken.Type{draken.Int64})
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrLengthMismatch))
}

func TestMorselShapeAndColumnNames(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	rows, cols := m.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, [][]byte{[]byte("id"), []byte("name")}, m.ColumnNames())
}

func TestMorselColumnNotFound(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	_, err := m.Column([]byte("missing"))
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrColumnNotFound))
}

func TestMorselRowMaterializesValues(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row[0])
	assert.Equal(t, []byte("bb"), row[1])
}

func TestMorselRowOutOfRange(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	_, err := m.Row(10)
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrIndexOutOfRange))
}

func TestMorselTake(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	taken, err := m.Take([]int32{2, 0})
	require.NoError(t, err)
	defer taken.Release()

	rows, _ := taken.Shape()
	assert.Equal(t, 2, rows)

	row, err := taken.Row(0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row[0])
}

func TestMorselSelectAndRename(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	sel, err := m.Select([][]byte{[]byte("name")})
	require.NoError(t, err)
	defer sel.Release()
	_, cols := sel.Shape()
	assert.Equal(t, 1, cols)

	renamed, err := m.Rename([][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)
	defer renamed.Release()
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, renamed.ColumnNames())

	mapped := m.RenameMapping(map[string][]byte{"id": []byte("identifier")})
	defer mapped.Release()
	assert.Equal(t, [][]byte{[]byte("identifier"), []byte("name")}, mapped.ColumnNames())
}

func TestMorselSelectUnknownColumn(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	_, err := m.Select([][]byte{[]byte("ghost")})
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrColumnNotFound))
}

func TestMorselToArrowRoundTrip(t *testing.T) {
	m := newTestMorsel(t)
	defer m.Release()

	mem := memory.DefaultAllocator
	table, err := m.ToArrow(mem)
	require.NoError(t, err)
	defer table.Release()

	assert.Equal(t, int64(3), table.NumRows())
	assert.EqualValues(t, 2, table.NumCols())

	back, err := morsel.FromTable(mem, table, true)
	require.NoError(t, err)
	defer back.Release()

	row, err := back.Row(2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row[0])
	assert.Equal(t, []byte("ccc"), row[1])
}

func TestMorselFromTableStrictRejectsEmptySchema(t *testing.T) {
	mem := memory.DefaultAllocator
	m := newTestMorsel(t)
	defer m.Release()

	empty, err := m.Select(nil)
	require.NoError(t, err)
	defer empty.Release()
	table, err := empty.ToArrow(mem)
	require.NoError(t, err)
	defer table.Release()

	_, err = morsel.FromTable(mem, table, true)
	require.Error(t, err)
	assert.True(t, draken.Is(err, draken.ErrEmptySchema))
}
