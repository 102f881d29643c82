package vector

import (
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/mabel-dev/draken"
)

type builderState uint8

const (
	stateFresh builderState = iota
	stateBuilding
	stateFinished
)

// StringVectorBuilder is the only stateful builder in the core: a
// transient object that owns a partially filled variable-width buffer.
// Calling Finish transfers ownership of that buffer into a returned
// StringVec; any further use of the builder after that (or after any
// error) fails with draken.ErrBuilderClosed.
//
// The append/offset bookkeeping is adapted from Arrow Go's BinaryBuilder:
// offsets are recorded one row ahead of the data they bound, and the data
// buffer is sized up front in strict mode or doubled on overflow in
// estimate mode.
type StringVectorBuilder struct {
	mem    memory.Allocator
	state  builderState
	strict bool // true for WithCounts, false for WithEstimate

	nRows      int
	totalBytes int // exact byte count (strict) or capacity hint (estimate)

	dataBuf    *memory.Buffer
	offsetsBuf *memory.Buffer
	bitmapBuf  *memory.Buffer

	pos   int32 // bytes written into dataBuf so far
	count int   // rows written so far
}

// WithCounts starts a strict builder: nRows rows totaling exactly
// totalBytes bytes of string data. Finish fails with draken.ErrCapacityMismatch
// if the appended bytes don't add up to exactly totalBytes.
func WithCounts(mem memory.Allocator, nRows, totalBytes int) *StringVectorBuilder {
	b := newStringVectorBuilder(mem, nRows, totalBytes)
	b.strict = true
	return b
}

// WithEstimate starts a growable builder: nRows rows with an initial data
// capacity hint of initialBytes, doubling the data buffer whenever an
// append would overflow it.
func WithEstimate(mem memory.Allocator, nRows, initialBytes int) *StringVectorBuilder {
	b := newStringVectorBuilder(mem, nRows, initialBytes)
	b.strict = false
	return b
}

func newStringVectorBuilder(mem memory.Allocator, nRows, byteCapacity int) *StringVectorBuilder {
	b := &StringVectorBuilder{mem: mem, nRows: nRows, totalBytes: byteCapacity}

	b.dataBuf = memory.NewResizableBuffer(mem)
	b.dataBuf.Resize(byteCapacity)

	b.offsetsBuf = memory.NewResizableBuffer(mem)
	b.offsetsBuf.Resize((nRows + 1) * 4)

	b.bitmapBuf = memory.NewResizableBuffer(mem)
	b.bitmapBuf.Resize(bytesForBits(nRows))
	for i := range b.bitmapBuf.Bytes() {
		b.bitmapBuf.Bytes()[i] = 0xFF
	}
	return b
}

func (b *StringVectorBuilder) offsets() []int32 {
	return bytesAsSlice[int32](b.offsetsBuf.Bytes(), b.nRows+1)
}

// invalidate releases whatever partial buffers the builder holds and moves
// it to the FINISHED state, so every later call fails with BuilderClosed.
// Used on any mid-operation error, matching the propagation policy that a
// builder never exposes a half-built vector; a successful Finish hands its
// buffers to the new StringVec and sets FINISHED itself.
func (b *StringVectorBuilder) invalidate() {
	if b.state == stateFinished {
		return
	}
	b.state = stateFinished
	if b.dataBuf != nil {
		b.dataBuf.Release()
		b.dataBuf = nil
	}
	if b.offsetsBuf != nil {
		b.offsetsBuf.Release()
		b.offsetsBuf = nil
	}
	if b.bitmapBuf != nil {
		b.bitmapBuf.Release()
		b.bitmapBuf = nil
	}
}

func (b *StringVectorBuilder) fail(kind draken.ErrorKind, format string, args ...interface{}) error {
	err := draken.NewError(kind, format, args...)
	b.invalidate()
	return err
}

func (b *StringVectorBuilder) checkOpen() error {
	if b.state == stateFinished {
		return draken.NewError(draken.ErrBuilderClosed, "builder already finished")
	}
	if b.count >= b.nRows {
		return b.fail(draken.ErrCapacityMismatch, "cannot append beyond declared row count %d", b.nRows)
	}
	return nil
}

func (b *StringVectorBuilder) ensureCapacity(extra int32) {
	needed := b.pos + extra
	if int(needed) <= b.dataBuf.Len() {
		return
	}
	newLen := b.dataBuf.Len()
	if newLen == 0 {
		newLen = int(extra)
	}
	for int(needed) > newLen {
		newLen *= 2
	}
	b.dataBuf.Resize(newLen)
}

func (b *StringVectorBuilder) appendBytes(v []byte, valid bool) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	b.state = stateBuilding

	if b.strict {
		if int(b.pos)+len(v) > b.totalBytes {
			return b.fail(draken.ErrCapacityMismatch, "declared total of %d bytes exceeded", b.totalBytes)
		}
	} else {
		b.ensureCapacity(int32(len(v)))
	}

	offs := b.offsets()
	offs[b.count] = b.pos
	copy(b.dataBuf.Bytes()[b.pos:], v)
	b.pos += int32(len(v))

	if !valid {
		bitClear(b.bitmapBuf.Bytes(), b.count)
	}
	b.count++
	return nil
}

// Append adds the next row's value; rows must be appended in order.
func (b *StringVectorBuilder) Append(v []byte) error {
	return b.appendBytes(v, true)
}

// AppendNull adds the next row as null; it still advances the offset so
// later rows line up, but contributes no bytes to the data buffer.
func (b *StringVectorBuilder) AppendNull() error {
	return b.appendBytes(nil, false)
}

// Set writes value at a specific row index, which must equal the builder's
// current cursor: like Append, rows can only be filled in order, 0..n-1.
func (b *StringVectorBuilder) Set(index int, v []byte) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if index != b.count {
		return b.fail(draken.ErrIncomplete, "set index %d does not match next expected index %d", index, b.count)
	}
	return b.appendBytes(v, true)
}

// SetNull is the null-row counterpart to Set.
func (b *StringVectorBuilder) SetNull(index int) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	if index != b.count {
		return b.fail(draken.ErrIncomplete, "set index %d does not match next expected index %d", index, b.count)
	}
	return b.appendBytes(nil, false)
}

// SetValidityMask overwrites the whole validity bitmap built up so far with
// mask, one byte per row (nonzero = valid), for callers that compute
// validity separately from the values themselves.
func (b *StringVectorBuilder) SetValidityMask(mask []byte) error {
	if b.state == stateFinished {
		return draken.NewError(draken.ErrBuilderClosed, "builder already finished")
	}
	if len(mask) != b.nRows {
		return b.fail(draken.ErrLengthMismatch, "validity mask length %d does not match row count %d", len(mask), b.nRows)
	}
	bits := b.bitmapBuf.Bytes()
	for i, v := range mask {
		bitSetTo(bits, i, v != 0)
	}
	return nil
}

// Finish completes the builder, transferring its buffers into a new owned
// StringVec. Fewer than nRows appended rows fails with ErrIncomplete;
// strict-mode byte totals that don't match exactly fail with
// ErrCapacityMismatch. Either way the builder is left FINISHED.
func (b *StringVectorBuilder) Finish() (*StringVec, error) {
	if b.state == stateFinished {
		return nil, draken.NewError(draken.ErrBuilderClosed, "builder already finished")
	}
	if b.count < b.nRows {
		return nil, b.fail(draken.ErrIncomplete, "only %d of %d rows were appended", b.count, b.nRows)
	}
	if b.strict && int(b.pos) != b.totalBytes {
		return nil, b.fail(draken.ErrCapacityMismatch, "wrote %d bytes, declared total was %d", b.pos, b.totalBytes)
	}

	offs := b.offsets()
	offs[b.nRows] = b.pos

	if !b.strict && int(b.pos) < b.dataBuf.Len() {
		b.dataBuf.Resize(int(b.pos))
	}

	nullCount := nullCountFromBitmap(b.bitmapBuf.Bytes(), b.nRows)

	out := &StringVec{
		data:       b.dataBuf.Bytes(),
		offsets:    bytesAsSlice[int32](b.offsetsBuf.Bytes(), b.nRows+1),
		length:     b.nRows,
		dataBuf:    b.dataBuf,
		offsetsBuf: b.offsetsBuf,
	}
	if nullCount > 0 {
		out.bitmap = b.bitmapBuf.Bytes()
		out.bitmapBuf = b.bitmapBuf
	} else {
		b.bitmapBuf.Release()
	}

	// Ownership of dataBuf/offsetsBuf has moved to out; clear our references
	// so the finished builder holds no buffers that out now owns.
	b.dataBuf = nil
	b.offsetsBuf = nil
	b.bitmapBuf = nil
	b.state = stateFinished

	return out, nil
}
