// Package tape implements the fixed-length wrapping byte tape every stage
// of the pipeline executes against. Bounds checks return an error rather
// than panicking, the same discipline a memory-mapped device or CPU
// emulator applies to every out-of-range access instead of indexing
// straight off the end of a backing array.
package tape

import "bf/core"

// DefaultSize is the tape length used when a caller doesn't specify one.
const DefaultSize = 30000

// Tape is a fixed-capacity array of wrapping 8-bit cells with a single
// pointer. A Tape is owned exclusively by one execution; it is never safe
// to share across concurrent runs.
type Tape struct {
	cells []byte
	ptr   int
}

// New allocates a zeroed tape of the given capacity. A size below 1
// selects DefaultSize.
func New(size int) *Tape {
	if size < 1 {
		size = DefaultSize
	}
	return &Tape{cells: make([]byte, size)}
}

// Len returns the tape's capacity.
func (t *Tape) Len() int { return len(t.cells) }

// Pos returns the current pointer position.
func (t *Tape) Pos() int { return t.ptr }

// Load returns the value of the current cell.
func (t *Tape) Load() byte { return t.cells[t.ptr] }

// Store writes v to the current cell.
func (t *Tape) Store(v byte) { t.cells[t.ptr] = v }

// Up adds k to the current cell, wrapping mod 256.
func (t *Tape) Up(k byte) { t.cells[t.ptr] += k }

// Down subtracts k from the current cell, wrapping mod 256.
func (t *Tape) Down(k byte) { t.cells[t.ptr] -= k }

// Right advances the pointer by n. It fails with PointerOverflow rather
// than move the pointer at or past the tape's capacity.
func (t *Tape) Right(n int) error {
	if t.ptr+n >= len(t.cells) {
		return core.New(core.PointerOverflow, -1)
	}
	t.ptr += n
	return nil
}

// Left retreats the pointer by n. It fails with PointerUnderflow rather
// than move the pointer below 0.
func (t *Tape) Left(n int) error {
	if t.ptr-n < 0 {
		return core.New(core.PointerUnderflow, -1)
	}
	t.ptr -= n
	return nil
}

// UpPosOffset adds the current cell's value to the cell n positions to the
// right, then zeroes the current cell. Used by OffsetAddRight.
func (t *Tape) UpPosOffset(n int) error {
	if t.ptr+n >= len(t.cells) {
		return core.New(core.PointerOverflow, -1)
	}
	t.cells[t.ptr+n] += t.cells[t.ptr]
	t.cells[t.ptr] = 0
	return nil
}

// UpNegOffset adds the current cell's value to the cell n positions to the
// left, then zeroes the current cell. Used by OffsetAddLeft.
func (t *Tape) UpNegOffset(n int) error {
	if t.ptr-n < 0 {
		return core.New(core.PointerUnderflow, -1)
	}
	t.cells[t.ptr-n] += t.cells[t.ptr]
	t.cells[t.ptr] = 0
	return nil
}

// FindZeroRight advances the pointer by n at a time until it lands on a
// zero cell, failing with PointerOverflow if that would run off the tape.
func (t *Tape) FindZeroRight(n int) error {
	for t.cells[t.ptr] != 0 {
		if err := t.Right(n); err != nil {
			return err
		}
	}
	return nil
}

// FindZeroLeft is the mirror of FindZeroRight.
func (t *Tape) FindZeroLeft(n int) error {
	for t.cells[t.ptr] != 0 {
		if err := t.Left(n); err != nil {
			return err
		}
	}
	return nil
}

// AsBytes exposes the raw backing array for the JIT, which needs the base
// address and capacity to pass across the native calling convention.
func (t *Tape) AsBytes() []byte { return t.cells }

// Reset zeroes every cell and returns the pointer to 0, for reuse across
// runs without reallocating.
func (t *Tape) Reset() {
	for i := range t.cells {
		t.cells[i] = 0
	}
	t.ptr = 0
}
