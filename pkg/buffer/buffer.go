// Package buffer implements the growable byte buffer used to assemble
// rendered lines and filter command strings.
//
// A Buffer keeps a write cursor and a NUL sentinel after the content, so
// the logical content is whatever sits before the first NUL byte. Writing
// through the cursor splices into existing content rather than appending,
// and moving the cursor back followed by a write truncates whatever came
// after it. Capacity only grows, in steps of at least 128 bytes.
package buffer

import "fmt"

// growthStep is the minimum capacity increase for any reallocation.
const growthStep = 128

// Buffer is a growable byte buffer with an explicit write cursor.
// The zero value is empty and ready to use.
type Buffer struct {
	data  []byte
	dsize int
	dptr  int
}

// New returns an empty buffer with no backing storage allocated yet.
func New() *Buffer {
	return &Buffer{}
}

// From returns a buffer whose content is seed and whose cursor sits at
// the end of that content. The recorded capacity equals the seed length
// exactly, leaving no headroom, so the first Add reallocates no matter
// how small it is.
func From(seed string) *Buffer {
	b := New()
	if seed == "" {
		return b
	}
	b.data = append([]byte(seed), 0)
	b.dsize = len(seed)
	b.dptr = len(seed)
	return b
}

// Reinit releases the backing storage and returns the buffer to its
// zero state.
func (b *Buffer) Reinit() {
	if b == nil {
		return
	}
	b.data = nil
	b.dsize = 0
	b.dptr = 0
}

// Reset zeroes the content and rewinds the cursor. Capacity is kept.
func (b *Buffer) Reset() {
	if b == nil {
		return
	}
	for i := range b.data {
		b.data[i] = 0
	}
	b.dptr = 0
}

// Seek places the cursor at offset. The offset is not validated against
// the content; callers position it within what they have written.
func (b *Buffer) Seek(offset int) {
	b.dptr = offset
}

// Rewind places the cursor at the start of the buffer.
func (b *Buffer) Rewind() {
	b.dptr = 0
}

// Add copies p into the buffer at the cursor, growing the backing
// storage when p plus the sentinel would not fit. The cursor advances
// past the copied bytes and a sentinel is written after them, cutting
// off any older content beyond that point. A nil buffer or nil slice is
// a no-op.
func (b *Buffer) Add(p []byte) {
	if b == nil || p == nil {
		return
	}
	b.add(p)
}

// AddStr copies s into the buffer at the cursor.
func (b *Buffer) AddStr(s string) {
	if b == nil {
		return
	}
	b.add([]byte(s))
}

// AddCh copies the single byte c into the buffer at the cursor.
func (b *Buffer) AddCh(c byte) {
	if b == nil {
		return
	}
	b.add([]byte{c})
}

func (b *Buffer) add(p []byte) {
	if b.dptr+len(p)+1 > b.dsize {
		if len(p) < growthStep {
			b.dsize += growthStep
		} else {
			b.dsize += len(p) + 1
		}
		b.realloc()
	}
	copy(b.data[b.dptr:], p)
	b.dptr += len(p)
	b.data[b.dptr] = 0
}

// Printf appends the formatted string at the cursor and returns the
// number of bytes written. The remaining capacity is tried first; when
// the formatted text meets or exceeds it, the buffer grows to the exact
// required size, never by less than the minimum step.
func (b *Buffer) Printf(format string, args ...interface{}) int {
	if b == nil {
		return 0
	}
	blen := b.dsize - b.dptr
	if blen <= 0 {
		blen = growthStep
		b.dsize += blen
		b.realloc()
	}
	s := fmt.Sprintf(format, args...)
	if len(s) >= blen {
		grow := len(s) + 1 - blen
		if grow < growthStep {
			grow = growthStep
		}
		b.dsize += grow
		b.realloc()
	}
	copy(b.data[b.dptr:], s)
	b.dptr += len(s)
	b.data[b.dptr] = 0
	return len(s)
}

func (b *Buffer) realloc() {
	data := make([]byte, b.dsize)
	copy(data, b.data)
	b.data = data
}

// String returns the logical content: everything before the first
// sentinel byte.
func (b *Buffer) String() string {
	if b == nil || b.data == nil {
		return ""
	}
	return string(b.data[:b.Len()])
}

// Len returns the length of the logical content in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	for i, c := range b.data {
		if c == 0 {
			return i
		}
	}
	return len(b.data)
}

// Cap returns the recorded capacity of the backing storage.
func (b *Buffer) Cap() int {
	if b == nil {
		return 0
	}
	return b.dsize
}

// Offset returns the current cursor position.
func (b *Buffer) Offset() int {
	if b == nil {
		return 0
	}
	return b.dptr
}

// Rest returns the content from the cursor to the end of the logical
// content. Reading past the content yields an empty string.
func (b *Buffer) Rest() string {
	if b == nil || b.data == nil || b.dptr >= len(b.data) {
		return ""
	}
	end := b.Len()
	if b.dptr >= end {
		return ""
	}
	return string(b.data[b.dptr:end])
}
