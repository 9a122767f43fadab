package fast

// buffer.go provides a lightweight, non-thread-safe wrapper around byte slices.
//
// Purpose:
// - The isobuf Reader and Writer need a linear cursor over a slice and an append-only sink.
// - Reader increments an integer index; Writer appends to a slice.
// - Reader performs NO bounds checking (it panics if you read past the end). Callers
//   that handle untrusted input must check Len() first, as isobuf.Reader does.

type Reader struct {
	// buf is the underlying data source.
	buf []byte
	// offset tracks the current reading position (cursor).
	offset int
}

type Writer struct {
	// buf is the accumulating byte slice.
	buf []byte
}

// NewReader creates a Reader to consume the provided byte slice.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Often called with `make([]byte, 0, capacity)` to pre-allocate memory.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte to the buffer.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends a slice of bytes (bulk write) to the buffer.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// Len returns the number of bytes written so far.
func (b *Writer) Len() int {
	return len(b.buf)
}

// Read consumes and returns the next 'n' bytes from the buffer.
//
// WARNING: This function does NOT check if 'n' bytes are available.
// If (offset + n) > len(buf), this will panic with a runtime slice bounds out of range error.
//
// Note: It returns a slice that *shares memory* with the original buffer.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadByte consumes and returns a single byte.
// WARNING: Panics if buffer is empty.
func (b *Reader) ReadByte() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// Rest consumes everything after the cursor. Never panics; returns an
// empty (shared) slice when the reader is exhausted.
func (b *Reader) Rest() []byte {
	res := b.buf[b.offset:]
	b.offset = len(b.buf)
	return res
}

// Position returns the current cursor index of the Reader.
func (b *Reader) Position() int {
	return b.offset
}

// Len returns the number of unread bytes.
func (b *Reader) Len() int {
	return len(b.buf) - b.offset
}

// Bytes returns the entire underlying buffer of the Reader.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Empty checks if the Reader has reached the end of the buffer.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
