package isobuf

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"

	"github.com/rony4d/go-isobuf/utils/fast"
)

// Writer produces bytes that Reader accepts. Var-ints are always written in
// their minimal form.
type Writer struct {
	buf *fast.Writer
}

// NewWriter creates an empty Writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: fast.NewWriter(make([]byte, 0, sizeHint))}
}

func (w *Writer) WriteU8(v uint8) *Writer {
	w.buf.WriteByte(v)
	return w
}

func (w *Writer) WriteU16BE(v uint16) *Writer {
	w.buf.Write(bigendian.Uint16ToBytes(v))
	return w
}

func (w *Writer) WriteU32BE(v uint32) *Writer {
	w.buf.Write(bigendian.Uint32ToBytes(v))
	return w
}

func (w *Writer) WriteU64BE(v uint64) *Writer {
	w.buf.Write(bigendian.Uint64ToBytes(v))
	return w
}

// Write appends raw bytes.
func (w *Writer) Write(b []byte) *Writer {
	w.buf.Write(b)
	return w
}

// WriteVarInt appends the minimal encoding of v.
func (w *Writer) WriteVarInt(v uint64) *Writer {
	var tmp [MaxVarIntLen]byte
	w.buf.Write(AppendVarInt(tmp[:0], v))
	return w
}

// WriteVarIntRaw appends an encoding previously returned by
// Reader.ReadVarIntRaw. raw must hold exactly one canonical var-int; anything
// else is rejected with the error Reader would have produced.
func (w *Writer) WriteVarIntRaw(raw []byte) error {
	r := newReaderNoCopy(raw)
	if _, err := r.ReadVarIntRaw(); err != nil {
		return err
	}
	if !r.EndReached() {
		return ErrTrailingBytes
	}
	w.buf.Write(raw)
	return nil
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the written bytes. The slice is shared with the Writer until
// the next write.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
