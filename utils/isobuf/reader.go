// Package isobuf implements the canonical binary wire format shared by the
// ledger's structured records: fixed-width big-endian unsigned integers, raw
// byte runs and a discriminant-prefixed variable-length integer.
//
// Reader is the boundary where untrusted bytes become values. Every read is
// bounds-checked, a failed fixed-width read never moves the cursor, and the
// var-int reader rejects encodings that are well-formed but not minimal.
package isobuf

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-isobuf/utils/fast"
)

// Reader consumes a byte buffer left to right.
//
// A Reader is not safe for concurrent use; decode independent buffers with
// independent Readers.
type Reader struct {
	buf *fast.Reader
}

// NewReader creates a Reader over a private copy of buf, so later writes by
// the caller to buf cannot change what the Reader sees.
func NewReader(buf []byte) *Reader {
	own := make([]byte, len(buf))
	copy(own, buf)
	return newReaderNoCopy(own)
}

// NewReaderFromHex decodes s (with or without a 0x prefix) into a new Reader.
func NewReaderFromHex(s string) (*Reader, error) {
	b, err := FromHex(s)
	if err != nil {
		return nil, err
	}
	return newReaderNoCopy(b), nil
}

func newReaderNoCopy(buf []byte) *Reader {
	return &Reader{buf: fast.NewReader(buf)}
}

// EndReached reports whether the cursor sits at the end of the buffer.
func (r *Reader) EndReached() bool {
	return r.buf.Empty()
}

// RemainingLen returns the number of unread bytes.
func (r *Reader) RemainingLen() int {
	return r.buf.Len()
}

// Pos returns the cursor offset.
func (r *Reader) Pos() int {
	return r.buf.Position()
}

// Read consumes exactly n bytes and returns a copy of them.
func (r *Reader) Read(n int) ([]byte, error) {
	if n < 0 || n > r.buf.Len() {
		return nil, insufficient(OpRead, nil)
	}
	return clone(r.buf.Read(n)), nil
}

// ReadRemainder consumes and returns every unread byte. The result is empty,
// not nil, once the end is reached.
func (r *Reader) ReadRemainder() []byte {
	return clone(r.buf.Rest())
}

func (r *Reader) ReadU8() (uint8, error) {
	if r.buf.Len() < 1 {
		return 0, insufficient(OpReadU8, nil)
	}
	return r.buf.ReadByte(), nil
}

func (r *Reader) ReadU16BE() (uint16, error) {
	if r.buf.Len() < 2 {
		return 0, insufficient(OpReadU16BE, nil)
	}
	return bigendian.BytesToUint16(r.buf.Read(2)), nil
}

func (r *Reader) ReadU32BE() (uint32, error) {
	if r.buf.Len() < 4 {
		return 0, insufficient(OpReadU32BE, nil)
	}
	return bigendian.BytesToUint32(r.buf.Read(4)), nil
}

func (r *Reader) ReadU64BE() (uint64, error) {
	if r.buf.Len() < 8 {
		return 0, insufficient(OpReadU64BE, nil)
	}
	return bigendian.BytesToUint64(r.buf.Read(8)), nil
}

// ReadVarIntRaw consumes one variable-length integer and returns its complete
// wire encoding (1, 3, 5 or 9 bytes).
//
// If the payload is truncated the discriminant stays consumed. A non-minimal
// encoding is rejected only after all of its bytes have been consumed.
func (r *Reader) ReadVarIntRaw() ([]byte, error) {
	first, err := r.ReadU8()
	if err != nil {
		return nil, insufficient(OpReadVarIntRaw, err)
	}
	size := varIntPayloadLen(first)
	if size == 0 {
		return []byte{first}, nil
	}
	payload, err := r.Read(size)
	if err != nil {
		return nil, insufficient(OpReadVarIntRaw, err)
	}
	raw := make([]byte, 0, 1+size)
	raw = append(raw, first)
	raw = append(raw, payload...)
	if varIntValue(raw) < varIntFloor(first) {
		return nil, nonMinimal(OpReadVarIntRaw)
	}
	return raw, nil
}

// ReadVarInt consumes one variable-length integer and returns its value.
func (r *Reader) ReadVarInt() (uint64, error) {
	raw, err := r.ReadVarIntRaw()
	if err != nil {
		return 0, err
	}
	return varIntValue(raw), nil
}

// FromHex decodes a hex string, accepting an optional 0x prefix.
func FromHex(s string) ([]byte, error) {
	if !has0xPrefix(s) {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// FromHexFixed decodes s like FromHex and checks that it holds exactly size
// bytes. A mismatch wraps ErrInvalidSize.
func FromHexFixed(size int, s string) ([]byte, error) {
	b, err := FromHex(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSize, size, len(b))
	}
	return b, nil
}

// ToHex renders b as 0x-prefixed hex.
func ToHex(b []byte) string {
	return hexutil.Encode(b)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
