package isobuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriter_Record writes a small length-prefixed record and reads it back
// field by field, the way structured-format consumers use the pair.
func TestWriter_Record(t *testing.T) {
	payload := []byte("asset-chain")
	w := NewWriter(32).
		WriteU8(1).
		WriteU16BE(0xBEEF).
		WriteU32BE(0xDEADBEEF).
		WriteU64BE(1 << 40).
		WriteVarInt(uint64(len(payload))).
		Write(payload)

	require.Equal(t, 1+2+4+8+1+len(payload), w.Len())

	r := NewReader(w.Bytes())

	u8, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), u8)

	u16, err := r.ReadU16BE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	u32, err := r.ReadU32BE()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.ReadU64BE()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), u64)

	n, err := r.ReadVarInt()
	require.NoError(t, err)
	body, err := r.Read(int(n))
	require.NoError(t, err)
	assert.Equal(t, payload, body)

	assert.True(t, r.EndReached())
}

// TestWriter_BigEndian pins the byte order.
func TestWriter_BigEndian(t *testing.T) {
	w := NewWriter(-1).WriteU16BE(0x0123).WriteU32BE(0x456789ab)
	require.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab}, w.Bytes())
}

// TestWriter_VarIntRaw re-emits raw encodings byte for byte.
func TestWriter_VarIntRaw(t *testing.T) {
	r := NewReader([]byte{0xfe, 0x01, 0x00, 0x00, 0x00, 0x07})
	raw, err := r.ReadVarIntRaw()
	require.NoError(t, err)

	w := NewWriter(0)
	require.NoError(t, w.WriteVarIntRaw(raw))
	require.Equal(t, raw, w.Bytes())

	t.Run("rejects non-minimal", func(t *testing.T) {
		w := NewWriter(0)
		err := w.WriteVarIntRaw([]byte{0xfd, 0x00, 0x01})
		require.ErrorIs(t, err, ErrNonMinimalEncoding)
		require.Equal(t, 0, w.Len())
	})

	t.Run("rejects truncated", func(t *testing.T) {
		err := NewWriter(0).WriteVarIntRaw([]byte{0xfd, 0x01})
		require.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("rejects trailing", func(t *testing.T) {
		err := NewWriter(0).WriteVarIntRaw([]byte{0x01, 0x02})
		require.ErrorIs(t, err, ErrTrailingBytes)
	})
}
