package isobuf

import "github.com/Fantom-foundation/lachesis-base/common/bigendian"

// Variable-length integer layout.
//
// The first byte (discriminant) selects the total width:
//
//	0x00-0xFC  the value itself, no payload
//	0xFD       2 byte big-endian payload, value >= 0xFD
//	0xFE       4 byte big-endian payload, value >= 0x10000
//	0xFF       8 byte big-endian payload, value >= 0x100000000
//
// The lower bounds make every value representable in exactly one way.
const (
	varIntTag16 = 0xFD
	varIntTag32 = 0xFE
	varIntTag64 = 0xFF

	varIntMin16 = 0xFD
	varIntMin32 = 0x10000
	varIntMin64 = 0x100000000

	// MaxVarIntLen is the widest encoding: discriminant plus 8 payload bytes.
	MaxVarIntLen = 9
)

// varIntPayloadLen returns how many bytes follow the discriminant.
func varIntPayloadLen(first byte) int {
	switch first {
	case varIntTag16:
		return 2
	case varIntTag32:
		return 4
	case varIntTag64:
		return 8
	default:
		return 0
	}
}

// varIntFloor is the smallest value the discriminant may carry.
func varIntFloor(first byte) uint64 {
	switch first {
	case varIntTag16:
		return varIntMin16
	case varIntTag32:
		return varIntMin32
	case varIntTag64:
		return varIntMin64
	default:
		return 0
	}
}

// varIntValue decodes a complete, length-checked encoding.
func varIntValue(raw []byte) uint64 {
	switch raw[0] {
	case varIntTag16:
		return uint64(bigendian.BytesToUint16(raw[1:3]))
	case varIntTag32:
		return uint64(bigendian.BytesToUint32(raw[1:5]))
	case varIntTag64:
		return bigendian.BytesToUint64(raw[1:9])
	default:
		return uint64(raw[0])
	}
}

// VarIntLen returns the length of the minimal encoding of v.
func VarIntLen(v uint64) int {
	switch {
	case v < varIntMin16:
		return 1
	case v < varIntMin32:
		return 3
	case v < varIntMin64:
		return 5
	default:
		return 9
	}
}

// EncodeVarInt returns the minimal encoding of v.
func EncodeVarInt(v uint64) []byte {
	return AppendVarInt(make([]byte, 0, VarIntLen(v)), v)
}

// AppendVarInt appends the minimal encoding of v to dst.
func AppendVarInt(dst []byte, v uint64) []byte {
	switch {
	case v < varIntMin16:
		return append(dst, byte(v))
	case v < varIntMin32:
		dst = append(dst, varIntTag16)
		return append(dst, bigendian.Uint16ToBytes(uint16(v))...)
	case v < varIntMin64:
		dst = append(dst, varIntTag32)
		return append(dst, bigendian.Uint32ToBytes(uint32(v))...)
	default:
		dst = append(dst, varIntTag64)
		return append(dst, bigendian.Uint64ToBytes(v)...)
	}
}

// DecodeVarInt decodes one var-int from the front of b and reports how many
// bytes it occupied. It applies the same checks as Reader.ReadVarInt.
func DecodeVarInt(b []byte) (uint64, int, error) {
	r := newReaderNoCopy(b)
	v, err := r.ReadVarInt()
	if err != nil {
		return 0, 0, err
	}
	return v, r.Pos(), nil
}
