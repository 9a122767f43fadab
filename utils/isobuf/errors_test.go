package isobuf

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Formatting(t *testing.T) {
	var e *Error
	require.Equal(t, "<nil>", e.Error())

	e = &Error{Kind: ErrInsufficientData}
	require.Equal(t, "not enough data", e.Error())

	e = &Error{Kind: ErrInsufficientData, Op: OpReadU8}
	require.Equal(t, "not enough data in read_u8", e.Error())

	e = &Error{Kind: ErrInsufficientData, Op: OpReadVarIntRaw, Cause: &Error{Kind: ErrInsufficientData, Op: OpRead}}
	require.Equal(t, "not enough data in read_var_int_raw: not enough data in read", e.Error())

	e = &Error{Op: OpRead}
	require.Equal(t, "isobuf error in read", e.Error())
}

// TestError_MessagesPrefixKind keeps fixture prefix matching valid for every
// error the reader can return.
func TestError_MessagesPrefixKind(t *testing.T) {
	_, err := NewReader(nil).ReadVarInt()
	require.True(t, strings.HasPrefix(err.Error(), ErrInsufficientData.Error()))

	_, err = NewReader([]byte{0xfd, 0x00, 0x00}).ReadVarInt()
	require.True(t, strings.HasPrefix(err.Error(), ErrNonMinimalEncoding.Error()))
}

func TestError_IsAndUnwrap(t *testing.T) {
	inner := insufficient(OpRead, nil)
	outer := insufficient(OpReadVarIntRaw, inner)

	require.True(t, errors.Is(outer, ErrInsufficientData))
	require.False(t, errors.Is(outer, ErrNonMinimalEncoding))
	require.Equal(t, inner, errors.Unwrap(outer))
	require.Nil(t, errors.Unwrap(inner))

	require.True(t, errors.Is(nonMinimal(OpReadVarIntRaw), ErrNonMinimalEncoding))
}
