package inspect

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-isobuf/utils/isobuf"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   []Step
		ok     bool
	}{
		{"simple", "u8,u16", []Step{{Kind: KindU8}, {Kind: KindU16}}, true},
		{"spaces and bytes", " varint , bytes:4 ,rest", []Step{{Kind: KindVarInt}, {Kind: KindBytes, Len: 4}, {Kind: KindRest}}, true},
		{"repeat", "varint*3", []Step{{Kind: KindVarInt}, {Kind: KindVarInt}, {Kind: KindVarInt}}, true},
		{"empty", "  ", nil, false},
		{"unknown", "u128", nil, false},
		{"bytes without len", "bytes", nil, false},
		{"negative len", "bytes:-1", nil, false},
		{"len on u8", "u8:1", nil, false},
		{"bad repeat", "u8*0", nil, false},
		{"rest not last", "rest,u8", nil, false},
		{"rest repeated", "rest*2", nil, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseLayout(test.layout)
			if !test.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func TestParseLayout_MaxSteps(t *testing.T) {
	steps, err := ParseLayout("u8*65535,rest")
	require.NoError(t, err)
	require.Len(t, steps, MaxSteps)

	for _, layout := range []string{"varint*2000000000", "u8*65536", "u8*65535,u8,u8", "u8*40000,u16*40000"} {
		_, err := ParseLayout(layout)
		require.ErrorIs(t, err, ErrLayoutTooLong, layout)
	}
}

// TestRun decodes a record built with the isobuf Writer.
func TestRun(t *testing.T) {
	input := isobuf.NewWriter(0).
		WriteU8(7).
		WriteU16BE(0x0123).
		WriteVarInt(300).
		WriteVarInt(3).Write([]byte{0xaa, 0xbb, 0xcc}).
		Write([]byte{0x01, 0x02}).
		Bytes()

	steps, err := ParseLayout("u8,u16,varint,varbytes,rest")
	require.NoError(t, err)

	rep := Run(input, steps)
	require.True(t, rep.Complete)
	require.Equal(t, 0, rep.Remaining)
	require.Len(t, rep.Fields, 5)

	assert.Equal(t, uint64(7), *rep.Fields[0].Value)
	assert.Equal(t, uint64(0x0123), *rep.Fields[1].Value)
	assert.Equal(t, 3, rep.Fields[2].Offset)
	assert.Equal(t, uint64(300), *rep.Fields[2].Value)
	assert.Equal(t, []byte{0xfd, 0x01, 0x2c}, []byte(rep.Fields[2].Raw))
	assert.Equal(t, uint64(3), *rep.Fields[3].Value)
	assert.Equal(t, []byte{0x03, 0xaa, 0xbb, 0xcc}, []byte(rep.Fields[3].Raw))
	assert.Nil(t, rep.Fields[4].Value)
	assert.Equal(t, []byte{0x01, 0x02}, []byte(rep.Fields[4].Raw))
}

func TestRun_StopsAtFirstError(t *testing.T) {
	t.Run("non-minimal", func(t *testing.T) {
		steps, err := ParseLayout("u8,varint,u8")
		require.NoError(t, err)

		rep := Run([]byte{0x01, 0xfd, 0x00, 0x05, 0x09}, steps)
		require.False(t, rep.Complete)
		require.Len(t, rep.Fields, 2)
		require.Contains(t, rep.Fields[1].Error, "non-minimal encoding")
		// the rejected encoding is reported as consumed
		require.Equal(t, []byte{0xfd, 0x00, 0x05}, []byte(rep.Fields[1].Raw))
		require.Equal(t, 1, rep.Remaining)
	})

	t.Run("short fixed", func(t *testing.T) {
		steps, err := ParseLayout("u32")
		require.NoError(t, err)

		rep := Run([]byte{0x01, 0x02}, steps)
		require.False(t, rep.Complete)
		require.Contains(t, rep.Fields[0].Error, "not enough data")
		require.Empty(t, rep.Fields[0].Raw)
		require.Equal(t, 2, rep.Remaining)
	})

	t.Run("varbytes longer than input", func(t *testing.T) {
		steps, err := ParseLayout("varbytes")
		require.NoError(t, err)

		rep := Run([]byte{0x05, 0x01}, steps)
		require.False(t, rep.Complete)
		require.Equal(t, uint64(5), *rep.Fields[0].Value)
		require.Contains(t, rep.Fields[0].Error, "not enough data")
	})
}

func sampleReport(t *testing.T) Report {
	t.Helper()
	steps, err := ParseLayout("u8,varint")
	require.NoError(t, err)
	return Run([]byte{0x2a, 0xfe, 0x00, 0x01, 0x00, 0x00}, steps)
}

func TestMarshal_TextFormats(t *testing.T) {
	rep := sampleReport(t)

	t.Run("json", func(t *testing.T) {
		out, err := Marshal(FormatJSON, rep)
		require.NoError(t, err)
		require.Contains(t, string(out), `"raw": "0xfe00010000"`)

		var back Report
		require.NoError(t, json.Unmarshal(out, &back))
		require.Equal(t, rep, back)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := Marshal(FormatYAML, rep)
		require.NoError(t, err)
		require.Contains(t, string(out), "0xfe00010000")

		var back Report
		require.NoError(t, yaml.Unmarshal(out, &back))
		require.Equal(t, rep, back)
	})
}

func TestMarshal_BinaryFormats(t *testing.T) {
	rep := sampleReport(t)

	t.Run("cbor", func(t *testing.T) {
		out, err := Marshal(FormatCBOR, rep)
		require.NoError(t, err)

		var back Report
		require.NoError(t, cbor.Unmarshal(out, &back))
		require.Equal(t, rep, back)
	})

	t.Run("msgpack", func(t *testing.T) {
		out, err := Marshal(FormatMsgpack, rep)
		require.NoError(t, err)

		v, rest, err := msgp.ReadIntfBytes(out)
		require.NoError(t, err)
		require.Empty(t, rest)

		m, ok := v.(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, true, m["complete"])
		require.Equal(t, []byte(rep.Input), m["input"])

		fields, ok := m["fields"].([]interface{})
		require.True(t, ok)
		require.Len(t, fields, 2)
		second := fields[1].(map[string]interface{})
		require.Equal(t, uint64(65536), second["value"])
		require.Equal(t, "varint", second["step"])
	})
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, sampleReport(t)))
	require.True(t, json.Valid(buf.Bytes()))

	require.Error(t, Encode(&buf, Format("xml"), sampleReport(t)))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(" " + string(f))
		require.NoError(t, err)
		require.Equal(t, f, got)
	}
	got, err := ParseFormat("YAML")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, got)

	_, err = ParseFormat("xml")
	require.Error(t, err)

	require.True(t, FormatCBOR.Binary())
	require.False(t, FormatJSON.Binary())
}
