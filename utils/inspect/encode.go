package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tinylib/msgp/msgp"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR, FormatMsgpack}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == FormatCBOR || f == FormatMsgpack
}

// Marshal encodes the report.
func Marshal(f Format, rep Report) ([]byte, error) {
	switch f {
	case FormatJSON:
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(rep)
	case FormatCBOR:
		return cbor.Marshal(rep)
	case FormatMsgpack:
		return msgp.AppendIntf(nil, rep.Map())
	default:
		return nil, fmt.Errorf("unknown output format %q", string(f))
	}
}

// Encode writes the encoded report to w.
func Encode(w io.Writer, f Format, rep Report) error {
	out, err := Marshal(f, rep)
	if err != nil {
		return fmt.Errorf("encode %s report: %w", f, err)
	}
	_, err = w.Write(out)
	return err
}
