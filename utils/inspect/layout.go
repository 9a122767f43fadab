// Package inspect decodes a buffer according to a field layout and describes
// each field it read. It is the diagnostic front end of the isobuf reader:
// the layout plays the role of a structured-format consumer, knowing field
// order and widths that the reader itself has no notion of.
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Layout field kinds.
const (
	KindU8        = "u8"
	KindU16       = "u16"
	KindU32       = "u32"
	KindU64       = "u64"
	KindVarInt    = "varint"
	KindVarIntRaw = "varint_raw"
	KindBytes     = "bytes"    // bytes:N, fixed length
	KindVarBytes  = "varbytes" // var-int length prefix followed by that many bytes
	KindRest      = "rest"
)

// MaxSteps bounds the expanded length of a layout, repeats included.
const MaxSteps = 1 << 16

var (
	ErrEmptyLayout   = errors.New("empty layout")
	ErrLayoutTooLong = fmt.Errorf("layout expands to more than %d fields", MaxSteps)
)

// Step is one field of a layout.
type Step struct {
	Kind string
	Len  int // only for KindBytes
}

func (s Step) String() string {
	if s.Kind == KindBytes {
		return KindBytes + ":" + strconv.Itoa(s.Len)
	}
	return s.Kind
}

// ParseLayout parses a comma separated layout such as
// "u8,u16,varint,bytes:4,varbytes,rest". A field may be repeated with a
// "*N" suffix, e.g. "varint*3".
func ParseLayout(layout string) ([]Step, error) {
	layout = strings.TrimSpace(layout)
	if layout == "" {
		return nil, ErrEmptyLayout
	}
	parts := strings.Split(layout, ",")
	var steps []Step
	for i, part := range parts {
		part = strings.TrimSpace(part)
		repeat := 1
		if idx := strings.IndexByte(part, '*'); idx >= 0 {
			n, err := strconv.Atoi(part[idx+1:])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("field %d (%q): bad repeat count", i, part)
			}
			repeat = n
			part = part[:idx]
		}
		step, err := parseStep(part)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, part, err)
		}
		if step.Kind == KindRest && (i != len(parts)-1 || repeat != 1) {
			return nil, fmt.Errorf("field %d: %q must be the last field and appear once", i, KindRest)
		}
		if repeat > MaxSteps-len(steps) {
			return nil, ErrLayoutTooLong
		}
		for j := 0; j < repeat; j++ {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

func parseStep(s string) (Step, error) {
	name, arg, hasArg := strings.Cut(s, ":")
	switch name {
	case KindU8, KindU16, KindU32, KindU64, KindVarInt, KindVarIntRaw, KindVarBytes, KindRest:
		if hasArg {
			return Step{}, fmt.Errorf("%s takes no length", name)
		}
		return Step{Kind: name}, nil
	case KindBytes:
		if !hasArg {
			return Step{}, fmt.Errorf("%s needs a length, e.g. bytes:32", name)
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return Step{}, fmt.Errorf("bad length %q", arg)
		}
		return Step{Kind: KindBytes, Len: n}, nil
	default:
		return Step{}, fmt.Errorf("unknown field kind %q", name)
	}
}
