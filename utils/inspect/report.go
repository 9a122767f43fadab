package inspect

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-isobuf/utils/isobuf"
)

// Field describes one decoded layout step.
type Field struct {
	Step   string        `json:"step" yaml:"step"`
	Offset int           `json:"offset" yaml:"offset"`
	Raw    hexutil.Bytes `json:"raw" yaml:"raw"`
	Value  *uint64       `json:"value,omitempty" yaml:"value,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the result of applying a layout to a buffer.
type Report struct {
	Input     hexutil.Bytes `json:"input" yaml:"input"`
	Fields    []Field       `json:"fields" yaml:"fields"`
	Remaining int           `json:"remaining" yaml:"remaining"`
	Complete  bool          `json:"complete" yaml:"complete"`
}

// Run applies steps to input and stops at the first failing field. The
// failing field is still reported, with whatever bytes it consumed.
func Run(input []byte, steps []Step) Report {
	r := isobuf.NewReader(input)
	rep := Report{Input: hexutil.Bytes(input), Fields: make([]Field, 0, len(steps))}

	for _, step := range steps {
		start := r.Pos()
		value, err := readStep(r, step)
		f := Field{
			Step:   step.String(),
			Offset: start,
			Raw:    hexutil.Bytes(input[start:r.Pos()]),
			Value:  value,
		}
		rep.Fields = append(rep.Fields, f)
		if err != nil {
			rep.Fields[len(rep.Fields)-1].Error = err.Error()
			rep.Remaining = r.RemainingLen()
			return rep
		}
	}
	rep.Remaining = r.RemainingLen()
	rep.Complete = true
	return rep
}

func readStep(r *isobuf.Reader, step Step) (*uint64, error) {
	num := func(v uint64, err error) (*uint64, error) {
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	switch step.Kind {
	case KindU8:
		v, err := r.ReadU8()
		return num(uint64(v), err)
	case KindU16:
		v, err := r.ReadU16BE()
		return num(uint64(v), err)
	case KindU32:
		v, err := r.ReadU32BE()
		return num(uint64(v), err)
	case KindU64:
		return num(r.ReadU64BE())
	case KindVarInt:
		return num(r.ReadVarInt())
	case KindVarIntRaw:
		_, err := r.ReadVarIntRaw()
		return nil, err
	case KindBytes:
		_, err := r.Read(step.Len)
		return nil, err
	case KindVarBytes:
		n, err := r.ReadVarInt()
		if err != nil {
			return nil, err
		}
		if n > uint64(r.RemainingLen()) {
			return &n, &isobuf.Error{Kind: isobuf.ErrInsufficientData, Op: isobuf.OpRead}
		}
		_, err = r.Read(int(n))
		return &n, err
	case KindRest:
		r.ReadRemainder()
		return nil, nil
	}
	return nil, nil
}

// Map converts the report into plain maps and slices for encoders that work
// on generic values.
func (rep Report) Map() map[string]interface{} {
	fields := make([]interface{}, 0, len(rep.Fields))
	for _, f := range rep.Fields {
		m := map[string]interface{}{
			"step":   f.Step,
			"offset": f.Offset,
			"raw":    []byte(f.Raw),
		}
		if f.Value != nil {
			m["value"] = *f.Value
		}
		if f.Error != "" {
			m["error"] = f.Error
		}
		fields = append(fields, m)
	}
	return map[string]interface{}{
		"input":     []byte(rep.Input),
		"fields":    fields,
		"remaining": rep.Remaining,
		"complete":  rep.Complete,
	}
}
