// Package vectors loads and runs the reader conformance fixtures.
//
// A fixture file groups cases by reader operation. Each case holds the input
// as hex, the requested length for "read", and either the expected error
// prefix or the expected result (hex for byte results, decimal for integers).
package vectors

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rony4d/go-isobuf/utils/isobuf"
)

//go:embed reader.json
var defaultFixture []byte

// Operation keys used in fixture files.
const (
	OpRead          = "read"
	OpReadU8        = "read_u8"
	OpReadU16BE     = "read_u16_be"
	OpReadU32BE     = "read_u32_be"
	OpReadU64BE     = "read_u64_be"
	OpReadVarIntBuf = "read_var_int_buf"
	OpReadVarInt    = "read_var_int"
)

// Ops lists the operations in fixture order.
var Ops = []string{OpRead, OpReadU8, OpReadU16BE, OpReadU32BE, OpReadU64BE, OpReadVarIntBuf, OpReadVarInt}

type Vector struct {
	Hex    string `json:"hex"`
	Len    *int   `json:"len,omitempty"`
	Error  string `json:"error,omitempty"`
	Result *string `json:"result,omitempty"` // nil when absent; "" is a valid empty result
}

type Cases struct {
	Errors    []Vector `json:"errors"`
	Successes []Vector `json:"successes"`
}

// Suite is a parsed fixture file, keyed by operation.
type Suite map[string]Cases

// Result is the outcome of one vector.
type Result struct {
	Op     string
	Index  int
	Expect string // "error" or "success"
	Hex    string
	Want   string
	Got    string
	Passed bool
}

func (r Result) String() string {
	status := "ok"
	if !r.Passed {
		status = "FAIL"
	}
	return fmt.Sprintf("%s %s[%s#%d] hex=%q want=%q got=%q", status, r.Op, r.Expect, r.Index, r.Hex, r.Want, r.Got)
}

// Default returns the fixture shipped with the package.
func Default() (Suite, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file from disk.
func Load(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectors %s: %w", path, err)
	}
	return Parse(data)
}

// errBadFixture marks a vector that cannot be executed as written. Such a
// vector always fails, whatever it expects.
var errBadFixture = errors.New("bad fixture")

// Parse decodes fixture JSON. Unknown operation keys and unknown vector
// fields are rejected, as are vectors missing what their section requires:
// an error prefix for errors, a result for successes, and a len for read.
func Parse(data []byte) (Suite, error) {
	var s Suite
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse vectors: %w", err)
	}
	for _, op := range sortedOps(s) {
		if _, ok := runners[op]; !ok {
			return nil, fmt.Errorf("parse vectors: unknown operation %q", op)
		}
		if err := validate(op, s[op]); err != nil {
			return nil, fmt.Errorf("parse vectors: %w", err)
		}
	}
	return s, nil
}

func validate(op string, c Cases) error {
	for i, v := range c.Errors {
		if v.Error == "" {
			return fmt.Errorf("%s errors[%d]: missing error", op, i)
		}
		if op == OpRead && v.Len == nil {
			return fmt.Errorf("%s errors[%d]: missing len", op, i)
		}
	}
	for i, v := range c.Successes {
		if v.Result == nil {
			return fmt.Errorf("%s successes[%d]: missing result", op, i)
		}
		if op == OpRead && v.Len == nil {
			return fmt.Errorf("%s successes[%d]: missing len", op, i)
		}
	}
	return nil
}

// sortedOps returns the keys of s, known operations first in fixture order,
// so Parse reports problems deterministically.
func sortedOps(s Suite) []string {
	out := make([]string, 0, len(s))
	for _, op := range Ops {
		if _, ok := s[op]; ok {
			out = append(out, op)
		}
	}
	for op := range s {
		if _, ok := runners[op]; !ok {
			out = append(out, op)
		}
	}
	return out
}

// Run executes every vector of every known operation against a fresh Reader.
func Run(s Suite) []Result {
	var out []Result
	for _, op := range Ops {
		out = append(out, RunOp(s, op)...)
	}
	return out
}

// RunOp executes the vectors of a single operation.
func RunOp(s Suite, op string) []Result {
	cases, ok := s[op]
	if !ok {
		return nil
	}
	run := runners[op]
	out := make([]Result, 0, len(cases.Errors)+len(cases.Successes))
	for i, v := range cases.Errors {
		res := Result{Op: op, Index: i, Expect: "error", Hex: v.Hex, Want: v.Error}
		got, err := exec(run, v)
		switch {
		case v.Error == "":
			res.Got = "bad fixture: missing error"
		case errors.Is(err, errBadFixture):
			res.Got = err.Error()
		case err != nil:
			res.Got = err.Error()
			res.Passed = strings.HasPrefix(res.Got, v.Error)
		default:
			res.Got = "ok: " + got
		}
		out = append(out, res)
	}
	for i, v := range cases.Successes {
		res := Result{Op: op, Index: i, Expect: "success", Hex: v.Hex}
		if v.Result == nil {
			res.Got = "bad fixture: missing result"
			out = append(out, res)
			continue
		}
		res.Want = *v.Result
		got, err := exec(run, v)
		if err != nil {
			res.Got = err.Error()
		} else {
			res.Got = got
			res.Passed = got == res.Want
		}
		out = append(out, res)
	}
	return out
}

// Failed filters the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

type runner func(r *isobuf.Reader, v Vector) (string, error)

func exec(run runner, v Vector) (string, error) {
	r, err := isobuf.NewReaderFromHex(v.Hex)
	if err != nil {
		return "", fmt.Errorf("%w: hex %q: %v", errBadFixture, v.Hex, err)
	}
	return run(r, v)
}

var runners = map[string]runner{
	OpRead: func(r *isobuf.Reader, v Vector) (string, error) {
		if v.Len == nil {
			return "", fmt.Errorf("%w: %s vector has no len", errBadFixture, OpRead)
		}
		b, err := r.Read(*v.Len)
		return hexString(b), err
	},
	OpReadU8: func(r *isobuf.Reader, _ Vector) (string, error) {
		n, err := r.ReadU8()
		return strconv.FormatUint(uint64(n), 10), err
	},
	OpReadU16BE: func(r *isobuf.Reader, _ Vector) (string, error) {
		n, err := r.ReadU16BE()
		return strconv.FormatUint(uint64(n), 10), err
	},
	OpReadU32BE: func(r *isobuf.Reader, _ Vector) (string, error) {
		n, err := r.ReadU32BE()
		return strconv.FormatUint(uint64(n), 10), err
	},
	OpReadU64BE: func(r *isobuf.Reader, _ Vector) (string, error) {
		n, err := r.ReadU64BE()
		return strconv.FormatUint(n, 10), err
	},
	OpReadVarIntBuf: func(r *isobuf.Reader, _ Vector) (string, error) {
		b, err := r.ReadVarIntRaw()
		return hexString(b), err
	},
	OpReadVarInt: func(r *isobuf.Reader, _ Vector) (string, error) {
		n, err := r.ReadVarInt()
		return strconv.FormatUint(n, 10), err
	},
}

// hexString renders b without the 0x prefix used by isobuf.ToHex, matching
// the fixture format.
func hexString(b []byte) string {
	return strings.TrimPrefix(isobuf.ToHex(b), "0x")
}
