package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-isobuf/flags"
	"github.com/rony4d/go-isobuf/utils/inspect"
	"github.com/rony4d/go-isobuf/utils/isobuf"
	"github.com/rony4d/go-isobuf/utils/isobuf/vectors"
)

var errVectorsFailed = errors.New("conformance vectors failed")

// env is what every command action receives after config and logging are set up.
type env struct {
	cfg Config
	log *logrus.Logger
	out io.Writer
	in  io.Reader
}

func (l *launcher) commands() []cli.Command {
	return []cli.Command{
		{
			Name:      "inspect",
			Usage:     "Decode a hex buffer field by field",
			ArgsUsage: "<hex | ->",
			Flags:     append(flags.CommonFlags(), flags.InspectFlags()...),
			Action:    l.action(inspectAction),
		},
		{
			Name:  "varint",
			Usage: "Encode or decode a single variable-length integer",
			Subcommands: []cli.Command{
				{
					Name:      "encode",
					Usage:     "Print the minimal encoding of a decimal value",
					ArgsUsage: "<value>",
					Flags:     flags.CommonFlags(),
					Action:    l.action(varIntEncodeAction),
				},
				{
					Name:      "decode",
					Usage:     "Decode one var-int from the front of a hex buffer",
					ArgsUsage: "<hex>",
					Flags:     flags.CommonFlags(),
					Action:    l.action(varIntDecodeAction),
				},
			},
		},
		{
			Name:   "vectors",
			Usage:  "Run the reader conformance fixture",
			Flags:  append(flags.CommonFlags(), flags.VectorsFlags()...),
			Action: l.action(vectorsAction),
		},
	}
}

// action wraps a command body with config loading and logger setup.
func (l *launcher) action(run func(ctx *cli.Context, e *env) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Logging, l.logOut)
		if err != nil {
			return err
		}
		return run(ctx, &env{cfg: cfg, log: log, out: l.out, in: l.in})
	}
}

func inspectAction(ctx *cli.Context, e *env) error {
	input, err := inputHex(ctx, e.in)
	if err != nil {
		return err
	}
	buf, err := decodeInput(input, ctx.Int("size"))
	if err != nil {
		return err
	}
	steps, err := inspect.ParseLayout(e.cfg.Output.Layout)
	if err != nil {
		return fmt.Errorf("bad layout: %w", err)
	}
	format, err := inspect.ParseFormat(e.cfg.Output.Format)
	if err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"bytes":  len(buf),
		"fields": len(steps),
		"format": format,
	}).Debug("Inspecting buffer")

	rep := inspect.Run(buf, steps)
	if err := inspect.Encode(e.out, format, rep); err != nil {
		return err
	}
	if !rep.Complete {
		last := rep.Fields[len(rep.Fields)-1]
		e.log.WithFields(logrus.Fields{
			"field":  last.Step,
			"offset": last.Offset,
		}).Warn("Decoding stopped early")
		return fmt.Errorf("field %d (%s) at offset %d: %s", len(rep.Fields)-1, last.Step, last.Offset, last.Error)
	}
	if rep.Remaining > 0 {
		e.log.WithField("remaining", rep.Remaining).Info("Layout did not consume the whole buffer")
	}
	return nil
}

func varIntEncodeAction(ctx *cli.Context, e *env) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one value")
	}
	v, err := strconv.ParseUint(ctx.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("bad value: %w", err)
	}
	enc := isobuf.EncodeVarInt(v)
	e.log.WithFields(logrus.Fields{"value": v, "size": len(enc)}).Debug("Encoded var-int")
	_, err = fmt.Fprintln(e.out, isobuf.ToHex(enc))
	return err
}

func varIntDecodeAction(ctx *cli.Context, e *env) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one hex buffer")
	}
	buf, err := isobuf.FromHex(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("bad hex input: %w", err)
	}
	v, n, err := isobuf.DecodeVarInt(buf)
	if err != nil {
		return err
	}
	raw := buf[:n]
	if n < len(buf) {
		e.log.WithField("trailing", len(buf)-n).Debug("Ignoring bytes after var-int")
	}
	_, err = fmt.Fprintf(e.out, "%d %s\n", v, isobuf.ToHex(raw))
	return err
}

func vectorsAction(ctx *cli.Context, e *env) error {
	var (
		suite vectors.Suite
		err   error
	)
	if e.cfg.Vectors.Path != "" {
		suite, err = vectors.Load(e.cfg.Vectors.Path)
	} else {
		suite, err = vectors.Default()
	}
	if err != nil {
		return err
	}

	results := vectors.Run(suite)
	failed := vectors.Failed(results)
	for _, res := range results {
		if res.Passed {
			e.log.WithFields(logrus.Fields{"op": res.Op, "case": res.Index, "expect": res.Expect}).Trace("Vector passed")
			continue
		}
		e.log.WithFields(logrus.Fields{
			"op":   res.Op,
			"case": res.Index,
			"hex":  res.Hex,
			"want": res.Want,
			"got":  res.Got,
		}).Error("Vector failed")
	}
	fmt.Fprintf(e.out, "%d vectors, %d passed, %d failed\n", len(results), len(results)-len(failed), len(failed))
	if len(failed) > 0 {
		return errVectorsFailed
	}
	return nil
}

// decodeInput decodes the hex input. A positive size requires exactly that
// many bytes.
func decodeInput(input string, size int) ([]byte, error) {
	switch {
	case size < 0:
		return nil, fmt.Errorf("bad size %d", size)
	case size > 0:
		buf, err := isobuf.FromHexFixed(size, input)
		if err != nil {
			return nil, fmt.Errorf("bad hex input: %w", err)
		}
		return buf, nil
	}
	buf, err := isobuf.FromHex(input)
	if err != nil {
		return nil, fmt.Errorf("bad hex input: %w", err)
	}
	return buf, nil
}

// inputHex returns the hex argument, or reads it from in when the argument is "-".
func inputHex(ctx *cli.Context, in io.Reader) (string, error) {
	if ctx.NArg() != 1 {
		return "", errors.New("expected exactly one hex argument (or - for stdin)")
	}
	arg := ctx.Args().First()
	if arg != "-" {
		return arg, nil
	}
	var sb strings.Builder
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		sb.WriteString(strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return sb.String(), nil
}
