package launcher

import (
	"io"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-isobuf/flags"
)

type launcher struct {
	out    io.Writer // command results
	logOut io.Writer // log entries
	in     io.Reader
}

// newApp assembles the CLI application around the given streams.
func newApp(out, logOut io.Writer, in io.Reader) *cli.App {
	l := &launcher{out: out, logOut: logOut, in: in}
	app := flags.NewApp(out)
	app.ErrWriter = logOut
	app.Commands = l.commands()
	return app
}

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return newApp(os.Stdout, os.Stderr, os.Stdin).Run(args)
}
