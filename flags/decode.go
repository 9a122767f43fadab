package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// InspectFlags controls how a buffer is laid out and how the report is printed.

func InspectFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "layout",
			Usage: "Comma-separated field layout (u8,u16,u32,u64,varint,varint_raw,bytes:N,varbytes,rest; name*N repeats)",
			Value: "rest",
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "Report output format (json|yaml|cbor|msgpack)",
			Value: "json",
		},
		cli.IntFlag{
			Name:  "size",
			Usage: "Reject input that is not exactly this many bytes (0 accepts any length)",
		},
	}
}

// VectorsFlags selects the conformance fixture file.
func VectorsFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "vectors",
			Usage: "Path to a reader conformance fixture (defaults to the built-in one)",
		},
	}
}
