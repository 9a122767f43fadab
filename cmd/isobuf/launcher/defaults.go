package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before config files and flags override them.

type Defaults struct {
	Logging LoggingDefaults
	Output  OutputDefaults
	Vectors VectorsDefaults
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
	SentryDSN string //	Sentry project DSN; empty disables the hook.
}

// OutputDefaults controls how inspect reports are printed.
type OutputDefaults struct {
	Format string //	Report encoding: json, yaml, cbor or msgpack. Binary formats are written raw to stdout.
	Layout string //	Field layout applied when --layout is not given.
}

// VectorsDefaults locates the conformance fixture.
type VectorsDefaults struct {
	Path string //	Fixture file path; empty selects the fixture compiled into the binary.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
		Output: OutputDefaults{
			Format: "json",
			Layout: "rest",
		},
		Vectors: VectorsDefaults{},
	}
}
