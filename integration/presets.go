package integration

import "fmt"

// Package integration provides named configuration presets for the isobuf
// command-line tool. A preset bundles the logging and report settings that
// usually change together (how chatty the tool is, how logs are formatted,
// how reports are encoded) so a single --preset flag can switch between them.
//
// Usage:
//   cfg := integration.QuietPreset()   // scripts that only care about the exit code
//   cfg := integration.DebugPreset()   // stepping through a malformed buffer
//   cfg := integration.MachinePreset() // feeding another program
//
// The launcher applies a preset on top of its defaults and below the config
// file and explicit flags.

// PresetConfig captures the settings that vary across preset profiles.
type PresetConfig struct {
	Name         string // human-readable identifier (e.g., "quiet", "debug")
	Verbosity    int    // log level numeric (1=error ... 5=trace); 0 means unset, so presets cannot select fatal-only
	LogFormat    string // "text" or "json"
	Color        bool   // ANSI colors in text logs
	OutputFormat string // report encoding: json, yaml, cbor or msgpack
}

func DefaultPreset() PresetConfig {

	return PresetConfig{
		Name:         "default",
		Verbosity:    3,      // info: one line per notable event
		LogFormat:    "text", // human readable
		Color:        false,  // safe when piping to files
		OutputFormat: "json",
	}
}

// QuietPreset only reports errors. Useful in shell pipelines where the exit
// status carries the answer.
func QuietPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "quiet"
	cfg.Verbosity = 1
	return cfg
}

// DebugPreset logs every step, colors the output and prints reports as YAML,
// which is the easiest encoding to read while hunting down a bad field.
func DebugPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "debug"
	cfg.Verbosity = 5
	cfg.Color = true
	cfg.OutputFormat = "yaml"
	return cfg
}

// MachinePreset keeps logs structured and reports binary, for tools that
// consume isobuf output programmatically.
func MachinePreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "machine"
	cfg.Verbosity = 2
	cfg.LogFormat = "json"
	cfg.OutputFormat = "cbor"
	return cfg
}

// GetPresetByName looks up a preset by its string identifier.
//
// Example:
//
//	preset, err := integration.GetPresetByName("debug")
//	if err != nil {
//	    return err
//	}
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "quiet":
		return QuietPreset(), nil
	case "debug":
		return DebugPreset(), nil
	case "machine":
		return MachinePreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: quiet, debug, machine, default)", name)
	}
}

// ApplyPreset merges a preset into target. Empty strings and a zero verbosity
// are treated as unset and leave the target untouched; Color is always
// applied. Fatal-only logging is reachable through --log.verbosity 0.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.Verbosity > 0 {
		target.Verbosity = preset.Verbosity
	}
	if preset.LogFormat != "" {
		target.LogFormat = preset.LogFormat
	}
	if preset.OutputFormat != "" {
		target.OutputFormat = preset.OutputFormat
	}
	// boolean flags are always applied (no zero-value check needed)
	target.Color = preset.Color
	if preset.Name != "" {
		target.Name = preset.Name
	}
}
