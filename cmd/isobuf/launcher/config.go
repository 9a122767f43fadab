// This file maps CLI context and the optional YAML config file to the Config struct.

package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-isobuf/integration"
)

// Config aggregates everything the launcher's commands need.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Vectors VectorsConfig `yaml:"vectors"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
	SentryDSN string `yaml:"sentry_dsn"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Layout string `yaml:"layout"`
}

type VectorsConfig struct {
	Path string `yaml:"path"`
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
			SentryDSN: d.Logging.SentryDSN,
		},
		Output: OutputConfig{
			Format: d.Output.Format,
			Layout: d.Output.Layout,
		},
		Vectors: VectorsConfig{
			Path: d.Vectors.Path,
		},
	}
}

// MakeAllConfigs merges defaults, the selected preset, config-file values,
// and CLI overrides into a single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if name := ctx.String("preset"); name != "" {
		preset, err := integration.GetPresetByName(name)
		if err != nil {
			return cfg, err
		}
		applyPreset(&cfg, preset)
	}

	if file := ctx.String("config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

func applyPreset(cfg *Config, preset integration.PresetConfig) {
	cur := integration.PresetConfig{
		Verbosity:    cfg.Logging.Verbosity,
		LogFormat:    cfg.Logging.Format,
		Color:        cfg.Logging.Color,
		OutputFormat: cfg.Output.Format,
	}
	integration.ApplyPreset(&cur, preset)

	cfg.Logging.Verbosity = cur.Verbosity
	cfg.Logging.Format = cur.LogFormat
	cfg.Logging.Color = cur.Color
	cfg.Output.Format = cur.OutputFormat
}

func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Logging.Color = ctx.Bool("log.color")
	}
	if ctx.IsSet("sentry.dsn") {
		cfg.Logging.SentryDSN = ctx.String("sentry.dsn")
	}

	if ctx.IsSet("format") {
		cfg.Output.Format = ctx.String("format")
	}
	if ctx.IsSet("layout") {
		cfg.Output.Layout = ctx.String("layout")
	}

	if ctx.IsSet("vectors") {
		cfg.Vectors.Path = resolvePath(ctx.String("vectors"))
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}

func GuessProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd // hit filesystem root without finding go.mod
		}
		dir = parent
	}
}
