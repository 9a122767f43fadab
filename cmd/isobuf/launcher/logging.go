package launcher

import (
	"fmt"
	"io"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// verbosityLevels maps the numeric --log.verbosity onto logrus levels.
var verbosityLevels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

func verbosityToLevel(v int) logrus.Level {
	if v < 0 {
		v = 0
	}
	if v >= len(verbosityLevels) {
		v = len(verbosityLevels) - 1
	}
	return verbosityLevels[v]
}

// newLogger builds the command logger. Logs go to out (stderr in the binary)
// so that stdout carries only command results.
func newLogger(cfg LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(verbosityToLevel(cfg.Verbosity))

	switch cfg.Format {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("sentry hook: %w", err)
		}
		log.AddHook(hook)
	}
	return log, nil
}
