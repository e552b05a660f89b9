package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Options configure New
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // text or json; empty picks text on a terminal, json otherwise
	Output io.Writer // defaults to os.Stderr
}

// New builds a logrus logger. Logs go to stderr so stdout carries only the transcript.
func New(opts Options) (*logrus.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(level)

	tty := isTerminal(out)
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "json"
		if tty {
			format = "text"
		}
	}

	switch format {
	case "text":
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			ForceColors:     tty,
			DisableColors:   !tty,
		})
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return nil, fmt.Errorf("invalid log format %q: expected text or json", opts.Format)
	}

	return base, nil
}

// Discard returns a logger that drops everything (tests, library callers without logging)
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
