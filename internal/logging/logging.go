package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/AnyUserName/printprep-cli/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the run logger. Lines go to console and, when cfg.File is set,
// are appended to that file as well. verbose forces debug level.
// The returned closer releases the log file and is never nil.
func New(cfg config.LogConfig, console io.Writer, verbose bool) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var closer io.Closer = nopCloser{}
	out := console
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(console, f)
		closer = f
	}
	log.SetOutput(out)

	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
