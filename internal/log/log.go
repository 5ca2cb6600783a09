package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.Out = os.Stderr
	log.Formatter = NewFormatter("")
	log.Level = logrus.InfoLevel
}

// Get returns the process-wide logger.
func Get() *logrus.Logger {
	return log
}

// NewFormatter returns the formatter registered under name, text by default.
func NewFormatter(name string) logrus.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return &logrus.JSONFormatter{}
	default:
		return &logrus.TextFormatter{
			TimestampFormat: "Jan 02 15:04:05",
			FullTimestamp:   true,
		}
	}
}

// Configure applies the level and formatter names and redirects output.
func Configure(w io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log.SetLevel(lvl)
	log.SetFormatter(NewFormatter(format))
	if w != nil {
		log.SetOutput(w)
	}
	return nil
}
