package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the root logger. Output goes to stderr so tables on
// stdout stay clean.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	log.SetLevel(logrus.InfoLevel)
	return log
}

// SetLevel applies a level name such as "debug" or "warn"
func SetLevel(log *logrus.Logger, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}
