package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(level)
	return logger
}

// InitLogger rebuilds both loggers. The info logger honours level; an
// unknown level falls back to info. The error logger always stays at error.
func InitLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	InfoLogger = newLogger(os.Stdout, lvl)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)

	if err != nil && level != "" {
		InfoLogger.Warnf("Unknown log level %q, using info", level)
	}
}
