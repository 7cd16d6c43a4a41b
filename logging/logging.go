package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// InitLogger configures the shared logger.
func InitLogger(level logrus.Level) {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// GetLogger returns the shared logger.
func GetLogger() *logrus.Logger {
	return logger
}
