package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a configured logrus.Logger. JSON output keeps partial-failure
// logs structured for operator reconciliation.
func New(env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(env))
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	return log
}

func parseLevel(env string) logrus.Level {
	switch strings.ToLower(env) {
	case "local", "dev", "test":
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
