package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the global logrus logger. Format is "json" or "text".
func Init(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stdout)

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}

// Component returns a logger tagged with the owning component.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
