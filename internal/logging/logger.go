// Package logging provides the structured logger every package in this
// module logs through, grounded on the teacher pack's
// infrastructure/logging wrapper over logrus.
package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with the fixed JSON formatter and output
// this service always uses; the only configurable knob is level.
type Logger struct {
	*logrus.Logger
	service string
}

// New builds a Logger for service, parsing level
// (trace/debug/info/warn/error, case-insensitive) and falling back to
// info on an unrecognized value.
func New(service, level string) *Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetOutput(os.Stdout)

	return &Logger{Logger: logger, service: service}
}

// WithField starts a field chain tagged with this logger's service
// name, so every line it ultimately emits carries it.
func (l *Logger) WithField(key string, value any) *logrus.Entry {
	return l.Logger.WithField("service", l.service).WithField(key, value)
}
