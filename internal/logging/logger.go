package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// SetOutput redirects all log lines to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Output(w)
}

// SetLevel accepts zerolog level names such as "debug", "info", "warn".
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
	return nil
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func output(ev *zerolog.Event, msg string, err error, fields Fields) {
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Fields(map[string]interface{}(fields))
	}
	ev.Msg(msg)
}

// Debug logs a diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	output(current().Debug(), msg, nil, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(current().Info(), msg, nil, fields)
}

// Warn logs a recoverable problem, with the error if there is one.
func Warn(msg string, err error, fields Fields) {
	output(current().Warn(), msg, err, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output(current().Error(), msg, err, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output(current().WithLevel(zerolog.FatalLevel), msg, err, fields)
	os.Exit(1)
}
