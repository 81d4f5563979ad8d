package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

var base = newBase(os.Stdout)

func newBase(out io.Writer) *log.Logger {
	l := log.New()
	l.SetOutput(out)
	l.SetFormatter(&log.JSONFormatter{})
	l.SetLevel(log.InfoLevel)
	return l
}

// Init configures the process logger. Unknown levels fall back to info.
func Init(level string, format string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	base.SetLevel(lvl)

	if format == "text" {
		base.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		base.SetFormatter(&log.JSONFormatter{})
	}
}

// SetOutput redirects log output, mostly useful in tests.
func SetOutput(out io.Writer) {
	base.SetOutput(out)
}

func Debug(msg string, keyvals ...any) {
	entry(keyvals).Debug(msg)
}

func Info(msg string, keyvals ...any) {
	entry(keyvals).Info(msg)
}

func Warn(msg string, keyvals ...any) {
	entry(keyvals).Warn(msg)
}

func Error(msg string, keyvals ...any) {
	entry(keyvals).Error(msg)
}

func Fatal(msg string, keyvals ...any) {
	entry(keyvals).Fatal(msg)
}

// entry turns alternating key/value pairs into logrus fields. A lone error
// (the Component:Method, err form) is attached under "error"; any other
// dangling value lands under "extra".
func entry(keyvals []any) *log.Entry {
	fields := log.Fields{}
	for i := 0; i < len(keyvals); i++ {
		if i+1 < len(keyvals) {
			if key, ok := keyvals[i].(string); ok {
				fields[key] = fieldValue(keyvals[i+1])
				i++
				continue
			}
		}
		if err, ok := keyvals[i].(error); ok {
			fields[log.ErrorKey] = err.Error()
			continue
		}
		fields["extra"] = fmt.Sprint(keyvals[i])
	}
	return base.WithFields(fields)
}

func fieldValue(v any) any {
	if err, ok := v.(error); ok && err != nil {
		return err.Error()
	}
	return v
}
