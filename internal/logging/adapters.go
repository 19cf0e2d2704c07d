package logging

import (
	"fmt"
	"log/slog"

	"github.com/sirupsen/logrus"

	"github.com/moffa90/go-eeemul/eeprom"
)

type slogLogger struct {
	l *slog.Logger
}

// Slog adapts l to eeprom.Logger. Entries carry a component attribute.
func Slog(l *slog.Logger) eeprom.Logger {
	return &slogLogger{l: l.With("component", Component)}
}

func (s *slogLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.l.Debug(msg, keysAndValues...)
}

func (s *slogLogger) Info(msg string, keysAndValues ...interface{}) {
	s.l.Info(msg, keysAndValues...)
}

func (s *slogLogger) Error(msg string, keysAndValues ...interface{}) {
	s.l.Error(msg, keysAndValues...)
}

type logrusLogger struct {
	l *logrus.Logger
}

// Logrus adapts l to eeprom.Logger. Key-value pairs become fields.
func Logrus(l *logrus.Logger) eeprom.Logger {
	return &logrusLogger{l: l}
}

func (g *logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	g.entry(keysAndValues).Debug(msg)
}

func (g *logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	g.entry(keysAndValues).Info(msg)
}

func (g *logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	g.entry(keysAndValues).Error(msg)
}

func (g *logrusLogger) entry(keysAndValues []interface{}) *logrus.Entry {
	return g.l.WithFields(Fields(keysAndValues))
}

// Fields converts alternating keys and values to logrus fields. A key
// without a value is stored under "!BADKEY", as slog does.
func Fields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{"component": Component}
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 == len(keysAndValues) {
			fields["!BADKEY"] = keysAndValues[i]
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
