// Package wtlog is the logging sink the core's error-handling policy writes
// "log at warning/error, continue" entries to.
package wtlog

import "github.com/sirupsen/logrus"

// Logger is the minimal sink the serializer core depends on. Handlers
// never see a *logrus.Logger directly, so a caller embedding this package
// as a library can supply any implementation without pulling logrus in.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// logrusLogger adapts a *logrus.Logger to the Logger interface.
type logrusLogger struct {
	l *logrus.Logger
}

// NewLogrus wraps an existing *logrus.Logger.
func NewLogrus(l *logrus.Logger) Logger {
	return &logrusLogger{l: l}
}

// New builds a Logger with sane text-formatter defaults, suitable for the
// CLI's default logging sink.
func New() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logrusLogger{l: l}
}

func (g *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	g.l.WithFields(fields).Warn(msg)
}

func (g *logrusLogger) Error(msg string, fields map[string]interface{}) {
	g.l.WithFields(fields).Error(msg)
}

// discard silently drops all entries; used by tests and library callers
// who don't care about diagnostics.
type discard struct{}

// Discard returns a Logger that drops everything.
func Discard() Logger { return discard{} }

func (discard) Warn(string, map[string]interface{})  {}
func (discard) Error(string, map[string]interface{}) {}
