// Package log is the logging façade of the module. The default logger drops
// everything; programs that want dissection traces install a sink with
// SetLogger. Nothing logged here affects dissection semantics.
package log

import "github.com/sirupsen/logrus"

// Logger is the minimal sink the dissectors log through.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

var active Logger = nopLogger{}

// SetLogger installs l as the module-wide log sink. Passing nil restores the
// nop logger.
func SetLogger(l Logger) {
	if l == nil {
		active = nopLogger{}
		return
	}
	active = l
}

// Logrus returns a Logger backed by the given logrus logger.
func Logrus(l *logrus.Logger) Logger { return logrusLogger{log: l} }

func Debugf(format string, args ...interface{}) { active.Debugf(format, args...) }
func Warnf(format string, args ...interface{})  { active.Warnf(format, args...) }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}

type logrusLogger struct {
	log *logrus.Logger
}

func (l logrusLogger) Debugf(format string, args ...interface{}) { l.log.Debugf(format, args...) }
func (l logrusLogger) Warnf(format string, args ...interface{})  { l.log.Warnf(format, args...) }
