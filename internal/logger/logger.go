// Package logger provides the leveled logger used by the paramo command.
package logger

import (
	"io"
	"log"
)

// Logger writes leveled, printf-style log lines.
type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	Debugf(format string, v ...any)
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
}

// New returns a Logger writing to w.  Debugf output is dropped unless verbose
// is set.
func New(w io.Writer, verbose bool) Logger {
	return &stdLogger{l: log.New(w, "", log.LstdFlags), verbose: verbose}
}

func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }

func (s *stdLogger) Debugf(format string, v ...any) {
	if s.verbose {
		s.l.Printf("[DEBUG] "+format, v...)
	}
}
