package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger prints colored status lines
type Logger struct {
	out     io.Writer
	info    *color.Color
	success *color.Color
	warn    *color.Color
	err     *color.Color
}

// NewLogger creates a Logger writing to out. A nil out means stdout.
func NewLogger(out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		out:     out,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed),
	}
}

// Writer returns the underlying writer
func (l *Logger) Writer() io.Writer {
	return l.out
}

// Infof prints a cyan line
func (l *Logger) Infof(format string, args ...interface{}) {
	l.info.Fprintf(l.out, format+"\n", args...)
}

// Successf prints a green line
func (l *Logger) Successf(format string, args ...interface{}) {
	l.success.Fprintf(l.out, format+"\n", args...)
}

// Warnf prints a yellow line
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.warn.Fprintf(l.out, format+"\n", args...)
}

// Errorf prints a red line
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.err.Fprintf(l.out, format+"\n", args...)
}
