// SPDX-License-Identifier: EPL-2.0

// Package logging provides the leveled logger used for build diagnostics.
//
// Components accept the Logger interface so callers can plug their own; New
// returns one backed by github.com/labstack/gommon/log.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is the printf-style sink for diagnostics and warnings.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

const header = "${time_rfc3339} ${level} ${prefix}"

// New returns a gommon logger writing to stderr at level.
// Accepted levels are debug, info, warn, error and off; empty means info.
func New(prefix, level string) (Logger, error) {
	return NewWithOutput(prefix, level, os.Stderr)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(prefix, level string, w io.Writer) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := log.New(prefix)
	l.SetHeader(header)
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.DisableColor()

	return l, nil
}

// ParseLevel maps a level name to a gommon level.
func ParseLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}

type nop struct{}

func (nop) Debugf(string, ...any) {}
func (nop) Infof(string, ...any)  {}
func (nop) Warnf(string, ...any)  {}
func (nop) Errorf(string, ...any) {}

// Nop discards everything.
func Nop() Logger { return nop{} }

// OrNop returns l, or Nop when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}
