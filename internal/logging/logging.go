// Package logging builds the charmbracelet loggers shared by the CLI, the
// SSH server, storage and the hosts.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a timestamped stderr logger with the given prefix and level
// name. An empty level means "info".
func New(prefix, level string) (*log.Logger, error) {
	return NewTo(os.Stderr, prefix, level)
}

// NewTo is New with an explicit writer.
func NewTo(w io.Writer, prefix, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Sub returns a child logger with an extra prefix segment.
func Sub(parent *log.Logger, prefix string) *log.Logger {
	if parent == nil {
		return Discard()
	}
	return parent.WithPrefix(parent.GetPrefix() + "/" + prefix)
}
