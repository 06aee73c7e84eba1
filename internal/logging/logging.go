// Package logging builds the hclog logger shared by the CLI and server.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options controls logger construction.
type Options struct {
	Name    string
	Verbose bool
	Quiet   bool
	JSON    bool
	Output  io.Writer
}

// Level maps the verbosity flags to an hclog level. Quiet wins over verbose.
func (o Options) Level() hclog.Level {
	switch {
	case o.Quiet:
		return hclog.Error
	case o.Verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// New creates a logger writing to o.Output (stderr by default).
func New(o Options) hclog.Logger {
	out := o.Output
	if out == nil {
		out = os.Stderr
	}
	name := o.Name
	if name == "" {
		name = "hexword"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      o.Level(),
		Output:     out,
		JSONFormat: o.JSON,
	})
}
