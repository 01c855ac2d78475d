// Package logging configures the hclog logger shared by the CLI and the
// user-facing notices raised while generating print output.
package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger writing to out. verbose enables debug output and
// quiet restricts output to errors; quiet wins when both are set.
func New(out io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "vaultprint",
		Output: out,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// Notifier surfaces non-fatal problems to the user.
type Notifier interface {
	Notice(msg string)
}

// LogNotifier logs notices at warn level and, unless out is nil, echoes
// them to out.
type LogNotifier struct {
	Logger hclog.Logger
	Out    io.Writer
}

// Notice implements [Notifier].
func (n LogNotifier) Notice(msg string) {
	if n.Logger != nil {
		n.Logger.Warn("notice", "message", msg)
	}
	if n.Out != nil {
		fmt.Fprintln(n.Out, msg)
	}
}

// Recorder collects notices in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []string
}

// Notice implements [Notifier].
func (r *Recorder) Notice(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

// Notices returns the notices recorded so far.
func (r *Recorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}
