// Package logutil provides logging utilities.
//
// All loggers share one output and one level. By default the output is
// discarded; the shell redirects it to stderr when verbose and to a file when
// asked to.
package logutil

import (
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// switchWriter forwards writes to a writer that can be replaced at any time.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *switchWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

func (sw *switchWriter) set(w io.Writer) (old io.Writer) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	old, sw.w = sw.w, w
	return old
}

var (
	out  = &switchWriter{w: io.Discard}
	root = hclog.New(&hclog.LoggerOptions{
		Name:   "treesh",
		Level:  hclog.Warn,
		Output: out,
	})
)

// GetLogger gets a logger with the given name, nested under the root logger.
func GetLogger(name string) hclog.Logger {
	return root.Named(name)
}

// SetLevel sets the level of all loggers.
func SetLevel(level hclog.Level) {
	root.SetLevel(level)
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(w io.Writer) {
	old := out.set(w)
	if f, ok := old.(*os.File); ok && f != os.Stderr && f != os.Stdout {
		f.Close()
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file, which is created if necessary and appended to. The level is
// lowered to Debug so that the file gets everything. An empty name resets the
// output to io.Discard.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	SetLevel(hclog.Debug)
	return nil
}
