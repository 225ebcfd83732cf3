package violation

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// DefaultExitCode is the exit status used by Abort unless configured
// otherwise.
const DefaultExitCode = 2

// exit terminates the process. Replaced in tests.
var exit = os.Exit

// Handler decides what happens after a predicate failed.
//
// Handle either does not return (Abort terminates, Raise panics) or returns
// to let the guarded code continue. Handlers that return must still make the
// violation observable; a violation is never swallowed.
type Handler interface {
	Handle(r *Report)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(r *Report)

// Handle calls f(r).
func (f HandlerFunc) Handle(r *Report) {
	f(r)
}

// Abort prints the report and terminates the process.
//
// This is the default posture: a contract violation means the program's own
// assumptions no longer hold. Deferred functions of enclosing scopes do not
// run.
type Abort struct {
	// Out receives the formatted report. Nil means os.Stderr.
	Out io.Writer

	// ExitCode is the process exit status. Zero means DefaultExitCode.
	ExitCode int

	mu sync.Mutex
}

// NewAbort creates an Abort handler writing to w with the given exit code.
func NewAbort(w io.Writer, code int) *Abort {
	return &Abort{Out: w, ExitCode: code}
}

// Handle writes the report and exits.
func (a *Abort) Handle(r *Report) {
	// Lock to keep reports from concurrent violations from interleaving.
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.Out
	if out == nil {
		out = os.Stderr
	}
	r.Format(out)

	code := a.ExitCode
	if code == 0 {
		code = DefaultExitCode
	}
	exit(code)
}

// Raise panics with a *Error carrying the report.
//
// Raise exists for tests: the panic unwinds the guarded scope like any other
// panic and can be recovered with Catch to assert on the kind and category.
// It is not a recommended production posture.
type Raise struct{}

// Handle panics with *Error.
func (Raise) Handle(r *Report) {
	panic(&Error{Report: *r})
}

// Log writes the report to a structured logger and returns, letting the
// guarded code continue.
//
// Log is an observe-only posture for staged roll-outs of new contracts. The
// runtime keeps following its protocol after Log returns: a failed
// precondition does not stop the body, and a broken instance stays broken.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log handler. A nil logger uses slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Handle logs the violation at warn level.
func (l *Log) Handle(r *Report) {
	l.logger.Warn("contract violation",
		slog.String("kind", r.Kind.String()),
		slog.String("category", r.Category.String()),
		slog.String("label", r.Label),
		slog.String("spec", r.Spec),
		slog.Bool("sticky", r.Sticky),
		slog.String("site", r.Location().String()),
	)
}
