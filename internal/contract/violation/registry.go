package violation

import "github.com/kolkov/contracts/internal/contract/clause"

// Registry holds the active violation handler.
//
// A Registry is an explicit service: scopes report to the registry they were
// given, and tests can own a private registry instead of touching the
// process-wide one returned by Default.
//
// Thread Safety: none by design. Install and Release mutate the registry
// without locking. Install handlers before contracted code runs on other
// goroutines, or synchronize externally. Reporting only reads the current
// handler.
type Registry struct {
	current Handler
	depth   int

	// CaptureStack controls whether reports carry a stack trace.
	CaptureStack bool
}

// NewRegistry creates a registry whose base handler is base. A nil base
// uses Abort on stderr.
func NewRegistry(base Handler) *Registry {
	if base == nil {
		base = NewAbort(nil, DefaultExitCode)
	}
	return &Registry{current: base, CaptureStack: true}
}

var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Handler returns the active handler.
func (g *Registry) Handler() Handler {
	return g.current
}

// Depth returns the number of installed handlers not yet released.
func (g *Registry) Depth() int {
	return g.depth
}

// Replace swaps the base handler. It is meant for process start-up, before
// any handler was installed; with handlers installed it replaces the active
// one and the replacement is lost when the innermost token is released.
func (g *Registry) Replace(h Handler) {
	if h == nil {
		h = NewAbort(nil, DefaultExitCode)
	}
	g.current = h
}

// Install makes h the active handler and returns a token restoring the
// previous one. A nil h is ignored by reporting, which then falls back to
// Abort.
//
// Tokens are meant to be released in reverse order of installation,
// typically with defer or t.Cleanup.
func (g *Registry) Install(h Handler) *Token {
	tok := &Token{registry: g, prev: g.current}
	g.current = h
	g.depth++
	return tok
}

// Token restores the handler that was active when it was created.
type Token struct {
	registry *Registry
	prev     Handler
	released bool
}

// Release restores the previous handler. Releasing twice is a no-op.
func (t *Token) Release() {
	if t == nil || t.released {
		return
	}
	t.released = true
	t.registry.current = t.prev
	t.registry.depth--
}

// Released reports whether the token was released.
func (t *Token) Released() bool {
	return t.released
}

// Fail builds a report for failure f detected by a scope of kind k and
// hands it to the active handler.
//
// Fail returns only if the handler returns.
func (g *Registry) Fail(k clause.Kind, f *clause.Failure) {
	r := NewReport(k, f)
	if g.CaptureStack {
		r.Stack = captureStack(1)
	}

	h := g.current
	if h == nil {
		h = NewAbort(nil, DefaultExitCode)
	}
	h.Handle(r)
}
