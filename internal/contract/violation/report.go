// Package violation turns a failed predicate into a report and routes it to
// the active violation handler.
//
// The package decouples "a predicate failed" from "what happens next". In
// production the default Abort handler prints the report and terminates the
// process: a violated contract is a programming error and continuing would
// run on corrupted state. Tests install Raise, which panics with a
// catchable *Error carrying the full report.
//
// Handlers live in a Registry. Install returns a Token; releasing the token
// restores exactly the handler that was active before, so nested test scopes
// compose:
//
//	tok := violation.Default().Install(violation.Raise{})
//	defer tok.Release()
package violation

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"

	"github.com/kolkov/contracts/internal/contract/clause"
)

// maxStackDepth is the maximum number of stack frames captured per report.
const maxStackDepth = 32

// Report describes one contract violation.
//
// A report is transient: it is built when a failure is detected and handed
// to the active handler immediately.
type Report struct {
	// Kind is the declaration site that detected the violation.
	Kind clause.Kind

	// Category is the category of the failing predicate.
	Category clause.Category

	// Label is the failing predicate's label (may be empty).
	Label string

	// Spec names the invariant specification that declared the failing
	// predicate. Empty for predicates declared on the scope itself.
	Spec string

	// Sticky is set when an already broken instance was checked again. The
	// label and site are those of the original failure.
	Sticky bool

	// Site is where the failing predicate was declared.
	Site clause.Site

	// Stack holds program counters captured when the violation was detected.
	// Empty when stack capture is disabled.
	Stack []uintptr
}

// NewReport creates a report for failure f detected by a scope of kind k.
func NewReport(k clause.Kind, f *clause.Failure) *Report {
	r := &Report{Kind: k}
	if f != nil {
		r.Category = f.Category
		r.Label = f.Label
		r.Spec = f.Spec
		r.Sticky = f.Sticky
		r.Site = f.Site
	}
	return r
}

// Location resolves the declaration site of the failing predicate.
func (r *Report) Location() clause.Location {
	return r.Site.Location()
}

// Summary returns a one-line description without location.
//
// Example: "invariant failed in member-function: balance > 0".
func (r *Report) Summary() string {
	var b strings.Builder
	b.WriteString(r.Category.String())
	b.WriteString(" failed in ")
	b.WriteString(r.Kind.String())
	if r.Label != "" {
		b.WriteString(": ")
		b.WriteString(r.Label)
	}
	return b.String()
}

// captureStack captures the current call stack, skipping skip frames above
// the caller of captureStack.
func captureStack(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// internalFrame reports whether a frame belongs to the runtime or to the
// contract machinery itself and should be hidden from reports.
func internalFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, "testing.") {
		return true
	}
	if strings.Contains(fn, "/internal/contract/") && !strings.Contains(fn, ".Test") {
		return true
	}
	return strings.Contains(fn, "kolkov/contracts/contract.")
}

// formatStack formats program counters the way Go prints goroutine stacks:
//
//	main.withdraw()
//	    /path/to/account.go:15
func formatStack(pcs []uintptr) string {
	if len(pcs) == 0 {
		return "  (no stack trace captured)\n"
	}

	frames := runtime.CallersFrames(pcs)
	var buf strings.Builder

	for {
		frame, more := frames.Next()
		if !internalFrame(frame.Function) {
			buf.WriteString("  ")
			buf.WriteString(frame.Function)
			buf.WriteString("()\n      ")
			buf.WriteString(frame.File)
			fmt.Fprintf(&buf, ":%d\n", frame.Line)
		}
		if !more {
			break
		}
	}

	if buf.Len() == 0 {
		return "  (all frames filtered - contract runtime internal)\n"
	}
	return buf.String()
}

// Format writes a human-readable report:
//
//	==================
//	CONTRACT VIOLATION: precondition
//	Kind:     constructor
//	Label:    bal > 0
//	Declared: /path/to/account.go:21 (main.NewAccount)
//	Stack:
//	  main.NewAccount()
//	      /path/to/account.go:24
//	==================
//
// The header is coloured when the output supports it (see color.NoColor).
//
//nolint:errcheck // Error handling omitted for diagnostic output formatting
func (r *Report) Format(w io.Writer) {
	header := color.New(color.FgRed, color.Bold)
	field := color.New(color.FgYellow)

	fmt.Fprintf(w, "==================\n")
	header.Fprintf(w, "CONTRACT VIOLATION: %s\n", r.Category)

	field.Fprint(w, "Kind:     ")
	fmt.Fprintf(w, "%s\n", r.Kind)

	if r.Label != "" {
		field.Fprint(w, "Label:    ")
		fmt.Fprintf(w, "%s\n", r.Label)
	}
	if r.Spec != "" {
		field.Fprint(w, "Spec:     ")
		fmt.Fprintf(w, "%s\n", r.Spec)
	}
	if r.Sticky {
		field.Fprint(w, "State:    ")
		fmt.Fprintf(w, "broken (instance failed an earlier invariant check)\n")
	}

	loc := r.Location()
	field.Fprint(w, "Declared: ")
	if loc.Function != "" {
		fmt.Fprintf(w, "%s (%s)\n", loc, loc.Function)
	} else {
		fmt.Fprintf(w, "%s\n", loc)
	}

	if len(r.Stack) > 0 {
		field.Fprint(w, "Stack:\n")
		fmt.Fprint(w, formatStack(r.Stack))
	}

	fmt.Fprintf(w, "==================\n")
}

// String returns the formatted report.
func (r *Report) String() string {
	var buf strings.Builder
	r.Format(&buf)
	return buf.String()
}
