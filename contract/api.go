package contract

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kolkov/contracts/internal/contract/clause"
	"github.com/kolkov/contracts/internal/contract/config"
	"github.com/kolkov/contracts/internal/contract/invariant"
	"github.com/kolkov/contracts/internal/contract/scope"
	"github.com/kolkov/contracts/internal/contract/violation"
)

type (
	// Kind is the contract kind of a scope.
	Kind = clause.Kind

	// Category is the category of a failing predicate.
	Category = clause.Category

	// Location is a resolved source position.
	Location = clause.Location

	// Scope is a scoped checking context. See [Ctor], [Dtor], [Method],
	// [Func] and [Loop].
	Scope = scope.Scope

	// Tracker holds the invariant state of one instance. Embed it in
	// guarded types.
	Tracker = invariant.Tracker

	// State is the invariant state of an instance.
	State = invariant.State

	// Bound is an invariant bound to an instance, see [Spec.For].
	Bound = invariant.Bound

	// Report describes one violation.
	Report = violation.Report

	// Error is the panic value raised by [Raise] and returned by [Catch].
	Error = violation.Error

	// Handler decides what a violation does.
	Handler = violation.Handler

	// HandlerFunc adapts a function to [Handler].
	HandlerFunc = violation.HandlerFunc

	// Registry holds the active handler. Most programs use the
	// process-wide registry through [Install].
	Registry = violation.Registry

	// Token restores the handler replaced by [Install].
	Token = violation.Token

	// Abort prints the report and exits the process.
	Abort = violation.Abort

	// Raise panics with *[Error].
	Raise = violation.Raise

	// Log writes the report to a structured logger and returns.
	Log = violation.Log

	// Metrics counts violations before delegating to another handler.
	Metrics = violation.Metrics
)

// Contract kinds.
const (
	KindConstructor      = clause.KindConstructor
	KindDestructor       = clause.KindDestructor
	KindMemberFunction   = clause.KindMemberFunction
	KindFreeFunction     = clause.KindFreeFunction
	KindClassInvariant   = clause.KindClassInvariant
	KindDerivedInvariant = clause.KindDerivedInvariant
	KindLoopInvariant    = clause.KindLoopInvariant
)

// Predicate categories.
const (
	Precondition  = clause.Precondition
	Postcondition = clause.Postcondition
	Invariant     = clause.Invariant
)

// Instance states.
const (
	Unchecked = invariant.Unchecked
	Sound     = invariant.Sound
	Broken    = invariant.Broken
)

var (
	// ErrViolation matches every *Error with errors.Is.
	ErrViolation = violation.ErrViolation

	// ErrBroken is returned by Scope.Run when a method body was skipped on
	// a broken instance and the handler returned.
	ErrBroken = scope.ErrBroken
)

// DefaultExitCode is the exit status used by Abort unless configured.
const DefaultExitCode = violation.DefaultExitCode

func init() {
	config.FromEnv(nil).Apply(violation.Default(), nil)
}

// Ctor opens a constructor scope for the instance tracked by t, whose
// invariant is inv. Both may be nil.
func Ctor(t *Tracker, inv Bound) *Scope {
	return scope.Ctor(t, inv)
}

// Dtor opens a destructor scope, for Close-style teardown methods.
func Dtor(t *Tracker, inv Bound) *Scope {
	return scope.Dtor(t, inv)
}

// Method opens a member-function scope.
func Method(t *Tracker, inv Bound) *Scope {
	return scope.Method(t, inv)
}

// Func opens a free-function scope.
func Func() *Scope {
	return scope.Func()
}

// Loop opens a loop-invariant scope. Call it once per iteration:
//
//	for i := 0; i < n; i++ {
//		contract.Loop().Inv(func() bool { return i < n }, "i < n").Enter()
//		...
//	}
func Loop() *Scope {
	return scope.Loop()
}

// Default returns the process-wide registry.
func Default() *Registry {
	return violation.Default()
}

// NewRegistry creates a private registry. Point a scope at it with
// Scope.Using.
func NewRegistry(base Handler) *Registry {
	return violation.NewRegistry(base)
}

// Install makes h the active handler of the process-wide registry and
// returns a token restoring the previous one.
func Install(h Handler) *Token {
	return violation.Default().Install(h)
}

// Catch runs fn and returns the violation it raised, or nil. Panics that are
// not violations propagate unchanged.
//
//	err := contract.Catch(func() { acct.Withdraw(500) })
func Catch(fn func()) *Error {
	return violation.Catch(fn)
}

// NewAbort returns an Abort handler writing to w (stderr if nil) and exiting
// with code.
func NewAbort(w io.Writer, code int) *Abort {
	return violation.NewAbort(w, code)
}

// NewLog returns a Log handler. A nil logger uses slog.Default.
func NewLog(logger *slog.Logger) *Log {
	return violation.NewLog(logger)
}

// Instrument wraps next with a contract_violations_total counter registered
// on reg.
func Instrument(next Handler, reg prometheus.Registerer) (*Metrics, error) {
	return violation.Instrument(next, reg)
}
