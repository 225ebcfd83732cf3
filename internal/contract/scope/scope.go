// Package scope implements the scoped checking context: the object created
// at a contract declaration site that runs the entry and exit protocol of its
// contract kind.
//
// # Protocol
//
// Entry (Enter):
//
//	constructor      preconditions
//	destructor       preconditions, invariant (unless the instance is unchecked)
//	member-function  broken? -> sticky invariant violation; else preconditions, invariant
//	free-function    preconditions
//	loop-invariant   invariant
//
// Exit (Exit, ExitErr), skipped entirely when the body panicked or returned
// an error:
//
//	constructor      postconditions, invariant (unchecked -> sound)
//	destructor       postconditions
//	member-function  invariant, postconditions
//	free-function    postconditions
//	loop-invariant   nothing
//
// Invariants of a member-function, constructor or destructor scope are the
// bound class invariant followed by the invariants declared on the scope,
// all checked through the instance's Tracker.
//
// # Usage
//
// Exit must be the deferred call itself so it can observe a panicking body:
//
//	func (a *Account) Deposit(n int) {
//		defer scope.Method(&a.tracker, spec.For(a)).
//			Pre(func() bool { return n > 0 }, "n > 0").
//			Enter().Exit()
//		a.balance += n
//	}
//
// The chain up to Enter runs when the defer statement executes, so entry
// checks happen before the body. If Enter raises, the defer is never
// registered and neither the body nor the exit checks run.
package scope

import (
	"errors"
	"fmt"

	"github.com/kolkov/contracts/internal/contract/clause"
	"github.com/kolkov/contracts/internal/contract/invariant"
	"github.com/kolkov/contracts/internal/contract/violation"
)

// ErrBroken is returned by Run when a member-function body was skipped
// because the instance's invariant is broken and the active handler returned.
var ErrBroken = fmt.Errorf("%w: instance invariant is broken", violation.ErrViolation)

// errNotEntered is the panic value for Exit on a scope that was never entered.
var errNotEntered = errors.New("contract: scope exited without Enter")

// Scope is a scoped checking context.
//
// A Scope belongs to the call frame that created it. It must not be stored,
// shared between goroutines, or reused for a second call.
type Scope struct {
	kind     clause.Kind
	preds    []clause.Predicate
	tracker  *invariant.Tracker
	class    invariant.Bound
	registry *violation.Registry

	entered bool
	exited  bool

	// skipped is set when the member-function sticky short-circuit fired;
	// nothing else is checked for this call.
	skipped bool
}

// New creates a scope of the given kind.
//
// tracker and class may be nil. For kinds that are not bound to an instance
// they are ignored.
func New(kind clause.Kind, tracker *invariant.Tracker, class invariant.Bound) *Scope {
	s := &Scope{kind: kind}
	if kind.BindsInstance() {
		s.tracker = tracker
		s.class = class
	}
	return s
}

// Ctor creates a constructor scope.
func Ctor(tracker *invariant.Tracker, class invariant.Bound) *Scope {
	return New(clause.KindConstructor, tracker, class)
}

// Dtor creates a destructor scope.
func Dtor(tracker *invariant.Tracker, class invariant.Bound) *Scope {
	return New(clause.KindDestructor, tracker, class)
}

// Method creates a member-function scope.
func Method(tracker *invariant.Tracker, class invariant.Bound) *Scope {
	return New(clause.KindMemberFunction, tracker, class)
}

// Func creates a free-function scope.
func Func() *Scope {
	return New(clause.KindFreeFunction, nil, nil)
}

// Loop creates a loop-invariant scope. Create one per iteration, at the
// point in the loop body where the invariant must hold, and call Enter.
func Loop() *Scope {
	return New(clause.KindLoopInvariant, nil, nil)
}

// Using directs violations to reg instead of the process-wide registry.
func (s *Scope) Using(reg *violation.Registry) *Scope {
	s.registry = reg
	return s
}

// Pre registers a precondition.
func (s *Scope) Pre(check func() bool, label ...string) *Scope {
	s.add(clause.Precondition, check, label)
	return s
}

// Post registers a postcondition. The check runs after the body, so it
// observes the body's effects.
func (s *Scope) Post(check func() bool, label ...string) *Scope {
	s.add(clause.Postcondition, check, label)
	return s
}

// Inv registers an invariant local to this scope.
func (s *Scope) Inv(check func() bool, label ...string) *Scope {
	s.add(clause.Invariant, check, label)
	return s
}

func (s *Scope) add(c clause.Category, check func() bool, labels []string) {
	s.preds = append(s.preds, clause.Predicate{
		Category: c,
		Check:    check,
		Label:    clause.Label(labels),
		Site:     clause.Here(1),
	})
}

// Kind returns the scope's contract kind.
func (s *Scope) Kind() clause.Kind {
	return s.kind
}

// Len returns the number of registered predicates of category c, including
// those the kind never evaluates.
func (s *Scope) Len(c clause.Category) int {
	return clause.Count(s.preds, c)
}

// Entered reports whether Enter was called.
func (s *Scope) Entered() bool {
	return s.entered
}

// Skipped reports whether the body should not run because the instance was
// already broken. Only meaningful when the active handler returns.
func (s *Scope) Skipped() bool {
	return s.skipped
}

// Enter runs the entry protocol and returns the scope.
func (s *Scope) Enter() *Scope {
	if s.entered {
		return s
	}
	s.entered = true

	switch s.kind {
	case clause.KindConstructor, clause.KindFreeFunction:
		s.check(clause.Precondition)

	case clause.KindDestructor:
		s.check(clause.Precondition)
		if s.tracker == nil || s.tracker.State() != invariant.Unchecked {
			s.checkInvariant()
		}

	case clause.KindMemberFunction:
		if s.tracker.Broken() {
			s.skipped = true
			s.fail(s.tracker.Check(nil))
			return s
		}
		s.check(clause.Precondition)
		s.checkInvariant()

	case clause.KindLoopInvariant:
		s.checkInvariant()
	}
	return s
}

// Exit runs the exit protocol. It must be called directly by defer.
//
// If the body is panicking, exit checks are skipped and the panic continues
// with its original value.
func (s *Scope) Exit() {
	if r := recover(); r != nil {
		s.leave(true)
		panic(r)
	}
	s.leave(false)
}

// ExitErr is Exit for bodies reporting failure through an error result: a
// non-nil *errp counts as an exceptional exit. It must be called directly by
// defer.
//
//	func (a *Account) Withdraw(n int) (err error) {
//		defer scope.Method(&a.tracker, spec.For(a)).Enter().ExitErr(&err)
//		...
//	}
func (s *Scope) ExitErr(errp *error) {
	if r := recover(); r != nil {
		s.leave(true)
		panic(r)
	}
	s.leave(errp != nil && *errp != nil)
}

// Run runs body inside the scope: Enter, body, ExitErr.
//
// When the sticky short-circuit fired and the handler returned, body is not
// run and Run returns ErrBroken.
func (s *Scope) Run(body func() error) (err error) {
	s.Enter()
	if s.skipped {
		s.exited = true
		return ErrBroken
	}
	defer s.ExitErr(&err)
	return body()
}

func (s *Scope) leave(exceptional bool) {
	if s.exited {
		return
	}
	s.exited = true

	if exceptional {
		return
	}
	if !s.entered {
		panic(errNotEntered)
	}
	if s.skipped {
		return
	}

	switch s.kind {
	case clause.KindConstructor:
		s.check(clause.Postcondition)
		s.checkInvariant()

	case clause.KindDestructor, clause.KindFreeFunction:
		s.check(clause.Postcondition)

	case clause.KindMemberFunction:
		s.checkInvariant()
		s.check(clause.Postcondition)
	}
}

// check evaluates the predicates of category c, if the kind evaluates them.
func (s *Scope) check(c clause.Category) {
	if !s.kind.Evaluates(c) {
		return
	}
	if f := clause.First(s.preds, c); f != nil {
		s.fail(f)
	}
}

// checkInvariant evaluates the effective invariant through the tracker.
func (s *Scope) checkInvariant() {
	if !s.kind.Evaluates(clause.Invariant) {
		return
	}
	if f := s.tracker.Check(s.effective); f != nil {
		s.fail(f)
	}
}

// effective is the class invariant followed by the scope's own invariants.
func (s *Scope) effective() *clause.Failure {
	if s.class != nil {
		if f := s.class(); f != nil {
			return f
		}
	}
	return clause.First(s.preds, clause.Invariant)
}

func (s *Scope) fail(f *clause.Failure) {
	reg := s.registry
	if reg == nil {
		reg = violation.Default()
	}
	reg.Fail(s.kind, f)
}
