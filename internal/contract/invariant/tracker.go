// Package invariant implements per-instance invariant state tracking and the
// composition of invariant specifications across base and derived types.
//
// Every guarded instance carries a Tracker: a tri-state flag
//
//	Unchecked --(all invariants pass)--> Sound
//	Unchecked --(any invariant fails)--> Broken
//	Sound     --(any invariant fails)--> Broken
//	Broken    --(anything)-------------> Broken
//
// Broken is absorbing. Once an instance failed its invariant it can never pass
// again, even if its fields later happen to satisfy every predicate. Trust in
// the instance is revoked, not merely suspended.
//
// A Spec declares the invariant of a type: its own predicates plus an ordered
// list of base specifications. The effective invariant evaluates each base in
// listed order and then the local predicates, stopping at the first failure.
package invariant

import "github.com/kolkov/contracts/internal/contract/clause"

// State is the invariant state of a single instance.
type State uint8

const (
	// Unchecked means the invariant has never been established.
	Unchecked State = iota
	// Sound means every invariant check so far has passed.
	Sound
	// Broken means an invariant check failed. Broken is permanent.
	Broken
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Sound:
		return "sound"
	case Broken:
		return "broken"
	default:
		return "unknown"
	}
}

// Bound is the effective invariant of one instance: a spec bound to the value
// it checks. It returns the first failing predicate or nil.
type Bound func() *clause.Failure

// Tracker holds the invariant state of one instance.
//
// Embed a Tracker (or keep it as a named field) in every type that declares
// an invariant. The zero value is Unchecked and ready to use. The tracker's
// lifetime is the instance's lifetime; it must not be shared between
// instances or copied after first use.
//
// Thread Safety: none. Concurrent guarded calls on the same instance race on
// the tracker and must be serialized by the caller.
type Tracker struct {
	state State

	// cause is the failure that broke the instance, replayed on every later
	// check.
	cause *clause.Failure
}

// State returns the current state. A nil tracker reports Unchecked.
func (t *Tracker) State() State {
	if t == nil {
		return Unchecked
	}
	return t.state
}

// Cause returns the failure that broke the instance, or nil if the instance
// is not broken.
func (t *Tracker) Cause() *clause.Failure {
	if t == nil || t.cause == nil {
		return nil
	}
	c := *t.cause
	return &c
}

// Check evaluates the effective invariant through the tracker.
//
// Rules:
//  1. Broken: return the original failure marked Sticky, evaluate nothing.
//  2. Evaluate eval (a nil eval always holds).
//  3. Failure: move to Broken, remember the failure, return it.
//  4. Success from Unchecked: move to Sound.
//
// A nil tracker evaluates eval without recording anything, which is how
// scopes on types without a tracker check their local invariants.
func (t *Tracker) Check(eval Bound) *clause.Failure {
	if t == nil {
		if eval == nil {
			return nil
		}
		return eval()
	}

	if t.state == Broken {
		replay := clause.Failure{Category: clause.Invariant}
		if t.cause != nil {
			replay = *t.cause
		}
		replay.Sticky = true
		return &replay
	}

	var f *clause.Failure
	if eval != nil {
		f = eval()
	}
	if f != nil {
		t.state = Broken
		cause := *f
		t.cause = &cause
		return f
	}

	if t.state == Unchecked {
		t.state = Sound
	}
	return nil
}

// Broken reports whether the instance can no longer pass invariant checks.
func (t *Tracker) Broken() bool {
	return t.State() == Broken
}
