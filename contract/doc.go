// Package contract provides design-by-contract checking for Go code:
// preconditions, postconditions and invariants attached to constructors,
// Close-style destructors, methods, free functions and loop bodies.
//
// All checks are dynamic. A failing predicate produces a violation report
// that is routed to the active handler, which by default prints the report
// and terminates the process.
//
// # Quick Start
//
//	type Account struct {
//		contract.Tracker
//		balance int
//	}
//
//	var accountInvariant = contract.Class[*Account]("account").
//		Invariant(func(a *Account) bool { return a.balance > 0 }, "balance > 0")
//
//	func NewAccount(bal int) (a *Account) {
//		a = &Account{}
//		defer contract.Ctor(&a.Tracker, accountInvariant.For(a)).
//			Pre(func() bool { return bal > 0 }, "bal > 0").
//			Enter().Exit()
//		a.balance = bal
//		return a
//	}
//
//	func (a *Account) Deposit(n int) {
//		defer contract.Method(&a.Tracker, accountInvariant.For(a)).
//			Pre(func() bool { return n > 0 }, "n > 0").
//			Enter().Exit()
//		a.balance += n
//	}
//
// The chain up to Enter runs when the defer statement executes: entry checks
// happen before the body, and Exit runs after it. Exit must be the deferred
// call itself so it can tell a panicking body apart from a normal return.
//
// # API Overview
//
// The package provides functions for:
//   - Scopes: [Ctor], [Dtor], [Method], [Func], [Loop]
//   - Invariant specifications: [Class], [Derived], [Inherit]
//   - Handlers: [Install], [Catch], [NewAbort], [Raise], [NewLog], [Instrument]
//   - Version information: [GetInfo], [Compatible], [Version]
//
// # Contract Kinds
//
// Each scope kind runs a fixed protocol:
//   - Constructor: preconditions on entry. After a normal return,
//     postconditions, then the invariant, which moves the instance from
//     unchecked to sound or broken.
//   - Destructor: preconditions and, unless the instance is still
//     unchecked, the invariant on entry. Postconditions after a normal
//     return.
//   - Method: preconditions and the invariant on entry, the invariant and
//     postconditions after a normal return. A broken instance fails every
//     later call with a sticky invariant violation.
//   - Function: preconditions and postconditions. Invariants are ignored.
//   - Loop: invariants only, evaluated at Enter on every iteration.
//
// Exit checks are skipped when the body panics. With ExitErr or Run, a
// non-nil returned error is treated the same way.
//
// # Invariant Composition
//
// A derived specification lists its bases explicitly with [Inherit]; a
// base not listed never contributes. Bases are evaluated left to right,
// then the derived specification's own predicates, stopping at the first
// failure.
//
// # Handlers
//
// The active handler decides what a violation does:
//   - [Abort] (default): print the report to stderr and exit with status 2
//   - [Raise]: panic with *[Error], recovered by [Catch]; meant for tests
//   - [Log]: write a structured log record and continue
//
// [Install] returns a [Token]; releasing it restores exactly the handler
// that was active before:
//
//	tok := contract.Install(contract.Raise{})
//	defer tok.Release()
//
// # Configuration
//
// The CONTRACTS environment variable selects the default handler at
// start-up, using space separated key=value pairs:
//
//	CONTRACTS="handler=log stack=0" ./myprogram
//
// Keys are handler (abort, raise, log), exitcode (1..125), color (auto,
// always, never) and stack (0, 1).
//
// # Thread Safety
//
// Contract checks run inline on the calling goroutine. A Tracker is not
// locked: concurrent calls on one instance must be serialized by the
// caller, as the fields the invariant reads must be. Install and Release
// mutate process-wide state and belong in start-up code or tests.
package contract
