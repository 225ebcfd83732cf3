package violation

import (
	"errors"
	"fmt"

	"github.com/kolkov/contracts/internal/contract/clause"
)

// ErrViolation matches every *Error with errors.Is.
var ErrViolation = errors.New("contract violation")

// Error is the catchable form of a violation, raised by the Raise handler.
//
// Format: "contract violation: <category> failed in <kind>[: <label>] (<file>:<line>)"
//
// Example:
//
//	err := violation.Catch(func() { NewAccount(0) })
//	if err != nil && err.Category == clause.Precondition {
//	    // ...
//	}
//
// Thread Safety: Immutable after creation, safe for concurrent use.
type Error struct {
	Report
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrViolation, e.Summary(), e.Location())
}

// Is reports whether target is ErrViolation.
func (e *Error) Is(target error) bool {
	return target == ErrViolation
}

// KindOf returns the contract kind of the violation.
func (e *Error) KindOf() clause.Kind {
	return e.Kind
}

// CategoryOf returns the predicate category of the violation.
func (e *Error) CategoryOf() clause.Category {
	return e.Category
}

// Catch runs fn and returns the violation it raised, or nil if fn returned
// normally. Panics that are not violations propagate unchanged.
//
// Catch only observes violations when the active handler raises them; under
// Abort the process terminates before Catch can return.
func Catch(fn func()) (err *Error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if v, ok := r.(*Error); ok {
			err = v
			return
		}
		panic(r)
	}()
	fn()
	return nil
}
