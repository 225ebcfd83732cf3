// Package clause defines the vocabulary shared by every part of the contract
// runtime: contract kinds, predicate categories, predicates and the source
// sites they were declared at.
//
// A contract kind identifies the declaration site (constructor, destructor,
// member function, free function, loop body, or an invariant specification)
// and decides which predicate categories are evaluated there. A predicate is
// a boolean check plus an optional human-readable label.
package clause

// Kind identifies the declaration site of a contract.
type Kind uint8

const (
	// KindConstructor guards the construction of an instance.
	KindConstructor Kind = iota + 1
	// KindDestructor guards the teardown of an instance.
	KindDestructor
	// KindMemberFunction guards a method call on an instance.
	KindMemberFunction
	// KindFreeFunction guards a function that is not bound to an instance.
	KindFreeFunction
	// KindClassInvariant declares the invariant of a type without bases.
	KindClassInvariant
	// KindDerivedInvariant declares the invariant of a type composing bases.
	KindDerivedInvariant
	// KindLoopInvariant guards a single loop iteration.
	KindLoopInvariant
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	case KindMemberFunction:
		return "member-function"
	case KindFreeFunction:
		return "free-function"
	case KindClassInvariant:
		return "class-invariant"
	case KindDerivedInvariant:
		return "derived-invariant"
	case KindLoopInvariant:
		return "loop-invariant"
	default:
		return "unknown"
	}
}

// BindsInstance reports whether scopes of this kind are bound to an instance
// and consult its invariant state.
func (k Kind) BindsInstance() bool {
	return k == KindConstructor || k == KindDestructor || k == KindMemberFunction
}

// IsSpecification reports whether the kind only declares an invariant and is
// never entered as a scope of its own.
func (k Kind) IsSpecification() bool {
	return k == KindClassInvariant || k == KindDerivedInvariant
}

// Evaluates reports whether predicates of category c registered under this
// kind are ever evaluated.
//
// Registering a predicate the kind does not evaluate is legal: loop scopes
// accept preconditions and postconditions, free functions accept invariants,
// and all of them are silently skipped.
func (k Kind) Evaluates(c Category) bool {
	switch k {
	case KindConstructor, KindDestructor, KindMemberFunction:
		return c.Valid()
	case KindFreeFunction:
		return c == Precondition || c == Postcondition
	case KindLoopInvariant, KindClassInvariant, KindDerivedInvariant:
		return c == Invariant
	default:
		return false
	}
}

// Category is the class of a predicate: when it is checked and what a
// failure of it means.
type Category uint8

const (
	// Precondition is checked on scope entry, before the guarded body runs.
	Precondition Category = iota + 1
	// Postcondition is checked on normal scope exit, after the body ran.
	Postcondition
	// Invariant is checked according to the kind of the scope.
	Invariant
)

// String returns the string representation of a Category.
func (c Category) String() string {
	switch c {
	case Precondition:
		return "precondition"
	case Postcondition:
		return "postcondition"
	case Invariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the three predicate categories.
func (c Category) Valid() bool {
	return c >= Precondition && c <= Invariant
}
