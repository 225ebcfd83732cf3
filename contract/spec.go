package contract

import "github.com/kolkov/contracts/internal/contract/invariant"

// Spec is the invariant specification of type T.
type Spec[T any] = invariant.Spec[T]

// Base is one listed base of a derived specification.
type Base[T any] = invariant.Base[T]

// Class declares the invariant specification of a type with no bases.
//
//	var accountInvariant = contract.Class[*Account]("account").
//		Invariant(func(a *Account) bool { return a.balance > 0 }, "balance > 0")
func Class[T any](name string) *Spec[T] {
	return invariant.Class[T](name)
}

// Derived declares a specification composing the listed bases, evaluated in
// order before its own predicates.
//
//	var savingsInvariant = contract.Derived[*Savings]("savings",
//		contract.Inherit(accountInvariant, func(s *Savings) *Account { return &s.Account }),
//	).Invariant(func(s *Savings) bool { return s.rate >= 0 }, "rate >= 0")
func Derived[T any](name string, bases ...Base[T]) *Spec[T] {
	return invariant.Derived[T](name, bases...)
}

// Inherit lists spec as a base, reached from the derived value through
// project. A nil spec stands for a base without an invariant.
func Inherit[T, B any](spec *Spec[B], project func(T) B) Base[T] {
	return invariant.Inherit(spec, project)
}
