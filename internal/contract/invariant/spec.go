package invariant

import "github.com/kolkov/contracts/internal/contract/clause"

// Spec is the invariant specification of type T.
//
// A Spec is declared once per type, usually as a package-level variable, and
// bound to instances with For. Composition is data: a derived Spec holds an
// ordered list of references to base specs together with a projection from
// the derived value to the base value. There is no implicit walk over
// embedded fields; a base that is not listed contributes nothing.
//
// Specs are built during package initialization. Adding predicates while
// other goroutines check instances is a data race.
type Spec[T any] struct {
	name  string
	kind  clause.Kind
	bases []Base[T]
	local []predicate[T]
}

type predicate[T any] struct {
	check func(T) bool
	label string
	site  clause.Site
}

// Base is one entry of a derived spec's base list.
type Base[T any] struct {
	name  string
	check func(T) *clause.Failure
}

// Name returns the name of the referenced base spec. A base without a
// declared invariant has an empty name.
func (b Base[T]) Name() string {
	return b.name
}

// Declared reports whether the base contributes any check.
func (b Base[T]) Declared() bool {
	return b.check != nil
}

// Class declares the invariant of a type with no composed bases.
func Class[T any](name string) *Spec[T] {
	return &Spec[T]{name: name, kind: clause.KindClassInvariant}
}

// Derived declares the invariant of a type composing the listed bases.
//
// Bases are evaluated in the order given, before the derived type's own
// predicates. The same base may appear more than once, directly or through
// another base; it is then evaluated once per appearance.
func Derived[T any](name string, bases ...Base[T]) *Spec[T] {
	return &Spec[T]{
		name:  name,
		kind:  clause.KindDerivedInvariant,
		bases: append([]Base[T](nil), bases...),
	}
}

// Inherit references base spec for use in a derived spec.
//
// project maps the derived value to the base value, typically the address of
// an embedded field. A nil spec stands for a base type that declares no
// invariant; it is legal and always holds.
func Inherit[T, B any](spec *Spec[B], project func(T) B) Base[T] {
	if spec == nil || project == nil {
		return Base[T]{}
	}
	return Base[T]{
		name: spec.name,
		check: func(v T) *clause.Failure {
			return spec.Check(project(v))
		},
	}
}

// Invariant adds a local predicate to the spec and returns the spec.
func (s *Spec[T]) Invariant(check func(T) bool, label string) *Spec[T] {
	s.local = append(s.local, predicate[T]{
		check: check,
		label: label,
		site:  clause.Here(0),
	})
	return s
}

// Name returns the spec's name.
func (s *Spec[T]) Name() string {
	return s.name
}

// Kind returns KindClassInvariant or KindDerivedInvariant.
func (s *Spec[T]) Kind() clause.Kind {
	return s.kind
}

// Bases returns the names of the listed bases, in evaluation order.
func (s *Spec[T]) Bases() []string {
	names := make([]string, len(s.bases))
	for i, b := range s.bases {
		names[i] = b.name
	}
	return names
}

// Len returns the number of local predicates.
func (s *Spec[T]) Len() int {
	return len(s.local)
}

// Check evaluates the effective invariant of v: every listed base in order,
// then the local predicates. It returns the first failing predicate.
//
// A nil spec always holds.
func (s *Spec[T]) Check(v T) *clause.Failure {
	if s == nil {
		return nil
	}

	for _, b := range s.bases {
		if b.check == nil {
			continue
		}
		if f := b.check(v); f != nil {
			return f
		}
	}

	for i := range s.local {
		p := &s.local[i]
		if p.check == nil || p.check(v) {
			continue
		}
		return &clause.Failure{
			Category: clause.Invariant,
			Label:    p.label,
			Spec:     s.name,
			Site:     p.site,
		}
	}
	return nil
}

// For binds the spec to v. A nil spec yields a nil Bound.
func (s *Spec[T]) For(v T) Bound {
	if s == nil {
		return nil
	}
	return func() *clause.Failure {
		return s.Check(v)
	}
}
