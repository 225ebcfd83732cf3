package clause

// Predicate is a single registered check.
//
// Check is evaluated lazily, at the moment the owning scope decides the
// category is due, so a postcondition closure observes the state left by the
// guarded body.
type Predicate struct {
	// Category decides when the predicate is evaluated.
	Category Category

	// Check returns true when the predicate holds.
	Check func() bool

	// Label is an optional description shown in violation reports.
	Label string

	// Site is the program counter of the declaration.
	Site Site
}

// Failure identifies the predicate that made a check fail.
type Failure struct {
	// Category of the failing predicate.
	Category Category

	// Label of the failing predicate (may be empty).
	Label string

	// Spec names the invariant specification that declared the predicate.
	// Empty for predicates declared directly on a scope.
	Spec string

	// Site is where the failing predicate was declared.
	Site Site

	// Sticky is set when the failure was not re-evaluated but replayed from
	// an instance whose invariant was already broken.
	Sticky bool
}

// First evaluates the predicates of category c in registration order and
// returns the first one that does not hold, or nil.
//
// Evaluation short-circuits: predicates after the first failure are not run.
func First(preds []Predicate, c Category) *Failure {
	for i := range preds {
		p := &preds[i]
		if p.Category != c {
			continue
		}
		if p.Check == nil || p.Check() {
			continue
		}
		return &Failure{
			Category: c,
			Label:    p.Label,
			Site:     p.Site,
		}
	}
	return nil
}

// Count returns the number of predicates of category c.
func Count(preds []Predicate, c Category) int {
	n := 0
	for i := range preds {
		if preds[i].Category == c {
			n++
		}
	}
	return n
}

// Label joins optional label arguments into a single label.
//
// The declaration surface accepts labels as a variadic tail so that the label
// can be omitted; only the first non-empty value is kept.
func Label(labels []string) string {
	for _, l := range labels {
		if l != "" {
			return l
		}
	}
	return ""
}
