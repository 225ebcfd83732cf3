package clause

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindConstructor, "constructor"},
		{KindDestructor, "destructor"},
		{KindMemberFunction, "member-function"},
		{KindFreeFunction, "free-function"},
		{KindClassInvariant, "class-invariant"},
		{KindDerivedInvariant, "derived-invariant"},
		{KindLoopInvariant, "loop-invariant"},
		{Kind(0), "unknown"},
		{Kind(200), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "precondition", Precondition.String())
	assert.Equal(t, "postcondition", Postcondition.String())
	assert.Equal(t, "invariant", Invariant.String())
	assert.Equal(t, "unknown", Category(0).String())
	assert.False(t, Category(0).Valid())
	assert.False(t, Category(4).Valid())
}

// TestKind_Evaluates pins down which categories each declaration site
// actually checks.
func TestKind_Evaluates(t *testing.T) {
	tests := []struct {
		kind      Kind
		pre, post bool
		inv       bool
	}{
		{KindConstructor, true, true, true},
		{KindDestructor, true, true, true},
		{KindMemberFunction, true, true, true},
		{KindFreeFunction, true, true, false},
		{KindLoopInvariant, false, false, true},
		{KindClassInvariant, false, false, true},
		{KindDerivedInvariant, false, false, true},
		{Kind(0), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.pre, tt.kind.Evaluates(Precondition), "precondition")
			assert.Equal(t, tt.post, tt.kind.Evaluates(Postcondition), "postcondition")
			assert.Equal(t, tt.inv, tt.kind.Evaluates(Invariant), "invariant")
		})
	}
}

func TestKind_BindsInstance(t *testing.T) {
	assert.True(t, KindConstructor.BindsInstance())
	assert.True(t, KindDestructor.BindsInstance())
	assert.True(t, KindMemberFunction.BindsInstance())
	assert.False(t, KindFreeFunction.BindsInstance())
	assert.False(t, KindLoopInvariant.BindsInstance())
	assert.True(t, KindDerivedInvariant.IsSpecification())
	assert.False(t, KindLoopInvariant.IsSpecification())
}

func TestFirst(t *testing.T) {
	var calls []string
	check := func(name string, ok bool) func() bool {
		return func() bool {
			calls = append(calls, name)
			return ok
		}
	}

	preds := []Predicate{
		{Category: Precondition, Check: check("p1", true), Label: "p1"},
		{Category: Postcondition, Check: check("q1", false), Label: "q1"},
		{Category: Precondition, Check: check("p2", false), Label: "p2"},
		{Category: Precondition, Check: check("p3", false), Label: "p3"},
	}

	f := First(preds, Precondition)
	require.NotNil(t, f)
	assert.Equal(t, Precondition, f.Category)
	assert.Equal(t, "p2", f.Label)
	assert.False(t, f.Sticky)
	assert.Equal(t, []string{"p1", "p2"}, calls, "evaluation must stop at the first failure")

	calls = nil
	assert.Nil(t, First(preds, Invariant))
	assert.Empty(t, calls)
}

func TestFirst_NilCheckHolds(t *testing.T) {
	preds := []Predicate{{Category: Invariant}}
	assert.Nil(t, First(preds, Invariant))
}

func TestCount(t *testing.T) {
	preds := []Predicate{
		{Category: Precondition},
		{Category: Invariant},
		{Category: Precondition},
	}
	assert.Equal(t, 2, Count(preds, Precondition))
	assert.Equal(t, 1, Count(preds, Invariant))
	assert.Equal(t, 0, Count(preds, Postcondition))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "", Label(nil))
	assert.Equal(t, "a", Label([]string{"a", "b"}))
	assert.Equal(t, "b", Label([]string{"", "b"}))
}

func declare() Site {
	return Here(0)
}

func TestSite_Location(t *testing.T) {
	s := declare()
	require.NotZero(t, s)

	loc := s.Location()
	assert.True(t, loc.Known())
	assert.True(t, strings.HasSuffix(loc.File, "clause_test.go"), "file = %s", loc.File)
	assert.Contains(t, loc.Function, "TestSite_Location")
	assert.Greater(t, loc.Line, 0)
	assert.Contains(t, loc.String(), "clause_test.go:")
}

func TestSite_Zero(t *testing.T) {
	loc := Site(0).Location()
	assert.False(t, loc.Known())
	assert.Equal(t, "unknown location", loc.String())
}
