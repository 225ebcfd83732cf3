package invariant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/contracts/internal/contract/clause"
)

func holds() Bound {
	return func() *clause.Failure { return nil }
}

func fails(label string) Bound {
	return func() *clause.Failure {
		return &clause.Failure{Category: clause.Invariant, Label: label}
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unchecked", Unchecked.String())
	assert.Equal(t, "sound", Sound.String())
	assert.Equal(t, "broken", Broken.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestTracker_ZeroValue(t *testing.T) {
	var tr Tracker
	assert.Equal(t, Unchecked, tr.State())
	assert.Nil(t, tr.Cause())
	assert.False(t, tr.Broken())
}

func TestTracker_Transitions(t *testing.T) {
	tests := []struct {
		name  string
		steps []Bound
		want  State
	}{
		{"unchecked to sound", []Bound{holds()}, Sound},
		{"sound stays sound", []Bound{holds(), holds(), holds()}, Sound},
		{"unchecked to broken", []Bound{fails("x")}, Broken},
		{"sound to broken", []Bound{holds(), fails("x")}, Broken},
		{"broken is absorbing", []Bound{fails("x"), holds(), holds()}, Broken},
		{"nil eval holds", []Bound{nil}, Sound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Tracker
			for _, step := range tt.steps {
				tr.Check(step)
			}
			assert.Equal(t, tt.want, tr.State())
		})
	}
}

// TestTracker_StickyBroken verifies that a broken tracker never evaluates
// predicates again and keeps citing the original failure.
func TestTracker_StickyBroken(t *testing.T) {
	var tr Tracker

	f := tr.Check(fails("rate >= 0"))
	require.NotNil(t, f)
	assert.False(t, f.Sticky)
	assert.Equal(t, "rate >= 0", f.Label)

	evaluated := false
	replay := tr.Check(func() *clause.Failure {
		evaluated = true
		return nil
	})

	require.NotNil(t, replay)
	assert.False(t, evaluated, "broken tracker must not re-evaluate")
	assert.True(t, replay.Sticky)
	assert.Equal(t, clause.Invariant, replay.Category)
	assert.Equal(t, "rate >= 0", replay.Label)

	cause := tr.Cause()
	require.NotNil(t, cause)
	assert.False(t, cause.Sticky, "stored cause is the original failure")
}

func TestTracker_Nil(t *testing.T) {
	var tr *Tracker
	assert.Equal(t, Unchecked, tr.State())
	assert.Nil(t, tr.Check(nil))
	assert.Nil(t, tr.Check(holds()))

	f := tr.Check(fails("local"))
	require.NotNil(t, f)
	assert.Equal(t, "local", f.Label)

	// Without a tracker nothing is remembered.
	assert.Nil(t, tr.Check(holds()))
	assert.Nil(t, tr.Cause())
}
