package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	for _, name := range []string{"ctor", "dtor", "mfun", "derived", "derived-method", "loop"} {
		assert.Contains(t, out, name)
	}
}

func TestRun_All(t *testing.T) {
	out, err := execute(t, "run", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "6 scenarios")
	assert.Contains(t, out, "0 mismatches")
	assert.Contains(t, out, "== ctor: constructor preconditions and postconditions")
	assert.Contains(t, out, "CONTRACT VIOLATION: precondition")
	assert.Contains(t, out, "panic: non-contract failure")
	assert.NotContains(t, out, "MISMATCH")
}

func TestRun_Selected(t *testing.T) {
	out, err := execute(t, "run", "--no-color", "--reports=false", "loop", "dtor")
	require.NoError(t, err)
	assert.Contains(t, out, "2 scenarios, 6 steps, 0 mismatches")
	assert.Contains(t, out, "== loop")
	assert.NotContains(t, out, "== ctor")
	assert.NotContains(t, out, "CONTRACT VIOLATION")
}

func TestRun_Metrics(t *testing.T) {
	out, err := execute(t, "run", "--no-color", "--reports=false", "--metrics", "ctor")
	require.NoError(t, err)
	assert.Contains(t, out, "# TYPE contract_violations_total counter")
	assert.Contains(t, out, `contract_violations_total{category="precondition",kind="constructor"} 1`)
	assert.Contains(t, out, `contract_violations_total{category="postcondition",kind="constructor"} 1`)
}

func TestRun_UnknownScenario(t *testing.T) {
	_, err := execute(t, "run", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "nope"`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "contractdemo version 0.1.0")

	_, err = execute(t, "version", "--require", "v0.1.0")
	assert.NoError(t, err)

	_, err = execute(t, "version", "--require", "v2.0.0")
	assert.Error(t, err)
}
