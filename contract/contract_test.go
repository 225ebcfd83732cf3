package contract_test

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/contracts/contract"
)

func raise(t *testing.T) {
	t.Helper()
	tok := contract.Install(contract.Raise{})
	t.Cleanup(tok.Release)
}

func TestInstall_RestoresPrevious(t *testing.T) {
	before := contract.Default().Handler()

	tok := contract.Install(contract.Raise{})
	assert.IsType(t, contract.Raise{}, contract.Default().Handler())

	inner := contract.Install(contract.NewLog(nil))
	assert.IsType(t, &contract.Log{}, contract.Default().Handler())

	inner.Release()
	assert.IsType(t, contract.Raise{}, contract.Default().Handler())

	tok.Release()
	assert.Equal(t, before, contract.Default().Handler())
}

func TestCatch_ErrorsAs(t *testing.T) {
	raise(t)

	err := contract.Catch(func() { NewAccount(0) })
	require.NotNil(t, err)
	assert.Equal(t, contract.KindConstructor, err.Kind)
	assert.Equal(t, contract.Precondition, err.Category)
	assert.Equal(t, "bal > 0", err.Label)

	var wrapped error = fmt.Errorf("open: %w", err)
	var cerr *contract.Error
	require.True(t, errors.As(wrapped, &cerr))
	assert.True(t, errors.Is(wrapped, contract.ErrViolation))
	assert.Equal(t, "example_test.go", filepath.Base(cerr.Location().File))
}

func TestPrivateRegistry(t *testing.T) {
	var out bytes.Buffer
	reg := contract.NewRegistry(contract.HandlerFunc(func(r *contract.Report) {
		r.Format(&out)
	}))

	contract.Func().Using(reg).Post(func() bool { return false }, "never").Enter().Exit()
	assert.Contains(t, out.String(), "CONTRACT VIOLATION: postcondition")
	assert.Contains(t, out.String(), "never")
}

func TestRun_Broken(t *testing.T) {
	var reports int
	reg := contract.NewRegistry(contract.HandlerFunc(func(*contract.Report) { reports++ }))

	a := &Account{balance: 0}
	err := contract.Method(&a.Tracker, accountInvariant.For(a)).Using(reg).Run(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, contract.Broken, a.State())
	assert.Equal(t, 2, reports, "entry failure, then the sticky replay on exit")

	ran := false
	err = contract.Method(&a.Tracker, accountInvariant.For(a)).Using(reg).Run(func() error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, contract.ErrBroken)
	assert.False(t, ran)
	assert.Equal(t, 3, reports)
}

func TestDtor(t *testing.T) {
	raise(t)

	a := NewAccount(10)
	closeAccount := func() {
		defer contract.Dtor(&a.Tracker, accountInvariant.For(a)).
			Post(func() bool { return a.balance < 0 }, "balance < 0").
			Enter().Exit()
		a.balance -= 100
	}
	assert.NotPanics(t, closeAccount)
}

func TestInstrument(t *testing.T) {
	promReg := prometheus.NewRegistry()
	m, err := contract.Instrument(contract.Raise{}, promReg)
	require.NoError(t, err)

	tok := contract.Install(m)
	t.Cleanup(tok.Release)

	_ = contract.Catch(func() { NewAccount(-5) })
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Collector().WithLabelValues("constructor", "precondition")))
}

func TestGetInfo(t *testing.T) {
	raise(t)

	info := contract.GetInfo()
	assert.Equal(t, contract.Version, info.Version)
	assert.Equal(t, "violation.Raise", info.Handler)
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		want string
		ok   bool
	}{
		{"v0.1.0", true},
		{"0.1.0", true},
		{"v0.1", true},
		{"v0.0.9", true},
		{"v0.1.1", false},
		{"v1.0.0", false},
		{"latest", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.ok, contract.Compatible(tt.want))
		})
	}
}

func TestVersionConstants(t *testing.T) {
	assert.Equal(t, fmt.Sprintf("%d.%d.%d", contract.VersionMajor, contract.VersionMinor, contract.VersionPatch), contract.Version)
}
