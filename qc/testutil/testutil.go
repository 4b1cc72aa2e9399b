// Package testutil centralises test configuration and common fixtures
// shared across qc package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kegliz/qasmplay/qasm/parser"
	"github.com/kegliz/qasmplay/qc/circuit"
)

const (
	DefaultTestTimeout = 10 * time.Second
	LongTestTimeout    = 30 * time.Second

	DefaultShots = 1024
	SmallShots   = 100
	LargeShots   = 2048

	// DefaultTolerance is a 10% statistical tolerance for shot-count-based
	// assertions; StrictTolerance is 5% for larger shot counts.
	DefaultTolerance = 0.1
	StrictTolerance  = 0.05
)

// TestConfig bundles the parameters a histogram-driven statistical test
// scales its tolerances by.
type TestConfig struct {
	Shots     int
	Workers   int
	Timeout   time.Duration
	Tolerance float64
}

var (
	QuickTestConfig = TestConfig{
		Shots:     SmallShots,
		Workers:   4,
		Timeout:   DefaultTestTimeout,
		Tolerance: DefaultTolerance,
	}

	StandardTestConfig = TestConfig{
		Shots:     DefaultShots,
		Workers:   8,
		Timeout:   DefaultTestTimeout,
		Tolerance: DefaultTolerance,
	}
)

// CompileSource parses and compiles src, failing the test immediately on
// either error.
func CompileSource(t *testing.T, src string) *circuit.Circuit {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err, "failed to parse test source")
	c, err := circuit.Compile(prog)
	require.NoError(t, err, "failed to compile test circuit")
	return c
}

// BellStateSource is the canonical two-qubit entangling circuit used
// throughout the simulator and executor test suites.
const BellStateSource = `
OPENQASM 2.0;
qreg q[2];
creg c[2];
h q[0];
cx q[0],q[1];
measure q -> c;
`

// NewBellStateCircuit compiles BellStateSource.
func NewBellStateCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	return CompileSource(t, BellStateSource)
}

// WithinTolerance reports whether got is within tol of want, where tol is
// interpreted as a fraction of total (e.g. 0.1 == 10%).
func WithinTolerance(got, want, total, tol float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol*total
}
