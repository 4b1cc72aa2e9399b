// Package itsu wires github.com/itsubaki/q in as a second, independently
// implemented statevector backend. It exists to cross-validate
// qc/simulator/statevector rather than to serve CLI/server requests
// directly: its gate set is whatever itsubaki/q exposes natively, which
// does not cover sdg, t or cy.
package itsu

import (
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/itsubaki/q"
	"github.com/kegliz/qasmplay/qc/qcerr"
	"github.com/kegliz/qasmplay/qc/simulator"
)

// Backend adapts a single github.com/itsubaki/q simulator instance to the
// simulator.Backend contract. Like qc/simulator/statevector.Backend, a
// fresh instance is created per shot.
type Backend struct {
	sim    *q.Q
	qubits []q.Qubit

	mu      sync.RWMutex
	config  map[string]interface{}
	metrics itsuMetrics
	verbose bool
}

type itsuMetrics struct {
	totalExecutions atomic.Int64
	successfulRuns  atomic.Int64
	failedRuns      atomic.Int64
	totalTime       atomic.Int64
	lastError       atomic.Value
	lastRunTime     atomic.Value
}

var supportedGates = []string{"i", "h", "x", "y", "z", "s", "cx", "cz", "swap"}

// New returns a Backend over n qubits in the |0...0> state.
func New(n int) *Backend {
	sim := q.New()
	b := &Backend{
		sim:    sim,
		qubits: sim.ZeroWith(n),
		config: make(map[string]interface{}),
	}
	b.metrics.lastRunTime.Store(time.Time{})
	b.metrics.lastError.Store("")
	return b
}

// Factory adapts New to simulator.BackendFactory for registry registration.
func Factory(n int) simulator.Backend { return New(n) }

func init() {
	simulator.MustRegisterBackend("itsu", Factory)
	simulator.MustRegisterBackend("itsubaki", Factory)
}

func (b *Backend) recordOutcome(start time.Time, err error) {
	b.metrics.totalExecutions.Add(1)
	b.metrics.totalTime.Add(int64(time.Since(start)))
	b.metrics.lastRunTime.Store(start)
	if err != nil {
		b.metrics.failedRuns.Add(1)
		b.metrics.lastError.Store(err.Error())
	} else {
		b.metrics.successfulRuns.Add(1)
	}
}

func (b *Backend) checkQubit(idx int) error {
	if idx < 0 || idx >= len(b.qubits) {
		return qcerr.OutOfBoundsError("qubit", idx, len(b.qubits))
	}
	return nil
}

// ApplyGate dispatches to itsubaki/q's native gate methods.
func (b *Backend) ApplyGate(name string, qubits ...int) error {
	start := time.Now()
	for _, idx := range qubits {
		if err := b.checkQubit(idx); err != nil {
			b.recordOutcome(start, err)
			return err
		}
	}

	var err error
	switch name {
	case "i", "I":
		// identity: nothing to do
	case "h", "H":
		b.sim.H(b.qubits[qubits[0]])
	case "x", "X":
		b.sim.X(b.qubits[qubits[0]])
	case "y", "Y":
		b.sim.Y(b.qubits[qubits[0]])
	case "z", "Z":
		b.sim.Z(b.qubits[qubits[0]])
	case "s", "S":
		b.sim.S(b.qubits[qubits[0]])
	case "cx", "CNOT":
		b.sim.CNOT(b.qubits[qubits[0]], b.qubits[qubits[1]])
	case "cz", "CZ":
		b.sim.CZ(b.qubits[qubits[0]], b.qubits[qubits[1]])
	case "swap", "SWAP":
		b.sim.Swap(b.qubits[qubits[0]], b.qubits[qubits[1]])
	case "sdg", "SDG", "t", "T", "cy", "CY":
		err = qcerr.NotImplemented(fmt.Sprintf("gate %s is not available on the itsu cross-validation backend", name))
	default:
		err = qcerr.NotImplemented("gate not supported by itsu backend: " + name)
	}
	b.recordOutcome(start, err)
	return err
}

// Measure projects target onto the Z basis via itsubaki/q's own
// measurement, which collapses its internal state.
func (b *Backend) Measure(target int, basis simulator.Basis) (int, error) {
	if basis != simulator.BasisZ {
		return 0, qcerr.NotImplemented("itsu backend only supports Z-basis measurement")
	}
	if err := b.checkQubit(target); err != nil {
		return 0, err
	}
	m := b.sim.Measure(b.qubits[target])
	if m.IsOne() {
		return 1, nil
	}
	return 0, nil
}

// MeasureAll measures every qubit in ascending index order and returns a
// big-endian bit string, qubit 0 in the rightmost position.
func (b *Backend) MeasureAll(basis simulator.Basis) (string, error) {
	out := make([]byte, len(b.qubits))
	for idx := range b.qubits {
		bit, err := b.Measure(idx, basis)
		if err != nil {
			return "", err
		}
		out[len(b.qubits)-1-idx] = byte('0' + bit)
	}
	return string(out), nil
}

// BackendProvider implementation.
func (b *Backend) GetBackendInfo() simulator.BackendInfo {
	return simulator.BackendInfo{
		Name:        "Itsu Quantum Simulator",
		Version:     "v0.0.5",
		Description: "Cross-validation backend using github.com/itsubaki/q",
		Vendor:      "itsubaki",
		Capabilities: map[string]bool{
			"metrics_collection": true,
			"configuration":      true,
		},
		Metadata: map[string]string{
			"backend_type": "statevector_simulator",
			"language":     "go",
		},
	}
}

// Configure sets arbitrary options on the backend; "verbose" is
// recognised directly, everything else is stored and returned as-is by
// GetConfiguration.
func (b *Backend) Configure(options map[string]interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, value := range options {
		if key == "verbose" {
			verbose, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid type for 'verbose' option: expected bool, got %T", value)
			}
			b.verbose = verbose
		}
		b.config[key] = value
	}
	return nil
}

func (b *Backend) GetConfiguration() map[string]interface{} {
	b.mu.RLock()
	defer b.mu.RUnlock()
	config := make(map[string]interface{})
	maps.Copy(config, b.config)
	return config
}

func (b *Backend) SetVerbose(verbose bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.verbose = verbose
}

// MetricsCollector implementation.
func (b *Backend) GetMetrics() simulator.ExecutionMetrics {
	totalExec := b.metrics.totalExecutions.Load()
	totalTimeNs := b.metrics.totalTime.Load()

	var avgTime time.Duration
	if totalExec > 0 {
		avgTime = time.Duration(totalTimeNs / totalExec)
	}

	lastErr, _ := b.metrics.lastError.Load().(string)
	lastRun, _ := b.metrics.lastRunTime.Load().(time.Time)

	return simulator.ExecutionMetrics{
		TotalExecutions: totalExec,
		SuccessfulRuns:  b.metrics.successfulRuns.Load(),
		FailedRuns:      b.metrics.failedRuns.Load(),
		AverageTime:     avgTime,
		TotalTime:       time.Duration(totalTimeNs),
		LastError:       lastErr,
		LastRunTime:     lastRun,
	}
}

func (b *Backend) ResetMetrics() {
	b.metrics.totalExecutions.Store(0)
	b.metrics.successfulRuns.Store(0)
	b.metrics.failedRuns.Store(0)
	b.metrics.totalTime.Store(0)
	b.metrics.lastError.Store("")
	b.metrics.lastRunTime.Store(time.Time{})
}

// ValidatingRunner implementation.
func (b *Backend) GetSupportedGates() []string {
	gates := make([]string, len(supportedGates))
	copy(gates, supportedGates)
	return gates
}
