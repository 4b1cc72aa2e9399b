// Package benchmark cross-validates two simulator backends by running the
// same compiled circuit through qc/executor under each and comparing the
// resulting histograms within a statistical tolerance.
package benchmark

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/kegliz/qasmplay/qc/circuit"
	"github.com/kegliz/qasmplay/qc/executor"
	"github.com/kegliz/qasmplay/qc/simulator"
)

// Agreement is the outcome of comparing two backends' histograms for the
// same circuit and shot count.
type Agreement struct {
	BackendA, BackendB string
	HistogramA         map[string]int
	HistogramB         map[string]int
	Shots              int
	Tolerance          float64
	Mismatches         []string

	// InfoA/InfoB, MetricsA/MetricsB and GatesA/GatesB are populated from
	// a fresh, un-run backend instance of each kind via the optional
	// BackendProvider/MetricsCollector/ValidatingRunner capability
	// interfaces; nil/empty when a backend doesn't implement them.
	InfoA, InfoB       *simulator.BackendInfo
	MetricsA, MetricsB *simulator.ExecutionMetrics
	GatesA, GatesB     []string
}

// OK reports whether every outcome bucket of both histograms agreed within
// Tolerance.
func (a Agreement) OK() bool {
	return len(a.Mismatches) == 0
}

// CrossValidate runs c for shots shots against backendA and backendB and
// reports whether their empirical distributions agree within tol (a
// fraction of shots, e.g. 0.1 for 10%). Every outcome string observed by
// either backend is compared; one absent from a histogram counts as zero.
func CrossValidate(c *circuit.Circuit, backendA, backendB string, shots int, seed int64, workers int, tol float64, log zerolog.Logger) (Agreement, error) {
	exA := executor.New(backendA, shots, workers, seed, log)
	histA, _, err := exA.Run(c)
	if err != nil {
		return Agreement{}, fmt.Errorf("backend %q: %w", backendA, err)
	}

	exB := executor.New(backendB, shots, workers, seed, log)
	histB, _, err := exB.Run(c)
	if err != nil {
		return Agreement{}, fmt.Errorf("backend %q: %w", backendB, err)
	}

	outcomes := make(map[string]struct{})
	for k := range histA {
		outcomes[k] = struct{}{}
	}
	for k := range histB {
		outcomes[k] = struct{}{}
	}

	allowed := tol * float64(shots)
	var mismatches []string
	for outcome := range outcomes {
		diff := float64(histA[outcome] - histB[outcome])
		if diff < 0 {
			diff = -diff
		}
		if diff > allowed {
			mismatches = append(mismatches, outcome)
		}
	}
	sort.Strings(mismatches)

	infoA, metricsA, gatesA, err := probe(backendA, c.QRegs.Width())
	if err != nil {
		return Agreement{}, fmt.Errorf("backend %q: %w", backendA, err)
	}
	infoB, metricsB, gatesB, err := probe(backendB, c.QRegs.Width())
	if err != nil {
		return Agreement{}, fmt.Errorf("backend %q: %w", backendB, err)
	}

	return Agreement{
		BackendA:   backendA,
		BackendB:   backendB,
		HistogramA: histA,
		HistogramB: histB,
		Shots:      shots,
		Tolerance:  tol,
		Mismatches: mismatches,
		InfoA:      infoA,
		InfoB:      infoB,
		MetricsA:   metricsA,
		MetricsB:   metricsB,
		GatesA:     gatesA,
		GatesB:     gatesB,
	}, nil
}

// probe instantiates a fresh, never-run backend instance and reads whatever
// descriptive metadata, metrics and gate-support lists it optionally
// exposes through simulator's capability interfaces.
func probe(name string, numQubits int) (*simulator.BackendInfo, *simulator.ExecutionMetrics, []string, error) {
	b, err := simulator.CreateBackend(name, numQubits)
	if err != nil {
		return nil, nil, nil, err
	}
	return simulator.GetBackendInfo(b), simulator.GetMetrics(b), simulator.GetSupportedGates(b), nil
}
