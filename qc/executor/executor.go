// Package executor replays a compiled circuit across many shots and
// accumulates an empirical measurement histogram, using a static-partition
// worker pool that runs over any registered simulator.Backend.
package executor

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/kegliz/qasmplay/qc/circuit"
	"github.com/kegliz/qasmplay/qc/qcerr"
	"github.com/kegliz/qasmplay/qc/register"
	"github.com/kegliz/qasmplay/qc/simulator"
)

// Seedable is implemented by backends whose PRNG can be reseeded per shot.
// Backends that don't implement it (e.g. the itsu cross-validation
// backend, which defers to itsubaki/q's own global source) simply run
// unseeded.
type Seedable interface {
	SetSeed(seed int64)
}

// Metrics reports outcome statistics for one Run call.
type Metrics struct {
	Shots      int
	Failed     int64
	Elapsed    time.Duration
	FirstError error
}

// Executor runs a compiled circuit for a configured number of shots
// against a named backend.
type Executor struct {
	Backend string
	Shots   int
	Workers int
	Seed    int64
	Log     zerolog.Logger
}

// New returns an Executor with the given configuration. A Workers value
// of 0 defaults to runtime.NumCPU().
func New(backend string, shots, workers int, seed int64, log zerolog.Logger) *Executor {
	return &Executor{Backend: backend, Shots: shots, Workers: workers, Seed: seed, Log: log}
}

// Run executes c for e.Shots shots across a static partition of e.Workers
// goroutines and returns the resulting outcome histogram.
func (e *Executor) Run(c *circuit.Circuit) (map[string]int, Metrics, error) {
	start := time.Now()

	shots := e.Shots
	if shots < 1 {
		return nil, Metrics{}, qcerr.NotImplemented("shots must be at least 1")
	}
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > shots {
		workers = shots
	}

	per := shots / workers
	extra := shots % workers

	e.Log.Info().
		Int("shots", shots).
		Int("workers", workers).
		Str("backend", e.Backend).
		Int("qubits", c.QRegs.Width()).
		Int("clbits", c.CRegs.Width()).
		Msg("executor: starting run")

	hist := make(map[string]int, shots)
	var mu sync.Mutex
	var failed atomic.Int64
	errChan := make(chan error, workers)
	var shotCounter atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		cnt := per
		if w < extra {
			cnt++
		}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < n; i++ {
				shotSeed := e.Seed + shotCounter.Add(1)
				key, err := e.runOnce(c, shotSeed)
				if err != nil {
					failed.Add(1)
					select {
					case errChan <- err:
					default:
					}
					continue
				}
				mu.Lock()
				hist[key]++
				mu.Unlock()
			}
		}(cnt)
	}
	wg.Wait()
	close(errChan)

	var firstErr error
	for err := range errChan {
		if firstErr == nil {
			firstErr = err
		}
	}

	metrics := Metrics{Shots: shots, Failed: failed.Load(), Elapsed: time.Since(start), FirstError: firstErr}
	if firstErr != nil {
		e.Log.Warn().Err(firstErr).Int64("failed", failed.Load()).Msg("executor: run finished with errors")
	} else {
		e.Log.Info().Dur("elapsed", metrics.Elapsed).Msg("executor: run finished")
	}
	return hist, metrics, firstErr
}

// runOnce plays the circuit once against a fresh backend instance,
// applying gates, resolving if-guards against the classical bits
// measured so far, and returning the outcome string.
func (e *Executor) runOnce(c *circuit.Circuit, seed int64) (string, error) {
	backend, err := simulator.CreateBackend(e.Backend, c.QRegs.Width())
	if err != nil {
		return "", err
	}
	if seedable, ok := backend.(Seedable); ok {
		seedable.SetSeed(seed)
	}

	cbits := make([]byte, c.CRegs.Width())
	for i := range cbits {
		cbits[i] = '0'
	}

	for _, op := range c.Ops {
		if err := applyOperation(backend, op, cbits, c.CRegs); err != nil {
			return "", err
		}
	}

	return outcomeString(cbits, c.CRegs), nil
}

func applyOperation(backend simulator.Backend, op circuit.Operation, cbits []byte, cregs *register.File) error {
	switch v := op.(type) {
	case circuit.ApplyOperation:
		return backend.ApplyGate(v.Gate.Name(), v.Qubits...)
	case circuit.MeasureOperation:
		bit, err := backend.Measure(v.Qubit, simulator.BasisZ)
		if err != nil {
			return err
		}
		cbits[v.Cbit] = byte('0' + bit)
		return nil
	case circuit.IfOperation:
		reg, ok := cregs.Lookup(v.CReg)
		if !ok {
			return qcerr.RegisterError("undeclared classical register " + v.CReg)
		}
		if classicalValue(cbits, reg) != v.Val {
			return nil
		}
		return backend.ApplyGate(v.Inner.Gate.Name(), v.Inner.Qubits...)
	default:
		return qcerr.NotImplemented("unrecognised compiled operation")
	}
}

// classicalValue interprets a register's bits little-endian: bit 0 is the
// least significant.
func classicalValue(cbits []byte, reg register.Register) int {
	v := 0
	for i := 0; i < reg.Size; i++ {
		if cbits[reg.Absolute(i)] == '1' {
			v |= 1 << uint(i)
		}
	}
	return v
}

// outcomeString concatenates every classical register's bits in reverse
// declaration order, each register rendered most-significant-bit first,
// matching the convention the backends use for MeasureAll.
func outcomeString(cbits []byte, cregs *register.File) string {
	regs := cregs.All()
	var sb strings.Builder
	for i := len(regs) - 1; i >= 0; i-- {
		reg := regs[i]
		for j := reg.Size - 1; j >= 0; j-- {
			sb.WriteByte(cbits[reg.Absolute(j)])
		}
	}
	return sb.String()
}
