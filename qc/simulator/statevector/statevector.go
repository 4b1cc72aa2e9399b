// Package statevector implements a dense complex-amplitude backend.
// Gates are applied in-place by iterating amplitude index pairs that
// differ only in the bit the gate acts on, never by building a full
// Kronecker-product matrix.
package statevector

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/kegliz/qasmplay/qc/qcerr"
	"github.com/kegliz/qasmplay/qc/simulator"
)

const tolerance = 1e-9

// invSqrt2 is the common H-gate normalisation factor.
var invSqrt2 = complex(1/math.Sqrt2, 0)

// Backend is a dense statevector simulator over numQubits qubits, starting
// in |0...0>. It is not safe for concurrent use; the executor gives each
// shot its own instance.
type Backend struct {
	numQubits  int
	amplitudes []complex128
	rng        *rand.Rand
}

// New returns a Backend initialised to |0...0> over n qubits.
func New(n int) *Backend {
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1
	return &Backend{numQubits: n, amplitudes: amps, rng: rand.New(rand.NewSource(1))}
}

// Factory adapts New to simulator.BackendFactory for registry registration.
func Factory(n int) simulator.Backend { return New(n) }

func init() {
	simulator.MustRegisterBackend("statevector", Factory)
}

// SetSeed reseeds the backend's PRNG, satisfying the executor's seeding
// convention of one deterministic seed per shot.
func (b *Backend) SetSeed(seed int64) { b.rng = rand.New(rand.NewSource(seed)) }

func (b *Backend) checkQubit(q int) error {
	if q < 0 || q >= b.numQubits {
		return qcerr.OutOfBoundsError("qubit", q, b.numQubits)
	}
	return nil
}

// ApplyGate dispatches to the required gate set: i, x, y, z, h, s, sdg, t,
// cx, cy, cz, swap.
func (b *Backend) ApplyGate(name string, qubits ...int) error {
	for _, q := range qubits {
		if err := b.checkQubit(q); err != nil {
			return err
		}
	}
	switch name {
	case "i", "I":
		return nil
	case "x", "X":
		return b.applyX(qubits[0])
	case "y", "Y":
		return b.applyY(qubits[0])
	case "z", "Z":
		return b.applyZ(qubits[0])
	case "h", "H":
		return b.applyH(qubits[0])
	case "s", "S":
		return b.applyPhase(qubits[0], complex(0, 1))
	case "sdg", "SDG":
		return b.applyPhase(qubits[0], complex(0, -1))
	case "t", "T":
		return b.applyPhase(qubits[0], cmplx.Exp(complex(0, math.Pi/4)))
	case "cx", "CNOT":
		return b.applyControlled(qubits[0], qubits[1], pauliX)
	case "cy", "CY":
		return b.applyControlled(qubits[0], qubits[1], pauliY)
	case "cz", "CZ":
		return b.applyControlledPhase(qubits[0], qubits[1])
	case "swap", "SWAP":
		return b.applySwap(qubits[0], qubits[1])
	default:
		return qcerr.NotImplemented("gate not supported by statevector backend: " + name)
	}
}

func (b *Backend) applyX(q int) error {
	mask := 1 << uint(q)
	for i := 0; i < len(b.amplitudes); i++ {
		if i&mask == 0 {
			j := i | mask
			b.amplitudes[i], b.amplitudes[j] = b.amplitudes[j], b.amplitudes[i]
		}
	}
	return nil
}

func (b *Backend) applyY(q int) error {
	mask := 1 << uint(q)
	i1 := complex(0, 1)
	for i := 0; i < len(b.amplitudes); i++ {
		if i&mask == 0 {
			j := i | mask
			a0, a1 := b.amplitudes[i], b.amplitudes[j]
			b.amplitudes[i] = -i1 * a1
			b.amplitudes[j] = i1 * a0
		}
	}
	return nil
}

func (b *Backend) applyZ(q int) error {
	return b.applyPhase(q, -1)
}

func (b *Backend) applyH(q int) error {
	mask := 1 << uint(q)
	for i := 0; i < len(b.amplitudes); i++ {
		if i&mask == 0 {
			j := i | mask
			a0, a1 := b.amplitudes[i], b.amplitudes[j]
			b.amplitudes[i] = invSqrt2 * (a0 + a1)
			b.amplitudes[j] = invSqrt2 * (a0 - a1)
		}
	}
	return nil
}

// applyPhase multiplies the |1> component of q by phase. Z, S, Sdg and T
// are all diagonal gates differing only in this factor.
func (b *Backend) applyPhase(q int, phase complex128) error {
	mask := 1 << uint(q)
	for i := range b.amplitudes {
		if i&mask != 0 {
			b.amplitudes[i] *= phase
		}
	}
	return nil
}

type pauli func(a0, a1 complex128) (complex128, complex128)

func pauliX(a0, a1 complex128) (complex128, complex128) { return a1, a0 }

func pauliY(a0, a1 complex128) (complex128, complex128) {
	i1 := complex(0, 1)
	return -i1 * a1, i1 * a0
}

func (b *Backend) applyControlled(control, target int, op pauli) error {
	cMask := 1 << uint(control)
	tMask := 1 << uint(target)
	for i := 0; i < len(b.amplitudes); i++ {
		if i&cMask != 0 && i&tMask == 0 {
			j := i | tMask
			b.amplitudes[i], b.amplitudes[j] = op(b.amplitudes[i], b.amplitudes[j])
		}
	}
	return nil
}

func (b *Backend) applyControlledPhase(control, target int) error {
	cMask := 1 << uint(control)
	tMask := 1 << uint(target)
	for i := range b.amplitudes {
		if i&cMask != 0 && i&tMask != 0 {
			b.amplitudes[i] = -b.amplitudes[i]
		}
	}
	return nil
}

func (b *Backend) applySwap(q1, q2 int) error {
	m1 := 1 << uint(q1)
	m2 := 1 << uint(q2)
	for i := range b.amplitudes {
		if i&m1 != 0 && i&m2 == 0 {
			j := (i &^ m1) | m2
			b.amplitudes[i], b.amplitudes[j] = b.amplitudes[j], b.amplitudes[i]
		}
	}
	return nil
}

// Measure projects target onto the Z basis, collapsing and renormalising
// the statevector, using the stride/mask partition of amplitude indices
// into the |0> and |1> subspaces.
func (b *Backend) Measure(target int, basis simulator.Basis) (int, error) {
	if basis != simulator.BasisZ {
		return 0, qcerr.NotImplemented("statevector backend only supports Z-basis measurement")
	}
	if err := b.checkQubit(target); err != nil {
		return 0, err
	}

	mask := 1 << uint(target)
	var probOne float64
	for i, amp := range b.amplitudes {
		if i&mask != 0 {
			probOne += real(amp) * real(amp) + imag(amp) * imag(amp)
		}
	}

	outcome := 0
	if b.rng.Float64() < probOne {
		outcome = 1
	}

	var norm float64
	for i, amp := range b.amplitudes {
		keep := (i & mask) != 0
		if keep == (outcome == 1) {
			norm += real(amp) * real(amp) + imag(amp) * imag(amp)
		} else {
			b.amplitudes[i] = 0
		}
	}
	if norm > tolerance {
		invNorm := complex(1/math.Sqrt(norm), 0)
		for i := range b.amplitudes {
			b.amplitudes[i] *= invNorm
		}
	}
	return outcome, nil
}

// MeasureAll measures every qubit in ascending index order and returns a
// big-endian bit string, qubit 0 in the rightmost position.
func (b *Backend) MeasureAll(basis simulator.Basis) (string, error) {
	out := make([]byte, b.numQubits)
	for q := 0; q < b.numQubits; q++ {
		bit, err := b.Measure(q, basis)
		if err != nil {
			return "", err
		}
		out[b.numQubits-1-q] = byte('0' + bit)
	}
	return string(out), nil
}

// Probabilities returns the Born-rule probability of each computational
// basis state, used by this package's tests to check norm preservation.
func (b *Backend) Probabilities() []float64 {
	probs := make([]float64, len(b.amplitudes))
	for i, amp := range b.amplitudes {
		probs[i] = real(amp) * real(amp) + imag(amp) * imag(amp)
	}
	return probs
}
