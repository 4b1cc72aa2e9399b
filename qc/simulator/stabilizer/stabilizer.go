// Package stabilizer implements a binary symplectic tableau backend for
// the Clifford fragment of the gate set, following the CHP algorithm of
// Aaronson & Gottesman, "Improved Simulation of Stabilizer Circuits"
// (2004). It satisfies the same simulator.Backend contract as
// qc/simulator/statevector, trading universality for O(n^2) scaling on
// Clifford-only circuits.
package stabilizer

import (
	"math/rand"

	"github.com/kegliz/qasmplay/qc/qcerr"
	"github.com/kegliz/qasmplay/qc/simulator"
)

// Backend is a 2n-row binary symplectic tableau: n destabilizer rows
// followed by n stabilizer rows, each row an (x, z, r) triple over n
// qubits. It supports exactly the Clifford subset of the required gate
// set; t has no Clifford decomposition and is rejected.
type Backend struct {
	n   int
	x   [][]bool
	z   [][]bool
	r   []bool
	rng *rand.Rand
}

// New returns a Backend initialised to the all-zero stabilizer state
// |0...0>, whose stabilizer group is generated by Z_0, ..., Z_{n-1}.
func New(n int) *Backend {
	rows := 2 * n
	b := &Backend{
		n:   n,
		x:   make([][]bool, rows),
		z:   make([][]bool, rows),
		r:   make([]bool, rows),
		rng: rand.New(rand.NewSource(1)),
	}
	for i := 0; i < rows; i++ {
		b.x[i] = make([]bool, n)
		b.z[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		b.x[i][i] = true   // destabilizer i generates X_i
		b.z[i+n][i] = true // stabilizer i generates Z_i
	}
	return b
}

// Factory adapts New to simulator.BackendFactory for registry registration.
func Factory(n int) simulator.Backend { return New(n) }

func init() {
	simulator.MustRegisterBackend("clifford", Factory)
}

// SetSeed reseeds the backend's PRNG for the random-outcome branch of
// measurement.
func (b *Backend) SetSeed(seed int64) { b.rng = rand.New(rand.NewSource(seed)) }

func (b *Backend) checkQubit(q int) error {
	if q < 0 || q >= b.n {
		return qcerr.OutOfBoundsError("qubit", q, b.n)
	}
	return nil
}

// ApplyGate dispatches Clifford generators directly and builds the rest
// of the required gate set out of them.
func (b *Backend) ApplyGate(name string, qubits ...int) error {
	for _, q := range qubits {
		if err := b.checkQubit(q); err != nil {
			return err
		}
	}
	switch name {
	case "i", "I":
		return nil
	case "h", "H":
		b.applyH(qubits[0])
	case "s", "S":
		b.applyS(qubits[0])
	case "sdg", "SDG":
		b.applyS(qubits[0])
		b.applyS(qubits[0])
		b.applyS(qubits[0])
	case "x", "X":
		b.applyX(qubits[0])
	case "y", "Y":
		b.applyY(qubits[0])
	case "z", "Z":
		b.applyZ(qubits[0])
	case "cx", "CNOT":
		b.applyCNOT(qubits[0], qubits[1])
	case "cz", "CZ":
		b.applyH(qubits[1])
		b.applyCNOT(qubits[0], qubits[1])
		b.applyH(qubits[1])
	case "cy", "CY":
		b.applyS(qubits[1])
		b.applyS(qubits[1])
		b.applyS(qubits[1])
		b.applyCNOT(qubits[0], qubits[1])
		b.applyS(qubits[1])
	case "swap", "SWAP":
		b.applyCNOT(qubits[0], qubits[1])
		b.applyCNOT(qubits[1], qubits[0])
		b.applyCNOT(qubits[0], qubits[1])
	case "t", "T":
		return qcerr.NotImplemented("t is not a Clifford gate and is unsupported by the stabilizer backend")
	default:
		return qcerr.NotImplemented("gate not supported by stabilizer backend: " + name)
	}
	return nil
}

func (b *Backend) applyH(q int) {
	rows := 2 * b.n
	for i := 0; i < rows; i++ {
		b.r[i] = b.r[i] != (b.x[i][q] && b.z[i][q])
		b.x[i][q], b.z[i][q] = b.z[i][q], b.x[i][q]
	}
}

func (b *Backend) applyS(q int) {
	rows := 2 * b.n
	for i := 0; i < rows; i++ {
		b.r[i] = b.r[i] != (b.x[i][q] && b.z[i][q])
		b.z[i][q] = b.z[i][q] != b.x[i][q]
	}
}

// applyX, applyZ and applyY follow directly from anticommutation: X
// anticommutes with Z components, Z with X components, and Y with both.
func (b *Backend) applyX(q int) {
	rows := 2 * b.n
	for i := 0; i < rows; i++ {
		if b.z[i][q] {
			b.r[i] = !b.r[i]
		}
	}
}

func (b *Backend) applyZ(q int) {
	rows := 2 * b.n
	for i := 0; i < rows; i++ {
		if b.x[i][q] {
			b.r[i] = !b.r[i]
		}
	}
}

func (b *Backend) applyY(q int) {
	rows := 2 * b.n
	for i := 0; i < rows; i++ {
		if b.x[i][q] != b.z[i][q] {
			b.r[i] = !b.r[i]
		}
	}
}

func (b *Backend) applyCNOT(control, target int) {
	rows := 2 * b.n
	for i := 0; i < rows; i++ {
		if b.x[i][control] && b.z[i][target] && (b.x[i][target] == b.z[i][control]) {
			b.r[i] = !b.r[i]
		}
		b.x[i][target] = b.x[i][target] != b.x[i][control]
		b.z[i][control] = b.z[i][control] != b.z[i][target]
	}
}

// g implements the phase-tracking helper from Aaronson & Gottesman §III,
// used by rowsum to combine two Pauli rows.
func g(x1, z1, x2, z2 bool) int {
	switch {
	case !x1 && !z1:
		return 0
	case x1 && z1:
		return b2i(z2) - b2i(x2)
	case x1 && !z1:
		return b2i(z2) * (2*b2i(x2) - 1)
	default: // !x1 && z1
		return b2i(x2) * (1 - 2*b2i(z2))
	}
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}

// rowsum sets row h to the product of row h and row i, following the
// CHP algorithm's sign-tracking rule.
func (b *Backend) rowsum(h, i int) {
	sum := 2 * b2i(b.r[h])
	sum += 2 * b2i(b.r[i])
	for j := 0; j < b.n; j++ {
		sum += g(b.x[i][j], b.z[i][j], b.x[h][j], b.z[h][j])
	}
	sum = ((sum % 4) + 4) % 4
	b.r[h] = sum == 2
	for j := 0; j < b.n; j++ {
		b.x[h][j] = b.x[h][j] != b.x[i][j]
		b.z[h][j] = b.z[h][j] != b.z[i][j]
	}
}

// Measure projects qubit a onto the Z basis following the CHP measurement
// procedure: if some stabilizer row anticommutes with Z_a the outcome is
// random and the tableau is updated in place; otherwise the outcome is
// the deterministic sign recovered from the destabilizers.
func (b *Backend) Measure(target int, basis simulator.Basis) (int, error) {
	if basis != simulator.BasisZ {
		return 0, qcerr.NotImplemented("stabilizer backend only supports Z-basis measurement")
	}
	if err := b.checkQubit(target); err != nil {
		return 0, err
	}

	p := -1
	for i := b.n; i < 2*b.n; i++ {
		if b.x[i][target] {
			p = i
			break
		}
	}

	if p >= 0 {
		for i := 0; i < 2*b.n; i++ {
			if i != p && b.x[i][target] {
				b.rowsum(i, p)
			}
		}
		b.x[p-b.n] = append([]bool(nil), b.x[p]...)
		b.z[p-b.n] = append([]bool(nil), b.z[p]...)
		b.r[p-b.n] = b.r[p]

		for j := 0; j < b.n; j++ {
			b.x[p][j] = false
			b.z[p][j] = false
		}
		b.z[p][target] = true
		outcome := b.rng.Intn(2) == 1
		b.r[p] = outcome
		if outcome {
			return 1, nil
		}
		return 0, nil
	}

	scratchX := make([]bool, b.n)
	scratchZ := make([]bool, b.n)
	scratchR := false
	scratch := &Backend{n: b.n, x: [][]bool{scratchX}, z: [][]bool{scratchZ}, r: []bool{scratchR}}
	for i := 0; i < b.n; i++ {
		if b.x[i][target] {
			combineRow(scratch, 0, b, i+b.n)
		}
	}
	if scratch.r[0] {
		return 1, nil
	}
	return 0, nil
}

// combineRow multiplies dst's row dstRow by src's row srcRow in place,
// reusing the rowsum arithmetic across two distinct tableaux (used only
// for the deterministic-measurement scratch row).
func combineRow(dst *Backend, dstRow int, src *Backend, srcRow int) {
	sum := 2 * b2i(dst.r[dstRow])
	sum += 2 * b2i(src.r[srcRow])
	for j := 0; j < dst.n; j++ {
		sum += g(src.x[srcRow][j], src.z[srcRow][j], dst.x[dstRow][j], dst.z[dstRow][j])
	}
	sum = ((sum % 4) + 4) % 4
	dst.r[dstRow] = sum == 2
	for j := 0; j < dst.n; j++ {
		dst.x[dstRow][j] = dst.x[dstRow][j] != src.x[srcRow][j]
		dst.z[dstRow][j] = dst.z[dstRow][j] != src.z[srcRow][j]
	}
}

// MeasureAll measures every qubit in ascending index order and returns a
// big-endian bit string, qubit 0 in the rightmost position.
func (b *Backend) MeasureAll(basis simulator.Basis) (string, error) {
	out := make([]byte, b.n)
	for q := 0; q < b.n; q++ {
		bit, err := b.Measure(q, basis)
		if err != nil {
			return "", err
		}
		out[b.n-1-q] = byte('0' + bit)
	}
	return string(out), nil
}
