package gate

import "strings"

// Gate is the *minimal* contract each quantum gate must fulfil.
// The interface is tiny on purpose so the compiler and simulators
// can depend on it without pulling in graphical or param APIs.
type Gate interface {
	Name() string       // canonical name e.g. "H", "CNOT"
	QubitSpan() int     // how many qubits it acts on
	DrawSymbol() string // single-char/fallback symbol, kept for diagnostics
	Targets() []int     // Relative indices of target qubits (within the span)
	Controls() []int    // Relative indices of control qubits (within the span)
}

// Factory returns an immutable gate by its OPENQASM name or a common alias.
//
//	g, _ := gate.Factory("cx")  // -> same instance as CNOT()
//
// The required set is i, x, y, z, h, s, sdg, t, cx, cy, cz, swap. Toffoli
// and fredkin are kept around as extensions of the table; a program that
// calls ccx or cswap compiles to them, but no simulator backend implements
// them, so such a program fails with NotImplemented when it runs.
func Factory(name string) (Gate, error) {
	switch norm(name) {
	case "i", "id":
		return I(), nil
	case "h":
		return H(), nil
	case "x":
		return X(), nil
	case "y":
		return Y(), nil
	case "z":
		return Z(), nil
	case "s":
		return S(), nil
	case "sdg":
		return Sdg(), nil
	case "t":
		return T(), nil
	case "swap":
		return Swap(), nil
	case "cx", "cnot":
		return CNOT(), nil
	case "cy":
		return CY(), nil
	case "cz":
		return CZ(), nil
	case "ccx", "toffoli":
		return Toffoli(), nil
	case "fredkin", "cswap":
		return Fredkin(), nil
	case "m", "measure", "meas":
		return Measure(), nil
	}
	return nil, ErrUnknownGate{name}
}

// ErrUnknownGate is returned by Factory when the label isn't recognised.
type ErrUnknownGate struct{ Name string }

func (e ErrUnknownGate) Error() string { return "gate: unknown gate " + e.Name }

// helpers --------------------------------------------------------------

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
