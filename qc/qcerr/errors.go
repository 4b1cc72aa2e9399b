// Package qcerr defines the closed error hierarchy raised while compiling
// and executing a circuit.
package qcerr

// CircuitError is the root of every compile/run-time circuit diagnostic.
type CircuitError struct {
	Kind string
	Msg  string
}

func (e *CircuitError) Error() string {
	if e.Msg == "" {
		return e.Kind
	}
	return e.Kind + ": " + e.Msg
}

func newf(kind, msg string) *CircuitError { return &CircuitError{Kind: kind, Msg: msg} }

// RegisterError is the base of register-resolution diagnostics.
func RegisterError(msg string) *CircuitError { return newf("RegisterError", msg) }

// OutOfBoundsError is raised when a register index falls outside [0, size).
func OutOfBoundsError(reg string, idx, size int) *CircuitError {
	return newf("OutOfBoundsError", "index out of bounds for register "+reg)
}

// MeasureError is raised when a measure instruction's quantum and classical
// argument spans don't agree in length.
func MeasureError(msg string) *CircuitError { return newf("MeasureError", msg) }

// NotImplemented is raised for a recognised but unsupported construct —
// calls to gates outside the built-in table (user-declared gates are never
// inlined), reset, non-Z measurement bases, and gates a backend does not
// implement (such as t under the Clifford backend) all raise this.
func NotImplemented(msg string) *CircuitError { return newf("NotImplemented", msg) }

// Is reports whether err carries the named error kind.
func Is(err error, kind string) bool {
	ce, ok := err.(*CircuitError)
	return ok && ce.Kind == kind
}
