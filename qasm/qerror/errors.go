// Package qerror defines the closed error hierarchy raised by the qasm
// lexer and parser.
package qerror

// QasmError is the root of every lexer/parser diagnostic.
type QasmError struct {
	Kind string
	Msg  string
}

func (e *QasmError) Error() string {
	if e.Msg == "" {
		return e.Kind
	}
	return e.Kind + ": " + e.Msg
}

func newf(kind, msg string) *QasmError { return &QasmError{Kind: kind, Msg: msg} }

// UnsupportedVersion is raised when the OPENQASM header names a version not
// in the implementation's whitelist.
func UnsupportedVersion(msg string) *QasmError { return newf("UnsupportedVersion", msg) }

// InvalidVersionError is raised when the token following OPENQASM is not a
// real-number literal.
func InvalidVersionError(msg string) *QasmError { return newf("InvalidVersionError", msg) }

// QasmIOError is the base of end-of-input diagnostics.
func QasmIOError(msg string) *QasmError { return newf("QasmIOError", msg) }

// EndOfCodeError is raised by the lexer when the input ends inside a
// filename literal. A parser production cut short by end of input reports
// the kind of the token it expected instead (e.g. MissingSemicolonError).
func EndOfCodeError(msg string) *QasmError { return newf("EndOfCodeError", msg) }

// QasmSyntaxError is the base of structural syntax diagnostics.
func QasmSyntaxError(msg string) *QasmError { return newf("QasmSyntaxError", msg) }

// MissingSemicolonError is raised when a statement is not terminated by ';'.
func MissingSemicolonError(msg string) *QasmError { return newf("MissingSemicolonError", msg) }

// MissingIdentifierError is raised where an identifier was expected.
func MissingIdentifierError(msg string) *QasmError { return newf("MissingIdentifierError", msg) }

// MissingIntegerError is raised where an integer literal was expected.
func MissingIntegerError(msg string) *QasmError { return newf("MissingIntegerError", msg) }

// MissingRealError is raised where a real-number literal was expected.
func MissingRealError(msg string) *QasmError { return newf("MissingRealError", msg) }

// MalformedExpressionError is raised for unexpected symbols or token
// mismatches the parser cannot otherwise classify, including the gap at
// parenthesized gate parameter lists.
func MalformedExpressionError(msg string) *QasmError { return newf("MalformedExpressionError", msg) }

// Is reports whether err carries the named error kind, so callers can do
// `if qerror.Is(err, "MissingSemicolonError")` without a type switch.
func Is(err error, kind string) bool {
	qe, ok := err.(*QasmError)
	return ok && qe.Kind == kind
}
