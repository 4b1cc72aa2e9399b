// Package token defines the closed set of lexical classes produced by the
// qasm lexer.
package token

// Kind is a closed enumeration of lexical classes. Two tokens compare equal
// by Kind alone; payloads (Num/Text) are inspected separately.
type Kind int

const (
	Illegal Kind = iota
	EndOfFile

	// Literals
	Real
	Integer
	Id
	Filename

	// Syntax
	OpenQASM
	Semicolon
	Comma
	LParen
	RParen
	LSParen
	RSParen
	LCParen
	RCParen
	Arrow
	Equals

	// Mathematical expressions (lexed only; qasm/parser has no expression
	// grammar and rejects non-empty gate parameter lists)
	Plus
	Minus
	Times
	Divide
	Power
	Sin
	Cos
	Tan
	Exp
	Ln
	Sqrt
	Pi

	// Reserved words
	QReg
	CReg
	Barrier
	Gate
	Measure
	Reset
	Include
	Opaque
	If
)

var names = map[Kind]string{
	Illegal:   "ILLEGAL",
	EndOfFile: "EOF",
	Real:      "REAL",
	Integer:   "INTEGER",
	Id:        "ID",
	Filename:  "FILENAME",
	OpenQASM:  "OPENQASM",
	Semicolon: ";",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
	LSParen:   "[",
	RSParen:   "]",
	LCParen:   "{",
	RCParen:   "}",
	Arrow:     "->",
	Equals:    "==",
	Plus:      "+",
	Minus:     "-",
	Times:     "*",
	Divide:    "/",
	Power:     "^",
	Sin:       "sin",
	Cos:       "cos",
	Tan:       "tan",
	Exp:       "exp",
	Ln:        "ln",
	Sqrt:      "sqrt",
	Pi:        "pi",
	QReg:      "qreg",
	CReg:      "creg",
	Barrier:   "barrier",
	Gate:      "gate",
	Measure:   "measure",
	Reset:     "reset",
	Include:   "include",
	Opaque:    "opaque",
	If:        "if",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// keywords maps identifier text onto the reserved-word token kind it denotes.
var keywords = map[string]Kind{
	"OPENQASM": OpenQASM,
	"sin":      Sin,
	"cos":      Cos,
	"tan":      Tan,
	"exp":      Exp,
	"ln":       Ln,
	"sqrt":     Sqrt,
	"pi":       Pi,
	"qreg":     QReg,
	"creg":     CReg,
	"barrier":  Barrier,
	"gate":     Gate,
	"measure":  Measure,
	"reset":    Reset,
	"include":  Include,
	"opaque":   Opaque,
	"if":       If,
}

// Token is a tagged variant: Kind plus an optional numeric or string
// payload, plus the raw source text for diagnostics.
type Token struct {
	Kind Kind
	Num  float64 // valid when Kind == Real or Kind == Integer
	Text string  // valid when Kind == Id or Kind == Filename; else the rendered punctuation
}

// Int returns the Integer payload truncated to int.
func (t Token) Int() int { return int(t.Num) }

// Is reports whether the token's Kind matches k. Equality on the tag is the
// intended semantics; payloads are inspected via Num/Text directly.
func (t Token) Is(k Kind) bool { return t.Kind == k }

func (t Token) String() string {
	switch t.Kind {
	case Id, Filename:
		return t.Kind.String() + "(" + t.Text + ")"
	case Real:
		return t.Kind.String()
	case Integer:
		return t.Kind.String()
	default:
		return t.Kind.String()
	}
}

// ResolveIdentifier classifies raw identifier text against the keyword
// table, returning an Id token carrying the text when it is not reserved.
func ResolveIdentifier(text string) Token {
	if k, ok := keywords[text]; ok {
		return Token{Kind: k, Text: text}
	}
	return Token{Kind: Id, Text: text}
}
