// Package parser builds a qasm/ast.Program from a token stream using a
// recursive-descent structure with a two-token lookahead window.
package parser

import (
	"github.com/kegliz/qasmplay/qasm/ast"
	"github.com/kegliz/qasmplay/qasm/lexer"
	"github.com/kegliz/qasmplay/qasm/qerror"
	"github.com/kegliz/qasmplay/qasm/token"
)

// supportedVersions whitelists the OPENQASM header values this parser
// accepts.
var supportedVersions = map[float64]bool{2.0: true}

// Parser consumes tokens from a lexer one at a time, keeping a two-token
// lookahead window.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token
}

// New creates a Parser over src and primes its two-token lookahead window.
func New(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// nextMustBe consumes the current token if it has kind k, else raises a
// MalformedExpressionError naming what was expected.
func (p *Parser) nextMustBe(k token.Kind) (token.Token, error) {
	if !p.cur.Is(k) {
		return token.Token{}, qerror.MalformedExpressionError("expected " + k.String() + ", got " + p.cur.String())
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *Parser) readSemicolon() error {
	if !p.cur.Is(token.Semicolon) {
		return qerror.MissingSemicolonError("expected ';', got " + p.cur.String())
	}
	return p.advance()
}

func (p *Parser) readIdentifier() (string, error) {
	if !p.cur.Is(token.Id) {
		return "", qerror.MissingIdentifierError("expected identifier, got " + p.cur.String())
	}
	text := p.cur.Text
	return text, p.advance()
}

func (p *Parser) readInteger() (int, error) {
	if !p.cur.Is(token.Integer) {
		return 0, qerror.MissingIntegerError("expected integer, got " + p.cur.String())
	}
	v := p.cur.Int()
	return v, p.advance()
}

// readArgument reads `id` or `id[int]` into a RegisterRef. Idx is -1 for
// the whole-register form.
func (p *Parser) readArgument() (ast.RegisterRef, error) {
	id, err := p.readIdentifier()
	if err != nil {
		return ast.RegisterRef{}, err
	}
	if !p.cur.Is(token.LSParen) {
		return ast.RegisterRef{ID: id, Idx: -1}, nil
	}
	if err := p.advance(); err != nil {
		return ast.RegisterRef{}, err
	}
	idx, err := p.readInteger()
	if err != nil {
		return ast.RegisterRef{}, err
	}
	if _, err := p.nextMustBe(token.RSParen); err != nil {
		return ast.RegisterRef{}, err
	}
	return ast.RegisterRef{ID: id, Idx: idx}, nil
}

func (p *Parser) readArgsList() ([]ast.RegisterRef, error) {
	var args []ast.RegisterRef
	arg, err := p.readArgument()
	if err != nil {
		return nil, err
	}
	args = append(args, arg)
	for p.cur.Is(token.Comma) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.readArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *Parser) readIDList() ([]string, error) {
	var ids []string
	id, err := p.readIdentifier()
	if err != nil {
		return nil, err
	}
	ids = append(ids, id)
	for p.cur.Is(token.Comma) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		id, err := p.readIdentifier()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// readParamList consumes an optional `( ... )` parameter list after a gate
// name. Real math-expression parsing is out of scope; an empty pair of
// parens is accepted, anything inside is not.
func (p *Parser) readParamList() ([]string, error) {
	if !p.cur.Is(token.LParen) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Is(token.RParen) {
		return nil, p.advance()
	}
	return nil, qerror.MalformedExpressionError("gate parameter expressions are not implemented")
}

// Parse runs the full grammar: a version header followed by a sequence of
// statements, terminated by end of input.
func Parse(src string) (*ast.Program, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	version, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	prog := &ast.Program{Version: version}
	for !p.cur.Is(token.EndOfFile) {
		inst, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Instructions = append(prog.Instructions, inst)
	}
	return prog, nil
}

func (p *Parser) parseHeader() (float64, error) {
	if !p.cur.Is(token.OpenQASM) {
		return 0, qerror.QasmSyntaxError("missing OPENQASM header")
	}
	if err := p.advance(); err != nil {
		return 0, err
	}
	if !p.cur.Is(token.Real) {
		return 0, qerror.InvalidVersionError("version must be a real-number literal")
	}
	version := p.cur.Num
	if err := p.advance(); err != nil {
		return 0, err
	}
	if err := p.readSemicolon(); err != nil {
		return 0, err
	}
	if !supportedVersions[version] {
		return 0, qerror.UnsupportedVersion("unsupported OPENQASM version")
	}
	return version, nil
}

func (p *Parser) parseStatement() (ast.Instruction, error) {
	switch {
	case p.cur.Is(token.QReg):
		return p.parseReg(true)
	case p.cur.Is(token.CReg):
		return p.parseReg(false)
	case p.cur.Is(token.Barrier):
		return p.parseArgStatement(token.Barrier, func(a ast.RegisterRef) ast.Instruction { return ast.Barrier{Arg: a} })
	case p.cur.Is(token.Reset):
		return p.parseArgStatement(token.Reset, func(a ast.RegisterRef) ast.Instruction { return ast.Reset{Arg: a} })
	case p.cur.Is(token.Measure):
		return p.parseMeasure()
	case p.cur.Is(token.If):
		return p.parseIf()
	case p.cur.Is(token.Opaque):
		return p.parseOpaque()
	case p.cur.Is(token.Gate):
		return p.parseGate()
	case p.cur.Is(token.Include):
		return p.parseInclude()
	case p.cur.Is(token.Id):
		return p.parseApply()
	default:
		return nil, qerror.MalformedExpressionError("unexpected token " + p.cur.String())
	}
}

func (p *Parser) parseReg(quantum bool) (ast.Instruction, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	id, err := p.readIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.nextMustBe(token.LSParen); err != nil {
		return nil, err
	}
	size, err := p.readInteger()
	if err != nil {
		return nil, err
	}
	if _, err := p.nextMustBe(token.RSParen); err != nil {
		return nil, err
	}
	if err := p.readSemicolon(); err != nil {
		return nil, err
	}
	if quantum {
		return ast.QReg{ID: id, Size: size}, nil
	}
	return ast.CReg{ID: id, Size: size}, nil
}

func (p *Parser) parseArgStatement(kind token.Kind, build func(ast.RegisterRef) ast.Instruction) (ast.Instruction, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	arg, err := p.readArgument()
	if err != nil {
		return nil, err
	}
	if err := p.readSemicolon(); err != nil {
		return nil, err
	}
	return build(arg), nil
}

func (p *Parser) parseMeasure() (ast.Instruction, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	q, err := p.readArgument()
	if err != nil {
		return nil, err
	}
	if _, err := p.nextMustBe(token.Arrow); err != nil {
		return nil, err
	}
	c, err := p.readArgument()
	if err != nil {
		return nil, err
	}
	if err := p.readSemicolon(); err != nil {
		return nil, err
	}
	return ast.Measure{Q: q, C: c}, nil
}

func (p *Parser) parseApply() (ast.Instruction, error) {
	name, err := p.readIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.readParamList()
	if err != nil {
		return nil, err
	}
	args, err := p.readArgsList()
	if err != nil {
		return nil, err
	}
	if err := p.readSemicolon(); err != nil {
		return nil, err
	}
	return ast.ApplyGate{Name: name, Params: params, Args: args}, nil
}

func (p *Parser) parseIf() (ast.Instruction, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.nextMustBe(token.LParen); err != nil {
		return nil, err
	}
	creg, err := p.readIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.nextMustBe(token.Equals); err != nil {
		return nil, err
	}
	val, err := p.readInteger()
	if err != nil {
		return nil, err
	}
	if _, err := p.nextMustBe(token.RParen); err != nil {
		return nil, err
	}
	inst, err := p.parseApply()
	if err != nil {
		return nil, err
	}
	return ast.If{CReg: creg, Val: val, Body: inst.(ast.ApplyGate)}, nil
}

func (p *Parser) parseOpaque() (ast.Instruction, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.readIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.readParamList()
	if err != nil {
		return nil, err
	}
	args, err := p.readIDList()
	if err != nil {
		return nil, err
	}
	if err := p.readSemicolon(); err != nil {
		return nil, err
	}
	return ast.Opaque{Name: name, Params: params, Args: args}, nil
}

func (p *Parser) parseGate() (ast.Instruction, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.readIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.readParamList()
	if err != nil {
		return nil, err
	}
	args, err := p.readIDList()
	if err != nil {
		return nil, err
	}
	if _, err := p.nextMustBe(token.LCParen); err != nil {
		return nil, err
	}
	var body []ast.ApplyGate
	for !p.cur.Is(token.RCParen) {
		inst, err := p.parseApply()
		if err != nil {
			return nil, err
		}
		body = append(body, inst.(ast.ApplyGate))
	}
	if _, err := p.nextMustBe(token.RCParen); err != nil {
		return nil, err
	}
	return ast.Gate{Name: name, Params: params, Args: args, Body: body}, nil
}

func (p *Parser) parseInclude() (ast.Instruction, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.cur.Is(token.Filename) {
		return nil, qerror.MalformedExpressionError("expected filename literal after include")
	}
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.readSemicolon(); err != nil {
		return nil, err
	}
	return ast.Include{Filename: name}, nil
}
