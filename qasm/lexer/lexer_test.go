package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qasmplay/qasm/token"
)

func TestNextPunctuationAndKeywords(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	src := `OPENQASM 2.0; qreg q[2]; creg c[2]; h q[0]; CX q[0],q[1]; measure q -> c;`
	l := New(src)

	var got []token.Kind
	for {
		tok, err := l.Next()
		require.NoError(err)
		got = append(got, tok.Kind)
		if tok.Kind == token.EndOfFile {
			break
		}
	}

	want := []token.Kind{
		token.OpenQASM, token.Real, token.Semicolon,
		token.QReg, token.Id, token.LSParen, token.Integer, token.RSParen, token.Semicolon,
		token.CReg, token.Id, token.LSParen, token.Integer, token.RSParen, token.Semicolon,
		token.Id, token.Id, token.LSParen, token.Integer, token.RSParen, token.Semicolon,
		token.Id, token.Id, token.LSParen, token.Integer, token.RSParen, token.Comma,
		token.Id, token.LSParen, token.Integer, token.RSParen, token.Semicolon,
		token.Measure, token.Id, token.Arrow, token.Id, token.Semicolon,
		token.EndOfFile,
	}
	assert.Equal(want, got)
}

func TestNextRealAndInteger(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	l := New("3.14159 42")
	tok, err := l.Next()
	require.NoError(err)
	assert.Equal(token.Real, tok.Kind)
	assert.InDelta(3.14159, tok.Num, 1e-9)

	tok, err = l.Next()
	require.NoError(err)
	assert.Equal(token.Integer, tok.Kind)
	assert.Equal(42, tok.Int())
}

func TestNextComment(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	l := New("// a comment\nqreg")
	tok, err := l.Next()
	require.NoError(err)
	assert.Equal(token.QReg, tok.Kind)
}

func TestNextFilename(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	l := New(`include "qelib1.inc";`)
	tok, err := l.Next()
	require.NoError(err)
	assert.Equal(token.Include, tok.Kind)

	tok, err = l.Next()
	require.NoError(err)
	assert.Equal(token.Filename, tok.Kind)
	assert.Equal("qelib1.inc", tok.Text)
}

func TestNextUnterminatedFilename(t *testing.T) {
	require := require.New(t)

	l := New(`"unterminated`)
	_, err := l.Next()
	require.Error(err)
}

func TestNextIllegal(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	l := New("$")
	tok, err := l.Next()
	require.NoError(err)
	assert.Equal(token.Illegal, tok.Kind)
}

func TestAllDrainsToEOF(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	toks, err := All(New("qreg q[1];"))
	require.NoError(err)
	require.NotEmpty(toks)
	assert.Equal(token.EndOfFile, toks[len(toks)-1].Kind)
}
