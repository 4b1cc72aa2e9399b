package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qasmplay/qasm/ast"
	"github.com/kegliz/qasmplay/qasm/parser"
	"github.com/kegliz/qasmplay/qc/qcerr"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	return prog
}

func TestCompileBellState(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[2];
creg c[2];
h q[0];
cx q[0],q[1];
measure q -> c;
`)
	c, err := Compile(prog)
	require.NoError(err)
	assert.Equal(2, c.QRegs.Width())
	assert.Equal(2, c.CRegs.Width())
	require.Len(c.Ops, 4)

	apply0, ok := c.Ops[0].(ApplyOperation)
	require.True(ok)
	assert.Equal("H", apply0.Gate.Name())
	assert.Equal([]int{0}, apply0.Qubits)

	apply1, ok := c.Ops[1].(ApplyOperation)
	require.True(ok)
	assert.Equal("CNOT", apply1.Gate.Name())
	assert.Equal([]int{0, 1}, apply1.Qubits)

	m0, ok := c.Ops[2].(MeasureOperation)
	require.True(ok)
	assert.Equal(0, m0.Qubit)
	assert.Equal(0, m0.Cbit)

	m1, ok := c.Ops[3].(MeasureOperation)
	require.True(ok)
	assert.Equal(1, m1.Qubit)
	assert.Equal(1, m1.Cbit)
}

func TestCompileBroadcastExpandsCartesianProduct(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[3];
creg c[3];
x q;
`)
	c, err := Compile(prog)
	require.NoError(err)
	require.Len(c.Ops, 3)
	for i, op := range c.Ops {
		apply, ok := op.(ApplyOperation)
		require.True(ok)
		assert.Equal("X", apply.Gate.Name())
		assert.Equal([]int{i}, apply.Qubits)
	}
}

func TestCompileIfWrapsApply(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[1];
creg c[1];
if (c==1) x q[0];
`)
	c, err := Compile(prog)
	require.NoError(err)
	require.Len(c.Ops, 1)

	ifOp, ok := c.Ops[0].(IfOperation)
	require.True(ok)
	assert.Equal("c", ifOp.CReg)
	assert.Equal(1, ifOp.Val)
	assert.Equal("X", ifOp.Inner.Gate.Name())
}

func TestCompileOutOfBoundsIndex(t *testing.T) {
	require := require.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[1];
x q[5];
`)
	_, err := Compile(prog)
	require.Error(err)
	require.True(qcerr.Is(err, "OutOfBoundsError"))
}

func TestCompileUndeclaredRegister(t *testing.T) {
	require := require.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[1];
x r[0];
`)
	_, err := Compile(prog)
	require.Error(err)
	require.True(qcerr.Is(err, "RegisterError"))
}

func TestCompileMeasureLengthMismatch(t *testing.T) {
	require := require.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[2];
creg c[1];
measure q -> c;
`)
	_, err := Compile(prog)
	require.Error(err)
	require.True(qcerr.Is(err, "MeasureError"))
}

func TestCompileResetNotImplemented(t *testing.T) {
	require := require.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[1];
reset q[0];
`)
	_, err := Compile(prog)
	require.Error(err)
	require.True(qcerr.Is(err, "NotImplemented"))
}

func TestCompileBarrierIsNoOp(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
qreg q[2];
barrier q;
h q[0];
`)
	c, err := Compile(prog)
	require.NoError(err)
	require.Len(c.Ops, 1)
	apply, ok := c.Ops[0].(ApplyOperation)
	require.True(ok)
	assert.Equal("H", apply.Gate.Name())
}

func TestCompileGateDeclarationNotInlined(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := mustParse(t, `
OPENQASM 2.0;
gate bell a,b { h a; cx a,b; }
qreg q[2];
h q[0];
`)
	c, err := Compile(prog)
	require.NoError(err)
	require.Len(c.Ops, 1)
	apply, ok := c.Ops[0].(ApplyOperation)
	require.True(ok)
	assert.Equal("H", apply.Gate.Name())
}
