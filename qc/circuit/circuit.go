// Package circuit compiles a parsed qasm/ast.Program into a flat,
// insertion-ordered list of operations a qc/simulator.Backend can execute.
//
// There is deliberately no dependency-graph or layout stage here; an
// executable program has no notion of parallel timesteps, only the
// sequential order gates were written in.
package circuit

import (
	"github.com/kegliz/qasmplay/qasm/ast"
	"github.com/kegliz/qasmplay/qc/gate"
	"github.com/kegliz/qasmplay/qc/qcerr"
	"github.com/kegliz/qasmplay/qc/register"
)

// Operation is a closed tagged variant over the three things a compiled
// program can ask a backend to do.
type Operation interface {
	operation()
}

// ApplyOperation applies a gate to absolute qubit indices, in the order
// the gate expects them (controls first, then targets, per qc/gate).
type ApplyOperation struct {
	Gate   gate.Gate
	Qubits []int
}

// MeasureOperation measures one qubit into one classical bit.
type MeasureOperation struct {
	Qubit int
	Cbit  int
}

// IfOperation guards Inner on the current integer value of a classical
// register equalling Val. Inner is always an ApplyOperation: the grammar
// only allows a gate application inside an if-block.
type IfOperation struct {
	CReg  string
	Val   int
	Inner ApplyOperation
}

func (ApplyOperation) operation()   {}
func (MeasureOperation) operation() {}
func (IfOperation) operation()      {}

// Circuit is a compiled program: sized register files plus the flat
// operation list to replay against a backend, once per shot.
type Circuit struct {
	QRegs *register.File
	CRegs *register.File
	Ops   []Operation
}

// Compile resolves every instruction in prog against register offsets and
// expands register-broadcast gate applications into single-qubit-index
// operations, taking the Cartesian product of each argument's index list.
func Compile(prog *ast.Program) (*Circuit, error) {
	c := &Circuit{QRegs: register.NewFile(), CRegs: register.NewFile()}
	for _, inst := range prog.Instructions {
		if err := c.compileInstruction(inst); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Circuit) compileInstruction(inst ast.Instruction) error {
	switch v := inst.(type) {
	case ast.QReg:
		_, err := c.QRegs.Declare(v.ID, v.Size, register.Quantum)
		return err
	case ast.CReg:
		_, err := c.CRegs.Declare(v.ID, v.Size, register.Classical)
		return err
	case ast.Barrier:
		// A scheduling hint only; the executor has no notion of timesteps
		// to barrier between, so it compiles to nothing.
		return nil
	case ast.Reset:
		return qcerr.NotImplemented("reset is not supported by any backend")
	case ast.Measure:
		ops, err := c.compileMeasure(v)
		if err != nil {
			return err
		}
		c.Ops = append(c.Ops, ops...)
		return nil
	case ast.ApplyGate:
		ops, err := c.compileApply(v)
		if err != nil {
			return err
		}
		c.Ops = append(c.Ops, ops...)
		return nil
	case ast.If:
		applyOps, err := c.compileApply(v.Body)
		if err != nil {
			return err
		}
		for _, op := range applyOps {
			c.Ops = append(c.Ops, IfOperation{CReg: v.CReg, Val: v.Val, Inner: op.(ApplyOperation)})
		}
		return nil
	case ast.Gate, ast.Opaque, ast.Include:
		// Declarations only; gate bodies are never inlined (non-goal) and
		// opaque/include carry no executable semantics here.
		return nil
	}
	return qcerr.NotImplemented("unrecognised instruction")
}

// resolveArg expands a single register reference into the absolute index
// list it denotes: one index if it names an element, every index in the
// register if it names the register as a whole.
func (c *Circuit) resolveArg(file *register.File, ref ast.RegisterRef) ([]int, error) {
	reg, ok := file.Lookup(ref.ID)
	if !ok {
		return nil, qcerr.RegisterError("undeclared register " + ref.ID)
	}
	if ref.Whole() {
		idxs := make([]int, reg.Size)
		for i := 0; i < reg.Size; i++ {
			idxs[i] = reg.Absolute(i)
		}
		return idxs, nil
	}
	if !reg.Contains(ref.Idx) {
		return nil, qcerr.OutOfBoundsError(ref.ID, ref.Idx, reg.Size)
	}
	return []int{reg.Absolute(ref.Idx)}, nil
}

// cartesian returns the Cartesian product of the given index lists, one
// combination per output row, preserving the input order of columns.
func cartesian(lists [][]int) [][]int {
	if len(lists) == 0 {
		return nil
	}
	combos := [][]int{{}}
	for _, list := range lists {
		var next [][]int
		for _, combo := range combos {
			for _, v := range list {
				row := append(append([]int(nil), combo...), v)
				next = append(next, row)
			}
		}
		combos = next
	}
	return combos
}

func (c *Circuit) compileApply(v ast.ApplyGate) ([]Operation, error) {
	g, err := gate.Factory(v.Name)
	if err != nil {
		return nil, qcerr.NotImplemented(err.Error())
	}
	lists := make([][]int, len(v.Args))
	for i, arg := range v.Args {
		idxs, err := c.resolveArg(c.QRegs, arg)
		if err != nil {
			return nil, err
		}
		lists[i] = idxs
	}
	combos := cartesian(lists)
	ops := make([]Operation, 0, len(combos))
	for _, qubits := range combos {
		ops = append(ops, ApplyOperation{Gate: g, Qubits: qubits})
	}
	return ops, nil
}

func (c *Circuit) compileMeasure(v ast.Measure) ([]Operation, error) {
	qIdxs, err := c.resolveArg(c.QRegs, v.Q)
	if err != nil {
		return nil, err
	}
	cIdxs, err := c.resolveArg(c.CRegs, v.C)
	if err != nil {
		return nil, err
	}
	if len(qIdxs) != len(cIdxs) {
		return nil, qcerr.MeasureError("quantum and classical argument spans differ in length")
	}
	ops := make([]Operation, len(qIdxs))
	for i := range qIdxs {
		ops[i] = MeasureOperation{Qubit: qIdxs[i], Cbit: cIdxs[i]}
	}
	return ops, nil
}
