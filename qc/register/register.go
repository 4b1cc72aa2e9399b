// Package register models the quantum and classical register files a
// compiled circuit addresses.
package register

import "github.com/kegliz/qasmplay/qc/qcerr"

// Kind distinguishes a quantum register (holds amplitudes in the backend)
// from a classical one (holds measured bits for conditionals and output).
type Kind int

const (
	Quantum Kind = iota
	Classical
)

// Register is a named, sized block carved out of the global qubit or bit
// index space. Offset is the register's first absolute index; a reference
// `reg[i]` resolves to Offset+i.
type Register struct {
	Name   string
	Size   int
	Kind   Kind
	Offset int
}

// Contains reports whether the local index i is a valid offset into the
// register (0 <= i < Size).
func (r Register) Contains(i int) bool { return i >= 0 && i < r.Size }

// Absolute translates a local index into the flat qubit/bit index space.
func (r Register) Absolute(i int) int { return r.Offset + i }

// File is an ordered collection of registers of one kind, preserving
// declaration order — the executor walks this order in reverse to
// concatenate outcome bits when it reports each shot's result string.
type File struct {
	regs   []Register
	byName map[string]int // name -> index into regs
	next   int             // next free absolute offset
}

// NewFile returns an empty register file.
func NewFile() *File {
	return &File{byName: make(map[string]int)}
}

// Declare adds a new register of the given size, returning it with its
// Offset filled in. The name must not already exist in this file; a
// duplicate is rejected with a RegisterError.
func (f *File) Declare(name string, size int, kind Kind) (Register, error) {
	if _, exists := f.byName[name]; exists {
		return Register{}, qcerr.RegisterError("register " + name + " is already declared")
	}
	r := Register{Name: name, Size: size, Kind: kind, Offset: f.next}
	f.regs = append(f.regs, r)
	f.byName[name] = len(f.regs) - 1
	f.next += size
	return r, nil
}

// Lookup finds a previously declared register by name.
func (f *File) Lookup(name string) (Register, bool) {
	i, ok := f.byName[name]
	if !ok {
		return Register{}, false
	}
	return f.regs[i], true
}

// All returns every register in declaration order.
func (f *File) All() []Register { return f.regs }

// Width is the total number of qubits/bits declared across the file.
func (f *File) Width() int { return f.next }
