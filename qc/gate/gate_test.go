package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinGates(t *testing.T) {
	tests := []struct {
		name       string
		gate       Gate
		wantName   string
		wantSpan   int
		wantSymbol string
		wantTgts   []int
		wantCtrls  []int
	}{
		{"Identity", I(), "I", 1, "I", []int{0}, []int{}},
		{"Hadamard", H(), "H", 1, "H", []int{0}, []int{}},
		{"PauliX", X(), "X", 1, "X", []int{0}, []int{}},
		{"PauliY", Y(), "Y", 1, "Y", []int{0}, []int{}},
		{"PauliZ", Z(), "Z", 1, "Z", []int{0}, []int{}},
		{"PhaseS", S(), "S", 1, "S", []int{0}, []int{}},
		{"PhaseSdg", Sdg(), "SDG", 1, "S†", []int{0}, []int{}},
		{"PhaseT", T(), "T", 1, "T", []int{0}, []int{}},
		{"Measure", Measure(), "MEASURE", 1, "M", []int{0}, []int{}},
		{"SWAP", Swap(), "SWAP", 2, "×", []int{0, 1}, []int{}},
		{"CNOT", CNOT(), "CNOT", 2, "⊕", []int{1}, []int{0}},
		{"CY", CY(), "CY", 2, "Y", []int{1}, []int{0}},
		{"CZ", CZ(), "CZ", 2, "●", []int{1}, []int{0}},
		{"Toffoli", Toffoli(), "TOFFOLI", 3, "T", []int{2}, []int{0, 1}},
		{"Fredkin", Fredkin(), "FREDKIN", 3, "F", []int{1, 2}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tt.wantName, tt.gate.Name(), "Name mismatch")
			assert.Equal(tt.wantSpan, tt.gate.QubitSpan(), "QubitSpan mismatch")
			assert.Equal(tt.wantSymbol, tt.gate.DrawSymbol(), "DrawSymbol mismatch")
			assert.Equal(tt.wantTgts, tt.gate.Targets(), "Targets mismatch")
			assert.Equal(tt.wantCtrls, tt.gate.Controls(), "Controls mismatch")
		})
	}
}

func TestFactory(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	testCases := []struct {
		alias    string
		expected Gate
	}{
		{"i", I()},
		{"id", I()},
		{"h", H()},
		{" H ", H()},
		{"x", X()},
		{"y", Y()},
		{"z", Z()},
		{"s", S()},
		{"sdg", Sdg()},
		{"t", T()},
		{"swap", Swap()},
		{"SWAP", Swap()},
		{"cx", CNOT()},
		{"cnot", CNOT()},
		{"CNOT", CNOT()},
		{"cy", CY()},
		{"cz", CZ()},
		{"CZ", CZ()},
		{"ccx", Toffoli()},
		{"toffoli", Toffoli()},
		{"fredkin", Fredkin()},
		{"cswap", Fredkin()},
		{"m", Measure()},
		{"measure", Measure()},
		{"meas", Measure()},
	}

	for _, tc := range testCases {
		t.Run("Alias_"+tc.alias, func(t *testing.T) {
			g, err := Factory(tc.alias)
			require.NoError(err, "Factory failed for alias: %s", tc.alias)
			assert.Same(tc.expected, g, "Factory should return singleton instance for alias: %s", tc.alias)
		})
	}
}

func TestFactoryUnknown(t *testing.T) {
	require := require.New(t)
	_, err := Factory("qft")
	require.Error(err)
	var unknown ErrUnknownGate
	require.ErrorAs(err, &unknown)
	require.Equal("qft", unknown.Name)
}
