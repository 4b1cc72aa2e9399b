package stabilizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qasmplay/qc/simulator"
)

func TestNewZeroStateIsDeterministicallyZero(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(2)
	for q := 0; q < 2; q++ {
		bit, err := b.Measure(q, simulator.BasisZ)
		require.NoError(err)
		assert.Equal(0, bit)
	}
}

func TestApplyXFlipsDeterministicOutcome(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(1)
	require.NoError(b.ApplyGate("x", 0))
	bit, err := b.Measure(0, simulator.BasisZ)
	require.NoError(err)
	assert.Equal(1, bit)
}

func TestApplyHTwiceReturnsToZero(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(1)
	require.NoError(b.ApplyGate("h", 0))
	require.NoError(b.ApplyGate("h", 0))
	bit, err := b.Measure(0, simulator.BasisZ)
	require.NoError(err)
	assert.Equal(0, bit)
}

func TestBellStateMeasurementsAreCorrelated(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	for trial := int64(0); trial < 20; trial++ {
		b := New(2)
		b.SetSeed(trial)
		require.NoError(b.ApplyGate("h", 0))
		require.NoError(b.ApplyGate("cx", 0, 1))

		bit0, err := b.Measure(0, simulator.BasisZ)
		require.NoError(err)
		bit1, err := b.Measure(1, simulator.BasisZ)
		require.NoError(err)
		assert.Equal(bit0, bit1, "Bell pair measurements must agree")
	}
}

func TestApplyCZIsSelfInverse(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(2)
	require.NoError(b.ApplyGate("x", 0))
	require.NoError(b.ApplyGate("cz", 0, 1))
	require.NoError(b.ApplyGate("cz", 0, 1))

	bit0, err := b.Measure(0, simulator.BasisZ)
	require.NoError(err)
	assert.Equal(1, bit0)
	bit1, err := b.Measure(1, simulator.BasisZ)
	require.NoError(err)
	assert.Equal(0, bit1)
}

func TestApplySwapExchangesState(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(2)
	require.NoError(b.ApplyGate("x", 0))
	require.NoError(b.ApplyGate("swap", 0, 1))

	bit0, err := b.Measure(0, simulator.BasisZ)
	require.NoError(err)
	assert.Equal(0, bit0)
	bit1, err := b.Measure(1, simulator.BasisZ)
	require.NoError(err)
	assert.Equal(1, bit1)
}

func TestApplyTIsRejected(t *testing.T) {
	require := require.New(t)
	b := New(1)
	require.Error(b.ApplyGate("t", 0))
}

func TestMeasureRejectsNonZBasis(t *testing.T) {
	require := require.New(t)
	b := New(1)
	_, err := b.Measure(0, simulator.BasisX)
	require.Error(err)
}

func TestMeasureAllBigEndianOrdering(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(2)
	require.NoError(b.ApplyGate("x", 1))
	out, err := b.MeasureAll(simulator.BasisZ)
	require.NoError(err)
	assert.Equal("10", out)
}

func TestApplyGateOutOfBoundsQubit(t *testing.T) {
	require := require.New(t)
	b := New(1)
	require.Error(b.ApplyGate("x", 5))
}
