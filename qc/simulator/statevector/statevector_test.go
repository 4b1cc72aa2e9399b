package statevector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kegliz/qasmplay/qc/qcerr"
	"github.com/kegliz/qasmplay/qc/simulator"
)

func norm(probs []float64) float64 {
	var sum float64
	for _, p := range probs {
		sum += p
	}
	return sum
}

func TestNewStartsAtZeroState(t *testing.T) {
	assert := assert.New(t)
	b := New(2)
	probs := b.Probabilities()
	assert.InDelta(1.0, probs[0], tolerance)
	for i := 1; i < len(probs); i++ {
		assert.InDelta(0.0, probs[i], tolerance)
	}
}

func TestApplyXTwiceIsIdentity(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(1)
	require.NoError(b.ApplyGate("x", 0))
	require.NoError(b.ApplyGate("x", 0))
	probs := b.Probabilities()
	assert.InDelta(1.0, probs[0], tolerance)
	assert.InDelta(0.0, probs[1], tolerance)
}

func TestApplyHTwiceIsIdentity(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(1)
	require.NoError(b.ApplyGate("h", 0))
	require.NoError(b.ApplyGate("h", 0))
	probs := b.Probabilities()
	assert.InDelta(1.0, probs[0], tolerance)
	assert.InDelta(0.0, probs[1], tolerance)
}

func TestApplySAndSdgCancel(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(1)
	require.NoError(b.ApplyGate("h", 0))
	require.NoError(b.ApplyGate("s", 0))
	require.NoError(b.ApplyGate("sdg", 0))
	require.NoError(b.ApplyGate("h", 0))
	probs := b.Probabilities()
	assert.InDelta(1.0, probs[0], tolerance)
	assert.InDelta(0.0, probs[1], tolerance)
}

func TestBellStateProducesMaximalEntanglementProbabilities(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(2)
	require.NoError(b.ApplyGate("h", 0))
	require.NoError(b.ApplyGate("cx", 0, 1))
	probs := b.Probabilities()

	assert.InDelta(0.5, probs[0], tolerance) // |00>
	assert.InDelta(0.0, probs[1], tolerance) // |01>
	assert.InDelta(0.0, probs[2], tolerance) // |10>
	assert.InDelta(0.5, probs[3], tolerance) // |11>
	assert.InDelta(1.0, norm(probs), tolerance)
}

func TestMeasureCollapsesAndRenormalises(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(1)
	require.NoError(b.ApplyGate("x", 0))
	outcome, err := b.Measure(0, simulator.BasisZ)
	require.NoError(err)
	assert.Equal(1, outcome)
	probs := b.Probabilities()
	assert.InDelta(1.0, probs[1], tolerance)
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

func TestApplyGateUnknownReturnsNotImplemented(t *testing.T) {
	require := require.New(t)
	b := New(3)
	err := b.ApplyGate("toffoli", 0, 1, 2)
	require.Error(err)
	require.True(qcerr.Is(err, "NotImplemented"))
}

func TestSeedDeterminism(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	run := func(seed int64) string {
		b := New(1)
		b.SetSeed(seed)
		require.NoError(b.ApplyGate("h", 0))
		out, err := b.MeasureAll(simulator.BasisZ)
		require.NoError(err)
		return out
	}

	a := run(42)
	b := run(42)
	assert.Equal(a, b)
}

func TestProbabilitiesSumToOneAfterManyGates(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	b := New(3)
	require.NoError(b.ApplyGate("h", 0))
	require.NoError(b.ApplyGate("h", 1))
	require.NoError(b.ApplyGate("cx", 0, 2))
	require.NoError(b.ApplyGate("cz", 1, 2))
	require.NoError(b.ApplyGate("swap", 0, 1))
	probs := b.Probabilities()
	assert.InDelta(1.0, norm(probs), 1e-6)
}
