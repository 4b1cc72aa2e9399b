package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndCreate(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	r := NewBackendRegistry()
	calledWith := -1
	require.NoError(r.Register("fake", func(n int) Backend {
		calledWith = n
		return nil
	}))

	_, err := r.Create("fake", 3)
	require.Error(err) // factory returns nil Backend, Create rejects it
	assert.Equal(3, calledWith)
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	require := require.New(t)

	r := NewBackendRegistry()
	factory := func(n int) Backend { return nil }
	require.NoError(r.Register("dup", factory))
	require.Error(r.Register("dup", factory))
}

func TestRegistryRejectsEmptyNameOrNilFactory(t *testing.T) {
	require := require.New(t)

	r := NewBackendRegistry()
	require.Error(r.Register("", func(n int) Backend { return nil }))
	require.Error(r.Register("x", nil))
}

func TestRegistryUnknownBackend(t *testing.T) {
	require := require.New(t)

	r := NewBackendRegistry()
	_, err := r.Create("missing", 1)
	require.Error(err)
}

func TestRegistryListAndUnregister(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	r := NewBackendRegistry()
	require.NoError(r.Register("a", func(n int) Backend { return nil }))
	require.NoError(r.Register("b", func(n int) Backend { return nil }))
	assert.ElementsMatch([]string{"a", "b"}, r.ListBackends())

	assert.True(r.Unregister("a"))
	assert.False(r.Unregister("a"))
	assert.Equal([]string{"b"}, r.ListBackends())
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	assert := assert.New(t)

	r := NewBackendRegistry()
	factory := func(n int) Backend { return nil }
	r.MustRegister("once", factory)
	assert.Panics(func() { r.MustRegister("once", factory) })
}

func TestBasisString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("z", BasisZ.String())
	assert.Equal("x", BasisX.String())
	assert.Equal("y", BasisY.String())
}
