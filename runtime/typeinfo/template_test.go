package typeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Typed(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))

	c, err := New[*myClass](inv, 3, "Test5", "Test6")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)
	assert.Equal(t, "Test5 with Test6.", c.myProperty)

	v, err := New[myClass](inv)
	require.NoError(t, err)
	assert.Equal(t, myClass{}, v)
}

func TestNew_UnregisteredType(t *testing.T) {
	inv := NewInvoker(NewRegistry())

	_, err := New[*myClass](inv)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAs(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))

	c, err := CreateAs[*myClass](inv, myClassID, 1, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a", c.MyProperty1)

	_, err = CreateAs[*failing](inv, myClassID)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = CreateAs[string](inv, myClassID)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), "string")

	_, err = CreateAs[*myClass](inv, myClassID, 1, 2, 3, 4)
	assert.ErrorIs(t, err, ErrNoMatchingConstructor)
}

func TestAs(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))
	inst, err := inv.Construct(myClassID, 1, "a", "b")
	require.NoError(t, err)

	p, err := As[*myClass](inst)
	require.NoError(t, err)
	assert.Same(t, inst.Value(), p)

	v, err := As[myClass](inst)
	require.NoError(t, err)
	assert.Equal(t, 1, v.ID)

	_, err = As[*myClass](nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplate_DefaultInvoker(t *testing.T) {
	defer Reset()
	b := myClassBuilder()
	_, err := Register(b.ID(), b.Build)
	require.NoError(t, err)

	c, err := New[*myClass](nil, 1, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, "x with y.", c.myProperty)
}
