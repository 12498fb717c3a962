package typeinfo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruct_DefaultPath(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))

	inst, err := inv.Construct(myClassID)
	require.NoError(t, err)
	assert.Equal(t, myClassID, inst.Type())

	for name, want := range map[string]any{"Id": 0, "MyProperty1": "", "MyProperty2": "", "MyProperty": ""} {
		got, err := inv.GetProperty(inst, name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestConstruct_FactoryWithoutDeclaredDefault(t *testing.T) {
	r := NewRegistry()
	b := Define[myClass]("fixture", "OnlyThree").
		Constructor([]ParameterDescriptor{Param("a", "int"), Param("b", "string"), Param("c", "string")},
			func([]any) (any, error) { return &myClass{}, nil })
	_, err := r.Register(b.ID(), b.Build)
	require.NoError(t, err)

	inst, err := NewInvoker(r).Construct(b.ID())
	require.NoError(t, err)
	assert.IsType(t, &myClass{}, inst.Value())
}

func TestConstruct_ArgumentConstructor(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))

	inst, err := inv.Construct(myClassID, 1, "Test1", "Test2")
	require.NoError(t, err)

	got, err := inv.InvokeMethod(inst, "GetMyProperty")
	require.NoError(t, err)
	assert.Equal(t, "Test1 with Test2.", got)

	got, err = inv.InvokeMethod(inst, "GetMyPropertyWithWord", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello Test1 with Test2.", got)

	id, err := inv.GetProperty(inst, "Id")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestConstruct_Errors(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))

	tests := []struct {
		name     string
		id       TypeID
		args     []any
		sentinel error
		cause    error
	}{
		{"unknown type", "fixture.Missing", nil, ErrNotFound, nil},
		{"no four-arg overload", myClassID, []any{1, 2, 3, 4}, ErrNoMatchingConstructor, nil},
		{"no three-arg overload", "fixture.Failing", []any{1, 2, 3}, ErrNoMatchingConstructor, nil},
		{"constructor error", "fixture.Failing", []any{false}, ErrConstructionFailed, errBoom},
		{"constructor panic", "fixture.Failing", []any{1, 2}, ErrConstructionFailed, nil},
		{"argument not converted", myClassID, []any{int64(1), "a", "b"}, ErrConstructionFailed, ErrArgumentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := inv.Construct(tt.id, tt.args...)
			require.Error(t, err)
			assert.Nil(t, inst)
			assert.ErrorIs(t, err, tt.sentinel)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestConstruct_AbstractType(t *testing.T) {
	r := NewRegistry()
	b := Define[interface{ Area() float64 }]("fixture", "Shape")
	_, err := r.Register(b.ID(), b.Build)
	require.NoError(t, err)

	_, err = NewInvoker(r).Construct(b.ID())
	assert.ErrorIs(t, err, ErrNoMatchingConstructor)
}

func TestConstruct_FirstDeclaredOverloadWins(t *testing.T) {
	r := NewRegistry()
	b := Define[myClass]("fixture", "Overloaded").
		Constructor([]ParameterDescriptor{Param("s", "string")}, func([]any) (any, error) {
			return &myClass{MyProperty1: "first"}, nil
		}).
		Constructor([]ParameterDescriptor{Param("n", "int")}, func([]any) (any, error) {
			return &myClass{MyProperty1: "second"}, nil
		}).
		Method("Pick", "string", []ParameterDescriptor{Param("s", "string")}, func(any, []any) (any, error) {
			return "first", nil
		}).
		Method("Pick", "string", []ParameterDescriptor{Param("n", "int")}, func(any, []any) (any, error) {
			return "second", nil
		}).
		Method("Pick", "string", nil, func(any, []any) (any, error) {
			return "nullary", nil
		})
	_, err := r.Register(b.ID(), b.Build)
	require.NoError(t, err)
	inv := NewInvoker(r)

	inst, err := inv.Construct(b.ID(), 42)
	require.NoError(t, err)
	assert.Equal(t, "first", inst.Value().(*myClass).MyProperty1)

	got, err := inv.InvokeMethod(inst, "Pick", 42)
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = inv.InvokeMethod(inst, "Pick")
	require.NoError(t, err)
	assert.Equal(t, "nullary", got)
}

func TestProperties_LateBoundRoundTrip(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))

	inst, err := inv.Construct(myClassID)
	require.NoError(t, err)

	require.NoError(t, inv.SetProperty(inst, "Myproperty1", "Test7"))
	got, err := inv.GetProperty(inst, "Myproperty1")
	require.NoError(t, err)
	assert.Equal(t, "Test7", got)

	exact, err := inv.GetProperty(inst, "MyProperty1")
	require.NoError(t, err)
	assert.Equal(t, "Test7", exact)

	other, err := inv.Construct(myClassID)
	require.NoError(t, err)
	untouched, err := inv.GetProperty(other, "MyProperty1")
	require.NoError(t, err)
	assert.Equal(t, "", untouched)
}

func TestProperties_Errors(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))
	inst, err := inv.Construct(myClassID)
	require.NoError(t, err)
	failing, err := inv.Construct("fixture.Failing", true)
	require.NoError(t, err)

	_, err = inv.GetProperty(inst, "Nope")
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	err = inv.SetProperty(inst, "Nope", 1)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	err = inv.SetProperty(inst, "MyProperty", "x")
	assert.ErrorIs(t, err, ErrPropertyReadOnly)

	_, err = inv.GetProperty(failing, "Secret")
	assert.ErrorIs(t, err, ErrPropertyWriteOnly)
	assert.NoError(t, inv.SetProperty(failing, "Secret", "s"))

	err = inv.SetProperty(inst, "Id", "not an int")
	assert.ErrorIs(t, err, ErrInvocationFailed)
	assert.ErrorIs(t, err, ErrArgumentType)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "set_Id", e.Member)

	_, err = inv.GetProperty(nil, "Id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvokeMethod_Errors(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))
	inst, err := inv.Construct(myClassID, 1, "a", "b")
	require.NoError(t, err)
	failing, err := inv.Construct("fixture.Failing", true)
	require.NoError(t, err)

	_, err = inv.InvokeMethod(inst, "NoSuchMethod")
	assert.ErrorIs(t, err, ErrMethodNotFound)

	_, err = inv.InvokeMethod(inst, "GetMyProperty", "extra")
	assert.ErrorIs(t, err, ErrArityMismatch)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 1, e.Arity)

	_, err = inv.InvokeMethod(failing, "Fail")
	assert.ErrorIs(t, err, ErrInvocationFailed)
	assert.ErrorIs(t, err, errBoom)

	_, err = inv.InvokeMethod(failing, "Panic")
	assert.ErrorIs(t, err, ErrInvocationFailed)
	assert.Contains(t, err.Error(), "method exploded")

	_, err = inv.InvokeMethod(inst, "GetMyPropertyWithWord", 7)
	assert.ErrorIs(t, err, ErrArgumentType)
}

func TestInvokeMethod_SpecialAccessors(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))
	inst, err := inv.Construct(myClassID, 1, "a", "b")
	require.NoError(t, err)

	_, err = inv.InvokeMethod(inst, "set_MyProperty2", "z")
	require.NoError(t, err)

	got, err := inv.InvokeMethod(inst, "get_MyProperty2")
	require.NoError(t, err)
	assert.Equal(t, "z", got)

	_, err = inv.InvokeMethod(inst, "set_MyProperty", "z")
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestInvokeMethod_CaseInsensitiveFallback(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))
	inst, err := inv.Construct(myClassID, 1, "a", "b")
	require.NoError(t, err)

	got, err := inv.InvokeMethod(inst, "getmyproperty")
	require.NoError(t, err)
	assert.Equal(t, "a with b.", got)
}

func TestInvoker_ArgumentsAreCopied(t *testing.T) {
	r := NewRegistry()
	b := NewBuilder("fixture", "Mutator").
		Constructor(nil, func([]any) (any, error) { return &struct{}{}, nil }).
		Method("Clobber", "", []ParameterDescriptor{Param("x", "int")}, func(_ any, args []any) (any, error) {
			args[0] = "clobbered"
			return nil, nil
		})
	_, err := r.Register(b.ID(), b.Build)
	require.NoError(t, err)
	inv := NewInvoker(r)

	inst, err := inv.Construct(b.ID())
	require.NoError(t, err)
	args := []any{1}
	_, err = inv.InvokeMethod(inst, "Clobber", args...)
	require.NoError(t, err)
	assert.Equal(t, 1, args[0])
}

func TestInvoker_ProcessWideWrappers(t *testing.T) {
	defer Reset()
	b := myClassBuilder()
	_, err := Register(b.ID(), b.Build)
	require.NoError(t, err)

	inst, err := Construct(myClassID, 2, "Test3", "Test4")
	require.NoError(t, err)
	require.NoError(t, SetProperty(inst, "Id", 9))

	id, err := GetProperty(inst, "Id")
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	got, err := InvokeMethod(inst, "GetMyProperty")
	require.NoError(t, err)
	assert.Equal(t, "Test3 with Test4.", got)

	assert.Same(t, Default(), NewInvoker(nil).Registry())
}

func TestInstance_Handles(t *testing.T) {
	inv := NewInvoker(newFixtureRegistry(t))
	a, err := inv.Construct(myClassID)
	require.NoError(t, err)
	b, err := inv.Construct(myClassID)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Contains(t, a.String(), string(myClassID)+"#")
}
