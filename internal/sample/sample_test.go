package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

func setup(t *testing.T) (*typeinfo.Registry, *typeinfo.Invoker) {
	t.Helper()
	r := typeinfo.NewRegistry()
	require.NoError(t, Register(r))
	return r, typeinfo.NewInvoker(r)
}

func TestRegister_Idempotent(t *testing.T) {
	r, _ := setup(t)
	before, err := r.Describe(MyClassID)
	require.NoError(t, err)

	require.NoError(t, Register(r))
	after, err := r.Describe(MyClassID)
	require.NoError(t, err)

	assert.Same(t, before, after)
	assert.Equal(t, []typeinfo.TypeID{
		"sample.MyClass", "sample.Point", "sample.Segment", "sample.Quadrant", "sample.Shape",
	}, r.Types())
}

func TestMyClass_Walkthrough(t *testing.T) {
	_, inv := setup(t)

	t.Run("default construction", func(t *testing.T) {
		inst, err := inv.Construct(MyClassID)
		require.NoError(t, err)
		v, err := inv.GetProperty(inst, "MyProperty")
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})

	t.Run("argument construction", func(t *testing.T) {
		inst, err := inv.Construct(MyClassID, 2, "Test3", "Test4")
		require.NoError(t, err)
		c := inst.Value().(*MyClass)
		assert.Equal(t, 2, c.ID)
		assert.Equal(t, "Test3 with Test4.", c.MyProperty())
	})

	t.Run("typed template", func(t *testing.T) {
		c, err := typeinfo.New[*MyClass](inv, 3, "Test5", "Test6")
		require.NoError(t, err)
		assert.Equal(t, "Test5", c.MyProperty1)
	})

	t.Run("late bound property", func(t *testing.T) {
		inst, err := inv.Construct(MyClassID)
		require.NoError(t, err)
		require.NoError(t, inv.SetProperty(inst, "Myproperty1", "Test7"))
		v, err := inv.GetProperty(inst, "Myproperty1")
		require.NoError(t, err)
		assert.Equal(t, "Test7", v)
	})

	t.Run("late bound methods", func(t *testing.T) {
		inst, err := inv.Construct(MyClassID, 4, "Test8", "Test9")
		require.NoError(t, err)
		v, err := inv.InvokeMethod(inst, "GetMyProperty")
		require.NoError(t, err)
		assert.Equal(t, "Test8 with Test9.", v)

		inst, err = inv.Construct(MyClassID, 5, "Test10", "Test11")
		require.NoError(t, err)
		v, err = inv.InvokeMethod(inst, "GetMyPropertyWithWord", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello Test10 with Test11.", v)
	})

	t.Run("tags", func(t *testing.T) {
		tags, err := typeinfo.TagsOfType(inv.Registry(), MyClassID)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "My", tags[0].String())
		assert.Equal(t, `MyWithField(name="my custom attribute")`, tags[1].String())
	})
}

func TestGeometry(t *testing.T) {
	r, inv := setup(t)

	a, err := inv.Construct("sample.Point", 0.0, 0.0)
	require.NoError(t, err)
	b, err := inv.Construct("sample.Point", 3.0, 4.0)
	require.NoError(t, err)

	d, err := inv.InvokeMethod(a, "Distance", *b.Value().(*Point))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-9)

	q, err := inv.InvokeMethod(b, "Quadrant")
	require.NoError(t, err)
	assert.Equal(t, First, q)

	_, err = inv.InvokeMethod(b, "Translate", -6.0, 0.0)
	require.NoError(t, err)
	q, _ = inv.InvokeMethod(b, "Quadrant")
	assert.Equal(t, Second, q)

	_, err = inv.Construct("sample.Point", 1, 2)
	assert.ErrorIs(t, err, typeinfo.ErrArgumentType, "ints are not widened to float64")

	seg, err := inv.Construct("sample.Segment", NewPoint(0, 0), NewPoint(2, 2))
	require.NoError(t, err)
	mid, err := inv.InvokeMethod(seg, "Midpoint")
	require.NoError(t, err)
	assert.Equal(t, NewPoint(1, 1), mid)

	err = inv.SetProperty(seg, "Label", "x")
	assert.ErrorIs(t, err, typeinfo.ErrPropertyReadOnly)

	_, err = inv.Construct("sample.Segment", NewPoint(1, 1), NewPoint(1, 1))
	assert.ErrorIs(t, err, typeinfo.ErrConstructionFailed)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = inv.Construct("sample.Shape")
	assert.ErrorIs(t, err, typeinfo.ErrNoMatchingConstructor)

	quad, err := r.Describe("sample.Quadrant")
	require.NoError(t, err)
	assert.True(t, quad.Flags().Enum)

	point, err := r.Describe("sample.Point")
	require.NoError(t, err)
	assert.True(t, typeinfo.HasTag(point, "Serializable"))
	assert.True(t, point.Flags().ValueType)

	myClass, err := r.Describe(MyClassID)
	require.NoError(t, err)
	assert.Equal(t, typeinfo.TypeFlags{Public: true}, myClass.Flags())
}

func TestGeometry_References(t *testing.T) {
	r, _ := setup(t)

	g, err := typeinfo.QueryReferences(r, "sample.Segment", typeinfo.ReferenceOptions{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []typeinfo.TypeID{"sample.Segment", "sample.Point", "sample.Quadrant"}, g.Nodes)

	// Point.Distance takes a Point
	assert.Equal(t, [][]typeinfo.TypeID{{"sample.Point"}}, typeinfo.DetectCycles(r))
}

func TestQuadrant_String(t *testing.T) {
	assert.Equal(t, "Origin", Origin.String())
	assert.Equal(t, "Fourth", Fourth.String())
	assert.Equal(t, Third, NewPoint(-1, -1).Quadrant())
}
