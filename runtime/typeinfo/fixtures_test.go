package typeinfo

import (
	"errors"
	"fmt"
)

// myClass mirrors the demo type: a default and a three-argument constructor,
// three read/write properties, one read-only property and two methods.
type myClass struct {
	ID          int
	MyProperty1 string
	MyProperty2 string
	myProperty  string
}

const myClassID TypeID = "fixture.MyClass"

func myClassBuilder() *TypeBuilder {
	strings3 := []ParameterDescriptor{Param("id", "int"), Param("myProperty1", "string"), Param("myProperty2", "string")}
	return Define[myClass]("fixture", "MyClass").
		Public().
		DefaultConstructor().
		Constructor(strings3, func(args []any) (any, error) {
			id, err := Arg[int](args, 0)
			if err != nil {
				return nil, err
			}
			p1, err := Arg[string](args, 1)
			if err != nil {
				return nil, err
			}
			p2, err := Arg[string](args, 2)
			if err != nil {
				return nil, err
			}
			return &myClass{ID: id, MyProperty1: p1, MyProperty2: p2, myProperty: fmt.Sprintf("%s with %s.", p1, p2)}, nil
		}).
		Method("GetMyProperty", "string", nil, BindMethod(func(c *myClass, _ []any) (any, error) {
			return c.myProperty, nil
		})).
		Method("GetMyPropertyWithWord", "string", []ParameterDescriptor{Param("word", "string")},
			BindMethod(func(c *myClass, args []any) (any, error) {
				word, err := Arg[string](args, 0)
				if err != nil {
					return nil, err
				}
				return word + " " + c.myProperty, nil
			})).
		Property("Id", "int",
			BindGetter(func(c *myClass) int { return c.ID }),
			BindSetter(func(c *myClass, v int) { c.ID = v })).
		Property("MyProperty1", "string",
			BindGetter(func(c *myClass) string { return c.MyProperty1 }),
			BindSetter(func(c *myClass, v string) { c.MyProperty1 = v })).
		Property("MyProperty2", "string",
			BindGetter(func(c *myClass) string { return c.MyProperty2 }),
			BindSetter(func(c *myClass, v string) { c.MyProperty2 = v })).
		Property("MyProperty", "string",
			BindGetter(func(c *myClass) string { return c.myProperty }), nil).
		Tag("My").
		Tag("MyWithField", Field("name", "my custom attribute"))
}

// failing exposes members whose bodies fail in every supported way.
type failing struct{ secret string }

var errBoom = errors.New("boom")

func failingBuilder() *TypeBuilder {
	return Define[failing]("fixture", "Failing").
		Constructor([]ParameterDescriptor{Param("ok", "bool")}, func(args []any) (any, error) {
			ok, err := Arg[bool](args, 0)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, errBoom
			}
			return &failing{}, nil
		}).
		Constructor([]ParameterDescriptor{Param("a", "int"), Param("b", "int")}, func([]any) (any, error) {
			panic("constructor exploded")
		}).
		Method("Fail", "", nil, BindMethod(func(*failing, []any) (any, error) { return nil, errBoom })).
		Method("Panic", "", nil, BindMethod(func(*failing, []any) (any, error) { panic("method exploded") })).
		Property("Secret", "string", nil, BindSetter(func(f *failing, v string) { f.secret = v }))
}

func newFixtureRegistry(t interface{ Fatalf(string, ...any) }) *Registry {
	r := NewRegistry()
	for _, b := range []*TypeBuilder{myClassBuilder(), failingBuilder()} {
		if _, err := r.Register(b.ID(), b.Build); err != nil {
			t.Fatalf("register %s: %v", b.ID(), err)
		}
	}
	return r
}
