// Package sample holds the demonstration types the CLI registers and drives
// through the late-binding engine.
package sample

import (
	"fmt"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// Namespace groups every sample type.
const Namespace = "sample"

// MyClassID identifies MyClass in the registry.
var MyClassID = typeinfo.NewTypeID(Namespace, "MyClass")

// MyClass is the demonstration type: two constructors, three read/write
// properties, one read-only property derived at construction, and two methods.
type MyClass struct {
	ID          int
	MyProperty1 string
	MyProperty2 string

	myProperty string
}

// NewMyClass builds a MyClass and derives its read-only property.
func NewMyClass(id int, myProperty1, myProperty2 string) *MyClass {
	return &MyClass{
		ID:          id,
		MyProperty1: myProperty1,
		MyProperty2: myProperty2,
		myProperty:  fmt.Sprintf("%s with %s.", myProperty1, myProperty2),
	}
}

// MyProperty returns the value derived at construction.
func (c *MyClass) MyProperty() string { return c.myProperty }

// GetMyProperty returns the derived property.
func (c *MyClass) GetMyProperty() string { return c.myProperty }

// GetMyPropertyWithWord prefixes the derived property with word.
func (c *MyClass) GetMyPropertyWithWord(word string) string {
	return word + " " + c.GetMyProperty()
}

// DescribeMyClass declares MyClass with bound accessors.
func DescribeMyClass() *typeinfo.TypeBuilder {
	return typeinfo.Define[MyClass](Namespace, "MyClass").
		Public().
		ValueType(false).
		DefaultConstructor().
		Constructor([]typeinfo.ParameterDescriptor{
			typeinfo.Param("id", "int"),
			typeinfo.Param("myProperty1", "string"),
			typeinfo.Param("myProperty2", "string"),
		}, constructMyClass).
		Method("GetMyProperty", "string", nil,
			typeinfo.BindMethod(func(c *MyClass, _ []any) (any, error) {
				return c.GetMyProperty(), nil
			})).
		Method("GetMyPropertyWithWord", "string",
			[]typeinfo.ParameterDescriptor{typeinfo.Param("word", "string")},
			typeinfo.BindMethod(func(c *MyClass, args []any) (any, error) {
				word, err := typeinfo.Arg[string](args, 0)
				if err != nil {
					return nil, err
				}
				return c.GetMyPropertyWithWord(word), nil
			})).
		Property("Id", "int",
			typeinfo.BindGetter(func(c *MyClass) int { return c.ID }),
			typeinfo.BindSetter(func(c *MyClass, v int) { c.ID = v })).
		Property("MyProperty1", "string",
			typeinfo.BindGetter(func(c *MyClass) string { return c.MyProperty1 }),
			typeinfo.BindSetter(func(c *MyClass, v string) { c.MyProperty1 = v })).
		Property("MyProperty2", "string",
			typeinfo.BindGetter(func(c *MyClass) string { return c.MyProperty2 }),
			typeinfo.BindSetter(func(c *MyClass, v string) { c.MyProperty2 = v })).
		Property("MyProperty", "string",
			typeinfo.BindGetter((*MyClass).MyProperty), nil).
		Tag("My").
		Tag("MyWithField", typeinfo.Field("name", "my custom attribute"))
}

func constructMyClass(args []any) (any, error) {
	id, err := typeinfo.Arg[int](args, 0)
	if err != nil {
		return nil, err
	}
	p1, err := typeinfo.Arg[string](args, 1)
	if err != nil {
		return nil, err
	}
	p2, err := typeinfo.Arg[string](args, 2)
	if err != nil {
		return nil, err
	}
	return NewMyClass(id, p1, p2), nil
}
