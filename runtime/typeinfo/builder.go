package typeinfo

import (
	"fmt"
	"reflect"
	"strings"
)

// Builder produces the descriptor for a type. The registry calls it at most
// once per TypeID.
type Builder func() (*TypeDescriptor, error)

// Prefixes of the accessor methods synthesized for properties.
const (
	GetterPrefix = "get_"
	SetterPrefix = "set_"
)

// TypeBuilder declares the members of a type. Declaration order of every
// member kind is preserved in the built descriptor.
//
// Example:
//
//	b := typeinfo.Define[Point]("geo", "Point").
//		Public().
//		DefaultConstructor().
//		Property("X", "int",
//			typeinfo.BindGetter(func(p *Point) int { return p.X }),
//			typeinfo.BindSetter(func(p *Point, v int) { p.X = v })).
//		Tag("Serializable")
//	desc, err := typeinfo.Register(b.ID(), b.Build)
type TypeBuilder struct {
	namespace    string
	name         string
	flags        TypeFlags
	constructors []ConstructorDescriptor
	methods      []MethodDescriptor
	properties   []PropertyDescriptor
	tags         []TagRecord
	goType       reflect.Type
	factory      func() any
	problems     []string
}

// NewBuilder starts a declarative type with no linked Go type.
func NewBuilder(namespace, name string) *TypeBuilder {
	return &TypeBuilder{namespace: namespace, name: name}
}

// Define starts a type linked to the Go type T. Instances are *T values and
// the zero value of T serves as the default construction path.
func Define[T any](namespace, name string) *TypeBuilder {
	b := NewBuilder(namespace, name)
	b.goType = reflect.TypeOf((*T)(nil)).Elem()
	b.flags.ValueType = isValueKind(b.goType.Kind())
	if b.goType.Kind() == reflect.Interface {
		b.flags.Abstract = true
	} else {
		b.factory = func() any { return new(T) }
	}
	return b
}

// ID returns the identifier the built descriptor will carry.
func (b *TypeBuilder) ID() TypeID { return NewTypeID(b.namespace, b.name) }

// Public marks the type as visible outside its namespace.
func (b *TypeBuilder) Public() *TypeBuilder { b.flags.Public = true; return b }

// Abstract marks the type as not directly constructible.
func (b *TypeBuilder) Abstract() *TypeBuilder { b.flags.Abstract = true; return b }

// Generic marks the type as a generic template or instantiation.
func (b *TypeBuilder) Generic() *TypeBuilder { b.flags.Generic = true; return b }

// Enum marks the type as an enumeration.
func (b *TypeBuilder) Enum() *TypeBuilder { b.flags.Enum = true; return b }

// ValueType overrides the value-semantics flag.
func (b *TypeBuilder) ValueType(v bool) *TypeBuilder { b.flags.ValueType = v; return b }

// DefaultConstructor declares a zero-argument constructor backed by the
// default factory. Only valid for types started with Define.
func (b *TypeBuilder) DefaultConstructor() *TypeBuilder {
	if b.factory == nil {
		b.problems = append(b.problems, "default constructor requires a linked Go type")
		return b
	}
	factory := b.factory
	b.constructors = append(b.constructors, ConstructorDescriptor{
		Parameters: []ParameterDescriptor{},
		fn:         func([]any) (any, error) { return factory(), nil },
	})
	return b
}

// Constructor declares a constructor overload.
func (b *TypeBuilder) Constructor(params []ParameterDescriptor, fn ConstructorFunc) *TypeBuilder {
	if fn == nil {
		b.problems = append(b.problems, fmt.Sprintf("constructor #%d has no body", len(b.constructors)))
	}
	b.constructors = append(b.constructors, ConstructorDescriptor{
		Parameters: cloneParams(params),
		fn:         fn,
	})
	return b
}

// Method declares a method overload. returns is the result type name; empty
// means no result.
func (b *TypeBuilder) Method(name, returns string, params []ParameterDescriptor, fn MethodFunc) *TypeBuilder {
	if name == "" {
		b.problems = append(b.problems, "method with empty name")
	}
	if fn == nil {
		b.problems = append(b.problems, fmt.Sprintf("method %s has no body", name))
	}
	b.methods = append(b.methods, MethodDescriptor{
		Name:       name,
		ReturnType: returns,
		Parameters: cloneParams(params),
		fn:         fn,
	})
	return b
}

// Property declares a property. Either accessor may be nil, not both. A
// special get_<name> and/or set_<name> method is synthesized for each
// accessor present.
func (b *TypeBuilder) Property(name, typeName string, get GetterFunc, set SetterFunc) *TypeBuilder {
	switch {
	case name == "":
		b.problems = append(b.problems, "property with empty name")
	case get == nil && set == nil:
		b.problems = append(b.problems, fmt.Sprintf("property %s has no accessors", name))
	}
	for _, p := range b.properties {
		if p.Name == name {
			b.problems = append(b.problems, fmt.Sprintf("duplicate property %s", name))
		}
	}

	b.properties = append(b.properties, PropertyDescriptor{
		Name:     name,
		Type:     typeName,
		CanRead:  get != nil,
		CanWrite: set != nil,
		get:      get,
		set:      set,
	})

	if get != nil {
		b.methods = append(b.methods, MethodDescriptor{
			Name:       GetterPrefix + name,
			ReturnType: typeName,
			Parameters: []ParameterDescriptor{},
			Special:    true,
			fn:         func(target any, _ []any) (any, error) { return get(target) },
		})
	}
	if set != nil {
		b.methods = append(b.methods, MethodDescriptor{
			Name:       SetterPrefix + name,
			Parameters: []ParameterDescriptor{{Name: "value", Type: typeName}},
			Special:    true,
			fn:         func(target any, args []any) (any, error) { return nil, set(target, args[0]) },
		})
	}
	return b
}

// Tag attaches a tag record. Tags keep attachment order.
func (b *TypeBuilder) Tag(name string, fields ...TagField) *TypeBuilder {
	if name == "" {
		b.problems = append(b.problems, "tag with empty name")
	}
	b.tags = append(b.tags, cloneTag(TagRecord{Name: name, Fields: fields}))
	return b
}

// Tags attaches several prepared tag records.
func (b *TypeBuilder) Tags(tags ...TagRecord) *TypeBuilder {
	for _, t := range tags {
		b.Tag(t.Name, t.Fields...)
	}
	return b
}

// Build validates the declaration and returns a frozen descriptor. The
// builder may keep being used afterwards without affecting the result.
func (b *TypeBuilder) Build() (*TypeDescriptor, error) {
	id := b.ID()
	if b.name == "" {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: id, Member: "empty type name"}
	}
	if len(b.problems) > 0 {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: id, Member: strings.Join(b.problems, "; ")}
	}

	d := &TypeDescriptor{
		id:           id,
		name:         b.name,
		namespace:    b.namespace,
		flags:        b.flags,
		constructors: make([]ConstructorDescriptor, len(b.constructors)),
		methods:      make([]MethodDescriptor, len(b.methods)),
		properties:   make([]PropertyDescriptor, len(b.properties)),
		tags:         make([]TagRecord, len(b.tags)),
		goType:       b.goType,
		factory:      b.factory,
	}
	for i, c := range b.constructors {
		c.Parameters = cloneParams(c.Parameters)
		d.constructors[i] = c
	}
	for i, m := range b.methods {
		m.Parameters = cloneParams(m.Parameters)
		d.methods[i] = m
	}
	copy(d.properties, b.properties)
	for i, t := range b.tags {
		d.tags[i] = cloneTag(t)
	}
	return d, nil
}

func isValueKind(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	}
	return true
}
