package typeinfo

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// TypeID identifies a registered type. It is the namespace and the type name
// joined by a dot ("sample.MyClass"); a type without a namespace is just its name.
type TypeID string

// NewTypeID joins a namespace and a name into a TypeID.
func NewTypeID(namespace, name string) TypeID {
	if namespace == "" {
		return TypeID(name)
	}
	return TypeID(namespace + "." + name)
}

// Split returns the namespace and name parts of the identifier.
func (id TypeID) Split() (namespace, name string) {
	s := string(id)
	head := s
	if i := strings.Index(s, "["); i >= 0 {
		head = s[:i]
	}
	if i := strings.LastIndex(head, "."); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// String implements fmt.Stringer.
func (id TypeID) String() string { return string(id) }

// TypeFlags classifies a registered type.
type TypeFlags struct {
	Public    bool `json:"public" yaml:"public"`         // Visible outside its namespace
	Abstract  bool `json:"abstract" yaml:"abstract"`     // Cannot be constructed directly
	Generic   bool `json:"generic" yaml:"generic"`       // Generic template or instantiation
	Enum      bool `json:"enum" yaml:"enum"`             // Enumeration of named constants
	ValueType bool `json:"value_type" yaml:"value_type"` // Copied on assignment
}

// ParameterDescriptor describes one positional parameter of a constructor or method.
type ParameterDescriptor struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Param is shorthand for building a ParameterDescriptor.
func Param(name, typeName string) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Type: typeName}
}

// ConstructorFunc creates a new instance value from positional arguments.
type ConstructorFunc func(args []any) (any, error)

// MethodFunc executes a method against target with positional arguments.
type MethodFunc func(target any, args []any) (any, error)

// GetterFunc reads a property from target.
type GetterFunc func(target any) (any, error)

// SetterFunc writes a property on target.
type SetterFunc func(target any, value any) error

// ConstructorDescriptor describes one constructor overload.
type ConstructorDescriptor struct {
	Parameters []ParameterDescriptor `json:"parameters" yaml:"parameters"`

	fn ConstructorFunc
}

// Arity returns the number of parameters the overload accepts.
func (c ConstructorDescriptor) Arity() int { return len(c.Parameters) }

// Signature renders the overload as "Name(type name, ...)".
func (c ConstructorDescriptor) Signature(typeName string) string {
	return typeName + "(" + formatParams(c.Parameters, ", ") + ")"
}

// MethodDescriptor describes one method overload.
type MethodDescriptor struct {
	Name       string                `json:"name" yaml:"name"`
	ReturnType string                `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Parameters []ParameterDescriptor `json:"parameters" yaml:"parameters"`
	// Special marks accessors synthesized for properties (get_X / set_X).
	Special bool `json:"special,omitempty" yaml:"special,omitempty"`

	fn MethodFunc
}

// Arity returns the number of parameters the overload accepts.
func (m MethodDescriptor) Arity() int { return len(m.Parameters) }

// Signature renders the method as "ReturnType Name(type name,...)".
func (m MethodDescriptor) Signature() string {
	ret := m.ReturnType
	if ret == "" {
		ret = "void"
	}
	return fmt.Sprintf("%s %s(%s)", ret, m.Name, formatParams(m.Parameters, ","))
}

// PropertyDescriptor describes a named, typed property with bound accessors.
type PropertyDescriptor struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	CanRead  bool   `json:"can_read" yaml:"can_read"`
	CanWrite bool   `json:"can_write" yaml:"can_write"`

	get GetterFunc
	set SetterFunc
}

// Get reads the property from target through the bound getter.
func (p PropertyDescriptor) Get(target any) (any, error) {
	if p.get == nil {
		return nil, &Error{Kind: KindPropertyWriteOnly, Member: p.Name}
	}
	return p.get(target)
}

// Set writes the property on target through the bound setter.
func (p PropertyDescriptor) Set(target, value any) error {
	if p.set == nil {
		return &Error{Kind: KindPropertyReadOnly, Member: p.Name}
	}
	return p.set(target, value)
}

// Accessors renders the property as "Name { get; set; }".
func (p PropertyDescriptor) Accessors() string {
	switch {
	case p.CanRead && p.CanWrite:
		return p.Name + " { get; set; }"
	case p.CanRead:
		return p.Name + " { get; }"
	default:
		return p.Name + " { set; }"
	}
}

// TypeDescriptor is the immutable description of a registered type.
// Instances are only created by a TypeBuilder or the introspection pass and
// must not be modified after registration; every accessor returns a copy.
type TypeDescriptor struct {
	id           TypeID
	name         string
	namespace    string
	flags        TypeFlags
	constructors []ConstructorDescriptor
	methods      []MethodDescriptor
	properties   []PropertyDescriptor
	tags         []TagRecord

	goType  reflect.Type
	factory func() any
}

// ID returns the type identifier.
func (d *TypeDescriptor) ID() TypeID { return d.id }

// Name returns the short type name.
func (d *TypeDescriptor) Name() string { return d.name }

// Namespace returns the grouping tag of the type.
func (d *TypeDescriptor) Namespace() string { return d.namespace }

// Flags returns the classification flags.
func (d *TypeDescriptor) Flags() TypeFlags { return d.flags }

// GoType returns the linked Go type, or nil for purely declarative types.
func (d *TypeDescriptor) GoType() reflect.Type { return d.goType }

// HasDefaultFactory reports whether the type can be constructed without a
// declared zero-argument constructor.
func (d *TypeDescriptor) HasDefaultFactory() bool { return d.factory != nil }

// descriptorView is the serializable projection of a TypeDescriptor.
type descriptorView struct {
	ID           TypeID                  `json:"id" yaml:"id"`
	Name         string                  `json:"name" yaml:"name"`
	Namespace    string                  `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Flags        TypeFlags               `json:"flags" yaml:"flags"`
	Constructors []ConstructorDescriptor `json:"constructors" yaml:"constructors"`
	Methods      []MethodDescriptor      `json:"methods" yaml:"methods"`
	Properties   []PropertyDescriptor    `json:"properties" yaml:"properties"`
	Tags         []TagRecord             `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func (d *TypeDescriptor) view() descriptorView {
	return descriptorView{
		ID:           d.id,
		Name:         d.name,
		Namespace:    d.namespace,
		Flags:        d.flags,
		Constructors: ConstructorsOf(d),
		Methods:      MethodsOf(d, true),
		Properties:   PropertiesOf(d),
		Tags:         TagsOf(d),
	}
}

// formatParams renders parameters as "type name" pairs.
func formatParams(params []ParameterDescriptor, sep string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return strings.Join(parts, sep)
}

// cloneParams returns a copy of params.
func cloneParams(params []ParameterDescriptor) []ParameterDescriptor {
	if params == nil {
		return []ParameterDescriptor{}
	}
	out := make([]ParameterDescriptor, len(params))
	copy(out, params)
	return out
}

// MarshalJSON encodes the structural data of the descriptor.
func (d *TypeDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.view())
}

// MarshalYAML encodes the structural data of the descriptor.
func (d *TypeDescriptor) MarshalYAML() (interface{}, error) {
	return d.view(), nil
}
