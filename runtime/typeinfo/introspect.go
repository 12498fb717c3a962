package typeinfo

import (
	"fmt"
	"go/token"
	"reflect"
	"strings"
)

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	taggedType   = reflect.TypeOf((*Tagged)(nil)).Elem()
)

// IntrospectOption adjusts the descriptor produced by the introspection pass.
type IntrospectOption func(*introspectConfig)

type introspectConfig struct {
	namespace    *string
	name         string
	constructors []constructorSpec
	tags         []TagRecord
	noDefault    bool
}

type constructorSpec struct {
	fn    any
	names []string
}

// WithNamespace overrides the namespace (the Go package name by default).
func WithNamespace(ns string) IntrospectOption {
	return func(c *introspectConfig) { c.namespace = &ns }
}

// WithName overrides the type name.
func WithName(name string) IntrospectOption {
	return func(c *introspectConfig) { c.name = name }
}

// WithConstructor declares a Go function as a constructor overload. fn must
// return T, *T, or either of those plus an error. paramNames name the
// parameters; missing names default to arg0, arg1, ...
func WithConstructor(fn any, paramNames ...string) IntrospectOption {
	return func(c *introspectConfig) {
		c.constructors = append(c.constructors, constructorSpec{fn: fn, names: paramNames})
	}
}

// WithTags attaches tags after any the type declares itself.
func WithTags(tags ...TagRecord) IntrospectOption {
	return func(c *introspectConfig) { c.tags = append(c.tags, tags...) }
}

// WithoutDefaultConstructor leaves the zero-value constructor out of the
// constructor list. The zero value still backs Construct with no arguments.
func WithoutDefaultConstructor() IntrospectOption {
	return func(c *introspectConfig) { c.noDefault = true }
}

// IntrospectType is Introspect for the Go type T.
func IntrospectType[T any](opts ...IntrospectOption) (*TypeDescriptor, error) {
	return Introspect(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// RegisterIntrospected introspects t and registers the result in r. Like
// Register it is idempotent per TypeID.
func RegisterIntrospected(r *Registry, t reflect.Type, opts ...IntrospectOption) (*TypeDescriptor, error) {
	t = indirectType(t)
	if t == nil {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: "<nil>", Member: "nil type"}
	}
	cfg := newIntrospectConfig(opts)
	ns, name := cfg.identity(t)
	return r.Register(NewTypeID(ns, name), func() (*TypeDescriptor, error) {
		return introspect(t, cfg)
	})
}

// Introspect builds a descriptor for a named Go type in a single reflection
// pass. Methods come from the method set of *T in the order reflect reports
// them (lexicographic); exported struct fields become read/write properties
// with synthesized accessors. The struct tag `typeinfo:"-"` hides a field
// and `typeinfo:"Name,readonly"` renames it or drops its setter.
//
// A variadic method keeps its variadic parameter as one slot, typed "...T",
// and takes its arguments as a single []T: Sum(ns ...int) is invoked with
// one []int argument.
func Introspect(t reflect.Type, opts ...IntrospectOption) (*TypeDescriptor, error) {
	t = indirectType(t)
	if t == nil {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: "<nil>", Member: "nil type"}
	}
	return introspect(t, newIntrospectConfig(opts))
}

func newIntrospectConfig(opts []IntrospectOption) *introspectConfig {
	cfg := &introspectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// identity returns the namespace and name a type is registered under.
func (c *introspectConfig) identity(t reflect.Type) (string, string) {
	name := c.name
	if name == "" {
		name = t.Name()
	}
	var ns string
	if c.namespace != nil {
		ns = *c.namespace
	} else if s := t.String(); t.PkgPath() != "" && strings.HasPrefix(s, packageName(s)+".") {
		ns = packageName(s)
	}
	return ns, name
}

// packageName returns the qualifier of a reflect type string ("sample" for "sample.Box[int]").
func packageName(s string) string {
	if i := strings.IndexAny(s, ".["); i >= 0 && s[i] == '.' {
		return s[:i]
	}
	return ""
}

func introspect(t reflect.Type, cfg *introspectConfig) (*TypeDescriptor, error) {
	ns, name := cfg.identity(t)
	if name == "" {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: TypeID(t.String()), Member: "unnamed type"}
	}

	b := NewBuilder(ns, name)
	b.goType = t
	b.flags = TypeFlags{
		Public:    token.IsExported(name),
		Abstract:  t.Kind() == reflect.Interface,
		Generic:   strings.Contains(t.Name(), "["),
		Enum:      isIntegerKind(t.Kind()) && t.Implements(stringerType),
		ValueType: isValueKind(t.Kind()),
	}

	if !b.flags.Abstract {
		b.factory = func() any { return reflect.New(t).Interface() }
		if !cfg.noDefault {
			b.DefaultConstructor()
		}
	}
	for _, spec := range cfg.constructors {
		if err := addConstructor(b, t, spec); err != nil {
			return nil, &Error{Kind: KindInvalidDescriptor, Type: b.ID(), Member: err.Error()}
		}
	}

	addMethods(b, t)
	if t.Kind() == reflect.Struct {
		addFields(b, t)
	}

	b.Tags(declaredTags(t)...)
	b.Tags(cfg.tags...)
	return b.Build()
}

func addConstructor(b *TypeBuilder, t reflect.Type, spec constructorSpec) error {
	fv := reflect.ValueOf(spec.fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fmt.Errorf("constructor is %T, not a function", spec.fn)
	}
	ft := fv.Type()
	errLast := ft.NumOut() == 2 && ft.Out(1) == errorType
	if ft.NumOut() != 1 && !errLast {
		return fmt.Errorf("constructor %s must return %s or (%s, error)", ft, t, t)
	}
	out := ft.Out(0)
	if out != t && out != reflect.PointerTo(t) {
		return fmt.Errorf("constructor %s returns %s, want %s", ft, out, t)
	}

	in := inTypes(ft, 0)
	params := make([]ParameterDescriptor, len(in))
	for i, pt := range in {
		params[i] = ParameterDescriptor{Name: paramName(spec.names, i), Type: typeNameOf(pt)}
	}
	if ft.IsVariadic() {
		params[len(params)-1].Type = "..." + typeNameOf(in[len(in)-1].Elem())
	}

	b.Constructor(params, func(args []any) (any, error) {
		vals, err := convertArgs(in, args)
		if err != nil {
			return nil, err
		}
		var res []reflect.Value
		if ft.IsVariadic() {
			res = fv.CallSlice(vals)
		} else {
			res = fv.Call(vals)
		}
		if errLast && !res[1].IsNil() {
			return nil, res[1].Interface().(error)
		}
		if res[0].Type() == t {
			// Keep instances addressable
			p := reflect.New(t)
			p.Elem().Set(res[0])
			return p.Interface(), nil
		}
		if res[0].IsNil() {
			return nil, nil
		}
		return res[0].Interface(), nil
	})
	return nil
}

func addMethods(b *TypeBuilder, t reflect.Type) {
	mt := t
	if t.Kind() != reflect.Interface {
		mt = reflect.PointerTo(t)
	}
	for i := 0; i < mt.NumMethod(); i++ {
		m := mt.Method(i)
		if !m.IsExported() || (m.Name == "TypeTags" && mt.Implements(taggedType)) {
			continue
		}

		// Method types of concrete types include the receiver
		skip := 1
		if t.Kind() == reflect.Interface {
			skip = 0
		}
		in := inTypes(m.Type, skip)
		params := make([]ParameterDescriptor, len(in))
		for k, pt := range in {
			params[k] = ParameterDescriptor{Name: paramName(nil, k), Type: typeNameOf(pt)}
		}
		variadic := m.Type.IsVariadic()
		if variadic {
			params[len(params)-1].Type = "..." + typeNameOf(in[len(in)-1].Elem())
		}

		outs, errLast := outTypes(m.Type)
		b.Method(m.Name, returnTypeName(outs), params, boundMethod(m.Name, in, variadic, errLast))
	}
}

func boundMethod(name string, in []reflect.Type, variadic, errLast bool) MethodFunc {
	return func(target any, args []any) (any, error) {
		rv := reflect.ValueOf(target)
		if !rv.IsValid() {
			return nil, fmt.Errorf("%w: nil target", ErrTargetType)
		}
		m := rv.MethodByName(name)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: %T has no method %s", ErrTargetType, target, name)
		}
		vals, err := convertArgs(in, args)
		if err != nil {
			return nil, err
		}
		var res []reflect.Value
		if variadic {
			res = m.CallSlice(vals)
		} else {
			res = m.Call(vals)
		}
		return unpackResults(res, errLast)
	}
}

func addFields(b *TypeBuilder, t reflect.Type) {
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name, readonly, skip := parseFieldTag(f)
		if skip {
			continue
		}
		index, ft := f.Index, f.Type

		get := func(target any) (any, error) {
			v, err := structValue(target, t)
			if err != nil {
				return nil, err
			}
			return v.FieldByIndex(index).Interface(), nil
		}
		var set SetterFunc
		if !readonly {
			set = func(target any, value any) error {
				v, err := structValue(target, t)
				if err != nil {
					return err
				}
				val, err := argValue(value, ft, 0)
				if err != nil {
					return err
				}
				field := v.FieldByIndex(index)
				if !field.CanSet() {
					return fmt.Errorf("%w: %s.%s is not addressable", ErrTargetType, t, name)
				}
				field.Set(val)
				return nil
			}
		}
		b.Property(name, typeNameOf(ft), get, set)
	}
}

// parseFieldTag reads the `typeinfo:"Name,readonly"` struct tag.
func parseFieldTag(f reflect.StructField) (name string, readonly, skip bool) {
	name = f.Name
	tag, ok := f.Tag.Lookup("typeinfo")
	if !ok {
		return name, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "readonly" {
			readonly = true
		}
	}
	return name, readonly, false
}

// structValue returns the struct value behind target, addressable when
// target is a pointer.
func structValue(target any, t reflect.Type) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrTargetType, t)
		}
		v = v.Elem()
	}
	if !v.IsValid() || v.Type() != t {
		return reflect.Value{}, fmt.Errorf("%w: got %T, want %s", ErrTargetType, target, t)
	}
	return v, nil
}

// declaredTags collects tags from a Tagged implementation on T or *T.
func declaredTags(t reflect.Type) []TagRecord {
	if t.Kind() == reflect.Interface {
		return nil
	}
	tagged, ok := reflect.New(t).Interface().(Tagged)
	if !ok {
		return nil
	}
	var tags []TagRecord
	_, err := protect(func() (any, error) {
		tags = tagged.TypeTags()
		return nil, nil
	})
	if err != nil {
		return nil
	}
	return tags
}

func convertArgs(in []reflect.Type, args []any) ([]reflect.Value, error) {
	if len(in) != len(args) {
		return nil, fmt.Errorf("%w: want %d argument(s), got %d", ErrArgumentType, len(in), len(args))
	}
	vals := make([]reflect.Value, len(in))
	for i, want := range in {
		v, err := argValue(args[i], want, i)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// argValue checks that arg can be passed as want without conversion.
func argValue(arg any, want reflect.Type, i int) (reflect.Value, error) {
	if arg == nil {
		if nillable(want) {
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: argument %d is nil, want %s", ErrArgumentType, i, typeNameOf(want))
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("%w: argument %d is %s, want %s", ErrArgumentType, i, typeNameOf(v.Type()), typeNameOf(want))
	}
	return v, nil
}

func unpackResults(res []reflect.Value, errLast bool) (any, error) {
	if errLast {
		last := res[len(res)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		res = res[:len(res)-1]
	}
	switch len(res) {
	case 0:
		return nil, nil
	case 1:
		return res[0].Interface(), nil
	default:
		out := make([]any, len(res))
		for i, v := range res {
			out[i] = v.Interface()
		}
		return out, nil
	}
}

func inTypes(ft reflect.Type, skip int) []reflect.Type {
	in := make([]reflect.Type, 0, ft.NumIn()-skip)
	for i := skip; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	return in
}

// outTypes returns the result types with a trailing error removed.
func outTypes(ft reflect.Type) ([]reflect.Type, bool) {
	outs := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		outs = append(outs, ft.Out(i))
	}
	if n := len(outs); n > 0 && outs[n-1] == errorType {
		return outs[:n-1], true
	}
	return outs, false
}

func returnTypeName(outs []reflect.Type) string {
	switch len(outs) {
	case 0:
		return ""
	case 1:
		return typeNameOf(outs[0])
	default:
		names := make([]string, len(outs))
		for i, o := range outs {
			names[i] = typeNameOf(o)
		}
		return "(" + strings.Join(names, ", ") + ")"
	}
}

func paramName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("arg%d", i)
}

// typeNameOf renders a Go type the way descriptors name it.
func typeNameOf(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == "" {
		return "any"
	}
	return t.String()
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
