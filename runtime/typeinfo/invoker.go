package typeinfo

import (
	"errors"
	"strings"
)

// Invoker constructs instances and calls members by name. It holds no state
// besides its registry and is safe for concurrent use.
//
// Overload resolution is by argument count only: the first declared overload
// whose arity equals len(args) is used, and argument values are passed to it
// unconverted.
type Invoker struct {
	registry *Registry
}

// NewInvoker returns an invoker resolving types against r. A nil r means the
// process-wide registry.
func NewInvoker(r *Registry) *Invoker {
	if r == nil {
		r = Default()
	}
	return &Invoker{registry: r}
}

// DefaultInvoker returns an invoker over the process-wide registry.
func DefaultInvoker() *Invoker {
	return NewInvoker(Default())
}

// Registry returns the registry the invoker resolves against.
func (i *Invoker) Registry() *Registry { return i.registry }

// Construct creates a new instance of id using the first constructor whose
// arity equals len(args). With no arguments and no zero-argument constructor
// declared, the type's default factory is used when it has one.
func (i *Invoker) Construct(id TypeID, args ...any) (*Instance, error) {
	d, err := i.registry.Describe(id)
	if err != nil {
		return nil, err
	}
	return i.ConstructDescriptor(d, args...)
}

// ConstructDescriptor is Construct for an already resolved descriptor.
func (i *Invoker) ConstructDescriptor(d *TypeDescriptor, args ...any) (*Instance, error) {
	var fn ConstructorFunc
	for _, c := range d.constructors {
		if c.Arity() == len(args) {
			fn = c.fn
			break
		}
	}
	if fn == nil {
		if len(args) != 0 || d.factory == nil || d.flags.Abstract {
			return nil, &Error{Kind: KindNoMatchingConstructor, Type: d.id, Arity: len(args)}
		}
		factory := d.factory
		fn = func([]any) (any, error) { return factory(), nil }
	}

	value, err := protect(func() (any, error) { return fn(copyArgs(args)) })
	if err == nil && value == nil {
		err = errors.New("constructor returned nil")
	}
	if err != nil {
		return nil, &Error{Kind: KindConstructionFailed, Type: d.id, Arity: len(args), Err: err}
	}
	return newInstance(d.id, value), nil
}

// GetProperty reads a property by name.
func (i *Invoker) GetProperty(inst *Instance, name string) (any, error) {
	d, err := i.describe(inst)
	if err != nil {
		return nil, err
	}
	p, ok := findProperty(d, name)
	if !ok {
		return nil, &Error{Kind: KindPropertyNotFound, Type: d.id, Member: name}
	}
	if p.get == nil {
		return nil, &Error{Kind: KindPropertyWriteOnly, Type: d.id, Member: p.Name}
	}

	value, err := protect(func() (any, error) { return p.get(inst.value) })
	if err != nil {
		return nil, &Error{Kind: KindInvocationFailed, Type: d.id, Member: GetterPrefix + p.Name, Err: err}
	}
	return value, nil
}

// SetProperty writes a property by name.
func (i *Invoker) SetProperty(inst *Instance, name string, value any) error {
	d, err := i.describe(inst)
	if err != nil {
		return err
	}
	p, ok := findProperty(d, name)
	if !ok {
		return &Error{Kind: KindPropertyNotFound, Type: d.id, Member: name}
	}
	if p.set == nil {
		return &Error{Kind: KindPropertyReadOnly, Type: d.id, Member: p.Name}
	}

	_, err = protect(func() (any, error) { return nil, p.set(inst.value, value) })
	if err != nil {
		return &Error{Kind: KindInvocationFailed, Type: d.id, Member: SetterPrefix + p.Name, Err: err}
	}
	return nil
}

// InvokeMethod calls a method by name on inst and returns its result.
func (i *Invoker) InvokeMethod(inst *Instance, name string, args ...any) (any, error) {
	d, err := i.describe(inst)
	if err != nil {
		return nil, err
	}
	overloads := findMethods(d, name)
	if len(overloads) == 0 {
		return nil, &Error{Kind: KindMethodNotFound, Type: d.id, Member: name}
	}

	var m *MethodDescriptor
	for k := range overloads {
		if overloads[k].Arity() == len(args) {
			m = &overloads[k]
			break
		}
	}
	if m == nil {
		return nil, &Error{Kind: KindArityMismatch, Type: d.id, Member: overloads[0].Name, Arity: len(args)}
	}

	fn := m.fn
	result, err := protect(func() (any, error) { return fn(inst.value, copyArgs(args)) })
	if err != nil {
		return nil, &Error{Kind: KindInvocationFailed, Type: d.id, Member: m.Name, Arity: len(args), Err: err}
	}
	return result, nil
}

func (i *Invoker) describe(inst *Instance) (*TypeDescriptor, error) {
	if inst == nil {
		return nil, &Error{Kind: KindNotFound, Type: "<nil>"}
	}
	return i.registry.Describe(inst.typeID)
}

// Construct creates an instance through the process-wide registry.
func Construct(id TypeID, args ...any) (*Instance, error) {
	return DefaultInvoker().Construct(id, args...)
}

// GetProperty reads a property through the process-wide registry.
func GetProperty(inst *Instance, name string) (any, error) {
	return DefaultInvoker().GetProperty(inst, name)
}

// SetProperty writes a property through the process-wide registry.
func SetProperty(inst *Instance, name string, value any) error {
	return DefaultInvoker().SetProperty(inst, name, value)
}

// InvokeMethod calls a method through the process-wide registry.
func InvokeMethod(inst *Instance, name string, args ...any) (any, error) {
	return DefaultInvoker().InvokeMethod(inst, name, args...)
}

// findProperty matches name exactly, then falls back to a case-insensitive
// match when exactly one property qualifies.
func findProperty(d *TypeDescriptor, name string) (PropertyDescriptor, bool) {
	for _, p := range d.properties {
		if p.Name == name {
			return p, true
		}
	}
	var found PropertyDescriptor
	matches := 0
	for _, p := range d.properties {
		if strings.EqualFold(p.Name, name) {
			found = p
			matches++
		}
	}
	return found, matches == 1
}

// findMethods returns the overloads named name in declaration order, with
// the same exact-then-unique-case-insensitive rule as findProperty.
func findMethods(d *TypeDescriptor, name string) []MethodDescriptor {
	var exact []MethodDescriptor
	for _, m := range d.methods {
		if m.Name == name {
			exact = append(exact, m)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var folded []MethodDescriptor
	names := make(map[string]bool)
	for _, m := range d.methods {
		if strings.EqualFold(m.Name, name) {
			folded = append(folded, m)
			names[m.Name] = true
		}
	}
	if len(names) != 1 {
		return nil
	}
	return folded
}

// protect runs fn, converting a panic into an error.
func protect(fn func() (any, error)) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = panicError(rec)
		}
	}()
	return fn()
}

func copyArgs(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)
	return out
}
