package typeinfo

import "reflect"

// New constructs the type registered for T's Go type and returns the value
// as a T. T may be the registered type or a pointer to it.
func New[T any](inv *Invoker, args ...any) (T, error) {
	var zero T
	if inv == nil {
		inv = DefaultInvoker()
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	id, ok := inv.registry.LookupGoType(t)
	if !ok {
		return zero, &Error{Kind: KindNotFound, Type: TypeID(typeNameOf(t))}
	}
	return CreateAs[T](inv, id, args...)
}

// CreateAs constructs id and returns the value as a T, failing with
// TypeMismatch when the constructed value is not a T.
func CreateAs[T any](inv *Invoker, id TypeID, args ...any) (T, error) {
	var zero T
	if inv == nil {
		inv = DefaultInvoker()
	}
	inst, err := inv.Construct(id, args...)
	if err != nil {
		return zero, err
	}
	return As[T](inst)
}

// As returns the instance value as a T. A pointer value is dereferenced when
// T is its element type.
func As[T any](inst *Instance) (T, error) {
	var zero T
	if inst == nil {
		return zero, &Error{Kind: KindNotFound, Type: "<nil>"}
	}
	if v, ok := inst.value.(T); ok {
		return v, nil
	}
	rv := reflect.ValueOf(inst.value)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		if v, ok := rv.Elem().Interface().(T); ok {
			return v, nil
		}
	}
	return zero, &Error{Kind: KindTypeMismatch, Type: inst.typeID, Member: TypeName[T]()}
}
