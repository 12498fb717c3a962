package typeinfo

import (
	"fmt"
	"reflect"
)

// Helpers for writing bound accessors without hand-rolled type assertions.
// They check exact types only; an int is never accepted for an int64.

// TypeName returns the Go name of V as used in descriptors ("int", "string", "*sample.Point").
func TypeName[V any]() string {
	return typeNameOf(reflect.TypeOf((*V)(nil)).Elem())
}

// Arg returns args[i] as a V.
func Arg[V any](args []any, i int) (V, error) {
	var zero V
	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("%w: missing argument %d", ErrArgumentType, i)
	}
	if args[i] == nil {
		if nillable(reflect.TypeOf((*V)(nil)).Elem()) {
			return zero, nil
		}
		return zero, fmt.Errorf("%w: argument %d is nil, want %s", ErrArgumentType, i, TypeName[V]())
	}
	v, ok := args[i].(V)
	if !ok {
		return zero, fmt.Errorf("%w: argument %d is %T, want %s", ErrArgumentType, i, args[i], TypeName[V]())
	}
	return v, nil
}

// Target returns target as a *T.
func Target[T any](target any) (*T, error) {
	t, ok := target.(*T)
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: got %T, want *%s", ErrTargetType, target, TypeName[T]())
	}
	return t, nil
}

// BindGetter adapts a typed getter into a GetterFunc.
func BindGetter[T, V any](get func(*T) V) GetterFunc {
	return func(target any) (any, error) {
		t, err := Target[T](target)
		if err != nil {
			return nil, err
		}
		return get(t), nil
	}
}

// BindSetter adapts a typed setter into a SetterFunc.
func BindSetter[T, V any](set func(*T, V)) SetterFunc {
	return func(target any, value any) error {
		t, err := Target[T](target)
		if err != nil {
			return err
		}
		v, err := Arg[V]([]any{value}, 0)
		if err != nil {
			return err
		}
		set(t, v)
		return nil
	}
}

// BindMethod adapts a method body taking a typed receiver into a MethodFunc.
func BindMethod[T any](fn func(t *T, args []any) (any, error)) MethodFunc {
	return func(target any, args []any) (any, error) {
		t, err := Target[T](target)
		if err != nil {
			return nil, err
		}
		return fn(t, args)
	}
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
