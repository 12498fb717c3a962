package sample

import (
	"fmt"
	"reflect"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// Register installs every sample type in r. It is safe to call repeatedly.
func Register(r *typeinfo.Registry) error {
	b := DescribeMyClass()
	if _, err := r.Register(b.ID(), b.Build); err != nil {
		return fmt.Errorf("register %s: %w", b.ID(), err)
	}

	introspected := []struct {
		typ  reflect.Type
		opts []typeinfo.IntrospectOption
	}{
		{reflect.TypeOf(Point{}), []typeinfo.IntrospectOption{
			typeinfo.WithConstructor(NewPoint, "x", "y"),
		}},
		{reflect.TypeOf(Segment{}), []typeinfo.IntrospectOption{
			typeinfo.WithConstructor(NewSegment, "a", "b"),
			typeinfo.WithTags(typeinfo.NewTag("Geometry", typeinfo.Field("dimensions", 2))),
		}},
		{reflect.TypeOf(Quadrant(0)), nil},
		{reflect.TypeOf((*Shape)(nil)).Elem(), nil},
	}
	for _, it := range introspected {
		opts := append([]typeinfo.IntrospectOption{typeinfo.WithNamespace(Namespace)}, it.opts...)
		if _, err := typeinfo.RegisterIntrospected(r, it.typ, opts...); err != nil {
			return fmt.Errorf("register %s: %w", it.typ, err)
		}
	}
	return nil
}
