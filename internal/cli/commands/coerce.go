package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// coerce converts a command-line string to the Go value a parameter of the
// named type expects. Unknown type names pass the string through; the engine
// reports the mismatch if the member cannot take it. A variadic "...T"
// parameter takes a comma-separated list, converted like "[]T".
func coerce(typeName, raw string) (any, error) {
	if elem, ok := strings.CutPrefix(typeName, "..."); ok {
		return coerce("[]"+elem, raw)
	}
	var (
		v   any
		err error
	)
	switch typeName {
	case "string", "":
		return raw, nil
	case "bool":
		v, err = cast.ToBoolE(raw)
	case "int":
		v, err = cast.ToIntE(raw)
	case "int8":
		v, err = cast.ToInt8E(raw)
	case "int16":
		v, err = cast.ToInt16E(raw)
	case "int32", "rune":
		v, err = cast.ToInt32E(raw)
	case "int64":
		v, err = cast.ToInt64E(raw)
	case "uint":
		v, err = cast.ToUintE(raw)
	case "uint8", "byte":
		v, err = cast.ToUint8E(raw)
	case "uint16":
		v, err = cast.ToUint16E(raw)
	case "uint32":
		v, err = cast.ToUint32E(raw)
	case "uint64":
		v, err = cast.ToUint64E(raw)
	case "float32":
		v, err = cast.ToFloat32E(raw)
	case "float64":
		v, err = cast.ToFloat64E(raw)
	case "time.Duration":
		v, err = cast.ToDurationE(raw)
	case "time.Time":
		v, err = cast.ToTimeE(raw)
	case "[]string":
		v, err = cast.ToStringSliceE(splitList(raw))
	case "[]int":
		v, err = cast.ToIntSliceE(splitList(raw))
	default:
		return raw, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot convert %q to %s: %w", raw, typeName, err)
	}
	return v, nil
}

// coerceParams converts raw against params position by position. Arguments
// beyond the declared parameters pass through as strings.
func coerceParams(params []typeinfo.ParameterDescriptor, raw []string) ([]any, error) {
	out := make([]any, len(raw))
	for i, r := range raw {
		if i >= len(params) {
			out[i] = r
			continue
		}
		v, err := coerce(params[i].Type, r)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, params[i].Name, err)
		}
		out[i] = v
	}
	return out, nil
}

// constructorArgs coerces raw for the constructor overload the engine will
// select, which is the first one accepting len(raw) arguments.
func constructorArgs(d *typeinfo.TypeDescriptor, raw []string) ([]any, error) {
	for _, c := range typeinfo.ConstructorsOf(d) {
		if c.Arity() == len(raw) {
			return coerceParams(c.Parameters, raw)
		}
	}
	return coerceParams(nil, raw)
}

// methodArgs coerces raw for the overload of name the engine will select.
// The name resolves exactly first, then by a unique case-insensitive match.
func methodArgs(d *typeinfo.TypeDescriptor, name string, raw []string) ([]any, error) {
	methods := typeinfo.MethodsOf(d, true)
	resolved := name
	if !hasMethod(methods, name) {
		var folded []string
		for _, n := range typeinfo.MethodNames(d, true) {
			if strings.EqualFold(n, name) {
				folded = append(folded, n)
			}
		}
		if len(folded) == 1 {
			resolved = folded[0]
		}
	}
	for _, m := range methods {
		if m.Name == resolved && m.Arity() == len(raw) {
			return coerceParams(m.Parameters, raw)
		}
	}
	return coerceParams(nil, raw)
}

// propertyValueArg coerces raw to the declared type of the named property
func propertyValueArg(d *typeinfo.TypeDescriptor, name, raw string) (any, error) {
	props := typeinfo.PropertiesOf(d)
	for _, p := range props {
		if p.Name == name {
			return coerce(p.Type, raw)
		}
	}
	var match *typeinfo.PropertyDescriptor
	for i, p := range props {
		if strings.EqualFold(p.Name, name) {
			if match != nil {
				return raw, nil
			}
			match = &props[i]
		}
	}
	if match == nil {
		return raw, nil
	}
	return coerce(match.Type, raw)
}

func hasMethod(methods []typeinfo.MethodDescriptor, name string) bool {
	for _, m := range methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated flag or argument value, trimming spaces
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
