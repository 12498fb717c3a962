package typeinfo

// The enumerator functions never mutate the descriptor and return fresh
// slices, so callers may modify the results freely. They are safe for
// concurrent use.

// ConstructorsOf returns the constructor overloads in declaration order.
func ConstructorsOf(d *TypeDescriptor) []ConstructorDescriptor {
	out := make([]ConstructorDescriptor, len(d.constructors))
	for i, c := range d.constructors {
		c.Parameters = cloneParams(c.Parameters)
		out[i] = c
	}
	return out
}

// MethodsOf returns the methods in declaration order. With includeSpecials
// false, accessors synthesized for properties are left out.
func MethodsOf(d *TypeDescriptor, includeSpecials bool) []MethodDescriptor {
	out := make([]MethodDescriptor, 0, len(d.methods))
	for _, m := range d.methods {
		if m.Special && !includeSpecials {
			continue
		}
		m.Parameters = cloneParams(m.Parameters)
		out = append(out, m)
	}
	return out
}

// PropertiesOf returns the properties in declaration order.
func PropertiesOf(d *TypeDescriptor) []PropertyDescriptor {
	out := make([]PropertyDescriptor, len(d.properties))
	copy(out, d.properties)
	return out
}

// TagsOf returns the tags in attachment order.
func TagsOf(d *TypeDescriptor) []TagRecord {
	out := make([]TagRecord, len(d.tags))
	for i, t := range d.tags {
		out[i] = cloneTag(t)
	}
	return out
}

// MethodNames returns the distinct method names in declaration order.
func MethodNames(d *TypeDescriptor, includeSpecials bool) []string {
	seen := make(map[string]bool, len(d.methods))
	var names []string
	for _, m := range d.methods {
		if (m.Special && !includeSpecials) || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		names = append(names, m.Name)
	}
	return names
}

// PropertyNames returns the property names in declaration order.
func PropertyNames(d *TypeDescriptor) []string {
	names := make([]string, len(d.properties))
	for i, p := range d.properties {
		names[i] = p.Name
	}
	return names
}
