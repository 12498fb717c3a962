package typeinfo

import (
	"fmt"
	"strings"
)

// TagField is one named value carried by a tag.
type TagField struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Field is shorthand for building a TagField.
func Field(name string, value any) TagField {
	return TagField{Name: name, Value: value}
}

// TagRecord is a named annotation attached to a type at registration.
// Fields keep the order they were attached in.
type TagRecord struct {
	Name   string     `json:"name" yaml:"name"`
	Fields []TagField `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// NewTag builds a TagRecord.
func NewTag(name string, fields ...TagField) TagRecord {
	return TagRecord{Name: name, Fields: fields}
}

// Field returns the value of the named field exactly as attached.
func (t TagRecord) Field(name string) (any, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// String renders the tag as Name or Name(field="value", ...).
func (t TagRecord) String() string {
	if len(t.Fields) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		if s, ok := f.Value.(string); ok {
			parts[i] = fmt.Sprintf("%s=%q", f.Name, s)
		} else {
			parts[i] = fmt.Sprintf("%s=%v", f.Name, f.Value)
		}
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Tagged is implemented by Go types that declare their own tags. The
// introspection pass attaches them to the generated descriptor.
type Tagged interface {
	TypeTags() []TagRecord
}

// TagsOfType returns the tags of a registered type in attachment order.
func TagsOfType(r *Registry, id TypeID) ([]TagRecord, error) {
	d, err := r.Describe(id)
	if err != nil {
		return nil, err
	}
	return TagsOf(d), nil
}

// HasTag reports whether the descriptor carries a tag with the given name.
func HasTag(d *TypeDescriptor, name string) bool {
	for _, t := range d.tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

func cloneTag(t TagRecord) TagRecord {
	out := TagRecord{Name: t.Name}
	if len(t.Fields) > 0 {
		out.Fields = make([]TagField, len(t.Fields))
		copy(out.Fields, t.Fields)
	}
	return out
}
