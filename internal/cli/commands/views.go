package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/conduit-lang/typeinfo/internal/cli/ui"
	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// typeSummary is one row of the type listing
type typeSummary struct {
	ID        typeinfo.TypeID    `json:"id" yaml:"id"`
	Name      string             `json:"name" yaml:"name"`
	Namespace string             `json:"namespace" yaml:"namespace"`
	Flags     typeinfo.TypeFlags `json:"flags" yaml:"flags"`
	Members   int                `json:"members" yaml:"members"`
}

type typeList []typeSummary

func newTypeList(ds []*typeinfo.TypeDescriptor) typeList {
	out := make(typeList, 0, len(ds))
	for _, d := range ds {
		out = append(out, typeSummary{
			ID:        d.ID(),
			Name:      d.Name(),
			Namespace: d.Namespace(),
			Flags:     d.Flags(),
			Members:   len(typeinfo.ConstructorsOf(d)) + len(typeinfo.MethodsOf(d, false)) + len(typeinfo.PropertiesOf(d)),
		})
	}
	return out
}

func (l typeList) renderTable(w io.Writer, noColor bool) {
	if len(l) == 0 {
		fmt.Fprint(w, ui.Info("No types registered.", noColor))
		return
	}
	table := ui.NewTable(w, []string{"ID", "KIND", "MEMBERS", "FLAGS"}, &ui.TableOptions{NoColor: noColor})
	for _, t := range l {
		table.AddRow(t.ID.String(), kindOf(t.Flags), strconv.Itoa(t.Members), flagList(t.Flags))
	}
	table.Render()
	fmt.Fprintf(w, "\n%d type(s)\n", len(l))
}

// kindOf names the broad category a type falls in
func kindOf(f typeinfo.TypeFlags) string {
	switch {
	case f.Enum:
		return "enum"
	case f.Abstract:
		return "abstract"
	case f.ValueType:
		return "value"
	default:
		return "reference"
	}
}

func flagList(f typeinfo.TypeFlags) string {
	var out []string
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{f.Public, "public"},
		{f.Abstract, "abstract"},
		{f.Generic, "generic"},
		{f.Enum, "enum"},
		{f.ValueType, "value"},
	} {
		if flag.set {
			out = append(out, flag.name)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}

// typeDetail is the full description of one type
type typeDetail struct {
	*typeinfo.TypeDescriptor
}

func (v typeDetail) renderTable(w io.Writer, noColor bool) {
	d := v.TypeDescriptor
	flags := d.Flags()

	ui.Header(w, d.ID().String(), noColor)
	kv := ui.NewKeyValueTable(w, noColor)
	kv.AddRow("Name", d.Name())
	kv.AddRow("NameSpace", d.Namespace())
	kv.AddRow("IsPublic", strconv.FormatBool(flags.Public))
	kv.AddRow("IsAbstract", strconv.FormatBool(flags.Abstract))
	kv.AddRow("IsGeneric", strconv.FormatBool(flags.Generic))
	kv.AddRow("IsEnum", strconv.FormatBool(flags.Enum))
	kv.AddRow("IsValueType", strconv.FormatBool(flags.ValueType))
	kv.Render()
	fmt.Fprintln(w)

	constructorList{Type: d.ID(), name: d.Name(), Constructors: typeinfo.ConstructorsOf(d)}.renderTable(w, noColor)
	methodList{Type: d.ID(), Methods: typeinfo.MethodsOf(d, false)}.renderTable(w, noColor)
	propertyList{Type: d.ID(), Properties: typeinfo.PropertiesOf(d)}.renderTable(w, noColor)
	tagList{Type: d.ID(), Tags: typeinfo.TagsOf(d)}.renderTable(w, noColor)
}

type constructorList struct {
	Type         typeinfo.TypeID                  `json:"type" yaml:"type"`
	Constructors []typeinfo.ConstructorDescriptor `json:"constructors" yaml:"constructors"`

	name string
}

func (v constructorList) renderTable(w io.Writer, noColor bool) {
	s := ui.NewSection(w, "Constructors", noColor)
	for _, c := range v.Constructors {
		s.AddLine(c.Signature(v.name))
	}
	s.Render()
}

type methodList struct {
	Type    typeinfo.TypeID             `json:"type" yaml:"type"`
	Methods []typeinfo.MethodDescriptor `json:"methods" yaml:"methods"`
}

func (v methodList) renderTable(w io.Writer, noColor bool) {
	s := ui.NewSection(w, "Methods", noColor)
	for _, m := range v.Methods {
		s.AddLine(m.Signature())
	}
	s.Render()
}

type propertyList struct {
	Type       typeinfo.TypeID               `json:"type" yaml:"type"`
	Properties []typeinfo.PropertyDescriptor `json:"properties" yaml:"properties"`
}

func (v propertyList) renderTable(w io.Writer, noColor bool) {
	s := ui.NewSection(w, "Properties", noColor)
	for _, p := range v.Properties {
		s.AddLinef("%s: %s", p.Accessors(), p.Type)
	}
	s.Render()
}

type tagList struct {
	Type typeinfo.TypeID      `json:"type" yaml:"type"`
	Tags []typeinfo.TagRecord `json:"tags" yaml:"tags"`
}

func (v tagList) renderTable(w io.Writer, noColor bool) {
	s := ui.NewSection(w, "Tags", noColor)
	for _, t := range v.Tags {
		s.AddLine(t.String())
	}
	s.Render()
}

// referenceView is the neighborhood of a type in the reference graph
type referenceView struct {
	Root    typeinfo.TypeID          `json:"root" yaml:"root"`
	Reverse bool                     `json:"reverse" yaml:"reverse"`
	Nodes   []typeinfo.TypeID        `json:"nodes" yaml:"nodes"`
	Edges   []typeinfo.ReferenceEdge `json:"edges" yaml:"edges"`
	Cycles  [][]typeinfo.TypeID      `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

func (v referenceView) renderTable(w io.Writer, noColor bool) {
	title := "References from " + v.Root.String()
	if v.Reverse {
		title = "References to " + v.Root.String()
	}
	ui.Header(w, title, noColor)
	if len(v.Edges) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	table := ui.NewTable(w, []string{"FROM", "TO", "KIND", "MEMBER"}, &ui.TableOptions{NoColor: noColor})
	for _, e := range v.Edges {
		table.AddRow(e.From.String(), e.To.String(), string(e.Kind), e.Member)
	}
	table.Render()
	if len(v.Cycles) > 0 {
		fmt.Fprintln(w)
		s := ui.NewSection(w, "Cycles", noColor)
		for _, c := range v.Cycles {
			s.AddLine(joinArrow(c))
		}
		s.Render()
	}
}

// propertyValue is a readable property and its current value
type propertyValue struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// instanceView describes a constructed instance and, for member access, the
// member involved and its result.
type instanceView struct {
	Instance   string          `json:"instance" yaml:"instance"`
	Type       typeinfo.TypeID `json:"type" yaml:"type"`
	Member     string          `json:"member,omitempty" yaml:"member,omitempty"`
	Result     any             `json:"result,omitempty" yaml:"result,omitempty"`
	Properties []propertyValue `json:"properties" yaml:"properties"`

	hasResult bool
}

func (v instanceView) renderTable(w io.Writer, noColor bool) {
	ui.Header(w, v.Instance, noColor)
	if v.hasResult {
		fmt.Fprintf(w, "%s: %v\n\n", v.Member, v.Result)
	}
	table := ui.NewTable(w, []string{"PROPERTY", "TYPE", "VALUE"}, &ui.TableOptions{NoColor: noColor})
	for _, p := range v.Properties {
		table.AddRow(p.Name, p.Type, fmt.Sprint(p.Value))
	}
	table.Render()
}

// snapshot reads every readable property of inst
func snapshot(inv *typeinfo.Invoker, d *typeinfo.TypeDescriptor, inst *typeinfo.Instance) []propertyValue {
	props := typeinfo.PropertiesOf(d)
	out := make([]propertyValue, 0, len(props))
	for _, p := range props {
		if !p.CanRead {
			continue
		}
		v, err := inv.GetProperty(inst, p.Name)
		if err != nil {
			v = "<" + err.Error() + ">"
		}
		out = append(out, propertyValue{Name: p.Name, Type: p.Type, Value: v})
	}
	return out
}

func joinArrow(ids []typeinfo.TypeID) string {
	out := ""
	for _, id := range ids {
		out += id.String() + " → "
	}
	if len(ids) > 0 {
		out += ids[0].String()
	}
	return out
}
