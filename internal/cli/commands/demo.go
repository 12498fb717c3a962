package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/typeinfo/internal/cli/ui"
	"github.com/conduit-lang/typeinfo/internal/sample"
	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// demoStep is one titled stage of the walkthrough
type demoStep struct {
	title string
	run   func(sec *ui.Section) error
}

// newDemoCommand creates the demo command
func newDemoCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through introspection and late binding on sample.MyClass",
		Long: `Walk through every engine operation on sample.MyClass:

describe the type from an instance and by identifier, enumerate its
properties, constructors, methods and accessors, construct instances with
each constructor, set a property and call methods by name, and list the
tags attached to the type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), s.invoker, s.noColor())
		},
	}
}

func runDemo(w io.Writer, inv *typeinfo.Invoker, noColor bool) error {
	reg := inv.Registry()

	first, err := inv.Construct(sample.MyClassID, 1, "Test1", "Test2")
	if err != nil {
		return err
	}
	fromInstance, err := reg.DescribeFromInstance(first.Value())
	if err != nil {
		return err
	}
	byID, err := reg.Describe(sample.MyClassID)
	if err != nil {
		return err
	}

	steps := []demoStep{
		{"type described from an instance:", func(sec *ui.Section) error {
			describeFlags(sec, fromInstance)
			return nil
		}},
		{"type described by identifier:", func(sec *ui.Section) error {
			describeFlags(sec, byID)
			return nil
		}},
		{"properties of type with instance values:", func(sec *ui.Section) error {
			addValues(sec, inv, byID, first)
			return nil
		}},
		{"constructors of type:", func(sec *ui.Section) error {
			for _, c := range typeinfo.ConstructorsOf(byID) {
				sec.AddLine(c.Signature(byID.Name()))
			}
			return nil
		}},
		{"methods of type (all):", func(sec *ui.Section) error {
			for _, m := range typeinfo.MethodsOf(byID, true) {
				sec.AddLine(m.Signature())
			}
			return nil
		}},
		{"methods of type (without specials):", func(sec *ui.Section) error {
			for _, m := range typeinfo.MethodsOf(byID, false) {
				sec.AddLine(m.Signature())
			}
			return nil
		}},
		{"properties of type with get and set:", func(sec *ui.Section) error {
			for _, p := range typeinfo.PropertiesOf(byID) {
				sec.AddLine(p.Accessors())
			}
			return nil
		}},
		{"create instance with the default constructor:", func(sec *ui.Section) error {
			inst, err := inv.Construct(sample.MyClassID)
			if err != nil {
				return err
			}
			addValues(sec, inv, byID, inst)
			return nil
		}},
		{"create instance with constructor arguments:", func(sec *ui.Section) error {
			inst, err := inv.Construct(sample.MyClassID, 2, "Test3", "Test4")
			if err != nil {
				return err
			}
			addValues(sec, inv, byID, inst)
			return nil
		}},
		{"create typed instance with constructor arguments:", func(sec *ui.Section) error {
			c, err := typeinfo.CreateAs[*sample.MyClass](inv, sample.MyClassID, 3, "Test5", "Test6")
			if err != nil {
				return err
			}
			inst, err := reg.Wrap(c)
			if err != nil {
				return err
			}
			addValues(sec, inv, byID, inst)
			return nil
		}},
		{"set property with late binding:", func(sec *ui.Section) error {
			inst, err := inv.Construct(sample.MyClassID)
			if err != nil {
				return err
			}
			if err := inv.SetProperty(inst, "Myproperty1", "Test7"); err != nil {
				return err
			}
			v, err := inv.GetProperty(inst, "Myproperty1")
			if err != nil {
				return err
			}
			sec.AddLinef("field %s: value %v", "Myproperty1", v)
			return nil
		}},
		{"invoke method with late binding:", func(sec *ui.Section) error {
			return addInvocation(sec, inv, []any{4, "Test8", "Test9"}, "GetMyProperty")
		}},
		{"invoke method with input:", func(sec *ui.Section) error {
			return addInvocation(sec, inv, []any{5, "Test10", "Test11"}, "GetMyPropertyWithWord", "hello")
		}},
		{"tags of type:", func(sec *ui.Section) error {
			tags, err := typeinfo.TagsOfType(reg, sample.MyClassID)
			if err != nil {
				return err
			}
			for _, t := range tags {
				sec.AddLine(t.String())
			}
			return nil
		}},
	}

	for i, step := range steps {
		sec := ui.NewSection(w, step.title, noColor)
		if err := step.run(sec); err != nil {
			return fmt.Errorf("demo step %d (%s): %w", i+1, step.title, err)
		}
		sec.Render()
	}
	return nil
}

func describeFlags(sec *ui.Section, d *typeinfo.TypeDescriptor) {
	f := d.Flags()
	sec.AddLinef("Name: %s", d.Name())
	sec.AddLinef("NameSpace: %s", d.Namespace())
	sec.AddLinef("IsPublic: %s", strconv.FormatBool(f.Public))
	sec.AddLinef("IsAbstract: %s", strconv.FormatBool(f.Abstract))
	sec.AddLinef("IsGeneric: %s", strconv.FormatBool(f.Generic))
	sec.AddLinef("IsEnum: %s", strconv.FormatBool(f.Enum))
	sec.AddLinef("IsValueType: %s", strconv.FormatBool(f.ValueType))
}

func addValues(sec *ui.Section, inv *typeinfo.Invoker, d *typeinfo.TypeDescriptor, inst *typeinfo.Instance) {
	for _, p := range snapshot(inv, d, inst) {
		sec.AddLinef("%s: %s - value: %v", p.Name, p.Type, p.Value)
	}
}

func addInvocation(sec *ui.Section, inv *typeinfo.Invoker, ctorArgs []any, method string, args ...any) error {
	inst, err := inv.Construct(sample.MyClassID, ctorArgs...)
	if err != nil {
		return err
	}
	out, err := inv.InvokeMethod(inst, method, args...)
	if err != nil {
		return err
	}
	sec.AddLinef("output of method: %v", out)
	return nil
}
