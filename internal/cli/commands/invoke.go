package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/typeinfo/internal/cli/ui"
	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// newInvokeCommand creates the invoke command group
func newInvokeCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Construct instances and access members by name",
		Long: `Construct instances and access their members by name at runtime.

Arguments are given as strings and converted to the parameter types of the
overload selected by argument count. Each command constructs a fresh
instance; --ctor-args selects the constructor used for it.`,
		Example: `  # Construct with the three-argument constructor
  typeinfo invoke new sample.MyClass 1 Test1 Test2

  # Call a method on an instance built with constructor arguments
  typeinfo invoke call sample.MyClass GetMyPropertyWithWord hello --ctor-args 5,Test10,Test11

  # Set a property, matched case-insensitively when unambiguous
  typeinfo invoke set sample.MyClass Myproperty1 Test7`,
	}

	newCmd := newInvokeNewCommand(s)
	newCmd.ValidArgsFunction = s.completeTypeID
	callCmd := newInvokeCallCommand(s)
	callCmd.ValidArgsFunction = s.completeMember(methodNames)
	getCmd := newInvokeGetCommand(s)
	getCmd.ValidArgsFunction = s.completeMember(propertyNames)
	setCmd := newInvokeSetCommand(s)
	setCmd.ValidArgsFunction = s.completeMember(propertyNames)

	cmd.AddCommand(newCmd, callCmd, getCmd, setCmd)

	return cmd
}

// newInvokeNewCommand creates the 'invoke new' command
func newInvokeNewCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "new <id> [args...]",
		Short: "Construct an instance and show its properties",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, inst, err := s.construct(args[0], args[1:])
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), s.instanceView(d, inst))
		},
	}
}

// newInvokeCallCommand creates the 'invoke call' command
func newInvokeCallCommand(s *session) *cobra.Command {
	var ctorArgs []string

	cmd := &cobra.Command{
		Use:   "call <id> <method> [args...]",
		Short: "Call a method on a new instance",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, inst, err := s.construct(args[0], ctorArgs)
			if err != nil {
				return err
			}
			callArgs, err := methodArgs(d, args[1], args[2:])
			if err != nil {
				return err
			}

			s.logger.Debug("invoking method",
				zap.Stringer("instance", inst),
				zap.String("method", args[1]),
				zap.Int("arity", len(callArgs)))
			result, err := s.invoker.InvokeMethod(inst, args[1], callArgs...)
			if err != nil {
				return err
			}

			view := s.instanceView(d, inst)
			view.Member, view.Result, view.hasResult = args[1], result, true
			return s.write(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringSliceVar(&ctorArgs, "ctor-args", nil, "Constructor arguments, comma-separated")

	return cmd
}

// newInvokeGetCommand creates the 'invoke get' command
func newInvokeGetCommand(s *session) *cobra.Command {
	var ctorArgs []string

	cmd := &cobra.Command{
		Use:   "get <id> <property>",
		Short: "Read a property of a new instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, inst, err := s.construct(args[0], ctorArgs)
			if err != nil {
				return err
			}
			value, err := s.invoker.GetProperty(inst, args[1])
			if err != nil {
				return err
			}

			view := s.instanceView(d, inst)
			view.Member, view.Result, view.hasResult = args[1], value, true
			return s.write(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringSliceVar(&ctorArgs, "ctor-args", nil, "Constructor arguments, comma-separated")

	return cmd
}

// newInvokeSetCommand creates the 'invoke set' command
func newInvokeSetCommand(s *session) *cobra.Command {
	var ctorArgs []string

	cmd := &cobra.Command{
		Use:   "set <id> <property> <value>",
		Short: "Write a property of a new instance and read it back",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, inst, err := s.construct(args[0], ctorArgs)
			if err != nil {
				return err
			}
			value, err := propertyValueArg(d, args[1], args[2])
			if err != nil {
				return err
			}

			s.logger.Debug("setting property",
				zap.Stringer("instance", inst),
				zap.String("property", args[1]),
				zap.Any("value", value))
			if err := s.invoker.SetProperty(inst, args[1], value); err != nil {
				return err
			}

			view := s.instanceView(d, inst)
			view.Member = args[1]
			if got, err := s.invoker.GetProperty(inst, args[1]); err == nil {
				view.Result, view.hasResult = got, true
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("%s is write-only; value not read back", args[1]), s.noColor()))
			}
			return s.write(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringSliceVar(&ctorArgs, "ctor-args", nil, "Constructor arguments, comma-separated")

	return cmd
}

// construct resolves id and builds an instance from raw constructor arguments
func (s *session) construct(id string, raw []string) (*typeinfo.TypeDescriptor, *typeinfo.Instance, error) {
	d, err := s.resolveType(id)
	if err != nil {
		return nil, nil, err
	}
	args, err := constructorArgs(d, raw)
	if err != nil {
		return nil, nil, err
	}

	inst, err := s.invoker.ConstructDescriptor(d, args...)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("constructed instance", zap.Stringer("instance", inst), zap.Int("arity", len(args)))
	return d, inst, nil
}

func (s *session) instanceView(d *typeinfo.TypeDescriptor, inst *typeinfo.Instance) instanceView {
	return instanceView{
		Instance:   inst.String(),
		Type:       inst.Type(),
		Properties: snapshot(s.invoker, d, inst),
	}
}
