package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/typeinfo/internal/cli/ui"
	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// prompter asks the user to pick or type a value
type prompter interface {
	Select(message string, options []string) (string, error)
	Input(message string) (string, error)
}

// surveyPrompter prompts on the terminal
type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string) (string, error) {
	var answer string
	prompt := &survey.Select{Message: message, Options: options, PageSize: 15}
	err := survey.AskOne(prompt, &answer)
	return answer, err
}

func (surveyPrompter) Input(message string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message}, &answer)
	return answer, err
}

const (
	actionDescribe  = "Describe"
	actionCtors     = "Constructors"
	actionMethods   = "Methods"
	actionProps     = "Properties"
	actionTags      = "Tags"
	actionRefs      = "References"
	actionConstruct = "Construct"
	actionCall      = "Call a method"
	actionGet       = "Read a property"
	actionBack      = "Back"
	choiceQuit      = "Quit"
)

// newExploreCommand creates the explore command
func newExploreCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Browse types and invoke members interactively",
		Long: `Browse registered types interactively.

Pick a type, then list its members, construct an instance, call a method or
read a property. Arguments are typed as comma-separated values and converted
to the parameter types of the selected overload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := s.explore(cmd.OutOrStdout())
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		},
	}
}

func (s *session) explore(w io.Writer) error {
	for {
		ids := s.registry.Types()
		options := make([]string, 0, len(ids)+1)
		for _, id := range ids {
			options = append(options, id.String())
		}
		options = append(options, choiceQuit)

		choice, err := s.prompt.Select("Type:", options)
		if err != nil {
			return err
		}
		if choice == choiceQuit {
			return nil
		}

		d, err := s.registry.Describe(typeinfo.TypeID(choice))
		if err != nil {
			return err
		}
		if err := s.exploreType(w, d); err != nil {
			return err
		}
	}
}

func (s *session) exploreType(w io.Writer, d *typeinfo.TypeDescriptor) error {
	actions := []string{
		actionDescribe, actionCtors, actionMethods, actionProps, actionTags, actionRefs,
		actionConstruct, actionCall, actionGet, actionBack,
	}
	for {
		action, err := s.prompt.Select(d.ID().String()+":", actions)
		if err != nil {
			return err
		}
		s.logger.Debug("explore action", zap.Stringer("type", d.ID()), zap.String("action", action))

		var view interface{}
		switch action {
		case actionBack:
			return nil
		case actionDescribe:
			view = typeDetail{d}
		case actionCtors:
			view = constructorList{Type: d.ID(), Constructors: typeinfo.ConstructorsOf(d), name: d.Name()}
		case actionMethods:
			view = methodList{Type: d.ID(), Methods: typeinfo.MethodsOf(d, true)}
		case actionProps:
			view = propertyList{Type: d.ID(), Properties: typeinfo.PropertiesOf(d)}
		case actionTags:
			view = tagList{Type: d.ID(), Tags: typeinfo.TagsOf(d)}
		case actionRefs:
			g, err := typeinfo.QueryReferences(s.registry, d.ID(), typeinfo.ReferenceOptions{Depth: 1})
			if err != nil {
				return err
			}
			view = referenceView{Root: d.ID(), Nodes: g.Nodes, Edges: g.Edges, Cycles: g.Cycles()}
		case actionConstruct, actionCall, actionGet:
			view, err = s.exploreInstance(d, action)
		default:
			err = fmt.Errorf("unknown action %q", action)
		}

		// Member failures are reported and the loop continues
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return err
			}
			fmt.Fprint(w, s.describeError(err))
			continue
		}
		if err := s.write(w, view); err != nil {
			return err
		}
		ui.Divider(w, 0, s.noColor())
	}
}

// exploreInstance prompts for constructor arguments and, for member actions,
// the member and its arguments.
func (s *session) exploreInstance(d *typeinfo.TypeDescriptor, action string) (interface{}, error) {
	raw, err := s.prompt.Input("Constructor arguments (comma-separated, empty for none):")
	if err != nil {
		return nil, err
	}
	_, inst, err := s.construct(d.ID().String(), splitList(raw))
	if err != nil {
		return nil, err
	}
	view := s.instanceView(d, inst)

	switch action {
	case actionCall:
		names := typeinfo.MethodNames(d, true)
		if len(names) == 0 {
			return nil, &typeinfo.Error{Kind: typeinfo.KindMethodNotFound, Type: d.ID()}
		}
		method, err := s.prompt.Select("Method:", names)
		if err != nil {
			return nil, err
		}
		rawArgs, err := s.prompt.Input("Arguments (comma-separated, empty for none):")
		if err != nil {
			return nil, err
		}
		args, err := methodArgs(d, method, splitList(rawArgs))
		if err != nil {
			return nil, err
		}
		result, err := s.invoker.InvokeMethod(inst, method, args...)
		if err != nil {
			return nil, err
		}
		view = s.instanceView(d, inst)
		view.Member, view.Result, view.hasResult = method, result, true
	case actionGet:
		names := typeinfo.PropertyNames(d)
		if len(names) == 0 {
			return nil, &typeinfo.Error{Kind: typeinfo.KindPropertyNotFound, Type: d.ID()}
		}
		prop, err := s.prompt.Select("Property:", names)
		if err != nil {
			return nil, err
		}
		value, err := s.invoker.GetProperty(inst, prop)
		if err != nil {
			return nil, err
		}
		view.Member, view.Result, view.hasResult = prop, value, true
	}
	return view, nil
}
