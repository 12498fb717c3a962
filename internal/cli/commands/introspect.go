package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// newIntrospectCommand creates the introspect command group
func newIntrospectCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Introspect registered types",
		Long: `Introspect the types registered in the runtime registry.

The introspect command lists registered types and enumerates the members of a
single type: constructors, methods, properties and tags. It can also walk the
reference graph formed by the types named in member signatures.

This is useful for:
  • Discovering what can be constructed or invoked by name
  • Checking overloads and accessor availability
  • Finding which types refer to each other
  • Building tooling on top of the JSON or YAML output`,
		Example: `  # List all registered types
  typeinfo introspect types

  # List the types in the sample namespace
  typeinfo introspect types 'sample.*'

  # Describe a single type
  typeinfo introspect type sample.MyClass

  # Show methods including synthesized get_/set_ accessors
  typeinfo introspect methods sample.MyClass --specials

  # Show what refers to Point
  typeinfo introspect refs sample.Point --reverse

  # Output in JSON format for tooling
  typeinfo introspect type sample.MyClass --format json`,
	}

	cmd.AddCommand(newIntrospectTypesCommand(s))
	cmd.AddCommand(newIntrospectTypeCommand(s))
	cmd.AddCommand(newIntrospectCtorsCommand(s))
	cmd.AddCommand(newIntrospectMethodsCommand(s))
	cmd.AddCommand(newIntrospectPropsCommand(s))
	cmd.AddCommand(newIntrospectTagsCommand(s))
	cmd.AddCommand(newIntrospectRefsCommand(s))

	for _, sub := range cmd.Commands() {
		if sub.Name() != "types" {
			sub.ValidArgsFunction = s.completeTypeID
		}
	}

	return cmd
}

// newIntrospectTypesCommand creates the 'introspect types' command
func newIntrospectTypesCommand(s *session) *cobra.Command {
	var filter typeinfo.TypeFilter

	cmd := &cobra.Command{
		Use:   "types [pattern]",
		Short: "List registered types",
		Long: `List registered types in registration order.

The optional pattern matches type identifiers, with * matching any run of
characters ("sample.*", "*Class").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filter.Pattern = args[0]
			}
			types := typeinfo.NewQuery(s.registry).Types(filter)
			s.logger.Debug("listed types", zap.String("pattern", filter.Pattern), zap.Int("matches", len(types)))
			return s.write(cmd.OutOrStdout(), newTypeList(types))
		},
	}

	cmd.Flags().StringVar(&filter.Namespace, "namespace", "", "Only types in this namespace")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "Only types carrying this tag")
	cmd.Flags().BoolVar(&filter.PublicOnly, "public", false, "Only public types")

	return cmd
}

// newIntrospectTypeCommand creates the 'introspect type' command
func newIntrospectTypeCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "type <id>",
		Short: "Show everything known about a type",
		Long: `Show the flags, constructors, methods, properties and tags of a type.

A bare type name is accepted when it is unique across namespaces.`,
		Example: `  typeinfo introspect type sample.MyClass
  typeinfo introspect type Point --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.resolveType(args[0])
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), typeDetail{d})
		},
	}
}

// newIntrospectCtorsCommand creates the 'introspect ctors' command
func newIntrospectCtorsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "ctors <id>",
		Aliases: []string{"constructors"},
		Short:   "List the constructors of a type",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.resolveType(args[0])
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), constructorList{
				Type:         d.ID(),
				Constructors: typeinfo.ConstructorsOf(d),
				name:         d.Name(),
			})
		},
	}
}

// newIntrospectMethodsCommand creates the 'introspect methods' command
func newIntrospectMethodsCommand(s *session) *cobra.Command {
	var specials bool

	cmd := &cobra.Command{
		Use:   "methods <id>",
		Short: "List the methods of a type",
		Long: `List the methods of a type in declaration order.

With --specials the synthesized property accessors (get_X, set_X) are
listed after the declared methods.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.resolveType(args[0])
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), methodList{Type: d.ID(), Methods: typeinfo.MethodsOf(d, specials)})
		},
	}

	cmd.Flags().BoolVar(&specials, "specials", false, "Include synthesized property accessors")

	return cmd
}

// newIntrospectPropsCommand creates the 'introspect props' command
func newIntrospectPropsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "props <id>",
		Aliases: []string{"properties"},
		Short:   "List the properties of a type with their accessors",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.resolveType(args[0])
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), propertyList{Type: d.ID(), Properties: typeinfo.PropertiesOf(d)})
		},
	}
}

// newIntrospectTagsCommand creates the 'introspect tags' command
func newIntrospectTagsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <id>",
		Short: "List the tags attached to a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.resolveType(args[0])
			if err != nil {
				return err
			}
			tags, err := typeinfo.TagsOfType(s.registry, d.ID())
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), tagList{Type: d.ID(), Tags: tags})
		},
	}
}

// newIntrospectRefsCommand creates the 'introspect refs' command
func newIntrospectRefsCommand(s *session) *cobra.Command {
	var (
		opts  typeinfo.ReferenceOptions
		kinds []string
	)

	cmd := &cobra.Command{
		Use:   "refs <id>",
		Short: "Show the types a type refers to",
		Long: `Show the reference graph around a type.

A type refers to another when a property type, parameter type or return type
of one of its members names it. With --reverse the graph lists the types that
refer to the given type instead. Cycles inside the result are reported.`,
		Example: `  # Direct references of MyClass
  typeinfo introspect refs sample.MyClass --depth 1

  # Everything that refers to Point through parameters
  typeinfo introspect refs sample.Point --reverse --kind parameter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Depth < 0 {
				return fmt.Errorf("--depth must not be negative, got %d", opts.Depth)
			}
			opts.Kinds = nil
			for _, k := range kinds {
				kind := typeinfo.ReferenceKind(k)
				switch kind {
				case typeinfo.RefProperty, typeinfo.RefParameter, typeinfo.RefReturn:
					opts.Kinds = append(opts.Kinds, kind)
				default:
					return fmt.Errorf("unknown reference kind %q (supported: property, parameter, return)", k)
				}
			}

			d, err := s.resolveType(args[0])
			if err != nil {
				return err
			}
			g, err := typeinfo.QueryReferences(s.registry, d.ID(), opts)
			if err != nil {
				return err
			}
			return s.write(cmd.OutOrStdout(), referenceView{
				Root:    d.ID(),
				Reverse: opts.Reverse,
				Nodes:   g.Nodes,
				Edges:   g.Edges,
				Cycles:  g.Cycles(),
			})
		},
	}

	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Traversal depth (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.Reverse, "reverse", false, "Show the types referring to the given type")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only follow these reference kinds: property, parameter, return")

	return cmd
}

// resolveType describes id, accepting a bare type name when exactly one
// registered type carries it.
func (s *session) resolveType(id string) (*typeinfo.TypeDescriptor, error) {
	d, err := s.registry.Describe(typeinfo.TypeID(id))
	if err == nil {
		return d, nil
	}

	var match *typeinfo.TypeDescriptor
	for _, candidate := range s.registry.Descriptors() {
		if candidate.Name() != id {
			continue
		}
		if match != nil {
			return nil, err
		}
		match = candidate
	}
	if match == nil {
		return nil, err
	}
	s.logger.Debug("resolved bare type name", zap.String("name", id), zap.Stringer("type", match.ID()))
	return match, nil
}
