package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/typeinfo/internal/sample"
	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// NewCompletionCommand creates the completion command for shell completions
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for the typeinfo CLI.

Type identifiers, method names and property names complete from the
registry.

To load completions:

Bash:

  $ source <(typeinfo completion bash)

Zsh:

  $ typeinfo completion zsh > "${fpath[1]}/_typeinfo"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ typeinfo completion fish | source

PowerShell:

  PS> typeinfo completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Generating a script needs no registry
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completionRegistry returns the registry completions read from. Shell
// completion runs without the persistent pre-run, so the sample types are
// registered on demand.
func (s *session) completionRegistry() *typeinfo.Registry {
	if s.registry != nil {
		return s.registry
	}
	r := typeinfo.NewRegistry()
	if err := sample.Register(r); err != nil {
		return r
	}
	s.registry = r
	return r
}

// completeTypeID completes the first positional argument with type identifiers
func (s *session) completeTypeID(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, id := range s.completionRegistry().Types() {
		if strings.HasPrefix(id.String(), toComplete) {
			out = append(out, id.String())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeMember completes a type identifier, then a member name of that type
func (s *session) completeMember(members func(d *typeinfo.TypeDescriptor) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		switch len(args) {
		case 0:
			return s.completeTypeID(cmd, args, toComplete)
		case 1:
			d, err := s.completionRegistry().Describe(typeinfo.TypeID(args[0]))
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var out []string
			for _, name := range members(d) {
				if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
					out = append(out, name)
				}
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func methodNames(d *typeinfo.TypeDescriptor) []string { return typeinfo.MethodNames(d, true) }

func propertyNames(d *typeinfo.TypeDescriptor) []string { return typeinfo.PropertyNames(d) }
