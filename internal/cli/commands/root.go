package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/typeinfo/internal/cli/config"
	"github.com/conduit-lang/typeinfo/internal/cli/ui"
	"github.com/conduit-lang/typeinfo/internal/logging"
	"github.com/conduit-lang/typeinfo/internal/sample"
	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configPath string
	format     string
	noColor    bool
	logLevel   string
}

// session carries the state a command run needs once the persistent flags
// are parsed: configuration, logger and the populated registry.
type session struct {
	flags    globalFlags
	cfg      *config.Config
	logger   *zap.Logger
	registry *typeinfo.Registry
	invoker  *typeinfo.Invoker
	prompt   prompter
}

// configError marks failures that come from loading or validating configuration
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&session{prompt: surveyPrompter{}})
}

func newRootCommand(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typeinfo",
		Short: "Runtime type introspection and late binding",
		Long: color.CyanString(`typeinfo - runtime type introspection and late binding

Describe registered types, enumerate their constructors, methods, properties
and tags, and construct instances or invoke members by name at runtime.

Features:
  • Registry of immutable type descriptors built once per type
  • Overload selection by argument count
  • Synthesized get_X / set_X accessors for properties
  • Tag records attached at registration
  • Reference graph with cycle detection`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&s.flags.configPath, "config", "", "Path to a config file (default: typeinfo.yml in the working directory)")
	pf.StringVar(&s.flags.format, "format", "table", "Output format: table, json or yaml")
	pf.BoolVar(&s.flags.noColor, "no-color", false, "Disable colored output")
	pf.StringVar(&s.flags.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newIntrospectCommand(s))
	rootCmd.AddCommand(newInvokeCommand(s))
	rootCmd.AddCommand(newDemoCommand(s))
	rootCmd.AddCommand(newExploreCommand(s))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// init loads configuration, applies flag overrides and populates the registry
func (s *session) init(cmd *cobra.Command) error {
	cfg, err := config.Load(s.flags.configPath)
	if err != nil {
		return &configError{err: err}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = s.flags.format
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = s.flags.noColor
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = s.flags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return &configError{err: err}
	}
	s.cfg = cfg

	if cfg.Output.NoColor {
		color.NoColor = true
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return &configError{err: err}
	}
	s.logger = logger

	s.registry = typeinfo.NewRegistry(typeinfo.WithAutoIntrospect(cfg.Registry.AutoIntrospect))
	if err := sample.Register(s.registry); err != nil {
		return fmt.Errorf("failed to register sample types: %w", err)
	}
	s.invoker = typeinfo.NewInvoker(s.registry)

	s.logger.Debug("registry ready",
		zap.Int("types", s.registry.Len()),
		zap.Bool("auto_introspect", cfg.Registry.AutoIntrospect),
		zap.String("format", cfg.Output.Format))
	return nil
}

// noColor reports whether colored output is disabled for this run
func (s *session) noColor() bool {
	if s.cfg != nil {
		return s.cfg.Output.NoColor
	}
	return s.flags.noColor
}

// describeError renders err for the terminal, with suggestions for unknown
// types and members.
func (s *session) describeError(err error) string {
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ui.ConfigError(cfgErr.Error(), s.noColor())
	}

	var e *typeinfo.Error
	if errors.As(err, &e) && s.registry != nil {
		return ui.EngineError(err, s.suggest(e), s.noColor())
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if s.noColor() {
		errorColor.DisableColor()
	}
	return errorColor.Sprintf("Error: %v\n", err)
}

// suggest returns near matches for the unknown name carried by e
func (s *session) suggest(e *typeinfo.Error) []string {
	switch e.Kind {
	case typeinfo.KindNotFound:
		ids := s.registry.Types()
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = id.String()
		}
		return ui.SuggestTypeIDs(e.Type.String(), names)
	case typeinfo.KindMethodNotFound, typeinfo.KindPropertyNotFound:
		d, err := s.registry.Describe(e.Type)
		if err != nil {
			return nil
		}
		if e.Kind == typeinfo.KindMethodNotFound {
			return ui.FindSimilar(e.Member, typeinfo.MethodNames(d, true), nil)
		}
		return ui.FindSimilar(e.Member, typeinfo.PropertyNames(d), nil)
	}
	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the typeinfo version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			// Set GoVersion to actual runtime if not set at build time
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Fprint(out, "typeinfo version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	s := &session{prompt: surveyPrompter{}}
	rootCmd := newRootCommand(s)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(rootCmd.ErrOrStderr(), s.describeError(err))
		return err
	}
	return nil
}
