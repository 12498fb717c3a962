package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Detail       string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ TYPE NOT FOUND: Cannot find type 'sample.MyClas'.
//
//	   Did you mean: sample.MyClass?
//
//	   → See all types: typeinfo introspect types
func FormatError(opts ErrorOptions) string {
	var symbol string
	var tone color.Attribute
	switch opts.Level {
	case ErrorLevelWarning:
		symbol, tone = "⚠️", color.FgYellow
	case ErrorLevelInfo:
		symbol, tone = "ℹ️", color.FgCyan
	default:
		symbol, tone = "❌", color.FgRed
	}
	head := styled(opts.NoColor, tone, color.Bold)
	body := styled(opts.NoColor, tone)

	var b strings.Builder
	if opts.Context != "" {
		head.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		head.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Detail != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", opts.Detail)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		styled(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := styled(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// TypeNotFoundError creates a standardized type not found error
func TypeNotFoundError(id string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:     "TYPE NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find type '%s'.", id),
		Suggestions: suggestions,
		HelpCommands: []string{
			"See all types: typeinfo introspect types",
			"Get help: typeinfo introspect --help",
		},
		NoColor: noColor,
	})
}

// MemberNotFoundError creates a standardized error for an unknown method or
// property of a type. kind is "method" or "property".
func MemberNotFoundError(kind, typeID, member string, suggestions []string, noColor bool) string {
	list := "methods"
	if kind == "property" {
		list = "props"
	}
	return FormatError(ErrorOptions{
		Context:     strings.ToUpper(kind) + " NOT FOUND",
		Problem:     fmt.Sprintf("Type '%s' has no %s '%s'.", typeID, kind, member),
		Suggestions: suggestions,
		HelpCommands: []string{
			fmt.Sprintf("See members: typeinfo introspect %s %s", list, typeID),
		},
		NoColor: noColor,
	})
}

// EngineError renders an error returned by the typeinfo engine. Errors of
// other origins are rendered as a plain failure.
func EngineError(err error, suggestions []string, noColor bool) string {
	var e *typeinfo.Error
	if !errors.As(err, &e) {
		return FormatError(ErrorOptions{Context: "FAILED", Problem: err.Error(), NoColor: noColor})
	}

	switch e.Kind {
	case typeinfo.KindNotFound:
		return TypeNotFoundError(string(e.Type), suggestions, noColor)
	case typeinfo.KindMethodNotFound:
		return MemberNotFoundError("method", string(e.Type), e.Member, suggestions, noColor)
	case typeinfo.KindPropertyNotFound:
		return MemberNotFoundError("property", string(e.Type), e.Member, suggestions, noColor)
	}

	opts := ErrorOptions{
		Context: strings.ReplaceAll(string(e.Kind), "_", " "),
		Problem: fmt.Sprintf("[%s] %s", e.Kind.Code(), strings.TrimPrefix(e.Error(), e.Kind.Code()+": ")),
		NoColor: noColor,
	}
	switch e.Kind {
	case typeinfo.KindNoMatchingConstructor:
		opts.HelpCommands = []string{fmt.Sprintf("See constructors: typeinfo introspect ctors %s", e.Type)}
	case typeinfo.KindArityMismatch:
		opts.HelpCommands = []string{fmt.Sprintf("See signatures: typeinfo introspect methods %s", e.Type)}
	case typeinfo.KindPropertyReadOnly, typeinfo.KindPropertyWriteOnly:
		opts.HelpCommands = []string{fmt.Sprintf("See accessors: typeinfo introspect props %s", e.Type)}
	case typeinfo.KindConstructionFailed, typeinfo.KindInvocationFailed:
		if errors.Is(err, typeinfo.ErrArgumentType) {
			opts.Detail = "Arguments are passed as-is; check the declared parameter types."
		}
	}
	return FormatError(opts)
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"View config: cat typeinfo.yml",
			"Get help: typeinfo --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelInfo, Problem: message, NoColor: noColor})
}
