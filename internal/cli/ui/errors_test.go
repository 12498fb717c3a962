package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
		excludes []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "type not found",
				Problem: "Cannot find type 'sample.X'.",
			},
			contains: []string{"❌", "TYPE NOT FOUND: Cannot find type 'sample.X'."},
			excludes: []string{"Did you mean"},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Problem:     "Cannot find type 'MyClas'.",
				Suggestions: []string{"sample.MyClass", "sample.Point"},
			},
			contains: []string{"Did you mean: sample.MyClass, sample.Point?"},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Problem:      "bad",
				HelpCommands: []string{"See all types: typeinfo introspect types"},
			},
			contains: []string{"→ See all types: typeinfo introspect types"},
		},
		{
			name:     "warning",
			opts:     ErrorOptions{Level: ErrorLevelWarning, Problem: "careful"},
			contains: []string{"⚠️ careful"},
		},
		{
			name:     "info with detail",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "note", Detail: "more"},
			contains: []string{"ℹ️ note", "   more"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatError(tt.opts)
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, out)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("expected output not to contain %q, got:\n%s", s, out)
				}
			}
		})
	}
}

func TestLevelHelpers(t *testing.T) {
	if !strings.Contains(Warning("w", true), "⚠️ w") || !strings.Contains(Info("i", true), "ℹ️ i") {
		t.Error("warning/info symbols missing")
	}
	if !strings.Contains(ConfigError("bad format", true), "CONFIGURATION ERROR: bad format") {
		t.Error("config error header missing")
	}
}

func TestEngineError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "type not found",
			err:      &typeinfo.Error{Kind: typeinfo.KindNotFound, Type: "sample.MyClas"},
			contains: []string{"TYPE NOT FOUND", "'sample.MyClas'", "Did you mean: sample.MyClass?"},
		},
		{
			name:     "method not found",
			err:      &typeinfo.Error{Kind: typeinfo.KindMethodNotFound, Type: "sample.MyClass", Member: "Nope"},
			contains: []string{"METHOD NOT FOUND", "has no method 'Nope'", "typeinfo introspect methods sample.MyClass"},
		},
		{
			name:     "property not found",
			err:      &typeinfo.Error{Kind: typeinfo.KindPropertyNotFound, Type: "sample.MyClass", Member: "Nope"},
			contains: []string{"PROPERTY NOT FOUND", "typeinfo introspect props sample.MyClass"},
		},
		{
			name:     "no matching constructor",
			err:      &typeinfo.Error{Kind: typeinfo.KindNoMatchingConstructor, Type: "sample.MyClass", Arity: 4},
			contains: []string{"NO MATCHING CONSTRUCTOR", "[TI002]", "accepts 4 argument(s)", "introspect ctors sample.MyClass"},
		},
		{
			name: "wrapped argument type failure",
			err: fmt.Errorf("call: %w", &typeinfo.Error{
				Kind: typeinfo.KindInvocationFailed, Type: "sample.MyClass", Member: "M",
				Err: fmt.Errorf("%w: argument 0 is int, want string", typeinfo.ErrArgumentType),
			}),
			contains: []string{"INVOCATION FAILED", "[TI011]", "check the declared parameter types"},
		},
		{
			name:     "foreign error",
			err:      errors.New("disk on fire"),
			contains: []string{"FAILED: disk on fire"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := EngineError(tt.err, []string{"sample.MyClass"}, true)
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, out)
				}
			}
		})
	}
}
