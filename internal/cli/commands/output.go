package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formatter is an interface for formatting output
type Formatter interface {
	Format(data interface{}) error
}

// tableRenderer is implemented by command results that know their table layout
type tableRenderer interface {
	renderTable(w io.Writer, noColor bool)
}

// TableFormatter formats output as human-readable tables
type TableFormatter struct {
	writer  io.Writer
	noColor bool
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer, noColor bool) *TableFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &TableFormatter{writer: w, noColor: noColor}
}

// Format formats data as a table
func (f *TableFormatter) Format(data interface{}) error {
	if r, ok := data.(tableRenderer); ok {
		r.renderTable(f.writer, f.noColor)
		return nil
	}
	fmt.Fprintln(f.writer, formatAsTable(data))
	return nil
}

// formatAsTable converts data without a table layout to a simple listing
func formatAsTable(data interface{}) string {
	// Handle maps
	if m, ok := data.(map[string]interface{}); ok {
		var lines []string
		// Sort keys for consistent output
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%-20s %v", k+":", m[k]))
		}
		return strings.Join(lines, "\n")
	}

	// Handle slices
	if s, ok := data.([]interface{}); ok {
		var lines []string
		for i, item := range s {
			lines = append(lines, fmt.Sprintf("%d. %v", i+1, item))
		}
		return strings.Join(lines, "\n")
	}

	// Fallback
	return fmt.Sprintf("%+v", data)
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

// Format formats data as JSON
func (f *JSONFormatter) Format(data interface{}) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &YAMLFormatter{writer: w}
}

// Format formats data as YAML
func (f *YAMLFormatter) Format(data interface{}) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// GetFormatter returns the appropriate formatter based on the format parameter
func GetFormatter(format string, writer io.Writer, noColor bool) (Formatter, error) {
	if writer == nil {
		writer = os.Stdout
	}
	switch strings.ToLower(format) {
	case "json":
		return NewJSONFormatter(writer), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	case "table":
		return NewTableFormatter(writer, noColor), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", format)
	}
}

// write renders data in the session's output format
func (s *session) write(w io.Writer, data interface{}) error {
	f, err := GetFormatter(s.cfg.Output.Format, w, s.cfg.Output.NoColor)
	if err != nil {
		return err
	}
	return f.Format(data)
}
