package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"NAME", "TYPE", "ACCESS"}, &TableOptions{NoColor: true})
	table.AddRow("Id", "int", "get; set;")
	table.AddRow("MyProperty", "string", "get;")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}

	if lines[0] != "NAME        TYPE    ACCESS" {
		t.Errorf("header line: got %q", lines[0])
	}
	if lines[1] != "──────────  ──────  ─────────" {
		t.Errorf("separator line: got %q", lines[1])
	}
	if lines[2] != "Id          int     get; set;" {
		t.Errorf("first row: got %q", lines[2])
	}
	if lines[3] != "MyProperty  string  get;" {
		t.Errorf("second row: got %q", lines[3])
	}
}

func TestTable_RaggedRows(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"A", "B"}, nil)
	table.AddRow("only")
	table.AddRow("x", "y", "dropped")
	table.Render()

	if table.Len() != 2 {
		t.Errorf("Len: got %d, want 2", table.Len())
	}
	if strings.Contains(buf.String(), "dropped") {
		t.Error("cells beyond the header count should not render")
	}
}

func TestTable_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf, nil, nil).Render()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestTable_MultiByteWidths(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"K", "V"}, &TableOptions{NoColor: true})
	table.AddRow("→", "x")
	table.AddRow("ab", "y")
	table.Render()

	lines := strings.Split(buf.String(), "\n")
	if lines[2] != "→   x" {
		t.Errorf("multi-byte cell misaligned: %q", lines[2])
	}
}

func TestKeyValueTable_Render(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Name", "MyClass")
	kv.AddRow("Namespace", "sample")
	kv.Render()

	want := "Name:      MyClass\nNamespace: sample\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestSection_Render(t *testing.T) {
	var buf bytes.Buffer
	s := NewSection(&buf, "Constructors", true)
	s.AddLine("MyClass()")
	s.AddLinef("MyClass(%s)", "int id")
	s.Render()

	want := "Constructors\n  MyClass()\n  MyClass(int id)\n\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	NewSection(&buf, "Tags", true).Render()
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("empty section should say (none), got %q", buf.String())
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Type", true)
	if buf.String() != "Type\n────\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	Divider(&buf, 0, true)
	if got := strings.Count(buf.String(), "─"); got != 80 {
		t.Errorf("default divider width: got %d", got)
	}
}
