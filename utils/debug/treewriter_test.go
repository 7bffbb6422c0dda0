package debug

import (
	"bytes"
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "value: %d", []any{42}, "  value: 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Node(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		flags []string
		want  string
	}{
		{"no flags", 0, "<p>", nil, "<p>\n"},
		{"empty flags skipped", 1, "<b>", []string{"", "inline", ""}, "  <b> [inline]\n"},
		{"several flags", 2, `"text"`, []string{"focusable", "mergeable"}, `    "text" [focusable mergeable]` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Node(tt.depth, tt.label, tt.flags...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Node() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{"empty value", 0, "field", "", "field: \n"},
		{"depth 1 with value", 1, "content", "test", "  content: \"test\"\n"},
		{"value with quotes", 0, "quoted", "he said \"hello\"", "quoted: \"he said \\\"hello\\\"\"\n"},
		{"value with newline", 0, "multiline", "line1\nline2", "multiline: \"line1\\nline2\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_WriteTo(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "root")
	tw.Node(1, "child", "grouped")

	var buf bytes.Buffer
	n, err := tw.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	want := "root\n  child [grouped]\n"
	if buf.String() != want || n != int64(len(want)) {
		t.Errorf("WriteTo() = %q (%d), want %q", buf.String(), n, want)
	}
}

func TestEncodeText(t *testing.T) {
	for input, want := range map[string]string{
		"":             "",
		"hello":        `"hello"`,
		"col1\tcol2":   `"col1\tcol2"`,
		`path\to\file`: `"path\\to\\file"`,
	} {
		if got := encodeText(input); got != want {
			t.Errorf("encodeText(%q) = %q, want %q", input, got, want)
		}
	}
}
