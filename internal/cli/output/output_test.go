package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"auto", "text", "markdown", "json"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q): %v", valid, err)
		}
	}
	if _, err := ParseMode("yaml"); err == nil {
		t.Error("ParseMode(yaml) should fail")
	}
}

func TestEffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeAuto)
	if got := r.EffectiveMode(); got != ModeText {
		t.Errorf("auto resolved to %q, want text", got)
	}
	r = NewRendererWithTTY(&out, &errOut, false, ModeJSON)
	if got := r.EffectiveMode(); got != ModeJSON {
		t.Errorf("json resolved to %q", got)
	}
}

func TestPlainTextHasNoEscapes(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeAuto)
	r.Header("Result")
	r.StatusLine("value", "42")
	if s := out.String(); strings.Contains(s, "\x1b[") {
		t.Errorf("non-TTY output contains escape codes: %q", s)
	}
	if !strings.Contains(out.String(), "Result") || !strings.Contains(out.String(), "value: 42") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMarkdownMode(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeMarkdown)
	r.Header("Roots")
	r.StatusLine("root", "2")
	s := out.String()
	if !strings.Contains(s, "## Roots") {
		t.Errorf("markdown header missing: %q", s)
	}
	if !strings.Contains(s, "- **root**: 2") {
		t.Errorf("markdown status line missing: %q", s)
	}
}

func TestJSONRendering(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeJSON)
	if err := r.JSON(map[string]any{"result": "42"}); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if doc["result"] != "42" {
		t.Errorf("got %v", doc)
	}
}

func TestTable(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)
	r.Table([]string{"#", "root"}, [][]string{{"1", "2"}, {"2", "-2"}})
	s := out.String()
	// go-pretty renders headers upper-cased by default.
	for _, want := range []string{"ROOT", "2", "-2"} {
		if !strings.Contains(s, want) {
			t.Errorf("table output missing %q:\n%s", want, s)
		}
	}

	out.Reset()
	r = NewRendererWithTTY(&out, &errOut, false, ModeMarkdown)
	r.Table([]string{"#", "root"}, [][]string{{"1", "2"}})
	if !strings.Contains(out.String(), "|") {
		t.Errorf("markdown table should use pipes:\n%s", out.String())
	}
}
