// Package output renders command results in one of four modes: auto picks
// styled or plain text by terminal detection, text forces plain text,
// markdown emits pipe tables and headings, json emits machine-readable
// documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
)

// Mode selects the rendering format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ParseMode validates a mode name from flags or config.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid output mode %q (valid: auto, text, markdown, json)", s)
}

// Styles is the lipgloss style set shared by all commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

func newStyles(colored bool) Styles {
	if !colored {
		return Styles{}
	}
	return Styles{
		Header1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles Styles
}

// NewRenderer builds a renderer on stdout/stderr with terminal detection.
func NewRenderer(mode Mode) *Renderer {
	isTTY := termenv.NewOutput(os.Stdout).ColorProfile() != termenv.Ascii
	return NewRendererWithTTY(os.Stdout, os.Stderr, isTTY, mode)
}

// NewRendererWithTTY builds a renderer with explicit writers and terminal
// state, used by tests and the REPL.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(isTTY && mode == ModeAuto),
	}
}

// EffectiveMode resolves auto to text.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Mode returns the configured (unresolved) mode.
func (r *Renderer) Mode() Mode { return r.mode }

func (r *Renderer) Styles() Styles       { return r.styles }
func (r *Renderer) Writer() io.Writer    { return r.out }
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Header prints a section heading in the current mode.
func (r *Renderer) Header(text string) {
	if r.EffectiveMode() == ModeMarkdown {
		fmt.Fprintf(r.out, "## %s\n\n", text)
		return
	}
	fmt.Fprintln(r.out, r.styles.Header1.Render(text))
}

func (r *Renderer) Success(text string) {
	fmt.Fprintln(r.out, r.styles.Success.Render(text))
}

// StatusLine prints an aligned label: value pair.
func (r *Renderer) StatusLine(label, value string) {
	if r.EffectiveMode() == ModeMarkdown {
		fmt.Fprintf(r.out, "- **%s**: %s\n", label, value)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.styles.Bold.Render(label+":"), value)
}

func (r *Renderer) Errorf(format string, a ...any) {
	fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}

// JSON writes v as an indented document regardless of mode.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a header row plus data rows, as a pipe table in markdown
// mode and a light box table otherwise.
func (r *Renderer) Table(headers []string, rows [][]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	hr := make(table.Row, len(headers))
	for i, h := range headers {
		hr[i] = h
	}
	tw.AppendHeader(hr)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		tw.AppendRow(tr)
	}
	if r.EffectiveMode() == ModeMarkdown {
		tw.RenderMarkdown()
		return
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}
