package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcalc/internal/calc"
	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/symbol"
)

// errMenuCancel returns the REPL to the menu after ^C inside a prompt.
var errMenuCancel = errors.New("cancelled")

type menuEntry struct {
	name  string
	short string
	run   func(cc *CommandContext, rl *readline.Instance) error
}

func menuEntries() []menuEntry {
	return []menuEntry{
		{"add", "Add two values", runReplBinary("add", (*calc.Calculator).Add)},
		{"sub", "Subtract b from a", runReplBinary("sub", (*calc.Calculator).Subtract)},
		{"mul", "Multiply two values", runReplBinary("mul", (*calc.Calculator).Multiply)},
		{"div", "Divide a by b", runReplBinary("div", (*calc.Calculator).Divide)},
		{"pow", "Raise base to a power", runReplBinary("pow", (*calc.Calculator).Power)},
		{"root", "Nth root of a value", runReplRoot},
		{"log", "Logarithm (natural by default)", runReplLog},
		{"quadratic", "Roots of a*x^2 + b*x + c = 0", runReplQuadratic},
		{"geometry", "Area and perimeter formulas", runReplGeometry},
		{"limit", "Limit of an expression", runReplLimit},
		{"evaluate", "Simplify and substitute", runReplEvaluate},
		{"solve", "Solve an equation", runReplSolve},
		{"quit", "Leave the calculator", nil},
	}
}

func NewReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"interactive"},
		Short:   "Interactive calculator session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runRepl(cmd, cc)
		},
	}
}

func runRepl(cmd *cobra.Command, cc *CommandContext) error {
	entries := menuEntries()

	historyFile := cc.Cfg.HistoryFile
	if historyFile == "" {
		historyFile = config.DefaultHistoryFile()
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(entries))
	for _, e := range entries {
		items = append(items, readline.PcItem(e.name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "leapcalc> ",
		HistoryFile:     historyFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "leapcalc interactive calculator")
	printMenu(out, entries)

	for {
		rl.SetPrompt("leapcalc> ")
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		choice := strings.TrimSpace(strings.ToLower(line))
		if choice == "" {
			continue
		}
		if choice == "menu" || choice == "help" {
			printMenu(out, entries)
			continue
		}

		entry, ok := findEntry(entries, choice)
		if !ok {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown choice %q (type menu to list options)\n", choice)
			continue
		}
		if entry.run == nil {
			return nil
		}
		if err := entry.run(cc, rl); err != nil {
			if errors.Is(err, errMenuCancel) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}
}

func printMenu(w io.Writer, entries []menuEntry) {
	_, _ = fmt.Fprintln(w, "Pick an operation by number or name:")
	for i, e := range entries {
		_, _ = fmt.Fprintf(w, "  %2d. %-10s %s\n", i+1, e.name, e.short)
	}
	_, _ = fmt.Fprintln(w)
}

func findEntry(entries []menuEntry, choice string) (menuEntry, bool) {
	for i, e := range entries {
		if choice == e.name || choice == fmt.Sprintf("%d", i+1) {
			return e, true
		}
	}
	return menuEntry{}, false
}

// prompt reads one answer with a transient prompt, mapping ^C to a menu
// cancel so a mistyped operation does not kill the session.
func prompt(rl *readline.Instance, label string) (string, error) {
	rl.SetPrompt(label + ": ")
	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errMenuCancel
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runReplBinary(operation string, op func(*calc.Calculator, string, string) (symbol.Expr, error)) func(cc *CommandContext, rl *readline.Instance) error {
	return func(cc *CommandContext, rl *readline.Instance) error {
		a, err := prompt(rl, "a")
		if err != nil {
			return err
		}
		b, err := prompt(rl, "b")
		if err != nil {
			return err
		}
		result, err := op(cc.Calc, a, b)
		if err != nil {
			return err
		}
		return cc.renderResult(operation, map[string]string{"a": a, "b": b}, result)
	}
}

func runReplRoot(cc *CommandContext, rl *readline.Instance) error {
	value, err := prompt(rl, "value")
	if err != nil {
		return err
	}
	degree, err := prompt(rl, "degree (empty for 2)")
	if err != nil {
		return err
	}
	if degree == "" {
		degree = "2"
	}
	result, err := cc.Calc.Root(value, degree)
	if err != nil {
		return err
	}
	return cc.renderResult("root", map[string]string{"value": value, "degree": degree}, result)
}

func runReplLog(cc *CommandContext, rl *readline.Instance) error {
	value, err := prompt(rl, "value")
	if err != nil {
		return err
	}
	base, err := prompt(rl, "base (empty for natural)")
	if err != nil {
		return err
	}
	result, err := cc.Calc.Log(value, base)
	if err != nil {
		return err
	}
	inputs := map[string]string{"value": value}
	if base != "" {
		inputs["base"] = base
	}
	return cc.renderResult("log", inputs, result)
}

func runReplQuadratic(cc *CommandContext, rl *readline.Instance) error {
	coeffs := make([]string, 3)
	for i, name := range []string{"a", "b", "c"} {
		v, err := prompt(rl, name)
		if err != nil {
			return err
		}
		coeffs[i] = v
	}
	r1, r2, err := cc.Calc.QuadraticRoots(coeffs[0], coeffs[1], coeffs[2])
	if err != nil {
		return err
	}
	return cc.renderRoots([]symbol.Expr{r1, r2}, coeffs)
}

func runReplGeometry(cc *CommandContext, rl *readline.Instance) error {
	figure, err := prompt(rl, "figure ("+strings.Join(calc.Figures(), ", ")+")")
	if err != nil {
		return err
	}
	names, ok := calc.FigureParams(figure)
	if !ok {
		return fmt.Errorf("unknown figure %q", figure)
	}
	params := make(map[string]string, len(names))
	for _, name := range names {
		v, err := prompt(rl, name)
		if err != nil {
			return err
		}
		params[name] = v
	}
	result, err := cc.Calc.Geometry(figure, params)
	if err != nil {
		return err
	}
	inputs := map[string]string{"figure": figure}
	for k, v := range params {
		inputs[k] = v
	}
	return cc.renderResult("geometry", inputs, result)
}

func runReplLimit(cc *CommandContext, rl *readline.Instance) error {
	expr, err := prompt(rl, "expression")
	if err != nil {
		return err
	}
	varName, err := prompt(rl, "variable (empty for x)")
	if err != nil {
		return err
	}
	if varName == "" {
		varName = "x"
	}
	to, err := prompt(rl, "approaches (a value, oo, or -oo)")
	if err != nil {
		return err
	}
	direction, err := prompt(rl, "direction (both, plus, minus; empty for both)")
	if err != nil {
		return err
	}
	if direction == "" {
		direction = "both"
	}
	res, err := cc.Calc.Limit(expr, varName, to, direction)
	if err != nil {
		return err
	}
	return cc.renderLimit(res, map[string]string{
		"expression": expr,
		"var":        varName,
		"to":         to,
		"direction":  direction,
	})
}

func runReplEvaluate(cc *CommandContext, rl *readline.Instance) error {
	expr, err := prompt(rl, "expression")
	if err != nil {
		return err
	}
	raw, err := prompt(rl, "substitutions (name=value,..., empty for none)")
	if err != nil {
		return err
	}
	subs := map[string]string{}
	if raw != "" {
		subs, err = calc.ParseParams(raw)
		if err != nil {
			return err
		}
	}
	result, err := cc.Calc.EvaluateExpression(expr, subs)
	if err != nil {
		return err
	}
	inputs := map[string]string{"expression": expr}
	for k, v := range subs {
		inputs[k] = v
	}
	return cc.renderResult("evaluate", inputs, result)
}

func runReplSolve(cc *CommandContext, rl *readline.Instance) error {
	equation, err := prompt(rl, "equation")
	if err != nil {
		return err
	}
	forVar, err := prompt(rl, "solve for (empty to infer)")
	if err != nil {
		return err
	}
	set, varName, err := cc.Calc.SolveEquation(equation, forVar)
	if err != nil {
		return err
	}
	return cc.renderSolveSet(set, equation, varName)
}
