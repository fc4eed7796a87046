package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStandalone executes a command outside the root, exercising the
// context fallbacks in NewCommandContext.
func runStandalone(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandConstruction(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		use  string
		args int
	}{
		{NewAddCmd(), "add <a> <b>", 2},
		{NewSubCmd(), "sub <a> <b>", 2},
		{NewMulCmd(), "mul <a> <b>", 2},
		{NewDivCmd(), "div <a> <b>", 2},
		{NewPowCmd(), "pow <base> <exponent>", 2},
		{NewNthRootCmd(), "root <value> [degree]", 1},
		{NewAbsCmd(), "abs <value>", 1},
		{NewLogCmd(), "log <value> [base]", 1},
		{NewQuadraticCmd(), "quadratic <a> <b> <c>", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.use, tt.cmd.Use)
		assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty for %s", tt.use)
	}
}

func TestAllRegistersEveryCommand(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range All() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{
		"add", "sub", "mul", "div", "pow", "root", "abs", "log",
		"quadratic", "geometry", "limit", "simplify", "solve",
		"repl", "init", "version",
	} {
		assert.True(t, names[want], "command %q should be registered", want)
	}
}

func TestLimitCmdFlags(t *testing.T) {
	cmd := NewLimitCmd()
	for _, flag := range []string{"var", "to", "direction"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "x", cmd.Flags().Lookup("var").DefValue)
	assert.Equal(t, "both", cmd.Flags().Lookup("direction").DefValue)
}

func TestSimplifyCmdFlags(t *testing.T) {
	cmd := NewSimplifyCmd()
	assert.NotNil(t, cmd.Flags().Lookup("subs"))
	assert.NotNil(t, cmd.Flags().Lookup("latex"))
	assert.Contains(t, cmd.Aliases, "evaluate")
	assert.Contains(t, cmd.Aliases, "eval")
}

func TestSolveCmdFlags(t *testing.T) {
	cmd := NewSolveCmd()
	assert.NotNil(t, cmd.Flags().Lookup("for"))
}

func TestReplCmdConstruction(t *testing.T) {
	cmd := NewReplCmd()
	assert.Equal(t, "repl", cmd.Use)
	assert.Contains(t, cmd.Aliases, "interactive")
}

func TestMenuEntries(t *testing.T) {
	entries := menuEntries()
	require.Len(t, entries, 13)
	assert.Equal(t, "quit", entries[len(entries)-1].name)
	assert.Nil(t, entries[len(entries)-1].run)

	byName, ok := findEntry(entries, "solve")
	require.True(t, ok)
	assert.Equal(t, "solve", byName.name)

	byNumber, ok := findEntry(entries, "1")
	require.True(t, ok)
	assert.Equal(t, "add", byNumber.name)

	_, ok = findEntry(entries, "derivative")
	assert.False(t, ok)
}

func TestAddCmdExecution(t *testing.T) {
	out, err := runStandalone(t, NewAddCmd(), "2", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "result: 5")
}

func TestDivCmdZeroDivisor(t *testing.T) {
	_, err := runStandalone(t, NewDivCmd(), "1", "0")
	require.Error(t, err)
	assert.EqualError(t, err, "Division by zero is not allowed.")
}

func TestNthRootCmdDefaultDegree(t *testing.T) {
	out, err := runStandalone(t, NewNthRootCmd(), "9")
	require.NoError(t, err)
	assert.Contains(t, out, "result: 3")
}

func TestLogCmdWithBase(t *testing.T) {
	out, err := runStandalone(t, NewLogCmd(), "8", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "result: 3")
}

func TestAbsCmdNegativeOperand(t *testing.T) {
	out, err := runStandalone(t, NewAbsCmd(), "-5")
	require.NoError(t, err)
	assert.Contains(t, out, "result: 5")
}

func TestBinaryCmdNegativeOperands(t *testing.T) {
	out, err := runStandalone(t, NewAddCmd(), "-2", "-3")
	require.NoError(t, err)
	assert.Contains(t, out, "result: -5")
}

func TestOperandCmdHelp(t *testing.T) {
	out, err := runStandalone(t, NewAddCmd(), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "add <a> <b>")
}

func TestOperandCmdArgCount(t *testing.T) {
	_, err := runStandalone(t, NewAddCmd(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestQuadraticCmdExecution(t *testing.T) {
	out, err := runStandalone(t, NewQuadraticCmd(), "1", "0", "-4")
	require.NoError(t, err)
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "-2")
}

func TestGeometryCmdExecution(t *testing.T) {
	out, err := runStandalone(t, NewGeometryCmd(), "circle_area", "radius=2")
	require.NoError(t, err)
	assert.Contains(t, out, "result: 4*pi")
	assert.Contains(t, out, "approx: 12.56")
}

func TestLimitCmdExecution(t *testing.T) {
	out, err := runStandalone(t, NewLimitCmd(), "sin(x)/x", "--to", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "result: 1")
}

func TestSimplifyCmdWithSubs(t *testing.T) {
	out, err := runStandalone(t, NewSimplifyCmd(), "x^2 + y", "--subs", "x=3", "--subs", "y=1")
	require.NoError(t, err)
	assert.Contains(t, out, "result: 10")
}

func TestSolveCmdExecution(t *testing.T) {
	out, err := runStandalone(t, NewSolveCmd(), "2*x + 1 = 7")
	require.NoError(t, err)
	assert.Contains(t, out, "3")
}

func TestInitCmdWritesConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	var out bytes.Buffer
	cmd := NewInitCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "leapcalc.yaml")

	// Second run without --force refuses to overwrite.
	cmd = NewInitCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	cmd = NewInitCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--force"})
	require.NoError(t, cmd.Execute())
}

func TestVersionCmdExecution(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "leapcalc v"), "got %q", out.String())
}
