// Package config loads layered configuration: defaults, then a leapcalc.yaml
// discovered upward from the working directory, then LEAPCALC_* environment
// variables, then command-line flags.
package config

import "fmt"

// Config holds the resolved settings.
type Config struct {
	// Precision is the number of significant digits for inexact results.
	Precision int `koanf:"precision"`
	// Output is the rendering mode: auto, text, markdown, or json.
	Output string `koanf:"output"`
	// Verbose raises the log level to debug.
	Verbose bool `koanf:"verbose"`
	// HistoryFile is the REPL history path; empty means
	// ~/.leapcalc_history.
	HistoryFile string `koanf:"history_file"`
}

// Defaults is the lowest configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"precision":    12,
		"output":       "auto",
		"verbose":      false,
		"history_file": "",
	}
}

var validOutputs = map[string]bool{"auto": true, "text": true, "markdown": true, "json": true}

func (c *Config) Validate() error {
	if c.Precision < 1 || c.Precision > 50 {
		return fmt.Errorf("precision must be between 1 and 50, got %d", c.Precision)
	}
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output mode %q (valid: auto, text, markdown, json)", c.Output)
	}
	return nil
}
