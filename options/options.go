package options

import (
	"io"
)

// RunOptions contains all the options that are relevant to one karagen run.
type RunOptions struct {
	// Config options
	*Config `json:"config,omitempty" yaml:"config,omitempty"`

	// DryRun writes the document to stdout instead of the output file.
	DryRun bool `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	// Check only verifies the rules and prints the findings.
	Check bool `json:"check,omitempty" yaml:"check,omitempty"`
	// Cheatsheet prints the leader menu instead of writing anything.
	Cheatsheet bool `json:"cheatsheet,omitempty" yaml:"cheatsheet,omitempty"`
	// Color enables styled cheatsheet output.
	Color bool `json:"color,omitempty" yaml:"color,omitempty"`

	// Verbosity options
	Verbose   bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	DebugMode bool `json:"debugMode,omitempty" yaml:"debugMode,omitempty"`

	ConfigPath string `json:"configPath,omitempty" yaml:"configPath,omitempty"`

	// --- I/O handles passed in ---
	Stdout io.Writer `json:"-" yaml:"-"`
	Stderr io.Writer `json:"-" yaml:"-"`
}
