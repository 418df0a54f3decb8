// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cli parses the dagsched command line and runs the selected
// analysis or simulation over a task set file.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Algorithms accepted by -algorithm.
const (
	Federated       = "federated"
	ListFP          = "list-fp"
	ListEDF         = "list-edf"
	ListLFT         = "list-lft"
	DAGSetEDF       = "dagset-edf"
	DAGSetFP        = "dagset-fp"
	DAGSetFederated = "dagset-federated"
)

var algorithms = []string{Federated, ListFP, ListEDF, ListLFT, DAGSetEDF, DAGSetFP, DAGSetFederated}

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config is the validated command line.
type Config struct {
	TaskSetPath string
	Cores       int
	Algorithm   string
	Preemptive  bool
	OutDir      string
	LogLevel    zapcore.Level
	LogFormat   string
}

// Parse processes command-line arguments. It returns the configuration, or
// true if the program should exit cleanly (help was requested or no task set
// was given), or an *ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("dagsched", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(output, `
dagsched - real-time DAG scheduling analysis and simulation.

Usage:
  dagsched [options] TASK_SET

Arguments:
  TASK_SET
    Path to a single .hcl file or a directory containing .hcl files.

Algorithms:
  %s

Options:
`, strings.Join(algorithms, "\n  "))
		flagSet.PrintDefaults()
	}

	cores := flagSet.Int("cores", 1, "Number of processor cores.")
	algorithm := flagSet.String("algorithm", Federated, "Analysis or scheduler to run.")
	preemptive := flagSet.Bool("preemptive", false, "Allow preemption in dagset-* simulations.")
	out := flagSet.String("out", "", "Directory to write the YAML log into. Defaults to standard output.")
	logLevel := flagSet.String("log-level", "info", "Logging level: debug, info, warn or error.")
	logFormat := flagSet.String("log-format", "console", "Log output format: console or json.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected a single task set path"}
	}
	if *cores <= 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid cores %d: must be positive", *cores)}
	}
	if !slices.Contains(algorithms, *algorithm) {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid algorithm %q: must be one of %s",
			*algorithm, strings.Join(algorithms, ", "))}
	}
	format := strings.ToLower(*logFormat)
	if format != "console" && format != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'console' or 'json'"}
	}
	level, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid log-level: %v", err)}
	}

	return &Config{
		TaskSetPath: flagSet.Arg(0),
		Cores:       *cores,
		Algorithm:   *algorithm,
		Preemptive:  *preemptive,
		OutDir:      *out,
		LogLevel:    level,
		LogFormat:   format,
	}, false, nil
}

// NewLogger builds the process logger described by c. Logs go to standard
// error so that YAML written to standard output stays clean.
func (c *Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if c.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
