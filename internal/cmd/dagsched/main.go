// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command dagsched runs federated admission tests and scheduling
// simulations over task sets described in HCL.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/petenewcomb/dagsched-go/internal/cli"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, args []string) error {
	config, exit, err := cli.Parse(args, w)
	if err != nil || exit {
		return err
	}
	logger, err := config.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	return cli.Run(config, logger, w)
}
