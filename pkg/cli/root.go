/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/logging"
)

const name = "slurmdocs"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes returned by Execute.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitCancelled = 2
)

// Execute runs the CLI against os.Args and exits the process.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().Run(ctx, os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(ExitCode(err))
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsCode(err, errors.ErrCodeTimeout),
		stderrors.Is(err, context.Canceled),
		stderrors.Is(err, context.DeadlineExceeded):
		return ExitCancelled
	default:
		return ExitError
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Document Slurm cluster hardware from lscpu and scontrol artifacts",
		Description: `slurmdocs collects raw lscpu and "scontrol show node" output from a cluster,
stores it in a file based database and answers queries and coverage checks over it.

# Examples

Create a database and load artifacts by hand:
  slurmdocs db create -d cluster1
  slurmdocs db insert -d cluster1 -c node -f ./node_info.txt
  slurmdocs db insert -d cluster1 -c cpu -f ./cn001.txt

Collect straight from a login node:
  slurmdocs collect node -d cluster1 -s login01 -u alice
  slurmdocs collect cpu -d cluster1 -s login01 -u alice --all

Check how many nodes are documented:
  slurmdocs db coverage -d cluster1`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "Directory holding database instances (default: ~/.slurmdocs/database)",
				Sources: cli.EnvVars("SLURMDOCS_ROOT"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logging.LevelFromEnv(slog.LevelWarn)
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			if cmd.Bool("log-json") {
				logging.SetDefaultStructuredLogger(cmd.Root().ErrWriter, name, version, level)
			} else {
				logging.SetDefaultCLILogger(cmd.Root().ErrWriter, level)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			dbCmd(),
			collectCmd(),
		},
	}
}
