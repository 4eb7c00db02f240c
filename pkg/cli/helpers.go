/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/serializer"
	"github.com/NVIDIA/slurmdocs/pkg/store"
)

func databaseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "database",
		Aliases: []string{"d"},
		Usage:   "Database instance name",
		Sources: cli.EnvVars("SLURMDOCS_DB"),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout), .yaml/.yml/.txt/.json select the format unless --format is set",
	}
}

func formatFlag(value serializer.Format) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(value),
		Usage:   fmt.Sprintf("Output format %v", serializer.SupportedFormats()),
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q, valid formats are: yaml, json, table", outFormat))
	}
	return outFormat, nil
}

// openStore returns the Store selected by --root and --database.
func openStore(cmd *cli.Command, opts ...store.Option) (*store.Store, error) {
	db := cmd.String("database")
	if db == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "--database is required")
	}
	if cmd.Bool("strict-cpu-names") {
		opts = append(opts, store.WithStrictCPUNames(true))
	}
	return store.New(db, cmd.String("root"), opts...)
}

// output writes v to --output, or to the root command's writer. Without
// an explicit --format, file output takes its format from the extension.
func output(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" || path == serializer.StdoutURI {
		return serializer.NewWriter(format, stdout(cmd)).Serialize(ctx, v)
	}

	if !cmd.IsSet("format") {
		format = serializer.FormatFromPath(path)
	}
	ser, err := serializer.NewFileWriterOrStdout(format, path)
	if err != nil {
		return err
	}
	defer func() {
		if c, ok := ser.(serializer.Closer); ok {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()
	return ser.Serialize(ctx, v)
}

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}
