/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/parser"
	"github.com/NVIDIA/slurmdocs/pkg/record"
	"github.com/NVIDIA/slurmdocs/pkg/serializer"
	"github.com/NVIDIA/slurmdocs/pkg/store"
)

func categoryFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "category",
		Aliases:  []string{"c"},
		Required: required,
		Usage:    fmt.Sprintf("Artifact category %v", store.Categories()),
	}
}

func dbCmd() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Manage database instances and their artifacts",
		Flags: []cli.Flag{
			databaseFlag(),
			&cli.BoolFlag{
				Name:  "strict-cpu-names",
				Usage: "Reject cpu artifacts not named <NodeName>.txt for a node in the snapshot",
			},
		},
		Commands: []*cli.Command{
			dbCreateCmd(),
			dbDestroyCmd(),
			dbInsertCmd(),
			dbUpdateCmd(),
			dbRemoveCmd(),
			dbQueryCmd(),
			dbCoverageCmd(),
			dbListCmd(),
			dbIntegrityCmd(),
		},
	}
}

func dbCreateCmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create an empty database with cpu/ and node/ directories",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := st.Create(); err != nil {
				return err
			}
			fmt.Fprintf(stdout(cmd), "created database %q at %s\n", st.Name(), st.Path())
			return nil
		},
	}
}

func dbDestroyCmd() *cli.Command {
	return &cli.Command{
		Name:  "destroy",
		Usage: "Delete a database and everything in it",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := st.Destroy(); err != nil {
				return err
			}
			fmt.Fprintf(stdout(cmd), "destroyed database %q\n", st.Name())
			return nil
		},
	}
}

func artifactFlags() []cli.Flag {
	return []cli.Flag{
		categoryFlag(true),
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Required: true,
			Usage:    "Path of the raw artifact to store",
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Filename inside the database (default: base name of --file)",
		},
	}
}

// readArtifact resolves the category, stored filename and content of an
// insert or update.
func readArtifact(cmd *cli.Command) (store.Category, string, string, error) {
	c, err := store.ParseCategory(cmd.String("category"))
	if err != nil {
		return "", "", "", err
	}

	path := cmd.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeInternal
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrCodeNotFound
		}
		return "", "", "", errors.Wrap(code, fmt.Sprintf("failed to read artifact %q", path), err)
	}

	filename := cmd.String("name")
	if filename == "" {
		filename = filepath.Base(path)
	}
	return c, filename, string(data), nil
}

func dbInsertCmd() *cli.Command {
	return &cli.Command{
		Name:  "insert",
		Usage: "Store a raw artifact, replacing any artifact with the same name",
		Flags: artifactFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			c, filename, content, err := readArtifact(cmd)
			if err != nil {
				return err
			}
			if err := st.Insert(c, filename, content); err != nil {
				return err
			}
			fmt.Fprintf(stdout(cmd), "inserted %s/%s\n", c, filename)
			return nil
		},
	}
}

func dbUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Overwrite an existing artifact",
		Flags: artifactFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			c, filename, content, err := readArtifact(cmd)
			if err != nil {
				return err
			}
			if err := st.Update(c, filename, content); err != nil {
				return err
			}
			fmt.Fprintf(stdout(cmd), "updated %s/%s\n", c, filename)
			return nil
		},
	}
}

func dbRemoveCmd() *cli.Command {
	return &cli.Command{
		Name:  "remove",
		Usage: "Delete one artifact",
		Flags: []cli.Flag{
			categoryFlag(true),
			&cli.StringFlag{
				Name:     "filename",
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Artifact filename",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			c, err := store.ParseCategory(cmd.String("category"))
			if err != nil {
				return err
			}
			if err := st.Remove(c, cmd.String("filename")); err != nil {
				return err
			}
			fmt.Fprintf(stdout(cmd), "removed %s/%s\n", c, cmd.String("filename"))
			return nil
		},
	}
}

func dbQueryCmd() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Parse a stored artifact and print its records",
		Description: `Parses an artifact with the format bound to its category and prints the
result. cpu artifacts yield a single FIELD/VALUE record, the node snapshot
yields one row per node.

# Examples

  slurmdocs db query -d cluster1 -c cpu -n cn001.txt
  slurmdocs db query -d cluster1 -c node --preprocess --exclude 'CfgTRES' --exclude '*Time'`,
		Flags: []cli.Flag{
			categoryFlag(true),
			&cli.StringFlag{
				Name:    "filename",
				Aliases: []string{"n"},
				Usage:   "Artifact filename (default for node: the stored snapshot)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Drop fields matching a pattern (exact, prefix*, *suffix, *contains*), can be repeated",
			},
			&cli.BoolFlag{
				Name:  "preprocess",
				Usage: "Add one <partition>_partition true/false column per partition to node output",
			},
			outputFlag(),
			formatFlag(serializer.FormatTable),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var opts []store.Option
			if cmd.Bool("preprocess") {
				opts = append(opts, store.WithFormat(store.CategoryNode, parser.Scontrol{Preprocess: true}))
			}
			st, err := openStore(cmd, opts...)
			if err != nil {
				return err
			}
			c, err := store.ParseCategory(cmd.String("category"))
			if err != nil {
				return err
			}

			filename := cmd.String("filename")
			if filename == "" {
				if c != store.CategoryNode {
					return errors.New(errors.ErrCodeInvalidRequest, "--filename is required for cpu artifacts")
				}
				if filename, err = st.NodeFile(); err != nil {
					return err
				}
			}

			parsed, err := st.Query(c, filename)
			if err != nil {
				return err
			}
			return output(ctx, cmd, exclude(parsed, cmd.StringSlice("exclude")))
		},
	}
}

// exclude drops fields matching patterns from a query result.
func exclude(p record.Parsed, patterns []string) record.Parsed {
	if len(patterns) == 0 {
		return p
	}
	switch v := p.(type) {
	case record.Record:
		return record.FilterOut(v, patterns)
	case *record.Table:
		return v.FilterOut(patterns)
	default:
		return p
	}
}

// checkDatabase fails unless the database has a populated cpu/ and exactly
// one node snapshot.
func checkDatabase(st *store.Store) error {
	if st.IsEmpty() || !st.CheckIntegrity() {
		return errors.New(errors.ErrCodeStructuralViolation,
			fmt.Sprintf("database %q is empty or corrupted", st.Name()))
	}
	return nil
}

func dbCoverageCmd() *cli.Command {
	return &cli.Command{
		Name:  "coverage",
		Usage: "Report which snapshot nodes have a cpu artifact",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(serializer.FormatTable),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			if st.IsEmpty() {
				return errors.New(errors.ErrCodeStructuralViolation,
					fmt.Sprintf("database %q is empty or corrupted", st.Name()))
			}
			report, err := st.CoverageReport()
			if err != nil {
				return err
			}
			return output(ctx, cmd, report)
		},
	}
}

func dbListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the database tree, or the filenames of one category",
		Flags: []cli.Flag{
			categoryFlag(false),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			if cmd.String("category") == "" {
				return st.Tree(stdout(cmd))
			}

			c, err := store.ParseCategory(cmd.String("category"))
			if err != nil {
				return err
			}
			names, err := st.List(c)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(stdout(cmd), n)
			}
			return nil
		},
	}
}

func dbIntegrityCmd() *cli.Command {
	return &cli.Command{
		Name:  "integrity",
		Usage: "Check that the database holds cpu artifacts and exactly one node snapshot",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := checkDatabase(st); err != nil {
				return err
			}
			fmt.Fprintf(stdout(cmd), "database %q is intact (%d artifacts)\n", st.Name(), st.Len())
			return nil
		},
	}
}
