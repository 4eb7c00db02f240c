/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/slurmdocs/pkg/collector"
	"github.com/NVIDIA/slurmdocs/pkg/defaults"
	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/serializer"
)

// collectorFactory builds the collector factory from flags. Tests replace it.
var collectorFactory = func(cmd *cli.Command) collector.Factory {
	f := collector.NewDefaultFactory(cmd.String("user"), cmd.String("server"))
	f.SSH.Port = int(cmd.Int("port"))
	f.SSH.KeyPath = cmd.String("key")
	f.Timeout = cmd.Duration("timeout")
	f.Partition = cmd.String("partition")
	f.QOS = cmd.String("qos")
	f.Concurrency = int(cmd.Int("concurrency"))
	f.Rate = cmd.Float("rate")
	return f
}

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "Fetch artifacts from a cluster login node over ssh and store them",
		Description: `Runs commands on a Slurm login node through the system ssh client in batch
mode, so key based authentication must already work.

  collect node   stores the output of "scontrol show node" as node/node_info.txt
  collect cpu    runs "srun -p <partition> -q <qos> -w <node> lscpu" per node
                 and stores each result as cpu/<node>.txt`,
		Flags: []cli.Flag{
			databaseFlag(),
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Login node host name or address",
				Sources: cli.EnvVars("SLURMDOCS_SERVER"),
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Remote user (default: ssh configuration)",
				Sources: cli.EnvVars("SLURMDOCS_USER"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   defaults.DefaultSSHPort,
				Usage:   "ssh port",
			},
			&cli.StringFlag{
				Name:    "key",
				Aliases: []string{"i"},
				Usage:   "ssh identity file",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CollectorTimeout,
				Usage: "Timeout for each remote command",
			},
		},
		Commands: []*cli.Command{
			collectNodeCmd(),
			collectCPUCmd(),
		},
	}
}

func collectNodeCmd() *cli.Command {
	return &cli.Command{
		Name:  "node",
		Usage: "Collect the scontrol node snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Value:   defaults.NodeFileName,
				Usage:   "Filename of the stored snapshot",
			},
			outputFlag(),
			formatFlag(serializer.FormatYAML),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireServer(cmd); err != nil {
				return err
			}
			st, err := openStore(cmd)
			if err != nil {
				return err
			}

			res, err := collectorFactory(cmd).CreateCollector(st).CollectNodes(ctx, cmd.String("name"))
			if err != nil {
				return err
			}
			return output(ctx, cmd, res)
		},
	}
}

func collectCPUCmd() *cli.Command {
	return &cli.Command{
		Name:  "cpu",
		Usage: "Collect lscpu from compute nodes",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "node",
				Usage: "Compute node to collect, can be repeated",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Collect every node named in the stored node snapshot",
			},
			&cli.StringFlag{
				Name:  "partition",
				Value: defaults.DefaultPartition,
				Usage: "Slurm partition passed to srun",
			},
			&cli.StringFlag{
				Name:  "qos",
				Value: defaults.DefaultQOS,
				Usage: "Slurm QOS passed to srun",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: defaults.DefaultCollectConcurrency,
				Usage: "Maximum number of nodes collected at once",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Value: defaults.DefaultCollectRate,
				Usage: "Maximum remote command launches per second (negative disables)",
			},
			outputFlag(),
			formatFlag(serializer.FormatYAML),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireServer(cmd); err != nil {
				return err
			}
			st, err := openStore(cmd)
			if err != nil {
				return err
			}

			nodes := cmd.StringSlice("node")
			if cmd.Bool("all") {
				names, err := st.NodeNames()
				if err != nil {
					return fmt.Errorf("failed to read node names from snapshot: %w", err)
				}
				nodes = append(nodes, names...)
			}
			if len(nodes) == 0 {
				return errors.New(errors.ErrCodeInvalidRequest, "no nodes given, use --node or --all")
			}

			res, err := collectorFactory(cmd).CreateCollector(st).CollectCPU(ctx, nodes)
			if res != nil && len(res.Failed) > 0 {
				slog.Warn("some nodes were not collected", slog.Int("failed", len(res.Failed)))
			}
			if err != nil {
				return err
			}
			return output(ctx, cmd, res)
		},
	}
}

func requireServer(cmd *cli.Command) error {
	if cmd.String("server") == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "--server is required")
	}
	return nil
}
