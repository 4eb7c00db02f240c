// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the slurmdocs tool.
//
// # Overview
//
// The slurmdocs CLI manages file based databases of raw Slurm artifacts: one
// lscpu output per compute node and one "scontrol show node" snapshot per
// cluster. It is designed for cluster administrators documenting the
// hardware behind their partitions.
//
// # Commands
//
// db - Manage a database instance:
//
//	slurmdocs db create -d cluster1
//	slurmdocs db insert -d cluster1 -c cpu -f ./cn001.txt
//	slurmdocs db update -d cluster1 -c node -f ./node_info.txt
//	slurmdocs db remove -d cluster1 -c cpu -n cn001.txt
//	slurmdocs db query -d cluster1 -c node --preprocess --exclude '*Time' -t json
//	slurmdocs db coverage -d cluster1
//	slurmdocs db list -d cluster1
//	slurmdocs db integrity -d cluster1
//	slurmdocs db destroy -d cluster1
//
// coverage and integrity refuse databases without cpu artifacts or without
// exactly one node snapshot. --strict-cpu-names on db rejects cpu artifacts
// that are not named after a node of the stored snapshot.
//
// collect - Fetch artifacts over ssh:
//
//	slurmdocs collect -d cluster1 -s login01 -u alice node
//	slurmdocs collect -d cluster1 -s login01 -u alice cpu --node cn001 --node cn002
//	slurmdocs collect -d cluster1 -s login01 cpu --all --partition gpu --qos normal
//
// # Global Flags
//
//	--root         Directory holding database instances (default: ~/.slurmdocs/database)
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// query, coverage and collect accept --format json|yaml|table and --output FILE.
// Table output prints one column per field for node snapshots and FIELD/VALUE
// pairs for everything else.
//
// # Environment Variables
//
//	LOG_LEVEL          Set logging verbosity (debug, info, warn, error)
//	SLURMDOCS_ROOT     Default for --root
//	SLURMDOCS_DB       Default for --database
//	SLURMDOCS_SERVER   Default for collect --server
//	SLURMDOCS_USER     Default for collect --user
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/slurmdocs/pkg/cli.version=1.0.0'"
package cli
