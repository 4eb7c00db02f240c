package parser

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/record"

	"k8s.io/utils/set"
)

const (
	// NodeNameField is the mandatory per block key and the natural row key.
	NodeNameField = "NodeName"

	// PartitionsField lists the partitions a node belongs to, comma separated.
	PartitionsField = "Partitions"

	// PartitionSuffix marks the per partition membership columns added in
	// preprocess mode, e.g. "gpu_partition".
	PartitionSuffix = "_partition"
)

// Scontrol parses "scontrol show node" output into a table with one row per
// blank line separated block.
type Scontrol struct {
	// Preprocess adds one "<partition>_partition" column per distinct
	// partition name, valued "true" or "false" on every row.
	Preprocess bool
}

// Name implements Format.
func (Scontrol) Name() string {
	return "scontrol"
}

// Parse implements Format. The result is always a *record.Table.
func (s Scontrol) Parse(data []byte) (record.Parsed, error) {
	return s.ParseTable(data)
}

// ParseTable is Parse with a concrete return type.
//
// Continuation lines of a block are joined before tokenizing. A token
// without '=' continues the value of the previous token, which keeps values
// such as "OS=Linux 5.14.0 #1 SMP" whole. Blocks without NodeName are kept
// as rows; duplicate NodeNames are kept as they appear.
func (s Scontrol) ParseTable(data []byte) (*record.Table, error) {
	if err := CheckArtifact(s.Name(), data); err != nil {
		return nil, err
	}

	tbl := record.NewTable()
	for i, block := range splitBlocks(data) {
		rec, keys, err := parseBlock(block)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedArtifact,
				fmt.Sprintf("node block %d", i+1), err)
		}
		tbl.Append(rec, keys)
	}

	if s.Preprocess {
		addPartitionColumns(tbl)
	}
	return tbl, nil
}

// splitBlocks groups non-blank lines into blocks separated by blank lines.
func splitBlocks(data []byte) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range splitLines(data) {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// parseBlock returns the block's fields and their first seen order.
func parseBlock(lines []string) (record.Record, []string, error) {
	rec := make(record.Record)
	var (
		keys []string
		last string
	)
	for _, tok := range strings.Fields(strings.Join(lines, " ")) {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			if last == "" {
				return nil, nil, fmt.Errorf("token %q is not Key=Value", tok)
			}
			rec[last] = record.Reading(string(rec[last]) + " " + tok)
			continue
		}
		if key == "" {
			return nil, nil, fmt.Errorf("token %q has an empty key", tok)
		}
		if _, seen := rec[key]; !seen {
			keys = append(keys, key)
		}
		rec[key] = record.Reading(val)
		last = key
	}
	return rec, keys, nil
}

// addPartitionColumns derives one membership column per partition name.
func addPartitionColumns(tbl *record.Table) {
	names := set.New[string]()
	members := make([]set.Set[string], tbl.Len())
	for i, rec := range tbl.Records {
		members[i] = set.New[string]()
		for _, p := range strings.Split(string(rec[PartitionsField]), ",") {
			if p = strings.TrimSpace(p); p != "" {
				names.Insert(p)
				members[i].Insert(p)
			}
		}
	}

	for _, p := range names.SortedList() {
		col := p + PartitionSuffix
		tbl.AddColumn(col)
		for i, rec := range tbl.Records {
			rec[col] = record.Reading(fmt.Sprintf("%t", members[i].Has(p)))
		}
	}
}
