package parser

import (
	"strings"

	"github.com/NVIDIA/slurmdocs/pkg/record"
)

// Lscpu parses colon delimited "Key: Value" text into a single record.
type Lscpu struct{}

// Name implements Format.
func (Lscpu) Name() string {
	return "lscpu"
}

// Parse implements Format. The result is always a record.Record.
//
// Each line is split on its first colon only, so values such as
// "Flags: fpu vme ..." or "Model name: Xeon @ 2.00GHz: rev 3" survive intact.
// Blank lines and lines without a colon are skipped. Empty input yields an
// empty record.
func (l Lscpu) Parse(data []byte) (record.Parsed, error) {
	return l.ParseRecord(data)
}

// ParseRecord is Parse with a concrete return type.
func (l Lscpu) ParseRecord(data []byte) (record.Record, error) {
	if err := CheckArtifact(l.Name(), data); err != nil {
		return nil, err
	}

	rec := make(record.Record)
	for _, line := range splitLines(data) {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		rec[key] = record.Str(val)
	}
	return rec, nil
}
