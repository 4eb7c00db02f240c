package store

import (
	"fmt"
	"log/slog"

	"github.com/NVIDIA/slurmdocs/pkg/defaults"
	"github.com/NVIDIA/slurmdocs/pkg/errors"
)

// CoverageReport details which snapshot nodes have a cpu artifact.
type CoverageReport struct {
	Database string   `json:"database" yaml:"database"`
	NodeFile string   `json:"nodeFile" yaml:"nodeFile"`
	Nodes    int      `json:"nodes" yaml:"nodes"`
	Covered  []string `json:"covered" yaml:"covered"`
	Missing  []string `json:"missing" yaml:"missing"`
	Ratio    float64  `json:"ratio" yaml:"ratio"`
}

// Coverage returns covered / total over the distinct NodeNames of the node
// snapshot, where a node N is covered when cpu/N.txt exists. It fails with
// ErrCodeNotFound when there is no node snapshot.
func (s *Store) Coverage() (float64, error) {
	r, err := s.CoverageReport()
	if err != nil {
		return 0, err
	}
	return r.Ratio, nil
}

// CoverageReport is Coverage with the per node breakdown.
func (s *Store) CoverageReport() (*CoverageReport, error) {
	r, err := s.coverage()
	return r, observe("coverage", err)
}

func (s *Store) coverage() (*CoverageReport, error) {
	filename, err := s.NodeFile()
	if err != nil {
		return nil, errors.Wrap(errors.CodeOf(err), "coverage needs exactly one node snapshot", err)
	}

	names, err := s.NodeNames()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedArtifact,
			fmt.Sprintf("node snapshot %q contains no NodeName entries", filename))
	}

	r := &CoverageReport{
		Database: s.name,
		NodeFile: filename,
		Nodes:    len(names),
		Covered:  []string{},
		Missing:  []string{},
	}
	for _, n := range names {
		if s.IsCPUFileAvailable(n + defaults.CPUFileSuffix) {
			r.Covered = append(r.Covered, n)
		} else {
			r.Missing = append(r.Missing, n)
		}
	}
	r.Ratio = float64(len(r.Covered)) / float64(len(names))

	storeCoverageRatio.WithLabelValues(s.name).Set(r.Ratio)
	slog.Debug("computed coverage",
		slog.String("database", s.name),
		slog.Int("nodes", r.Nodes),
		slog.Int("covered", len(r.Covered)),
		slog.Float64("ratio", r.Ratio))
	return r, nil
}
