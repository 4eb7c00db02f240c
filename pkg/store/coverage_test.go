package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeSnapshot(names ...string) string {
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "NodeName=%s Arch=x86_64 CPUTot=64\n   State=IDLE\n\n", n)
	}
	return b.String()
}

func TestCoverage_NoNodeFile(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Create())
	require.NoError(t, st.Insert(CategoryCPU, "n1.txt", "CPU(s): 4\n"))

	ratio, err := st.Coverage()
	assert.Zero(t, ratio)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestCoverage_Ratio(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []string
		cpu     []string
		want    float64
		covered []string
	}{
		{"none covered", []string{"n1", "n2"}, nil, 0, []string{}},
		{"half covered", []string{"n1", "n2", "n3", "n4"}, []string{"n1", "n3"}, 0.5, []string{"n1", "n3"}},
		{"fully covered", []string{"n1"}, []string{"n1"}, 1, []string{"n1"}},
		{"extra cpu files ignored", []string{"n1", "n2"}, []string{"n1", "zz"}, 0.5, []string{"n1"}},
		{"duplicate names counted once", []string{"n1", "n1", "n2"}, []string{"n1"}, 0.5, []string{"n1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			require.NoError(t, st.Insert(CategoryNode, "node_info.txt", nodeSnapshot(tt.nodes...)))
			for _, c := range tt.cpu {
				require.NoError(t, st.Insert(CategoryCPU, c+".txt", "CPU(s): 64\n"))
			}

			ratio, err := st.Coverage()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, ratio, 1e-9)
			assert.GreaterOrEqual(t, ratio, 0.0)
			assert.LessOrEqual(t, ratio, 1.0)

			report, err := st.CoverageReport()
			require.NoError(t, err)
			assert.Equal(t, tt.covered, report.Covered)
			assert.Equal(t, report.Nodes, len(report.Covered)+len(report.Missing))
			assert.InDelta(t, tt.want, testutil.ToFloat64(storeCoverageRatio.WithLabelValues(st.Name())), 1e-9)
		})
	}
}

func TestCoverage_Fixture(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Insert(CategoryNode, "node_info.txt", readTestdata(t, "node_info.txt")))
	require.NoError(t, st.Insert(CategoryCPU, "gpu001.txt", readTestdata(t, "lscpu.txt")))

	report, err := st.CoverageReport()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Nodes)
	assert.Equal(t, []string{"gpu001"}, report.Covered)
	assert.Equal(t, []string{"cn001", "cn002"}, report.Missing)
	assert.InDelta(t, 1.0/3.0, report.Ratio, 1e-9)
	assert.True(t, st.CheckIntegrity())
}

func TestCoverage_NoNodeNames(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Insert(CategoryNode, "node_info.txt", "CPUTot=4\n\nCPUTot=8\n"))

	_, err := st.Coverage()
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedArtifact), "got %v", err)
}

func TestCoverage_TwoNodeFiles(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Insert(CategoryNode, "a.txt", nodeSnapshot("n1")))
	require.NoError(t, st.Insert(CategoryNode, "b.txt", nodeSnapshot("n1")))

	_, err := st.Coverage()
	assert.True(t, errors.IsCode(err, errors.ErrCodeStructuralViolation), "got %v", err)
}

func TestMetrics_OperationsCounted(t *testing.T) {
	st := newTestStore(t)
	okBefore := testutil.ToFloat64(storeOperationTotal.WithLabelValues("remove", "success"))
	errBefore := testutil.ToFloat64(storeOperationTotal.WithLabelValues("remove", "error"))

	require.NoError(t, st.Insert(CategoryCPU, "n1.txt", "CPU(s): 4\n"))
	require.NoError(t, st.Remove(CategoryCPU, "n1.txt"))
	require.Error(t, st.Remove(CategoryCPU, "n1.txt"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(storeOperationTotal.WithLabelValues("remove", "success")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(storeOperationTotal.WithLabelValues("remove", "error")))
}
