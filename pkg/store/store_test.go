package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	st, err := New("slurm_db", t.TempDir(), opts...)
	require.NoError(t, err)
	return st
}

func TestNew(t *testing.T) {
	root := t.TempDir()
	st, err := New("cluster", root)
	require.NoError(t, err)

	assert.Equal(t, "cluster", st.Name())
	assert.Equal(t, root, st.Root())
	assert.Equal(t, filepath.Join(root, "cluster"), st.Path())
	assert.Equal(t, "lscpu", st.Format(CategoryCPU).Name())
	assert.Equal(t, "scontrol", st.Format(CategoryNode).Name())

	_, err = os.Stat(st.Path())
	assert.True(t, os.IsNotExist(err), "New must not touch the file system")
}

func TestNew_InvalidName(t *testing.T) {
	for _, name := range []string{"", "  ", "..", "a/b"} {
		_, err := New(name, t.TempDir())
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "name %q: %v", name, err)
	}
}

func TestNew_DefaultRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	st, err := New("cluster", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".slurmdocs", "database", "cluster"), st.Path())
}

func TestNew_NilFormat(t *testing.T) {
	_, err := New("cluster", t.TempDir(), WithFormat(CategoryNode, nil))
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestCreateDelete(t *testing.T) {
	st := newTestStore(t)
	assert.True(t, st.IsEmpty())

	require.NoError(t, st.Create())
	assert.DirExists(t, filepath.Join(st.Path(), "cpu"))
	assert.DirExists(t, filepath.Join(st.Path(), "node"))
	assert.False(t, st.IsEmpty())

	require.NoError(t, st.Delete())
	assert.NoDirExists(t, filepath.Join(st.Path(), "cpu"))
	assert.NoDirExists(t, filepath.Join(st.Path(), "node"))
	assert.DirExists(t, st.Path())
	assert.True(t, st.IsEmpty())
}

func TestCreate_AlreadyExists(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Create())

	err := st.Create()
	assert.True(t, errors.IsCode(err, errors.ErrCodeAlreadyExists), "got %v", err)
}

func TestCreate_HalfBuiltInstanceRejected(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(st.Path(), "node"), 0o755))

	err := st.Create()
	assert.True(t, errors.IsCode(err, errors.ErrCodeAlreadyExists))
	assert.NoDirExists(t, filepath.Join(st.Path(), "cpu"))
}

func TestCreate_RollsBackOnFailure(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, os.MkdirAll(st.Path(), 0o755))
	// A dangling symlink passes the existence check but makes Mkdir fail.
	require.NoError(t, os.Symlink(filepath.Join(st.Path(), "nowhere"), filepath.Join(st.Path(), "node")))

	err := st.Create()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStructuralViolation), "got %v", err)
	assert.NoDirExists(t, filepath.Join(st.Path(), "cpu"))
}

func TestCreate_RollsBackInstanceDirectory(t *testing.T) {
	st := newTestStore(t)
	prev := mkdir
	mkdir = func(path string, perm os.FileMode) error {
		if filepath.Base(path) == CategoryNode.String() {
			return os.ErrPermission
		}
		return os.Mkdir(path, perm)
	}
	t.Cleanup(func() { mkdir = prev })

	err := st.Create()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStructuralViolation), "got %v", err)
	assert.NoDirExists(t, st.Path())
	assert.DirExists(t, st.Root())
}

func TestCreate_RollbackKeepsExistingInstanceDirectory(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, os.MkdirAll(st.Path(), 0o755))
	prev := mkdir
	mkdir = func(path string, perm os.FileMode) error {
		if filepath.Base(path) == CategoryNode.String() {
			return os.ErrPermission
		}
		return os.Mkdir(path, perm)
	}
	t.Cleanup(func() { mkdir = prev })

	require.Error(t, st.Create())
	assert.DirExists(t, st.Path())
	assert.NoDirExists(t, filepath.Join(st.Path(), "cpu"))
}

func TestDelete_Missing(t *testing.T) {
	st := newTestStore(t)

	err := st.Delete()
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestDelete_HalfDeletedInstance(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Create())
	require.NoError(t, os.Remove(filepath.Join(st.Path(), "node")))

	err := st.Delete()
	assert.True(t, errors.IsCode(err, errors.ErrCodeStructuralViolation), "got %v", err)
	// remaining directory is still cleaned up
	assert.NoDirExists(t, filepath.Join(st.Path(), "cpu"))
}

func TestDestroy(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Insert(CategoryCPU, "n1.txt", "Architecture: x86_64\n"))

	require.NoError(t, st.Destroy())
	assert.NoDirExists(t, st.Path())

	err := st.Destroy()
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestDestroy_HalfBuilt(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(st.Path(), "cpu"), 0o755))

	require.NoError(t, st.Destroy())
	assert.NoDirExists(t, st.Path())
}

func TestCheckIntegrity(t *testing.T) {
	tests := []struct {
		name  string
		cpu   []string
		nodes []string
		want  bool
	}{
		{"empty", nil, nil, false},
		{"no cpu", nil, []string{"nodes.txt"}, false},
		{"no node", []string{"n1.txt"}, nil, false},
		{"two nodes", []string{"n1.txt"}, []string{"a.txt", "b.txt"}, false},
		{"intact", []string{"n1.txt", "n2.txt"}, []string{"nodes.txt"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			require.NoError(t, st.Create())
			for _, f := range tt.cpu {
				require.NoError(t, st.Insert(CategoryCPU, f, "CPU(s): 1\n"))
			}
			for _, f := range tt.nodes {
				require.NoError(t, st.Insert(CategoryNode, f, "NodeName=n1\n"))
			}

			first := st.CheckIntegrity()
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, st.CheckIntegrity(), "health check must be repeatable")
		})
	}
}

func TestCheckIntegrity_NoDatabase(t *testing.T) {
	st := newTestStore(t)
	assert.False(t, st.CheckIntegrity())
}

func TestCategory(t *testing.T) {
	c, err := ParseCategory(" CPU ")
	require.NoError(t, err)
	assert.Equal(t, CategoryCPU, c)

	_, err = ParseCategory("nod")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCategory))
	assert.Contains(t, err.Error(), `did you mean "node"`)

	_, err = ParseCategory("gpu-telemetry")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")

	assert.True(t, CategoryNode.IsValid())
	assert.False(t, Category("gpu").IsValid())
}

func TestWithFormat(t *testing.T) {
	st := newTestStore(t, WithFormat(CategoryNode, parser.Scontrol{Preprocess: true}))
	require.NoError(t, st.Insert(CategoryNode, "nodes.txt", "NodeName=n1 Partitions=gpu\n"))

	tbl, err := st.QueryNode("nodes.txt")
	require.NoError(t, err)
	assert.Equal(t, "true", tbl.Records[0]["gpu_partition"].String())
}
