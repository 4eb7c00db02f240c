package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParser_ParseFileWithSelectedFormat(t *testing.T) {
	path := writeFile(t, "NodeName=n1 CPUTot=64\n")

	p := New(Scontrol{})
	res, err := p.ParseFile(path)
	require.NoError(t, err)
	tbl, ok := res.(*record.Table)
	require.True(t, ok, "got %T", res)
	assert.Equal(t, 1, tbl.Len())

	// same file, other format
	p.SetFormat(Lscpu{})
	assert.Equal(t, "lscpu", p.Format().Name())
	res, err = p.ParseFile(path)
	require.NoError(t, err)
	rec, ok := res.(record.Record)
	require.True(t, ok, "got %T", res)
	assert.Empty(t, rec)
}

func TestParser_Parse(t *testing.T) {
	res, err := New(Lscpu{}).Parse([]byte("Architecture: x86_64\n"))
	require.NoError(t, err)
	assert.Equal(t, record.Record{"Architecture": "x86_64"}, res)
}

func TestParser_ParseFileNotFound(t *testing.T) {
	_, err := New(Lscpu{}).ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestParser_ParseFileMalformed(t *testing.T) {
	path := writeFile(t, "garbage without tokens\n")

	_, err := New(Scontrol{}).ParseFile(path)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedArtifact), "got %v", err)
}

func TestParser_NoFormat(t *testing.T) {
	_, err := New(nil).Parse([]byte("x"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}
