package store

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/slurmdocs/pkg/defaults"
	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/parser"
	"github.com/NVIDIA/slurmdocs/pkg/record"

	"k8s.io/utils/set"
)

// Insert writes content verbatim to <category>/<filename>. Missing category
// directories are created first. An existing artifact is overwritten.
// Content that no Format could parse (oversized or invalid UTF-8) is
// rejected with ErrCodeMalformedArtifact.
func (s *Store) Insert(c Category, filename, content string) error {
	return observe("insert", s.write(c, filename, content, false))
}

// Update overwrites an existing artifact. It fails with ErrCodeNotFound if
// the artifact is absent.
func (s *Store) Update(c Category, filename, content string) error {
	return observe("update", s.write(c, filename, content, true))
}

func (s *Store) write(c Category, filename, content string, mustExist bool) error {
	path, err := s.artifactPath(c, filename)
	if err != nil {
		return err
	}

	if err := parser.CheckArtifact(s.formats[c].Name(), []byte(content)); err != nil {
		return err
	}

	if mustExist && !isFile(path) {
		return errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("%s artifact %q does not exist in database %q", c, filename, s.name))
	}

	if c == CategoryCPU && s.strictCPUNames {
		if err := s.checkCPUName(filename); err != nil {
			return err
		}
	}

	if missing := s.missingDirs(); len(missing) > 0 {
		for _, cat := range missing {
			if err := os.MkdirAll(s.dir(cat), 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeStructuralViolation,
					fmt.Sprintf("failed to prepare %s directory of database %q", cat, s.name), err)
			}
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to write artifact %q", path), err)
	}

	slog.Debug("stored artifact",
		slog.String("database", s.name),
		slog.String("category", c.String()),
		slog.String("filename", filename),
		slog.Int("bytes", len(content)))
	return nil
}

// checkCPUName requires filename to be <NodeName>.txt for a known node.
func (s *Store) checkCPUName(filename string) error {
	node, ok := strings.CutSuffix(filename, defaults.CPUFileSuffix)
	if !ok {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("cpu artifact %q must be named <NodeName>%s", filename, defaults.CPUFileSuffix))
	}

	names, err := s.NodeNames()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest,
			"strict cpu names need a node snapshot to validate against", err)
	}

	if set.New(names...).Has(node) {
		return nil
	}
	msg := fmt.Sprintf("cpu artifact %q matches no NodeName in the node snapshot", filename)
	if guess := closest(node, names, 3); guess != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", guess+defaults.CPUFileSuffix)
	}
	return errors.WithContext(errors.ErrCodeInvalidRequest, msg, map[string]any{
		"filename": filename,
	})
}

// Remove deletes <category>/<filename>.
func (s *Store) Remove(c Category, filename string) error {
	return observe("remove", s.remove(c, filename))
}

func (s *Store) remove(c Category, filename string) error {
	path, err := s.artifactPath(c, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeNotFound,
				fmt.Sprintf("%s artifact %q does not exist in database %q", c, filename, s.name), err)
		}
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to remove artifact %q", path), err)
	}
	return nil
}

// Query loads <category>/<filename> and parses it with the category's
// Format. The file is parsed on every call.
func (s *Store) Query(c Category, filename string) (record.Parsed, error) {
	res, err := s.query(c, filename)
	return res, observe("query", err)
}

func (s *Store) query(c Category, filename string) (record.Parsed, error) {
	path, err := s.artifactPath(c, filename)
	if err != nil {
		return nil, err
	}
	return parser.New(s.formats[c]).ParseFile(path)
}

// QueryCPU returns the record parsed from cpu/<filename>.
func (s *Store) QueryCPU(filename string) (record.Record, error) {
	res, err := s.Query(CategoryCPU, filename)
	if err != nil {
		return nil, err
	}
	rec, ok := res.(record.Record)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("cpu format %q returned %T, want a single record", s.formats[CategoryCPU].Name(), res))
	}
	return rec, nil
}

// QueryNode returns the table parsed from node/<filename>.
func (s *Store) QueryNode(filename string) (*record.Table, error) {
	res, err := s.Query(CategoryNode, filename)
	if err != nil {
		return nil, err
	}
	tbl, ok := res.(*record.Table)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("node format %q returned %T, want a table", s.formats[CategoryNode].Name(), res))
	}
	return tbl, nil
}

// IsCPUFileAvailable reports whether cpu/<filename> exists.
func (s *Store) IsCPUFileAvailable(filename string) bool {
	path, err := s.artifactPath(CategoryCPU, filename)
	return err == nil && isFile(path)
}

// IsNodeFileAvailable reports whether node/ holds exactly one artifact.
func (s *Store) IsNodeFileAvailable() bool {
	names, err := files(s.dir(CategoryNode))
	return err == nil && len(names) == 1
}

// NodeFile returns the filename of the single node snapshot.
func (s *Store) NodeFile() (string, error) {
	names, err := files(s.dir(CategoryNode))
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to list node directory", err)
	}
	switch len(names) {
	case 0:
		return "", errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("no node snapshot in database %q", s.name))
	case 1:
		return names[0], nil
	default:
		return "", errors.WithContext(errors.ErrCodeStructuralViolation,
			fmt.Sprintf("database %q holds %d node snapshots, want exactly one", s.name, len(names)),
			map[string]any{"files": names})
	}
}

// NodeNames returns the distinct NodeName values of the node snapshot in
// first seen order. Rows without NodeName are skipped.
func (s *Store) NodeNames() ([]string, error) {
	filename, err := s.NodeFile()
	if err != nil {
		return nil, err
	}
	tbl, err := s.QueryNode(filename)
	if err != nil {
		return nil, err
	}

	values, present := tbl.Column(parser.NodeNameField)
	seen := set.New[string]()
	names := make([]string, 0, len(values))
	for i, v := range values {
		if !present[i] || seen.Has(string(v)) {
			continue
		}
		seen.Insert(string(v))
		names = append(names, string(v))
	}
	return names, nil
}

// List returns the sorted artifact filenames of category c.
func (s *Store) List(c Category) ([]string, error) {
	if err := checkCategory(c); err != nil {
		return nil, err
	}
	names, err := files(s.dir(c))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeNotFound,
				fmt.Sprintf("database %q has no %s directory", s.name, c), err)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to list %s directory", c), err)
	}
	return names, nil
}

// Len returns the number of stored artifacts over all categories.
func (s *Store) Len() int {
	n := 0
	for _, c := range Categories() {
		names, _ := files(s.dir(c))
		n += len(names)
	}
	return n
}
