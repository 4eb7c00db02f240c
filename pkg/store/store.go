package store

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NVIDIA/slurmdocs/pkg/defaults"
	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/NVIDIA/slurmdocs/pkg/parser"
)

// mkdir creates category directories. Replaced in tests.
var mkdir = os.Mkdir

// Store is one database instance rooted at <root>/<name>.
type Store struct {
	name string
	root string
	path string

	formats        map[Category]parser.Format
	strictCPUNames bool
}

// Option configures a Store.
type Option func(*Store)

// WithFormat binds the Format used to parse artifacts of category c.
func WithFormat(c Category, f parser.Format) Option {
	return func(s *Store) {
		s.formats[c] = f
	}
}

// WithStrictCPUNames rejects cpu inserts whose filename is not
// <NodeName>.txt for a node in the stored snapshot.
func WithStrictCPUNames(strict bool) Option {
	return func(s *Store) {
		s.strictCPUNames = strict
	}
}

// DefaultRoot returns $HOME/.slurmdocs/database.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to resolve home directory", err)
	}
	return filepath.Join(home, defaults.RootDirName, defaults.DatabaseDirName), nil
}

// New returns a Store for database name under root. An empty root selects
// DefaultRoot. Nothing is created on disk until Create or Insert.
func New(name, root string, opts ...Option) (*Store, error) {
	if err := checkFilename(name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid database name", err)
	}

	if strings.TrimSpace(root) == "" {
		var err error
		if root, err = DefaultRoot(); err != nil {
			return nil, err
		}
	}

	s := &Store{
		name: name,
		root: root,
		path: filepath.Join(root, name),
		formats: map[Category]parser.Format{
			CategoryCPU:  parser.Lscpu{},
			CategoryNode: parser.Scontrol{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range Categories() {
		if s.formats[c] == nil {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("no format bound to category %q", c))
		}
	}
	return s, nil
}

// Name returns the database name.
func (s *Store) Name() string {
	return s.name
}

// Root returns the directory holding the database.
func (s *Store) Root() string {
	return s.root
}

// Path returns the instance directory, <root>/<name>.
func (s *Store) Path() string {
	return s.path
}

// Format returns the Format bound to c.
func (s *Store) Format(c Category) parser.Format {
	return s.formats[c]
}

func (s *Store) dir(c Category) string {
	return filepath.Join(s.path, string(c))
}

func (s *Store) artifactPath(c Category, filename string) (string, error) {
	if err := checkCategory(c); err != nil {
		return "", err
	}
	if err := checkFilename(filename); err != nil {
		return "", err
	}
	return filepath.Join(s.dir(c), filename), nil
}

// checkFilename requires a single, non special path element.
func checkFilename(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New(errors.ErrCodeInvalidRequest, "filename is empty")
	case name == "." || name == "..":
		return errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("filename %q is reserved", name))
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("filename %q must not contain path separators", name))
	}
	return nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// files returns the sorted names of the non directory entries in dir.
func files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Create makes the instance directory and both category directories.
// It fails with ErrCodeAlreadyExists if either category directory is
// present. If a step fails, directories made by this call, including the
// instance directory, are removed.
func (s *Store) Create() error {
	return observe("create", s.create())
}

func (s *Store) create() error {
	for _, c := range Categories() {
		if _, err := os.Stat(s.dir(c)); err == nil {
			return errors.WithContext(errors.ErrCodeAlreadyExists,
				fmt.Sprintf("database %q already has a %s directory", s.name, c),
				map[string]any{"path": s.dir(c)})
		}
	}

	createdRoot := !isDir(s.path)
	if err := os.MkdirAll(s.path, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStructuralViolation,
			fmt.Sprintf("failed to create database directory %q", s.path), err)
	}

	var made []string
	if createdRoot {
		made = append(made, s.path)
	}
	for _, c := range Categories() {
		if err := mkdir(s.dir(c), 0o755); err != nil {
			for _, d := range made {
				if rmErr := os.RemoveAll(d); rmErr != nil {
					slog.Warn("failed to roll back partial create", "path", d, "error", rmErr)
				}
			}
			return errors.Wrap(errors.ErrCodeStructuralViolation,
				fmt.Sprintf("failed to create %s directory of database %q", c, s.name), err)
		}
		made = append(made, s.dir(c))
	}

	slog.Debug("created database", slog.String("name", s.name), slog.String("path", s.path))
	return nil
}

// IsEmpty reports whether either category directory is missing. A warning
// is logged for every missing directory.
func (s *Store) IsEmpty() bool {
	missing := s.missingDirs()
	for _, c := range missing {
		slog.Warn("database is missing a category directory",
			slog.String("database", s.name),
			slog.String("category", c.String()),
			slog.String("path", s.dir(c)))
	}
	return len(missing) > 0
}

func (s *Store) missingDirs() []Category {
	var missing []Category
	for _, c := range Categories() {
		if !isDir(s.dir(c)) {
			missing = append(missing, c)
		}
	}
	return missing
}

// CheckIntegrity reports whether cpu/ holds at least one artifact and node/
// holds exactly one. Problems are logged, never returned.
func (s *Store) CheckIntegrity() bool {
	cpu, err := files(s.dir(CategoryCPU))
	if err != nil {
		slog.Warn("cpu directory is unreadable", slog.String("database", s.name), slog.String("error", err.Error()))
		return false
	}
	if len(cpu) == 0 {
		slog.Warn("cpu directory is empty", slog.String("database", s.name))
		return false
	}

	node, err := files(s.dir(CategoryNode))
	if err != nil {
		slog.Warn("node directory is unreadable", slog.String("database", s.name), slog.String("error", err.Error()))
		return false
	}
	if len(node) != 1 {
		slog.Warn("node directory must hold exactly one snapshot",
			slog.String("database", s.name), slog.Int("found", len(node)))
		return false
	}
	return true
}

// Delete removes both category directories. The instance directory itself
// is kept, see Destroy. A missing category directory is reported as
// ErrCodeStructuralViolation after the remaining one has been removed; if
// both are missing the error is ErrCodeNotFound.
func (s *Store) Delete() error {
	return observe("delete", s.delete())
}

func (s *Store) delete() error {
	missing := s.missingDirs()
	if len(missing) == len(Categories()) {
		return errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("database %q has no category directories at %q", s.name, s.path))
	}

	for _, c := range Categories() {
		if err := os.RemoveAll(s.dir(c)); err != nil {
			return errors.Wrap(errors.ErrCodeStructuralViolation,
				fmt.Sprintf("failed to delete %s directory of database %q", c, s.name), err)
		}
	}

	if len(missing) > 0 {
		return errors.WithContext(errors.ErrCodeStructuralViolation,
			fmt.Sprintf("database %q was missing %v before delete", s.name, missing),
			map[string]any{"missing": missing})
	}

	slog.Debug("deleted database contents", slog.String("name", s.name))
	return nil
}

// Destroy deletes the category directories and the instance directory.
// It succeeds on half built instances.
func (s *Store) Destroy() error {
	if err := s.Delete(); err != nil &&
		!errors.IsCode(err, errors.ErrCodeStructuralViolation) &&
		!errors.IsCode(err, errors.ErrCodeNotFound) {
		return err
	}

	if _, err := os.Stat(s.path); stderrors.Is(err, fs.ErrNotExist) {
		return observe("destroy", errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("database %q does not exist at %q", s.name, s.path)))
	}

	if err := os.RemoveAll(s.path); err != nil {
		return observe("destroy", errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to remove database directory %q", s.path), err))
	}

	slog.Debug("destroyed database", slog.String("name", s.name), slog.String("path", s.path))
	return observe("destroy", nil)
}
