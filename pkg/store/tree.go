package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
)

const (
	branchLast  = "└─ "
	branchMid   = "├─ "
	indentLast  = "   "
	indentChild = "│  "
)

// Tree writes the directory tree of the instance to w. Entries are sorted
// by name, as returned by os.ReadDir:
//
//	└─ cluster
//	   ├─ cpu
//	   │  └─ n1.txt
//	   └─ node
//	      └─ node_info.txt
func (s *Store) Tree(w io.Writer) error {
	if !isDir(s.path) {
		return errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("database %q does not exist at %q", s.name, s.path))
	}
	return writeTree(w, s.path, "", true)
}

func writeTree(w io.Writer, path, indent string, last bool) error {
	branch := branchMid
	if last {
		branch = branchLast
	}
	if _, err := fmt.Fprintln(w, indent+branch+filepath.Base(path)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write tree", err)
	}

	if !isDir(path) {
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read %q", path), err)
	}
	childIndent := indent + indentChild
	if last {
		childIndent = indent + indentLast
	}
	for i, e := range entries {
		if err := writeTree(w, filepath.Join(path, e.Name()), childIndent, i == len(entries)-1); err != nil {
			return err
		}
	}
	return nil
}
