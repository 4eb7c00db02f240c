package store

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/slurmdocs/pkg/errors"

	"github.com/agnivade/levenshtein"
)

// Category is the artifact kind. It selects both the storage directory and
// the parsing Format.
type Category string

const (
	// CategoryCPU holds per node lscpu output.
	CategoryCPU Category = "cpu"

	// CategoryNode holds the cluster wide scontrol node snapshot.
	CategoryNode Category = "node"
)

// Categories returns the supported categories.
func Categories() []Category {
	return []Category{CategoryCPU, CategoryNode}
}

// IsValid reports whether c is a supported category.
func (c Category) IsValid() bool {
	return c == CategoryCPU || c == CategoryNode
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a name to a Category.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if err := checkCategory(c); err != nil {
		return "", err
	}
	return c, nil
}

func checkCategory(c Category) error {
	if c.IsValid() {
		return nil
	}
	candidates := make([]string, 0, len(Categories()))
	for _, v := range Categories() {
		candidates = append(candidates, v.String())
	}
	msg := fmt.Sprintf("unknown category %q, supported values: %v", c, candidates)
	if s := closest(string(c), candidates, 2); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return errors.WithContext(errors.ErrCodeInvalidCategory, msg, map[string]any{
		"category": string(c),
	})
}

// closest returns the candidate with the smallest edit distance to s, if
// that distance is at most maxDistance.
func closest(s string, candidates []string, maxDistance int) string {
	best, bestDist := "", maxDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(s, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
