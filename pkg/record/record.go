package record

import (
	"fmt"
	"sort"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
)

// Parsed is implemented by Record and *Table so a parse result of either
// shape can be handled uniformly.
type Parsed interface {
	Rows() []Record
}

// Record is one flat entity: field name to value.
type Record map[string]Reading

// Rows returns the record as a single row.
func (r Record) Rows() []Record {
	return []Record{r}
}

// Get returns the reading for field and whether it is present.
func (r Record) Get(field string) (Reading, bool) {
	v, ok := r[field]
	return v, ok
}

// Keys returns the field names in lexical order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int returns field as an integer.
func (r Record) Int(field string) (int64, error) {
	v, err := r.lookup(field)
	if err != nil {
		return 0, err
	}
	n, err := v.Int()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMalformedArtifact,
			fmt.Sprintf("field %q is not an integer: %q", field, v), err)
	}
	return n, nil
}

// Float returns field as a float.
func (r Record) Float(field string) (float64, error) {
	v, err := r.lookup(field)
	if err != nil {
		return 0, err
	}
	f, err := v.Float()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMalformedArtifact,
			fmt.Sprintf("field %q is not a number: %q", field, v), err)
	}
	return f, nil
}

func (r Record) lookup(field string) (Reading, error) {
	v, ok := r[field]
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, fmt.Sprintf("field %q not present", field))
	}
	return v, nil
}
