package record

import (
	"path"
	"strings"
)

// FilterOut returns a copy of r without the fields matching any pattern.
// Patterns are exact names or carry a wildcard:
//   - "CPU*" drops fields starting with "CPU"
//   - "*MHz" drops fields ending with "MHz"
//   - "*cache*" drops fields containing "cache"
//   - "L?d cache" and other interior wildcards use shell glob rules
func FilterOut(r Record, patterns []string) Record {
	out := make(Record, len(r))
	for field, v := range r {
		if !matchesAny(field, patterns) {
			out[field] = v
		}
	}
	return out
}

// FilterOut returns a copy of the table with matching columns removed from
// every row and from Columns.
func (t *Table) FilterOut(patterns []string) *Table {
	out := NewTable()
	for _, c := range t.Columns {
		if !matchesAny(c, patterns) {
			out.AddColumn(c)
		}
	}
	for _, r := range t.Records {
		out.Records = append(out.Records, FilterOut(r, patterns))
	}
	return out
}

func matchesAny(field string, patterns []string) bool {
	for _, p := range patterns {
		if matchesPattern(field, p) {
			return true
		}
	}
	return false
}

// matchesPattern reports whether a field name matches a wildcard pattern.
func matchesPattern(field, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return field == pattern
	}

	inner := strings.Trim(pattern, "*")
	if !strings.ContainsAny(inner, "*?[") {
		switch {
		case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*"):
			return strings.Contains(field, inner)
		case strings.HasPrefix(pattern, "*"):
			return strings.HasSuffix(field, inner)
		case strings.HasSuffix(pattern, "*"):
			return strings.HasPrefix(field, inner)
		}
	}

	// Field names never contain '/', so path.Match behaves as a plain glob.
	ok, err := path.Match(pattern, field)
	return err == nil && ok
}
