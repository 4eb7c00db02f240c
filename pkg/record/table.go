package record

// Table is an ordered set of records sharing a sparse schema.
// Records may omit columns they do not report.
type Table struct {
	// Columns is the union of field names in first seen order.
	Columns []string `json:"columns" yaml:"columns"`

	// Records holds one entry per source block, in source order.
	Records []Record `json:"records" yaml:"records"`

	seen map[string]struct{}
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		Columns: []string{},
		Records: []Record{},
		seen:    make(map[string]struct{}),
	}
}

// Append adds a row, extending Columns with any new field names.
// New names are added in the order given by keys, or sorted if keys is nil.
func (t *Table) Append(r Record, keys []string) {
	if keys == nil {
		keys = r.Keys()
	}
	t.addColumns(keys)
	t.Records = append(t.Records, r)
}

// AddColumn registers a column name without adding a row.
func (t *Table) AddColumn(name string) {
	t.addColumns([]string{name})
}

func (t *Table) addColumns(keys []string) {
	if t.seen == nil {
		t.seen = make(map[string]struct{}, len(t.Columns))
		for _, c := range t.Columns {
			t.seen[c] = struct{}{}
		}
	}
	for _, k := range keys {
		if _, ok := t.seen[k]; ok {
			continue
		}
		t.seen[k] = struct{}{}
		t.Columns = append(t.Columns, k)
	}
}

// Rows returns the table records.
func (t *Table) Rows() []Record {
	return t.Records
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Records)
}

// HasColumn reports whether any row carries the column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the value of field for every row. Rows without the field
// yield the empty reading and false in the matching present slot.
func (t *Table) Column(field string) (values []Reading, present []bool) {
	values = make([]Reading, len(t.Records))
	present = make([]bool, len(t.Records))
	for i, r := range t.Records {
		values[i], present[i] = r[field]
	}
	return values, present
}

// Lookup returns the first row whose field equals value.
func (t *Table) Lookup(field, value string) (Record, bool) {
	for _, r := range t.Records {
		if v, ok := r[field]; ok && string(v) == value {
			return r, true
		}
	}
	return nil, false
}
