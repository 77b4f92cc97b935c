package domain

// Dataset represents a tabular file loaded into memory: the header row
// plus every data row in original file order. Rows are positional; a
// row's identity is its index in Rows.
//
// The column index is resolved once at construction. When the header
// contains the same column name more than once, lookups resolve to the
// FIRST occurrence; later occurrences remain addressable only by
// position.
type Dataset struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`

	index map[string]int
}

// NewDataset builds a Dataset and its column index from a header row
// and the ordered data rows.
func NewDataset(header []string, rows [][]string) *Dataset {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return &Dataset{
		Header: header,
		Rows:   rows,
		index:  index,
	}
}

// ColumnIndex returns the position of the named column in the header.
// The match is exact: no case folding and no whitespace trimming of
// the header name.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// HasColumn reports whether the named column exists in the header.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Value returns the raw cell value of the named column on the given
// row. A missing column or a row shorter than the header reads back as
// the empty string.
func (d *Dataset) Value(row []string, name string) string {
	i, ok := d.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// RowCount returns the number of data rows (header excluded).
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// DuplicateReport is the outcome of a duplicate check on one column.
// Rows holds every occurrence of every duplicated comparison key, in
// original relative order; ImpactedCount counts rows, not keys.
// DuplicateKeys lists the distinct duplicated keys in first-appearance
// order.
type DuplicateReport struct {
	Field          string     `json:"field"`
	Header         []string   `json:"header"`
	Rows           [][]string `json:"rows"`
	TotalProcessed int        `json:"total_processed"`
	ImpactedCount  int        `json:"impacted_count"`
	DuplicateKeys  []string   `json:"duplicate_keys"`
}

// HasDuplicates reports whether the check found any duplicated keys.
func (r *DuplicateReport) HasDuplicates() bool {
	return r.ImpactedCount > 0
}
