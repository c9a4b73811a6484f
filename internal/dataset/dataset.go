package dataset

import (
	"errors"
	"math"
)

// Columns every gapminder-style table must carry
const (
	ColCountry    = "country"
	ColContinent  = "continent"
	ColYear       = "year"
	ColPopulation = "pop"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedRow is returned when a required cell cannot be decoded
	ErrMalformedRow = errors.New("malformed row")
	// ErrEmpty is returned when the CSV has a header but no rows
	ErrEmpty = errors.New("dataset has no rows")
)

// Kind classifies a column
type Kind string

const (
	KindText    Kind = "text"
	KindNumeric Kind = "numeric"
)

// Column describes one header entry
type Column struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Record is one row: one country in one year with its indicators.
// Values holds every numeric column, including year and pop.
type Record struct {
	Country   string
	Continent string
	Year      int
	Values    map[string]float64
}

// Value returns a numeric column; missing cells report false
func (r Record) Value(column string) (float64, bool) {
	v, ok := r.Values[column]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Population returns the pop column, 0 when missing
func (r Record) Population() float64 {
	v, _ := r.Value(ColPopulation)
	return v
}

// Dataset is the immutable in-memory table.
// It is built once by Parse and shared by pointer; nothing mutates it afterwards.
type Dataset struct {
	columns []Column
	records []Record
	index   map[string]int
}

func newDataset(columns []Column, records []Record) *Dataset {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c.Name] = i
	}
	return &Dataset{columns: columns, records: records, index: idx}
}

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// Columns returns a copy of the column schema in header order
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Column looks up a column by name
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// IsNumeric reports whether name is a numeric column
func (d *Dataset) IsNumeric(name string) bool {
	c, ok := d.Column(name)
	return ok && c.Kind == KindNumeric
}

// Each calls fn for every record in load order until fn returns false
func (d *Dataset) Each(fn func(Record) bool) {
	for _, r := range d.records {
		if !fn(r) {
			return
		}
	}
}

// Filter returns a new slice holding the records accepted by keep, in load order
func (d *Dataset) Filter(keep func(Record) bool) []Record {
	var out []Record
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByYear returns the records of one year
func (d *Dataset) ByYear(year int) []Record {
	return d.Filter(func(r Record) bool { return r.Year == year })
}

// ByCountries returns the records whose country is in the set
func (d *Dataset) ByCountries(countries []string) []Record {
	if len(countries) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[c] = struct{}{}
	}
	return d.Filter(func(r Record) bool {
		_, ok := set[r.Country]
		return ok
	})
}
