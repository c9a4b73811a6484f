package dataset

// Options holds the precomputed selector values
type Options struct {
	NumericColumns []string `json:"numericColumns" yaml:"numeric_columns"`
	NonYearColumns []string `json:"nonYearColumns" yaml:"non_year_columns"`
	Countries      []string `json:"countries" yaml:"countries"`
	Years          []int    `json:"years" yaml:"years"`
}

// DeriveOptions computes the option sets once after load.
// Columns keep header order; countries and years keep first-seen order.
func DeriveOptions(d *Dataset) Options {
	var opts Options
	for _, c := range d.Columns() {
		if c.Kind != KindNumeric {
			continue
		}
		opts.NumericColumns = append(opts.NumericColumns, c.Name)
		if c.Name != ColYear {
			opts.NonYearColumns = append(opts.NonYearColumns, c.Name)
		}
	}

	seenCountry := make(map[string]bool)
	seenYear := make(map[int]bool)
	d.Each(func(r Record) bool {
		if !seenCountry[r.Country] {
			seenCountry[r.Country] = true
			opts.Countries = append(opts.Countries, r.Country)
		}
		if !seenYear[r.Year] {
			seenYear[r.Year] = true
			opts.Years = append(opts.Years, r.Year)
		}
		return true
	})
	return opts
}

// HasCountry reports whether c is a known country
func (o Options) HasCountry(c string) bool {
	for _, v := range o.Countries {
		if v == c {
			return true
		}
	}
	return false
}

// HasYear reports whether y is a known year
func (o Options) HasYear(y int) bool {
	for _, v := range o.Years {
		if v == y {
			return true
		}
	}
	return false
}
