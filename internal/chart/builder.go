package chart

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ppiankov/gapdash/internal/dataset"
)

// TopN is the number of countries in the population ranking
const TopN = 15

// ErrUnknownColumn is returned when a metric is not a numeric column of the dataset
var ErrUnknownColumn = errors.New("unknown numeric column")

// Builder turns selections into chart specs.
// It holds the shared dataset by pointer and never modifies it; every
// method is a pure function of its arguments.
type Builder struct {
	ds     *dataset.Dataset
	labels Labels
}

// NewBuilder creates a Builder over a loaded dataset
func NewBuilder(ds *dataset.Dataset, labels Labels) *Builder {
	return &Builder{ds: ds, labels: labels}
}

// Labels returns the locale text the builder uses
func (b *Builder) Labels() Labels { return b.labels }

func (b *Builder) requireNumeric(columns ...string) error {
	for _, c := range columns {
		if !b.ds.IsNumeric(c) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
	}
	return nil
}

// Line plots metric over years, one series per selected country.
// Series follow first appearance in the dataset; points within a series are
// in year order. Every row of the selected countries is plotted except rows
// whose metric cell is empty; a country with no plottable row gets no series.
func (b *Builder) Line(countries []string, metric string) (*Spec, error) {
	if err := b.requireNumeric(metric); err != nil {
		return nil, err
	}

	spec := &Spec{
		Kind: KindLine,
		Encoding: Encoding{
			X:     dataset.ColYear,
			Y:     metric,
			Color: dataset.ColCountry,
		},
		XLabel: dataset.ColYear,
		YLabel: metric,
		Series: []Series{},
	}

	byCountry := make(map[string]int)
	for _, r := range b.ds.ByCountries(countries) {
		v, ok := r.Value(metric)
		if !ok {
			continue
		}
		i, seen := byCountry[r.Country]
		if !seen {
			i = len(spec.Series)
			byCountry[r.Country] = i
			spec.Series = append(spec.Series, Series{Name: r.Country})
		}
		spec.Series[i].Points = append(spec.Series[i].Points, Point{
			Label: r.Country,
			X:     float64(r.Year),
			Y:     v,
		})
	}

	for i := range spec.Series {
		pts := spec.Series[i].Points
		sort.SliceStable(pts, func(a, c int) bool { return pts[a].X < pts[c].X })
	}

	return spec, nil
}

// Bubble plots one year as a scatter of x against y with marker size from size.
// Rows of the year with an empty x, y or size cell are left out.
func (b *Builder) Bubble(x, y, size string, year int) (*Spec, error) {
	if err := b.requireNumeric(x, y, size); err != nil {
		return nil, err
	}

	points := []Point{}
	for _, r := range b.ds.ByYear(year) {
		xv, okX := r.Value(x)
		yv, okY := r.Value(y)
		sv, okS := r.Value(size)
		if !okX || !okY || !okS {
			continue
		}
		points = append(points, Point{Label: r.Country, X: xv, Y: yv, Size: sv})
	}

	return &Spec{
		Kind:  KindScatter,
		Title: fmt.Sprintf(b.labels.BubbleTitle, year),
		Encoding: Encoding{
			X:     x,
			Y:     y,
			Size:  size,
			Label: dataset.ColCountry,
		},
		XLabel: x,
		YLabel: y,
		Labels: map[string]string{x: x, y: y},
		Series: []Series{{Points: points}},
	}, nil
}

// TopPopulation ranks the TopN most populous countries of a year.
// The sort is stable, so equal populations keep dataset order before the
// final reversal that puts the largest bar at the top of a horizontal chart.
func (b *Builder) TopPopulation(year int) (*Spec, error) {
	rows := b.ds.Filter(func(r dataset.Record) bool {
		if r.Year != year {
			return false
		}
		_, ok := r.Value(dataset.ColPopulation)
		return ok
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Population() > rows[j].Population()
	})
	if len(rows) > TopN {
		rows = rows[:TopN]
	}

	points := make([]Point, len(rows))
	for i, r := range rows {
		points[len(rows)-1-i] = Point{Label: r.Country, X: r.Population(), Value: r.Population()}
	}

	return &Spec{
		Kind:  KindBar,
		Title: fmt.Sprintf(b.labels.TopTitle, year),
		Encoding: Encoding{
			X: dataset.ColPopulation,
			Y: dataset.ColCountry,
		},
		XLabel: b.labels.Population,
		YLabel: b.labels.Country,
		Labels: map[string]string{
			dataset.ColPopulation: b.labels.Population,
			dataset.ColCountry:    b.labels.Country,
		},
		Orientation: "h",
		Series:      []Series{{Points: points}},
	}, nil
}

// ContinentPopulation sums population per continent for one year.
// Slices are ordered by continent name; continents without rows are absent.
func (b *Builder) ContinentPopulation(year int) (*Spec, error) {
	totals := make(map[string]float64)
	for _, r := range b.ds.ByYear(year) {
		if v, ok := r.Value(dataset.ColPopulation); ok {
			totals[r.Continent] += v
		} else if _, seen := totals[r.Continent]; !seen {
			totals[r.Continent] = 0
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	points := make([]Point, 0, len(names))
	for _, name := range names {
		points = append(points, Point{Label: name, Value: totals[name]})
	}

	return &Spec{
		Kind:  KindPie,
		Title: fmt.Sprintf(b.labels.ContinentTitle, year),
		Encoding: Encoding{
			Value: dataset.ColPopulation,
			Label: dataset.ColContinent,
		},
		Labels: map[string]string{
			dataset.ColPopulation: b.labels.Population,
			dataset.ColContinent:  b.labels.Continent,
		},
		Series: []Series{{Points: points}},
	}, nil
}
